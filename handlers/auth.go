package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"student_attendance/collaborator"
	"student_attendance/middleware"
	"student_attendance/models"
)

const (
	pageLogin  = "login.html"
	pageSignup = "signup.html"
)

type AuthHandler struct {
	client       *collaborator.Client
	tokenService *middleware.TokenService
}

func NewAuthHandler(client *collaborator.Client, tokenService *middleware.TokenService) *AuthHandler {
	return &AuthHandler{
		client:       client,
		tokenService: tokenService,
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.Credentials
	if err := c.ShouldBind(&req); err != nil {
		replyInvalid(c, err, pageSignup)
		return
	}

	res, err := h.client.Call(c.Request.Context(), collaborator.VerbSignup, req.Username, req.Password)
	if err != nil {
		replyUnavailable(c, pageSignup)
		return
	}
	if !res.OK {
		reply(c, http.StatusUnprocessableEntity, models.Failure("Signup failed."), pageSignup)
		return
	}

	result := models.Success("Signup successful. Please login.")
	result.Redirect = "/"
	reply(c, http.StatusOK, result, pageLogin)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.Credentials
	if err := c.ShouldBind(&req); err != nil {
		replyInvalid(c, err, pageLogin)
		return
	}

	res, err := h.client.Call(c.Request.Context(), collaborator.VerbLogin, req.Username, req.Password)
	if err != nil {
		replyUnavailable(c, pageLogin)
		return
	}
	if !res.OK {
		reply(c, http.StatusUnauthorized, models.Failure("Invalid credentials"), pageLogin)
		return
	}

	token, err := h.tokenService.GenerateToken(req.Username)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		reply(c, http.StatusInternalServerError, models.Failure(msgServerError), pageLogin)
		return
	}
	h.tokenService.SetCookie(c, token)

	if !wantsJSON(c) {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	result := models.Success("Login successful")
	result.Redirect = "/dashboard"
	c.JSON(http.StatusOK, result)
}

// Logout revokes the current session, if any, and always clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.TokenFromRequest(c); token != "" {
		claims, err := h.tokenService.ValidateToken(c.Request.Context(), token)
		if err == nil {
			if err := h.tokenService.InvalidateToken(c.Request.Context(), claims); err != nil {
				log.Printf("Error revoking token: %v", err)
			}
		}
	}
	h.tokenService.ClearCookie(c)

	if !wantsJSON(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	result := models.Success("Successfully logged out")
	result.Redirect = "/"
	c.JSON(http.StatusOK, result)
}
