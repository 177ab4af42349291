package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"student_attendance/middleware"
	"student_attendance/models"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

type userInfo struct {
	Status    string    `json:"status"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// GetUserInfo describes the session the request was made with
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.Failure("Please login first"))
		return
	}

	info := userInfo{Status: models.ResultSuccess, Username: claims.Username}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	c.JSON(http.StatusOK, info)
}
