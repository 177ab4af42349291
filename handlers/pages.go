package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageHandler serves the HTML pages. Pages never call the collaborator.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) page(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, name, gin.H{
			"Username": c.GetString("username"),
		})
	}
}

func (h *PageHandler) Login() gin.HandlerFunc      { return h.page(pageLogin) }
func (h *PageHandler) Signup() gin.HandlerFunc     { return h.page(pageSignup) }
func (h *PageHandler) Dashboard() gin.HandlerFunc  { return h.page(pageDashboard) }
func (h *PageHandler) Attendance() gin.HandlerFunc { return h.page(pageAttendance) }
