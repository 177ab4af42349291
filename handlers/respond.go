package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"student_attendance/models"
)

const msgServerError = "Server error, please try again"

// wantsJSON reports whether the request came from the script client.
// Form posts are the no-script fallback and get a rendered page instead.
func wantsJSON(c *gin.Context) bool {
	return c.ContentType() == binding.MIMEJSON
}

// reply writes result as JSON, or renders page with result as its message.
func reply(c *gin.Context, code int, result models.OperationResult, page string) {
	if wantsJSON(c) {
		c.JSON(code, result)
		return
	}
	c.HTML(code, page, gin.H{
		"Result":   result,
		"Username": c.GetString("username"),
	})
}

func replyInvalid(c *gin.Context, err error, page string) {
	reply(c, http.StatusBadRequest, models.Failure(validationMessage(err)), page)
}

func replyUnavailable(c *gin.Context, page string) {
	reply(c, http.StatusBadGateway, models.Failure(msgServerError), page)
}
