package handlers

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"student_attendance/collaborator"
	"student_attendance/models"
	"student_attendance/report"
)

const pageAttendance = "attendance.html"

type AttendanceHandler struct {
	client *collaborator.Client
	now    func() time.Time
}

func NewAttendanceHandler(client *collaborator.Client) *AttendanceHandler {
	return &AttendanceHandler{client: client, now: time.Now}
}

func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	var req models.MarkAttendanceRequest
	if err := c.ShouldBind(&req); err != nil {
		replyInvalid(c, err, pageAttendance)
		return
	}

	// binding already accepted the status, so this only normalizes true/false and case
	status, _ := models.ParseAttendanceStatus(req.Status)

	res, err := h.client.Call(c.Request.Context(), collaborator.VerbMarkAttendance, req.RollNo, string(status))
	if err != nil {
		replyUnavailable(c, pageAttendance)
		return
	}
	if !res.OK {
		reply(c, http.StatusUnprocessableEntity, models.Failure("Attendance was not marked"), pageAttendance)
		return
	}
	reply(c, http.StatusOK, models.Success("Attendance marked successfully"), pageAttendance)
}

type attendanceResponse struct {
	Status string `json:"status"`
	models.AttendanceSummary
}

func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	summary, ok := h.summary(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, attendanceResponse{Status: models.ResultSuccess, AttendanceSummary: summary})
}

func (h *AttendanceHandler) ExportAttendance(c *gin.Context) {
	summary, ok := h.summary(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteAttendance(&buf, summary); err != nil {
		log.Printf("Error writing attendance workbook: %v", err)
		c.JSON(http.StatusInternalServerError, models.Failure(msgServerError))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+report.ExportFilename(summary.Date)+`"`)
	c.Data(http.StatusOK, report.ContentType, buf.Bytes())
}

// summary loads one day's marks, defaulting to today. It writes the error response itself.
func (h *AttendanceHandler) summary(c *gin.Context) (models.AttendanceSummary, bool) {
	date := c.DefaultQuery("date", h.now().Format(models.DateLayout))
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, models.Failure("date must be formatted as YYYY-MM-DD"))
		return models.AttendanceSummary{}, false
	}

	res, err := h.client.Call(c.Request.Context(), collaborator.VerbListAttendance, date)
	if err != nil || !res.OK {
		c.JSON(http.StatusBadGateway, models.Failure(msgServerError))
		return models.AttendanceSummary{}, false
	}

	var records []models.AttendanceRecord
	for _, line := range res.Lines() {
		var r models.AttendanceRecord
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			log.Printf("Error decoding attendance line %q: %v", line, err)
			c.JSON(http.StatusBadGateway, models.Failure(msgServerError))
			return models.AttendanceSummary{}, false
		}
		records = append(records, r)
	}
	return models.Summarize(date, records), true
}
