package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"student_attendance/collaborator"
	"student_attendance/models"
	"student_attendance/report"
)

const pageDashboard = "dashboard.html"

type StudentHandler struct {
	client *collaborator.Client
}

func NewStudentHandler(client *collaborator.Client) *StudentHandler {
	return &StudentHandler{client: client}
}

func (h *StudentHandler) AddStudent(c *gin.Context) {
	var req models.AddStudentRequest
	if err := c.ShouldBind(&req); err != nil {
		replyInvalid(c, err, pageDashboard)
		return
	}

	res, err := h.client.Call(c.Request.Context(), collaborator.VerbAddStudent, req.Name, req.RollNo, req.Dept)
	if err != nil {
		replyUnavailable(c, pageDashboard)
		return
	}
	if !res.OK {
		reply(c, http.StatusUnprocessableEntity, models.Failure("Student was not added"), pageDashboard)
		return
	}
	reply(c, http.StatusOK, models.Success("Student added successfully"), pageDashboard)
}

type studentsResponse struct {
	Status   string           `json:"status"`
	Students []models.Student `json:"students"`
}

func (h *StudentHandler) ListStudents(c *gin.Context) {
	res, err := h.client.Call(c.Request.Context(), collaborator.VerbListStudents)
	if err != nil || !res.OK {
		c.JSON(http.StatusBadGateway, models.Failure(msgServerError))
		return
	}

	students := []models.Student{}
	for _, line := range res.Lines() {
		var s models.Student
		if err := json.Unmarshal([]byte(line), &s); err != nil {
			log.Printf("Error decoding student line %q: %v", line, err)
			c.JSON(http.StatusBadGateway, models.Failure(msgServerError))
			return
		}
		students = append(students, s)
	}

	c.JSON(http.StatusOK, studentsResponse{Status: models.ResultSuccess, Students: students})
}

type importResponse struct {
	Status string `json:"status"`
	models.ImportResponse
}

// ImportStudents adds every complete row of an uploaded workbook, one addStudent call per row.
func (h *StudentHandler) ImportStudents(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Failure("file is a required field"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening upload: %v", err)
		c.JSON(http.StatusBadRequest, models.Failure("Could not read the uploaded file"))
		return
	}
	defer file.Close()

	students, skipped, err := report.ReadStudents(file)
	if err != nil {
		log.Printf("Error reading workbook: %v", err)
		c.JSON(http.StatusBadRequest, models.Failure("The uploaded file is not a valid .xlsx workbook"))
		return
	}

	resp := importResponse{
		Status:         models.ResultSuccess,
		ImportResponse: models.ImportResponse{Skipped: skipped},
	}
	if resp.Skipped == nil {
		resp.Skipped = []string{}
	}
	for _, s := range students {
		res, err := h.client.Call(c.Request.Context(), collaborator.VerbAddStudent, s.Name, s.RollNo, s.Dept)
		if err != nil {
			// the collaborator is gone; the remaining rows would fail the same way
			resp.Status = models.ResultFailure
			resp.Failed += len(students) - resp.Imported - resp.Failed
			break
		}
		if res.OK {
			resp.Imported++
		} else {
			resp.Failed++
		}
	}

	code := http.StatusOK
	if resp.Status == models.ResultFailure {
		code = http.StatusBadGateway
	}
	c.JSON(code, resp)
}
