package models

import (
	"fmt"
	"strings"
)

// DateLayout is the day format of attendance records.
const DateLayout = "2006-01-02"

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
)

// ParseAttendanceStatus normalizes the accepted spellings of a mark.
// The legacy boolean "present" flag maps onto the enum: true is present, false is absent.
func ParseAttendanceStatus(s string) (AttendanceStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "present", "true":
		return StatusPresent, nil
	case "absent", "false":
		return StatusAbsent, nil
	}
	return "", fmt.Errorf("invalid attendance status %q", s)
}

type MarkAttendanceRequest struct {
	RollNo string `json:"rollNo" form:"rollNo" binding:"required,notblank"`
	Status string `json:"status" form:"status" binding:"required,attendance_status"`
}

type AttendanceRecord struct {
	RollNo string           `json:"rollNo" db:"roll_no"`
	Name   string           `json:"name" db:"name"`
	Date   string           `json:"date" db:"date"`
	Status AttendanceStatus `json:"status" db:"status"`
}

type AttendanceSummary struct {
	Date    string             `json:"date"`
	Present int                `json:"present"`
	Absent  int                `json:"absent"`
	Records []AttendanceRecord `json:"records"`
}

// Summarize counts present and absent marks for one day.
func Summarize(date string, records []AttendanceRecord) AttendanceSummary {
	summary := AttendanceSummary{Date: date, Records: records}
	if summary.Records == nil {
		summary.Records = []AttendanceRecord{}
	}
	for _, r := range records {
		if r.Status == StatusPresent {
			summary.Present++
		} else {
			summary.Absent++
		}
	}
	return summary
}
