// Package report reads student rosters from and writes attendance sheets to .xlsx workbooks.
package report

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"student_attendance/models"
)

const (
	StudentsSheet   = "Students"
	AttendanceSheet = "Attendance"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReadStudents reads rollNo, name and dept from columns A to C of the first sheet.
// The first row is a header. Incomplete rows are skipped and described in skipped.
func ReadStudents(r io.Reader) (students []models.Student, skipped []string, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open excel file")
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Error closing excel file: %v", err)
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, errors.New("excel file does not contain any sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to get rows from sheet %s", sheetName)
	}

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		cell := func(col int) string {
			if col < len(row) {
				return strings.TrimSpace(row[col])
			}
			return ""
		}

		student := models.Student{RollNo: cell(0), Name: cell(1), Dept: cell(2)}
		if student.RollNo == "" && student.Name == "" && student.Dept == "" {
			continue
		}
		if student.RollNo == "" || student.Name == "" || student.Dept == "" {
			skipped = append(skipped, fmt.Sprintf("row %d: rollNo, name and dept are required", i+1))
			continue
		}
		students = append(students, student)
	}
	return students, skipped, nil
}

// WriteAttendance writes one day's marks followed by the present and absent totals.
func WriteAttendance(w io.Writer, summary models.AttendanceSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), AttendanceSheet); err != nil {
		return errors.Wrap(err, "failed to name sheet")
	}

	rows := [][]interface{}{{"Roll No", "Name", "Date", "Status"}}
	for _, r := range summary.Records {
		rows = append(rows, []interface{}{r.RollNo, r.Name, r.Date, string(r.Status)})
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Present", summary.Present},
		[]interface{}{"Absent", summary.Absent},
	)

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(AttendanceSheet, cell, &row); err != nil {
			return errors.Wrapf(err, "failed to write row %d", i+1)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(AttendanceSheet, 1, 1, bold); err != nil {
		return err
	}

	return errors.Wrap(f.Write(w), "failed to write workbook")
}

// ExportFilename names the workbook served for date.
func ExportFilename(date string) string {
	return "attendance-" + date + ".xlsx"
}
