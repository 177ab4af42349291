package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"student_attendance/models"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), StudentsSheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(StudentsSheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestReadStudents(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"rollNo", "name", "dept"},
		{"R1", "Ann", "CS"},
		{" R2 ", "Bob", "EE"},
		{"R3", "", "ME"},
		{},
		{"R4", "Dee", "CS"},
	})

	students, skipped, err := ReadStudents(buf)
	require.NoError(t, err)
	assert.Equal(t, []models.Student{
		{RollNo: "R1", Name: "Ann", Dept: "CS"},
		{RollNo: "R2", Name: "Bob", Dept: "EE"},
		{RollNo: "R4", Name: "Dee", Dept: "CS"},
	}, students)
	assert.Equal(t, []string{"row 4: rollNo, name and dept are required"}, skipped)
}

func TestReadStudents_NotAWorkbook(t *testing.T) {
	_, _, err := ReadStudents(bytes.NewBufferString("rollNo,name,dept\n"))
	assert.Error(t, err)
}

func TestWriteAttendance(t *testing.T) {
	summary := models.Summarize("2026-10-16", []models.AttendanceRecord{
		{RollNo: "R1", Name: "Ann", Date: "2026-10-16", Status: models.StatusPresent},
		{RollNo: "R2", Name: "Bob", Date: "2026-10-16", Status: models.StatusAbsent},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteAttendance(&buf, summary))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(AttendanceSheet)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"Roll No", "Name", "Date", "Status"}, rows[0])
	assert.Equal(t, []string{"R1", "Ann", "2026-10-16", "present"}, rows[1])
	assert.Equal(t, []string{"R2", "Bob", "2026-10-16", "absent"}, rows[2])
	assert.Empty(t, rows[3])
	assert.Equal(t, []string{"Present", "1"}, rows[4])
	assert.Equal(t, []string{"Absent", "1"}, rows[5])
}
