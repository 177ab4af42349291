package models

type Student struct {
	RollNo string `json:"rollNo" db:"roll_no"`
	Name   string `json:"name" db:"name"`
	Dept   string `json:"dept" db:"department"`
}

type AddStudentRequest struct {
	RollNo string `json:"rollNo" form:"rollNo" binding:"required,notblank"`
	Name   string `json:"name" form:"name" binding:"required,notblank"`
	Dept   string `json:"dept" form:"dept" binding:"required,notblank"`
}

type ImportResponse struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Skipped  []string `json:"skipped"`
}
