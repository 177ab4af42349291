package collaborator

import (
	"context"
	"strings"
)

const (
	VerbSignup         = "signup"
	VerbLogin          = "login"
	VerbAddStudent     = "addStudent"
	VerbMarkAttendance = "markAttendance"
	VerbListStudents   = "listStudents"
	VerbListAttendance = "listAttendance"
)

// Success tokens. A call succeeds iff its output contains the verb's token.
const (
	TokenSignupSuccess    = "SIGNUP_SUCCESS"
	TokenLoginSuccess     = "LOGIN_SUCCESS"
	TokenStudentAdded     = "STUDENT_ADDED"
	TokenAttendanceMarked = "ATTENDANCE_MARKED"
	TokenStudentsListed   = "STUDENTS_LISTED"
	TokenAttendanceListed = "ATTENDANCE_LISTED"
)

// Failure tokens printed by attendancedb. Callers never match on them; they exist for logs and the CLI exit code.
const (
	TokenSignupFailed       = "SIGNUP_FAILED"
	TokenUsernameTaken      = "USERNAME_TAKEN"
	TokenInvalidCredentials = "INVALID_CREDENTIALS"
	TokenLoginFailed        = "LOGIN_FAILED"
	TokenDuplicateRoll      = "DUPLICATE_ROLL"
	TokenStudentAddFailed   = "STUDENT_ADD_FAILED"
	TokenStudentNotFound    = "STUDENT_NOT_FOUND"
	TokenInvalidStatus      = "INVALID_STATUS"
	TokenAttendanceFailed   = "ATTENDANCE_FAILED"
	TokenMissingArguments   = "MISSING_ARGUMENTS"
	TokenNoOperation        = "NO_OPERATION"
	TokenInvalidOperation   = "INVALID_OPERATION"
	TokenError              = "ERROR"
)

var successTokens = map[string]string{
	VerbSignup:         TokenSignupSuccess,
	VerbLogin:          TokenLoginSuccess,
	VerbAddStudent:     TokenStudentAdded,
	VerbMarkAttendance: TokenAttendanceMarked,
	VerbListStudents:   TokenStudentsListed,
	VerbListAttendance: TokenAttendanceListed,
}

// SuccessToken returns the literal token that marks a successful verb, or "" for unknown verbs.
func SuccessToken(verb string) string {
	return successTokens[verb]
}

// Succeeded applies the substring rule: empty, unrelated or partial output is a failure.
func Succeeded(verb, output string) bool {
	token := SuccessToken(verb)
	return token != "" && strings.Contains(output, token)
}

// Executor runs one verb against the persistence collaborator and returns its raw standard output.
// An error means the collaborator could not produce an answer (timeout, missing binary); a collaborator that
// ran and rejected the request returns its output and a nil error.
type Executor interface {
	Execute(ctx context.Context, verb string, args ...string) (string, error)
}
