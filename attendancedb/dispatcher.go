// Package attendancedb implements the persistence collaborator: a verb plus positional arguments in,
// one token line (and for the list verbs, JSON lines) out.
package attendancedb

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"

	"student_attendance/collaborator"
	"student_attendance/db"
	"student_attendance/logger"
	"student_attendance/models"
)

type Dispatcher struct {
	store db.Store
	log   logger.Logger
	now   func() time.Time
}

// Dispatcher doubles as the in-process executor.
var _ collaborator.Executor = (*Dispatcher)(nil)

func New(store db.Store, log logger.Logger) *Dispatcher {
	return &Dispatcher{store: store, log: log, now: time.Now}
}

func (d *Dispatcher) Execute(ctx context.Context, verb string, args ...string) (string, error) {
	return d.Run(ctx, verb, args), nil
}

// Run never fails: every outcome, including a store error, is reported as a token.
func (d *Dispatcher) Run(ctx context.Context, verb string, args []string) string {
	switch verb {
	case "":
		return collaborator.TokenNoOperation
	case collaborator.VerbSignup:
		if !hasArgs(args, 2) {
			return collaborator.TokenMissingArguments
		}
		return d.signup(ctx, args[0], args[1])
	case collaborator.VerbLogin:
		if !hasArgs(args, 2) {
			return collaborator.TokenMissingArguments
		}
		return d.login(ctx, args[0], args[1])
	case collaborator.VerbAddStudent:
		if !hasArgs(args, 3) {
			return collaborator.TokenMissingArguments
		}
		return d.addStudent(ctx, models.Student{Name: args[0], RollNo: args[1], Dept: args[2]})
	case collaborator.VerbMarkAttendance:
		if !hasArgs(args, 2) {
			return collaborator.TokenMissingArguments
		}
		date := d.today()
		if len(args) > 2 && args[2] != "" {
			date = args[2]
		}
		return d.markAttendance(ctx, args[0], args[1], date)
	case collaborator.VerbListStudents:
		return d.listStudents(ctx)
	case collaborator.VerbListAttendance:
		date := d.today()
		if len(args) > 0 && args[0] != "" {
			date = args[0]
		}
		return d.listAttendance(ctx, date)
	}
	return collaborator.TokenInvalidOperation
}

func hasArgs(args []string, n int) bool {
	if len(args) < n {
		return false
	}
	for _, a := range args[:n] {
		if strings.TrimSpace(a) == "" {
			return false
		}
	}
	return true
}

func (d *Dispatcher) today() string {
	return d.now().Format(models.DateLayout)
}

func (d *Dispatcher) signup(ctx context.Context, username, password string) string {
	hash, err := HashPassword(password)
	if err != nil {
		d.log.Error("hashing password", err)
		return collaborator.TokenSignupFailed
	}
	switch err := d.store.CreateUser(ctx, username, hash); {
	case errors.Is(err, db.ErrDuplicate):
		return collaborator.TokenUsernameTaken
	case err != nil:
		d.log.Error("creating user", err)
		return collaborator.TokenSignupFailed
	}
	return collaborator.TokenSignupSuccess
}

func (d *Dispatcher) login(ctx context.Context, username, password string) string {
	user, err := d.store.GetUser(ctx, username)
	if errors.Is(err, db.ErrNotFound) {
		return collaborator.TokenInvalidCredentials
	}
	if err != nil {
		d.log.Error("querying user", err)
		return collaborator.TokenLoginFailed
	}
	if !VerifyPassword(user.PasswordHash, password) {
		return collaborator.TokenInvalidCredentials
	}
	return collaborator.TokenLoginSuccess
}

func (d *Dispatcher) addStudent(ctx context.Context, student models.Student) string {
	switch err := d.store.CreateStudent(ctx, student); {
	case errors.Is(err, db.ErrDuplicate):
		return collaborator.TokenDuplicateRoll
	case err != nil:
		d.log.Error("creating student", err)
		return collaborator.TokenStudentAddFailed
	}
	return collaborator.TokenStudentAdded
}

func (d *Dispatcher) markAttendance(ctx context.Context, rollNo, rawStatus, date string) string {
	status, err := models.ParseAttendanceStatus(rawStatus)
	if err != nil {
		return collaborator.TokenInvalidStatus
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return collaborator.TokenAttendanceFailed
	}

	if _, err := d.store.GetStudent(ctx, rollNo); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return collaborator.TokenStudentNotFound
		}
		d.log.Error("querying student", err)
		return collaborator.TokenAttendanceFailed
	}

	if err := d.store.UpsertAttendance(ctx, rollNo, date, status); err != nil {
		d.log.Error("marking attendance", err)
		return collaborator.TokenAttendanceFailed
	}
	return collaborator.TokenAttendanceMarked
}

func (d *Dispatcher) listStudents(ctx context.Context) string {
	students, err := d.store.ListStudents(ctx)
	if err != nil {
		d.log.Error("listing students", err)
		return collaborator.TokenError
	}
	return jsonLines(collaborator.TokenStudentsListed, len(students), func(i int) interface{} { return students[i] })
}

func (d *Dispatcher) listAttendance(ctx context.Context, date string) string {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return collaborator.TokenError
	}
	records, err := d.store.ListAttendance(ctx, date)
	if err != nil {
		d.log.Error("listing attendance", err)
		return collaborator.TokenError
	}
	return jsonLines(collaborator.TokenAttendanceListed, len(records), func(i int) interface{} { return records[i] })
}

func jsonLines(token string, n int, item func(int) interface{}) string {
	var b strings.Builder
	b.WriteString(token)
	for i := 0; i < n; i++ {
		line, err := json.Marshal(item(i))
		if err != nil {
			return collaborator.TokenError
		}
		b.WriteByte('\n')
		b.Write(line)
	}
	return b.String()
}
