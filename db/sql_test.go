package db

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student_attendance/models"
)

func openTestSQLite(t *testing.T) *SQLStore {
	store, err := OpenSQL("sqlite3", filepath.Join(t.TempDir(), "attendance.sqlite"))
	if err != nil && strings.Contains(err.Error(), "CGO_ENABLED=0") {
		t.Skip("go-sqlite3 needs cgo")
	}
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLStore_Users(t *testing.T) {
	ctx := context.Background()
	store := openTestSQLite(t)

	_, err := store.GetUser(ctx, "alice")
	assert.Equal(t, ErrNotFound, err)

	require.NoError(t, store.CreateUser(ctx, "alice", "hash"))
	assert.Equal(t, ErrDuplicate, store.CreateUser(ctx, "alice", "other"))

	user, err := store.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "hash", user.PasswordHash)
}

func TestSQLStore_StudentsAndAttendance(t *testing.T) {
	ctx := context.Background()
	store := openTestSQLite(t)

	bob := models.Student{RollNo: "101", Name: "Bob", Dept: "CS"}
	require.NoError(t, store.CreateStudent(ctx, bob))
	assert.Equal(t, ErrDuplicate, store.CreateStudent(ctx, bob))

	_, err := store.GetStudent(ctx, "999")
	assert.Equal(t, ErrNotFound, err)

	students, err := store.ListStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Student{bob}, students)

	require.NoError(t, store.UpsertAttendance(ctx, "101", "2026-10-16", models.StatusAbsent))
	require.NoError(t, store.UpsertAttendance(ctx, "101", "2026-10-16", models.StatusPresent))

	records, err := store.ListAttendance(ctx, "2026-10-16")
	require.NoError(t, err)
	assert.Equal(t, []models.AttendanceRecord{
		{RollNo: "101", Name: "Bob", Date: "2026-10-16", Status: models.StatusPresent},
	}, records)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "mysql"})
	assert.Error(t, err)
}
