package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student_attendance/models"
)

func openTestBolt(t *testing.T) *BoltStore {
	store, err := OpenBolt(filepath.Join(t.TempDir(), "data", "attendance.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBoltStore_Users(t *testing.T) {
	ctx := context.Background()
	store := openTestBolt(t)

	_, err := store.GetUser(ctx, "alice")
	assert.Equal(t, ErrNotFound, err)

	require.NoError(t, store.CreateUser(ctx, "alice", "hash"))
	assert.Equal(t, ErrDuplicate, store.CreateUser(ctx, "alice", "other"))

	user, err := store.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.Equal(t, 1, user.ID)
}

func TestBoltStore_UserHashPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "attendance.db")

	store, err := OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, store.CreateUser(ctx, "alice", "$2a$10$abc"))
	require.NoError(t, store.Close())

	store, err = OpenBolt(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	user, err := store.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$abc", user.PasswordHash)
}

func TestBoltStore_Students(t *testing.T) {
	ctx := context.Background()
	store := openTestBolt(t)

	bob := models.Student{RollNo: "101", Name: "Bob", Dept: "CS"}
	require.NoError(t, store.CreateStudent(ctx, bob))
	require.NoError(t, store.CreateStudent(ctx, models.Student{RollNo: "100", Name: "Ann", Dept: "EE"}))
	assert.Equal(t, ErrDuplicate, store.CreateStudent(ctx, bob))

	got, err := store.GetStudent(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, bob, got)

	students, err := store.ListStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "100", students[0].RollNo)
	assert.Equal(t, "101", students[1].RollNo)
}

func TestBoltStore_Attendance(t *testing.T) {
	ctx := context.Background()
	store := openTestBolt(t)

	require.NoError(t, store.CreateStudent(ctx, models.Student{RollNo: "101", Name: "Bob", Dept: "CS"}))
	require.NoError(t, store.UpsertAttendance(ctx, "101", "2026-10-16", models.StatusAbsent))
	require.NoError(t, store.UpsertAttendance(ctx, "101", "2026-10-16", models.StatusPresent))
	require.NoError(t, store.UpsertAttendance(ctx, "101", "2026-10-17", models.StatusAbsent))

	records, err := store.ListAttendance(ctx, "2026-10-16")
	require.NoError(t, err)
	assert.Equal(t, []models.AttendanceRecord{
		{RollNo: "101", Name: "Bob", Date: "2026-10-16", Status: models.StatusPresent},
	}, records)

	records, err = store.ListAttendance(ctx, "2026-10-18")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	store := openTestBolt(t)

	calls := 0
	hash := func(p string) (string, error) {
		calls++
		return "hashed:" + p, nil
	}

	require.NoError(t, SeedAdmin(ctx, store, "admin", "first", hash))
	require.NoError(t, SeedAdmin(ctx, store, "admin", "second", hash))

	user, err := store.GetUser(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "hashed:first", user.PasswordHash)
	assert.Equal(t, 1, calls)
}
