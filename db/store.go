package db

import (
	"context"
	"errors"
	"fmt"

	"student_attendance/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Store is the persistence used by the attendancedb collaborator.
type Store interface {
	CreateUser(ctx context.Context, username, passwordHash string) error
	GetUser(ctx context.Context, username string) (models.User, error)
	CreateStudent(ctx context.Context, student models.Student) error
	GetStudent(ctx context.Context, rollNo string) (models.Student, error)
	ListStudents(ctx context.Context) ([]models.Student, error)
	// UpsertAttendance keeps a single mark per roll number and day.
	UpsertAttendance(ctx context.Context, rollNo, date string, status models.AttendanceStatus) error
	ListAttendance(ctx context.Context, date string) ([]models.AttendanceRecord, error)
	Close() error
}

type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	Path     string
}

// Open returns the store selected by cfg.Driver with its schema in place.
func Open(cfg Config) (Store, error) {
	switch cfg.Driver {
	case "postgres", "":
		psqlInfo := fmt.Sprintf("postgresql://%s:%s@%s:%d/%s?sslmode=disable",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)
		return OpenSQL("postgres", psqlInfo)
	case "sqlite3":
		return OpenSQL("sqlite3", cfg.Path)
	case "bolt":
		return OpenBolt(cfg.Path)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
