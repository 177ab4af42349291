package db

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"student_attendance/models"
)

// SQLStore serves Postgres and SQLite through the same queries; sqlx rebinds the placeholders.
type SQLStore struct {
	db *sqlx.DB
}

var _ Store = (*SQLStore)(nil)

// OpenSQL creates a new database connection, pings it and applies the schema
func OpenSQL(driver, dsn string) (*SQLStore, error) {
	log.Printf("Opening %s store", driver)

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "error connecting to the database")
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "error pinging database")
	}

	if err = InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLStore{db: db}, nil
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, s.db.Rebind(query), args...)
	return exists, err
}

// isUniqueViolation reports whether err comes from a UNIQUE constraint of either driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (s *SQLStore) CreateUser(ctx context.Context, username, passwordHash string) error {
	exists, err := s.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`, username)
	if err != nil {
		return errors.Wrap(err, "checking username")
	}
	if exists {
		return ErrDuplicate
	}

	_, err = s.db.ExecContext(ctx,
		s.db.Rebind(`INSERT INTO users (username, password_hash) VALUES (?, ?)`),
		username, passwordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return errors.Wrap(err, "creating user")
	}
	return nil
}

func (s *SQLStore) GetUser(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user,
		s.db.Rebind(`SELECT id, username, password_hash FROM users WHERE username = ?`),
		username,
	)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, errors.Wrap(err, "querying user")
	}
	return user, nil
}

func (s *SQLStore) CreateStudent(ctx context.Context, student models.Student) error {
	exists, err := s.exists(ctx, `SELECT EXISTS(SELECT 1 FROM students WHERE roll_no = ?)`, student.RollNo)
	if err != nil {
		return errors.Wrap(err, "checking roll number")
	}
	if exists {
		return ErrDuplicate
	}

	_, err = s.db.ExecContext(ctx,
		s.db.Rebind(`INSERT INTO students (roll_no, name, department) VALUES (?, ?, ?)`),
		student.RollNo, student.Name, student.Dept,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return errors.Wrap(err, "creating student")
	}
	return nil
}

func (s *SQLStore) GetStudent(ctx context.Context, rollNo string) (models.Student, error) {
	var student models.Student
	err := s.db.GetContext(ctx, &student,
		s.db.Rebind(`SELECT roll_no, name, department FROM students WHERE roll_no = ?`),
		rollNo,
	)
	if err == sql.ErrNoRows {
		return models.Student{}, ErrNotFound
	}
	if err != nil {
		return models.Student{}, errors.Wrap(err, "querying student")
	}
	return student, nil
}

func (s *SQLStore) ListStudents(ctx context.Context) ([]models.Student, error) {
	students := []models.Student{}
	err := s.db.SelectContext(ctx, &students,
		`SELECT roll_no, name, department FROM students ORDER BY roll_no`,
	)
	if err != nil {
		return nil, errors.Wrap(err, "listing students")
	}
	return students, nil
}

func (s *SQLStore) UpsertAttendance(ctx context.Context, rollNo, date string, status models.AttendanceStatus) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
        INSERT INTO attendance (roll_no, date, status)
        VALUES (?, ?, ?)
        ON CONFLICT (roll_no, date) DO UPDATE SET status = excluded.status
    `), rollNo, date, string(status))
	if err != nil {
		return errors.Wrap(err, "marking attendance")
	}
	return nil
}

func (s *SQLStore) ListAttendance(ctx context.Context, date string) ([]models.AttendanceRecord, error) {
	records := []models.AttendanceRecord{}
	err := s.db.SelectContext(ctx, &records, s.db.Rebind(`
        SELECT
            a.roll_no,
            COALESCE(s.name, '') AS name,
            a.date,
            a.status
        FROM attendance a
        LEFT JOIN students s ON s.roll_no = a.roll_no
        WHERE a.date = ?
        ORDER BY a.roll_no
    `), date)
	if err != nil {
		return nil, errors.Wrap(err, "listing attendance")
	}
	return records, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
