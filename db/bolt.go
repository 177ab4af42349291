package db

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"student_attendance/models"
)

var Buckets = map[string][]byte{
	"users":      []byte("Users"),
	"students":   []byte("Students"),
	"attendance": []byte("Attendance"),
}

// BoltStore keeps every record as JSON in a bbolt bucket.
// Attendance keys are "<date>/<rollNo>" so one day is a contiguous key range.
type BoltStore struct {
	db *bbolt.DB
}

var _ Store = (*BoltStore)(nil)

// boltUser keeps the password hash that models.User hides from JSON.
type boltUser struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

type boltMark struct {
	RollNo string                  `json:"rollNo"`
	Date   string                  `json:"date"`
	Status models.AttendanceStatus `json:"status"`
}

// OpenBolt opens (or creates) the DB file and its buckets
func OpenBolt(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "creating data directory")
	}

	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "opening bolt file")
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range Buckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating buckets")
	}

	return &BoltStore{db: db}, nil
}

func attendanceKey(date, rollNo string) []byte {
	return []byte(date + "/" + rollNo)
}

func put(tx *bbolt.Tx, bucket string, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return tx.Bucket(Buckets[bucket]).Put([]byte(key), data)
}

func get(tx *bbolt.Tx, bucket string, key string, v interface{}) error {
	data := tx.Bucket(Buckets[bucket]).Get([]byte(key))
	if data == nil {
		return ErrNotFound
	}
	return json.Unmarshal(data, v)
}

func (s *BoltStore) CreateUser(_ context.Context, username, passwordHash string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(Buckets["users"])
		if b.Get([]byte(username)) != nil {
			return ErrDuplicate
		}
		id, err := b.NextSequence()
		if err != nil {
			return err
		}
		return put(tx, "users", username, boltUser{ID: int(id), Username: username, PasswordHash: passwordHash})
	})
}

func (s *BoltStore) GetUser(_ context.Context, username string) (models.User, error) {
	var user boltUser
	err := s.db.View(func(tx *bbolt.Tx) error {
		return get(tx, "users", username, &user)
	})
	if err != nil {
		return models.User{}, err
	}
	return models.User{ID: user.ID, Username: user.Username, PasswordHash: user.PasswordHash}, nil
}

func (s *BoltStore) CreateStudent(_ context.Context, student models.Student) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(Buckets["students"]).Get([]byte(student.RollNo)) != nil {
			return ErrDuplicate
		}
		return put(tx, "students", student.RollNo, student)
	})
}

func (s *BoltStore) GetStudent(_ context.Context, rollNo string) (models.Student, error) {
	var student models.Student
	err := s.db.View(func(tx *bbolt.Tx) error {
		return get(tx, "students", rollNo, &student)
	})
	return student, err
}

func (s *BoltStore) ListStudents(_ context.Context) ([]models.Student, error) {
	students := []models.Student{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(Buckets["students"]).ForEach(func(_, v []byte) error {
			var student models.Student
			if err := json.Unmarshal(v, &student); err != nil {
				return err
			}
			students = append(students, student)
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "listing students")
	}
	return students, nil
}

func (s *BoltStore) UpsertAttendance(_ context.Context, rollNo, date string, status models.AttendanceStatus) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		mark := boltMark{RollNo: rollNo, Date: date, Status: status}
		return put(tx, "attendance", string(attendanceKey(date, rollNo)), mark)
	})
}

func (s *BoltStore) ListAttendance(_ context.Context, date string) ([]models.AttendanceRecord, error) {
	records := []models.AttendanceRecord{}
	prefix := []byte(date + "/")
	err := s.db.View(func(tx *bbolt.Tx) error {
		students := tx.Bucket(Buckets["students"])
		c := tx.Bucket(Buckets["attendance"]).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var mark boltMark
			if err := json.Unmarshal(v, &mark); err != nil {
				return err
			}
			record := models.AttendanceRecord{RollNo: mark.RollNo, Date: mark.Date, Status: mark.Status}
			if data := students.Get([]byte(mark.RollNo)); data != nil {
				var student models.Student
				if err := json.Unmarshal(data, &student); err == nil {
					record.Name = student.Name
				}
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "listing attendance")
	}
	return records, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
