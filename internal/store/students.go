package store

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/schooldesk/schooldesk/internal/model"
)

const keyStudents = "students"

// studentIDFloor keeps auto-assigned ids above the seeded roster, so the
// first generated id is S125 even on an empty collection.
const studentIDFloor = 124

var studentIDPattern = regexp.MustCompile(`^S(\d+)$`)

// Students returns the full roster.
func (s *Store) Students() []model.Student {
	return Get(s, keyStudents, []model.Student{})
}

// ReplaceStudents overwrites the whole roster.
func (s *Store) ReplaceStudents(list []model.Student) error {
	return Set(s, keyStudents, list)
}

// NextStudentID scans existing S<digits> ids and returns one past the
// maximum numeric suffix.
func (s *Store) NextStudentID() string {
	return nextStudentID(s.Students())
}

func nextStudentID(students []model.Student) string {
	max := studentIDFloor
	for _, st := range students {
		m := studentIDPattern.FindStringSubmatch(st.ID)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}
	return "S" + strconv.Itoa(max+1)
}

// AddStudent appends a student to the roster. An empty id gets an
// auto-assigned one; a caller-assigned id must not collide (exact match).
// The collection is unchanged on rejection.
func (s *Store) AddStudent(st model.Student) (model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := get(s, keyStudents, []model.Student{})
	if err != nil {
		return model.Student{}, err
	}
	if st.ID == "" {
		st.ID = nextStudentID(students)
	} else {
		for _, have := range students {
			if have.ID == st.ID {
				return model.Student{}, fmt.Errorf("student %s: %w", st.ID, ErrDuplicateID)
			}
		}
	}
	if st.Status == "" {
		st.Status = "Active"
	}
	if err := set(s, keyStudents, append(students, st)); err != nil {
		return model.Student{}, err
	}
	slog.Info("added student", "id", st.ID, "name", st.Name)
	return st, nil
}

// GetStudent returns the student with the given id.
func (s *Store) GetStudent(id string) (model.Student, error) {
	for _, st := range s.Students() {
		if st.ID == id {
			return st, nil
		}
	}
	return model.Student{}, fmt.Errorf("student %s: %w", id, ErrNotFound)
}

// UpdateStudent replaces the record with the same id.
func (s *Store) UpdateStudent(st model.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := get(s, keyStudents, []model.Student{})
	if err != nil {
		return err
	}
	for i, have := range students {
		if have.ID == st.ID {
			if st.Status == "" {
				st.Status = "Active"
			}
			students[i] = st
			return set(s, keyStudents, students)
		}
	}
	return fmt.Errorf("student %s: %w", st.ID, ErrNotFound)
}

// DeleteStudent removes the record with the given id. Attendance rows
// referencing the id are left in place.
func (s *Store) DeleteStudent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := get(s, keyStudents, []model.Student{})
	if err != nil {
		return err
	}
	next := students[:0:0]
	for _, st := range students {
		if st.ID != id {
			next = append(next, st)
		}
	}
	if len(next) == len(students) {
		return fmt.Errorf("student %s: %w", id, ErrNotFound)
	}
	return set(s, keyStudents, next)
}

// SearchStudents filters the roster by a case-insensitive substring match
// over id, name, class, and section. An empty query returns everything.
func (s *Store) SearchStudents(query string) []model.Student {
	students := s.Students()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return students
	}
	var out []model.Student
	for _, st := range students {
		if strings.Contains(strings.ToLower(st.ID), q) ||
			strings.Contains(strings.ToLower(st.Name), q) ||
			strings.Contains(strings.ToLower(st.ClassName), q) ||
			strings.Contains(strings.ToLower(st.Section), q) {
			out = append(out, st)
		}
	}
	return out
}

// StudentsInSection returns students whose class and section both match
// exactly, in roster order.
func (s *Store) StudentsInSection(className, section string) []model.Student {
	var out []model.Student
	for _, st := range s.Students() {
		if st.ClassName == className && st.Section == section {
			out = append(out, st)
		}
	}
	return out
}
