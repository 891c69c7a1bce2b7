package store

import (
	"fmt"
	"strconv"

	"github.com/schooldesk/schooldesk/internal/model"
)

const (
	keyAssignments = "assignments"
	keyExams       = "exams"
)

// Assignments returns all assignments.
func (s *Store) Assignments() []model.Assignment {
	return Get(s, keyAssignments, []model.Assignment{})
}

// ReplaceAssignments overwrites the whole collection.
func (s *Store) ReplaceAssignments(list []model.Assignment) error {
	return Set(s, keyAssignments, list)
}

// AddAssignment creates an assignment with an A<n> id from the persisted
// counter.
func (s *Store) AddAssignment(a model.Assignment) (model.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := get(s, keyAssignments, []model.Assignment{})
	if err != nil {
		return model.Assignment{}, err
	}
	n, err := s.nextSeq("assignments")
	if err != nil {
		return model.Assignment{}, fmt.Errorf("assignment id: %w", err)
	}
	a.ID = "A" + strconv.Itoa(n)
	if err := set(s, keyAssignments, append(list, a)); err != nil {
		return model.Assignment{}, err
	}
	return a, nil
}

// GetAssignment returns the assignment with the given id.
func (s *Store) GetAssignment(id string) (model.Assignment, error) {
	for _, a := range s.Assignments() {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Assignment{}, fmt.Errorf("assignment %s: %w", id, ErrNotFound)
}

// UpdateAssignment replaces the record with the same id.
func (s *Store) UpdateAssignment(a model.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := get(s, keyAssignments, []model.Assignment{})
	if err != nil {
		return err
	}
	for i, have := range list {
		if have.ID == a.ID {
			list[i] = a
			return set(s, keyAssignments, list)
		}
	}
	return fmt.Errorf("assignment %s: %w", a.ID, ErrNotFound)
}

// DeleteAssignment removes the record with the given id.
func (s *Store) DeleteAssignment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := get(s, keyAssignments, []model.Assignment{})
	if err != nil {
		return err
	}
	next := list[:0:0]
	for _, a := range list {
		if a.ID != id {
			next = append(next, a)
		}
	}
	if len(next) == len(list) {
		return fmt.Errorf("assignment %s: %w", id, ErrNotFound)
	}
	return set(s, keyAssignments, next)
}

// Exams returns all exams.
func (s *Store) Exams() []model.Exam {
	return Get(s, keyExams, []model.Exam{})
}

// ReplaceExams overwrites the whole collection.
func (s *Store) ReplaceExams(list []model.Exam) error {
	return Set(s, keyExams, list)
}

// AddExam schedules an exam with an E<n> id from the persisted counter.
func (s *Store) AddExam(e model.Exam) (model.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := get(s, keyExams, []model.Exam{})
	if err != nil {
		return model.Exam{}, err
	}
	n, err := s.nextSeq("exams")
	if err != nil {
		return model.Exam{}, fmt.Errorf("exam id: %w", err)
	}
	e.ID = "E" + strconv.Itoa(n)
	if err := set(s, keyExams, append(list, e)); err != nil {
		return model.Exam{}, err
	}
	return e, nil
}

// GetExam returns the exam with the given id.
func (s *Store) GetExam(id string) (model.Exam, error) {
	for _, e := range s.Exams() {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Exam{}, fmt.Errorf("exam %s: %w", id, ErrNotFound)
}

// UpdateExam replaces the record with the same id.
func (s *Store) UpdateExam(e model.Exam) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := get(s, keyExams, []model.Exam{})
	if err != nil {
		return err
	}
	for i, have := range list {
		if have.ID == e.ID {
			list[i] = e
			return set(s, keyExams, list)
		}
	}
	return fmt.Errorf("exam %s: %w", e.ID, ErrNotFound)
}

// DeleteExam removes the record with the given id.
func (s *Store) DeleteExam(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := get(s, keyExams, []model.Exam{})
	if err != nil {
		return err
	}
	next := list[:0:0]
	for _, e := range list {
		if e.ID != id {
			next = append(next, e)
		}
	}
	if len(next) == len(list) {
		return fmt.Errorf("exam %s: %w", id, ErrNotFound)
	}
	return set(s, keyExams, next)
}
