package store

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/schooldesk/schooldesk/internal/model"
)

// maxNumericSuffix returns the largest n across ids of the form
// <prefix><n>, or 0 when none match.
func maxNumericSuffix(ids []string, prefix string) int {
	max := 0
	for _, id := range ids {
		rest, ok := strings.CutPrefix(id, prefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > max {
			max = n
		}
	}
	return max
}

func defaultAttendanceSeries() model.Series {
	return model.Series{
		Labels: []string{"Mon", "Tue", "Wed", "Thu", "Fri"},
		Data:   []float64{80, 82, 85, 83, 84},
	}
}

func defaultSubjectAverages() model.Series {
	return model.Series{
		Labels: []string{"Math", "Sci", "Eng", "Hist", "Geo"},
		Data:   []float64{78, 81, 74, 69, 72},
	}
}

func defaultStudents() []model.Student {
	return []model.Student{
		{ID: "S123", Name: "Aisha Khan", ClassName: "Grade 8", Section: "A", Status: "Active"},
		{ID: "S124", Name: "John Lee", ClassName: "Grade 8", Section: "B", Status: "Active"},
	}
}

func defaultClasses() []model.Class {
	return []model.Class{
		{ID: "C1", Name: "Grade 8", Sections: []string{"A", "B", "C"}, SectionHead: "Ms. Patel"},
	}
}

func defaultAssignments() []model.Assignment {
	return []model.Assignment{
		{ID: "A1", Title: "Algebra Worksheet", Class: "Grade 8", DueDate: "2025-09-30", Submissions: 23, TotalStudents: 30},
	}
}

func defaultExams() []model.Exam {
	return []model.Exam{
		{ID: "E1", Title: "Term 1", Class: "Grade 8", Date: "2025-10-10"},
	}
}

// seedAccount holds a fixed development credential pair.
type seedAccount struct {
	name, email, password, phone string
	role                         model.Role
}

// EnsureDefaults seeds every empty collection with the stock demo data and
// advances the id counters past the seeded records. Existing data is never
// touched. The fixed credentials are a development convenience, not a
// security boundary.
func (s *Store) EnsureDefaults() error {
	if len(s.Accounts()) == 0 {
		seeds := []seedAccount{
			{"Admin", "admin@school.edu", "admin123", "+1 (555) 123-4567", model.RoleAdmin},
			{"Mr. Teacher", "teacher@school.edu", "teacher123", "+1 (555) 987-6543", model.RoleTeacher},
		}
		for _, sa := range seeds {
			if _, err := s.CreateAccount(sa.name, sa.email, sa.password, sa.role, sa.phone); err != nil {
				return fmt.Errorf("seed account %s: %w", sa.email, err)
			}
		}
		slog.Info("seeded default accounts", "count", len(seeds))
	}

	if _, ok, err := s.getRaw(keyStudents); err != nil {
		return err
	} else if !ok {
		if err := s.ReplaceStudents(defaultStudents()); err != nil {
			return fmt.Errorf("seed students: %w", err)
		}
	}
	if _, ok, err := s.getRaw(keyClasses); err != nil {
		return err
	} else if !ok {
		if err := s.ReplaceClasses(defaultClasses()); err != nil {
			return fmt.Errorf("seed classes: %w", err)
		}
	}
	if _, ok, err := s.getRaw(keyAssignments); err != nil {
		return err
	} else if !ok {
		if err := s.ReplaceAssignments(defaultAssignments()); err != nil {
			return fmt.Errorf("seed assignments: %w", err)
		}
	}
	if _, ok, err := s.getRaw(keyExams); err != nil {
		return err
	} else if !ok {
		if err := s.ReplaceExams(defaultExams()); err != nil {
			return fmt.Errorf("seed exams: %w", err)
		}
	}
	if _, ok, err := s.getRaw(keyAttendanceSeries); err != nil {
		return err
	} else if !ok {
		if err := s.SetAttendanceSeries(defaultAttendanceSeries()); err != nil {
			return fmt.Errorf("seed attendance series: %w", err)
		}
	}
	if _, ok, err := s.getRaw(keySubjectAverages); err != nil {
		return err
	} else if !ok {
		if err := s.SetSubjectAverages(defaultSubjectAverages()); err != nil {
			return fmt.Errorf("seed subject averages: %w", err)
		}
	}

	// Counters start past whatever is already present so seeded or imported
	// ids are never reissued.
	if err := s.BumpSeq("classes", maxNumericSuffix(classIDs(s.Classes()), "C")); err != nil {
		return err
	}
	if err := s.BumpSeq("assignments", maxNumericSuffix(assignmentIDs(s.Assignments()), "A")); err != nil {
		return err
	}
	if err := s.BumpSeq("exams", maxNumericSuffix(examIDs(s.Exams()), "E")); err != nil {
		return err
	}
	return nil
}

func classIDs(list []model.Class) []string {
	ids := make([]string, len(list))
	for i, c := range list {
		ids[i] = c.ID
	}
	return ids
}

func assignmentIDs(list []model.Assignment) []string {
	ids := make([]string, len(list))
	for i, a := range list {
		ids[i] = a.ID
	}
	return ids
}

func examIDs(list []model.Exam) []string {
	ids := make([]string, len(list))
	for i, e := range list {
		ids[i] = e.ID
	}
	return ids
}
