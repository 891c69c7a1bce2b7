package store

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/schooldesk/schooldesk/internal/model"
)

func TestAddStudentAutoID(t *testing.T) {
	s := newTestStore(t)
	seedTestAccounts(t, s)

	// Seeded roster ends at S124; the first generated id is S125.
	st, err := s.AddStudent(model.Student{Name: "Zara Ahmed", ClassName: "Grade 8", Section: "A"})
	if err != nil {
		t.Fatalf("AddStudent: %v", err)
	}
	if st.ID != "S125" {
		t.Errorf("expected id S125, got %s", st.ID)
	}
	if st.Status != "Active" {
		t.Errorf("expected default status Active, got %q", st.Status)
	}
	if got := len(s.Students()); got != 3 {
		t.Errorf("expected 3 students, got %d", got)
	}

	// Ids keep climbing even after the newest record is deleted.
	if err := s.DeleteStudent("S125"); err != nil {
		t.Fatalf("DeleteStudent: %v", err)
	}
	st, err = s.AddStudent(model.Student{Name: "Omar Diaz"})
	if err != nil {
		t.Fatalf("AddStudent after delete: %v", err)
	}
	if st.ID != "S125" {
		// Auto ids derive from the max suffix still present, so the slot
		// freed by the delete is reused.
		t.Errorf("expected id S125 after delete, got %s", st.ID)
	}
}

func TestAddStudentAutoIDEmptyRoster(t *testing.T) {
	s := newTestStore(t)

	// No seeding: the floor still keeps generated ids above S124.
	st, err := s.AddStudent(model.Student{Name: "First"})
	if err != nil {
		t.Fatalf("AddStudent: %v", err)
	}
	if st.ID != "S125" {
		t.Errorf("expected id S125 on empty roster, got %s", st.ID)
	}
}

func TestAddStudentDuplicateID(t *testing.T) {
	s := newTestStore(t)
	seedTestAccounts(t, s)

	before := s.Students()
	_, err := s.AddStudent(model.Student{ID: "S123", Name: "Clone"})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if got := len(s.Students()); got != len(before) {
		t.Errorf("expected roster unchanged after rejection, got %d records", got)
	}

	// Ids differing only in case do not collide.
	st, err := s.AddStudent(model.Student{ID: "s123", Name: "Lowercase"})
	if err != nil {
		t.Fatalf("AddStudent s123: %v", err)
	}
	if st.ID != "s123" {
		t.Errorf("expected caller-assigned id preserved, got %s", st.ID)
	}
}

func TestUpdateAndDeleteStudent(t *testing.T) {
	s := newTestStore(t)
	seedTestAccounts(t, s)

	if err := s.UpdateStudent(model.Student{ID: "S123", Name: "Aisha K.", ClassName: "Grade 9", Section: "B"}); err != nil {
		t.Fatalf("UpdateStudent: %v", err)
	}
	st, err := s.GetStudent("S123")
	if err != nil {
		t.Fatalf("GetStudent: %v", err)
	}
	if st.Name != "Aisha K." || st.ClassName != "Grade 9" {
		t.Errorf("unexpected record after update: %+v", st)
	}

	if err := s.UpdateStudent(model.Student{ID: "S999"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound updating missing id, got %v", err)
	}
	if err := s.DeleteStudent("S999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting missing id, got %v", err)
	}

	if err := s.DeleteStudent("S124"); err != nil {
		t.Fatalf("DeleteStudent: %v", err)
	}
	if _, err := s.GetStudent("S124"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSearchStudents(t *testing.T) {
	s := newTestStore(t)
	seedTestAccounts(t, s)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"empty query returns all", "", 2},
		{"by name fragment", "aisha", 1},
		{"by id", "s124", 1},
		{"by class", "grade 8", 2},
		{"by section", "B", 1},
		{"no match", "zzz", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.SearchStudents(tt.query)
			if len(got) != tt.want {
				t.Errorf("expected %d results, got %d", tt.want, len(got))
			}
		})
	}
}

func TestConcurrentAddStudents(t *testing.T) {
	s := newTestStore(t)

	// Every add must survive concurrent writers; a lost read-modify-write
	// would drop roster entries.
	const workers, perWorker = 8, 25
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := fmt.Sprintf("S%d", 1000+w*perWorker+i)
				if _, err := s.AddStudent(model.Student{ID: id, Name: "Bulk " + id}); err != nil {
					t.Errorf("AddStudent %s: %v", id, err)
				}
			}
		}(w)
	}
	wg.Wait()

	if got := len(s.Students()); got != workers*perWorker {
		t.Fatalf("expected %d students after concurrent adds, got %d", workers*perWorker, got)
	}
}

func TestConcurrentDuplicateID(t *testing.T) {
	s := newTestStore(t)

	// Racing adds of the same caller-assigned id admit exactly one record.
	const workers = 8
	var wg sync.WaitGroup
	var admitted atomic.Int32
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddStudent(model.Student{ID: "S900", Name: "Race"})
			switch {
			case err == nil:
				admitted.Add(1)
			case !errors.Is(err, ErrDuplicateID):
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := admitted.Load(); got != 1 {
		t.Errorf("expected exactly 1 admitted add, got %d", got)
	}
	if got := len(s.Students()); got != 1 {
		t.Errorf("expected 1 roster record, got %d", got)
	}
}

func TestStudentsInSection(t *testing.T) {
	s := newTestStore(t)
	seedTestAccounts(t, s)

	got := s.StudentsInSection("Grade 8", "A")
	if len(got) != 1 || got[0].ID != "S123" {
		t.Errorf("expected [S123], got %+v", got)
	}

	// Section matching is exact, not case-insensitive.
	if got := s.StudentsInSection("Grade 8", "a"); len(got) != 0 {
		t.Errorf("expected no match for lowercase section, got %+v", got)
	}
	if got := s.StudentsInSection("Grade 9", "A"); len(got) != 0 {
		t.Errorf("expected no match for other class, got %+v", got)
	}
}
