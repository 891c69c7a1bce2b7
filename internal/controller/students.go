package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/schooldesk/schooldesk/internal/model"
	"github.com/schooldesk/schooldesk/internal/store"
)

type studentsController struct {
	app *App
}

func (c *studentsController) Page() Page { return PageStudents }

func (c *studentsController) Mount(r chi.Router) {
	r.Get("/students", c.handleList)
	r.Group(func(r chi.Router) {
		r.Use(denyMutation)
		r.Post("/students", c.handleAdd)
		r.Put("/students/{id}", c.handleUpdate)
		r.Delete("/students/{id}", c.handleDelete)
	})
}

// handleList renders the students page: the (optionally filtered) roster,
// the class/section groups, and the classes available to the pickers.
func (c *studentsController) handleList(w http.ResponseWriter, r *http.Request) {
	sess := model.SessionFromContext(r.Context())
	students := c.app.Store.SearchStudents(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, map[string]any{
		"page":     PageStudents,
		"user":     badge(sess),
		"nav":      nav(sess),
		"students": students,
		"grouped":  groupBySection(c.app.Store.Students()),
		"classes":  c.app.Store.Classes(),
	})
}

// sectionGroup is one class/section bucket of the grouped view.
type sectionGroup struct {
	ClassName string          `json:"className"`
	Section   string          `json:"section"`
	Students  []model.Student `json:"students"`
}

// groupBySection buckets students by class then section, both sorted.
// Students without a class land under "Unassigned".
func groupBySection(students []model.Student) []sectionGroup {
	buckets := map[string]map[string][]model.Student{}
	for _, st := range students {
		cls := st.ClassName
		if cls == "" {
			cls = "Unassigned"
		}
		if buckets[cls] == nil {
			buckets[cls] = map[string][]model.Student{}
		}
		buckets[cls][st.Section] = append(buckets[cls][st.Section], st)
	}
	var out []sectionGroup
	for _, cls := range sortedKeys(buckets) {
		for _, sec := range sortedKeys(buckets[cls]) {
			out = append(out, sectionGroup{ClassName: cls, Section: sec, Students: buckets[cls][sec]})
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type studentRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name" validate:"required"`
	ClassName string `json:"className"`
	Section   string `json:"section"`
	Status    string `json:"status"`
}

// handleAdd creates a student. The id is auto-assigned unless the caller
// supplies one; class and section fall back to the form defaults.
func (c *studentsController) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req studentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, r, http.StatusBadRequest, "StudentMissingName")
		return
	}
	if req.ClassName == "" {
		req.ClassName = "Grade 8"
	}
	if req.Section == "" {
		req.Section = "A"
	}
	st, err := c.app.Store.AddStudent(model.Student{
		ID:        strings.TrimSpace(req.ID),
		Name:      strings.TrimSpace(req.Name),
		ClassName: req.ClassName,
		Section:   req.Section,
		Status:    req.Status,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateID) {
			fail(w, r, http.StatusConflict, "StudentDuplicateID")
			return
		}
		slog.Error("failed to add student", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"student": st})
}

func (c *studentsController) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req studentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, r, http.StatusBadRequest, "StudentMissingName")
		return
	}
	err := c.app.Store.UpdateStudent(model.Student{
		ID:        chi.URLParam(r, "id"),
		Name:      strings.TrimSpace(req.Name),
		ClassName: req.ClassName,
		Section:   req.Section,
		Status:    req.Status,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(w, r, http.StatusNotFound, "StudentNotFound")
			return
		}
		slog.Error("failed to update student", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	notice(w, r, http.StatusOK, "StudentUpdated", nil)
}

func (c *studentsController) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := c.app.Store.DeleteStudent(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(w, r, http.StatusNotFound, "StudentNotFound")
			return
		}
		slog.Error("failed to delete student", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	notice(w, r, http.StatusOK, "StudentDeleted", nil)
}
