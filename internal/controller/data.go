package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/schooldesk/schooldesk/internal/model"
	"github.com/schooldesk/schooldesk/internal/store"
)

// dataController is the data-manager page: edit the chart series and keep
// a quick roster list with caller-assigned ids.
type dataController struct {
	app *App
}

func (c *dataController) Page() Page { return PageData }

func (c *dataController) Mount(r chi.Router) {
	r.Group(func(r chi.Router) {
		// The whole data manager is hidden from students and parents.
		r.Use(denyRoles(model.RoleStudent, model.RoleParent))
		r.Get("/data", c.handlePage)
		r.Put("/data/series/attendance", c.handleSaveAttendanceSeries)
		r.Put("/data/series/subjects", c.handleSaveSubjectAverages)
		r.Post("/data/students", c.handleQuickAdd)
		r.Delete("/data/students/{id}", c.handleQuickRemove)
	})
}

func (c *dataController) handlePage(w http.ResponseWriter, r *http.Request) {
	sess := model.SessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"page":             PageData,
		"user":             badge(sess),
		"nav":              nav(sess),
		"attendanceSeries": c.app.Store.AttendanceSeries(),
		"subjectAverages":  c.app.Store.SubjectAverages(),
		"students":         c.app.Store.Students(),
	})
}

type seriesRequest struct {
	Labels []string  `json:"labels" validate:"required,min=1"`
	Data   []float64 `json:"data" validate:"required,min=1"`
}

func (c *dataController) handleSaveAttendanceSeries(w http.ResponseWriter, r *http.Request) {
	var req seriesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}
	if err := c.app.Store.SetAttendanceSeries(model.Series{Labels: req.Labels, Data: req.Data}); err != nil {
		slog.Error("failed to save attendance series", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	notice(w, r, http.StatusOK, "SeriesSavedAttendance", nil)
}

func (c *dataController) handleSaveSubjectAverages(w http.ResponseWriter, r *http.Request) {
	var req seriesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}
	if err := c.app.Store.SetSubjectAverages(model.Series{Labels: req.Labels, Data: req.Data}); err != nil {
		slog.Error("failed to save subject averages", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	notice(w, r, http.StatusOK, "SeriesSavedSubjects", nil)
}

type quickAddRequest struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	ClassName string `json:"className"`
	Section   string `json:"section"`
}

// handleQuickAdd creates a roster entry with a caller-assigned id, the
// way the data manager form did.
func (c *dataController) handleQuickAdd(w http.ResponseWriter, r *http.Request) {
	var req quickAddRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, r, http.StatusBadRequest, "StudentMissingName")
		return
	}
	st, err := c.app.Store.AddStudent(model.Student{
		ID:        strings.TrimSpace(req.ID),
		Name:      strings.TrimSpace(req.Name),
		ClassName: strings.TrimSpace(req.ClassName),
		Section:   strings.TrimSpace(req.Section),
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

func (c *dataController) handleQuickRemove(w http.ResponseWriter, r *http.Request) {
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
