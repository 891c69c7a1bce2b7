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

type assignmentsController struct {
	app *App
}

func (c *assignmentsController) Page() Page { return PageAssignments }

func (c *assignmentsController) Mount(r chi.Router) {
	r.Get("/assignments", c.handleList)
	r.Get("/assignments/{id}", c.handleView)
	r.Group(func(r chi.Router) {
		r.Use(denyMutation)
		r.Post("/assignments", c.handleCreate)
		r.Put("/assignments/{id}", c.handleUpdate)
		r.Delete("/assignments/{id}", c.handleDelete)
	})
}

func (c *assignmentsController) handleList(w http.ResponseWriter, r *http.Request) {
	sess := model.SessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"page":        PageAssignments,
		"user":        badge(sess),
		"nav":         nav(sess),
		"assignments": c.app.Store.Assignments(),
	})
}

func (c *assignmentsController) handleView(w http.ResponseWriter, r *http.Request) {
	a, err := c.app.Store.GetAssignment(chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, http.StatusNotFound, "AssignmentNotFound")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"assignment": a})
}

type assignmentRequest struct {
	Title         string `json:"title" validate:"required"`
	Class         string `json:"class" validate:"required"`
	DueDate       string `json:"dueDate" validate:"required"`
	TotalStudents int    `json:"totalStudents"`
}

func (c *assignmentsController) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req assignmentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, r, http.StatusBadRequest, "AssignmentMissingFields")
		return
	}
	total := req.TotalStudents
	if total == 0 {
		total = 30
	}
	a, err := c.app.Store.AddAssignment(model.Assignment{
		Title:         strings.TrimSpace(req.Title),
		Class:         strings.TrimSpace(req.Class),
		DueDate:       strings.TrimSpace(req.DueDate),
		Submissions:   0,
		TotalStudents: total,
	})
	if err != nil {
		slog.Error("failed to create assignment", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"assignment": a})
}

type assignmentUpdateRequest struct {
	Title   string `json:"title" validate:"required"`
	DueDate string `json:"dueDate" validate:"required"`
}

func (c *assignmentsController) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req assignmentUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, r, http.StatusBadRequest, "AssignmentMissingFields")
		return
	}
	a, err := c.app.Store.GetAssignment(chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, http.StatusNotFound, "AssignmentNotFound")
		return
	}
	a.Title = strings.TrimSpace(req.Title)
	a.DueDate = strings.TrimSpace(req.DueDate)
	if err := c.app.Store.UpdateAssignment(a); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(w, r, http.StatusNotFound, "AssignmentNotFound")
			return
		}
		slog.Error("failed to update assignment", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	notice(w, r, http.StatusOK, "AssignmentUpdated", nil)
}

func (c *assignmentsController) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := c.app.Store.DeleteAssignment(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(w, r, http.StatusNotFound, "AssignmentNotFound")
			return
		}
		slog.Error("failed to delete assignment", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	notice(w, r, http.StatusOK, "AssignmentDeleted", nil)
}
