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

type examsController struct {
	app *App
}

func (c *examsController) Page() Page { return PageExams }

func (c *examsController) Mount(r chi.Router) {
	r.Get("/exams", c.handleList)
	r.Get("/exams/{id}", c.handleView)
	r.Group(func(r chi.Router) {
		r.Use(denyMutation)
		r.Post("/exams", c.handleSchedule)
		r.Put("/exams/{id}", c.handleUpdate)
		r.Delete("/exams/{id}", c.handleDelete)
	})
}

func (c *examsController) handleList(w http.ResponseWriter, r *http.Request) {
	sess := model.SessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"page":  PageExams,
		"user":  badge(sess),
		"nav":   nav(sess),
		"exams": c.app.Store.Exams(),
	})
}

func (c *examsController) handleView(w http.ResponseWriter, r *http.Request) {
	e, err := c.app.Store.GetExam(chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, http.StatusNotFound, "ExamNotFound")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"exam": e})
}

type examRequest struct {
	Title string `json:"title" validate:"required"`
	Class string `json:"class" validate:"required"`
	Date  string `json:"date" validate:"required"`
}

func (c *examsController) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var req examRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, r, http.StatusBadRequest, "ExamMissingFields")
		return
	}
	e, err := c.app.Store.AddExam(model.Exam{
		Title: strings.TrimSpace(req.Title),
		Class: strings.TrimSpace(req.Class),
		Date:  strings.TrimSpace(req.Date),
	})
	if err != nil {
		slog.Error("failed to schedule exam", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"exam": e})
}

type examUpdateRequest struct {
	Date string `json:"date" validate:"required"`
}

func (c *examsController) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req examUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, r, http.StatusBadRequest, "ExamMissingFields")
		return
	}
	e, err := c.app.Store.GetExam(chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, http.StatusNotFound, "ExamNotFound")
		return
	}
	e.Date = strings.TrimSpace(req.Date)
	if err := c.app.Store.UpdateExam(e); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(w, r, http.StatusNotFound, "ExamNotFound")
			return
		}
		slog.Error("failed to update exam", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	notice(w, r, http.StatusOK, "ExamUpdated", nil)
}

func (c *examsController) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := c.app.Store.DeleteExam(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(w, r, http.StatusNotFound, "ExamNotFound")
			return
		}
		slog.Error("failed to delete exam", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	notice(w, r, http.StatusOK, "ExamDeleted", nil)
}
