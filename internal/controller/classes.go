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

type classesController struct {
	app *App
}

func (c *classesController) Page() Page { return PageClasses }

func (c *classesController) Mount(r chi.Router) {
	r.Get("/classes", c.handleList)
	r.Group(func(r chi.Router) {
		r.Use(denyMutation)
		r.Post("/classes", c.handleAdd)
		r.Post("/classes/{id}/sections", c.handleAddSection)
	})
	r.Group(func(r chi.Router) {
		// Editing and deleting classes is admin-only.
		r.Use(denyRoles(model.RoleStudent, model.RoleParent, model.RoleTeacher))
		r.Put("/classes/{id}", c.handleUpdate)
		r.Delete("/classes/{id}", c.handleDelete)
	})
}

func (c *classesController) handleList(w http.ResponseWriter, r *http.Request) {
	sess := model.SessionFromContext(r.Context())
	classes := c.app.Store.Classes()
	totalSections := 0
	for _, cls := range classes {
		totalSections += len(cls.Sections)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"page":         PageClasses,
		"user":         badge(sess),
		"nav":          nav(sess),
		"classes":      classes,
		"classCount":   len(classes),
		"sectionCount": totalSections,
	})
}

type classRequest struct {
	Name        string `json:"name" validate:"required"`
	SectionHead string `json:"sectionHead"`
}

func (c *classesController) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req classRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, r, http.StatusBadRequest, "ClassMissingName")
		return
	}
	cls, err := c.app.Store.AddClass(strings.TrimSpace(req.Name), strings.TrimSpace(req.SectionHead))
	if err != nil {
		if errors.Is(err, store.ErrDuplicateName) {
			fail(w, r, http.StatusConflict, "ClassDuplicateName")
			return
		}
		slog.Error("failed to add class", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"class": cls})
}

type sectionRequest struct {
	Section string `json:"section" validate:"required"`
}

func (c *classesController) handleAddSection(w http.ResponseWriter, r *http.Request) {
	var req sectionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, r, http.StatusBadRequest, "SectionMissingFields")
		return
	}
	cls, err := c.app.Store.AddSection(chi.URLParam(r, "id"), strings.TrimSpace(req.Section))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateName):
			fail(w, r, http.StatusConflict, "SectionDuplicate")
		case errors.Is(err, store.ErrNotFound):
			fail(w, r, http.StatusNotFound, "ClassNotFound")
		default:
			slog.Error("failed to add section", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"class": cls})
}

type classUpdateRequest struct {
	SectionHead string `json:"sectionHead"`
}

func (c *classesController) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req classUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	err := c.app.Store.UpdateClassHead(chi.URLParam(r, "id"), strings.TrimSpace(req.SectionHead))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(w, r, http.StatusNotFound, "ClassNotFound")
			return
		}
		slog.Error("failed to update class", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	notice(w, r, http.StatusOK, "ClassUpdated", nil)
}

func (c *classesController) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := c.app.Store.DeleteClass(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(w, r, http.StatusNotFound, "ClassNotFound")
			return
		}
		slog.Error("failed to delete class", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	notice(w, r, http.StatusOK, "ClassDeleted", nil)
}
