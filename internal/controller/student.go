package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schooldesk/schooldesk/internal/model"
	"github.com/schooldesk/schooldesk/internal/store"
)

// studentController renders the per-student detail page: the record, its
// saved attendance history, and a progress series for the chart.
type studentController struct {
	app *App
}

func (c *studentController) Page() Page { return PageStudent }

func (c *studentController) Mount(r chi.Router) {
	r.Get("/students/{id}", c.handleDetail)
}

func (c *studentController) handleDetail(w http.ResponseWriter, r *http.Request) {
	sess := model.SessionFromContext(r.Context())
	id := chi.URLParam(r, "id")

	st, err := c.app.Store.GetStudent(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(w, r, http.StatusNotFound, "StudentNotFound")
			return
		}
		slog.Error("failed to load student", "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	history, err := c.app.Store.StudentAttendance(id)
	if err != nil {
		slog.Error("failed to load attendance history", "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"page":       PageStudent,
		"user":       badge(sess),
		"nav":        nav(sess),
		"student":    st,
		"attendance": history,
		"progress":   progressSeries(history),
	})
}

// progressSeries charts the student's attendance by date: 100 for a
// present day, 0 for an absent one. With no saved history the chart falls
// back to the stock term-progress placeholder.
func progressSeries(history []model.AttendanceRecord) model.Series {
	if len(history) == 0 {
		return model.Series{
			Labels: []string{"T1", "T2", "T3"},
			Data:   []float64{72, 76, 81},
		}
	}
	series := model.Series{
		Labels: make([]string, 0, len(history)),
		Data:   make([]float64, 0, len(history)),
	}
	for _, rec := range history {
		series.Labels = append(series.Labels, rec.Date)
		if rec.Present {
			series.Data = append(series.Data, 100)
		} else {
			series.Data = append(series.Data, 0)
		}
	}
	return series
}
