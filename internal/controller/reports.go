package controller

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/schooldesk/schooldesk/internal/model"
	"github.com/schooldesk/schooldesk/internal/store"
)

// reportsController renders the reports page (chart series plus the
// alerts table) and owns the export/import endpoints.
type reportsController struct {
	app *App
}

func (c *reportsController) Page() Page { return PageReports }

func (c *reportsController) Mount(r chi.Router) {
	r.Get("/reports", c.handlePage)
	r.Get("/reports/export", c.handleExport)
	r.With(denyMutation).Post("/reports/import", c.handleImport)
}

// alert is one row of the reports alerts table. Alerts are a static seed;
// dismissing one is a page-local act, nothing is persisted.
type alert struct {
	ID      string `json:"id"`
	Alert   string `json:"alert"`
	Student string `json:"student"`
	Date    string `json:"date"`
}

func seedAlerts() []alert {
	return []alert{
		{ID: "A1", Alert: "Low Attendance (65%)", Student: "Priya N", Date: "2025-09-17"},
		{ID: "A2", Alert: "Missing Assignment", Student: "John Lee", Date: "2025-09-18"},
		{ID: "A3", Alert: "Upcoming Exam", Student: "Aisha Khan", Date: "2025-09-20"},
	}
}

func (c *reportsController) handlePage(w http.ResponseWriter, r *http.Request) {
	sess := model.SessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"page":             PageReports,
		"user":             badge(sess),
		"nav":              nav(sess),
		"attendanceSeries": c.app.Store.AttendanceSeries(),
		"subjectAverages":  c.app.Store.SubjectAverages(),
		"alerts":           seedAlerts(),
	})
}

// handleExport streams the full data document as a dated JSON download.
func (c *reportsController) handleExport(w http.ResponseWriter, r *http.Request) {
	export, err := c.app.Store.ExportAll()
	if err != nil {
		slog.Error("export failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	filename := "school_data_" + time.Now().Format("2006-01-02") + ".json"
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		slog.Error("encode export", "error", err)
	}
}

// handleImport accepts an uploaded export document and replaces the
// collections it names; collections absent from the file stay untouched.
func (c *reportsController) handleImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		fail(w, r, http.StatusBadRequest, "ImportInvalidFile")
		return
	}
	file, _, err := r.FormFile("data_file")
	if err != nil {
		fail(w, r, http.StatusBadRequest, "ImportInvalidFile")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		slog.Error("failed to read upload", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data, err := store.ParseExport(raw)
	if err != nil {
		fail(w, r, http.StatusBadRequest, "ImportInvalidFile")
		return
	}
	if err := c.app.Store.ImportAll(data); err != nil {
		slog.Error("import failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	notice(w, r, http.StatusOK, "ImportSuccess", nil)
}
