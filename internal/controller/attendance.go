package controller

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/schooldesk/schooldesk/internal/model"
)

// attendanceController is the selection step of the attendance flow: pick
// class, section, and date, then move on to the marking page.
type attendanceController struct {
	app *App
}

func (c *attendanceController) Page() Page { return PageAttendance }

func (c *attendanceController) Mount(r chi.Router) {
	r.Get("/attendance", c.handlePage)
	r.With(denyMutation).Post("/attendance", c.handleSelect)
}

func restrictedRole(sess *model.Session) bool {
	return sess != nil && (sess.Role == model.RoleStudent || sess.Role == model.RoleParent)
}

func (c *attendanceController) handlePage(w http.ResponseWriter, r *http.Request) {
	sess := model.SessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"page":        PageAttendance,
		"user":        badge(sess),
		"nav":         nav(sess),
		"classes":     c.app.Store.Classes(),
		"defaultDate": time.Now().Format("2006-01-02"),
		"restricted":  restrictedRole(sess),
	})
}

type attendanceSelectRequest struct {
	Date    string `json:"date"`
	Class   string `json:"class"`
	Section string `json:"section"`
}

// handleSelect validates the picks and answers with the marking-page
// location, date defaulting to today.
func (c *attendanceController) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req attendanceSelectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Class) == "" || strings.TrimSpace(req.Section) == "" {
		fail(w, r, http.StatusBadRequest, "AttendanceSelectMissing")
		return
	}
	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	params := url.Values{}
	params.Set("date", date)
	params.Set("class", req.Class)
	params.Set("section", req.Section)
	writeJSON(w, http.StatusOK, map[string]any{
		"location": "/attendance/mark?" + params.Encode(),
	})
}

// markAttendanceController is the marking step: one present/absent toggle
// per student of the selected class and section, saved wholesale per date.
type markAttendanceController struct {
	app *App
}

func (c *markAttendanceController) Page() Page { return PageMarkAttendance }

func (c *markAttendanceController) Mount(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(denyRoles(model.RoleStudent, model.RoleParent))
		r.Get("/attendance/mark", c.handlePage)
		r.Post("/attendance/mark", c.handleSave)
	})
}

func (c *markAttendanceController) handlePage(w http.ResponseWriter, r *http.Request) {
	sess := model.SessionFromContext(r.Context())
	q := r.URL.Query()
	date, class, section := q.Get("date"), q.Get("class"), q.Get("section")
	if date == "" || class == "" || section == "" {
		// Incomplete context falls back to the selection page.
		http.Redirect(w, r, "/attendance", http.StatusSeeOther)
		return
	}

	students := c.app.Store.StudentsInSection(class, section)
	toggles := make([]attendanceToggle, len(students))
	for i, st := range students {
		toggles[i] = attendanceToggle{StudentID: st.ID, Name: st.Name, Present: true}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"page":     PageMarkAttendance,
		"user":     badge(sess),
		"nav":      nav(sess),
		"date":     date,
		"class":    class,
		"section":  section,
		"students": toggles,
	})
}

// attendanceToggle is one row of the marking table; everyone starts present.
type attendanceToggle struct {
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	Present   bool   `json:"present"`
}

type attendanceSaveRequest struct {
	Date    string          `json:"date" validate:"required"`
	Class   string          `json:"class" validate:"required"`
	Section string          `json:"section" validate:"required"`
	Toggles map[string]bool `json:"toggles"`
}

// handleSave writes exactly one record per student of the class/section,
// present unless toggled off, replacing any prior save for the date.
func (c *markAttendanceController) handleSave(w http.ResponseWriter, r *http.Request) {
	var req attendanceSaveRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, r, http.StatusBadRequest, "AttendanceSelectMissing")
		return
	}

	students := c.app.Store.StudentsInSection(req.Class, req.Section)
	records := make([]model.AttendanceRecord, len(students))
	for i, st := range students {
		present, toggled := req.Toggles[st.ID]
		records[i] = model.AttendanceRecord{
			StudentID: st.ID,
			Present:   !toggled || present,
			Date:      req.Date,
		}
	}
	if err := c.app.Store.SaveAttendanceDay(req.Date, records); err != nil {
		slog.Error("failed to save attendance", "date", req.Date, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	notice(w, r, http.StatusOK, "AttendanceSaved", map[string]any{"saved": len(records)})
}
