// Package controller binds one controller to each page identity. A
// controller renders its page payload from the store and handles the
// page's mutations; dispatch is a one-shot mount at router build time.
package controller

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	appI18n "github.com/schooldesk/schooldesk/internal/i18n"
	"github.com/schooldesk/schooldesk/internal/model"
	"github.com/schooldesk/schooldesk/internal/store"
)

// Page identifies one page of the application.
type Page string

const (
	PageHome           Page = "home"
	PageLogin          Page = "login"
	PageSignup         Page = "signup"
	PageData           Page = "data"
	PageStudents       Page = "students"
	PageStudent        Page = "student"
	PageAttendance     Page = "attendance"
	PageMarkAttendance Page = "mark-attendance"
	PageClasses        Page = "classes"
	PageAssignments    Page = "assignments"
	PageExams          Page = "exams"
	PageReports        Page = "reports"
)

// Pages lists every page identity in mount order.
func Pages() []Page {
	return []Page{
		PageHome, PageLogin, PageSignup, PageData,
		PageStudents, PageStudent, PageAttendance, PageMarkAttendance,
		PageClasses, PageAssignments, PageExams, PageReports,
	}
}

// Public reports whether the page is reachable without a session.
func (p Page) Public() bool {
	return p == PageLogin || p == PageSignup
}

// Controller is the per-page bundle of render and mutation handlers.
type Controller interface {
	Page() Page
	Mount(r chi.Router)
}

// Config holds runtime parameters set via CLI flags.
type Config struct {
	SecureCookies bool
}

// App is the application context constructed once at startup and handed
// to every controller. There is no other shared state.
type App struct {
	Store  *store.Store
	Config Config
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// controllerFor maps a page identity to its controller. The switch is
// exhaustive over Pages(); an unknown page is a programming error.
func (a *App) controllerFor(p Page) Controller {
	switch p {
	case PageHome:
		return &homeController{a}
	case PageLogin:
		return &loginController{a}
	case PageSignup:
		return &signupController{a}
	case PageData:
		return &dataController{a}
	case PageStudents:
		return &studentsController{a}
	case PageStudent:
		return &studentController{a}
	case PageAttendance:
		return &attendanceController{a}
	case PageMarkAttendance:
		return &markAttendanceController{a}
	case PageClasses:
		return &classesController{a}
	case PageAssignments:
		return &assignmentsController{a}
	case PageExams:
		return &examsController{a}
	case PageReports:
		return &reportsController{a}
	}
	panic("no controller for page " + string(p))
}

// Routes mounts every page controller: public pages behind the
// already-authenticated redirect, everything else behind the session
// check.
func (a *App) Routes(r chi.Router) {
	r.Group(func(pub chi.Router) {
		pub.Use(a.redirectIfAuthenticated)
		for _, p := range Pages() {
			if p.Public() {
				a.controllerFor(p).Mount(pub)
			}
		}
	})
	r.Group(func(priv chi.Router) {
		priv.Use(a.requireSession)
		for _, p := range Pages() {
			if !p.Public() {
				a.controllerFor(p).Mount(priv)
			}
		}
	})
}

// navLink is one navigation chrome entry.
type navLink struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// nav builds the navigation chrome for a session. The data manager entry
// is hidden from students and parents.
func nav(sess *model.Session) []navLink {
	links := []navLink{
		{"Home", "/"},
		{"Students", "/students"},
		{"Attendance", "/attendance"},
		{"Classes", "/classes"},
		{"Assignments", "/assignments"},
		{"Exams", "/exams"},
		{"Reports", "/reports"},
	}
	if sess != nil && sess.Role != model.RoleStudent && sess.Role != model.RoleParent {
		links = append(links, navLink{"Data Manager", "/data"})
	}
	return links
}

// userBadge is the navbar identity payload.
type userBadge struct {
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	Phone string     `json:"phone"`
}

func badge(sess *model.Session) *userBadge {
	if sess == nil {
		return nil
	}
	return &userBadge{Name: sess.Name, Email: sess.Email, Role: sess.Role, Phone: sess.Phone}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// fail answers a localized error body for the given message id.
func fail(w http.ResponseWriter, r *http.Request, status int, msgID string) {
	writeJSON(w, status, map[string]string{"error": appI18n.T(r.Context(), msgID)})
}

func failData(w http.ResponseWriter, r *http.Request, status int, msgID string, data map[string]any) {
	writeJSON(w, status, map[string]string{"error": appI18n.Td(r.Context(), msgID, data)})
}

// notice answers a localized confirmation message, optionally with extra
// payload fields.
func notice(w http.ResponseWriter, r *http.Request, status int, msgID string, extra map[string]any) {
	body := map[string]any{"message": appI18n.T(r.Context(), msgID)}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(w, status, body)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		fail(w, r, http.StatusBadRequest, "InvalidRequest")
		return false
	}
	return true
}
