package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schooldesk/schooldesk/internal/model"
)

type homeController struct {
	app *App
}

func (c *homeController) Page() Page { return PageHome }

func (c *homeController) Mount(r chi.Router) {
	r.Get("/", c.handleDashboard)
	r.Post("/logout", c.handleLogout)
}

// handleDashboard renders the home page: navigation chrome, the user
// badge, and the two dashboard chart series (attendance line, subject
// averages bar).
func (c *homeController) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := model.SessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"page":             PageHome,
		"user":             badge(sess),
		"nav":              nav(sess),
		"attendanceSeries": c.app.Store.AttendanceSeries(),
		"subjectAverages":  c.app.Store.SubjectAverages(),
	})
}

func (c *homeController) handleLogout(w http.ResponseWriter, r *http.Request) {
	_ = c.app.Store.ClearSession()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.app.Config.SecureCookies,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
