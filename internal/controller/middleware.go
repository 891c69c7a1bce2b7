package controller

import (
	"net/http"

	"github.com/schooldesk/schooldesk/internal/model"
)

const sessionCookieName = "session"

// requireSession checks the session cookie against the session slot. A
// missing or stale session redirects to the login page; there is no
// fallback identity.
func (a *App) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			a.redirectToLogin(w, r)
			return
		}
		sess := a.Store.CurrentSession(cookie.Value)
		if sess == nil {
			a.redirectToLogin(w, r)
			return
		}
		ctx := model.ContextWithSession(r.Context(), sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// redirectIfAuthenticated sends authenticated visitors of the public
// pages (login, signup) back to the home page. Mutation requests pass
// through so a logged-in session can be replaced.
func (a *App) redirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && a.Store.HasSession() {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *App) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// denyRoles returns middleware rejecting sessions whose role is on the
// denylist. Everyone else passes; the check is against the session only,
// never re-derived.
func denyRoles(denied ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := model.SessionFromContext(r.Context())
			if sess == nil {
				fail(w, r, http.StatusUnauthorized, "LoginRequired")
				return
			}
			for _, role := range denied {
				if sess.Role == role {
					failData(w, r, http.StatusForbidden, "AccessDenied", map[string]any{"Role": string(sess.Role)})
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// denyMutation is the standard denylist for record mutations.
func denyMutation(next http.Handler) http.Handler {
	return denyRoles(model.RoleStudent, model.RoleParent)(next)
}
