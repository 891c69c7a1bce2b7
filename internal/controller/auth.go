package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/schooldesk/schooldesk/internal/model"
	"github.com/schooldesk/schooldesk/internal/store"
)

type loginController struct {
	app *App
}

func (c *loginController) Page() Page { return PageLogin }

func (c *loginController) Mount(r chi.Router) {
	r.Get("/login", c.handlePage)
	r.Post("/login", c.handleLogin)
}

func (c *loginController) handlePage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"page": PageLogin})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *loginController) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, r, http.StatusUnauthorized, "LoginError")
		return
	}

	acct, err := c.app.Store.Authenticate(req.Email, req.Password)
	if err != nil {
		fail(w, r, http.StatusUnauthorized, "LoginError")
		return
	}

	sess, err := c.app.Store.StartSession(acct)
	if err != nil {
		slog.Error("failed to start session", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   c.app.Config.SecureCookies,
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"user":     badge(&sess),
		"location": "/",
	})
}

type signupController struct {
	app *App
}

func (c *signupController) Page() Page { return PageSignup }

func (c *signupController) Mount(r chi.Router) {
	r.Get("/signup", c.handlePage)
	r.Post("/signup", c.handleSignup)
}

func (c *signupController) handlePage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"page":  PageSignup,
		"roles": []model.Role{model.RoleAdmin, model.RoleTeacher, model.RoleStudent, model.RoleParent},
	})
}

type signupRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email" validate:"required,email"`
	Role            string `json:"role"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
	Phone           string `json:"phone"`
}

// signupMessageID maps a field validation failure onto the message the
// original surfaced for it.
func signupMessageID(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Field() == "ConfirmPassword" {
				return "SignupPasswordMismatch"
			}
		}
	}
	return "SignupMissingFields"
}

func (c *signupController) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, r, http.StatusBadRequest, signupMessageID(err))
		return
	}

	role := model.Role(strings.TrimSpace(req.Role))
	if role == "" {
		role = model.RoleStudent
	}
	if !role.Valid() {
		fail(w, r, http.StatusBadRequest, "SignupInvalidRole")
		return
	}

	name := strings.TrimSpace(strings.TrimSpace(req.FirstName) + " " + strings.TrimSpace(req.LastName))
	_, err := c.app.Store.CreateAccount(name, req.Email, req.Password, role, strings.TrimSpace(req.Phone))
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			fail(w, r, http.StatusConflict, "SignupDuplicateEmail")
			return
		}
		slog.Error("failed to create account", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	notice(w, r, http.StatusCreated, "SignupCreated", map[string]any{"location": "/login"})
}
