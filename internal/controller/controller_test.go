package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	appI18n "github.com/schooldesk/schooldesk/internal/i18n"
	"github.com/schooldesk/schooldesk/internal/model"
	"github.com/schooldesk/schooldesk/internal/store"
)

func newTestApp(t *testing.T) (*App, http.Handler) {
	t.Helper()
	if err := appI18n.Init("en"); err != nil {
		t.Fatalf("i18n.Init: %v", err)
	}
	s, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.EnsureDefaults(); err != nil {
		t.Fatalf("EnsureDefaults: %v", err)
	}

	app := &App{Store: s}
	r := chi.NewRouter()
	r.Use(appI18n.Middleware("en"))
	app.Routes(r)
	return app, r
}

// do issues one request against the router, attaching the session cookie
// when present and JSON-encoding a non-nil body.
func do(t *testing.T, h http.Handler, method, path string, cookie *http.Cookie, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, h http.Handler, email, password string) *http.Cookie {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/login", nil, map[string]string{
		"email": email, "password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d, body %s", email, rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatalf("login %s: no session cookie", email)
	return nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestLogin(t *testing.T) {
	_, h := newTestApp(t)

	tests := []struct {
		name       string
		email      string
		password   string
		wantStatus int
	}{
		{"admin ok", "admin@school.edu", "admin123", http.StatusOK},
		{"email case-insensitive", "Admin@SCHOOL.edu", "admin123", http.StatusOK},
		{"wrong password", "admin@school.edu", "wrong", http.StatusUnauthorized},
		{"unknown user", "ghost@school.edu", "admin123", http.StatusUnauthorized},
		{"missing password", "admin@school.edu", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/login", nil, map[string]string{
				"email": tt.email, "password": tt.password,
			})
			if rec.Code != tt.wantStatus {
				t.Fatalf("status %d, want %d, body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			body := decode(t, rec)
			user, ok := body["user"].(map[string]any)
			if !ok {
				t.Fatalf("expected user badge, got %v", body)
			}
			if user["role"] != "admin" {
				t.Errorf("expected admin role, got %v", user["role"])
			}
			if body["location"] != "/" {
				t.Errorf("expected home location, got %v", body["location"])
			}
		})
	}
}

func TestSessionGate(t *testing.T) {
	_, h := newTestApp(t)

	// Every private page redirects to login without a session.
	for _, path := range []string{"/", "/students", "/attendance", "/classes", "/assignments", "/exams", "/reports", "/data"} {
		rec := do(t, h, http.MethodGet, path, nil, nil)
		if rec.Code != http.StatusSeeOther {
			t.Errorf("GET %s without session: status %d, want 303", path, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("GET %s: redirect to %q, want /login", path, loc)
		}
	}

	cookie := login(t, h, "admin@school.edu", "admin123")

	// Logged in, the home page renders and login redirects home.
	rec := do(t, h, http.MethodGet, "/", cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / with session: status %d", rec.Code)
	}
	body := decode(t, rec)
	if body["page"] != "home" {
		t.Errorf("expected home page payload, got %v", body["page"])
	}
	if _, ok := body["attendanceSeries"]; !ok {
		t.Error("expected attendanceSeries in dashboard payload")
	}

	rec = do(t, h, http.MethodGet, "/login", cookie, nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Errorf("GET /login while authenticated: status %d location %q", rec.Code, rec.Header().Get("Location"))
	}

	// A bogus cookie is a missing session.
	rec = do(t, h, http.MethodGet, "/", &http.Cookie{Name: sessionCookieName, Value: "bogus"}, nil)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("GET / with bogus cookie: status %d, want 303", rec.Code)
	}

	// Logout clears the slot.
	rec = do(t, h, http.MethodPost, "/logout", cookie, nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Errorf("POST /logout: status %d location %q", rec.Code, rec.Header().Get("Location"))
	}
	rec = do(t, h, http.MethodGet, "/", cookie, nil)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("GET / after logout: status %d, want 303", rec.Code)
	}
}

func TestSignup(t *testing.T) {
	app, h := newTestApp(t)

	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
	}{
		{"missing email", map[string]string{"password": "pw", "confirmPassword": "pw"}, http.StatusBadRequest},
		{"bad email", map[string]string{"email": "not-an-email", "password": "pw", "confirmPassword": "pw"}, http.StatusBadRequest},
		{"password mismatch", map[string]string{"email": "new@school.edu", "password": "pw", "confirmPassword": "other"}, http.StatusBadRequest},
		{"invalid role", map[string]string{"email": "new@school.edu", "password": "pw", "confirmPassword": "pw", "role": "principal"}, http.StatusBadRequest},
		{"duplicate email", map[string]string{"email": "ADMIN@school.edu", "password": "pw", "confirmPassword": "pw"}, http.StatusConflict},
		{"ok", map[string]string{"firstName": "Priya", "lastName": "N", "email": "priya@school.edu", "password": "pw", "confirmPassword": "pw", "role": "teacher"}, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/signup", nil, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status %d, want %d, body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}

	// Only the successful attempt reached the directory.
	if got := len(app.Store.Accounts()); got != 3 {
		t.Errorf("expected 3 accounts after signups, got %d", got)
	}
	acct, err := app.Store.Authenticate("priya@school.edu", "pw")
	if err != nil {
		t.Fatalf("Authenticate new account: %v", err)
	}
	if acct.Name != "Priya N" || acct.Role != model.RoleTeacher {
		t.Errorf("unexpected account: %+v", acct)
	}

	// Omitted role defaults to student.
	rec := do(t, h, http.MethodPost, "/signup", nil, map[string]string{
		"email": "norole@school.edu", "password": "pw", "confirmPassword": "pw",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup without role: status %d", rec.Code)
	}
	acct, _ = app.Store.Authenticate("norole@school.edu", "pw")
	if acct.Role != model.RoleStudent {
		t.Errorf("expected default role student, got %s", acct.Role)
	}
}

func TestStudentEndpoints(t *testing.T) {
	app, h := newTestApp(t)
	cookie := login(t, h, "admin@school.edu", "admin123")

	// Add with auto-assigned id.
	rec := do(t, h, http.MethodPost, "/students", cookie, map[string]string{"name": "Zara Ahmed"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /students: status %d, body %s", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	st := body["student"].(map[string]any)
	if st["id"] != "S125" {
		t.Errorf("expected id S125, got %v", st["id"])
	}
	if st["className"] != "Grade 8" || st["section"] != "A" {
		t.Errorf("expected form defaults, got %v", st)
	}

	// Duplicate caller-assigned id.
	rec = do(t, h, http.MethodPost, "/students", cookie, map[string]string{"id": "S123", "name": "Clone"})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate id: status %d, want 409", rec.Code)
	}

	// Missing name.
	rec = do(t, h, http.MethodPost, "/students", cookie, map[string]string{"id": "S900"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing name: status %d, want 400", rec.Code)
	}

	// List and filter.
	rec = do(t, h, http.MethodGet, "/students", cookie, nil)
	body = decode(t, rec)
	if got := len(body["students"].([]any)); got != 3 {
		t.Errorf("expected 3 students listed, got %d", got)
	}
	rec = do(t, h, http.MethodGet, "/students?q=zara", cookie, nil)
	body = decode(t, rec)
	if got := len(body["students"].([]any)); got != 1 {
		t.Errorf("expected 1 filtered student, got %d", got)
	}

	// Update and delete.
	rec = do(t, h, http.MethodPut, "/students/S125", cookie, map[string]string{"name": "Zara A.", "className": "Grade 8", "section": "B"})
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT /students/S125: status %d", rec.Code)
	}
	got, err := app.Store.GetStudent("S125")
	if err != nil {
		t.Fatalf("GetStudent: %v", err)
	}
	if got.Section != "B" {
		t.Errorf("expected section B after update, got %q", got.Section)
	}

	rec = do(t, h, http.MethodDelete, "/students/S125", cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE /students/S125: status %d", rec.Code)
	}
	rec = do(t, h, http.MethodDelete, "/students/S125", cookie, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("double delete: status %d, want 404", rec.Code)
	}

	// Detail page for a seeded student.
	rec = do(t, h, http.MethodGet, "/students/S123", cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /students/S123: status %d", rec.Code)
	}
	body = decode(t, rec)
	if body["student"].(map[string]any)["name"] != "Aisha Khan" {
		t.Errorf("unexpected detail payload: %v", body["student"])
	}
	if _, ok := body["progress"]; !ok {
		t.Error("expected progress series in detail payload")
	}
}

func TestClassEndpoints(t *testing.T) {
	_, h := newTestApp(t)
	cookie := login(t, h, "admin@school.edu", "admin123")

	rec := do(t, h, http.MethodPost, "/classes", cookie, map[string]string{"name": "Grade 9", "sectionHead": "Mr. Rao"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /classes: status %d, body %s", rec.Code, rec.Body.String())
	}
	cls := decode(t, rec)["class"].(map[string]any)
	if cls["id"] != "C2" {
		t.Errorf("expected id C2, got %v", cls["id"])
	}

	// Names collide case-insensitively.
	rec = do(t, h, http.MethodPost, "/classes", cookie, map[string]string{"name": "grade 9"})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate name: status %d, want 409", rec.Code)
	}

	// Sections are unique per class.
	rec = do(t, h, http.MethodPost, "/classes/C2/sections", cookie, map[string]string{"section": "A"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST section: status %d", rec.Code)
	}
	rec = do(t, h, http.MethodPost, "/classes/C2/sections", cookie, map[string]string{"section": "A"})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate section: status %d, want 409", rec.Code)
	}
	rec = do(t, h, http.MethodPost, "/classes/C99/sections", cookie, map[string]string{"section": "A"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("section on missing class: status %d, want 404", rec.Code)
	}

	// Head update and delete.
	rec = do(t, h, http.MethodPut, "/classes/C2", cookie, map[string]string{"sectionHead": "Ms. Iyer"})
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT /classes/C2: status %d", rec.Code)
	}
	rec = do(t, h, http.MethodDelete, "/classes/C2", cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE /classes/C2: status %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/classes", cookie, nil)
	body := decode(t, rec)
	if body["classCount"].(float64) != 1 {
		t.Errorf("expected 1 class left, got %v", body["classCount"])
	}
}

func TestCourseworkEndpoints(t *testing.T) {
	_, h := newTestApp(t)
	cookie := login(t, h, "teacher@school.edu", "teacher123")

	rec := do(t, h, http.MethodPost, "/assignments", cookie, map[string]string{
		"title": "Essay", "class": "Grade 8", "dueDate": "2025-10-15",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /assignments: status %d, body %s", rec.Code, rec.Body.String())
	}
	a := decode(t, rec)["assignment"].(map[string]any)
	if a["id"] != "A2" {
		t.Errorf("expected id A2, got %v", a["id"])
	}
	if a["totalStudents"].(float64) != 30 || a["submissions"].(float64) != 0 {
		t.Errorf("expected submission defaults, got %v", a)
	}

	rec = do(t, h, http.MethodPut, "/assignments/A2", cookie, map[string]string{"title": "Essay v2", "dueDate": "2025-10-20"})
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT /assignments/A2: status %d", rec.Code)
	}
	rec = do(t, h, http.MethodDelete, "/assignments/A2", cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE /assignments/A2: status %d", rec.Code)
	}

	rec = do(t, h, http.MethodPost, "/exams", cookie, map[string]string{
		"title": "Term 2", "class": "Grade 8", "date": "2026-02-10",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /exams: status %d, body %s", rec.Code, rec.Body.String())
	}
	e := decode(t, rec)["exam"].(map[string]any)
	if e["id"] != "E2" {
		t.Errorf("expected id E2, got %v", e["id"])
	}

	rec = do(t, h, http.MethodPut, "/exams/E99", cookie, map[string]string{"date": "2026-03-01"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("PUT missing exam: status %d, want 404", rec.Code)
	}
}

func TestAttendanceFlow(t *testing.T) {
	app, h := newTestApp(t)
	cookie := login(t, h, "teacher@school.edu", "teacher123")

	// A second student in the same section so the save covers two rows.
	if _, err := app.Store.AddStudent(model.Student{Name: "Omar Diaz", ClassName: "Grade 8", Section: "A"}); err != nil {
		t.Fatalf("AddStudent: %v", err)
	}

	// Selection requires class and section.
	rec := do(t, h, http.MethodPost, "/attendance", cookie, map[string]string{"class": "Grade 8"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("selection without section: status %d, want 400", rec.Code)
	}
	rec = do(t, h, http.MethodPost, "/attendance", cookie, map[string]string{
		"class": "Grade 8", "section": "A", "date": "2025-09-01",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("selection: status %d", rec.Code)
	}
	loc := decode(t, rec)["location"].(string)
	if !strings.HasPrefix(loc, "/attendance/mark?") {
		t.Fatalf("unexpected marking location %q", loc)
	}

	// Incomplete marking context falls back to the selection page.
	rec = do(t, h, http.MethodGet, "/attendance/mark?date=2025-09-01", cookie, nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/attendance" {
		t.Errorf("incomplete mark context: status %d location %q", rec.Code, rec.Header().Get("Location"))
	}

	// The marking page lists both students, present by default.
	rec = do(t, h, http.MethodGet, loc, cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s: status %d", loc, rec.Code)
	}
	rows := decode(t, rec)["students"].([]any)
	if len(rows) != 2 {
		t.Fatalf("expected 2 marking rows, got %d", len(rows))
	}
	if rows[0].(map[string]any)["present"] != true {
		t.Error("expected rows to default to present")
	}

	// Save with one student toggled absent.
	rec = do(t, h, http.MethodPost, "/attendance/mark", cookie, map[string]any{
		"date": "2025-09-01", "class": "Grade 8", "section": "A",
		"toggles": map[string]bool{"S123": false},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("save: status %d, body %s", rec.Code, rec.Body.String())
	}
	if saved := decode(t, rec)["saved"].(float64); saved != 2 {
		t.Errorf("expected 2 saved records, got %v", saved)
	}

	day := app.Store.AttendanceDay("2025-09-01")
	if len(day) != 2 {
		t.Fatalf("expected exactly one record per student, got %d", len(day))
	}
	for _, rec := range day {
		wantPresent := rec.StudentID != "S123"
		if rec.Present != wantPresent {
			t.Errorf("record %s: present=%v, want %v", rec.StudentID, rec.Present, wantPresent)
		}
	}
}

func TestRoleDenylists(t *testing.T) {
	_, h := newTestApp(t)

	// Register a student account, then act as it.
	rec := do(t, h, http.MethodPost, "/signup", nil, map[string]string{
		"email": "kid@school.edu", "password": "pw", "confirmPassword": "pw", "role": "student",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup student: status %d", rec.Code)
	}
	cookie := login(t, h, "kid@school.edu", "pw")

	// Reads are fine.
	rec = do(t, h, http.MethodGet, "/students", cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("student GET /students: status %d", rec.Code)
	}
	// The data manager entry is hidden from the nav.
	navLinks := decode(t, rec)["nav"].([]any)
	for _, l := range navLinks {
		if l.(map[string]any)["path"] == "/data" {
			t.Error("expected data manager hidden from student nav")
		}
	}

	// Mutations and the data manager are denied.
	denied := []struct {
		method, path string
		body         any
	}{
		{http.MethodPost, "/students", map[string]string{"name": "X"}},
		{http.MethodPut, "/students/S123", map[string]string{"name": "X"}},
		{http.MethodDelete, "/students/S123", nil},
		{http.MethodPost, "/classes", map[string]string{"name": "X"}},
		{http.MethodPost, "/classes/C1/sections", map[string]string{"section": "Z"}},
		{http.MethodPut, "/classes/C1", map[string]string{"sectionHead": "X"}},
		{http.MethodDelete, "/classes/C1", nil},
		{http.MethodPost, "/assignments", map[string]string{"title": "X", "class": "Y", "dueDate": "Z"}},
		{http.MethodPost, "/exams", map[string]string{"title": "X", "class": "Y", "date": "Z"}},
		{http.MethodPost, "/attendance", map[string]string{"class": "Grade 8", "section": "A"}},
		{http.MethodGet, "/attendance/mark?date=d&class=c&section=s", nil},
		{http.MethodPost, "/attendance/mark", map[string]string{"date": "d", "class": "c", "section": "s"}},
		{http.MethodGet, "/data", nil},
		{http.MethodPost, "/reports/import", nil},
	}
	for _, d := range denied {
		rec := do(t, h, d.method, d.path, cookie, d.body)
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s %s as student: status %d, want 403", d.method, d.path, rec.Code)
		}
	}
	// The denial names the role.
	rec = do(t, h, http.MethodPost, "/students", cookie, map[string]string{"name": "X"})
	if msg := decode(t, rec)["error"].(string); !strings.Contains(msg, "student") {
		t.Errorf("expected role in denial message, got %q", msg)
	}

	// Teachers mutate records but cannot edit or delete classes.
	cookie = login(t, h, "teacher@school.edu", "teacher123")
	rec = do(t, h, http.MethodPost, "/classes", cookie, map[string]string{"name": "Grade 11"})
	if rec.Code != http.StatusCreated {
		t.Errorf("teacher POST /classes: status %d, want 201", rec.Code)
	}
	rec = do(t, h, http.MethodPut, "/classes/C1", cookie, map[string]string{"sectionHead": "X"})
	if rec.Code != http.StatusForbidden {
		t.Errorf("teacher PUT /classes/C1: status %d, want 403", rec.Code)
	}
	rec = do(t, h, http.MethodDelete, "/classes/C1", cookie, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("teacher DELETE /classes/C1: status %d, want 403", rec.Code)
	}
	rec = do(t, h, http.MethodGet, "/data", cookie, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("teacher GET /data: status %d, want 200", rec.Code)
	}
}

func TestDataManager(t *testing.T) {
	app, h := newTestApp(t)
	cookie := login(t, h, "admin@school.edu", "admin123")

	rec := do(t, h, http.MethodPut, "/data/series/attendance", cookie, map[string]any{
		"labels": []string{"W1", "W2"}, "data": []float64{91, 93},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT series: status %d, body %s", rec.Code, rec.Body.String())
	}
	series := app.Store.AttendanceSeries()
	if len(series.Labels) != 2 || series.Labels[0] != "W1" {
		t.Errorf("unexpected saved series: %+v", series)
	}

	// Empty series is rejected.
	rec = do(t, h, http.MethodPut, "/data/series/subjects", cookie, map[string]any{
		"labels": []string{}, "data": []float64{},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty series: status %d, want 400", rec.Code)
	}

	// Quick add requires a caller-assigned id.
	rec = do(t, h, http.MethodPost, "/data/students", cookie, map[string]string{"name": "No ID"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("quick add without id: status %d, want 400", rec.Code)
	}
	rec = do(t, h, http.MethodPost, "/data/students", cookie, map[string]string{"id": "S200", "name": "Quick Add"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("quick add: status %d", rec.Code)
	}
	rec = do(t, h, http.MethodDelete, "/data/students/S200", cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("quick remove: status %d", rec.Code)
	}
}

func TestExportImportEndpoints(t *testing.T) {
	app, h := newTestApp(t)
	cookie := login(t, h, "admin@school.edu", "admin123")

	rec := do(t, h, http.MethodGet, "/reports/export", cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /reports/export: status %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "school_data_") {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}
	var export model.SchoolExport
	if err := json.Unmarshal(rec.Body.Bytes(), &export); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if len(export.Students) != 2 {
		t.Errorf("expected 2 exported students, got %d", len(export.Students))
	}

	// Re-import a modified document.
	export.Students = append(export.Students, model.Student{ID: "S300", Name: "Imported", Status: "Active"})
	raw, _ := json.Marshal(export)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("data_file", "school_data.json")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	fw.Write(raw)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/reports/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(cookie)
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("POST /reports/import: status %d, body %s", res.Code, res.Body.String())
	}
	if got := len(app.Store.Students()); got != 3 {
		t.Errorf("expected 3 students after import, got %d", got)
	}

	// Garbage uploads are rejected before touching the store.
	buf.Reset()
	mw = multipart.NewWriter(&buf)
	fw, _ = mw.CreateFormFile("data_file", "junk.json")
	fw.Write([]byte("not json"))
	mw.Close()
	req = httptest.NewRequest(http.MethodPost, "/reports/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(cookie)
	res = httptest.NewRecorder()
	h.ServeHTTP(res, req)
	if res.Code != http.StatusBadRequest {
		t.Errorf("junk import: status %d, want 400", res.Code)
	}
	if got := len(app.Store.Students()); got != 3 {
		t.Errorf("expected roster untouched after rejected import, got %d", got)
	}
}

func TestReportsPage(t *testing.T) {
	_, h := newTestApp(t)
	cookie := login(t, h, "admin@school.edu", "admin123")

	rec := do(t, h, http.MethodGet, "/reports", cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /reports: status %d", rec.Code)
	}
	body := decode(t, rec)
	alerts := body["alerts"].([]any)
	if len(alerts) != 3 {
		t.Fatalf("expected 3 seeded alerts, got %d", len(alerts))
	}
	if alerts[0].(map[string]any)["student"] != "Priya N" {
		t.Errorf("unexpected first alert: %v", alerts[0])
	}
}
