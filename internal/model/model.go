// Package model holds the domain types shared by the store and the
// controllers.
package model

import (
	"context"
	"time"
)

// Role is an account's access level.
type Role string

const (
	// RoleAdmin is a school administrator.
	RoleAdmin Role = "admin"
	// RoleTeacher is a teaching staff member.
	RoleTeacher Role = "teacher"
	// RoleStudent is an enrolled student.
	RoleStudent Role = "student"
	// RoleParent is a student's parent or guardian.
	RoleParent Role = "parent"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleParent:
		return true
	}
	return false
}

// Account is one entry of the registered-user directory. The password is
// held only as a bcrypt hash.
type Account struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	Role         Role   `json:"role"`
	Phone        string `json:"phone"`
}

// Session is the single logged-in identity. It carries the account's
// public fields plus the bearer token; the password hash is never copied
// in.
type Session struct {
	Token     string    `json:"token"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Student is one roster record. ClassName and Section relate to classes
// by value only; nothing enforces that a matching class exists.
type Student struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ClassName string `json:"className"`
	Section   string `json:"section"`
	Status    string `json:"status"`
}

// Class groups students into named sections.
type Class struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Sections    []string `json:"sections"`
	SectionHead string   `json:"sectionHead"`
}

// Assignment is one piece of coursework with a submission tally.
type Assignment struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Class         string `json:"class"`
	DueDate       string `json:"dueDate"`
	Submissions   int    `json:"submissions"`
	TotalStudents int    `json:"totalStudents"`
}

// Exam is one scheduled exam.
type Exam struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Class string `json:"class"`
	Date  string `json:"date"`
}

// AttendanceRecord is one student's presence on one date. Dates are
// YYYY-MM-DD strings throughout.
type AttendanceRecord struct {
	StudentID string `json:"studentId"`
	Present   bool   `json:"present"`
	Date      string `json:"date"`
}

// Series is a labeled numeric sequence for the dashboard charts. Labels
// and Data are parallel by position.
type Series struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

type sessionCtxKey struct{}

// ContextWithSession stores a session in the request context.
func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

// SessionFromContext retrieves the session from context, or nil.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionCtxKey{}).(*Session)
	return s
}
