package model

import "time"

// SchoolExport is the top-level JSON document for data export. Collections
// absent from an imported file are left untouched.
type SchoolExport struct {
	Students    []Student                     `json:"students"`
	Classes     []Class                       `json:"classes"`
	Assignments []Assignment                  `json:"assignments"`
	Exams       []Exam                        `json:"exams"`
	Attendance  map[string][]AttendanceRecord `json:"attendance"`
	ExportDate  time.Time                     `json:"exportDate"`
}
