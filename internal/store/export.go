package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/schooldesk/schooldesk/internal/model"
)

// ExportAll collects every domain collection into one export document.
// Attendance entries are keyed exactly as stored (attendance_<date>).
func (s *Store) ExportAll() (model.SchoolExport, error) {
	days, err := s.AttendanceDays()
	if err != nil {
		return model.SchoolExport{}, fmt.Errorf("collect attendance: %w", err)
	}
	attendance := make(map[string][]model.AttendanceRecord, len(days))
	for date, records := range days {
		attendance[attendanceKey(date)] = records
	}
	return model.SchoolExport{
		Students:    s.Students(),
		Classes:     s.Classes(),
		Assignments: s.Assignments(),
		Exams:       s.Exams(),
		Attendance:  attendance,
		ExportDate:  time.Now().UTC(),
	}, nil
}

// ImportAll replaces each collection named in data and leaves the rest
// untouched. Attendance keys are accepted with or without the storage
// prefix. Counters advance past imported ids.
func (s *Store) ImportAll(data model.SchoolExport) error {
	if data.Students != nil {
		if err := s.ReplaceStudents(data.Students); err != nil {
			return fmt.Errorf("import students: %w", err)
		}
	}
	if data.Classes != nil {
		if err := s.ReplaceClasses(data.Classes); err != nil {
			return fmt.Errorf("import classes: %w", err)
		}
		if err := s.BumpSeq("classes", maxNumericSuffix(classIDs(data.Classes), "C")); err != nil {
			return err
		}
	}
	if data.Assignments != nil {
		if err := s.ReplaceAssignments(data.Assignments); err != nil {
			return fmt.Errorf("import assignments: %w", err)
		}
		if err := s.BumpSeq("assignments", maxNumericSuffix(assignmentIDs(data.Assignments), "A")); err != nil {
			return err
		}
	}
	if data.Exams != nil {
		if err := s.ReplaceExams(data.Exams); err != nil {
			return fmt.Errorf("import exams: %w", err)
		}
		if err := s.BumpSeq("exams", maxNumericSuffix(examIDs(data.Exams), "E")); err != nil {
			return err
		}
	}
	for key, records := range data.Attendance {
		date := strings.TrimPrefix(key, attendanceKeyPrefix)
		if err := s.SaveAttendanceDay(date, records); err != nil {
			return fmt.Errorf("import attendance %s: %w", date, err)
		}
	}
	slog.Info("imported data",
		"students", len(data.Students),
		"classes", len(data.Classes),
		"assignments", len(data.Assignments),
		"exams", len(data.Exams),
		"attendance_days", len(data.Attendance),
	)
	return nil
}

// ParseExport decodes an export document from raw JSON.
func ParseExport(raw []byte) (model.SchoolExport, error) {
	var data model.SchoolExport
	if err := json.Unmarshal(raw, &data); err != nil {
		return model.SchoolExport{}, fmt.Errorf("parse export file: %w", err)
	}
	return data, nil
}
