package store

import (
	"fmt"
	"strings"

	"github.com/schooldesk/schooldesk/internal/model"
)

// attendanceKeyPrefix qualifies per-date attendance blobs: one array of
// records per date, overwritten wholesale on every save.
const attendanceKeyPrefix = "attendance_"

func attendanceKey(date string) string {
	return attendanceKeyPrefix + date
}

// AttendanceDay returns the saved records for one date (empty when none).
func (s *Store) AttendanceDay(date string) []model.AttendanceRecord {
	return Get(s, attendanceKey(date), []model.AttendanceRecord{})
}

// SaveAttendanceDay replaces the records for one date. A second save for
// the same date overwrites the first; saves are idempotent per date, not
// additive.
func (s *Store) SaveAttendanceDay(date string, records []model.AttendanceRecord) error {
	for i := range records {
		records[i].Date = date
	}
	return Set(s, attendanceKey(date), records)
}

// AttendanceDays returns every saved day keyed by date.
func (s *Store) AttendanceDays() (map[string][]model.AttendanceRecord, error) {
	keys, err := s.Keys(attendanceKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list attendance keys: %w", err)
	}
	days := make(map[string][]model.AttendanceRecord, len(keys))
	for _, k := range keys {
		date := strings.TrimPrefix(k, attendanceKeyPrefix)
		days[date] = s.AttendanceDay(date)
	}
	return days, nil
}

// StudentAttendance returns every saved record for one student, ordered
// by date. No relation back to the roster is enforced; deleted students
// keep their rows.
func (s *Store) StudentAttendance(studentID string) ([]model.AttendanceRecord, error) {
	keys, err := s.Keys(attendanceKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list attendance keys: %w", err)
	}
	var out []model.AttendanceRecord
	for _, k := range keys {
		date := strings.TrimPrefix(k, attendanceKeyPrefix)
		for _, rec := range s.AttendanceDay(date) {
			if rec.StudentID == studentID {
				out = append(out, rec)
			}
		}
	}
	return out, nil
}
