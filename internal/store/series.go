package store

import "github.com/schooldesk/schooldesk/internal/model"

const (
	keyAttendanceSeries = "attendanceSeries"
	keySubjectAverages  = "subjectAverages"
)

// AttendanceSeries returns the weekly attendance chart series.
func (s *Store) AttendanceSeries() model.Series {
	return Get(s, keyAttendanceSeries, defaultAttendanceSeries())
}

// SetAttendanceSeries overwrites the weekly attendance chart series.
func (s *Store) SetAttendanceSeries(series model.Series) error {
	return Set(s, keyAttendanceSeries, series)
}

// SubjectAverages returns the per-subject average chart series.
func (s *Store) SubjectAverages() model.Series {
	return Get(s, keySubjectAverages, defaultSubjectAverages())
}

// SetSubjectAverages overwrites the per-subject average chart series.
func (s *Store) SetSubjectAverages(series model.Series) error {
	return Set(s, keySubjectAverages, series)
}
