//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	dateLayout    = "2006-01-02"
	maxTaskLen    = 500
	maxReasonLen  = 500
	maxSpentMins  = 24 * 60
	minutesInHour = 60.0
)

var (
	// ErrEntryIDMissing is returned by edits that carry no entry id.
	ErrEntryIDMissing = errors.New("entry id missing")
	// ErrSpentTimeMissing is returned by time entry edits that carry no spent time.
	ErrSpentTimeMissing = errors.New("spent time missing")
)

// TimeEntry is a unit of recorded work. SpentTime is in minutes.
type TimeEntry struct {
	ID        *int64  `json:"id,omitempty"         db:"id"`
	Task      *string `json:"task,omitempty"       db:"task"`
	SpentTime *int64  `json:"spent_time,omitempty" db:"spent_time"`
	Date      *string `json:"date,omitempty"       db:"date"`
}

// Validate checks the optional fields that are present.
func (e TimeEntry) Validate() error {
	if e.Task != nil && utf8.RuneCountInString(*e.Task) > maxTaskLen {
		return errors.New("task is too long")
	}
	if e.SpentTime != nil && (*e.SpentTime < 0 || *e.SpentTime > maxSpentMins) {
		return errors.New("spent time must be between 0 and 1440 minutes")
	}
	if e.Date != nil && strings.TrimSpace(*e.Date) != "" {
		if _, err := time.Parse(dateLayout, *e.Date); err != nil {
			return errors.New("date must be formatted as YYYY-MM-DD")
		}
	}
	return nil
}

// ValidateForUpdate additionally requires the id and spent time.
func (e TimeEntry) ValidateForUpdate() error {
	if e.ID == nil {
		return ErrEntryIDMissing
	}
	if e.SpentTime == nil {
		return ErrSpentTimeMissing
	}
	return e.Validate()
}

// AbsenceEntry is a single day of absence.
type AbsenceEntry struct {
	ID          *int64  `json:"id,omitempty"     db:"id"`
	AbsenceDate string  `json:"absence_date"     db:"absence_date"`
	Reason      *string `json:"reason,omitempty" db:"reason"`
}

// Validate checks the absence date and reason length.
func (e AbsenceEntry) Validate() error {
	if _, err := time.Parse(dateLayout, e.AbsenceDate); err != nil {
		return errors.New("absence date must be formatted as YYYY-MM-DD")
	}
	if e.Reason != nil && utf8.RuneCountInString(*e.Reason) > maxReasonLen {
		return errors.New("reason is too long")
	}
	return nil
}

// ValidateForUpdate additionally requires the id.
func (e AbsenceEntry) ValidateForUpdate() error {
	if e.ID == nil {
		return ErrEntryIDMissing
	}
	return e.Validate()
}

// TimeSummary aggregates a list of time entries.
type TimeSummary struct {
	TotalMinutes int64   `json:"total_minutes"`
	TotalHours   float64 `json:"total_hours"`
}

// SummarizeTime totals the spent minutes; entries without spent time count as zero.
// Hours are rounded to two decimals.
func SummarizeTime(entries []TimeEntry) TimeSummary {
	var total int64
	for _, e := range entries {
		if e.SpentTime != nil {
			total += *e.SpentTime
		}
	}
	hours := float64(total) / minutesInHour
	return TimeSummary{
		TotalMinutes: total,
		TotalHours:   math.Round(hours*100) / 100,
	}
}

// EntryOverview is everything shown about a user's recorded time and absences.
type EntryOverview struct {
	TimeEntries      []TimeEntry
	AbsenceEntries   []AbsenceEntry
	Time             TimeSummary
	TotalAbsenceDays int
}
