// Package service implements the business logic layer.
package service

import (
	"strings"
	"time"

	"github.com/notehub/note-hub-service/internal/domain"
)

// DateFilter selects a reminder date bucket.
type DateFilter string

const (
	DateFilterAll      DateFilter = "all"
	DateFilterToday    DateFilter = "today"
	DateFilterUpcoming DateFilter = "upcoming"
	DateFilterOverdue  DateFilter = "overdue"
)

// upcomingWindow bounds the "upcoming" bucket relative to now.
const upcomingWindow = 7 * 24 * time.Hour

// NoteFilter is the composite note list filter. All three conditions
// are conjunctive; zero values disable a condition.
type NoteFilter struct {
	// Search matches as a case-insensitive substring of the title or
	// the content.
	Search string

	// Category matches exactly. Empty or CategoryAll passes every
	// note; unknown stored categories match CategoryOther.
	Category domain.Category

	// DateFilter buckets by reminder date. Notes without a reminder
	// always pass.
	DateFilter DateFilter
}

// IsZero reports whether the filter passes every note.
func (f NoteFilter) IsZero() bool {
	return f.Search == "" &&
		(f.Category == "" || f.Category == domain.CategoryAll) &&
		(f.DateFilter == "" || f.DateFilter == DateFilterAll)
}

// FilterNotes returns the notes matching f, evaluated at now. The
// input order is preserved and the input slice is never mutated.
func FilterNotes(notes []*domain.Note, f NoteFilter, now time.Time) []*domain.Note {
	out := make([]*domain.Note, 0, len(notes))
	search := strings.ToLower(f.Search)
	for _, note := range notes {
		if note == nil {
			continue
		}
		if !matchSearch(note, search) {
			continue
		}
		if !matchCategory(note, f.Category) {
			continue
		}
		if !matchDate(note, f.DateFilter, now) {
			continue
		}
		out = append(out, note)
	}
	return out
}

func matchSearch(note *domain.Note, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(note.Title), search) ||
		strings.Contains(strings.ToLower(note.Content), search)
}

func matchCategory(note *domain.Note, category domain.Category) bool {
	if category == "" || category == domain.CategoryAll {
		return true
	}
	return domain.NormalizeCategory(note.Category) == category
}

func matchDate(note *domain.Note, filter DateFilter, now time.Time) bool {
	if filter == "" || filter == DateFilterAll {
		return true
	}
	if note.ReminderDate == nil {
		return true
	}
	reminder := *note.ReminderDate
	switch filter {
	case DateFilterToday:
		y1, m1, d1 := reminder.In(now.Location()).Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case DateFilterUpcoming:
		return reminder.After(now) && reminder.Before(now.Add(upcomingWindow))
	case DateFilterOverdue:
		return reminder.Before(now)
	default:
		return true
	}
}
