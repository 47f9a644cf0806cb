package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/notehub/note-hub-service/internal/domain"
)

func noteAt(id int64, title, content string, category domain.Category, reminder *time.Time) *domain.Note {
	return &domain.Note{
		ID:           id,
		UID:          1,
		Title:        title,
		Content:      content,
		Category:     category,
		ReminderDate: reminder,
	}
}

func tp(t time.Time) *time.Time { return &t }

func TestFilterNotes_Search(t *testing.T) {
	notes := []*domain.Note{
		noteAt(1, "Buy Groceries", "milk and eggs", domain.CategoryShopping, nil),
		noteAt(2, "standup", "discuss GROCERIES budget", domain.CategoryWork, nil),
		noteAt(3, "holiday plan", "pack bags", domain.CategoryPersonal, nil),
	}
	now := time.Now()

	got := FilterNotes(notes, NoteFilter{Search: "groceries"}, now)
	assert.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)

	// title OR content, case-insensitive
	got = FilterNotes(notes, NoteFilter{Search: "PACK"}, now)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)

	got = FilterNotes(notes, NoteFilter{Search: "nothing matches"}, now)
	assert.Empty(t, got)
}

func TestFilterNotes_Category(t *testing.T) {
	notes := []*domain.Note{
		noteAt(1, "a", "", domain.CategoryWork, nil),
		noteAt(2, "b", "", domain.CategoryPersonal, nil),
		noteAt(3, "c", "", domain.Category("bogus"), nil),
	}
	now := time.Now()

	got := FilterNotes(notes, NoteFilter{Category: domain.CategoryWork}, now)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	// "all" and empty bypass the condition
	assert.Len(t, FilterNotes(notes, NoteFilter{Category: domain.CategoryAll}, now), 3)
	assert.Len(t, FilterNotes(notes, NoteFilter{}, now), 3)

	// unknown stored categories fall into "other"
	got = FilterNotes(notes, NoteFilter{Category: domain.CategoryOther}, now)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
}

func TestFilterNotes_DateBuckets(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		reminder *time.Time
		filter   DateFilter
		want     bool
	}{
		{"nil reminder passes today", nil, DateFilterToday, true},
		{"nil reminder passes upcoming", nil, DateFilterUpcoming, true},
		{"nil reminder passes overdue", nil, DateFilterOverdue, true},

		{"same day morning is today", tp(time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)), DateFilterToday, true},
		{"same day night is today", tp(time.Date(2026, 3, 15, 23, 59, 59, 0, time.Local)), DateFilterToday, true},
		{"next day is not today", tp(time.Date(2026, 3, 16, 0, 0, 0, 0, time.Local)), DateFilterToday, false},

		{"one second ahead is upcoming", tp(now.Add(time.Second)), DateFilterUpcoming, true},
		{"now itself is not upcoming", tp(now), DateFilterUpcoming, false},
		{"just inside the window is upcoming", tp(now.Add(7*24*time.Hour - time.Second)), DateFilterUpcoming, true},
		{"exactly seven days is not upcoming", tp(now.Add(7 * 24 * time.Hour)), DateFilterUpcoming, false},
		{"past is not upcoming", tp(now.Add(-time.Hour)), DateFilterUpcoming, false},

		{"past is overdue", tp(now.Add(-time.Second)), DateFilterOverdue, true},
		{"now itself is not overdue", tp(now), DateFilterOverdue, false},
		{"future is not overdue", tp(now.Add(time.Hour)), DateFilterOverdue, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := []*domain.Note{noteAt(1, "n", "", domain.CategoryPersonal, tt.reminder)}
			got := FilterNotes(notes, NoteFilter{DateFilter: tt.filter}, now)
			assert.Equal(t, tt.want, len(got) == 1)
		})
	}
}

func TestFilterNotes_Conjunctive(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local)
	notes := []*domain.Note{
		noteAt(1, "meeting notes", "", domain.CategoryWork, tp(now.Add(-time.Hour))),
		noteAt(2, "meeting notes", "", domain.CategoryPersonal, tp(now.Add(-time.Hour))),
		noteAt(3, "meeting notes", "", domain.CategoryWork, tp(now.Add(48*time.Hour))),
		noteAt(4, "groceries", "", domain.CategoryWork, tp(now.Add(-time.Hour))),
	}

	got := FilterNotes(notes, NoteFilter{
		Search:     "meeting",
		Category:   domain.CategoryWork,
		DateFilter: DateFilterOverdue,
	}, now)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestFilterNotes_DoesNotMutateInput(t *testing.T) {
	notes := []*domain.Note{
		noteAt(3, "c", "", domain.CategoryWork, nil),
		noteAt(1, "a", "", domain.CategoryWork, nil),
		noteAt(2, "b", "", domain.CategoryPersonal, nil),
	}
	now := time.Now()

	FilterNotes(notes, NoteFilter{Category: domain.CategoryWork}, now)
	assert.Equal(t, int64(3), notes[0].ID)
	assert.Equal(t, int64(1), notes[1].ID)
	assert.Equal(t, int64(2), notes[2].ID)
}

func genNote(now time.Time) gopter.Gen {
	categories := []domain.Category{
		domain.CategoryPersonal, domain.CategoryWork, domain.CategorySchool,
		domain.CategoryShopping, domain.CategoryImportant, domain.CategoryOther,
	}
	return gopter.CombineGens(
		gen.Int64Range(1, 1_000_000),
		gen.AlphaString(),
		gen.AlphaString(),
		gen.IntRange(0, len(categories)-1),
		gen.IntRange(-14*24*3600, 14*24*3600),
		gen.Bool(),
	).Map(func(vals []interface{}) *domain.Note {
		n := &domain.Note{
			ID:       vals[0].(int64),
			UID:      1,
			Title:    vals[1].(string),
			Content:  vals[2].(string),
			Category: categories[vals[3].(int)],
		}
		if vals[5].(bool) {
			r := now.Add(time.Duration(vals[4].(int)) * time.Second)
			n.ReminderDate = &r
		}
		return n
	})
}

func genFilter() gopter.Gen {
	filters := []DateFilter{DateFilterAll, DateFilterToday, DateFilterUpcoming, DateFilterOverdue}
	categories := []domain.Category{
		domain.CategoryAll, domain.CategoryPersonal, domain.CategoryWork,
		domain.CategorySchool, domain.CategoryShopping, domain.CategoryImportant,
		domain.CategoryOther,
	}
	return gopter.CombineGens(
		gen.AlphaString(),
		gen.IntRange(0, len(categories)-1),
		gen.IntRange(0, len(filters)-1),
	).Map(func(vals []interface{}) NoteFilter {
		return NoteFilter{
			Search:     vals[0].(string),
			Category:   categories[vals[1].(int)],
			DateFilter: filters[vals[2].(int)],
		}
	})
}

func TestFilterNotes_Properties(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	notesGen := gen.SliceOf(genNote(now))

	properties.Property("filtering is idempotent", prop.ForAll(
		func(notes []*domain.Note, f NoteFilter) bool {
			once := FilterNotes(notes, f, now)
			twice := FilterNotes(once, f, now)
			if len(once) != len(twice) {
				return false
			}
			for i := range once {
				if once[i] != twice[i] {
					return false
				}
			}
			return true
		},
		notesGen, genFilter(),
	))

	properties.Property("output preserves input order", prop.ForAll(
		func(notes []*domain.Note, f NoteFilter) bool {
			got := FilterNotes(notes, f, now)
			i := 0
			for _, n := range notes {
				if i < len(got) && got[i] == n {
					i++
				}
			}
			return i == len(got)
		},
		notesGen, genFilter(),
	))

	properties.Property("conjunction equals intersection of single filters", prop.ForAll(
		func(notes []*domain.Note, f NoteFilter) bool {
			combined := FilterNotes(notes, f, now)
			step := FilterNotes(notes, NoteFilter{Search: f.Search}, now)
			step = FilterNotes(step, NoteFilter{Category: f.Category}, now)
			step = FilterNotes(step, NoteFilter{DateFilter: f.DateFilter}, now)
			if len(combined) != len(step) {
				return false
			}
			for i := range combined {
				if combined[i] != step[i] {
					return false
				}
			}
			return true
		},
		notesGen, genFilter(),
	))

	properties.Property("notes without a reminder pass every date bucket", prop.ForAll(
		func(id int64, rawFilter int) bool {
			filters := []DateFilter{DateFilterAll, DateFilterToday, DateFilterUpcoming, DateFilterOverdue}
			n := noteAt(id, fmt.Sprintf("note-%d", id), "", domain.CategoryPersonal, nil)
			got := FilterNotes([]*domain.Note{n}, NoteFilter{DateFilter: filters[rawFilter]}, now)
			return len(got) == 1 && got[0] == n
		},
		gen.Int64Range(1, 1_000_000), gen.IntRange(0, 3),
	))

	properties.Property("zero filter keeps everything", prop.ForAll(
		func(notes []*domain.Note) bool {
			got := FilterNotes(notes, NoteFilter{}, now)
			return len(got) == len(notes)
		},
		notesGen,
	))

	properties.TestingRun(t)
}
