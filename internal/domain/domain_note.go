// Package domain defines the domain models and repository interfaces.
package domain

import "time"

// Category is the fixed note category set.
type Category string

const (
	CategoryPersonal  Category = "personal"
	CategoryWork      Category = "work"
	CategorySchool    Category = "school"
	CategoryShopping  Category = "shopping"
	CategoryImportant Category = "important"
	CategoryOther     Category = "other"

	// CategoryAll is a filter value, never stored on a note.
	CategoryAll Category = "all"
)

var knownCategories = map[Category]bool{
	CategoryPersonal:  true,
	CategoryWork:      true,
	CategorySchool:    true,
	CategoryShopping:  true,
	CategoryImportant: true,
	CategoryOther:     true,
}

// IsKnownCategory reports whether c is a storable category.
func IsKnownCategory(c Category) bool {
	return knownCategories[c]
}

// NormalizeCategory maps unknown values to CategoryOther and an empty
// value to the default CategoryPersonal.
func NormalizeCategory(c Category) Category {
	if c == "" {
		return CategoryPersonal
	}
	if !knownCategories[c] {
		return CategoryOther
	}
	return c
}

// Note is the note domain model.
type Note struct {
	ID           int64
	UID          int64
	Title        string
	Content      string
	Category     Category
	ReminderDate *time.Time
	Images       []string

	IsPublic     bool
	ShareID      string
	SharedAt     *time.Time
	AuthorName   string
	AuthorAvatar string

	Likes    int64
	Comments int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsShared reports whether the note is publicly shared.
func (n *Note) IsShared() bool {
	return n.IsPublic && n.ShareID != ""
}
