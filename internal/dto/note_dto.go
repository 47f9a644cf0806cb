package dto

import (
	"github.com/notehub/note-hub-service/pkg/timex"
)

// NoteCreateRequest carries the fields of a new note. ReminderDate
// uses the "2006-01-02 15:04:05" layout.
type NoteCreateRequest struct {
	Title        string   `json:"title" form:"title" binding:"required,max=255"`
	Content      string   `json:"content" form:"content"`
	Category     string   `json:"category" form:"category"`
	ReminderDate string   `json:"reminderDate" form:"reminderDate"`
	Images       []string `json:"images" form:"images"`
}

// NoteUpdateRequest is a merge patch: nil fields keep the stored
// value, an empty ReminderDate clears the reminder.
type NoteUpdateRequest struct {
	Title        *string   `json:"title" form:"title"`
	Content      *string   `json:"content" form:"content"`
	Category     *string   `json:"category" form:"category"`
	ReminderDate *string   `json:"reminderDate" form:"reminderDate"`
	Images       *[]string `json:"images" form:"images"`
}

// NoteListRequest carries the composite list filter.
type NoteListRequest struct {
	Search     string `json:"search" form:"search"`
	Category   string `json:"category" form:"category"`
	DateFilter string `json:"dateFilter" form:"dateFilter"`
}

// ExploreListRequest carries the public feed search keyword.
type ExploreListRequest struct {
	Search string `json:"search" form:"search"`
}

// NoteDTO is the note payload returned to clients.
type NoteDTO struct {
	ID           int64       `json:"id"`
	Title        string      `json:"title"`
	Content      string      `json:"content"`
	Category     string      `json:"category"`
	ReminderDate *timex.Time `json:"reminderDate"`
	Images       []string    `json:"images"`
	IsPublic     bool        `json:"isPublic"`
	ShareID      string      `json:"shareId,omitempty"`
	SharedAt     *timex.Time `json:"sharedAt,omitempty"`
	AuthorName   string      `json:"authorName,omitempty"`
	AuthorAvatar string      `json:"authorAvatar,omitempty"`
	Likes        int64       `json:"likes"`
	Comments     int64       `json:"comments"`
	CreatedAt    timex.Time  `json:"createdAt"`
	UpdatedAt    timex.Time  `json:"updatedAt"`
}

// NoteShareDTO is returned when a note is shared.
type NoteShareDTO struct {
	ShareID  string     `json:"shareId"`
	ShareURL string     `json:"shareUrl"`
	SharedAt timex.Time `json:"sharedAt"`
}

// NoteSnapshotDTO is the full note list pushed over the live feed.
// Every snapshot replaces the previous one on the client.
type NoteSnapshotDTO struct {
	Notes []*NoteDTO `json:"notes"`
	Total int        `json:"total"`
}
