package domain

import "time"

// Collection groups notes for a user.
type Collection struct {
	ID          int64
	UID         int64
	Name        string
	Description string
	IsPublic    bool
	NoteCount   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CollectionNote is a note membership inside a collection.
type CollectionNote struct {
	ID           int64
	CollectionID int64
	NoteID       int64
	UID          int64
	CreatedAt    time.Time
}
