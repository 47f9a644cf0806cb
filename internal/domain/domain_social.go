package domain

import "time"

// Tag links a lowercased tag name to a note.
type Tag struct {
	ID        int64
	NoteID    int64
	UID       int64
	Name      string
	CreatedAt time.Time
}

// TagCount is a popular-tags aggregation row.
type TagCount struct {
	Name  string
	Count int64
}

// Comment on a shared note, with author display data snapshotted at
// creation time.
type Comment struct {
	ID           int64
	NoteID       int64
	UID          int64
	AuthorName   string
	AuthorAvatar string
	Content      string
	CreatedAt    time.Time
}

// Like marks one user liking one note.
type Like struct {
	ID        int64
	NoteID    int64
	UID       int64
	CreatedAt time.Time
}
