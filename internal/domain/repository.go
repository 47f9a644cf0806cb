package domain

import (
	"context"
	"time"
)

// NoteRepository is the note storage interface.
type NoteRepository interface {
	// GetByID returns a note owned by uid.
	GetByID(ctx context.Context, id, uid int64) (*Note, error)

	// GetAnyByID returns a note regardless of owner.
	GetAnyByID(ctx context.Context, id int64) (*Note, error)

	// GetByShareID returns a publicly shared note.
	GetByShareID(ctx context.Context, shareID string) (*Note, error)

	Create(ctx context.Context, note *Note) (*Note, error)

	// Update writes the mutable fields of note for its owner.
	Update(ctx context.Context, note *Note) (*Note, error)

	// Share sets the sharing fields in a single update.
	Share(ctx context.Context, id, uid int64, shareID, authorName, authorAvatar string, sharedAt time.Time) error

	// Unshare clears all sharing fields in a single update.
	Unshare(ctx context.Context, id, uid int64) error

	Delete(ctx context.Context, id, uid int64) error

	// ListByUID returns all notes of a user ordered by createdAt desc.
	ListByUID(ctx context.Context, uid int64) ([]*Note, error)

	// ListPublic returns shared notes ordered by sharedAt desc. keyword
	// filters title/content when non-empty.
	ListPublic(ctx context.Context, keyword string, limit int) ([]*Note, error)

	CountByUID(ctx context.Context, uid int64) (int64, error)
	CountSharedByUID(ctx context.Context, uid int64) (int64, error)

	// IncrLikes adjusts the denormalized like counter.
	IncrLikes(ctx context.Context, id int64, delta int64) error

	// IncrComments adjusts the denormalized comment counter.
	IncrComments(ctx context.Context, id int64, delta int64) error
}

// UserRepository is the account storage interface.
type UserRepository interface {
	GetByUID(ctx context.Context, uid int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	UpdatePassword(ctx context.Context, password string, uid int64) error
	UpdateProfile(ctx context.Context, uid int64, nickname, bio, avatar string) error
	UpdateLoginStats(ctx context.Context, uid int64, lastLoginAt time.Time, activeDays int64) error
	UpdateBadges(ctx context.Context, uid int64, badges []string) error
	IncrTotalNotes(ctx context.Context, uid int64, delta int64) error
}

// TagRepository is the note tag storage interface.
type TagRepository interface {
	Create(ctx context.Context, tag *Tag) (*Tag, error)
	Delete(ctx context.Context, noteID, uid int64, name string) error
	ListByNoteID(ctx context.Context, noteID int64) ([]*Tag, error)
	// Popular returns the most used tag names of a user, count desc.
	Popular(ctx context.Context, uid int64, limit int) ([]*TagCount, error)
	// NoteIDsByName returns the ids of the user's notes carrying the tag.
	NoteIDsByName(ctx context.Context, uid int64, name string) ([]int64, error)
	DeleteByNoteID(ctx context.Context, noteID int64) error
	// DeleteOrphans removes tags whose note no longer exists.
	DeleteOrphans(ctx context.Context) (int64, error)
}

// CommentRepository is the comment storage interface.
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) (*Comment, error)
	GetByID(ctx context.Context, id int64) (*Comment, error)
	Delete(ctx context.Context, id int64) error
	// ListByNoteID returns comments ordered by createdAt desc.
	ListByNoteID(ctx context.Context, noteID int64) ([]*Comment, error)
	DeleteByNoteID(ctx context.Context, noteID int64) error
	DeleteOrphans(ctx context.Context) (int64, error)
}

// LikeRepository is the like storage interface.
type LikeRepository interface {
	Get(ctx context.Context, noteID, uid int64) (*Like, error)
	Create(ctx context.Context, like *Like) (*Like, error)
	Delete(ctx context.Context, noteID, uid int64) error
	CountByNoteID(ctx context.Context, noteID int64) (int64, error)
	DeleteByNoteID(ctx context.Context, noteID int64) error
	DeleteOrphans(ctx context.Context) (int64, error)
}

// CollectionRepository is the collection storage interface.
type CollectionRepository interface {
	Create(ctx context.Context, collection *Collection) (*Collection, error)
	GetByID(ctx context.Context, id, uid int64) (*Collection, error)
	Update(ctx context.Context, collection *Collection) error
	Delete(ctx context.Context, id, uid int64) error
	ListByUID(ctx context.Context, uid int64) ([]*Collection, error)
	// IDs returns every collection id, for the recount task.
	IDs(ctx context.Context) ([]int64, error)
	// SetNoteCount writes the recounted membership total.
	SetNoteCount(ctx context.Context, id int64, count int64) error
	IncrNoteCount(ctx context.Context, id int64, delta int64) error
}

// CollectionNoteRepository is the collection membership storage interface.
type CollectionNoteRepository interface {
	Get(ctx context.Context, collectionID, noteID int64) (*CollectionNote, error)
	Create(ctx context.Context, cn *CollectionNote) (*CollectionNote, error)
	Delete(ctx context.Context, collectionID, noteID int64) error
	// NoteIDs returns member note ids ordered by insertion, newest first.
	NoteIDs(ctx context.Context, collectionID int64) ([]int64, error)
	Count(ctx context.Context, collectionID int64) (int64, error)
	DeleteByNoteID(ctx context.Context, noteID int64) error
	DeleteByCollectionID(ctx context.Context, collectionID int64) error
	DeleteOrphans(ctx context.Context) (int64, error)
}
