package dto

import (
	"github.com/notehub/note-hub-service/pkg/timex"
)

// CommentCreateRequest carries a new comment on a shared note.
type CommentCreateRequest struct {
	Content string `json:"content" form:"content" binding:"required,max=1024"`
}

// CommentDTO is the comment payload returned to clients.
type CommentDTO struct {
	ID           int64      `json:"id"`
	NoteID       int64      `json:"noteId"`
	UID          int64      `json:"uid"`
	AuthorName   string     `json:"authorName"`
	AuthorAvatar string     `json:"authorAvatar"`
	Content      string     `json:"content"`
	CreatedAt    timex.Time `json:"createdAt"`
}

// LikeToggleDTO reports the like state after a toggle.
type LikeToggleDTO struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

// TagAddRequest carries a tag to attach to a note.
type TagAddRequest struct {
	Name string `json:"name" form:"name" binding:"required,max=64"`
}

// TagDTO is a tag attached to a note.
type TagDTO struct {
	ID     int64  `json:"id"`
	NoteID int64  `json:"noteId"`
	Name   string `json:"name"`
}

// TagCountDTO is a popular-tags aggregation entry.
type TagCountDTO struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
