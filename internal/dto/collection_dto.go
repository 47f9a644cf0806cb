package dto

import (
	"github.com/notehub/note-hub-service/pkg/timex"
)

// CollectionCreateRequest carries the fields of a new collection.
type CollectionCreateRequest struct {
	Name        string `json:"name" form:"name" binding:"required,max=128"`
	Description string `json:"description" form:"description" binding:"max=512"`
	IsPublic    bool   `json:"isPublic" form:"isPublic"`
}

// CollectionUpdateRequest is a merge patch over a collection.
type CollectionUpdateRequest struct {
	Name        *string `json:"name" form:"name"`
	Description *string `json:"description" form:"description"`
	IsPublic    *bool   `json:"isPublic" form:"isPublic"`
}

// CollectionDTO is the collection payload returned to clients.
type CollectionDTO struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	IsPublic    bool       `json:"isPublic"`
	NoteCount   int64      `json:"noteCount"`
	CreatedAt   timex.Time `json:"createdAt"`
	UpdatedAt   timex.Time `json:"updatedAt"`
}
