package service

import (
	"time"

	"github.com/notehub/note-hub-service/internal/domain"
	"github.com/notehub/note-hub-service/internal/dto"
	"github.com/notehub/note-hub-service/pkg/timex"
	"github.com/notehub/note-hub-service/pkg/util"
)

// timeLayout is the wire format of reminder dates.
const timeLayout = "2006-01-02 15:04:05"

// dateLayout is accepted for date-only reminders.
const dateLayout = "2006-01-02"

// parseClientTime parses a reminder date sent by a client. Accepts a
// full datetime or a bare date, in the local time zone.
func parseClientTime(s string) (time.Time, bool) {
	if t := util.TimeParse(timeLayout, s); !t.IsZero() {
		return t, true
	}
	if t := util.TimeParse(dateLayout, s); !t.IsZero() {
		return t, true
	}
	return time.Time{}, false
}

// noteToDTO converts a note domain model into its client payload.
func noteToDTO(n *domain.Note) *dto.NoteDTO {
	if n == nil {
		return nil
	}
	d := &dto.NoteDTO{
		ID:           n.ID,
		Title:        n.Title,
		Content:      n.Content,
		Category:     string(domain.NormalizeCategory(n.Category)),
		Images:       n.Images,
		IsPublic:     n.IsPublic,
		ShareID:      n.ShareID,
		AuthorName:   n.AuthorName,
		AuthorAvatar: n.AuthorAvatar,
		Likes:        n.Likes,
		Comments:     n.Comments,
		CreatedAt:    timex.Time(n.CreatedAt),
		UpdatedAt:    timex.Time(n.UpdatedAt),
	}
	if d.Images == nil {
		d.Images = []string{}
	}
	if n.ReminderDate != nil {
		t := timex.Time(*n.ReminderDate)
		d.ReminderDate = &t
	}
	if n.SharedAt != nil {
		t := timex.Time(*n.SharedAt)
		d.SharedAt = &t
	}
	return d
}

// NotesToDTO converts a note list for transports that carry raw
// snapshots, like the live feed.
func NotesToDTO(notes []*domain.Note) []*dto.NoteDTO {
	return notesToDTO(notes)
}

// notesToDTO converts a note list preserving its order.
func notesToDTO(notes []*domain.Note) []*dto.NoteDTO {
	out := make([]*dto.NoteDTO, 0, len(notes))
	for _, n := range notes {
		out = append(out, noteToDTO(n))
	}
	return out
}

// userToDTO converts a user domain model into its client payload.
func userToDTO(u *domain.User) *dto.UserDTO {
	if u == nil {
		return nil
	}
	d := &dto.UserDTO{
		UID:        u.UID,
		Email:      u.Email,
		Username:   u.Username,
		Nickname:   u.Nickname,
		Avatar:     u.Avatar,
		Bio:        u.Bio,
		TotalNotes: u.TotalNotes,
		ActiveDays: u.ActiveDays,
		Badges:     u.Badges,
		CreatedAt:  timex.Time(u.CreatedAt),
	}
	if d.Badges == nil {
		d.Badges = []string{}
	}
	if u.LastLoginAt != nil {
		t := timex.Time(*u.LastLoginAt)
		d.LastLoginAt = &t
	}
	return d
}

// commentToDTO converts a comment domain model into its client payload.
func commentToDTO(c *domain.Comment) *dto.CommentDTO {
	if c == nil {
		return nil
	}
	return &dto.CommentDTO{
		ID:           c.ID,
		NoteID:       c.NoteID,
		UID:          c.UID,
		AuthorName:   c.AuthorName,
		AuthorAvatar: c.AuthorAvatar,
		Content:      c.Content,
		CreatedAt:    timex.Time(c.CreatedAt),
	}
}

// collectionToDTO converts a collection domain model into its client
// payload.
func collectionToDTO(c *domain.Collection) *dto.CollectionDTO {
	if c == nil {
		return nil
	}
	return &dto.CollectionDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsPublic:    c.IsPublic,
		NoteCount:   c.NoteCount,
		CreatedAt:   timex.Time(c.CreatedAt),
		UpdatedAt:   timex.Time(c.UpdatedAt),
	}
}
