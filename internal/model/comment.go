package model

import "github.com/notehub/note-hub-service/pkg/timex"

const TableNameComment = "comment"

type Comment struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	NoteID       int64      `gorm:"column:note_id;not null;index:idx_comment_note" json:"noteId"`
	UID          int64      `gorm:"column:uid;not null" json:"uid"`
	AuthorName   string     `gorm:"column:author_name" json:"authorName"`
	AuthorAvatar string     `gorm:"column:author_avatar" json:"authorAvatar"`
	Content      string     `gorm:"column:content;not null" json:"content"`
	CreatedAt    timex.Time `gorm:"column:created_at;type:datetime;autoCreateTime:false" json:"createdAt"`
}

func (*Comment) TableName() string {
	return TableNameComment
}
