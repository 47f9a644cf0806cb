package model

import "github.com/notehub/note-hub-service/pkg/timex"

const TableNameLike = "like"

type Like struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	NoteID    int64      `gorm:"column:note_id;not null;uniqueIndex:idx_like_note_uid,priority:1" json:"noteId"`
	UID       int64      `gorm:"column:uid;not null;uniqueIndex:idx_like_note_uid,priority:2" json:"uid"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;autoCreateTime:false" json:"createdAt"`
}

func (*Like) TableName() string {
	return TableNameLike
}
