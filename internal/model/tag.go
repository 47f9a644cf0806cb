package model

import "github.com/notehub/note-hub-service/pkg/timex"

const TableNameTag = "tag"

type Tag struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	NoteID    int64      `gorm:"column:note_id;not null;index:idx_tag_note" json:"noteId"`
	UID       int64      `gorm:"column:uid;not null;index:idx_tag_uid" json:"uid"`
	Name      string     `gorm:"column:name;not null;index:idx_tag_name" json:"name"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;autoCreateTime:false" json:"createdAt"`
}

func (*Tag) TableName() string {
	return TableNameTag
}
