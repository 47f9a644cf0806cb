package model

import "github.com/notehub/note-hub-service/pkg/timex"

const TableNameCollection = "collection"
const TableNameCollectionNote = "collection_note"

type Collection struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UID         int64      `gorm:"column:uid;not null;index:idx_collection_uid" json:"uid"`
	Name        string     `gorm:"column:name;not null" json:"name"`
	Description string     `gorm:"column:description" json:"description"`
	IsPublic    bool       `gorm:"column:is_public;default:false" json:"isPublic"`
	NoteCount   int64      `gorm:"column:note_count;default:0" json:"noteCount"`
	CreatedAt   timex.Time `gorm:"column:created_at;type:datetime;autoCreateTime:false" json:"createdAt"`
	UpdatedAt   timex.Time `gorm:"column:updated_at;type:datetime;autoUpdateTime:false" json:"updatedAt"`
}

func (*Collection) TableName() string {
	return TableNameCollection
}

type CollectionNote struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CollectionID int64      `gorm:"column:collection_id;not null;uniqueIndex:idx_coll_note,priority:1" json:"collectionId"`
	NoteID       int64      `gorm:"column:note_id;not null;uniqueIndex:idx_coll_note,priority:2" json:"noteId"`
	UID          int64      `gorm:"column:uid;not null" json:"uid"`
	CreatedAt    timex.Time `gorm:"column:created_at;type:datetime;autoCreateTime:false" json:"createdAt"`
}

func (*CollectionNote) TableName() string {
	return TableNameCollectionNote
}
