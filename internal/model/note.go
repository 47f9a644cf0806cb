package model

import "github.com/notehub/note-hub-service/pkg/timex"

const TableNameNote = "note"

type Note struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UID          int64      `gorm:"column:uid;not null;index:idx_note_uid" json:"uid"`
	Title        string     `gorm:"column:title;not null" json:"title"`
	Content      string     `gorm:"column:content" json:"content"`
	Category     string     `gorm:"column:category;not null;default:personal" json:"category"`
	ReminderDate timex.Time `gorm:"column:reminder_date;type:datetime;default:NULL" json:"reminderDate"`
	Images       string     `gorm:"column:images" json:"images"`
	IsPublic     bool       `gorm:"column:is_public;default:false;index:idx_note_public,priority:1" json:"isPublic"`
	ShareID      string     `gorm:"column:share_id;index:idx_note_share_id" json:"shareId"`
	SharedAt     timex.Time `gorm:"column:shared_at;type:datetime;default:NULL;index:idx_note_public,priority:2" json:"sharedAt"`
	AuthorName   string     `gorm:"column:author_name" json:"authorName"`
	AuthorAvatar string     `gorm:"column:author_avatar" json:"authorAvatar"`
	Likes        int64      `gorm:"column:likes;default:0" json:"likes"`
	Comments     int64      `gorm:"column:comments;default:0" json:"comments"`
	CreatedAt    timex.Time `gorm:"column:created_at;type:datetime;autoCreateTime:false" json:"createdAt"`
	UpdatedAt    timex.Time `gorm:"column:updated_at;type:datetime;autoUpdateTime:false" json:"updatedAt"`
}

func (*Note) TableName() string {
	return TableNameNote
}
