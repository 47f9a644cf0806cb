package model

import "github.com/notehub/note-hub-service/pkg/timex"

const TableNameUser = "user"

type User struct {
	UID         int64      `gorm:"column:uid;primaryKey;autoIncrement" json:"uid"`
	Email       string     `gorm:"column:email;not null;uniqueIndex:idx_user_email" json:"email"`
	Username    string     `gorm:"column:username;not null;uniqueIndex:idx_user_username" json:"username"`
	Password    string     `gorm:"column:password;not null" json:"-"`
	Nickname    string     `gorm:"column:nickname" json:"nickname"`
	Avatar      string     `gorm:"column:avatar" json:"avatar"`
	Bio         string     `gorm:"column:bio" json:"bio"`
	TotalNotes  int64      `gorm:"column:total_notes;default:0" json:"totalNotes"`
	ActiveDays  int64      `gorm:"column:active_days;default:0" json:"activeDays"`
	Badges      string     `gorm:"column:badges" json:"badges"`
	LastLoginAt timex.Time `gorm:"column:last_login_at;type:datetime;default:NULL" json:"lastLoginAt"`
	CreatedAt   timex.Time `gorm:"column:created_at;type:datetime;autoCreateTime:false" json:"createdAt"`
	UpdatedAt   timex.Time `gorm:"column:updated_at;type:datetime;autoUpdateTime:false" json:"updatedAt"`
}

func (*User) TableName() string {
	return TableNameUser
}
