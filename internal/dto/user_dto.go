// Package dto defines the request parameters and response structures
// exchanged with clients.
package dto

import (
	"github.com/notehub/note-hub-service/pkg/timex"
)

// UserCreateRequest carries the registration parameters.
type UserCreateRequest struct {
	Email           string `json:"email" form:"email" binding:"required,email"`
	Username        string `json:"username" form:"username" binding:"required,min=3,max=32"`
	Password        string `json:"password" form:"password" binding:"required,min=6,max=64"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" binding:"required"`
}

// UserLoginRequest carries the login credentials. Either email or
// username identifies the account.
type UserLoginRequest struct {
	Email    string `json:"email" form:"email"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password" binding:"required"`
}

// UserChangePasswordRequest carries a password change.
type UserChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword" form:"oldPassword" binding:"required"`
	Password        string `json:"password" form:"password" binding:"required,min=6,max=64"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" binding:"required"`
}

// ProfileUpdateRequest carries profile edits. Empty values keep the
// stored ones.
type ProfileUpdateRequest struct {
	Nickname string `json:"nickname" form:"nickname" binding:"max=64"`
	Bio      string `json:"bio" form:"bio" binding:"max=512"`
	Avatar   string `json:"avatar" form:"avatar" binding:"max=255"`
}

// UserDTO is the account payload returned to clients. Token is only
// set on register and login.
type UserDTO struct {
	UID         int64       `json:"uid"`
	Email       string      `json:"email"`
	Username    string      `json:"username"`
	Nickname    string      `json:"nickname"`
	Avatar      string      `json:"avatar"`
	Bio         string      `json:"bio"`
	Token       string      `json:"token,omitempty"`
	TotalNotes  int64       `json:"totalNotes"`
	ActiveDays  int64       `json:"activeDays"`
	Badges      []string    `json:"badges"`
	LastLoginAt *timex.Time `json:"lastLoginAt"`
	CreatedAt   timex.Time  `json:"createdAt"`
}
