package domain

import (
	"time"

	"github.com/gookit/goutil/arrutil"
)

// Badge identifiers earned by profile activity.
const (
	BadgeNewUser       = "new_user"
	BadgeNoteMaster    = "note_master"
	BadgeActiveUser    = "active_user"
	BadgeSharingExpert = "sharing_expert"
)

const (
	// BadgeNoteMasterThreshold is the note count needed for note_master.
	BadgeNoteMasterThreshold = 10
	// BadgeActiveUserThreshold is the active day count needed for active_user.
	BadgeActiveUserThreshold = 7
	// BadgeSharingExpertThreshold is the shared note count needed for sharing_expert.
	BadgeSharingExpertThreshold = 5
)

// User is the account domain model including profile data.
type User struct {
	UID         int64
	Email       string
	Username    string
	Password    string
	Nickname    string
	Avatar      string
	Bio         string
	TotalNotes  int64
	ActiveDays  int64
	Badges      []string
	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DisplayName prefers the nickname over the username.
func (u *User) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Username
}

// HasBadge reports whether the user already earned the badge.
func (u *User) HasBadge(badge string) bool {
	return arrutil.Contains(u.Badges, badge)
}
