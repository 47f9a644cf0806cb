package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/notehub/note-hub-service/internal/domain"
	"github.com/notehub/note-hub-service/internal/dto"
	"github.com/notehub/note-hub-service/pkg/code"
)

// ProfileService covers profile edits and server-side badge earning.
type ProfileService interface {
	// Get returns the profile of uid.
	Get(ctx context.Context, uid int64) (*dto.UserDTO, error)

	// Update applies profile edits. Empty fields keep stored values.
	Update(ctx context.Context, uid int64, params *dto.ProfileUpdateRequest) (*dto.UserDTO, error)

	// RefreshBadges recomputes the earned badge set from the activity
	// counters and persists it when it changed. Badges are never
	// revoked.
	RefreshBadges(ctx context.Context, uid int64) ([]string, error)
}

type profileService struct {
	userRepo domain.UserRepository
	noteRepo domain.NoteRepository
	logger   *zap.Logger
}

// NewProfileService wires the profile service.
func NewProfileService(userRepo domain.UserRepository, noteRepo domain.NoteRepository, logger *zap.Logger) ProfileService {
	return &profileService{
		userRepo: userRepo,
		noteRepo: noteRepo,
		logger:   logger,
	}
}

func (s *profileService) Get(ctx context.Context, uid int64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotExist
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return userToDTO(user), nil
}

func (s *profileService) Update(ctx context.Context, uid int64, params *dto.ProfileUpdateRequest) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotExist
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	nickname := user.Nickname
	if params.Nickname != "" {
		nickname = params.Nickname
	}
	bio := user.Bio
	if params.Bio != "" {
		bio = params.Bio
	}
	avatar := user.Avatar
	if params.Avatar != "" {
		avatar = params.Avatar
	}

	if err := s.userRepo.UpdateProfile(ctx, uid, nickname, bio, avatar); err != nil {
		s.logger.Error("profile update", zap.Int64("uid", uid), zap.Error(err))
		return nil, code.ErrorProfileUpdateFailed.WithDetails(err.Error())
	}

	user.Nickname = nickname
	user.Bio = bio
	user.Avatar = avatar
	return userToDTO(user), nil
}

func (s *profileService) RefreshBadges(ctx context.Context, uid int64) ([]string, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	badges := user.Badges
	changed := false
	earn := func(badge string, earned bool) {
		if earned && !user.HasBadge(badge) {
			badges = append(badges, badge)
			changed = true
		}
	}

	earn(domain.BadgeNewUser, true)

	totalNotes, err := s.noteRepo.CountByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	earn(domain.BadgeNoteMaster, totalNotes >= domain.BadgeNoteMasterThreshold)

	earn(domain.BadgeActiveUser, user.ActiveDays >= domain.BadgeActiveUserThreshold)

	shared, err := s.noteRepo.CountSharedByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	earn(domain.BadgeSharingExpert, shared >= domain.BadgeSharingExpertThreshold)

	if !changed {
		return badges, nil
	}
	if err := s.userRepo.UpdateBadges(ctx, uid, badges); err != nil {
		return nil, err
	}
	s.logger.Info("badges updated", zap.Int64("uid", uid), zap.Strings("badges", badges))
	return badges, nil
}
