package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/notehub/note-hub-service/internal/domain"
	"github.com/notehub/note-hub-service/internal/dto"
	"github.com/notehub/note-hub-service/pkg/app"
	"github.com/notehub/note-hub-service/pkg/code"
	"github.com/notehub/note-hub-service/pkg/util"
)

// UserService covers registration, login and password changes.
type UserService interface {
	// Register creates an account and returns it with a fresh token.
	Register(ctx context.Context, params *dto.UserCreateRequest) (*dto.UserDTO, error)

	// Login verifies credentials, counts the active day and returns
	// the account with a fresh token.
	Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.UserDTO, error)

	// ChangePassword verifies the old password and stores a new hash.
	ChangePassword(ctx context.Context, uid int64, params *dto.UserChangePasswordRequest) error

	// GetInfo returns the account without a token.
	GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error)
}

type userService struct {
	userRepo     domain.UserRepository
	profile      ProfileService
	tokenManager app.TokenManager
	logger       *zap.Logger
	config       *ServiceConfig
}

// NewUserService wires the user service.
func NewUserService(userRepo domain.UserRepository, profile ProfileService, tokenManager app.TokenManager, logger *zap.Logger, config *ServiceConfig) UserService {
	return &userService{
		userRepo:     userRepo,
		profile:      profile,
		tokenManager: tokenManager,
		logger:       logger,
		config:       config,
	}
}

func (s *userService) Register(ctx context.Context, params *dto.UserCreateRequest) (*dto.UserDTO, error) {
	if s.config == nil || !s.config.User.RegisterIsEnable {
		return nil, code.ErrorUserRegisterIsDisable
	}
	if !util.IsValidUsername(params.Username) {
		return nil, code.ErrorUserUsernameNotValid
	}
	if params.Password != params.ConfirmPassword {
		return nil, code.ErrorUserPasswordNotMatch
	}

	emailUser, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery
	}
	if emailUser != nil {
		return nil, code.ErrorUserEmailAlreadyExists
	}

	nameUser, err := s.userRepo.GetByUsername(ctx, params.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery
	}
	if nameUser != nil {
		return nil, code.ErrorUserAlreadyExists
	}

	password, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return nil, code.ErrorPasswordNotValid
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Email:    params.Email,
		Username: params.Username,
		Password: password,
		Badges:   []string{domain.BadgeNewUser},
	})
	if err != nil {
		s.logger.Error("user register", zap.String("email", params.Email), zap.Error(err))
		return nil, code.ErrorUserRegister.WithDetails(err.Error())
	}

	out := userToDTO(user)
	if token, err := s.tokenManager.Generate(user.UID, user.DisplayName(), ""); err == nil {
		out.Token = token
	}
	return out, nil
}

func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.UserDTO, error) {
	user, err := s.findAccount(ctx, params)
	if err != nil {
		return nil, err
	}
	if !util.CheckPasswordHash(user.Password, params.Password) {
		return nil, code.ErrorUserPasswordWrong
	}

	s.countActiveDay(ctx, user)

	out := userToDTO(user)
	token, err := s.tokenManager.Generate(user.UID, user.DisplayName(), clientIP)
	if err != nil {
		s.logger.Error("token generate", zap.Int64("uid", user.UID), zap.Error(err))
		return nil, code.ErrorServerInternal
	}
	out.Token = token
	return out, nil
}

func (s *userService) ChangePassword(ctx context.Context, uid int64, params *dto.UserChangePasswordRequest) error {
	if params.Password != params.ConfirmPassword {
		return code.ErrorUserPasswordNotMatch
	}

	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return code.ErrorUserNotExist
	}
	if !util.CheckPasswordHash(user.Password, params.OldPassword) {
		return code.ErrorUserPasswordWrong
	}

	password, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return code.ErrorPasswordNotValid
	}
	if err := s.userRepo.UpdatePassword(ctx, password, uid); err != nil {
		s.logger.Error("password update", zap.Int64("uid", uid), zap.Error(err))
		return code.ErrorServerInternal
	}
	return nil
}

func (s *userService) GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotExist
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return userToDTO(user), nil
}

func (s *userService) findAccount(ctx context.Context, params *dto.UserLoginRequest) (*domain.User, error) {
	var (
		user *domain.User
		err  error
	)
	switch {
	case params.Email != "":
		user, err = s.userRepo.GetByEmail(ctx, params.Email)
	case params.Username != "":
		user, err = s.userRepo.GetByUsername(ctx, params.Username)
	default:
		return nil, code.ErrorInvalidParams.WithDetails("email or username required")
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserPasswordWrong
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return user, nil
}

// countActiveDay bumps the active day counter on the first login of a
// calendar day and refreshes activity badges.
func (s *userService) countActiveDay(ctx context.Context, user *domain.User) {
	now := time.Now()
	if user.LastLoginAt == nil || !sameDay(*user.LastLoginAt, now) {
		user.ActiveDays++
	}
	last := now
	user.LastLoginAt = &last

	if err := s.userRepo.UpdateLoginStats(ctx, user.UID, now, user.ActiveDays); err != nil {
		s.logger.Warn("login stats", zap.Int64("uid", user.UID), zap.Error(err))
		return
	}
	if s.profile != nil {
		if badges, err := s.profile.RefreshBadges(ctx, user.UID); err == nil {
			user.Badges = badges
		}
	}
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
