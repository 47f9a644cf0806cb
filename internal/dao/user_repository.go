package dao

import (
	"context"
	"time"

	"github.com/notehub/note-hub-service/internal/domain"
	"github.com/notehub/note-hub-service/internal/model"
	"github.com/notehub/note-hub-service/pkg/timex"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
)

type userRepository struct {
	dao *Dao
}

func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

func (r *userRepository) toDomain(m *model.User) *domain.User {
	if m == nil {
		return nil
	}
	user := &domain.User{
		UID:        m.UID,
		Email:      m.Email,
		Username:   m.Username,
		Password:   m.Password,
		Nickname:   m.Nickname,
		Avatar:     m.Avatar,
		Bio:        m.Bio,
		TotalNotes: m.TotalNotes,
		ActiveDays: m.ActiveDays,
		CreatedAt:  time.Time(m.CreatedAt),
		UpdatedAt:  time.Time(m.UpdatedAt),
	}
	if !m.LastLoginAt.IsZero() {
		t := time.Time(m.LastLoginAt)
		user.LastLoginAt = &t
	}
	if m.Badges != "" {
		_ = sonic.Unmarshal([]byte(m.Badges), &user.Badges)
	}
	return user
}

func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	var m model.User
	err := r.dao.db.WithContext(ctx).Where("uid = ?", uid).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m model.User
	err := r.dao.db.WithContext(ctx).Where("email = ?", email).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var m model.User
	err := r.dao.db.WithContext(ctx).Where("username = ?", username).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := timex.Now()
	m := &model.User{
		Email:     user.Email,
		Username:  user.Username,
		Password:  user.Password,
		Nickname:  user.Nickname,
		Avatar:    user.Avatar,
		Bio:       user.Bio,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if len(user.Badges) > 0 {
		if b, err := sonic.Marshal(user.Badges); err == nil {
			m.Badges = string(b)
		}
	}
	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, password string, uid int64) error {
	return r.dao.db.WithContext(ctx).
		Model(&model.User{}).
		Where("uid = ?", uid).
		Updates(map[string]interface{}{
			"password":   password,
			"updated_at": timex.Now(),
		}).Error
}

func (r *userRepository) UpdateProfile(ctx context.Context, uid int64, nickname, bio, avatar string) error {
	result := r.dao.db.WithContext(ctx).
		Model(&model.User{}).
		Where("uid = ?", uid).
		Updates(map[string]interface{}{
			"nickname":   nickname,
			"bio":        bio,
			"avatar":     avatar,
			"updated_at": timex.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) UpdateLoginStats(ctx context.Context, uid int64, lastLoginAt time.Time, activeDays int64) error {
	return r.dao.db.WithContext(ctx).
		Model(&model.User{}).
		Where("uid = ?", uid).
		Updates(map[string]interface{}{
			"last_login_at": timex.Time(lastLoginAt),
			"active_days":   activeDays,
		}).Error
}

func (r *userRepository) UpdateBadges(ctx context.Context, uid int64, badges []string) error {
	b, err := sonic.Marshal(badges)
	if err != nil {
		return err
	}
	return r.dao.db.WithContext(ctx).
		Model(&model.User{}).
		Where("uid = ?", uid).
		UpdateColumn("badges", string(b)).Error
}

func (r *userRepository) IncrTotalNotes(ctx context.Context, uid int64, delta int64) error {
	return r.dao.db.WithContext(ctx).
		Model(&model.User{}).
		Where("uid = ?", uid).
		UpdateColumn("total_notes", gorm.Expr("total_notes + ?", delta)).Error
}
