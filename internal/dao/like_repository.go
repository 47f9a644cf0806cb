package dao

import (
	"context"
	"time"

	"github.com/notehub/note-hub-service/internal/domain"
	"github.com/notehub/note-hub-service/internal/model"
	"github.com/notehub/note-hub-service/pkg/timex"
)

type likeRepository struct {
	dao *Dao
}

func NewLikeRepository(dao *Dao) domain.LikeRepository {
	return &likeRepository{dao: dao}
}

func (r *likeRepository) toDomain(m *model.Like) *domain.Like {
	if m == nil {
		return nil
	}
	return &domain.Like{
		ID:        m.ID,
		NoteID:    m.NoteID,
		UID:       m.UID,
		CreatedAt: time.Time(m.CreatedAt),
	}
}

func (r *likeRepository) Get(ctx context.Context, noteID, uid int64) (*domain.Like, error) {
	var m model.Like
	err := r.dao.db.WithContext(ctx).
		Where("note_id = ? AND uid = ?", noteID, uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *likeRepository) Create(ctx context.Context, like *domain.Like) (*domain.Like, error) {
	m := &model.Like{
		NoteID:    like.NoteID,
		UID:       like.UID,
		CreatedAt: timex.Now(),
	}
	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

func (r *likeRepository) Delete(ctx context.Context, noteID, uid int64) error {
	return r.dao.db.WithContext(ctx).
		Where("note_id = ? AND uid = ?", noteID, uid).
		Delete(&model.Like{}).Error
}

func (r *likeRepository) CountByNoteID(ctx context.Context, noteID int64) (int64, error) {
	var count int64
	err := r.dao.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("note_id = ?", noteID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) DeleteByNoteID(ctx context.Context, noteID int64) error {
	return r.dao.db.WithContext(ctx).
		Where("note_id = ?", noteID).
		Delete(&model.Like{}).Error
}

func (r *likeRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	result := r.dao.db.WithContext(ctx).
		Where("note_id NOT IN (?)", r.dao.db.Model(&model.Note{}).Select("id")).
		Delete(&model.Like{})
	return result.RowsAffected, result.Error
}
