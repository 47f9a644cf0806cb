package dao

import (
	"context"
	"time"

	"github.com/notehub/note-hub-service/internal/domain"
	"github.com/notehub/note-hub-service/internal/model"
	"github.com/notehub/note-hub-service/pkg/timex"
)

type tagRepository struct {
	dao *Dao
}

func NewTagRepository(dao *Dao) domain.TagRepository {
	return &tagRepository{dao: dao}
}

func (r *tagRepository) toDomain(m *model.Tag) *domain.Tag {
	if m == nil {
		return nil
	}
	return &domain.Tag{
		ID:        m.ID,
		NoteID:    m.NoteID,
		UID:       m.UID,
		Name:      m.Name,
		CreatedAt: time.Time(m.CreatedAt),
	}
}

func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	m := &model.Tag{
		NoteID:    tag.NoteID,
		UID:       tag.UID,
		Name:      tag.Name,
		CreatedAt: timex.Now(),
	}
	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

func (r *tagRepository) Delete(ctx context.Context, noteID, uid int64, name string) error {
	return r.dao.db.WithContext(ctx).
		Where("note_id = ? AND uid = ? AND name = ?", noteID, uid, name).
		Delete(&model.Tag{}).Error
}

func (r *tagRepository) ListByNoteID(ctx context.Context, noteID int64) ([]*domain.Tag, error) {
	var ms []*model.Tag
	err := r.dao.db.WithContext(ctx).
		Where("note_id = ?", noteID).
		Order("created_at ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Tag, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

func (r *tagRepository) Popular(ctx context.Context, uid int64, limit int) ([]*domain.TagCount, error) {
	var rows []*domain.TagCount
	err := r.dao.db.WithContext(ctx).
		Model(&model.Tag{}).
		Select("name, COUNT(*) AS count").
		Where("uid = ?", uid).
		Group("name").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *tagRepository) NoteIDsByName(ctx context.Context, uid int64, name string) ([]int64, error) {
	var ids []int64
	err := r.dao.db.WithContext(ctx).
		Model(&model.Tag{}).
		Where("uid = ? AND name = ?", uid, name).
		Pluck("note_id", &ids).Error
	return ids, err
}

func (r *tagRepository) DeleteByNoteID(ctx context.Context, noteID int64) error {
	return r.dao.db.WithContext(ctx).
		Where("note_id = ?", noteID).
		Delete(&model.Tag{}).Error
}

func (r *tagRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	result := r.dao.db.WithContext(ctx).
		Where("note_id NOT IN (?)", r.dao.db.Model(&model.Note{}).Select("id")).
		Delete(&model.Tag{})
	return result.RowsAffected, result.Error
}
