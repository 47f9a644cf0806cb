package dao

import (
	"context"
	"time"

	"github.com/notehub/note-hub-service/internal/domain"
	"github.com/notehub/note-hub-service/internal/model"
	"github.com/notehub/note-hub-service/pkg/timex"

	"gorm.io/gorm"
)

type collectionRepository struct {
	dao *Dao
}

func NewCollectionRepository(dao *Dao) domain.CollectionRepository {
	return &collectionRepository{dao: dao}
}

func (r *collectionRepository) toDomain(m *model.Collection) *domain.Collection {
	if m == nil {
		return nil
	}
	return &domain.Collection{
		ID:          m.ID,
		UID:         m.UID,
		Name:        m.Name,
		Description: m.Description,
		IsPublic:    m.IsPublic,
		NoteCount:   m.NoteCount,
		CreatedAt:   time.Time(m.CreatedAt),
		UpdatedAt:   time.Time(m.UpdatedAt),
	}
}

func (r *collectionRepository) Create(ctx context.Context, collection *domain.Collection) (*domain.Collection, error) {
	now := timex.Now()
	m := &model.Collection{
		UID:         collection.UID,
		Name:        collection.Name,
		Description: collection.Description,
		IsPublic:    collection.IsPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

func (r *collectionRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Collection, error) {
	var m model.Collection
	err := r.dao.db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *collectionRepository) Update(ctx context.Context, collection *domain.Collection) error {
	result := r.dao.db.WithContext(ctx).
		Model(&model.Collection{}).
		Where("id = ? AND uid = ?", collection.ID, collection.UID).
		Updates(map[string]interface{}{
			"name":        collection.Name,
			"description": collection.Description,
			"is_public":   collection.IsPublic,
			"updated_at":  timex.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *collectionRepository) Delete(ctx context.Context, id, uid int64) error {
	result := r.dao.db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		Delete(&model.Collection{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *collectionRepository) ListByUID(ctx context.Context, uid int64) ([]*domain.Collection, error) {
	var ms []*model.Collection
	err := r.dao.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("created_at DESC, id DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Collection, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

func (r *collectionRepository) IDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.dao.db.WithContext(ctx).
		Model(&model.Collection{}).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *collectionRepository) SetNoteCount(ctx context.Context, id int64, count int64) error {
	return r.dao.db.WithContext(ctx).
		Model(&model.Collection{}).
		Where("id = ?", id).
		UpdateColumn("note_count", count).Error
}

func (r *collectionRepository) IncrNoteCount(ctx context.Context, id int64, delta int64) error {
	return r.dao.db.WithContext(ctx).
		Model(&model.Collection{}).
		Where("id = ?", id).
		UpdateColumn("note_count", gorm.Expr("note_count + ?", delta)).Error
}
