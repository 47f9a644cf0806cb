package dao

import (
	"context"
	"time"

	"github.com/notehub/note-hub-service/internal/domain"
	"github.com/notehub/note-hub-service/internal/model"
	"github.com/notehub/note-hub-service/pkg/timex"
)

type collectionNoteRepository struct {
	dao *Dao
}

func NewCollectionNoteRepository(dao *Dao) domain.CollectionNoteRepository {
	return &collectionNoteRepository{dao: dao}
}

func (r *collectionNoteRepository) toDomain(m *model.CollectionNote) *domain.CollectionNote {
	if m == nil {
		return nil
	}
	return &domain.CollectionNote{
		ID:           m.ID,
		CollectionID: m.CollectionID,
		NoteID:       m.NoteID,
		UID:          m.UID,
		CreatedAt:    time.Time(m.CreatedAt),
	}
}

func (r *collectionNoteRepository) Get(ctx context.Context, collectionID, noteID int64) (*domain.CollectionNote, error) {
	var m model.CollectionNote
	err := r.dao.db.WithContext(ctx).
		Where("collection_id = ? AND note_id = ?", collectionID, noteID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *collectionNoteRepository) Create(ctx context.Context, cn *domain.CollectionNote) (*domain.CollectionNote, error) {
	m := &model.CollectionNote{
		CollectionID: cn.CollectionID,
		NoteID:       cn.NoteID,
		UID:          cn.UID,
		CreatedAt:    timex.Now(),
	}
	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

func (r *collectionNoteRepository) Delete(ctx context.Context, collectionID, noteID int64) error {
	return r.dao.db.WithContext(ctx).
		Where("collection_id = ? AND note_id = ?", collectionID, noteID).
		Delete(&model.CollectionNote{}).Error
}

func (r *collectionNoteRepository) NoteIDs(ctx context.Context, collectionID int64) ([]int64, error) {
	var ids []int64
	err := r.dao.db.WithContext(ctx).
		Model(&model.CollectionNote{}).
		Where("collection_id = ?", collectionID).
		Order("created_at DESC, id DESC").
		Pluck("note_id", &ids).Error
	return ids, err
}

func (r *collectionNoteRepository) Count(ctx context.Context, collectionID int64) (int64, error) {
	var count int64
	err := r.dao.db.WithContext(ctx).
		Model(&model.CollectionNote{}).
		Where("collection_id = ?", collectionID).
		Count(&count).Error
	return count, err
}

func (r *collectionNoteRepository) DeleteByNoteID(ctx context.Context, noteID int64) error {
	return r.dao.db.WithContext(ctx).
		Where("note_id = ?", noteID).
		Delete(&model.CollectionNote{}).Error
}

func (r *collectionNoteRepository) DeleteByCollectionID(ctx context.Context, collectionID int64) error {
	return r.dao.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Delete(&model.CollectionNote{}).Error
}

func (r *collectionNoteRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	result := r.dao.db.WithContext(ctx).
		Where("note_id NOT IN (?)", r.dao.db.Model(&model.Note{}).Select("id")).
		Delete(&model.CollectionNote{})
	return result.RowsAffected, result.Error
}
