package dao

import (
	"context"
	"time"

	"github.com/notehub/note-hub-service/internal/domain"
	"github.com/notehub/note-hub-service/internal/model"
	"github.com/notehub/note-hub-service/pkg/timex"
)

type commentRepository struct {
	dao *Dao
}

func NewCommentRepository(dao *Dao) domain.CommentRepository {
	return &commentRepository{dao: dao}
}

func (r *commentRepository) toDomain(m *model.Comment) *domain.Comment {
	if m == nil {
		return nil
	}
	return &domain.Comment{
		ID:           m.ID,
		NoteID:       m.NoteID,
		UID:          m.UID,
		AuthorName:   m.AuthorName,
		AuthorAvatar: m.AuthorAvatar,
		Content:      m.Content,
		CreatedAt:    time.Time(m.CreatedAt),
	}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	m := &model.Comment{
		NoteID:       comment.NoteID,
		UID:          comment.UID,
		AuthorName:   comment.AuthorName,
		AuthorAvatar: comment.AuthorAvatar,
		Content:      comment.Content,
		CreatedAt:    timex.Now(),
	}
	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var m model.Comment
	err := r.dao.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	return r.dao.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Comment{}).Error
}

func (r *commentRepository) ListByNoteID(ctx context.Context, noteID int64) ([]*domain.Comment, error) {
	var ms []*model.Comment
	err := r.dao.db.WithContext(ctx).
		Where("note_id = ?", noteID).
		Order("created_at DESC, id DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Comment, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

func (r *commentRepository) DeleteByNoteID(ctx context.Context, noteID int64) error {
	return r.dao.db.WithContext(ctx).
		Where("note_id = ?", noteID).
		Delete(&model.Comment{}).Error
}

func (r *commentRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	result := r.dao.db.WithContext(ctx).
		Where("note_id NOT IN (?)", r.dao.db.Model(&model.Note{}).Select("id")).
		Delete(&model.Comment{})
	return result.RowsAffected, result.Error
}
