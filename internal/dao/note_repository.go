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

type noteRepository struct {
	dao *Dao
}

func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	note := &domain.Note{
		ID:           m.ID,
		UID:          m.UID,
		Title:        m.Title,
		Content:      m.Content,
		Category:     domain.Category(m.Category),
		IsPublic:     m.IsPublic,
		ShareID:      m.ShareID,
		AuthorName:   m.AuthorName,
		AuthorAvatar: m.AuthorAvatar,
		Likes:        m.Likes,
		Comments:     m.Comments,
		CreatedAt:    time.Time(m.CreatedAt),
		UpdatedAt:    time.Time(m.UpdatedAt),
	}
	if !m.ReminderDate.IsZero() {
		t := time.Time(m.ReminderDate)
		note.ReminderDate = &t
	}
	if !m.SharedAt.IsZero() {
		t := time.Time(m.SharedAt)
		note.SharedAt = &t
	}
	if m.Images != "" {
		_ = sonic.Unmarshal([]byte(m.Images), &note.Images)
	}
	return note
}

func (r *noteRepository) toModel(note *domain.Note) *model.Note {
	if note == nil {
		return nil
	}
	m := &model.Note{
		ID:           note.ID,
		UID:          note.UID,
		Title:        note.Title,
		Content:      note.Content,
		Category:     string(note.Category),
		IsPublic:     note.IsPublic,
		ShareID:      note.ShareID,
		AuthorName:   note.AuthorName,
		AuthorAvatar: note.AuthorAvatar,
		Likes:        note.Likes,
		Comments:     note.Comments,
		CreatedAt:    timex.Time(note.CreatedAt),
		UpdatedAt:    timex.Time(note.UpdatedAt),
	}
	if note.ReminderDate != nil {
		m.ReminderDate = timex.Time(*note.ReminderDate)
	}
	if note.SharedAt != nil {
		m.SharedAt = timex.Time(*note.SharedAt)
	}
	if len(note.Images) > 0 {
		if b, err := sonic.Marshal(note.Images); err == nil {
			m.Images = string(b)
		}
	}
	return m
}

func (r *noteRepository) toDomainList(ms []*model.Note) []*domain.Note {
	out := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out
}

func (r *noteRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Note, error) {
	var m model.Note
	err := r.dao.db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *noteRepository) GetAnyByID(ctx context.Context, id int64) (*domain.Note, error) {
	var m model.Note
	err := r.dao.db.WithContext(ctx).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *noteRepository) GetByShareID(ctx context.Context, shareID string) (*domain.Note, error) {
	var m model.Note
	err := r.dao.db.WithContext(ctx).
		Where("share_id = ? AND is_public = ?", shareID, true).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := r.toModel(note)
	now := timex.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

func (r *noteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := r.toModel(note)

	values := map[string]interface{}{
		"title":         m.Title,
		"content":       m.Content,
		"category":      m.Category,
		"reminder_date": nullableTime(m.ReminderDate),
		"images":        m.Images,
		"updated_at":    timex.Now(),
	}

	result := r.dao.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ? AND uid = ?", m.ID, m.UID).
		Updates(values)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, note.ID, note.UID)
}

func (r *noteRepository) Share(ctx context.Context, id, uid int64, shareID, authorName, authorAvatar string, sharedAt time.Time) error {
	result := r.dao.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ? AND uid = ?", id, uid).
		Updates(map[string]interface{}{
			"is_public":     true,
			"share_id":      shareID,
			"author_name":   authorName,
			"author_avatar": authorAvatar,
			"shared_at":     timex.Time(sharedAt),
			"updated_at":    timex.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *noteRepository) Unshare(ctx context.Context, id, uid int64) error {
	result := r.dao.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ? AND uid = ?", id, uid).
		Updates(map[string]interface{}{
			"is_public":     false,
			"share_id":      "",
			"author_name":   "",
			"author_avatar": "",
			"shared_at":     nil,
			"updated_at":    timex.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *noteRepository) Delete(ctx context.Context, id, uid int64) error {
	result := r.dao.db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		Delete(&model.Note{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *noteRepository) ListByUID(ctx context.Context, uid int64) ([]*domain.Note, error) {
	var ms []*model.Note
	err := r.dao.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("created_at DESC, id DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

func (r *noteRepository) ListPublic(ctx context.Context, keyword string, limit int) ([]*domain.Note, error) {
	q := r.dao.db.WithContext(ctx).
		Where("is_public = ?", true)
	if keyword != "" {
		like := "%" + keyword + "%"
		q = q.Where("title LIKE ? OR content LIKE ?", like, like)
	}

	var ms []*model.Note
	err := q.Order("shared_at DESC, id DESC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

func (r *noteRepository) CountByUID(ctx context.Context, uid int64) (int64, error) {
	var count int64
	err := r.dao.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("uid = ?", uid).
		Count(&count).Error
	return count, err
}

func (r *noteRepository) CountSharedByUID(ctx context.Context, uid int64) (int64, error) {
	var count int64
	err := r.dao.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("uid = ? AND is_public = ?", uid, true).
		Count(&count).Error
	return count, err
}

func (r *noteRepository) IncrLikes(ctx context.Context, id int64, delta int64) error {
	return r.dao.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", delta)).Error
}

func (r *noteRepository) IncrComments(ctx context.Context, id int64, delta int64) error {
	return r.dao.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ?", id).
		UpdateColumn("comments", gorm.Expr("comments + ?", delta)).Error
}

// nullableTime keeps cleared reminder dates as NULL instead of the
// zero time string.
func nullableTime(t timex.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
