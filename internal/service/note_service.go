package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/notehub/note-hub-service/internal/domain"
	"github.com/notehub/note-hub-service/internal/dto"
	"github.com/notehub/note-hub-service/internal/feed"
	"github.com/notehub/note-hub-service/pkg/code"
	"github.com/notehub/note-hub-service/pkg/timex"
	"github.com/notehub/note-hub-service/pkg/util"
	"github.com/notehub/note-hub-service/pkg/workerpool"
)

// NoteService covers the note lifecycle, sharing and the public feed.
type NoteService interface {
	// Create stores a new note and pushes a fresh snapshot.
	Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.NoteDTO, error)

	// Get returns one note of the user.
	Get(ctx context.Context, uid, id int64) (*dto.NoteDTO, error)

	// Update applies a merge patch. Nil fields keep stored values, an
	// empty reminder date clears the reminder.
	Update(ctx context.Context, uid, id int64, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error)

	// Delete removes the note and cascades over its dependents.
	Delete(ctx context.Context, uid, id int64) error

	// List returns the user's notes, newest first, narrowed by the
	// composite filter.
	List(ctx context.Context, uid int64, params *dto.NoteListRequest) ([]*dto.NoteDTO, error)

	// Snapshot returns the user's full note list, newest first.
	// Concurrent callers share one query.
	Snapshot(ctx context.Context, uid int64) ([]*domain.Note, error)

	// Share makes the note public under a fresh share id. Sharing an
	// already shared note returns the existing id.
	Share(ctx context.Context, uid, id int64) (*dto.NoteShareDTO, error)

	// Unshare clears the sharing fields.
	Unshare(ctx context.Context, uid, id int64) error

	// GetShared resolves a public note by its share id. No auth.
	GetShared(ctx context.Context, shareID string) (*dto.NoteDTO, error)

	// Explore returns recently shared public notes, newest share
	// first.
	Explore(ctx context.Context, params *dto.ExploreListRequest) ([]*dto.NoteDTO, error)
}

// ParseNoteFilter maps raw request values onto a NoteFilter.
func ParseNoteFilter(params *dto.NoteListRequest) NoteFilter {
	if params == nil {
		return NoteFilter{}
	}
	return NoteFilter{
		Search:     strings.TrimSpace(params.Search),
		Category:   domain.Category(params.Category),
		DateFilter: DateFilter(params.DateFilter),
	}
}

type noteService struct {
	noteRepo     domain.NoteRepository
	userRepo     domain.UserRepository
	tagRepo      domain.TagRepository
	commentRepo  domain.CommentRepository
	likeRepo     domain.LikeRepository
	collNoteRepo domain.CollectionNoteRepository

	profile ProfileService
	hub     *feed.Hub
	pool    *workerpool.Pool
	sf      singleflight.Group
	logger  *zap.Logger
	config  *ServiceConfig
}

// NewNoteService wires the note service.
func NewNoteService(
	noteRepo domain.NoteRepository,
	userRepo domain.UserRepository,
	tagRepo domain.TagRepository,
	commentRepo domain.CommentRepository,
	likeRepo domain.LikeRepository,
	collNoteRepo domain.CollectionNoteRepository,
	profile ProfileService,
	hub *feed.Hub,
	pool *workerpool.Pool,
	logger *zap.Logger,
	config *ServiceConfig,
) NoteService {
	return &noteService{
		noteRepo:     noteRepo,
		userRepo:     userRepo,
		tagRepo:      tagRepo,
		commentRepo:  commentRepo,
		likeRepo:     likeRepo,
		collNoteRepo: collNoteRepo,
		profile:      profile,
		hub:          hub,
		pool:         pool,
		logger:       logger,
		config:       config,
	}
}

func (s *noteService) Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.NoteDTO, error) {
	note := &domain.Note{
		UID:      uid,
		Title:    params.Title,
		Content:  params.Content,
		Category: domain.NormalizeCategory(domain.Category(params.Category)),
		Images:   util.ArrayUnique(params.Images),
	}
	if params.ReminderDate != "" {
		t, ok := parseClientTime(params.ReminderDate)
		if !ok {
			return nil, code.ErrorInvalidParams.WithDetails("reminderDate: " + params.ReminderDate)
		}
		note.ReminderDate = &t
	}

	created, err := s.noteRepo.Create(ctx, note)
	if err != nil {
		s.logger.Error("note create", zap.Int64("uid", uid), zap.Error(err))
		return nil, code.ErrorNoteCreateFailed.WithDetails(err.Error())
	}

	if err := s.userRepo.IncrTotalNotes(ctx, uid, 1); err != nil {
		s.logger.Warn("note counter incr", zap.Int64("uid", uid), zap.Error(err))
	}
	s.refreshBadges(uid)
	s.publishSnapshot(uid)
	return noteToDTO(created), nil
}

func (s *noteService) Get(ctx context.Context, uid, id int64) (*dto.NoteDTO, error) {
	note, err := s.getOwned(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	return noteToDTO(note), nil
}

func (s *noteService) Update(ctx context.Context, uid, id int64, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error) {
	note, err := s.getOwned(ctx, uid, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		note.Title = *params.Title
	}
	if params.Content != nil {
		note.Content = *params.Content
	}
	if params.Category != nil {
		note.Category = domain.NormalizeCategory(domain.Category(*params.Category))
	}
	if params.ReminderDate != nil {
		if *params.ReminderDate == "" {
			note.ReminderDate = nil
		} else {
			t, ok := parseClientTime(*params.ReminderDate)
			if !ok {
				return nil, code.ErrorInvalidParams.WithDetails("reminderDate: " + *params.ReminderDate)
			}
			note.ReminderDate = &t
		}
	}
	if params.Images != nil {
		note.Images = util.ArrayUnique(*params.Images)
	}

	updated, err := s.noteRepo.Update(ctx, note)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotExist
		}
		s.logger.Error("note update", zap.Int64("uid", uid), zap.Int64("id", id), zap.Error(err))
		return nil, code.ErrorNoteUpdateFailed.WithDetails(err.Error())
	}

	s.publishSnapshot(uid)
	return noteToDTO(updated), nil
}

func (s *noteService) Delete(ctx context.Context, uid, id int64) error {
	if _, err := s.getOwned(ctx, uid, id); err != nil {
		return err
	}

	if err := s.noteRepo.Delete(ctx, id, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorNoteNotExist
		}
		s.logger.Error("note delete", zap.Int64("uid", uid), zap.Int64("id", id), zap.Error(err))
		return code.ErrorNoteDeleteFailed.WithDetails(err.Error())
	}

	if err := s.userRepo.IncrTotalNotes(ctx, uid, -1); err != nil {
		s.logger.Warn("note counter decr", zap.Int64("uid", uid), zap.Error(err))
	}
	s.cascadeDelete(id)
	s.publishSnapshot(uid)
	return nil
}

func (s *noteService) List(ctx context.Context, uid int64, params *dto.NoteListRequest) ([]*dto.NoteDTO, error) {
	notes, err := s.Snapshot(ctx, uid)
	if err != nil {
		return nil, err
	}
	filtered := FilterNotes(notes, ParseNoteFilter(params), time.Now())
	return notesToDTO(filtered), nil
}

func (s *noteService) Snapshot(ctx context.Context, uid int64) ([]*domain.Note, error) {
	v, err, _ := s.sf.Do(fmt.Sprintf("snapshot:%d", uid), func() (interface{}, error) {
		return s.noteRepo.ListByUID(ctx, uid)
	})
	if err != nil {
		s.logger.Error("note snapshot", zap.Int64("uid", uid), zap.Error(err))
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return v.([]*domain.Note), nil
}

func (s *noteService) Share(ctx context.Context, uid, id int64) (*dto.NoteShareDTO, error) {
	note, err := s.getOwned(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	if note.IsShared() {
		shared := timex.Now()
		if note.SharedAt != nil {
			shared = timex.Time(*note.SharedAt)
		}
		return s.shareDTO(note.ShareID, shared), nil
	}

	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorUserNotExist
	}

	shareID := uuid.NewString()
	sharedAt := time.Now()
	if err := s.noteRepo.Share(ctx, id, uid, shareID, user.DisplayName(), user.Avatar, sharedAt); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotExist
		}
		s.logger.Error("note share", zap.Int64("uid", uid), zap.Int64("id", id), zap.Error(err))
		return nil, code.ErrorNoteShareFailed.WithDetails(err.Error())
	}

	s.refreshBadges(uid)
	s.publishSnapshot(uid)
	return s.shareDTO(shareID, timex.Time(sharedAt)), nil
}

func (s *noteService) Unshare(ctx context.Context, uid, id int64) error {
	note, err := s.getOwned(ctx, uid, id)
	if err != nil {
		return err
	}
	if !note.IsShared() {
		return code.ErrorNoteNotShared
	}

	if err := s.noteRepo.Unshare(ctx, id, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorNoteNotExist
		}
		s.logger.Error("note unshare", zap.Int64("uid", uid), zap.Int64("id", id), zap.Error(err))
		return code.ErrorNoteShareFailed.WithDetails(err.Error())
	}

	s.publishSnapshot(uid)
	return nil
}

func (s *noteService) GetShared(ctx context.Context, shareID string) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.GetByShareID(ctx, shareID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotShared
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return noteToDTO(note), nil
}

func (s *noteService) Explore(ctx context.Context, params *dto.ExploreListRequest) ([]*dto.NoteDTO, error) {
	keyword := ""
	if params != nil {
		keyword = strings.TrimSpace(params.Search)
	}
	notes, err := s.noteRepo.ListPublic(ctx, keyword, s.config.exploreLimit())
	if err != nil {
		s.logger.Error("explore list", zap.Error(err))
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return notesToDTO(notes), nil
}

// getOwned loads a note and maps missing rows onto domain errors. A
// note owned by someone else reports ErrorNoteNotOwner.
func (s *noteService) getOwned(ctx context.Context, uid, id int64) (*domain.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, id, uid)
	if err == nil {
		return note, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if _, otherErr := s.noteRepo.GetAnyByID(ctx, id); otherErr == nil {
		return nil, code.ErrorNoteNotOwner
	}
	return nil, code.ErrorNoteNotExist
}

func (s *noteService) shareDTO(shareID string, sharedAt timex.Time) *dto.NoteShareDTO {
	d := &dto.NoteShareDTO{
		ShareID:  shareID,
		ShareURL: "/shared/" + shareID,
		SharedAt: sharedAt,
	}
	if base := strings.TrimSuffix(s.config.Note.ShareBaseURL, "/"); base != "" {
		d.ShareURL = base + d.ShareURL
	}
	return d
}

// cascadeDelete removes the dependents of a deleted note in parallel.
// Best effort, the orphan cleanup task sweeps leftovers.
func (s *noteService) cascadeDelete(noteID int64) {
	steps := []struct {
		name string
		fn   func(context.Context, int64) error
	}{
		{"tags", s.tagRepo.DeleteByNoteID},
		{"comments", s.commentRepo.DeleteByNoteID},
		{"likes", s.likeRepo.DeleteByNoteID},
		{"collection members", s.collNoteRepo.DeleteByNoteID},
	}
	for _, step := range steps {
		step := step
		err := s.pool.SubmitAsync(context.Background(), func(ctx context.Context) error {
			if err := step.fn(ctx, noteID); err != nil {
				s.logger.Warn("cascade delete",
					zap.String("dependent", step.name),
					zap.Int64("noteId", noteID),
					zap.Error(err))
			}
			return nil
		})
		if err != nil {
			s.logger.Warn("cascade delete enqueue",
				zap.String("dependent", step.name),
				zap.Int64("noteId", noteID),
				zap.Error(err))
		}
	}
}

// publishSnapshot pushes the fresh full note list to the user's feed
// subscribers. Skipped when nobody listens.
func (s *noteService) publishSnapshot(uid int64) {
	if s.hub == nil || s.hub.SubscriberCount(uid) == 0 {
		return
	}
	err := s.pool.SubmitAsync(context.Background(), func(ctx context.Context) error {
		notes, err := s.Snapshot(ctx, uid)
		if err != nil {
			return err
		}
		s.hub.Publish(uid, notes)
		return nil
	})
	if err != nil {
		s.logger.Warn("snapshot publish enqueue", zap.Int64("uid", uid), zap.Error(err))
	}
}

func (s *noteService) refreshBadges(uid int64) {
	if s.profile == nil {
		return
	}
	err := s.pool.SubmitAsync(context.Background(), func(ctx context.Context) error {
		if _, err := s.profile.RefreshBadges(ctx, uid); err != nil {
			s.logger.Warn("badge refresh", zap.Int64("uid", uid), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("badge refresh enqueue", zap.Int64("uid", uid), zap.Error(err))
	}
}
