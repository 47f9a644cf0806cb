package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/notehub/note-hub-service/internal/domain"
	"github.com/notehub/note-hub-service/internal/dto"
	"github.com/notehub/note-hub-service/pkg/code"
)

// TagService covers note tagging and tag lookups.
type TagService interface {
	// Add attaches a lowercased tag to the user's note. Duplicates
	// are ignored.
	Add(ctx context.Context, uid, noteID int64, params *dto.TagAddRequest) (*dto.TagDTO, error)

	// Remove detaches a tag from the user's note.
	Remove(ctx context.Context, uid, noteID int64, name string) error

	// List returns the tags of the user's note.
	List(ctx context.Context, uid, noteID int64) ([]*dto.TagDTO, error)

	// Popular returns the user's most used tag names, count desc.
	Popular(ctx context.Context, uid int64) ([]*dto.TagCountDTO, error)

	// NoteIDs returns the ids of the user's notes carrying the tag.
	NoteIDs(ctx context.Context, uid int64, name string) ([]int64, error)
}

type tagService struct {
	tagRepo  domain.TagRepository
	noteRepo domain.NoteRepository
	logger   *zap.Logger
	config   *ServiceConfig
}

// NewTagService wires the tag service.
func NewTagService(tagRepo domain.TagRepository, noteRepo domain.NoteRepository, logger *zap.Logger, config *ServiceConfig) TagService {
	return &tagService{
		tagRepo:  tagRepo,
		noteRepo: noteRepo,
		logger:   logger,
		config:   config,
	}
}

// normalizeTag lowercases and trims a tag name.
func normalizeTag(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (s *tagService) Add(ctx context.Context, uid, noteID int64, params *dto.TagAddRequest) (*dto.TagDTO, error) {
	name := normalizeTag(params.Name)
	if name == "" {
		return nil, code.ErrorInvalidParams.WithDetails("empty tag name")
	}

	if _, err := s.noteRepo.GetByID(ctx, noteID, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotExist
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	existing, err := s.tagRepo.ListByNoteID(ctx, noteID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	for _, t := range existing {
		if t.Name == name {
			return &dto.TagDTO{ID: t.ID, NoteID: t.NoteID, Name: t.Name}, nil
		}
	}

	tag, err := s.tagRepo.Create(ctx, &domain.Tag{NoteID: noteID, UID: uid, Name: name})
	if err != nil {
		s.logger.Error("tag add", zap.Int64("uid", uid), zap.Int64("noteId", noteID), zap.Error(err))
		return nil, code.ErrorTagAddFailed.WithDetails(err.Error())
	}
	return &dto.TagDTO{ID: tag.ID, NoteID: tag.NoteID, Name: tag.Name}, nil
}

func (s *tagService) Remove(ctx context.Context, uid, noteID int64, name string) error {
	name = normalizeTag(name)
	if err := s.tagRepo.Delete(ctx, noteID, uid, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorNotFound
		}
		s.logger.Error("tag remove", zap.Int64("uid", uid), zap.Int64("noteId", noteID), zap.Error(err))
		return code.ErrorTagRemoveFailed.WithDetails(err.Error())
	}
	return nil
}

func (s *tagService) List(ctx context.Context, uid, noteID int64) ([]*dto.TagDTO, error) {
	if _, err := s.noteRepo.GetByID(ctx, noteID, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotExist
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	tags, err := s.tagRepo.ListByNoteID(ctx, noteID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	out := make([]*dto.TagDTO, 0, len(tags))
	for _, t := range tags {
		out = append(out, &dto.TagDTO{ID: t.ID, NoteID: t.NoteID, Name: t.Name})
	}
	return out, nil
}

func (s *tagService) Popular(ctx context.Context, uid int64) ([]*dto.TagCountDTO, error) {
	counts, err := s.tagRepo.Popular(ctx, uid, s.config.popularTagLimit())
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	out := make([]*dto.TagCountDTO, 0, len(counts))
	for _, c := range counts {
		out = append(out, &dto.TagCountDTO{Name: c.Name, Count: c.Count})
	}
	return out, nil
}

func (s *tagService) NoteIDs(ctx context.Context, uid int64, name string) ([]int64, error) {
	ids, err := s.tagRepo.NoteIDsByName(ctx, uid, normalizeTag(name))
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return ids, nil
}
