package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/notehub/note-hub-service/internal/domain"
	"github.com/notehub/note-hub-service/internal/dto"
	"github.com/notehub/note-hub-service/pkg/code"
	"github.com/notehub/note-hub-service/pkg/convert"
)

// CollectionService covers collections and their note memberships.
type CollectionService interface {
	Create(ctx context.Context, uid int64, params *dto.CollectionCreateRequest) (*dto.CollectionDTO, error)
	Get(ctx context.Context, uid, id int64) (*dto.CollectionDTO, error)
	Update(ctx context.Context, uid, id int64, params *dto.CollectionUpdateRequest) (*dto.CollectionDTO, error)
	Delete(ctx context.Context, uid, id int64) error
	List(ctx context.Context, uid int64) ([]*dto.CollectionDTO, error)

	// AddNote adds a note membership. Duplicates are ignored.
	AddNote(ctx context.Context, uid, collectionID, noteID int64) error

	// RemoveNote removes a note membership.
	RemoveNote(ctx context.Context, uid, collectionID, noteID int64) error

	// Notes returns the collection's member notes, newest membership
	// first.
	Notes(ctx context.Context, uid, collectionID int64) ([]*dto.NoteDTO, error)
}

type collectionService struct {
	collRepo     domain.CollectionRepository
	collNoteRepo domain.CollectionNoteRepository
	noteRepo     domain.NoteRepository
	logger       *zap.Logger
}

// NewCollectionService wires the collection service.
func NewCollectionService(collRepo domain.CollectionRepository, collNoteRepo domain.CollectionNoteRepository, noteRepo domain.NoteRepository, logger *zap.Logger) CollectionService {
	return &collectionService{
		collRepo:     collRepo,
		collNoteRepo: collNoteRepo,
		noteRepo:     noteRepo,
		logger:       logger,
	}
}

func (s *collectionService) Create(ctx context.Context, uid int64, params *dto.CollectionCreateRequest) (*dto.CollectionDTO, error) {
	coll, err := s.collRepo.Create(ctx, &domain.Collection{
		UID:         uid,
		Name:        params.Name,
		Description: params.Description,
		IsPublic:    params.IsPublic,
	})
	if err != nil {
		s.logger.Error("collection create", zap.Int64("uid", uid), zap.Error(err))
		return nil, code.ErrorCollectionCreateFailed.WithDetails(err.Error())
	}
	return collectionToDTO(coll), nil
}

func (s *collectionService) Get(ctx context.Context, uid, id int64) (*dto.CollectionDTO, error) {
	coll, err := s.getOwned(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	return collectionToDTO(coll), nil
}

func (s *collectionService) Update(ctx context.Context, uid, id int64, params *dto.CollectionUpdateRequest) (*dto.CollectionDTO, error) {
	coll, err := s.getOwned(ctx, uid, id)
	if err != nil {
		return nil, err
	}

	// nil request fields keep the stored values
	convert.StructAssign(params, coll)

	if err := s.collRepo.Update(ctx, coll); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorCollectionNotExist
		}
		s.logger.Error("collection update", zap.Int64("uid", uid), zap.Int64("id", id), zap.Error(err))
		return nil, code.ErrorCollectionUpdateFailed.WithDetails(err.Error())
	}
	return collectionToDTO(coll), nil
}

func (s *collectionService) Delete(ctx context.Context, uid, id int64) error {
	if _, err := s.getOwned(ctx, uid, id); err != nil {
		return err
	}

	if err := s.collRepo.Delete(ctx, id, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorCollectionNotExist
		}
		s.logger.Error("collection delete", zap.Int64("uid", uid), zap.Int64("id", id), zap.Error(err))
		return code.ErrorCollectionDeleteFailed.WithDetails(err.Error())
	}
	if err := s.collNoteRepo.DeleteByCollectionID(ctx, id); err != nil {
		s.logger.Warn("collection membership cleanup", zap.Int64("id", id), zap.Error(err))
	}
	return nil
}

func (s *collectionService) List(ctx context.Context, uid int64) ([]*dto.CollectionDTO, error) {
	colls, err := s.collRepo.ListByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	out := make([]*dto.CollectionDTO, 0, len(colls))
	for _, c := range colls {
		out = append(out, collectionToDTO(c))
	}
	return out, nil
}

func (s *collectionService) AddNote(ctx context.Context, uid, collectionID, noteID int64) error {
	if _, err := s.getOwned(ctx, uid, collectionID); err != nil {
		return err
	}
	if _, err := s.noteRepo.GetByID(ctx, noteID, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorNoteNotExist
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	existing, err := s.collNoteRepo.Get(ctx, collectionID, noteID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	if existing != nil {
		return nil
	}

	if _, err := s.collNoteRepo.Create(ctx, &domain.CollectionNote{
		CollectionID: collectionID,
		NoteID:       noteID,
		UID:          uid,
	}); err != nil {
		s.logger.Error("collection note add", zap.Int64("collectionId", collectionID), zap.Int64("noteId", noteID), zap.Error(err))
		return code.ErrorCollectionNoteFailed.WithDetails(err.Error())
	}
	if err := s.collRepo.IncrNoteCount(ctx, collectionID, 1); err != nil {
		s.logger.Warn("collection counter", zap.Int64("collectionId", collectionID), zap.Error(err))
	}
	return nil
}

func (s *collectionService) RemoveNote(ctx context.Context, uid, collectionID, noteID int64) error {
	if _, err := s.getOwned(ctx, uid, collectionID); err != nil {
		return err
	}

	if err := s.collNoteRepo.Delete(ctx, collectionID, noteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorNotFound
		}
		s.logger.Error("collection note remove", zap.Int64("collectionId", collectionID), zap.Int64("noteId", noteID), zap.Error(err))
		return code.ErrorCollectionNoteFailed.WithDetails(err.Error())
	}
	if err := s.collRepo.IncrNoteCount(ctx, collectionID, -1); err != nil {
		s.logger.Warn("collection counter", zap.Int64("collectionId", collectionID), zap.Error(err))
	}
	return nil
}

func (s *collectionService) Notes(ctx context.Context, uid, collectionID int64) ([]*dto.NoteDTO, error) {
	if _, err := s.getOwned(ctx, uid, collectionID); err != nil {
		return nil, err
	}

	ids, err := s.collNoteRepo.NoteIDs(ctx, collectionID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	out := make([]*dto.NoteDTO, 0, len(ids))
	for _, id := range ids {
		note, err := s.noteRepo.GetByID(ctx, id, uid)
		if err != nil {
			// stale membership, the cleanup task removes it
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
		out = append(out, noteToDTO(note))
	}
	return out, nil
}

func (s *collectionService) getOwned(ctx context.Context, uid, id int64) (*domain.Collection, error) {
	coll, err := s.collRepo.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorCollectionNotExist
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return coll, nil
}
