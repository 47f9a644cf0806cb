package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/notehub/note-hub-service/internal/domain"
	"github.com/notehub/note-hub-service/internal/dto"
	"github.com/notehub/note-hub-service/pkg/code"
)

// SocialService covers likes and comments on shared notes.
type SocialService interface {
	// ToggleLike flips the user's like on a note and returns the new
	// state with the maintained counter.
	ToggleLike(ctx context.Context, uid, noteID int64) (*dto.LikeToggleDTO, error)

	// AddComment attaches a comment with the author snapshot.
	AddComment(ctx context.Context, uid, noteID int64, params *dto.CommentCreateRequest) (*dto.CommentDTO, error)

	// DeleteComment removes the user's own comment.
	DeleteComment(ctx context.Context, uid, commentID int64) error

	// ListComments returns the comments of a note, newest first.
	ListComments(ctx context.Context, noteID int64) ([]*dto.CommentDTO, error)
}

type socialService struct {
	noteRepo    domain.NoteRepository
	userRepo    domain.UserRepository
	likeRepo    domain.LikeRepository
	commentRepo domain.CommentRepository
	logger      *zap.Logger
}

// NewSocialService wires the social service.
func NewSocialService(noteRepo domain.NoteRepository, userRepo domain.UserRepository, likeRepo domain.LikeRepository, commentRepo domain.CommentRepository, logger *zap.Logger) SocialService {
	return &socialService{
		noteRepo:    noteRepo,
		userRepo:    userRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

func (s *socialService) ToggleLike(ctx context.Context, uid, noteID int64) (*dto.LikeToggleDTO, error) {
	if _, err := s.noteRepo.GetAnyByID(ctx, noteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotExist
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	existing, err := s.likeRepo.Get(ctx, noteID, uid)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	liked := existing == nil
	if liked {
		_, err = s.likeRepo.Create(ctx, &domain.Like{NoteID: noteID, UID: uid})
	} else {
		err = s.likeRepo.Delete(ctx, noteID, uid)
	}
	if err != nil {
		s.logger.Error("like toggle", zap.Int64("uid", uid), zap.Int64("noteId", noteID), zap.Error(err))
		return nil, code.ErrorLikeToggleFailed.WithDetails(err.Error())
	}

	delta := int64(1)
	if !liked {
		delta = -1
	}
	if err := s.noteRepo.IncrLikes(ctx, noteID, delta); err != nil {
		s.logger.Warn("like counter", zap.Int64("noteId", noteID), zap.Error(err))
	}

	count, err := s.likeRepo.CountByNoteID(ctx, noteID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return &dto.LikeToggleDTO{Liked: liked, Likes: count}, nil
}

func (s *socialService) AddComment(ctx context.Context, uid, noteID int64, params *dto.CommentCreateRequest) (*dto.CommentDTO, error) {
	if _, err := s.noteRepo.GetAnyByID(ctx, noteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotExist
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorUserNotExist
	}

	comment, err := s.commentRepo.Create(ctx, &domain.Comment{
		NoteID:       noteID,
		UID:          uid,
		AuthorName:   user.DisplayName(),
		AuthorAvatar: user.Avatar,
		Content:      params.Content,
	})
	if err != nil {
		s.logger.Error("comment add", zap.Int64("uid", uid), zap.Int64("noteId", noteID), zap.Error(err))
		return nil, code.ErrorCommentAddFailed.WithDetails(err.Error())
	}

	if err := s.noteRepo.IncrComments(ctx, noteID, 1); err != nil {
		s.logger.Warn("comment counter", zap.Int64("noteId", noteID), zap.Error(err))
	}
	return commentToDTO(comment), nil
}

func (s *socialService) DeleteComment(ctx context.Context, uid, commentID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	if comment.UID != uid {
		return code.ErrorCommentNotOwner
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		s.logger.Error("comment delete", zap.Int64("uid", uid), zap.Int64("commentId", commentID), zap.Error(err))
		return code.ErrorCommentDeleteFailed.WithDetails(err.Error())
	}
	if err := s.noteRepo.IncrComments(ctx, comment.NoteID, -1); err != nil {
		s.logger.Warn("comment counter", zap.Int64("noteId", comment.NoteID), zap.Error(err))
	}
	return nil
}

func (s *socialService) ListComments(ctx context.Context, noteID int64) ([]*dto.CommentDTO, error) {
	comments, err := s.commentRepo.ListByNoteID(ctx, noteID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	out := make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentToDTO(c))
	}
	return out, nil
}
