package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sanjeebSubedi/Demake-Backend/internal/apperrors"
	"github.com/sanjeebSubedi/Demake-Backend/internal/models"
	"github.com/sanjeebSubedi/Demake-Backend/internal/repository"
	"github.com/sanjeebSubedi/Demake-Backend/pkg/logger"
)

const maxCommentLength = 500

type CommentService struct {
	commentRepo *repository.CommentRepository
	logger      *logger.Logger
}

func NewCommentService(commentRepo *repository.CommentRepository, logger *logger.Logger) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		logger:      logger,
	}
}

type CreateCommentRequest struct {
	CommentText     string     `json:"comment_text"`
	ParentCommentID *uuid.UUID `json:"parent_comment_id"`
}

func (s *CommentService) Create(ctx context.Context, userID uuid.UUID, req *CreateCommentRequest) (*models.Comment, error) {
	if strings.TrimSpace(req.CommentText) == "" {
		return nil, apperrors.ErrEmptyComment
	}
	if utf8.RuneCountInString(req.CommentText) > maxCommentLength {
		return nil, apperrors.ErrCommentOverflow
	}

	if req.ParentCommentID != nil {
		exists, err := s.commentRepo.Exists(ctx, *req.ParentCommentID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.ErrInvalidParentComment
		}
	}

	comment := &models.Comment{
		UserID:          userID,
		CommentText:     req.CommentText,
		ParentCommentID: req.ParentCommentID,
		CreatedAt:       time.Now(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"comment_id": comment.ID,
		"user_id":    userID,
	}).Info("Comment created")

	return comment, nil
}

func (s *CommentService) List(ctx context.Context, offset, limit int) ([]*models.Comment, error) {
	return s.commentRepo.List(ctx, offset, limit)
}

func (s *CommentService) Delete(ctx context.Context, commentID, requesterID uuid.UUID) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return apperrors.ErrCommentNotFound
	}
	if comment.UserID != requesterID {
		return apperrors.ErrNonOwnerDelete
	}

	if err := s.commentRepo.DeleteWithChildren(ctx, commentID); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"comment_id": commentID,
		"user_id":    requesterID,
	}).Info("Comment deleted")

	return nil
}
