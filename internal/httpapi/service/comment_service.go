package service

import (
	"context"
	"errors"

	"kioku/internal/httpapi/models"
	"kioku/internal/httpapi/repository"

	"gorm.io/gorm"
)

type CommentService interface {
	Create(ctx context.Context, userID, mediaID, content string) (*models.Comment, error)
	Delete(ctx context.Context, userID, id string) error
	ListByMediaItem(ctx context.Context, userID, mediaID string) ([]models.Comment, error)
}

type commentService struct {
	repo      repository.CommentRepository
	mediaRepo repository.MediaRepository
}

func NewCommentService(repo repository.CommentRepository, mediaRepo repository.MediaRepository) CommentService {
	return &commentService{repo: repo, mediaRepo: mediaRepo}
}

func (s *commentService) Create(ctx context.Context, userID, mediaID, content string) (*models.Comment, error) {
	if _, err := s.mediaRepo.GetByID(ctx, userID, mediaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := models.Comment{
		UserID:      userID,
		MediaItemID: mediaID,
		Content:     content,
	}
	if err := s.repo.Create(ctx, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *commentService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *commentService) ListByMediaItem(ctx context.Context, userID, mediaID string) ([]models.Comment, error) {
	if _, err := s.mediaRepo.GetByID(ctx, userID, mediaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.repo.ListByMediaItem(ctx, mediaID)
}
