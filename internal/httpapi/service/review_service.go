package service

import (
	"context"
	"errors"

	"kioku/internal/httpapi/models"
	"kioku/internal/httpapi/repository"

	"gorm.io/gorm"
)

type ReviewService interface {
	Create(ctx context.Context, userID, mediaID string, review models.Review) (*models.Review, error)
	Delete(ctx context.Context, userID, id string) error
}

type reviewService struct {
	repo      repository.ReviewRepository
	mediaRepo repository.MediaRepository
}

func NewReviewService(repo repository.ReviewRepository, mediaRepo repository.MediaRepository) ReviewService {
	return &reviewService{repo: repo, mediaRepo: mediaRepo}
}

func (s *reviewService) Create(ctx context.Context, userID, mediaID string, review models.Review) (*models.Review, error) {
	if _, err := s.mediaRepo.GetByID(ctx, userID, mediaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	review.UserID = userID
	review.MediaItemID = mediaID
	if err := s.repo.Create(ctx, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *reviewService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
