package service

import (
	"context"
	"errors"

	"kioku/internal/httpapi/models"
	"kioku/internal/httpapi/repository"

	"gorm.io/gorm"
)

type ListService interface {
	List(ctx context.Context, userID string) ([]models.CustomList, error)
	Get(ctx context.Context, userID, id string) (*models.CustomList, error)
	Create(ctx context.Context, userID string, list models.CustomList, mediaItemIDs []string) (*models.CustomList, error)
	Update(ctx context.Context, userID, id string, changes map[string]interface{}, mediaItemIDs *[]string) (*models.CustomList, error)
	Delete(ctx context.Context, userID, id string) error
	AddItem(ctx context.Context, userID, listID, mediaID string) error
	RemoveItem(ctx context.Context, userID, listID, mediaID string) error
}

type listService struct {
	repo      repository.ListRepository
	mediaRepo repository.MediaRepository
}

func NewListService(repo repository.ListRepository, mediaRepo repository.MediaRepository) ListService {
	return &listService{repo: repo, mediaRepo: mediaRepo}
}

func (s *listService) List(ctx context.Context, userID string) ([]models.CustomList, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *listService) Get(ctx context.Context, userID, id string) (*models.CustomList, error) {
	list, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return list, nil
}

func (s *listService) Create(ctx context.Context, userID string, list models.CustomList, mediaItemIDs []string) (*models.CustomList, error) {
	list.UserID = userID
	if err := s.repo.Create(ctx, &list); err != nil {
		return nil, err
	}

	if len(mediaItemIDs) > 0 {
		if err := s.repo.ReplaceItems(ctx, list.ID, mediaItemIDs); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, userID, list.ID)
}

func (s *listService) Update(ctx context.Context, userID, id string, changes map[string]interface{}, mediaItemIDs *[]string) (*models.CustomList, error) {
	if len(changes) > 0 {
		if err := s.repo.Update(ctx, userID, id, changes); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	} else {
		// ownership check even when only membership is synced
		if _, err := s.Get(ctx, userID, id); err != nil {
			return nil, err
		}
	}

	if mediaItemIDs != nil {
		if err := s.repo.ReplaceItems(ctx, id, *mediaItemIDs); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, userID, id)
}

func (s *listService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// AddItem puts a media item into a list. Adding an item that is already a
// member is a no-op, not an error.
func (s *listService) AddItem(ctx context.Context, userID, listID, mediaID string) error {
	if _, err := s.Get(ctx, userID, listID); err != nil {
		return err
	}
	if _, err := s.mediaRepo.GetByID(ctx, userID, mediaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	exists, err := s.repo.HasItem(ctx, listID, mediaID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return s.repo.AddItem(ctx, listID, mediaID)
}

// RemoveItem is idempotent: removing an item that is not in the list is a no-op.
func (s *listService) RemoveItem(ctx context.Context, userID, listID, mediaID string) error {
	if _, err := s.Get(ctx, userID, listID); err != nil {
		return err
	}
	return s.repo.RemoveItem(ctx, listID, mediaID)
}
