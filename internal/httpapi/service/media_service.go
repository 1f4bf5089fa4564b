package service

import (
	"context"
	"errors"

	"kioku/internal/httpapi/models"
	"kioku/internal/httpapi/repository"

	"gorm.io/gorm"
)

// ErrNotFound covers both genuinely missing rows and rows owned by another
// user: foreign-owned entities must be indistinguishable from absent ones.
var ErrNotFound = errors.New("not found")

type MediaService interface {
	List(ctx context.Context, userID string) ([]models.MediaItem, error)
	Get(ctx context.Context, userID, id string) (*models.MediaItem, error)
	Create(ctx context.Context, userID string, item models.MediaItem) (*models.MediaItem, bool, error)
	Update(ctx context.Context, userID, id string, changes map[string]interface{}) (*models.MediaItem, error)
	Delete(ctx context.Context, userID, id string) error
}

type mediaService struct {
	repo repository.MediaRepository
}

func NewMediaService(repo repository.MediaRepository) MediaService {
	return &mediaService{repo: repo}
}

func (s *mediaService) List(ctx context.Context, userID string) ([]models.MediaItem, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *mediaService) Get(ctx context.Context, userID, id string) (*models.MediaItem, error) {
	item, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// Create adds an item to the user's library. When the payload carries a
// catalog id that already exists in the library, the existing row is updated
// instead of inserting a duplicate. The bool result reports whether a new
// row was created.
func (s *mediaService) Create(ctx context.Context, userID string, item models.MediaItem) (*models.MediaItem, bool, error) {
	item.UserID = userID

	if item.MalID != nil {
		existing, err := s.repo.FindByMalID(ctx, userID, *item.MalID)
		if err == nil {
			changes := map[string]interface{}{
				"title":           item.Title,
				"type":            item.Type,
				"status":          item.Status,
				"cover_image":     item.CoverImage,
				"score":           item.Score,
				"current_episode": item.CurrentEpisode,
				"total_episodes":  item.TotalEpisodes,
				"current_chapter": item.CurrentChapter,
				"total_chapters":  item.TotalChapters,
				"current_volume":  item.CurrentVolume,
				"total_volumes":   item.TotalVolumes,
				"synopsis":        item.Synopsis,
				"genres":          item.Genres,
				"tags":            item.Tags,
				"is_favorite":     item.IsFavorite,
			}
			if err := s.repo.Update(ctx, userID, existing.ID, changes); err != nil {
				return nil, false, err
			}
			updated, err := s.repo.GetByID(ctx, userID, existing.ID)
			if err != nil {
				return nil, false, err
			}
			return updated, false, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
	}

	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, false, err
	}
	return &item, true, nil
}

func (s *mediaService) Update(ctx context.Context, userID, id string, changes map[string]interface{}) (*models.MediaItem, error) {
	if len(changes) == 0 {
		return s.Get(ctx, userID, id)
	}

	if err := s.repo.Update(ctx, userID, id, changes); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.Get(ctx, userID, id)
}

func (s *mediaService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
