package repository

import (
	"context"
	"fmt"

	"kioku/internal/httpapi/models"

	"gorm.io/gorm"
)

// MediaRepository handles persistence for library items. Every query is
// scoped to the owning user; a row belonging to someone else is
// indistinguishable from a missing one.
type MediaRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.MediaItem, error)
	GetByID(ctx context.Context, userID, id string) (*models.MediaItem, error)
	FindByMalID(ctx context.Context, userID string, malID int64) (*models.MediaItem, error)
	Create(ctx context.Context, item *models.MediaItem) error
	Update(ctx context.Context, userID, id string, changes map[string]interface{}) error
	Delete(ctx context.Context, userID, id string) error
	CountByType(ctx context.Context, userID, mediaType string) (int64, error)
	CountByStatus(ctx context.Context, userID string, statuses ...string) (int64, error)
	RecentlyUpdated(ctx context.Context, userID string, limit int) ([]models.MediaItem, error)
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) ListByUser(ctx context.Context, userID string) ([]models.MediaItem, error) {
	var items []models.MediaItem

	if err := r.db.WithContext(ctx).
		Preload("CustomLists").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list media items: %w", err)
	}

	return items, nil
}

func (r *mediaRepository) GetByID(ctx context.Context, userID, id string) (*models.MediaItem, error) {
	var item models.MediaItem
	if err := r.db.WithContext(ctx).
		Preload("CustomLists").
		Preload("Comments").
		Preload("Reviews").
		Where("user_id = ?", userID).
		First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *mediaRepository) FindByMalID(ctx context.Context, userID string, malID int64) (*models.MediaItem, error) {
	var item models.MediaItem
	// First() rather than expecting uniqueness, duplicates may already exist
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND mal_id = ?", userID, malID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *mediaRepository) Create(ctx context.Context, item *models.MediaItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create media item: %w", err)
	}
	return nil
}

func (r *mediaRepository) Update(ctx context.Context, userID, id string, changes map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.MediaItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(changes)

	if result.Error != nil {
		return fmt.Errorf("update media item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *mediaRepository) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.MediaItem{})

	if result.Error != nil {
		return fmt.Errorf("delete media item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *mediaRepository) CountByType(ctx context.Context, userID, mediaType string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MediaItem{}).
		Where("user_id = ? AND type = ?", userID, mediaType).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *mediaRepository) CountByStatus(ctx context.Context, userID string, statuses ...string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MediaItem{}).
		Where("user_id = ? AND status IN ?", userID, statuses).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *mediaRepository) RecentlyUpdated(ctx context.Context, userID string, limit int) ([]models.MediaItem, error) {
	var items []models.MediaItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("recently updated: %w", err)
	}
	return items, nil
}
