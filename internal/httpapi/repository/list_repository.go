package repository

import (
	"context"
	"fmt"

	"kioku/internal/httpapi/models"

	"gorm.io/gorm"
)

type ListRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.CustomList, error)
	GetByID(ctx context.Context, userID, id string) (*models.CustomList, error)
	Create(ctx context.Context, list *models.CustomList) error
	Update(ctx context.Context, userID, id string, changes map[string]interface{}) error
	Delete(ctx context.Context, userID, id string) error
	AddItem(ctx context.Context, listID, mediaID string) error
	RemoveItem(ctx context.Context, listID, mediaID string) error
	HasItem(ctx context.Context, listID, mediaID string) (bool, error)
	ReplaceItems(ctx context.Context, listID string, mediaIDs []string) error
}

type listRepository struct {
	db *gorm.DB
}

func NewListRepository(db *gorm.DB) ListRepository {
	return &listRepository{db: db}
}

func (r *listRepository) ListByUser(ctx context.Context, userID string) ([]models.CustomList, error) {
	var lists []models.CustomList
	if err := r.db.WithContext(ctx).
		Preload("MediaItems").
		Where("user_id = ?", userID).
		Order("name").
		Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("list custom lists: %w", err)
	}
	return lists, nil
}

func (r *listRepository) GetByID(ctx context.Context, userID, id string) (*models.CustomList, error) {
	var list models.CustomList
	if err := r.db.WithContext(ctx).
		Preload("MediaItems").
		Where("user_id = ?", userID).
		First(&list, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *listRepository) Create(ctx context.Context, list *models.CustomList) error {
	if err := r.db.WithContext(ctx).Create(list).Error; err != nil {
		return fmt.Errorf("create custom list: %w", err)
	}
	return nil
}

func (r *listRepository) Update(ctx context.Context, userID, id string, changes map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.CustomList{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(changes)

	if result.Error != nil {
		return fmt.Errorf("update custom list: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *listRepository) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.CustomList{})

	if result.Error != nil {
		return fmt.Errorf("delete custom list: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *listRepository) AddItem(ctx context.Context, listID, mediaID string) error {
	item := &models.CustomListItem{
		CustomListID: listID,
		MediaItemID:  mediaID,
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("add item to list: %w", err)
	}
	return nil
}

func (r *listRepository) RemoveItem(ctx context.Context, listID, mediaID string) error {
	// No RowsAffected check here, removing an absent membership is a no-op
	if err := r.db.WithContext(ctx).
		Where("custom_list_id = ? AND media_item_id = ?", listID, mediaID).
		Delete(&models.CustomListItem{}).Error; err != nil {
		return fmt.Errorf("remove item from list: %w", err)
	}
	return nil
}

func (r *listRepository) HasItem(ctx context.Context, listID, mediaID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CustomListItem{}).
		Where("custom_list_id = ? AND media_item_id = ?", listID, mediaID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ReplaceItems syncs the full membership of a list in one transaction.
func (r *listRepository) ReplaceItems(ctx context.Context, listID string, mediaIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("custom_list_id = ?", listID).Delete(&models.CustomListItem{}).Error; err != nil {
			return fmt.Errorf("clear list items: %w", err)
		}
		for _, mediaID := range mediaIDs {
			item := &models.CustomListItem{CustomListID: listID, MediaItemID: mediaID}
			if err := tx.Create(item).Error; err != nil {
				return fmt.Errorf("sync list item: %w", err)
			}
		}
		return nil
	})
}
