package repository

import (
	"context"
	"fmt"

	"kioku/internal/httpapi/models"

	"gorm.io/gorm"
)

type CalendarRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.CalendarEntry, error)
	Create(ctx context.Context, entry *models.CalendarEntry) error
	Update(ctx context.Context, userID, id string, changes map[string]interface{}) error
	Delete(ctx context.Context, userID, id string) error
	GetByID(ctx context.Context, userID, id string) (*models.CalendarEntry, error)
}

type calendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &calendarRepository{db: db}
}

func (r *calendarRepository) ListByUser(ctx context.Context, userID string) ([]models.CalendarEntry, error) {
	var entries []models.CalendarEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list calendar entries: %w", err)
	}
	return entries, nil
}

func (r *calendarRepository) GetByID(ctx context.Context, userID, id string) (*models.CalendarEntry, error) {
	var entry models.CalendarEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *calendarRepository) Create(ctx context.Context, entry *models.CalendarEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create calendar entry: %w", err)
	}
	return nil
}

func (r *calendarRepository) Update(ctx context.Context, userID, id string, changes map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.CalendarEntry{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(changes)

	if result.Error != nil {
		return fmt.Errorf("update calendar entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *calendarRepository) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.CalendarEntry{})

	if result.Error != nil {
		return fmt.Errorf("delete calendar entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
