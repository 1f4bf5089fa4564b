package service

import (
	"context"
	"errors"
	"strings"

	"kioku/internal/httpapi/models"
	"kioku/internal/httpapi/repository"

	"gorm.io/gorm"
)

type CalendarService interface {
	List(ctx context.Context, userID string) ([]models.CalendarEntry, error)
	Create(ctx context.Context, userID string, entry models.CalendarEntry) (*models.CalendarEntry, error)
	Update(ctx context.Context, userID, id string, changes map[string]interface{}) (*models.CalendarEntry, error)
	Delete(ctx context.Context, userID, id string) error
}

type calendarService struct {
	repo repository.CalendarRepository
}

func NewCalendarService(repo repository.CalendarRepository) CalendarService {
	return &calendarService{repo: repo}
}

func (s *calendarService) List(ctx context.Context, userID string) ([]models.CalendarEntry, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *calendarService) Create(ctx context.Context, userID string, entry models.CalendarEntry) (*models.CalendarEntry, error) {
	entry.UserID = userID
	// canonical day tokens are lowercase weekday names
	entry.DayOfWeek = strings.ToLower(entry.DayOfWeek)
	if err := s.repo.Create(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *calendarService) Update(ctx context.Context, userID, id string, changes map[string]interface{}) (*models.CalendarEntry, error) {
	if day, ok := changes["day_of_week"].(string); ok {
		changes["day_of_week"] = strings.ToLower(day)
	}

	if err := s.repo.Update(ctx, userID, id, changes); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	entry, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *calendarService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
