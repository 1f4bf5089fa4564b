package service

import (
	"context"
	"testing"

	"kioku/internal/httpapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockCalendarRepository mocks the CalendarRepository interface
type MockCalendarRepository struct {
	mock.Mock
}

func (m *MockCalendarRepository) ListByUser(ctx context.Context, userID string) ([]models.CalendarEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CalendarEntry), args.Error(1)
}

func (m *MockCalendarRepository) Create(ctx context.Context, entry *models.CalendarEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCalendarRepository) Update(ctx context.Context, userID, id string, changes map[string]interface{}) error {
	args := m.Called(ctx, userID, id, changes)
	return args.Error(0)
}

func (m *MockCalendarRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockCalendarRepository) GetByID(ctx context.Context, userID, id string) (*models.CalendarEntry, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CalendarEntry), args.Error(1)
}

func TestCalendarCreate_LowercasesDayToken(t *testing.T) {
	repo := new(MockCalendarRepository)
	svc := NewCalendarService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.CalendarEntry")).Return(nil)

	entry, err := svc.Create(context.Background(), "user-1", models.CalendarEntry{
		Title:     "One Piece",
		DayOfWeek: "Sunday",
	})

	require.NoError(t, err)
	assert.Equal(t, "sunday", entry.DayOfWeek)
	assert.Equal(t, "user-1", entry.UserID)
}

func TestCalendarUpdate_LowercasesDayChange(t *testing.T) {
	repo := new(MockCalendarRepository)
	svc := NewCalendarService(repo)

	repo.On("Update", mock.Anything, "user-1", "entry-1",
		map[string]interface{}{"day_of_week": "monday"}).Return(nil)
	repo.On("GetByID", mock.Anything, "user-1", "entry-1").
		Return(&models.CalendarEntry{ID: "entry-1", DayOfWeek: "monday"}, nil)

	entry, err := svc.Update(context.Background(), "user-1", "entry-1",
		map[string]interface{}{"day_of_week": "MONDAY"})

	require.NoError(t, err)
	assert.Equal(t, "monday", entry.DayOfWeek)
	repo.AssertExpectations(t)
}

func TestCalendarUpdate_ForeignEntryIsNotFound(t *testing.T) {
	repo := new(MockCalendarRepository)
	svc := NewCalendarService(repo)

	repo.On("Update", mock.Anything, "user-1", "foreign", mock.Anything).
		Return(gorm.ErrRecordNotFound)

	_, err := svc.Update(context.Background(), "user-1", "foreign",
		map[string]interface{}{"title": "x"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCalendarDelete_MissingEntryIsNotFound(t *testing.T) {
	repo := new(MockCalendarRepository)
	svc := NewCalendarService(repo)

	repo.On("Delete", mock.Anything, "user-1", "gone").Return(gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), "user-1", "gone")

	assert.ErrorIs(t, err, ErrNotFound)
}
