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

// MockMediaRepository mocks the MediaRepository interface
type MockMediaRepository struct {
	mock.Mock
}

func (m *MockMediaRepository) ListByUser(ctx context.Context, userID string) ([]models.MediaItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MediaItem), args.Error(1)
}

func (m *MockMediaRepository) GetByID(ctx context.Context, userID, id string) (*models.MediaItem, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaItem), args.Error(1)
}

func (m *MockMediaRepository) FindByMalID(ctx context.Context, userID string, malID int64) (*models.MediaItem, error) {
	args := m.Called(ctx, userID, malID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaItem), args.Error(1)
}

func (m *MockMediaRepository) Create(ctx context.Context, item *models.MediaItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMediaRepository) Update(ctx context.Context, userID, id string, changes map[string]interface{}) error {
	args := m.Called(ctx, userID, id, changes)
	return args.Error(0)
}

func (m *MockMediaRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockMediaRepository) CountByType(ctx context.Context, userID, mediaType string) (int64, error) {
	args := m.Called(ctx, userID, mediaType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMediaRepository) CountByStatus(ctx context.Context, userID string, statuses ...string) (int64, error) {
	callArgs := []interface{}{ctx, userID}
	for _, s := range statuses {
		callArgs = append(callArgs, s)
	}
	args := m.Called(callArgs...)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMediaRepository) RecentlyUpdated(ctx context.Context, userID string, limit int) ([]models.MediaItem, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MediaItem), args.Error(1)
}

func TestMediaCreate_NewItem(t *testing.T) {
	repo := new(MockMediaRepository)
	svc := NewMediaService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.MediaItem")).Return(nil)

	item, created, err := svc.Create(context.Background(), "user-1", models.MediaItem{
		Title:  "Vinland Saga",
		Type:   "anime",
		Status: "watching",
	})

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "user-1", item.UserID)
	repo.AssertExpectations(t)
}

func TestMediaCreate_ExistingMalIDUpserts(t *testing.T) {
	repo := new(MockMediaRepository)
	svc := NewMediaService(repo)

	malID := int64(5114)
	existing := &models.MediaItem{ID: "existing-id", UserID: "user-1", Title: "FMA:B (old title)"}
	refreshed := &models.MediaItem{ID: "existing-id", UserID: "user-1", Title: "Fullmetal Alchemist: Brotherhood"}

	repo.On("FindByMalID", mock.Anything, "user-1", malID).Return(existing, nil)
	repo.On("Update", mock.Anything, "user-1", "existing-id", mock.Anything).Return(nil)
	repo.On("GetByID", mock.Anything, "user-1", "existing-id").Return(refreshed, nil)

	item, created, err := svc.Create(context.Background(), "user-1", models.MediaItem{
		MalID:  &malID,
		Title:  "Fullmetal Alchemist: Brotherhood",
		Type:   "anime",
		Status: "completed",
	})

	require.NoError(t, err)
	assert.False(t, created, "matching catalog id must update, not insert")
	assert.Equal(t, "existing-id", item.ID)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestMediaCreate_UnknownMalIDInserts(t *testing.T) {
	repo := new(MockMediaRepository)
	svc := NewMediaService(repo)

	malID := int64(44511)
	repo.On("FindByMalID", mock.Anything, "user-1", malID).Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.MediaItem")).Return(nil)

	_, created, err := svc.Create(context.Background(), "user-1", models.MediaItem{
		MalID: &malID,
		Title: "Chainsaw Man",
	})

	require.NoError(t, err)
	assert.True(t, created)
	repo.AssertExpectations(t)
}

func TestMediaGet_ForeignRowReadsAsNotFound(t *testing.T) {
	repo := new(MockMediaRepository)
	svc := NewMediaService(repo)

	repo.On("GetByID", mock.Anything, "user-1", "someone-elses-item").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), "user-1", "someone-elses-item")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMediaUpdate_EmptyChangesJustReloads(t *testing.T) {
	repo := new(MockMediaRepository)
	svc := NewMediaService(repo)

	item := &models.MediaItem{ID: "item-1", UserID: "user-1"}
	repo.On("GetByID", mock.Anything, "user-1", "item-1").Return(item, nil)

	got, err := svc.Update(context.Background(), "user-1", "item-1", map[string]interface{}{})

	require.NoError(t, err)
	assert.Equal(t, "item-1", got.ID)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMediaDelete_MissingRowIsNotFound(t *testing.T) {
	repo := new(MockMediaRepository)
	svc := NewMediaService(repo)

	repo.On("Delete", mock.Anything, "user-1", "gone").Return(gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), "user-1", "gone")

	assert.ErrorIs(t, err, ErrNotFound)
}
