package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kioku/internal/httpapi/models"
	"kioku/internal/httpapi/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockMediaService mocks the MediaService interface
type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) List(ctx context.Context, userID string) ([]models.MediaItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MediaItem), args.Error(1)
}

func (m *MockMediaService) Get(ctx context.Context, userID, id string) (*models.MediaItem, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaItem), args.Error(1)
}

func (m *MockMediaService) Create(ctx context.Context, userID string, item models.MediaItem) (*models.MediaItem, bool, error) {
	args := m.Called(ctx, userID, item)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.MediaItem), args.Bool(1), args.Error(2)
}

func (m *MockMediaService) Update(ctx context.Context, userID, id string, changes map[string]interface{}) (*models.MediaItem, error) {
	args := m.Called(ctx, userID, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaItem), args.Error(1)
}

func (m *MockMediaService) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func mediaRouter(svc service.MediaService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if userID != "" {
		r.Use(func(c *gin.Context) { c.Set("userID", userID) })
	}
	NewMediaHandler(svc).RegisterRoutes(r.Group("/media"))
	return r
}

func createBody() []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"title":       "Vinland Saga",
		"type":        "anime",
		"status":      "watching",
		"cover_image": "https://example.com/vinland.jpg",
	})
	return body
}

func TestMediaCreateHandler_NewItemIs201(t *testing.T) {
	svc := new(MockMediaService)
	router := mediaRouter(svc, "user-1")

	svc.On("Create", mock.Anything, "user-1", mock.AnythingOfType("models.MediaItem")).
		Return(&models.MediaItem{ID: "item-1", Title: "Vinland Saga"}, true, nil)

	req, _ := http.NewRequest("POST", "/media/", bytes.NewBuffer(createBody()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestMediaCreateHandler_CatalogUpsertIs200(t *testing.T) {
	svc := new(MockMediaService)
	router := mediaRouter(svc, "user-1")

	svc.On("Create", mock.Anything, "user-1", mock.AnythingOfType("models.MediaItem")).
		Return(&models.MediaItem{ID: "existing", Title: "Vinland Saga"}, false, nil)

	req, _ := http.NewRequest("POST", "/media/", bytes.NewBuffer(createBody()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMediaCreateHandler_InvalidTypeIs400(t *testing.T) {
	svc := new(MockMediaService)
	router := mediaRouter(svc, "user-1")

	body, _ := json.Marshal(map[string]interface{}{
		"title":       "x",
		"type":        "light-novel",
		"status":      "watching",
		"cover_image": "https://example.com/x.jpg",
	})
	req, _ := http.NewRequest("POST", "/media/", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestMediaGetHandler_NotFoundIs404(t *testing.T) {
	svc := new(MockMediaService)
	router := mediaRouter(svc, "user-1")

	svc.On("Get", mock.Anything, "user-1", "missing").Return(nil, service.ErrNotFound)

	req, _ := http.NewRequest("GET", "/media/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMediaUpdateHandler_SendsOnlySetFields(t *testing.T) {
	svc := new(MockMediaService)
	router := mediaRouter(svc, "user-1")

	svc.On("Update", mock.Anything, "user-1", "item-1",
		map[string]interface{}{"score": 7.5}).
		Return(&models.MediaItem{ID: "item-1", Score: 7.5}, nil)

	body, _ := json.Marshal(map[string]interface{}{"score": 7.5})
	req, _ := http.NewRequest("PATCH", "/media/item-1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestMediaDeleteHandler_Missing404(t *testing.T) {
	svc := new(MockMediaService)
	router := mediaRouter(svc, "user-1")

	svc.On("Delete", mock.Anything, "user-1", "gone").Return(service.ErrNotFound)

	req, _ := http.NewRequest("DELETE", "/media/gone", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMediaHandlers_MissingUserIs401(t *testing.T) {
	svc := new(MockMediaService)
	router := mediaRouter(svc, "")

	req, _ := http.NewRequest("GET", "/media/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
