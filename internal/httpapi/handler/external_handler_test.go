package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"kioku/internal/metadata/jikan"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockExternalService mocks the ExternalService interface
type MockExternalService struct {
	mock.Mock
}

func (m *MockExternalService) Search(ctx context.Context, kind, query string) ([]jikan.Entry, error) {
	args := m.Called(ctx, kind, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]jikan.Entry), args.Error(1)
}

func (m *MockExternalService) Lookup(ctx context.Context, kind string, malID int64) (*jikan.Entry, error) {
	args := m.Called(ctx, kind, malID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jikan.Entry), args.Error(1)
}

func (m *MockExternalService) Seasonal(ctx context.Context) ([]jikan.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]jikan.Entry), args.Error(1)
}

func (m *MockExternalService) Recommendations(ctx context.Context, kind string, malID int64) ([]jikan.Entry, error) {
	args := m.Called(ctx, kind, malID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]jikan.Entry), args.Error(1)
}

func externalRouter(svc *MockExternalService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewExternalHandler(svc).RegisterRoutes(r.Group("/api/external"))
	return r
}

func TestExternalHandlerSearch_ManhwaMapsToManga(t *testing.T) {
	svc := new(MockExternalService)
	r := externalRouter(svc)

	svc.On("Search", mock.Anything, "manga", "tower").Return([]jikan.Entry{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/external/search?type=manhwa&q=tower", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestExternalHandlerRecommendations_RoutesByKind(t *testing.T) {
	svc := new(MockExternalService)
	r := externalRouter(svc)

	svc.On("Recommendations", mock.Anything, "manga", int64(2)).Return([]jikan.Entry{
		{MalID: 7, Title: "Vagabond"},
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/external/manga/2/recommendations", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Vagabond")
}

func TestExternalHandlerDetail_InvalidIDIsBadRequest(t *testing.T) {
	svc := new(MockExternalService)
	r := externalRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/external/anime/not-a-number", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything, mock.Anything)
}

func TestExternalHandlerSeasonal_ReturnsResults(t *testing.T) {
	svc := new(MockExternalService)
	r := externalRouter(svc)

	svc.On("Seasonal", mock.Anything).Return([]jikan.Entry{{MalID: 1, Title: "Frieren"}}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/external/seasonal", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Frieren")
}
