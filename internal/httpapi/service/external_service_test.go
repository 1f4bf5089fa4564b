package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"kioku/internal/metadata/jikan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMetadataSearcher mocks the MetadataSearcher interface
type MockMetadataSearcher struct {
	mock.Mock
}

func (m *MockMetadataSearcher) SearchAnime(ctx context.Context, query string) ([]jikan.Entry, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]jikan.Entry), args.Error(1)
}

func (m *MockMetadataSearcher) SearchManga(ctx context.Context, query string) ([]jikan.Entry, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]jikan.Entry), args.Error(1)
}

func (m *MockMetadataSearcher) GetAnimeByID(ctx context.Context, malID int64) (*jikan.Entry, error) {
	args := m.Called(ctx, malID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jikan.Entry), args.Error(1)
}

func (m *MockMetadataSearcher) GetMangaByID(ctx context.Context, malID int64) (*jikan.Entry, error) {
	args := m.Called(ctx, malID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jikan.Entry), args.Error(1)
}

func (m *MockMetadataSearcher) GetSeasonNow(ctx context.Context) ([]jikan.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]jikan.Entry), args.Error(1)
}

func (m *MockMetadataSearcher) SearchByGenres(ctx context.Context, kind string, genreIDs []int64, sfw bool) ([]jikan.Entry, error) {
	args := m.Called(ctx, kind, genreIDs, sfw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]jikan.Entry), args.Error(1)
}

func (m *MockMetadataSearcher) GetRecommendations(ctx context.Context, kind string, malID int64) ([]jikan.Recommendation, error) {
	args := m.Called(ctx, kind, malID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]jikan.Recommendation), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExternalSearch_ReturnsProviderResults(t *testing.T) {
	searcher := new(MockMetadataSearcher)
	svc := NewExternalService(searcher, nil, discardLogger())

	searcher.On("SearchAnime", mock.Anything, "bebop").Return([]jikan.Entry{
		{MalID: 1, Title: "Cowboy Bebop"},
	}, nil)

	results, err := svc.Search(context.Background(), "anime", "bebop")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Cowboy Bebop", results[0].Title)
}

func TestExternalSearch_ProviderFailureDegradesToEmpty(t *testing.T) {
	searcher := new(MockMetadataSearcher)
	svc := NewExternalService(searcher, nil, discardLogger())

	searcher.On("SearchManga", mock.Anything, "berserk").Return(nil, errors.New("provider down"))

	results, err := svc.Search(context.Background(), "manga", "berserk")

	require.NoError(t, err, "provider outage must not surface as an error")
	assert.Empty(t, results)
}

func TestExternalSearch_UnknownKindIsRejected(t *testing.T) {
	searcher := new(MockMetadataSearcher)
	svc := NewExternalService(searcher, nil, discardLogger())

	_, err := svc.Search(context.Background(), "movie", "x")

	assert.Error(t, err)
	searcher.AssertNotCalled(t, "SearchAnime", mock.Anything, mock.Anything)
	searcher.AssertNotCalled(t, "SearchManga", mock.Anything, mock.Anything)
}

func TestExternalSeasonal_ProviderFailureDegradesToEmpty(t *testing.T) {
	searcher := new(MockMetadataSearcher)
	svc := NewExternalService(searcher, nil, discardLogger())

	searcher.On("GetSeasonNow", mock.Anything).Return(nil, errors.New("provider down"))

	results, err := svc.Seasonal(context.Background())

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestExternalLookup_UnknownKindIsRejected(t *testing.T) {
	searcher := new(MockMetadataSearcher)
	svc := NewExternalService(searcher, nil, discardLogger())

	_, err := svc.Lookup(context.Background(), "movie", 1)

	assert.Error(t, err)
	searcher.AssertNotCalled(t, "GetAnimeByID", mock.Anything, mock.Anything)
	searcher.AssertNotCalled(t, "GetMangaByID", mock.Anything, mock.Anything)
}

func TestRecommendations_SeedsFromDemographicsAndGenres(t *testing.T) {
	searcher := new(MockMetadataSearcher)
	svc := NewExternalService(searcher, nil, discardLogger())

	searcher.On("GetMangaByID", mock.Anything, int64(2)).Return(&jikan.Entry{
		MalID:        2,
		Title:        "Berserk",
		Genres:       []jikan.Named{{MalID: 1, Name: "Action"}, {MalID: 14, Name: "Horror"}},
		Demographics: []jikan.Named{{MalID: 42, Name: "Seinen"}},
	}, nil)
	// demographic first, then the high-priority genre, then the rest
	searcher.On("SearchByGenres", mock.Anything, "manga", []int64{42, 14, 1}, true).Return([]jikan.Entry{
		{MalID: 2, Title: "Berserk"},
		{MalID: 7, Title: "Vagabond"},
	}, nil)

	results, err := svc.Recommendations(context.Background(), "manga", 2)

	require.NoError(t, err)
	require.Len(t, results, 1, "the seed work itself is filtered out")
	assert.Equal(t, "Vagabond", results[0].Title)
}

func TestRecommendations_ExplicitWorkDisablesSafeFilter(t *testing.T) {
	searcher := new(MockMetadataSearcher)
	svc := NewExternalService(searcher, nil, discardLogger())

	rating := "Rx - Hentai"
	searcher.On("GetAnimeByID", mock.Anything, int64(9)).Return(&jikan.Entry{
		MalID:  9,
		Rating: &rating,
		Genres: []jikan.Named{{MalID: 9, Name: "Ecchi"}},
	}, nil)
	searcher.On("SearchByGenres", mock.Anything, "anime", []int64{9}, false).Return([]jikan.Entry{
		{MalID: 11, Title: "Other"},
	}, nil)

	results, err := svc.Recommendations(context.Background(), "anime", 9)

	require.NoError(t, err)
	require.Len(t, results, 1)
	searcher.AssertExpectations(t)
}

func TestRecommendations_EmptySeededSearchFallsBack(t *testing.T) {
	searcher := new(MockMetadataSearcher)
	svc := NewExternalService(searcher, nil, discardLogger())

	searcher.On("GetAnimeByID", mock.Anything, int64(5)).Return(&jikan.Entry{
		MalID:  5,
		Genres: []jikan.Named{{MalID: 1, Name: "Action"}},
	}, nil)
	searcher.On("SearchByGenres", mock.Anything, "anime", []int64{1}, true).Return([]jikan.Entry{}, nil)
	searcher.On("GetRecommendations", mock.Anything, "anime", int64(5)).Return([]jikan.Recommendation{
		{Entry: jikan.RecommendationEntry{MalID: 30, Title: "Trigun"}, Votes: 12},
	}, nil)

	results, err := svc.Recommendations(context.Background(), "anime", 5)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Trigun", results[0].Title)
	assert.Equal(t, int64(30), results[0].MalID)
}

func TestRecommendations_TotalFailureDegradesToEmpty(t *testing.T) {
	searcher := new(MockMetadataSearcher)
	svc := NewExternalService(searcher, nil, discardLogger())

	searcher.On("GetAnimeByID", mock.Anything, int64(5)).Return(nil, errors.New("provider down"))
	searcher.On("GetRecommendations", mock.Anything, "anime", int64(5)).Return(nil, errors.New("provider down"))

	results, err := svc.Recommendations(context.Background(), "anime", 5)

	require.NoError(t, err)
	assert.Empty(t, results)
}
