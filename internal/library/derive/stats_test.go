package derive

import (
	"testing"

	"kioku/internal/library"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_EmptyInput(t *testing.T) {
	stats := Compute(nil)

	assert.Equal(t, 0, stats.TotalItems)
	assert.Equal(t, 0.0, stats.AverageScore)
	assert.Empty(t, stats.ByType)
	assert.Empty(t, stats.ByStatus)
	assert.Empty(t, stats.TopGenres)
	assert.Equal(t, 0.0, stats.WatchTimeHours)

	require.Len(t, stats.ScoreDistribution, 11)
	for _, bucket := range stats.ScoreDistribution {
		assert.Zero(t, bucket.Count)
	}
}

func TestCompute_MeanOverRatedItemsOnly(t *testing.T) {
	items := []library.MediaItem{
		{Score: 8},
		{Score: 0}, // unrated
		{Score: 6},
	}

	stats := Compute(items)

	assert.Equal(t, 7.0, stats.AverageScore)
	assert.Equal(t, 1, stats.ScoreDistribution[8].Count)
	assert.Equal(t, 1, stats.ScoreDistribution[6].Count)
	// unrated items still count in the 0 bucket
	assert.Equal(t, 1, stats.ScoreDistribution[0].Count)
}

func TestCompute_HistogramFloorsScores(t *testing.T) {
	items := []library.MediaItem{
		{Score: 7.9},
		{Score: 7.1},
		{Score: 10},
	}

	stats := Compute(items)

	assert.Equal(t, 2, stats.ScoreDistribution[7].Count)
	assert.Equal(t, 1, stats.ScoreDistribution[10].Count)
}

func TestCompute_CountsByTypeAndStatus(t *testing.T) {
	items := []library.MediaItem{
		{Type: library.TypeAnime, Status: library.StatusWatching},
		{Type: library.TypeAnime, Status: library.StatusCompleted},
		{Type: library.TypeManga, Status: library.StatusReading},
	}

	stats := Compute(items)

	assert.Equal(t, 3, stats.TotalItems)
	assert.Equal(t, 2, stats.ByType[library.TypeAnime])
	assert.Equal(t, 1, stats.ByType[library.TypeManga])
	assert.Equal(t, 1, stats.ByStatus[library.StatusWatching])
}

func TestCompute_WatchTimeEstimate(t *testing.T) {
	items := []library.MediaItem{
		{CurrentEpisode: 100},
		{CurrentEpisode: 50},
	}

	stats := Compute(items)

	assert.Equal(t, 150.0, stats.EpisodesWatched)
	assert.Equal(t, 3600.0, stats.WatchTimeMinutes)
	assert.Equal(t, 60.0, stats.WatchTimeHours)
	assert.Equal(t, 2.5, stats.WatchTimeDays)
}

func TestCompute_TopGenres_FirstEncounteredBreaksTies(t *testing.T) {
	items := []library.MediaItem{
		{Genres: []string{"Drama", "Action"}},
		{Genres: []string{"Action", "Romance"}},
		{Genres: []string{"Drama"}},
		{Genres: []string{"Horror"}},
		{Genres: []string{"Comedy"}},
		{Genres: []string{"Sports"}},
	}

	stats := Compute(items)

	require.Len(t, stats.TopGenres, 5)
	assert.Equal(t, GenreCount{Genre: "Drama", Count: 2}, stats.TopGenres[0])
	assert.Equal(t, GenreCount{Genre: "Action", Count: 2}, stats.TopGenres[1])
	// Romance, Horror, Comedy all have count 1; first encountered wins
	assert.Equal(t, "Romance", stats.TopGenres[2].Genre)
	assert.Equal(t, "Horror", stats.TopGenres[3].Genre)
	assert.Equal(t, "Comedy", stats.TopGenres[4].Genre)
}
