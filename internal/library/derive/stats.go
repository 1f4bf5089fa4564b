package derive

import (
	"math"
	"sort"

	"kioku/internal/library"
)

// minutesPerEpisode is the fixed estimate used for watch-time totals.
const minutesPerEpisode = 24

// GenreCount is one row of the top-genres table.
type GenreCount struct {
	Genre string
	Count int
}

// ScoreBucket is one integer histogram bucket; unrated items land in
// bucket 0.
type ScoreBucket struct {
	Score int
	Count int
}

// Statistics is the aggregate view of a library snapshot.
type Statistics struct {
	TotalItems int

	ByType   map[library.MediaType]int
	ByStatus map[library.MediaStatus]int

	EpisodesWatched float64
	ChaptersRead    float64
	VolumesRead     float64

	WatchTimeMinutes float64
	WatchTimeHours   float64
	WatchTimeDays    float64

	// AverageScore is the mean over rated items only; 0 when nothing
	// is rated.
	AverageScore float64

	// TopGenres holds at most five genres, by descending count, ties
	// broken by first encounter.
	TopGenres []GenreCount

	// ScoreDistribution always has the eleven buckets 0 through 10.
	ScoreDistribution []ScoreBucket
}

// Compute derives all statistics in one pass. An empty snapshot yields
// zeroed counters and empty breakdowns.
func Compute(items []library.MediaItem) Statistics {
	stats := Statistics{
		ByType:            make(map[library.MediaType]int),
		ByStatus:          make(map[library.MediaStatus]int),
		TopGenres:         []GenreCount{},
		ScoreDistribution: make([]ScoreBucket, 11),
	}
	for i := range stats.ScoreDistribution {
		stats.ScoreDistribution[i].Score = i
	}

	genreCounts := make(map[string]int)
	genreOrder := make(map[string]int)

	var ratedSum float64
	var ratedCount int

	for _, item := range items {
		stats.TotalItems++
		stats.ByType[item.Type]++
		stats.ByStatus[item.Status]++

		stats.EpisodesWatched += item.CurrentEpisode
		stats.ChaptersRead += item.CurrentChapter
		stats.VolumesRead += item.CurrentVolume

		if item.Score > 0 {
			ratedSum += item.Score
			ratedCount++
		}
		bucket := int(math.Floor(item.Score))
		if bucket < 0 {
			bucket = 0
		}
		if bucket > 10 {
			bucket = 10
		}
		stats.ScoreDistribution[bucket].Count++

		for _, genre := range item.Genres {
			if _, seen := genreCounts[genre]; !seen {
				genreOrder[genre] = len(genreOrder)
			}
			genreCounts[genre]++
		}
	}

	if ratedCount > 0 {
		stats.AverageScore = ratedSum / float64(ratedCount)
	}

	stats.WatchTimeMinutes = stats.EpisodesWatched * minutesPerEpisode
	stats.WatchTimeHours = stats.WatchTimeMinutes / 60
	stats.WatchTimeDays = stats.WatchTimeHours / 24

	stats.TopGenres = topGenres(genreCounts, genreOrder, 5)
	return stats
}

func topGenres(counts map[string]int, order map[string]int, limit int) []GenreCount {
	all := make([]GenreCount, 0, len(counts))
	for genre, count := range counts {
		all = append(all, GenreCount{Genre: genre, Count: count})
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return order[all[i].Genre] < order[all[j].Genre]
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}
