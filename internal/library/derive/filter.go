// Package derive holds the pure read-side computations over a library
// snapshot: filtering, sorting and statistics. Nothing here mutates its
// input or touches I/O, so every function is safe to re-run on every
// state change.
package derive

import (
	"strings"
	"time"

	"kioku/internal/library"
)

// StatusStagnant is a synthetic filter status: an item in an active
// status whose last update is more than 30 full days ago.
const StatusStagnant = "stagnant"

const stagnantAfterDays = 30

// Criteria describes one filter pass. Zero values mean "no constraint"
// for every field; ScoreMin/ScoreMax are inclusive and only applied
// when HasScoreRange is set.
type Criteria struct {
	Query         string
	Type          library.MediaType
	Status        string
	Genres        []string
	HasScoreRange bool
	ScoreMin      float64
	ScoreMax      float64
	ReleaseYear   int
}

// Filter returns the items matching every set criterion, preserving
// input order. The free-text query is a case-insensitive substring
// match over title, original title, genres, tags, studio and author.
func Filter(items []library.MediaItem, c Criteria, now time.Time) []library.MediaItem {
	query := strings.ToLower(strings.TrimSpace(c.Query))

	out := make([]library.MediaItem, 0, len(items))
	for _, item := range items {
		if c.Type != "" && item.Type != c.Type {
			continue
		}
		if c.Status != "" && !matchStatus(item, c.Status, now) {
			continue
		}
		if len(c.Genres) > 0 && !hasAnyGenre(item.Genres, c.Genres) {
			continue
		}
		if c.HasScoreRange && (item.Score < c.ScoreMin || item.Score > c.ScoreMax) {
			continue
		}
		if c.ReleaseYear != 0 && item.ReleaseYear != c.ReleaseYear {
			continue
		}
		if query != "" && !matchQuery(item, query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchStatus(item library.MediaItem, status string, now time.Time) bool {
	if status == StatusStagnant {
		return Stagnant(item, now)
	}
	return string(item.Status) == status
}

// Stagnant reports whether the item is in an active status with no
// update for more than 30 full days. Exactly 30 days is not stagnant.
func Stagnant(item library.MediaItem, now time.Time) bool {
	if !item.Status.Active() {
		return false
	}
	days := int(now.Sub(item.UpdatedAt).Hours() / 24)
	return days > stagnantAfterDays
}

// hasAnyGenre implements OR semantics: one shared genre is a match.
func hasAnyGenre(itemGenres, wanted []string) bool {
	for _, w := range wanted {
		for _, g := range itemGenres {
			if strings.EqualFold(g, w) {
				return true
			}
		}
	}
	return false
}

func matchQuery(item library.MediaItem, query string) bool {
	if strings.Contains(strings.ToLower(item.Title), query) ||
		strings.Contains(strings.ToLower(item.TitleOriginal), query) ||
		strings.Contains(strings.ToLower(item.Studio), query) ||
		strings.Contains(strings.ToLower(item.Author), query) {
		return true
	}
	for _, g := range item.Genres {
		if strings.Contains(strings.ToLower(g), query) {
			return true
		}
	}
	for _, t := range item.Tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	return false
}
