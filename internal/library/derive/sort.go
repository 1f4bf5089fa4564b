package derive

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"kioku/internal/library"
)

type SortKey string

const (
	SortByTitle       SortKey = "title"
	SortByScore       SortKey = "score"
	SortByReleaseYear SortKey = "releaseYear"
	SortByUpdatedAt   SortKey = "updatedAt"
)

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Sort returns a sorted copy of the items; the input is left alone.
// Unknown keys fall back to the default ordering, most recently
// updated first. Missing release years sort as 0.
func Sort(items []library.MediaItem, key SortKey, dir SortDirection) []library.MediaItem {
	out := make([]library.MediaItem, len(items))
	copy(out, items)

	var less func(a, b library.MediaItem) bool
	switch key {
	case SortByTitle:
		// collators are not safe for concurrent use, so each call
		// gets its own
		coll := collate.New(language.Und, collate.Loose)
		less = func(a, b library.MediaItem) bool {
			return coll.CompareString(a.Title, b.Title) < 0
		}
	case SortByScore:
		less = func(a, b library.MediaItem) bool { return a.Score < b.Score }
	case SortByReleaseYear:
		less = func(a, b library.MediaItem) bool { return a.ReleaseYear < b.ReleaseYear }
	default:
		less = func(a, b library.MediaItem) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
		if dir == "" {
			dir = Descending
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if dir == Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}
