package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"kioku/internal/cache"
	"kioku/internal/metadata/jikan"
)

// MetadataSearcher is the slice of the Jikan client the service needs.
type MetadataSearcher interface {
	SearchAnime(ctx context.Context, query string) ([]jikan.Entry, error)
	SearchManga(ctx context.Context, query string) ([]jikan.Entry, error)
	GetAnimeByID(ctx context.Context, malID int64) (*jikan.Entry, error)
	GetMangaByID(ctx context.Context, malID int64) (*jikan.Entry, error)
	GetSeasonNow(ctx context.Context) ([]jikan.Entry, error)
	SearchByGenres(ctx context.Context, kind string, genreIDs []int64, sfw bool) ([]jikan.Entry, error)
	GetRecommendations(ctx context.Context, kind string, malID int64) ([]jikan.Recommendation, error)
}

// ExternalService proxies catalog lookups to the third-party metadata API.
// The provider is unreliable, so list results are cached and failures
// degrade to an empty result set instead of blocking the caller.
type ExternalService interface {
	Search(ctx context.Context, kind, query string) ([]jikan.Entry, error)
	Lookup(ctx context.Context, kind string, malID int64) (*jikan.Entry, error)
	Seasonal(ctx context.Context) ([]jikan.Entry, error)
	Recommendations(ctx context.Context, kind string, malID int64) ([]jikan.Entry, error)
}

type externalService struct {
	client MetadataSearcher
	cache  *cache.Cache
	logger *slog.Logger
}

func NewExternalService(client MetadataSearcher, searchCache *cache.Cache, logger *slog.Logger) ExternalService {
	return &externalService{client: client, cache: searchCache, logger: logger}
}

func (s *externalService) Search(ctx context.Context, kind, query string) ([]jikan.Entry, error) {
	key := fmt.Sprintf("jikan:search:%s:%s", kind, query)

	var cached []jikan.Entry
	if err := s.cache.GetJSON(ctx, key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("metadata cache read failed", "error", err)
	}

	var results []jikan.Entry
	var err error
	switch kind {
	case "anime":
		results, err = s.client.SearchAnime(ctx, query)
	case "manga":
		results, err = s.client.SearchManga(ctx, query)
	default:
		return nil, fmt.Errorf("unknown media kind %q", kind)
	}
	if err != nil {
		// Degrade: the search panel shows an empty state, nothing else breaks
		s.logger.Warn("metadata search failed", "kind", kind, "query", query, "error", err)
		return []jikan.Entry{}, nil
	}

	if err := s.cache.SetJSON(ctx, key, results); err != nil {
		s.logger.Warn("metadata cache write failed", "error", err)
	}

	return results, nil
}

// Lookup fetches the full catalog record for one work. Unlike the list
// endpoints a failed lookup is surfaced: the detail page has nothing to
// show without it.
func (s *externalService) Lookup(ctx context.Context, kind string, malID int64) (*jikan.Entry, error) {
	switch kind {
	case "anime":
		return s.client.GetAnimeByID(ctx, malID)
	case "manga":
		return s.client.GetMangaByID(ctx, malID)
	default:
		return nil, fmt.Errorf("unknown media kind %q", kind)
	}
}

func (s *externalService) Seasonal(ctx context.Context) ([]jikan.Entry, error) {
	const key = "jikan:seasonal"

	var cached []jikan.Entry
	if err := s.cache.GetJSON(ctx, key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("metadata cache read failed", "error", err)
	}

	results, err := s.client.GetSeasonNow(ctx)
	if err != nil {
		s.logger.Warn("seasonal fetch failed", "error", err)
		return []jikan.Entry{}, nil
	}

	if err := s.cache.SetJSON(ctx, key, results); err != nil {
		s.logger.Warn("metadata cache write failed", "error", err)
	}

	return results, nil
}

// Genre ids the provider weighs heavily when suggesting similar works.
// Demographics always come first; these break ties among the rest.
var (
	highPriorityGenres   = map[int64]bool{9: true, 12: true, 49: true, 14: true, 40: true, 41: true, 62: true}
	mediumPriorityGenres = map[int64]bool{10: true, 24: true, 18: true, 22: true}
	nsfwGenres           = map[int64]bool{9: true, 12: true, 49: true, 35: true}
)

const maxRecommendations = 10

// Recommendations suggests similar works: a genre-seeded top-rated
// search built from the source entry's demographics and strongest
// genres, falling back to the provider's own recommendation list when
// the seeded search fails or comes back empty.
func (s *externalService) Recommendations(ctx context.Context, kind string, malID int64) ([]jikan.Entry, error) {
	key := fmt.Sprintf("jikan:recs:%s:%d", kind, malID)

	var cached []jikan.Entry
	if err := s.cache.GetJSON(ctx, key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("metadata cache read failed", "error", err)
	}

	results := s.seededRecommendations(ctx, kind, malID)
	if results == nil {
		results = s.fallbackRecommendations(ctx, kind, malID)
	}

	if err := s.cache.SetJSON(ctx, key, results); err != nil {
		s.logger.Warn("metadata cache write failed", "error", err)
	}

	return results, nil
}

func (s *externalService) seededRecommendations(ctx context.Context, kind string, malID int64) []jikan.Entry {
	full, err := s.Lookup(ctx, kind, malID)
	if err != nil {
		s.logger.Warn("recommendation seed lookup failed", "kind", kind, "mal_id", malID, "error", err)
		return nil
	}

	seeds, sfw := recommendationSeeds(full)
	if len(seeds) == 0 {
		return nil
	}

	found, err := s.client.SearchByGenres(ctx, kind, seeds, sfw)
	if err != nil || len(found) == 0 {
		if err != nil {
			s.logger.Warn("seeded recommendation search failed", "kind", kind, "mal_id", malID, "error", err)
		}
		return nil
	}

	results := make([]jikan.Entry, 0, maxRecommendations)
	for _, entry := range found {
		if entry.MalID == malID {
			continue
		}
		results = append(results, entry)
		if len(results) == maxRecommendations {
			break
		}
	}
	return results
}

func (s *externalService) fallbackRecommendations(ctx context.Context, kind string, malID int64) []jikan.Entry {
	recs, err := s.client.GetRecommendations(ctx, kind, malID)
	if err != nil {
		s.logger.Warn("recommendation fallback failed", "kind", kind, "mal_id", malID, "error", err)
		return []jikan.Entry{}
	}

	results := make([]jikan.Entry, 0, maxRecommendations)
	for _, rec := range recs {
		results = append(results, jikan.Entry{
			MalID:  rec.Entry.MalID,
			URL:    rec.Entry.URL,
			Images: rec.Entry.Images,
			Title:  rec.Entry.Title,
		})
		if len(results) == maxRecommendations {
			break
		}
	}
	return results
}

// recommendationSeeds picks up to three genre ids to search on:
// demographics first, then the remaining genres and themes by priority
// weight. The second return disables the safe filter when the source
// work is itself explicit, since the filter would hide every match.
func recommendationSeeds(entry *jikan.Entry) ([]int64, bool) {
	all := make([]jikan.Named, 0, len(entry.Genres)+len(entry.ExplicitGenres)+len(entry.Themes))
	all = append(all, entry.Genres...)
	all = append(all, entry.ExplicitGenres...)
	all = append(all, entry.Themes...)

	nsfw := false
	if entry.Rating != nil && (strings.Contains(*entry.Rating, "Rx") || strings.Contains(*entry.Rating, "Hentai")) {
		nsfw = true
	}
	for _, g := range all {
		if nsfwGenres[g.MalID] {
			nsfw = true
		}
	}

	weight := func(id int64) int {
		switch {
		case highPriorityGenres[id]:
			return 3
		case mediumPriorityGenres[id]:
			return 1
		default:
			return 0
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return weight(all[i].MalID) > weight(all[j].MalID)
	})

	seeds := make([]int64, 0, 3)
	seen := make(map[int64]bool)
	add := func(id int64) {
		if len(seeds) < 3 && !seen[id] {
			seeds = append(seeds, id)
			seen[id] = true
		}
	}
	for _, d := range entry.Demographics {
		add(d.MalID)
	}
	for _, g := range all {
		add(g.MalID)
	}

	return seeds, !nsfw
}
