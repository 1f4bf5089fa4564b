package library

import (
	"encoding/json"
	"strconv"
)

// ToInternal converts a wire item into the internal representation.
// Absent collections become empty slices, absent scalars become zero
// values, and a numeric-string score is parsed as a number. Enum values
// we do not recognize are passed through as-is.
func ToInternal(w ItemWire) MediaItem {
	score, err := w.Score.Float64()
	if err != nil {
		score = 0
	}

	return MediaItem{
		ID:             w.ID,
		MalID:          derefInt64(w.MalID),
		Type:           MediaType(w.Type),
		Status:         MediaStatus(w.Status),
		Title:          w.Title,
		TitleOriginal:  deref(w.TitleOriginal),
		CoverImage:     deref(w.CoverImage),
		SourceURL:      deref(w.SourceURL),
		Format:         deref(w.Format),
		CurrentEpisode: w.CurrentEpisode,
		TotalEpisodes:  w.TotalEpisodes,
		CurrentChapter: w.CurrentChapter,
		TotalChapters:  w.TotalChapters,
		CurrentVolume:  w.CurrentVolume,
		TotalVolumes:   w.TotalVolumes,
		Score:          score,
		Synopsis:       deref(w.Synopsis),
		Review:         deref(w.Review),
		Notes:          deref(w.Notes),
		Genres:         emptyIfNil(w.Genres),
		Tags:           emptyIfNil(w.Tags),
		UserStreaming:  emptyIfNil(w.UserStreaming),
		Studio:         deref(w.Studio),
		Author:         deref(w.Author),
		ReleaseYear:    derefInt(w.ReleaseYear),
		Season:         deref(w.Season),
		AgeRating:      deref(w.AgeRating),
		TrailerURL:     deref(w.TrailerURL),
		OpeningURL:     deref(w.OpeningURL),
		EndingURL:      deref(w.EndingURL),
		BroadcastDay:   deref(w.BroadcastDay),
		StartDate:      deref(w.StartDate),
		EndDate:        deref(w.EndDate),
		RewatchCount:   w.RewatchCount,
		IsFavorite:     w.IsFavorite,
		CustomLists:    emptyIfNil(w.CustomLists),
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}

// ToWire converts an internal item into its full wire representation.
// Zero-valued optionals are emitted as absent, matching what the server
// sends back for unset columns.
func ToWire(m MediaItem) ItemWire {
	return ItemWire{
		ID:             m.ID,
		MalID:          int64PtrIfSet(m.MalID),
		Type:           string(m.Type),
		Status:         string(m.Status),
		Title:          m.Title,
		TitleOriginal:  ptrIfSet(m.TitleOriginal),
		CoverImage:     ptrIfSet(m.CoverImage),
		SourceURL:      ptrIfSet(m.SourceURL),
		Format:         ptrIfSet(m.Format),
		CurrentEpisode: m.CurrentEpisode,
		TotalEpisodes:  m.TotalEpisodes,
		CurrentChapter: m.CurrentChapter,
		TotalChapters:  m.TotalChapters,
		CurrentVolume:  m.CurrentVolume,
		TotalVolumes:   m.TotalVolumes,
		Score:          formatScore(m.Score),
		Synopsis:       ptrIfSet(m.Synopsis),
		Review:         ptrIfSet(m.Review),
		Notes:          ptrIfSet(m.Notes),
		Genres:         emptyIfNil(m.Genres),
		Tags:           emptyIfNil(m.Tags),
		UserStreaming:  emptyIfNil(m.UserStreaming),
		Studio:         ptrIfSet(m.Studio),
		Author:         ptrIfSet(m.Author),
		ReleaseYear:    intPtrIfSet(m.ReleaseYear),
		Season:         ptrIfSet(m.Season),
		AgeRating:      ptrIfSet(m.AgeRating),
		TrailerURL:     ptrIfSet(m.TrailerURL),
		OpeningURL:     ptrIfSet(m.OpeningURL),
		EndingURL:      ptrIfSet(m.EndingURL),
		BroadcastDay:   ptrIfSet(m.BroadcastDay),
		StartDate:      ptrIfSet(m.StartDate),
		EndDate:        ptrIfSet(m.EndDate),
		RewatchCount:   m.RewatchCount,
		IsFavorite:     m.IsFavorite,
		CustomLists:    emptyIfNil(m.CustomLists),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ItemPatch carries only the fields a mutation explicitly sets. A nil
// field is "unchanged", so partial updates never clobber unrelated
// server-side state.
type ItemPatch struct {
	MalID *int64

	Type   *MediaType
	Status *MediaStatus

	Title         *string
	TitleOriginal *string
	CoverImage    *string
	SourceURL     *string
	Format        *string

	CurrentEpisode *float64
	TotalEpisodes  *float64
	CurrentChapter *float64
	TotalChapters  *float64
	CurrentVolume  *float64
	TotalVolumes   *float64

	Score    *float64
	Synopsis *string
	Review   *string
	Notes    *string

	Genres        *[]string
	Tags          *[]string
	UserStreaming *[]string

	Studio      *string
	Author      *string
	ReleaseYear *int
	Season      *string
	AgeRating   *string

	TrailerURL   *string
	OpeningURL   *string
	EndingURL    *string
	BroadcastDay *string
	StartDate    *string
	EndDate      *string

	RewatchCount *int
	IsFavorite   *bool
}

// Wire returns the snake_case patch body with only the set fields.
func (p ItemPatch) Wire() map[string]interface{} {
	body := make(map[string]interface{})
	put := func(key string, v interface{}) { body[key] = v }

	if p.MalID != nil {
		put("mal_id", *p.MalID)
	}
	if p.Type != nil {
		put("type", string(*p.Type))
	}
	if p.Status != nil {
		put("status", string(*p.Status))
	}
	if p.Title != nil {
		put("title", *p.Title)
	}
	if p.TitleOriginal != nil {
		put("title_original", *p.TitleOriginal)
	}
	if p.CoverImage != nil {
		put("cover_image", *p.CoverImage)
	}
	if p.SourceURL != nil {
		put("source_url", *p.SourceURL)
	}
	if p.Format != nil {
		put("format", *p.Format)
	}
	if p.CurrentEpisode != nil {
		put("current_episode", *p.CurrentEpisode)
	}
	if p.TotalEpisodes != nil {
		put("total_episodes", *p.TotalEpisodes)
	}
	if p.CurrentChapter != nil {
		put("current_chapter", *p.CurrentChapter)
	}
	if p.TotalChapters != nil {
		put("total_chapters", *p.TotalChapters)
	}
	if p.CurrentVolume != nil {
		put("current_volume", *p.CurrentVolume)
	}
	if p.TotalVolumes != nil {
		put("total_volumes", *p.TotalVolumes)
	}
	if p.Score != nil {
		put("score", *p.Score)
	}
	if p.Synopsis != nil {
		put("synopsis", *p.Synopsis)
	}
	if p.Review != nil {
		put("review", *p.Review)
	}
	if p.Notes != nil {
		put("notes", *p.Notes)
	}
	if p.Genres != nil {
		put("genres", *p.Genres)
	}
	if p.Tags != nil {
		put("tags", *p.Tags)
	}
	if p.UserStreaming != nil {
		put("user_streaming", *p.UserStreaming)
	}
	if p.Studio != nil {
		put("studio", *p.Studio)
	}
	if p.Author != nil {
		put("author", *p.Author)
	}
	if p.ReleaseYear != nil {
		put("release_year", *p.ReleaseYear)
	}
	if p.Season != nil {
		put("season", *p.Season)
	}
	if p.AgeRating != nil {
		put("age_rating", *p.AgeRating)
	}
	if p.TrailerURL != nil {
		put("trailer_url", *p.TrailerURL)
	}
	if p.OpeningURL != nil {
		put("opening_url", *p.OpeningURL)
	}
	if p.EndingURL != nil {
		put("ending_url", *p.EndingURL)
	}
	if p.BroadcastDay != nil {
		put("broadcast_day", *p.BroadcastDay)
	}
	if p.StartDate != nil {
		put("start_date", *p.StartDate)
	}
	if p.EndDate != nil {
		put("end_date", *p.EndDate)
	}
	if p.RewatchCount != nil {
		put("rewatch_count", *p.RewatchCount)
	}
	if p.IsFavorite != nil {
		put("is_favorite", *p.IsFavorite)
	}

	return body
}

// Apply overlays the set fields of the patch onto an item.
func (p ItemPatch) Apply(m *MediaItem) {
	if p.MalID != nil {
		m.MalID = *p.MalID
	}
	if p.Type != nil {
		m.Type = *p.Type
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.TitleOriginal != nil {
		m.TitleOriginal = *p.TitleOriginal
	}
	if p.CoverImage != nil {
		m.CoverImage = *p.CoverImage
	}
	if p.SourceURL != nil {
		m.SourceURL = *p.SourceURL
	}
	if p.Format != nil {
		m.Format = *p.Format
	}
	if p.CurrentEpisode != nil {
		m.CurrentEpisode = *p.CurrentEpisode
	}
	if p.TotalEpisodes != nil {
		m.TotalEpisodes = *p.TotalEpisodes
	}
	if p.CurrentChapter != nil {
		m.CurrentChapter = *p.CurrentChapter
	}
	if p.TotalChapters != nil {
		m.TotalChapters = *p.TotalChapters
	}
	if p.CurrentVolume != nil {
		m.CurrentVolume = *p.CurrentVolume
	}
	if p.TotalVolumes != nil {
		m.TotalVolumes = *p.TotalVolumes
	}
	if p.Score != nil {
		m.Score = *p.Score
	}
	if p.Synopsis != nil {
		m.Synopsis = *p.Synopsis
	}
	if p.Review != nil {
		m.Review = *p.Review
	}
	if p.Notes != nil {
		m.Notes = *p.Notes
	}
	if p.Genres != nil {
		m.Genres = *p.Genres
	}
	if p.Tags != nil {
		m.Tags = *p.Tags
	}
	if p.UserStreaming != nil {
		m.UserStreaming = *p.UserStreaming
	}
	if p.Studio != nil {
		m.Studio = *p.Studio
	}
	if p.Author != nil {
		m.Author = *p.Author
	}
	if p.ReleaseYear != nil {
		m.ReleaseYear = *p.ReleaseYear
	}
	if p.Season != nil {
		m.Season = *p.Season
	}
	if p.AgeRating != nil {
		m.AgeRating = *p.AgeRating
	}
	if p.TrailerURL != nil {
		m.TrailerURL = *p.TrailerURL
	}
	if p.OpeningURL != nil {
		m.OpeningURL = *p.OpeningURL
	}
	if p.EndingURL != nil {
		m.EndingURL = *p.EndingURL
	}
	if p.BroadcastDay != nil {
		m.BroadcastDay = *p.BroadcastDay
	}
	if p.StartDate != nil {
		m.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		m.EndDate = *p.EndDate
	}
	if p.RewatchCount != nil {
		m.RewatchCount = *p.RewatchCount
	}
	if p.IsFavorite != nil {
		m.IsFavorite = *p.IsFavorite
	}
}

// InverseFor builds the patch that undoes p: the same fields set, with
// values taken from the prior item. Applying it restores exactly the
// patched fields, leaving concurrent writes to other fields alone.
func (p ItemPatch) InverseFor(prior MediaItem) ItemPatch {
	var inv ItemPatch
	if p.MalID != nil {
		v := prior.MalID
		inv.MalID = &v
	}
	if p.Type != nil {
		v := prior.Type
		inv.Type = &v
	}
	if p.Status != nil {
		v := prior.Status
		inv.Status = &v
	}
	if p.Title != nil {
		v := prior.Title
		inv.Title = &v
	}
	if p.TitleOriginal != nil {
		v := prior.TitleOriginal
		inv.TitleOriginal = &v
	}
	if p.CoverImage != nil {
		v := prior.CoverImage
		inv.CoverImage = &v
	}
	if p.SourceURL != nil {
		v := prior.SourceURL
		inv.SourceURL = &v
	}
	if p.Format != nil {
		v := prior.Format
		inv.Format = &v
	}
	if p.CurrentEpisode != nil {
		v := prior.CurrentEpisode
		inv.CurrentEpisode = &v
	}
	if p.TotalEpisodes != nil {
		v := prior.TotalEpisodes
		inv.TotalEpisodes = &v
	}
	if p.CurrentChapter != nil {
		v := prior.CurrentChapter
		inv.CurrentChapter = &v
	}
	if p.TotalChapters != nil {
		v := prior.TotalChapters
		inv.TotalChapters = &v
	}
	if p.CurrentVolume != nil {
		v := prior.CurrentVolume
		inv.CurrentVolume = &v
	}
	if p.TotalVolumes != nil {
		v := prior.TotalVolumes
		inv.TotalVolumes = &v
	}
	if p.Score != nil {
		v := prior.Score
		inv.Score = &v
	}
	if p.Synopsis != nil {
		v := prior.Synopsis
		inv.Synopsis = &v
	}
	if p.Review != nil {
		v := prior.Review
		inv.Review = &v
	}
	if p.Notes != nil {
		v := prior.Notes
		inv.Notes = &v
	}
	if p.Genres != nil {
		v := prior.Genres
		inv.Genres = &v
	}
	if p.Tags != nil {
		v := prior.Tags
		inv.Tags = &v
	}
	if p.UserStreaming != nil {
		v := prior.UserStreaming
		inv.UserStreaming = &v
	}
	if p.Studio != nil {
		v := prior.Studio
		inv.Studio = &v
	}
	if p.Author != nil {
		v := prior.Author
		inv.Author = &v
	}
	if p.ReleaseYear != nil {
		v := prior.ReleaseYear
		inv.ReleaseYear = &v
	}
	if p.Season != nil {
		v := prior.Season
		inv.Season = &v
	}
	if p.AgeRating != nil {
		v := prior.AgeRating
		inv.AgeRating = &v
	}
	if p.TrailerURL != nil {
		v := prior.TrailerURL
		inv.TrailerURL = &v
	}
	if p.OpeningURL != nil {
		v := prior.OpeningURL
		inv.OpeningURL = &v
	}
	if p.EndingURL != nil {
		v := prior.EndingURL
		inv.EndingURL = &v
	}
	if p.BroadcastDay != nil {
		v := prior.BroadcastDay
		inv.BroadcastDay = &v
	}
	if p.StartDate != nil {
		v := prior.StartDate
		inv.StartDate = &v
	}
	if p.EndDate != nil {
		v := prior.EndDate
		inv.EndDate = &v
	}
	if p.RewatchCount != nil {
		v := prior.RewatchCount
		inv.RewatchCount = &v
	}
	if p.IsFavorite != nil {
		v := prior.IsFavorite
		inv.IsFavorite = &v
	}
	return inv
}

// ListToInternal converts a wire list.
func ListToInternal(w ListWire) CustomList {
	return CustomList{
		ID:          w.ID,
		Name:        w.Name,
		Description: deref(w.Description),
		Icon:        deref(w.Icon),
		Color:       deref(w.Color),
		ItemIDs:     emptyIfNil(w.ItemIDs),
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// EntryToInternal converts a wire calendar entry.
func EntryToInternal(w EntryWire) ManualCalendarEntry {
	return ManualCalendarEntry{
		ID:        w.ID,
		Title:     w.Title,
		Image:     deref(w.Image),
		DayOfWeek: w.DayOfWeek,
		Streaming: emptyIfNil(w.Streaming),
		Time:      deref(w.Time),
	}
}

func formatScore(score float64) json.Number {
	return json.Number(strconv.FormatFloat(score, 'f', -1, 64))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func derefInt64(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}

func ptrIfSet(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func intPtrIfSet(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}

func int64PtrIfSet(n int64) *int64 {
	if n == 0 {
		return nil
	}
	return &n
}

func emptyIfNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
