package dto

import (
	"time"

	"kioku/internal/httpapi/models"
)

// CreateMediaItemDTO used for POST /api/media
type CreateMediaItemDTO struct {
	MalID           *int64   `json:"mal_id,omitempty"`
	Title           string   `json:"title" binding:"required,max=255"`
	TitleOriginal   *string  `json:"title_original,omitempty" binding:"omitempty,max=255"`
	SourceURL       *string  `json:"source_url,omitempty"`
	Type            string   `json:"type" binding:"required,oneof=anime manga manhwa"`
	Format          *string  `json:"format,omitempty"`
	Status          string   `json:"status" binding:"required,oneof=watching reading completed on-hold dropped plan-to-watch"`
	CoverImage      string   `json:"cover_image" binding:"required"`
	CoverImageLarge *string  `json:"cover_image_large,omitempty"`
	BannerImage     *string  `json:"banner_image,omitempty"`
	Score           float64  `json:"score" binding:"gte=0,lte=10"`
	CurrentEpisode  float64  `json:"current_episode" binding:"gte=0"`
	TotalEpisodes   float64  `json:"total_episodes" binding:"gte=0"`
	CurrentChapter  float64  `json:"current_chapter" binding:"gte=0"`
	TotalChapters   float64  `json:"total_chapters" binding:"gte=0"`
	CurrentVolume   float64  `json:"current_volume" binding:"gte=0"`
	TotalVolumes    float64  `json:"total_volumes" binding:"gte=0"`
	Synopsis        string   `json:"synopsis"`
	Review          string   `json:"review"`
	Notes           string   `json:"notes"`
	Genres          []string `json:"genres,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	UserStreaming   []string `json:"user_streaming,omitempty"`
	Studio          *string  `json:"studio,omitempty"`
	Author          *string  `json:"author,omitempty"`
	ReleaseYear     *int     `json:"release_year,omitempty"`
	Season          *string  `json:"season,omitempty"`
	AgeRating       *string  `json:"age_rating,omitempty"`
	TrailerURL      *string  `json:"trailer_url,omitempty"`
	OpeningURL      *string  `json:"opening_url,omitempty"`
	EndingURL       *string  `json:"ending_url,omitempty"`
	BroadcastDay    *string  `json:"broadcast_day,omitempty"`
	StartDate       *string  `json:"start_date,omitempty"`
	EndDate         *string  `json:"end_date,omitempty"`
	RewatchCount    int      `json:"rewatch_count" binding:"gte=0"`
	IsFavorite      bool     `json:"is_favorite"`
}

// UpdateMediaItemDTO used for PUT /api/media/:id (partial updates allowed)
type UpdateMediaItemDTO struct {
	MalID           *int64    `json:"mal_id,omitempty"`
	Title           *string   `json:"title,omitempty" binding:"omitempty,max=255"`
	TitleOriginal   *string   `json:"title_original,omitempty" binding:"omitempty,max=255"`
	SourceURL       *string   `json:"source_url,omitempty"`
	Type            *string   `json:"type,omitempty" binding:"omitempty,oneof=anime manga manhwa"`
	Format          *string   `json:"format,omitempty"`
	Status          *string   `json:"status,omitempty" binding:"omitempty,oneof=watching reading completed on-hold dropped plan-to-watch"`
	CoverImage      *string   `json:"cover_image,omitempty"`
	CoverImageLarge *string   `json:"cover_image_large,omitempty"`
	BannerImage     *string   `json:"banner_image,omitempty"`
	Score           *float64  `json:"score,omitempty" binding:"omitempty,gte=0,lte=10"`
	CurrentEpisode  *float64  `json:"current_episode,omitempty" binding:"omitempty,gte=0"`
	TotalEpisodes   *float64  `json:"total_episodes,omitempty" binding:"omitempty,gte=0"`
	CurrentChapter  *float64  `json:"current_chapter,omitempty" binding:"omitempty,gte=0"`
	TotalChapters   *float64  `json:"total_chapters,omitempty" binding:"omitempty,gte=0"`
	CurrentVolume   *float64  `json:"current_volume,omitempty" binding:"omitempty,gte=0"`
	TotalVolumes    *float64  `json:"total_volumes,omitempty" binding:"omitempty,gte=0"`
	Synopsis        *string   `json:"synopsis,omitempty"`
	Review          *string   `json:"review,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	Genres          *[]string `json:"genres,omitempty"`
	Tags            *[]string `json:"tags,omitempty"`
	UserStreaming   *[]string `json:"user_streaming,omitempty"`
	Studio          *string   `json:"studio,omitempty"`
	Author          *string   `json:"author,omitempty"`
	ReleaseYear     *int      `json:"release_year,omitempty"`
	Season          *string   `json:"season,omitempty"`
	AgeRating       *string   `json:"age_rating,omitempty"`
	TrailerURL      *string   `json:"trailer_url,omitempty"`
	OpeningURL      *string   `json:"opening_url,omitempty"`
	EndingURL       *string   `json:"ending_url,omitempty"`
	BroadcastDay    *string   `json:"broadcast_day,omitempty"`
	StartDate       *string   `json:"start_date,omitempty"`
	EndDate         *string   `json:"end_date,omitempty"`
	RewatchCount    *int      `json:"rewatch_count,omitempty" binding:"omitempty,gte=0"`
	IsFavorite      *bool     `json:"is_favorite,omitempty"`
}

// MediaItemResponse DTO for responses
type MediaItemResponse struct {
	ID              string    `json:"id"`
	MalID           *int64    `json:"mal_id,omitempty"`
	Title           string    `json:"title"`
	TitleOriginal   *string   `json:"title_original,omitempty"`
	SourceURL       *string   `json:"source_url,omitempty"`
	Type            string    `json:"type"`
	Format          *string   `json:"format,omitempty"`
	Status          string    `json:"status"`
	CoverImage      string    `json:"cover_image"`
	CoverImageLarge *string   `json:"cover_image_large,omitempty"`
	BannerImage     *string   `json:"banner_image,omitempty"`
	Score           float64   `json:"score"`
	CurrentEpisode  float64   `json:"current_episode"`
	TotalEpisodes   float64   `json:"total_episodes"`
	CurrentChapter  float64   `json:"current_chapter"`
	TotalChapters   float64   `json:"total_chapters"`
	CurrentVolume   float64   `json:"current_volume"`
	TotalVolumes    float64   `json:"total_volumes"`
	Synopsis        string    `json:"synopsis"`
	Review          string    `json:"review"`
	Notes           string    `json:"notes"`
	Genres          []string  `json:"genres"`
	Tags            []string  `json:"tags"`
	UserStreaming   []string  `json:"user_streaming"`
	Studio          *string   `json:"studio,omitempty"`
	Author          *string   `json:"author,omitempty"`
	ReleaseYear     *int      `json:"release_year,omitempty"`
	Season          *string   `json:"season,omitempty"`
	AgeRating       *string   `json:"age_rating,omitempty"`
	TrailerURL      *string   `json:"trailer_url,omitempty"`
	OpeningURL      *string   `json:"opening_url,omitempty"`
	EndingURL       *string   `json:"ending_url,omitempty"`
	BroadcastDay    *string   `json:"broadcast_day,omitempty"`
	StartDate       *string   `json:"start_date,omitempty"`
	EndDate         *string   `json:"end_date,omitempty"`
	RewatchCount    int       `json:"rewatch_count"`
	IsFavorite      bool      `json:"is_favorite"`
	CustomLists     []string  `json:"custom_lists"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Converters
func (d CreateMediaItemDTO) ToModel() models.MediaItem {
	return models.MediaItem{
		MalID:           d.MalID,
		Title:           d.Title,
		TitleOriginal:   d.TitleOriginal,
		SourceURL:       d.SourceURL,
		Type:            d.Type,
		Format:          d.Format,
		Status:          d.Status,
		CoverImage:      d.CoverImage,
		CoverImageLarge: d.CoverImageLarge,
		BannerImage:     d.BannerImage,
		Score:           d.Score,
		CurrentEpisode:  d.CurrentEpisode,
		TotalEpisodes:   d.TotalEpisodes,
		CurrentChapter:  d.CurrentChapter,
		TotalChapters:   d.TotalChapters,
		CurrentVolume:   d.CurrentVolume,
		TotalVolumes:    d.TotalVolumes,
		Synopsis:        d.Synopsis,
		Review:          d.Review,
		Notes:           d.Notes,
		Genres:          models.StringArray(d.Genres),
		Tags:            models.StringArray(d.Tags),
		UserStreaming:   models.StringArray(d.UserStreaming),
		Studio:          d.Studio,
		Author:          d.Author,
		ReleaseYear:     d.ReleaseYear,
		Season:          d.Season,
		AgeRating:       d.AgeRating,
		TrailerURL:      d.TrailerURL,
		OpeningURL:      d.OpeningURL,
		EndingURL:       d.EndingURL,
		BroadcastDay:    d.BroadcastDay,
		StartDate:       d.StartDate,
		EndDate:         d.EndDate,
		RewatchCount:    d.RewatchCount,
		IsFavorite:      d.IsFavorite,
	}
}

// Changes returns a column->value map holding only the fields present in the
// request, so partial updates never clobber unrelated columns.
func (d UpdateMediaItemDTO) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if d.MalID != nil {
		changes["mal_id"] = *d.MalID
	}
	if d.Title != nil {
		changes["title"] = *d.Title
	}
	if d.TitleOriginal != nil {
		changes["title_original"] = *d.TitleOriginal
	}
	if d.SourceURL != nil {
		changes["source_url"] = *d.SourceURL
	}
	if d.Type != nil {
		changes["type"] = *d.Type
	}
	if d.Format != nil {
		changes["format"] = *d.Format
	}
	if d.Status != nil {
		changes["status"] = *d.Status
	}
	if d.CoverImage != nil {
		changes["cover_image"] = *d.CoverImage
	}
	if d.CoverImageLarge != nil {
		changes["cover_image_large"] = *d.CoverImageLarge
	}
	if d.BannerImage != nil {
		changes["banner_image"] = *d.BannerImage
	}
	if d.Score != nil {
		changes["score"] = *d.Score
	}
	if d.CurrentEpisode != nil {
		changes["current_episode"] = *d.CurrentEpisode
	}
	if d.TotalEpisodes != nil {
		changes["total_episodes"] = *d.TotalEpisodes
	}
	if d.CurrentChapter != nil {
		changes["current_chapter"] = *d.CurrentChapter
	}
	if d.TotalChapters != nil {
		changes["total_chapters"] = *d.TotalChapters
	}
	if d.CurrentVolume != nil {
		changes["current_volume"] = *d.CurrentVolume
	}
	if d.TotalVolumes != nil {
		changes["total_volumes"] = *d.TotalVolumes
	}
	if d.Synopsis != nil {
		changes["synopsis"] = *d.Synopsis
	}
	if d.Review != nil {
		changes["review"] = *d.Review
	}
	if d.Notes != nil {
		changes["notes"] = *d.Notes
	}
	if d.Genres != nil {
		changes["genres"] = models.StringArray(*d.Genres)
	}
	if d.Tags != nil {
		changes["tags"] = models.StringArray(*d.Tags)
	}
	if d.UserStreaming != nil {
		changes["user_streaming"] = models.StringArray(*d.UserStreaming)
	}
	if d.Studio != nil {
		changes["studio"] = *d.Studio
	}
	if d.Author != nil {
		changes["author"] = *d.Author
	}
	if d.ReleaseYear != nil {
		changes["release_year"] = *d.ReleaseYear
	}
	if d.Season != nil {
		changes["season"] = *d.Season
	}
	if d.AgeRating != nil {
		changes["age_rating"] = *d.AgeRating
	}
	if d.TrailerURL != nil {
		changes["trailer_url"] = *d.TrailerURL
	}
	if d.OpeningURL != nil {
		changes["opening_url"] = *d.OpeningURL
	}
	if d.EndingURL != nil {
		changes["ending_url"] = *d.EndingURL
	}
	if d.BroadcastDay != nil {
		changes["broadcast_day"] = *d.BroadcastDay
	}
	if d.StartDate != nil {
		changes["start_date"] = *d.StartDate
	}
	if d.EndDate != nil {
		changes["end_date"] = *d.EndDate
	}
	if d.RewatchCount != nil {
		changes["rewatch_count"] = *d.RewatchCount
	}
	if d.IsFavorite != nil {
		changes["is_favorite"] = *d.IsFavorite
	}
	return changes
}

func FromModelToResponse(m models.MediaItem) MediaItemResponse {
	listIDs := make([]string, 0, len(m.CustomLists))
	for _, l := range m.CustomLists {
		listIDs = append(listIDs, l.ID)
	}

	return MediaItemResponse{
		ID:              m.ID,
		MalID:           m.MalID,
		Title:           m.Title,
		TitleOriginal:   m.TitleOriginal,
		SourceURL:       m.SourceURL,
		Type:            m.Type,
		Format:          m.Format,
		Status:          m.Status,
		CoverImage:      m.CoverImage,
		CoverImageLarge: m.CoverImageLarge,
		BannerImage:     m.BannerImage,
		Score:           m.Score,
		CurrentEpisode:  m.CurrentEpisode,
		TotalEpisodes:   m.TotalEpisodes,
		CurrentChapter:  m.CurrentChapter,
		TotalChapters:   m.TotalChapters,
		CurrentVolume:   m.CurrentVolume,
		TotalVolumes:    m.TotalVolumes,
		Synopsis:        m.Synopsis,
		Review:          m.Review,
		Notes:           m.Notes,
		Genres:          emptyIfNil(m.Genres),
		Tags:            emptyIfNil(m.Tags),
		UserStreaming:   emptyIfNil(m.UserStreaming),
		Studio:          m.Studio,
		Author:          m.Author,
		ReleaseYear:     m.ReleaseYear,
		Season:          m.Season,
		AgeRating:       m.AgeRating,
		TrailerURL:      m.TrailerURL,
		OpeningURL:      m.OpeningURL,
		EndingURL:       m.EndingURL,
		BroadcastDay:    m.BroadcastDay,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		RewatchCount:    m.RewatchCount,
		IsFavorite:      m.IsFavorite,
		CustomLists:     listIDs,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func emptyIfNil(a models.StringArray) []string {
	if a == nil {
		return []string{}
	}
	return []string(a)
}
