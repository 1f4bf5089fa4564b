package jikan

// Entry is one work as returned by the Jikan v4 API, covering both anime
// and manga payloads (absent counters stay nil).
type Entry struct {
	MalID    int64  `json:"mal_id"`
	URL      string `json:"url"`
	Images   Images `json:"images"`
	Title    string `json:"title"`
	TitleEn  string `json:"title_english"`
	TitleJp  string `json:"title_japanese"`
	Type     string `json:"type"`
	Source   string `json:"source"`
	Episodes *int   `json:"episodes"`
	Chapters *int   `json:"chapters"`
	Volumes  *int   `json:"volumes"`
	Status   string `json:"status"`

	Score    *float64 `json:"score"`
	ScoredBy *int64   `json:"scored_by"`
	Rank     *int     `json:"rank"`
	Members  *int64   `json:"members"`

	Synopsis string  `json:"synopsis"`
	Season   *string `json:"season"`
	Year     *int    `json:"year"`
	Rating   *string `json:"rating"`

	Studios        []Named `json:"studios"`
	Authors        []Named `json:"authors"`
	Genres         []Named `json:"genres"`
	ExplicitGenres []Named `json:"explicit_genres"`
	Themes         []Named `json:"themes"`
	Demographics   []Named `json:"demographics"`
}

type Named struct {
	MalID int64  `json:"mal_id"`
	Name  string `json:"name"`
}

type Images struct {
	JPG  ImageSet `json:"jpg"`
	WebP ImageSet `json:"webp"`
}

type ImageSet struct {
	ImageURL      string `json:"image_url"`
	SmallImageURL string `json:"small_image_url"`
	LargeImageURL string `json:"large_image_url"`
}

// Pagination is the page envelope Jikan attaches to list endpoints.
type Pagination struct {
	LastVisiblePage int  `json:"last_visible_page"`
	HasNextPage     bool `json:"has_next_page"`
	CurrentPage     int  `json:"current_page"`
}

// Recommendation is one community recommendation attached to a work.
// The nested entry is a slim record, not a full Entry.
type Recommendation struct {
	Entry RecommendationEntry `json:"entry"`
	URL   string              `json:"url"`
	Votes int                 `json:"votes"`
}

type RecommendationEntry struct {
	MalID  int64  `json:"mal_id"`
	URL    string `json:"url"`
	Images Images `json:"images"`
	Title  string `json:"title"`
}

type listResponse struct {
	Data       []Entry    `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type recommendationsResponse struct {
	Data []Recommendation `json:"data"`
}

type singleResponse struct {
	Data Entry `json:"data"`
}
