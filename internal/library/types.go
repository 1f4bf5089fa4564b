package library

import "time"

// MediaType and MediaStatus are open string enums. Values the server
// sends that we do not recognize are carried through untouched so the
// caller can still display them.
type MediaType string

const (
	TypeAnime  MediaType = "anime"
	TypeManga  MediaType = "manga"
	TypeManhwa MediaType = "manhwa"
)

type MediaStatus string

const (
	StatusWatching    MediaStatus = "watching"
	StatusReading     MediaStatus = "reading"
	StatusCompleted   MediaStatus = "completed"
	StatusOnHold      MediaStatus = "on-hold"
	StatusDropped     MediaStatus = "dropped"
	StatusPlanToWatch MediaStatus = "plan-to-watch"
)

// Active reports whether the status counts as "in progress" for the
// stagnant-item derivation.
func (s MediaStatus) Active() bool {
	return s == StatusWatching || s == StatusReading
}

// MediaItem is the in-memory representation of one tracked work.
// Collections are never nil; zero means "unset" for numeric fields and
// a total of 0 means the total is unknown.
type MediaItem struct {
	ID    string
	MalID int64

	Type   MediaType
	Status MediaStatus

	Title         string
	TitleOriginal string
	CoverImage    string
	SourceURL     string
	Format        string

	CurrentEpisode float64
	TotalEpisodes  float64
	CurrentChapter float64
	TotalChapters  float64
	CurrentVolume  float64
	TotalVolumes   float64

	Score    float64
	Synopsis string
	Review   string
	Notes    string

	Genres        []string
	Tags          []string
	UserStreaming []string

	Studio      string
	Author      string
	ReleaseYear int
	Season      string
	AgeRating   string

	TrailerURL   string
	OpeningURL   string
	EndingURL    string
	BroadcastDay string
	StartDate    string
	EndDate      string

	RewatchCount int
	IsFavorite   bool

	CustomLists []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomList is a user-defined named collection of items.
type CustomList struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Color       string
	ItemIDs     []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ManualCalendarEntry is a user-curated weekly release reminder,
// independent of any MediaItem.
type ManualCalendarEntry struct {
	ID        string
	Title     string
	Image     string
	DayOfWeek string
	Streaming []string
	Time      string
}
