package library

import (
	"context"
	"errors"
	"strings"

	"kioku/internal/httpapi/models"
	"kioku/internal/httpapi/repository"

	"gorm.io/gorm"
)

// DBGateway writes to the database directly instead of going through
// the HTTP API. It serves deployments where the client runs alongside
// the backend and a round-trip through HTTP buys nothing.
type DBGateway struct {
	userID       string
	mediaRepo    repository.MediaRepository
	listRepo     repository.ListRepository
	calendarRepo repository.CalendarRepository
}

func NewDBGateway(db *gorm.DB, userID string) *DBGateway {
	return &DBGateway{
		userID:       userID,
		mediaRepo:    repository.NewMediaRepository(db),
		listRepo:     repository.NewListRepository(db),
		calendarRepo: repository.NewCalendarRepository(db),
	}
}

func (g *DBGateway) FetchItems(ctx context.Context) ([]MediaItem, error) {
	rows, err := g.mediaRepo.ListByUser(ctx, g.userID)
	if err != nil {
		return nil, err
	}
	items := make([]MediaItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, fromRecord(row))
	}
	return items, nil
}

func (g *DBGateway) CreateItem(ctx context.Context, item MediaItem) (MediaItem, error) {
	record := toRecord(item)
	record.UserID = g.userID
	if err := g.mediaRepo.Create(ctx, &record); err != nil {
		return MediaItem{}, err
	}
	return fromRecord(record), nil
}

func (g *DBGateway) UpdateItem(ctx context.Context, id string, patch ItemPatch) (MediaItem, error) {
	if err := g.mediaRepo.Update(ctx, g.userID, id, itemChanges(patch)); err != nil {
		return MediaItem{}, mapDBError(err)
	}
	row, err := g.mediaRepo.GetByID(ctx, g.userID, id)
	if err != nil {
		return MediaItem{}, mapDBError(err)
	}
	return fromRecord(*row), nil
}

func (g *DBGateway) DeleteItem(ctx context.Context, id string) error {
	return mapDBError(g.mediaRepo.Delete(ctx, g.userID, id))
}

// itemChanges prepares a patch for a gorm map update. Map updates skip
// the model's Valuer, so the jsonb array columns need the concrete
// StringArray type up front or pgx encodes them as text[].
func itemChanges(patch ItemPatch) map[string]interface{} {
	changes := patch.Wire()
	for _, key := range []string{"genres", "tags", "user_streaming"} {
		if v, ok := changes[key].([]string); ok {
			changes[key] = models.StringArray(v)
		}
	}
	return changes
}

func (g *DBGateway) FetchLists(ctx context.Context) ([]CustomList, error) {
	rows, err := g.listRepo.ListByUser(ctx, g.userID)
	if err != nil {
		return nil, err
	}
	lists := make([]CustomList, 0, len(rows))
	for _, row := range rows {
		lists = append(lists, fromListRecord(row))
	}
	return lists, nil
}

func (g *DBGateway) CreateList(ctx context.Context, list CustomList) (CustomList, error) {
	record := models.CustomList{
		UserID:      g.userID,
		Name:        list.Name,
		Description: ptrIfSet(list.Description),
		Icon:        ptrIfSet(list.Icon),
		Color:       ptrIfSet(list.Color),
	}
	if err := g.listRepo.Create(ctx, &record); err != nil {
		return CustomList{}, err
	}
	return fromListRecord(record), nil
}

func (g *DBGateway) UpdateList(ctx context.Context, id string, patch ListPatch) (CustomList, error) {
	if err := g.listRepo.Update(ctx, g.userID, id, patch.Wire()); err != nil {
		return CustomList{}, mapDBError(err)
	}
	row, err := g.listRepo.GetByID(ctx, g.userID, id)
	if err != nil {
		return CustomList{}, mapDBError(err)
	}
	return fromListRecord(*row), nil
}

func (g *DBGateway) DeleteList(ctx context.Context, id string) error {
	return mapDBError(g.listRepo.Delete(ctx, g.userID, id))
}

func (g *DBGateway) AddListItem(ctx context.Context, listID, mediaID string) error {
	// membership is unique; adding an existing pair is a no-op
	exists, err := g.listRepo.HasItem(ctx, listID, mediaID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return mapDBError(g.listRepo.AddItem(ctx, listID, mediaID))
}

func (g *DBGateway) RemoveListItem(ctx context.Context, listID, mediaID string) error {
	return mapDBError(g.listRepo.RemoveItem(ctx, listID, mediaID))
}

func (g *DBGateway) FetchEntries(ctx context.Context) ([]ManualCalendarEntry, error) {
	rows, err := g.calendarRepo.ListByUser(ctx, g.userID)
	if err != nil {
		return nil, err
	}
	entries := make([]ManualCalendarEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, fromEntryRecord(row))
	}
	return entries, nil
}

func (g *DBGateway) CreateEntry(ctx context.Context, entry ManualCalendarEntry) (ManualCalendarEntry, error) {
	record := toEntryRecord(entry)
	record.UserID = g.userID
	if err := g.calendarRepo.Create(ctx, &record); err != nil {
		return ManualCalendarEntry{}, err
	}
	return fromEntryRecord(record), nil
}

func (g *DBGateway) UpdateEntry(ctx context.Context, entry ManualCalendarEntry) (ManualCalendarEntry, error) {
	changes := map[string]interface{}{
		"title":       entry.Title,
		"day_of_week": strings.ToLower(entry.DayOfWeek),
		"image":       entry.Image,
		"streaming":   models.StringArray(emptyIfNil(entry.Streaming)),
		"time":        entry.Time,
	}
	if err := g.calendarRepo.Update(ctx, g.userID, entry.ID, changes); err != nil {
		return ManualCalendarEntry{}, mapDBError(err)
	}
	row, err := g.calendarRepo.GetByID(ctx, g.userID, entry.ID)
	if err != nil {
		return ManualCalendarEntry{}, mapDBError(err)
	}
	return fromEntryRecord(*row), nil
}

func (g *DBGateway) DeleteEntry(ctx context.Context, id string) error {
	return mapDBError(g.calendarRepo.Delete(ctx, g.userID, id))
}

func mapDBError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func fromRecord(m models.MediaItem) MediaItem {
	listIDs := make([]string, 0, len(m.CustomLists))
	for _, l := range m.CustomLists {
		listIDs = append(listIDs, l.ID)
	}

	return MediaItem{
		ID:             m.ID,
		MalID:          derefInt64(m.MalID),
		Type:           MediaType(m.Type),
		Status:         MediaStatus(m.Status),
		Title:          m.Title,
		TitleOriginal:  deref(m.TitleOriginal),
		CoverImage:     m.CoverImage,
		SourceURL:      deref(m.SourceURL),
		Format:         deref(m.Format),
		CurrentEpisode: m.CurrentEpisode,
		TotalEpisodes:  m.TotalEpisodes,
		CurrentChapter: m.CurrentChapter,
		TotalChapters:  m.TotalChapters,
		CurrentVolume:  m.CurrentVolume,
		TotalVolumes:   m.TotalVolumes,
		Score:          m.Score,
		Synopsis:       m.Synopsis,
		Review:         m.Review,
		Notes:          m.Notes,
		Genres:         emptyIfNil(m.Genres),
		Tags:           emptyIfNil(m.Tags),
		UserStreaming:  emptyIfNil(m.UserStreaming),
		Studio:         deref(m.Studio),
		Author:         deref(m.Author),
		ReleaseYear:    derefInt(m.ReleaseYear),
		Season:         deref(m.Season),
		AgeRating:      deref(m.AgeRating),
		TrailerURL:     deref(m.TrailerURL),
		OpeningURL:     deref(m.OpeningURL),
		EndingURL:      deref(m.EndingURL),
		BroadcastDay:   deref(m.BroadcastDay),
		StartDate:      deref(m.StartDate),
		EndDate:        deref(m.EndDate),
		RewatchCount:   m.RewatchCount,
		IsFavorite:     m.IsFavorite,
		CustomLists:    listIDs,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toRecord(m MediaItem) models.MediaItem {
	return models.MediaItem{
		ID:             m.ID,
		MalID:          int64PtrIfSet(m.MalID),
		Type:           string(m.Type),
		Status:         string(m.Status),
		Title:          m.Title,
		TitleOriginal:  ptrIfSet(m.TitleOriginal),
		CoverImage:     m.CoverImage,
		SourceURL:      ptrIfSet(m.SourceURL),
		Format:         ptrIfSet(m.Format),
		CurrentEpisode: m.CurrentEpisode,
		TotalEpisodes:  m.TotalEpisodes,
		CurrentChapter: m.CurrentChapter,
		TotalChapters:  m.TotalChapters,
		CurrentVolume:  m.CurrentVolume,
		TotalVolumes:   m.TotalVolumes,
		Score:          m.Score,
		Synopsis:       m.Synopsis,
		Review:         m.Review,
		Notes:          m.Notes,
		Genres:         models.StringArray(emptyIfNil(m.Genres)),
		Tags:           models.StringArray(emptyIfNil(m.Tags)),
		UserStreaming:  models.StringArray(emptyIfNil(m.UserStreaming)),
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
	}
}

func fromEntryRecord(e models.CalendarEntry) ManualCalendarEntry {
	return ManualCalendarEntry{
		ID:        e.ID,
		Title:     e.Title,
		Image:     deref(e.Image),
		DayOfWeek: e.DayOfWeek,
		Streaming: emptyIfNil(e.Streaming),
		Time:      deref(e.Time),
	}
}

func toEntryRecord(e ManualCalendarEntry) models.CalendarEntry {
	return models.CalendarEntry{
		ID:        e.ID,
		Title:     e.Title,
		Image:     ptrIfSet(e.Image),
		DayOfWeek: strings.ToLower(e.DayOfWeek),
		Streaming: models.StringArray(emptyIfNil(e.Streaming)),
		Time:      ptrIfSet(e.Time),
	}
}

func fromListRecord(l models.CustomList) CustomList {
	itemIDs := make([]string, 0, len(l.MediaItems))
	for _, item := range l.MediaItems {
		itemIDs = append(itemIDs, item.ID)
	}
	return CustomList{
		ID:          l.ID,
		Name:        l.Name,
		Description: deref(l.Description),
		Icon:        deref(l.Icon),
		Color:       deref(l.Color),
		ItemIDs:     itemIDs,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
