package dto

import (
	"kioku/internal/httpapi/models"
)

// CreateCalendarEntryDTO used for POST /api/calendar
type CreateCalendarEntryDTO struct {
	Title     string   `json:"title" binding:"required"`
	DayOfWeek string   `json:"day_of_week" binding:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Image     *string  `json:"image,omitempty"`
	Streaming []string `json:"streaming,omitempty"`
	Time      *string  `json:"time,omitempty" binding:"omitempty,datetime=15:04"`
}

// UpdateCalendarEntryDTO used for PUT /api/calendar/:id
type UpdateCalendarEntryDTO struct {
	Title     *string   `json:"title,omitempty"`
	DayOfWeek *string   `json:"day_of_week,omitempty" binding:"omitempty,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Image     *string   `json:"image,omitempty"`
	Streaming *[]string `json:"streaming,omitempty"`
	Time      *string   `json:"time,omitempty" binding:"omitempty,datetime=15:04"`
}

type CalendarEntryResponse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Image     *string  `json:"image,omitempty"`
	DayOfWeek string   `json:"day_of_week"`
	Streaming []string `json:"streaming"`
	Time      *string  `json:"time,omitempty"`
}

func (d CreateCalendarEntryDTO) ToModel() models.CalendarEntry {
	return models.CalendarEntry{
		Title:     d.Title,
		DayOfWeek: d.DayOfWeek,
		Image:     d.Image,
		Streaming: models.StringArray(d.Streaming),
		Time:      d.Time,
	}
}

func (d UpdateCalendarEntryDTO) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if d.Title != nil {
		changes["title"] = *d.Title
	}
	if d.DayOfWeek != nil {
		changes["day_of_week"] = *d.DayOfWeek
	}
	if d.Image != nil {
		changes["image"] = *d.Image
	}
	if d.Streaming != nil {
		changes["streaming"] = models.StringArray(*d.Streaming)
	}
	if d.Time != nil {
		changes["time"] = *d.Time
	}
	return changes
}

func FromEntryToResponse(e models.CalendarEntry) CalendarEntryResponse {
	streaming := []string(e.Streaming)
	if streaming == nil {
		streaming = []string{}
	}
	return CalendarEntryResponse{
		ID:        e.ID,
		Title:     e.Title,
		Image:     e.Image,
		DayOfWeek: e.DayOfWeek,
		Streaming: streaming,
		Time:      e.Time,
	}
}
