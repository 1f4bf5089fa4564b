package library

import (
	"context"
	"errors"
)

var (
	// ErrUnauthorized means the credentials were rejected; the caller
	// should clear its token and re-authenticate.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound covers both genuinely missing records and records
	// owned by another user.
	ErrNotFound = errors.New("not found")
)

// Gateway is the remote side of the library. Two implementations
// exist: one speaking the REST API and one writing to the database
// directly. The store depends only on this interface.
type Gateway interface {
	FetchItems(ctx context.Context) ([]MediaItem, error)
	CreateItem(ctx context.Context, item MediaItem) (MediaItem, error)
	UpdateItem(ctx context.Context, id string, patch ItemPatch) (MediaItem, error)
	DeleteItem(ctx context.Context, id string) error

	FetchLists(ctx context.Context) ([]CustomList, error)
	CreateList(ctx context.Context, list CustomList) (CustomList, error)
	UpdateList(ctx context.Context, id string, patch ListPatch) (CustomList, error)
	DeleteList(ctx context.Context, id string) error
	AddListItem(ctx context.Context, listID, mediaID string) error
	RemoveListItem(ctx context.Context, listID, mediaID string) error
}

// EntryGateway is the slice of the remote surface the weekly planner
// needs. Both gateways implement it alongside Gateway.
type EntryGateway interface {
	FetchEntries(ctx context.Context) ([]ManualCalendarEntry, error)
	CreateEntry(ctx context.Context, entry ManualCalendarEntry) (ManualCalendarEntry, error)
	UpdateEntry(ctx context.Context, entry ManualCalendarEntry) (ManualCalendarEntry, error)
	DeleteEntry(ctx context.Context, id string) error
}

// ListPatch carries only the list fields a mutation explicitly sets.
type ListPatch struct {
	Name        *string
	Description *string
	Icon        *string
	Color       *string
}

// Wire returns the snake_case patch body with only the set fields.
func (p ListPatch) Wire() map[string]interface{} {
	body := make(map[string]interface{})
	if p.Name != nil {
		body["name"] = *p.Name
	}
	if p.Description != nil {
		body["description"] = *p.Description
	}
	if p.Icon != nil {
		body["icon"] = *p.Icon
	}
	if p.Color != nil {
		body["color"] = *p.Color
	}
	return body
}

func (p ListPatch) inverseFor(prior CustomList) ListPatch {
	var inv ListPatch
	if p.Name != nil {
		v := prior.Name
		inv.Name = &v
	}
	if p.Description != nil {
		v := prior.Description
		inv.Description = &v
	}
	if p.Icon != nil {
		v := prior.Icon
		inv.Icon = &v
	}
	if p.Color != nil {
		v := prior.Color
		inv.Color = &v
	}
	return inv
}

// Apply overlays the set fields of the patch onto a list.
func (p ListPatch) Apply(l *CustomList) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Icon != nil {
		l.Icon = *p.Icon
	}
	if p.Color != nil {
		l.Color = *p.Color
	}
}
