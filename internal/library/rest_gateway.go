package library

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RESTGateway speaks the backend HTTP API. A 401 response clears the
// session via the OnUnauthorized hook before the error is returned.
type RESTGateway struct {
	baseURL    string
	token      func() string
	httpClient *http.Client

	// OnUnauthorized is invoked once per rejected request, if set.
	OnUnauthorized func()
}

func NewRESTGateway(baseURL string, token func() string) *RESTGateway {
	return &RESTGateway{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (g *RESTGateway) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := g.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if g.OnUnauthorized != nil {
			g.OnUnauthorized()
		}
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		return fmt.Errorf("unexpected status %d for %s %s", resp.StatusCode, method, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (g *RESTGateway) FetchItems(ctx context.Context) ([]MediaItem, error) {
	var wires []ItemWire
	if err := g.do(ctx, http.MethodGet, "/api/media", nil, &wires); err != nil {
		return nil, err
	}
	items := make([]MediaItem, 0, len(wires))
	for _, w := range wires {
		items = append(items, ToInternal(w))
	}
	return items, nil
}

func (g *RESTGateway) CreateItem(ctx context.Context, item MediaItem) (MediaItem, error) {
	var wire ItemWire
	if err := g.do(ctx, http.MethodPost, "/api/media", ToWire(item), &wire); err != nil {
		return MediaItem{}, err
	}
	return ToInternal(wire), nil
}

func (g *RESTGateway) UpdateItem(ctx context.Context, id string, patch ItemPatch) (MediaItem, error) {
	var wire ItemWire
	if err := g.do(ctx, http.MethodPatch, "/api/media/"+id, patch.Wire(), &wire); err != nil {
		return MediaItem{}, err
	}
	return ToInternal(wire), nil
}

func (g *RESTGateway) DeleteItem(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/api/media/"+id, nil, nil)
}

func (g *RESTGateway) FetchLists(ctx context.Context) ([]CustomList, error) {
	var wires []ListWire
	if err := g.do(ctx, http.MethodGet, "/api/lists", nil, &wires); err != nil {
		return nil, err
	}
	lists := make([]CustomList, 0, len(wires))
	for _, w := range wires {
		lists = append(lists, ListToInternal(w))
	}
	return lists, nil
}

func (g *RESTGateway) CreateList(ctx context.Context, list CustomList) (CustomList, error) {
	body := map[string]interface{}{
		"name":        list.Name,
		"description": list.Description,
		"icon":        list.Icon,
		"color":       list.Color,
	}
	var wire ListWire
	if err := g.do(ctx, http.MethodPost, "/api/lists", body, &wire); err != nil {
		return CustomList{}, err
	}
	return ListToInternal(wire), nil
}

func (g *RESTGateway) UpdateList(ctx context.Context, id string, patch ListPatch) (CustomList, error) {
	var wire ListWire
	if err := g.do(ctx, http.MethodPut, "/api/lists/"+id, patch.Wire(), &wire); err != nil {
		return CustomList{}, err
	}
	return ListToInternal(wire), nil
}

func (g *RESTGateway) DeleteList(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/api/lists/"+id, nil, nil)
}

func (g *RESTGateway) AddListItem(ctx context.Context, listID, mediaID string) error {
	body := map[string]interface{}{"media_item_id": mediaID}
	return g.do(ctx, http.MethodPost, "/api/lists/"+listID+"/items", body, nil)
}

func (g *RESTGateway) RemoveListItem(ctx context.Context, listID, mediaID string) error {
	return g.do(ctx, http.MethodDelete, "/api/lists/"+listID+"/items/"+mediaID, nil, nil)
}

func (g *RESTGateway) FetchEntries(ctx context.Context) ([]ManualCalendarEntry, error) {
	var wires []EntryWire
	if err := g.do(ctx, http.MethodGet, "/api/calendar", nil, &wires); err != nil {
		return nil, err
	}
	entries := make([]ManualCalendarEntry, 0, len(wires))
	for _, w := range wires {
		entries = append(entries, EntryToInternal(w))
	}
	return entries, nil
}

func (g *RESTGateway) CreateEntry(ctx context.Context, entry ManualCalendarEntry) (ManualCalendarEntry, error) {
	var wire EntryWire
	if err := g.do(ctx, http.MethodPost, "/api/calendar", entryBody(entry), &wire); err != nil {
		return ManualCalendarEntry{}, err
	}
	return EntryToInternal(wire), nil
}

func (g *RESTGateway) UpdateEntry(ctx context.Context, entry ManualCalendarEntry) (ManualCalendarEntry, error) {
	var wire EntryWire
	if err := g.do(ctx, http.MethodPut, "/api/calendar/"+entry.ID, entryBody(entry), &wire); err != nil {
		return ManualCalendarEntry{}, err
	}
	return EntryToInternal(wire), nil
}

func (g *RESTGateway) DeleteEntry(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/api/calendar/"+id, nil, nil)
}

func entryBody(e ManualCalendarEntry) map[string]interface{} {
	body := map[string]interface{}{
		"title":       e.Title,
		"day_of_week": strings.ToLower(e.DayOfWeek),
		"streaming":   emptyIfNil(e.Streaming),
	}
	if e.Image != "" {
		body["image"] = e.Image
	}
	if e.Time != "" {
		body["time"] = e.Time
	}
	return body
}
