// Package calendar is the client-side weekly release planner: a small
// state container partitioning manual entries by day of week, plus the
// image resolution pipeline the export-to-image feature needs.
package calendar

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"kioku/internal/library"
)

// Days are the canonical lowercase day tokens, in display order.
var Days = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Scheduler holds the current set of manual calendar entries. Day
// comparisons are case-insensitive; the stored token is always
// lowercase.
type Scheduler struct {
	mu      sync.Mutex
	entries map[string]library.ManualCalendarEntry
	gateway library.EntryGateway
}

func NewScheduler() *Scheduler {
	return &Scheduler{entries: make(map[string]library.ManualCalendarEntry)}
}

// NewSyncedScheduler persists every mutation through gw before applying
// it locally. A remote failure leaves the local state untouched.
func NewSyncedScheduler(gw library.EntryGateway) *Scheduler {
	return &Scheduler{
		entries: make(map[string]library.ManualCalendarEntry),
		gateway: gw,
	}
}

// Load fetches the stored entry set and swaps it in. Without a gateway
// it is a no-op.
func (s *Scheduler) Load(ctx context.Context) error {
	if s.gateway == nil {
		return nil
	}
	entries, err := s.gateway.FetchEntries(ctx)
	if err != nil {
		return err
	}
	s.Replace(entries)
	return nil
}

// Create persists the entry, then inserts the stored record (carrying
// the server-assigned id) locally.
func (s *Scheduler) Create(ctx context.Context, entry library.ManualCalendarEntry) (library.ManualCalendarEntry, error) {
	if s.gateway == nil {
		return s.Add(entry), nil
	}
	stored, err := s.gateway.CreateEntry(ctx, entry)
	if err != nil {
		return library.ManualCalendarEntry{}, err
	}
	return s.Add(stored), nil
}

// Save persists a full replacement of an existing entry.
func (s *Scheduler) Save(ctx context.Context, entry library.ManualCalendarEntry) error {
	if s.gateway != nil {
		stored, err := s.gateway.UpdateEntry(ctx, entry)
		if err != nil {
			return err
		}
		entry = stored
	}
	s.Update(entry)
	return nil
}

// Delete removes the entry remotely and locally. A record already gone
// on the remote side still counts as deleted.
func (s *Scheduler) Delete(ctx context.Context, id string) error {
	if s.gateway != nil {
		if err := s.gateway.DeleteEntry(ctx, id); err != nil && !errors.Is(err, library.ErrNotFound) {
			return err
		}
	}
	s.Remove(id)
	return nil
}

// Move reassigns an entry to another day, persisting the change. Like
// Assign, moving to the current day reports false and touches nothing.
func (s *Scheduler) Move(ctx context.Context, id, day string) (bool, error) {
	day = strings.ToLower(day)

	s.mu.Lock()
	entry, ok := s.entries[id]
	s.mu.Unlock()
	if !ok || entry.DayOfWeek == day {
		return false, nil
	}

	if s.gateway != nil {
		entry.DayOfWeek = day
		if _, err := s.gateway.UpdateEntry(ctx, entry); err != nil {
			return false, err
		}
	}
	return s.Assign(id, day), nil
}

// Replace swaps in a freshly loaded entry set.
func (s *Scheduler) Replace(entries []library.ManualCalendarEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]library.ManualCalendarEntry, len(entries))
	for _, e := range entries {
		e.DayOfWeek = strings.ToLower(e.DayOfWeek)
		s.entries[e.ID] = e
	}
}

// Add inserts an entry, assigning an id when it has none.
func (s *Scheduler) Add(entry library.ManualCalendarEntry) library.ManualCalendarEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.DayOfWeek = strings.ToLower(entry.DayOfWeek)
	s.entries[entry.ID] = entry
	return entry
}

// Update replaces an existing entry in place; unknown ids are ignored.
func (s *Scheduler) Update(entry library.ManualCalendarEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.ID]; !ok {
		return false
	}
	entry.DayOfWeek = strings.ToLower(entry.DayOfWeek)
	s.entries[entry.ID] = entry
	return true
}

// Remove deletes an entry; removing a missing id is a no-op.
func (s *Scheduler) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Assign moves an entry to another day, touching nothing else. Moving
// to the day it is already on reports false and changes nothing.
func (s *Scheduler) Assign(id, day string) bool {
	day = strings.ToLower(day)

	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok || entry.DayOfWeek == day {
		return false
	}
	entry.DayOfWeek = day
	s.entries[id] = entry
	return true
}

// EntriesByDay returns the entries assigned to the given day, matched
// case-insensitively.
func (s *Scheduler) EntriesByDay(day string) []library.ManualCalendarEntry {
	day = strings.ToLower(day)

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []library.ManualCalendarEntry{}
	for _, entry := range s.entries {
		if entry.DayOfWeek == day {
			out = append(out, entry)
		}
	}
	return out
}

// Snapshot returns a copy of every entry, for the export pipeline.
func (s *Scheduler) Snapshot() []library.ManualCalendarEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]library.ManualCalendarEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, entry)
	}
	return out
}
