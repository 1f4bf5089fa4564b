package calendar

import (
	"testing"

	"kioku/internal/library"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntriesByDay_CaseInsensitive(t *testing.T) {
	s := NewScheduler()
	s.Add(library.ManualCalendarEntry{Title: "One Piece", DayOfWeek: "Sunday"})
	s.Add(library.ManualCalendarEntry{Title: "Frieren", DayOfWeek: "friday"})

	upper := s.EntriesByDay("Sunday")
	lower := s.EntriesByDay("sunday")

	require.Len(t, upper, 1)
	assert.Equal(t, upper, lower)
	assert.Equal(t, "One Piece", upper[0].Title)
}

func TestAssign_MovesEntryBetweenDays(t *testing.T) {
	s := NewScheduler()
	entry := s.Add(library.ManualCalendarEntry{Title: "One Piece", DayOfWeek: "sunday"})

	moved := s.Assign(entry.ID, "Monday")

	assert.True(t, moved)
	assert.Empty(t, s.EntriesByDay("sunday"))
	require.Len(t, s.EntriesByDay("monday"), 1)
}

func TestAssign_SameDayIsNoOp(t *testing.T) {
	s := NewScheduler()
	entry := s.Add(library.ManualCalendarEntry{Title: "One Piece", DayOfWeek: "sunday"})

	moved := s.Assign(entry.ID, "SUNDAY")

	assert.False(t, moved)
	require.Len(t, s.EntriesByDay("sunday"), 1)
}

func TestAssign_OnlyTouchesDayOfWeek(t *testing.T) {
	s := NewScheduler()
	entry := s.Add(library.ManualCalendarEntry{
		Title:     "One Piece",
		DayOfWeek: "sunday",
		Streaming: []string{"Crunchyroll"},
		Time:      "09:30",
	})

	s.Assign(entry.ID, "monday")

	got := s.EntriesByDay("monday")[0]
	assert.Equal(t, "One Piece", got.Title)
	assert.Equal(t, []string{"Crunchyroll"}, got.Streaming)
	assert.Equal(t, "09:30", got.Time)
}

func TestAssign_UnknownIDIsNoOp(t *testing.T) {
	s := NewScheduler()

	assert.False(t, s.Assign("missing", "monday"))
}

func TestRemove_MissingIDIsNoOp(t *testing.T) {
	s := NewScheduler()
	s.Remove("missing")

	assert.Empty(t, s.Snapshot())
}

func TestReplace_NormalizesDayTokens(t *testing.T) {
	s := NewScheduler()
	s.Replace([]library.ManualCalendarEntry{
		{ID: "1", Title: "A", DayOfWeek: "MONDAY"},
		{ID: "2", Title: "B", DayOfWeek: "Tuesday"},
	})

	require.Len(t, s.EntriesByDay("monday"), 1)
	require.Len(t, s.EntriesByDay("tuesday"), 1)
}
