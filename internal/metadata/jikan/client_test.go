package jikan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchAnime_ParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/anime", r.URL.Path)
		assert.Equal(t, "cowboy bebop", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": [
				{"mal_id": 1, "title": "Cowboy Bebop", "type": "TV", "episodes": 26, "score": 8.75}
			],
			"pagination": {"has_next_page": false}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	entries, err := client.SearchAnime(context.Background(), "cowboy bebop")
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].MalID)
	assert.Equal(t, "Cowboy Bebop", entries[0].Title)
	require.NotNil(t, entries[0].Score)
	assert.Equal(t, 8.75, *entries[0].Score)
}

func TestGetAnimeByID_UsesIDPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/anime/5114", r.URL.Path)
		w.Write([]byte(`{"data": {"mal_id": 5114, "title": "Fullmetal Alchemist: Brotherhood"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	entry, err := client.GetAnimeByID(context.Background(), 5114)
	require.NoError(t, err)
	assert.Equal(t, "Fullmetal Alchemist: Brotherhood", entry.Title)
}

func TestDoRequest_RetriesOnTooManyRequests(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	entries, err := client.SearchManga(context.Background(), "berserk")
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDoRequest_NoRetryOnClientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	_, err := client.SearchAnime(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
