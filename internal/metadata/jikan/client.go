package jikan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultAPIURL = "https://api.jikan.moe/v4"

	// Rate limiting: Jikan allows ~3 requests per second; a fixed 400ms
	// spacing with no burst keeps us comfortably under it
	requestSpacing = 400 * time.Millisecond

	// Retry configuration
	maxRetries   = 3
	initialDelay = 1 * time.Second
	maxDelay     = 8 * time.Second
)

// Client handles Jikan v4 API requests with rate limiting. The provider is
// treated as unreliable: callers are expected to degrade to empty results
// when an error comes back.
type Client struct {
	apiURL      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

// NewClient creates a new Jikan API client. An empty apiURL selects the
// public endpoint.
func NewClient(apiURL string) *Client {
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Client{
		apiURL:      apiURL,
		rateLimiter: rate.NewLimiter(rate.Every(requestSpacing), 1),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// SearchAnime performs a free-text anime search.
func (c *Client) SearchAnime(ctx context.Context, query string) ([]Entry, error) {
	return c.search(ctx, "anime", query)
}

// SearchManga performs a free-text manga search.
func (c *Client) SearchManga(ctx context.Context, query string) ([]Entry, error) {
	return c.search(ctx, "manga", query)
}

func (c *Client) search(ctx context.Context, kind, query string) ([]Entry, error) {
	endpoint := fmt.Sprintf("/%s?q=%s&sfw", kind, url.QueryEscape(query))

	var result listResponse
	if err := c.doRequest(ctx, endpoint, &result); err != nil {
		return nil, fmt.Errorf("search %s: %w", kind, err)
	}
	return result.Data, nil
}

// GetAnimeByID fetches a single anime by its MAL catalog id.
func (c *Client) GetAnimeByID(ctx context.Context, malID int64) (*Entry, error) {
	var result singleResponse
	if err := c.doRequest(ctx, fmt.Sprintf("/anime/%d", malID), &result); err != nil {
		return nil, fmt.Errorf("get anime %d: %w", malID, err)
	}
	return &result.Data, nil
}

// GetMangaByID fetches a single manga by its MAL catalog id.
func (c *Client) GetMangaByID(ctx context.Context, malID int64) (*Entry, error) {
	var result singleResponse
	if err := c.doRequest(ctx, fmt.Sprintf("/manga/%d", malID), &result); err != nil {
		return nil, fmt.Errorf("get manga %d: %w", malID, err)
	}
	return &result.Data, nil
}

// SearchByGenres lists the top-scored works matching the given MAL
// genre ids. Passing sfw=false lifts the provider's safe filter, which
// is required for explicit-genre seeds to return anything.
func (c *Client) SearchByGenres(ctx context.Context, kind string, genreIDs []int64, sfw bool) ([]Entry, error) {
	ids := make([]string, 0, len(genreIDs))
	for _, id := range genreIDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}

	endpoint := fmt.Sprintf("/%s?genres=%s&order_by=score&sort=desc", kind, strings.Join(ids, ","))
	if sfw {
		endpoint += "&sfw"
	}

	var result listResponse
	if err := c.doRequest(ctx, endpoint, &result); err != nil {
		return nil, fmt.Errorf("search %s by genres: %w", kind, err)
	}
	return result.Data, nil
}

// GetRecommendations fetches the community recommendations for a work.
func (c *Client) GetRecommendations(ctx context.Context, kind string, malID int64) ([]Recommendation, error) {
	var result recommendationsResponse
	if err := c.doRequest(ctx, fmt.Sprintf("/%s/%d/recommendations", kind, malID), &result); err != nil {
		return nil, fmt.Errorf("recommendations for %s %d: %w", kind, malID, err)
	}
	return result.Data, nil
}

// GetSeasonNow fetches the currently airing season.
func (c *Client) GetSeasonNow(ctx context.Context) ([]Entry, error) {
	var result listResponse
	if err := c.doRequest(ctx, "/seasons/now?sfw", &result); err != nil {
		return nil, fmt.Errorf("seasonal anime: %w", err)
	}
	return result.Data, nil
}

// doRequest performs a GET request with rate limiting and retry logic
func (c *Client) doRequest(ctx context.Context, endpoint string, result interface{}) error {
	var lastErr error
	delay := initialDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		// Rate limit
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, "GET", c.apiURL+endpoint, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < maxRetries {
				log.Printf("[Jikan] Request failed (attempt %d/%d): %v, retrying in %v...",
					attempt+1, maxRetries, err, delay)
				time.Sleep(delay)
				delay = minDuration(delay*2, maxDelay)
				continue
			}
			return fmt.Errorf("request failed after %d attempts: %w", maxRetries, lastErr)
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			// Retry on rate limit or server errors
			if shouldRetry(resp.StatusCode) && attempt < maxRetries {
				lastErr = fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))

				if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
					if retryDuration, err := time.ParseDuration(retryAfter + "s"); err == nil {
						delay = retryDuration
					}
				}

				log.Printf("[Jikan] HTTP %d (attempt %d/%d), retrying in %v...",
					resp.StatusCode, attempt+1, maxRetries, delay)
				time.Sleep(delay)
				delay = minDuration(delay*2, maxDelay)
				continue
			}

			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
		}

		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}

		return nil
	}

	return lastErr
}

func shouldRetry(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
