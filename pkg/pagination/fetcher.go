package pagination

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/webex-tools/recordings-export/pkg/client"
	"github.com/webex-tools/recordings-export/pkg/ratelimit"
	"github.com/webex-tools/recordings-export/pkg/recordings"
)

// recordingsPath is the admin/compliance listing endpoint, relative to the
// API base.
const recordingsPath = "admin/convergedRecordings"

// PageFetcher is the interface the API client must implement for single-page
// fetching.
type PageFetcher interface {
	// FetchPage fetches one listing page at url, returning its items and
	// the next-page URL (empty on the last page).
	FetchPage(ctx context.Context, url string) (*client.Page, error)
}

// Config holds fetcher configuration.
type Config struct {
	// BaseURL of the API, without trailing slash.
	BaseURL string

	// PageSize is the max parameter sent with the initial request.
	PageSize int

	// WindowDays is how far back from now (UTC) the query window reaches.
	WindowDays int
}

// DefaultConfig returns the standard query window and page size.
func DefaultConfig() Config {
	return Config{
		BaseURL:    client.DefaultBaseURL,
		PageSize:   100,
		WindowDays: 30,
	}
}

// Fetcher walks all pages of the recordings listing sequentially, following
// server-issued Link cursors and backing off on 429 responses. Requests are
// strictly single-flight: page N+1 is requested only after page N arrived,
// and accumulated items preserve API order across pages.
type Fetcher struct {
	fetcher PageFetcher
	config  Config

	// sleep is replaceable in tests to avoid real backoff waits.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewFetcher creates a pagination fetcher.
func NewFetcher(fetcher PageFetcher, config Config) *Fetcher {
	if config.BaseURL == "" {
		config.BaseURL = client.DefaultBaseURL
	}
	if config.PageSize <= 0 {
		config.PageSize = 100
	}
	if config.WindowDays <= 0 {
		config.WindowDays = 30
	}

	return &Fetcher{
		fetcher: fetcher,
		config:  config,
		sleep:   sleepCtx,
	}
}

// InitialURL builds the first request URL for the query window ending at now.
func (f *Fetcher) InitialURL(now time.Time) string {
	now = now.UTC()
	from := now.AddDate(0, 0, -f.config.WindowDays)

	query := url.Values{}
	query.Set("from", from.Format("2006-01-02T15:04:05Z"))
	query.Set("to", now.Format("2006-01-02T15:04:05Z"))
	query.Set("max", fmt.Sprintf("%d", f.config.PageSize))

	return fmt.Sprintf("%s/%s?%s", f.config.BaseURL, recordingsPath, query.Encode())
}

// FetchAll retrieves every page of the listing and returns the accumulated
// records in API order. A 429 response is retried against the same URL after
// the server-directed wait, up to the consecutive budget; any other failure
// aborts immediately and discards everything fetched so far.
func (f *Fetcher) FetchAll(ctx context.Context) ([]recordings.Recording, error) {
	start := time.Now()
	currentURL := f.InitialURL(start)

	var items []recordings.Recording
	var backoff ratelimit.Backoff
	pages := 0

	for {
		page, err := f.fetcher.FetchPage(ctx, currentURL)
		if err != nil {
			var rle *client.RateLimitError
			if !errors.As(err, &rle) {
				// Generic fetch failure: fatal, no retry.
				return nil, err
			}

			backoff.Record(rle.Wait)
			if backoff.Exhausted() {
				return nil, fmt.Errorf("rate limited %d consecutive times; giving up",
					ratelimit.MaxConsecutive429)
			}

			log.Warn().
				Dur("wait", rle.Wait).
				Int("consecutive", backoff.Consecutive()).
				Msg("Rate limited; waiting before retrying same page")

			if err := f.sleep(ctx, rle.Wait); err != nil {
				return nil, err
			}
			continue // retry the same URL, do not advance
		}

		backoff.Reset()
		pages++
		items = append(items, page.Items...)

		log.Debug().
			Int("page", pages).
			Int("page_items", len(page.Items)).
			Int("total_items", len(items)).
			Msg("Accumulated page")

		if page.NextURL == "" {
			break
		}
		currentURL = page.NextURL
	}

	log.Info().
		Int("pages", pages).
		Int("items", len(items)).
		Dur("duration", time.Since(start)).
		Msg("Pagination complete")

	return items, nil
}

// SetSleep sets a custom backoff sleep function (for testing).
func (f *Fetcher) SetSleep(sleep func(ctx context.Context, d time.Duration) error) {
	f.sleep = sleep
}

// sleepCtx blocks for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
