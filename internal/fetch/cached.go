package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/workhive/workhive/internal/db"
)

// PageCache is the persistence surface the cached fetcher needs.
// *db.DB satisfies it.
type PageCache interface {
	GetFreshScrapedPage(ctx context.Context, pageURL string, ttl time.Duration) (*db.ScrapedPage, error)
	UpsertScrapedPage(ctx context.Context, page *db.ScrapedPage) error
	ExpireScrapedPage(ctx context.Context, pageURL string) error
}

// CachedFetcher wraps page fetching with a database-backed cache so repeated
// ingestion runs do not hammer the same board pages.
type CachedFetcher struct {
	cache     PageCache
	options   *Options
	cacheTTL  time.Duration
	skipCache bool
}

// CachedFetcherConfig configures the cached fetcher.
type CachedFetcherConfig struct {
	CacheTTL  time.Duration
	SkipCache bool
	Options   *Options
}

// NewCachedFetcher creates a cached fetcher. A nil config gets defaults.
func NewCachedFetcher(cache PageCache, config *CachedFetcherConfig) *CachedFetcher {
	if config == nil {
		config = &CachedFetcherConfig{}
	}
	if config.Options == nil {
		config.Options = DefaultOptions()
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = db.DefaultPageCacheTTL
	}
	return &CachedFetcher{
		cache:     cache,
		options:   config.Options,
		cacheTTL:  config.CacheTTL,
		skipCache: config.SkipCache,
	}
}

// CachedResult extends Result with cache provenance.
type CachedResult struct {
	*Result
	FromCache bool
	PageID    uuid.UUID
}

// Fetch retrieves a page, serving it from cache when a fresh copy exists.
// Fresh fetches are stored back with the board-specific text already
// extracted.
func (f *CachedFetcher) Fetch(ctx context.Context, pageURL string) (*CachedResult, error) {
	if !f.skipCache && f.cache != nil {
		cached, err := f.cache.GetFreshScrapedPage(ctx, pageURL, f.cacheTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to check page cache: %w", err)
		}
		if cached != nil {
			return &CachedResult{
				Result: &Result{
					URL:        cached.URL,
					HTML:       derefString(cached.RawHTML),
					Text:       derefString(cached.ParsedText),
					StatusCode: derefInt(cached.HTTPStatus),
				},
				FromCache: true,
				PageID:    cached.ID,
			}, nil
		}
	}

	result, err := Get(ctx, pageURL, f.options)
	if err != nil {
		return nil, err
	}

	board := DetectBoard(pageURL)
	text, _ := ExtractText(result.HTML, BoardContentSelectors(board), BoardNoiseSelectors(board)...)
	result.Text = text

	out := &CachedResult{Result: result}
	if f.cache != nil {
		page := &db.ScrapedPage{
			URL:        pageURL,
			RawHTML:    &result.HTML,
			ParsedText: &result.Text,
			HTTPStatus: &result.StatusCode,
		}
		if err := f.cache.UpsertScrapedPage(ctx, page); err == nil {
			out.PageID = page.ID
		}
		// A failed cache write is not a failed fetch
	}
	return out, nil
}

// Invalidate forces the next Fetch of the URL to hit the network.
func (f *CachedFetcher) Invalidate(ctx context.Context, pageURL string) error {
	if f.cache == nil {
		return nil
	}
	return f.cache.ExpireScrapedPage(ctx, pageURL)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
