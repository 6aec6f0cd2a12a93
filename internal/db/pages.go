package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DefaultPageCacheTTL is how long a scraped page stays fresh before ingestion
// re-fetches it.
const DefaultPageCacheTTL = 24 * time.Hour

// ScrapedPage is a cached copy of a fetched job posting page.
type ScrapedPage struct {
	ID         uuid.UUID
	URL        string
	RawHTML    *string
	ParsedText *string
	HTTPStatus *int
	FetchedAt  time.Time
	ExpiresAt  *time.Time
}

// GetFreshScrapedPage returns the cached page for a URL if it was fetched
// within ttl and has not been explicitly expired. Returns nil when there is
// no usable cache entry.
func (db *DB) GetFreshScrapedPage(ctx context.Context, pageURL string, ttl time.Duration) (*ScrapedPage, error) {
	var p ScrapedPage
	err := db.pool.QueryRow(ctx,
		`SELECT id, url, raw_html, parsed_text, http_status, fetched_at, expires_at
		 FROM scraped_pages
		 WHERE url = $1
		   AND fetched_at > NOW() - $2::interval
		   AND (expires_at IS NULL OR expires_at > NOW())`,
		pageURL, ttl.String(),
	).Scan(&p.ID, &p.URL, &p.RawHTML, &p.ParsedText, &p.HTTPStatus, &p.FetchedAt, &p.ExpiresAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read page cache: %w", err)
	}
	return &p, nil
}

// UpsertScrapedPage stores a fetched page, replacing any previous copy for
// the same URL. The page's ID and FetchedAt are filled in on return.
func (db *DB) UpsertScrapedPage(ctx context.Context, page *ScrapedPage) error {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO scraped_pages (url, raw_html, parsed_text, http_status, fetched_at, expires_at)
		 VALUES ($1, $2, $3, $4, NOW(), $5)
		 ON CONFLICT (url) DO UPDATE SET
		   raw_html = EXCLUDED.raw_html,
		   parsed_text = EXCLUDED.parsed_text,
		   http_status = EXCLUDED.http_status,
		   fetched_at = NOW(),
		   expires_at = EXCLUDED.expires_at
		 RETURNING id, fetched_at`,
		page.URL, page.RawHTML, page.ParsedText, page.HTTPStatus, page.ExpiresAt,
	).Scan(&page.ID, &page.FetchedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert scraped page: %w", err)
	}
	return nil
}

// ExpireScrapedPage marks a cached page stale so the next fetch goes to the
// network.
func (db *DB) ExpireScrapedPage(ctx context.Context, pageURL string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE scraped_pages SET expires_at = NOW() - INTERVAL '1 hour' WHERE url = $1`,
		pageURL,
	)
	if err != nil {
		return fmt.Errorf("failed to expire scraped page: %w", err)
	}
	return nil
}
