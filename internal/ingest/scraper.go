package ingest

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/workhive/workhive/internal/db"
	"github.com/workhive/workhive/internal/fetch"
)

// descriptionLimit caps the stored posting text. Match scoring works on the
// opening of a posting; storing whole pages bloats the corpus.
const descriptionLimit = 8000

// PageFetcher is the fetch surface the scraper needs. *fetch.CachedFetcher
// satisfies it.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (*fetch.CachedResult, error)
}

// BoardScraper turns a hosted job board posting URL into a corpus input.
type BoardScraper struct {
	fetcher        PageFetcher
	browserEnabled bool
	browserTimeout time.Duration
	verbose        bool
}

// BoardScraperConfig configures the scraper.
type BoardScraperConfig struct {
	// EnableBrowser falls back to headless rendering when the plain fetch
	// yields too little text. Requires Chrome on the host.
	EnableBrowser  bool
	BrowserTimeout time.Duration
	Verbose        bool
}

// NewBoardScraper creates a scraper over the given fetcher.
func NewBoardScraper(fetcher PageFetcher, cfg BoardScraperConfig) *BoardScraper {
	if cfg.BrowserTimeout == 0 {
		cfg.BrowserTimeout = 30 * time.Second
	}
	return &BoardScraper{
		fetcher:        fetcher,
		browserEnabled: cfg.EnableBrowser,
		browserTimeout: cfg.BrowserTimeout,
		verbose:        cfg.Verbose,
	}
}

// Scrape fetches a posting page and extracts a corpus input from it.
func (s *BoardScraper) Scrape(ctx context.Context, postingURL string) (*db.JobCreateInput, error) {
	result, err := s.fetcher.Fetch(ctx, postingURL)
	if err != nil {
		return nil, err
	}

	board := fetch.DetectBoard(postingURL)
	html := result.HTML
	text := result.Text

	if fetch.NeedsBrowser(text) && s.browserEnabled {
		rendered, err := fetch.Render(ctx, postingURL, s.browserTimeout, s.verbose)
		if err != nil {
			if s.verbose {
				log.Printf("[SCRAPER] browser fallback failed for %s: %v", postingURL, err)
			}
		} else {
			html = rendered
			text, _ = fetch.ExtractText(html, fetch.BoardContentSelectors(board), fetch.BoardNoiseSelectors(board)...)
		}
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no posting text found at %s", postingURL)
	}

	title, company := postingHeading(html)
	if title == "" {
		title = "Unknown Position"
	}
	if company == "" {
		company = companyFromURL(postingURL)
	}

	description := text
	if len(description) > descriptionLimit {
		description = description[:descriptionLimit]
	}

	input := &db.JobCreateInput{
		JobTitle:         title,
		CompanyName:      company,
		ShortDescription: &description,
		ApplicationLink:  strPtr(postingURL),
		WorkArrangement:  strPtr(inferWorkArrangement(title, description)),
		EmploymentType:   strPtr(defaultEmploymentType),
		ExperienceLevel:  strPtr(inferExperienceLevel(title, description)),
		Source:           string(board),
		SourceJobID:      strPtr(postingURL),
	}
	return input, nil
}

// postingHeading pulls the job title and company name out of page metadata,
// falling back to the first h1.
func postingHeading(html string) (title, company string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", ""
	}

	if v, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		title = strings.TrimSpace(v)
	}
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	if v, ok := doc.Find(`meta[property="og:site_name"]`).Attr("content"); ok {
		company = strings.TrimSpace(v)
	}

	// Board titles often read "Role - Company" or "Role at Company"
	if company == "" {
		for _, sep := range []string{" at ", " - ", " | "} {
			if idx := strings.Index(title, sep); idx > 0 {
				company = strings.TrimSpace(title[idx+len(sep):])
				title = strings.TrimSpace(title[:idx])
				break
			}
		}
	}
	return title, company
}

// companyFromURL derives a company slug from board URL paths like
// boards.greenhouse.io/acme/jobs/123 or jobs.lever.co/acme/id.
func companyFromURL(postingURL string) string {
	parsed, err := url.Parse(postingURL)
	if err != nil {
		return "Unknown Company"
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "Unknown Company"
}
