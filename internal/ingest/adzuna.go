package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/workhive/workhive/internal/db"
)

// Adzuna API defaults. The free tier allows a handful of requests per minute,
// so multi-page pulls pause between pages.
const (
	DefaultAdzunaBaseURL  = "https://api.adzuna.com/v1/api/jobs/gb/search"
	DefaultAdzunaPageSize = 20
	DefaultAdzunaDelay    = time.Second
	defaultAdzunaTimeout  = 30 * time.Second
)

// SourceAdzuna tags corpus rows ingested from the Adzuna API.
const SourceAdzuna = "adzuna"

// AdzunaClient queries the Adzuna job search API.
type AdzunaClient struct {
	appID      string
	appKey     string
	baseURL    string
	pageDelay  time.Duration
	httpClient *http.Client
}

// AdzunaConfig configures the client. AppID and AppKey are required.
type AdzunaConfig struct {
	AppID     string
	AppKey    string
	BaseURL   string
	PageDelay time.Duration
	Timeout   time.Duration
}

// NewAdzunaClient creates a client for the Adzuna search API.
func NewAdzunaClient(cfg AdzunaConfig) (*AdzunaClient, error) {
	if cfg.AppID == "" || cfg.AppKey == "" {
		return nil, fmt.Errorf("adzuna credentials are required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultAdzunaBaseURL
	}
	if cfg.PageDelay == 0 {
		cfg.PageDelay = DefaultAdzunaDelay
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultAdzunaTimeout
	}
	return &AdzunaClient{
		appID:      cfg.AppID,
		appKey:     cfg.AppKey,
		baseURL:    cfg.BaseURL,
		pageDelay:  cfg.PageDelay,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// SearchQuery describes one Adzuna search.
type SearchQuery struct {
	What           string
	Where          string
	ResultsPerPage int
}

// adzunaJob mirrors the fields of an Adzuna search result this client reads.
type adzunaJob struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Created      string   `json:"created"`
	RedirectURL  string   `json:"redirect_url"`
	SalaryMin    *float64 `json:"salary_min"`
	SalaryMax    *float64 `json:"salary_max"`
	ContractType string   `json:"contract_type"`
	Company      struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	Category struct {
		Label string `json:"label"`
	} `json:"category"`
}

type adzunaSearchResponse struct {
	Count   int         `json:"count"`
	Results []adzunaJob `json:"results"`
}

// FetchPage retrieves one page of search results, normalized into corpus
// inputs. Also returns the total result count Adzuna reports for the query.
func (c *AdzunaClient) FetchPage(ctx context.Context, query SearchQuery, page int) ([]db.JobCreateInput, int, error) {
	if page < 1 {
		page = 1
	}
	perPage := query.ResultsPerPage
	if perPage <= 0 {
		perPage = DefaultAdzunaPageSize
	}

	params := url.Values{}
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)
	params.Set("what", query.What)
	params.Set("where", query.Where)
	params.Set("results_per_page", strconv.Itoa(perPage))

	reqURL := fmt.Sprintf("%s/%d?%s", c.baseURL, page, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build adzuna request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("adzuna request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, 0, fmt.Errorf("adzuna returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed adzunaSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, 0, fmt.Errorf("failed to decode adzuna response: %w", err)
	}

	inputs := make([]db.JobCreateInput, 0, len(parsed.Results))
	for i := range parsed.Results {
		inputs = append(inputs, normalizeAdzunaJob(&parsed.Results[i]))
	}
	return inputs, parsed.Count, nil
}

// FetchPages pulls pages first through last, pausing between requests.
// Per-page failures are collected rather than aborting the whole pull.
func (c *AdzunaClient) FetchPages(ctx context.Context, query SearchQuery, first, last int) ([]db.JobCreateInput, []error) {
	var all []db.JobCreateInput
	var errs []error

	for page := first; page <= last; page++ {
		inputs, _, err := c.FetchPage(ctx, query, page)
		if err != nil {
			errs = append(errs, fmt.Errorf("page %d: %w", page, err))
		} else {
			all = append(all, inputs...)
		}

		if page < last {
			select {
			case <-time.After(c.pageDelay):
			case <-ctx.Done():
				errs = append(errs, ctx.Err())
				return all, errs
			}
		}
	}
	return all, errs
}

// normalizeAdzunaJob converts one API result into a corpus input.
func normalizeAdzunaJob(j *adzunaJob) db.JobCreateInput {
	title := j.Title
	if title == "" {
		title = "Unknown Position"
	}
	company := j.Company.DisplayName
	if company == "" {
		company = "Unknown Company"
	}

	input := db.JobCreateInput{
		JobTitle:        title,
		CompanyName:     company,
		WorkArrangement: strPtr(inferWorkArrangement(j.Title, j.Description)),
		EmploymentType:  strPtr(mapEmploymentType(j.ContractType)),
		ExperienceLevel: strPtr(inferExperienceLevel(j.Title, j.Description)),
		Industry:        strPtr(inferIndustry(j.Category.Label)),
		Source:          SourceAdzuna,
	}
	if j.ID != "" {
		input.SourceJobID = strPtr(j.ID)
	}
	if j.Location.DisplayName != "" {
		input.Location = strPtr(j.Location.DisplayName)
	}
	if j.Description != "" {
		input.ShortDescription = strPtr(j.Description)
	}
	if j.RedirectURL != "" {
		input.ApplicationLink = strPtr(j.RedirectURL)
	}
	input.SalaryMin = j.SalaryMin
	input.SalaryMax = j.SalaryMax

	if j.Created != "" {
		if posted, err := time.Parse(time.RFC3339, j.Created); err == nil {
			input.PostedDate = &posted
		}
	}
	return input
}
