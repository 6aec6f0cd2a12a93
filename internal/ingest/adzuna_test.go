package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adzunaFixture = `{
	"count": 2,
	"results": [
		{
			"id": "4321",
			"title": "Senior Go Developer (Remote)",
			"description": "Build backend services in Go. Fully remote.",
			"created": "2026-08-01T09:30:00Z",
			"redirect_url": "https://adzuna.example/job/4321",
			"salary_min": 70000,
			"salary_max": 90000,
			"contract_type": "permanent",
			"company": {"display_name": "Acme Ltd"},
			"location": {"display_name": "London, UK"},
			"category": {"label": "IT Jobs"}
		},
		{
			"id": "8765",
			"title": "Graduate Analyst",
			"description": "Entry level analyst role.",
			"created": "not-a-date",
			"contract_type": "internship",
			"company": {},
			"location": {},
			"category": {"label": "Accounting & Finance Jobs"}
		}
	]
}`

func newAdzunaTestClient(t *testing.T, handler http.HandlerFunc) *AdzunaClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewAdzunaClient(AdzunaConfig{
		AppID:     "test-id",
		AppKey:    "test-key",
		BaseURL:   server.URL,
		PageDelay: time.Millisecond,
	})
	require.NoError(t, err)
	return client
}

func TestAdzunaFetchPage(t *testing.T) {
	client := newAdzunaTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "test-id", q.Get("app_id"))
		assert.Equal(t, "test-key", q.Get("app_key"))
		assert.Equal(t, "go developer", q.Get("what"))
		assert.Equal(t, "london", q.Get("where"))
		assert.Equal(t, "20", q.Get("results_per_page"))
		_, _ = w.Write([]byte(adzunaFixture))
	})

	inputs, count, err := client.FetchPage(context.Background(),
		SearchQuery{What: "go developer", Where: "london"}, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, inputs, 2)

	first := inputs[0]
	assert.Equal(t, "Senior Go Developer (Remote)", first.JobTitle)
	assert.Equal(t, "Acme Ltd", first.CompanyName)
	assert.Equal(t, "London, UK", *first.Location)
	assert.Equal(t, "remote", *first.WorkArrangement)
	assert.Equal(t, "fullTime", *first.EmploymentType)
	assert.Equal(t, "senior", *first.ExperienceLevel)
	assert.Equal(t, "Technology", *first.Industry)
	assert.Equal(t, 70000.0, *first.SalaryMin)
	assert.Equal(t, 90000.0, *first.SalaryMax)
	assert.Equal(t, SourceAdzuna, first.Source)
	assert.Equal(t, "4321", *first.SourceJobID)
	require.NotNil(t, first.PostedDate)
	assert.Equal(t, 2026, first.PostedDate.Year())

	second := inputs[1]
	assert.Equal(t, "Unknown Company", second.CompanyName)
	assert.Nil(t, second.Location)
	assert.Nil(t, second.PostedDate, "unparseable dates are dropped")
	assert.Equal(t, "internship", *second.EmploymentType)
	assert.Equal(t, "entry", *second.ExperienceLevel)
	assert.Equal(t, "Finance", *second.Industry)
}

func TestAdzunaFetchPage_HTTPError(t *testing.T) {
	client := newAdzunaTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"exception":"AUTH_FAIL"}`))
	})

	_, _, err := client.FetchPage(context.Background(), SearchQuery{What: "go"}, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestAdzunaFetchPages_CollectsErrors(t *testing.T) {
	var calls int
	client := newAdzunaTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(adzunaFixture))
	})

	inputs, errs := client.FetchPages(context.Background(), SearchQuery{What: "go"}, 1, 3)
	assert.Len(t, inputs, 4, "pages 1 and 3 succeed")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "page 2")
}

func TestNewAdzunaClient_RequiresCredentials(t *testing.T) {
	_, err := NewAdzunaClient(AdzunaConfig{AppID: "id"})
	assert.Error(t, err)

	_, err = NewAdzunaClient(AdzunaConfig{AppKey: "key"})
	assert.Error(t, err)
}
