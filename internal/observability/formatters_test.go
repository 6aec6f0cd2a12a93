package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/workhive/workhive/internal/db"
	"github.com/workhive/workhive/internal/ingest"
	"github.com/workhive/workhive/internal/matching"
	"github.com/workhive/workhive/internal/skills"
)

func TestPrintSkills(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSkills(&skills.Extraction{
		Skills: skills.SkillSet{
			HardSkills: []string{"Go", "PostgreSQL", "Docker", "Kubernetes", "Redis", "Kafka"},
			SoftSkills: []string{"Communication"},
		},
		Source: skills.SourceJSON,
	})
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED SKILLS")
	assert.Contains(t, output, "Go")
	assert.Contains(t, output, "Communication")
	assert.Contains(t, output, "and 1 more")
}

func TestPrintSkills_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSkills(&skills.Extraction{Source: skills.SourceEmpty})
	assert.Contains(t, buf.String(), "No skills extracted")

	buf.Reset()
	p.PrintSkills(nil)
	assert.Empty(t, buf.String())
}

func TestPrintMatches(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatches(&matching.Response{
		FilteredJobs: []matching.MatchedJob{
			{
				Job:           db.Job{JobTitle: "Go Developer", CompanyName: "Acme"},
				MatchScore:    75.0,
				MatchedSkills: []string{"Go", "SQL"},
			},
		},
		TotalJobsProcessed: 40,
		MatchedJobsCount:   1,
		CurrentPage:        1,
		TotalPages:         1,
	})
	output := buf.String()

	assert.Contains(t, output, "MATCH RESULTS")
	assert.Contains(t, output, "Go Developer at Acme")
	assert.Contains(t, output, "75.0")
	assert.Contains(t, output, "via Go, SQL")
}

func TestPrintMatches_NoResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatches(&matching.Response{Message: matching.MsgNoSkillsFound})
	output := buf.String()

	assert.Contains(t, output, "No matches on this page")
	assert.Contains(t, output, "No skills could be extracted")
}

func TestPrintIngestSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintIngestSummary(ingest.Summary{
		Written: 18,
		Failed:  2,
		Errors:  []string{"A at Acme: duplicate", "B at Hooli: timeout"},
	})
	output := buf.String()

	assert.Contains(t, output, "INGEST SUMMARY")
	assert.Contains(t, output, "Written:  18")
	assert.Contains(t, output, "Failed:   2")
	assert.Contains(t, output, "duplicate")
}
