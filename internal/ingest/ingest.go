package ingest

import (
	"context"
	"fmt"
	"log"

	"github.com/workhive/workhive/internal/db"
)

// JobWriter is the persistence surface ingestion writes through.
// *db.DB satisfies it.
type JobWriter interface {
	UpsertJob(ctx context.Context, input *db.JobCreateInput) (*db.Job, error)
}

// Summary reports the outcome of an ingestion run.
type Summary struct {
	Written int
	Failed  int
	Errors  []string
}

// Ingestor writes normalized postings into the corpus.
type Ingestor struct {
	jobs    JobWriter
	verbose bool
}

// NewIngestor creates an Ingestor.
func NewIngestor(jobs JobWriter, verbose bool) *Ingestor {
	return &Ingestor{jobs: jobs, verbose: verbose}
}

// Run upserts every input, collecting per-row failures instead of stopping.
// Re-running the same pull refreshes rows rather than duplicating them.
func (in *Ingestor) Run(ctx context.Context, inputs []db.JobCreateInput) Summary {
	var summary Summary
	for i := range inputs {
		if ctx.Err() != nil {
			summary.Failed += len(inputs) - i
			summary.Errors = append(summary.Errors, ctx.Err().Error())
			break
		}

		job, err := in.jobs.UpsertJob(ctx, &inputs[i])
		if err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("%s at %s: %v", inputs[i].JobTitle, inputs[i].CompanyName, err))
			continue
		}
		summary.Written++
		if in.verbose {
			log.Printf("[INGEST] wrote %s at %s (%s)", job.JobTitle, job.CompanyName, job.Source)
		}
	}
	return summary
}
