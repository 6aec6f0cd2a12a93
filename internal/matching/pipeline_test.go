package matching

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhive/workhive/internal/db"
	"github.com/workhive/workhive/internal/skills"
)

type fakeCorpus struct {
	jobs []db.Job
	err  error
}

func (f *fakeCorpus) ListJobs(_ context.Context, _ db.JobFilters, _ db.JobPage) ([]db.Job, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.jobs, len(f.jobs), nil
}

type fakeResumes struct {
	text string
	err  error
}

func (f *fakeResumes) GetResumeText(_ context.Context, _ uuid.UUID) (string, error) {
	return f.text, f.err
}

type fakeExtractor struct {
	extraction skills.Extraction
	err        error
}

func (f *fakeExtractor) Extract(_ context.Context, _ string) (skills.Extraction, error) {
	return f.extraction, f.err
}

func corpusJob(title, description string) db.Job {
	return db.Job{
		ID:               uuid.New(),
		JobTitle:         title,
		CompanyName:      "Acme",
		ShortDescription: strPtr(description),
	}
}

func newTestPipeline(corpus CorpusReader, resumes ResumeStore, extractor SkillExtractor) *Pipeline {
	return NewPipeline(corpus, resumes, extractor, Config{Threshold: 10, PageSize: 12, Workers: 4})
}

func extractorWith(hardSkills ...string) *fakeExtractor {
	return &fakeExtractor{extraction: skills.Extraction{
		Skills: skills.SkillSet{HardSkills: hardSkills},
		Source: skills.SourceJSON,
	}}
}

func TestMatch_RanksAndFilters(t *testing.T) {
	// One matching job, one excluded
	corpus := &fakeCorpus{jobs: []db.Job{
		corpusJob("Developer", "Looking for a React developer"),
		corpusJob("Developer", "Experience with JavaScript and Vue"),
	}}
	p := newTestPipeline(corpus, &fakeResumes{text: "resume"}, extractorWith("React", "Node.js"))

	resp, err := p.Match(context.Background(), uuid.New(), db.JobFilters{}, 1, 12)
	require.NoError(t, err)

	require.Len(t, resp.FilteredJobs, 1)
	assert.Equal(t, 50.0, resp.FilteredJobs[0].MatchScore)
	assert.Equal(t, []string{"React"}, resp.FilteredJobs[0].MatchedSkills)
	assert.Equal(t, 2, resp.TotalJobsProcessed)
	assert.Equal(t, 1, resp.MatchedJobsCount)
	assert.Equal(t, []string{"React", "Node.js"}, resp.ResumeSkills)
}

func TestMatch_SortInvariant(t *testing.T) {
	corpus := &fakeCorpus{jobs: []db.Job{
		corpusJob("A", "We use SQL here"),                          // fuzzy-ish: direct match on sql
		corpusJob("B", "React and SQL and TypeScript all day"),     // all three
		corpusJob("C", "React experience appreciated, SQL needed"), // two of three
	}}
	p := newTestPipeline(corpus, &fakeResumes{text: "resume"}, extractorWith("React", "SQL", "TypeScript"))

	resp, err := p.Match(context.Background(), uuid.New(), db.JobFilters{}, 1, 12)
	require.NoError(t, err)

	require.NotEmpty(t, resp.FilteredJobs)
	for i := 1; i < len(resp.FilteredJobs); i++ {
		assert.GreaterOrEqual(t,
			resp.FilteredJobs[i-1].MatchScore,
			resp.FilteredJobs[i].MatchScore,
			"scores must be non-increasing within a page")
	}
	assert.Equal(t, "B", resp.FilteredJobs[0].Job.JobTitle)
}

func TestMatch_ThresholdExcludes(t *testing.T) {
	// With ten skills, a single direct hit scores exactly 10, which the
	// strict threshold must exclude
	manySkills := []string{"React", "Vue", "Angular", "Svelte", "SQL", "Redis", "Docker", "Kubernetes", "Terraform", "Python"}
	corpus := &fakeCorpus{jobs: []db.Job{
		corpusJob("Developer", "Wanted: reactive thinker"), // "react" inside "reactive"
	}}
	p := newTestPipeline(corpus, &fakeResumes{text: "resume"}, extractorWith(manySkills...))

	resp, err := p.Match(context.Background(), uuid.New(), db.JobFilters{}, 1, 12)
	require.NoError(t, err)

	assert.Empty(t, resp.FilteredJobs)
	assert.Equal(t, 0, resp.MatchedJobsCount)

	for _, mj := range resp.FilteredJobs {
		assert.Greater(t, mj.MatchScore, 10.0)
	}
}

func TestMatch_ZeroThresholdAdmitsPositiveScores(t *testing.T) {
	// The same single-hit job excluded at threshold 10 is included at
	// threshold 0
	manySkills := []string{"React", "Vue", "Angular", "Svelte", "SQL", "Redis", "Docker", "Kubernetes", "Terraform", "Python"}
	corpus := &fakeCorpus{jobs: []db.Job{
		corpusJob("Developer", "Wanted: reactive thinker"),
	}}
	p := NewPipeline(corpus, &fakeResumes{text: "resume"}, extractorWith(manySkills...),
		Config{Threshold: 0, PageSize: 12, Workers: 4})

	resp, err := p.Match(context.Background(), uuid.New(), db.JobFilters{}, 1, 12)
	require.NoError(t, err)

	require.Len(t, resp.FilteredJobs, 1)
	assert.Equal(t, 10.0, resp.FilteredJobs[0].MatchScore)
}

func TestMatch_TieBreakPreservesCorpusOrder(t *testing.T) {
	// Four jobs with identical scores must come back in corpus order
	var jobs []db.Job
	for i := 0; i < 4; i++ {
		jobs = append(jobs, corpusJob(fmt.Sprintf("job-%d", i), "React position"))
	}
	corpus := &fakeCorpus{jobs: jobs}
	p := newTestPipeline(corpus, &fakeResumes{text: "resume"}, extractorWith("React"))

	resp, err := p.Match(context.Background(), uuid.New(), db.JobFilters{}, 1, 12)
	require.NoError(t, err)

	require.Len(t, resp.FilteredJobs, 4)
	for i := 0; i < 4; i++ {
		assert.Equal(t, fmt.Sprintf("job-%d", i), resp.FilteredJobs[i].Job.JobTitle)
	}
}

func TestMatch_PaginationInvariants(t *testing.T) {
	// 25 matching jobs, page size 10: pages must partition the ranked set
	var jobs []db.Job
	for i := 0; i < 25; i++ {
		jobs = append(jobs, corpusJob(fmt.Sprintf("job-%d", i), "React position"))
	}
	corpus := &fakeCorpus{jobs: jobs}
	p := newTestPipeline(corpus, &fakeResumes{text: "resume"}, extractorWith("React"))

	seen := make(map[uuid.UUID]bool)
	var pages int
	for page := 1; ; page++ {
		resp, err := p.Match(context.Background(), uuid.New(), db.JobFilters{}, page, 10)
		require.NoError(t, err)

		assert.Equal(t, 3, resp.TotalPages)
		assert.Equal(t, 25, resp.MatchedJobsCount)
		assert.Equal(t, page > 1, resp.HasPrevPage)

		for _, mj := range resp.FilteredJobs {
			assert.False(t, seen[mj.Job.ID], "job must not appear on two pages")
			seen[mj.Job.ID] = true
		}

		pages++
		if !resp.HasNextPage {
			break
		}
	}

	assert.Equal(t, 3, pages)
	assert.Len(t, seen, 25, "union of all pages must equal the full ranked set")
}

func TestMatch_PageBeyondEnd(t *testing.T) {
	corpus := &fakeCorpus{jobs: []db.Job{corpusJob("Developer", "React position")}}
	p := newTestPipeline(corpus, &fakeResumes{text: "resume"}, extractorWith("React"))

	resp, err := p.Match(context.Background(), uuid.New(), db.JobFilters{}, 7, 10)
	require.NoError(t, err)

	assert.Empty(t, resp.FilteredJobs)
	assert.Equal(t, 7, resp.CurrentPage)
	assert.Equal(t, 1, resp.TotalPages)
	assert.False(t, resp.HasNextPage)
	assert.True(t, resp.HasPrevPage)
}

func TestMatch_EmptySkillsShortCircuit(t *testing.T) {
	corpus := &fakeCorpus{jobs: []db.Job{corpusJob("Developer", "React position")}}
	extractor := &fakeExtractor{extraction: skills.Extraction{Source: skills.SourceEmpty}}
	p := newTestPipeline(corpus, &fakeResumes{text: "resume"}, extractor)

	resp, err := p.Match(context.Background(), uuid.New(), db.JobFilters{}, 1, 12)
	require.NoError(t, err)

	assert.Empty(t, resp.FilteredJobs)
	assert.Equal(t, 0, resp.MatchedJobsCount)
	assert.Equal(t, MsgNoSkillsFound, resp.Message)
	assert.NotNil(t, resp.ResumeSkills)
}

func TestMatch_ResumeNotFound(t *testing.T) {
	corpus := &fakeCorpus{jobs: []db.Job{corpusJob("Developer", "React position")}}
	p := newTestPipeline(corpus, &fakeResumes{text: ""}, extractorWith("React"))

	_, err := p.Match(context.Background(), uuid.New(), db.JobFilters{}, 1, 12)
	require.Error(t, err)

	var notFound *ResumeNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestMatch_CorpusReadFailure(t *testing.T) {
	corpus := &fakeCorpus{err: errors.New("connection reset")}
	p := newTestPipeline(corpus, &fakeResumes{text: "resume"}, extractorWith("React"))

	_, err := p.Match(context.Background(), uuid.New(), db.JobFilters{}, 1, 12)
	require.Error(t, err)

	var corpusErr *CorpusReadError
	require.ErrorAs(t, err, &corpusErr)
	assert.ErrorContains(t, corpusErr.Cause, "connection reset")
}

func TestMatch_DegradedWhenServiceUnavailable(t *testing.T) {
	corpus := &fakeCorpus{jobs: []db.Job{corpusJob("Developer", "React position")}}
	extractor := &fakeExtractor{err: &skills.ServiceUnavailableError{Attempts: 3, Cause: errors.New("down")}}
	p := newTestPipeline(corpus, &fakeResumes{text: "resume"}, extractor)

	resp, err := p.Match(context.Background(), uuid.New(), db.JobFilters{}, 1, 12)
	require.NoError(t, err, "service outage must degrade, not fail")

	assert.Empty(t, resp.FilteredJobs)
	assert.Equal(t, MsgDegraded, resp.Message)
}

func TestMatch_OtherExtractionErrorsPropagate(t *testing.T) {
	corpus := &fakeCorpus{jobs: []db.Job{corpusJob("Developer", "React position")}}
	extractor := &fakeExtractor{err: context.Canceled}
	p := newTestPipeline(corpus, &fakeResumes{text: "resume"}, extractor)

	_, err := p.Match(context.Background(), uuid.New(), db.JobFilters{}, 1, 12)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatch_Idempotent(t *testing.T) {
	corpus := &fakeCorpus{jobs: []db.Job{
		corpusJob("A", "React and SQL"),
		corpusJob("B", "React only here"),
		corpusJob("C", "SQL databases"),
	}}
	p := newTestPipeline(corpus, &fakeResumes{text: "resume"}, extractorWith("React", "SQL"))

	first, err := p.Match(context.Background(), uuid.New(), db.JobFilters{}, 1, 12)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		resp, err := p.Match(context.Background(), uuid.New(), db.JobFilters{}, 1, 12)
		require.NoError(t, err)
		require.Len(t, resp.FilteredJobs, len(first.FilteredJobs))
		for j := range resp.FilteredJobs {
			assert.Equal(t, first.FilteredJobs[j].Job.ID, resp.FilteredJobs[j].Job.ID)
			assert.Equal(t, first.FilteredJobs[j].MatchScore, resp.FilteredJobs[j].MatchScore)
		}
	}
}
