package matching

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/workhive/workhive/internal/db"
	"github.com/workhive/workhive/internal/skills"
)

// User-facing messages for the degraded and empty-skill outcomes. Both are
// successful responses, not errors.
const (
	MsgNoSkillsFound = "No skills could be extracted from your resume. Upload a more detailed resume or browse jobs manually."
	MsgDegraded      = "Skill extraction is temporarily unavailable, so no matches could be computed. Please try again shortly."
)

// CorpusReader reads the filtered job corpus.
type CorpusReader interface {
	ListJobs(ctx context.Context, filters db.JobFilters, page db.JobPage) ([]db.Job, int, error)
}

// ResumeStore loads a user's stored resume text.
type ResumeStore interface {
	GetResumeText(ctx context.Context, userID uuid.UUID) (string, error)
}

// SkillExtractor obtains the candidate's skills from resume text.
type SkillExtractor interface {
	Extract(ctx context.Context, resumeText string) (skills.Extraction, error)
}

// Config tunes the pipeline.
type Config struct {
	// Threshold is the minimum score (exclusive) for a job to appear in
	// results.
	Threshold float64
	// PageSize is the default result page size.
	PageSize int
	// Workers bounds the parallel scoring stage.
	Workers int
}

// MatchedJob wraps a posting with its relevance score and the skills that
// produced it.
type MatchedJob struct {
	Job           db.Job   `json:"job"`
	MatchScore    float64  `json:"matchScore"`
	MatchedSkills []string `json:"matchedSkills"`
}

// Response is the ranked, paginated result of a matching request.
type Response struct {
	FilteredJobs       []MatchedJob `json:"filteredJobs"`
	ResumeSkills       []string     `json:"resumeSkills"`
	TotalJobsProcessed int          `json:"totalJobsProcessed"`
	MatchedJobsCount   int          `json:"matchedJobsCount"`
	CurrentPage        int          `json:"currentPage"`
	TotalPages         int          `json:"totalPages"`
	HasNextPage        bool         `json:"hasNextPage"`
	HasPrevPage        bool         `json:"hasPrevPage"`
	Message            string       `json:"message,omitempty"`
}

// Pipeline composes corpus access, resume storage, and skill extraction into
// the matching operation.
type Pipeline struct {
	corpus    CorpusReader
	resumes   ResumeStore
	extractor SkillExtractor
	cfg       Config
}

// NewPipeline creates a Pipeline. A zero PageSize or Workers gets a default;
// Threshold is used as given, so a zero threshold admits every job with a
// positive score.
func NewPipeline(corpus CorpusReader, resumes ResumeStore, extractor SkillExtractor, cfg Config) *Pipeline {
	if cfg.PageSize < 1 {
		cfg.PageSize = 12
	}
	if cfg.Workers < 1 {
		cfg.Workers = 8
	}
	return &Pipeline{corpus: corpus, resumes: resumes, extractor: extractor, cfg: cfg}
}

// Match ranks the filtered job corpus against the user's resume skills.
//
// The corpus fetch and the resume-load-plus-skill-extraction run concurrently;
// they are independent. Scoring then fans out over the corpus, results below
// or at the threshold are dropped, and the remainder is sorted by score
// descending before the page window is applied. Ties keep corpus order.
func (p *Pipeline) Match(ctx context.Context, userID uuid.UUID, filters db.JobFilters, page, pageSize int) (*Response, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = p.cfg.PageSize
	}

	var (
		jobs      []db.Job
		hardSkill []string
		degraded  bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Fetch the whole filtered corpus; ranking must be global before
		// result pagination.
		corpus, _, err := p.corpus.ListJobs(gctx, filters, db.JobPage{Page: 1, Limit: db.CorpusFetchLimit})
		if err != nil {
			return &CorpusReadError{Cause: err}
		}
		jobs = corpus
		return nil
	})
	g.Go(func() error {
		text, err := p.resumes.GetResumeText(gctx, userID)
		if err != nil {
			return err
		}
		if text == "" {
			return &ResumeNotFoundError{UserID: userID}
		}

		extraction, err := p.extractor.Extract(gctx, text)
		if err != nil {
			var unavailable *skills.ServiceUnavailableError
			if errors.As(err, &unavailable) {
				// Degrade to an empty skill set instead of failing the request
				degraded = true
				return nil
			}
			return err
		}
		hardSkill = extraction.Skills.HardSkills
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &Response{
		FilteredJobs:       []MatchedJob{},
		ResumeSkills:       hardSkill,
		TotalJobsProcessed: len(jobs),
		CurrentPage:        page,
	}
	if resp.ResumeSkills == nil {
		resp.ResumeSkills = []string{}
	}

	if degraded {
		resp.Message = MsgDegraded
		return resp, nil
	}
	if len(hardSkill) == 0 {
		resp.Message = MsgNoSkillsFound
		return resp, nil
	}

	ranked := p.scoreAll(ctx, jobs, hardSkill)
	resp.MatchedJobsCount = len(ranked)
	resp.TotalPages = (len(ranked) + pageSize - 1) / pageSize
	resp.HasPrevPage = page > 1
	resp.HasNextPage = page < resp.TotalPages

	start := (page - 1) * pageSize
	if start < len(ranked) {
		end := start + pageSize
		if end > len(ranked) {
			end = len(ranked)
		}
		resp.FilteredJobs = ranked[start:end]
	}

	return resp, nil
}

// scoreAll scores every job concurrently, drops those at or below the
// threshold, and returns the rest sorted by score descending. The sort is
// stable, so equal scores preserve corpus order.
func (p *Pipeline) scoreAll(ctx context.Context, jobs []db.Job, hardSkills []string) []MatchedJob {
	type scored struct {
		score   float64
		matched []string
	}
	results := make([]scored, len(jobs))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)
	for i := range jobs {
		g.Go(func() error {
			score, matched := ScoreJob(&jobs[i], hardSkills)
			results[i] = scored{score: score, matched: matched}
			return nil
		})
	}
	_ = g.Wait() // scoring never fails

	ranked := make([]MatchedJob, 0, len(jobs))
	for i, r := range results {
		if r.score <= p.cfg.Threshold {
			continue
		}
		ranked = append(ranked, MatchedJob{
			Job:           jobs[i],
			MatchScore:    r.score,
			MatchedSkills: r.matched,
		})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].MatchScore > ranked[b].MatchScore
	})
	return ranked
}
