package db

import (
	"context"
	"fmt"
	"strings"
)

// Corpus paging defaults and caps. The matching pipeline passes CorpusFetchLimit
// to rank the whole filtered set before paginating results.
const (
	DefaultJobLimit  = 10
	MaxJobLimit      = 100
	CorpusFetchLimit = 1000
)

// sortColumns whitelists the sortable columns, keyed by the API-facing name.
var sortColumns = map[string]string{
	"postedDate":  "posted_date",
	"createdAt":   "created_at",
	"jobTitle":    "job_title",
	"companyName": "company_name",
	"salaryMin":   "salary_min",
}

// buildJobWhere constructs the WHERE clause and arguments for a filtered
// corpus read. Returns "" when no filters apply.
func buildJobWhere(f JobFilters) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		conditions = append(conditions, fmt.Sprintf(
			"(job_title ILIKE %[1]s OR company_name ILIKE %[1]s OR short_description ILIKE %[1]s)", p))
	}
	if f.WorkArrangement != "" {
		conditions = append(conditions, fmt.Sprintf("work_arrangement = %s", arg(f.WorkArrangement)))
	}
	if f.EmploymentType != "" {
		conditions = append(conditions, fmt.Sprintf("employment_type = %s", arg(f.EmploymentType)))
	}
	if f.ExperienceLevel != "" {
		conditions = append(conditions, fmt.Sprintf("experience_level = %s", arg(f.ExperienceLevel)))
	}
	if f.Industry != "" {
		conditions = append(conditions, fmt.Sprintf("industry = %s", arg(f.Industry)))
	}
	if f.Location != "" {
		conditions = append(conditions, fmt.Sprintf("location ILIKE %s", arg("%"+f.Location+"%")))
	}
	if f.SalaryMin != nil {
		// A posting qualifies if either end of its range reaches the bound,
		// so postings with only one bound populated are not dropped.
		p := arg(*f.SalaryMin)
		conditions = append(conditions, fmt.Sprintf("(salary_min >= %[1]s OR salary_max >= %[1]s)", p))
	}
	if f.SalaryMax != nil {
		p := arg(*f.SalaryMax)
		conditions = append(conditions, fmt.Sprintf("(salary_min <= %[1]s OR (salary_min IS NULL AND salary_max <= %[1]s))", p))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// orderClause maps a JobPage onto a safe ORDER BY clause.
// Unknown sort keys fall back to posted_date descending.
func orderClause(p JobPage) string {
	col, ok := sortColumns[p.Sort]
	if !ok {
		col = "posted_date"
	}
	dir := "DESC"
	if strings.EqualFold(p.Order, "asc") {
		dir = "ASC"
	}
	// NULLS LAST keeps postings without a posted_date from floating to the top
	return fmt.Sprintf("ORDER BY %s %s NULLS LAST, id", col, dir)
}

// ListJobs returns the job postings matching the filters, plus the total
// count before pagination.
func (db *DB) ListJobs(ctx context.Context, filters JobFilters, page JobPage) ([]Job, int, error) {
	whereClause, args := buildJobWhere(filters)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM jobs %s", whereClause)
	var total int
	if err := db.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	limit := page.Limit
	if limit <= 0 {
		limit = DefaultJobLimit
	}
	if limit > CorpusFetchLimit {
		limit = CorpusFetchLimit
	}
	pageNum := page.Page
	if pageNum < 1 {
		pageNum = 1
	}
	offset := (pageNum - 1) * limit

	args = append(args, limit, offset)
	query := fmt.Sprintf(
		`SELECT id, job_title, company_name, location, work_arrangement, employment_type,
		        posted_date, short_description, application_link, salary_min, salary_max,
		        industry, experience_level, source, source_job_id, created_at, updated_at
		 FROM jobs %s
		 %s
		 LIMIT $%d OFFSET $%d`,
		whereClause, orderClause(page), len(args)-1, len(args),
	)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		err := rows.Scan(
			&j.ID, &j.JobTitle, &j.CompanyName, &j.Location, &j.WorkArrangement,
			&j.EmploymentType, &j.PostedDate, &j.ShortDescription, &j.ApplicationLink,
			&j.SalaryMin, &j.SalaryMax, &j.Industry, &j.ExperienceLevel,
			&j.Source, &j.SourceJobID, &j.CreatedAt, &j.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read jobs: %w", err)
	}

	return jobs, total, nil
}

// CreateJob inserts a manually created job posting and returns it
func (db *DB) CreateJob(ctx context.Context, input *JobCreateInput) (*Job, error) {
	source := input.Source
	if source == "" {
		source = "manual"
	}

	var j Job
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (job_title, company_name, location, work_arrangement, employment_type,
		                   posted_date, short_description, application_link, salary_min, salary_max,
		                   industry, experience_level, source, source_job_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING id, job_title, company_name, location, work_arrangement, employment_type,
		           posted_date, short_description, application_link, salary_min, salary_max,
		           industry, experience_level, source, source_job_id, created_at, updated_at`,
		input.JobTitle, input.CompanyName, input.Location, input.WorkArrangement,
		input.EmploymentType, input.PostedDate, input.ShortDescription, input.ApplicationLink,
		input.SalaryMin, input.SalaryMax, input.Industry, input.ExperienceLevel,
		source, input.SourceJobID,
	).Scan(
		&j.ID, &j.JobTitle, &j.CompanyName, &j.Location, &j.WorkArrangement,
		&j.EmploymentType, &j.PostedDate, &j.ShortDescription, &j.ApplicationLink,
		&j.SalaryMin, &j.SalaryMax, &j.Industry, &j.ExperienceLevel,
		&j.Source, &j.SourceJobID, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return &j, nil
}

// UpsertJob inserts a scraped job posting, updating the existing row when the
// same (source, source_job_id) pair has been seen before. Used by ingestion so
// re-running a scrape refreshes postings instead of duplicating them.
func (db *DB) UpsertJob(ctx context.Context, input *JobCreateInput) (*Job, error) {
	if input.SourceJobID == nil {
		return db.CreateJob(ctx, input)
	}

	var j Job
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (job_title, company_name, location, work_arrangement, employment_type,
		                   posted_date, short_description, application_link, salary_min, salary_max,
		                   industry, experience_level, source, source_job_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 ON CONFLICT (source, source_job_id) DO UPDATE SET
		   job_title = EXCLUDED.job_title,
		   company_name = EXCLUDED.company_name,
		   location = EXCLUDED.location,
		   work_arrangement = EXCLUDED.work_arrangement,
		   employment_type = EXCLUDED.employment_type,
		   posted_date = EXCLUDED.posted_date,
		   short_description = EXCLUDED.short_description,
		   application_link = EXCLUDED.application_link,
		   salary_min = EXCLUDED.salary_min,
		   salary_max = EXCLUDED.salary_max,
		   industry = EXCLUDED.industry,
		   experience_level = EXCLUDED.experience_level,
		   updated_at = NOW()
		 RETURNING id, job_title, company_name, location, work_arrangement, employment_type,
		           posted_date, short_description, application_link, salary_min, salary_max,
		           industry, experience_level, source, source_job_id, created_at, updated_at`,
		input.JobTitle, input.CompanyName, input.Location, input.WorkArrangement,
		input.EmploymentType, input.PostedDate, input.ShortDescription, input.ApplicationLink,
		input.SalaryMin, input.SalaryMax, input.Industry, input.ExperienceLevel,
		input.Source, input.SourceJobID,
	).Scan(
		&j.ID, &j.JobTitle, &j.CompanyName, &j.Location, &j.WorkArrangement,
		&j.EmploymentType, &j.PostedDate, &j.ShortDescription, &j.ApplicationLink,
		&j.SalaryMin, &j.SalaryMax, &j.Industry, &j.ExperienceLevel,
		&j.Source, &j.SourceJobID, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert job: %w", err)
	}
	return &j, nil
}
