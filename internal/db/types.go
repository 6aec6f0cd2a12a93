package db

import (
	"time"

	"github.com/google/uuid"
)

// WorkArrangement values accepted for job postings
const (
	WorkOnSite   = "onSite"
	WorkHybrid   = "hybrid"
	WorkRemote   = "remote"
	WorkFlexTime = "flexTime"
)

// EmploymentType values accepted for job postings
const (
	EmploymentPartTime     = "partTime"
	EmploymentFullTime     = "fullTime"
	EmploymentContract     = "contract"
	EmploymentSelfEmployed = "selfEmployed"
	EmploymentInternship   = "internship"
)

// User represents a registered account. ResumeText holds the plain text of the
// most recently uploaded resume; empty means no resume has been uploaded.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	ResumeText   string    `json:"-"` // large, never serialized
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Job represents one scraped or manually created job posting.
// JobTitle and CompanyName are always present; everything else is optional.
type Job struct {
	ID               uuid.UUID  `json:"id"`
	JobTitle         string     `json:"jobTitle"`
	CompanyName      string     `json:"companyName"`
	Location         *string    `json:"location,omitempty"`
	WorkArrangement  *string    `json:"workArrangement,omitempty"`
	EmploymentType   *string    `json:"employmentType,omitempty"`
	PostedDate       *time.Time `json:"postedDate,omitempty"`
	ShortDescription *string    `json:"shortDescription,omitempty"`
	ApplicationLink  *string    `json:"applicationLink,omitempty"`
	SalaryMin        *float64   `json:"salaryMin,omitempty"`
	SalaryMax        *float64   `json:"salaryMax,omitempty"`
	Industry         *string    `json:"industry,omitempty"`
	ExperienceLevel  *string    `json:"experienceLevel,omitempty"`
	Source           string     `json:"source"`
	SourceJobID      *string    `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// DescriptionText returns the posting's description or "" when absent.
func (j *Job) DescriptionText() string {
	if j.ShortDescription == nil {
		return ""
	}
	return *j.ShortDescription
}

// JobCreateInput carries the fields for inserting a job posting.
type JobCreateInput struct {
	JobTitle         string
	CompanyName      string
	Location         *string
	WorkArrangement  *string
	EmploymentType   *string
	PostedDate       *time.Time
	ShortDescription *string
	ApplicationLink  *string
	SalaryMin        *float64
	SalaryMax        *float64
	Industry         *string
	ExperienceLevel  *string
	Source           string
	SourceJobID      *string
}

// JobFilters narrows the job corpus. Zero values mean "no constraint".
// Search matches case-insensitively against job title, company name, and
// short description. Salary bounds are inclusive and tolerate postings with
// only one end of the range populated.
type JobFilters struct {
	Search          string
	WorkArrangement string
	EmploymentType  string
	ExperienceLevel string
	Industry        string
	Location        string
	SalaryMin       *float64
	SalaryMax       *float64
}

// JobPage controls pagination and ordering of a corpus read.
type JobPage struct {
	Page  int
	Limit int
	Sort  string // column key, see sortColumns
	Order string // "asc" or "desc"
}
