package server

import "github.com/workhive/workhive/internal/db"

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest is the payload for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse returns the authenticated user and their session token.
type AuthResponse struct {
	User  *db.User `json:"user"`
	Token string   `json:"token"`
}

// CreateJobRequest is the payload for manually adding a job posting.
type CreateJobRequest struct {
	JobTitle         string   `json:"jobTitle" validate:"required,min=1,max=300"`
	CompanyName      string   `json:"companyName" validate:"required,min=1,max=300"`
	Location         *string  `json:"location,omitempty"`
	WorkArrangement  *string  `json:"workArrangement,omitempty" validate:"omitempty,oneof=onSite hybrid remote flexTime"`
	EmploymentType   *string  `json:"employmentType,omitempty" validate:"omitempty,oneof=partTime fullTime contract selfEmployed internship"`
	ShortDescription *string  `json:"shortDescription,omitempty"`
	ApplicationLink  *string  `json:"applicationLink,omitempty" validate:"omitempty,url"`
	SalaryMin        *float64 `json:"salaryMin,omitempty" validate:"omitempty,gte=0"`
	SalaryMax        *float64 `json:"salaryMax,omitempty" validate:"omitempty,gte=0"`
	Industry         *string  `json:"industry,omitempty"`
	ExperienceLevel  *string  `json:"experienceLevel,omitempty" validate:"omitempty,oneof=entry mid senior"`
}

// MatchRequest narrows the corpus before matching and selects the result
// page. All fields are optional.
type MatchRequest struct {
	Search          string   `json:"search"`
	WorkArrangement string   `json:"workArrangement" validate:"omitempty,oneof=onSite hybrid remote flexTime"`
	EmploymentType  string   `json:"employmentType" validate:"omitempty,oneof=partTime fullTime contract selfEmployed internship"`
	ExperienceLevel string   `json:"experienceLevel" validate:"omitempty,oneof=entry mid senior"`
	Industry        string   `json:"industry"`
	Location        string   `json:"location"`
	SalaryMin       *float64 `json:"salaryMin" validate:"omitempty,gte=0"`
	SalaryMax       *float64 `json:"salaryMax" validate:"omitempty,gte=0"`
	Page            int      `json:"page" validate:"omitempty,gte=1"`
	Limit           int      `json:"limit" validate:"omitempty,gte=1,lte=100"`
}

// JobListResponse is a paginated page of the corpus.
type JobListResponse struct {
	Jobs       []db.Job `json:"jobs"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	TotalPages int      `json:"totalPages"`
}

// ResumeUploadResponse acknowledges a processed resume upload.
type ResumeUploadResponse struct {
	Message    string `json:"message"`
	Characters int    `json:"characters"`
}
