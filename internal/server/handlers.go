package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/workhive/workhive/internal/db"
	"github.com/workhive/workhive/internal/extraction"
	"github.com/workhive/workhive/internal/server/middleware"
)

// maxResumeUploadBytes caps the accepted PDF size.
const maxResumeUploadBytes = 10 << 20

// handleUploadResume accepts a PDF resume as multipart form data, extracts
// its text, and stores it as the user's active resume. Re-uploads replace the
// previous resume.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxResumeUploadBytes)
	if err := r.ParseMultipartForm(maxResumeUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing resume file")
		return
	}
	defer func() { _ = file.Close() }()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		writeError(w, http.StatusBadRequest, "Only PDF resumes are accepted")
		return
	}

	path, cleanup, err := extraction.SaveTemp(file, "resume-*.pdf")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read resume file")
		return
	}
	defer cleanup()

	text, err := extraction.File(path)
	if err != nil {
		log.Printf("[RESUME] extraction failed for user %s: %v", userID, err)
		writeError(w, HTTPStatus(err), "Could not extract text from the PDF")
		return
	}

	if err := s.resumes.SetResumeText(r.Context(), userID, text); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store resume")
		return
	}

	writeJSON(w, http.StatusOK, ResumeUploadResponse{
		Message:    "Resume uploaded successfully",
		Characters: len(text),
	})
}

// handleMatch runs the resume-to-job matching pipeline for the authenticated
// user and returns a ranked, paginated result set.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req MatchRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	if err := s.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	filters := db.JobFilters{
		Search:          req.Search,
		WorkArrangement: req.WorkArrangement,
		EmploymentType:  req.EmploymentType,
		ExperienceLevel: req.ExperienceLevel,
		Industry:        req.Industry,
		Location:        req.Location,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
	}

	resp, err := s.matcher.Match(r.Context(), userID, filters, req.Page, req.Limit)
	if err != nil {
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.Printf("[MATCH] pipeline failed for user %s: %v", userID, err)
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleListJobs returns a filtered, paginated page of the job corpus.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := db.JobFilters{
		Search:          q.Get("search"),
		WorkArrangement: q.Get("workArrangement"),
		EmploymentType:  q.Get("employmentType"),
		ExperienceLevel: q.Get("experienceLevel"),
		Industry:        q.Get("industry"),
		Location:        q.Get("location"),
		SalaryMin:       queryFloat(q.Get("salaryMin")),
		SalaryMax:       queryFloat(q.Get("salaryMax")),
	}
	page := db.JobPage{
		Page:  queryInt(q.Get("page"), 1),
		Limit: queryInt(q.Get("limit"), db.DefaultJobLimit),
		Sort:  q.Get("sort"),
		Order: q.Get("order"),
	}
	if page.Limit > db.MaxJobLimit {
		page.Limit = db.MaxJobLimit
	}

	jobs, total, err := s.jobs.ListJobs(r.Context(), filters, page)
	if err != nil {
		log.Printf("[JOBS] list failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}
	if jobs == nil {
		jobs = []db.Job{}
	}

	totalPages := (total + page.Limit - 1) / page.Limit
	writeJSON(w, http.StatusOK, JobListResponse{
		Jobs:       jobs,
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: totalPages,
	})
}

// handleCreateJob inserts a manually entered job posting.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMin > *req.SalaryMax {
		writeError(w, http.StatusBadRequest, "validation error: salaryMin - must not exceed salaryMax")
		return
	}

	job, err := s.jobs.CreateJob(r.Context(), &db.JobCreateInput{
		JobTitle:         req.JobTitle,
		CompanyName:      req.CompanyName,
		Location:         req.Location,
		WorkArrangement:  req.WorkArrangement,
		EmploymentType:   req.EmploymentType,
		ShortDescription: req.ShortDescription,
		ApplicationLink:  req.ApplicationLink,
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		Industry:         req.Industry,
		ExperienceLevel:  req.ExperienceLevel,
	})
	if err != nil {
		log.Printf("[JOBS] create failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create job")
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

// handleGetMe returns the authenticated user's account.
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.userService.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

func queryFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
