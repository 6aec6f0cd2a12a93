// Package ingest pulls job postings from external sources (the Adzuna API and
// hosted job boards) and writes them into the corpus.
package ingest

import "strings"

// Default values applied when a source gives no signal.
const (
	defaultWorkArrangement = "onSite"
	defaultEmploymentType  = "fullTime"
	defaultExperience      = "entry"
	defaultIndustry        = "Technology"
)

// employmentTypes maps source contract-type labels onto corpus values.
var employmentTypes = map[string]string{
	"permanent":  "fullTime",
	"full_time":  "fullTime",
	"contract":   "contract",
	"part-time":  "partTime",
	"parttime":   "partTime",
	"part_time":  "partTime",
	"internship": "internship",
	"freelance":  "selfEmployed",
}

// experienceKeywords is checked in order; the first keyword found in the
// posting text wins. Seniority markers come first so a "senior" title is not
// misread by a later keyword in the description.
var experienceKeywords = []struct {
	keyword string
	level   string
}{
	{"senior", "senior"},
	{"lead", "senior"},
	{"principal", "senior"},
	{"junior", "entry"},
	{"graduate", "entry"},
	{"entry", "entry"},
	{"intermediate", "mid"},
	{"mid", "mid"},
}

// industryKeywords maps source category labels onto corpus industries.
var industryKeywords = []struct {
	keyword  string
	industry string
}{
	{"finance", "Finance"},
	{"banking", "Finance"},
	{"health", "Healthcare"},
	{"medical", "Healthcare"},
	{"education", "Education"},
	{"retail", "Retail"},
	{"sales", "Retail"},
	{"marketing", "Marketing"},
	{"advertising", "Marketing"},
}

// inferWorkArrangement reads remote/hybrid signals out of the posting text.
// Sources rarely state the arrangement as structured data.
func inferWorkArrangement(title, description string) string {
	text := strings.ToLower(title + " " + description)
	switch {
	case strings.Contains(text, "remote"):
		return "remote"
	case strings.Contains(text, "hybrid"):
		return "hybrid"
	}
	return defaultWorkArrangement
}

// mapEmploymentType converts a source contract-type label. Unknown or empty
// labels default to full time.
func mapEmploymentType(contractType string) string {
	if mapped, ok := employmentTypes[strings.ToLower(contractType)]; ok {
		return mapped
	}
	return defaultEmploymentType
}

// inferExperienceLevel guesses seniority from the posting text.
func inferExperienceLevel(title, description string) string {
	text := strings.ToLower(title + " " + description)
	for _, e := range experienceKeywords {
		if strings.Contains(text, e.keyword) {
			return e.level
		}
	}
	return defaultExperience
}

// inferIndustry maps a source category label onto a corpus industry.
func inferIndustry(categoryLabel string) string {
	label := strings.ToLower(categoryLabel)
	for _, e := range industryKeywords {
		if strings.Contains(label, e.keyword) {
			return e.industry
		}
	}
	return defaultIndustry
}

func strPtr(s string) *string { return &s }
