// Package matching scores job postings against a candidate's skills and
// orchestrates the resume-to-job matching pipeline.
package matching

import (
	"strings"
	"unicode"

	"github.com/workhive/workhive/internal/db"
)

// Scoring weights. A direct substring hit counts double a fuzzy sub-word hit,
// and the final score is normalized against every skill direct-matching.
const (
	directMatchWeight = 2
	fuzzyMatchWeight  = 1
	// minFuzzyTokenLength excludes short sub-words ("of", "js") from fuzzy
	// matching; they hit almost any text.
	minFuzzyTokenLength = 3
)

// normalizeText lowercases s and strips punctuation, keeping letters, digits,
// and whitespace. Both job text and skills pass through here before comparison.
func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ScoreJob computes the relevance of one job posting for the given hard
// skills. Returns a score in [0,100] and the skills that contributed.
// Deterministic and side-effect free; safe to call concurrently.
func ScoreJob(job *db.Job, hardSkills []string) (float64, []string) {
	if len(hardSkills) == 0 {
		return 0, nil
	}

	jobText := normalizeText(job.JobTitle + " " + job.DescriptionText() + " " + job.CompanyName)
	jobWords := strings.Fields(jobText)

	totalWeight := 0
	var matched []string
	for _, skill := range hardSkills {
		normSkill := normalizeText(skill)
		if normSkill == "" {
			continue
		}

		if strings.Contains(jobText, normSkill) {
			totalWeight += directMatchWeight
			matched = append(matched, skill)
			continue
		}

		if fuzzyMatches(jobWords, normSkill) {
			totalWeight += fuzzyMatchWeight
			matched = append(matched, skill)
		}
	}

	maxWeight := float64(len(hardSkills) * directMatchWeight)
	score := float64(totalWeight) / maxWeight * 100
	if score > 100 {
		score = 100
	}
	return score, matched
}

// fuzzyMatches reports whether any sub-word of the skill appears inside any
// word of the job text. Only sub-words of minFuzzyTokenLength or more count.
func fuzzyMatches(jobWords []string, normSkill string) bool {
	for _, part := range strings.Fields(normSkill) {
		if len(part) < minFuzzyTokenLength {
			continue
		}
		for _, word := range jobWords {
			if strings.Contains(word, part) {
				return true
			}
		}
	}
	return false
}
