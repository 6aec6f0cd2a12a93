// Package skills extracts a candidate's skills from resume text by way of an
// external text-generation service, with deterministic fallbacks for the
// service's unstructured responses.
package skills

// SkillSet holds the skills extracted from a resume. HardSkills drive job
// matching; SoftSkills are a fallback signal only.
type SkillSet struct {
	HardSkills []string `json:"hardSkills"`
	SoftSkills []string `json:"softSkills"`
}

// Empty reports whether no hard skills were found.
func (s SkillSet) Empty() bool {
	return len(s.HardSkills) == 0
}

// Source records which stage of the parse chain produced a result.
type Source string

// Parse chain stages, from most to least structured.
const (
	// SourceJSON means the service answered with parseable JSON of the
	// expected shape (directly or embedded in surrounding noise).
	SourceJSON Source = "json"
	// SourceKeywords means the JSON stages failed and skills were recovered
	// by dictionary scan of the response or the resume text itself.
	SourceKeywords Source = "keywords"
	// SourceEmpty means nothing was recoverable. This is a valid outcome,
	// not an error.
	SourceEmpty Source = "empty"
)

// Extraction is the tagged result of parsing a service response.
type Extraction struct {
	Skills SkillSet
	Source Source
}
