package skills

import (
	_ "embed"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/workhive/workhive/internal/textgen"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed skill_response.schema.json
var responseSchemaJSON string

var responseSchema = gojsonschema.NewStringLoader(responseSchemaJSON)

// embeddedObjectPattern locates a JSON object mentioning hardSkills inside an
// otherwise noisy response.
var embeddedObjectPattern = regexp.MustCompile(`\{[^{}]*"hardSkills"[^{}]*\}`)

// commaList accepts either a comma-separated string or a JSON string array.
// The service is asked for the former but does not always comply.
type commaList []string

func (c *commaList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = splitSkills(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*c = dedupeSkills(list)
	return nil
}

// responsePayload is the expected shape of the service's JSON answer.
type responsePayload struct {
	HardSkills commaList `json:"hardSkills"`
	SoftSkills commaList `json:"softSkills"`
}

// ParseResponse turns a raw service response into an Extraction via an
// explicit fallback chain: strict JSON parse, embedded-JSON extraction,
// keyword scan of the response, keyword scan of the resume text, empty.
// It never fails; garbage in yields an empty extraction, not an error.
func ParseResponse(raw, resumeText string) Extraction {
	cleaned := textgen.CleanJSONBlock(raw)

	if set, ok := parseShapedJSON(cleaned); ok {
		return Extraction{Skills: set, Source: SourceJSON}
	}

	if match := embeddedObjectPattern.FindString(cleaned); match != "" {
		if set, ok := parseShapedJSON(match); ok {
			return Extraction{Skills: set, Source: SourceJSON}
		}
	}

	if found := ScanKeywords(raw); len(found) > 0 {
		return Extraction{Skills: SkillSet{HardSkills: found}, Source: SourceKeywords}
	}
	if found := ScanKeywords(resumeText); len(found) > 0 {
		return Extraction{Skills: SkillSet{HardSkills: found}, Source: SourceKeywords}
	}

	return Extraction{Source: SourceEmpty}
}

// parseShapedJSON validates doc against the response schema and unmarshals it.
func parseShapedJSON(doc string) (SkillSet, bool) {
	if !strings.HasPrefix(strings.TrimSpace(doc), "{") {
		return SkillSet{}, false
	}

	result, err := gojsonschema.Validate(responseSchema, gojsonschema.NewStringLoader(doc))
	if err != nil || !result.Valid() {
		return SkillSet{}, false
	}

	var payload responsePayload
	if err := json.Unmarshal([]byte(doc), &payload); err != nil {
		return SkillSet{}, false
	}

	return SkillSet{
		HardSkills: payload.HardSkills,
		SoftSkills: payload.SoftSkills,
	}, true
}

// splitSkills splits a comma-separated skill string into trimmed, de-duplicated
// entries. Empty entries are dropped.
func splitSkills(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return dedupeSkills(strings.Split(s, ","))
}

// dedupeSkills trims entries and removes case-insensitive duplicates,
// keeping the first spelling seen.
func dedupeSkills(entries []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, entry := range entries {
		skill := strings.TrimSpace(entry)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, skill)
	}
	return out
}
