package skills

import (
	"regexp"
	"strings"
)

// keywordEntry pairs a display name with the lowercase token it matches.
type keywordEntry struct {
	name  string
	token string
}

// keywordDictionary is the fixed set of well-known technologies recognized by
// the degraded fallback. Order determines output order. Tokens are matched on
// word boundaries, so "java" does not fire inside "javascript".
var keywordDictionary = []keywordEntry{
	{"JavaScript", "javascript"},
	{"TypeScript", "typescript"},
	{"React", "react"},
	{"Angular", "angular"},
	{"Vue", "vue"},
	{"Node.js", "node.js"},
	{"Node.js", "nodejs"},
	{"Express", "express"},
	{"Next.js", "next.js"},
	{"Python", "python"},
	{"Django", "django"},
	{"Flask", "flask"},
	{"Java", "java"},
	{"Spring", "spring"},
	{"Kotlin", "kotlin"},
	{"Swift", "swift"},
	{"C++", "c++"},
	{"C#", "c#"},
	{".NET", ".net"},
	{"Go", "golang"},
	{"Go", "go"},
	{"Rust", "rust"},
	{"PHP", "php"},
	{"Laravel", "laravel"},
	{"Ruby", "ruby"},
	{"Rails", "rails"},
	{"Scala", "scala"},
	{"SQL", "sql"},
	{"MySQL", "mysql"},
	{"PostgreSQL", "postgresql"},
	{"MongoDB", "mongodb"},
	{"Redis", "redis"},
	{"Elasticsearch", "elasticsearch"},
	{"GraphQL", "graphql"},
	{"REST", "rest"},
	{"gRPC", "grpc"},
	{"Docker", "docker"},
	{"Kubernetes", "kubernetes"},
	{"Terraform", "terraform"},
	{"AWS", "aws"},
	{"Azure", "azure"},
	{"GCP", "gcp"},
	{"Git", "git"},
	{"Linux", "linux"},
	{"HTML", "html"},
	{"CSS", "css"},
	{"Sass", "sass"},
	{"Tailwind", "tailwind"},
	{"Figma", "figma"},
	{"Excel", "excel"},
	{"Tableau", "tableau"},
	{"Power BI", "power bi"},
}

// tokenPatterns holds one compiled boundary pattern per dictionary token.
// "+", "#", and "." stay part of a token so "c++", "c#", and "node.js" match
// whole, but a dot that ends the token ("I know Python.") is a boundary.
var tokenPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(keywordDictionary))
	for i, entry := range keywordDictionary {
		patterns[i] = regexp.MustCompile(`(^|[^a-z0-9+#.])` + regexp.QuoteMeta(entry.token) + `($|[^a-z0-9+#.]|\.([^a-z0-9]|$))`)
	}
	return patterns
}()

// ScanKeywords returns the dictionary skills present in text, in dictionary
// order, de-duplicated. Matching is case-insensitive on token boundaries.
func ScanKeywords(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	lower := strings.ToLower(text)

	var found []string
	seen := make(map[string]bool)
	for i, entry := range keywordDictionary {
		if seen[entry.name] {
			continue
		}
		if tokenPatterns[i].MatchString(lower) {
			seen[entry.name] = true
			found = append(found, entry.name)
		}
	}
	return found
}
