package fetch

import (
	"net/url"
	"strings"
)

// Board identifies a known applicant-tracking platform hosting a posting.
type Board string

const (
	// BoardGreenhouse covers greenhouse.io hosted boards.
	BoardGreenhouse Board = "greenhouse"
	// BoardLever covers lever.co hosted boards.
	BoardLever Board = "lever"
	// BoardWorkable covers workable.com hosted boards.
	BoardWorkable Board = "workable"
	// BoardUnknown is any host not recognized above.
	BoardUnknown Board = "unknown"
)

// DetectBoard identifies the hosting platform from a posting URL.
func DetectBoard(pageURL string) Board {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return BoardUnknown
	}
	host := strings.ToLower(parsed.Host)

	switch {
	case strings.Contains(host, "greenhouse.io"):
		return BoardGreenhouse
	case strings.Contains(host, "lever.co"):
		return BoardLever
	case strings.Contains(host, "workable.com"):
		return BoardWorkable
	}
	return BoardUnknown
}

// BoardContentSelectors returns content selectors tuned to a platform's
// markup, falling back to the generic posting selectors.
func BoardContentSelectors(board Board) []string {
	switch board {
	case BoardGreenhouse:
		return []string{
			".job__description.body",
			".job__description",
			"#content",
			".job-post-container",
		}
	case BoardLever:
		return []string{
			".posting-page",
			".posting-description",
			".section-wrapper.page-full-width",
			".content",
		}
	case BoardWorkable:
		return []string{
			"[data-ui='job-description']",
			".job-description",
			"main",
		}
	default:
		return PostingSelectors()
	}
}

// BoardNoiseSelectors returns elements to strip before text extraction.
// Application forms and legal boilerplate dominate posting pages and would
// otherwise pollute the matched text.
func BoardNoiseSelectors(board Board) []string {
	common := []string{
		"form",
		"#application-form",
		".application-form",
		".apply-button-container",
		".voluntary-disclosure",
		".eeo-statement",
		".legal-disclosure",
		".social-share",
		".share-buttons",
		".cookie-consent",
		".gdpr-notice",
	}

	switch board {
	case BoardGreenhouse:
		return append(common,
			".application--wrapper",
			".voluntary-self-id",
			"#usa_self_id_section",
		)
	case BoardLever:
		return append(common,
			".apply-section",
			".posting-apply",
			".lever-application-form",
		)
	case BoardWorkable:
		return append(common,
			"[data-ui='apply-button']",
			".application-section",
		)
	default:
		return common
	}
}
