// Package extraction converts uploaded PDF resumes into plain text.
package extraction

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Error represents a failure to extract text from a resume file.
// Malformed input is never retried; callers surface this as a client error.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resume extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("resume extraction failed: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Text extracts plain text from PDF bytes. Pages are emitted in order and
// joined with a newline; layout and formatting metadata are discarded.
// A PDF with no extractable text is an error, not an empty result.
func Text(data []byte) (text string, err error) {
	// The pdf package panics on some malformed streams
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &Error{Message: fmt.Sprintf("malformed PDF: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &Error{Message: "could not open PDF", Cause: err}
	}

	numPages := reader.NumPage()
	if numPages == 0 {
		return "", &Error{Message: "PDF has no pages"}
	}

	var pages []string
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", &Error{Message: fmt.Sprintf("could not read page %d", i), Cause: err}
		}
		pages = append(pages, strings.TrimSpace(content))
	}

	text = strings.TrimSpace(strings.Join(pages, "\n"))
	if text == "" {
		return "", &Error{Message: "no extractable text"}
	}
	return text, nil
}

// File extracts plain text from a PDF on disk.
func File(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{Message: "could not read file", Cause: err}
	}
	return Text(data)
}
