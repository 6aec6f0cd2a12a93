package skills

import (
	"context"
	"fmt"
	"time"

	"github.com/workhive/workhive/internal/textgen"
)

// defaultBackoffBase is the first retry delay; it doubles per attempt.
const defaultBackoffBase = 500 * time.Millisecond

// ServiceUnavailableError means the text-generation service stayed unreachable
// across all retry attempts. Callers should degrade to an empty skill set
// rather than failing the whole request.
type ServiceUnavailableError struct {
	Attempts int
	Cause    error
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("skill extraction service unavailable after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *ServiceUnavailableError) Unwrap() error {
	return e.Cause
}

// ExtractorConfig tunes the retry policy around the service call.
type ExtractorConfig struct {
	Attempts    int           // total attempts, minimum 1
	Timeout     time.Duration // per-attempt bound
	BackoffBase time.Duration // first retry delay, doubles per attempt
}

// Extractor calls the text-generation service and parses its response.
// Only transport failures are retried; a garbage response is absorbed by the
// parse fallback chain and is not a failure.
type Extractor struct {
	client textgen.Client
	cfg    ExtractorConfig
}

// NewExtractor creates an Extractor over the given client.
func NewExtractor(client textgen.Client, cfg ExtractorConfig) *Extractor {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = textgen.DefaultTimeout
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = defaultBackoffBase
	}
	return &Extractor{client: client, cfg: cfg}
}

// Extract obtains the candidate's skills for the given resume text.
// An empty extraction is a valid result; an error means the service itself
// was unreachable after retries, or the context was cancelled.
func (e *Extractor) Extract(ctx context.Context, resumeText string) (Extraction, error) {
	prompt := BuildPrompt(resumeText)

	var lastErr error
	for attempt := 0; attempt < e.cfg.Attempts; attempt++ {
		if attempt > 0 {
			delay := e.cfg.BackoffBase << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return Extraction{}, ctx.Err()
			}
		}

		raw, err := e.generate(ctx, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return Extraction{}, ctx.Err()
			}
			lastErr = err
			continue
		}

		return ParseResponse(raw, resumeText), nil
	}

	return Extraction{}, &ServiceUnavailableError{Attempts: e.cfg.Attempts, Cause: lastErr}
}

// generate runs one attempt under the per-attempt timeout.
func (e *Extractor) generate(ctx context.Context, prompt string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()
	return e.client.Generate(attemptCtx, prompt)
}
