package matching

import (
	"fmt"

	"github.com/google/uuid"
)

// ResumeNotFoundError means the user has not uploaded a resume yet.
// A client problem, not a system fault.
type ResumeNotFoundError struct {
	UserID uuid.UUID
}

func (e *ResumeNotFoundError) Error() string {
	return fmt.Sprintf("no resume stored for user %s", e.UserID)
}

// CorpusReadError means the job corpus could not be read. A server fault;
// not retried at this layer.
type CorpusReadError struct {
	Cause error
}

func (e *CorpusReadError) Error() string {
	return fmt.Sprintf("failed to read job corpus: %v", e.Cause)
}

func (e *CorpusReadError) Unwrap() error {
	return e.Cause
}
