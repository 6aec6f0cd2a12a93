package extraction

import (
	"fmt"
	"io"
	"os"
)

// SaveTemp streams an upload to a temporary file and returns its path together
// with a cleanup function. The cleanup must run on every exit path so uploaded
// resumes never linger on disk, whether extraction succeeds or fails.
func SaveTemp(r io.Reader, pattern string) (string, func(), error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	cleanup := func() { _ = os.Remove(f.Name()) }

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	return f.Name(), cleanup, nil
}
