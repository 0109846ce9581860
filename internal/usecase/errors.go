package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// Ingestion failure classes. Transport and storage failures are
	// transient and safe to retry; schema and normalization failures are
	// deterministic and retrying cannot fix them.
	ErrTransport     = errors.New("upstream transport failure")
	ErrSchema        = errors.New("upstream schema mismatch")
	ErrNormalization = errors.New("payload normalization failure")
	ErrStorage       = errors.New("storage failure")
)

// IsRetryableIngestError reports whether a branch failure should be
// retried with backoff.
func IsRetryableIngestError(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrStorage)
}
