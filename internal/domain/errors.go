package domain

import "errors"

var (
	// ErrProductNotFound means the focal product id does not resolve in the
	// catalog. Surfaced as a client error, never retried.
	ErrProductNotFound = errors.New("product not found")

	// ErrBackendUnavailable means the generative backend is unreachable,
	// rate limited or misconfigured. One attempt per request, no retry.
	ErrBackendUnavailable = errors.New("generative backend unavailable")

	// ErrEmptyRecommendation means the backend payload parsed but contained
	// zero resolvable records. Kept distinct from format errors.
	ErrEmptyRecommendation = errors.New("no resolvable recommendations")

	// ErrMemoryWrite marks long-term persistence failures. Logged only,
	// never surfaced to the caller.
	ErrMemoryWrite = errors.New("memory write failed")
)

// FormatError means the backend responded but the payload was irreparable.
// Raw carries the original payload for diagnosis.
type FormatError struct {
	Msg string
	Raw string
}

func (e *FormatError) Error() string {
	return e.Msg
}

func IsFormatError(err error) bool {
	var target *FormatError
	return errors.As(err, &target)
}
