package generator

import "errors"

// ErrGenerationFailed is returned when the retry cap is exceeded. It is
// deliberately rare and usually indicates a catalog misconfiguration,
// such as required rooms too large for the hull. Callers must treat it
// as fatal for this attempt; presenting a broken layout is not an option.
var ErrGenerationFailed = errors.New("vessel generation failed")

// Retryable internal failures. These never cross the package boundary;
// the retry loop in Generate absorbs them with a derived seed.
var (
	errPlacementExhausted = errors.New("room placement exhausted")
	errConnectivity       = errors.New("connectivity check failed")
)

// maxAttempts caps the retry-with-derived-seed loop.
const maxAttempts = 8
