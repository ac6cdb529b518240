package upstream

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable covers transport failures, timeouts and non-2xx poll responses.
	// The cycle can be retried on the next schedule.
	ErrUnavailable = errors.New("upstream unavailable")
	// ErrMalformed means the poll body could not be read as a batch of envelopes.
	ErrMalformed = errors.New("upstream response malformed")
	// ErrAckFailed means one receipt token was not acknowledged.
	ErrAckFailed = errors.New("acknowledge failed")
	// ErrConfig means the client is missing required settings.
	ErrConfig = errors.New("upstream config invalid")
)

func errMissing(key string) error {
	return fmt.Errorf("%w: %s is required", ErrConfig, key)
}
