package upstream

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks transport-level failures (DNS, refused connection,
// timeout). The gateway maps it to 503 on write paths and to a fallback
// payload on read paths.
var ErrUnavailable = errors.New("hr service unavailable")

// RejectedError is the upstream saying no: bad credentials, business-rule
// failures, revoked tokens. The message is safe to show the user.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("upstream rejected request (%d): %s", e.StatusCode, e.Message)
}

func AsRejected(err error) (*RejectedError, bool) {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected, true
	}

	return nil, false
}
