package amadeus

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// AuthError is returned when the client-credentials exchange is rejected.
// Without a token no search can run, so callers treat this as fatal.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("amadeus auth failed: status %d: %s", e.Status, e.Body)
}

// APIError is returned for any non-success API response other than the
// single retried 401.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("amadeus api error: status %d: %s", e.Status, e.Body)
}

// IsTimeout reports whether err was caused by an exhausted deadline on an
// outbound call. Timed-out calls are never retried by this package.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
