package analysis

import "errors"

// ErrServiceUnavailable indicates the remote analysis service could not be
// reached at all (transport failure, not a rejection).
var ErrServiceUnavailable = errors.New("analysis service unavailable")

// RemoteError carries the error message the remote service returned with a
// non-success status.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

// GenericFailure is the fallback shown when the remote rejects without a
// usable message.
const GenericFailure = "analysis failed"
