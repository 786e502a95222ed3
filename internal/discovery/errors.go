package discovery

import "errors"

// Engine errors. All are fatal for the request; the engine performs no
// retries and returns no partial results.
var (
	// ErrUserNotFound means the requester id has no profile.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserLocationMissing means the requester has not shared a location,
	// so no candidate search can be performed.
	ErrUserLocationMissing = errors.New("user location missing")

	// ErrCandidateLocationMissing means the repository returned a candidate
	// without a location. That breaks the repository contract and is a
	// defect, never silently skipped.
	ErrCandidateLocationMissing = errors.New("candidate location missing")

	// ErrSelfInteraction means a user tried to approve or reject themselves.
	ErrSelfInteraction = errors.New("cannot interact with yourself")
)
