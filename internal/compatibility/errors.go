package compatibility

import "errors"

var (
	// ErrInvalidQuery is returned before any resolver runs when the vehicle
	// query is incomplete or out of range.
	ErrInvalidQuery = errors.New("invalid vehicle query")
	// ErrStoreUnavailable means the brand/model lookup itself failed.
	ErrStoreUnavailable = errors.New("reference store unavailable")
	// ErrResolverFailure wraps a category resolver error, panic or timeout.
	// It never reaches callers of the aggregator.
	ErrResolverFailure = errors.New("category resolver failed")
)
