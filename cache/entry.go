package cache

import "time"

// Status describes what a cache slot can offer right now.
type Status int

const (
	// StatusMissing means no data has ever been stored for the key.
	StatusMissing Status = iota

	// StatusLoading means a fetch is in flight. A previous value may still
	// be present and displayable.
	StatusLoading

	// StatusFresh means the value is within its TTL.
	StatusFresh

	// StatusStale means the value is past its TTL but still usable while a
	// refresh runs.
	StatusStale

	// StatusFailed means the last fetch errored. A previous value, if any,
	// is retained.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusMissing:
		return "missing"
	case StatusLoading:
		return "loading"
	case StatusFresh:
		return "fresh"
	case StatusStale:
		return "stale"
	default:
		return "failed"
	}
}

// Entry is a point-in-time snapshot of one cache slot. Value is the last
// successfully fetched data and survives later failures, so the UI can keep
// rendering it while showing the error.
type Entry[V any] struct {
	Value     V
	HasValue  bool
	Status    Status
	Err       error
	FetchedAt time.Time
}
