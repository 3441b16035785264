package metrics

import "sync/atomic"

// ResolveMetrics counts how the members of collections were resolved.
type ResolveMetrics struct {
	ListingHits   atomic.Int32
	FetchedMisses atomic.Int32
	FailedMisses  atomic.Int32
	ListingErrors atomic.Int32
}

type ResolveSnapshot struct {
	ListingHits   int32 `json:"listing_hits"`
	FetchedMisses int32 `json:"fetched_misses"`
	FailedMisses  int32 `json:"failed_misses"`
	ListingErrors int32 `json:"listing_errors"`
}

func (m *ResolveMetrics) Snapshot() ResolveSnapshot {
	return ResolveSnapshot{
		ListingHits:   m.ListingHits.Load(),
		FetchedMisses: m.FetchedMisses.Load(),
		FailedMisses:  m.FailedMisses.Load(),
		ListingErrors: m.ListingErrors.Load(),
	}
}
