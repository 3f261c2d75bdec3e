// Package roster holds the in-memory data view shared by the student and
// lecturer screens: the fetched collection with derived aggregate counts, the
// operator-controlled view query, and the pure projection that turns both
// into the visible row set.
package roster

import "github.com/unihub/admin-console/internal/models"

// MissingStatusPolicy resolves records whose status field is absent. The
// student screen treats them as inactive, the lecturer screen as active; the
// asymmetry is inherited from the product and intentionally kept visible at
// the call site rather than unified here.
type MissingStatusPolicy int

const (
	MissingInactive MissingStatusPolicy = iota
	MissingActive
)

// Aggregates are the summary-card tallies derived from the roster.
// Total == Active + Inactive holds for every input, including empty ones.
type Aggregates struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// Normalize derives IsActive for every record from its raw status and the
// screen's missing-status policy, returning a fresh slice.
func Normalize(records []models.UserRecord, policy MissingStatusPolicy) []models.UserRecord {
	out := make([]models.UserRecord, len(records))
	for i, rec := range records {
		active, present := models.ActiveStatus(rec.StatusRaw)
		if !present {
			active = policy == MissingActive
		}
		rec.IsActive = active
		out[i] = rec
	}
	return out
}

// Store owns one screen's fetched collection. The collection is only ever
// replaced wholesale; aggregates are recomputed on every replacement and are
// not independently settable.
type Store struct {
	policy     MissingStatusPolicy
	records    []models.UserRecord
	aggregates Aggregates
}

// NewStore builds an empty store with the given missing-status policy.
func NewStore(policy MissingStatusPolicy) *Store {
	return &Store{policy: policy}
}

// Replace swaps in a freshly fetched collection. A nil slice (the gateway's
// rendering of a malformed payload) resets the store to empty.
func (s *Store) Replace(records []models.UserRecord) {
	s.records = Normalize(records, s.policy)

	agg := Aggregates{Total: len(s.records)}
	for _, rec := range s.records {
		if rec.IsActive {
			agg.Active++
		}
	}
	agg.Inactive = agg.Total - agg.Active
	s.aggregates = agg
}

// Records returns a copy of the backing collection, preserving fetch order.
func (s *Store) Records() []models.UserRecord {
	out := make([]models.UserRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Aggregates returns the current summary tallies.
func (s *Store) Aggregates() Aggregates {
	return s.aggregates
}

// Len reports the size of the backing collection.
func (s *Store) Len() int {
	return len(s.records)
}
