// Package activeset tracks the bounded set of campaigns that have not been
// finalized yet. It is a derived index and never the source of truth.
package activeset

import (
	"errors"
	"slices"

	"github.com/chris/campaign-escrow/pkg/models"
)

// ErrFull is returned by Insert when the set is at capacity.
var ErrFull = errors.New("active set is at capacity")

// Set is a bounded set of campaign ids kept in ascending order.
// It is not safe for concurrent use.
type Set struct {
	ids []models.CampaignID
	cap int
}

// New returns an empty set holding at most capacity ids.
func New(capacity int) *Set {
	return &Set{cap: capacity}
}

// FromIDs builds a set from persisted ids. Duplicates are collapsed.
// Capacity is not enforced here so that an over-full persisted set can still be loaded and drained.
func FromIDs(capacity int, ids []models.CampaignID) *Set {
	s := &Set{cap: capacity, ids: slices.Clone(ids)}
	slices.Sort(s.ids)
	s.ids = slices.Compact(s.ids)
	return s
}

// Insert adds id. Inserting an id already present is a no-op.
func (s *Set) Insert(id models.CampaignID) error {
	i, found := slices.BinarySearch(s.ids, id)
	if found {
		return nil
	}
	if len(s.ids) >= s.cap {
		return ErrFull
	}
	s.ids = slices.Insert(s.ids, i, id)
	return nil
}

// Remove deletes id and reports whether it was present.
func (s *Set) Remove(id models.CampaignID) bool {
	i, found := slices.BinarySearch(s.ids, id)
	if !found {
		return false
	}
	s.ids = slices.Delete(s.ids, i, i+1)
	return true
}

func (s *Set) Contains(id models.CampaignID) bool {
	_, found := slices.BinarySearch(s.ids, id)
	return found
}

// IDs returns a copy of the members in ascending order.
func (s *Set) IDs() []models.CampaignID {
	return slices.Clone(s.ids)
}

func (s *Set) Len() int { return len(s.ids) }

func (s *Set) Cap() int { return s.cap }

// Full reports whether another Insert of a new id would fail.
func (s *Set) Full() bool { return len(s.ids) >= s.cap }
