package service

import (
	"slices"
	"sync"

	"github.com/comicverse/hub/internal/catalog"
	"github.com/comicverse/hub/internal/query"
	"github.com/comicverse/hub/pkg/debounce"
)

// BrowseSession tracks one shopper's browse page. Criteria changes, as typed
// into the search box, are debounced; sort changes reorder the current
// results at once.
type BrowseSession struct {
	catalog   *catalog.Catalog
	debouncer *debounce.Debouncer

	mu          sync.Mutex
	applied     query.Criteria
	pending     query.Criteria
	sort        query.SortKey
	result      BrowseResult
	nextSubID   int
	subscribers map[int]func(BrowseResult)
}

// NewBrowseSession starts a session showing the whole catalog in the default
// order.
func NewBrowseSession(cat *catalog.Catalog, debouncer *debounce.Debouncer) *BrowseSession {
	s := &BrowseSession{
		catalog:     cat,
		debouncer:   debouncer,
		sort:        query.DefaultSort,
		subscribers: make(map[int]func(BrowseResult)),
	}
	s.result = browse(cat, query.Criteria{}, s.sort)
	return s
}

// Subscribe registers fn to receive every new result. The returned function
// removes the subscription.
func (s *BrowseSession) Subscribe(fn func(BrowseResult)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// SetCriteria records new criteria and filters once input has been quiet for
// the debounce window.
func (s *BrowseSession) SetCriteria(c query.Criteria) {
	s.mu.Lock()
	s.pending = c
	s.mu.Unlock()

	s.debouncer.Trigger(s.applyPending)
}

// SetSort reorders the current results immediately. Criteria still waiting
// on the debounce window are not applied.
func (s *BrowseSession) SetSort(key query.SortKey) {
	s.mu.Lock()
	s.sort = key
	res := s.result
	res.Sort = key
	res.Comics = query.Sort(res.Comics, key)
	s.result = res
	subs := s.subscriberList()
	s.mu.Unlock()

	publish(subs, res)
}

// Flush applies pending criteria now. It reports whether any were pending.
func (s *BrowseSession) Flush() bool {
	return s.debouncer.Flush()
}

// Reset clears all criteria and restores the default order.
func (s *BrowseSession) Reset() {
	s.debouncer.Cancel()

	s.mu.Lock()
	s.pending = query.Criteria{}
	s.sort = query.DefaultSort
	s.mu.Unlock()

	s.applyPending()
}

// Result returns the current listing.
func (s *BrowseSession) Result() BrowseResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.result
	res.Comics = slices.Clone(res.Comics)
	return res
}

// Criteria returns the criteria behind the current listing.
func (s *BrowseSession) Criteria() query.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied
}

func (s *BrowseSession) applyPending() {
	s.mu.Lock()
	s.applied = s.pending
	s.result = browse(s.catalog, s.applied, s.sort)
	res := s.result
	subs := s.subscriberList()
	s.mu.Unlock()

	publish(subs, res)
}

// subscriberList snapshots the subscribers in registration order. s.mu must
// be held.
func (s *BrowseSession) subscriberList() []func(BrowseResult) {
	ids := make([]int, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]func(BrowseResult), len(ids))
	for i, id := range ids {
		out[i] = s.subscribers[id]
	}
	return out
}

func publish(subs []func(BrowseResult), res BrowseResult) {
	for _, fn := range subs {
		r := res
		r.Comics = slices.Clone(res.Comics)
		fn(r)
	}
}

