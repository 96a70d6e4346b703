package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comicverse/hub/internal/query"
	"github.com/comicverse/hub/pkg/debounce"
)

func newTestBrowseSession(t *testing.T) (*BrowseSession, *debounce.ManualScheduler, *[]BrowseResult) {
	t.Helper()
	sched := debounce.NewManualScheduler()
	s := NewBrowseSession(fixtureCatalog(t), debounce.New(300*time.Millisecond, sched))

	var got []BrowseResult
	s.Subscribe(func(r BrowseResult) { got = append(got, r) })
	return s, sched, &got
}

func TestBrowseSession_InitialResult(t *testing.T) {
	s, _, _ := newTestBrowseSession(t)

	res := s.Result()
	assert.Equal(t, 12, res.Total)
	assert.Equal(t, query.DefaultSort, res.Sort)
	assert.Equal(t, "Showing all 12 comics", res.Message)
	assert.Equal(t, "002", res.Comics[0].ID)
}

func TestBrowseSession_CriteriaAreDebounced(t *testing.T) {
	s, sched, got := newTestBrowseSession(t)

	s.SetCriteria(query.Criteria{Search: "b"})
	s.SetCriteria(query.Criteria{Search: "ba"})
	s.SetCriteria(query.Criteria{Search: "bat"})

	sched.Advance(299 * time.Millisecond)
	assert.Empty(t, *got)
	assert.Equal(t, 12, s.Result().Total)

	sched.Advance(time.Millisecond)
	require.Len(t, *got, 1)
	assert.Equal(t, []string{"002"}, comicIDs((*got)[0].Comics))
	assert.Equal(t, "Showing 1 of 12 comics", (*got)[0].Message)
	assert.Equal(t, query.Criteria{Search: "bat"}, s.Criteria())
}

func TestBrowseSession_NewTriggerRestartsWindow(t *testing.T) {
	s, sched, got := newTestBrowseSession(t)

	s.SetCriteria(query.Criteria{Publisher: "DC"})
	sched.Advance(200 * time.Millisecond)
	s.SetCriteria(query.Criteria{Publisher: "Image"})
	sched.Advance(200 * time.Millisecond)
	assert.Empty(t, *got)

	sched.Advance(100 * time.Millisecond)
	require.Len(t, *got, 1)
	assert.Equal(t, 3, (*got)[0].Total)
	assert.Equal(t, 0, sched.Pending())
}

func TestBrowseSession_SetSortAppliesImmediately(t *testing.T) {
	s, sched, got := newTestBrowseSession(t)

	s.SetCriteria(query.Criteria{Publisher: "Image"})
	sched.Advance(300 * time.Millisecond)
	require.Len(t, *got, 1)

	s.SetSort(query.SortPriceDesc)
	require.Len(t, *got, 2)
	assert.Equal(t, []string{"009", "003", "006"}, comicIDs((*got)[1].Comics))
	assert.Equal(t, query.SortPriceDesc, s.Result().Sort)
}

func TestBrowseSession_SetSortLeavesPendingCriteria(t *testing.T) {
	s, sched, got := newTestBrowseSession(t)

	s.SetCriteria(query.Criteria{Genre: "Horror"})
	s.SetSort(query.SortDateAsc)
	require.Len(t, *got, 1)
	assert.Equal(t, 12, (*got)[0].Total)
	assert.Equal(t, "005", (*got)[0].Comics[0].ID)

	sched.Advance(300 * time.Millisecond)
	require.Len(t, *got, 2)
	assert.Equal(t, []string{"003"}, comicIDs((*got)[1].Comics))
	assert.Equal(t, query.SortDateAsc, (*got)[1].Sort)
}

func TestBrowseSession_Flush(t *testing.T) {
	s, sched, got := newTestBrowseSession(t)

	assert.False(t, s.Flush())

	s.SetCriteria(query.Criteria{Character: "wolverine"})
	assert.True(t, s.Flush())
	require.Len(t, *got, 1)
	assert.Equal(t, []string{"012", "004"}, comicIDs((*got)[0].Comics))

	sched.Advance(time.Second)
	assert.Len(t, *got, 1)
}

func TestBrowseSession_Reset(t *testing.T) {
	s, sched, got := newTestBrowseSession(t)

	s.SetCriteria(query.Criteria{Publisher: "DC"})
	sched.Advance(300 * time.Millisecond)
	s.SetSort(query.SortPriceAsc)
	s.SetCriteria(query.Criteria{Publisher: "Marvel"})

	s.Reset()
	res := s.Result()
	assert.Equal(t, 12, res.Total)
	assert.Equal(t, query.DefaultSort, res.Sort)
	assert.Equal(t, query.Criteria{}, s.Criteria())

	n := len(*got)
	sched.Advance(time.Second)
	assert.Len(t, *got, n)
}

func TestBrowseSession_Unsubscribe(t *testing.T) {
	s, _, got := newTestBrowseSession(t)

	var other int
	unsubscribe := s.Subscribe(func(BrowseResult) { other++ })

	s.SetSort(query.SortTitleDesc)
	assert.Equal(t, 1, other)

	unsubscribe()
	s.SetSort(query.SortTitleAsc)
	assert.Equal(t, 1, other)
	assert.Len(t, *got, 2)
}

func TestBrowseSession_ResultIsACopy(t *testing.T) {
	s, _, _ := newTestBrowseSession(t)

	res := s.Result()
	res.Comics[0].Title = "changed"
	assert.NotEqual(t, "changed", s.Result().Comics[0].Title)
}
