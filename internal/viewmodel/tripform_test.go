package viewmodel

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campshare/campshare-cli/internal/errs"
	"github.com/campshare/campshare-cli/internal/model"
)

type fakeFormAPI struct {
	mu          sync.Mutex
	campgrounds []model.Campground
	searchCalls int
	createCalls int
	createErr   error
	lastTrip    model.NewTrip
}

func (f *fakeFormAPI) SearchCampgrounds(_ context.Context, query string, limit int) ([]model.Campground, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	return f.campgrounds, nil
}

func (f *fakeFormAPI) CreateTrip(_ context.Context, trip model.NewTrip) (model.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return model.Trip{}, f.createErr
	}
	f.lastTrip = trip
	return model.Trip{ID: 1, Title: trip.Title}, nil
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 8, 28, 14, 0, 0, 0, time.Local)
	}
}

func yosemite() []model.Campground {
	return []model.Campground{
		{ID: 1, Name: "Yosemite Creek", Location: "CA"},
		{ID: 2, Name: "Yosemite Pines", Location: "CA"},
		{ID: 3, Name: "Yosemite Lakes", Location: "CA"},
	}
}

func TestDefaultDatesTodayTomorrow(t *testing.T) {
	f := NewTripForm(&fakeFormAPI{}, nil, nil, WithClock(fixedClock()))
	snap := f.Snapshot()
	assert.Equal(t, "2026-08-28", snap.StartDate)
	assert.Equal(t, "2026-08-29", snap.EndDate)
	assert.Equal(t, 1, snap.GroupSize)
	assert.Equal(t, PhaseEditing, snap.Phase)
}

func TestShortCampgroundQueryIssuesNoCall(t *testing.T) {
	api := &fakeFormAPI{campgrounds: yosemite()}
	f := NewTripForm(api, nil, nil)

	f.SearchCampgrounds(context.Background(), "Y")
	assert.Zero(t, api.searchCalls)
	assert.Empty(t, f.Snapshot().Results)
}

func TestSelectPopulatesFormAndEchoesName(t *testing.T) {
	api := &fakeFormAPI{campgrounds: yosemite()}
	f := NewTripForm(api, nil, nil)

	f.SearchCampgrounds(context.Background(), "Yosemite")
	require.Len(t, f.Snapshot().Results, 3)

	require.True(t, f.Select(1))
	snap := f.Snapshot()
	require.NotNil(t, snap.Selected)
	assert.Equal(t, int64(2), snap.Selected.ID)
	assert.Equal(t, "Yosemite Pines", snap.Query, "search field displays the selected name")
	assert.Empty(t, snap.Results)
}

func TestSubmitRejectsWithoutSelection(t *testing.T) {
	api := &fakeFormAPI{campgrounds: yosemite()}
	f := NewTripForm(api, nil, nil)
	f.SetTitle("Trip")
	// Free-typed text matching a known name exactly is still not a
	// selection.
	f.SearchCampgrounds(context.Background(), "Yosemite Pines")

	f.Submit(context.Background())
	assert.Equal(t, "Please select a campground", f.Snapshot().ErrMsg)
	assert.Zero(t, api.createCalls)
	assert.Equal(t, PhaseEditing, f.Snapshot().Phase)
}

func TestSubmitValidationOrderAndReplacement(t *testing.T) {
	api := &fakeFormAPI{campgrounds: yosemite()}
	f := NewTripForm(api, nil, nil, WithClock(fixedClock()))
	f.SearchCampgrounds(context.Background(), "Yosemite")
	require.True(t, f.Select(0))

	f.SetTitle("   ")
	f.Submit(context.Background())
	assert.Equal(t, "Please enter a trip title", f.Snapshot().ErrMsg)

	f.SetTitle("Summer trip")
	f.SetEndDate("")
	f.Submit(context.Background())
	// Each failure replaces the prior message, they never accumulate.
	assert.Equal(t, "Please select both start and end dates", f.Snapshot().ErrMsg)

	f.SetStartDate("2026-09-02")
	f.SetEndDate("2026-09-01")
	f.Submit(context.Background())
	assert.Equal(t, "End date must be after start date", f.Snapshot().ErrMsg)

	f.SetStartDate("2026-09-01")
	f.SetEndDate("2026-09-01")
	f.Submit(context.Background())
	assert.Equal(t, "End date must be after start date", f.Snapshot().ErrMsg, "equal dates are rejected")

	assert.Zero(t, api.createCalls, "validation failures must not reach the network")
}

func TestSubmitSuccessResetsAndSignalsParent(t *testing.T) {
	api := &fakeFormAPI{campgrounds: yosemite()}
	created := make(chan struct{})
	f := NewTripForm(api, func() { close(created) }, nil,
		WithClock(fixedClock()), WithResetDelay(10*time.Millisecond))

	f.SearchCampgrounds(context.Background(), "Yosemite")
	require.True(t, f.Select(0))
	f.SetTitle("Summer trip")
	f.SetNotes("bring bug spray")
	f.SetGroupSize(3)
	f.Submit(context.Background())

	snap := f.Snapshot()
	assert.Equal(t, PhaseSuccess, snap.Phase)
	assert.Equal(t, "Camping trip created successfully!", snap.SuccessMsg)
	assert.Equal(t, int64(1), api.lastTrip.CampgroundID)
	require.NotNil(t, api.lastTrip.Notes)
	assert.Equal(t, "bring bug spray", *api.lastTrip.Notes)
	assert.Equal(t, 3, api.lastTrip.GroupSize)

	select {
	case <-created:
	case <-time.After(time.Second):
		t.Fatal("parent was never signalled")
	}
	snap = f.Snapshot()
	assert.Equal(t, PhaseClosed, snap.Phase)
	assert.Empty(t, snap.Title)
	assert.Nil(t, snap.Selected)
	assert.Equal(t, "2026-08-28", snap.StartDate, "fields reset to defaults")
}

func TestCloseCancelsResetTimer(t *testing.T) {
	api := &fakeFormAPI{campgrounds: yosemite()}
	var signalled bool
	f := NewTripForm(api, func() { signalled = true }, nil,
		WithResetDelay(20*time.Millisecond))

	f.SearchCampgrounds(context.Background(), "Yosemite")
	require.True(t, f.Select(0))
	f.SetTitle("Trip")
	f.Submit(context.Background())
	require.Equal(t, PhaseSuccess, f.Snapshot().Phase)

	f.Close()
	time.Sleep(60 * time.Millisecond)
	assert.False(t, signalled, "a dismissed form must not signal its parent afterwards")
	assert.Equal(t, PhaseClosed, f.Snapshot().Phase)
}

func TestSubmitFailureReturnsToEditing(t *testing.T) {
	api := &fakeFormAPI{campgrounds: yosemite()}
	api.createErr = &errs.RemoteError{Status: 500}
	f := NewTripForm(api, nil, nil)

	f.SearchCampgrounds(context.Background(), "Yosemite")
	require.True(t, f.Select(0))
	f.SetTitle("Trip")
	f.Submit(context.Background())

	snap := f.Snapshot()
	assert.Equal(t, PhaseEditing, snap.Phase)
	assert.Equal(t, "Failed to create camping trip", snap.ErrMsg)
	assert.Equal(t, "Trip", snap.Title, "inputs survive a failed submission")
}
