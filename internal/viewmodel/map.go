package viewmodel

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/campshare/campshare-cli/internal/errs"
	"github.com/campshare/campshare-cli/internal/model"
)

// Default viewport when no trips are on the map (San Francisco).
const (
	DefaultCenterLat = 37.7749
	DefaultCenterLng = -122.4194
	DefaultZoom      = 6
)

// TripAPI is the slice of the gateway the map needs.
type TripAPI interface {
	MapTrips(ctx context.Context, includeOwn, includeFriends bool) ([]model.TripWithDetails, error)
}

// MapSnapshot is what a renderer reads: the trip set, the filter pair,
// and the load state.
type MapSnapshot struct {
	Trips          []model.TripWithDetails
	IncludeOwn     bool
	IncludeFriends bool
	Status         Status
	ErrMsg         string
}

// Bounds is the bounding box over all trip coordinates the viewport
// auto-fits to.
type Bounds struct {
	South, West, North, East float64
}

// MapView owns the displayed trip set and the two visibility filters.
// Each filter change refetches with the new pair; results replace the
// prior set wholesale.
type MapView struct {
	api TripAPI
	log *zap.Logger

	mu             sync.Mutex
	seq            uint64
	trips          []model.TripWithDetails
	includeOwn     bool
	includeFriends bool
	status         Status
	errMsg         string
	onChange       func()
}

// NewMapView starts with both filters on and nothing loaded yet; call
// Refresh to populate.
func NewMapView(api TripAPI, log *zap.Logger) *MapView {
	if log == nil {
		log = zap.NewNop()
	}
	return &MapView{
		api:            api,
		log:            log,
		includeOwn:     true,
		includeFriends: true,
		status:         StatusLoading,
	}
}

// OnChange registers the re-render hook.
func (v *MapView) OnChange(fn func()) {
	v.mu.Lock()
	v.onChange = fn
	v.mu.Unlock()
}

// Snapshot returns the current state for rendering.
func (v *MapView) Snapshot() MapSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return MapSnapshot{
		Trips:          v.trips,
		IncludeOwn:     v.includeOwn,
		IncludeFriends: v.includeFriends,
		Status:         v.status,
		ErrMsg:         v.errMsg,
	}
}

// SetIncludeOwn flips the own-trips filter and refetches.
func (v *MapView) SetIncludeOwn(ctx context.Context, on bool) {
	v.mu.Lock()
	v.includeOwn = on
	v.mu.Unlock()
	v.Refresh(ctx)
}

// SetIncludeFriends flips the friends-trips filter and refetches.
func (v *MapView) SetIncludeFriends(ctx context.Context, on bool) {
	v.mu.Lock()
	v.includeFriends = on
	v.mu.Unlock()
	v.Refresh(ctx)
}

// Refresh re-issues the fetch with the current filter pair. It is also
// the hook a sibling workflow (trip creation) uses to force a reload
// after a mutation it does not own. A response that lost the race to a
// newer Refresh is dropped.
func (v *MapView) Refresh(ctx context.Context) {
	v.mu.Lock()
	v.seq++
	seq := v.seq
	own, friends := v.includeOwn, v.includeFriends
	v.status = StatusLoading
	v.errMsg = ""
	v.mu.Unlock()
	v.changed()

	trips, err := v.api.MapTrips(ctx, own, friends)

	v.mu.Lock()
	if seq != v.seq {
		v.mu.Unlock()
		v.log.Debug("stale map response dropped", zap.Uint64("seq", seq))
		return
	}
	if err != nil {
		v.status = StatusError
		v.errMsg = errs.UserMessage(err, "Failed to load camping trips")
		v.mu.Unlock()
		v.changed()
		return
	}
	v.trips = trips
	v.status = StatusReady
	v.mu.Unlock()
	v.changed()
}

// Bounds returns the box enclosing every trip's campground; ok is false
// for an empty set, in which case the renderer keeps the default
// center/zoom.
func (v *MapView) Bounds() (Bounds, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.trips) == 0 {
		return Bounds{}, false
	}
	b := Bounds{
		South: v.trips[0].Campground.Latitude,
		North: v.trips[0].Campground.Latitude,
		West:  v.trips[0].Campground.Longitude,
		East:  v.trips[0].Campground.Longitude,
	}
	for _, t := range v.trips[1:] {
		lat, lng := t.Campground.Latitude, t.Campground.Longitude
		if lat < b.South {
			b.South = lat
		}
		if lat > b.North {
			b.North = lat
		}
		if lng < b.West {
			b.West = lng
		}
		if lng > b.East {
			b.East = lng
		}
	}
	return b, true
}

func (v *MapView) changed() {
	v.mu.Lock()
	fn := v.onChange
	v.mu.Unlock()
	if fn != nil {
		fn()
	}
}
