package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/campshare/campshare-cli/internal/model"
)

// CreateTrip logs a new camping trip for the current user.
func (g *Gateway) CreateTrip(ctx context.Context, trip model.NewTrip) (model.Trip, error) {
	var out model.Trip
	if err := g.do(ctx, http.MethodPost, "/camping-trips/", nil, trip, &out); err != nil {
		return model.Trip{}, err
	}
	return out, nil
}

// MapTrips returns the map projection filtered by ownership. Both flags
// false is legal and yields an empty set.
func (g *Gateway) MapTrips(ctx context.Context, includeOwn, includeFriends bool) ([]model.TripWithDetails, error) {
	q := url.Values{}
	q.Set("include_own", strconv.FormatBool(includeOwn))
	q.Set("include_friends", strconv.FormatBool(includeFriends))
	var out []model.TripWithDetails
	if err := g.do(ctx, http.MethodGet, "/camping-trips/map", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyTrips pages through the current user's own trips.
func (g *Gateway) MyTrips(ctx context.Context, skip, limit int) ([]model.Trip, error) {
	var out []model.Trip
	if err := g.do(ctx, http.MethodGet, "/camping-trips/my-trips", pageQuery(skip, limit), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TripFeed pages through the friends feed.
func (g *Gateway) TripFeed(ctx context.Context, skip, limit int) ([]model.Trip, error) {
	var out []model.Trip
	if err := g.do(ctx, http.MethodGet, "/camping-trips/feed", pageQuery(skip, limit), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TripByID fetches one trip.
func (g *Gateway) TripByID(ctx context.Context, id int64) (model.Trip, error) {
	var out model.Trip
	if err := g.do(ctx, http.MethodGet, "/camping-trips/"+strconv.FormatInt(id, 10), nil, nil, &out); err != nil {
		return model.Trip{}, err
	}
	return out, nil
}

// UpdateTrip applies a partial update. No view uses it today; it exists
// because the backend exposes it and scripts drive it through the CLI.
func (g *Gateway) UpdateTrip(ctx context.Context, id int64, patch model.TripPatch) (model.Trip, error) {
	var out model.Trip
	if err := g.do(ctx, http.MethodPut, "/camping-trips/"+strconv.FormatInt(id, 10), nil, patch, &out); err != nil {
		return model.Trip{}, err
	}
	return out, nil
}

// DeleteTrip removes a trip owned by the current user.
func (g *Gateway) DeleteTrip(ctx context.Context, id int64) error {
	return g.do(ctx, http.MethodDelete, "/camping-trips/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

func pageQuery(skip, limit int) url.Values {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	return q
}
