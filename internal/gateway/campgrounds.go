package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/campshare/campshare-cli/internal/model"
)

// SearchCampgrounds runs a free-text directory search, capped at limit
// results. Query gating (minimum length) is the caller's job; the
// gateway forwards whatever it is given.
func (g *Gateway) SearchCampgrounds(ctx context.Context, query string, limit int) ([]model.Campground, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))
	var out []model.Campground
	if err := g.do(ctx, http.MethodGet, "/campgrounds/search", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CampgroundByID fetches one campground.
func (g *Gateway) CampgroundByID(ctx context.Context, id int64) (model.Campground, error) {
	var out model.Campground
	if err := g.do(ctx, http.MethodGet, "/campgrounds/"+strconv.FormatInt(id, 10), nil, nil, &out); err != nil {
		return model.Campground{}, err
	}
	return out, nil
}
