package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/campshare/campshare-cli/internal/model"
)

// SearchUsers finds users by name fragment; each result carries its
// relationship status relative to the caller.
func (g *Gateway) SearchUsers(ctx context.Context, query string) ([]model.UserSearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	var out []model.UserSearchResult
	if err := g.do(ctx, http.MethodGet, "/friends/search", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendFriendRequest asks the named user for friendship.
func (g *Gateway) SendFriendRequest(ctx context.Context, username string) (model.SendRequestResponse, error) {
	body := struct {
		Username string `json:"username"`
	}{Username: username}
	var out model.SendRequestResponse
	if err := g.do(ctx, http.MethodPost, "/friends/send-request", nil, body, &out); err != nil {
		return model.SendRequestResponse{}, err
	}
	return out, nil
}

// PendingRequests lists requests awaiting the current user's answer.
func (g *Gateway) PendingRequests(ctx context.Context) ([]model.FriendRequest, error) {
	var out []model.FriendRequest
	if err := g.do(ctx, http.MethodGet, "/friends/pending-requests", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RespondToRequest accepts or rejects a pending request.
func (g *Gateway) RespondToRequest(ctx context.Context, requestID int64, accept bool) (model.MessageResponse, error) {
	body := struct {
		FriendRequestID int64 `json:"friend_request_id"`
		Accept          bool  `json:"accept"`
	}{FriendRequestID: requestID, Accept: accept}
	var out model.MessageResponse
	if err := g.do(ctx, http.MethodPost, "/friends/respond", nil, body, &out); err != nil {
		return model.MessageResponse{}, err
	}
	return out, nil
}

// MyFriends lists accepted friendships.
func (g *Gateway) MyFriends(ctx context.Context) ([]model.Friend, error) {
	var out []model.Friend
	if err := g.do(ctx, http.MethodGet, "/friends/my-friends", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveFriend severs an accepted friendship edge.
func (g *Gateway) RemoveFriend(ctx context.Context, friendID int64) (model.MessageResponse, error) {
	var out model.MessageResponse
	if err := g.do(ctx, http.MethodDelete, "/friends/remove/"+strconv.FormatInt(friendID, 10), nil, nil, &out); err != nil {
		return model.MessageResponse{}, err
	}
	return out, nil
}
