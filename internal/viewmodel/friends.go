package viewmodel

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/campshare/campshare-cli/internal/errs"
	"github.com/campshare/campshare-cli/internal/model"
)

// FriendAPI is the slice of the gateway the friends panel needs.
type FriendAPI interface {
	SearchUsers(ctx context.Context, query string) ([]model.UserSearchResult, error)
	SendFriendRequest(ctx context.Context, username string) (model.SendRequestResponse, error)
	PendingRequests(ctx context.Context) ([]model.FriendRequest, error)
	RespondToRequest(ctx context.Context, requestID int64, accept bool) (model.MessageResponse, error)
	MyFriends(ctx context.Context) ([]model.Friend, error)
	RemoveFriend(ctx context.Context, friendID int64) (model.MessageResponse, error)
}

// ConfirmFunc asks the user before a destructive action; returning false
// aborts it. The terminal shell wires a y/n prompt here.
type ConfirmFunc func(prompt string) bool

// FriendsSnapshot is the render view of the three collections.
type FriendsSnapshot struct {
	Query   string
	Results []model.UserSearchResult
	Pending []model.FriendRequest
	Friends []model.Friend
	Message string
}

// FriendsView backs the friends panel: three independently loaded and
// independently refreshed projections of the relationship graph. They
// are never reconciled locally; after any mutation the affected
// collections are refetched wholesale, nothing is patched in place.
type FriendsView struct {
	api     FriendAPI
	log     *zap.Logger
	confirm ConfirmFunc

	mu        sync.Mutex
	searchSeq uint64
	query     string
	results   []model.UserSearchResult
	pending   []model.FriendRequest
	friends   []model.Friend
	message   string
	onChange  func()
}

// NewFriendsView builds the panel state; call Load on mount to populate
// pending and friends. A nil confirm allows every removal.
func NewFriendsView(api FriendAPI, confirm ConfirmFunc, log *zap.Logger) *FriendsView {
	if log == nil {
		log = zap.NewNop()
	}
	if confirm == nil {
		confirm = func(string) bool { return true }
	}
	return &FriendsView{api: api, log: log, confirm: confirm}
}

// OnChange registers the re-render hook.
func (v *FriendsView) OnChange(fn func()) {
	v.mu.Lock()
	v.onChange = fn
	v.mu.Unlock()
}

// Snapshot returns the current state for rendering.
func (v *FriendsView) Snapshot() FriendsSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return FriendsSnapshot{
		Query:   v.query,
		Results: v.results,
		Pending: v.pending,
		Friends: v.friends,
		Message: v.message,
	}
}

// Load populates pending requests and friends, as the panel does on
// mount. Failures log and leave the collections empty; the panel is
// still usable for search.
func (v *FriendsView) Load(ctx context.Context) {
	v.loadPending(ctx)
	v.loadFriends(ctx)
}

func (v *FriendsView) loadPending(ctx context.Context) {
	reqs, err := v.api.PendingRequests(ctx)
	if err != nil {
		v.log.Warn("pending requests load failed", zap.Error(err))
		return
	}
	v.mu.Lock()
	v.pending = reqs
	v.mu.Unlock()
	v.changed()
}

func (v *FriendsView) loadFriends(ctx context.Context) {
	list, err := v.api.MyFriends(ctx)
	if err != nil {
		v.log.Warn("friends load failed", zap.Error(err))
		return
	}
	v.mu.Lock()
	v.friends = list
	v.mu.Unlock()
	v.changed()
}

// Search replaces the result set for query. Queries shorter than two
// characters after trimming clear the results without touching the
// network. A response superseded by a newer query is dropped.
func (v *FriendsView) Search(ctx context.Context, query string) {
	v.mu.Lock()
	v.query = query
	if len(strings.TrimSpace(query)) < MinQueryLen {
		v.searchSeq++ // invalidate any in-flight search
		v.results = nil
		v.mu.Unlock()
		v.changed()
		return
	}
	v.searchSeq++
	seq := v.searchSeq
	v.mu.Unlock()

	results, err := v.api.SearchUsers(ctx, query)

	v.mu.Lock()
	if seq != v.searchSeq {
		v.mu.Unlock()
		v.log.Debug("stale user search dropped", zap.String("query", query))
		return
	}
	if err != nil {
		v.message = errs.UserMessage(err, "Error searching users")
		v.mu.Unlock()
		v.changed()
		return
	}
	v.results = results
	v.mu.Unlock()
	v.changed()
}

// SendRequest asks username for friendship, then re-runs the current
// search so the row's relationship status shows request_sent. Failure
// surfaces the server message and leaves the results untouched.
func (v *FriendsView) SendRequest(ctx context.Context, username string) {
	_, err := v.api.SendFriendRequest(ctx, username)
	if err != nil {
		v.setMessage(errs.UserMessage(err, "Error sending friend request"))
		return
	}
	v.setMessage(fmt.Sprintf("Friend request sent to %s", username))
	v.mu.Lock()
	query := v.query
	v.mu.Unlock()
	v.Search(ctx, query)
}

// Respond accepts or rejects a pending request, then reloads both
// pending and friends: accept moves the edge between projections, and
// only the server knows the result. Nothing is updated speculatively.
func (v *FriendsView) Respond(ctx context.Context, requestID int64, accept bool) {
	_, err := v.api.RespondToRequest(ctx, requestID, accept)
	if err != nil {
		v.setMessage(errs.UserMessage(err, "Error responding to request"))
		return
	}
	if accept {
		v.setMessage("Friend request accepted")
	} else {
		v.setMessage("Friend request rejected")
	}
	v.loadPending(ctx)
	v.loadFriends(ctx)
}

// Remove severs a friendship after interactive confirmation, then
// reloads friends.
func (v *FriendsView) Remove(ctx context.Context, friendID int64) {
	if !v.confirm("Are you sure you want to remove this friend?") {
		return
	}
	_, err := v.api.RemoveFriend(ctx, friendID)
	if err != nil {
		v.setMessage(errs.UserMessage(err, "Error removing friend"))
		return
	}
	v.setMessage("Friend removed")
	v.loadFriends(ctx)
}

func (v *FriendsView) setMessage(msg string) {
	v.mu.Lock()
	v.message = msg
	v.mu.Unlock()
	v.changed()
}

func (v *FriendsView) changed() {
	v.mu.Lock()
	fn := v.onChange
	v.mu.Unlock()
	if fn != nil {
		fn()
	}
}
