// Package shell is the top-level view selection for the client: loading
// until the durable token is resolved, then the login view or the
// authenticated shell, which switches between the map and the friends
// panel and can stack the trip-creation modal over the map. Not a
// router; no history, no deep links.
package shell

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/campshare/campshare-cli/internal/session"
	"github.com/campshare/campshare-cli/internal/viewmodel"
)

// View is the top-level screen.
type View string

const (
	ViewLoading View = "loading"
	ViewLogin   View = "login"
	ViewAuthed  View = "authed"
)

// Panel is the active screen inside the authenticated shell.
type Panel string

const (
	PanelMap     Panel = "map"
	PanelFriends Panel = "friends"
)

// Session is the slice of the session store the shell drives.
type Session interface {
	Resume(ctx context.Context) (session.State, error)
	Login(ctx context.Context, username, password string) (session.State, error)
	Logout()
	State() session.State
	Subscribe(fn func(session.State)) func()
}

// API aggregates the gateway slices the shell's view-models need.
type API interface {
	viewmodel.TripAPI
	viewmodel.FriendAPI
	viewmodel.FormAPI
}

// App owns which view is visible and the view-models behind it. All
// panel state is discarded on logout and rebuilt on the next login,
// so nothing stale survives a session change. The mutex covers the
// form's delayed completion callback, which arrives on a timer.
type App struct {
	sess    Session
	api     API
	confirm viewmodel.ConfirmFunc
	log     *zap.Logger

	mu       sync.Mutex
	ctx      context.Context
	view     View
	panel    Panel
	mapView  *viewmodel.MapView
	friends  *viewmodel.FriendsView
	form     *viewmodel.TripForm
	onChange func()
}

// New builds the shell in its loading state. The session subscription
// enforces the process-wide invariant: any transition to logged-out,
// including a 401 on a call some view issued, lands on the login view.
func New(sess Session, api API, confirm viewmodel.ConfirmFunc, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		sess:    sess,
		api:     api,
		confirm: confirm,
		log:     log,
		ctx:     context.Background(),
		view:    ViewLoading,
		panel:   PanelMap,
	}
	sess.Subscribe(func(st session.State) {
		if !st.Authenticated {
			a.toLogin()
		}
	})
	return a
}

// OnChange registers the re-render hook.
func (a *App) OnChange(fn func()) {
	a.mu.Lock()
	a.onChange = fn
	a.mu.Unlock()
}

// View returns the visible top-level screen.
func (a *App) View() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

// Panel returns the active authenticated panel.
func (a *App) Panel() Panel {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.panel
}

// Map returns the map view-model, nil outside the authenticated shell.
func (a *App) Map() *viewmodel.MapView {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mapView
}

// Friends returns the friends view-model, nil until the panel is opened.
func (a *App) Friends() *viewmodel.FriendsView {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.friends
}

// Form returns the trip form, nil unless the modal is open.
func (a *App) Form() *viewmodel.TripForm {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.form
}

// ModalOpen reports whether the trip-creation modal is stacked over the
// map.
func (a *App) ModalOpen() bool { return a.Form() != nil }

// Start resolves the durable token: a token that maps to a profile goes
// straight to the authenticated shell, anything else to login.
func (a *App) Start(ctx context.Context) {
	a.mu.Lock()
	a.ctx = ctx
	a.mu.Unlock()

	st, err := a.sess.Resume(ctx)
	if err != nil {
		a.log.Warn("resume failed", zap.Error(err))
	}
	if st.Authenticated {
		a.enterAuthed()
		return
	}
	a.mu.Lock()
	a.view = ViewLogin
	a.mu.Unlock()
	a.changed()
}

// Login submits the login form. The returned error stays inline in the
// form; the view only changes on success.
func (a *App) Login(ctx context.Context, username, password string) error {
	st, err := a.sess.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if st.Authenticated {
		a.enterAuthed()
	}
	return nil
}

// Logout clears the session; the subscription flips the view.
func (a *App) Logout() { a.sess.Logout() }

func (a *App) enterAuthed() {
	mv := viewmodel.NewMapView(a.api, a.log)
	a.mu.Lock()
	a.view = ViewAuthed
	a.panel = PanelMap
	a.mapView = mv
	ctx := a.ctx
	a.mu.Unlock()
	a.changed()
	mv.Refresh(ctx)
}

func (a *App) toLogin() {
	a.mu.Lock()
	if a.view == ViewLogin {
		a.mu.Unlock()
		return
	}
	form := a.form
	a.form = nil
	a.view = ViewLogin
	a.panel = PanelMap
	a.mapView = nil
	a.friends = nil
	a.mu.Unlock()
	if form != nil {
		form.Close()
	}
	a.changed()
}

// ShowMap switches the authenticated shell to the map panel.
func (a *App) ShowMap() {
	a.mu.Lock()
	if a.view != ViewAuthed {
		a.mu.Unlock()
		return
	}
	a.panel = PanelMap
	a.mu.Unlock()
	a.changed()
}

// ShowFriends switches to the friends panel, building and loading its
// view-model on first open.
func (a *App) ShowFriends(ctx context.Context) {
	a.mu.Lock()
	if a.view != ViewAuthed {
		a.mu.Unlock()
		return
	}
	a.panel = PanelFriends
	fv := a.friends
	if fv == nil {
		fv = viewmodel.NewFriendsView(a.api, a.confirm, a.log)
		a.friends = fv
		a.mu.Unlock()
		a.changed()
		fv.Load(ctx)
		return
	}
	a.mu.Unlock()
	a.changed()
}

// OpenTripForm stacks the creation modal over the map. Its completion
// callback dismisses the modal and forces a map refresh: the mutation
// belongs to the form, the trip set to the map.
func (a *App) OpenTripForm() {
	a.mu.Lock()
	if a.view != ViewAuthed || a.form != nil {
		a.mu.Unlock()
		return
	}
	form := viewmodel.NewTripForm(a.api, a.onTripCreated, a.log)
	a.form = form
	a.mu.Unlock()
	a.changed()
}

func (a *App) onTripCreated() {
	a.mu.Lock()
	a.form = nil
	mv := a.mapView
	ctx := a.ctx
	a.mu.Unlock()
	a.changed()
	if mv != nil {
		mv.Refresh(ctx)
	}
}

// CloseTripForm dismisses the modal, cancelling any pending success
// timer.
func (a *App) CloseTripForm() {
	a.mu.Lock()
	form := a.form
	a.form = nil
	a.mu.Unlock()
	if form == nil {
		return
	}
	form.Close()
	a.changed()
}

func (a *App) changed() {
	a.mu.Lock()
	fn := a.onChange
	a.mu.Unlock()
	if fn != nil {
		fn()
	}
}
