package viewmodel

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/campshare/campshare-cli/internal/errs"
	"github.com/campshare/campshare-cli/internal/model"
)

// FormAPI is the slice of the gateway the trip form needs.
type FormAPI interface {
	SearchCampgrounds(ctx context.Context, query string, limit int) ([]model.Campground, error)
	CreateTrip(ctx context.Context, trip model.NewTrip) (model.Trip, error)
}

// FormPhase is the trip form's lifecycle position.
type FormPhase string

const (
	PhaseEditing    FormPhase = "editing"
	PhaseSubmitting FormPhase = "submitting"
	PhaseSuccess    FormPhase = "success"
	PhaseClosed     FormPhase = "closed"
)

// dateLayout is the calendar-date wire format. In this layout,
// lexicographic order equals calendar order.
const dateLayout = "2006-01-02"

// searchLimit caps campground search results per keystroke.
const searchLimit = 10

// defaultResetDelay is how long the success message stays up before the
// form resets and asks its parent to dismiss it.
const defaultResetDelay = 2 * time.Second

// FormSnapshot is the render view of the form.
type FormSnapshot struct {
	Phase      FormPhase
	Title      string
	StartDate  string
	EndDate    string
	GroupSize  int
	Query      string
	Results    []model.Campground
	Selected   *model.Campground
	ErrMsg     string
	SuccessMsg string
}

// TripForm is the trip-creation workflow: a bounded state machine over
// editing -> submitting -> {success -> closed, error -> editing}, with
// an embedded incremental campground search. Validation fails closed:
// no network call is issued unless every check passes.
type TripForm struct {
	api        FormAPI
	log        *zap.Logger
	now        func() time.Time
	resetDelay time.Duration
	onCreated  func()

	mu          sync.Mutex
	phase       FormPhase
	title       string
	description string
	notes       string
	weather     string
	startDate   string
	endDate     string
	groupSize   int
	query       string
	results     []model.Campground
	selected    *model.Campground
	searchSeq   uint64
	errMsg      string
	successMsg  string
	timer       *time.Timer
}

// FormOption configures a TripForm.
type FormOption func(*TripForm)

// WithClock injects the time source used for the default dates.
func WithClock(now func() time.Time) FormOption {
	return func(f *TripForm) { f.now = now }
}

// WithResetDelay overrides the post-success delay.
func WithResetDelay(d time.Duration) FormOption {
	return func(f *TripForm) { f.resetDelay = d }
}

// NewTripForm builds a form in editing phase with default dates of today
// and tomorrow (local calendar). onCreated fires after a successful
// submission's delay, signalling the parent to dismiss the modal and
// refresh the map.
func NewTripForm(api FormAPI, onCreated func(), log *zap.Logger, opts ...FormOption) *TripForm {
	if log == nil {
		log = zap.NewNop()
	}
	f := &TripForm{
		api:        api,
		log:        log,
		now:        time.Now,
		resetDelay: defaultResetDelay,
		onCreated:  onCreated,
		phase:      PhaseEditing,
	}
	for _, o := range opts {
		o(f)
	}
	f.mu.Lock()
	f.resetLocked()
	f.mu.Unlock()
	return f
}

// resetLocked restores every field to its default. Caller holds f.mu.
func (f *TripForm) resetLocked() {
	today := f.now()
	f.title = ""
	f.description = ""
	f.notes = ""
	f.weather = ""
	f.startDate = today.Format(dateLayout)
	f.endDate = today.AddDate(0, 0, 1).Format(dateLayout)
	f.groupSize = 1
	f.query = ""
	f.results = nil
	f.selected = nil
	f.errMsg = ""
	f.successMsg = ""
}

// Snapshot returns the current state for rendering.
func (f *TripForm) Snapshot() FormSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FormSnapshot{
		Phase:      f.phase,
		Title:      f.title,
		StartDate:  f.startDate,
		EndDate:    f.endDate,
		GroupSize:  f.groupSize,
		Query:      f.query,
		Results:    f.results,
		Selected:   f.selected,
		ErrMsg:     f.errMsg,
		SuccessMsg: f.successMsg,
	}
}

// Field setters. Free edits are only meaningful while editing.

func (f *TripForm) SetTitle(s string)       { f.set(func() { f.title = s }) }
func (f *TripForm) SetDescription(s string) { f.set(func() { f.description = s }) }
func (f *TripForm) SetNotes(s string)       { f.set(func() { f.notes = s }) }
func (f *TripForm) SetWeather(s string)     { f.set(func() { f.weather = s }) }
func (f *TripForm) SetStartDate(s string)   { f.set(func() { f.startDate = s }) }
func (f *TripForm) SetEndDate(s string)     { f.set(func() { f.endDate = s }) }

func (f *TripForm) SetGroupSize(n int) {
	f.set(func() {
		if n >= 1 {
			f.groupSize = n
		}
	})
}

func (f *TripForm) set(apply func()) {
	f.mu.Lock()
	apply()
	f.mu.Unlock()
}

// SearchCampgrounds runs the search-as-you-type sub-flow. Typing does
// not clear a prior selection; it survives until a new result is
// chosen. Queries under two
// characters clear the result list without a network call; superseded
// responses are dropped.
func (f *TripForm) SearchCampgrounds(ctx context.Context, query string) {
	f.mu.Lock()
	f.query = query
	if len(query) < MinQueryLen {
		f.searchSeq++
		f.results = nil
		f.mu.Unlock()
		return
	}
	f.searchSeq++
	seq := f.searchSeq
	f.mu.Unlock()

	results, err := f.api.SearchCampgrounds(ctx, query, searchLimit)

	f.mu.Lock()
	defer f.mu.Unlock()
	if seq != f.searchSeq {
		f.log.Debug("stale campground search dropped", zap.String("query", query))
		return
	}
	if err != nil {
		f.errMsg = errs.UserMessage(err, "Failed to search campgrounds")
		return
	}
	f.results = results
}

// Select chooses a campground from the current results, echoes its name
// into the search field, and clears the result list.
func (f *TripForm) Select(index int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if index < 0 || index >= len(f.results) {
		return false
	}
	cg := f.results[index]
	f.selected = &cg
	f.query = cg.Name
	f.results = nil
	return true
}

// Submit validates and, if everything passes, creates the trip. Each
// validation failure replaces the visible error and stops before any
// network call. Free-typed text is never accepted in place of an explicit
// selection, even when it matches a campground name exactly.
func (f *TripForm) Submit(ctx context.Context) {
	f.mu.Lock()
	if f.phase != PhaseEditing {
		f.mu.Unlock()
		return
	}
	if err := f.validateLocked(); err != nil {
		f.errMsg = errs.UserMessage(err, "")
		f.mu.Unlock()
		return
	}
	f.phase = PhaseSubmitting
	f.errMsg = ""
	f.successMsg = ""
	trip := model.NewTrip{
		Title:        f.title,
		Description:  f.description,
		StartDate:    f.startDate,
		EndDate:      f.endDate,
		GroupSize:    f.groupSize,
		CampgroundID: f.selected.ID,
	}
	if f.notes != "" {
		n := f.notes
		trip.Notes = &n
	}
	if f.weather != "" {
		w := f.weather
		trip.WeatherConditions = &w
	}
	f.mu.Unlock()

	_, err := f.api.CreateTrip(ctx, trip)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.phase != PhaseSubmitting {
		return // closed while in flight
	}
	if err != nil {
		f.phase = PhaseEditing
		f.errMsg = errs.UserMessage(err, "Failed to create camping trip")
		return
	}
	f.phase = PhaseSuccess
	f.successMsg = "Camping trip created successfully!"
	f.timer = time.AfterFunc(f.resetDelay, f.finish)
}

// validateLocked applies the submission gate in presentation order.
// Caller holds f.mu.
func (f *TripForm) validateLocked() error {
	if f.selected == nil {
		return errs.Validation("Please select a campground")
	}
	if strings.TrimSpace(f.title) == "" {
		return errs.Validation("Please enter a trip title")
	}
	if f.startDate == "" || f.endDate == "" {
		return errs.Validation("Please select both start and end dates")
	}
	// YYYY-MM-DD strings order the same as the calendar dates they name.
	if f.startDate >= f.endDate {
		return errs.Validation("End date must be after start date")
	}
	return nil
}

// finish runs when the post-success delay elapses: reset to defaults,
// close, and signal the parent.
func (f *TripForm) finish() {
	f.mu.Lock()
	if f.phase != PhaseSuccess {
		f.mu.Unlock()
		return
	}
	f.resetLocked()
	f.phase = PhaseClosed
	done := f.onCreated
	f.mu.Unlock()
	if done != nil {
		done()
	}
}

// Close tears the form down, releasing the pending reset timer so a
// dismissed form never mutates state or signals its parent afterwards.
func (f *TripForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.phase = PhaseClosed
}
