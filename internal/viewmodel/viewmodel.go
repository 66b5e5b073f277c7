// Package viewmodel holds the non-visual state and operations behind each
// screen: the trip map, the friends panel, and the trip-creation form.
// View-models talk to the backend through narrow gateway interfaces and
// report changes through a callback; rendering lives elsewhere.
//
// Every fetch that can be superseded by a newer one (map filters, user
// search, campground search) carries a sequence number, and a response
// that is no longer the latest issued for its view is discarded rather
// than overwriting fresher data.
package viewmodel

// Status is a view's load state.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// MinQueryLen gates incremental search: shorter queries issue no network
// call and always yield an empty result set.
const MinQueryLen = 2
