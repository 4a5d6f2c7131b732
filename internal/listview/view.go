package listview

import "context"

type State int

const (
	Loading State = iota
	Error
	Loaded
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Error:
		return "error"
	case Loaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// FetchFunc returns an ordered collection or a transport/API error.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// View tracks one screen's collection through loading, error and loaded.
type View[T Searchable] struct {
	fetch FetchFunc[T]
	state State
	items []T
	err   error
}

func NewView[T Searchable](fetch FetchFunc[T]) *View[T] {
	return &View[T]{fetch: fetch, state: Loading}
}

// Load runs the fetch. On failure the previously loaded items are dropped and
// the view stays in Error until a later Load succeeds.
func (v *View[T]) Load(ctx context.Context) State {
	v.state = Loading
	items, err := v.fetch(ctx)
	if err != nil {
		v.state, v.items, v.err = Error, nil, err
		return v.state
	}
	v.state, v.items, v.err = Loaded, items, nil
	return v.state
}

// Retry re-issues the fetch.
func (v *View[T]) Retry(ctx context.Context) State { return v.Load(ctx) }

func (v *View[T]) State() State { return v.state }
func (v *View[T]) Err() error   { return v.err }
func (v *View[T]) Items() []T   { return v.items }

// Filtered is empty unless the view is Loaded.
func (v *View[T]) Filtered(query string) []T {
	if v.state != Loaded {
		return nil
	}
	return Filter(v.items, query)
}
