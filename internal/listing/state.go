package listing

// State is where a Controller is in its fetch lifecycle.
type State int

const (
	Idle State = iota
	LoadingFirstPage
	LoadingMore
	Loaded
	// Exhausted means current_page has reached total_pages.
	Exhausted
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case LoadingFirstPage:
		return "loading"
	case LoadingMore:
		return "loading_more"
	case Loaded:
		return "loaded"
	case Exhausted:
		return "exhausted"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Loading reports whether a request is outstanding.
func (s State) Loading() bool {
	return s == LoadingFirstPage || s == LoadingMore
}
