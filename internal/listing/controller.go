// Package listing drives paginated, filterable, infinitely scrolling lists.
//
// A Controller is owned by one view and mutated only on that view's event
// loop. Network work happens in Fetch, which touches no controller state and
// may run on any goroutine; its Result is handed back to Resolve on the event
// loop. Every Reset starts a new generation and results from older
// generations are discarded, so the latest applied filter always wins.
package listing

import (
	"context"
	"net/url"

	"catalogadmin/internal/types"
)

// Item is anything with a stable identity. The controller never looks past it.
type Item interface {
	ItemID() types.ID
}

type Page[T Item] struct {
	Items []T
	Meta  types.PageMeta
}

// Fetcher loads one page for the given query.
type Fetcher[T Item] func(ctx context.Context, page int, query url.Values) (Page[T], error)

// Request is one page load issued by the controller.
type Request struct {
	Generation uint64
	Page       int
	Query      url.Values
	// Replace is set for first-page loads, whose items replace the list.
	Replace bool

	ctx context.Context
}

// Context is canceled once the request's generation is superseded or the
// controller is closed.
func (r Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

type Result[T Item] struct {
	Request Request
	Page    Page[T]
	Err     error
}

// Outcome tells the caller what Resolve did with a result.
type Outcome struct {
	// Applied is false for stale results, which leave the controller untouched.
	Applied bool
	Stale   bool
	Added   int
	Err     error
	State   State
}

type Controller[T Item] struct {
	fetch      Fetcher[T]
	state      State
	generation uint64
	query      url.Values
	items      []T
	index      map[types.ID]int
	meta       types.PageMeta
	loaded     bool
	inflight   *Request
	err        error
	closed     bool
	cancel     context.CancelFunc
	genCtx     context.Context
}

func NewController[T Item](fetch Fetcher[T]) *Controller[T] {
	return &Controller[T]{
		fetch: fetch,
		state: Idle,
		index: map[types.ID]int{},
		meta:  types.PageMeta{CurrentPage: 1, TotalPages: 1},
		query: url.Values{},
	}
}

// Reset discards the accumulated list, starts a new generation and returns
// the page-1 request for query. The list is empty from this point until the
// new generation's first result is resolved.
func (c *Controller[T]) Reset(query url.Values) Request {
	if c.cancel != nil {
		c.cancel()
	}
	c.generation++
	c.genCtx, c.cancel = context.WithCancel(context.Background())
	c.query = cloneValues(query)
	c.items = nil
	c.index = map[types.ID]int{}
	c.meta = types.PageMeta{CurrentPage: 1, TotalPages: 1}
	c.loaded = false
	c.err = nil
	c.state = LoadingFirstPage
	return c.issue(1, true)
}

// Reload resets with the last query.
func (c *Controller[T]) Reload() Request {
	return c.Reset(c.query)
}

// LoadNext returns the next page request when the controller can take one:
// from Loaded, or as a retry from Error. It refuses while a load is in flight,
// once exhausted, before the first Reset and after Close.
func (c *Controller[T]) LoadNext() (Request, bool) {
	if c.closed {
		return Request{}, false
	}
	switch c.state {
	case Loaded:
		if !c.meta.HasMore() {
			c.state = Exhausted
			return Request{}, false
		}
		c.state = LoadingMore
		return c.issue(c.meta.CurrentPage+1, false), true
	case Error:
		if !c.loaded {
			c.state = LoadingFirstPage
			return c.issue(1, true), true
		}
		if !c.meta.HasMore() {
			c.state = Exhausted
			return Request{}, false
		}
		c.state = LoadingMore
		return c.issue(c.meta.CurrentPage+1, false), true
	default:
		return Request{}, false
	}
}

// Fetch runs the fetcher for req. It does not read or write controller state
// and is meant to run off the event loop. The fetch is canceled when either
// ctx or the request's generation ends.
func (c *Controller[T]) Fetch(ctx context.Context, req Request) Result[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(req.Context(), cancel)
	defer stop()

	page, err := c.fetch(ctx, req.Page, req.Query)
	return Result[T]{Request: req, Page: page, Err: err}
}

// Resolve applies a fetch result. Results from an older generation, for a
// request that is no longer in flight, or arriving after Close are dropped
// without touching the list or its page meta.
func (c *Controller[T]) Resolve(res Result[T]) Outcome {
	if c.closed || res.Request.Generation != c.generation || c.inflight == nil || c.inflight.Page != res.Request.Page {
		return Outcome{Stale: true, State: c.state}
	}
	c.inflight = nil

	if res.Err != nil {
		c.err = res.Err
		c.state = Error
		return Outcome{Applied: true, Err: res.Err, State: c.state}
	}

	if res.Request.Replace {
		c.items = nil
		c.index = map[types.ID]int{}
	}
	added := c.appendUnique(res.Page.Items)

	meta := res.Page.Meta
	if meta.CurrentPage < 1 {
		meta.CurrentPage = res.Request.Page
	}
	c.meta = meta.Normalize()
	c.loaded = true
	c.err = nil
	if c.meta.HasMore() {
		c.state = Loaded
	} else {
		c.state = Exhausted
	}
	return Outcome{Applied: true, Added: added, State: c.state}
}

// Replace swaps in an updated copy of an item already in the list.
func (c *Controller[T]) Replace(item T) bool {
	idx, ok := c.index[item.ItemID()]
	if !ok {
		return false
	}
	c.items[idx] = item
	return true
}

// Remove drops an item from the list after it was deleted upstream.
func (c *Controller[T]) Remove(id types.ID) bool {
	idx, ok := c.index[id]
	if !ok {
		return false
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	c.reindex()
	if c.meta.TotalDataCount > 0 {
		c.meta.TotalDataCount--
	}
	return true
}

// Close marks the owning view as gone. In-flight requests are canceled and
// any result that still arrives is ignored.
func (c *Controller[T]) Close() {
	c.closed = true
	c.inflight = nil
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Snapshot is a read-only view of the controller for rendering.
type Snapshot[T Item] struct {
	Items      []T
	Meta       types.PageMeta
	State      State
	Generation uint64
	Err        error
}

func (c *Controller[T]) Snapshot() Snapshot[T] {
	return Snapshot[T]{
		Items:      c.Items(),
		Meta:       c.meta,
		State:      c.state,
		Generation: c.generation,
		Err:        c.err,
	}
}

func (c *Controller[T]) Closed() bool { return c.closed }

func (c *Controller[T]) State() State { return c.state }

func (c *Controller[T]) Generation() uint64 { return c.generation }

func (c *Controller[T]) Meta() types.PageMeta { return c.meta }

func (c *Controller[T]) Err() error { return c.err }

func (c *Controller[T]) Len() int { return len(c.items) }

func (c *Controller[T]) Query() url.Values { return cloneValues(c.query) }

// Items returns a copy of the accumulated list in insertion order.
func (c *Controller[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Controller[T]) At(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(c.items) {
		return zero, false
	}
	return c.items[i], true
}

func (c *Controller[T]) Lookup(id types.ID) (T, bool) {
	var zero T
	idx, ok := c.index[id]
	if !ok {
		return zero, false
	}
	return c.items[idx], true
}

// InFlight returns the outstanding request, if any.
func (c *Controller[T]) InFlight() (Request, bool) {
	if c.inflight == nil {
		return Request{}, false
	}
	return *c.inflight, true
}

func (c *Controller[T]) issue(page int, replace bool) Request {
	ctx := c.genCtx
	if ctx == nil {
		ctx = context.Background()
	}
	req := Request{
		Generation: c.generation,
		Page:       page,
		Query:      cloneValues(c.query),
		Replace:    replace,
		ctx:        ctx,
	}
	c.inflight = &req
	return req
}

func (c *Controller[T]) appendUnique(items []T) int {
	added := 0
	for _, item := range items {
		id := item.ItemID()
		if _, seen := c.index[id]; seen {
			continue
		}
		c.index[id] = len(c.items)
		c.items = append(c.items, item)
		added++
	}
	return added
}

func (c *Controller[T]) reindex() {
	c.index = make(map[types.ID]int, len(c.items))
	for i, item := range c.items {
		c.index[item.ItemID()] = i
	}
}

func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for key, list := range values {
		out[key] = append([]string(nil), list...)
	}
	return out
}
