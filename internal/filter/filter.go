// Package filter holds the draft and applied filter sets of a list view.
// Only Apply and Clear are observable; editing the draft is silent.
package filter

import (
	"maps"
	"net/url"
	"sort"
	"strings"
)

// State maps a filter key such as "starts_with" or "active" to its value.
type State map[string]string

func (s State) Clone() State {
	out := make(State, len(s))
	maps.Copy(out, s)
	return out
}

// Equal compares two states treating empty values as absent.
func (s State) Equal(other State) bool {
	a, b := s.active(), other.active()
	if len(a) != len(b) {
		return false
	}
	for key, value := range a {
		if b[key] != value {
			return false
		}
	}
	return true
}

// Active returns the keys carrying a non-empty value, sorted.
func (s State) Active() []string {
	keys := make([]string, 0, len(s))
	for key := range s.active() {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Query converts the state into query parameters. Keys with empty values are
// omitted entirely: the backend treats absence and emptiness differently.
func (s State) Query() url.Values {
	values := url.Values{}
	for key, value := range s.active() {
		values.Set(key, value)
	}
	return values
}

func (s State) active() map[string]string {
	out := make(map[string]string, len(s))
	for key, value := range s {
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	return out
}

// Holder keeps the draft being edited and the applied set driving the list.
// It is owned by a single view and is not safe for concurrent use.
type Holder struct {
	empty       State
	draft       State
	applied     State
	subscribers map[int]func(State)
	nextSubID   int
}

func New(empty State) *Holder {
	if empty == nil {
		empty = State{}
	}
	return &Holder{
		empty:       empty.Clone(),
		draft:       empty.Clone(),
		applied:     empty.Clone(),
		subscribers: map[int]func(State){},
	}
}

func (h *Holder) SetDraftField(key, value string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	h.draft[key] = value
}

func (h *Holder) DraftField(key string) string {
	return h.draft[key]
}

func (h *Holder) Draft() State {
	return h.draft.Clone()
}

func (h *Holder) Applied() State {
	return h.applied.Clone()
}

// Dirty reports whether the draft differs from the applied set.
func (h *Holder) Dirty() bool {
	return !h.draft.Equal(h.applied)
}

// Query returns the applied filter as query parameters.
func (h *Holder) Query() url.Values {
	return h.applied.Query()
}

// Apply copies the draft into the applied set and notifies subscribers.
func (h *Holder) Apply() State {
	h.applied = h.draft.Clone()
	h.notify()
	return h.Applied()
}

// Clear resets draft and applied to the empty state and notifies subscribers.
func (h *Holder) Clear() State {
	h.draft = h.empty.Clone()
	h.applied = h.empty.Clone()
	h.notify()
	return h.Applied()
}

// Subscribe registers fn for applied-state changes. The returned function
// unsubscribes and is safe to call more than once.
func (h *Holder) Subscribe(fn func(State)) func() {
	if fn == nil {
		return func() {}
	}
	id := h.nextSubID
	h.nextSubID++
	h.subscribers[id] = fn
	return func() {
		delete(h.subscribers, id)
	}
}

func (h *Holder) notify() {
	if len(h.subscribers) == 0 {
		return
	}
	ids := make([]int, 0, len(h.subscribers))
	for id := range h.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := h.subscribers[id]; ok {
			fn(h.Applied())
		}
	}
}
