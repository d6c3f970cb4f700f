package listing

// Trigger fires when a sentinel, the trailing edge of the last rendered item,
// scrolls from hidden to visible. It must be re-attached whenever the
// sentinel identity changes and detached when the view goes away.
type Trigger struct {
	sentinel string
	attached bool
	visible  bool
}

// Attach starts observing sentinel. Attaching a different sentinel re-arms the
// trigger so a visible replacement fires on its next observation.
func (t *Trigger) Attach(sentinel string) {
	if t.attached && t.sentinel == sentinel {
		return
	}
	t.sentinel = sentinel
	t.attached = true
	t.visible = false
}

// Detach stops observation; later Observe calls never fire.
func (t *Trigger) Detach() {
	t.sentinel = ""
	t.attached = false
	t.visible = false
}

func (t *Trigger) Attached() bool { return t.attached }

func (t *Trigger) Sentinel() string { return t.sentinel }

// Observe records the sentinel's visibility and reports a hidden-to-visible
// transition.
func (t *Trigger) Observe(visible bool) bool {
	if !t.attached {
		return false
	}
	fire := visible && !t.visible
	t.visible = visible
	return fire
}

// ObserveSentinel feeds a visibility observation to t and, when it fires,
// asks c for the next page. The controller refuses while already loading or
// once exhausted.
func ObserveSentinel[T Item](t *Trigger, c *Controller[T], visible bool) (Request, bool) {
	if t == nil || c == nil {
		return Request{}, false
	}
	if !t.Observe(visible) {
		return Request{}, false
	}
	return c.LoadNext()
}
