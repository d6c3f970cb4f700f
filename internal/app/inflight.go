package app

import (
	"context"
	"errors"
)

// requestKind names a class of one-off request. At most one request of each
// kind runs at a time; starting another cancels the first.
type requestKind string

const (
	requestRecord requestKind = "record"
	requestSave   requestKind = "save"
	requestDelete requestKind = "delete"
)

type inflight map[requestKind]context.CancelFunc

func (f *inflight) start(kind requestKind) context.Context {
	f.finish(kind)
	if *f == nil {
		*f = inflight{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	(*f)[kind] = cancel
	return ctx
}

// finish cancels kind's context (a no-op once the request returned) and
// forgets it.
func (f inflight) finish(kind requestKind) {
	if cancel, ok := f[kind]; ok {
		cancel()
		delete(f, kind)
	}
}

func (f inflight) running(kind requestKind) bool {
	_, ok := f[kind]
	return ok
}

func (f inflight) cancelAll() {
	for kind := range f {
		f.finish(kind)
	}
}

func canceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
