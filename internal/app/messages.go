package app

import (
	"catalogadmin/internal/listing"
	"catalogadmin/internal/types"
)

// pageLoadedMsg carries a fetched page back to the event loop. resolve
// applies it to the controller that issued the request and reports whether
// it was stale.
type pageLoadedMsg struct {
	resource   string
	generation uint64
	page       int
	resolve    func() listing.Outcome
}

type recordLoadedMsg struct {
	resource types.Resource
	id       types.ID
	record   any
	err      error
}

type recordSavedMsg struct {
	resource types.Resource
	created  bool
	record   any
	err      error
}

type recordDeletedMsg struct {
	resource types.Resource
	id       types.ID
	err      error
}
