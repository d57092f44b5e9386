package view

import (
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// TkScheduler runs callbacks on the Tk event loop via "after".
type TkScheduler struct{}

func (TkScheduler) After(d time.Duration, fn func()) string {
	if d < time.Millisecond {
		d = time.Millisecond
	}
	return TclAfter(d, fn)
}

func (TkScheduler) Cancel(id string) {
	if id != "" {
		TclAfterCancel(id)
	}
}
