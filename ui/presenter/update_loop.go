package presenter

import "time"

// Scheduler runs fn on the UI thread once d has elapsed and returns an id for Cancel.
type Scheduler interface {
	After(d time.Duration, fn func()) string
	Cancel(id string)
}

// Loop owns the playback timer. It calls Step on the playback presenter and Tick on
// the session presenter, then re-schedules itself after the player's delay. At most
// one tick is pending at any time. The zero value is usable (methods are nil-safe).
type Loop struct {
	Playback *PlaybackPresenter
	Session  *SessionPresenter
	sched    Scheduler
	now      func() time.Time
	pending  string
}

// NewLoop wires the loop into the playback presenter so play/resume can kick it.
func NewLoop(playback *PlaybackPresenter, session *SessionPresenter, sched Scheduler) *Loop {
	l := &Loop{Playback: playback, Session: session, sched: sched, now: time.Now}
	if playback != nil {
		playback.AttachLoop(l)
	}
	return l
}

// Kick runs a tick right away unless one is already pending.
func (l *Loop) Kick() {
	if l == nil || l.pending != "" {
		return
	}
	l.Tick()
}

// Tick performs one playback step and re-schedules when playback continues.
func (l *Loop) Tick() {
	if l == nil {
		return
	}
	l.pending = ""
	now := l.now()
	again := false
	if l.Playback != nil {
		again = l.Playback.Step(now)
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if again && l.sched != nil && l.Playback != nil {
		l.pending = l.sched.After(l.Playback.Delay(), l.Tick)
	}
}

// Cancel drops the pending tick, if any.
func (l *Loop) Cancel() {
	if l == nil || l.pending == "" {
		return
	}
	if l.sched != nil {
		l.sched.Cancel(l.pending)
	}
	l.pending = ""
}

// Pending reports whether a tick is scheduled.
func (l *Loop) Pending() bool { return l != nil && l.pending != "" }
