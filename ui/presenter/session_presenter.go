package presenter

import (
	"time"

	"github.com/soocke/timestamp-extractor-go/domain/playback"
	"github.com/soocke/timestamp-extractor-go/ui/model"
)

// SessionView displays the playing, paused and total durations.
type SessionView interface {
	SetSession(v model.SessionValues)
}

// SessionPresenter feeds player transitions into the session model and pushes
// its values to the view. The view is only touched when a displayed second changes.
type SessionPresenter struct {
	sess *model.SessionModel
	view SessionView
	now  func() time.Time
	last [3]int64
	sent bool
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, view: view, now: time.Now}
}

// OnState opens, pauses or closes the current run.
func (p *SessionPresenter) OnState(prev, next playback.State) {
	if p == nil || p.sess == nil {
		return
	}
	now := p.now()
	switch next {
	case playback.StatePlaying:
		p.sess.Play(now)
	case playback.StatePaused:
		p.sess.Pause(now)
	default:
		p.sess.Stop(now)
	}
	p.Tick(now)
}

// Tick pushes the model's values as of now.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.view == nil {
		return
	}
	v := p.sess.Values(now)
	secs := [3]int64{int64(v.Playing / time.Second), int64(v.Paused / time.Second), int64(v.Total / time.Second)}
	if p.sent && secs == p.last {
		return
	}
	p.sent, p.last = true, secs
	p.view.SetSession(v)
}
