package presenter

import (
	"github.com/soocke/timestamp-extractor-go/domain/playback"
)

// StateView reflects the playback state in the window.
type StateView interface {
	SetStateLabel(string)
	SetPlayEnabled(bool)
	ConfigEditable(bool)
	ClearFrame()
}

// StatePresenter receives player transitions and updates the view. Settings can only
// be edited while no video is playing or paused.
type StatePresenter struct {
	view   StateView
	latest playback.State
}

func NewStatePresenter(view StateView) *StatePresenter {
	return &StatePresenter{view: view}
}

// OnState is registered as a playback.StateListener.
func (p *StatePresenter) OnState(prev, next playback.State) {
	if p == nil || p.view == nil {
		return
	}
	p.latest = next
	p.view.SetStateLabel("State: " + next.String())
	running := next == playback.StatePlaying || next == playback.StatePaused
	p.view.SetPlayEnabled(!running)
	p.view.ConfigEditable(!running)
	if next == playback.StateStopped {
		p.view.ClearFrame()
	}
}

// Latest returns the last state shown.
func (p *StatePresenter) Latest() playback.State {
	if p == nil {
		return playback.StateIdle
	}
	return p.latest
}
