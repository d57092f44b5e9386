package presenter

import (
	"errors"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/timestamp-extractor-go/domain/playback"
	"github.com/soocke/timestamp-extractor-go/domain/timestamp"
	"github.com/soocke/timestamp-extractor-go/ui/images"
	"github.com/soocke/timestamp-extractor-go/ui/model"
)

// Player narrows what the presenter needs from playback.Player.
type Player interface {
	Open(path string) error
	Play() (bool, error)
	Step(now time.Time) (image.Image, bool, bool)
	Delay() time.Duration
	TogglePause() (playback.Record, error)
	FastForward() float64
	SlowDown() float64
	Stop()
	State() playback.State
	PositionMsec() float64
}

// PlaybackView updates the widgets driven by playback.
type PlaybackView interface {
	ShowFrame(img image.Image)
	SetSpeed(speed float64)
	SetLastStamp(stamp string, row, count int)
	ShowError(title string, err error)
	AskVideoFile() string
}

// Ticker is the part of Loop the presenter drives.
type Ticker interface {
	Kick()
	Cancel()
}

// PlaybackPresenter maps button presses onto the player and pushes results to the view.
type PlaybackPresenter struct {
	player  Player
	view    PlaybackView
	records *model.RecordModel
	logger  *slog.Logger
	overlay bool
	loop    Ticker
}

func NewPlaybackPresenter(player Player, view PlaybackView, records *model.RecordModel, logger *slog.Logger) *PlaybackPresenter {
	return &PlaybackPresenter{player: player, view: view, records: records, logger: logger}
}

// AttachLoop sets the timer loop kicked on play/resume.
func (p *PlaybackPresenter) AttachLoop(t Ticker) {
	if p != nil {
		p.loop = t
	}
}

// SetOverlay toggles drawing the playback position onto shown frames.
func (p *PlaybackPresenter) SetOverlay(on bool) {
	if p != nil {
		p.overlay = on
	}
}

func (p *PlaybackPresenter) ready() bool {
	return p != nil && p.player != nil && p.view != nil
}

// Open asks the user for a video file (cancel selects the default) and loads it.
func (p *PlaybackPresenter) Open() {
	if !p.ready() {
		return
	}
	path := p.view.AskVideoFile()
	p.cancelLoop()
	if err := p.player.Open(path); err != nil {
		p.view.ShowError("Open Video File", err)
	}
}

// OpenPath loads path without a dialog.
func (p *PlaybackPresenter) OpenPath(path string) error {
	if !p.ready() {
		return nil
	}
	p.cancelLoop()
	return p.player.Open(path)
}

// Play starts playback if it is not running yet.
func (p *PlaybackPresenter) Play() {
	if !p.ready() {
		return
	}
	start, err := p.player.Play()
	if err != nil {
		p.view.ShowError("Play", err)
		return
	}
	if start {
		p.kickLoop()
	}
}

// TogglePause pauses and records the position, or resumes.
func (p *PlaybackPresenter) TogglePause() {
	if !p.ready() {
		return
	}
	rec, err := p.player.TogglePause()
	switch {
	case errors.Is(err, playback.ErrNotPlaying):
		if p.logger != nil {
			p.logger.Debug("pause ignored", "state", p.player.State().String())
		}
		return
	case err != nil:
		p.view.ShowError("Save Timestamp", err)
	case rec.Stamp != "":
		p.records.Add(rec.Stamp, rec.Row)
		p.view.SetLastStamp(rec.Stamp, rec.Row, p.records.Count())
	}
	if p.player.State() == playback.StatePlaying {
		p.kickLoop()
	}
}

func (p *PlaybackPresenter) FastForward() {
	if !p.ready() {
		return
	}
	p.view.SetSpeed(p.player.FastForward())
}

func (p *PlaybackPresenter) SlowDown() {
	if !p.ready() {
		return
	}
	p.view.SetSpeed(p.player.SlowDown())
}

// Stop ends playback and releases the video.
func (p *PlaybackPresenter) Stop() {
	if !p.ready() {
		return
	}
	p.cancelLoop()
	p.player.Stop()
}

// Step advances playback by one tick and reports whether the loop continues.
func (p *PlaybackPresenter) Step(now time.Time) bool {
	if !p.ready() {
		return false
	}
	frame, shown, again := p.player.Step(now)
	if shown && frame != nil {
		if p.overlay {
			frame = images.StampOverlay(frame, timestamp.Format(p.player.PositionMsec()))
		}
		p.view.ShowFrame(frame)
	}
	return again
}

// Delay is the wait before the next tick.
func (p *PlaybackPresenter) Delay() time.Duration {
	if !p.ready() {
		return time.Second
	}
	return p.player.Delay()
}

func (p *PlaybackPresenter) kickLoop() {
	if p.loop != nil {
		p.loop.Kick()
	}
}

func (p *PlaybackPresenter) cancelLoop() {
	if p.loop != nil {
		p.loop.Cancel()
	}
}
