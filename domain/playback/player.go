package playback

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/timestamp-extractor-go/domain/timestamp"
	"github.com/soocke/timestamp-extractor-go/domain/video"
)

const statsLogInterval = 5 * time.Second

// Player drives a frame source from a single UI timer. All methods must be called
// from the same goroutine (the Tk event loop).
type Player struct {
	logger    *slog.Logger
	open      Opener
	rec       Recorder
	settings  Settings
	now       func() time.Time
	src       FrameSource
	path      string
	state     State
	speed     float64
	loop      bool // a tick chain is active (survives pause)
	lastShown time.Time
	lastStats time.Time
	meter     video.Meter
	listeners []StateListener
}

// NewPlayer returns an idle player. No video is opened until Open or Play.
func NewPlayer(logger *slog.Logger, open Opener, rec Recorder, settings Settings) *Player {
	settings.normalize()
	return &Player{
		logger:   logger,
		open:     open,
		rec:      rec,
		settings: settings,
		now:      time.Now,
		state:    StateIdle,
		speed:    settings.Speed,
		path:     settings.DefaultPath,
	}
}

// AddListener registers l for state transitions.
func (p *Player) AddListener(l StateListener) {
	if l != nil {
		p.listeners = append(p.listeners, l)
	}
}

func (p *Player) State() State   { return p.state }
func (p *Player) Speed() float64 { return p.speed }
func (p *Player) Path() string   { return p.path }
func (p *Player) Playing() bool  { return p.state == StatePlaying }
func (p *Player) HasSource() bool {
	return p.src != nil && p.src.Opened()
}

// PositionMsec reports the source position, 0 without a source.
func (p *Player) PositionMsec() float64 {
	if p.src == nil {
		return 0
	}
	return p.src.PositionMsec()
}

// Stats returns decode counters for the current run.
func (p *Player) Stats() video.DecodeStats { return p.meter.Stats() }

// Configure replaces the loop settings. The current speed is kept, clamped to the
// new range; the current video is not reopened.
func (p *Player) Configure(s Settings) {
	s.normalize()
	p.settings = s
	p.speed = clamp(p.speed, s.MinSpeed, s.MaxSpeed)
}

// SetInterval changes the base tick interval used by Delay.
func (p *Player) SetInterval(d time.Duration) {
	if d > 0 {
		p.settings.Interval = d
	}
}

// Open replaces the current source. An empty path selects the default video.
// The tick chain stops; on failure the player is left without a source.
func (p *Player) Open(path string) error {
	if path == "" {
		path = p.settings.DefaultPath
	}
	p.closeSource()
	p.loop = false
	p.path = path
	if err := p.openPath(path); err != nil {
		p.transition(StateIdle)
		return err
	}
	p.transition(StateIdle)
	return nil
}

func (p *Player) openPath(path string) error {
	if p.open == nil {
		return ErrNoSource
	}
	src, err := p.open(path)
	if err != nil {
		if p.logger != nil {
			p.logger.Error("open video failed", "path", path, "error", err)
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	p.src = src
	p.meter.Reset()
	return nil
}

func (p *Player) closeSource() {
	if p.src == nil {
		return
	}
	if err := p.src.Close(); err != nil && p.logger != nil {
		p.logger.Warn("close video", "path", p.path, "error", err)
	}
	p.src = nil
}

// Play starts the tick chain. It reports true when the caller must schedule the
// first Step. A source released by Stop, or one that reached its end, is re-opened
// from the last path.
func (p *Player) Play() (bool, error) {
	if p.loop {
		return false, nil
	}
	if p.state == StateEnded {
		p.closeSource()
	}
	if p.src == nil {
		if err := p.openPath(p.path); err != nil {
			return false, err
		}
	}
	p.loop = true
	p.lastShown = p.now()
	p.transition(StatePlaying)
	return true, nil
}

// Step performs one timer tick at now. It decodes a frame and returns it when at
// least one source frame period has passed since the last shown frame. again
// reports whether another tick must be scheduled after Delay.
func (p *Player) Step(now time.Time) (frame image.Image, shown bool, again bool) {
	if !p.loop || p.src == nil || p.state != StatePlaying {
		return nil, false, false
	}
	start := p.now()
	img, ok := p.src.Read()
	if !ok {
		p.loop = false
		if p.logger != nil {
			p.logger.Info("end of video", "path", p.path, "position", timestamp.Format(p.src.PositionMsec()))
		}
		p.logStats()
		p.transition(StateEnded)
		return nil, false, false
	}
	p.meter.ObserveDecode(p.now().Sub(start), now)
	shown = now.Sub(p.lastShown) >= p.framePeriod()
	p.meter.ObserveShown(shown)
	if now.Sub(p.lastStats) >= statsLogInterval {
		p.lastStats = now
		p.logStats()
	}
	if !shown {
		return nil, false, true
	}
	p.lastShown = now
	return img, true, true
}

func (p *Player) framePeriod() time.Duration {
	fps := video.DefaultFPS
	if p.src != nil {
		if f := p.src.FPS(); f > 0 {
			fps = f
		}
	}
	return time.Duration(float64(time.Second) / fps)
}

// Delay is the wait before the next Step: interval / speed, truncated to whole
// milliseconds and never below one millisecond.
func (p *Player) Delay() time.Duration {
	ms := int64(float64(p.settings.Interval.Milliseconds()) / p.speed)
	if ms < 1 {
		ms = 1
	}
	return time.Duration(ms) * time.Millisecond
}

// TogglePause pauses a playing video and records its position, or resumes a
// paused one. Resuming returns a zero Record; the caller restarts the tick chain.
func (p *Player) TogglePause() (Record, error) {
	switch p.state {
	case StatePaused:
		p.lastShown = p.now()
		p.transition(StatePlaying)
		return Record{}, nil
	case StatePlaying:
		p.transition(StatePaused)
		return p.extract()
	default:
		return Record{}, ErrNotPlaying
	}
}

func (p *Player) extract() (Record, error) {
	if p.src == nil || !p.src.Opened() {
		return Record{}, ErrNoSource
	}
	ms := p.src.PositionMsec()
	rec := Record{
		Stamp:    timestamp.Format(ms),
		Position: time.Duration(ms * float64(time.Millisecond)),
	}
	if p.rec == nil {
		return rec, nil
	}
	row, err := p.rec.Append(rec.Stamp)
	rec.Row = row
	if err != nil {
		return rec, fmt.Errorf("record timestamp: %w", err)
	}
	return rec, nil
}

// FastForward multiplies the speed by the configured step.
func (p *Player) FastForward() float64 {
	return p.setSpeed(p.speed * p.settings.SpeedStep)
}

// SlowDown divides the speed by the configured step.
func (p *Player) SlowDown() float64 {
	return p.setSpeed(p.speed / p.settings.SpeedStep)
}

func (p *Player) setSpeed(v float64) float64 {
	p.speed = clamp(v, p.settings.MinSpeed, p.settings.MaxSpeed)
	if p.logger != nil {
		p.logger.Info("playback speed", "speed", p.speed, "delay", p.Delay())
	}
	return p.speed
}

// Stop releases the source and ends the tick chain.
func (p *Player) Stop() {
	p.closeSource()
	p.loop = false
	p.transition(StateStopped)
}

// Close releases the source without a state change.
func (p *Player) Close() {
	p.closeSource()
	p.loop = false
}

func (p *Player) transition(next State) {
	prev := p.state
	if prev == next {
		return
	}
	p.state = next
	if p.logger != nil {
		p.logger.Debug("playback state transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range p.listeners {
		l(prev, next)
	}
}

func (p *Player) logStats() {
	if p.logger == nil {
		return
	}
	s := p.meter.Stats()
	p.logger.Debug("playback.stats",
		"decoded", s.Decoded,
		"shown", s.Shown,
		"dropped", s.Dropped,
		"avg_decode", s.AvgDecode,
	)
}
