package playback

import (
	"errors"
	"image"
	"time"
)

// State enumerates the playback states of the player.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
	StateStopped
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

var (
	ErrNotPlaying = errors.New("playback: not playing")
	ErrNoSource   = errors.New("playback: no video opened")
)

// FrameSource is the decoding contract the player drives.
type FrameSource interface {
	Read() (image.Image, bool)
	FPS() float64
	PositionMsec() float64
	Opened() bool
	Close() error
}

// Opener opens a video path.
type Opener func(path string) (FrameSource, error)

// Recorder persists one formatted timestamp and returns the row it landed in.
type Recorder interface {
	Append(value string) (int, error)
}

// Record is the outcome of one pause-and-extract action.
type Record struct {
	Stamp    string
	Row      int
	Position time.Duration
}

// StateListener is called on each successful state transition.
type StateListener func(prev, next State)

// Settings tune the playback loop.
type Settings struct {
	DefaultPath string
	Interval    time.Duration
	Speed       float64
	SpeedStep   float64
	MinSpeed    float64
	MaxSpeed    float64
}

// DefaultSettings mirrors config.DefaultConfig.
func DefaultSettings() Settings {
	return Settings{
		DefaultPath: "timestamp_test.mp4",
		Interval:    33 * time.Millisecond,
		Speed:       1,
		SpeedStep:   2,
		MinSpeed:    0.125,
		MaxSpeed:    16,
	}
}

func (s *Settings) normalize() {
	d := DefaultSettings()
	if s.DefaultPath == "" {
		s.DefaultPath = d.DefaultPath
	}
	if s.Interval <= 0 {
		s.Interval = d.Interval
	}
	if s.SpeedStep <= 1 {
		s.SpeedStep = d.SpeedStep
	}
	if s.MinSpeed <= 0 {
		s.MinSpeed = d.MinSpeed
	}
	if s.MaxSpeed <= 0 {
		s.MaxSpeed = d.MaxSpeed
	}
	if s.MaxSpeed < s.MinSpeed {
		s.MaxSpeed = s.MinSpeed
	}
	if s.Speed <= 0 {
		s.Speed = d.Speed
	}
	s.Speed = clamp(s.Speed, s.MinSpeed, s.MaxSpeed)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
