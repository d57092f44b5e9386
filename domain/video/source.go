// Package video opens video files and decodes frames resized for display.
package video

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Backend names a decoding implementation.
type Backend string

const (
	// BackendGoCV decodes through OpenCV's VideoCapture.
	BackendGoCV Backend = "gocv"
	// BackendFFmpeg decodes by piping raw frames out of an ffmpeg process.
	BackendFFmpeg Backend = "ffmpeg"
)

var (
	ErrUnknownBackend     = errors.New("video: unknown backend")
	ErrBackendUnavailable = errors.New("video: backend not compiled in")
	ErrFFmpegNotFound     = errors.New("video: ffmpeg not found")
	ErrNotOpened          = errors.New("video: source could not be opened")
)

// DefaultFPS is assumed when a source reports no usable frame rate.
const DefaultFPS = 30.0

// Source yields frames already resized to the display size.
// A frame returned by Read is only valid until the next Read or Close.
type Source interface {
	Read() (image.Image, bool)
	FPS() float64
	PositionMsec() float64
	Opened() bool
	Close() error
}

// Options configures Open and Probe.
type Options struct {
	Backend     Backend
	Width       int
	Height      int
	FFmpegPath  string
	FFprobePath string
	Logger      *slog.Logger
}

// Size returns the display size, 640x480 when unset.
func (o Options) Size() image.Point {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 640
	}
	if h <= 0 {
		h = 480
	}
	return image.Pt(w, h)
}

// ParseBackend maps a config string onto a Backend. Empty selects gocv.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendGoCV:
		return BackendGoCV, nil
	case BackendFFmpeg:
		return BackendFFmpeg, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}

// OpenFunc opens path for one backend.
type OpenFunc func(ctx context.Context, path string, opts Options) (Source, error)

var (
	backendsMu sync.RWMutex
	backends   = map[Backend]OpenFunc{BackendFFmpeg: openFFmpeg}
)

// Register makes a backend available to Open. Backends needing cgo register
// themselves from their own package so the rest of the tree builds without them.
func Register(b Backend, fn OpenFunc) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[b] = fn
}

func lookup(b Backend) (OpenFunc, bool) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	fn, ok := backends[b]
	return fn, ok
}

// Open opens path with the backend selected in opts.
func Open(ctx context.Context, path string, opts Options) (Source, error) {
	backend, err := ParseBackend(string(opts.Backend))
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open video %s: %w", path, err)
	}
	open, ok := lookup(backend)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBackendUnavailable, backend)
	}
	src, err := open(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	if opts.Logger != nil {
		opts.Logger.Info("video opened", "path", path, "backend", string(backend), "fps", src.FPS())
	}
	return src, nil
}
