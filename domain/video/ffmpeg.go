package video

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"runtime"
	"sync"

	"golang.org/x/sys/execabs"
)

// ffmpegSource reads raw RGBA frames, already scaled to the display size, from an
// ffmpeg child process.
type ffmpegSource struct {
	mu     sync.Mutex
	cmd    *exec.Cmd
	stdout io.ReadCloser
	cancel context.CancelFunc
	bufs   *frameBuffers
	fps    float64
	frames int64
	done   bool
}

func openFFmpeg(ctx context.Context, path string, opts Options) (Source, error) {
	bin, err := findBinary(opts.FFmpegPath, "ffmpeg")
	if err != nil {
		return nil, err
	}
	info, err := Probe(ctx, path, opts)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", path, err)
	}
	size := opts.Size()
	ctx, cancel := context.WithCancel(ctx)
	cmd := command(ctx, bin,
		"-v", "error",
		"-i", path,
		"-an",
		"-vf", fmt.Sprintf("scale=%d:%d", size.X, size.Y),
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-",
	)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("ffmpeg stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}
	return &ffmpegSource{
		cmd:    cmd,
		stdout: stdout,
		cancel: cancel,
		bufs:   newFrameBuffers(size),
		fps:    info.FPS,
	}, nil
}

func (s *ffmpegSource) Read() (image.Image, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done || s.stdout == nil || s.bufs.frameBytes() == 0 {
		return nil, false
	}
	img := s.bufs.fill()
	if _, err := io.ReadFull(s.stdout, img.Pix); err != nil {
		s.done = true
		return nil, false
	}
	s.frames++
	return img, true
}

func (s *ffmpegSource) FPS() float64 {
	if s.fps <= 0 {
		return DefaultFPS
	}
	return s.fps
}

// PositionMsec reports the presentation time of the frame last returned by
// Read, matching OpenCV's CAP_PROP_POS_MSEC. Before the first read it is zero.
func (s *ffmpegSource) PositionMsec() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(max(s.frames-1, 0)) * 1000 / s.FPS()
}

func (s *ffmpegSource) Opened() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cmd != nil
}

func (s *ffmpegSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd == nil {
		return nil
	}
	s.cancel()
	_ = s.stdout.Close()
	err := s.cmd.Wait()
	s.cmd = nil
	s.done = true
	s.bufs.release()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) || errors.Is(err, context.Canceled) {
		// Killed on purpose.
		return nil
	}
	return err
}

// command builds a context-bound command. execabs refuses to resolve binaries
// relative to the working directory.
func command(ctx context.Context, bin string, args ...string) *exec.Cmd {
	return execabs.CommandContext(ctx, bin, args...)
}

// findBinary resolves name from an explicit path, PATH, or common install locations.
func findBinary(custom, name string) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, custom)
	}
	execName := name
	if runtime.GOOS == "windows" {
		execName = name + ".exe"
	}
	if p, err := execabs.LookPath(execName); err == nil {
		return p, nil
	}
	var common []string
	if runtime.GOOS == "windows" {
		common = []string{
			`C:\ffmpeg\bin\` + execName,
			`C:\Program Files\ffmpeg\bin\` + execName,
		}
	} else {
		common = []string{
			"/usr/bin/" + name,
			"/usr/local/bin/" + name,
			"/opt/homebrew/bin/" + name,
			"/snap/bin/" + name,
		}
	}
	for _, p := range common {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrFFmpegNotFound, name)
}
