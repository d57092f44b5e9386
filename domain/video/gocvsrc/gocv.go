// Package gocvsrc registers the OpenCV decoding backend. Import it for its side
// effect; it needs OpenCV and cgo.
package gocvsrc

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/soocke/timestamp-extractor-go/domain/video"
)

func init() {
	video.Register(video.BackendGoCV, Open)
}

type source struct {
	capture *gocv.VideoCapture
	frame   gocv.Mat
	resized gocv.Mat
	size    image.Point
}

// Open opens path with OpenCV's VideoCapture.
func Open(_ context.Context, path string, opts video.Options) (video.Source, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("open video file %s: %w", path, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("%w: %s", video.ErrNotOpened, path)
	}
	return &source{
		capture: capture,
		frame:   gocv.NewMat(),
		resized: gocv.NewMat(),
		size:    opts.Size(),
	}, nil
}

func (s *source) Read() (image.Image, bool) {
	if s.capture == nil {
		return nil, false
	}
	if ok := s.capture.Read(&s.frame); !ok || s.frame.Empty() {
		return nil, false
	}
	gocv.Resize(s.frame, &s.resized, s.size, 0, 0, gocv.InterpolationLinear)
	// ToImage converts the BGR mat into an RGBA image.
	img, err := s.resized.ToImage()
	if err != nil {
		return nil, false
	}
	return img, true
}

func (s *source) FPS() float64 {
	if s.capture == nil {
		return video.DefaultFPS
	}
	fps := s.capture.Get(gocv.VideoCaptureFPS)
	if fps <= 0 {
		return video.DefaultFPS
	}
	return fps
}

func (s *source) PositionMsec() float64 {
	if s.capture == nil {
		return 0
	}
	return s.capture.Get(gocv.VideoCapturePosMsec)
}

func (s *source) Opened() bool { return s.capture != nil && s.capture.IsOpened() }

func (s *source) Close() error {
	if s.capture == nil {
		return nil
	}
	s.frame.Close()
	s.resized.Close()
	err := s.capture.Close()
	s.capture = nil
	return err
}
