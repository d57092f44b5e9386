package video

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Eyevinn/mp4ff/mp4"
)

// Info describes the first video stream of a file.
type Info struct {
	Width    int
	Height   int
	FPS      float64
	Duration time.Duration
	Frames   int
}

// Probe reads stream metadata. MP4 files are parsed in-process; other containers,
// and MP4 files without a usable video track, are handed to ffprobe.
func Probe(ctx context.Context, path string, opts Options) (Info, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".mp4" || ext == ".m4v" || ext == ".mov" {
		f, err := os.Open(path)
		if err != nil {
			return Info{}, fmt.Errorf("open file: %w", err)
		}
		info, perr := ProbeMP4(f)
		f.Close()
		if perr == nil && info.FPS > 0 {
			return info, nil
		}
		if opts.Logger != nil {
			opts.Logger.Debug("mp4 probe fell back to ffprobe", "path", path, "error", perr)
		}
	}
	return probeFFprobe(ctx, path, opts)
}

// ProbeMP4 extracts the video track's size, rate and duration from a progressive MP4.
func ProbeMP4(r io.ReadSeeker) (Info, error) {
	file, err := mp4.DecodeFile(r)
	if err != nil {
		return Info{}, fmt.Errorf("decode mp4: %w", err)
	}
	moov := file.Moov
	if moov == nil && file.Init != nil {
		moov = file.Init.Moov
	}
	if moov == nil {
		return Info{}, errors.New("mp4: no moov box")
	}
	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		var info Info
		timescale := uint32(0)
		if trak.Mdia.Mdhd != nil {
			timescale = trak.Mdia.Mdhd.Timescale
			if timescale > 0 {
				info.Duration = time.Duration(float64(trak.Mdia.Mdhd.Duration) / float64(timescale) * float64(time.Second))
			}
		}
		if minf := trak.Mdia.Minf; minf != nil && minf.Stbl != nil {
			if stts := minf.Stbl.Stts; stts != nil {
				for _, n := range stts.SampleCount {
					info.Frames += int(n)
				}
			}
			if stsd := minf.Stbl.Stsd; stsd != nil {
				for _, child := range stsd.Children {
					if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
						info.Width, info.Height = int(vse.Width), int(vse.Height)
						break
					}
				}
			}
		}
		if info.Frames > 0 && info.Duration > 0 {
			info.FPS = float64(info.Frames) / info.Duration.Seconds()
		}
		if info.FPS <= 0 {
			return info, errors.New("mp4: no sample timing")
		}
		return info, nil
	}
	return Info{}, errors.New("mp4: no video track found")
}

type ffprobeOutput struct {
	Streams []struct {
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		RFrameRate   string `json:"r_frame_rate"`
		AvgFrameRate string `json:"avg_frame_rate"`
		Duration     string `json:"duration"`
		NbFrames     string `json:"nb_frames"`
	} `json:"streams"`
}

func probeFFprobe(ctx context.Context, path string, opts Options) (Info, error) {
	bin, err := findBinary(opts.FFprobePath, "ffprobe")
	if err != nil {
		return Info{}, err
	}
	var stdout, stderr bytes.Buffer
	cmd := command(ctx, bin,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate,avg_frame_rate,duration,nb_frames",
		"-of", "json",
		path,
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return Info{}, fmt.Errorf("ffprobe failed: %w\nstderr: %s", err, stderr.String())
	}
	return parseFFprobe(stdout.Bytes())
}

func parseFFprobe(data []byte) (Info, error) {
	var out ffprobeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return Info{}, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if len(out.Streams) == 0 {
		return Info{}, errors.New("ffprobe: no video stream")
	}
	s := out.Streams[0]
	info := Info{Width: s.Width, Height: s.Height}
	info.FPS = parseRate(s.AvgFrameRate)
	if info.FPS <= 0 {
		info.FPS = parseRate(s.RFrameRate)
	}
	if secs, err := strconv.ParseFloat(s.Duration, 64); err == nil && secs > 0 {
		info.Duration = time.Duration(secs * float64(time.Second))
	}
	if n, err := strconv.Atoi(s.NbFrames); err == nil {
		info.Frames = n
	}
	if info.FPS <= 0 {
		info.FPS = DefaultFPS
	}
	return info, nil
}

// parseRate parses ffprobe rates such as "30000/1001" or "25". Invalid input yields 0.
func parseRate(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	num, den, found := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}
