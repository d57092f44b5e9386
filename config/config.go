package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// AppName names the per-user config directory.
const AppName = "timestamp-extractor"

// Config holds runtime configuration for playback and timestamp recording.
// Fields may be loaded from a JSON (or YAML) file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug" yaml:"debug"`

	// Input / output
	DefaultVideo   string `json:"default_video" yaml:"default_video"`
	OutputPath     string `json:"output_path" yaml:"output_path"`
	SheetName      string `json:"sheet_name" yaml:"sheet_name"`
	AppendExisting bool   `json:"append_existing" yaml:"append_existing"`

	// Display
	FrameWidth  int  `json:"frame_width" yaml:"frame_width"`
	FrameHeight int  `json:"frame_height" yaml:"frame_height"`
	Overlay     bool `json:"overlay" yaml:"overlay"`
	Dark        bool `json:"dark" yaml:"dark"`

	// Playback loop
	UpdateIntervalMs int     `json:"update_interval_ms" yaml:"update_interval_ms"`
	PlaybackSpeed    float64 `json:"playback_speed" yaml:"playback_speed"`
	SpeedStep        float64 `json:"speed_step" yaml:"speed_step"`
	MinSpeed         float64 `json:"min_speed" yaml:"min_speed"`
	MaxSpeed         float64 `json:"max_speed" yaml:"max_speed"`

	// Decoding
	Backend     string `json:"backend" yaml:"backend"`
	FFmpegPath  string `json:"ffmpeg_path" yaml:"ffmpeg_path"`
	FFprobePath string `json:"ffprobe_path" yaml:"ffprobe_path"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:            false,
		DefaultVideo:     "timestamp_test.mp4",
		OutputPath:       "timestamps.xlsx",
		SheetName:        "Sheet",
		AppendExisting:   false,
		FrameWidth:       640,
		FrameHeight:      480,
		Overlay:          false,
		Dark:             false,
		UpdateIntervalMs: 33,
		PlaybackSpeed:    1.0,
		SpeedStep:        2.0,
		MinSpeed:         0.125,
		MaxSpeed:         16,
		Backend:          "gocv",
		FFmpegPath:       "",
		FFprobePath:      "",
	}
}

// DefaultPath returns the per-user config file location, creating parent dirs as needed.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(filepath.Join(AppName, "config.json"))
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	d := DefaultConfig()
	if strings.TrimSpace(c.DefaultVideo) == "" {
		c.DefaultVideo = d.DefaultVideo
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		c.OutputPath = d.OutputPath
	}
	if strings.TrimSpace(c.SheetName) == "" {
		c.SheetName = d.SheetName
	}
	if c.FrameWidth <= 0 {
		c.FrameWidth = d.FrameWidth
	}
	if c.FrameHeight <= 0 {
		c.FrameHeight = d.FrameHeight
	}
	if c.UpdateIntervalMs <= 0 {
		c.UpdateIntervalMs = d.UpdateIntervalMs
	}
	if c.MinSpeed <= 0 {
		c.MinSpeed = d.MinSpeed
	}
	if c.MaxSpeed <= 0 || c.MaxSpeed < c.MinSpeed {
		c.MaxSpeed = c.MinSpeed * 128
	}
	if c.PlaybackSpeed <= 0 {
		c.PlaybackSpeed = d.PlaybackSpeed
	}
	if c.PlaybackSpeed < c.MinSpeed {
		c.PlaybackSpeed = c.MinSpeed
	}
	if c.PlaybackSpeed > c.MaxSpeed {
		c.PlaybackSpeed = c.MaxSpeed
	}
	if c.SpeedStep <= 1 {
		c.SpeedStep = d.SpeedStep
	}
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend == "" {
		c.Backend = d.Backend
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load attempts to read configuration from the given file path. If the file does not
// exist it returns DefaultConfig(). On decode error it returns defaults with the error.
// Paths ending in .yaml or .yml are decoded as YAML, everything else as JSON.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if isYAML(path) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return DefaultConfig(), err
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path, in YAML for .yaml/.yml paths and
// indented JSON otherwise.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if isYAML(path) {
		data, err := yaml.Marshal(c)
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0o644)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
