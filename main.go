package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/soocke/timestamp-extractor-go/app"
	"github.com/soocke/timestamp-extractor-go/config"
)

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:      "timestamp-extractor",
		Usage:     "play a video and record pause positions into a spreadsheet",
		ArgsUsage: "[VIDEO]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "config file (.json or .yaml)", EnvVars: []string{"TSX_CONFIG"}},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output workbook path"},
			&cli.StringFlag{Name: "backend", Usage: "decoder backend: gocv or ffmpeg"},
			&cli.BoolFlag{Name: "append", Usage: "continue an existing workbook"},
			&cli.BoolFlag{Name: "debug", Usage: "verbose logging and runtime stats"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	cfgPath, cfg, loadErr := loadConfig(c)
	applyFlags(c, cfg)

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if loadErr != nil {
		logger.Warn("config load failed, using defaults", "path", cfgPath, "error", loadErr)
	}
	logger.Info("starting", "config", cfgPath, "output", cfg.OutputPath, "backend", cfg.Backend)

	application, err := app.NewApp("Video Timestamp Extractor", 900, 820, cfg, cfgPath, c.Args().First(), logger)
	if err != nil {
		return err
	}
	application.Start()
	return nil
}

func loadConfig(c *cli.Context) (string, *config.Config, error) {
	path := c.String("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return "", config.DefaultConfig(), err
		}
		path = p
	}
	cfg, err := config.Load(path)
	return path, cfg, err
}

func applyFlags(c *cli.Context, cfg *config.Config) {
	if v := c.String("output"); v != "" {
		cfg.OutputPath = v
	}
	if v := c.String("backend"); v != "" {
		cfg.Backend = v
	}
	if c.Bool("append") {
		cfg.AppendExisting = true
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}
	_ = cfg.Validate()
}
