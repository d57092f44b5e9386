package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/soocke/timestamp-extractor-go/config"
	"github.com/soocke/timestamp-extractor-go/domain/playback"
	"github.com/soocke/timestamp-extractor-go/domain/sheet"
	"github.com/soocke/timestamp-extractor-go/domain/video"
	"github.com/soocke/timestamp-extractor-go/ui/model"
	"github.com/soocke/timestamp-extractor-go/ui/presenter"
	"github.com/soocke/timestamp-extractor-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config   *config.Config
	CfgPath  string
	Logger   *slog.Logger
	Session  *model.SessionModel
	Records  *model.RecordModel
	Recorder *sheet.Switch
	Player   *playback.Player
	RootView *view.RootView

	// Presenters
	PlaybackPresenter *presenter.PlaybackPresenter
	StatePresenter    *presenter.StatePresenter
	SessionPresenter  *presenter.SessionPresenter
	Loop              *presenter.Loop
}

// BuildContainer constructs all components. Nothing touches Tk until the root
// view is built; the opener decodes with ctx so Close of the app can end ffmpeg.
func BuildContainer(ctx context.Context, cfg *config.Config, cfgPath string, logger *slog.Logger) (*AppContainer, error) {
	c := &AppContainer{Config: cfg, CfgPath: cfgPath, Logger: logger}
	c.Session = model.NewSessionModel()
	c.Records = model.NewRecordModel()
	rec, err := sheet.NewSwitch(sheetOptions(cfg), logger)
	if err != nil {
		return nil, err
	}
	c.Recorder = rec
	c.Player = playback.NewPlayer(logger, openerFor(ctx, cfg, logger), rec, settingsFrom(cfg))
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	return c, nil
}

// openerFor reads cfg on each call so applied settings take effect on the next open.
func openerFor(ctx context.Context, cfg *config.Config, logger *slog.Logger) playback.Opener {
	return func(path string) (playback.FrameSource, error) {
		return video.Open(ctx, path, video.Options{
			Backend:     video.Backend(cfg.Backend),
			Width:       cfg.FrameWidth,
			Height:      cfg.FrameHeight,
			FFmpegPath:  cfg.FFmpegPath,
			FFprobePath: cfg.FFprobePath,
			Logger:      logger,
		})
	}
}

func sheetOptions(cfg *config.Config) sheet.Options {
	return sheet.Options{Path: cfg.OutputPath, Sheet: cfg.SheetName, AppendExisting: cfg.AppendExisting}
}

func settingsFrom(cfg *config.Config) playback.Settings {
	return playback.Settings{
		DefaultPath: cfg.DefaultVideo,
		Interval:    time.Duration(cfg.UpdateIntervalMs) * time.Millisecond,
		Speed:       cfg.PlaybackSpeed,
		SpeedStep:   cfg.SpeedStep,
		MinSpeed:    cfg.MinSpeed,
		MaxSpeed:    cfg.MaxSpeed,
	}
}

// wirePresenters connects presenters to the built view and player listeners.
func (c *AppContainer) wirePresenters(sched presenter.Scheduler) {
	c.PlaybackPresenter = presenter.NewPlaybackPresenter(c.Player, c.RootView, c.Records, c.Logger)
	c.PlaybackPresenter.SetOverlay(c.Config.Overlay)
	c.StatePresenter = presenter.NewStatePresenter(c.RootView)
	c.SessionPresenter = presenter.NewSessionPresenter(c.Session, c.RootView)
	c.Player.AddListener(c.StatePresenter.OnState)
	c.Player.AddListener(c.SessionPresenter.OnState)
	c.Loop = presenter.NewLoop(c.PlaybackPresenter, c.SessionPresenter, sched)
}

// applyConfig pushes edited settings into running components.
func (c *AppContainer) applyConfig(cfg *config.Config) {
	c.Player.Configure(settingsFrom(cfg))
	if c.PlaybackPresenter != nil {
		c.PlaybackPresenter.SetOverlay(cfg.Overlay)
	}
	if err := c.Recorder.Reconfigure(sheetOptions(cfg)); err != nil {
		c.Logger.Error("recorder reconfigure failed", "error", err)
	}
}

// Close releases the video and the workbook.
func (c *AppContainer) Close() {
	if c.Loop != nil {
		c.Loop.Cancel()
	}
	c.Player.Close()
	if err := c.Recorder.Close(); err != nil {
		c.Logger.Warn("close workbook", "error", err)
	}
}
