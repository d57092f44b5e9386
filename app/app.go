package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/soocke/timestamp-extractor-go/assets"
	"github.com/soocke/timestamp-extractor-go/config"
	"github.com/soocke/timestamp-extractor-go/debug"
	"github.com/soocke/timestamp-extractor-go/ui/theme"
	"github.com/soocke/timestamp-extractor-go/ui/view"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Application owns the Tk window and the component container.
type Application struct {
	c       *AppContainer
	logger  *slog.Logger
	initial string
	ctx     context.Context
	cancel  context.CancelFunc
	closed  bool
}

// NewApp builds all components and configures the main window. initial, when
// non-empty, is opened instead of the configured default video.
func NewApp(title string, width, height int, cfg *config.Config, cfgPath, initial string, logger *slog.Logger) (*Application, error) {
	ctx, cancel := context.WithCancel(context.Background())
	c, err := BuildContainer(ctx, cfg, cfgPath, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("build app: %w", err)
	}
	a := &Application{c: c, logger: logger, initial: initial, ctx: ctx, cancel: cancel}

	App.WmTitle(title)
	if icon := assets.IconPNG(); len(icon) > 0 {
		App.IconPhoto(NewPhoto(Data(icon)))
	}
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a, nil
}

// Start builds the UI, opens the startup video and enters the Tk main loop.
func (a *Application) Start() {
	c := a.c
	theme.SetDark(c.Config.Dark)
	c.RootView.Build(view.Handlers{
		Open:        func() { c.PlaybackPresenter.Open() },
		Play:        func() { c.PlaybackPresenter.Play() },
		Pause:       func() { c.PlaybackPresenter.TogglePause() },
		FastForward: func() { c.PlaybackPresenter.FastForward() },
		SlowDown:    func() { c.PlaybackPresenter.SlowDown() },
		Stop:        func() { c.PlaybackPresenter.Stop() },
		Exit:        a.exitHandler,
		Applied:     c.applyConfig,
	})
	c.wirePresenters(view.TkScheduler{})
	Bind(App, "<KeyPress-q>", Command(func() { c.PlaybackPresenter.Stop() }))

	if c.Config.Debug {
		debug.StartGoroutineLogger(a.ctx, 5*time.Second, a.logger)
		debug.StartMemLogger(a.ctx, 5*time.Second, a.logger)
	}

	a.openStartupVideo()
	App.Wait()
}

func (a *Application) openStartupVideo() {
	path := a.initial
	if path == "" {
		path = a.c.Config.DefaultVideo
	}
	err := a.c.PlaybackPresenter.OpenPath(path)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		a.logger.Warn("startup video not found", "path", path)
	default:
		a.c.RootView.ShowError("Open Video File", err)
	}
}

func (a *Application) exitHandler() {
	if a.closed {
		return
	}
	a.closed = true
	a.c.Close()
	a.cancel()
	a.logger.Info("exit", "recorded", a.c.Records.Count(), "workbook", a.c.Recorder.Path())
	Destroy(App)
}
