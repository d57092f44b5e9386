package view

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/timestamp-extractor-go/config"
	"github.com/soocke/timestamp-extractor-go/ui/model"
	"github.com/soocke/timestamp-extractor-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are invoked on user actions.
type Handlers struct {
	Open        func()
	Play        func()
	Pause       func()
	FastForward func()
	SlowDown    func()
	Stop        func()
	Exit        func()
	Applied     func(*config.Config)
}

// RootView composes the top-level layout. It satisfies the presenter view
// contracts for playback, state and session updates.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	Session     SessionStats
	ConfigPanel ConfigPanel
	Video       VideoView

	StateLabel *TLabelWidget
	SpeedLabel *TLabelWidget
	StampLabel *TLabelWidget
	playBtn    *TButtonWidget
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	// Row 0: state, speed and last stamp
	rv.StateLabel = TLabel(Txt("State: idle"), Style(theme.StyleStateLabel))
	Grid(rv.StateLabel, Row(0), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.SpeedLabel = TLabel(Txt("Speed: 1.00x"), Style(theme.StyleMutedLabel))
	Grid(rv.SpeedLabel, Row(0), Column(1), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
	rv.StampLabel = TLabel(Txt("Last timestamp: <none>"), Style(theme.StyleStampLabel))
	Grid(rv.StampLabel, Row(0), Column(2), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	// Row 1: session stats
	rv.Session = NewSessionStats(nil, 1, 0)

	// Row 2: video
	w, hgt := 640, 480
	if rv.cfg != nil {
		w, hgt = rv.cfg.FrameWidth, rv.cfg.FrameHeight
	}
	rv.Video = NewVideoView(2, 4, w, hgt)

	// Row 3: transport buttons
	btnFrame := Frame()
	Grid(btnFrame, Row(3), Column(0), Columnspan(4), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	button := func(col int, text, style string, fn func()) *TButtonWidget {
		b := TButton(Txt(text), Style(style), Command(fn))
		Grid(b, In(btnFrame), Row(0), Column(col), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		return b
	}
	button(0, "Open Video File", theme.StylePrimaryButton, h.Open)
	rv.playBtn = button(1, "Play", theme.StylePrimaryButton, h.Play)
	button(2, "Pause and Extract Timestamp", theme.StylePrimaryButton, h.Pause)
	button(3, "Fast Forward", theme.StylePrimaryButton, h.FastForward)
	button(4, "Slow Down", theme.StylePrimaryButton, h.SlowDown)
	button(5, "Stop", theme.StyleDangerButton, h.Stop)
	button(6, "Exit", theme.StyleDangerButton, h.Exit)

	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, h.Applied)
	rv.ConfigPanel.Build(4)
}

// --- PlaybackView ---

func (rv *RootView) ShowFrame(img image.Image) {
	if rv != nil && rv.Video != nil {
		rv.Video.Show(img)
	}
}

func (rv *RootView) SetSpeed(speed float64) {
	if rv != nil && rv.SpeedLabel != nil {
		rv.SpeedLabel.Configure(Txt(fmt.Sprintf("Speed: %.2fx", speed)))
	}
}

func (rv *RootView) SetLastStamp(stamp string, row, count int) {
	if rv != nil && rv.StampLabel != nil {
		rv.StampLabel.Configure(Txt(fmt.Sprintf("Last timestamp: %s (row %d, %d saved)", stamp, row, count)))
	}
}

func (rv *RootView) ShowError(title string, err error) {
	if rv != nil && rv.logger != nil {
		rv.logger.Error(title, "error", err)
	}
	showError(title, err)
}

// AskVideoFile opens the file dialog; cancelling selects the default video.
func (rv *RootView) AskVideoFile() string {
	fallback := ""
	if rv != nil && rv.cfg != nil {
		fallback = rv.cfg.DefaultVideo
	}
	return askVideoFile(fallback)
}

// --- StateView ---

func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text))
	}
}

// ClearFrame puts the placeholder back into the video label.
func (rv *RootView) ClearFrame() {
	if rv != nil && rv.Video != nil {
		rv.Video.Reset()
	}
}

func (rv *RootView) SetPlayEnabled(enabled bool) {
	if rv == nil || rv.playBtn == nil {
		return
	}
	if enabled {
		rv.playBtn.Configure(State("normal"))
		return
	}
	rv.playBtn.Configure(State("disabled"))
}

func (rv *RootView) ConfigEditable(enabled bool) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
}

// --- SessionView ---

func (rv *RootView) SetSession(v model.SessionValues) {
	if rv == nil || rv.Session == nil {
		return
	}
	rv.Session.Set(v)
}
