package presenter

import (
	"errors"
	"image"
	"strconv"
	"testing"
	"time"

	"github.com/soocke/timestamp-extractor-go/domain/playback"
	"github.com/soocke/timestamp-extractor-go/ui/model"
)

type mockPlayer struct {
	state      playback.State
	opened     []string
	openErr    error
	playErr    error
	record     playback.Record
	recordErr  error
	frames     int // frames left before end of stream
	speed      float64
	delay      time.Duration
	stops      int
	steps      int
	showEvery  int
	positionMs float64
}

func newMockPlayer(frames int) *mockPlayer {
	return &mockPlayer{state: playback.StateIdle, frames: frames, speed: 1, delay: 33 * time.Millisecond, showEvery: 1}
}

func (m *mockPlayer) Open(path string) error {
	m.opened = append(m.opened, path)
	m.state = playback.StateIdle
	return m.openErr
}

func (m *mockPlayer) Play() (bool, error) {
	if m.playErr != nil {
		return false, m.playErr
	}
	if m.state == playback.StatePlaying || m.state == playback.StatePaused {
		return false, nil
	}
	m.state = playback.StatePlaying
	return true, nil
}

func (m *mockPlayer) Step(now time.Time) (image.Image, bool, bool) {
	if m.state != playback.StatePlaying {
		return nil, false, false
	}
	m.steps++
	if m.frames == 0 {
		m.state = playback.StateEnded
		return nil, false, false
	}
	m.frames--
	if m.steps%m.showEvery != 0 {
		return nil, false, true
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), true, true
}

func (m *mockPlayer) Delay() time.Duration { return m.delay }

func (m *mockPlayer) TogglePause() (playback.Record, error) {
	switch m.state {
	case playback.StatePlaying:
		m.state = playback.StatePaused
		return m.record, m.recordErr
	case playback.StatePaused:
		m.state = playback.StatePlaying
		return playback.Record{}, nil
	}
	return playback.Record{}, playback.ErrNotPlaying
}

func (m *mockPlayer) FastForward() float64  { m.speed *= 2; return m.speed }
func (m *mockPlayer) SlowDown() float64     { m.speed /= 2; return m.speed }
func (m *mockPlayer) Stop()                 { m.stops++; m.state = playback.StateStopped }
func (m *mockPlayer) State() playback.State { return m.state }
func (m *mockPlayer) PositionMsec() float64 { return m.positionMs }
func (m *mockPlayer) Playing() bool         { return m.state == playback.StatePlaying }

type mockPlaybackView struct {
	frames    int
	speeds    []float64
	stamps    []string
	rows      []int
	counts    []int
	errTitles []string
	answer    string
}

func (v *mockPlaybackView) ShowFrame(image.Image)       { v.frames++ }
func (v *mockPlaybackView) SetSpeed(s float64)          { v.speeds = append(v.speeds, s) }
func (v *mockPlaybackView) ShowError(t string, _ error) { v.errTitles = append(v.errTitles, t) }
func (v *mockPlaybackView) AskVideoFile() string        { return v.answer }
func (v *mockPlaybackView) SetLastStamp(stamp string, row, count int) {
	v.stamps = append(v.stamps, stamp)
	v.rows = append(v.rows, row)
	v.counts = append(v.counts, count)
}

// manualScheduler holds scheduled callbacks until fire is called.
type manualScheduler struct {
	next     int
	pending  map[string]func()
	delays   []time.Duration
	canceled int
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{pending: map[string]func(){}}
}

func (s *manualScheduler) After(d time.Duration, fn func()) string {
	s.next++
	id := "after#" + strconv.Itoa(s.next)
	s.pending[id] = fn
	s.delays = append(s.delays, d)
	return id
}

func (s *manualScheduler) Cancel(id string) {
	if _, ok := s.pending[id]; ok {
		delete(s.pending, id)
		s.canceled++
	}
}

// fire runs every pending callback once and reports how many ran.
func (s *manualScheduler) fire() int {
	fns := s.pending
	s.pending = map[string]func(){}
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

type fixture struct {
	player *mockPlayer
	view   *mockPlaybackView
	sched  *manualScheduler
	pp     *PlaybackPresenter
	loop   *Loop
	recs   *model.RecordModel
}

func newFixture(frames int) *fixture {
	f := &fixture{
		player: newMockPlayer(frames),
		view:   &mockPlaybackView{},
		sched:  newManualScheduler(),
		recs:   model.NewRecordModel(),
	}
	f.pp = NewPlaybackPresenter(f.player, f.view, f.recs, nil)
	f.loop = NewLoop(f.pp, nil, f.sched)
	return f
}

func TestPlaybackPresenter_PlayRunsUntilEnd(t *testing.T) {
	f := newFixture(3)
	f.pp.Play()
	if f.view.frames != 1 || !f.loop.Pending() {
		t.Fatalf("first tick: frames=%d pending=%v", f.view.frames, f.loop.Pending())
	}
	for f.sched.fire() > 0 {
	}
	if f.view.frames != 3 {
		t.Fatalf("expected 3 frames shown, got %d", f.view.frames)
	}
	if f.player.state != playback.StateEnded || f.loop.Pending() {
		t.Fatalf("expected ended without pending tick, state=%v pending=%v", f.player.state, f.loop.Pending())
	}
	for _, d := range f.sched.delays {
		if d != 33*time.Millisecond {
			t.Fatalf("unexpected delay %v", d)
		}
	}
}

func TestPlaybackPresenter_PlayTwiceKeepsOneTimer(t *testing.T) {
	f := newFixture(100)
	f.pp.Play()
	f.pp.Play()
	if len(f.sched.pending) != 1 {
		t.Fatalf("expected one pending tick, got %d", len(f.sched.pending))
	}
}

func TestPlaybackPresenter_PauseRecordsAndResumes(t *testing.T) {
	f := newFixture(100)
	f.player.record = playback.Record{Stamp: "00:01:05", Row: 1}
	f.pp.Play()
	f.pp.TogglePause()
	if len(f.view.stamps) != 1 || f.view.stamps[0] != "00:01:05" || f.view.rows[0] != 1 || f.view.counts[0] != 1 {
		t.Fatalf("unexpected stamp view calls: %+v", f.view)
	}
	if f.recs.Count() != 1 {
		t.Fatalf("expected record model to hold 1 stamp, got %d", f.recs.Count())
	}
	// the pending tick sees a paused player and stops the chain
	f.sched.fire()
	if f.loop.Pending() {
		t.Fatalf("paused player should not re-schedule")
	}
	framesBefore := f.view.frames
	f.pp.TogglePause()
	if f.player.state != playback.StatePlaying || !f.loop.Pending() {
		t.Fatalf("resume should restart the loop, state=%v pending=%v", f.player.state, f.loop.Pending())
	}
	if f.view.frames != framesBefore+1 {
		t.Fatalf("resume should tick immediately")
	}
	if len(f.view.stamps) != 1 {
		t.Fatalf("resume must not record, got %v", f.view.stamps)
	}
}

func TestPlaybackPresenter_QuickResumeDoesNotDoubleLoop(t *testing.T) {
	f := newFixture(100)
	f.pp.Play()
	f.pp.TogglePause()
	f.pp.TogglePause() // resumed before the pending tick fired
	if len(f.sched.pending) != 1 {
		t.Fatalf("expected a single pending tick, got %d", len(f.sched.pending))
	}
}

func TestPlaybackPresenter_PauseWhenIdleIgnored(t *testing.T) {
	f := newFixture(10)
	f.pp.TogglePause()
	if len(f.view.stamps) != 0 || len(f.view.errTitles) != 0 || f.loop.Pending() {
		t.Fatalf("pause while idle should be a no-op: %+v", f.view)
	}
}

func TestPlaybackPresenter_RecorderErrorShown(t *testing.T) {
	f := newFixture(10)
	f.player.record = playback.Record{Stamp: "00:00:01"}
	f.player.recordErr = errors.New("disk full")
	f.pp.Play()
	f.pp.TogglePause()
	if len(f.view.errTitles) != 1 || f.recs.Count() != 0 {
		t.Fatalf("expected error and no record, errs=%v count=%d", f.view.errTitles, f.recs.Count())
	}
}

func TestPlaybackPresenter_StopCancelsTimer(t *testing.T) {
	f := newFixture(10)
	f.pp.Play()
	f.pp.Stop()
	if f.loop.Pending() || f.sched.canceled != 1 || f.player.stops != 1 {
		t.Fatalf("stop: pending=%v canceled=%d stops=%d", f.loop.Pending(), f.sched.canceled, f.player.stops)
	}
}

func TestPlaybackPresenter_OpenUsesDialogAnswer(t *testing.T) {
	f := newFixture(10)
	f.view.answer = "clip.mp4"
	f.pp.Play()
	f.pp.Open()
	if len(f.player.opened) != 1 || f.player.opened[0] != "clip.mp4" {
		t.Fatalf("unexpected opened paths %v", f.player.opened)
	}
	if f.loop.Pending() {
		t.Fatalf("open should cancel the running loop")
	}
}

func TestPlaybackPresenter_OpenErrorShown(t *testing.T) {
	f := newFixture(10)
	f.player.openErr = errors.New("no such file")
	f.pp.Open()
	if len(f.view.errTitles) != 1 || f.view.errTitles[0] != "Open Video File" {
		t.Fatalf("expected open error, got %v", f.view.errTitles)
	}
}

func TestPlaybackPresenter_PlayErrorShown(t *testing.T) {
	f := newFixture(10)
	f.player.playErr = errors.New("decoder gone")
	f.pp.Play()
	if len(f.view.errTitles) != 1 || f.loop.Pending() {
		t.Fatalf("expected play error without loop, errs=%v", f.view.errTitles)
	}
}

func TestPlaybackPresenter_SpeedPushedToView(t *testing.T) {
	f := newFixture(10)
	f.pp.FastForward()
	f.pp.FastForward()
	f.pp.SlowDown()
	want := []float64{2, 4, 2}
	if len(f.view.speeds) != len(want) {
		t.Fatalf("speeds %v", f.view.speeds)
	}
	for i := range want {
		if f.view.speeds[i] != want[i] {
			t.Fatalf("speeds %v want %v", f.view.speeds, want)
		}
	}
}

func TestPlaybackPresenter_SkippedFramesNotShown(t *testing.T) {
	f := newFixture(6)
	f.player.showEvery = 2
	f.pp.Play()
	for f.sched.fire() > 0 {
	}
	if f.view.frames != 3 {
		t.Fatalf("expected 3 of 6 frames shown, got %d", f.view.frames)
	}
}

func TestPlaybackPresenter_NilSafe(t *testing.T) {
	var p *PlaybackPresenter
	p.Play()
	p.TogglePause()
	p.Stop()
	if p.Step(time.Now()) {
		t.Fatalf("nil presenter must not continue")
	}
	var l *Loop
	l.Kick()
	l.Tick()
	l.Cancel()
}

type mockStateView struct {
	label       string
	playEnabled bool
	editable    bool
	calls       int
	cleared     int
}

func (v *mockStateView) SetStateLabel(s string) { v.label = s; v.calls++ }
func (v *mockStateView) SetPlayEnabled(b bool)  { v.playEnabled = b }
func (v *mockStateView) ConfigEditable(b bool)  { v.editable = b }
func (v *mockStateView) ClearFrame()            { v.cleared++ }

func TestStatePresenter_ReflectsTransitions(t *testing.T) {
	v := &mockStateView{}
	p := NewStatePresenter(v)
	p.OnState(playback.StateIdle, playback.StatePlaying)
	if v.label != "State: playing" || v.playEnabled || v.editable {
		t.Fatalf("playing: %+v", v)
	}
	p.OnState(playback.StatePlaying, playback.StatePaused)
	if v.label != "State: paused" || v.editable {
		t.Fatalf("paused: %+v", v)
	}
	p.OnState(playback.StatePaused, playback.StateStopped)
	if v.label != "State: stopped" || !v.playEnabled || !v.editable || v.cleared != 1 {
		t.Fatalf("stopped: %+v", v)
	}
	if p.Latest() != playback.StateStopped {
		t.Fatalf("latest %v", p.Latest())
	}
}

type mockSessionView struct {
	calls int
	last  model.SessionValues
}

func (v *mockSessionView) SetSession(sv model.SessionValues) { v.calls++; v.last = sv }

func TestSessionPresenter_ThrottlesToSeconds(t *testing.T) {
	v := &mockSessionView{}
	p := NewSessionPresenter(model.NewSessionModel(), v)
	base := time.Unix(1000, 0)
	p.now = func() time.Time { return base }
	p.OnState(playback.StateIdle, playback.StatePlaying)
	p.Tick(base.Add(300 * time.Millisecond))
	p.Tick(base.Add(900 * time.Millisecond))
	if v.calls != 1 {
		t.Fatalf("expected one push within the first second, got %d", v.calls)
	}
	p.Tick(base.Add(1100 * time.Millisecond))
	if v.calls != 2 || v.last.Playing < time.Second {
		t.Fatalf("expected push after a second, calls=%d values=%+v", v.calls, v.last)
	}
}

func TestSessionPresenter_FollowsTransitions(t *testing.T) {
	v := &mockSessionView{}
	p := NewSessionPresenter(model.NewSessionModel(), v)
	base := time.Unix(1000, 0)
	clock := base
	p.now = func() time.Time { return clock }

	p.OnState(playback.StateIdle, playback.StatePlaying)
	clock = base.Add(5 * time.Second)
	p.OnState(playback.StatePlaying, playback.StatePaused)
	p.Tick(base.Add(9 * time.Second))
	if v.last.Playing != 5*time.Second || v.last.Paused != 4*time.Second || v.last.Total != 5*time.Second {
		t.Fatalf("paused time must not count as playing: %+v", v.last)
	}

	clock = base.Add(10 * time.Second)
	p.OnState(playback.StatePaused, playback.StatePlaying)
	clock = base.Add(12 * time.Second)
	p.OnState(playback.StatePlaying, playback.StateEnded)
	if v.last.Playing != 7*time.Second || v.last.Paused != 5*time.Second || v.last.Total != 7*time.Second {
		t.Fatalf("ended run: %+v", v.last)
	}

	clock = base.Add(20 * time.Second)
	p.OnState(playback.StateEnded, playback.StatePlaying)
	p.Tick(base.Add(22 * time.Second))
	if v.last.Playing != 2*time.Second || v.last.Total != 9*time.Second || v.last.Runs != 2 {
		t.Fatalf("second run: %+v", v.last)
	}
}
