package model

import (
	"testing"
	"time"
)

func TestSessionModel_SplitsPlayingAndPaused(t *testing.T) {
	m := NewSessionModel()
	base := time.Unix(0, 0)
	at := func(s int) time.Time { return base.Add(time.Duration(s) * time.Second) }

	m.Play(at(0))
	if v := m.Values(at(4)); v.Playing != 4*time.Second || v.Paused != 0 || v.Total != 4*time.Second {
		t.Fatalf("while playing: %+v", v)
	}

	m.Pause(at(4))
	if v := m.Values(at(30)); v.Playing != 4*time.Second || v.Paused != 26*time.Second || v.Total != 4*time.Second {
		t.Fatalf("while paused: %+v", v)
	}

	// Resuming continues the same run.
	m.Play(at(30))
	v := m.Values(at(36))
	if v.Playing != 10*time.Second || v.Paused != 26*time.Second || v.Runs != 1 {
		t.Fatalf("after resume: %+v", v)
	}

	m.Stop(at(36))
	if v := m.Values(at(100)); v.Playing != 10*time.Second || v.Total != 10*time.Second {
		t.Fatalf("stopped values must freeze, got %+v", v)
	}

	// A second run starts from zero but keeps adding to the total.
	m.Play(at(100))
	m.Stop(at(103))
	v = m.Values(at(200))
	if v.Playing != 3*time.Second || v.Paused != 0 || v.Total != 13*time.Second || v.Runs != 2 {
		t.Fatalf("second run: %+v", v)
	}
}

func TestSessionModel_IgnoresRedundantTransitions(t *testing.T) {
	m := NewSessionModel()
	base := time.Unix(0, 0)
	m.Pause(base)
	m.Stop(base)
	if v := m.Values(base.Add(time.Second)); v != (SessionValues{}) {
		t.Fatalf("idle model changed: %+v", v)
	}
	m.Play(base)
	m.Play(base.Add(2 * time.Second))
	if v := m.Values(base.Add(3 * time.Second)); v.Playing != 3*time.Second || v.Runs != 1 {
		t.Fatalf("second Play must not restart the span: %+v", v)
	}
	m.Pause(base.Add(3 * time.Second))
	m.Stop(base.Add(5 * time.Second))
	if v := m.Values(base.Add(9 * time.Second)); v.Paused != 2*time.Second || v.Total != 3*time.Second {
		t.Fatalf("stop from pause: %+v", v)
	}
}

func TestSessionModel_NilSafe(t *testing.T) {
	var m *SessionModel
	m.Play(time.Now())
	m.Pause(time.Now())
	m.Stop(time.Now())
	if v := m.Values(time.Now()); v != (SessionValues{}) {
		t.Fatalf("nil model should report zero")
	}
}
