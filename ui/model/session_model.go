package model

import (
	"time"
)

type sessionPhase int

const (
	phaseIdle sessionPhase = iota
	phasePlaying
	phasePaused
)

// SessionValues is a snapshot of the current run and all runs so far.
type SessionValues struct {
	Playing time.Duration // playing time of the current (or last) run
	Paused  time.Duration // paused time of the current (or last) run
	Total   time.Duration // playing time of every run, including the open one
	Runs    int
}

// SessionModel splits each playback run into playing and paused spans. A run
// opens on the first Play and closes on Stop. It is fed from player transitions
// only; Values extrapolates the open span to now. The zero value is ready to use.
type SessionModel struct {
	phase  sessionPhase
	since  time.Time
	played time.Duration
	paused time.Duration
	closed time.Duration
	runs   int
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// Play opens a run, or resumes the open one after a pause.
func (m *SessionModel) Play(now time.Time) {
	if m == nil {
		return
	}
	switch m.phase {
	case phasePlaying:
		return
	case phasePaused:
		m.paused += now.Sub(m.since)
	case phaseIdle:
		m.played, m.paused = 0, 0
		m.runs++
	}
	m.phase, m.since = phasePlaying, now
}

// Pause closes the playing span. Pausing an idle run is ignored.
func (m *SessionModel) Pause(now time.Time) {
	if m == nil || m.phase != phasePlaying {
		return
	}
	m.played += now.Sub(m.since)
	m.phase, m.since = phasePaused, now
}

// Stop closes the run and adds its playing time to the total.
func (m *SessionModel) Stop(now time.Time) {
	if m == nil {
		return
	}
	switch m.phase {
	case phaseIdle:
		return
	case phasePlaying:
		m.played += now.Sub(m.since)
	case phasePaused:
		m.paused += now.Sub(m.since)
	}
	m.closed += m.played
	m.phase = phaseIdle
}

// Values reports the spans as of now.
func (m *SessionModel) Values(now time.Time) SessionValues {
	if m == nil {
		return SessionValues{}
	}
	v := SessionValues{Playing: m.played, Paused: m.paused, Total: m.closed, Runs: m.runs}
	switch m.phase {
	case phasePlaying:
		v.Playing += now.Sub(m.since)
	case phasePaused:
		v.Paused += now.Sub(m.since)
	}
	if m.phase != phaseIdle {
		v.Total += v.Playing
	}
	return v
}
