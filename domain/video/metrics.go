package video

import (
	"sync/atomic"
	"time"
)

// DecodeStats summarises playback loop behaviour for instrumentation.
type DecodeStats struct {
	Decoded   uint64
	Shown     uint64
	Dropped   uint64
	AvgDecode time.Duration
	LastFrame time.Time
}

// Meter accumulates decode counters. The zero value is ready to use.
type Meter struct {
	decoded     atomic.Uint64
	shown       atomic.Uint64
	dropped     atomic.Uint64
	decodeNanos atomic.Uint64
	lastFrame   atomic.Int64
}

// ObserveDecode records one decoded frame and how long Read took.
func (m *Meter) ObserveDecode(took time.Duration, at time.Time) {
	if m == nil {
		return
	}
	m.decoded.Add(1)
	if took > 0 {
		m.decodeNanos.Add(uint64(took.Nanoseconds()))
	}
	m.lastFrame.Store(at.UnixNano())
}

// ObserveShown records whether a decoded frame reached the screen.
func (m *Meter) ObserveShown(shown bool) {
	if m == nil {
		return
	}
	if shown {
		m.shown.Add(1)
	} else {
		m.dropped.Add(1)
	}
}

// Reset clears all counters.
func (m *Meter) Reset() {
	if m == nil {
		return
	}
	m.decoded.Store(0)
	m.shown.Store(0)
	m.dropped.Store(0)
	m.decodeNanos.Store(0)
	m.lastFrame.Store(0)
}

// Stats returns a snapshot of the counters.
func (m *Meter) Stats() DecodeStats {
	if m == nil {
		return DecodeStats{}
	}
	decoded := m.decoded.Load()
	var avg time.Duration
	if total := m.decodeNanos.Load(); decoded > 0 && total > 0 {
		avg = time.Duration(total / decoded)
	}
	var last time.Time
	if ns := m.lastFrame.Load(); ns != 0 {
		last = time.Unix(0, ns)
	}
	return DecodeStats{
		Decoded:   decoded,
		Shown:     m.shown.Load(),
		Dropped:   m.dropped.Load(),
		AvgDecode: avg,
		LastFrame: last,
	}
}
