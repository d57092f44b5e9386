package view

import (
	"fmt"

	"github.com/soocke/timestamp-extractor-go/domain/timestamp"
	"github.com/soocke/timestamp-extractor-go/ui/model"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats shows the playing and paused time of the current run and the
// playing time of all runs.
type SessionStats interface {
	Set(v model.SessionValues)
}

type sessionStats struct {
	playingLbl *LabelWidget
	pausedLbl  *LabelWidget
	totalLbl   *LabelWidget
}

// NewSessionStats grids three labels on row from startCol onwards, inside parent
// when it is non-nil.
func NewSessionStats(parent *FrameWidget, row, startCol int) SessionStats {
	s := &sessionStats{playingLbl: Label(Width(18)), pausedLbl: Label(Width(18)), totalLbl: Label(Width(22))}
	for i, w := range []*LabelWidget{s.playingLbl, s.pausedLbl, s.totalLbl} {
		if parent != nil {
			Grid(w, In(parent), Row(row), Column(startCol+i), Sticky("w"), Padx("0.2m"))
			continue
		}
		Grid(w, Row(row), Column(startCol+i), Sticky("w"), Padx("0.2m"))
	}
	s.Set(model.SessionValues{})
	return s
}

func (s *sessionStats) Set(v model.SessionValues) {
	if s == nil || s.playingLbl == nil {
		return
	}
	s.playingLbl.Configure(Txt("Playing: " + timestamp.FormatDuration(v.Playing)))
	s.pausedLbl.Configure(Txt("Paused: " + timestamp.FormatDuration(v.Paused)))
	s.totalLbl.Configure(Txt(fmt.Sprintf("Total: %s (%d runs)", timestamp.FormatDuration(v.Total), v.Runs)))
}
