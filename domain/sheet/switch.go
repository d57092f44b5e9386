package sheet

import (
	"log/slog"
	"path/filepath"
	"sync"
)

// Switch is a Recorder whose target workbook can be replaced at runtime. Appends
// go to the current recorder; Reconfigure replaces it when the path or append
// mode differs.
type Switch struct {
	mu     sync.Mutex
	opts   Options
	cur    *Recorder
	logger *slog.Logger
}

func NewSwitch(opts Options, logger *slog.Logger) (*Switch, error) {
	r, err := NewRecorder(opts, logger)
	if err != nil {
		return nil, err
	}
	return &Switch{opts: opts, cur: r, logger: logger}, nil
}

func (s *Switch) Append(value string) (int, error) {
	s.mu.Lock()
	r := s.cur
	s.mu.Unlock()
	return r.Append(value)
}

// Reconfigure switches to opts. Unchanged options keep the current workbook.
// Once rows are written, a change that keeps the path only moves to the new
// sheet inside the open workbook. On failure the previous recorder stays active.
func (s *Switch) Reconfigure(opts Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if opts == s.opts {
		return nil
	}
	if samePath(opts.Path, s.opts.Path) && s.cur.Rows() > 0 {
		if err := s.cur.UseSheet(opts.Sheet); err != nil {
			return err
		}
		s.opts = opts
		if s.logger != nil {
			s.logger.Info("sheet switched", "path", s.cur.Path(), "sheet", s.cur.Sheet(), "rows", s.cur.Rows())
		}
		return nil
	}
	next, err := NewRecorder(opts, s.logger)
	if err != nil {
		return err
	}
	prev := s.cur
	s.cur, s.opts = next, opts
	if s.logger != nil {
		s.logger.Info("workbook switched", "from", prev.Path(), "to", next.Path())
	}
	return prev.Close()
}

func samePath(a, b string) bool {
	if a == "" {
		a = DefaultPath
	}
	if b == "" {
		b = DefaultPath
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

// Path returns the current workbook path.
func (s *Switch) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.Path()
}

func (s *Switch) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.Close()
}
