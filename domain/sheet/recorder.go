// Package sheet appends extracted timestamps to a single-column xlsx workbook.
package sheet

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"
)

const (
	DefaultPath  = "timestamps.xlsx"
	DefaultSheet = "Sheet"
)

// Options controls where and how rows are written.
type Options struct {
	Path  string
	Sheet string
	// AppendExisting continues after the last row of an existing workbook instead of
	// starting from an empty one and replacing the file on first save.
	AppendExisting bool
}

// Recorder holds the workbook in memory and rewrites the whole file after every
// append. The file is not touched until the first Append.
type Recorder struct {
	mu     sync.Mutex
	file   *excelize.File
	path   string
	sheet  string
	rows   int
	logger *slog.Logger
}

// NewRecorder prepares an in-memory workbook for opts.Path.
func NewRecorder(opts Options, logger *slog.Logger) (*Recorder, error) {
	if opts.Path == "" {
		opts.Path = DefaultPath
	}
	if opts.Sheet == "" {
		opts.Sheet = DefaultSheet
	}
	r := &Recorder{path: opts.Path, sheet: opts.Sheet, logger: logger}
	if opts.AppendExisting {
		if _, err := os.Stat(opts.Path); err == nil {
			if err := r.openExisting(); err != nil {
				return nil, err
			}
			return r, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat %s: %w", opts.Path, err)
		}
	}
	f := excelize.NewFile()
	if first := f.GetSheetName(0); first != opts.Sheet {
		if err := f.SetSheetName(first, opts.Sheet); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("rename sheet: %w", err)
		}
	}
	r.file = f
	return r, nil
}

func (r *Recorder) openExisting() error {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return fmt.Errorf("open workbook %s: %w", r.path, err)
	}
	idx, err := f.GetSheetIndex(r.sheet)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("lookup sheet %q: %w", r.sheet, err)
	}
	if idx < 0 {
		if _, err := f.NewSheet(r.sheet); err != nil {
			_ = f.Close()
			return fmt.Errorf("create sheet %q: %w", r.sheet, err)
		}
	} else {
		rows, err := f.GetRows(r.sheet)
		if err != nil {
			_ = f.Close()
			return fmt.Errorf("read rows: %w", err)
		}
		r.rows = len(rows)
	}
	r.file = f
	if r.logger != nil {
		r.logger.Info("continuing workbook", "path", r.path, "sheet", r.sheet, "rows", r.rows)
	}
	return nil
}

// Append writes value into column A of the next row, saves the workbook and returns
// the 1-based row number written.
func (r *Recorder) Append(value string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return 0, errors.New("sheet: recorder closed")
	}
	row := r.rows + 1
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return 0, err
	}
	if err := r.file.SetCellStr(r.sheet, cell, value); err != nil {
		return 0, fmt.Errorf("set %s: %w", cell, err)
	}
	if err := r.file.SaveAs(r.path); err != nil {
		// Keep the in-memory row so the next successful save includes it.
		r.rows = row
		return row, fmt.Errorf("save %s: %w", r.path, err)
	}
	r.rows = row
	if r.logger != nil {
		size := ""
		if st, err := os.Stat(r.path); err == nil {
			size = humanize.Bytes(uint64(st.Size()))
		}
		r.logger.Info("timestamp recorded", "value", value, "row", row, "path", r.path, "size", size)
	}
	return row, nil
}

// UseSheet moves writing to name within the same workbook. An existing sheet of
// that name is continued after its last row; otherwise the current sheet is
// renamed so the rows already written stay with it.
func (r *Recorder) UseSheet(name string) error {
	if name == "" {
		name = DefaultSheet
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return errors.New("sheet: recorder closed")
	}
	if name == r.sheet {
		return nil
	}
	idx, err := r.file.GetSheetIndex(name)
	if err != nil {
		return fmt.Errorf("lookup sheet %q: %w", name, err)
	}
	if idx >= 0 {
		rows, err := r.file.GetRows(name)
		if err != nil {
			return fmt.Errorf("read rows: %w", err)
		}
		r.sheet, r.rows = name, len(rows)
		return nil
	}
	if err := r.file.SetSheetName(r.sheet, name); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	r.sheet = name
	if r.rows == 0 {
		return nil
	}
	if err := r.file.SaveAs(r.path); err != nil {
		return fmt.Errorf("save %s: %w", r.path, err)
	}
	return nil
}

// Sheet returns the sheet rows are written to.
func (r *Recorder) Sheet() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sheet
}

// Rows reports how many rows the sheet holds.
func (r *Recorder) Rows() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows
}

// Path returns the output file path.
func (r *Recorder) Path() string { return r.path }

// Close releases the workbook. Further appends fail.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
