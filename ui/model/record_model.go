package model

// RecordModel keeps the timestamps recorded during this run, in order.
// The zero value is ready to use. Accessed from the UI thread only.
type RecordModel struct {
	stamps  []string
	lastRow int
}

func NewRecordModel() *RecordModel { return &RecordModel{} }

// Add stores a recorded stamp and the spreadsheet row it was written to.
func (m *RecordModel) Add(stamp string, row int) {
	if m == nil || stamp == "" {
		return
	}
	m.stamps = append(m.stamps, stamp)
	m.lastRow = row
}

// Last returns the most recent stamp and its row, ok=false when nothing was recorded.
func (m *RecordModel) Last() (stamp string, row int, ok bool) {
	if m == nil || len(m.stamps) == 0 {
		return "", 0, false
	}
	return m.stamps[len(m.stamps)-1], m.lastRow, true
}

// Count reports how many stamps were recorded this run.
func (m *RecordModel) Count() int {
	if m == nil {
		return 0
	}
	return len(m.stamps)
}

// Stamps returns a copy of the recorded stamps.
func (m *RecordModel) Stamps() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.stamps...)
}
