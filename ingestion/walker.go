package ingestion

import "go-afetyardim/types"

type walkState int

const (
	stateScanning walkState = iota
	stateRowOK
	stateRowFailed
	stateDone
)

func (s walkState) String() string {
	switch s {
	case stateScanning:
		return "SCANNING"
	case stateRowOK:
		return "ROW_OK"
	case stateRowFailed:
		return "ROW_FAILED"
	case stateDone:
		return "DONE"
	}
	return "INVALID"
}

const tripletStride = 3

// gridWalker steps through the data rows one triplet at a time.
// Whatever the outcome of a triplet, the cursor moves exactly one stride,
// never past the end. A trailing partial triplet is never handed out.
type gridWalker struct {
	rows   []types.Row
	cursor int
	state  walkState
}

func newGridWalker(rows []types.Row) *gridWalker {
	return &gridWalker{rows: rows, state: stateScanning}
}

func (w *gridWalker) next() (nameRow, activeRow, noteRow types.Row, ok bool) {
	if w.state == stateDone || w.cursor >= len(w.rows)-2 {
		w.state = stateDone
		return types.Row{}, types.Row{}, types.Row{}, false
	}
	w.state = stateScanning
	return w.rows[w.cursor], w.rows[w.cursor+1], w.rows[w.cursor+2], true
}

// advance records how the current triplet ended and moves the cursor.
func (w *gridWalker) advance(outcome walkState) {
	w.state = outcome
	w.cursor = min(w.cursor+tripletStride, len(w.rows))
}
