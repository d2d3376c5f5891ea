package ingestion

import (
	"errors"
	"fmt"

	"go-afetyardim/types"
)

var ErrMissingCell = errors.New("missing cell")

// RowParseError is returned when a triplet can not be read.
type RowParseError struct {
	Row    string // name, active or note
	Column int
	Err    error
}

func (e *RowParseError) Error() string {
	return fmt.Sprintf("%s row, column %d: %v", e.Row, e.Column, e.Err)
}

func (e *RowParseError) Unwrap() error {
	return e.Err
}

// Triplet is what one site's three rows say about it.
type Triplet struct {
	Name       string
	MapURL     string
	NeedColors [4]*types.Color // material, human help, food, package
	Active     *types.Color
	ActiveNote string
	Note       string
}

func cellAt(row types.Row, rowName string, col int) (types.Cell, error) {
	if col < 0 || col >= len(row.Cells) {
		return types.Cell{}, &RowParseError{Row: rowName, Column: col, Err: ErrMissingCell}
	}
	return row.Cells[col], nil
}

// ParseTriplet reads the name, active and note rows of one site.
// It returns nil, nil when the name cell is empty (blank or decorative rows).
func ParseTriplet(layout Layout, nameRow, activeRow, noteRow types.Row) (*Triplet, error) {
	nameCell, err := cellAt(nameRow, "name", layout.NameCol)
	if err != nil {
		return nil, err
	}
	if nameCell.Text == "" {
		return nil, nil
	}

	t := &Triplet{
		Name:   nameCell.Text,
		MapURL: nameCell.Hyperlink,
	}

	activeCell, err := cellAt(activeRow, "active", layout.ActiveCol)
	if err != nil {
		return nil, err
	}
	t.Active = activeCell.Background
	t.ActiveNote = activeCell.Text

	for i, col := range layout.NeedCols {
		c, err := cellAt(nameRow, "name", col)
		if err != nil {
			return nil, err
		}
		t.NeedColors[i] = c.Background
	}

	noteCell, err := cellAt(noteRow, "note", layout.NoteCol)
	if err != nil {
		return nil, err
	}
	t.Note = noteCell.Text

	return t, nil
}

// recoverSiteName is only used for diagnostics when a triplet fails.
func recoverSiteName(layout Layout, nameRow types.Row) string {
	if layout.NameCol >= 0 && layout.NameCol < len(nameRow.Cells) && nameRow.Cells[layout.NameCol].Text != "" {
		return nameRow.Cells[layout.NameCol].Text
	}
	return unknownSiteName
}

const unknownSiteName = "COULD_NOT_COMPUTE_SITE_NAME"
