package types

// Color is a cell background. A nil channel was not set in the sheet.
type Color struct {
	Red   *float64 `json:"red,omitempty"`
	Green *float64 `json:"green,omitempty"`
	Blue  *float64 `json:"blue,omitempty"`
}

// Channel returns a pointer to v, handy for building colors.
func Channel(v float64) *float64 {
	return &v
}

type Cell struct {
	Text       string `json:"text,omitempty"`
	Hyperlink  string `json:"hyperlink,omitempty"`
	Background *Color `json:"background,omitempty"`
}

type Row struct {
	Cells []Cell `json:"cells"`
}

// Grid is a snapshot of one spreadsheet range, header rows included.
type Grid struct {
	Rows []Row `json:"rows"`
}
