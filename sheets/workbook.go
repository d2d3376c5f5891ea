package sheets

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go-afetyardim/types"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook converts an .xlsx export of the sheet into a Grid.
// sheetName may be empty, the first sheet is used then.
func ReadWorkbook(r io.Reader, sheetName string) (types.Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return types.Grid{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return types.Grid{}, fmt.Errorf("workbook has no sheets")
	}

	maxCol, maxRow, err := sheetBounds(f, sheetName)
	if err != nil {
		return types.Grid{}, err
	}

	grid := types.Grid{Rows: make([]types.Row, 0, maxRow)}
	for r := 1; r <= maxRow; r++ {
		row := types.Row{Cells: make([]types.Cell, 0, maxCol)}
		for c := 1; c <= maxCol; c++ {
			cell, err := readCell(f, sheetName, c, r)
			if err != nil {
				return types.Grid{}, err
			}
			row.Cells = append(row.Cells, cell)
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid, nil
}

// sheetBounds is the larger of the sheet dimension and the rows carrying
// values. Fill-only cells are only covered by the dimension.
func sheetBounds(f *excelize.File, sheetName string) (int, int, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read rows of %s: %w", sheetName, err)
	}
	maxCol, maxRow := 0, len(rows)
	for _, r := range rows {
		maxCol = max(maxCol, len(r))
	}

	dim, err := f.GetSheetDimension(sheetName)
	if err == nil && dim != "" {
		parts := strings.Split(dim, ":")
		if col, row, err := excelize.CellNameToCoordinates(parts[len(parts)-1]); err == nil {
			maxCol, maxRow = max(maxCol, col), max(maxRow, row)
		}
	}
	return maxCol, maxRow, nil
}

func readCell(f *excelize.File, sheetName string, col, row int) (types.Cell, error) {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return types.Cell{}, fmt.Errorf("failed to convert coordinates: %w", err)
	}

	var cell types.Cell
	if cell.Text, err = f.GetCellValue(sheetName, name); err != nil {
		return types.Cell{}, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if ok, link, err := f.GetCellHyperLink(sheetName, name); err == nil && ok {
		cell.Hyperlink = link
	}

	styleID, err := f.GetCellStyle(sheetName, name)
	if err != nil || styleID == 0 {
		return cell, nil
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return cell, nil
	}
	if style.Fill.Pattern == 1 && len(style.Fill.Color) > 0 {
		cell.Background = colorFromHex(style.Fill.Color[0])
	}
	return cell, nil
}

// colorFromHex parses RRGGBB, #RRGGBB or AARRGGBB. Zero channels are left
// unset to look the same as colors coming from the Sheets API.
func colorFromHex(s string) *types.Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 8 {
		s = s[2:]
	}
	if len(s) != 6 {
		return nil
	}
	var channels [3]*float64
	for i := range channels {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return nil
		}
		channels[i] = nonZero(float64(v) / 255)
	}
	return &types.Color{Red: channels[0], Green: channels[1], Blue: channels[2]}
}
