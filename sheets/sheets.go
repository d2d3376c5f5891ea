package sheets

import (
	"context"
	"fmt"
	"sync"

	"go-afetyardim/types"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// sheetsService is a singleton Sheets API client.
var (
	sheetsService *gsheets.Service
	serviceOnce   sync.Once
	serviceErr    error
)

// InitSheetsService creates the Sheets client once, authenticated by API key.
func InitSheetsService(ctx context.Context, apiKey string) (*gsheets.Service, error) {
	serviceOnce.Do(func() {
		if apiKey == "" {
			serviceErr = fmt.Errorf("GOOGLE_API_KEY environment variable not set")
			return
		}
		sheetsService, serviceErr = gsheets.NewService(ctx, option.WithAPIKey(apiKey))
	})
	return sheetsService, serviceErr
}

// Client fetches spreadsheet ranges with their formatting.
type Client struct {
	service *gsheets.Service
}

func NewClient(service *gsheets.Service) *Client {
	return &Client{service: service}
}

// FetchGrid returns the first sheet's first block of range rng,
// with background colors and hyperlinks included.
func (c *Client) FetchGrid(ctx context.Context, spreadsheetID, rng string) (types.Grid, error) {
	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).
		Ranges(rng).
		IncludeGridData(true).
		Context(ctx).
		Do()
	if err != nil {
		return types.Grid{}, fmt.Errorf("failed to get spreadsheet %s: %w", spreadsheetID, err)
	}
	return GridFromSpreadsheet(spreadsheet)
}

// GridFromSpreadsheet converts an API response into a Grid.
func GridFromSpreadsheet(spreadsheet *gsheets.Spreadsheet) (types.Grid, error) {
	if spreadsheet == nil || len(spreadsheet.Sheets) == 0 || len(spreadsheet.Sheets[0].Data) == 0 {
		return types.Grid{}, fmt.Errorf("spreadsheet has no grid data")
	}

	rowData := spreadsheet.Sheets[0].Data[0].RowData
	grid := types.Grid{Rows: make([]types.Row, 0, len(rowData))}
	for _, rd := range rowData {
		var row types.Row
		if rd != nil {
			row.Cells = make([]types.Cell, 0, len(rd.Values))
			for _, cd := range rd.Values {
				row.Cells = append(row.Cells, cellFromData(cd))
			}
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid, nil
}

func cellFromData(cd *gsheets.CellData) types.Cell {
	if cd == nil {
		return types.Cell{}
	}
	cell := types.Cell{
		Text:      cd.FormattedValue,
		Hyperlink: cd.Hyperlink,
	}
	if cd.UserEnteredFormat != nil {
		cell.Background = colorFromAPI(cd.UserEnteredFormat.BackgroundColor)
	}
	return cell
}

// The API leaves zero channels out of the response, so a zero here means the
// channel was not set.
func colorFromAPI(c *gsheets.Color) *types.Color {
	if c == nil {
		return nil
	}
	return &types.Color{
		Red:   nonZero(c.Red),
		Green: nonZero(c.Green),
		Blue:  nonZero(c.Blue),
	}
}

func nonZero(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
