package ingestion

import (
	"context"
	"time"

	"go-afetyardim/types"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

var (
	green  = rgb(nil, ch(1.0), nil)
	gray   = rgb(ch(0.6), ch(0.6), ch(0.6))
	red    = rgb(ch(1.0), nil, nil)
	orange = rgb(ch(1.0), ch(0.6), nil)
	yellow = rgb(ch(1.0), ch(1.0), nil)
	blue   = rgb(nil, nil, ch(1.0))
)

var fixedNow = time.Date(2023, time.February, 12, 10, 0, 0, 0, time.UTC)

type siteRows struct {
	name       string
	link       string
	active     *types.Color
	activeNote string
	note       string
	needs      [4]*types.Color
}

func (s siteRows) rows() []types.Row {
	return []types.Row{
		{Cells: []types.Cell{
			{Text: s.name, Hyperlink: s.link},
			{Background: s.needs[0]},
			{Background: s.needs[1]},
			{Background: s.needs[2]},
			{Background: s.needs[3]},
		}},
		{Cells: []types.Cell{
			{},
			{Text: s.activeNote, Background: s.active},
		}},
		{Cells: []types.Cell{
			{Text: s.note},
		}},
	}
}

func headerRows() []types.Row {
	return []types.Row{
		{Cells: []types.Cell{{Text: "ANKARA YARDIM NOKTALARI"}}},
		{Cells: []types.Cell{{Text: "İsim"}, {Text: "Malzeme"}, {Text: "İnsan"}, {Text: "Gıda"}, {Text: "Koli"}}},
	}
}

func gridOf(sites ...siteRows) types.Grid {
	rows := headerRows()
	for _, s := range sites {
		rows = append(rows, s.rows()...)
	}
	return types.Grid{Rows: rows}
}

func testConfig() Config {
	return Config{City: "Ankara"}.WithDefaults()
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetSites(ctx context.Context, city string) ([]*types.Site, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Site), args.Error(1)
}

func (m *mockStore) SaveAllSites(ctx context.Context, sites []*types.Site) error {
	args := m.Called(ctx, sites)
	return args.Error(0)
}

type mockGeocoder struct {
	mock.Mock
}

func (m *mockGeocoder) Coordinates(ctx context.Context, mapURL string) (float64, float64, error) {
	args := m.Called(ctx, mapURL)
	return args.Get(0).(float64), args.Get(1).(float64), args.Error(2)
}

func newTestIngester(store SiteStore, geocoder Geocoder, logger *zap.Logger) *Ingester {
	in := NewIngester(store, geocoder, logger)
	in.now = func() time.Time { return fixedNow }
	return in
}

func siteWithUpdate(name string, status types.ActiveStatus, text string, at time.Time) *types.Site {
	s := &types.Site{ID: name, Name: name, Location: types.Location{City: "Ankara"}}
	s.SetActiveStatus(status)
	s.AppendUpdate(types.SiteUpdate{Update: text, CreateDateTime: at})
	return s
}
