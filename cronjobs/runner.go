package cronjobs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go-afetyardim/ingestion"
	"go-afetyardim/types"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const runTimeout = 5 * time.Minute

var ErrUnknownCity = errors.New("no sheet configured for city")

// GridFetcher downloads the cells of a spreadsheet range.
type GridFetcher interface {
	FetchGrid(ctx context.Context, spreadsheetID, rng string) (types.Grid, error)
}

type Ingester interface {
	Ingest(ctx context.Context, cfg ingestion.Config, grid types.Grid) (*ingestion.Report, error)
}

// Runner runs ingestion for the configured cities. Runs of the same city never
// overlap: concurrent sheet runs share one result and uploaded grids wait for
// the running one.
type Runner struct {
	fetcher  GridFetcher
	ingester Ingester
	logger   *zap.Logger
	sheets   map[string]ingestion.Config

	timeout time.Duration
	group   singleflight.Group
	mu      sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRunner(fetcher GridFetcher, ingester Ingester, sheets []ingestion.Config, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{
		fetcher:  fetcher,
		ingester: ingester,
		logger:   logger,
		sheets:   make(map[string]ingestion.Config, len(sheets)),
		timeout:  runTimeout,
		locks:    make(map[string]*sync.Mutex),
	}
	for _, s := range sheets {
		r.sheets[s.City] = s.WithDefaults()
	}
	return r
}

// Cities returns the configured cities in order.
func (r *Runner) Cities() []string {
	cities := make([]string, 0, len(r.sheets))
	for c := range r.sheets {
		cities = append(cities, c)
	}
	sort.Strings(cities)
	return cities
}

// RunCity fetches the city's sheet and ingests it. The run is shared by every
// caller that joins it, so it does not stop when ctx is cancelled.
func (r *Runner) RunCity(ctx context.Context, city string) (*ingestion.Report, error) {
	cfg, ok := r.sheets[city]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCity, city)
	}

	v, err, shared := r.group.Do(city, func() (interface{}, error) {
		runCtx, cancel := r.detach(ctx)
		defer cancel()

		unlock := r.lock(city)
		defer unlock()

		grid, err := r.fetcher.FetchGrid(runCtx, cfg.SpreadsheetID, cfg.Range)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch sheet for %s: %w", city, err)
		}
		return r.ingester.Ingest(runCtx, cfg, grid)
	})
	if shared {
		r.logger.Debug("Joined running ingestion", zap.String("city", city))
	}
	report, _ := v.(*ingestion.Report)
	return report, err
}

// RunGrid ingests an already loaded grid with the city's sheet settings.
func (r *Runner) RunGrid(ctx context.Context, city string, grid types.Grid) (*ingestion.Report, error) {
	cfg, ok := r.sheets[city]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCity, city)
	}

	runCtx, cancel := r.detach(ctx)
	defer cancel()

	unlock := r.lock(city)
	defer unlock()
	return r.ingester.Ingest(runCtx, cfg, grid)
}

// detach keeps the values of ctx and drops its cancellation. The run is
// bounded by r.timeout instead.
func (r *Runner) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
}

func (r *Runner) lock(city string) func() {
	r.mu.Lock()
	l, ok := r.locks[city]
	if !ok {
		l = &sync.Mutex{}
		r.locks[city] = l
	}
	r.mu.Unlock()

	l.Lock()
	return l.Unlock
}
