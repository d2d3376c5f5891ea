package ingestion

import (
	"context"
	"fmt"
	"time"

	"go-afetyardim/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SiteStore is the registry the ingester reads from and writes back to.
type SiteStore interface {
	GetSites(ctx context.Context, city string) ([]*types.Site, error)
	SaveAllSites(ctx context.Context, sites []*types.Site) error
}

// Geocoder turns a map link into latitude and longitude.
type Geocoder interface {
	Coordinates(ctx context.Context, mapURL string) (lat, lng float64, err error)
}

// Report summarises one ingestion run.
type Report struct {
	City              string `json:"city"`
	Rows              int    `json:"rows"`
	Triplets          int    `json:"triplets"`
	Updated           int    `json:"updated"`
	NewUpdates        int    `json:"newUpdates"`
	Created           int    `json:"created"`
	Skipped           int    `json:"skipped"`
	Failed            int    `json:"failed"`
	StaleTransitions  int    `json:"staleTransitions"`
	PreviousSiteCount int    `json:"previousSiteCount"`
}

type Ingester struct {
	store    SiteStore
	geocoder Geocoder
	logger   *zap.Logger
	now      func() time.Time
}

func NewIngester(store SiteStore, geocoder Geocoder, logger *zap.Logger) *Ingester {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ingester{
		store:    store,
		geocoder: geocoder,
		logger:   logger,
		now:      time.Now,
	}
}

// Ingest reconciles grid against the registry of cfg.City and saves the whole
// city back in one batch.
func (in *Ingester) Ingest(ctx context.Context, cfg Config, grid types.Grid) (*Report, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	in.logger.Info("Start spreadsheet update", zap.String("city", cfg.City))

	sites, err := in.store.GetSites(ctx, cfg.City)
	if err != nil {
		return nil, fmt.Errorf("failed to get sites for %s: %w", cfg.City, err)
	}

	report, newSites := in.Reconcile(ctx, cfg, grid, sites)

	in.logger.Info("Spreadsheet update finished",
		zap.String("city", cfg.City),
		zap.Int("rows", report.Rows),
		zap.Int("newSites", len(newSites)),
		zap.Int("previousSiteCount", report.PreviousSiteCount),
		zap.Int("failedRows", report.Failed),
	)

	all := make([]*types.Site, 0, len(sites)+len(newSites))
	all = append(all, sites...)
	all = append(all, newSites...)
	if err := in.store.SaveAllSites(ctx, all); err != nil {
		return report, fmt.Errorf("failed to save sites for %s: %w", cfg.City, err)
	}
	return report, nil
}

// Reconcile applies every triplet of grid to sites in place and returns the
// sites that have to be created. sites is never appended to.
func (in *Ingester) Reconcile(ctx context.Context, cfg Config, grid types.Grid, sites []*types.Site) (*Report, []*types.Site) {
	cfg = cfg.WithDefaults()
	if cfg.HeaderRows < 0 {
		cfg.HeaderRows = 0
	}

	rows := grid.Rows
	if len(rows) > cfg.HeaderRows {
		rows = rows[cfg.HeaderRows:]
	} else {
		rows = nil
	}

	report := &Report{
		City:              cfg.City,
		Rows:              len(rows),
		PreviousSiteCount: len(sites),
	}
	var newSites []*types.Site

	w := newGridWalker(rows)
	for {
		nameRow, activeRow, noteRow, ok := w.next()
		if !ok {
			break
		}
		report.Triplets++

		site, err := in.applyTriplet(ctx, cfg, nameRow, activeRow, noteRow, sites, report)
		if err != nil {
			report.Failed++
			in.logger.Warn("Failed to parse row data while parsing spreadsheet",
				zap.String("city", cfg.City),
				zap.String("siteName", recoverSiteName(*cfg.Layout, nameRow)),
				zap.Error(err),
				zap.Any("rowData", nameRow),
			)
			w.advance(stateRowFailed)
			continue
		}
		if site != nil {
			newSites = append(newSites, site)
		}
		w.advance(stateRowOK)
	}

	report.Created = len(newSites)
	return report, newSites
}

// applyTriplet never lets a panic escape, a broken triplet must not stop the run.
func (in *Ingester) applyTriplet(ctx context.Context, cfg Config, nameRow, activeRow, noteRow types.Row,
	sites []*types.Site, report *Report) (newSite *types.Site, err error) {
	defer func() {
		if r := recover(); r != nil {
			newSite = nil
			err = fmt.Errorf("panic while applying triplet: %v", r)
		}
	}()

	t, err := ParseTriplet(*cfg.Layout, nameRow, activeRow, noteRow)
	if err != nil {
		return nil, err
	}
	if t == nil {
		report.Skipped++
		return nil, nil
	}

	activeStatus := ClassifyActive(t.Active)
	statuses := statusesFromTriplet(t)

	if site := MatchSite(t.Name, sites); site != nil {
		in.updateSite(cfg, site, t, activeStatus, statuses, report)
		return nil, nil
	}

	site := in.buildSite(ctx, cfg, t, activeStatus, statuses)
	if site == nil {
		report.Skipped++
	}
	return site, nil
}

func (in *Ingester) updateSite(cfg Config, site *types.Site, t *Triplet, activeStatus types.ActiveStatus,
	statuses []types.SiteStatus, report *Report) {
	previous := site.ActiveStatus
	now := in.now()

	site.LastSiteStatuses = statuses
	site.SetActiveStatus(activeStatus)
	report.Updated++

	if update, ok := NewSiteUpdate(site, statuses, t.ActiveNote, t.Note, now); ok {
		site.AppendUpdate(update)
		report.NewUpdates++
		return
	}

	if EvaluateStaleness(site, cfg.FreshnessWindow, now) && previous != types.ActiveStatusUnknown {
		report.StaleTransitions++
		in.logger.Warn("Site did not get any update in last period. Moving to unknown state.",
			zap.String("city", cfg.City),
			zap.String("siteName", site.Name),
			zap.String("from", string(previous)),
			zap.String("to", string(types.ActiveStatusUnknown)),
			zap.Duration("window", cfg.FreshnessWindow),
		)
	}
}

// buildSite returns nil when the row has no usable location.
func (in *Ingester) buildSite(ctx context.Context, cfg Config, t *Triplet, activeStatus types.ActiveStatus,
	statuses []types.SiteStatus) *types.Site {
	// can't create a site without the maps link
	if t.MapURL == "" {
		return nil
	}
	if in.geocoder == nil {
		return nil
	}

	lat, lng, err := in.geocoder.Coordinates(ctx, t.MapURL)
	if err != nil {
		in.logger.Error("Could not get coordinates by map url",
			zap.String("city", cfg.City),
			zap.String("siteName", t.Name),
			zap.String("mapURL", t.MapURL),
			zap.Error(err),
		)
		return nil
	}

	now := in.now()
	site := &types.Site{
		ID:          uuid.NewString(),
		Name:        t.Name,
		Description: t.Name,
		Location: types.Location{
			City:              cfg.City,
			District:          cfg.DefaultDistrict,
			AdditionalAddress: cfg.AddressHint,
			Lat:               lat,
			Long:              lng,
		},
		LastSiteStatuses: statuses,
		CreateDateTime:   now,
	}
	site.SetActiveStatus(activeStatus)
	// first update goes in with the site so an unchanged rerun adds nothing
	if update, ok := NewSiteUpdate(site, statuses, t.ActiveNote, t.Note, now); ok {
		site.AppendUpdate(update)
	}
	return site
}
