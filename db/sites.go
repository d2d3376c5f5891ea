package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-afetyardim/ingestion"
	"go-afetyardim/types"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const sitesCollection = "sites"

var ErrSiteNotFound = errors.New("site not found")

// siteDoc is how a site is stored. The document ID is the site ID.
type siteDoc struct {
	Name             string             `firestore:"name"`
	Description      string             `firestore:"description"`
	Location         types.Location     `firestore:"location"`
	Active           bool               `firestore:"active"`
	ActiveStatus     types.ActiveStatus `firestore:"activeStatus"`
	LastSiteStatuses []types.SiteStatus `firestore:"lastSiteStatuses"`
	Updates          []types.SiteUpdate `firestore:"updates"`
	CreateDateTime   time.Time          `firestore:"createDateTime"`
}

func toDoc(s *types.Site) siteDoc {
	return siteDoc{
		Name:             s.Name,
		Description:      s.Description,
		Location:         s.Location,
		Active:           s.Active,
		ActiveStatus:     s.ActiveStatus,
		LastSiteStatuses: s.LastSiteStatuses,
		Updates:          s.Updates(),
		CreateDateTime:   s.CreateDateTime,
	}
}

func fromDoc(id string, d siteDoc) *types.Site {
	s := &types.Site{
		ID:               id,
		Name:             d.Name,
		Description:      d.Description,
		Location:         d.Location,
		ActiveStatus:     d.ActiveStatus,
		LastSiteStatuses: d.LastSiteStatuses,
		CreateDateTime:   d.CreateDateTime,
	}
	if s.ActiveStatus == "" {
		s.ActiveStatus = types.ActiveStatusUnknown
	}
	s.SetActiveStatus(s.ActiveStatus)
	for _, u := range d.Updates {
		s.AppendUpdate(u)
	}
	return s
}

// SiteRepository stores sites in Firestore.
type SiteRepository struct {
	client *firestore.Client
	logger *zap.Logger
}

func NewSiteRepository(client *firestore.Client, logger *zap.Logger) *SiteRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SiteRepository{client: client, logger: logger}
}

// GetSites returns the sites of city, or every site when city is empty.
func (r *SiteRepository) GetSites(ctx context.Context, city string) ([]*types.Site, error) {
	query := r.client.Collection(sitesCollection).Query
	if city != "" {
		query = query.Where("location.city", "==", city)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var sites []*types.Site
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating sites: %w", err)
		}

		var d siteDoc
		if err := doc.DataTo(&d); err != nil {
			r.logger.Warn("Skipping site document that can not be decoded",
				zap.String("id", doc.Ref.ID), zap.Error(err))
			continue
		}
		sites = append(sites, fromDoc(doc.Ref.ID, d))
	}
	return sites, nil
}

// GetSite returns ErrSiteNotFound when there is no site with id.
func (r *SiteRepository) GetSite(ctx context.Context, id string) (*types.Site, error) {
	snap, err := r.client.Collection(sitesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %s", ErrSiteNotFound, id)
		}
		return nil, fmt.Errorf("error getting site %s: %w", id, err)
	}

	var d siteDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, fmt.Errorf("error converting document %s to site: %w", id, err)
	}
	return fromDoc(snap.Ref.ID, d), nil
}

func (r *SiteRepository) CreateSite(ctx context.Context, site *types.Site) (*types.Site, error) {
	if site.ID == "" {
		site.ID = uuid.NewString()
	}
	if site.CreateDateTime.IsZero() {
		site.CreateDateTime = time.Now().UTC()
	}
	if _, err := r.client.Collection(sitesCollection).Doc(site.ID).Set(ctx, toDoc(site)); err != nil {
		return nil, fmt.Errorf("failed to create site %s: %w", site.Name, err)
	}
	return site, nil
}

// SaveAllSites upserts every site with a BulkWriter.
func (r *SiteRepository) SaveAllSites(ctx context.Context, sites []*types.Site) error {
	if len(sites) == 0 {
		return nil
	}

	bw := r.client.BulkWriter(ctx)
	col := r.client.Collection(sitesCollection)

	jobs := make(map[string]*firestore.BulkWriterJob, len(sites))
	var errs []error
	for _, site := range sites {
		if site.ID == "" {
			site.ID = uuid.NewString()
		}
		job, err := bw.Set(col.Doc(site.ID), toDoc(site))
		if err != nil {
			errs = append(errs, fmt.Errorf("enqueue site %s: %w", site.ID, err))
			continue
		}
		jobs[site.ID] = job
	}

	// End flushes the remaining writes and waits for them.
	bw.End()

	for id, job := range jobs {
		if _, err := job.Results(); err != nil {
			errs = append(errs, fmt.Errorf("save site %s: %w", id, err))
		}
	}

	r.logger.Info("Saved sites", zap.Int("count", len(jobs)), zap.Int("failed", len(errs)))
	return errors.Join(errs...)
}

// AddSiteUpdate appends u to the site's history and makes its statuses the
// site's current ones.
func (r *SiteRepository) AddSiteUpdate(ctx context.Context, id string, u types.SiteUpdate) (*types.Site, error) {
	if err := ingestion.ValidateStatuses(u.SiteStatuses); err != nil {
		return nil, err
	}

	ref := r.client.Collection(sitesCollection).Doc(id)
	if u.CreateDateTime.IsZero() {
		u.CreateDateTime = time.Now().UTC()
	}

	var site *types.Site
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("%w: %s", ErrSiteNotFound, id)
			}
			return fmt.Errorf("error getting site %s: %w", id, err)
		}
		var d siteDoc
		if err := snap.DataTo(&d); err != nil {
			return fmt.Errorf("error converting document %s to site: %w", id, err)
		}

		site = fromDoc(id, d)
		site.AppendUpdate(u)
		site.LastSiteStatuses = u.SiteStatuses
		return tx.Set(ref, toDoc(site))
	})
	if err != nil {
		return nil, err
	}
	return site, nil
}
