package handlers

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"go-afetyardim/db"
	"go-afetyardim/geocode"
	"go-afetyardim/ingestion"
	"go-afetyardim/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultNearbyRadiusKM = 10.0

// SiteService is the registry behind the /sites endpoints.
type SiteService interface {
	GetSites(ctx context.Context, city string) ([]*types.Site, error)
	GetSite(ctx context.Context, id string) (*types.Site, error)
	AddSiteUpdate(ctx context.Context, id string, u types.SiteUpdate) (*types.Site, error)
}

type siteUpdateRequest struct {
	Update       string             `json:"update" binding:"required"`
	SiteStatuses []types.SiteStatus `json:"siteStatuses" binding:"required"`
}

func GetSites(c *gin.Context, service SiteService, logger *zap.Logger) {
	sites, err := service.GetSites(c.Request.Context(), c.Query("cityFilter"))
	if err != nil {
		logger.Error("Failed to get sites", zap.String("cityFilter", c.Query("cityFilter")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sites"})
		return
	}

	out := make([]SiteView, 0, len(sites))
	for _, s := range sites {
		out = append(out, toSiteView(s))
	}
	c.JSON(http.StatusOK, out)
}

func GetSitesV2(c *gin.Context, service SiteService, logger *zap.Logger) {
	sites, err := service.GetSites(c.Request.Context(), c.Query("cityFilter"))
	if err != nil {
		logger.Error("Failed to get sites", zap.String("cityFilter", c.Query("cityFilter")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sites"})
		return
	}

	out := make([]SiteDTO, 0, len(sites))
	for _, s := range sites {
		out = append(out, toSiteDTO(s))
	}
	c.JSON(http.StatusOK, out)
}

func GetSite(c *gin.Context, service SiteService, logger *zap.Logger) {
	id := c.Param("id")
	site, err := service.GetSite(c.Request.Context(), id)
	if errors.Is(err, db.ErrSiteNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}
	if err != nil {
		logger.Error("Failed to get site", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve site"})
		return
	}
	c.JSON(http.StatusOK, toSiteView(site))
}

func AddSiteUpdate(c *gin.Context, service SiteService, logger *zap.Logger) {
	var req siteUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ingestion.ValidateStatuses(req.SiteStatuses); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	site, err := service.AddSiteUpdate(c.Request.Context(), id, types.SiteUpdate{
		Update:         req.Update,
		SiteStatuses:   req.SiteStatuses,
		CreateDateTime: time.Now().UTC(),
	})
	if errors.Is(err, db.ErrSiteNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}
	if err != nil {
		logger.Error("Failed to add site update", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add site update"})
		return
	}
	c.JSON(http.StatusOK, toSiteView(site))
}

// GetNearbySites lists the sites within radiusKm of lat,lng, closest first.
func GetNearbySites(c *gin.Context, service SiteService, logger *zap.Logger) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng query parameters are required"})
		return
	}
	radius := defaultNearbyRadiusKM
	if v := c.Query("radiusKm"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil || r <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "radiusKm must be a positive number"})
			return
		}
		radius = r
	}

	sites, err := service.GetSites(c.Request.Context(), c.Query("cityFilter"))
	if err != nil {
		logger.Error("Failed to get sites", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sites"})
		return
	}

	out := []NearbySite{}
	for _, s := range sites {
		d := geocode.DistanceKM(lat, lng, s.Location.Lat, s.Location.Long)
		if d <= radius {
			out = append(out, NearbySite{SiteDTO: toSiteDTO(s), DistanceKM: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKM < out[j].DistanceKM })
	c.JSON(http.StatusOK, out)
}
