package geocode

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

var ErrNoCoordinates = errors.New("no coordinates in map link")

// mapsClient is a singleton maps client instance.
var (
	mapsClient *maps.Client
	clientOnce sync.Once
	clientErr  error
)

// InitMapsClient initializes and returns a singleton Google Maps client.
func InitMapsClient(apiKey string) (*maps.Client, error) {
	clientOnce.Do(func() {
		if apiKey == "" {
			clientErr = fmt.Errorf("MAPS_CREDENTIALS environment variable not set")
			return
		}
		mapsClient, clientErr = maps.NewClient(maps.WithAPIKey(apiKey))
	})
	return mapsClient, clientErr
}

// GeocodeAddress takes an address string and returns geocoding results.
func GeocodeAddress(ctx context.Context, client *maps.Client, address string) ([]maps.GeocodingResult, error) {
	req := &maps.GeocodingRequest{
		Address: address,
		Region:  "tr",
	}

	// Forward geocode: get latitude and longitude for the given address.
	results, err := client.Geocode(ctx, req)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// MapLinkGeocoder reads coordinates out of the map links people paste in the
// sheet. Short links are followed first, pure place links go to the Maps
// geocoding API when a client is configured.
type MapLinkGeocoder struct {
	http   *resty.Client
	maps   *maps.Client
	logger *zap.Logger
}

func NewMapLinkGeocoder(mapsClient *maps.Client, logger *zap.Logger) *MapLinkGeocoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10)).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &MapLinkGeocoder{
		http:   client,
		maps:   mapsClient,
		logger: logger,
	}
}

// Coordinates returns latitude and longitude for mapURL.
func (g *MapLinkGeocoder) Coordinates(ctx context.Context, mapURL string) (float64, float64, error) {
	if lat, lng, ok := CoordinatesFromURL(mapURL); ok {
		return lat, lng, nil
	}

	resolved, err := g.resolve(ctx, mapURL)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to resolve map link %s: %w", mapURL, err)
	}
	if lat, lng, ok := CoordinatesFromURL(resolved); ok {
		return lat, lng, nil
	}

	place, ok := PlaceFromURL(resolved)
	if !ok || g.maps == nil {
		return 0, 0, fmt.Errorf("%w: %s", ErrNoCoordinates, mapURL)
	}

	results, err := GeocodeAddress(ctx, g.maps, place)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to geocode %q: %w", place, err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("%w: no geocode results for %q", ErrNoCoordinates, place)
	}
	loc := results[0].Geometry.Location
	g.logger.Debug("Geocoded map link by place name",
		zap.String("mapURL", mapURL),
		zap.String("place", place),
		zap.String("formattedAddress", results[0].FormattedAddress),
	)
	return loc.Lat, loc.Lng, nil
}

// resolve follows redirects (goo.gl, maps.app.goo.gl) and returns the final URL.
func (g *MapLinkGeocoder) resolve(ctx context.Context, mapURL string) (string, error) {
	resp, err := g.http.R().SetContext(ctx).Get(mapURL)
	if err != nil {
		return "", err
	}
	if resp.RawResponse == nil || resp.RawResponse.Request == nil {
		return mapURL, nil
	}
	return resp.RawResponse.Request.URL.String(), nil
}
