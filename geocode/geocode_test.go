package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinatesFromURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantLat float64
		wantLng float64
		wantOK  bool
	}{
		{"query pair", "https://maps.google.com/?q=39.9208,32.8541", 39.9208, 32.8541, true},
		{"query pair with space", "https://www.google.com/maps/search/?api=1&query=39.9208,%2032.8541", 39.9208, 32.8541, true},
		{"viewport", "https://www.google.com/maps/@39.9208,32.8541,15z", 39.9208, 32.8541, true},
		{"pin wins over viewport", "https://www.google.com/maps/place/Kizilay/@39.90,32.80,17z/data=!3m1!4b1!4m5!3m4!1s0x0:0x0!8m2!3d39.9208!4d32.8541", 39.9208, 32.8541, true},
		{"negative", "https://maps.google.com/?ll=-12.5,-45.25", -12.5, -45.25, true},
		{"place only", "https://www.google.com/maps/place/Kizilay+Meydani/", 0, 0, false},
		{"short link", "https://goo.gl/maps/xyz", 0, 0, false},
		{"text query", "https://maps.google.com/?q=Ulus", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lng, ok := CoordinatesFromURL(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantLat, lat)
			assert.Equal(t, tt.wantLng, lng)
		})
	}
}

func TestPlaceFromURL(t *testing.T) {
	place, ok := PlaceFromURL("https://www.google.com/maps/place/K%C4%B1z%C4%B1lay+Meydan%C4%B1/@39.92,32.85,17z")
	require.True(t, ok)
	assert.Equal(t, "Kızılay Meydanı", place)

	place, ok = PlaceFromURL("https://maps.google.com/?q=Ulus+Heykeli")
	require.True(t, ok)
	assert.Equal(t, "Ulus Heykeli", place)

	_, ok = PlaceFromURL("https://www.google.com/maps/@39.92,32.85,17z")
	assert.False(t, ok)
}

func TestMapLinkGeocoder_FollowsShortLinks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/short", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/maps/place/Kizilay/data=!3d39.9208!4d32.8541", http.StatusFound)
	})
	mux.HandleFunc("/place-only", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/maps/place/Kizilay+Meydani/", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/maps/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	g := NewMapLinkGeocoder(nil, nil)

	lat, lng, err := g.Coordinates(context.Background(), server.URL+"/short")
	require.NoError(t, err)
	assert.Equal(t, 39.9208, lat)
	assert.Equal(t, 32.8541, lng)

	_, _, err = g.Coordinates(context.Background(), server.URL+"/place-only")
	assert.ErrorIs(t, err, ErrNoCoordinates)
}

func TestMapLinkGeocoder_DirectCoordinatesSkipNetwork(t *testing.T) {
	g := NewMapLinkGeocoder(nil, nil)

	lat, lng, err := g.Coordinates(context.Background(), "https://maps.google.com/?q=39.93,32.85")
	require.NoError(t, err)
	assert.Equal(t, 39.93, lat)
	assert.Equal(t, 32.85, lng)
}

func TestDistanceKM(t *testing.T) {
	// Ankara Kızılay to Istanbul Sultanahmet
	d := DistanceKM(39.9208, 32.8541, 41.0054, 28.9768)
	assert.InDelta(t, 350, d, 15)

	assert.InDelta(t, 0, DistanceKM(39.92, 32.85, 39.92, 32.85), 1e-9)
}
