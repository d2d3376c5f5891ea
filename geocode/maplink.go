package geocode

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	// !3d<lat>!4d<lng> is the pin itself, @<lat>,<lng> is only the viewport
	pinPattern      = regexp.MustCompile(`!3d(-?\d+(?:\.\d+)?)!4d(-?\d+(?:\.\d+)?)`)
	viewportPattern = regexp.MustCompile(`@(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`)
	pairPattern     = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*$`)
)

var coordinateParams = []string{"q", "query", "ll", "destination", "daddr", "center"}

// CoordinatesFromURL extracts latitude and longitude written in a maps link.
func CoordinatesFromURL(raw string) (float64, float64, bool) {
	if m := pinPattern.FindStringSubmatch(raw); m != nil {
		return parsePair(m[1], m[2])
	}

	u, err := url.Parse(raw)
	if err == nil {
		query := u.Query()
		for _, key := range coordinateParams {
			if m := pairPattern.FindStringSubmatch(query.Get(key)); m != nil {
				return parsePair(m[1], m[2])
			}
		}
	}

	if m := viewportPattern.FindStringSubmatch(raw); m != nil {
		return parsePair(m[1], m[2])
	}
	return 0, 0, false
}

// PlaceFromURL returns the place name of a /maps/place/<name>/ or ?q=<name> link.
func PlaceFromURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	segments := strings.Split(u.EscapedPath(), "/")
	for i, s := range segments {
		if s == "place" && i+1 < len(segments) && segments[i+1] != "" {
			name, err := url.PathUnescape(segments[i+1])
			if err != nil {
				return "", false
			}
			return strings.ReplaceAll(name, "+", " "), true
		}
	}

	for _, key := range []string{"q", "query"} {
		if v := strings.TrimSpace(u.Query().Get(key)); v != "" {
			return v, true
		}
	}
	return "", false
}

func parsePair(a, b string) (float64, float64, bool) {
	lat, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return 0, 0, false
	}
	lng, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lng, true
}
