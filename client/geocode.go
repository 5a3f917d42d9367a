package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/guonaihong/gout"
	"go.uber.org/zap"
)

// Nominatim defaults. The shop sells to one country, so every lookup is
// scoped to Switzerland.
const (
	DefaultGeocoderURL = "https://nominatim.openstreetmap.org"
	geocodeCountryCode = "ch"
	geocodeCountryName = "Schweiz"
	geocodeUserAgent   = "TCM-Webshop/1.0 (schule@tcm.ch)"
)

// Geocoder checks address existence against the Nominatim search API.
type Geocoder struct {
	baseURL string
	logger  *zap.Logger
}

// NewGeocoder creates a Geocoder. baseURL may be empty for the public
// Nominatim instance.
func NewGeocoder(baseURL string, logger *zap.Logger) *Geocoder {
	if baseURL == "" {
		baseURL = DefaultGeocoderURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Geocoder{baseURL: baseURL, logger: logger}
}

// AddressExists submits the free-text address to the geocoder and reports
// whether it returned at least one match. Transport failures and non-success
// responses come back as errors; callers treat those the same as "no match"
// (fail closed), but the distinction is kept for logging.
func (g *Geocoder) AddressExists(ctx context.Context, street, city, postalCode string) (bool, error) {
	query := fmt.Sprintf("%s, %s %s, %s", street, postalCode, city, geocodeCountryName)

	var matches []json.RawMessage
	var code int
	err := gout.GET(g.baseURL + "/search").
		WithContext(ctx).
		SetQuery(gout.H{
			"q":            query,
			"countrycodes": geocodeCountryCode,
			"format":       "json",
			"limit":        1,
		}).
		SetHeader(gout.H{"User-Agent": geocodeUserAgent}).
		Code(&code).
		BindJSON(&matches).
		Do()
	if err != nil {
		g.logger.Warn("geocoder unreachable", zap.Error(err))
		return false, err
	}
	if code != http.StatusOK {
		g.logger.Warn("geocoder returned non-success", zap.Int("status", code))
		return false, fmt.Errorf("geocoder status %d", code)
	}

	g.logger.Debug("geocoder lookup", zap.String("query", query), zap.Int("matches", len(matches)))
	return len(matches) > 0, nil
}
