package photon

//go:generate go run go.uber.org/mock/mockgen -source=./photon.go -destination=./mocks/photon_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"quiethours/config"
	"quiethours/infras/otel"
	"quiethours/shared/constant"
)

const (
	otelAttrQuery = "query"
	otelAttrCount = "result_count"

	resultLimit = 20
)

// Result is a geocoding hit normalized from the Photon GeoJSON response.
type Result struct {
	ExternalID string
	Name       string
	Address    string
	Latitude   float64
	Longitude  float64
	PlaceType  string
}

// Client talks to the Photon geocoding API. Callers are expected to fall
// back to local data when Search returns an error.
type Client interface {
	Search(ctx context.Context, query string, lat, lng *float64) ([]Result, error)
}

type clientImpl struct {
	baseURL    string
	httpClient *http.Client
	otel       otel.Otel
}

func New(config *config.Config, otel otel.Otel) Client {
	return &clientImpl{
		baseURL: strings.TrimRight(config.External.Photon.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(config.External.Photon.TimeoutSeconds) * time.Second,
		},
		otel: otel,
	}
}

// feature mirrors the subset of the Photon GeoJSON feature we consume.
type feature struct {
	Geometry struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties struct {
		OsmID    int64  `json:"osm_id"`
		OsmType  string `json:"osm_type"`
		OsmKey   string `json:"osm_key"`
		OsmValue string `json:"osm_value"`
		Name     string `json:"name"`
		Street   string `json:"street"`
		HouseNo  string `json:"housenumber"`
		City     string `json:"city"`
		State    string `json:"state"`
		Country  string `json:"country"`
	} `json:"properties"`
}

type searchResponse struct {
	Features []feature `json:"features"`
}

func (c *clientImpl) Search(ctx context.Context, query string, lat, lng *float64) (results []Result, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelPhotonScopeName, constant.OtelPhotonScopeName+".Search")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrQuery, query)

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(resultLimit))
	if lat != nil && lng != nil {
		params.Set("lat", strconv.FormatFloat(*lat, 'f', -1, 64))
		params.Set("lon", strconv.FormatFloat(*lng, 'f', -1, 64))
	}

	endpoint := fmt.Sprintf("%s/api?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build photon request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("Photon request failed")

		return nil, fmt.Errorf("photon request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("photon returned status %d", resp.StatusCode)
		log.Warn().Err(err).Str("query", query).Msg("Photon request failed")

		return nil, err
	}

	var body searchResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode photon response: %w", err)
	}

	results = make([]Result, 0, len(body.Features))
	for _, f := range body.Features {
		if len(f.Geometry.Coordinates) < 2 || f.Properties.Name == "" {
			continue
		}

		results = append(results, Result{
			ExternalID: fmt.Sprintf("%s/%d", strings.ToLower(f.Properties.OsmType), f.Properties.OsmID),
			Name:       f.Properties.Name,
			Address:    buildAddress(f),
			Longitude:  f.Geometry.Coordinates[0],
			Latitude:   f.Geometry.Coordinates[1],
			PlaceType:  placeType(f),
		})
	}

	scope.SetAttribute(otelAttrCount, len(results))

	return results, nil
}

func buildAddress(f feature) string {
	parts := []string{}

	street := f.Properties.Street
	if f.Properties.HouseNo != "" {
		street = strings.TrimSpace(street + " " + f.Properties.HouseNo)
	}

	for _, part := range []string{street, f.Properties.City, f.Properties.State, f.Properties.Country} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, ", ")
}

func placeType(f feature) string {
	if f.Properties.OsmValue != "" && f.Properties.OsmValue != "yes" {
		return f.Properties.OsmValue
	}

	return f.Properties.OsmKey
}
