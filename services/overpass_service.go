package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/hanzala183/goSwim/metrics"
	"github.com/hanzala183/goSwim/models"
	"github.com/hanzala183/goSwim/utils/errors"
)

// DefaultSearchRadiusMeters is used when a nearby query gives no radius.
const DefaultSearchRadiusMeters = 5000

const defaultOverpassEndpoint = "https://overpass-api.de/api/interpreter"

// OverpassService fetches swimming pool features from the Overpass API.
// It is stateless; one instance is shared across requests.
type OverpassService struct {
	endpoint string
	client   *http.Client
}

func NewOverpassService(endpoint string) *OverpassService {
	if endpoint == "" {
		endpoint = defaultOverpassEndpoint
	}
	return &OverpassService{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type overpassResponse struct {
	Elements []models.ExternalFeature `json:"elements"`
}

// FetchNear issues one Overpass query for nodes, ways and relations tagged
// leisure=swimming_pool within radiusMeters of (lat, lng). An empty element
// list is a legitimate empty result; any transport or non-2xx failure is a
// SOURCE_UNAVAILABLE error that the caller must propagate, not swallow.
func (s *OverpassService) FetchNear(ctx context.Context, lat, lng, radiusMeters float64) ([]models.ExternalFeature, error) {
	if radiusMeters <= 0 {
		radiusMeters = DefaultSearchRadiusMeters
	}
	query := fmt.Sprintf(`
		[out:json][timeout:25];
		(
		  node["leisure"="swimming_pool"](around:%[1]f,%[2]f,%[3]f);
		  way["leisure"="swimming_pool"](around:%[1]f,%[2]f,%[3]f);
		  relation["leisure"="swimming_pool"](around:%[1]f,%[2]f,%[3]f);
		);
		out body center;
	`, radiusMeters, lat, lng)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(query))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSourceUnavailable.Code, errors.ErrSourceUnavailable.Message, errors.ErrSourceUnavailable.Status)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	metrics.OverpassRequestsTotal.Inc()
	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		metrics.OverpassFailuresTotal.Inc()
		return nil, errors.Wrap(err, errors.ErrSourceUnavailable.Code, errors.ErrSourceUnavailable.Message, errors.ErrSourceUnavailable.Status)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.OverpassFailuresTotal.Inc()
		return nil, errors.NewAPIError(errors.ErrSourceUnavailable.Code, errors.ErrSourceUnavailable.Message,
			errors.ErrSourceUnavailable.Status, fmt.Sprintf("overpass returned status %d", resp.StatusCode))
	}

	var parsed overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.OverpassFailuresTotal.Inc()
		return nil, errors.Wrap(err, errors.ErrSourceUnavailable.Code, errors.ErrSourceUnavailable.Message, errors.ErrSourceUnavailable.Status)
	}
	metrics.OverpassDurationMs.Observe(float64(time.Since(start).Milliseconds()))

	log.Printf("Overpass returned %d elements within %.0fm of (%f, %f)", len(parsed.Elements), radiusMeters, lat, lng)
	return parsed.Elements, nil
}
