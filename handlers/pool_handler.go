package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/hanzala183/goSwim/metrics"
	"github.com/hanzala183/goSwim/middleware"
	"github.com/hanzala183/goSwim/models"
	"github.com/hanzala183/goSwim/services"
	"github.com/hanzala183/goSwim/utils/errors"
)

// PoolSource fetches candidate features from the third-party map service.
type PoolSource interface {
	FetchNear(ctx context.Context, lat, lng, radiusMeters float64) ([]models.ExternalFeature, error)
}

// PoolMatcher reconciles features against the operator database.
type PoolMatcher interface {
	Reconcile(ctx context.Context, features []models.ExternalFeature, queryLat, queryLng float64) ([]models.UnifiedPoolResult, error)
}

// PoolRanker orders results and provides the all-pools fallback.
type PoolRanker interface {
	RankByDistance(results []models.UnifiedPoolResult, queryLat, queryLng float64) []models.UnifiedPoolResult
	FallbackListing(ctx context.Context) ([]models.UnifiedPoolResult, error)
}

// PoolReader is the store surface for direct lookups and free-text search.
type PoolReader interface {
	SearchPools(ctx context.Context, query string) ([]models.SwimmingPool, error)
	GetPool(ctx context.Context, id int) (*models.SwimmingPool, error)
}

type PoolHandler struct {
	source  PoolSource
	matcher PoolMatcher
	ranker  PoolRanker
	store   PoolReader
}

func NewPoolHandler(source PoolSource, matcher PoolMatcher, ranker PoolRanker, store PoolReader) *PoolHandler {
	return &PoolHandler{
		source:  source,
		matcher: matcher,
		ranker:  ranker,
		store:   store,
	}
}

const (
	ResultSetProximity = "proximity"
	ResultSetFallback  = "fallback"
)

type NearbyPoolsResponse struct {
	ResultSet string                     `json:"result_set"`
	Pools     []models.UnifiedPoolResult `json:"pools"`
	Count     int                        `json:"count"`
	Lat       float64                    `json:"lat"`
	Lng       float64                    `json:"lng"`
	Radius    float64                    `json:"radius"`
}

type SearchPoolsResponse struct {
	Pools []models.SwimmingPool `json:"pools"`
	Count int                   `json:"count"`
	Query string                `json:"query"`
}

type AllPoolsResponse struct {
	Pools []models.UnifiedPoolResult `json:"pools"`
	Count int                        `json:"count"`
}

// GetNearbyPools is the tier-1 proximity search: fetch features from the map
// service, reconcile them against the database, rank by distance. When the
// reconciled set is empty the response switches to the tier-2 all-pools
// listing and says so in result_set.
func (h *PoolHandler) GetNearbyPools(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		middleware.WriteError(w, errors.ErrInvalidQuery)
		return
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		middleware.WriteError(w, errors.ErrInvalidQuery)
		return
	}
	radius := float64(services.DefaultSearchRadiusMeters)
	if raw := r.URL.Query().Get("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			middleware.WriteError(w, errors.ErrInvalidQuery)
			return
		}
	}

	metrics.NearbyRequestsTotal.Inc()
	start := time.Now()

	features, err := h.source.FetchNear(r.Context(), lat, lng, radius)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	results, err := h.matcher.Reconcile(r.Context(), features, lat, lng)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	resultSet := ResultSetProximity
	if len(results) == 0 {
		results, err = h.ranker.FallbackListing(r.Context())
		if err != nil {
			middleware.WriteError(w, err)
			return
		}
		resultSet = ResultSetFallback
		metrics.FallbackResultsTotal.Inc()
	} else {
		results = h.ranker.RankByDistance(results, lat, lng)
	}
	metrics.NearbyDurationMs.Observe(float64(time.Since(start).Milliseconds()))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NearbyPoolsResponse{
		ResultSet: resultSet,
		Pools:     results,
		Count:     len(results),
		Lat:       lat,
		Lng:       lng,
		Radius:    radius,
	})
}

// SearchPools is the free-text fallback used when geocoding fails upstream.
func (h *PoolHandler) SearchPools(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	pools, err := h.store.SearchPools(r.Context(), query)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SearchPoolsResponse{
		Pools: pools,
		Count: len(pools),
		Query: query,
	})
}

// GetAllPools serves the tier-2 listing directly: every known pool plus the
// demonstration set, live-data pools first, alphabetical within each group.
func (h *PoolHandler) GetAllPools(w http.ResponseWriter, r *http.Request) {
	pools, err := h.ranker.FallbackListing(r.Context())
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AllPoolsResponse{
		Pools: pools,
		Count: len(pools),
	})
}

// GetPoolByID serves a single database record.
func (h *PoolHandler) GetPoolByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		middleware.WriteError(w, errors.ErrInvalidQuery)
		return
	}
	pool, err := h.store.GetPool(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if pool == nil {
		middleware.WriteError(w, errors.ErrNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pool)
}
