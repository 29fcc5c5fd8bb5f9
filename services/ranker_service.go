package services

import (
	"context"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/hanzala183/goSwim/models"
)

// PoolListStore is the slice of the record store the ranker needs for the
// all-pools fallback listing.
type PoolListStore interface {
	AllPools(ctx context.Context) ([]models.UnifiedPoolResult, error)
}

// RankerService orders merged results for presentation and owns the
// all-pools fallback used when a proximity search comes back empty.
type RankerService struct {
	store    PoolListStore
	collator *collate.Collator
}

func NewRankerService(store PoolListStore) *RankerService {
	return &RankerService{
		store:    store,
		collator: collate.New(language.English),
	}
}

// RankByDistance sorts results ascending by distance from the query point.
// Results matched in the database already carry the store-computed distance;
// everything else gets the haversine distance from its own coordinate. The
// sort is stable: equal distances keep their input order.
func (r *RankerService) RankByDistance(results []models.UnifiedPoolResult, queryLat, queryLng float64) []models.UnifiedPoolResult {
	for i := range results {
		if results[i].Distance == nil {
			d := HaversineDistance(queryLat, queryLng, results[i].Latitude, results[i].Longitude)
			results[i].Distance = &d
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return *results[i].Distance < *results[j].Distance
	})
	return results
}

// FallbackListing is the tier-2 result set: every known pool plus the fixed
// demonstration set, pools with live data first, each group alphabetical by
// name under English collation.
func (r *RankerService) FallbackListing(ctx context.Context) ([]models.UnifiedPoolResult, error) {
	pools, err := r.store.AllPools(ctx)
	if err != nil {
		return nil, err
	}
	pools = append(pools, seedPools()...)

	sort.SliceStable(pools, func(i, j int) bool {
		if pools[i].HasLiveData != pools[j].HasLiveData {
			return pools[i].HasLiveData
		}
		return r.collator.CompareString(pools[i].PoolName, pools[j].PoolName) < 0
	})
	return pools, nil
}
