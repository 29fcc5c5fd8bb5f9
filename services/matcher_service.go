package services

import (
	"context"
	"log"

	"github.com/hanzala183/goSwim/models"
)

// PoolMatchStore is the slice of the record store the matcher depends on.
type PoolMatchStore interface {
	MatchPool(ctx context.Context, name string, featLat, featLng, queryLat, queryLng float64) (*MatchedPool, error)
}

// MatcherService reconciles external map features against the operator
// database, producing one unified result per named feature.
type MatcherService struct {
	store PoolMatchStore
}

func NewMatcherService(store PoolMatchStore) *MatcherService {
	return &MatcherService{store: store}
}

const (
	defaultOpeningHours = "9:00 AM - 6:00 PM"
	notAvailable        = "Not available"
)

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Reconcile matches each named feature against the database, one lookup per
// feature. Unnamed features are skipped: they can neither be matched nor
// meaningfully displayed. The first store error aborts the whole pass --
// no partial result sets.
func (m *MatcherService) Reconcile(ctx context.Context, features []models.ExternalFeature, queryLat, queryLng float64) ([]models.UnifiedPoolResult, error) {
	var results []models.UnifiedPoolResult
	for i := range features {
		feature := &features[i]
		name := feature.Name()
		if name == "" {
			continue
		}

		featLat, featLng := feature.Coordinate()
		match, err := m.store.MatchPool(ctx, name, featLat, featLng, queryLat, queryLng)
		if err != nil {
			return nil, err
		}

		osm := &models.OSMData{
			ID:   feature.ID,
			Name: name,
			Type: feature.Type,
			Tags: feature.Tags,
		}
		if match != nil {
			distance := match.Distance
			results = append(results, models.UnifiedPoolResult{
				SwimmingPool: match.Pool,
				HasLiveData:  match.Pool.APIEndpoint != "",
				Distance:     &distance,
				OSMData:      osm,
			})
			continue
		}
		results = append(results, synthesizeFromFeature(feature, osm))
	}
	log.Printf("Reconciled %d of %d external features", len(results), len(features))
	return results, nil
}

// synthesizeFromFeature builds a result from map data alone. Changing rooms
// and lockers default to true for unmatched features, all safety flags to
// false; the single opening_hours tag (or the default) covers all seven days.
func synthesizeFromFeature(feature *models.ExternalFeature, osm *models.OSMData) models.UnifiedPoolResult {
	lat, lng := feature.Coordinate()
	hoursTag := feature.Tag("opening_hours", defaultOpeningHours)
	hours := make(models.OpeningHours, len(weekdays))
	for _, day := range weekdays {
		hours[day] = hoursTag
	}
	return models.UnifiedPoolResult{
		SwimmingPool: models.SwimmingPool{
			PoolName:               osm.Name,
			Address:                feature.Tag("addr:street", "Address not available"),
			City:                   feature.Tag("addr:city", "City not available"),
			PostalCode:             feature.Tag("addr:postcode", "Postal code not available"),
			Latitude:               lat,
			Longitude:              lng,
			ContactNumber:          feature.Tag("phone", notAvailable),
			Email:                  feature.Tag("email", notAvailable),
			OpeningHours:           hours,
			ChangingRoomsAvailable: true,
			LockerFacility:         true,
		},
		HasLiveData: false,
		OSMData:     osm,
	}
}
