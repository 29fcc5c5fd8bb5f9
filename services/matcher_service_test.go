package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanzala183/goSwim/models"
)

type fakeMatchStore struct {
	matches map[string]*MatchedPool
	err     error
	calls   []string
}

func (f *fakeMatchStore) MatchPool(ctx context.Context, name string, featLat, featLng, queryLat, queryLng float64) (*MatchedPool, error) {
	f.calls = append(f.calls, name)
	if f.err != nil {
		return nil, f.err
	}
	return f.matches[name], nil
}

func namedFeature(id int64, name string, lat, lng float64) models.ExternalFeature {
	return models.ExternalFeature{
		ID:   id,
		Type: "node",
		Lat:  lat,
		Lon:  lng,
		Tags: map[string]string{"name": name},
	}
}

func TestReconcile_MatchedFeature(t *testing.T) {
	store := &fakeMatchStore{matches: map[string]*MatchedPool{
		"Blue Wave Swimming Club": {
			Pool: models.SwimmingPool{
				ID:          2,
				PoolName:    "Blue Wave Swimming Club",
				Address:     "45 Lake View Road, Attapur",
				City:        "Hyderabad",
				PostalCode:  "500018",
				Latitude:    17.3855,
				Longitude:   78.4870,
				APIEndpoint: "/api/pool-data/2",
			},
			Distance: 0.0641,
		},
	}}
	matcher := NewMatcherService(store)

	results, err := matcher.Reconcile(context.Background(),
		[]models.ExternalFeature{namedFeature(101, "Blue Wave Swimming Club", 17.3855, 78.4870)},
		17.3850, 78.4867)
	require.NoError(t, err)
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, 2, got.ID)
	assert.True(t, got.HasLiveData)
	require.NotNil(t, got.Distance)
	assert.Equal(t, 0.0641, *got.Distance)
	require.NotNil(t, got.OSMData)
	assert.Equal(t, int64(101), got.OSMData.ID)
	assert.Equal(t, "Blue Wave Swimming Club", got.OSMData.Name)
	assert.Equal(t, "node", got.OSMData.Type)
}

func TestReconcile_MatchedFeatureWithoutEndpoint(t *testing.T) {
	store := &fakeMatchStore{matches: map[string]*MatchedPool{
		"Aqua Swimming Pool": {
			Pool: models.SwimmingPool{ID: 1, PoolName: "Aqua Swimming Pool"},
		},
	}}
	matcher := NewMatcherService(store)

	results, err := matcher.Reconcile(context.Background(),
		[]models.ExternalFeature{namedFeature(5, "Aqua Swimming Pool", 17.3850, 78.4867)},
		17.3850, 78.4867)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].HasLiveData)
}

func TestReconcile_UnmatchedFeatureDefaults(t *testing.T) {
	matcher := NewMatcherService(&fakeMatchStore{})

	feature := models.ExternalFeature{
		ID:   7,
		Type: "node",
		Lat:  17.39,
		Lon:  78.49,
		Tags: map[string]string{"name": "Sunrise Pool"},
	}
	results, err := matcher.Reconcile(context.Background(), []models.ExternalFeature{feature}, 17.3850, 78.4867)
	require.NoError(t, err)
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, "Sunrise Pool", got.PoolName)
	assert.Equal(t, "Address not available", got.Address)
	assert.Equal(t, "City not available", got.City)
	assert.Equal(t, "Postal code not available", got.PostalCode)
	assert.Equal(t, "Not available", got.ContactNumber)
	assert.Equal(t, "Not available", got.Email)
	assert.False(t, got.HasLiveData)

	// Asymmetric facility defaults for walk-in map features
	assert.True(t, got.ChangingRoomsAvailable)
	assert.True(t, got.LockerFacility)
	assert.False(t, got.LifeguardAvailable)
	assert.False(t, got.EmergencyEquipmentAvailable)
	assert.False(t, got.CCTVInstalled)

	require.Len(t, got.OpeningHours, 7)
	for _, day := range weekdays {
		assert.Equal(t, "9:00 AM - 6:00 PM", got.OpeningHours[day])
	}
}

func TestReconcile_UnmatchedFeatureUsesTags(t *testing.T) {
	matcher := NewMatcherService(&fakeMatchStore{})

	feature := models.ExternalFeature{
		ID:   8,
		Type: "way",
		Center: &models.FeatureCenter{Lat: 17.40, Lon: 78.50},
		Tags: map[string]string{
			"name":          "Lakeside Lido",
			"addr:street":   "9 Lakeside Road",
			"addr:city":     "Hyderabad",
			"addr:postcode": "500019",
			"phone":         "+91 40 1234 5678",
			"email":         "hello@lakesidelido.in",
			"opening_hours": "6:00 AM - 10:00 PM",
		},
	}
	results, err := matcher.Reconcile(context.Background(), []models.ExternalFeature{feature}, 17.3850, 78.4867)
	require.NoError(t, err)
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, "9 Lakeside Road", got.Address)
	assert.Equal(t, "Hyderabad", got.City)
	assert.Equal(t, "500019", got.PostalCode)
	assert.Equal(t, "+91 40 1234 5678", got.ContactNumber)
	assert.Equal(t, "hello@lakesidelido.in", got.Email)
	assert.Equal(t, 17.40, got.Latitude)
	assert.Equal(t, 78.50, got.Longitude)
	for _, day := range weekdays {
		assert.Equal(t, "6:00 AM - 10:00 PM", got.OpeningHours[day])
	}
}

func TestReconcile_SkipsUnnamedFeatures(t *testing.T) {
	store := &fakeMatchStore{}
	matcher := NewMatcherService(store)

	features := []models.ExternalFeature{
		{ID: 1, Type: "node", Tags: map[string]string{"leisure": "swimming_pool"}},
		namedFeature(2, "Named Pool", 17.39, 78.49),
		{ID: 3, Type: "node"},
	}
	results, err := matcher.Reconcile(context.Background(), features, 17.3850, 78.4867)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Named Pool", results[0].PoolName)
	// One store lookup per named feature only
	assert.Equal(t, []string{"Named Pool"}, store.calls)
}

func TestReconcile_StoreFailureAbortsWholePass(t *testing.T) {
	store := &fakeMatchStore{err: assert.AnError}
	matcher := NewMatcherService(store)

	features := []models.ExternalFeature{
		namedFeature(1, "First Pool", 17.39, 78.49),
		namedFeature(2, "Second Pool", 17.40, 78.50),
	}
	results, err := matcher.Reconcile(context.Background(), features, 17.3850, 78.4867)
	assert.Error(t, err)
	assert.Nil(t, results)
	// Fail-fast: the second feature is never looked up
	assert.Equal(t, []string{"First Pool"}, store.calls)
}

func TestReconcile_EmptyInput(t *testing.T) {
	matcher := NewMatcherService(&fakeMatchStore{})
	results, err := matcher.Reconcile(context.Background(), nil, 17.3850, 78.4867)
	assert.NoError(t, err)
	assert.Empty(t, results)
}
