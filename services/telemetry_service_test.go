package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanzala183/goSwim/models"
)

func TestAssessWaterQuality_Good(t *testing.T) {
	a := AssessWaterQuality(models.WaterQuality{Temperature: 26.5, PH: 7.2, Chlorine: 1.5})
	assert.Equal(t, StatusGood, a.Status)
	assert.Empty(t, a.Issues)
}

func TestAssessWaterQuality_TemperatureDangerOnly(t *testing.T) {
	a := AssessWaterQuality(models.WaterQuality{Temperature: 31, PH: 7.3, Chlorine: 1.5})
	assert.Equal(t, StatusDanger, a.Status)
	require.Len(t, a.Issues, 1)
	assert.Equal(t, "Temperature outside safe range (24-30°C)", a.Issues[0])
}

func TestAssessWaterQuality_WarningDoesNotDowngradeDanger(t *testing.T) {
	// Temperature is dangerous, pH only approaching its limit
	a := AssessWaterQuality(models.WaterQuality{Temperature: 31, PH: 7.65, Chlorine: 1.5})
	assert.Equal(t, StatusDanger, a.Status)
	assert.Equal(t, []string{
		"Temperature outside safe range (24-30°C)",
		"pH level approaching limits",
	}, a.Issues)
}

func TestAssessWaterQuality_BoundsAreSafe(t *testing.T) {
	// 24°C sits on the danger bound (safe from danger) but below the warning
	// bound; pH 7.0 and chlorine 1.2 sit exactly on their warning bounds.
	a := AssessWaterQuality(models.WaterQuality{Temperature: 24, PH: 7.0, Chlorine: 1.2})
	assert.Equal(t, StatusWarning, a.Status)
	assert.Equal(t, []string{"Temperature approaching limits"}, a.Issues)
}

func TestAssessWaterQuality_AllDimensionsReported(t *testing.T) {
	a := AssessWaterQuality(models.WaterQuality{Temperature: 23, PH: 6.5, Chlorine: 2.5})
	assert.Equal(t, StatusDanger, a.Status)
	assert.Len(t, a.Issues, 3)
}

func TestAssessWaterQuality_ChlorineWarning(t *testing.T) {
	a := AssessWaterQuality(models.WaterQuality{Temperature: 26, PH: 7.3, Chlorine: 1.9})
	assert.Equal(t, StatusWarning, a.Status)
	assert.Equal(t, []string{"Chlorine level approaching limits"}, a.Issues)
}

func TestDriftTelemetry_StaysInRange(t *testing.T) {
	data := models.PoolTelemetry{
		WaterQuality: models.WaterQuality{Temperature: 26.5, PH: 7.2, Chlorine: 1.5},
		Occupancy:    models.Occupancy{Current: 12, MaxCapacity: 50},
	}
	for i := 0; i < 500; i++ {
		driftTelemetry(&data)
		wq := data.WaterQuality
		assert.GreaterOrEqual(t, wq.Temperature, 24.0)
		assert.LessOrEqual(t, wq.Temperature, 30.0)
		assert.GreaterOrEqual(t, wq.PH, 6.8)
		assert.LessOrEqual(t, wq.PH, 7.8)
		assert.GreaterOrEqual(t, wq.Chlorine, 1.0)
		assert.LessOrEqual(t, wq.Chlorine, 2.0)
		assert.GreaterOrEqual(t, data.Occupancy.Current, 0)
		assert.LessOrEqual(t, data.Occupancy.Current, 50)
	}
}

func TestDriftTelemetry_RoundsToOneDecimal(t *testing.T) {
	data := models.PoolTelemetry{
		WaterQuality: models.WaterQuality{Temperature: 26.5, PH: 7.2, Chlorine: 1.5},
		Occupancy:    models.Occupancy{Current: 10, MaxCapacity: 50},
	}
	driftTelemetry(&data)
	assert.Equal(t, data.WaterQuality.Temperature, round1(data.WaterQuality.Temperature))
	assert.Equal(t, data.WaterQuality.PH, round1(data.WaterQuality.PH))
	assert.Equal(t, data.WaterQuality.Chlorine, round1(data.WaterQuality.Chlorine))
}
