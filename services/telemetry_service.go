package services

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hanzala183/goSwim/models"
	"github.com/hanzala183/goSwim/utils/errors"
)

const (
	StatusGood    = "good"
	StatusWarning = "warning"
	StatusDanger  = "danger"
)

// WaterQualityAssessment classifies a reading for display.
type WaterQualityAssessment struct {
	Status string   `json:"status"`
	Issues []string `json:"issues"`
}

// AssessWaterQuality checks all three dimensions of a reading. Status is
// danger if any dimension is outside its safe range, warning if any is
// approaching a limit, good otherwise; a warning never downgrades a danger.
// Values exactly on a bound are safe.
func AssessWaterQuality(wq models.WaterQuality) WaterQualityAssessment {
	status := StatusGood
	issues := []string{}

	if wq.Temperature < 24 || wq.Temperature > 30 {
		status = StatusDanger
		issues = append(issues, "Temperature outside safe range (24-30°C)")
	} else if wq.Temperature < 25 || wq.Temperature > 29 {
		if status != StatusDanger {
			status = StatusWarning
		}
		issues = append(issues, "Temperature approaching limits")
	}

	if wq.PH < 6.8 || wq.PH > 7.8 {
		status = StatusDanger
		issues = append(issues, "pH level outside safe range (6.8-7.8)")
	} else if wq.PH < 7.0 || wq.PH > 7.6 {
		if status != StatusDanger {
			status = StatusWarning
		}
		issues = append(issues, "pH level approaching limits")
	}

	if wq.Chlorine < 1.0 || wq.Chlorine > 2.0 {
		status = StatusDanger
		issues = append(issues, "Chlorine level outside safe range (1.0-2.0 ppm)")
	} else if wq.Chlorine < 1.2 || wq.Chlorine > 1.8 {
		if status != StatusDanger {
			status = StatusWarning
		}
		issues = append(issues, "Chlorine level approaching limits")
	}

	return WaterQualityAssessment{Status: status, Issues: issues}
}

// TelemetryService owns the mock live-data state for demonstration pools.
// Readings live in Redis as JSON hashes, keyed per pool, and drift a little
// on every read and on the background tick so consecutive reads look live.
// The state is owned here, not in a package-level variable.
type TelemetryService struct {
	redisClient *redis.Client
}

func NewTelemetryService(redisClient *redis.Client) *TelemetryService {
	return &TelemetryService{redisClient: redisClient}
}

func telemetryKey(poolID string) string { return "pooldata:" + poolID }

// Baseline readings for the demonstration pools.
var baselineTelemetry = map[string]models.PoolTelemetry{
	"1": {
		WaterQuality: models.WaterQuality{Temperature: 26.5, PH: 7.2, Chlorine: 1.5},
		Occupancy:    models.Occupancy{Current: 12, MaxCapacity: 50},
	},
	"2": {
		WaterQuality: models.WaterQuality{Temperature: 27.0, PH: 7.4, Chlorine: 1.8},
		Occupancy:    models.Occupancy{Current: 25, MaxCapacity: 75},
	},
	"3": {
		WaterQuality: models.WaterQuality{Temperature: 26.8, PH: 7.3, Chlorine: 1.6},
		Occupancy:    models.Occupancy{Current: 20, MaxCapacity: 60},
	},
}

// SeedBaselines writes the baseline readings into Redis, replacing whatever
// state a previous run left behind.
func (s *TelemetryService) SeedBaselines(ctx context.Context) error {
	for id, data := range baselineTelemetry {
		if err := s.put(ctx, id, data); err != nil {
			return err
		}
	}
	log.Printf("Seeded telemetry baselines for %d pools", len(baselineTelemetry))
	return nil
}

func (s *TelemetryService) put(ctx context.Context, poolID string, data models.PoolTelemetry) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.redisClient.HSet(ctx, telemetryKey(poolID), "data", payload).Err()
}

// GetPoolData returns the current reading for a pool, drifting it first.
// Returns nil without error when the pool has no telemetry state.
func (s *TelemetryService) GetPoolData(ctx context.Context, poolID string) (*models.PoolTelemetry, error) {
	raw, err := s.redisClient.HGet(ctx, telemetryKey(poolID), "data").Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrStoreUnavailable.Code, errors.ErrStoreUnavailable.Message, errors.ErrStoreUnavailable.Status)
	}

	var data models.PoolTelemetry
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	driftTelemetry(&data)
	if err := s.put(ctx, poolID, data); err != nil {
		log.Printf("Failed to persist drifted telemetry for pool %s: %v", poolID, err)
	}
	return &data, nil
}

// StartDriftLoop mutates every stored reading on the given interval until
// ctx is cancelled.
func (s *TelemetryService) StartDriftLoop(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for id := range baselineTelemetry {
					if _, err := s.GetPoolData(ctx, id); err != nil {
						log.Printf("Telemetry drift for pool %s failed: %v", id, err)
					}
				}
			}
		}
	}()
}

// driftTelemetry applies small random variations, clamped to the safe ranges
// and rounded to one decimal. Occupancy moves by at most two people.
func driftTelemetry(data *models.PoolTelemetry) {
	wq := &data.WaterQuality
	wq.Temperature = round1(clamp(wq.Temperature+randomVariation(-0.5, 0.5), 24, 30))
	wq.PH = round1(clamp(wq.PH+randomVariation(-0.2, 0.2), 6.8, 7.8))
	wq.Chlorine = round1(clamp(wq.Chlorine+randomVariation(-0.3, 0.3), 1.0, 2.0))

	occ := &data.Occupancy
	occ.Current = int(clamp(float64(occ.Current)+math.Round(randomVariation(-2, 2)), 0, float64(occ.MaxCapacity)))
}

func randomVariation(min, max float64) float64 {
	return rand.Float64()*(max-min) + min
}

func clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
