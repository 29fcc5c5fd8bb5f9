package models

// WaterQuality is one live reading from a pool's sensors.
type WaterQuality struct {
	Temperature float64 `json:"temperature"` // degrees Celsius
	PH          float64 `json:"ph"`
	Chlorine    float64 `json:"chlorine"` // ppm
}

// Occupancy is the current headcount against the pool's capacity.
type Occupancy struct {
	Current     int `json:"current"`
	MaxCapacity int `json:"max_capacity"`
}

// PoolTelemetry is the full live-data payload served per pool.
type PoolTelemetry struct {
	WaterQuality WaterQuality `json:"water_quality"`
	Occupancy    Occupancy    `json:"occupancy"`
}
