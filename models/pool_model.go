package models

// OpeningHours maps a lowercase weekday name ("monday".."sunday") to a
// human-readable time range such as "9:00 AM - 6:00 PM".
type OpeningHours map[string]string

// SwimmingPool is one row of the operator-owned swimming_pools table.
// The service only ever reads these; seeding and edits belong to the operator.
type SwimmingPool struct {
	ID                          int          `json:"id,omitempty"`
	PoolName                    string       `json:"pool_name"`
	Address                     string       `json:"address"`
	City                        string       `json:"city"`
	PostalCode                  string       `json:"postal_code"`
	Latitude                    float64      `json:"latitude"`
	Longitude                   float64      `json:"longitude"`
	APIEndpoint                 string       `json:"api_endpoint,omitempty"`
	ContactNumber               string       `json:"contact_number"`
	Email                       string       `json:"email"`
	OpeningHours                OpeningHours `json:"opening_hours"`
	LifeguardAvailable          bool         `json:"lifeguard_available"`
	EmergencyEquipmentAvailable bool         `json:"emergency_equipment_available"`
	CCTVInstalled               bool         `json:"cctv_installed"`
	ChangingRoomsAvailable      bool         `json:"changing_rooms_available"`
	LockerFacility              bool         `json:"locker_facility"`
}

// OSMData is the provenance attached to a merged result: the OpenStreetMap
// feature the result was derived from or matched against. Display only.
type OSMData struct {
	ID   int64             `json:"id"`
	Name string            `json:"name"`
	Type string            `json:"type"`
	Tags map[string]string `json:"tags"`
}

// UnifiedPoolResult is a pool record as returned to clients: either a database
// row enriched with live-data availability and provenance, or a record
// synthesized from an OpenStreetMap feature alone.
type UnifiedPoolResult struct {
	SwimmingPool
	HasLiveData bool     `json:"has_live_data"`
	Distance    *float64 `json:"distance,omitempty"` // kilometers from the query point
	OSMData     *OSMData `json:"osm_data,omitempty"`
}
