package models

// ExternalFeature is one element of an Overpass API response. Nodes carry
// their coordinate directly; ways and relations carry a computed center.
// Features live only for the duration of a request and are never persisted.
type ExternalFeature struct {
	ID     int64             `json:"id"`
	Type   string            `json:"type"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *FeatureCenter    `json:"center,omitempty"`
	Tags   map[string]string `json:"tags"`
}

// FeatureCenter is the centroid Overpass reports for ways and relations.
type FeatureCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Name returns the feature's name tag, or "" when untagged.
func (f *ExternalFeature) Name() string {
	return f.Tags["name"]
}

// Tag returns the value for key, or fallback when the tag is absent or empty.
func (f *ExternalFeature) Tag(key, fallback string) string {
	if v, ok := f.Tags[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Coordinate returns the feature's point, preferring the center for ways and
// relations since those have no coordinate of their own.
func (f *ExternalFeature) Coordinate() (lat, lon float64) {
	if f.Type != "node" && f.Center != nil {
		return f.Center.Lat, f.Center.Lon
	}
	return f.Lat, f.Lon
}
