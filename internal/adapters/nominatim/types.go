package nominatim

// SearchResult is a single result of the search endpoint (format=jsonv2).
// Coordinates are decimal strings.
type SearchResult struct {
	PlaceID     int64   `json:"place_id"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Category    string  `json:"category"`
	Type        string  `json:"type"`
	Importance  float64 `json:"importance"`
	OSMType     string  `json:"osm_type"`
	OSMID       int64   `json:"osm_id"`
}
