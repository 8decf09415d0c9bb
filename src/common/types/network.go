package types

// Coords is a WGS84 latitude/longitude pair in degrees.
type Coords struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Station is a routable point in the network. Coords is nil when the
// reference data carries no position; such a station loads fine but can
// never be routed through.
type Station struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Coords *Coords  `json:"coords,omitempty"`
	Lines  []string `json:"lines"`
}

// Line is a named ordered sequence of stations. Color is presentation
// data carried through for API clients and ignored by the routing core.
type Line struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Color    string   `json:"color,omitempty"`
	Stations []string `json:"stations"`
}
