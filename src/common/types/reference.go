package types

// NetworkReference is the payload served by the operator's reference API.
type NetworkReference struct {
	Version  string          `json:"version"`
	Stations []StationRecord `json:"stations"`
	Lines    []LineRecord    `json:"lines"`
}

// StationRecord is a station as it appears in reference data and feed
// messages. Coords is a [lat, lon] pair; absent means the station has no
// usable position.
type StationRecord struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Coords []float64 `json:"coords,omitempty"`
	Lines  []string  `json:"lines"`
}

// LineRecord is a line as it appears in reference data and feed messages.
type LineRecord struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Color    string   `json:"color"`
	Stations []string `json:"stations"`
}
