package utils

import (
	"encoding/json"

	"github.com/metroroute/engine/src/common/types"
)

// UnmarshalStationUpdates decodes a feed message carrying one or more
// station records.
func UnmarshalStationUpdates(data string) ([]types.StationRecord, error) {
	var records []types.StationRecord
	err := json.Unmarshal([]byte(data), &records)
	return records, err
}

// UnmarshalLineUpdates decodes a feed message carrying one or more line
// records.
func UnmarshalLineUpdates(data string) ([]types.LineRecord, error) {
	var records []types.LineRecord
	err := json.Unmarshal([]byte(data), &records)
	return records, err
}

// UnmarshalNetworkReference decodes a full reference-data payload.
func UnmarshalNetworkReference(data []byte) (*types.NetworkReference, error) {
	var ref types.NetworkReference
	if err := json.Unmarshal(data, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// StationFromRecord converts a reference/feed record into the internal
// station shape. A record without a [lat, lon] pair produces a station
// with nil coordinates.
func StationFromRecord(rec types.StationRecord) *types.Station {
	station := &types.Station{
		ID:    rec.ID,
		Name:  rec.Name,
		Lines: rec.Lines,
	}
	if len(rec.Coords) == 2 {
		station.Coords = &types.Coords{Lat: rec.Coords[0], Lon: rec.Coords[1]}
	}
	return station
}
