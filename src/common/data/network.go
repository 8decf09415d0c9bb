package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/metroroute/engine/src/common/types"
)

// GetNetwork loads the full station and line reference data. Station line
// memberships are derived from line ordering rows, ordered by line id then
// position, so repeated loads of unchanged data yield identical structures.
func (dc *DataClient) GetNetwork(ctx context.Context) (map[string]*types.Station, []*types.Line, error) {
	stations, err := dc.getStations(ctx)
	if err != nil {
		return nil, nil, err
	}

	lines, err := dc.getLines(ctx)
	if err != nil {
		return nil, nil, err
	}

	rows, err := dc.pg.Query(ctx, `
		SELECT line_id, station_id FROM line_station
		ORDER BY line_id, position
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query line stations: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*types.Line, len(lines))
	for _, line := range lines {
		byID[line.ID] = line
	}

	for rows.Next() {
		var lineID, stationID string
		if err := rows.Scan(&lineID, &stationID); err != nil {
			return nil, nil, err
		}

		line, ok := byID[lineID]
		if !ok {
			dc.logger.Warnw("ordering row references unknown line", "line", lineID, "station", stationID)
			continue
		}
		line.Stations = append(line.Stations, stationID)

		if station, ok := stations[stationID]; ok {
			if !contains(station.Lines, lineID) {
				station.Lines = append(station.Lines, lineID)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return stations, lines, nil
}

func (dc *DataClient) getStations(ctx context.Context) (map[string]*types.Station, error) {
	rows, err := dc.pg.Query(ctx, `
		SELECT id, name, lat, lon FROM station
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	stations := make(map[string]*types.Station)
	for rows.Next() {
		var station types.Station
		var lat, lon sql.NullFloat64

		if err := rows.Scan(&station.ID, &station.Name, &lat, &lon); err != nil {
			return nil, err
		}
		if lat.Valid && lon.Valid {
			station.Coords = &types.Coords{Lat: lat.Float64, Lon: lon.Float64}
		}

		stations[station.ID] = &station
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stations, nil
}

func (dc *DataClient) getLines(ctx context.Context) ([]*types.Line, error) {
	rows, err := dc.pg.Query(ctx, `
		SELECT id, name, color FROM line
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines: %w", err)
	}
	defer rows.Close()

	var lines []*types.Line
	for rows.Next() {
		var line types.Line
		var color sql.NullString

		if err := rows.Scan(&line.ID, &line.Name, &color); err != nil {
			return nil, err
		}
		line.Color = color.String

		lines = append(lines, &line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// LastFetched returns when the given reference key was last imported.
func (dc *DataClient) LastFetched(ctx context.Context, key string) (time.Time, error) {
	var fetched time.Time
	err := dc.pg.QueryRow(ctx, `
		SELECT last_fetched FROM reference_fetch
		WHERE key = $1
	`, key).Scan(&fetched)
	if err != nil {
		return time.Time{}, err
	}
	return fetched, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
