package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/smarttransit/transit-router/internal/network"
)

// NetworkRepository loads the static network tables from Postgres.
//
// Expected tables:
//
//	transit_network(name, currency, transfer_penalty_minutes, max_display)
//	transit_systems(id, name, hop_minutes, fare, position)
//	transit_line_stations(system_id, line_id, line_position, station_position, station_name)
type NetworkRepository struct {
	db DB
}

// NewNetworkRepository creates a new network repository
func NewNetworkRepository(db DB) *NetworkRepository {
	return &NetworkRepository{db: db}
}

type networkRow struct {
	Name                   string  `db:"name"`
	Currency               string  `db:"currency"`
	TransferPenaltyMinutes float64 `db:"transfer_penalty_minutes"`
	MaxDisplay             int     `db:"max_display"`
}

type systemRow struct {
	ID         string  `db:"id"`
	Name       string  `db:"name"`
	HopMinutes float64 `db:"hop_minutes"`
	Fare       float64 `db:"fare"`
}

type lineStationRow struct {
	SystemID    string `db:"system_id"`
	LineID      string `db:"line_id"`
	StationName string `db:"station_name"`
}

// LoadNetwork implements network.Loader
func (r *NetworkRepository) LoadNetwork() (*network.Network, error) {
	var head networkRow
	err := r.db.Get(&head, `
		SELECT name, currency, transfer_penalty_minutes, max_display
		FROM transit_network
		LIMIT 1
	`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transit_network is empty")
		}
		return nil, fmt.Errorf("error loading network: %w", err)
	}

	var systems []systemRow
	err = r.db.Select(&systems, `
		SELECT id, name, hop_minutes, fare
		FROM transit_systems
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("error loading systems: %w", err)
	}

	var stops []lineStationRow
	err = r.db.Select(&stops, `
		SELECT ls.system_id, ls.line_id, ls.station_name
		FROM transit_line_stations ls
		JOIN transit_systems s ON s.id = ls.system_id
		ORDER BY s.position, ls.line_position, ls.station_position
	`)
	if err != nil {
		return nil, fmt.Errorf("error loading line stations: %w", err)
	}

	net := &network.Network{
		Name:                   head.Name,
		Currency:               head.Currency,
		TransferPenaltyMinutes: head.TransferPenaltyMinutes,
		MaxDisplay:             head.MaxDisplay,
	}

	position := make(map[string]int, len(systems))
	for i, s := range systems {
		position[s.ID] = i
		net.Systems = append(net.Systems, network.System{
			ID:         network.SystemID(s.ID),
			Name:       s.Name,
			HopMinutes: s.HopMinutes,
			Fare:       s.Fare,
		})
	}

	for _, stop := range stops {
		i, ok := position[stop.SystemID]
		if !ok {
			return nil, fmt.Errorf("line %s references unknown system %s", stop.LineID, stop.SystemID)
		}
		sys := &net.Systems[i]
		if n := len(sys.Lines); n == 0 || sys.Lines[n-1].ID != stop.LineID {
			sys.Lines = append(sys.Lines, network.Line{ID: stop.LineID})
		}
		last := &sys.Lines[len(sys.Lines)-1]
		last.Stations = append(last.Stations, stop.StationName)
	}

	if err := net.Validate(); err != nil {
		return nil, err
	}
	return net, nil
}
