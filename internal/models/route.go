package models

import (
	"strings"

	"github.com/google/uuid"
)

// Route response statuses
const (
	StatusSuccess  = "success"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

// RouteRequest represents a passenger's route query
type RouteRequest struct {
	From           string   `json:"from" binding:"required"`   // Origin station name (e.g., "Pantitlán")
	To             string   `json:"to" binding:"required"`     // Destination station name (e.g., "Observatorio")
	ClosedStations []string `json:"closed_stations,omitempty"` // Optional: stations to treat as closed
	ClosedSegments string   `json:"closed_segments,omitempty"` // Optional: "A-B, C-D:METROBUS"
}

// RouteResponse represents the fastest route returned to the passenger
type RouteResponse struct {
	Status         string          `json:"status"`                    // "success", "not_found"
	Message        string          `json:"message"`                   // Human-readable message
	RouteID        *uuid.UUID      `json:"route_id,omitempty"`        // Identifier of this answer, for logs
	From           string          `json:"from"`                      // Origin as typed
	To             string          `json:"to"`                        // Destination as typed
	TotalMinutes   float64         `json:"total_minutes"`             // Rounded to 2 decimals
	TotalFare      float64         `json:"total_fare"`                // One fare per system entry
	Currency       string          `json:"currency"`                  // e.g. "MXN"
	Segments       []RouteSegment  `json:"segments"`                  // Rides in travel order
	Transfers      []string        `json:"transfers"`                 // Station where each segment after the first begins
	Path           []PathStop      `json:"path,omitempty"`            // Omitted when longer than the display cap
	PathLength     int             `json:"path_length"`               // Number of nodes on the path
	PathTruncated  bool            `json:"path_truncated"`            // True when Path was omitted
	ClosedStations []string        `json:"closed_stations,omitempty"` // Closures applied to this query
	ClosedSegments []ClosedSegment `json:"closed_segments,omitempty"`
	SearchTimeMs   int64           `json:"search_time_ms"` // Search execution time
}

// RouteSegment represents one ride on a single line
type RouteSegment struct {
	System   string   `json:"system"`
	Line     string   `json:"line"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	Stations []string `json:"stations"`
	Stops    int      `json:"stops"` // Station-to-station hops
}

// PathStop represents one node of the full path
type PathStop struct {
	Station string `json:"station"`
	System  string `json:"system"`
	Line    string `json:"line"`
}

// ClosedSegment echoes a parsed segment closure
type ClosedSegment struct {
	From   string `json:"from"`
	To     string `json:"to"`
	System string `json:"system"`
}

// StationSuggestion represents a station suggestion for autocomplete
type StationSuggestion struct {
	Name    string   `json:"name"`
	Systems []string `json:"systems"`
	Lines   []string `json:"lines"` // "SYSTEM-LINE" for every line serving the station
}

// NetworkSummary describes the loaded network
type NetworkSummary struct {
	Name                   string          `json:"name"`
	Currency               string          `json:"currency"`
	TransferPenaltyMinutes float64         `json:"transfer_penalty_minutes"`
	StationCount           int             `json:"station_count"`
	Systems                []SystemSummary `json:"systems"`
}

// SystemSummary describes one transport system
type SystemSummary struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	HopMinutes float64       `json:"hop_minutes"`
	Fare       float64       `json:"fare"`
	Lines      []LineSummary `json:"lines"`
}

// LineSummary describes one line by its terminals
type LineSummary struct {
	ID       string `json:"id"`
	From     string `json:"from"`
	To       string `json:"to"`
	Stations int    `json:"stations"`
}

// Validate validates the route request
func (r *RouteRequest) Validate() error {
	r.From = strings.TrimSpace(r.From)
	r.To = strings.TrimSpace(r.To)

	if r.From == "" {
		return ErrInvalidInput("from station is required")
	}
	if r.To == "" {
		return ErrInvalidInput("to station is required")
	}
	if len(r.ClosedStations) > MaxClosedStations {
		return ErrInvalidInput("too many closed stations")
	}

	return nil
}

// MaxClosedStations caps the closed_stations list of one request
const MaxClosedStations = 100

// ErrInvalidInput creates a validation error
func ErrInvalidInput(message string) error {
	return &ValidationError{Message: message}
}

// ValidationError represents a validation error
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
