package routing

import (
	"math"

	"github.com/smarttransit/transit-router/internal/network"
)

// Segment is a maximal run of consecutive path nodes on the same system and line
type Segment struct {
	System   network.SystemID
	Line     string
	Stations []string
}

// Board returns the station where the segment starts
func (s Segment) Board() string {
	return s.Stations[0]
}

// Alight returns the station where the segment ends
func (s Segment) Alight() string {
	return s.Stations[len(s.Stations)-1]
}

// Hops returns the number of station-to-station moves within the segment
func (s Segment) Hops() int {
	return len(s.Stations) - 1
}

// Route is the result of a successful search
type Route struct {
	Minutes  float64
	Fare     float64
	Segments []Segment
	Path     []Node
}

// Transfers returns, for every segment after the first, the station where it begins
func (r *Route) Transfers() []string {
	if len(r.Segments) < 2 {
		return nil
	}
	out := make([]string, 0, len(r.Segments)-1)
	for _, seg := range r.Segments[1:] {
		out = append(out, seg.Board())
	}
	return out
}

// Systems returns the systems charged along the route, in order
func (r *Route) Systems() []network.SystemID {
	var out []network.SystemID
	var previous network.SystemID
	for _, n := range r.Path {
		if n.System != previous {
			out = append(out, n.System)
			previous = n.System
		}
	}
	return out
}

// Compose derives fare and segments from a node path in travel order.
//
// A fare is charged each time the path's system differs from the last charged
// one, so line changes inside a system are free. Arriving at a node of another
// system through a transfer is charged even if no ride follows.
func Compose(path []Node, minutes float64, fares map[network.SystemID]float64) *Route {
	r := &Route{
		Minutes: math.Round(minutes*100) / 100,
		Path:    path,
	}

	var charged network.SystemID
	for _, n := range path {
		if n.System != charged {
			r.Fare += fares[n.System]
			charged = n.System
		}
	}

	if len(path) == 0 {
		return r
	}
	current := Segment{System: path[0].System, Line: path[0].Line, Stations: []string{path[0].Station}}
	for _, n := range path[1:] {
		if n.System == current.System && n.Line == current.Line {
			current.Stations = append(current.Stations, n.Station)
			continue
		}
		r.Segments = append(r.Segments, current)
		current = Segment{System: n.System, Line: n.Line, Stations: []string{n.Station}}
	}
	r.Segments = append(r.Segments, current)

	return r
}
