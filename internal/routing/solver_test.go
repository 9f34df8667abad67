package routing

import (
	"math"
	"testing"

	"github.com/smarttransit/transit-router/internal/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wantSegment struct {
	system   network.SystemID
	line     string
	board    string
	alight   string
	stations int
}

func assertSegments(t *testing.T, want []wantSegment, got []Segment) {
	t.Helper()
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.Equal(t, w.system, got[i].System, "segment %d", i)
		assert.Equal(t, w.line, got[i].Line, "segment %d", i)
		assert.Equal(t, w.board, got[i].Board(), "segment %d", i)
		assert.Equal(t, w.alight, got[i].Alight(), "segment %d", i)
		assert.Len(t, got[i].Stations, w.stations, "segment %d", i)
	}
}

func TestSolve_CDMX(t *testing.T) {
	net := cdmx(t)

	tests := []struct {
		name     string
		origin   string
		dest     string
		stations []string
		segments []ClosedSegment
		minutes  float64
		fare     float64
		want     []wantSegment
	}{
		{
			name:    "line change inside metro is free",
			origin:  "Pantitlán",
			dest:    "Observatorio",
			minutes: 22,
			fare:    5,
			want: []wantSegment{
				{network.Metro, "L9", "Pantitlán", "Tacubaya", 9},
				{network.Metro, "L1", "Tacubaya", "Observatorio", 2},
			},
		},
		{
			name:     "closed metro segment forces a trolleybus detour",
			origin:   "Pantitlán",
			dest:     "Observatorio",
			segments: []ClosedSegment{{From: "Pantitlán", To: "Puebla", System: "METRO"}},
			minutes:  27,
			fare:     14,
			want: []wantSegment{
				{network.Metro, "L1", "Pantitlán", "Boulevard Puerto Aéreo", 4},
				{network.Trolebus, "T4", "Boulevard Puerto Aéreo", "Centro Médico", 2},
				{network.Metro, "L9", "Centro Médico", "Tacubaya", 3},
				{network.Metro, "L1", "Tacubaya", "Observatorio", 2},
			},
		},
		{
			name:     "closed station behaves like its closed segments",
			origin:   "Pantitlán",
			dest:     "Observatorio",
			stations: []string{"Puebla"},
			minutes:  27,
			fare:     14,
			want: []wantSegment{
				{network.Metro, "L1", "Pantitlán", "Boulevard Puerto Aéreo", 4},
				{network.Trolebus, "T4", "Boulevard Puerto Aéreo", "Centro Médico", 2},
				{network.Metro, "L9", "Centro Médico", "Tacubaya", 3},
				{network.Metro, "L1", "Tacubaya", "Observatorio", 2},
			},
		},
		{
			name:    "trolleybus to metro",
			origin:  "Eje 8 Sur",
			dest:    "Bellas Artes",
			minutes: 9,
			fare:    9,
			want: []wantSegment{
				{network.Trolebus, "T5", "Eje 8 Sur", "Hidalgo", 2},
				{network.Metro, "L2", "Hidalgo", "Bellas Artes", 2},
			},
		},
		{
			name:     "closed hub reroutes through three trolleybus lines",
			origin:   "Eje 8 Sur",
			dest:     "Bellas Artes",
			stations: []string{"hidalgo"},
			minutes:  42,
			fare:     9,
			want: []wantSegment{
				{network.Trolebus, "T5", "Eje 8 Sur", "San Felipe de Jesús", 2},
				{network.Trolebus, "T13", "San Felipe de Jesús", "Constitución de 1917", 3},
				{network.Trolebus, "T8", "Constitución de 1917", "Iztacalco", 2},
				{network.Metro, "L8", "Iztacalco", "Bellas Artes", 10},
			},
		},
		{
			name:     "three systems charge three fares",
			origin:   "Eje 8 Sur",
			dest:     "Juárez",
			stations: []string{"Hidalgo"},
			minutes:  42,
			fare:     15,
			want: []wantSegment{
				{network.Trolebus, "T5", "Eje 8 Sur", "San Felipe de Jesús", 2},
				{network.Trolebus, "T13", "San Felipe de Jesús", "Constitución de 1917", 3},
				{network.Trolebus, "T8", "Constitución de 1917", "Iztacalco", 2},
				{network.Metro, "L8", "Iztacalco", "Obrera", 5},
				{network.Metrobus, "MB4", "Obrera", "Juárez", 3},
			},
		},
		{
			name:    "metro then metrobus",
			origin:  "Observatorio",
			dest:    "Indios Verdes",
			minutes: 23,
			fare:    11,
			want: []wantSegment{
				{network.Metro, "L1", "Observatorio", "Tacubaya", 2},
				{network.Metro, "L7", "Tacubaya", "Auditorio", 3},
				{network.Metrobus, "MB7", "Auditorio", "Indios Verdes", 4},
			},
		},
		{
			name:    "four segments",
			origin:  "Tasqueña",
			dest:    "Perisur",
			minutes: 33,
			fare:    9,
			want: []wantSegment{
				{network.Metro, "L2", "Tasqueña", "Ermita", 3},
				{network.Metro, "L12", "Ermita", "Zapata", 4},
				{network.Metro, "L3", "Zapata", "División del Norte", 2},
				{network.Trolebus, "T12", "División del Norte", "Perisur", 4},
			},
		},
		{
			name:    "single hop",
			origin:  "Tenayuca",
			dest:    "Progreso Nacional",
			minutes: 3,
			fare:    6,
			want: []wantSegment{
				{network.Metrobus, "MB3", "Tenayuca", "Progreso Nacional", 2},
			},
		},
		{
			name:     "segment closed on another system",
			origin:   "Tenayuca",
			dest:     "Progreso Nacional",
			segments: []ClosedSegment{{From: "Tenayuca", To: "Progreso Nacional", System: "METRO"}},
			minutes:  3,
			fare:     6,
			want: []wantSegment{
				{network.Metrobus, "MB3", "Tenayuca", "Progreso Nacional", 2},
			},
		},
		{
			name:    "name variants resolve to the same station",
			origin:  "zócalo/tenochtitlan",
			dest:    "Zócalo (Tenochtitlan)",
			minutes: 0,
			fare:    5,
			want: []wantSegment{
				{network.Metro, "L2", "Zócalo/Tenochtitlan", "Zócalo/Tenochtitlan", 1},
			},
		},
		{
			name:    "isolated line",
			origin:  "Periférico Sur / CU",
			dest:    "Ciudad Universitaria",
			minutes: 3,
			fare:    4,
			want: []wantSegment{
				{network.Trolebus, "T7", "Periférico Sur / CU", "Ciudad Universitaria", 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Build(net, tt.stations, tt.segments)

			route, err := Solve(g, tt.origin, tt.dest)
			require.NoError(t, err)
			require.NotNil(t, route)

			assert.Equal(t, tt.minutes, route.Minutes)
			assert.Equal(t, tt.fare, route.Fare)
			assertSegments(t, tt.want, route.Segments)
		})
	}
}

func TestSolve_NotFound(t *testing.T) {
	net := cdmx(t)

	tests := []struct {
		name     string
		origin   string
		dest     string
		stations []string
		segments []ClosedSegment
	}{
		{"both exits closed", "Eje 8 Sur", "Juárez", []string{"Hidalgo", "San Felipe de Jesús"}, nil},
		{"wildcard segment", "Tenayuca", "Progreso Nacional", nil, []ClosedSegment{{From: "Tenayuca", To: "Progreso Nacional", System: AnySystem}}},
		{"segment closed on its own system", "Tenayuca", "Progreso Nacional", nil, []ClosedSegment{{From: "progreso nacional", To: "tenayuca", System: "METROBUS"}}},
		{"isolated line", "Periférico Sur / CU", "Observatorio", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Build(net, tt.stations, tt.segments)

			route, err := Solve(g, tt.origin, tt.dest)
			assert.NoError(t, err)
			assert.Nil(t, route)
		})
	}
}

func TestSolve_UnknownStations(t *testing.T) {
	g := Build(cdmx(t), []string{"Hidalgo"}, nil)

	tests := []struct {
		name    string
		origin  string
		dest    string
		role    string
		message string
	}{
		{"unknown origin", "Nowhere", "Observatorio", RoleOrigin, "origin not found: 'Nowhere'"},
		{"unknown destination", "Observatorio", "Nowhere", RoleDestination, "destination not found: 'Nowhere'"},
		{"origin checked first", "Nowhere", "Elsewhere", RoleOrigin, "origin not found: 'Nowhere'"},
		{"closed destination", "Observatorio", "Hidalgo", RoleDestination, "destination not found: 'Hidalgo'"},
		{"blank origin", "   ", "Observatorio", RoleOrigin, "origin not found: '   '"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, err := Solve(g, tt.origin, tt.dest)
			assert.Nil(t, route)
			require.Error(t, err)

			inputErr, ok := err.(*InputError)
			require.True(t, ok, "error should be InputError")
			assert.Equal(t, tt.role, inputErr.Role)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestSolve_SameStation(t *testing.T) {
	g := Build(cdmx(t), nil, nil)

	route, err := Solve(g, "Hidalgo", "HIDALGO")
	require.NoError(t, err)
	require.NotNil(t, route)

	assert.Equal(t, 0.0, route.Minutes)
	assert.Equal(t, 5.0, route.Fare)
	require.Len(t, route.Path, 1)
	assert.Equal(t, "Hidalgo", route.Path[0].Station)
	assert.Nil(t, route.Transfers())
}

func TestSolve_PrefersTimeOverFare(t *testing.T) {
	g := Build(fixtureNetwork(), nil, nil)

	// X-Y-Z, transfer, Z-W costs 10 on one fare; X-Y, transfer, Y-W costs 9 on two
	route, err := Solve(g, "X", "W")
	require.NoError(t, err)
	require.NotNil(t, route)

	assert.Equal(t, 9.0, route.Minutes)
	assert.Equal(t, 11.0, route.Fare)
	assertSegments(t, []wantSegment{
		{network.Metro, "L1", "X", "Y", 2},
		{network.Metrobus, "MB1", "Y", "W", 2},
	}, route.Segments)
	assert.Equal(t, []string{"Y"}, route.Transfers())
	assert.Equal(t, []network.SystemID{network.Metro, network.Metrobus}, route.Systems())
}

func TestSolve_PathInvariants(t *testing.T) {
	net := cdmx(t)
	g := Build(net, []string{"Balderas"}, nil)

	route, err := Solve(g, "Tasqueña", "Indios Verdes")
	require.NoError(t, err)
	require.NotNil(t, route)

	assert.Equal(t, "tasqueña", route.Path[0].Key())
	assert.Equal(t, "indios verdes", route.Path[len(route.Path)-1].Key())

	total := 0.0
	for i := 0; i+1 < len(route.Path); i++ {
		edges := edgesBetween(g, route.Path[i], route.Path[i+1])
		require.Len(t, edges, 1, "no edge %s -> %s", route.Path[i], route.Path[i+1])
		total += edges[0].Minutes
		assert.NotEqual(t, "balderas", route.Path[i].Key())
	}
	assert.InDelta(t, total, route.Minutes, 1e-9)

	stations := 0
	for _, seg := range route.Segments {
		stations += len(seg.Stations)
	}
	assert.Equal(t, len(route.Path), stations)
}

// shortestTimes relaxes every edge until nothing changes and returns the
// cheapest arrival time at each node reachable from the sources
func shortestTimes(g *Graph, sources []Node) map[Node]float64 {
	best := make(map[Node]float64)
	for _, s := range sources {
		best[s] = 0
	}
	for changed := true; changed; {
		changed = false
		for _, n := range g.Nodes() {
			d, ok := best[n]
			if !ok {
				continue
			}
			for _, e := range g.Edges(n) {
				if old, seen := best[e.To]; !seen || d+e.Minutes < old {
					best[e.To] = d + e.Minutes
					changed = true
				}
			}
		}
	}
	return best
}

func TestSolve_MatchesExhaustiveRelaxation(t *testing.T) {
	net := cdmx(t)
	closures := []struct {
		stations []string
		segments []ClosedSegment
	}{
		{nil, nil},
		{[]string{"Hidalgo", "Tacubaya"}, nil},
		{nil, []ClosedSegment{{From: "Pantitlán", To: "Puebla"}, {From: "Balderas", To: "Juárez", System: "METROBUS"}}},
	}
	origins := []string{"Pantitlán", "Eje 8 Sur", "Indios Verdes", "Tasqueña", "Tenayuca"}

	for _, c := range closures {
		g := Build(net, c.stations, c.segments)
		names := net.StationNames()

		for _, origin := range origins {
			sources := g.Index().Lookup(origin)
			if len(sources) == 0 {
				continue
			}
			times := shortestTimes(g, sources)

			for _, dest := range names {
				targets := g.Index().Lookup(dest)
				if len(targets) == 0 {
					continue
				}
				want := math.Inf(1)
				for _, n := range targets {
					if d, ok := times[n]; ok && d < want {
						want = d
					}
				}

				route, err := Solve(g, origin, dest)
				require.NoError(t, err)
				if math.IsInf(want, 1) {
					assert.Nil(t, route, "%s -> %s", origin, dest)
					continue
				}
				require.NotNil(t, route, "%s -> %s", origin, dest)
				assert.InDelta(t, want, route.Minutes, 1e-9, "%s -> %s", origin, dest)
			}
		}
	}
}

func TestSolve_RepeatableAcrossBuilds(t *testing.T) {
	net := cdmx(t)

	first, err := Solve(Build(net, nil, nil), "Observatorio", "Indios Verdes")
	require.NoError(t, err)
	second, err := Solve(Build(net, nil, nil), "Observatorio", "Indios Verdes")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// cheapestByDFS enumerates every simple path between the two station names
func cheapestByDFS(g *Graph, origin, dest string) float64 {
	best := math.Inf(1)
	targets := make(map[Node]bool)
	for _, n := range g.Index().Lookup(dest) {
		targets[n] = true
	}

	visited := make(map[Node]bool)
	var walk func(n Node, cost float64)
	walk = func(n Node, cost float64) {
		if targets[n] {
			best = math.Min(best, cost)
			return
		}
		visited[n] = true
		for _, e := range g.Edges(n) {
			if !visited[e.To] {
				walk(e.To, cost+e.Minutes)
			}
		}
		visited[n] = false
	}
	for _, s := range g.Index().Lookup(origin) {
		walk(s, 0)
	}
	return best
}

func TestSolve_MatchesDFSOnFixture(t *testing.T) {
	net := fixtureNetwork()
	stations := []string{"X", "Y", "Z", "W"}
	closures := [][]ClosedSegment{
		nil,
		{{From: "Y", To: "W", System: "METROBUS"}},
		{{From: "Y", To: "Z"}},
		{{From: "X", To: "Y"}},
	}

	for _, segments := range closures {
		g := Build(net, nil, segments)
		for _, origin := range stations {
			for _, dest := range stations {
				want := cheapestByDFS(g, origin, dest)

				route, err := Solve(g, origin, dest)
				require.NoError(t, err)
				if math.IsInf(want, 1) {
					assert.Nil(t, route, "%s -> %s %v", origin, dest, segments)
					continue
				}
				require.NotNil(t, route, "%s -> %s %v", origin, dest, segments)
				assert.Equal(t, want, route.Minutes, "%s -> %s %v", origin, dest, segments)
			}
		}
	}
}
