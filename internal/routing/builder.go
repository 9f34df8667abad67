package routing

import (
	"github.com/smarttransit/transit-router/internal/network"
	"github.com/smarttransit/transit-router/pkg/validator"
)

// Build constructs the graph and name index for one set of closures.
//
// Closed stations produce no node and no incident edge. A closed segment only
// suppresses the ride edge pair between its two stations, for its system or for
// every system when tagged AnySystem. Closures naming unknown stations have no effect.
// After all lines are added, every pair of nodes sharing a station key is joined
// by transfer edges costing the network's transfer penalty.
func Build(net *network.Network, closedStations []string, closedSegments []ClosedSegment) *Graph {
	closures := newClosureSet(closedStations, closedSegments)

	g := &Graph{
		adjacency:       make(map[Node][]Edge),
		index:           make(NameIndex),
		fares:           net.Fares(),
		transferPenalty: net.TransferPenaltyMinutes,
	}
	seen := make(map[Node]struct{})

	for _, sys := range net.Systems {
		mode := Mode(sys.ID)
		for _, line := range sys.Lines {
			keys := make([]string, len(line.Stations))
			for i, station := range line.Stations {
				keys[i] = validator.Normalize(station)
				if closures.stationClosed(keys[i]) {
					continue
				}
				n := Node{Station: station, System: sys.ID, Line: line.ID}
				if _, ok := seen[n]; ok {
					continue
				}
				seen[n] = struct{}{}
				g.nodes = append(g.nodes, n)
				g.index[keys[i]] = append(g.index[keys[i]], n)
			}

			for i := 0; i+1 < len(line.Stations); i++ {
				ka, kb := keys[i], keys[i+1]
				if closures.stationClosed(ka) || closures.stationClosed(kb) {
					continue
				}
				if closures.segmentClosed(ka, kb, string(sys.ID)) {
					continue
				}
				a := Node{Station: line.Stations[i], System: sys.ID, Line: line.ID}
				b := Node{Station: line.Stations[i+1], System: sys.ID, Line: line.ID}
				g.addEdge(a, b, sys.HopMinutes, mode)
				g.addEdge(b, a, sys.HopMinutes, mode)
			}
		}
	}

	grouped := make(map[string]bool)
	for _, n := range g.nodes {
		key := n.Key()
		if grouped[key] {
			continue
		}
		grouped[key] = true

		group := g.index[key]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				g.addEdge(group[i], group[j], g.transferPenalty, ModeTransfer)
				g.addEdge(group[j], group[i], g.transferPenalty, ModeTransfer)
			}
		}
	}

	return g
}
