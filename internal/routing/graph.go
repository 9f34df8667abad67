// Package routing builds the multimodal station graph for one closure set and
// searches it for the fastest route between two station names.
package routing

import (
	"fmt"

	"github.com/smarttransit/transit-router/internal/network"
	"github.com/smarttransit/transit-router/pkg/validator"
)

// Mode labels an edge: the owning system for a ride edge, or ModeTransfer
type Mode string

// ModeTransfer marks a walking edge between two nodes sharing a station key
const ModeTransfer Mode = "TRANSFER"

// Node is a station as served by one line of one system.
// Nodes are comparable values; two nodes are equal when all three fields are.
type Node struct {
	Station string
	System  network.SystemID
	Line    string
}

// Key returns the normalized station name of the node
func (n Node) Key() string {
	return validator.Normalize(n.Station)
}

func (n Node) String() string {
	return fmt.Sprintf("%s (%s-%s)", n.Station, n.System, n.Line)
}

// Edge is a directed connection with a cost in minutes
type Edge struct {
	To      Node
	Minutes float64
	Mode    Mode
}

// IsTransfer reports whether the edge is a walking transfer
func (e Edge) IsTransfer() bool {
	return e.Mode == ModeTransfer
}

// NameIndex maps a normalized station key to every node sharing it
type NameIndex map[string][]Node

// Lookup resolves a free-form station name to its nodes
func (idx NameIndex) Lookup(name string) []Node {
	return idx[validator.Normalize(name)]
}

// Graph is the adjacency structure for one closure set. It is read-only once built.
type Graph struct {
	adjacency       map[Node][]Edge
	index           NameIndex
	nodes           []Node
	fares           map[network.SystemID]float64
	transferPenalty float64
}

// Edges returns the outgoing edges of n in insertion order
func (g *Graph) Edges(n Node) []Edge {
	return g.adjacency[n]
}

// Index returns the name index built alongside the graph
func (g *Graph) Index() NameIndex {
	return g.index
}

// Nodes returns every node in creation order
func (g *Graph) Nodes() []Node {
	return g.nodes
}

// Has reports whether n exists in the graph
func (g *Graph) Has(n Node) bool {
	for _, m := range g.index[n.Key()] {
		if m == n {
			return true
		}
	}
	return false
}

// Fares returns the per-entry fare table of the source network
func (g *Graph) Fares() map[network.SystemID]float64 {
	return g.fares
}

// TransferPenalty returns the cost in minutes of every transfer edge
func (g *Graph) TransferPenalty() float64 {
	return g.transferPenalty
}

// EdgeCount returns the number of directed edges
func (g *Graph) EdgeCount() int {
	total := 0
	for _, edges := range g.adjacency {
		total += len(edges)
	}
	return total
}

func (g *Graph) addEdge(from, to Node, minutes float64, mode Mode) {
	g.adjacency[from] = append(g.adjacency[from], Edge{To: to, Minutes: minutes, Mode: mode})
}
