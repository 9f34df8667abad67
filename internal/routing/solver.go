package routing

import (
	"container/heap"

	"github.com/smarttransit/transit-router/internal/network"
)

// state is a search position: the node plus the system whose fare was last entered.
// After a transfer edge, last is the new node's own system until a ride confirms it.
type state struct {
	node Node
	last network.SystemID
}

// Solve finds the minimum-time route between two station names.
//
// Every node sharing the origin's station key is a source and every node sharing
// the destination's key is a target. A nil route with a nil error means no path
// exists under the graph's closures. Unknown names yield an *InputError.
func Solve(g *Graph, origin, destination string) (*Route, error) {
	sources := g.index.Lookup(origin)
	if len(sources) == 0 {
		return nil, &InputError{Role: RoleOrigin, Name: origin}
	}
	targets := g.index.Lookup(destination)
	if len(targets) == 0 {
		return nil, &InputError{Role: RoleDestination, Name: destination}
	}

	isTarget := make(map[Node]bool, len(targets))
	for _, n := range targets {
		isTarget[n] = true
	}

	dist := make(map[state]float64)
	prev := make(map[state]state)

	pq := &priorityQueue{}
	heap.Init(pq)
	seq := 0
	push := func(s state, cost float64) {
		heap.Push(pq, &pqItem{state: s, cost: cost, seq: seq})
		seq++
	}

	for _, n := range sources {
		start := state{node: n, last: n.System}
		dist[start] = 0
		push(start, 0)
	}

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		current := item.state
		if item.cost > dist[current] {
			continue
		}

		if isTarget[current.node] {
			path := reconstructPath(prev, current)
			return Compose(path, item.cost, g.fares), nil
		}

		for _, e := range g.adjacency[current.node] {
			last := network.SystemID(e.Mode)
			if e.IsTransfer() {
				last = e.To.System
			}
			next := state{node: e.To, last: last}
			cost := item.cost + e.Minutes

			if old, ok := dist[next]; !ok || cost < old {
				dist[next] = cost
				prev[next] = current
				push(next, cost)
			}
		}
	}

	return nil, nil
}

// reconstructPath follows predecessor links back to a source and returns the
// nodes in travel order
func reconstructPath(prev map[state]state, terminal state) []Node {
	var path []Node
	current := terminal
	for {
		path = append(path, current.node)
		p, ok := prev[current]
		if !ok {
			break
		}
		current = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type pqItem struct {
	state state
	cost  float64
	seq   int
}

// priorityQueue orders by cost, then by push order
type priorityQueue []*pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].cost != pq[j].cost {
		return pq[i].cost < pq[j].cost
	}
	return pq[i].seq < pq[j].seq
}
func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x interface{}) {
	item := x.(*pqItem)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}
