package routing

import (
	"sort"
	"strconv"
	"strings"

	"github.com/smarttransit/transit-router/pkg/validator"
)

// AnySystem is the wildcard system tag of a closed segment
const AnySystem = "ANY"

// DefaultDelimiter separates entries in closure text
const DefaultDelimiter = ","

// ClosedSegment suppresses the ride edges between two consecutive stations.
// An empty System is treated as AnySystem.
type ClosedSegment struct {
	From   string
	To     string
	System string
}

// segmentKey is a closed segment after normalization
type segmentKey struct {
	from   string
	to     string
	system string
}

// key normalizes both ends. A blank tag, including an explicit "A-B:", widens to
// AnySystem rather than matching no system.
func (s ClosedSegment) key() segmentKey {
	system := strings.ToUpper(strings.TrimSpace(s.System))
	if system == "" {
		system = AnySystem
	}
	return segmentKey{
		from:   validator.Normalize(s.From),
		to:     validator.Normalize(s.To),
		system: system,
	}
}

// closureSet is the normalized, symmetric form of a query's closures
type closureSet struct {
	stations map[string]struct{}
	segments map[segmentKey]struct{}
}

func newClosureSet(closedStations []string, closedSegments []ClosedSegment) closureSet {
	cs := closureSet{
		stations: make(map[string]struct{}, len(closedStations)),
		segments: make(map[segmentKey]struct{}, 2*len(closedSegments)),
	}
	for _, s := range closedStations {
		if key := validator.Normalize(s); key != "" {
			cs.stations[key] = struct{}{}
		}
	}
	for _, seg := range closedSegments {
		k := seg.key()
		cs.segments[k] = struct{}{}
		cs.segments[segmentKey{from: k.to, to: k.from, system: k.system}] = struct{}{}
	}
	return cs
}

func (cs closureSet) stationClosed(key string) bool {
	_, ok := cs.stations[key]
	return ok
}

func (cs closureSet) segmentClosed(from, to, system string) bool {
	if _, ok := cs.segments[segmentKey{from: from, to: to, system: system}]; ok {
		return true
	}
	_, ok := cs.segments[segmentKey{from: from, to: to, system: AnySystem}]
	return ok
}

// ParseClosedSegments reads closure text such as "Hidalgo-Juárez, Balderas-Juárez:METROBUS".
// Entries without a "-" are skipped. An empty delimiter means DefaultDelimiter.
func ParseClosedSegments(raw, delimiter string) []ClosedSegment {
	var out []ClosedSegment
	if strings.TrimSpace(raw) == "" {
		return out
	}
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	for _, part := range strings.Split(raw, delimiter) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		system := AnySystem
		if pair, tag, ok := strings.Cut(part, ":"); ok {
			system = strings.ToUpper(strings.TrimSpace(tag))
			part = strings.TrimSpace(pair)
		}

		from, to, ok := strings.Cut(part, "-")
		if !ok {
			continue
		}
		out = append(out, ClosedSegment{
			From:   strings.TrimSpace(from),
			To:     strings.TrimSpace(to),
			System: system,
		})
	}
	return out
}

// ParseClosedStations splits a list of station names and drops blanks
func ParseClosedStations(raw, delimiter string) []string {
	var out []string
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	for _, s := range strings.Split(raw, delimiter) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ClosureKey returns a canonical text form of a closure set: two sets that
// build the same graph share a key regardless of order, case or direction.
// Every element is quoted, so names carrying separator characters cannot
// collide with a different set.
func ClosureKey(closedStations []string, closedSegments []ClosedSegment) string {
	cs := newClosureSet(closedStations, closedSegments)

	stations := make([]string, 0, len(cs.stations))
	for key := range cs.stations {
		stations = append(stations, strconv.Quote(key))
	}
	sort.Strings(stations)

	segments := make([]string, 0, len(cs.segments)/2)
	for k := range cs.segments {
		if k.from > k.to {
			continue
		}
		segments = append(segments, strconv.Quote(k.from)+"-"+strconv.Quote(k.to)+":"+strconv.Quote(k.system))
	}
	sort.Strings(segments)

	return "stations[" + strings.Join(stations, ",") + "] segments[" + strings.Join(segments, ",") + "]"
}
