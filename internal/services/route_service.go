package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bluele/gcache"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/smarttransit/transit-router/internal/models"
	"github.com/smarttransit/transit-router/internal/network"
	"github.com/smarttransit/transit-router/internal/routing"
	"github.com/smarttransit/transit-router/pkg/validator"
)

// Autocomplete limits
const (
	DefaultSuggestionLimit = 10
	MaxSuggestionLimit     = 50
	minSuggestionRunes     = 2
)

// RouteOptions tunes a RouteService
type RouteOptions struct {
	CacheSize          int
	CacheTTL           time.Duration
	ClosureDelimiter   string
	MaxDisplayStations int // 0 uses the network's own cap
}

// RouteService answers route queries against one loaded network.
// Graphs are built per closure set and kept in an LRU cache.
type RouteService struct {
	net        *network.Network
	graphs     gcache.Cache
	names      *validator.StationNameValidator
	delimiter  string
	maxDisplay int
	stations   []stationEntry
	logger     *logrus.Logger
}

// stationEntry is one autocomplete candidate per station key
type stationEntry struct {
	name    string
	folded  string
	systems []string
	lines   []string
}

// NewRouteService creates a new route service
func NewRouteService(net *network.Network, opts RouteOptions, logger *logrus.Logger) *RouteService {
	size := opts.CacheSize
	if size <= 0 {
		size = 64
	}
	builder := gcache.New(size).LRU()
	if opts.CacheTTL > 0 {
		builder = builder.Expiration(opts.CacheTTL)
	}

	delimiter := opts.ClosureDelimiter
	if delimiter == "" {
		delimiter = routing.DefaultDelimiter
	}

	return &RouteService{
		net:        net,
		graphs:     builder.Build(),
		names:      validator.NewStationNameValidator(),
		delimiter:  delimiter,
		maxDisplay: net.DisplayCap(opts.MaxDisplayStations),
		stations:   indexStations(net),
		logger:     logger,
	}
}

// FindRoute returns the fastest route for the request.
//
// Unknown station names surface as *routing.InputError and malformed requests as
// *models.ValidationError. A request with no route under its closures is not an
// error: the response carries StatusNotFound.
func (s *RouteService) FindRoute(req *models.RouteRequest) (*models.RouteResponse, error) {
	startTime := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	from, err := s.names.Validate(req.From)
	if err != nil {
		return nil, models.ErrInvalidInput(fmt.Sprintf("from: %v", err))
	}
	to, err := s.names.Validate(req.To)
	if err != nil {
		return nil, models.ErrInvalidInput(fmt.Sprintf("to: %v", err))
	}

	closedStations := make([]string, 0, len(req.ClosedStations))
	for _, name := range req.ClosedStations {
		if name = strings.TrimSpace(name); name != "" {
			closedStations = append(closedStations, name)
		}
	}
	closedSegments := routing.ParseClosedSegments(req.ClosedSegments, s.delimiter)

	s.logger.WithFields(logrus.Fields{
		"from":            from,
		"to":              to,
		"closed_stations": len(closedStations),
		"closed_segments": len(closedSegments),
	}).Info("Processing route request")

	g := s.graphFor(closedStations, closedSegments)

	route, err := routing.Solve(g, from, to)
	if err != nil {
		return nil, err
	}

	response := &models.RouteResponse{
		From:           from,
		To:             to,
		Currency:       s.net.Currency,
		Segments:       []models.RouteSegment{},
		Transfers:      []string{},
		ClosedStations: closedStations,
		ClosedSegments: toClosedSegmentModels(closedSegments),
	}

	if route == nil {
		response.Status = models.StatusNotFound
		response.Message = "No route found with the current closures"
		response.SearchTimeMs = time.Since(startTime).Milliseconds()
		s.logger.WithFields(logrus.Fields{
			"from": from,
			"to":   to,
		}).Info("No route found")
		return response, nil
	}

	routeID := uuid.New()
	response.Status = models.StatusSuccess
	response.RouteID = &routeID
	response.TotalMinutes = route.Minutes
	response.TotalFare = route.Fare
	response.PathLength = len(route.Path)

	for _, seg := range route.Segments {
		response.Segments = append(response.Segments, models.RouteSegment{
			System:   string(seg.System),
			Line:     seg.Line,
			From:     seg.Board(),
			To:       seg.Alight(),
			Stations: seg.Stations,
			Stops:    seg.Hops(),
		})
	}
	if transfers := route.Transfers(); transfers != nil {
		response.Transfers = transfers
	}

	if s.maxDisplay == 0 || len(route.Path) <= s.maxDisplay {
		response.Path = make([]models.PathStop, 0, len(route.Path))
		for _, n := range route.Path {
			response.Path = append(response.Path, models.PathStop{
				Station: n.Station,
				System:  string(n.System),
				Line:    n.Line,
			})
		}
	} else {
		response.PathTruncated = true
	}

	response.Message = fmt.Sprintf("Fastest route takes %.2f min with %d transfer(s)", route.Minutes, len(response.Transfers))
	response.SearchTimeMs = time.Since(startTime).Milliseconds()

	s.logger.WithFields(logrus.Fields{
		"route_id":  routeID,
		"minutes":   route.Minutes,
		"fare":      route.Fare,
		"segments":  len(route.Segments),
		"search_ms": response.SearchTimeMs,
	}).Info("Route found")

	return response, nil
}

// graphFor returns the cached graph for a closure set, building it on a miss
func (s *RouteService) graphFor(closedStations []string, closedSegments []routing.ClosedSegment) *routing.Graph {
	key := routing.ClosureKey(closedStations, closedSegments)

	if cached, err := s.graphs.Get(key); err == nil {
		if g, ok := cached.(*routing.Graph); ok {
			return g
		}
	}

	g := routing.Build(s.net, closedStations, closedSegments)
	if err := s.graphs.Set(key, g); err != nil {
		s.logger.WithError(err).Warn("Failed to cache graph")
	}
	s.logger.WithFields(logrus.Fields{
		"nodes": len(g.Nodes()),
		"edges": g.EdgeCount(),
	}).Debug("Built graph")
	return g
}

// CacheStats reports graph cache usage
func (s *RouteService) CacheStats() map[string]interface{} {
	return map[string]interface{}{
		"hits":      s.graphs.HitCount(),
		"misses":    s.graphs.MissCount(),
		"hit_ratio": s.graphs.HitRate(),
	}
}

// Autocomplete returns stations whose name starts with or contains the term,
// ignoring case and accents. Prefix matches come first.
func (s *RouteService) Autocomplete(term string, limit int) []models.StationSuggestion {
	suggestions := []models.StationSuggestion{}

	folded := validator.Fold(term)
	if utf8.RuneCountInString(folded) < minSuggestionRunes {
		return suggestions
	}

	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	if limit > MaxSuggestionLimit {
		limit = MaxSuggestionLimit
	}

	var contains []stationEntry
	for _, st := range s.stations {
		if len(suggestions) >= limit {
			break
		}
		switch {
		case strings.HasPrefix(st.folded, folded):
			suggestions = append(suggestions, st.suggestion())
		case strings.Contains(st.folded, folded):
			contains = append(contains, st)
		}
	}
	for _, st := range contains {
		if len(suggestions) >= limit {
			break
		}
		suggestions = append(suggestions, st.suggestion())
	}

	return suggestions
}

// Network summarizes the loaded network
func (s *RouteService) Network() models.NetworkSummary {
	summary := models.NetworkSummary{
		Name:                   s.net.Name,
		Currency:               s.net.Currency,
		TransferPenaltyMinutes: s.net.TransferPenaltyMinutes,
		StationCount:           len(s.stations),
	}
	for _, sys := range s.net.Systems {
		ss := models.SystemSummary{
			ID:         string(sys.ID),
			Name:       sys.Name,
			HopMinutes: sys.HopMinutes,
			Fare:       sys.Fare,
		}
		for _, line := range sys.Lines {
			ss.Lines = append(ss.Lines, models.LineSummary{
				ID:       line.ID,
				From:     line.Stations[0],
				To:       line.Stations[len(line.Stations)-1],
				Stations: len(line.Stations),
			})
		}
		summary.Systems = append(summary.Systems, ss)
	}
	return summary
}

func (e stationEntry) suggestion() models.StationSuggestion {
	return models.StationSuggestion{
		Name:    e.name,
		Systems: e.systems,
		Lines:   e.lines,
	}
}

// indexStations groups every station display name by its key, keeping the
// first spelling seen in network order
func indexStations(net *network.Network) []stationEntry {
	var entries []stationEntry
	position := make(map[string]int)

	for _, sys := range net.Systems {
		for _, line := range sys.Lines {
			for _, name := range line.Stations {
				key := validator.Normalize(name)
				if key == "" {
					continue
				}
				i, ok := position[key]
				if !ok {
					i = len(entries)
					position[key] = i
					entries = append(entries, stationEntry{name: name, folded: validator.Fold(name)})
				}
				e := &entries[i]
				if !contains(e.systems, string(sys.ID)) {
					e.systems = append(e.systems, string(sys.ID))
				}
				if tag := string(sys.ID) + "-" + line.ID; !contains(e.lines, tag) {
					e.lines = append(e.lines, tag)
				}
			}
		}
	}
	return entries
}

func toClosedSegmentModels(segments []routing.ClosedSegment) []models.ClosedSegment {
	if len(segments) == 0 {
		return nil
	}
	out := make([]models.ClosedSegment, 0, len(segments))
	for _, seg := range segments {
		out = append(out, models.ClosedSegment{From: seg.From, To: seg.To, System: seg.System})
	}
	return out
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
