// Package presenter renders route results for the console.
package presenter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/smarttransit/transit-router/internal/routing"
)

// Options controls console rendering
type Options struct {
	Currency   string
	MaxDisplay int // full path is printed only up to this many nodes; 0 prints it always
}

// NotFoundMessage is printed when no route exists under the closures
const NotFoundMessage = "No route is available with the given restrictions."

const arrow = "  →  "

// printer keeps the first write error so rendering code can stay linear
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Render writes a route: header, time, fare, numbered segments with transfer
// markers, and the full node path when it fits the display cap
func Render(w io.Writer, route *routing.Route, origin, destination string, opts Options) error {
	if route == nil {
		return RenderNotFound(w)
	}
	p := &printer{w: w}

	p.printf("\n--- Fastest route: %s%s%s ---\n", origin, arrow, destination)
	p.printf("Estimated time: %s minutes\n", formatMinutes(route.Minutes))
	p.printf("Estimated fare: $%.2f %s\n", route.Fare, opts.Currency)
	p.printf("\nSegments:\n")

	for i, seg := range route.Segments {
		p.printf("  %d) %s (Line %s): %s%s%s\n", i+1, seg.System, seg.Line, seg.Board(), arrow, seg.Alight())
		if i+1 < len(route.Segments) {
			p.printf("     └─ Transfer at: %s\n", route.Segments[i+1].Board())
		}
	}

	if opts.MaxDisplay == 0 || len(route.Path) <= opts.MaxDisplay {
		stops := make([]string, 0, len(route.Path))
		for _, n := range route.Path {
			stops = append(stops, n.String())
		}
		p.printf("\nFull path (Station (SYSTEM-LINE)):\n")
		p.printf("  %s\n", strings.Join(stops, arrow))
	}

	return p.err
}

// RenderNotFound writes the NotFound message
func RenderNotFound(w io.Writer) error {
	_, err := fmt.Fprintf(w, "\n%s\n", NotFoundMessage)
	return err
}

// formatMinutes prints whole minutes with one decimal and keeps up to two otherwise
func formatMinutes(m float64) string {
	s := strconv.FormatFloat(m, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
