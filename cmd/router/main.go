package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/smarttransit/transit-router/internal/config"
	"github.com/smarttransit/transit-router/internal/database"
	"github.com/smarttransit/transit-router/internal/network"
	"github.com/smarttransit/transit-router/internal/presenter"
	"github.com/smarttransit/transit-router/internal/routing"
)

// query is one console request
type query struct {
	from           string
	to             string
	closedStations string
	closedSegments string
}

func main() {
	var q query
	flag.StringVar(&q.from, "from", "", "origin station")
	flag.StringVar(&q.to, "to", "", "destination station")
	flag.StringVar(&q.closedStations, "closed-stations", "", "comma separated closed stations")
	flag.StringVar(&q.closedSegments, "closed-segments", "", "closed segments, e.g. \"A-B, C-D:METRO\"")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.Server.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	loader, db, err := database.OpenNetworkLoader(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	net, err := loader.LoadNetwork()
	if err != nil {
		logger.Fatalf("Failed to load network: %v", err)
	}
	logger.WithField("network", net.Name).Debug("Network loaded")

	if q.from == "" || q.to == "" {
		fmt.Printf("=== Router %s: ", net.Name)
		for i, sys := range net.Systems {
			if i > 0 {
				fmt.Print(" + ")
			}
			fmt.Print(sys.Name)
		}
		fmt.Println(" ===")

		q, err = prompt(bufio.NewReader(os.Stdin), os.Stdout, q)
		if err != nil && !errors.Is(err, io.EOF) {
			logger.Fatalf("Failed to read input: %v", err)
		}
	}

	run(os.Stdout, net, cfg, q)
}

// prompt asks for every field not already set by flags
func prompt(in *bufio.Reader, out io.Writer, q query) (query, error) {
	fields := []struct {
		label string
		dest  *string
	}{
		{"Origin station: ", &q.from},
		{"Destination station: ", &q.to},
		{"Closed stations (comma separated, ENTER for none): ", &q.closedStations},
		{"Closed segments (e.g. A-B or A-B:METRO, comma separated): ", &q.closedSegments},
	}

	for _, f := range fields {
		if *f.dest != "" {
			continue
		}
		fmt.Fprint(out, f.label)
		line, err := in.ReadString('\n')
		*f.dest = strings.TrimSpace(line)
		if err != nil {
			return q, err
		}
	}
	return q, nil
}

// run builds, solves and prints one query, translating errors for the console
func run(out io.Writer, net *network.Network, cfg *config.Config, q query) {
	closedStations := routing.ParseClosedStations(q.closedStations, cfg.Network.ClosureDelimiter)
	closedSegments := routing.ParseClosedSegments(q.closedSegments, cfg.Network.ClosureDelimiter)

	fmt.Fprintln(out, "\nCalculating route...")
	g := routing.Build(net, closedStations, closedSegments)

	from, to := strings.TrimSpace(q.from), strings.TrimSpace(q.to)
	route, err := routing.Solve(g, from, to)
	if err != nil {
		var inputErr *routing.InputError
		if errors.As(err, &inputErr) {
			fmt.Fprintf(out, "Error: %v\n", err)
		} else {
			fmt.Fprintf(out, "Unexpected error: %v\n", err)
		}
		return
	}

	opts := presenter.Options{Currency: net.Currency, MaxDisplay: net.DisplayCap(cfg.Network.MaxDisplayStations)}
	if err := presenter.Render(out, route, from, to, opts); err != nil {
		fmt.Fprintf(out, "Unexpected error: %v\n", err)
	}
}
