package database

import (
	"github.com/smarttransit/transit-router/internal/config"
	"github.com/smarttransit/transit-router/internal/network"
)

// OpenNetworkLoader returns the loader named by the network source. For the
// postgres source it also opens the connection, which the caller must close;
// the returned DB is nil otherwise.
func OpenNetworkLoader(cfg *config.Config) (network.Loader, DB, error) {
	switch cfg.Network.Source {
	case config.SourceFile:
		return network.FileLoader{Path: cfg.Network.File}, nil, nil
	case config.SourcePostgres:
		db, err := NewConnection(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return NewNetworkRepository(db), db, nil
	default:
		return network.EmbeddedLoader{}, nil, nil
	}
}
