// Package store wires a configured record-store backend for the entry
// points. The core only ever sees the ports.RecordStore interface.
package store

import (
	"context"
	"fmt"

	"github.com/webserv42/auth-system/internal/core/ports"
	"github.com/webserv42/auth-system/internal/infrastructure/config"
	filestore "github.com/webserv42/auth-system/internal/infrastructure/store/file"
	mongostore "github.com/webserv42/auth-system/internal/infrastructure/store/mongo"
)

// Open builds the record store selected by cfg.Backend and returns it with a
// cleanup function for whatever resources the backend holds.
func Open(ctx context.Context, cfg config.StoreConfig) (ports.RecordStore, func(), error) {
	switch cfg.Backend {
	case "", "file":
		return filestore.New(cfg.Path, cfg.LockTimeout), func() {}, nil

	case "mongo":
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, err
		}
		s := mongostore.NewStore(db)
		if err := s.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, err
		}
		cleanup := func() { _ = client.Disconnect(context.Background()) }
		return s, cleanup, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
