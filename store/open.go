package store

import (
	"context"
	"fmt"

	"swissclock.ch/swissclock/core"
	"swissclock.ch/swissclock/directory"
	"swissclock.ch/swissclock/infrastructure/devops"
	"swissclock.ch/swissclock/timeclock"
)

// Backend is the entry store selected by configuration together with the
// directory that belongs to it.
type Backend struct {
	Store     timeclock.Store
	Directory *directory.Static
	Driver    string
	closers   []func() error
}

// Open builds the configured backend. For mysql the tables are created if
// missing and employees come from the employees table; otherwise from the
// configured users.
func Open(ctx context.Context, cfg *devops.Config) (*Backend, error) {
	b := &Backend{Driver: cfg.Storage.Driver}

	switch cfg.Storage.Driver {
	case devops.StorageMySQL:
		dm, err := core.New(cfg.Storage.DSN, cfg.Storage.MaxConnections, core.ParseLogLevel(cfg.LogLevel))
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, dm.Close)
		if err := dm.Migrate(); err != nil {
			b.Close()
			return nil, err
		}
		dir, err := directory.FromDatabase(ctx, dm)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Store = NewGormStore(dm)
		b.Directory = dir
		return b, nil

	case devops.StorageSQLite:
		s, err := NewSQLiteStore(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, s.Close)
		b.Store = s

	case devops.StorageMemory, "":
		b.Store = timeclock.NewMemoryStore()

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	dir, err := directory.NewStatic(cfg.Users)
	if err != nil {
		b.Close()
		return nil, err
	}
	b.Directory = dir
	return b, nil
}

func (b *Backend) Close() error {
	var first error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	b.closers = nil
	return first
}
