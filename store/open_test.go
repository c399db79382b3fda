package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"swissclock.ch/swissclock/directory"
	"swissclock.ch/swissclock/infrastructure/devops"
	"swissclock.ch/swissclock/timeclock"
)

func TestOpen(t *testing.T) {
	users := []directory.User{{ID: 1, Name: "Miro", Username: "miro", Password: "miro123"}}

	tests := []struct {
		name    string
		driver  string
		wantErr bool
	}{
		{name: "Memory", driver: devops.StorageMemory},
		{name: "Default", driver: ""},
		{name: "SQLite", driver: devops.StorageSQLite},
		{name: "Unknown", driver: "postgres", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := devops.Default()
			cfg.Storage.Driver = tt.driver
			cfg.Storage.Path = filepath.Join(t.TempDir(), "open.db")
			cfg.Users = users

			b, err := Open(context.Background(), cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer b.Close()

			_, ok := b.Directory.Lookup(1)
			assert.True(t, ok)

			a := timeclock.New(b.Store, b.Directory, timeclock.Options{})
			_, err = a.ClockIn(context.Background(), 1, a.Now())
			assert.NoError(t, err)
		})
	}
}
