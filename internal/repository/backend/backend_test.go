package backend_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hvacbill/internal/config"
	"hvacbill/internal/domain"
	"hvacbill/internal/repository/backend"
)

func TestOpen_SlotDrivers(t *testing.T) {
	for _, driver := range []string{config.DriverMemory, config.DriverFile} {
		t.Run(driver, func(t *testing.T) {
			cfg := &config.Config{Store: config.StoreConfig{Driver: driver, DataDir: t.TempDir()}}
			ctx := context.Background()

			set, err := backend.Open(ctx, cfg)
			require.NoError(t, err)
			defer set.Close()

			require.NoError(t, set.Pinger.Ping(ctx))
			require.NoError(t, set.Customers.Create(ctx, &domain.Customer{Name: "Johnson Residence"}))
			list, err := set.Customers.List(ctx)
			require.NoError(t, err)
			assert.Len(t, list, 1)

			n, err := set.Seq.Next(ctx, "invoice-2026")
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := backend.Open(context.Background(), &config.Config{Store: config.StoreConfig{Driver: "sqlite"}})

	assert.ErrorContains(t, err, `unknown store driver "sqlite"`)
}
