package redisstore

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hvacbill/internal/domain"
	"hvacbill/internal/port"
	"hvacbill/internal/repository/slot"
)

func setup(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSlots_StoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	mr, client := setup(t)
	store := slot.NewStore[*domain.Customer](NewSlots(client, "hvacbill:"), port.CollectionCustomers)

	c := &domain.Customer{Name: "Meena", Type: domain.CustomerTypeCommercial}
	require.NoError(t, store.Create(ctx, c))
	assert.True(t, mr.Exists("hvacbill:customers"))

	got, err := store.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Meena", got.Name)

	require.NoError(t, store.Delete(ctx, c.ID))
	_, err = store.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSlots_LoadMissingKey(t *testing.T) {
	_, client := setup(t)
	data, err := NewSlots(client, "x:").Load(context.Background(), "services")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestSlots_CorruptValue(t *testing.T) {
	mr, client := setup(t)
	require.NoError(t, mr.Set("hvacbill:invoices", "{broken"))

	store := slot.NewStore[*domain.Invoice](NewSlots(client, "hvacbill:"), port.CollectionInvoices)
	_, err := store.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestSlots_BackendDown(t *testing.T) {
	mr, client := setup(t)
	mr.Close()

	store := slot.NewStore[*domain.Customer](NewSlots(client, "hvacbill:"), port.CollectionCustomers)
	err := store.Create(context.Background(), &domain.Customer{Name: "X"})
	var se *domain.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "create", se.Op)
}

func TestSequence_Incr(t *testing.T) {
	ctx := context.Background()
	mr, client := setup(t)
	seq := NewSequence(client, "hvacbill:")

	for want := int64(1); want <= 3; want++ {
		n, err := seq.Next(ctx, "invoice-2024")
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
	v, err := mr.Get("hvacbill:counter:invoice-2024")
	require.NoError(t, err)
	assert.Equal(t, "3", v)
}

func TestNewClient(t *testing.T) {
	mr, _ := setup(t)
	client, err := NewClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	defer client.Close()
	assert.NoError(t, NewSlots(client, "").Ping(context.Background()))
}
