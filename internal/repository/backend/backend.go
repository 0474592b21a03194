// Package backend opens the record collections for the configured store
// driver.
package backend

import (
	"context"
	"fmt"

	"hvacbill/internal/config"
	"hvacbill/internal/domain"
	"hvacbill/internal/port"
	"hvacbill/internal/repository/jsonfile"
	"hvacbill/internal/repository/memory"
	"hvacbill/internal/repository/postgres"
	"hvacbill/internal/repository/redisstore"
	"hvacbill/internal/repository/slot"
)

// Set is the record collections the services run on.
type Set struct {
	Customers   port.Store[*domain.Customer]
	Technicians port.Store[*domain.Technician]
	Services    port.Store[*domain.ServiceOrder]
	Invoices    port.Store[*domain.Invoice]
	Seq         port.Sequence
	Pinger      port.Pinger
	closer      func() error
}

// Close releases the backend connection, if any.
func (s *Set) Close() error {
	return s.closer()
}

func slotSet(slots slot.Slots, seq port.Sequence, pinger port.Pinger) *Set {
	if seq == nil {
		seq = slot.NewSequence(slots)
	}
	return &Set{
		Customers:   slot.NewStore[*domain.Customer](slots, port.CollectionCustomers),
		Technicians: slot.NewStore[*domain.Technician](slots, port.CollectionTechnicians),
		Services:    slot.NewStore[*domain.ServiceOrder](slots, port.CollectionServices),
		Invoices:    slot.NewStore[*domain.Invoice](slots, port.CollectionInvoices),
		Seq:         seq,
		Pinger:      pinger,
		closer:      func() error { return nil },
	}
}

// Open builds the collections for the configured driver.
func Open(ctx context.Context, cfg *config.Config) (*Set, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		slots := memory.NewSlots()
		return slotSet(slots, nil, slots), nil

	case config.DriverFile:
		slots, err := jsonfile.NewSlots(cfg.Store.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening data dir: %w", err)
		}
		return slotSet(slots, nil, slots), nil

	case config.DriverRedis:
		client, err := redisstore.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		slots := redisstore.NewSlots(client, cfg.Redis.KeyPrefix)
		st := slotSet(slots, redisstore.NewSequence(client, cfg.Redis.KeyPrefix), slots)
		st.closer = client.Close
		return st, nil

	case config.DriverPostgres:
		db, err := postgres.NewDB(ctx, &cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		return &Set{
			Customers:   postgres.NewRecordRepo[*domain.Customer](db, port.CollectionCustomers),
			Technicians: postgres.NewRecordRepo[*domain.Technician](db, port.CollectionTechnicians),
			Services:    postgres.NewRecordRepo[*domain.ServiceOrder](db, port.CollectionServices),
			Invoices:    postgres.NewRecordRepo[*domain.Invoice](db, port.CollectionInvoices),
			Seq:         postgres.NewCounterRepo(db),
			Pinger:      postgres.Pinger{DB: db},
			closer:      db.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
