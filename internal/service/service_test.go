package service_test

import (
	"hvacbill/internal/domain"
	"hvacbill/internal/port"
	"hvacbill/internal/repository/memory"
	"hvacbill/internal/repository/slot"
)

// stores is a set of collections backed by one in-memory slot backend.
type stores struct {
	slots       *memory.Slots
	customers   port.Store[*domain.Customer]
	technicians port.Store[*domain.Technician]
	services    port.Store[*domain.ServiceOrder]
	invoices    port.Store[*domain.Invoice]
	seq         port.Sequence
}

func newStores() *stores {
	slots := memory.NewSlots()
	return &stores{
		slots:       slots,
		customers:   slot.NewStore[*domain.Customer](slots, port.CollectionCustomers),
		technicians: slot.NewStore[*domain.Technician](slots, port.CollectionTechnicians),
		services:    slot.NewStore[*domain.ServiceOrder](slots, port.CollectionServices),
		invoices:    slot.NewStore[*domain.Invoice](slots, port.CollectionInvoices),
		seq:         slot.NewSequence(slots),
	}
}

func strPtr(s string) *string { return &s }
