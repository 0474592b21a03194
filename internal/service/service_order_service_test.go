package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hvacbill/internal/domain"
	"hvacbill/internal/service"
)

func newServiceOrderService(st *stores) service.ServiceOrderService {
	return service.NewServiceOrderService(st.services, st.customers, st.technicians)
}

func TestServiceOrderService_Create_ResolvesReferences(t *testing.T) {
	st := newStores()
	ctx := context.Background()
	customer := &domain.Customer{Name: "Johnson Residence", Phone: "555", Address: "12 MG Road"}
	require.NoError(t, st.customers.Create(ctx, customer))
	tech := &domain.Technician{Name: "Ravi"}
	require.NoError(t, st.technicians.Create(ctx, tech))
	svc := newServiceOrderService(st)

	order, err := svc.Create(ctx, service.CreateServiceOrderInput{
		CustomerID:   &customer.ID,
		ServiceType:  "AC Repair",
		Date:         "2024-05-01",
		TechnicianID: &tech.ID,
		Value:        "350",
	})

	require.NoError(t, err)
	assert.Equal(t, "Johnson Residence", order.CustomerName)
	assert.Equal(t, "555", order.Phone)
	assert.Equal(t, "12 MG Road", order.Address)
	assert.Equal(t, "Ravi", order.TechnicianName)
	assert.Equal(t, domain.ServiceStatusScheduled, order.Status)
	assert.Equal(t, "350", order.Value.String())
}

func TestServiceOrderService_Create_RenameNotPropagated(t *testing.T) {
	st := newStores()
	ctx := context.Background()
	customer := &domain.Customer{Name: "Old Name"}
	require.NoError(t, st.customers.Create(ctx, customer))
	svc := newServiceOrderService(st)

	order, err := svc.Create(ctx, service.CreateServiceOrderInput{CustomerID: &customer.ID, ServiceType: "Duct Cleaning", Date: "2024-05-01"})
	require.NoError(t, err)

	customer.Name = "New Name"
	require.NoError(t, st.customers.Update(ctx, customer))

	got, err := svc.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Old Name", got.CustomerName)
}

func TestServiceOrderService_Create_Errors(t *testing.T) {
	missing := uuid.New()
	tests := []struct {
		name  string
		input service.CreateServiceOrderInput
		field string
	}{
		{"unknown customer", service.CreateServiceOrderInput{CustomerID: &missing, ServiceType: "x", Date: "2024-05-01"}, "customer_id"},
		{"unknown technician", service.CreateServiceOrderInput{CustomerName: "A", TechnicianID: &missing, ServiceType: "x", Date: "2024-05-01"}, "technician_id"},
		{"no customer", service.CreateServiceOrderInput{ServiceType: "x", Date: "2024-05-01"}, "customer"},
		{"missing service", service.CreateServiceOrderInput{CustomerName: "A", Date: "2024-05-01"}, "service"},
		{"bad date", service.CreateServiceOrderInput{CustomerName: "A", ServiceType: "x", Date: "01/05/2024"}, "date"},
		{"negative value", service.CreateServiceOrderInput{CustomerName: "A", ServiceType: "x", Date: "2024-05-01", Value: "-5"}, "value"},
		{"non-numeric value", service.CreateServiceOrderInput{CustomerName: "A", ServiceType: "x", Date: "2024-05-01", Value: "abc"}, "value"},
		{"bad status", service.CreateServiceOrderInput{CustomerName: "A", ServiceType: "x", Date: "2024-05-01", Status: "Done"}, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newServiceOrderService(newStores())
			_, err := svc.Create(context.Background(), tt.input)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestServiceOrderService_UpdateStatus(t *testing.T) {
	st := newStores()
	svc := newServiceOrderService(st)
	ctx := context.Background()
	order, err := svc.Create(ctx, service.CreateServiceOrderInput{CustomerName: "A", ServiceType: "AC Repair", Date: "2024-05-01"})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, order.ID, domain.ServiceStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceStatusCompleted, updated.Status)

	_, err = svc.UpdateStatus(ctx, order.ID, "Finished")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateStatus(ctx, uuid.New(), domain.ServiceStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServiceOrderService_Update_ManualNameClearsReference(t *testing.T) {
	st := newStores()
	ctx := context.Background()
	customer := &domain.Customer{Name: "Linked"}
	require.NoError(t, st.customers.Create(ctx, customer))
	svc := newServiceOrderService(st)
	order, err := svc.Create(ctx, service.CreateServiceOrderInput{CustomerID: &customer.ID, ServiceType: "x", Date: "2024-05-01"})
	require.NoError(t, err)

	value := service.Amount("1200.50")
	updated, err := svc.Update(ctx, order.ID, service.UpdateServiceOrderInput{
		CustomerName: strPtr("Walk-in"),
		Value:        &value,
	})

	require.NoError(t, err)
	assert.Nil(t, updated.CustomerID)
	assert.Equal(t, "Walk-in", updated.CustomerName)
	assert.Equal(t, "1200.5", updated.Value.String())
}

func TestServiceOrderService_List_Filter(t *testing.T) {
	st := newStores()
	svc := newServiceOrderService(st)
	ctx := context.Background()
	inputs := []service.CreateServiceOrderInput{
		{CustomerName: "A", ServiceType: "AC Repair", Date: "2024-05-01", Status: domain.ServiceStatusCompleted},
		{CustomerName: "B", ServiceType: "Duct Cleaning", Date: "2024-05-02"},
		{CustomerName: "C", ServiceType: "AC Installation", Date: "2024-05-03", Status: domain.ServiceStatusCompleted},
	}
	for _, in := range inputs {
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	completed, err := svc.List(ctx, service.ServiceOrderFilter{Status: domain.ServiceStatusCompleted})
	require.NoError(t, err)
	assert.Len(t, completed, 2)

	ac, err := svc.List(ctx, service.ServiceOrderFilter{Search: "ac"})
	require.NoError(t, err)
	assert.Len(t, ac, 2)
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	var in struct {
		A service.Amount `json:"a"`
		B service.Amount `json:"b"`
		C service.Amount `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 125.5, "b": "2.5", "c": null}`), &in))
	assert.Equal(t, service.Amount("125.5"), in.A)
	assert.Equal(t, service.Amount("2.5"), in.B)
	assert.Equal(t, service.Amount(""), in.C)
}
