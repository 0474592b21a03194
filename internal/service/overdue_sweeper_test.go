package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"hvacbill/internal/service"
	"hvacbill/mocks"
)

func TestOverdueSweeper_InvalidSchedule(t *testing.T) {
	_, err := service.NewOverdueSweeper(new(mocks.MockInvoiceService), "every tuesday", zap.NewNop())

	assert.Error(t, err)
}

func TestOverdueSweeper_Sweep(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	marker := new(mocks.MockInvoiceService)
	marker.On("MarkOverdue", mock.Anything, mock.AnythingOfType("time.Time")).Return(3, nil).Once()

	sweeper, err := service.NewOverdueSweeper(marker, "@daily", zap.New(core))
	require.NoError(t, err)
	sweeper.Sweep()

	marker.AssertExpectations(t)
	entries := logs.FilterMessage("overdue sweep marked invoices").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(3), entries[0].ContextMap()["marked"])
}

func TestOverdueSweeper_SweepError(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	marker := new(mocks.MockInvoiceService)
	marker.On("MarkOverdue", mock.Anything, mock.Anything).Return(0, errors.New("store down"))

	sweeper, err := service.NewOverdueSweeper(marker, "@every 1h", zap.New(core))
	require.NoError(t, err)
	sweeper.Sweep()

	assert.Equal(t, 1, logs.FilterMessage("overdue sweep failed").Len())
}

func TestOverdueSweeper_StartStop(t *testing.T) {
	sweeper, err := service.NewOverdueSweeper(new(mocks.MockInvoiceService), "@daily", zap.NewNop())
	require.NoError(t, err)

	sweeper.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	sweeper.Stop(ctx)
	assert.NoError(t, ctx.Err())
}
