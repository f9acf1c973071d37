package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/phuhk2908/rms-backend/infras/otel/mocks"
	"github.com/phuhk2908/rms-backend/internal/domains/engine"
	orderMocks "github.com/phuhk2908/rms-backend/internal/domains/order/mocks"
	reservationMocks "github.com/phuhk2908/rms-backend/internal/domains/reservation/mocks"
	tableMocks "github.com/phuhk2908/rms-backend/internal/domains/table/mocks"
	tableModel "github.com/phuhk2908/rms-backend/internal/domains/table/model"
)

func TestEngine_ComputeDesiredStatusTx(t *testing.T) {
	tests := []struct {
		name         string
		orders       int
		reservations int
		want         tableModel.Status
	}{
		{
			// An open order always wins, even when a reservation also
			// claims the table.
			name:         "active order takes precedence",
			orders:       1,
			reservations: 1,
			want:         tableModel.StatusOccupied,
		},
		{
			name:         "completed order with confirmed reservation falls back to reserved",
			orders:       0,
			reservations: 1,
			want:         tableModel.StatusReserved,
		},
		{
			name:         "no remaining claims releases the table",
			orders:       0,
			reservations: 0,
			want:         tableModel.StatusAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTables := tableMocks.NewMockTable(ctrl)
			mockOrders := orderMocks.NewMockOrder(ctrl)
			mockReservations := reservationMocks.NewMockReservation(ctrl)
			mockOtel := mocks.NewOtel()

			eng := engine.New(mockTables, mockOrders, mockReservations, mockOtel)

			mockOrders.EXPECT().
				CountTx(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(tt.orders, nil)

			if tt.orders == 0 {
				mockReservations.EXPECT().
					CountTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(tt.reservations, nil)
			}

			got, err := eng.ComputeDesiredStatusTx(context.Background(), nil, "table-1")

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_ComputeDesiredStatusTx_CountError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTables := tableMocks.NewMockTable(ctrl)
	mockOrders := orderMocks.NewMockOrder(ctrl)
	mockReservations := reservationMocks.NewMockReservation(ctrl)
	mockOtel := mocks.NewOtel()

	eng := engine.New(mockTables, mockOrders, mockReservations, mockOtel)

	mockOrders.EXPECT().
		CountTx(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(0, errors.New("database error"))

	_, err := eng.ComputeDesiredStatusTx(context.Background(), nil, "table-1")

	assert.Error(t, err)
}

func TestEngine_ReconcileTableTx(t *testing.T) {
	tests := []struct {
		name         string
		orders       int
		reservations int
		want         tableModel.Status
	}{
		{
			name:         "persists occupied while an order is open",
			orders:       2,
			reservations: 0,
			want:         tableModel.StatusOccupied,
		},
		{
			name:         "persists reserved when only a reservation remains",
			orders:       0,
			reservations: 1,
			want:         tableModel.StatusReserved,
		},
		{
			name:         "persists available when nothing claims the table",
			orders:       0,
			reservations: 0,
			want:         tableModel.StatusAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTables := tableMocks.NewMockTable(ctrl)
			mockOrders := orderMocks.NewMockOrder(ctrl)
			mockReservations := reservationMocks.NewMockReservation(ctrl)
			mockOtel := mocks.NewOtel()

			eng := engine.New(mockTables, mockOrders, mockReservations, mockOtel)

			mockOrders.EXPECT().
				CountTx(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(tt.orders, nil)

			if tt.orders == 0 {
				mockReservations.EXPECT().
					CountTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(tt.reservations, nil)
			}

			mockTables.EXPECT().
				UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ any, fields map[string]any, _ any) error {
					assert.Equal(t, tt.want, fields[tableModel.FieldStatus])

					return nil
				})

			err := eng.ReconcileTableTx(context.Background(), nil, "table-1", "staff-1")

			assert.NoError(t, err)
		})
	}
}

// Reconciliation is idempotent: running it twice with the same claim counts
// writes the same status both times.
func TestEngine_ReconcileTableTx_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTables := tableMocks.NewMockTable(ctrl)
	mockOrders := orderMocks.NewMockOrder(ctrl)
	mockReservations := reservationMocks.NewMockReservation(ctrl)
	mockOtel := mocks.NewOtel()

	eng := engine.New(mockTables, mockOrders, mockReservations, mockOtel)

	mockOrders.EXPECT().
		CountTx(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(0, nil).
		Times(2)
	mockReservations.EXPECT().
		CountTx(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(1, nil).
		Times(2)

	var statuses []tableModel.Status

	mockTables.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any, fields map[string]any, _ any) error {
			status, _ := fields[tableModel.FieldStatus].(tableModel.Status)
			statuses = append(statuses, status)

			return nil
		}).
		Times(2)

	assert.NoError(t, eng.ReconcileTableTx(context.Background(), nil, "table-1", "staff-1"))
	assert.NoError(t, eng.ReconcileTableTx(context.Background(), nil, "table-1", "staff-1"))

	assert.Equal(t, []tableModel.Status{tableModel.StatusReserved, tableModel.StatusReserved}, statuses)
}

func TestEngine_HasActiveClaimsTx(t *testing.T) {
	tests := []struct {
		name         string
		orders       int
		reservations int
		want         bool
	}{
		{
			name:         "order claim",
			orders:       1,
			reservations: 0,
			want:         true,
		},
		{
			name:         "reservation claim",
			orders:       0,
			reservations: 1,
			want:         true,
		},
		{
			name:         "no claims",
			orders:       0,
			reservations: 0,
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTables := tableMocks.NewMockTable(ctrl)
			mockOrders := orderMocks.NewMockOrder(ctrl)
			mockReservations := reservationMocks.NewMockReservation(ctrl)
			mockOtel := mocks.NewOtel()

			eng := engine.New(mockTables, mockOrders, mockReservations, mockOtel)

			mockOrders.EXPECT().
				CountTx(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(tt.orders, nil)

			if tt.orders == 0 {
				mockReservations.EXPECT().
					CountTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(tt.reservations, nil)
			}

			got, err := eng.HasActiveClaimsTx(context.Background(), nil, "table-1")

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
