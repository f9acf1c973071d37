// Package engine keeps table occupancy, reservation fulfillment and order
// state mutually consistent. Table status is always recomputed from the live
// counts of non-terminal orders and reservations referencing the table, inside
// the same transaction as the mutation that triggered it, so the stored status
// can never drift from its source of truth.
package engine

//go:generate go run go.uber.org/mock/mockgen -source=./engine.go -destination=./mocks/engine_mock.go -package=mocks

import (
	"context"

	"github.com/phuhk2908/rms-backend/infras/otel"
	orderModel "github.com/phuhk2908/rms-backend/internal/domains/order/model"
	orderRepo "github.com/phuhk2908/rms-backend/internal/domains/order/repository"
	reservationModel "github.com/phuhk2908/rms-backend/internal/domains/reservation/model"
	reservationRepo "github.com/phuhk2908/rms-backend/internal/domains/reservation/repository"
	tableModel "github.com/phuhk2908/rms-backend/internal/domains/table/model"
	tableRepo "github.com/phuhk2908/rms-backend/internal/domains/table/repository"
	"github.com/phuhk2908/rms-backend/shared"
	"github.com/phuhk2908/rms-backend/shared/constant"
	gDto "github.com/phuhk2908/rms-backend/shared/dto"
	"github.com/phuhk2908/rms-backend/shared/timezone"

	"github.com/jmoiron/sqlx"
)

type Engine interface {
	ComputeDesiredStatusTx(ctx context.Context, tx *sqlx.Tx, tableID string) (tableModel.Status, error)
	ReconcileTableTx(ctx context.Context, tx *sqlx.Tx, tableID, staffID string) error
	HasActiveClaimsTx(ctx context.Context, tx *sqlx.Tx, tableID string) (bool, error)
}

type engineImpl struct {
	tables       tableRepo.Table
	orders       orderRepo.Order
	reservations reservationRepo.Reservation
	otel         otel.Otel
}

func New(tables tableRepo.Table, orders orderRepo.Order, reservations reservationRepo.Reservation, otl otel.Otel) Engine {
	return &engineImpl{
		tables:       tables,
		orders:       orders,
		reservations: reservations,
		otel:         otl,
	}
}

func activeOrderFilter(tableID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    orderModel.FieldTableID,
				Value:    tableID,
				Operator: gDto.FilterOperatorEq,
				Table:    orderModel.TableName,
			},
			gDto.Filter{
				Field:    orderModel.FieldStatus,
				Value:    orderModel.TerminalStatuses,
				Operator: gDto.FilterOperatorNotIn,
				Table:    orderModel.TableName,
			},
		},
	}
}

func activeReservationFilter(tableID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    reservationModel.FieldTableID,
				Value:    tableID,
				Operator: gDto.FilterOperatorEq,
				Table:    reservationModel.TableName,
			},
			gDto.Filter{
				Field:    reservationModel.FieldStatus,
				Value:    reservationModel.TerminalStatuses,
				Operator: gDto.FilterOperatorNotIn,
				Table:    reservationModel.TableName,
			},
		},
	}
}

// ComputeDesiredStatusTx derives the status a table must hold right now:
// OCCUPIED while any non-terminal order references it, otherwise RESERVED
// while any non-terminal reservation references it, otherwise AVAILABLE.
// Counting runs inside the caller's transaction so it observes the mutation
// that triggered the recomputation.
func (e *engineImpl) ComputeDesiredStatusTx(ctx context.Context, tx *sqlx.Tx, tableID string) (status tableModel.Status, err error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ComputeDesiredStatusTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	activeOrders, err := e.orders.CountTx(ctx, tx, activeOrderFilter(tableID))
	if err != nil {
		return tableModel.StatusAvailable, err
	}

	if activeOrders > 0 {
		return tableModel.StatusOccupied, nil
	}

	activeReservations, err := e.reservations.CountTx(ctx, tx, activeReservationFilter(tableID))
	if err != nil {
		return tableModel.StatusAvailable, err
	}

	if activeReservations > 0 {
		return tableModel.StatusReserved, nil
	}

	return tableModel.StatusAvailable, nil
}

// ReconcileTableTx recomputes and persists a table's status within the
// caller's transaction. Callers must have locked the table row beforehand so
// concurrent reconciliations serialize instead of losing updates.
func (e *engineImpl) ReconcileTableTx(ctx context.Context, tx *sqlx.Tx, tableID, staffID string) (err error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReconcileTableTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	desired, err := e.ComputeDesiredStatusTx(ctx, tx, tableID)
	if err != nil {
		return err
	}

	return e.tables.UpdateTx(ctx, tx, map[string]any{
		tableModel.FieldStatus:    desired,
		constant.FieldModifiedAt:  timezone.Now(),
		constant.FieldModifiedBy:  staffID,
	}, shared.FilterByID(tableID, tableModel.FieldID, tableModel.TableName))
}

// HasActiveClaimsTx reports whether any non-terminal order or reservation
// still references the table. Table deletion is rejected while this holds.
// Callers must hold the table row lock so the answer stays true until commit.
func (e *engineImpl) HasActiveClaimsTx(ctx context.Context, tx *sqlx.Tx, tableID string) (claimed bool, err error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HasActiveClaimsTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	activeOrders, err := e.orders.CountTx(ctx, tx, activeOrderFilter(tableID))
	if err != nil {
		return false, err
	}

	if activeOrders > 0 {
		return true, nil
	}

	activeReservations, err := e.reservations.CountTx(ctx, tx, activeReservationFilter(tableID))
	if err != nil {
		return false, err
	}

	return activeReservations > 0, nil
}
