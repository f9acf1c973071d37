// Package service exposes the kitchen display view: a queue of orders that
// still need cooking, plus per-item status updates. It owns no state of its
// own; every mutation flows through the order workflow so table lifecycle and
// auto-completion rules apply unchanged.
package service

import (
	"context"

	"github.com/phuhk2908/rms-backend/infras/otel"
	orderModel "github.com/phuhk2908/rms-backend/internal/domains/order/model"
	orderDto "github.com/phuhk2908/rms-backend/internal/domains/order/model/dto"
	orderService "github.com/phuhk2908/rms-backend/internal/domains/order/service"
	"github.com/phuhk2908/rms-backend/shared/constant"
	gDto "github.com/phuhk2908/rms-backend/shared/dto"
)

// queueStatuses are the order statuses the kitchen works from.
var queueStatuses = []string{
	string(orderModel.StatusPending),
	string(orderModel.StatusConfirmed),
	string(orderModel.StatusPreparing),
}

type Kitchen interface {
	GetQueue(ctx context.Context, req gDto.QueryParams) (orderDto.GetOrdersResponse, error)
	UpdateItemStatus(ctx context.Context, orderID, itemID string, req orderDto.UpdateOrderItemStatusRequest) (orderDto.OrderResponse, error)
}

type serviceImpl struct {
	orders orderService.Order
	otel   otel.Otel
}

func New(orders orderService.Order, otel otel.Otel) Kitchen {
	return &serviceImpl{
		orders: orders,
		otel:   otel,
	}
}

func (s *serviceImpl) GetQueue(ctx context.Context, req gDto.QueryParams) (res orderDto.GetOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetQueue")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    orderModel.FieldStatus,
				Value:    queueStatuses,
				Operator: gDto.FilterOperatorIn,
				Table:    orderModel.TableName,
			},
		},
	}

	return s.orders.GetAll(ctx, req, filter)
}

func (s *serviceImpl) UpdateItemStatus(ctx context.Context, orderID, itemID string, req orderDto.UpdateOrderItemStatusRequest) (orderDto.OrderResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateItemStatus")
	defer scope.End()

	return s.orders.UpdateItemStatus(ctx, orderID, itemID, req)
}
