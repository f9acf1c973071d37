package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/phuhk2908/rms-backend/infras/otel/mocks"
	"github.com/phuhk2908/rms-backend/internal/domains/kitchen/service"
	orderMocks "github.com/phuhk2908/rms-backend/internal/domains/order/mocks"
	orderModel "github.com/phuhk2908/rms-backend/internal/domains/order/model"
	orderDto "github.com/phuhk2908/rms-backend/internal/domains/order/model/dto"
	gDto "github.com/phuhk2908/rms-backend/shared/dto"
)

func TestKitchenService_GetQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrders := orderMocks.NewMockOrderService(ctrl)
	svc := service.New(mockOrders, mocks.NewOtel())

	mockOrders.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (orderDto.GetOrdersResponse, error) {
			// The queue only surfaces orders the kitchen still works on.
			flt, ok := filter.Filters[0].(gDto.Filter)
			assert.True(t, ok)
			assert.Equal(t, orderModel.FieldStatus, flt.Field)
			assert.Equal(t, gDto.FilterOperatorIn, flt.Operator)
			assert.ElementsMatch(t, []string{"PENDING", "CONFIRMED", "PREPARING"}, flt.Value)

			return orderDto.GetOrdersResponse{TotalData: 2}, nil
		})

	res, err := svc.GetQueue(context.Background(), gDto.QueryParams{Page: 1, Limit: 10})

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
}

func TestKitchenService_UpdateItemStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrders := orderMocks.NewMockOrderService(ctrl)
	svc := service.New(mockOrders, mocks.NewOtel())

	req := orderDto.UpdateOrderItemStatusRequest{Status: string(orderModel.ItemStatusReady)}

	mockOrders.EXPECT().
		UpdateItemStatus(gomock.Any(), "order-1", "item-1", req).
		Return(orderDto.OrderResponse{ID: "order-1", Status: string(orderModel.StatusCompleted)}, nil)

	res, err := svc.UpdateItemStatus(context.Background(), "order-1", "item-1", req)

	assert.NoError(t, err)
	assert.Equal(t, string(orderModel.StatusCompleted), res.Status)
}
