package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/phuhk2908/rms-backend/config"
	"github.com/phuhk2908/rms-backend/infras/otel/mocks"
	postgresMocks "github.com/phuhk2908/rms-backend/infras/postgres/mocks"
	orderMocks "github.com/phuhk2908/rms-backend/internal/domains/order/mocks"
	orderModel "github.com/phuhk2908/rms-backend/internal/domains/order/model"
	paymentMocks "github.com/phuhk2908/rms-backend/internal/domains/payment/mocks"
	"github.com/phuhk2908/rms-backend/internal/domains/payment/model"
	"github.com/phuhk2908/rms-backend/internal/domains/payment/model/dto"
	"github.com/phuhk2908/rms-backend/internal/domains/payment/service"
	eventsMocks "github.com/phuhk2908/rms-backend/internal/events/mocks"
	cacheMocks "github.com/phuhk2908/rms-backend/shared/cache/mocks"
	"github.com/phuhk2908/rms-backend/shared/constant"
	gDto "github.com/phuhk2908/rms-backend/shared/dto"
	"github.com/phuhk2908/rms-backend/shared/failure"
)

type paymentServiceMocks struct {
	repo      *paymentMocks.MockPayment
	orderRepo *orderMocks.MockOrder
	txm       *postgresMocks.MockTxManager
	cache     *cacheMocks.MockRedisCache
	publisher *eventsMocks.MockPublisher
}

func newPaymentService(ctrl *gomock.Controller) (service.Payment, *paymentServiceMocks) {
	m := &paymentServiceMocks{
		repo:      paymentMocks.NewMockPayment(ctrl),
		orderRepo: orderMocks.NewMockOrder(ctrl),
		txm:       postgresMocks.NewMockTxManager(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		publisher: eventsMocks.NewMockPublisher(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.repo, m.orderRepo, m.txm, cfg, m.cache, mocks.NewOtel(), m.publisher)

	return svc, m
}

func passthroughTx(m *paymentServiceMocks) {
	m.txm.EXPECT().
		WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, *sqlx.Tx) error) error {
			return fn(ctx, nil)
		})
}

func absorbCache(m *paymentServiceMocks) {
	m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func staffContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyStaffID, "staff-1")
}

func TestPaymentService_Create(t *testing.T) {
	orderID := "7aa0cf10-1111-45dd-9e00-aaaaaaaaaaaa"

	validReq := dto.CreatePaymentRequest{
		OrderID: orderID,
		Amount:  19.00,
		Method:  string(model.MethodCash),
	}

	t.Run("successful payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newPaymentService(ctrl)
		absorbCache(m)
		passthroughTx(m)

		m.orderRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.orderRepo.EXPECT().
			GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(orderModel.Order{ID: orderID, Status: orderModel.StatusCompleted, TotalAmount: 19.00}, nil)
		m.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		m.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, payment model.Payment) error {
				assert.Equal(t, model.StatusPaid, payment.Status)
				assert.Equal(t, 19.00, payment.Amount)

				return nil
			})

		res, err := svc.Create(staffContext(), validReq)

		assert.NoError(t, err)
		assert.Equal(t, string(model.StatusPaid), res.Status)
		assert.Equal(t, orderID, res.OrderID)
	})

	t.Run("rejects an amount that does not match the order total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newPaymentService(ctrl)
		absorbCache(m)
		passthroughTx(m)

		m.orderRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.orderRepo.EXPECT().
			GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(orderModel.Order{ID: orderID, Status: orderModel.StatusCompleted, TotalAmount: 21.00}, nil)

		_, err := svc.Create(staffContext(), validReq)

		assert.True(t, failure.IsConflict(err))
		assert.EqualError(t, err, "payment amount does not match order total")
	})

	t.Run("rejects a second payment for the same order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newPaymentService(ctrl)
		absorbCache(m)
		passthroughTx(m)

		m.orderRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.orderRepo.EXPECT().
			GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(orderModel.Order{ID: orderID, Status: orderModel.StatusCompleted, TotalAmount: 19.00}, nil)
		m.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.Create(staffContext(), validReq)

		assert.True(t, failure.IsConflict(err))
		assert.EqualError(t, err, "order already has a payment")
	})

	t.Run("rejects a cancelled order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newPaymentService(ctrl)
		absorbCache(m)
		passthroughTx(m)

		m.orderRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.orderRepo.EXPECT().
			GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(orderModel.Order{ID: orderID, Status: orderModel.StatusCancelled, TotalAmount: 19.00}, nil)

		_, err := svc.Create(staffContext(), validReq)

		assert.True(t, failure.IsConflict(err))
		assert.EqualError(t, err, "order is not payable")
	})

	t.Run("order not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newPaymentService(ctrl)
		absorbCache(m)
		passthroughTx(m)

		m.orderRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.Create(staffContext(), validReq)

		assert.True(t, failure.IsNotFound(err))
	})
}

func TestPaymentService_Refund(t *testing.T) {
	paymentID := "7aa0cf10-2222-45dd-9e00-bbbbbbbbbbbb"
	orderID := "7aa0cf10-1111-45dd-9e00-aaaaaaaaaaaa"

	t.Run("refund moves payment and order to refunded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newPaymentService(ctrl)
		absorbCache(m)
		passthroughTx(m)

		m.repo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().
			GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Payment{ID: paymentID, OrderID: orderID, Amount: 19.00, Status: model.StatusPaid}, nil)

		m.orderRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.orderRepo.EXPECT().
			GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(orderModel.Order{ID: orderID, Status: orderModel.StatusCompleted, TotalAmount: 19.00}, nil)

		m.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusRefunded, fields[model.FieldStatus])

				return nil
			})
		m.orderRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, orderModel.StatusRefunded, fields[orderModel.FieldStatus])

				return nil
			})

		m.publisher.EXPECT().OrderUpdated(gomock.Any(), gomock.Any())

		res, err := svc.Refund(staffContext(), paymentID)

		assert.NoError(t, err)
		assert.Equal(t, string(model.StatusRefunded), res.Status)
	})

	t.Run("rejects a double refund", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newPaymentService(ctrl)
		absorbCache(m)
		passthroughTx(m)

		m.repo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().
			GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Payment{ID: paymentID, OrderID: orderID, Status: model.StatusRefunded}, nil)

		_, err := svc.Refund(staffContext(), paymentID)

		assert.True(t, failure.IsConflict(err))
		assert.EqualError(t, err, "payment is already refunded")
	})

	t.Run("rejects a refund for an order that is not completed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newPaymentService(ctrl)
		absorbCache(m)
		passthroughTx(m)

		m.repo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().
			GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Payment{ID: paymentID, OrderID: orderID, Status: model.StatusPaid}, nil)

		m.orderRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.orderRepo.EXPECT().
			GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(orderModel.Order{ID: orderID, Status: orderModel.StatusPreparing}, nil)

		_, err := svc.Refund(staffContext(), paymentID)

		assert.True(t, failure.IsCode(err, 422))
	})

	t.Run("payment not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newPaymentService(ctrl)
		absorbCache(m)
		passthroughTx(m)

		m.repo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.Refund(staffContext(), paymentID)

		assert.True(t, failure.IsNotFound(err))
	})
}

func TestPaymentService_Get(t *testing.T) {
	paymentID := "7aa0cf10-2222-45dd-9e00-bbbbbbbbbbbb"

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newPaymentService(ctrl)
		absorbCache(m)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Payment{ID: paymentID, Amount: 19.00, Method: model.MethodCash, Status: model.StatusPaid}, nil)

		res, err := svc.Get(context.Background(), paymentID)

		assert.NoError(t, err)
		assert.Equal(t, string(model.MethodCash), res.Method)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newPaymentService(ctrl)
		absorbCache(m)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Payment{}, nil)

		_, err := svc.Get(context.Background(), paymentID)

		assert.True(t, failure.IsNotFound(err))
	})
}
