package service

import (
	"context"
	"fmt"

	"github.com/phuhk2908/rms-backend/config"
	"github.com/phuhk2908/rms-backend/infras/otel"
	"github.com/phuhk2908/rms-backend/infras/postgres"
	orderModel "github.com/phuhk2908/rms-backend/internal/domains/order/model"
	orderRepo "github.com/phuhk2908/rms-backend/internal/domains/order/repository"
	"github.com/phuhk2908/rms-backend/internal/domains/payment/model"
	"github.com/phuhk2908/rms-backend/internal/domains/payment/model/dto"
	"github.com/phuhk2908/rms-backend/internal/domains/payment/repository"
	"github.com/phuhk2908/rms-backend/internal/events"
	"github.com/phuhk2908/rms-backend/shared"
	"github.com/phuhk2908/rms-backend/shared/cache"
	"github.com/phuhk2908/rms-backend/shared/constant"
	gDto "github.com/phuhk2908/rms-backend/shared/dto"
	"github.com/phuhk2908/rms-backend/shared/failure"
	"github.com/phuhk2908/rms-backend/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetPayment    = "payment:get"
	cacheGetAllPayment = "payment:gets"
	cacheCountPayment  = "payment:count"

	cacheGetOrder    = "order:get"
	cacheGetAllOrder = "order:gets"
)

type Payment interface {
	Create(ctx context.Context, req dto.CreatePaymentRequest) (dto.PaymentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPaymentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PaymentResponse, error)
	Refund(ctx context.Context, id string) (dto.PaymentResponse, error)
}

type serviceImpl struct {
	repo      repository.Payment
	orderRepo orderRepo.Order
	txm       postgres.TxManager
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	publisher events.Publisher
}

func New(
	repo repository.Payment,
	orders orderRepo.Order,
	txm postgres.TxManager,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	publisher events.Publisher,
) Payment {
	return &serviceImpl{
		repo:      repo,
		orderRepo: orders,
		txm:       txm,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		publisher: publisher,
	}
}

func paidPaymentFilter(orderID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldOrderID,
				Value:    orderID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    string(model.StatusPaid),
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

// Create settles an order. The amount must match the order's frozen total
// exactly; the client never dictates what an order costs.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePaymentRequest) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	staff, _ := ctx.Value(constant.ContextKeyStaffID).(string)
	payment := req.ToModel(staff)
	orderFilter := shared.FilterByID(req.OrderID, orderModel.FieldID, orderModel.TableName)

	err = s.txm.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		found, err := s.orderRepo.LockTx(ctx, tx, orderFilter)
		if err != nil {
			return err
		}

		if !found {
			return failure.NotFound("order not found") // nolint:wrapcheck
		}

		order, err := s.orderRepo.GetTx(ctx, tx, orderFilter)
		if err != nil {
			return err
		}

		if order.Status == orderModel.StatusCancelled || order.Status == orderModel.StatusRefunded {
			return failure.Conflict("order is not payable") // nolint:wrapcheck
		}

		if req.Amount != order.TotalAmount {
			return failure.Conflict("payment amount does not match order total") // nolint:wrapcheck
		}

		exist, err := s.repo.ExistTx(ctx, tx, paidPaymentFilter(order.ID))
		if err != nil {
			return err
		}

		if exist {
			return failure.Conflict("order already has a payment") // nolint:wrapcheck
		}

		return s.repo.InsertTx(ctx, tx, payment)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create payment")

		return res, err
	}

	s.invalidate(ctx, payment.ID)

	res.FromModel(payment)

	return res, nil
}

// Refund reverses a settled payment and moves the order to REFUNDED, the only
// path into that status. The order must already be COMPLETED.
func (s *serviceImpl) Refund(ctx context.Context, id string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Refund")
	defer scope.End()
	defer scope.TraceIfError(err)

	staff, _ := ctx.Value(constant.ContextKeyStaffID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var (
		payment model.Payment
		order   orderModel.Order
	)

	err = s.txm.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		found, err := s.repo.LockTx(ctx, tx, filter)
		if err != nil {
			return err
		}

		if !found {
			return failure.NotFound("payment not found") // nolint:wrapcheck
		}

		payment, err = s.repo.GetTx(ctx, tx, filter)
		if err != nil {
			return err
		}

		if payment.Status != model.StatusPaid {
			return failure.Conflict("payment is already refunded") // nolint:wrapcheck
		}

		orderFilter := shared.FilterByID(payment.OrderID, orderModel.FieldID, orderModel.TableName)

		found, err = s.orderRepo.LockTx(ctx, tx, orderFilter)
		if err != nil {
			return err
		}

		if !found {
			return failure.NotFound("order not found") // nolint:wrapcheck
		}

		order, err = s.orderRepo.GetTx(ctx, tx, orderFilter)
		if err != nil {
			return err
		}

		if !order.Status.CanTransition(orderModel.StatusRefunded) {
			return failure.InvalidState(fmt.Sprintf("cannot refund order in status %s", order.Status)) // nolint:wrapcheck
		}

		if err := s.repo.UpdateTx(ctx, tx, map[string]any{
			model.FieldStatus:        model.StatusRefunded,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: staff,
		}, filter); err != nil {
			return err
		}

		return s.orderRepo.UpdateTx(ctx, tx, map[string]any{
			orderModel.FieldStatus:   orderModel.StatusRefunded,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: staff,
		}, orderFilter)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to refund payment")

		return res, err
	}

	order.Status = orderModel.StatusRefunded

	event := events.OrderEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      string(order.Status),
		StaffID:     order.StaffID,
		TotalAmount: order.TotalAmount,
	}
	if order.TableID != nil {
		event.TableID = *order.TableID
	}

	s.publisher.OrderUpdated(ctx, event)
	s.invalidate(ctx, id)

	payment.Status = model.StatusRefunded
	res.FromModel(payment)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPayment, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for payment")

		return res, nil
	}

	payment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return res, failure.NotFound("payment not found") // nolint:wrapcheck
	}

	res.FromModel(payment)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payment to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPayment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for payments")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payments")

		return res, err
	}

	payments, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return res, err
	}

	res.FromModels(payments, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPayment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payments")

		return total, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payment count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPayment, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete payment from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPayment)
		shared.InvalidateCaches(c, s.cache, cacheCountPayment)

		// A refund rewrites the order's status as well.
		shared.InvalidateCaches(c, s.cache, cacheGetOrder)
		shared.InvalidateCaches(c, s.cache, cacheGetAllOrder)
	}()
}
