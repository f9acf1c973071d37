package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/phuhk2908/rms-backend/config"
	"github.com/phuhk2908/rms-backend/infras/otel"
	"github.com/phuhk2908/rms-backend/infras/postgres"
	"github.com/phuhk2908/rms-backend/internal/domains/engine"
	menuModel "github.com/phuhk2908/rms-backend/internal/domains/menu/model"
	menuRepo "github.com/phuhk2908/rms-backend/internal/domains/menu/repository"
	"github.com/phuhk2908/rms-backend/internal/domains/order/model"
	"github.com/phuhk2908/rms-backend/internal/domains/order/model/dto"
	"github.com/phuhk2908/rms-backend/internal/domains/order/repository"
	reservationModel "github.com/phuhk2908/rms-backend/internal/domains/reservation/model"
	reservationRepo "github.com/phuhk2908/rms-backend/internal/domains/reservation/repository"
	staffModel "github.com/phuhk2908/rms-backend/internal/domains/staff/model"
	staffDto "github.com/phuhk2908/rms-backend/internal/domains/staff/model/dto"
	staffRepo "github.com/phuhk2908/rms-backend/internal/domains/staff/repository"
	tableModel "github.com/phuhk2908/rms-backend/internal/domains/table/model"
	tableDto "github.com/phuhk2908/rms-backend/internal/domains/table/model/dto"
	tableRepo "github.com/phuhk2908/rms-backend/internal/domains/table/repository"
	reservationDto "github.com/phuhk2908/rms-backend/internal/domains/reservation/model/dto"
	"github.com/phuhk2908/rms-backend/internal/events"
	"github.com/phuhk2908/rms-backend/shared"
	"github.com/phuhk2908/rms-backend/shared/cache"
	"github.com/phuhk2908/rms-backend/shared/constant"
	gDto "github.com/phuhk2908/rms-backend/shared/dto"
	"github.com/phuhk2908/rms-backend/shared/failure"
	gModel "github.com/phuhk2908/rms-backend/shared/model"
	"github.com/phuhk2908/rms-backend/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetOrder    = "order:get"
	cacheGetAllOrder = "order:gets"
	cacheCountOrder  = "order:count"
)

type Order interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) (dto.OrderResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOrdersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.OrderResponse, error)
	Update(ctx context.Context, req dto.UpdateOrderRequest, id string) (dto.OrderResponse, error)
	UpdateItemStatus(ctx context.Context, orderID, itemID string, req dto.UpdateOrderItemStatusRequest) (dto.OrderResponse, error)
}

type serviceImpl struct {
	repo            repository.Order
	itemRepo        repository.OrderItem
	menuRepo        menuRepo.Menu
	tableRepo       tableRepo.Table
	reservationRepo reservationRepo.Reservation
	staffRepo       staffRepo.Staff
	engine          engine.Engine
	txm             postgres.TxManager
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
	publisher       events.Publisher
}

func New(
	repo repository.Order,
	itemRepo repository.OrderItem,
	menus menuRepo.Menu,
	tables tableRepo.Table,
	reservations reservationRepo.Reservation,
	staffs staffRepo.Staff,
	eng engine.Engine,
	txm postgres.TxManager,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	publisher events.Publisher,
) Order {
	return &serviceImpl{
		repo:            repo,
		itemRepo:        itemRepo,
		menuRepo:        menus,
		tableRepo:       tables,
		reservationRepo: reservations,
		staffRepo:       staffs,
		engine:          eng,
		txm:             txm,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
		publisher:       publisher,
	}
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
}

func itemsByOrderFilter(orderID string) gDto.FilterGroup {
	return shared.FilterByID(orderID, model.ItemFieldOrderID, model.ItemTableName)
}

// buildItems resolves each requested line against the menu, rejecting missing
// or unavailable items, and freezes the current price into the line. The
// returned total is the sum of the frozen subtotals.
func buildItems(orderID, staff string, lines []dto.OrderItemRequest, fetch func(menuItemID string) (menuModel.MenuItem, error)) ([]model.OrderItem, float64, error) {
	items := make([]model.OrderItem, 0, len(lines))
	total := 0.0

	for _, line := range lines {
		menuItem, err := fetch(line.MenuItemID)
		if err != nil {
			return nil, 0, err
		}

		if menuItem.ID == constant.Empty {
			return nil, 0, failure.NotFound("menu item not found") // nolint:wrapcheck
		}

		if !menuItem.IsAvailable {
			return nil, 0, failure.Conflict(fmt.Sprintf("menu item is unavailable: %s", menuItem.Name)) // nolint:wrapcheck
		}

		subTotal := float64(line.Quantity) * menuItem.Price
		total += subTotal

		items = append(items, model.OrderItem{
			ID:           uuid.NewString(),
			OrderID:      orderID,
			MenuItemID:   menuItem.ID,
			Quantity:     line.Quantity,
			PriceAtOrder: menuItem.Price,
			SubTotal:     subTotal,
			Status:       model.ItemStatusPending,
			Notes:        line.Notes,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  staff,
				ModifiedBy: staff,
			},
		})
	}

	return items, total, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateOrderRequest) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	staff, _ := ctx.Value(constant.ContextKeyStaffID).(string)

	orderType := model.Type(req.OrderType)
	if orderType == model.TypeDineIn && req.TableID == nil {
		return res, failure.BadRequestFromString("dine-in order requires a table") // nolint:wrapcheck
	}

	orderID := uuid.NewString()

	// Prices are frozen here: later menu price changes must not alter this
	// order's lines.
	items, total, err := buildItems(orderID, staff, req.Items, func(menuItemID string) (menuModel.MenuItem, error) {
		return s.menuRepo.Get(ctx, shared.FilterByID(menuItemID, menuModel.FieldID, menuModel.TableName))
	})
	if err != nil {
		return res, err
	}

	if req.TableID != nil {
		exist, err := s.tableRepo.Exist(ctx, shared.FilterByID(*req.TableID, tableModel.FieldID, tableModel.TableName))
		if err != nil {
			return res, err
		}

		if !exist {
			return res, failure.NotFound("table not found") // nolint:wrapcheck
		}
	}

	if req.ReservationID != nil {
		reservation, err := s.reservationRepo.Get(ctx, shared.FilterByID(*req.ReservationID, reservationModel.FieldID, reservationModel.TableName))
		if err != nil {
			return res, err
		}

		if reservation.ID == constant.Empty {
			return res, failure.NotFound("reservation not found") // nolint:wrapcheck
		}

		if reservation.OrderID != nil {
			return res, failure.Conflict("reservation already linked to another order") // nolint:wrapcheck
		}
	}

	order := model.Order{
		ID:            orderID,
		OrderNumber:   newOrderNumber(),
		Status:        model.StatusPending,
		OrderType:     orderType,
		TableID:       req.TableID,
		ReservationID: req.ReservationID,
		StaffID:       staff,
		Notes:         req.Notes,
		TotalAmount:   total,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  staff,
			ModifiedBy: staff,
		},
	}

	err = s.txm.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if order.TableID != nil {
			found, err := s.tableRepo.LockTx(ctx, tx, shared.FilterByID(*order.TableID, tableModel.FieldID, tableModel.TableName))
			if err != nil {
				return err
			}

			if !found {
				return failure.NotFound("table not found") // nolint:wrapcheck
			}
		}

		if order.ReservationID != nil {
			rsvFilter := shared.FilterByID(*order.ReservationID, reservationModel.FieldID, reservationModel.TableName)

			found, err := s.reservationRepo.LockTx(ctx, tx, rsvFilter)
			if err != nil {
				return err
			}

			if !found {
				return failure.NotFound("reservation not found") // nolint:wrapcheck
			}

			// Re-read under the lock: two orders racing for the same
			// reservation serialize here and the loser sees the link.
			reservation, err := s.reservationRepo.GetTx(ctx, tx, rsvFilter)
			if err != nil {
				return err
			}

			if reservation.OrderID != nil {
				return failure.Conflict("reservation already linked to another order") // nolint:wrapcheck
			}

			if err := s.reservationRepo.UpdateTx(ctx, tx, map[string]any{
				reservationModel.FieldOrderID: order.ID,
				constant.FieldModifiedAt:      timezone.Now(),
				constant.FieldModifiedBy:      staff,
			}, rsvFilter); err != nil {
				return err
			}
		}

		if err := s.repo.InsertTx(ctx, tx, order); err != nil {
			return err
		}

		if err := s.itemRepo.InsertBulkTx(ctx, tx, items); err != nil {
			return err
		}

		if order.TableID != nil {
			return s.engine.ReconcileTableTx(ctx, tx, *order.TableID, staff)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create order")

		return res, err
	}

	s.publisher.OrderCreated(ctx, s.orderEvent(order))
	s.invalidate(ctx, order.ID)

	return s.Get(ctx, order.ID)
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateOrderRequest, id string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Empty() {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	staff, _ := ctx.Value(constant.ContextKeyStaffID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var updated model.Order

	err = s.txm.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		found, err := s.repo.LockTx(ctx, tx, filter)
		if err != nil {
			return err
		}

		if !found {
			return failure.NotFound("order not found") // nolint:wrapcheck
		}

		current, err := s.repo.GetTx(ctx, tx, filter)
		if err != nil {
			return err
		}

		if current.Status.IsTerminal() {
			return failure.Conflict("order is already finalized") // nolint:wrapcheck
		}

		newStatus := current.Status
		if req.Status != constant.Empty && model.Status(req.Status) != current.Status {
			newStatus = model.Status(req.Status)
			if !current.Status.CanTransition(newStatus) {
				return failure.InvalidState(fmt.Sprintf("cannot transition order from %s to %s", current.Status, newStatus)) // nolint:wrapcheck
			}
		}

		newTableID := current.TableID
		if req.TableID != nil {
			newTableID = req.TableID
		}

		updatedFields := map[string]any{
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: staff,
		}

		if newStatus != current.Status {
			updatedFields[model.FieldStatus] = newStatus
		}

		if req.TableID != nil {
			updatedFields[model.FieldTableID] = *req.TableID
		}

		if req.Notes != nil {
			updatedFields[model.FieldNotes] = *req.Notes
		}

		// Item replacement is delete-then-recreate within this transaction,
		// re-priced from the menu as it stands now. Any failure rolls the
		// whole replacement back, leaving the previous item set intact.
		if len(req.Items) > 0 {
			items, total, err := buildItems(current.ID, staff, req.Items, func(menuItemID string) (menuModel.MenuItem, error) {
				return s.menuRepo.GetTx(ctx, tx, shared.FilterByID(menuItemID, menuModel.FieldID, menuModel.TableName))
			})
			if err != nil {
				return err
			}

			if err := s.itemRepo.DeleteTx(ctx, tx, itemsByOrderFilter(current.ID)); err != nil {
				return err
			}

			if err := s.itemRepo.InsertBulkTx(ctx, tx, items); err != nil {
				return err
			}

			updatedFields[model.FieldTotalAmount] = total
		}

		if err := s.repo.UpdateTx(ctx, tx, updatedFields, filter); err != nil {
			return err
		}

		tableChanged := false
		if current.TableID != nil && newTableID != nil {
			tableChanged = *current.TableID != *newTableID
		} else if (current.TableID == nil) != (newTableID == nil) {
			tableChanged = true
		}

		// The old table may fall back to AVAILABLE or stay RESERVED under
		// another claim; the new table picks up the occupancy. Both are
		// recomputed from live counts, never patched.
		if tableChanged || newStatus.IsTerminal() {
			if current.TableID != nil && tableChanged {
				found, err := s.tableRepo.LockTx(ctx, tx, shared.FilterByID(*current.TableID, tableModel.FieldID, tableModel.TableName))
				if err != nil {
					return err
				}

				if found {
					if err := s.engine.ReconcileTableTx(ctx, tx, *current.TableID, staff); err != nil {
						return err
					}
				}
			}

			if newTableID != nil {
				found, err := s.tableRepo.LockTx(ctx, tx, shared.FilterByID(*newTableID, tableModel.FieldID, tableModel.TableName))
				if err != nil {
					return err
				}

				if !found {
					return failure.NotFound("table not found") // nolint:wrapcheck
				}

				if err := s.engine.ReconcileTableTx(ctx, tx, *newTableID, staff); err != nil {
					return err
				}
			}
		}

		updated = current
		updated.Status = newStatus
		updated.TableID = newTableID

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update order")

		return res, err
	}

	if updated.Status == model.StatusCompleted {
		s.publisher.OrderCompleted(ctx, s.orderEvent(updated))
	} else {
		s.publisher.OrderUpdated(ctx, s.orderEvent(updated))
	}

	s.invalidate(ctx, id)

	return s.Get(ctx, id)
}

// UpdateItemStatus advances one line through the kitchen workflow. When every
// item reaches READY or SERVED the order auto-completes; this is the only
// system-triggered order transition, everything else is an explicit staff
// action.
func (s *serviceImpl) UpdateItemStatus(ctx context.Context, orderID, itemID string, req dto.UpdateOrderItemStatusRequest) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateItemStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	staff, _ := ctx.Value(constant.ContextKeyStaffID).(string)
	orderFilter := shared.FilterByID(orderID, model.FieldID, model.TableName)

	newItemStatus := model.ItemStatus(req.Status)

	var (
		updated   model.Order
		completed bool
	)

	err = s.txm.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		found, err := s.repo.LockTx(ctx, tx, orderFilter)
		if err != nil {
			return err
		}

		if !found {
			return failure.NotFound("order not found") // nolint:wrapcheck
		}

		current, err := s.repo.GetTx(ctx, tx, orderFilter)
		if err != nil {
			return err
		}

		if current.Status.IsTerminal() {
			return failure.Conflict("order is already finalized") // nolint:wrapcheck
		}

		itemFilter := gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					Field:    model.ItemFieldID,
					Value:    itemID,
					Operator: gDto.FilterOperatorEq,
					Table:    model.ItemTableName,
				},
				gDto.Filter{
					Field:    model.ItemFieldOrderID,
					Value:    orderID,
					Operator: gDto.FilterOperatorEq,
					Table:    model.ItemTableName,
				},
			},
		}

		item, err := s.itemRepo.GetTx(ctx, tx, itemFilter)
		if err != nil {
			return err
		}

		if item.ID == constant.Empty {
			return failure.NotFound("order item not found") // nolint:wrapcheck
		}

		if item.Status != newItemStatus {
			if !item.Status.CanTransition(newItemStatus) {
				return failure.InvalidState(fmt.Sprintf("cannot transition order item from %s to %s", item.Status, newItemStatus)) // nolint:wrapcheck
			}

			if err := s.itemRepo.UpdateTx(ctx, tx, map[string]any{
				model.ItemFieldStatus:    newItemStatus,
				constant.FieldModifiedAt: timezone.Now(),
				constant.FieldModifiedBy: staff,
			}, itemFilter); err != nil {
				return err
			}
		}

		items, err := s.itemRepo.GetAllTx(ctx, tx, gDto.QueryParams{}, itemsByOrderFilter(orderID))
		if err != nil {
			return err
		}

		allDone := len(items) > 0
		for _, it := range items {
			if !it.Status.Done() {
				allDone = false

				break
			}
		}

		updated = current

		if allDone {
			if err := s.repo.UpdateTx(ctx, tx, map[string]any{
				model.FieldStatus:        model.StatusCompleted,
				constant.FieldModifiedAt: timezone.Now(),
				constant.FieldModifiedBy: staff,
			}, orderFilter); err != nil {
				return err
			}

			if current.TableID != nil {
				found, err := s.tableRepo.LockTx(ctx, tx, shared.FilterByID(*current.TableID, tableModel.FieldID, tableModel.TableName))
				if err != nil {
					return err
				}

				if found {
					if err := s.engine.ReconcileTableTx(ctx, tx, *current.TableID, staff); err != nil {
						return err
					}
				}
			}

			updated.Status = model.StatusCompleted
			completed = true
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update order item status")

		return res, err
	}

	s.publisher.KitchenItemUpdated(ctx, events.KitchenItemEvent{
		OrderID: orderID,
		ItemID:  itemID,
		Status:  string(newItemStatus),
	})

	if completed {
		s.publisher.OrderCompleted(ctx, s.orderEvent(updated))
	}

	s.invalidate(ctx, orderID)

	return s.Get(ctx, orderID)
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetOrder, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for order")

		return res, nil
	}

	order, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get order")

		return res, fmt.Errorf("failed to get order: %w", err)
	}

	if order.ID == constant.Empty {
		return res, failure.NotFound("order not found") // nolint:wrapcheck
	}

	items, err := s.itemRepo.GetAll(ctx, gDto.QueryParams{}, itemsByOrderFilter(order.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get order items")

		return res, fmt.Errorf("failed to get order items: %w", err)
	}

	res.FromModel(order, items)
	s.hydrate(ctx, &res, order)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save order to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllOrder, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for orders")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count orders")

		return res, fmt.Errorf("failed to count orders: %w", err)
	}

	orders, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get orders")

		return res, fmt.Errorf("failed to get orders: %w", err)
	}

	itemsByOrder := map[string][]model.OrderItem{}

	if len(orders) > 0 {
		orderIDs := make([]string, len(orders))
		for i, order := range orders {
			orderIDs[i] = order.ID
		}

		items, err := s.itemRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					Field:    model.ItemFieldOrderID,
					Value:    orderIDs,
					Operator: gDto.FilterOperatorIn,
					Table:    model.ItemTableName,
				},
			},
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to get order items")

			return res, fmt.Errorf("failed to get order items: %w", err)
		}

		for _, item := range items {
			itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
		}
	}

	res.FromModels(orders, itemsByOrder, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save orders to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountOrder, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count orders")

		return res, fmt.Errorf("failed to count orders: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save order count to cache")
		}
	}()

	return res, nil
}

// hydrate attaches the related table, staff and reservation snapshots.
// Hydration is best-effort: a missing relation leaves the field empty rather
// than failing the read.
func (s *serviceImpl) hydrate(ctx context.Context, res *dto.OrderResponse, order model.Order) {
	if order.TableID != nil {
		table, err := s.tableRepo.Get(ctx, shared.FilterByID(*order.TableID, tableModel.FieldID, tableModel.TableName))
		if err == nil && table.ID != constant.Empty {
			tableRes := &tableDto.TableResponse{}
			tableRes.FromModel(table)
			res.Table = tableRes
		}
	}

	if order.StaffID != constant.Empty {
		staff, err := s.staffRepo.Get(ctx, shared.FilterByID(order.StaffID, staffModel.FieldID, staffModel.TableName))
		if err == nil && staff.ID != constant.Empty {
			staffRes := &staffDto.StaffResponse{}
			staffRes.FromModel(staff)
			res.Staff = staffRes
		}
	}

	if order.ReservationID != nil {
		reservation, err := s.reservationRepo.Get(ctx, shared.FilterByID(*order.ReservationID, reservationModel.FieldID, reservationModel.TableName))
		if err == nil && reservation.ID != constant.Empty {
			reservationRes := &reservationDto.ReservationResponse{}
			reservationRes.FromModel(reservation)
			res.Reservation = reservationRes
		}
	}
}

func (s *serviceImpl) orderEvent(order model.Order) events.OrderEvent {
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

	return event
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetOrder, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete order from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllOrder)
		shared.InvalidateCaches(c, s.cache, cacheCountOrder)
	}()
}
