package service

import (
	"context"
	"fmt"
	"time"

	"github.com/phuhk2908/rms-backend/config"
	"github.com/phuhk2908/rms-backend/infras/otel"
	"github.com/phuhk2908/rms-backend/infras/postgres"
	"github.com/phuhk2908/rms-backend/internal/domains/engine"
	"github.com/phuhk2908/rms-backend/internal/domains/reservation/model"
	"github.com/phuhk2908/rms-backend/internal/domains/reservation/model/dto"
	"github.com/phuhk2908/rms-backend/internal/domains/reservation/repository"
	tableModel "github.com/phuhk2908/rms-backend/internal/domains/table/model"
	tableDto "github.com/phuhk2908/rms-backend/internal/domains/table/model/dto"
	tableRepo "github.com/phuhk2908/rms-backend/internal/domains/table/repository"
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
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (dto.ReservationResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Reservation
	tableRepo tableRepo.Table
	engine    engine.Engine
	txm       postgres.TxManager
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	publisher events.Publisher
}

func New(
	repo repository.Reservation,
	tables tableRepo.Table,
	eng engine.Engine,
	txm postgres.TxManager,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	publisher events.Publisher,
) Reservation {
	return &serviceImpl{
		repo:      repo,
		tableRepo: tables,
		engine:    eng,
		txm:       txm,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		publisher: publisher,
	}
}

func (s *serviceImpl) conflictBuffer() time.Duration {
	minutes := s.cfg.Restaurant.ReservationConflictBufferMin
	if minutes <= 0 {
		minutes = 60
	}

	return time.Duration(minutes) * time.Minute
}

// overlapFilter matches other active reservations on the table whose time
// falls within the conflict buffer around the requested time.
func (s *serviceImpl) overlapFilter(tableID string, at time.Time, excludeID string) gDto.FilterGroup {
	buffer := s.conflictBuffer()

	filters := []any{
		gDto.Filter{
			Field:    model.FieldTableID,
			Value:    tableID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldStatus,
			Value:    model.TerminalStatuses,
			Operator: gDto.FilterOperatorNotIn,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "window_start",
			Field:    model.FieldReservationTime,
			Value:    at.Add(-buffer),
			Operator: gDto.FilterOperatorGreater,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "window_end",
			Field:    model.FieldReservationTime,
			Value:    at.Add(buffer),
			Operator: gDto.FilterOperatorLess,
			Table:    model.TableName,
		},
	}

	if excludeID != constant.Empty {
		filters = append(filters, gDto.Filter{
			ArgName:  "exclude_id",
			Field:    model.FieldID,
			Value:    excludeID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{Filters: filters}
}

// validateTableTx locks the table row, then checks capacity and the overlap
// window. Must run inside the mutation's transaction so a concurrent
// reservation on the same table serializes behind the lock.
func (s *serviceImpl) validateTableTx(ctx context.Context, tx *sqlx.Tx, tableID string, partySize int, at time.Time, excludeID string) error {
	found, err := s.tableRepo.LockTx(ctx, tx, shared.FilterByID(tableID, tableModel.FieldID, tableModel.TableName))
	if err != nil {
		return err
	}

	if !found {
		return failure.NotFound("table not found") // nolint:wrapcheck
	}

	table, err := s.tableRepo.GetTx(ctx, tx, shared.FilterByID(tableID, tableModel.FieldID, tableModel.TableName))
	if err != nil {
		return err
	}

	if table.Capacity < partySize {
		return failure.Conflict("table capacity is insufficient for party size") // nolint:wrapcheck
	}

	overlapping, err := s.repo.CountTx(ctx, tx, s.overlapFilter(tableID, at, excludeID))
	if err != nil {
		return err
	}

	if overlapping > 0 {
		return failure.Conflict("table already has a reservation within the conflict window") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	staff, _ := ctx.Value(constant.ContextKeyStaffID).(string)

	reservation, err := req.ToModel(staff)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid reservation time: %v", err)) // nolint:wrapcheck
	}

	err = s.txm.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if reservation.TableID != nil {
			if err := s.validateTableTx(ctx, tx, *reservation.TableID, reservation.PartySize, reservation.ReservationTime, constant.Empty); err != nil {
				return err
			}
		}

		if err := s.repo.InsertTx(ctx, tx, reservation); err != nil {
			return err
		}

		if reservation.TableID != nil {
			return s.engine.ReconcileTableTx(ctx, tx, *reservation.TableID, staff)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return res, err
	}

	s.publishChange(ctx, reservation)
	s.invalidate(ctx, reservation.ID)

	return s.Get(ctx, reservation.ID)
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetReservation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		return res, nil
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	res.FromModel(reservation)

	if reservation.TableID != nil {
		table, err := s.tableRepo.Get(ctx, shared.FilterByID(*reservation.TableID, tableModel.FieldID, tableModel.TableName))
		if err == nil && table.ID != constant.Empty {
			tableRes := &tableDto.TableResponse{}
			tableRes.FromModel(table)
			res.Table = tableRes
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Empty() {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	requestedTime, err := req.ParsedTime()
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid reservation time: %v", err)) // nolint:wrapcheck
	}

	staff, _ := ctx.Value(constant.ContextKeyStaffID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var updated model.Reservation

	err = s.txm.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		found, err := s.repo.LockTx(ctx, tx, filter)
		if err != nil {
			return err
		}

		if !found {
			return failure.NotFound("reservation not found") // nolint:wrapcheck
		}

		current, err := s.repo.GetTx(ctx, tx, filter)
		if err != nil {
			return err
		}

		if current.Status.IsTerminal() {
			return failure.Conflict("reservation is already finalized") // nolint:wrapcheck
		}

		newStatus := current.Status
		if req.Status != constant.Empty && model.Status(req.Status) != current.Status {
			newStatus = model.Status(req.Status)
			if !current.Status.CanTransition(newStatus) {
				return failure.InvalidState(fmt.Sprintf("cannot transition reservation from %s to %s", current.Status, newStatus)) // nolint:wrapcheck
			}
		}

		newTableID := current.TableID
		if req.TableID != nil {
			newTableID = req.TableID
		}

		newTime := current.ReservationTime
		if requestedTime != nil {
			newTime = *requestedTime
		}

		newPartySize := current.PartySize
		if req.PartySize != nil {
			newPartySize = *req.PartySize
		}

		// Re-validate the target table whenever the claim it will hold
		// changes shape and the reservation stays active. The validation
		// takes the table row lock.
		newTableLocked := false
		if newTableID != nil && !newStatus.IsTerminal() {
			if err := s.validateTableTx(ctx, tx, *newTableID, newPartySize, newTime, current.ID); err != nil {
				return err
			}

			newTableLocked = true
		}

		updatedFields := map[string]any{
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: staff,
		}

		if req.CustomerName != constant.Empty {
			updatedFields[model.FieldCustomerName] = req.CustomerName
		}

		if req.CustomerContact != constant.Empty {
			updatedFields[model.FieldCustomerContact] = req.CustomerContact
		}

		if requestedTime != nil {
			updatedFields[model.FieldReservationTime] = *requestedTime
		}

		if req.PartySize != nil {
			updatedFields[model.FieldPartySize] = *req.PartySize
		}

		if newStatus != current.Status {
			updatedFields[model.FieldStatus] = newStatus
		}

		if req.TableID != nil {
			updatedFields[model.FieldTableID] = *req.TableID
		}

		if err := s.repo.UpdateTx(ctx, tx, updatedFields, filter); err != nil {
			return err
		}

		// Every table touched gets recomputed: the old one may fall back to
		// AVAILABLE or stay claimed by another reservation, the new one picks
		// up the moved claim.
		oldTableID := current.TableID
		if oldTableID != nil && (newTableID == nil || *oldTableID != *newTableID) {
			found, err := s.tableRepo.LockTx(ctx, tx, shared.FilterByID(*oldTableID, tableModel.FieldID, tableModel.TableName))
			if err != nil {
				return err
			}

			if found {
				if err := s.engine.ReconcileTableTx(ctx, tx, *oldTableID, staff); err != nil {
					return err
				}
			}
		}

		if newTableID != nil {
			reconcile := newTableLocked

			// Terminal transitions skip the validation above, so the row
			// lock the recompute depends on has to be taken here.
			if !newTableLocked {
				found, err := s.tableRepo.LockTx(ctx, tx, shared.FilterByID(*newTableID, tableModel.FieldID, tableModel.TableName))
				if err != nil {
					return err
				}

				reconcile = found
			}

			if reconcile {
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
		log.Error().Err(err).Msg("failed to update reservation")

		return res, err
	}

	s.publishChange(ctx, updated)
	s.invalidate(ctx, id)

	return s.Get(ctx, id)
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	staff, _ := ctx.Value(constant.ContextKeyStaffID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var removed model.Reservation

	err = s.txm.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		found, err := s.repo.LockTx(ctx, tx, filter)
		if err != nil {
			return err
		}

		if !found {
			return failure.NotFound("reservation not found") // nolint:wrapcheck
		}

		current, err := s.repo.GetTx(ctx, tx, filter)
		if err != nil {
			return err
		}

		if current.OrderID != nil {
			return failure.Conflict("reservation is linked to an order") // nolint:wrapcheck
		}

		if err := s.repo.DeleteTx(ctx, tx, filter); err != nil {
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

		removed = current

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete reservation")

		return err
	}

	removed.Status = model.StatusCancelled
	s.publishChange(ctx, removed)
	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) publishChange(ctx context.Context, reservation model.Reservation) {
	event := events.ReservationEvent{
		ReservationID: reservation.ID,
		Status:        string(reservation.Status),
	}

	if reservation.TableID != nil {
		event.TableID = *reservation.TableID
	}

	s.publisher.ReservationChanged(ctx, event)
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()
}
