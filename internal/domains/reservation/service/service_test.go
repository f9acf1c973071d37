package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/phuhk2908/rms-backend/config"
	"github.com/phuhk2908/rms-backend/infras/otel/mocks"
	postgresMocks "github.com/phuhk2908/rms-backend/infras/postgres/mocks"
	engineMocks "github.com/phuhk2908/rms-backend/internal/domains/engine/mocks"
	reservationMocks "github.com/phuhk2908/rms-backend/internal/domains/reservation/mocks"
	"github.com/phuhk2908/rms-backend/internal/domains/reservation/model"
	"github.com/phuhk2908/rms-backend/internal/domains/reservation/model/dto"
	"github.com/phuhk2908/rms-backend/internal/domains/reservation/service"
	tableMocks "github.com/phuhk2908/rms-backend/internal/domains/table/mocks"
	tableModel "github.com/phuhk2908/rms-backend/internal/domains/table/model"
	eventsMocks "github.com/phuhk2908/rms-backend/internal/events/mocks"
	cacheMocks "github.com/phuhk2908/rms-backend/shared/cache/mocks"
	"github.com/phuhk2908/rms-backend/shared/constant"
	gDto "github.com/phuhk2908/rms-backend/shared/dto"
	"github.com/phuhk2908/rms-backend/shared/failure"
)

type reservationServiceMocks struct {
	repo      *reservationMocks.MockReservation
	tableRepo *tableMocks.MockTable
	engine    *engineMocks.MockEngine
	txm       *postgresMocks.MockTxManager
	cache     *cacheMocks.MockRedisCache
	publisher *eventsMocks.MockPublisher
}

func newReservationService(ctrl *gomock.Controller) (service.Reservation, *reservationServiceMocks) {
	m := &reservationServiceMocks{
		repo:      reservationMocks.NewMockReservation(ctrl),
		tableRepo: tableMocks.NewMockTable(ctrl),
		engine:    engineMocks.NewMockEngine(ctrl),
		txm:       postgresMocks.NewMockTxManager(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		publisher: eventsMocks.NewMockPublisher(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Restaurant.ReservationConflictBufferMin = 60

	svc := service.New(m.repo, m.tableRepo, m.engine, m.txm, cfg, m.cache, mocks.NewOtel(), m.publisher)

	return svc, m
}

func passthroughTx(m *reservationServiceMocks) {
	m.txm.EXPECT().
		WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, *sqlx.Tx) error) error {
			return fn(ctx, nil)
		})
}

func absorbCache(m *reservationServiceMocks) {
	m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func staffContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyStaffID, "staff-1")
}

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func TestReservationService_Create(t *testing.T) {
	tableID := "9c41e0aa-1111-4b58-8e00-aaaaaaaaaaaa"
	at := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)

	validReq := func() dto.CreateReservationRequest {
		return dto.CreateReservationRequest{
			CustomerName:    "Budi",
			CustomerContact: "+62-811-000-111",
			ReservationTime: at.Format(constant.DateFormat),
			PartySize:       2,
			Status:          string(model.StatusConfirmed),
			TableID:         &tableID,
		}
	}

	t.Run("successful creation reconciles the table", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newReservationService(ctrl)
		absorbCache(m)
		passthroughTx(m)

		m.tableRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.tableRepo.EXPECT().
			GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(tableModel.Table{ID: tableID, Capacity: 4}, nil)
		m.repo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)

		var created model.Reservation

		m.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, reservation model.Reservation) error {
				created = reservation

				return nil
			})

		m.engine.EXPECT().ReconcileTableTx(gomock.Any(), gomock.Any(), tableID, "staff-1").Return(nil)
		m.publisher.EXPECT().ReservationChanged(gomock.Any(), gomock.Any())

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.FilterGroup, _ ...string) (model.Reservation, error) {
				return created, nil
			})
		m.tableRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(tableModel.Table{ID: tableID, TableNumber: "T1", Capacity: 4, Status: tableModel.StatusReserved}, nil)

		res, err := svc.Create(staffContext(), validReq())

		assert.NoError(t, err)
		assert.Equal(t, string(model.StatusConfirmed), res.Status)
		assert.Equal(t, 2, created.PartySize)
		assert.Equal(t, at, created.ReservationTime.UTC())
	})

	t.Run("rejects a party larger than the table", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newReservationService(ctrl)
		absorbCache(m)
		passthroughTx(m)

		m.tableRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.tableRepo.EXPECT().
			GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(tableModel.Table{ID: tableID, Capacity: 4}, nil)

		req := validReq()
		req.PartySize = 6

		_, err := svc.Create(staffContext(), req)

		assert.True(t, failure.IsConflict(err))
		assert.EqualError(t, err, "table capacity is insufficient for party size")
	})

	t.Run("rejects an overlapping reservation on the same table", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newReservationService(ctrl)
		absorbCache(m)
		passthroughTx(m)

		m.tableRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.tableRepo.EXPECT().
			GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(tableModel.Table{ID: tableID, Capacity: 4}, nil)
		m.repo.EXPECT().
			CountTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup) (int, error) {
				// The overlap window brackets the requested time by the
				// configured buffer on both sides.
				var start, end time.Time

				for _, f := range filter.Filters {
					if flt, ok := f.(gDto.Filter); ok {
						switch flt.ArgName {
						case "window_start":
							start, _ = flt.Value.(time.Time)
						case "window_end":
							end, _ = flt.Value.(time.Time)
						}
					}
				}

				assert.Equal(t, at.Add(-time.Hour), start.UTC())
				assert.Equal(t, at.Add(time.Hour), end.UTC())

				return 1, nil
			})

		_, err := svc.Create(staffContext(), validReq())

		assert.True(t, failure.IsConflict(err))
		assert.EqualError(t, err, "table already has a reservation within the conflict window")
	})

	t.Run("rejects a malformed reservation time", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newReservationService(ctrl)
		absorbCache(m)

		req := validReq()
		req.ReservationTime = "tomorrow at eight"

		_, err := svc.Create(staffContext(), req)

		assert.True(t, failure.IsCode(err, 400))
	})
}

func TestReservationService_Update(t *testing.T) {
	reservationID := "9c41e0aa-2222-4b58-8e00-bbbbbbbbbbbb"
	tableID := "9c41e0aa-1111-4b58-8e00-aaaaaaaaaaaa"
	otherTableID := "9c41e0aa-3333-4b58-8e00-cccccccccccc"
	at := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)

	t.Run("rejects an empty request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newReservationService(ctrl)
		absorbCache(m)

		_, err := svc.Update(staffContext(), dto.UpdateReservationRequest{}, reservationID)

		assert.True(t, failure.IsCode(err, 400))
	})

	t.Run("rejects edits to a finalized reservation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newReservationService(ctrl)
		absorbCache(m)
		passthroughTx(m)

		m.repo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().
			GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Reservation{ID: reservationID, Status: model.StatusCancelled}, nil)

		_, err := svc.Update(staffContext(), dto.UpdateReservationRequest{Status: string(model.StatusConfirmed)}, reservationID)

		assert.True(t, failure.IsConflict(err))
		assert.EqualError(t, err, "reservation is already finalized")
	})

	t.Run("rejects an illegal status transition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newReservationService(ctrl)
		absorbCache(m)
		passthroughTx(m)

		m.repo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().
			GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Reservation{ID: reservationID, Status: model.StatusPending}, nil)

		_, err := svc.Update(staffContext(), dto.UpdateReservationRequest{Status: string(model.StatusNoShow)}, reservationID)

		assert.True(t, failure.IsCode(err, 422))
	})

	t.Run("cancelling locks the table row before reconciling", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newReservationService(ctrl)
		absorbCache(m)
		passthroughTx(m)

		current := model.Reservation{
			ID:              reservationID,
			Status:          model.StatusConfirmed,
			PartySize:       2,
			ReservationTime: at,
			TableID:         &tableID,
		}

		m.repo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(current, nil)
		m.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		// Terminal transitions skip the capacity validation, so the recompute
		// must take its own row lock before reading the table's claims.
		lock := m.tableRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.engine.EXPECT().
			ReconcileTableTx(gomock.Any(), gomock.Any(), tableID, "staff-1").
			After(lock).
			Return(nil)

		m.publisher.EXPECT().ReservationChanged(gomock.Any(), gomock.Any())

		cancelled := current
		cancelled.Status = model.StatusCancelled

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)
		m.tableRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(tableModel.Table{ID: tableID, TableNumber: "T1", Capacity: 4, Status: tableModel.StatusAvailable}, nil)

		res, err := svc.Update(staffContext(), dto.UpdateReservationRequest{Status: string(model.StatusCancelled)}, reservationID)

		assert.NoError(t, err)
		assert.Equal(t, string(model.StatusCancelled), res.Status)
	})

	t.Run("moving tables reconciles both tables", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newReservationService(ctrl)
		absorbCache(m)
		passthroughTx(m)

		current := model.Reservation{
			ID:              reservationID,
			Status:          model.StatusConfirmed,
			PartySize:       2,
			ReservationTime: at,
			TableID:         &tableID,
		}

		m.repo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(current, nil)

		m.tableRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).Times(2)
		m.tableRepo.EXPECT().
			GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(tableModel.Table{ID: otherTableID, Capacity: 4}, nil)
		m.repo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)

		m.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		m.engine.EXPECT().ReconcileTableTx(gomock.Any(), gomock.Any(), tableID, "staff-1").Return(nil)
		m.engine.EXPECT().ReconcileTableTx(gomock.Any(), gomock.Any(), otherTableID, "staff-1").Return(nil)

		m.publisher.EXPECT().ReservationChanged(gomock.Any(), gomock.Any())

		moved := current
		moved.TableID = &otherTableID

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(moved, nil)
		m.tableRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(tableModel.Table{ID: otherTableID, TableNumber: "T2", Capacity: 4, Status: tableModel.StatusReserved}, nil)

		res, err := svc.Update(staffContext(), dto.UpdateReservationRequest{TableID: &otherTableID}, reservationID)

		assert.NoError(t, err)
		assert.Equal(t, otherTableID, res.TableID)
	})

	t.Run("growing the party re-checks capacity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newReservationService(ctrl)
		absorbCache(m)
		passthroughTx(m)

		current := model.Reservation{
			ID:              reservationID,
			Status:          model.StatusConfirmed,
			PartySize:       2,
			ReservationTime: at,
			TableID:         &tableID,
		}

		m.repo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(current, nil)

		m.tableRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.tableRepo.EXPECT().
			GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(tableModel.Table{ID: tableID, Capacity: 4}, nil)

		_, err := svc.Update(staffContext(), dto.UpdateReservationRequest{PartySize: intPtr(6)}, reservationID)

		assert.True(t, failure.IsConflict(err))
		assert.EqualError(t, err, "table capacity is insufficient for party size")
	})
}

func TestReservationService_Get(t *testing.T) {
	reservationID := "9c41e0aa-2222-4b58-8e00-bbbbbbbbbbbb"

	t.Run("serves from cache without touching the repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newReservationService(ctrl)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := svc.Get(context.Background(), reservationID)

		assert.NoError(t, err)
	})

	t.Run("returns not found for an unknown id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newReservationService(ctrl)
		absorbCache(m)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Reservation{}, nil)

		_, err := svc.Get(context.Background(), reservationID)

		assert.True(t, failure.IsNotFound(err))
	})
}

func TestReservationService_Delete(t *testing.T) {
	reservationID := "9c41e0aa-2222-4b58-8e00-bbbbbbbbbbbb"
	tableID := "9c41e0aa-1111-4b58-8e00-aaaaaaaaaaaa"

	t.Run("deleting frees the table", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newReservationService(ctrl)
		absorbCache(m)
		passthroughTx(m)

		m.repo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().
			GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Reservation{ID: reservationID, Status: model.StatusConfirmed, TableID: &tableID}, nil)
		m.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		m.tableRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.engine.EXPECT().ReconcileTableTx(gomock.Any(), gomock.Any(), tableID, "staff-1").Return(nil)

		m.publisher.EXPECT().ReservationChanged(gomock.Any(), gomock.Any())

		err := svc.Delete(staffContext(), reservationID)

		assert.NoError(t, err)
	})

	t.Run("refuses to delete a reservation linked to an order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newReservationService(ctrl)
		absorbCache(m)
		passthroughTx(m)

		m.repo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().
			GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Reservation{ID: reservationID, Status: model.StatusConfirmed, OrderID: strPtr("order-1")}, nil)

		err := svc.Delete(staffContext(), reservationID)

		assert.True(t, failure.IsConflict(err))
		assert.EqualError(t, err, "reservation is linked to an order")
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newReservationService(ctrl)
		absorbCache(m)
		passthroughTx(m)

		m.repo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(staffContext(), reservationID)

		assert.True(t, failure.IsNotFound(err))
	})
}
