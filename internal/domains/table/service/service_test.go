package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/phuhk2908/rms-backend/config"
	"github.com/phuhk2908/rms-backend/infras/otel/mocks"
	postgresMocks "github.com/phuhk2908/rms-backend/infras/postgres/mocks"
	engineMocks "github.com/phuhk2908/rms-backend/internal/domains/engine/mocks"
	tableMocks "github.com/phuhk2908/rms-backend/internal/domains/table/mocks"
	"github.com/phuhk2908/rms-backend/internal/domains/table/model"
	"github.com/phuhk2908/rms-backend/internal/domains/table/model/dto"
	"github.com/phuhk2908/rms-backend/internal/domains/table/service"
	cacheMocks "github.com/phuhk2908/rms-backend/shared/cache/mocks"
	"github.com/phuhk2908/rms-backend/shared/constant"
	"github.com/phuhk2908/rms-backend/shared/failure"
)

type tableServiceMocks struct {
	repo   *tableMocks.MockTable
	engine *engineMocks.MockEngine
	txm    *postgresMocks.MockTxManager
	cache  *cacheMocks.MockRedisCache
}

func newTableService(ctrl *gomock.Controller) (service.Table, *tableServiceMocks) {
	m := &tableServiceMocks{
		repo:   tableMocks.NewMockTable(ctrl),
		engine: engineMocks.NewMockEngine(ctrl),
		txm:    postgresMocks.NewMockTxManager(ctrl),
		cache:  cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.repo, m.engine, m.txm, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

// passthroughTx runs the transactional closure with a nil tx so the repository
// mocks see the same calls the real transaction would.
func passthroughTx(m *tableServiceMocks) {
	m.txm.EXPECT().
		WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, *sqlx.Tx) error) error {
			return fn(ctx, nil)
		})
}

func absorbCache(m *tableServiceMocks) {
	m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func staffContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyStaffID, "staff-1")
}

func TestTableService_Create(t *testing.T) {
	tests := []struct {
		name      string
		insertErr error
		wantErr   string
	}{
		{
			name: "successful creation",
		},
		{
			name:      "duplicate table number",
			insertErr: &pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)},
			wantErr:   "table number already exists",
		},
		{
			name:      "repository error",
			insertErr: errors.New("database error"),
			wantErr:   "database error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newTableService(ctrl)
			absorbCache(m)

			m.repo.EXPECT().
				Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, table model.Table) error {
					assert.Equal(t, model.StatusAvailable, table.Status)
					assert.Equal(t, "staff-1", table.CreatedBy)

					return tt.insertErr
				})

			err := svc.Create(staffContext(), dto.CreateTableRequest{TableNumber: "T1", Capacity: 4})

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTableService_Update(t *testing.T) {
	tableID := "5d2f91c3-1111-49aa-8c00-aaaaaaaaaaaa"

	t.Run("rejects an empty request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newTableService(ctrl)
		absorbCache(m)

		err := svc.Update(staffContext(), dto.UpdateTableRequest{}, tableID)

		assert.True(t, failure.IsCode(err, 400))
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newTableService(ctrl)
		absorbCache(m)

		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(staffContext(), dto.UpdateTableRequest{TableNumber: "T9"}, tableID)

		assert.True(t, failure.IsNotFound(err))
	})

	t.Run("duplicate table number", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newTableService(ctrl)
		absorbCache(m)

		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)})

		err := svc.Update(staffContext(), dto.UpdateTableRequest{TableNumber: "T9"}, tableID)

		assert.True(t, failure.IsConflict(err))
		assert.EqualError(t, err, "table number already exists")
	})

	t.Run("successful update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newTableService(ctrl)
		absorbCache(m)

		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, "T9", fields[model.FieldTableNumber])
				assert.Equal(t, "staff-1", fields[constant.FieldModifiedBy])

				return nil
			})

		err := svc.Update(staffContext(), dto.UpdateTableRequest{TableNumber: "T9"}, tableID)

		assert.NoError(t, err)
	})
}

func TestTableService_Delete(t *testing.T) {
	tableID := "5d2f91c3-1111-49aa-8c00-aaaaaaaaaaaa"

	tests := []struct {
		name      string
		found     bool
		claimed   bool
		wantErr   string
		wantCode  int
		deleteRun bool
	}{
		{
			name:      "successful deletion",
			found:     true,
			deleteRun: true,
		},
		{
			name:     "not found",
			wantErr:  "table not found",
			wantCode: 404,
		},
		{
			name:     "refuses while claims remain",
			found:    true,
			claimed:  true,
			wantErr:  "table has active orders or reservations",
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newTableService(ctrl)
			absorbCache(m)
			passthroughTx(m)

			// The existence check doubles as the row lock, so a concurrent
			// claim cannot appear between the check and the delete.
			m.repo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.found, nil)

			if tt.found {
				m.engine.EXPECT().HasActiveClaimsTx(gomock.Any(), gomock.Any(), tableID).Return(tt.claimed, nil)
			}

			if tt.deleteRun {
				m.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			}

			err := svc.Delete(staffContext(), tableID)

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				assert.True(t, failure.IsCode(err, tt.wantCode))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTableService_Get(t *testing.T) {
	tableID := "5d2f91c3-1111-49aa-8c00-aaaaaaaaaaaa"

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newTableService(ctrl)
		absorbCache(m)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Table{ID: tableID, TableNumber: "T1", Capacity: 4, Status: model.StatusAvailable}, nil)

		res, err := svc.Get(context.Background(), tableID)

		assert.NoError(t, err)
		assert.Equal(t, string(model.StatusAvailable), res.Status)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newTableService(ctrl)
		absorbCache(m)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Table{}, nil)

		_, err := svc.Get(context.Background(), tableID)

		assert.True(t, failure.IsNotFound(err))
	})
}
