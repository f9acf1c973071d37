package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/phuhk2908/rms-backend/config"
	"github.com/phuhk2908/rms-backend/infras/otel/mocks"
	staffMocks "github.com/phuhk2908/rms-backend/internal/domains/staff/mocks"
	"github.com/phuhk2908/rms-backend/internal/domains/staff/model"
	"github.com/phuhk2908/rms-backend/internal/domains/staff/model/dto"
	"github.com/phuhk2908/rms-backend/internal/domains/staff/service"
	cacheMocks "github.com/phuhk2908/rms-backend/shared/cache/mocks"
	"github.com/phuhk2908/rms-backend/shared/constant"
	"github.com/phuhk2908/rms-backend/shared/failure"
)

type staffServiceMocks struct {
	repo  *staffMocks.MockStaff
	cache *cacheMocks.MockRedisCache
}

func newStaffService(ctrl *gomock.Controller) (service.Staff, *staffServiceMocks) {
	m := &staffServiceMocks{
		repo:  staffMocks.NewMockStaff(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.repo, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

// absorbCache stubs the cache as always missing. Saves and invalidations run
// on detached goroutines, so they are allowed but never required.
func absorbCache(m *staffServiceMocks) {
	m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func actorContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyStaffID, "manager-1")
}

func TestStaffService_Create(t *testing.T) {
	t.Run("successfully creates a staff member", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newStaffService(ctrl)
		absorbCache(m)

		req := dto.CreateStaffRequest{
			Name:  "Ayu",
			Email: "ayu@example.com",
			Role:  "WAITER",
		}

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, staff model.Staff) error {
				assert.NotEmpty(t, staff.ID)
				assert.Equal(t, "ayu@example.com", staff.Email)
				assert.True(t, staff.IsActive)
				assert.Equal(t, "manager-1", staff.CreatedBy)

				return nil
			})

		res, err := svc.Create(actorContext(), req)

		assert.NoError(t, err)
		assert.Equal(t, "Ayu", res.Name)
		assert.Equal(t, "WAITER", res.Role)
		assert.True(t, res.IsActive)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newStaffService(ctrl)

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)})

		_, err := svc.Create(actorContext(), dto.CreateStaffRequest{Name: "Ayu", Email: "ayu@example.com", Role: "WAITER"})

		assert.True(t, failure.IsConflict(err))
		assert.EqualError(t, err, "staff email already exists")
	})

	t.Run("returns repository errors unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newStaffService(ctrl)

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("insert failed"))

		_, err := svc.Create(actorContext(), dto.CreateStaffRequest{Name: "Ayu", Email: "ayu@example.com", Role: "WAITER"})

		assert.EqualError(t, err, "insert failed")
	})
}

func TestStaffService_Get(t *testing.T) {
	t.Run("returns the staff member", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newStaffService(ctrl)
		absorbCache(m)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Staff{ID: "staff-1", Name: "Ayu", Role: "WAITER", IsActive: true}, nil)

		res, err := svc.Get(context.Background(), "staff-1")

		assert.NoError(t, err)
		assert.Equal(t, "staff-1", res.ID)
		assert.Equal(t, "WAITER", res.Role)
	})

	t.Run("returns not found for an unknown id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newStaffService(ctrl)
		absorbCache(m)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Staff{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.True(t, failure.IsNotFound(err))
	})
}

func TestStaffService_Update(t *testing.T) {
	t.Run("updates role and activity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newStaffService(ctrl)
		absorbCache(m)

		inactive := false
		req := dto.UpdateStaffRequest{Role: "HOST", IsActive: &inactive}

		m.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ interface{}) error {
				assert.Equal(t, "HOST", fields["role"])
				assert.Equal(t, &inactive, fields["is_active"])
				assert.Equal(t, "manager-1", fields[constant.FieldModifiedBy])

				return nil
			})

		err := svc.Update(actorContext(), req, "staff-1")

		assert.NoError(t, err)
	})

	t.Run("returns not found for an unknown id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newStaffService(ctrl)

		m.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Update(actorContext(), dto.UpdateStaffRequest{Role: "HOST"}, "missing")

		assert.True(t, failure.IsNotFound(err))
	})
}

func TestStaffService_Delete(t *testing.T) {
	tests := []struct {
		name        string
		exist       bool
		deleteErr   error
		expectedErr string
	}{
		{
			name:  "successfully deletes a staff member",
			exist: true,
		},
		{
			name:        "returns not found for an unknown id",
			exist:       false,
			expectedErr: "staff not found",
		},
		{
			name:        "propagates delete failures",
			exist:       true,
			deleteErr:   errors.New("delete failed"),
			expectedErr: "failed to delete staff: delete failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newStaffService(ctrl)
			absorbCache(m)

			m.repo.EXPECT().
				Exist(gomock.Any(), gomock.Any()).
				Return(tt.exist, nil)

			if tt.exist {
				m.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(tt.deleteErr)
			}

			err := svc.Delete(context.Background(), "staff-1")

			if tt.expectedErr != "" {
				assert.EqualError(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
