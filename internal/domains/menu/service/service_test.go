package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/phuhk2908/rms-backend/config"
	"github.com/phuhk2908/rms-backend/infras/otel/mocks"
	s3Mocks "github.com/phuhk2908/rms-backend/infras/s3/mocks"
	menuMocks "github.com/phuhk2908/rms-backend/internal/domains/menu/mocks"
	"github.com/phuhk2908/rms-backend/internal/domains/menu/model"
	"github.com/phuhk2908/rms-backend/internal/domains/menu/model/dto"
	"github.com/phuhk2908/rms-backend/internal/domains/menu/service"
	cacheMocks "github.com/phuhk2908/rms-backend/shared/cache/mocks"
	"github.com/phuhk2908/rms-backend/shared/constant"
	"github.com/phuhk2908/rms-backend/shared/failure"
)

type menuServiceMocks struct {
	repo  *menuMocks.MockMenu
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
}

func newMenuService(ctrl *gomock.Controller) (service.Menu, *menuServiceMocks) {
	m := &menuServiceMocks{
		repo:  menuMocks.NewMockMenu(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "rms-assets"

	svc := service.New(m.repo, cfg, m.cache, mocks.NewOtel(), m.s3)

	return svc, m
}

// absorbCache stubs the cache as always missing. Saves and invalidations run
// on detached goroutines, so they are allowed but never required.
func absorbCache(m *menuServiceMocks) {
	m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func staffContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyStaffID, "staff-1")
}

func TestMenuService_Create(t *testing.T) {
	t.Run("successfully creates a menu item", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newMenuService(ctrl)
		absorbCache(m)

		req := dto.CreateMenuItemRequest{
			Name:     "Burger",
			Price:    5.00,
			Category: "Mains",
		}

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, item model.MenuItem) error {
				assert.NotEmpty(t, item.ID)
				assert.Equal(t, "Burger", item.Name)
				assert.Equal(t, 5.00, item.Price)
				assert.True(t, item.IsAvailable)
				assert.Equal(t, "staff-1", item.CreatedBy)

				return nil
			})

		res, err := svc.Create(staffContext(), req)

		assert.NoError(t, err)
		assert.Equal(t, "Burger", res.Name)
		assert.True(t, res.IsAvailable)
	})

	t.Run("honors an explicit availability flag", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newMenuService(ctrl)
		absorbCache(m)

		unavailable := false
		req := dto.CreateMenuItemRequest{
			Name:        "Seasonal Soup",
			Price:       4.50,
			Category:    "Starters",
			IsAvailable: &unavailable,
		}

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, item model.MenuItem) error {
				assert.False(t, item.IsAvailable)

				return nil
			})

		res, err := svc.Create(staffContext(), req)

		assert.NoError(t, err)
		assert.False(t, res.IsAvailable)
	})

	t.Run("returns repository errors unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newMenuService(ctrl)

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("insert failed"))

		_, err := svc.Create(staffContext(), dto.CreateMenuItemRequest{Name: "Burger", Price: 5.00, Category: "Mains"})

		assert.EqualError(t, err, "insert failed")
	})
}

func TestMenuService_Get(t *testing.T) {
	t.Run("returns the menu item", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newMenuService(ctrl)
		absorbCache(m)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.MenuItem{ID: "menu-1", Name: "Burger", Price: 5.00, IsAvailable: true}, nil)

		res, err := svc.Get(context.Background(), "menu-1")

		assert.NoError(t, err)
		assert.Equal(t, "menu-1", res.ID)
		assert.Equal(t, 5.00, res.Price)
	})

	t.Run("serves from cache without touching the repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newMenuService(ctrl)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := svc.Get(context.Background(), "menu-1")

		assert.NoError(t, err)
	})

	t.Run("returns not found for an unknown id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newMenuService(ctrl)
		absorbCache(m)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.MenuItem{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.True(t, failure.IsNotFound(err))
	})
}

func TestMenuService_Update(t *testing.T) {
	t.Run("updates only the provided fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newMenuService(ctrl)
		absorbCache(m)

		price := 6.50
		req := dto.UpdateMenuItemRequest{Price: &price}

		m.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ interface{}) error {
				assert.Equal(t, &price, fields["price"])
				assert.Equal(t, "staff-1", fields[constant.FieldModifiedBy])

				return nil
			})

		err := svc.Update(staffContext(), req, "menu-1")

		assert.NoError(t, err)
	})

	t.Run("returns not found for an unknown id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newMenuService(ctrl)

		m.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Update(staffContext(), dto.UpdateMenuItemRequest{}, "missing")

		assert.True(t, failure.IsNotFound(err))
	})
}

func TestMenuService_Delete(t *testing.T) {
	t.Run("deletes the item and its stored image", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newMenuService(ctrl)
		absorbCache(m)

		imageURL := "https://rms-assets.s3.amazonaws.com/menu_item/burger.png"

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.MenuItem{ID: "menu-1", Name: "Burger", ImageURL: imageURL}, nil)
		m.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		// Image cleanup runs on a detached goroutine after commit.
		m.s3.EXPECT().
			GetObjectNameFromURL("rms-assets", imageURL).
			Return("burger.png").
			AnyTimes()
		m.s3.EXPECT().
			DeleteFile(gomock.Any(), "rms-assets", model.EntityName, "burger.png").
			Return(nil).
			AnyTimes()

		err := svc.Delete(context.Background(), "menu-1")

		assert.NoError(t, err)
	})

	t.Run("deletes an item without an image", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newMenuService(ctrl)
		absorbCache(m)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.MenuItem{ID: "menu-1", Name: "Burger"}, nil)
		m.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Delete(context.Background(), "menu-1")

		assert.NoError(t, err)
	})

	t.Run("returns not found for an unknown id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newMenuService(ctrl)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.MenuItem{}, nil)

		err := svc.Delete(context.Background(), "missing")

		assert.True(t, failure.IsNotFound(err))
	})
}

func TestMenuService_UploadImage(t *testing.T) {
	t.Run("uploads the image and returns its URL", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newMenuService(ctrl)

		header := &multipart.FileHeader{Filename: "burger.png"}
		req := dto.UploadImageRequest{Image: header}

		m.s3.EXPECT().
			UploadFile(gomock.Any(), "rms-assets", model.EntityName, nil, header, "burger.png").
			Return("https://rms-assets.s3.amazonaws.com/menu_item/burger.png", nil)

		res, err := svc.UploadImage(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, "https://rms-assets.s3.amazonaws.com/menu_item/burger.png", res.URL)
		assert.Equal(t, "burger.png", res.FileName)
	})

	t.Run("propagates upload failures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newMenuService(ctrl)

		header := &multipart.FileHeader{Filename: "burger.png"}

		m.s3.EXPECT().
			UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("connection reset"))

		_, err := svc.UploadImage(context.Background(), dto.UploadImageRequest{Image: header})

		assert.ErrorContains(t, err, "failed to upload file to S3")
	})
}
