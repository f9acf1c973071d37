package dto

import (
	"mime/multipart"

	"github.com/phuhk2908/rms-backend/internal/domains/menu/model"
	"github.com/phuhk2908/rms-backend/shared"
	gDto "github.com/phuhk2908/rms-backend/shared/dto"
	gModel "github.com/phuhk2908/rms-backend/shared/model"
	"github.com/phuhk2908/rms-backend/shared/timezone"

	"github.com/google/uuid"
)

type CreateMenuItemRequest struct {
	Name        string  `json:"name"         validate:"required,min=2,max=128"`
	Description string  `json:"description"  validate:"omitempty,max=512"`
	Price       float64 `json:"price"        validate:"required,gt=0"`
	Category    string  `json:"category"     validate:"required,max=64"`
	ImageURL    string  `json:"image_url"    validate:"omitempty,url"`
	IsAvailable *bool   `json:"is_available" validate:"omitempty"`
}

func (c *CreateMenuItemRequest) ToModel(staff string) model.MenuItem {
	isAvailable := true
	if c.IsAvailable != nil {
		isAvailable = *c.IsAvailable
	}

	return model.MenuItem{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Price:       c.Price,
		Category:    c.Category,
		ImageURL:    c.ImageURL,
		IsAvailable: isAvailable,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  staff,
			ModifiedBy: staff,
		},
	}
}

// Price changes here never touch existing order lines; those keep the price
// frozen when the line was created.
type UpdateMenuItemRequest struct {
	Name        string   `db:"name"         json:"name"         validate:"omitempty,min=2,max=128"`
	Description *string  `db:"description"  json:"description"  validate:"omitempty,max=512"`
	Price       *float64 `db:"price"        json:"price"        validate:"omitempty,gt=0"`
	Category    string   `db:"category"     json:"category"     validate:"omitempty,max=64"`
	ImageURL    *string  `db:"image_url"    json:"image_url"    validate:"omitempty,url"`
	IsAvailable *bool    `db:"is_available" json:"is_available" validate:"omitempty"`
}

type MenuItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url,omitempty"`
	IsAvailable bool    `json:"is_available"`
	gDto.Metadata
}

func (r *MenuItemResponse) FromModel(model model.MenuItem) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Price = model.Price
	r.Category = model.Category
	r.ImageURL = model.ImageURL
	r.IsAvailable = model.IsAvailable
	r.Metadata.FromModel(model.Metadata)
}

type GetMenuItemsResponse struct {
	MenuItems []MenuItemResponse `json:"menu_items"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetMenuItemsResponse) FromModels(models []model.MenuItem, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.MenuItems = make([]MenuItemResponse, len(models))
	for i, mod := range models {
		r.MenuItems[i].FromModel(mod)
	}
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg"`
	ImageFile multipart.File        `json:"-"`
}

type UploadImageResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

func (r *UploadImageResponse) FromModel(url, fileName string) {
	r.URL = url
	r.FileName = fileName
}
