package model

import "github.com/phuhk2908/rms-backend/shared/model"

const (
	TableName  = "menu_items"
	EntityName = "menu_item"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCategory    = "category"
	FieldImageURL    = "image_url"
	FieldIsAvailable = "is_available"
)

type MenuItem struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Category    string  `db:"category"`
	ImageURL    string  `db:"image_url"`
	IsAvailable bool    `db:"is_available"`
	model.Metadata
}
