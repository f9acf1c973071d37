package dto

import (
	"github.com/phuhk2908/rms-backend/internal/domains/table/model"
	"github.com/phuhk2908/rms-backend/shared"
	gDto "github.com/phuhk2908/rms-backend/shared/dto"
	gModel "github.com/phuhk2908/rms-backend/shared/model"
	"github.com/phuhk2908/rms-backend/shared/timezone"

	"github.com/google/uuid"
)

type CreateTableRequest struct {
	TableNumber string `json:"table_number" validate:"required,max=16"`
	Capacity    int    `json:"capacity"     validate:"required,min=1"`
	Location    string `json:"location"     validate:"omitempty,max=64"`
}

func (c *CreateTableRequest) ToModel(staff string) model.Table {
	return model.Table{
		ID:          uuid.NewString(),
		TableNumber: c.TableNumber,
		Capacity:    c.Capacity,
		Status:      model.StatusAvailable,
		Location:    c.Location,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  staff,
			ModifiedBy: staff,
		},
	}
}

// UpdateTableRequest deliberately has no status field: table status is derived
// from active orders and reservations and is never set by clients.
type UpdateTableRequest struct {
	TableNumber string `db:"table_number" json:"table_number" validate:"omitempty,max=16"`
	Capacity    *int   `db:"capacity"     json:"capacity"     validate:"omitempty,min=1"`
	Location    string `db:"location"     json:"location"     validate:"omitempty,max=64"`
}

type TableResponse struct {
	ID          string `json:"id"`
	TableNumber string `json:"table_number"`
	Capacity    int    `json:"capacity"`
	Status      string `json:"status"`
	Location    string `json:"location"`
	gDto.Metadata
}

func (r *TableResponse) FromModel(model model.Table) {
	r.ID = model.ID
	r.TableNumber = model.TableNumber
	r.Capacity = model.Capacity
	r.Status = string(model.Status)
	r.Location = model.Location
	r.Metadata.FromModel(model.Metadata)
}

type GetTablesResponse struct {
	Tables    []TableResponse `json:"tables"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetTablesResponse) FromModels(models []model.Table, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tables = make([]TableResponse, len(models))
	for i, mod := range models {
		r.Tables[i].FromModel(mod)
	}
}
