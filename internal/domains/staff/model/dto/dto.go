package dto

import (
	"github.com/phuhk2908/rms-backend/internal/domains/staff/model"
	"github.com/phuhk2908/rms-backend/shared"
	gDto "github.com/phuhk2908/rms-backend/shared/dto"
	gModel "github.com/phuhk2908/rms-backend/shared/model"
	"github.com/phuhk2908/rms-backend/shared/timezone"

	"github.com/google/uuid"
)

type CreateStaffRequest struct {
	Name  string `json:"name"  validate:"required,max=128"`
	Email string `json:"email" validate:"required,email,max=255"`
	Role  string `json:"role"  validate:"required,oneof=MANAGER WAITER CHEF HOST"`
}

func (c *CreateStaffRequest) ToModel(actor string) model.Staff {
	return model.Staff{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Email:    c.Email,
		Role:     c.Role,
		IsActive: true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type UpdateStaffRequest struct {
	Name     string `db:"name"      json:"name"      validate:"omitempty,max=128"`
	Role     string `db:"role"      json:"role"      validate:"omitempty,oneof=MANAGER WAITER CHEF HOST"`
	IsActive *bool  `db:"is_active" json:"is_active" validate:"omitempty"`
}

type StaffResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
	gDto.Metadata
}

func (r *StaffResponse) FromModel(model model.Staff) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Role = model.Role
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

type GetStaffsResponse struct {
	Staffs    []StaffResponse `json:"staffs"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetStaffsResponse) FromModels(models []model.Staff, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Staffs = make([]StaffResponse, len(models))
	for i, mod := range models {
		r.Staffs[i].FromModel(mod)
	}
}
