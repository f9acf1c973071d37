package dto

import (
	"github.com/phuhk2908/rms-backend/internal/domains/payment/model"
	"github.com/phuhk2908/rms-backend/shared"
	gDto "github.com/phuhk2908/rms-backend/shared/dto"
	gModel "github.com/phuhk2908/rms-backend/shared/model"
	"github.com/phuhk2908/rms-backend/shared/timezone"

	"github.com/google/uuid"
)

type CreatePaymentRequest struct {
	OrderID string  `json:"order_id" validate:"required,uuid"`
	Amount  float64 `json:"amount"   validate:"required,gt=0"`
	Method  string  `json:"method"   validate:"required,oneof=CASH CARD QRIS"`
}

func (c *CreatePaymentRequest) ToModel(staff string) model.Payment {
	return model.Payment{
		ID:      uuid.NewString(),
		OrderID: c.OrderID,
		Amount:  c.Amount,
		Method:  model.Method(c.Method),
		Status:  model.StatusPaid,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  staff,
			ModifiedBy: staff,
		},
	}
}

type PaymentResponse struct {
	ID      string  `json:"id"`
	OrderID string  `json:"order_id"`
	Amount  float64 `json:"amount"`
	Method  string  `json:"method"`
	Status  string  `json:"status"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(model model.Payment) {
	r.ID = model.ID
	r.OrderID = model.OrderID
	r.Amount = model.Amount
	r.Method = string(model.Method)
	r.Status = string(model.Status)
	r.Metadata.FromModel(model.Metadata)
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPaymentsResponse) FromModels(models []model.Payment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Payments = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
	}
}
