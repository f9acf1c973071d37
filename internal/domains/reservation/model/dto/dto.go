package dto

import (
	"fmt"
	"time"

	"github.com/phuhk2908/rms-backend/internal/domains/reservation/model"
	tableDto "github.com/phuhk2908/rms-backend/internal/domains/table/model/dto"
	"github.com/phuhk2908/rms-backend/shared"
	"github.com/phuhk2908/rms-backend/shared/constant"
	gDto "github.com/phuhk2908/rms-backend/shared/dto"
	gModel "github.com/phuhk2908/rms-backend/shared/model"
	"github.com/phuhk2908/rms-backend/shared/timezone"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	CustomerName    string  `json:"customer_name"    validate:"required,max=128"`
	CustomerContact string  `json:"customer_contact" validate:"required,max=64"`
	ReservationTime string  `json:"reservation_time" validate:"required"`
	PartySize       int     `json:"party_size"       validate:"required,min=1"`
	Status          string  `json:"status"           validate:"omitempty,oneof=PENDING CONFIRMED"`
	TableID         *string `json:"table_id"         validate:"omitempty,uuid"`
}

func (c *CreateReservationRequest) ToModel(staff string) (model.Reservation, error) {
	reservationTime, err := time.Parse(constant.DateFormat, c.ReservationTime)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("parsing reservation time: %w", err)
	}

	status := model.StatusPending
	if c.Status != "" {
		status = model.Status(c.Status)
	}

	var staffID *string
	if staff != constant.Empty {
		staffID = &staff
	}

	return model.Reservation{
		ID:              uuid.NewString(),
		CustomerName:    c.CustomerName,
		CustomerContact: c.CustomerContact,
		ReservationTime: reservationTime,
		PartySize:       c.PartySize,
		Status:          status,
		TableID:         c.TableID,
		StaffID:         staffID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  staff,
			ModifiedBy: staff,
		},
	}, nil
}

type UpdateReservationRequest struct {
	CustomerName    string  `json:"customer_name"    validate:"omitempty,max=128"`
	CustomerContact string  `json:"customer_contact" validate:"omitempty,max=64"`
	ReservationTime string  `json:"reservation_time" validate:"omitempty"`
	PartySize       *int    `json:"party_size"       validate:"omitempty,min=1"`
	Status          string  `json:"status"           validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED NO_SHOW"`
	TableID         *string `json:"table_id"         validate:"omitempty,uuid"`
}

func (u *UpdateReservationRequest) Empty() bool {
	return u.CustomerName == "" && u.CustomerContact == "" && u.ReservationTime == "" &&
		u.PartySize == nil && u.Status == "" && u.TableID == nil
}

// ParsedTime returns the requested reservation time, or nil when the request
// leaves it unchanged.
func (u *UpdateReservationRequest) ParsedTime() (*time.Time, error) {
	if u.ReservationTime == "" {
		return nil, nil
	}

	parsed, err := time.Parse(constant.DateFormat, u.ReservationTime)
	if err != nil {
		return nil, fmt.Errorf("parsing reservation time: %w", err)
	}

	return &parsed, nil
}

type ReservationResponse struct {
	ID              string                  `json:"id"`
	CustomerName    string                  `json:"customer_name"`
	CustomerContact string                  `json:"customer_contact"`
	ReservationTime string                  `json:"reservation_time"`
	PartySize       int                     `json:"party_size"`
	Status          string                  `json:"status"`
	TableID         string                  `json:"table_id,omitempty"`
	StaffID         string                  `json:"staff_id,omitempty"`
	OrderID         string                  `json:"order_id,omitempty"`
	Table           *tableDto.TableResponse `json:"table,omitempty"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.CustomerName = model.CustomerName
	r.CustomerContact = model.CustomerContact
	r.ReservationTime = timezone.Format(model.ReservationTime, constant.DateFormat)
	r.PartySize = model.PartySize
	r.Status = string(model.Status)

	if model.TableID != nil {
		r.TableID = *model.TableID
	}

	if model.StaffID != nil {
		r.StaffID = *model.StaffID
	}

	if model.OrderID != nil {
		r.OrderID = *model.OrderID
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}
