package dto

import (
	"github.com/phuhk2908/rms-backend/internal/domains/order/model"
	reservationDto "github.com/phuhk2908/rms-backend/internal/domains/reservation/model/dto"
	staffDto "github.com/phuhk2908/rms-backend/internal/domains/staff/model/dto"
	tableDto "github.com/phuhk2908/rms-backend/internal/domains/table/model/dto"
	"github.com/phuhk2908/rms-backend/shared"
	gDto "github.com/phuhk2908/rms-backend/shared/dto"
)

type OrderItemRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity"     validate:"required,min=1"`
	Notes      string `json:"notes"        validate:"omitempty,max=255"`
}

type CreateOrderRequest struct {
	OrderType     string             `json:"order_type"     validate:"required,oneof=DINE_IN TAKEAWAY DELIVERY"`
	TableID       *string            `json:"table_id"       validate:"omitempty,uuid"`
	ReservationID *string            `json:"reservation_id" validate:"omitempty,uuid"`
	Notes         string             `json:"notes"          validate:"omitempty,max=255"`
	Items         []OrderItemRequest `json:"items"          validate:"required,min=1,dive"`
}

// UpdateOrderRequest replaces the whole item set when Items is supplied;
// omitting Items leaves the existing lines untouched.
type UpdateOrderRequest struct {
	Status  string             `json:"status"   validate:"omitempty,oneof=PENDING CONFIRMED PREPARING READY_FOR_PICKUP OUT_FOR_DELIVERY COMPLETED CANCELLED"`
	TableID *string            `json:"table_id" validate:"omitempty,uuid"`
	Notes   *string            `json:"notes"    validate:"omitempty,max=255"`
	Items   []OrderItemRequest `json:"items"    validate:"omitempty,min=1,dive"`
}

func (u *UpdateOrderRequest) Empty() bool {
	return u.Status == "" && u.TableID == nil && u.Notes == nil && len(u.Items) == 0
}

type UpdateOrderItemStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PREPARING READY SERVED"`
}

type OrderItemResponse struct {
	ID           string  `json:"id"`
	MenuItemID   string  `json:"menu_item_id"`
	Quantity     int     `json:"quantity"`
	PriceAtOrder float64 `json:"price_at_order"`
	SubTotal     float64 `json:"sub_total"`
	Status       string  `json:"status"`
	Notes        string  `json:"notes,omitempty"`
}

func (r *OrderItemResponse) FromModel(model model.OrderItem) {
	r.ID = model.ID
	r.MenuItemID = model.MenuItemID
	r.Quantity = model.Quantity
	r.PriceAtOrder = model.PriceAtOrder
	r.SubTotal = model.SubTotal
	r.Status = string(model.Status)
	r.Notes = model.Notes
}

type OrderResponse struct {
	ID            string                                `json:"id"`
	OrderNumber   string                                `json:"order_number"`
	Status        string                                `json:"status"`
	OrderType     string                                `json:"order_type"`
	TableID       string                                `json:"table_id,omitempty"`
	ReservationID string                                `json:"reservation_id,omitempty"`
	StaffID       string                                `json:"staff_id"`
	Notes         string                                `json:"notes,omitempty"`
	TotalAmount   float64                               `json:"total_amount"`
	Items         []OrderItemResponse                   `json:"items"`
	Table         *tableDto.TableResponse               `json:"table,omitempty"`
	Staff         *staffDto.StaffResponse               `json:"staff,omitempty"`
	Reservation   *reservationDto.ReservationResponse   `json:"reservation,omitempty"`
	gDto.Metadata
}

func (r *OrderResponse) FromModel(order model.Order, items []model.OrderItem) {
	r.ID = order.ID
	r.OrderNumber = order.OrderNumber
	r.Status = string(order.Status)
	r.OrderType = string(order.OrderType)
	r.StaffID = order.StaffID
	r.Notes = order.Notes
	r.TotalAmount = order.TotalAmount

	if order.TableID != nil {
		r.TableID = *order.TableID
	}

	if order.ReservationID != nil {
		r.ReservationID = *order.ReservationID
	}

	r.Items = make([]OrderItemResponse, len(items))
	for i, item := range items {
		r.Items[i].FromModel(item)
	}

	r.Metadata.FromModel(order.Metadata)
}

type GetOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetOrdersResponse) FromModels(orders []model.Order, itemsByOrder map[string][]model.OrderItem, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Orders = make([]OrderResponse, len(orders))
	for i, order := range orders {
		r.Orders[i].FromModel(order, itemsByOrder[order.ID])
	}
}
