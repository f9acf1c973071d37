package model

import (
	"github.com/phuhk2908/rms-backend/shared/model"
)

const (
	TableName  = "orders"
	EntityName = "order"

	FieldID            = "id"
	FieldOrderNumber   = "order_number"
	FieldStatus        = "status"
	FieldOrderType     = "order_type"
	FieldTableID       = "table_id"
	FieldReservationID = "reservation_id"
	FieldStaffID       = "staff_id"
	FieldNotes         = "notes"
	FieldTotalAmount   = "total_amount"
)

const (
	ItemTableName  = "order_items"
	ItemEntityName = "order_item"

	ItemFieldID           = "id"
	ItemFieldOrderID      = "order_id"
	ItemFieldMenuItemID   = "menu_item_id"
	ItemFieldQuantity     = "quantity"
	ItemFieldPriceAtOrder = "price_at_order"
	ItemFieldSubTotal     = "sub_total"
	ItemFieldStatus       = "status"
	ItemFieldNotes        = "notes"
)

type Type string

const (
	TypeDineIn   Type = "DINE_IN"
	TypeTakeaway Type = "TAKEAWAY"
	TypeDelivery Type = "DELIVERY"
)

func (t Type) Valid() bool {
	switch t {
	case TypeDineIn, TypeTakeaway, TypeDelivery:
		return true
	}

	return false
}

type Status string

const (
	StatusPending        Status = "PENDING"
	StatusConfirmed      Status = "CONFIRMED"
	StatusPreparing      Status = "PREPARING"
	StatusReadyForPickup Status = "READY_FOR_PICKUP"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusCompleted      Status = "COMPLETED"
	StatusCancelled      Status = "CANCELLED"
	StatusRefunded       Status = "REFUNDED"
)

// TerminalStatuses are the states after which an order accepts no further
// status or item edits. REFUNDED is reached only from COMPLETED and only via a
// refund payment.
var TerminalStatuses = []string{
	string(StatusCompleted),
	string(StatusCancelled),
	string(StatusRefunded),
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReadyForPickup,
		StatusOutForDelivery, StatusCompleted, StatusCancelled, StatusRefunded:
		return true
	}

	return false
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}

var transitions = map[Status][]Status{
	StatusPending:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusReadyForPickup, StatusOutForDelivery, StatusCompleted},
	StatusReadyForPickup: {StatusCompleted},
	StatusOutForDelivery: {StatusCompleted},
	StatusCompleted:      {StatusRefunded},
}

func (s Status) CanTransition(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}

	return false
}

type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "PENDING"
	ItemStatusPreparing ItemStatus = "PREPARING"
	ItemStatusReady     ItemStatus = "READY"
	ItemStatusServed    ItemStatus = "SERVED"
)

func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusPending, ItemStatusPreparing, ItemStatusReady, ItemStatusServed:
		return true
	}

	return false
}

// Done reports whether the kitchen has finished with the item. An order whose
// items are all done auto-completes.
func (s ItemStatus) Done() bool {
	return s == ItemStatusReady || s == ItemStatusServed
}

var itemTransitions = map[ItemStatus][]ItemStatus{
	ItemStatusPending:   {ItemStatusPreparing, ItemStatusReady},
	ItemStatusPreparing: {ItemStatusReady},
	ItemStatusReady:     {ItemStatusServed},
}

func (s ItemStatus) CanTransition(target ItemStatus) bool {
	for _, allowed := range itemTransitions[s] {
		if allowed == target {
			return true
		}
	}

	return false
}

type Order struct {
	ID            string  `db:"id"`
	OrderNumber   string  `db:"order_number"`
	Status        Status  `db:"status"`
	OrderType     Type    `db:"order_type"`
	TableID       *string `db:"table_id"`
	ReservationID *string `db:"reservation_id"`
	StaffID       string  `db:"staff_id"`
	Notes         string  `db:"notes"`
	TotalAmount   float64 `db:"total_amount"`
	model.Metadata
}

type OrderItem struct {
	ID           string     `db:"id"`
	OrderID      string     `db:"order_id"`
	MenuItemID   string     `db:"menu_item_id"`
	Quantity     int        `db:"quantity"`
	PriceAtOrder float64    `db:"price_at_order"`
	SubTotal     float64    `db:"sub_total"`
	Status       ItemStatus `db:"status"`
	Notes        string     `db:"notes"`
	model.Metadata
}
