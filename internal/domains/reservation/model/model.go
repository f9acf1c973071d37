package model

import (
	"time"

	"github.com/phuhk2908/rms-backend/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID              = "id"
	FieldCustomerName    = "customer_name"
	FieldCustomerContact = "customer_contact"
	FieldReservationTime = "reservation_time"
	FieldPartySize       = "party_size"
	FieldStatus          = "status"
	FieldTableID         = "table_id"
	FieldStaffID         = "staff_id"
	FieldOrderID         = "order_id"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
	StatusNoShow    Status = "NO_SHOW"
)

// TerminalStatuses are the states a reservation cannot leave. A reservation in
// one of these no longer claims its table.
var TerminalStatuses = []string{
	string(StatusCancelled),
	string(StatusCompleted),
	string(StatusNoShow),
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}

	return false
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// CanTransition reports whether moving from s to target is a legal step in the
// reservation state machine.
func (s Status) CanTransition(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}

	return false
}

type Reservation struct {
	ID              string    `db:"id"`
	CustomerName    string    `db:"customer_name"`
	CustomerContact string    `db:"customer_contact"`
	ReservationTime time.Time `db:"reservation_time"`
	PartySize       int       `db:"party_size"`
	Status          Status    `db:"status"`
	TableID         *string   `db:"table_id"`
	StaffID         *string   `db:"staff_id"`
	OrderID         *string   `db:"order_id"`
	model.Metadata
}
