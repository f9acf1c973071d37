package model

import "github.com/phuhk2908/rms-backend/shared/model"

const (
	TableName  = "restaurant_tables"
	EntityName = "table"

	FieldID          = "id"
	FieldTableNumber = "table_number"
	FieldCapacity    = "capacity"
	FieldStatus      = "status"
	FieldLocation    = "location"
)

// Status is derived from the non-terminal orders and reservations referencing
// the table; it is recomputed after every mutation, never patched directly.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusOccupied  Status = "OCCUPIED"
	StatusReserved  Status = "RESERVED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusReserved:
		return true
	}

	return false
}

type Table struct {
	ID          string `db:"id"`
	TableNumber string `db:"table_number"`
	Capacity    int    `db:"capacity"`
	Status      Status `db:"status"`
	Location    string `db:"location"`
	model.Metadata
}
