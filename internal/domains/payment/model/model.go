package model

import "github.com/phuhk2908/rms-backend/shared/model"

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID      = "id"
	FieldOrderID = "order_id"
	FieldAmount  = "amount"
	FieldMethod  = "method"
	FieldStatus  = "status"
)

type Method string

const (
	MethodCash Method = "CASH"
	MethodCard Method = "CARD"
	MethodQRIS Method = "QRIS"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodQRIS:
		return true
	}

	return false
}

type Status string

const (
	StatusPaid     Status = "PAID"
	StatusRefunded Status = "REFUNDED"
)

type Payment struct {
	ID      string  `db:"id"`
	OrderID string  `db:"order_id"`
	Amount  float64 `db:"amount"`
	Method  Method  `db:"method"`
	Status  Status  `db:"status"`
	model.Metadata
}
