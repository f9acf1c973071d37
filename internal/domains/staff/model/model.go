package model

import "github.com/phuhk2908/rms-backend/shared/model"

const (
	TableName  = "staff"
	EntityName = "staff"

	FieldID       = "id"
	FieldName     = "name"
	FieldEmail    = "email"
	FieldRole     = "role"
	FieldIsActive = "is_active"
)

const (
	RoleManager = "MANAGER"
	RoleWaiter  = "WAITER"
	RoleChef    = "CHEF"
	RoleHost    = "HOST"
)

type Staff struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	Role     string `db:"role"`
	IsActive bool   `db:"is_active"`
	model.Metadata
}
