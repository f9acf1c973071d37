package validator_test

import (
	"strings"
	"testing"

	"github.com/phuhk2908/rms-backend/shared/validator"
)

type createOrderBody struct {
	OrderType string  `validate:"required,oneof=DINE_IN TAKEAWAY DELIVERY" json:"order_type"`
	TableID   *string `validate:"omitempty,uuid"                           json:"table_id"`
	Quantity  int     `validate:"required,min=1"                           json:"quantity"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        createOrderBody
		expectError bool
	}{
		{
			name: "valid struct",
			data: createOrderBody{
				OrderType: "DINE_IN",
				Quantity:  1,
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: createOrderBody{
				Quantity: 1,
			},
			expectError: true,
		},
		{
			name: "invalid order type",
			data: createOrderBody{
				OrderType: "DRIVE_THROUGH",
				Quantity:  1,
			},
			expectError: true,
		},
		{
			name: "quantity below minimum",
			data: createOrderBody{
				OrderType: "TAKEAWAY",
				Quantity:  0,
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError bool
	}{
		{
			name:        "valid body",
			body:        `{"order_type":"DINE_IN","quantity":2}`,
			expectError: false,
		},
		{
			name:        "malformed json",
			body:        `{"order_type":`,
			expectError: true,
		},
		{
			name:        "fails validation",
			body:        `{"order_type":"DINE_IN","quantity":0}`,
			expectError: true,
		},
		{
			name:        "invalid uuid",
			body:        `{"order_type":"DINE_IN","quantity":1,"table_id":"not-a-uuid"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data createOrderBody

			err := validator.Validate(strings.NewReader(tt.body), &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "T1",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid uuid",
			field:       "550e8400-e29b-41d4-a716-446655440000",
			tag:         "uuid",
			expectError: false,
		},
		{
			name:        "invalid uuid",
			field:       "not-a-uuid",
			tag:         "uuid",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}
