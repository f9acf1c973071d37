package shared_test

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/phuhk2908/rms-backend/shared"
	"github.com/phuhk2908/rms-backend/shared/constant"
	"github.com/phuhk2908/rms-backend/shared/dto"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{
			name:     "zero total returns 1",
			total:    0,
			limit:    10,
			expected: 1,
		},
		{
			name:     "zero limit returns 1",
			total:    100,
			limit:    0,
			expected: 1,
		},
		{
			name:     "negative limit returns 1",
			total:    100,
			limit:    -5,
			expected: 1,
		},
		{
			name:     "exact division",
			total:    100,
			limit:    10,
			expected: 10,
		},
		{
			name:     "division with remainder",
			total:    101,
			limit:    10,
			expected: 11,
		},
		{
			name:     "limit greater than total",
			total:    5,
			limit:    10,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.CalculateTotalPage(tt.total, tt.limit)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type TestStruct struct {
		ID         int    `db:"id"`
		Name       string `db:"name"`
		Location   string `db:"location"`
		EmptyField string `db:"empty_field"`
		NoDBTag    string
	}

	tests := []struct {
		name     string
		data     interface{}
		staffID  string
		expected map[string]any
	}{
		{
			name: "struct with populated fields",
			data: TestStruct{
				ID:         1,
				Name:       "Window table",
				Location:   "patio",
				EmptyField: "",
				NoDBTag:    "ignored",
			},
			staffID: "staff-1",
			expected: map[string]any{
				"id":       1,
				"name":     "Window table",
				"location": "patio",
			},
		},
		{
			name:     "struct with all zero values",
			data:     TestStruct{},
			staffID:  "staff-1",
			expected: map[string]any{},
		},
		{
			name: "struct with partial fields",
			data: TestStruct{
				Name: "Bar seat",
			},
			staffID: "staff-2",
			expected: map[string]any{
				"name": "Bar seat",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.TransformFields(tt.data, tt.staffID)

			if result[constant.FieldModifiedAt] == nil {
				t.Error("expected modified_at to be set")
			}
			if result[constant.FieldModifiedBy] != tt.staffID {
				t.Errorf("expected modified_by to be %s, got %v", tt.staffID, result[constant.FieldModifiedBy])
			}

			if _, ok := result[constant.FieldModifiedAt].(time.Time); !ok {
				t.Error("expected modified_at to be a time.Time")
			}

			for key, expectedValue := range tt.expected {
				if actualValue, exists := result[key]; !exists {
					t.Errorf("expected field %s to exist", key)
				} else if !reflect.DeepEqual(actualValue, expectedValue) {
					t.Errorf("expected field %s to be %v, got %v", key, expectedValue, actualValue)
				}
			}

			for key := range result {
				if key == constant.FieldModifiedAt || key == constant.FieldModifiedBy {
					continue
				}
				if _, expected := tt.expected[key]; !expected {
					t.Errorf("unexpected field %s in result", key)
				}
			}
		})
	}
}

func TestTransformFieldsWithPointers(t *testing.T) {
	type TestStructWithPointers struct {
		Capacity *int    `db:"capacity"`
		Notes    *string `db:"notes"`
	}

	notes := "near the kitchen"
	capacity := 0 // not a zero value for *int, nil is

	data := TestStructWithPointers{
		Capacity: &capacity,
		Notes:    &notes,
	}

	result := shared.TransformFields(data, "staff-1")

	expectedFields := map[string]any{
		"capacity": &capacity,
		"notes":    &notes,
	}

	for key, expectedValue := range expectedFields {
		if actualValue, exists := result[key]; !exists {
			t.Errorf("expected field %s to exist", key)
		} else if !reflect.DeepEqual(actualValue, expectedValue) {
			t.Errorf("expected field %s to be %v, got %v", key, expectedValue, actualValue)
		}
	}
}

func TestFilterByID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		fieldID  string
		table    string
		expected dto.FilterGroup
	}{
		{
			name:    "basic filter by id",
			id:      "123",
			fieldID: "order_id",
			table:   "orders",
			expected: dto.FilterGroup{
				Filters: []any{
					dto.Filter{
						Field:    "order_id",
						Value:    "123",
						Operator: dto.FilterOperatorEq,
						Table:    "orders",
					},
				},
			},
		},
		{
			name:    "filter with uuid",
			id:      "550e8400-e29b-41d4-a716-446655440000",
			fieldID: "id",
			table:   "tables",
			expected: dto.FilterGroup{
				Filters: []any{
					dto.Filter{
						Field:    "id",
						Value:    "550e8400-e29b-41d4-a716-446655440000",
						Operator: dto.FilterOperatorEq,
						Table:    "tables",
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.FilterByID(tt.id, tt.fieldID, tt.table)

			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %+v, got %+v", tt.expected, result)
			}
		})
	}
}

func TestBuildCacheKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		parts    []string
		expected string
	}{
		{
			name:     "prefix only",
			prefix:   "order:get",
			expected: "order:get",
		},
		{
			name:     "prefix with one part",
			prefix:   "order:get",
			parts:    []string{"abc"},
			expected: "order:get:abc",
		},
		{
			name:     "prefix with several parts",
			prefix:   "table:get",
			parts:    []string{"abc", "def"},
			expected: "table:get:abc:def",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.BuildCacheKey(tt.prefix, tt.parts...)
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 2, Limit: 10}
	filter := shared.FilterByID("abc", "id", "orders")

	key := shared.BuildCacheKeyWithQuery("order:gets", params, filter)

	if !strings.HasPrefix(key, "order:gets:") {
		t.Errorf("expected key to start with the prefix, got %s", key)
	}
	if !strings.Contains(key, "p2:l10") {
		t.Errorf("expected key to encode page and limit, got %s", key)
	}

	// The same query must always yield the same key.
	if again := shared.BuildCacheKeyWithQuery("order:gets", params, filter); again != key {
		t.Errorf("expected a stable key, got %s and %s", key, again)
	}

	// Different paging must yield a different key.
	other := shared.BuildCacheKeyWithQuery("order:gets", dto.QueryParams{Page: 3, Limit: 10}, filter)
	if other == key {
		t.Error("expected different pages to yield different keys")
	}
}
