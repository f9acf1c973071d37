package dto_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/phuhk2908/rms-backend/shared/constant"
	"github.com/phuhk2908/rms-backend/shared/dto"
	"github.com/phuhk2908/rms-backend/shared/model"
	"github.com/phuhk2908/rms-backend/shared/timezone"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	modelMetadata := model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	}

	metadata := &dto.Metadata{}
	metadata.FromModel(modelMetadata)

	expectedCreatedAt := timezone.Format(createdAt, constant.DateFormat)
	expectedModifiedAt := timezone.Format(modifiedAt, constant.DateFormat)

	if metadata.CreatedAt != expectedCreatedAt {
		t.Errorf("expected CreatedAt to be %s, got %s", expectedCreatedAt, metadata.CreatedAt)
	}

	if metadata.ModifiedAt != expectedModifiedAt {
		t.Errorf("expected ModifiedAt to be %s, got %s", expectedModifiedAt, metadata.ModifiedAt)
	}

	if metadata.CreatedBy != "creator" {
		t.Errorf("expected CreatedBy to be 'creator', got %s", metadata.CreatedBy)
	}

	if metadata.ModifiedBy != "modifier" {
		t.Errorf("expected ModifiedBy to be 'modifier', got %s", metadata.ModifiedBy)
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "order_number",
				"sort_dir": "ASC",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    2,
				Limit:   20,
				SortBy:  "order_number",
				SortDir: "ASC",
			},
		},
		{
			name:           "with default request enabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name:           "with default request disabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: false,
			expected:       dto.QueryParams{},
		},
		{
			name: "with invalid page parameter",
			queryParams: map[string]string{
				"page": "invalid",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name: "with negative page parameter",
			queryParams: map[string]string{
				"page": "-1",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name: "with lowercase sort direction",
			queryParams: map[string]string{
				"sort_dir": "desc",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				SortDir: "DESC",
			},
		},
		{
			name: "with invalid sort direction",
			queryParams: map[string]string{
				"sort_dir": "sideways",
			},
			defaultRequest: false,
			expected:       dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			for key, value := range tt.queryParams {
				values.Set(key, value)
			}

			req := &http.Request{URL: &url.URL{RawQuery: values.Encode()}}

			q := dto.QueryParams{}
			q.FromRequest(req, tt.defaultRequest)

			if q != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, q)
			}
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name         string
		filter       dto.Filter
		expectedSQL  string
		expectedArgs map[string]any
	}{
		{
			name: "eq with table prefix",
			filter: dto.Filter{
				Field:    "status",
				Value:    "PENDING",
				Operator: dto.FilterOperatorEq,
				Table:    "orders",
			},
			expectedSQL:  "orders.status = :status",
			expectedArgs: map[string]any{"status": "PENDING"},
		},
		{
			name: "not eq",
			filter: dto.Filter{
				Field:    "id",
				Value:    "abc",
				Operator: dto.FilterOperatorNotEq,
				Table:    "reservations",
			},
			expectedSQL:  "reservations.id != :id",
			expectedArgs: map[string]any{"id": "abc"},
		},
		{
			name: "greater with custom arg name",
			filter: dto.Filter{
				ArgName:  "window_start",
				Field:    "reservation_time",
				Value:    "2024-01-01",
				Operator: dto.FilterOperatorGreater,
				Table:    "reservations",
			},
			expectedSQL:  "reservations.reservation_time > :window_start",
			expectedArgs: map[string]any{"window_start": "2024-01-01"},
		},
		{
			name: "in over a slice",
			filter: dto.Filter{
				Field:    "status",
				Value:    []string{"PENDING", "CONFIRMED"},
				Operator: dto.FilterOperatorIn,
				Table:    "orders",
			},
			expectedSQL:  "orders.status IN (:status_0, :status_1) ",
			expectedArgs: map[string]any{"status_0": "PENDING", "status_1": "CONFIRMED"},
		},
		{
			name: "not in over a slice",
			filter: dto.Filter{
				Field:    "status",
				Value:    []string{"COMPLETED", "CANCELLED"},
				Operator: dto.FilterOperatorNotIn,
				Table:    "orders",
			},
			expectedSQL:  "orders.status NOT IN (:status_0, :status_1) ",
			expectedArgs: map[string]any{"status_0": "COMPLETED", "status_1": "CANCELLED"},
		},
		{
			name: "is null",
			filter: dto.Filter{
				Field:    "order_id",
				Operator: dto.FilterIsNull,
				Table:    "reservations",
			},
			expectedSQL:  "reservations.order_id IS NULL",
			expectedArgs: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.filter.GetWhereClause()

			if sql != tt.expectedSQL {
				t.Errorf("expected SQL %q, got %q", tt.expectedSQL, sql)
			}

			if len(args) != len(tt.expectedArgs) {
				t.Errorf("expected %d args, got %d", len(tt.expectedArgs), len(args))
			}

			for key, expected := range tt.expectedArgs {
				if actual, ok := args[key]; !ok {
					t.Errorf("expected arg %s to exist", key)
				} else if actual != expected {
					t.Errorf("expected arg %s to be %v, got %v", key, expected, actual)
				}
			}
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    "table_id",
				Value:    "t1",
				Operator: dto.FilterOperatorEq,
				Table:    "orders",
			},
			dto.Filter{
				Field:    "status",
				Value:    "PENDING",
				Operator: dto.FilterOperatorEq,
				Table:    "orders",
			},
		},
	}

	sql, args := group.GetWhereClause()

	expected := "(orders.table_id = :table_id AND orders.status = :status)"
	if sql != expected {
		t.Errorf("expected SQL %q, got %q", expected, sql)
	}

	if len(args) != 2 {
		t.Errorf("expected 2 args, got %d", len(args))
	}
}

func TestFilterGroup_GetWhereClause_Empty(t *testing.T) {
	group := dto.FilterGroup{}

	sql, args := group.GetWhereClause()

	if sql != "" {
		t.Errorf("expected empty SQL, got %q", sql)
	}

	if len(args) != 0 {
		t.Errorf("expected no args, got %d", len(args))
	}
}
