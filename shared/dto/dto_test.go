package dto_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"quiethours/shared/dto"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name         string
		filter       dto.Filter
		expectedSQL  string
		expectedArgs map[string]any
	}{
		{
			name:         "eq with table",
			filter:       dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "pending", Table: "bookings"},
			expectedSQL:  "bookings.status = :status",
			expectedArgs: map[string]any{"status": "pending"},
		},
		{
			name:         "eq without table",
			filter:       dto.Filter{Field: "email", Operator: dto.FilterOperatorEq, Value: "a@b.com"},
			expectedSQL:  "email = :email",
			expectedArgs: map[string]any{"email": "a@b.com"},
		},
		{
			name:         "custom arg name",
			filter:       dto.Filter{Field: "user_id", ArgName: "owner", Operator: dto.FilterOperatorEq, Value: "user-1"},
			expectedSQL:  "user_id = :owner",
			expectedArgs: map[string]any{"owner": "user-1"},
		},
		{
			name:         "less than",
			filter:       dto.Filter{Field: "end_time", Operator: dto.FilterOperatorLess, Value: "2026-01-01"},
			expectedSQL:  "end_time < :end_time",
			expectedArgs: map[string]any{"end_time": "2026-01-01"},
		},
		{
			name:         "is not null",
			filter:       dto.Filter{Field: "external_id", Operator: dto.FilterIsNotNull},
			expectedSQL:  "external_id IS NOT NULL",
			expectedArgs: map[string]any{},
		},
		{
			name:         "unknown operator yields empty clause",
			filter:       dto.Filter{Field: "status", Operator: "bogus", Value: "x"},
			expectedSQL:  "",
			expectedArgs: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			if strings.TrimSpace(where) != tt.expectedSQL {
				t.Errorf("expected %q, got %q", tt.expectedSQL, strings.TrimSpace(where))
			}

			if len(args) != len(tt.expectedArgs) {
				t.Errorf("expected %d args, got %d", len(tt.expectedArgs), len(args))
			}

			for key, value := range tt.expectedArgs {
				if args[key] != value {
					t.Errorf("expected arg %s to be %v, got %v", key, value, args[key])
				}
			}
		})
	}
}

func TestFilter_GetWhereClauseLike(t *testing.T) {
	filter := dto.Filter{Field: "name", Operator: dto.FilterOperatorLike, Value: "library"}

	where, args := filter.GetWhereClause()

	if !strings.Contains(where, "LOWER(name) LIKE LOWER(:name)") {
		t.Errorf("unexpected where clause: %s", where)
	}

	if args["name"] != "%library%" {
		t.Errorf("expected wildcarded value, got %v", args["name"])
	}
}

func TestFilter_GetWhereClauseIn(t *testing.T) {
	filter := dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{"pending", "confirmed"}}

	where, args := filter.GetWhereClause()

	if !strings.Contains(where, "status IN (:status_0, :status_1)") {
		t.Errorf("unexpected where clause: %s", where)
	}

	if args["status_0"] != "pending" || args["status_1"] != "confirmed" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	t.Run("joins with AND by default", func(t *testing.T) {
		group := dto.FilterGroup{
			Filters: []any{
				dto.Filter{Field: "user_id", Operator: dto.FilterOperatorEq, Value: "user-1"},
				dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "pending"},
			},
		}

		where, args := group.GetWhereClause()

		if where != "(user_id = :user_id AND status = :status)" {
			t.Errorf("unexpected where clause: %s", where)
		}

		if len(args) != 2 {
			t.Errorf("expected 2 args, got %d", len(args))
		}
	})

	t.Run("empty group yields empty clause", func(t *testing.T) {
		group := dto.FilterGroup{}

		where, args := group.GetWhereClause()

		if where != "" {
			t.Errorf("expected empty clause, got %s", where)
		}

		if len(args) != 0 {
			t.Errorf("expected no args, got %d", len(args))
		}
	})

	t.Run("nested group", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorOr,
			Filters: []any{
				dto.Filter{Field: "name", Operator: dto.FilterOperatorEq, Value: "a"},
				dto.FilterGroup{
					Filters: []any{
						dto.Filter{Field: "address", Operator: dto.FilterOperatorEq, Value: "b"},
					},
				},
			},
		}

		where, _ := group.GetWhereClause()

		if where != "(name = :name OR (address = :address))" {
			t.Errorf("unexpected where clause: %s", where)
		}
	})
}

func TestQueryParams_FromRequest(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/places", nil)

		params := dto.QueryParams{}
		params.FromRequest(r, true)

		if params.Page != 1 || params.Limit != 20 {
			t.Errorf("expected defaults page=1 limit=20, got page=%d limit=%d", params.Page, params.Limit)
		}

		if params.SortBy != "created_at" || params.SortDir != "DESC" {
			t.Errorf("expected default sort created_at DESC, got %s %s", params.SortBy, params.SortDir)
		}
	})

	t.Run("explicit values win", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/places?page=3&limit=5&sort_by=name&sort_dir=asc", nil)

		params := dto.QueryParams{}
		params.FromRequest(r, true)

		if params.Page != 3 || params.Limit != 5 {
			t.Errorf("expected page=3 limit=5, got page=%d limit=%d", params.Page, params.Limit)
		}

		if params.SortBy != "name" || params.SortDir != "ASC" {
			t.Errorf("expected sort name ASC, got %s %s", params.SortBy, params.SortDir)
		}
	})

	t.Run("invalid values ignored", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/places?page=-1&limit=abc&sort_dir=sideways", nil)

		params := dto.QueryParams{}
		params.FromRequest(r, true)

		if params.Page != 1 || params.Limit != 20 {
			t.Errorf("expected defaults, got page=%d limit=%d", params.Page, params.Limit)
		}

		if params.SortDir != "DESC" {
			t.Errorf("expected default sort dir DESC, got %s", params.SortDir)
		}
	})
}
