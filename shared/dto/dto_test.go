package dto_test

import (
	"testing"

	"taskboard/shared/dto"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "equality with table prefix",
			filter:    dto.Filter{Field: "_id", Value: int64(3), Operator: dto.FilterOperatorEq, Table: "todos"},
			wantWhere: "todos._id = :id",
			wantArgs:  map[string]any{"id": int64(3)},
		},
		{
			name:      "like wraps and lowers",
			filter:    dto.Filter{Field: "title", Value: "groc", Operator: dto.FilterOperatorLike},
			wantWhere: `LOWER(title) LIKE LOWER(:title) ESCAPE '\'`,
			wantArgs:  map[string]any{"title": "%groc%"},
		},
		{
			name:      "like escapes wildcards",
			filter:    dto.Filter{Field: "title", Value: "50%_off", Operator: dto.FilterOperatorLike, ArgName: "q"},
			wantWhere: `LOWER(title) LIKE LOWER(:q) ESCAPE '\'`,
			wantArgs:  map[string]any{"q": `%50\%\_off%`},
		},
		{
			name:      "unknown operator renders nothing",
			filter:    dto.Filter{Field: "title", Value: "x", Operator: "regex"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			if where != tt.wantWhere {
				t.Errorf("expected where %q, got %q", tt.wantWhere, where)
			}

			if len(args) != len(tt.wantArgs) {
				t.Fatalf("expected %d args, got %d", len(tt.wantArgs), len(args))
			}

			for key, want := range tt.wantArgs {
				if args[key] != want {
					t.Errorf("expected arg %s to be %v, got %v", key, want, args[key])
				}
			}
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	empty := dto.FilterGroup{}
	if where, args := empty.GetWhereClause(); where != "" || len(args) != 0 {
		t.Errorf("expected empty clause, got %q %v", where, args)
	}

	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorOr,
		Filters: []any{
			dto.Filter{Field: "status", Value: "Todo", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Filters: []any{
					dto.Filter{Field: "title", Value: "bill", Operator: dto.FilterOperatorLike},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	want := `(status = :status OR (LOWER(title) LIKE LOWER(:title) ESCAPE '\'))`
	if where != want {
		t.Errorf("expected %q, got %q", want, where)
	}

	if args["status"] != "Todo" || args["title"] != "%bill%" {
		t.Errorf("unexpected args %v", args)
	}
}
