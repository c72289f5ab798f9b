package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"spacebook/shared/constant"
	"spacebook/shared/dto"
	"spacebook/shared/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetadata(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	metadata := dto.NewMetadata(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: createdAt.Add(24 * time.Hour),
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	})

	parsed, err := time.Parse(time.RFC3339, metadata.CreatedAt)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(createdAt))
	assert.NotEqual(t, metadata.CreatedAt, metadata.ModifiedAt)
	assert.Equal(t, "creator", metadata.CreatedBy)
	assert.Equal(t, "modifier", metadata.ModifiedBy)

	assert.Empty(t, dto.NewMetadata(model.Metadata{}).CreatedAt)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all params",
			query:    "page=2&limit=20&sort_by=name&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: "ASC"},
		},
		{
			name:           "defaults",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "no defaults",
			expected: dto.QueryParams{},
		},
		{
			name:           "invalid numbers fall back",
			query:          "page=-1&limit=abc",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "limit is capped",
			query:    "limit=5000",
			expected: dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{
			name:     "unknown sort dir ignored",
			query:    "sort_dir=sideways",
			expected: dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/spaces?"+tt.query, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_RestrictSortBy(t *testing.T) {
	params := dto.QueryParams{SortBy: "name; DROP TABLE spaces", SortDir: "ASC"}
	params.RestrictSortBy("spaces", "name", "price_per_hour")
	assert.Equal(t, "spaces."+constant.DefaultValueSortBy, params.SortBy)
	assert.Equal(t, "ASC", params.SortDir)

	params = dto.QueryParams{SortBy: "price_per_hour"}
	params.RestrictSortBy("", "name", "price_per_hour")
	assert.Equal(t, "price_per_hour", params.SortBy)
	assert.Equal(t, constant.DefaultValueSortDir, params.SortDir)
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 0, (&dto.QueryParams{}).Offset())
	assert.Equal(t, 0, (&dto.QueryParams{Page: 1, Limit: 10}).Offset())
	assert.Equal(t, 40, (&dto.QueryParams{Page: 3, Limit: 20}).Offset())
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "space_id", Value: "s1", Operator: dto.FilterOperatorEq, Table: "bookings"},
			dto.Filter{Field: "start_date", ArgName: "window_end", Value: "2024-06-12", Operator: dto.FilterOperatorLessEq},
			dto.Filter{Field: "end_date", ArgName: "window_start", Value: "2024-06-10", Operator: dto.FilterOperatorGreaterEq},
			dto.Filter{Field: "status", Value: []string{"pending", "confirmed"}, Operator: dto.FilterOperatorIn},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t,
		"(bookings.space_id = :space_id AND start_date <= :window_end AND end_date >= :window_start AND status IN (:status_0, :status_1))",
		where)
	assert.Equal(t, map[string]any{
		"space_id":     "s1",
		"window_end":   "2024-06-12",
		"window_start": "2024-06-10",
		"status_0":     "pending",
		"status_1":     "confirmed",
	}, args)
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.FilterGroup{}

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestFilter_Like(t *testing.T) {
	filter := dto.Filter{Field: "location", Value: "down", Operator: dto.FilterOperatorLike, Table: "spaces"}

	where, args := filter.GetWhereClause()

	assert.Equal(t, "spaces.location ILIKE :location", where)
	assert.Equal(t, "%down%", args["location"])
}

func TestFilter_EdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "like escapes wildcards",
			filter:    dto.Filter{Field: "name", Value: "50%_off", Operator: dto.FilterOperatorLike},
			wantWhere: "name ILIKE :name",
			wantArgs:  map[string]any{"name": `%50\%\_off%`},
		},
		{
			name:      "empty in list matches nothing",
			filter:    dto.Filter{Field: "status", Value: []string{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "scalar in degrades to equality",
			filter:    dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorIn},
			wantWhere: "status = :status",
			wantArgs:  map[string]any{"status": "pending"},
		},
		{
			name:      "not equal",
			filter:    dto.Filter{Field: "status", Value: "cancelled", Operator: dto.FilterOperatorNotEq, Table: "bookings"},
			wantWhere: "bookings.status != :status",
			wantArgs:  map[string]any{"status": "cancelled"},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "status", Value: "x", Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_Nested(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "type", Value: "coworking", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "name", Value: "hub", Operator: dto.FilterOperatorLike},
					dto.Filter{Field: "location", Value: "hub", Operator: dto.FilterOperatorLike},
				},
			},
			dto.Filter{Field: "ignored", Operator: "between"},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(type = :type AND (name ILIKE :name OR location ILIKE :location))", where)
	assert.Len(t, args, 3)
}
