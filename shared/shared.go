package shared

import (
	"strings"

	"taskboard/shared/dto"
)

const cacheKeySeparator = ":"

// BuildCacheKey joins non-empty parts into a namespaced cache key.
func BuildCacheKey(parts ...string) string {
	keys := make([]string, 0, len(parts))

	for _, part := range parts {
		if part == "" {
			continue
		}

		keys = append(keys, part)
	}

	return strings.Join(keys, cacheKeySeparator)
}

func FilterByID(id int64, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// FilterBySubstring matches rows whose field contains query, ignoring case.
// An empty query or field yields an empty group, which matches everything.
func FilterBySubstring(query, field, table string) dto.FilterGroup {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	if query == "" || field == "" {
		return group
	}

	group.Filters = append(group.Filters, dto.Filter{
		Field:    field,
		Value:    query,
		Operator: dto.FilterOperatorLike,
		Table:    table,
	})

	return group
}
