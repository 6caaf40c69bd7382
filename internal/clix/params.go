package clix

import (
	"fmt"
	"strings"

	"shopdesk/internal/models"
	"shopdesk/internal/query"

	"github.com/spf13/pflag"
)

// ParseListParams reads the list flags (page, rows, all, sort-field,
// sort-order and one flag per filter field) into query params.
func ParseListParams(flags *pflag.FlagSet, defaultPageSize int) (query.Params, error) {
	if defaultPageSize <= 0 {
		defaultPageSize = query.DefaultPageSize
	}
	page, _ := flags.GetInt("page")
	rows, _ := flags.GetInt("rows")
	all, _ := flags.GetBool("all")
	if page <= 0 {
		page = query.DefaultPage
	}
	if rows <= 0 {
		rows = defaultPageSize
	}

	params := query.Params{
		Filters:  make(map[string]string),
		Page:     page,
		PageSize: rows,
		ShowAll:  all,
	}
	for _, field := range query.FilterFields {
		if q, _ := flags.GetString(field); strings.TrimSpace(q) != "" {
			params.Filters[field] = q
		}
	}

	sortField, _ := flags.GetString("sort-field")
	if sortField = strings.TrimSpace(sortField); sortField != "" {
		sortOrder, _ := flags.GetString("sort-order")
		params.Sort = &query.Sort{Field: sortField, Order: query.NormalizeOrder(sortOrder)}
	}
	return params, nil
}

// ParseAssignments turns repeated --set "Header=value" flags into a record.
// Only the first "=" splits, so values may contain "=".
func ParseAssignments(flags *pflag.FlagSet) (models.Record, error) {
	pairs, _ := flags.GetStringArray("set")
	rec := make(models.Record, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q, expected Header=value", p)
		}
		rec[key] = value
	}
	return rec, nil
}
