package query

import (
	"net/url"
	"strconv"
	"strings"

	"shopdesk/internal/models"
)

// FilterFields are the logical fields a list request may filter on.
var FilterFields = []string{
	models.FieldCategory,
	models.FieldBrand,
	models.FieldProduct,
	models.FieldCreatedBy,
}

// ParseParams reads page, rows, sortField, sortOrder, all and the
// FilterFields from a query string. Bad numbers fall back to defaults.
func ParseParams(values url.Values, defaultPageSize int) Params {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	params := Params{
		Filters:  make(map[string]string),
		Page:     positiveInt(values.Get("page"), DefaultPage),
		PageSize: positiveInt(values.Get("rows"), defaultPageSize),
		ShowAll:  truthy(values.Get("all")),
	}

	for _, field := range FilterFields {
		if q := values.Get(field); strings.TrimSpace(q) != "" {
			params.Filters[field] = q
		}
	}

	if field := strings.TrimSpace(values.Get("sortField")); field != "" {
		params.Sort = &Sort{Field: field, Order: NormalizeOrder(values.Get("sortOrder"))}
	}
	return params
}

// NormalizeOrder maps anything but "desc" to "asc".
func NormalizeOrder(order string) string {
	if strings.EqualFold(strings.TrimSpace(order), OrderDesc) {
		return OrderDesc
	}
	return OrderAsc
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
