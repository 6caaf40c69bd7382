// Package query filters, sorts and paginates in-memory record lists.
package query

import (
	"sort"
	"strings"

	"shopdesk/internal/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Sort names a logical field and a direction. Any order other than "desc"
// sorts ascending.
type Sort struct {
	Field string
	Order string
}

// Params are the already-coerced inputs of a list request.
type Params struct {
	// Filters maps a logical field to a substring query. Empty queries are ignored.
	Filters  map[string]string
	Sort     *Sort
	Page     int
	PageSize int
	// ShowAll bypasses pagination.
	ShowAll bool
}

// Page is one slice of a filtered and sorted list.
type Page struct {
	Data  []models.Record `json:"data"`
	Total int             `json:"total"`
	Page  int             `json:"page"`
	Rows  int             `json:"rows"`
}

// Processor applies list queries against a schema.
type Processor struct {
	schema          models.Schema
	locale          language.Tag
	defaultPageSize int
}

// NewProcessor builds a processor. An unparsable locale falls back to
// language.Und, a non-positive page size to DefaultPageSize.
func NewProcessor(schema models.Schema, locale string, defaultPageSize int) *Processor {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	return &Processor{schema: schema, locale: tag, defaultPageSize: defaultPageSize}
}

// DefaultPageSize is the page size used when a request does not carry one.
func (p *Processor) DefaultPageSize() int {
	return p.defaultPageSize
}

// Comparer returns a fresh comparer for the processor's locale.
func (p *Processor) Comparer() *Comparer {
	return NewComparer(p.locale)
}

// Apply filters, sorts and paginates records. The input slice is not modified.
func (p *Processor) Apply(records []models.Record, params Params) Page {
	matched := p.Filter(records, params.Filters)
	if params.Sort != nil && params.Sort.Field != "" {
		p.SortRecords(matched, *params.Sort)
	}

	total := len(matched)
	page, size := params.Page, params.PageSize
	if page <= 0 {
		page = DefaultPage
	}
	if params.ShowAll {
		return Page{Data: matched, Total: total, Page: page, Rows: total}
	}
	if size <= 0 {
		size = p.defaultPageSize
	}
	return Page{Data: paginate(matched, page, size), Total: total, Page: page, Rows: size}
}

// Filter keeps records whose resolved value contains every filter query,
// case-insensitively. Queries are matched as given, surrounding spaces
// included; whitespace-only queries are ignored. It always returns a fresh
// slice.
func (p *Processor) Filter(records []models.Record, filters map[string]string) []models.Record {
	type needle struct{ field, q string }
	var needles []needle
	for field, q := range filters {
		if strings.TrimSpace(q) != "" {
			needles = append(needles, needle{field: field, q: strings.ToLower(q)})
		}
	}

	out := make([]models.Record, 0, len(records))
	for _, rec := range records {
		keep := true
		for _, n := range needles {
			if !strings.Contains(strings.ToLower(p.schema.Resolve(rec, n.field)), n.q) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, rec)
		}
	}
	return out
}

// SortRecords sorts records in place with a stable sort.
func (p *Processor) SortRecords(records []models.Record, s Sort) {
	// collate.Collator is not safe for concurrent use; one per call.
	cmp := NewComparer(p.locale)
	desc := strings.EqualFold(s.Order, OrderDesc)
	sort.SliceStable(records, func(i, j int) bool {
		c := cmp.Compare(p.schema.Resolve(records[i], s.Field), p.schema.Resolve(records[j], s.Field))
		if desc {
			c = -c
		}
		return c < 0
	})
}

// paginate slices out one page. page and size are positive; the bounds are
// checked before multiplying so huge values cannot overflow.
func paginate(records []models.Record, page, size int) []models.Record {
	pages := len(records) / size
	if len(records)%size != 0 {
		pages++
	}
	if len(records) == 0 || page-1 >= pages {
		return []models.Record{}
	}
	start := (page - 1) * size
	end := len(records)
	if size < end-start {
		end = start + size
	}
	return records[start:end]
}

// Comparer orders field values: numerically when both sides carry a number,
// otherwise by case-insensitive collation.
type Comparer struct {
	coll *collate.Collator
}

func NewComparer(locale language.Tag) *Comparer {
	return &Comparer{coll: collate.New(locale, collate.IgnoreCase)}
}

// Compare returns -1, 0 or 1.
func (c *Comparer) Compare(a, b string) int {
	na, okA := ParseNumber(a)
	nb, okB := ParseNumber(b)
	if okA && okB {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	return c.coll.CompareString(a, b)
}
