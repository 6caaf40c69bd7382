package query

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"shopdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newTestProcessor() *Processor {
	return NewProcessor(models.DefaultSchema(), "vi", DefaultPageSize)
}

func ids(records []models.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r["ID"]
	}
	return out
}

func sampleRecords() []models.Record {
	return []models.Record{
		{"ID": "1", "Category": "Thuốc > Giảm đau", "Brand": "ABC Pharma", "Price": "120,000"},
		{"ID": "2", "Danh mục": "Vitamin", "Thương hiệu": "Blackmores", "Giá": "90,000"},
		{"ID": "3", "Category": "thuốc ho", "Brand": "abc", "Price": "15,000"},
		{"ID": "4", "Brand": "Other", "Price": ""},
	}
}

func TestFilter_SubstringCaseInsensitive(t *testing.T) {
	p := newTestProcessor()

	got := p.Filter(sampleRecords(), map[string]string{models.FieldCategory: "THUỐC"})
	assert.Equal(t, []string{"1", "3"}, ids(got))

	got = p.Filter(sampleRecords(), map[string]string{models.FieldBrand: "black"})
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestFilter_AndedAndMissingFieldNeverMatches(t *testing.T) {
	p := newTestProcessor()

	got := p.Filter(sampleRecords(), map[string]string{
		models.FieldCategory: "thuốc",
		models.FieldBrand:    "abc",
	})
	assert.Equal(t, []string{"1", "3"}, ids(got))

	got = p.Filter(sampleRecords(), map[string]string{models.FieldCreatedBy: "an"})
	assert.Empty(t, got)
}

func TestFilter_EmptyQueryIgnored(t *testing.T) {
	p := newTestProcessor()

	got := p.Filter(sampleRecords(), map[string]string{models.FieldBrand: "  "})
	assert.Len(t, got, 4)
}

func TestFilter_NoFalsePositivesOrNegatives(t *testing.T) {
	p := newTestProcessor()
	records := make([]models.Record, 0, 40)
	names := []string{"Thuốc bổ", "thuoc", "Vitamin C", "THUỐC NHỎ MẮT", "", "Sữa"}
	for i := 0; i < 40; i++ {
		records = append(records, models.Record{"ID": fmt.Sprint(i), "Category": names[i%len(names)]})
	}

	q := "thuốc"
	got := p.Filter(records, map[string]string{models.FieldCategory: q})

	kept := make(map[string]bool)
	for _, r := range got {
		kept[r["ID"]] = true
		assert.Contains(t, strings.ToLower(r["Category"]), q)
	}
	for _, r := range records {
		if strings.Contains(strings.ToLower(r["Category"]), q) {
			assert.True(t, kept[r["ID"]], "record %s should match", r["ID"])
		}
	}
}

func TestSort_NumericBeforeLexicographic(t *testing.T) {
	p := newTestProcessor()
	records := []models.Record{
		{"ID": "a", "Price": "10"},
		{"ID": "b", "Price": "9"},
		{"ID": "c", "Price": "Alpha"},
	}

	p.SortRecords(records, Sort{Field: models.FieldPrice, Order: OrderAsc})
	assert.Equal(t, []string{"b", "a", "c"}, ids(records))

	p.SortRecords(records, Sort{Field: models.FieldPrice, Order: OrderDesc})
	assert.Equal(t, []string{"c", "a", "b"}, ids(records))
}

func TestSort_CaseInsensitiveCollation(t *testing.T) {
	p := newTestProcessor()
	records := []models.Record{
		{"ID": "1", "Product": "banana"},
		{"ID": "2", "Product": "Apple"},
		{"ID": "3", "Product": "cherry"},
		{"ID": "4", "Product": "apple"},
	}

	p.SortRecords(records, Sort{Field: models.FieldProduct})
	// Equal keys keep their input order.
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(records))
}

func TestSort_UnknownFieldIsLiteralHeader(t *testing.T) {
	p := newTestProcessor()
	records := []models.Record{
		{"ID": "1", "Stock": "30"},
		{"ID": "2", "Stock": "4"},
		{"ID": "3", "Stock": "12"},
	}

	p.SortRecords(records, Sort{Field: "Stock", Order: "asc"})
	assert.Equal(t, []string{"2", "3", "1"}, ids(records))
}

func TestSort_AdjacentPairsOrdered(t *testing.T) {
	p := newTestProcessor()
	records := sampleRecords()
	p.SortRecords(records, Sort{Field: models.FieldPrice})

	cmp := NewComparer(language.Vietnamese)
	schema := models.DefaultSchema()
	for i := 1; i < len(records); i++ {
		a := schema.Resolve(records[i-1], models.FieldPrice)
		b := schema.Resolve(records[i], models.FieldPrice)
		assert.LessOrEqual(t, cmp.Compare(a, b), 0, "%q should not sort after %q", a, b)
	}
}

func TestApply_BrandFilterDescPriceSecondPage(t *testing.T) {
	p := newTestProcessor()
	var records []models.Record
	for i := 1; i <= 12; i++ {
		records = append(records, models.Record{
			"ID":    fmt.Sprintf("abc-%d", i),
			"Brand": "ABC Labs",
			"Price": fmt.Sprintf("%d,000 đ", i*10),
		})
		records = append(records, models.Record{
			"ID":    fmt.Sprintf("other-%d", i),
			"Brand": "Other",
			"Price": fmt.Sprintf("%d", i*1000),
		})
	}

	page := p.Apply(records, Params{
		Filters:  map[string]string{models.FieldBrand: "abc"},
		Sort:     &Sort{Field: models.FieldPrice, Order: OrderDesc},
		Page:     2,
		PageSize: 5,
	})

	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 5, page.Rows)
	// Ranks 6-10 by descending price: 70k down to 30k.
	assert.Equal(t, []string{"abc-7", "abc-6", "abc-5", "abc-4", "abc-3"}, ids(page.Data))
}

func TestApply_PagesConcatenateToFullResult(t *testing.T) {
	p := newTestProcessor()
	var records []models.Record
	for i := 0; i < 23; i++ {
		records = append(records, models.Record{"ID": fmt.Sprint(i), "Price": fmt.Sprint((i * 7) % 23)})
	}
	params := Params{Sort: &Sort{Field: models.FieldPrice}, PageSize: 5}

	all := p.Apply(records, Params{Sort: params.Sort, ShowAll: true})
	require.Equal(t, 23, all.Total)
	require.Equal(t, 23, all.Rows)

	var joined []string
	pages := (all.Total + params.PageSize - 1) / params.PageSize
	for n := 1; n <= pages; n++ {
		params.Page = n
		page := p.Apply(records, params)
		assert.LessOrEqual(t, len(page.Data), params.PageSize)
		joined = append(joined, ids(page.Data)...)
	}
	assert.Equal(t, ids(all.Data), joined)
}

func TestApply_Defaults(t *testing.T) {
	p := newTestProcessor()
	var records []models.Record
	for i := 0; i < 15; i++ {
		records = append(records, models.Record{"ID": fmt.Sprint(i)})
	}

	page := p.Apply(records, Params{Page: -3, PageSize: 0})
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Rows)
	assert.Len(t, page.Data, 10)
	assert.Equal(t, 15, page.Total)
}

func TestApply_PageBeyondEnd(t *testing.T) {
	p := newTestProcessor()

	page := p.Apply(sampleRecords(), Params{Page: 9, PageSize: 10})
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Equal(t, 4, page.Total)
}

func TestApply_DoesNotReorderInput(t *testing.T) {
	p := newTestProcessor()
	records := sampleRecords()

	p.Apply(records, Params{Sort: &Sort{Field: models.FieldPrice}, ShowAll: true})
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(records))
}

func TestNewProcessor_BadLocaleAndPageSize(t *testing.T) {
	p := NewProcessor(models.DefaultSchema(), "not a locale!", -1)
	assert.Equal(t, DefaultPageSize, p.DefaultPageSize())
}

func TestApply_HugePageSizeDoesNotOverflow(t *testing.T) {
	p := newTestProcessor()
	params := ParseParams(url.Values{
		"page": {"3"},
		"rows": {strconv.Itoa(math.MaxInt)},
	}, DefaultPageSize)

	page := p.Apply(sampleRecords()[:2], params)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, math.MaxInt, page.Rows)

	first := p.Apply(sampleRecords(), Params{Page: 1, PageSize: math.MaxInt})
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(first.Data))

	hugePage := p.Apply(sampleRecords(), Params{Page: math.MaxInt, PageSize: 2})
	assert.Empty(t, hugePage.Data)

	both := p.Apply(sampleRecords(), Params{Page: math.MaxInt, PageSize: math.MaxInt})
	assert.Empty(t, both.Data)
}

func TestApply_LastPartialPage(t *testing.T) {
	p := newTestProcessor()

	page := p.Apply(sampleRecords(), Params{Page: 2, PageSize: 3})
	assert.Equal(t, []string{"4"}, ids(page.Data))

	page = p.Apply([]models.Record{}, Params{Page: 1, PageSize: 3})
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
}

func TestApply_ShowAllEchoesRequestedPage(t *testing.T) {
	p := newTestProcessor()

	page := p.Apply(sampleRecords(), Params{Page: 4, PageSize: 2, ShowAll: true})
	assert.Equal(t, 4, page.Page)
	assert.Equal(t, 4, page.Rows)
	assert.Len(t, page.Data, 4)

	page = p.Apply(sampleRecords(), Params{ShowAll: true})
	assert.Equal(t, DefaultPage, page.Page)
}

func TestFilter_QueryMatchedAsGiven(t *testing.T) {
	p := newTestProcessor()
	records := []models.Record{
		{"ID": "1", "Category": "Thuốc"},
		{"ID": "2", "Category": "Thuốc ho"},
	}

	got := p.Filter(records, map[string]string{models.FieldCategory: "thuốc "})
	assert.Equal(t, []string{"2"}, ids(got))
}
