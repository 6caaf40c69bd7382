package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchema_Resolve(t *testing.T) {
	schema := DefaultSchema()

	testCases := []struct {
		name     string
		record   Record
		field    string
		expected string
	}{
		{
			name:     "English header",
			record:   Record{"Category": "Thuốc"},
			field:    FieldCategory,
			expected: "Thuốc",
		},
		{
			name:     "Vietnamese header",
			record:   Record{"Danh mục": "Thuốc > Giảm đau"},
			field:    FieldCategory,
			expected: "Thuốc > Giảm đau",
		},
		{
			name:     "Blank first spelling falls through",
			record:   Record{"Category": "  ", "category": "Vitamin"},
			field:    FieldCategory,
			expected: "Vitamin",
		},
		{
			name:     "Missing field",
			record:   Record{"ID": "1"},
			field:    FieldBrand,
			expected: "",
		},
		{
			name:     "Unknown field is a literal header",
			record:   Record{"Stock": "12"},
			field:    "Stock",
			expected: "12",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, schema.Resolve(tc.record, tc.field))
		})
	}
}

func TestSchema_HeaderFor(t *testing.T) {
	schema := DefaultSchema()

	assert.Equal(t, "Mã", schema.HeaderFor(Record{"Mã": "7"}, FieldID))
	assert.Equal(t, "ID", schema.HeaderFor(Record{}, FieldID))
	assert.Equal(t, "Stock", schema.HeaderFor(Record{}, "Stock"))
}

func TestRecord_Clone(t *testing.T) {
	original := Record{"ID": "1"}
	clone := original.Clone()
	clone["ID"] = "2"

	assert.Equal(t, "1", original["ID"])
}
