package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	testCases := map[string]string{
		"Thuốc":               "thuoc",
		"Giảm đau":            "giam-dau",
		"Thực phẩm chức năng": "thuc-pham-chuc-nang",
		"ĐỒ ĐIỆN TỬ":          "do-dien-tu",
		"Mẹ & Bé":             "me-be",
		"  Crème brûlée  ":    "creme-brulee",
		"Kids' toys (3+)":     "kids-toys-3",
		"a -- b":              "a-b",
		"!!!":                 "",
	}

	for in, want := range testCases {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, Slugify(in))
		})
	}
}
