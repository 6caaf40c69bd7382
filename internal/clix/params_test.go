package clix

import (
	"testing"

	"shopdesk/internal/models"
	"shopdesk/internal/query"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
	fs.Int("page", 1, "")
	fs.Int("rows", 0, "")
	fs.Bool("all", false, "")
	fs.String("sort-field", "", "")
	fs.String("sort-order", "asc", "")
	for _, f := range query.FilterFields {
		fs.String(f, "", "")
	}
	return fs
}

func TestParseListParams(t *testing.T) {
	fs := listFlags()
	require.NoError(t, fs.Parse([]string{"--page", "3", "--brand", "Acme ", "--sort-field", "price", "--sort-order", "DESC"}))

	params, err := ParseListParams(fs, 25)
	require.NoError(t, err)

	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 25, params.PageSize)
	assert.False(t, params.ShowAll)
	assert.Equal(t, map[string]string{models.FieldBrand: "Acme "}, params.Filters)
	assert.Equal(t, &query.Sort{Field: "price", Order: query.OrderDesc}, params.Sort)
}

func TestParseListParams_Defaults(t *testing.T) {
	fs := listFlags()
	require.NoError(t, fs.Parse([]string{"--page", "-2", "--all"}))

	params, err := ParseListParams(fs, 0)
	require.NoError(t, err)

	assert.Equal(t, query.DefaultPage, params.Page)
	assert.Equal(t, query.DefaultPageSize, params.PageSize)
	assert.True(t, params.ShowAll)
	assert.Nil(t, params.Sort)
	assert.Empty(t, params.Filters)
}

func TestParseAssignments(t *testing.T) {
	fs := pflag.NewFlagSet("set", pflag.ContinueOnError)
	fs.StringArray("set", nil, "")
	require.NoError(t, fs.Parse([]string{"--set", "Product=Siro ho", "--set", "Note=a=b", "--set", "Brand="}))

	rec, err := ParseAssignments(fs)
	require.NoError(t, err)
	assert.Equal(t, models.Record{"Product": "Siro ho", "Note": "a=b", "Brand": ""}, rec)

	bad := pflag.NewFlagSet("set", pflag.ContinueOnError)
	bad.StringArray("set", nil, "")
	require.NoError(t, bad.Parse([]string{"--set", "novalue"}))
	_, err = ParseAssignments(bad)
	assert.Error(t, err)
}
