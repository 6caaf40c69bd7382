package config

import (
	"errors"
	"fmt"

	"shopdesk/internal/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/sirupsen/logrus"
)

/*
Validate checks everything the server needs before it starts:
- Store path
- Server port and gin mode
- Log level and format
- Query paging and collation locale
- Schema fields the core relies on (id, category)
- Category separators
*/
func (c *Config) Validate() error {
	return validation.Errors{
		"store.path":                validation.Validate(c.Store.Path, validation.Required),
		"server.port":               validation.Validate(c.Server.Port, validation.Required, is.Port),
		"server.mode":               validation.Validate(c.Server.Mode, validation.In("debug", "release", "test")),
		"log.level":                 validation.Validate(c.Log.Level, validation.By(validLogLevel)),
		"log.format":                validation.Validate(c.Log.Format, validation.In("text", "json")),
		"query.default_page_size":   validation.Validate(c.Query.DefaultPageSize, validation.Required, validation.Min(1), validation.Max(1000)),
		"schema.fields":             validation.Validate(c.SchemaConfig(), validation.By(requiredFields(models.FieldID, models.FieldCategory))),
		"categories.list_separator": validation.Validate(c.Categories.ListSeparator, validation.Required),
		"categories.path_separator": validation.Validate(c.Categories.PathSeparator,
			validation.Required,
			validation.NotIn(c.Categories.ListSeparator).Error("must differ from categories.list_separator"),
		),
	}.Filter()
}

func validLogLevel(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := logrus.ParseLevel(s); err != nil {
		return errors.New("must be a logrus level (trace, debug, info, warn, error, fatal, panic)")
	}
	return nil
}

func requiredFields(names ...string) validation.RuleFunc {
	return func(value interface{}) error {
		schema, _ := value.(models.Schema)
		for _, name := range names {
			if len(schema[name]) == 0 {
				return fmt.Errorf("must define header spellings for %q", name)
			}
		}
		return nil
	}
}
