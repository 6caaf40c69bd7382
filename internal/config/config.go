package config

import (
	"fmt"
	"strings"

	"shopdesk/internal/category"
	"shopdesk/internal/models"
	"shopdesk/internal/query"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultStoreFile = "products.csv"
	EnvPrefix        = "SHOPDESK"
)

type Config struct {
	Store struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"store"`

	Server struct {
		Addr           string   `mapstructure:"addr"`
		Port           string   `mapstructure:"port"`
		Mode           string   `mapstructure:"mode"` // gin mode: debug, release or test
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"server"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"` // text or json
	} `mapstructure:"log"`

	Query struct {
		DefaultPageSize int    `mapstructure:"default_page_size"`
		Locale          string `mapstructure:"locale"` // BCP 47 tag used for collation
	} `mapstructure:"query"`

	// Schema maps logical field names to accepted CSV header spellings.
	Schema struct {
		Fields map[string][]string `mapstructure:"fields"`
	} `mapstructure:"schema"`

	Categories struct {
		ListSeparator string `mapstructure:"list_separator"`
		PathSeparator string `mapstructure:"path_separator"`
		CreatedDate   string `mapstructure:"created_date"`
		Status        string `mapstructure:"status"`
	} `mapstructure:"categories"`
}

// LoadConfig reads config.yaml (from configFile when given, otherwise from
// "." and ~/.shopdesk), then SHOPDESK_* environment variables. A .env file in
// the working directory is loaded into the environment first.
func LoadConfig(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/" + defaultDataDir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The original service read its CSV location from CSV_PATH.
	_ = v.BindEnv("store.path", EnvPrefix+"_STORE_PATH", "CSV_PATH")

	if err := v.ReadInConfig(); err != nil {
		// It's okay if the config file doesn't exist; defaults and env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	storePath, err := ResolveStorePath(cfg.Store.Path, DefaultStoreFile)
	if err != nil {
		return nil, err
	}
	cfg.Store.Path = storePath

	return &cfg, nil
}

// Default returns a config populated only from defaults, for tests and tools.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.path", "data/"+DefaultStoreFile)

	v.SetDefault("server.addr", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("query.default_page_size", query.DefaultPageSize)
	v.SetDefault("query.locale", "vi")

	// Nested map form so a config file can override one field's spellings
	// without restating the rest.
	fields := make(map[string]interface{})
	for name, headers := range models.DefaultSchema() {
		fields[name] = headers
	}
	v.SetDefault("schema.fields", fields)

	v.SetDefault("categories.list_separator", category.DefaultListSeparator)
	v.SetDefault("categories.path_separator", category.DefaultPathSeparator)
	v.SetDefault("categories.created_date", category.DefaultCreatedDate)
	v.SetDefault("categories.status", category.DefaultStatus)
}

// SchemaConfig returns the configured header spellings as a models.Schema.
func (c *Config) SchemaConfig() models.Schema {
	schema := make(models.Schema, len(c.Schema.Fields))
	for name, headers := range c.Schema.Fields {
		var cleaned []string
		for _, h := range headers {
			if h = strings.TrimSpace(h); h != "" {
				cleaned = append(cleaned, h)
			}
		}
		schema[strings.ToLower(name)] = cleaned
	}
	return schema
}

// ListenAddr joins the server address and port.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Addr, c.Server.Port)
}
