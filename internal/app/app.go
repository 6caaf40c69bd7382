package app

import (
	"context"
	"fmt"
	"os"

	"shopdesk/internal/category"
	"shopdesk/internal/config"
	"shopdesk/internal/models"
	"shopdesk/internal/query"
	"shopdesk/internal/services"
	"shopdesk/internal/store"
	"shopdesk/internal/store/csvstore"

	log "github.com/sirupsen/logrus"
)

type App struct {
	Config *config.Config
	Schema models.Schema

	RecordStore store.RecordStore
	StorePath   string

	Processor *query.Processor
	Builder   *category.Builder

	// --- Initialized Services ---
	ProductService  *services.ProductService
	CategoryService *services.CategoryService
}

func NewApp(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	app := &App{Config: cfg, Schema: cfg.SchemaConfig()}

	if err := app.initLogging(); err != nil {
		return nil, err
	}
	if err := app.initStore(); err != nil {
		return nil, err
	}
	app.initQuery()
	app.initServices()

	log.WithField("store", app.StorePath).Debug("Application initialization complete.")
	return app, nil
}

// Ping reports whether the backing store is readable.
func (a *App) Ping(ctx context.Context) error {
	return a.RecordStore.Ping(ctx)
}

// --- Private Helper Methods ---

func (a *App) initLogging() error {
	level := log.InfoLevel
	if a.Config.Log.Level != "" {
		parsed, err := log.ParseLevel(a.Config.Log.Level)
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		level = parsed
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	if a.Config.Log.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func (a *App) initStore() error {
	cs, err := csvstore.New(a.Config.Store.Path)
	if err != nil {
		return fmt.Errorf("init record store: %w", err)
	}
	a.RecordStore = cs
	a.StorePath = cs.Path()
	return nil
}

func (a *App) initQuery() {
	cfg := a.Config
	a.Processor = query.NewProcessor(a.Schema, cfg.Query.Locale, cfg.Query.DefaultPageSize)

	b := category.NewBuilder(a.Schema)
	b.ListSeparator = cfg.Categories.ListSeparator
	b.PathSeparator = cfg.Categories.PathSeparator
	b.CreatedDate = cfg.Categories.CreatedDate
	b.Status = cfg.Categories.Status
	a.Builder = b
}

func (a *App) initServices() {
	a.ProductService = services.NewProductService(a.RecordStore, a.Processor, a.Schema)
	a.CategoryService = services.NewCategoryService(a.RecordStore, a.Builder)
}
