package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"shopdesk/internal/models"
	"shopdesk/internal/query"
	"shopdesk/internal/store"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	log "github.com/sirupsen/logrus"
)

// ProductService reads and mutates the product table.
//
// Every mutation loads the whole table, changes it in memory and saves it
// back. Mutations are serialised within the process; separate processes
// writing the same file still race and the last writer wins.
type ProductService struct {
	store     store.RecordStore
	processor *query.Processor
	schema    models.Schema

	mu sync.Mutex
}

func NewProductService(rs store.RecordStore, processor *query.Processor, schema models.Schema) *ProductService {
	return &ProductService{
		store:     rs,
		processor: processor,
		schema:    schema,
	}
}

// List returns one page of products matching params.
func (s *ProductService) List(ctx context.Context, params query.Params) (query.Page, error) {
	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return query.Page{}, fmt.Errorf("load products: %w", err)
	}
	return s.processor.Apply(records, params), nil
}

// Get returns the product with the given id.
func (s *ProductService) Get(ctx context.Context, id string) (models.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, models.ErrEmptyID
	}
	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	idx := s.indexOf(records, id)
	if idx < 0 {
		return nil, fmt.Errorf("product %q: %w", id, store.ErrNotFound)
	}
	return records[idx].Clone(), nil
}

// Create appends a product. A payload without an id gets the next numeric id.
func (s *ProductService) Create(ctx context.Context, payload models.Record) (models.Record, error) {
	if err := s.validatePayload(payload); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	rec := s.withoutBlankIDs(payload)

	id := strings.TrimSpace(s.schema.Resolve(rec, models.FieldID))
	if id == "" {
		id = nextID(records, s.schema)
		rec[s.idHeader(records)] = id
	} else if s.indexOf(records, id) >= 0 {
		return nil, fmt.Errorf("product %q: %w", id, store.ErrDuplicate)
	}

	records = append(records, rec)
	if err := s.store.SaveAll(ctx, records); err != nil {
		return nil, fmt.Errorf("save products: %w", err)
	}

	log.WithField("id", id).Info("Product created")
	return rec.Clone(), nil
}

// Update merges patch into the stored product. Keys that are spellings of a
// known field are written to the header the row already uses. The id cannot
// be changed.
func (s *ProductService) Update(ctx context.Context, id string, patch models.Record) (models.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, models.ErrEmptyID
	}
	if err := validation.Validate(patch, validation.Required, validation.By(validHeaders)); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	idx := s.indexOf(records, id)
	if idx < 0 {
		return nil, fmt.Errorf("product %q: %w", id, store.ErrNotFound)
	}

	merged := records[idx].Clone()
	for k, v := range patch {
		field, known := s.fieldOf(k)
		if field == models.FieldID {
			if v = strings.TrimSpace(v); v != "" && v != id {
				return nil, fmt.Errorf("%w: id cannot be changed", models.ErrValidation)
			}
			continue
		}
		if known {
			k = s.schema.HeaderFor(merged, field)
		}
		merged[k] = v
	}

	records[idx] = merged
	if err := s.store.SaveAll(ctx, records); err != nil {
		return nil, fmt.Errorf("save products: %w", err)
	}

	log.WithField("id", id).Info("Product updated")
	return merged.Clone(), nil
}

// Delete removes the product with the given id.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	idx := s.indexOf(records, id)
	if idx < 0 {
		return fmt.Errorf("product %q: %w", id, store.ErrNotFound)
	}

	records = append(records[:idx], records[idx+1:]...)
	if err := s.store.SaveAll(ctx, records); err != nil {
		return fmt.Errorf("save products: %w", err)
	}

	log.WithField("id", id).Info("Product deleted")
	return nil
}

// ImportResult counts what Import did with each incoming row.
type ImportResult struct {
	Added      int `json:"added"`
	Duplicates int `json:"duplicates"`
	Invalid    int `json:"invalid"`
}

// Import appends rows in one load and one save. Rows whose id already exists
// (in the table or earlier in the batch) are skipped, as are rows that would
// fail Create's validation. Rows without an id get sequential new ids.
func (s *ProductService) Import(ctx context.Context, rows []models.Record) (ImportResult, error) {
	var res ImportResult

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return res, fmt.Errorf("load products: %w", err)
	}

	header := s.idHeader(records)
	for _, row := range rows {
		if s.validatePayload(row) != nil {
			res.Invalid++
			continue
		}
		rec := s.withoutBlankIDs(row)
		id := strings.TrimSpace(s.schema.Resolve(rec, models.FieldID))
		if id == "" {
			rec[header] = nextID(records, s.schema)
		} else if s.indexOf(records, id) >= 0 {
			res.Duplicates++
			continue
		}
		records = append(records, rec)
		res.Added++
	}

	if res.Added == 0 {
		return res, nil
	}
	if err := s.store.SaveAll(ctx, records); err != nil {
		return res, fmt.Errorf("save products: %w", err)
	}

	log.WithFields(log.Fields{
		"added":      res.Added,
		"duplicates": res.Duplicates,
		"invalid":    res.Invalid,
	}).Info("Products imported")
	return res, nil
}

// Brands returns the distinct non-empty brand values in collation order.
func (s *ProductService) Brands(ctx context.Context) ([]string, error) {
	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	seen := make(map[string]struct{})
	brands := []string{}
	for _, rec := range records {
		b := strings.TrimSpace(s.schema.Resolve(rec, models.FieldBrand))
		if b == "" {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		brands = append(brands, b)
	}

	cmp := s.processor.Comparer()
	sort.SliceStable(brands, func(i, j int) bool {
		return cmp.Compare(brands[i], brands[j]) < 0
	})
	return brands, nil
}

func (s *ProductService) validatePayload(payload models.Record) error {
	err := validation.Validate(payload,
		validation.Required.Error("payload is empty"),
		validation.By(validHeaders),
		validation.By(s.hasContent),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	return nil
}

// hasContent requires at least one non-id column with a value.
func (s *ProductService) hasContent(value interface{}) error {
	rec, _ := value.(models.Record)
	for k, v := range rec {
		if field, _ := s.fieldOf(k); field == models.FieldID {
			continue
		}
		if strings.TrimSpace(v) != "" {
			return nil
		}
	}
	return validation.NewError("validation_no_content", "at least one non-id field must have a value")
}

func validHeaders(value interface{}) error {
	rec, _ := value.(models.Record)
	for k := range rec {
		if strings.TrimSpace(k) == "" {
			return validation.NewError("validation_blank_header", "column names must not be blank")
		}
		if strings.ContainsAny(k, "\r\n") {
			return validation.NewError("validation_header_newline", "column names must not contain line breaks")
		}
	}
	return nil
}

// withoutBlankIDs copies rec minus any id column holding only whitespace, so
// a generated id lands in the table's id column instead of beside it.
func (s *ProductService) withoutBlankIDs(rec models.Record) models.Record {
	out := rec.Clone()
	for _, h := range s.schema.Headers(models.FieldID) {
		if v, ok := out[h]; ok && strings.TrimSpace(v) == "" {
			delete(out, h)
		}
	}
	return out
}

// fieldOf reports which logical field header spells, if any.
func (s *ProductService) fieldOf(header string) (string, bool) {
	for field, headers := range s.schema {
		for _, h := range headers {
			if h == header {
				return field, true
			}
		}
	}
	return "", false
}

func (s *ProductService) indexOf(records []models.Record, id string) int {
	for i, rec := range records {
		if strings.TrimSpace(s.schema.Resolve(rec, models.FieldID)) == id {
			return i
		}
	}
	return -1
}

// idHeader picks the id column already in use, or the first accepted spelling.
func (s *ProductService) idHeader(records []models.Record) string {
	for _, rec := range records {
		for _, h := range s.schema.Headers(models.FieldID) {
			if _, ok := rec[h]; ok {
				return h
			}
		}
	}
	return s.schema.Headers(models.FieldID)[0]
}

// nextID returns one past the largest integer id. Non-integer ids are ignored.
func nextID(records []models.Record, schema models.Schema) string {
	highest := 0
	for _, rec := range records {
		n, err := strconv.Atoi(strings.TrimSpace(schema.Resolve(rec, models.FieldID)))
		if err == nil && n > highest {
			highest = n
		}
	}
	return strconv.Itoa(highest + 1)
}
