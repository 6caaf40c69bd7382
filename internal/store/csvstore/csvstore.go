package csvstore

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"shopdesk/internal/models"
	"shopdesk/internal/store"
	"shopdesk/internal/util"

	log "github.com/sirupsen/logrus"
)

// Store implements store.RecordStore on top of a single CSV file.
type Store struct {
	path string
}

var _ store.RecordStore = (*Store)(nil)

// New creates a CSV-backed record store. The file does not have to exist yet.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("csv store path cannot be empty")
	}
	return &Store{path: path}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) LoadAll(ctx context.Context) ([]models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.Record{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	header, rows, err := decode(util.CleanCSVBytes(data, s.path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	records := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		rec := make(models.Record, len(header))
		for i, h := range header {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}
	log.WithFields(log.Fields{"path": s.path, "rows": len(records)}).Debug("loaded csv store")
	return records, nil
}

func (s *Store) SaveAll(ctx context.Context, records []models.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	existing, err := s.readHeader()
	if err != nil {
		return err
	}
	header := mergeHeader(existing, records)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if len(header) > 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("encode header: %w", err)
		}
	}
	row := make([]string, len(header))
	for _, rec := range records {
		for i, h := range header {
			row[i] = rec[h]
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("encode row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}

	if err := writeFileAtomic(s.path, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	log.WithFields(log.Fields{"path": s.path, "rows": len(records), "columns": len(header)}).Debug("saved csv store")
	return nil
}

// Ping checks that the backing file is absent or a readable text file.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	binary, err := util.IsLikelyBinary(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	if binary {
		return fmt.Errorf("%s: %w", s.path, store.ErrBinary)
	}
	return nil
}

// readHeader returns the header row of the current file, or nil if there is
// no file yet.
func (s *Store) readHeader() ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	r := newReader(util.CleanCSVBytes(data, s.path))
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse header of %s: %w", s.path, err)
	}
	return cleanHeader(header), nil
}

func newReader(data []byte) *csv.Reader {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r
}

func decode(data []byte) ([]string, [][]string, error) {
	r := newReader(data)
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	header = cleanHeader(header)

	var rows [][]string
	line := 1
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, nil, fmt.Errorf("read row %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = util.CleanHeader(h)
	}
	return out
}

// mergeHeader keeps the existing column order for columns still carried by
// some record and appends new keys in sorted order. With no records the
// existing header is kept so an emptied table still documents its columns.
func mergeHeader(existing []string, records []models.Record) []string {
	if len(records) == 0 {
		return existing
	}

	present := make(map[string]struct{})
	for _, rec := range records {
		for k := range rec {
			present[k] = struct{}{}
		}
	}

	header := make([]string, 0, len(present))
	seen := make(map[string]struct{}, len(present))
	for _, h := range existing {
		if _, ok := present[h]; !ok {
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		header = append(header, h)
		seen[h] = struct{}{}
	}

	var added []string
	for k := range present {
		if _, ok := seen[k]; !ok {
			added = append(added, k)
		}
	}
	sort.Strings(added)
	return append(header, added...)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
