package flatfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidewater-labs/staffdir/internal/roster/domain"
	"github.com/tidewater-labs/staffdir/internal/roster/store"
)

const fieldsPerRecord = 4

// Store persists the roster as a comma-delimited text file, one record per
// line. Every write goes to a temp file in the same directory followed by a
// rename, so a reader never observes a partially written file.
type Store struct {
	path string
}

var _ store.Store = (*Store)(nil)

// NewStore opens the roster at path, creating an empty backing file (and its
// parent directory) if none exists yet.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.ensureFile(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", s.path, err)
	}
	return f.Close()
}

// List reads the whole backing file. Short rows pad their missing trailing
// fields with "", long rows drop the extras; a malformed row never fails the
// load.
func (s *Store) List(ctx context.Context) ([]domain.Employee, error) {
	if err := s.ensureFile(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	employees := make([]domain.Employee, 0, len(rows))
	for _, row := range rows {
		fields := make([]string, fieldsPerRecord)
		for i := 0; i < fieldsPerRecord && i < len(row); i++ {
			fields[i] = strings.TrimSpace(row[i])
		}
		employees = append(employees, domain.Employee{
			ID:         fields[0],
			Name:       fields[1],
			Department: fields[2],
			Role:       fields[3],
		})
	}
	return employees, nil
}

// SaveAll writes the collection to a temp file in the roster's directory and
// renames it over the backing file. On any failure the temp file is removed
// and the old content stays in place.
func (s *Store) SaveAll(ctx context.Context, employees []domain.Employee) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "roster-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	for _, e := range employees {
		if err = w.Write([]string{e.ID, e.Name, e.Department, e.Role}); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("write record: %w", err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("flush records: %w", err)
	}

	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) Add(ctx context.Context, e domain.Employee) error {
	employees, err := s.List(ctx)
	if err != nil {
		return err
	}
	if indexByID(employees, e.ID) >= 0 {
		return store.ErrDuplicateID
	}
	return s.SaveAll(ctx, append(employees, e))
}

func (s *Store) Update(ctx context.Context, id string, e domain.Employee) error {
	employees, err := s.List(ctx)
	if err != nil {
		return err
	}
	i := indexByID(employees, id)
	if i < 0 {
		return store.ErrNotFound
	}
	if e.ID != id && indexByID(employees, e.ID) >= 0 {
		return store.ErrDuplicateID
	}
	employees[i] = e
	return s.SaveAll(ctx, employees)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	employees, err := s.List(ctx)
	if err != nil {
		return err
	}
	i := indexByID(employees, id)
	if i < 0 {
		return store.ErrNotFound
	}
	return s.SaveAll(ctx, append(employees[:i], employees[i+1:]...))
}

func (s *Store) Close() error {
	return nil
}

func indexByID(employees []domain.Employee, id string) int {
	for i, e := range employees {
		if e.ID == id {
			return i
		}
	}
	return -1
}
