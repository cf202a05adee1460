package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/tidewater-labs/staffdir/internal/roster/domain"
	"github.com/tidewater-labs/staffdir/internal/roster/store"
	"github.com/tidewater-labs/staffdir/pkg/textx"
)

var (
	// ErrInvalidID reports an employee ID that is not exactly six digits.
	ErrInvalidID = errors.New("service: employee id must be exactly 6 digits")

	// ErrMissingFields reports a record with one or more empty fields.
	ErrMissingFields = errors.New("service: id, name, department and role are all required")
)

// SeedDepartments is the department list offered before any records exist.
// Departments discovered in stored data extend it, see Departments.
var SeedDepartments = []string{"HR", "IT", "Finance", "Sales", "Engineering"}

// RosterService owns the roster's business rules: field validation, text
// normalization, search and department discovery. Uniqueness and existence
// preconditions live in the store and pass through unchanged.
type RosterService struct {
	Store  store.Store
	Logger *slog.Logger
}

// SearchQuery filters employees. ID matches exactly when set; the other
// fields match as case-insensitive substrings. Empty fields match anything.
type SearchQuery struct {
	ID         string
	Name       string
	Department string
	Role       string
}

func (s *RosterService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.Store.List(ctx)
}

func (s *RosterService) Add(ctx context.Context, e domain.Employee) error {
	e = normalize(e)
	if err := validate(e); err != nil {
		return err
	}
	if err := s.Store.Add(ctx, e); err != nil {
		return err
	}
	s.Logger.Info("employee added", "id", e.ID, "department", e.Department)
	return nil
}

func (s *RosterService) Update(ctx context.Context, id string, e domain.Employee) error {
	id = strings.TrimSpace(id)
	e = normalize(e)
	if err := validate(e); err != nil {
		return err
	}
	if err := s.Store.Update(ctx, id, e); err != nil {
		return err
	}
	s.Logger.Info("employee updated", "id", id, "new_id", e.ID)
	return nil
}

func (s *RosterService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.Info("employee deleted", "id", id)
	return nil
}

// Search runs a linear filter over the stored records. All criteria set in q
// must match; an all-empty query returns every record.
func (s *RosterService) Search(ctx context.Context, q SearchQuery) ([]domain.Employee, error) {
	employees, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]domain.Employee, 0, len(employees))
	for _, e := range employees {
		if matches(e, q) {
			results = append(results, e)
		}
	}
	return results, nil
}

// Departments returns the seed list merged with departments found in stored
// records, deduplicated, seeds first then discovered ones in file order.
func (s *RosterService) Departments(ctx context.Context) ([]string, error) {
	employees, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(SeedDepartments))
	departments := make([]string, 0, len(SeedDepartments))
	for _, d := range SeedDepartments {
		seen[d] = struct{}{}
		departments = append(departments, d)
	}
	for _, e := range employees {
		if e.Department == "" {
			continue
		}
		if _, ok := seen[e.Department]; ok {
			continue
		}
		seen[e.Department] = struct{}{}
		departments = append(departments, e.Department)
	}
	return departments, nil
}

func normalize(e domain.Employee) domain.Employee {
	return domain.Employee{
		ID:         strings.TrimSpace(e.ID),
		Name:       textx.SmartTitle(e.Name),
		Department: textx.SmartTitle(e.Department),
		Role:       textx.SmartTitle(e.Role),
	}
}

func validate(e domain.Employee) error {
	if e.ID == "" || e.Name == "" || e.Department == "" || e.Role == "" {
		return ErrMissingFields
	}
	if !validID(e.ID) {
		return ErrInvalidID
	}
	return nil
}

func validID(id string) bool {
	if len(id) != 6 {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func matches(e domain.Employee, q SearchQuery) bool {
	if id := strings.TrimSpace(q.ID); id != "" && id != e.ID {
		return false
	}
	return containsFold(e.Name, q.Name) &&
		containsFold(e.Department, q.Department) &&
		containsFold(e.Role, q.Role)
}

func containsFold(field, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(query))
}
