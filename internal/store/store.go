// Package store is the supplier record store: validated writes, soft
// deletes, and filtered reads over the GORM-backed supplier table.
package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"supplier-directory/internal/directory"
	"supplier-directory/internal/model"
	"supplier-directory/internal/query"
	"supplier-directory/internal/validation"

	"gorm.io/gorm"
)

// ErrNotFound is returned when an id does not resolve to a live supplier.
var ErrNotFound = errors.New("supplier not found")

// ValidationError carries every failed field rule from one write attempt.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

// ConflictError reports a uniqueness collision.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// Store provides the supplier record operations over a database handle.
type Store struct {
	db *gorm.DB
}

// New returns a Store over db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create validates the record, assigns the join date, and persists it.
// The caller's struct is filled in with the assigned ID and timestamps.
func (s *Store) Create(sup *model.Supplier) error {
	sup.ID = 0
	sup.Tags = model.NormalizeTags(sup.Tags)
	sup.JoinDate = time.Now().UTC()
	sup.LastOrder = nil

	if err := s.validate(sup); err != nil {
		return err
	}
	if err := s.db.Create(sup).Error; err != nil {
		return fmt.Errorf("create supplier: %w", err)
	}
	return nil
}

// Get returns the supplier by id. Soft-deleted records are not found.
func (s *Store) Get(id uint) (*model.Supplier, error) {
	var sup model.Supplier
	if err := s.db.First(&sup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get supplier %d: %w", id, err)
	}
	return &sup, nil
}

// GetAny returns the supplier by id including soft-deleted records, for
// audit lookups.
func (s *Store) GetAny(id uint) (*model.Supplier, error) {
	var sup model.Supplier
	if err := s.db.Unscoped().First(&sup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get supplier %d: %w", id, err)
	}
	return &sup, nil
}

// Update re-validates the merged record and persists it. ID and JoinDate
// are immutable; merge is the caller's job (the handler knows which
// request fields were provided).
func (s *Store) Update(sup *model.Supplier) error {
	existing, err := s.Get(sup.ID)
	if err != nil {
		return err
	}
	sup.JoinDate = existing.JoinDate
	sup.CreatedAt = existing.CreatedAt
	sup.Tags = model.NormalizeTags(sup.Tags)

	if err := s.validate(sup); err != nil {
		return err
	}
	if err := s.db.Save(sup).Error; err != nil {
		return fmt.Errorf("update supplier %d: %w", sup.ID, err)
	}
	return nil
}

// Delete soft-deletes the supplier. The record stays retrievable through
// GetAny but disappears from Get and List.
func (s *Store) Delete(id uint) error {
	sup, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(sup).Error; err != nil {
		return fmt.Errorf("delete supplier %d: %w", id, err)
	}
	return nil
}

// List loads the live suppliers and applies the filter spec in memory.
func (s *Store) List(spec query.Spec) ([]model.Supplier, error) {
	suppliers, err := s.All()
	if err != nil {
		return nil, err
	}
	return query.Apply(suppliers, spec, s.PartLookup()), nil
}

// All returns every non-deleted supplier.
func (s *Store) All() ([]model.Supplier, error) {
	var suppliers []model.Supplier
	if err := s.db.Find(&suppliers).Error; err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}

// Parts returns the part catalog, optionally narrowed to names containing
// term (case-insensitive).
func (s *Store) Parts(term string) ([]model.Part, error) {
	var parts []model.Part
	if err := s.db.Order("id").Find(&parts).Error; err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	if term == "" {
		return parts, nil
	}
	term = strings.ToLower(term)
	out := parts[:0]
	for _, p := range parts {
		if strings.Contains(strings.ToLower(p.Name), term) {
			out = append(out, p)
		}
	}
	return out, nil
}

// PartLookup adapts the part catalog into the query engine's injected
// lookup: the supplier-id set of every part whose name contains the term.
func (s *Store) PartLookup() query.PartLookup {
	return func(term string) map[uint]bool {
		ids := make(map[uint]bool)
		parts, err := s.Parts(term)
		if err != nil {
			return ids
		}
		for _, p := range parts {
			for _, id := range p.SupplierIDs {
				ids[id] = true
			}
		}
		return ids
	}
}

// validate runs every field rule plus the store-backed checks. Field-rule
// failures come back as a ValidationError; an email collision is reported
// as a ConflictError so callers can distinguish the two.
func (s *Store) validate(sup *model.Supplier) error {
	var lookupErr error
	errs := validation.Validate(sup, validation.Lookups{
		CategoryExists: func(name string) bool {
			ok, err := directory.CategoryExists(s.db, name)
			if err != nil {
				lookupErr = err
			}
			return ok || err != nil
		},
	})
	if lookupErr != nil {
		return lookupErr
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	taken, err := s.emailTaken(sup.Email, sup.ID)
	if err != nil {
		return err
	}
	if taken {
		return &ConflictError{
			Field:   "email",
			Message: "a supplier with this email already exists",
		}
	}
	return nil
}

// emailTaken reports whether email is used by a live supplier other than
// excludeID.
func (s *Store) emailTaken(email string, excludeID uint) (bool, error) {
	if email == "" {
		return false, nil
	}
	var count int64
	err := s.db.Model(&model.Supplier{}).
		Where("email = ? AND id != ?", email, excludeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check email uniqueness: %w", err)
	}
	return count > 0, nil
}
