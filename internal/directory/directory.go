// Package directory derives the category and tag directories from the
// live supplier collection and performs the cascading rewrites triggered
// by renames and deletes. The directory is a projection, not a table:
// recomputing it on each access means it can never drift from the records
// it describes.
package directory

import (
	"errors"
	"sort"
	"strings"

	"supplier-directory/internal/model"

	"gorm.io/gorm"
)

var (
	// ErrDuplicateName is returned when an add or rename collides with an
	// existing directory value (case-insensitive).
	ErrDuplicateName = errors.New("name already exists in directory")
	// ErrDefaultCategory is returned when a rename or delete targets a
	// system-provided category.
	ErrDefaultCategory = errors.New("default categories cannot be renamed or deleted")
	// ErrEmptyName is returned when a directory operation is given a
	// blank name.
	ErrEmptyName = errors.New("name must not be empty")
)

// Entry is one directory value with its usage across non-deleted suppliers.
type Entry struct {
	Name       string `json:"name"`
	UsageCount int    `json:"usage_count"`
	IsDefault  bool   `json:"is_default,omitempty"`
}

// Categories returns the distinct categories in use plus every default
// category (included even at zero usage), sorted by name.
func Categories(db *gorm.DB) ([]Entry, error) {
	counts, err := categoryCounts(db)
	if err != nil {
		return nil, err
	}
	for _, name := range model.DefaultCategories {
		if _, ok := counts[name]; !ok {
			counts[name] = 0
		}
	}
	return toEntries(counts, true), nil
}

// CategoryExists reports whether name resolves in the category directory.
// The sentinel category always resolves.
func CategoryExists(db *gorm.DB, name string) (bool, error) {
	if strings.EqualFold(name, model.UncategorizedCategory) || model.IsDefaultCategory(name) {
		return true, nil
	}
	counts, err := categoryCounts(db)
	if err != nil {
		return false, err
	}
	for existing := range counts {
		if strings.EqualFold(existing, name) {
			return true, nil
		}
	}
	return false, nil
}

// AddCategory validates a new category name against the directory. The
// directory is derived, so an accepted name is simply available for
// assignment; no row is written until a supplier uses it.
func AddCategory(db *gorm.DB, name string) (Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, ErrEmptyName
	}
	exists, err := CategoryExists(db, name)
	if err != nil {
		return Entry{}, err
	}
	if exists {
		return Entry{}, ErrDuplicateName
	}
	return Entry{Name: name}, nil
}

// RenameCategory rewrites oldName to newName on every supplier currently
// holding it, in a single transaction. Default categories are immutable.
// It returns the number of suppliers rewritten.
func RenameCategory(db *gorm.DB, oldName, newName string) (int64, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return 0, ErrEmptyName
	}
	if model.IsDefaultCategory(oldName) {
		return 0, ErrDefaultCategory
	}
	if !strings.EqualFold(oldName, newName) {
		exists, err := CategoryExists(db, newName)
		if err != nil {
			return 0, err
		}
		if exists {
			return 0, ErrDuplicateName
		}
	}

	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Supplier{}).
			Where("category = ?", oldName).
			Update("category", newName)
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}

// DeleteCategory removes name from the directory by reassigning every
// supplier holding it to the sentinel category, in a single transaction.
// Default categories are immutable.
func DeleteCategory(db *gorm.DB, name string) (int64, error) {
	if model.IsDefaultCategory(name) {
		return 0, ErrDefaultCategory
	}

	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Supplier{}).
			Where("category = ?", name).
			Update("category", model.UncategorizedCategory)
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}

// Tags returns the distinct tags in use with usage counts, sorted by name.
func Tags(db *gorm.DB) ([]Entry, error) {
	suppliers, err := loadSuppliers(db)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, s := range suppliers {
		for _, t := range s.Tags {
			counts[t]++
		}
	}
	return toEntries(counts, false), nil
}

// AddTag validates a new tag name against the directory. Like categories,
// tags have no backing rows of their own.
func AddTag(db *gorm.DB, name string) (Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, ErrEmptyName
	}
	tags, err := Tags(db)
	if err != nil {
		return Entry{}, err
	}
	for _, t := range tags {
		if strings.EqualFold(t.Name, name) {
			return Entry{}, ErrDuplicateName
		}
	}
	return Entry{Name: name}, nil
}

// RenameTag rewrites oldName to newName in every supplier tag set, in a
// single transaction. A supplier already carrying newName just loses the
// old tag; the rewrite never introduces duplicates.
func RenameTag(db *gorm.DB, oldName, newName string) (int64, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return 0, ErrEmptyName
	}
	if !strings.EqualFold(oldName, newName) {
		tags, err := Tags(db)
		if err != nil {
			return 0, err
		}
		for _, t := range tags {
			if strings.EqualFold(t.Name, newName) {
				return 0, ErrDuplicateName
			}
		}
	}
	return rewriteTags(db, oldName, func(tags model.StringList) model.StringList {
		out := make(model.StringList, 0, len(tags))
		for _, t := range tags {
			if t == oldName {
				t = newName
			}
			if !out.Contains(t) {
				out = append(out, t)
			}
		}
		return out
	})
}

// DeleteTag removes name from every supplier tag set, in a single
// transaction. A supplier may end up with zero tags; there is no sentinel
// for tags.
func DeleteTag(db *gorm.DB, name string) (int64, error) {
	return rewriteTags(db, name, func(tags model.StringList) model.StringList {
		out := make(model.StringList, 0, len(tags))
		for _, t := range tags {
			if t != name {
				out = append(out, t)
			}
		}
		return out
	})
}

// rewriteTags applies rewrite to the tag set of every supplier holding
// tag, atomically. Tag sets are serialized JSON, so matching happens in
// memory rather than in SQL.
func rewriteTags(db *gorm.DB, tag string, rewrite func(model.StringList) model.StringList) (int64, error) {
	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		var suppliers []model.Supplier
		if err := tx.Find(&suppliers).Error; err != nil {
			return err
		}
		for i := range suppliers {
			if !suppliers[i].Tags.Contains(tag) {
				continue
			}
			updated := rewrite(suppliers[i].Tags)
			if err := tx.Model(&suppliers[i]).Update("tags", updated).Error; err != nil {
				return err
			}
			affected++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func categoryCounts(db *gorm.DB) (map[string]int, error) {
	suppliers, err := loadSuppliers(db)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, s := range suppliers {
		if s.Category != "" {
			counts[s.Category]++
		}
	}
	return counts, nil
}

func loadSuppliers(db *gorm.DB) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	if err := db.Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func toEntries(counts map[string]int, markDefaults bool) []Entry {
	entries := make([]Entry, 0, len(counts))
	for name, count := range counts {
		e := Entry{Name: name, UsageCount: count}
		if markDefaults {
			e.IsDefault = model.IsDefaultCategory(name)
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}
