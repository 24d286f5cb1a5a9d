package directory

import (
	"testing"

	"supplier-directory/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Supplier{}, &model.Part{}))
	return db
}

func seed(t *testing.T, db *gorm.DB, suppliers ...*model.Supplier) {
	t.Helper()
	for _, s := range suppliers {
		require.NoError(t, db.Create(s).Error)
	}
}

func categoriesOf(t *testing.T, db *gorm.DB) map[string]Entry {
	t.Helper()
	entries, err := Categories(db)
	require.NoError(t, err)
	out := make(map[string]Entry, len(entries))
	for _, e := range entries {
		out[e.Name] = e
	}
	return out
}

func TestCategories_IncludesDefaultsAtZeroUsage(t *testing.T) {
	db := newTestDB(t)

	entries := categoriesOf(t, db)
	for _, name := range model.DefaultCategories {
		e, ok := entries[name]
		require.True(t, ok, "default category %q missing", name)
		assert.True(t, e.IsDefault)
		assert.Equal(t, 0, e.UsageCount)
	}
}

func TestCategories_CountsUsage(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		&model.Supplier{Name: "A", Category: "Imports"},
		&model.Supplier{Name: "B", Category: "Imports"},
		&model.Supplier{Name: "C", Category: "Parts"},
	)

	entries := categoriesOf(t, db)
	assert.Equal(t, 2, entries["Imports"].UsageCount)
	assert.False(t, entries["Imports"].IsDefault)
	assert.Equal(t, 1, entries["Parts"].UsageCount)
	assert.True(t, entries["Parts"].IsDefault)
}

func TestCategories_IgnoresSoftDeletedSuppliers(t *testing.T) {
	db := newTestDB(t)
	s := &model.Supplier{Name: "A", Category: "Imports"}
	seed(t, db, s)
	require.NoError(t, db.Delete(s).Error)

	entries := categoriesOf(t, db)
	_, ok := entries["Imports"]
	assert.False(t, ok)
}

func TestCategoryExists(t *testing.T) {
	db := newTestDB(t)
	seed(t, db, &model.Supplier{Name: "A", Category: "Imports"})

	for _, name := range []string{"Parts", "parts", model.UncategorizedCategory, "Imports", "imports"} {
		ok, err := CategoryExists(db, name)
		require.NoError(t, err)
		assert.True(t, ok, "category %q should resolve", name)
	}

	ok, err := CategoryExists(db, "Nonexistent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddCategory(t *testing.T) {
	db := newTestDB(t)
	seed(t, db, &model.Supplier{Name: "A", Category: "Imports"})

	entry, err := AddCategory(db, "Logistics")
	require.NoError(t, err)
	assert.Equal(t, "Logistics", entry.Name)

	_, err = AddCategory(db, "imports")
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = AddCategory(db, "parts")
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = AddCategory(db, "  ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestRenameCategory_Cascades(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		&model.Supplier{Name: "A", Category: "Imports"},
		&model.Supplier{Name: "B", Category: "Imports"},
		&model.Supplier{Name: "C", Category: "Parts"},
	)

	affected, err := RenameCategory(db, "Imports", "Overseas")
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	var remaining int64
	db.Model(&model.Supplier{}).Where("category = ?", "Imports").Count(&remaining)
	assert.Zero(t, remaining)

	entries := categoriesOf(t, db)
	assert.Equal(t, 2, entries["Overseas"].UsageCount)
	assert.Equal(t, 1, entries["Parts"].UsageCount)
}

func TestRenameCategory_DefaultRejected(t *testing.T) {
	db := newTestDB(t)
	seed(t, db, &model.Supplier{Name: "A", Category: "Parts"})

	_, err := RenameCategory(db, "Parts", "Components")
	assert.ErrorIs(t, err, ErrDefaultCategory)

	// Store unchanged
	var count int64
	db.Model(&model.Supplier{}).Where("category = ?", "Parts").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRenameCategory_DuplicateTargetRejected(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		&model.Supplier{Name: "A", Category: "Imports"},
		&model.Supplier{Name: "B", Category: "Exports"},
	)

	_, err := RenameCategory(db, "Imports", "exports")
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = RenameCategory(db, "Imports", "Utilities")
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestRenameCategory_UnusedOldIsNoop(t *testing.T) {
	db := newTestDB(t)

	affected, err := RenameCategory(db, "Ghost", "Phantom")
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestDeleteCategory_ReassignsToSentinel(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		&model.Supplier{Name: "A", Category: "Imports"},
		&model.Supplier{Name: "B", Category: "Imports"},
		&model.Supplier{Name: "C", Category: "Parts"},
	)

	affected, err := DeleteCategory(db, "Imports")
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	entries := categoriesOf(t, db)
	assert.Equal(t, 2, entries[model.UncategorizedCategory].UsageCount)
	_, ok := entries["Imports"]
	assert.False(t, ok)
}

func TestDeleteCategory_DefaultRejected(t *testing.T) {
	db := newTestDB(t)

	_, err := DeleteCategory(db, "Utilities")
	assert.ErrorIs(t, err, ErrDefaultCategory)
}

func TestTags_UsageCounts(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		&model.Supplier{Name: "A", Tags: model.StringList{"steel", "bulk"}},
		&model.Supplier{Name: "B", Tags: model.StringList{"steel"}},
		&model.Supplier{Name: "C"},
	)

	tags, err := Tags(db)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, Entry{Name: "bulk", UsageCount: 1}, tags[0])
	assert.Equal(t, Entry{Name: "steel", UsageCount: 2}, tags[1])
}

func TestAddTag(t *testing.T) {
	db := newTestDB(t)
	seed(t, db, &model.Supplier{Name: "A", Tags: model.StringList{"steel"}})

	entry, err := AddTag(db, "aluminium")
	require.NoError(t, err)
	assert.Equal(t, "aluminium", entry.Name)

	_, err = AddTag(db, "STEEL")
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestRenameTag_Cascades(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		&model.Supplier{Name: "A", Tags: model.StringList{"steel", "bulk"}},
		&model.Supplier{Name: "B", Tags: model.StringList{"steel"}},
		&model.Supplier{Name: "C", Tags: model.StringList{"bulk"}},
	)

	affected, err := RenameTag(db, "steel", "metal")
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	var a model.Supplier
	require.NoError(t, db.First(&a, "name = ?", "A").Error)
	assert.Equal(t, model.StringList{"metal", "bulk"}, a.Tags)
}

func TestRenameTag_DuplicateTargetRejected(t *testing.T) {
	db := newTestDB(t)
	seed(t, db, &model.Supplier{Name: "A", Tags: model.StringList{"steel", "metal"}})

	_, err := RenameTag(db, "steel", "metal")
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = RenameTag(db, "steel", " ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestRenameTag_CaseOnlyRenameDeduplicates(t *testing.T) {
	db := newTestDB(t)
	s := &model.Supplier{Name: "A", Tags: model.StringList{"steel", "Steel"}}
	seed(t, db, s)

	// Old and new differ only in case, so the duplicate check is skipped
	// and the rewrite collapses both spellings into one.
	affected, err := RenameTag(db, "steel", "Steel")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	var got model.Supplier
	require.NoError(t, db.First(&got, s.ID).Error)
	assert.Equal(t, model.StringList{"Steel"}, got.Tags)
}

func TestDeleteTag_RemovesFromAllSets(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		&model.Supplier{Name: "A", Tags: model.StringList{"steel", "bulk"}},
		&model.Supplier{Name: "B", Tags: model.StringList{"steel"}},
	)

	affected, err := DeleteTag(db, "steel")
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	var a, b model.Supplier
	require.NoError(t, db.First(&a, "name = ?", "A").Error)
	require.NoError(t, db.First(&b, "name = ?", "B").Error)
	assert.Equal(t, model.StringList{"bulk"}, a.Tags)
	assert.Empty(t, b.Tags)

	tags, err := Tags(db)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "bulk", tags[0].Name)
}
