// Package query filters and sorts supplier collections in memory. At the
// directory's scale (low hundreds of records) a linear scan with
// short-circuit AND across predicates beats maintaining indexes.
package query

import (
	"sort"
	"strings"

	"supplier-directory/internal/model"
)

// Spec describes one list request. Zero values (or "all" for the
// exact-match filters) disable the corresponding axis.
type Spec struct {
	SearchTerm string
	Status     string
	Category   string
	TagTerm    string
	PartTerm   string
	SortBy     string
	SortOrder  string
}

// PartLookup returns the set of supplier IDs referenced by any part whose
// name contains the term (case-insensitive). Injected so the engine has
// no hard dependency on the parts collaborator.
type PartLookup func(term string) map[uint]bool

// SortFields lists the scalar fields accepted by Spec.SortBy.
var SortFields = []string{
	"name", "email", "category", "status", "rating",
	"total_value", "total_orders", "join_date",
}

// ValidSortField reports whether field is an accepted sort key.
func ValidSortField(field string) bool {
	for _, f := range SortFields {
		if f == field {
			return true
		}
	}
	return false
}

// Apply filters and sorts suppliers according to spec. It never mutates
// its input and returns the same output for the same input.
func Apply(suppliers []model.Supplier, spec Spec, parts PartLookup) []model.Supplier {
	var partMatches map[uint]bool
	if spec.PartTerm != "" {
		if parts == nil {
			partMatches = map[uint]bool{}
		} else {
			partMatches = parts(spec.PartTerm)
		}
	}

	out := make([]model.Supplier, 0, len(suppliers))
	for _, s := range suppliers {
		if !matchesSearch(s, spec.SearchTerm) {
			continue
		}
		if !matchesExact(s.Status, spec.Status) {
			continue
		}
		if !matchesExact(s.Category, spec.Category) {
			continue
		}
		if !matchesTag(s.Tags, spec.TagTerm) {
			continue
		}
		if spec.PartTerm != "" && !partMatches[s.ID] {
			continue
		}
		out = append(out, s)
	}

	sortSuppliers(out, spec.SortBy, spec.SortOrder)
	return out
}

func matchesSearch(s model.Supplier, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(s.Name), term) ||
		strings.Contains(strings.ToLower(s.Email), term) ||
		strings.Contains(strings.ToLower(s.Primary.Name), term)
}

func matchesExact(value, filter string) bool {
	return filter == "" || filter == "all" || value == filter
}

func matchesTag(tags model.StringList, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

// sortSuppliers orders the slice by the requested field, ascending unless
// order is "desc", breaking ties by ID ascending so output is
// deterministic.
func sortSuppliers(suppliers []model.Supplier, field, order string) {
	if !ValidSortField(field) {
		field = "name"
	}
	desc := order == "desc"

	sort.Slice(suppliers, func(i, j int) bool {
		a, b := &suppliers[i], &suppliers[j]
		c := compareField(a, b, field)
		if c == 0 {
			return a.ID < b.ID
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func compareField(a, b *model.Supplier, field string) int {
	switch field {
	case "email":
		return strings.Compare(a.Email, b.Email)
	case "category":
		return strings.Compare(a.Category, b.Category)
	case "status":
		return strings.Compare(a.Status, b.Status)
	case "rating":
		return compareFloat(a.Rating, b.Rating)
	case "total_value":
		return compareFloat(a.TotalValue, b.TotalValue)
	case "total_orders":
		return compareFloat(float64(a.TotalOrders), float64(b.TotalOrders))
	case "join_date":
		switch {
		case a.JoinDate.Before(b.JoinDate):
			return -1
		case a.JoinDate.After(b.JoinDate):
			return 1
		}
		return 0
	default:
		return strings.Compare(a.Name, b.Name)
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
