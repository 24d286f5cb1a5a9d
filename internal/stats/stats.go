// Package stats computes summary figures over a supplier collection.
// Nothing is persisted; figures are recomputed on every call so they can
// be taken over the full store or any filtered subset.
package stats

import (
	"math"

	"supplier-directory/internal/model"
)

// Stats summarizes a supplier collection.
type Stats struct {
	TotalSuppliers   int     `json:"total_suppliers"`
	ActiveSuppliers  int     `json:"active_suppliers"`
	TotalValue       float64 `json:"total_value"`
	AvgRating        float64 `json:"avg_rating"`
	UniqueTags       int     `json:"unique_tags"`
	UniqueCategories int     `json:"unique_categories"`
}

// Compute aggregates the collection. AvgRating is the arithmetic mean
// rounded to one decimal place, reported as 0 for an empty collection.
func Compute(suppliers []model.Supplier) Stats {
	st := Stats{TotalSuppliers: len(suppliers)}

	categories := make(map[string]bool)
	tags := make(map[string]bool)
	var ratingSum float64

	for _, s := range suppliers {
		if s.Status == model.StatusActive {
			st.ActiveSuppliers++
		}
		st.TotalValue += s.TotalValue
		ratingSum += s.Rating
		if s.Category != "" {
			categories[s.Category] = true
		}
		for _, t := range s.Tags {
			tags[t] = true
		}
	}

	if len(suppliers) > 0 {
		st.AvgRating = math.Round(ratingSum/float64(len(suppliers))*10) / 10
	}
	st.UniqueCategories = len(categories)
	st.UniqueTags = len(tags)
	return st
}
