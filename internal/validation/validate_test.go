package validation

import (
	"testing"

	"supplier-directory/internal/model"

	"github.com/stretchr/testify/assert"
)

func validSupplier() *model.Supplier {
	return &model.Supplier{
		Name:         "Acme",
		Email:        "a@acme.com",
		Category:     "Parts",
		Status:       model.StatusActive,
		PaymentTerms: "Net 30",
		Primary:      model.Contact{Name: "Jane Doe"},
		Rating:       4.5,
		Tags:         model.StringList{"oem-parts", "bulk"},
	}
}

func TestValidate_ValidSupplier(t *testing.T) {
	errs := Validate(validSupplier(), Lookups{})
	assert.Empty(t, errs)
}

func TestValidate_RequiredFields(t *testing.T) {
	s := &model.Supplier{}
	errs := Validate(s, Lookups{})

	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "category")
	assert.Contains(t, errs, "status")
	assert.Contains(t, errs, "payment_terms")
	assert.Contains(t, errs, "primary_contact")
}

func TestValidate_CollectsAllFailures(t *testing.T) {
	// Every rule is evaluated so the caller can surface per-field errors
	// simultaneously.
	s := validSupplier()
	s.Name = "   "
	s.Email = "not-an-email"
	s.Status = "archived"
	s.Rating = 7

	errs := Validate(s, Lookups{})
	assert.Len(t, errs, 4)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "status")
	assert.Contains(t, errs, "rating")
}

func TestValidate_EmailFormat(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"a@acme.com", true},
		{"first.last@sub.domain.co", true},
		{"missing-at.com", false},
		{"no@tld", false},
		{"spaces in@acme.com", false},
		{"@acme.com", false},
	}
	for _, tc := range cases {
		s := validSupplier()
		s.Email = tc.email
		errs := Validate(s, Lookups{})
		if tc.valid {
			assert.NotContains(t, errs, "email", "email %q should be accepted", tc.email)
		} else {
			assert.Contains(t, errs, "email", "email %q should be rejected", tc.email)
		}
	}
}

func TestValidate_EmailUniquenessLookup(t *testing.T) {
	s := validSupplier()
	s.ID = 7

	var gotEmail string
	var gotExclude uint
	errs := Validate(s, Lookups{
		EmailTaken: func(email string, excludeID uint) bool {
			gotEmail = email
			gotExclude = excludeID
			return true
		},
	})

	assert.Contains(t, errs, "email")
	assert.Equal(t, "a@acme.com", gotEmail)
	assert.Equal(t, uint(7), gotExclude)
}

func TestValidate_CategoryMustResolve(t *testing.T) {
	s := validSupplier()
	s.Category = "Nonexistent"

	errs := Validate(s, Lookups{
		CategoryExists: func(name string) bool { return false },
	})
	assert.Contains(t, errs, "category")

	errs = Validate(s, Lookups{
		CategoryExists: func(name string) bool { return true },
	})
	assert.NotContains(t, errs, "category")
}

func TestValidate_PaymentTerms(t *testing.T) {
	for _, terms := range model.PaymentTerms {
		s := validSupplier()
		s.PaymentTerms = terms
		assert.NotContains(t, Validate(s, Lookups{}), "payment_terms")
	}

	s := validSupplier()
	s.PaymentTerms = "Net 90"
	assert.Contains(t, Validate(s, Lookups{}), "payment_terms")
}

func TestValidate_OptionalContactEmails(t *testing.T) {
	s := validSupplier()
	s.Secondary = model.Contact{Name: "Bob", Email: "bad-email"}
	s.Billing = model.Contact{Email: "billing@acme.com"}

	errs := Validate(s, Lookups{})
	assert.Contains(t, errs, "secondary_email")
	assert.NotContains(t, errs, "billing_email")

	// A contact without an email is fine; only present emails are checked.
	s.Secondary = model.Contact{Name: "Bob", Phone: "555-0100"}
	assert.NotContains(t, Validate(s, Lookups{}), "secondary_email")
}

func TestValidate_RatingBounds(t *testing.T) {
	for _, rating := range []float64{0, 2.5, 5} {
		s := validSupplier()
		s.Rating = rating
		assert.NotContains(t, Validate(s, Lookups{}), "rating")
	}
	for _, rating := range []float64{-0.1, 5.1} {
		s := validSupplier()
		s.Rating = rating
		assert.Contains(t, Validate(s, Lookups{}), "rating")
	}
}

func TestValidate_Tags(t *testing.T) {
	s := validSupplier()
	s.Tags = model.StringList{"steel", "steel"}
	assert.Contains(t, Validate(s, Lookups{}), "tags")

	s.Tags = model.StringList{"steel", ""}
	assert.Contains(t, Validate(s, Lookups{}), "tags")

	s.Tags = model.StringList{" steel"}
	assert.Contains(t, Validate(s, Lookups{}), "tags")
}

func TestNormalizeTags(t *testing.T) {
	got := model.NormalizeTags([]string{" steel ", "bulk", "steel", "", "  "})
	assert.Equal(t, model.StringList{"steel", "bulk"}, got)
}
