package validation

import (
	"fmt"
	"regexp"
	"strings"

	"supplier-directory/internal/model"
)

// emailPattern is the basic local@domain.tld check used across the service.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Lookups are the store-backed checks the validator cannot perform on its
// own. Both are optional; a nil lookup skips the corresponding rule.
type Lookups struct {
	// EmailTaken reports whether email is already used by a non-deleted
	// supplier other than excludeID.
	EmailTaken func(email string, excludeID uint) bool
	// CategoryExists reports whether name resolves in the category
	// directory.
	CategoryExists func(name string) bool
}

// ValidEmail reports whether s matches the email pattern.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Validate checks every rule on the (already merged) supplier record and
// returns the union of failures keyed by field name. It never
// short-circuits: callers surface all messages at once.
func Validate(s *model.Supplier, lookups Lookups) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(s.Name) == "" {
		errs["name"] = "name is required"
	}

	if strings.TrimSpace(s.Email) == "" {
		errs["email"] = "email is required"
	} else if !ValidEmail(s.Email) {
		errs["email"] = "email must be a valid email address"
	} else if lookups.EmailTaken != nil && lookups.EmailTaken(s.Email, s.ID) {
		errs["email"] = "email is already used by another supplier"
	}

	if strings.TrimSpace(s.Category) == "" {
		errs["category"] = "category is required"
	} else if lookups.CategoryExists != nil && !lookups.CategoryExists(s.Category) {
		errs["category"] = fmt.Sprintf("category %q does not exist", s.Category)
	}

	if !contains(model.Statuses, s.Status) {
		errs["status"] = "status must be one of: " + strings.Join(model.Statuses, ", ")
	}

	if !contains(model.PaymentTerms, s.PaymentTerms) {
		errs["payment_terms"] = "payment terms must be one of: " + strings.Join(model.PaymentTerms, ", ")
	}

	if strings.TrimSpace(s.Primary.Name) == "" {
		errs["primary_contact"] = "primary contact name is required"
	}
	if s.Primary.Email != "" && !ValidEmail(s.Primary.Email) {
		errs["primary_email"] = "primary contact email must be a valid email address"
	}
	if s.Secondary.Email != "" && !ValidEmail(s.Secondary.Email) {
		errs["secondary_email"] = "secondary contact email must be a valid email address"
	}
	if s.Technical.Email != "" && !ValidEmail(s.Technical.Email) {
		errs["technical_email"] = "technical contact email must be a valid email address"
	}
	if s.Parts.Email != "" && !ValidEmail(s.Parts.Email) {
		errs["parts_email"] = "parts contact email must be a valid email address"
	}
	if s.Billing.Email != "" && !ValidEmail(s.Billing.Email) {
		errs["billing_email"] = "billing contact email must be a valid email address"
	}

	if s.Rating < 0 || s.Rating > 5 {
		errs["rating"] = "rating must be between 0 and 5"
	}

	if msg := checkTags(s.Tags); msg != "" {
		errs["tags"] = msg
	}

	return errs
}

func checkTags(tags model.StringList) string {
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if strings.TrimSpace(t) == "" {
			return "tags must not contain empty entries"
		}
		if t != strings.TrimSpace(t) {
			return "tags must not contain surrounding whitespace"
		}
		if seen[t] {
			return fmt.Sprintf("duplicate tag %q", t)
		}
		seen[t] = true
	}
	return ""
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
