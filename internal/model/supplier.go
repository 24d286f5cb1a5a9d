package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Supplier statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPending  = "pending"
)

// Statuses lists the legal supplier statuses.
var Statuses = []string{StatusActive, StatusInactive, StatusPending}

// PaymentTerms lists the legal payment terms values.
var PaymentTerms = []string{"Net 15", "Net 30", "Net 45", "Net 60", "COD"}

// UncategorizedCategory is assigned to suppliers whose category is deleted.
const UncategorizedCategory = "Uncategorized"

// DefaultCategories are system-provided categories that cannot be renamed
// or deleted through the directory API.
var DefaultCategories = []string{
	"Parts",
	"Supplies - General",
	"Equipment Mfg.",
	"Equipment Dealer",
	"Financing",
	"Software / IT",
	"Utilities",
}

// IsDefaultCategory reports whether name is one of the system-provided
// categories. Comparison is case-insensitive.
func IsDefaultCategory(name string) bool {
	for _, c := range DefaultCategories {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// StringList is a deduplicated list of labels stored as a JSON array so it
// round-trips through both the Postgres and sqlite drivers.
type StringList []string

// Value implements the driver.Valuer interface for StringList
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface for StringList
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
}

// Contains reports whether the list holds the exact label.
func (l StringList) Contains(name string) bool {
	for _, s := range l {
		if s == name {
			return true
		}
	}
	return false
}

// NormalizeTags trims every tag and drops empty and duplicate entries
// while preserving the input order of the survivors.
func NormalizeTags(tags []string) StringList {
	out := StringList{}
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// Contact is a named contact with optional email and phone.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Empty reports whether all contact fields are blank.
func (c Contact) Empty() bool {
	return c.Name == "" && c.Email == "" && c.Phone == ""
}

// Supplier represents the supplier record stored in the database
type Supplier struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"type:varchar(255);index;not null"`
	Email        string     `json:"email" gorm:"type:varchar(255);index"`
	Phone        string     `json:"phone" gorm:"type:varchar(50)"`
	Address      string     `json:"address" gorm:"type:text"`
	City         string     `json:"city" gorm:"type:varchar(100)"`
	State        string     `json:"state" gorm:"type:varchar(100)"`
	Country      string     `json:"country" gorm:"type:varchar(100)"`
	PostalCode   string     `json:"postal_code" gorm:"type:varchar(20)"`
	Category     string     `json:"category" gorm:"type:varchar(100);index"`
	Status       string     `json:"status" gorm:"type:varchar(20);index;default:'active'"`
	Tags         StringList `json:"tags" gorm:"type:text"`
	PaymentTerms string     `json:"payment_terms" gorm:"type:varchar(50);default:'Net 30'"`

	Primary   Contact `json:"primary_contact" gorm:"embedded;embeddedPrefix:primary_"`
	Secondary Contact `json:"secondary_contact" gorm:"embedded;embeddedPrefix:secondary_"`
	Technical Contact `json:"technical_contact" gorm:"embedded;embeddedPrefix:technical_"`
	Parts     Contact `json:"parts_contact" gorm:"embedded;embeddedPrefix:parts_"`
	Billing   Contact `json:"billing_contact" gorm:"embedded;embeddedPrefix:billing_"`

	Rating      float64    `json:"rating" gorm:"default:0"`
	TotalOrders int        `json:"total_orders" gorm:"default:0"`
	TotalValue  float64    `json:"total_value" gorm:"default:0"`
	LastOrder   *time.Time `json:"last_order"`
	Website     string     `json:"website" gorm:"type:varchar(255)"`
	TaxID       string     `json:"tax_id" gorm:"type:varchar(50)"`

	JoinDate  time.Time      `json:"join_date"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
