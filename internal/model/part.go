package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// IDList is a list of record IDs stored as a JSON array.
type IDList []uint

// Value implements the driver.Valuer interface for IDList
func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		l = IDList{}
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface for IDList
func (l *IDList) Scan(value interface{}) error {
	if value == nil {
		*l = IDList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for IDList: %T", value)
	}
}

// Contains reports whether the list holds id.
func (l IDList) Contains(id uint) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Part is a read-only catalog entry naming the suppliers that can source it.
// Parts are maintained outside the directory; the service only reads them
// for the "supplied part" filter.
type Part struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(255);index;not null"`
	SupplierIDs IDList    `json:"supplier_ids" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
