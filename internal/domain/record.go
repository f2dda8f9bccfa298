package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the storage form of an expiration date
const DateLayout = "2006-01-02"

// ManualIDPrefix marks records created without a scanned barcode
const ManualIDPrefix = "manual-"

// InventoryRecord represents one tracked product in the fridge.
// ID is the storage key and is never part of the stored value.
type InventoryRecord struct {
	ID             string   `json:"-"`
	ProductName    string   `json:"product_name" validate:"required"`
	Description    string   `json:"description"`
	ImageURL       string   `json:"image_url,omitempty"`
	Brands         string   `json:"brands,omitempty"`
	Quantity       Quantity `json:"quantity" validate:"min=1"`
	ExpirationDate string   `json:"expiration_date,omitempty" validate:"omitempty,calendardate"`
}

// NewInventoryRecord creates a record for a scanned or manually entered product
func NewInventoryRecord(id, productName string, quantity int) *InventoryRecord {
	if strings.TrimSpace(id) == "" {
		id = NewManualID()
	}
	return &InventoryRecord{
		ID:          id,
		ProductName: productName,
		Quantity:    Quantity(quantity),
	}
}

// NewManualID generates a storage key for a product entered without a barcode
func NewManualID() string {
	return ManualIDPrefix + uuid.New().String()
}

// IsManual reports whether the record was entered without a barcode
func (r *InventoryRecord) IsManual() bool {
	return strings.HasPrefix(r.ID, ManualIDPrefix)
}

// HasExpiration reports whether the record carries an expiration date
func (r *InventoryRecord) HasExpiration() bool {
	return r.ExpirationDate != ""
}

// Expiration parses the expiration date. ok is false when the record has none
// or the stored value does not parse.
func (r *InventoryRecord) Expiration() (t time.Time, ok bool) {
	if !r.HasExpiration() {
		return time.Time{}, false
	}
	t, err := ParseDate(r.ExpirationDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Normalize trims user input and fills defaults before validation
func (r *InventoryRecord) Normalize() {
	r.ID = strings.TrimSpace(r.ID)
	r.ProductName = strings.TrimSpace(r.ProductName)
	r.Description = strings.TrimSpace(r.Description)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	r.Brands = strings.TrimSpace(r.Brands)
	r.ExpirationDate = strings.TrimSpace(r.ExpirationDate)
}

// WouldDelete reports whether setting the quantity to newQuantity removes the
// record. Callers use it to ask for confirmation before the update.
func WouldDelete(newQuantity int) bool {
	return newQuantity <= 0
}

// ParseDate parses a YYYY-MM-DD calendar date. Out-of-range days such as
// 2024-02-30 are rejected.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FieldUpdate carries the editable fields of a record. Nil fields are left
// untouched; an empty ExpirationDate clears the date.
type FieldUpdate struct {
	ProductName    *string
	Description    *string
	ExpirationDate *string
}

// IsEmpty reports whether the update changes nothing
func (u FieldUpdate) IsEmpty() bool {
	return u.ProductName == nil && u.Description == nil && u.ExpirationDate == nil
}

// Apply returns a copy of record with the update merged in
func (u FieldUpdate) Apply(record InventoryRecord) InventoryRecord {
	if u.ProductName != nil {
		record.ProductName = *u.ProductName
	}
	if u.Description != nil {
		record.Description = *u.Description
	}
	if u.ExpirationDate != nil {
		record.ExpirationDate = *u.ExpirationDate
	}
	return record
}

// Quantity is a stock count. Older values were written as numeric strings,
// so both forms are accepted on decode.
type Quantity int

// Int returns the quantity as an int
func (q Quantity) Int() int {
	return int(q)
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*q = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return err
		}
		raw = strings.TrimSpace(unquoted)
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return &ValidationError{Field: "quantity", Message: "not an integer: " + raw}
		}
		n = int(f)
	}
	*q = Quantity(n)
	return nil
}
