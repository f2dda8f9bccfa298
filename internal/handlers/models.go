package handlers

import (
	"frigo-service/internal/domain"
	"frigo-service/internal/freshness"
	"frigo-service/internal/repository"
)

// SuccessResponse represents a success response
// @Description Success response with message
type SuccessResponse struct {
	Message string `json:"message" example:"record deleted successfully"`
}

// RecordRequest is the body for creating or replacing a record.
// An empty id creates a manual entry.
// @Description Record to store, keyed by barcode
type RecordRequest struct {
	// Barcode, or empty for a product entered by hand
	ID             string `json:"id" example:"3017620422003"`
	ProductName    string `json:"product_name" example:"Nutella"`
	Description    string `json:"description" example:"Pâte à tartiner"`
	ImageURL       string `json:"image_url,omitempty" example:"https://images.openfoodfacts.org/images/products/301/762/042/2003/front_fr.jpg"`
	Brands         string `json:"brands,omitempty" example:"Ferrero"`
	Quantity       int    `json:"quantity" example:"1"`
	ExpirationDate string `json:"expiration_date,omitempty" example:"2024-05-01"`
}

func (r RecordRequest) toDomain() *domain.InventoryRecord {
	return &domain.InventoryRecord{
		ID:             r.ID,
		ProductName:    r.ProductName,
		Description:    r.Description,
		ImageURL:       r.ImageURL,
		Brands:         r.Brands,
		Quantity:       domain.Quantity(r.Quantity),
		ExpirationDate: r.ExpirationDate,
	}
}

// UpdateFieldsRequest edits a record in place. Omitted fields are kept and
// an empty expiration_date clears the date.
// @Description Partial update of the editable fields
type UpdateFieldsRequest struct {
	ProductName    *string `json:"product_name" example:"Lait entier"`
	Description    *string `json:"description" example:"Bouteille entamée"`
	ExpirationDate *string `json:"expiration_date" example:"2024-05-03"`
}

func (r UpdateFieldsRequest) toDomain() domain.FieldUpdate {
	return domain.FieldUpdate{
		ProductName:    r.ProductName,
		Description:    r.Description,
		ExpirationDate: r.ExpirationDate,
	}
}

// UpdateQuantityRequest sets an absolute quantity
// @Description New quantity; zero or less deletes the record
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required" example:"2"`
}

// RecordResponse is a stored record with its freshness derived at read time
// @Description Inventory record with freshness
type RecordResponse struct {
	ID                  string `json:"id" example:"3017620422003"`
	ProductName         string `json:"product_name" example:"Nutella"`
	Description         string `json:"description" example:""`
	ImageURL            string `json:"image_url,omitempty"`
	Brands              string `json:"brands,omitempty" example:"Ferrero"`
	Quantity            int    `json:"quantity" example:"1"`
	ExpirationDate      string `json:"expiration_date,omitempty" example:"2024-05-01"`
	Manual              bool   `json:"manual" example:"false"`
	DaysUntilExpiration *int   `json:"days_until_expiration,omitempty" example:"5"`
	UrgencyColor        string `json:"urgency_color,omitempty" example:"orange"`
	Expired             bool   `json:"expired,omitempty"`
}

// ListRecordsResponse lists every readable record in storage order
// @Description All records plus entries that could not be read
type ListRecordsResponse struct {
	Records []RecordResponse           `json:"records"`
	Skipped []repository.SkippedRecord `json:"skipped"`
	Total   int                        `json:"total" example:"2"`
}

// ExpiringResponse is the freshness-ranked view
// @Description Records sorted by days until expiration
type ExpiringResponse struct {
	Records []RecordResponse `json:"records"`
	Total   int              `json:"total" example:"2"`
	Today   string           `json:"today" example:"2024-04-26"`
}

// SummaryResponse counts records per urgency
// @Description Freshness summary for the home screen
type SummaryResponse struct {
	freshness.Summary
	Today string `json:"today" example:"2024-04-26"`
}

// QuantityResponse is the outcome of a quantity update
// @Description Updated record, or deleted=true when the record was removed
type QuantityResponse struct {
	ID       string          `json:"id" example:"3017620422003"`
	Quantity int             `json:"quantity" example:"2"`
	Deleted  bool            `json:"deleted" example:"false"`
	Record   *RecordResponse `json:"record,omitempty"`
}

// ScanResponse is the result of scanning a barcode. Either Draft is
// prefilled from the product database, or ManualEntry is set with the reason
// the lookup failed.
// @Description Prefilled draft or manual-entry variant
type ScanResponse struct {
	Barcode     string          `json:"barcode" example:"3017620422003"`
	Found       bool            `json:"found" example:"true"`
	ManualEntry bool            `json:"manual_entry" example:"false"`
	Reason      string          `json:"reason,omitempty" example:"not_found"`
	Draft       RecordRequest   `json:"draft"`
	Existing    *RecordResponse `json:"existing,omitempty"`
}

func newRecordResponse(record domain.InventoryRecord) RecordResponse {
	return RecordResponse{
		ID:             record.ID,
		ProductName:    record.ProductName,
		Description:    record.Description,
		ImageURL:       record.ImageURL,
		Brands:         record.Brands,
		Quantity:       record.Quantity.Int(),
		ExpirationDate: record.ExpirationDate,
		Manual:         record.IsManual(),
	}
}

func newRankedResponse(ranked freshness.RankedRecord) RecordResponse {
	resp := newRecordResponse(ranked.Record)
	days := ranked.DaysUntilExpiration
	resp.DaysUntilExpiration = &days
	resp.UrgencyColor = string(ranked.UrgencyColor)
	resp.Expired = ranked.Expired
	return resp
}
