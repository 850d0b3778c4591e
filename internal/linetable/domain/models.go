// Package domain contains the line-item table model.
package domain

import "github.com/bwmarrin/snowflake"

// BoundingBox locates an extracted value on the source document.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RowMeta carries per-row provenance and edit state.
type RowMeta struct {
	IsNew      bool         `json:"is_new"`
	IsEdited   bool         `json:"is_edited"`
	IsMapped   bool         `json:"is_mapped"`
	Confidence *float64     `json:"confidence,omitempty"`
	BBox       *BoundingBox `json:"bbox,omitempty"`
}

// LineItem is one invoice row. The tax split fields (CGST/SGST/IGST) and
// Amount are derived, written only by recalculation.
type LineItem struct {
	ID         snowflake.ID `json:"id"`
	LineNumber int          `json:"line_number"`

	ProductCode string  `json:"product_code"`
	Description string  `json:"description"`
	HSNCode     string  `json:"hsn_code"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Rate        float64 `json:"rate"`
	Discount    float64 `json:"discount"`
	TaxRate     float64 `json:"tax_rate"`

	CGST   float64 `json:"cgst"`
	SGST   float64 `json:"sgst"`
	IGST   float64 `json:"igst"`
	Cess   float64 `json:"cess"`
	Amount float64 `json:"amount"`

	Meta RowMeta `json:"meta"`
}

// RowPatch is a partial row update. Nil fields are left untouched.
type RowPatch struct {
	ProductCode *string  `json:"product_code,omitempty"`
	Description *string  `json:"description,omitempty"`
	HSNCode     *string  `json:"hsn_code,omitempty"`
	Unit        *string  `json:"unit,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	Rate        *float64 `json:"rate,omitempty"`
	Discount    *float64 `json:"discount,omitempty"`
	TaxRate     *float64 `json:"tax_rate,omitempty"`
	Cess        *float64 `json:"cess,omitempty"`
}

// Empty reports whether the patch touches no field.
func (p RowPatch) Empty() bool {
	return p.ProductCode == nil && p.Description == nil && p.HSNCode == nil &&
		p.Unit == nil && p.Quantity == nil && p.Rate == nil &&
		p.Discount == nil && p.TaxRate == nil && p.Cess == nil
}

// TouchesCalculation reports whether the patch changes a recalculation input.
func (p RowPatch) TouchesCalculation() bool {
	return p.Quantity != nil || p.Rate != nil || p.Discount != nil || p.TaxRate != nil
}

// ImportedLineItem is one raw record from the extraction service.
// Every field is optional; missing numerics fall back to documented defaults.
type ImportedLineItem struct {
	ProductCode *string  `json:"product_code,omitempty"`
	Description *string  `json:"description,omitempty"`
	HSNCode     *string  `json:"hsn_code,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	Unit        *string  `json:"unit,omitempty"`
	Rate        *float64 `json:"rate,omitempty"`
	Discount    *float64 `json:"discount,omitempty"`
	TaxRate     *float64 `json:"tax_rate,omitempty"`

	Confidence *float64     `json:"confidence,omitempty"`
	BBox       *BoundingBox `json:"bbox,omitempty"`
}

// TableSummary is a pure aggregation over the current row set.
type TableSummary struct {
	Subtotal      float64 `json:"subtotal"`
	TotalDiscount float64 `json:"total_discount"`
	TotalCGST     float64 `json:"total_cgst"`
	TotalSGST     float64 `json:"total_sgst"`
	TotalIGST     float64 `json:"total_igst"`
	TotalCess     float64 `json:"total_cess"`
	GrandTotal    float64 `json:"grand_total"`
}

// RowViolation is one pre-submit validation finding. Reported as data,
// never enforced on mutation.
type RowViolation struct {
	RowID   snowflake.ID `json:"row_id"`
	Field   string       `json:"field"`
	Message string       `json:"message"`
}
