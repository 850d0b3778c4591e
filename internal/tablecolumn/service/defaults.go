package service

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	columndomain "github.com/smallbiznis/gstdesk/internal/tablecolumn/domain"
)

// defaultColumns returns the built-in ten-column GST layout. Dropdown option
// lists come from the table options config so deployments can localize unit
// labels and tax slabs without a rebuild.
func defaultColumns(genID *snowflake.Node, opts SchemaOptions) []columndomain.ColumnDefinition {
	unitOptions := make([]columndomain.Option, 0, len(opts.Units))
	for _, unit := range opts.Units {
		unitOptions = append(unitOptions, columndomain.Option{Label: unit, Value: unit})
	}

	taxOptions := make([]columndomain.Option, 0, len(opts.TaxRates))
	for _, rate := range opts.TaxRates {
		value := fmt.Sprintf("%g", rate)
		taxOptions = append(taxOptions, columndomain.Option{Label: value + "%", Value: value})
	}

	columns := []columndomain.ColumnDefinition{
		{
			FieldName: "line_number",
			Header:    "Sr No.",
			FieldType: columndomain.FieldTypeNumber,
			Visible:   true,
			Editable:  false,
			Width:     "80px",
			Align:     "center",
		},
		{
			FieldName: "product_code",
			Header:    "Product Code",
			FieldType: columndomain.FieldTypeText,
			Visible:   true,
			Editable:  true,
			Mappable:  true,
			Width:     "150px",
			Align:     "left",
		},
		{
			FieldName: "description",
			Header:    "Description of Goods",
			FieldType: columndomain.FieldTypeTextarea,
			Visible:   true,
			Editable:  true,
			Required:  true,
			Mappable:  true,
			Width:     "250px",
			Align:     "left",
		},
		{
			FieldName: "quantity",
			Header:    "Quantity",
			FieldType: columndomain.FieldTypeNumber,
			Visible:   true,
			Editable:  true,
			Required:  true,
			Mappable:  true,
			Width:     "100px",
			Align:     "right",
		},
		{
			FieldName: "unit",
			Header:    "Per",
			FieldType: columndomain.FieldTypeDropdown,
			Visible:   true,
			Editable:  true,
			Mappable:  true,
			Options:   unitOptions,
			Width:     "100px",
			Align:     "center",
		},
		{
			FieldName: "rate",
			Header:    "Rate",
			FieldType: columndomain.FieldTypeNumber,
			Visible:   true,
			Editable:  true,
			Required:  true,
			Mappable:  true,
			Width:     "120px",
			Align:     "right",
		},
		{
			FieldName:    "amount_excl_tax",
			Header:       "Amount Excl. Tax",
			FieldType:    columndomain.FieldTypeCalculated,
			Visible:      true,
			Editable:     false,
			Mappable:     true,
			Formula:      columndomain.FormulaLineSubtotal,
			Dependencies: columndomain.FormulaLineSubtotal.Dependencies(),
			Width:        "140px",
			Align:        "right",
		},
		{
			FieldName: "tax_rate",
			Header:    "GST %",
			FieldType: columndomain.FieldTypeDropdown,
			Visible:   true,
			Editable:  true,
			Mappable:  true,
			Options:   taxOptions,
			Width:     "100px",
			Align:     "center",
		},
		{
			FieldName:    "tax_amount",
			Header:       "Tax Amount",
			FieldType:    columndomain.FieldTypeCalculated,
			Visible:      true,
			Editable:     false,
			Mappable:     true,
			Formula:      columndomain.FormulaLineTax,
			Dependencies: columndomain.FormulaLineTax.Dependencies(),
			Width:        "120px",
			Align:        "right",
		},
		{
			FieldName:    "amount_incl_tax",
			Header:       "Amount Incl. Tax",
			FieldType:    columndomain.FieldTypeCalculated,
			Visible:      true,
			Editable:     false,
			Mappable:     true,
			Formula:      columndomain.FormulaLineTotal,
			Dependencies: columndomain.FormulaLineTotal.Dependencies(),
			Width:        "140px",
			Align:        "right",
		},
	}

	for i := range columns {
		columns[i].ID = genID.Generate()
		columns[i].Order = i + 1
	}
	return columns
}
