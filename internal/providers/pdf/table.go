package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	linetabledomain "github.com/smallbiznis/gstdesk/internal/linetable/domain"
	columndomain "github.com/smallbiznis/gstdesk/internal/tablecolumn/domain"
)

const gridWidth = 12

type TableProvider struct{}

func New() Provider {
	return &TableProvider{}
}

func (p *TableProvider) GenerateTable(ctx context.Context, data TableExport) (io.Reader, error) {
	if len(data.Columns) == 0 {
		return nil, fmt.Errorf("table export requires at least one visible column")
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	title := data.Title
	if title == "" {
		title = "Line Items"
	}
	m.AddRow(12,
		text.NewCol(gridWidth, title, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	taxMode := "CGST + SGST (intra-state)"
	if data.InterState {
		taxMode = "IGST (inter-state)"
	}
	m.AddRow(8,
		text.NewCol(gridWidth, "Tax split: "+taxMode, props.Text{Size: 9}),
	)

	widths := columnWidths(len(data.Columns))

	header := make([]core.Col, 0, len(data.Columns))
	for i, column := range data.Columns {
		header = append(header, text.NewCol(widths[i], column.Header, props.Text{
			Style: fontstyle.Bold,
			Size:  8,
			Align: cellAlign(column),
		}))
	}
	m.AddRow(8, header...)

	for _, row := range data.Rows {
		cells := make([]core.Col, 0, len(data.Columns))
		for i, column := range data.Columns {
			cells = append(cells, text.NewCol(widths[i], cellValue(row, column), props.Text{
				Size:  8,
				Align: cellAlign(column),
			}))
		}
		m.AddRow(7, cells...)
	}

	addSummaryRow(m, "Subtotal", data.Summary.Subtotal, false)
	if data.Summary.TotalDiscount != 0 {
		addSummaryRow(m, "Total Discount", data.Summary.TotalDiscount, false)
	}
	if data.InterState {
		addSummaryRow(m, "IGST", data.Summary.TotalIGST, false)
	} else {
		addSummaryRow(m, "CGST", data.Summary.TotalCGST, false)
		addSummaryRow(m, "SGST", data.Summary.TotalSGST, false)
	}
	if data.Summary.TotalCess != 0 {
		addSummaryRow(m, "Cess", data.Summary.TotalCess, false)
	}
	addSummaryRow(m, "Grand Total", data.Summary.GrandTotal, true)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

func addSummaryRow(m core.Maroto, label string, value float64, bold bool) {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	m.AddRow(7,
		col.New(8),
		text.NewCol(2, label, props.Text{Size: 9, Style: style}),
		text.NewCol(2, formatAmount(value), props.Text{Size: 9, Style: style, Align: align.Right}),
	)
}

// columnWidths distributes the 12-unit grid across the visible columns,
// giving leftover units to the leading columns.
func columnWidths(count int) []int {
	widths := make([]int, count)
	base := gridWidth / count
	if base < 1 {
		base = 1
	}
	rest := gridWidth - base*count
	for i := range widths {
		widths[i] = base
		if rest > 0 {
			widths[i]++
			rest--
		}
	}
	return widths
}

func cellAlign(column columndomain.ColumnDefinition) align.Type {
	switch column.Align {
	case "right":
		return align.Right
	case "center":
		return align.Center
	default:
		return align.Left
	}
}

func cellValue(row linetabledomain.LineItem, column columndomain.ColumnDefinition) string {
	if column.FieldType == columndomain.FieldTypeCalculated {
		return formatAmount(column.Formula.Eval(row.Quantity, row.Rate, row.Discount, row.TaxRate))
	}

	switch column.FieldName {
	case "line_number":
		return strconv.Itoa(row.LineNumber)
	case "product_code":
		return row.ProductCode
	case "description":
		return row.Description
	case "hsn_code":
		return row.HSNCode
	case "quantity":
		return formatQuantity(row.Quantity)
	case "unit":
		return row.Unit
	case "rate":
		return formatAmount(row.Rate)
	case "discount":
		return formatAmount(row.Discount)
	case "tax_rate":
		return formatQuantity(row.TaxRate) + "%"
	case "cess":
		return formatAmount(row.Cess)
	default:
		return ""
	}
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func formatQuantity(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
