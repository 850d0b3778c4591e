package pdf

import (
	"context"
	"io"

	linetabledomain "github.com/smallbiznis/gstdesk/internal/linetable/domain"
	columndomain "github.com/smallbiznis/gstdesk/internal/tablecolumn/domain"
)

// TableExport is everything needed to render one line-item table.
type TableExport struct {
	Title      string
	InterState bool
	Columns    []columndomain.ColumnDefinition
	Rows       []linetabledomain.LineItem
	Summary    linetabledomain.TableSummary
}

type Provider interface {
	GenerateTable(ctx context.Context, data TableExport) (io.Reader, error)
}
