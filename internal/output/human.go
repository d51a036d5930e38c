package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/nicolelily/hyper-files-inspector/internal/catalog"
	"github.com/nicolelily/hyper-files-inspector/internal/discover"
	"github.com/nicolelily/hyper-files-inspector/internal/export"
	"github.com/nicolelily/hyper-files-inspector/internal/sample"
)

// humanFormatter renders terminal-friendly summaries. Unknown result
// shapes fall back to JSON.
type humanFormatter struct{}

func (humanFormatter) Render(result any) (string, error) {
	switch r := result.(type) {
	case *catalog.InspectResult:
		return renderInspect(r), nil
	case *export.Result:
		return renderExport(r), nil
	case *discover.Result:
		return renderDiscover(r), nil
	case *sample.Result:
		return fmt.Sprintf("Created %s: schema %s, %d customers, %d orders",
			r.FilePath, r.Schema, r.Customers, r.Orders), nil
	case catalog.Failure:
		return "Error: " + r.Error, nil
	default:
		return jsonFormatter{}.Render(result)
	}
}

func renderInspect(r *catalog.InspectResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d bytes)\n", r.FilePath, r.FileSize)
	fmt.Fprintf(&b, "Schemas: %s\n", strings.Join(r.Schemas, ", "))
	fmt.Fprintf(&b, "Tables: %d, total rows: %d\n\n", r.TotalTables, r.TotalRows)

	table := tablewriter.NewWriter(&b)
	table.SetHeader([]string{"Table", "Columns", "Rows"})
	for _, t := range r.Tables {
		rows := "?"
		if t.RowCount.Known {
			rows = fmt.Sprintf("%d", t.RowCount.N)
		}
		table.Append([]string{t.FullName, fmt.Sprintf("%d", len(t.Columns)), rows})
	}
	table.Render()
	return strings.TrimRight(b.String(), "\n")
}

func renderExport(r *export.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", r.FilePath, r.ExportType)
	fmt.Fprintf(&b, "Tables: %d, rows exported: %d\n\n", r.TotalTables, r.RowsExported)

	table := tablewriter.NewWriter(&b)
	table.SetHeader([]string{"Table", "Total rows", "Exported"})
	for _, t := range r.Tables {
		table.Append([]string{t.FullName, fmt.Sprintf("%d", t.TotalRows), fmt.Sprintf("%d", t.ExportedRows)})
	}
	table.Render()
	return strings.TrimRight(b.String(), "\n")
}

func renderDiscover(r *discover.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d file(s)\n\n", r.Directory, r.FilesFound)

	table := tablewriter.NewWriter(&b)
	table.SetHeader([]string{"Path", "Size", "Modified"})
	for _, f := range r.Files {
		mod := time.Unix(int64(f.Modified), 0).UTC().Format(time.RFC3339)
		table.Append([]string{f.Path, fmt.Sprintf("%d", f.Size), mod})
	}
	table.Render()
	return strings.TrimRight(b.String(), "\n")
}
