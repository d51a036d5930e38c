// Package export reshapes full table contents of a Hyper file into
// JSON-friendly row mappings.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/nicolelily/hyper-files-inspector/internal/catalog"
)

// Mode selects how many rows leave each table.
type Mode struct {
	SampleOnly bool
	MaxRows    int // 0 = all rows; ignored when SampleOnly is set
}

func (m Mode) String() string {
	if m.SampleOnly {
		return "sample_only"
	}
	return "full_data"
}

func (m Mode) limit() int {
	if m.SampleOnly {
		return catalog.SampleRows
	}
	return m.MaxRows
}

// TableExport is one table's data in mapping-per-row form.
type TableExport struct {
	Schema       string                     `json:"schema"`
	Name         string                     `json:"name"`
	FullName     string                     `json:"full_name"`
	Type         string                     `json:"type"`
	Columns      []catalog.Column           `json:"columns"`
	TotalRows    int64                      `json:"total_rows"`
	ExportedRows int                        `json:"exported_rows"`
	Data         []map[string]catalog.Value `json:"data"`
}

// Result is the export command payload.
type Result struct {
	FilePath     string        `json:"file_path"`
	FileName     string        `json:"file_name"`
	FileSize     int64         `json:"file_size"`
	ExportType   string        `json:"export_type"`
	MaxRows      int           `json:"max_rows_per_table,omitempty"`
	Success      bool          `json:"success"`
	Schemas      []string      `json:"schemas"`
	Tables       []TableExport `json:"tables"`
	TotalTables  int           `json:"total_tables"`
	RowsExported int           `json:"total_rows_exported"`
}

// Exporter walks every table of the connected file and pulls its rows. A
// failing per-table query is logged and skipped so one broken table never
// sinks the rest of the export.
type Exporter struct {
	db     *sql.DB
	logger *zap.Logger

	// OnTable, when set, is called once per table before its data query
	// runs. Used for progress reporting.
	OnTable func(fullName string, index, total int)
}

type tableRef struct {
	schema string
	name   string
}

func NewExporter(db *sql.DB, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{db: db, logger: logger}
}

// Export pulls every non-system table through the connection, bounded by
// mode.
func (ex *Exporter) Export(ctx context.Context, path string, size int64, mode Mode) (*Result, error) {
	result := &Result{
		FilePath:   path,
		FileName:   filepath.Base(path),
		FileSize:   size,
		ExportType: mode.String(),
		MaxRows:    mode.MaxRows,
		Success:    true,
		Schemas:    []string{},
		Tables:     []TableExport{},
	}

	schemas, err := ex.listSchemas(ctx)
	if err != nil {
		return nil, err
	}
	result.Schemas = schemas

	var refs []tableRef
	for _, schema := range schemas {
		tables, err := ex.listTables(ctx, schema)
		if err != nil {
			return nil, err
		}
		for _, name := range tables {
			refs = append(refs, tableRef{schema: schema, name: name})
		}
	}

	for i, ref := range refs {
		if ex.OnTable != nil {
			ex.OnTable(catalog.QualifiedName(ref.schema, ref.name), i, len(refs))
		}
		table := ex.exportTable(ctx, ref.schema, ref.name, mode)
		result.RowsExported += table.ExportedRows
		result.Tables = append(result.Tables, table)
	}

	result.TotalTables = len(result.Tables)
	return result, nil
}

// listSchemas tries information_schema first and falls back to pg_tables.
// Fixed two-attempt sequence, no general retry.
func (ex *Exporter) listSchemas(ctx context.Context) ([]string, error) {
	schemas, err := ex.schemaNames(ctx, catalog.InfoSchemaSchemasQuery)
	if err == nil {
		return schemas, nil
	}
	ex.logger.Warn("information_schema query failed, falling back to pg_tables",
		zap.Error(err))

	schemas, err = ex.schemaNames(ctx, catalog.PgTablesSchemasQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query schemas: %w", err)
	}
	return schemas, nil
}

func (ex *Exporter) schemaNames(ctx context.Context, query string) ([]string, error) {
	rows, err := ex.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schemas := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		schemas = append(schemas, name)
	}
	return schemas, rows.Err()
}

func (ex *Exporter) listTables(ctx context.Context, schema string) ([]string, error) {
	rows, err := ex.db.QueryContext(ctx, catalog.TablesQuery(schema))
	if err != nil {
		return nil, fmt.Errorf("failed to query tables of %s: %w", schema, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (ex *Exporter) exportTable(ctx context.Context, schema, name string, mode Mode) TableExport {
	table := TableExport{
		Schema:   schema,
		Name:     name,
		FullName: catalog.QualifiedName(schema, name),
		Type:     "TABLE",
		Data:     []map[string]catalog.Value{},
	}

	columns, err := catalog.ListColumns(ctx, ex.db, schema, name)
	if err != nil {
		ex.logger.Warn("could not read columns", zap.String("table", table.FullName), zap.Error(err))
	}
	table.Columns = columns

	// Count failures default to 0 here; the export still carries whatever
	// rows the data query returns.
	if err := ex.db.QueryRowContext(ctx, catalog.CountQuery(schema, name)).Scan(&table.TotalRows); err != nil {
		ex.logger.Warn("could not count rows", zap.String("table", table.FullName), zap.Error(err))
		table.TotalRows = 0
	}

	data, err := ex.tableData(ctx, schema, name, columns, mode.limit())
	if err != nil {
		ex.logger.Warn("could not export data",
			zap.String("table", table.FullName),
			zap.Error(err))
		return table
	}
	table.Data = data
	table.ExportedRows = len(data)
	return table
}

func (ex *Exporter) tableData(ctx context.Context, schema, name string, columns []catalog.Column, limit int) ([]map[string]catalog.Value, error) {
	rows, err := ex.db.QueryContext(ctx, catalog.DataQuery(schema, name, limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	data := []map[string]catalog.Value{}
	for rows.Next() {
		values, err := catalog.ScanRow(rows)
		if err != nil {
			return nil, err
		}
		record := make(map[string]catalog.Value, len(values))
		for i, v := range values {
			record[columnName(columns, i)] = v
		}
		data = append(data, record)
	}
	return data, rows.Err()
}

// columnName resolves a positional value to its declared column name,
// falling back to an ordinal label if the column metadata was unavailable.
func columnName(columns []catalog.Column, i int) string {
	if i < len(columns) {
		return columns[i].Name
	}
	return fmt.Sprintf("column_%d", i+1)
}
