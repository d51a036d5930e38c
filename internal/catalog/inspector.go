package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// SampleRows is how many rows inspect pulls from each table.
const SampleRows = 5

// Inspector reads catalog metadata and sample rows out of an open Hyper
// connection. It issues one query sequence per call and keeps no state
// between calls.
type Inspector struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewInspector(db *sql.DB, logger *zap.Logger) *Inspector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inspector{db: db, logger: logger}
}

// Inspect returns the full metadata payload for the connected file:
// non-system schemas, their tables with columns, row counts and up to
// SampleRows sample rows each. A failing count or sample query downgrades
// to a warning; only catalog-level failures abort.
func (in *Inspector) Inspect(ctx context.Context, path string, size int64) (*InspectResult, error) {
	result := &InspectResult{
		FilePath: path,
		FileName: filepath.Base(path),
		FileSize: size,
		Success:  true,
		Schemas:  []string{},
		Tables:   []Table{},
	}

	schemas, err := in.listSchemas(ctx)
	if err != nil {
		return nil, err
	}
	result.Schemas = schemas

	for _, schema := range schemas {
		tables, err := in.listTables(ctx, schema)
		if err != nil {
			return nil, err
		}

		for _, name := range tables {
			table, err := in.describeTable(ctx, schema, name)
			if err != nil {
				return nil, err
			}
			if table.RowCount.Known {
				result.TotalRows += table.RowCount.N
			}
			result.Tables = append(result.Tables, *table)
		}
	}

	result.TotalTables = len(result.Tables)
	return result, nil
}

func (in *Inspector) listSchemas(ctx context.Context) ([]string, error) {
	rows, err := in.db.QueryContext(ctx, NamespaceSchemasQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query schemas: %w", err)
	}
	defer rows.Close()

	schemas := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan schema name: %w", err)
		}
		schemas = append(schemas, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schemas: %w", err)
	}
	return schemas, nil
}

func (in *Inspector) listTables(ctx context.Context, schema string) ([]string, error) {
	rows, err := in.db.QueryContext(ctx, TablesQuery(schema))
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}
	return names, nil
}

func (in *Inspector) describeTable(ctx context.Context, schema, name string) (*Table, error) {
	table := &Table{
		Schema:     schema,
		Name:       name,
		FullName:   QualifiedName(schema, name),
		Type:       "TABLE",
		SampleData: [][]Value{},
	}

	columns, err := ListColumns(ctx, in.db, schema, name)
	if err != nil {
		return nil, err
	}
	table.Columns = columns

	var count int64
	if err := in.db.QueryRowContext(ctx, CountQuery(schema, name)).Scan(&count); err != nil {
		in.logger.Warn("could not count rows",
			zap.String("table", table.FullName),
			zap.Error(err))
		table.RowCount = RowCount{} // marshals as "unable to determine"
	} else {
		table.RowCount = KnownRows(count)
	}

	sample, err := in.sampleRows(ctx, schema, name)
	if err != nil {
		in.logger.Warn("could not retrieve sample data",
			zap.String("table", table.FullName),
			zap.Error(err))
	} else {
		table.SampleData = sample
	}

	return table, nil
}

func (in *Inspector) sampleRows(ctx context.Context, schema, name string) ([][]Value, error) {
	rows, err := in.db.QueryContext(ctx, DataQuery(schema, name, SampleRows))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sample := [][]Value{}
	for rows.Next() {
		values, err := ScanRow(rows)
		if err != nil {
			return nil, err
		}
		for i := range values {
			values[i] = values[i].AsSample()
		}
		sample = append(sample, values)
	}
	return sample, rows.Err()
}

// ListColumns reads the column definitions of one table in declaration
// order. Shared by inspect and export.
func ListColumns(ctx context.Context, db *sql.DB, schema, table string) ([]Column, error) {
	rows, err := db.QueryContext(ctx, ColumnsQuery(schema, table))
	if err != nil {
		return nil, fmt.Errorf("failed to query columns of %s: %w", QualifiedName(schema, table), err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var name, typ, nullable string
		var def sql.NullString
		if err := rows.Scan(&name, &typ, &nullable, &def); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		col := Column{Name: name, Type: typ, Nullable: nullable == "YES"}
		if def.Valid {
			col.Default = &def.String
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}
	return columns, nil
}

// ScanRow pulls one result row into tagged values, preserving column
// order.
func ScanRow(rows *sql.Rows) ([]Value, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	raw := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}
	values := make([]Value, len(cols))
	for i, v := range raw {
		values[i] = Convert(v)
	}
	return values, nil
}
