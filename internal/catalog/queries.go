package catalog

import (
	"fmt"
	"strings"
)

// Catalog SQL against the Hyper engine. The engine exposes a
// Postgres-flavored catalog, so introspection runs through pg_catalog and
// information_schema views.
//
// inspect and export deliberately list schemas through different views
// (pg_namespace vs information_schema.tables with a pg_tables fallback);
// the engine has historically answered one when the other was unavailable,
// so both strategies are kept.

// NamespaceSchemasQuery lists schemas from pg_namespace, used by inspect.
const NamespaceSchemasQuery = `SELECT nspname AS schema_name FROM pg_namespace WHERE nspname NOT IN ('information_schema', 'pg_catalog', 'pg_toast', 'pg_temp_1', 'pg_toast_temp_1')`

// InfoSchemaSchemasQuery lists schemas from information_schema, used by
// export as the primary strategy.
const InfoSchemaSchemasQuery = `SELECT table_schema AS schema_name FROM information_schema.tables WHERE table_schema NOT IN ('information_schema', 'pg_catalog', 'pg_temp', 'tableau') GROUP BY table_schema`

// PgTablesSchemasQuery is export's fallback when information_schema is not
// answerable.
const PgTablesSchemasQuery = `SELECT schemaname AS schema_name FROM pg_tables WHERE schemaname NOT IN ('information_schema', 'pg_catalog', 'pg_temp', 'tableau') GROUP BY schemaname`

// TablesQuery lists the tables of one schema.
func TablesQuery(schema string) string {
	return fmt.Sprintf(`SELECT tablename AS table_name, 'TABLE' AS table_type FROM pg_tables WHERE schemaname = %s`, QuoteLiteral(schema))
}

// ColumnsQuery lists the columns of one table in declaration order,
// skipping dropped attributes.
func ColumnsQuery(schema, table string) string {
	return fmt.Sprintf(`SELECT a.attname AS column_name, pg_catalog.format_type(a.atttypid, a.atttypmod) AS data_type, CASE WHEN a.attnotnull THEN 'NO' ELSE 'YES' END AS is_nullable, NULL AS column_default FROM pg_attribute a WHERE a.attrelid = %s::regclass AND a.attnum > 0 AND NOT a.attisdropped ORDER BY a.attnum`, QuoteLiteral(QualifiedName(schema, table)))
}

// CountQuery counts the rows of one table.
func CountQuery(schema, table string) string {
	return fmt.Sprintf(`SELECT COUNT(*) FROM %s`, QualifiedName(schema, table))
}

// DataQuery selects all columns of one table, optionally LIMIT-bounded.
// limit <= 0 means unbounded.
func DataQuery(schema, table string, limit int) string {
	q := fmt.Sprintf(`SELECT * FROM %s`, QualifiedName(schema, table))
	if limit > 0 {
		q = fmt.Sprintf("%s LIMIT %d", q, limit)
	}
	return q
}

// QualifiedName renders `"schema"."table"` with embedded quotes doubled.
func QualifiedName(schema, table string) string {
	return fmt.Sprintf("%s.%s", QuoteIdent(schema), QuoteIdent(table))
}

// QuoteIdent double-quotes an identifier.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QuoteLiteral single-quotes a string literal.
func QuoteLiteral(s string) string {
	return `'` + strings.ReplaceAll(s, `'`, `''`) + `'`
}
