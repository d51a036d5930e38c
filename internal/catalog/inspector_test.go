package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicolelily/hyper-files-inspector/internal/catalog"
)

func newMock(t *testing.T) (sqlmock.Sqlmock, *catalog.Inspector) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return mock, catalog.NewInspector(db, nil)
}

func columnRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "column_default"}).
		AddRow("customer_id", "bigint", "NO", nil).
		AddRow("name", "text", "NO", nil).
		AddRow("signup_date", "date", "YES", nil)
}

func TestInspectSingleTable(t *testing.T) {
	mock, inspector := newMock(t)

	mock.ExpectQuery(catalog.NamespaceSchemasQuery).
		WillReturnRows(sqlmock.NewRows([]string{"schema_name"}).AddRow("SampleDB"))
	mock.ExpectQuery(catalog.TablesQuery("SampleDB")).
		WillReturnRows(sqlmock.NewRows([]string{"table_name", "table_type"}).AddRow("Customers", "TABLE"))
	mock.ExpectQuery(catalog.ColumnsQuery("SampleDB", "Customers")).
		WillReturnRows(columnRows())
	mock.ExpectQuery(catalog.CountQuery("SampleDB", "Customers")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(catalog.DataQuery("SampleDB", "Customers", catalog.SampleRows)).
		WillReturnRows(sqlmock.NewRows([]string{"customer_id", "name", "signup_date"}).
			AddRow(int64(1), "Alice Johnson", time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)).
			AddRow(int64(2), "Bob Smith", nil))

	result, err := inspector.Inspect(context.Background(), "/data/sample.hyper", 2048)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.True(t, result.Success)
	assert.Equal(t, "/data/sample.hyper", result.FilePath)
	assert.Equal(t, "sample.hyper", result.FileName)
	assert.Equal(t, int64(2048), result.FileSize)
	assert.Equal(t, []string{"SampleDB"}, result.Schemas)
	assert.Equal(t, 1, result.TotalTables)
	assert.Len(t, result.Tables, result.TotalTables)
	assert.Equal(t, int64(5), result.TotalRows)

	table := result.Tables[0]
	assert.Equal(t, `"SampleDB"."Customers"`, table.FullName)
	assert.Equal(t, "TABLE", table.Type)
	require.Len(t, table.Columns, 3)
	assert.Equal(t, "customer_id", table.Columns[0].Name)
	assert.Equal(t, "bigint", table.Columns[0].Type)
	assert.False(t, table.Columns[0].Nullable)
	assert.True(t, table.Columns[2].Nullable)

	require.Len(t, table.SampleData, 2)
	assert.LessOrEqual(t, len(table.SampleData), catalog.SampleRows)

	// Sample values are null-or-string, with dates in ISO form.
	row, err := json.Marshal(table.SampleData[0])
	require.NoError(t, err)
	assert.Equal(t, `["1","Alice Johnson","2023-01-15"]`, string(row))

	row, err = json.Marshal(table.SampleData[1])
	require.NoError(t, err)
	assert.Equal(t, `["2","Bob Smith",null]`, string(row))
}

func TestInspectTotalRowsAcrossTables(t *testing.T) {
	mock, inspector := newMock(t)

	mock.ExpectQuery(catalog.NamespaceSchemasQuery).
		WillReturnRows(sqlmock.NewRows([]string{"schema_name"}).AddRow("SampleDB"))
	mock.ExpectQuery(catalog.TablesQuery("SampleDB")).
		WillReturnRows(sqlmock.NewRows([]string{"table_name", "table_type"}).
			AddRow("Customers", "TABLE").
			AddRow("Orders", "TABLE"))

	mock.ExpectQuery(catalog.ColumnsQuery("SampleDB", "Customers")).WillReturnRows(columnRows())
	mock.ExpectQuery(catalog.CountQuery("SampleDB", "Customers")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(catalog.DataQuery("SampleDB", "Customers", catalog.SampleRows)).
		WillReturnRows(sqlmock.NewRows([]string{"customer_id", "name", "signup_date"}))

	mock.ExpectQuery(catalog.ColumnsQuery("SampleDB", "Orders")).WillReturnRows(columnRows())
	mock.ExpectQuery(catalog.CountQuery("SampleDB", "Orders")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(8))
	mock.ExpectQuery(catalog.DataQuery("SampleDB", "Orders", catalog.SampleRows)).
		WillReturnRows(sqlmock.NewRows([]string{"customer_id", "name", "signup_date"}))

	result, err := inspector.Inspect(context.Background(), "sample.hyper", 1)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, 2, result.TotalTables)
	assert.Equal(t, int64(13), result.TotalRows)
}

func TestInspectCountFailureIsWarning(t *testing.T) {
	mock, inspector := newMock(t)

	mock.ExpectQuery(catalog.NamespaceSchemasQuery).
		WillReturnRows(sqlmock.NewRows([]string{"schema_name"}).AddRow("Extract"))
	mock.ExpectQuery(catalog.TablesQuery("Extract")).
		WillReturnRows(sqlmock.NewRows([]string{"table_name", "table_type"}).AddRow("Extract", "TABLE"))
	mock.ExpectQuery(catalog.ColumnsQuery("Extract", "Extract")).WillReturnRows(columnRows())
	mock.ExpectQuery(catalog.CountQuery("Extract", "Extract")).
		WillReturnError(errors.New("count unsupported"))
	mock.ExpectQuery(catalog.DataQuery("Extract", "Extract", catalog.SampleRows)).
		WillReturnError(errors.New("scan failed"))

	result, err := inspector.Inspect(context.Background(), "broken.hyper", 1)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.True(t, result.Success)
	require.Len(t, result.Tables, 1)
	assert.False(t, result.Tables[0].RowCount.Known)
	assert.Empty(t, result.Tables[0].SampleData)
	assert.Equal(t, int64(0), result.TotalRows)

	data, err := json.Marshal(result.Tables[0].RowCount)
	require.NoError(t, err)
	assert.Equal(t, `"unable to determine"`, string(data))
}

func TestInspectSchemaQueryFailureAborts(t *testing.T) {
	mock, inspector := newMock(t)

	mock.ExpectQuery(catalog.NamespaceSchemasQuery).
		WillReturnError(errors.New("catalog unavailable"))

	_, err := inspector.Inspect(context.Background(), "sample.hyper", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query schemas")
}
