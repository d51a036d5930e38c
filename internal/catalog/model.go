package catalog

import "encoding/json"

// Column mirrors one pg_attribute row. Default is always absent in Hyper
// files but kept in the payload for shape stability.
type Column struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Nullable bool    `json:"nullable"`
	Default  *string `json:"default"`
}

// RowCount distinguishes a counted table from one whose COUNT(*) query
// failed. Unknown counts marshal as a fixed string so the payload stays
// readable without a second field.
type RowCount struct {
	Known bool
	N     int64
}

func KnownRows(n int64) RowCount { return RowCount{Known: true, N: n} }

func (c RowCount) MarshalJSON() ([]byte, error) {
	if !c.Known {
		return json.Marshal("unable to determine")
	}
	return json.Marshal(c.N)
}

// Table is one inspected table with its sample rows.
type Table struct {
	Schema     string    `json:"schema"`
	Name       string    `json:"name"`
	FullName   string    `json:"full_name"`
	Type       string    `json:"type"`
	Columns    []Column  `json:"columns"`
	RowCount   RowCount  `json:"row_count"`
	SampleData [][]Value `json:"sample_data"`
}

// InspectResult is the inspect command payload.
type InspectResult struct {
	FilePath    string   `json:"file_path"`
	FileName    string   `json:"file_name"`
	FileSize    int64    `json:"file_size"`
	Success     bool     `json:"success"`
	Schemas     []string `json:"schemas"`
	Tables      []Table  `json:"tables"`
	TotalTables int      `json:"total_tables"`
	TotalRows   int64    `json:"total_rows"`
}

// Failure is the uniform error payload every command falls back to.
type Failure struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
	Path    string `json:"file_path,omitempty"`
}

func Fail(err error) Failure {
	return Failure{Error: err.Error()}
}

func FailPath(err error, path string) Failure {
	return Failure{Error: err.Error(), Path: path}
}
