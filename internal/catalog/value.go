package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Kind discriminates the value variants a Hyper cell can take once it has
// been pulled through the driver.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindInteger
	KindFloat
	KindTimestamp
)

// Value is a tagged cell value with deterministic JSON rendering: null,
// string, number, or ISO-8601 string for temporal values.
type Value struct {
	kind    Kind
	text    string
	integer int64
	float   float64
	ts      time.Time
}

func Null() Value                 { return Value{kind: KindNull} }
func Text(s string) Value         { return Value{kind: KindText, text: s} }
func Integer(n int64) Value       { return Value{kind: KindInteger, integer: n} }
func Float(f float64) Value       { return Value{kind: KindFloat, float: f} }
func Timestamp(t time.Time) Value { return Value{kind: KindTimestamp, ts: t} }

func (v Value) Kind() Kind { return v.kind }

// Convert maps a raw driver value onto the variant. lib/pq hands back
// int64, float64, bool, []byte, string, time.Time or nil for Hyper's
// column types. Booleans have no variant of their own and render as text.
func Convert(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return Null()
	case int64:
		return Integer(x)
	case float64:
		return Float(x)
	case bool:
		return Text(strconv.FormatBool(x))
	case []byte:
		return Text(string(x))
	case string:
		return Text(x)
	case time.Time:
		return Timestamp(x)
	default:
		return Text(fmt.Sprintf("%v", x))
	}
}

// Display renders the value the way it appears in sample rows: everything
// but NULL becomes a string.
func (v Value) Display() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindText:
		return v.text
	case KindInteger:
		return strconv.FormatInt(v.integer, 10)
	case KindFloat:
		return strconv.FormatFloat(v.float, 'g', -1, 64)
	case KindTimestamp:
		return formatTimestamp(v.ts)
	}
	return ""
}

// AsSample collapses the value to the null-or-string form used by inspect
// sample rows.
func (v Value) AsSample() Value {
	if v.kind == KindNull {
		return v
	}
	return Text(v.Display())
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindText:
		return json.Marshal(v.text)
	case KindInteger:
		return json.Marshal(v.integer)
	case KindFloat:
		return json.Marshal(v.float)
	case KindTimestamp:
		return json.Marshal(formatTimestamp(v.ts))
	}
	return nil, fmt.Errorf("unknown value kind %d", v.kind)
}

// formatTimestamp renders ISO-8601. Hyper DATE columns come back as
// midnight timestamps; those render without the time part.
func formatTimestamp(t time.Time) string {
	if h, m, s := t.Clock(); h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02T15:04:05")
}
