package catalog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	assert.Equal(t, KindNull, Convert(nil).Kind())
	assert.Equal(t, KindInteger, Convert(int64(42)).Kind())
	assert.Equal(t, KindFloat, Convert(3.14).Kind())
	assert.Equal(t, KindText, Convert("hello").Kind())
	assert.Equal(t, KindText, Convert([]byte("raw")).Kind())
	assert.Equal(t, KindText, Convert(true).Kind())
	assert.Equal(t, KindTimestamp, Convert(time.Now()).Kind())
}

func TestValueMarshalJSON(t *testing.T) {
	cases := []struct {
		name  string
		value Value
		want  string
	}{
		{"null", Null(), `null`},
		{"text", Text("Alice Johnson"), `"Alice Johnson"`},
		{"integer", Integer(42), `42`},
		{"float", Float(25.99), `25.99`},
		{"date", Timestamp(time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)), `"2023-01-15"`},
		{"datetime", Timestamp(time.Date(2023, 3, 1, 14, 30, 5, 0, time.UTC)), `"2023-03-01T14:30:05"`},
		{"bool as text", Convert(true), `"true"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(data))
		})
	}
}

func TestValueDisplay(t *testing.T) {
	assert.Equal(t, "42", Integer(42).Display())
	assert.Equal(t, "25.99", Float(25.99).Display())
	assert.Equal(t, "hello", Text("hello").Display())
	assert.Equal(t, "2023-01-15", Timestamp(time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)).Display())
	assert.Equal(t, "", Null().Display())
}

func TestAsSample(t *testing.T) {
	// Sample rows carry only null or string values.
	assert.Equal(t, KindNull, Null().AsSample().Kind())
	assert.Equal(t, KindText, Integer(42).AsSample().Kind())
	assert.Equal(t, KindText, Float(1.5).AsSample().Kind())
	assert.Equal(t, KindText, Timestamp(time.Now()).AsSample().Kind())

	data, err := json.Marshal(Integer(42).AsSample())
	require.NoError(t, err)
	assert.Equal(t, `"42"`, string(data))
}

func TestRowCountMarshalJSON(t *testing.T) {
	known, err := json.Marshal(KnownRows(8))
	require.NoError(t, err)
	assert.Equal(t, `8`, string(known))

	unknown, err := json.Marshal(RowCount{})
	require.NoError(t, err)
	assert.Equal(t, `"unable to determine"`, string(unknown))
}
