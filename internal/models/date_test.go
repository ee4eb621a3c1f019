package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var e Expense
	err := json.Unmarshal([]byte(`{"date":"2025-09-04","endDate":"2025-10-01T10:47:00+00:00"}`), &e)
	require.NoError(t, err)
	require.NotNil(t, e.Date)
	require.NotNil(t, e.EndDate)
	assert.Equal(t, "2025-09-04", e.Date.String())
	assert.Equal(t, "2025-10-01", e.EndDate.String())
	assert.Nil(t, e.NextDueDate)

	out, err := json.Marshal(e.Date)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-09-04"`, string(out))
}

func TestDateUnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`12`), &d))
}

func TestDateScan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want string
	}{
		{"time", time.Date(2024, 2, 29, 23, 10, 0, 0, time.UTC), "2024-02-29"},
		{"string", "2024-03-01", "2024-03-01"},
		{"datetime text", "2024-03-01 00:00:00", "2024-03-01"},
		{"bytes", []byte("2023-12-31"), "2023-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(tt.src))
			assert.Equal(t, tt.want, d.String())
		})
	}

	var d Date
	assert.Error(t, d.Scan(42))
}

func TestDateOrdering(t *testing.T) {
	a, err := ParseDate("2025-01-01")
	require.NoError(t, err)
	b, err := ParseDate("2025-01-02")
	require.NoError(t, err)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.After(a))
}
