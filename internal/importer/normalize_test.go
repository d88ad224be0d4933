package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "european format", input: "25/12/2024", want: "2024-12-25"},
		{name: "iso format", input: "2024-12-25", want: "2024-12-25"},
		{name: "surrounding whitespace", input: " 01/03/2024 ", want: "2024-03-01"},
		{name: "ambiguous numeric rejected", input: "2024/25/12", wantErr: true},
		{name: "month out of range", input: "25/13/2024", wantErr: true},
		{name: "garbage", input: "bad-date", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
		})
	}
}

func TestParseDateBothLayoutsAgree(t *testing.T) {
	a, err := ParseDate("25/12/2024")
	require.NoError(t, err)
	b, err := ParseDate("2024-12-25")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("08:30")
	require.NoError(t, err)
	assert.Equal(t, 8, got.Hour())
	assert.Equal(t, 30, got.Minute())

	_, err = ParseClock("8h30")
	assert.Error(t, err)
	_, err = ParseClock("25:00")
	assert.Error(t, err)
}

func TestParseClockOrdering(t *testing.T) {
	in, err := ParseClock("08:00")
	require.NoError(t, err)
	out, err := ParseClock("17:00")
	require.NoError(t, err)
	assert.True(t, out.After(in))
	assert.Equal(t, 9*time.Hour, out.Sub(in))
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "plain integer", input: "8", want: 8},
		{name: "dot separator", input: "7.5", want: 7.5},
		{name: "comma separator", input: "7,5", want: 7.5},
		{name: "thousands comma with dot decimals", input: "1,250.75", want: 1250.75},
		{name: "euro symbol", input: "€12,50", want: 12.5},
		{name: "dollar symbol", input: "$ 9.99", want: 9.99},
		{name: "empty", input: "", wantErr: true},
		{name: "text", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimal(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
