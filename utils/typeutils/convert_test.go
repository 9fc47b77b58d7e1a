package typeutils

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		input   any
		want    int64
		wantErr bool
	}{
		{input: 42, want: 42},
		{input: float64(7), want: 7},
		{input: "12", want: 12},
		{input: json.Number("9007199254740993"), want: 9007199254740993},
		{input: json.Number("7.0"), want: 7},
		{input: json.Number("7.5"), wantErr: true},
		{input: true, want: 1},
		{input: 1.5, wantErr: true},
		{input: "abc", wantErr: true},
		{input: []int{1}, wantErr: true},
	}

	for _, tt := range tests {
		got, err := ToInt64(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %v", tt.input)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestToFloat64AndBool(t *testing.T) {
	f, err := ToFloat64("2.5")
	assert.NoError(t, err)
	assert.Equal(t, 2.5, f)

	b, err := ToBool("true")
	assert.NoError(t, err)
	assert.True(t, b)

	b, err = ToBool(float64(0))
	assert.NoError(t, err)
	assert.False(t, b)

	f, err = ToFloat64(json.Number("0.125"))
	assert.NoError(t, err)
	assert.Equal(t, 0.125, f)

	b, err = ToBool(json.Number("1"))
	assert.NoError(t, err)
	assert.True(t, b)

	_, err = ToBool(map[string]any{})
	assert.Error(t, err)
}

func TestToString(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		input any
		want  string
	}{
		{input: "x", want: "x"},
		{input: float64(3), want: "3"},
		{input: 1.25, want: "1.25"},
		{input: int64(9), want: "9"},
		{input: json.Number("9007199254740993"), want: "9007199254740993"},
		{input: false, want: "false"},
		{input: ts, want: "2024-01-02T03:04:05Z"},
		{input: []any{"a", float64(1)}, want: `["a",1]`},
	}

	for _, tt := range tests {
		got, err := ToString(tt.input)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
