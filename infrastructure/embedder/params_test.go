package embedder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeParams(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
	}{
		{name: "nil", raw: nil, want: ""},
		{name: "string verbatim", raw: "start=5&end=9", want: "start=5&end=9"},
		{name: "known keys", raw: map[string]any{"start": float64(5), "controls": float64(0)}, want: "controls=0&start=5"},
		{name: "unknown keys appended", raw: map[string]any{"start": float64(5), "zeta": "z", "alpha": true}, want: "start=5&alpha=true&zeta=z"},
		{name: "only unknown", raw: map[string]any{"foo": "bar"}, want: "foo=bar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeParams(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeParams_Errors(t *testing.T) {
	_, err := EncodeParams(42)
	assert.Error(t, err)

	_, err = EncodeParams(map[string]any{"start": "soon"})
	assert.Error(t, err)
}
