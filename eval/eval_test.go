package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnv(t *testing.T) {
	env := NewEnv(1920, 1080, 1, 1)

	assert.Equal(t, 1920, env.W)
	assert.Equal(t, 1080, env.H)
	assert.Equal(t, 960, env.CW)
	assert.Equal(t, 540, env.CH)
	assert.Equal(t, 2, env.HSub)
	assert.Equal(t, 2, env.VSub)
}

func TestRadiusExpressions(t *testing.T) {
	env := NewEnv(640, 480, 1, 1)

	tests := []struct {
		name       string
		expression string
		want       int
	}{
		{name: "constant", expression: "2", want: 2},
		{name: "luma width", expression: "w/10", want: 64},
		{name: "luma height", expression: "h/10", want: 48},
		{name: "chroma width", expression: "cw/4", want: 80},
		{name: "chroma height", expression: "ch/4", want: 60},
		{name: "subsampling factors", expression: "hsub+vsub", want: 4},
		{name: "min of dimensions", expression: "min(w,h)/12", want: 40},
		{name: "truncates toward zero", expression: "w/7", want: 91},
		{name: "arithmetic", expression: "(w+h)/100", want: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Radius(tt.expression, env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRadiusErrors(t *testing.T) {
	env := NewEnv(640, 480, 0, 0)

	tests := []struct {
		name       string
		expression string
	}{
		{name: "empty", expression: ""},
		{name: "unknown variable", expression: "bogus*2"},
		{name: "syntax error", expression: "w +"},
		{name: "non numeric", expression: `"two"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Radius(tt.expression, env)
			assert.Error(t, err)
		})
	}
}

func TestRadiusNegativeResultPassesThrough(t *testing.T) {
	// Range validation belongs to the filter configuration, not the
	// evaluator: negative results must come back intact.
	got, err := Radius("0-3", NewEnv(100, 100, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, -3, got)
}
