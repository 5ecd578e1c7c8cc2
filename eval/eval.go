// Package eval resolves per-component radius expressions.
//
// A radius expression is evaluated over the frame geometry variables
// w, h (luma dimensions), cw, ch (chroma dimensions) and hsub, vsub
// (chroma subsampling factors), yielding the final integer radius the
// blur engine consumes. Expressions such as "min(w,h)/10" or "cw/4"
// let one filter configuration scale with the stream resolution.
package eval

import (
	"fmt"
	"math"

	"github.com/expr-lang/expr"
)

// Env carries the frame geometry variables an expression may reference.
type Env struct {
	W    int // luma plane width
	H    int // luma plane height
	CW   int // chroma plane width
	CH   int // chroma plane height
	HSub int // horizontal chroma subsampling factor (1, 2 or 4)
	VSub int // vertical chroma subsampling factor (1, 2 or 4)
}

// NewEnv builds the variable environment for a frame of the given luma
// dimensions and base-2 logarithmic subsampling factors.
func NewEnv(width, height, log2ChromaW, log2ChromaH int) Env {
	return Env{
		W:    width,
		H:    height,
		CW:   width >> log2ChromaW,
		CH:   height >> log2ChromaH,
		HSub: 1 << log2ChromaW,
		VSub: 1 << log2ChromaH,
	}
}

// vars exposes the environment under the variable names expressions
// use. Numeric helpers such as min, max and abs are expression
// language builtins.
func (e Env) vars() map[string]interface{} {
	return map[string]interface{}{
		"w":    e.W,
		"h":    e.H,
		"cw":   e.CW,
		"ch":   e.CH,
		"hsub": e.HSub,
		"vsub": e.VSub,
	}
}

// Radius evaluates a radius expression against the environment and
// truncates the numeric result toward zero.
func Radius(expression string, env Env) (int, error) {
	if expression == "" {
		return 0, fmt.Errorf("empty radius expression")
	}

	out, err := expr.Eval(expression, env.vars())
	if err != nil {
		return 0, fmt.Errorf("evaluating radius expression %q: %w", expression, err)
	}

	switch v := out.(type) {
	case int:
		return v, nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("radius expression %q yields %v", expression, v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("radius expression %q yields non-numeric %T", expression, out)
	}
}
