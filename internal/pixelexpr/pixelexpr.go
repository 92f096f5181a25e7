// Package pixelexpr compiles boolean expressions evaluated against
// individual pixels, e.g. "r > 200 && b < 16" or "x == y".
package pixelexpr

import (
	"fmt"

	"github.com/knetic/govaluate"
	"github.com/seanjohnno/bitmapy/bmp"
)

// Filter is a compiled pixel predicate.
type Filter struct {
	src  string
	expr *govaluate.EvaluableExpression
}

// Compile parses the expression once so it can be evaluated per pixel.
// Available variables: x, y, c0..cN (raw channel bytes in storage order),
// plus b, g, r (and a at 32 bits per pixel) as channel aliases.
func Compile(src string) (*Filter, error) {
	expr, err := govaluate.NewEvaluableExpression(src)
	if err != nil {
		return nil, fmt.Errorf("failed to compile expression %q: %w", src, err)
	}
	return &Filter{src: src, expr: expr}, nil
}

// Match evaluates the predicate against one pixel. A non-boolean result is
// an error, not a truthy value.
func (f *Filter) Match(px bmp.Pixel) (bool, error) {
	x, y := px.Position()
	data := px.Data()

	// govaluate does arithmetic in float64
	params := map[string]any{
		"x": float64(x),
		"y": float64(y),
	}
	for i, v := range data {
		params[fmt.Sprintf("c%d", i)] = float64(v)
	}
	if len(data) == 3 || len(data) == 4 {
		params["b"] = float64(data[0])
		params["g"] = float64(data[1])
		params["r"] = float64(data[2])
		if len(data) == 4 {
			params["a"] = float64(data[3])
		}
	}

	result, err := f.expr.Evaluate(params)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate %q at (%d, %d): %w", f.src, x, y, err)
	}
	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("expression %q evaluated to %T, want boolean", f.src, result)
	}
	return matched, nil
}
