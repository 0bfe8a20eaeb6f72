package host

import (
	"math"
	"reflect"
	"slices"

	"github.com/ardnew/scenic/engine"
)

// functions are available to every host expression.
var functions = map[string]any{
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"atan2": math.Atan2,
	"sqrt":  math.Sqrt,
	"exp":   math.Exp,
	"log":   math.Log,
	"pow":   math.Pow,
	"hypot": math.Hypot,
	"pi":    math.Pi,
	"tau":   2 * math.Pi,
	"seq":   seq,
}

// seq returns the numbers from start up to and including stop, step apart.
func seq(start, stop, step float64) []float64 {
	if step == 0 || math.IsNaN(step) || (stop-start)/step < 0 {
		return nil
	}

	n := int(math.Floor((stop-start)/step+1e-9)) + 1

	fs := make([]float64, n)
	for i := range fs {
		fs[i] = start + float64(i)*step
	}

	return fs
}

// result is an evaluated host value. A source that does not compile
// carries the compile error.
type result struct {
	kind engine.Observed
	num  float64
	list []float64
	err  error
}

func (r result) observation() engine.Observation {
	return engine.Observation{Kind: r.kind, Scalar: r.num, List: r.list, Err: r.err}
}

// env returns r as an expression environment value.
func (r result) env() any {
	switch r.kind {
	case engine.ObservedScalar:
		return r.num
	case engine.ObservedList:
		return r.list
	default:
		return nil
	}
}

func (r result) equal(o result) bool {
	if r.kind != o.kind || (r.err == nil) != (o.err == nil) {
		return false
	}

	switch r.kind {
	case engine.ObservedScalar:
		return r.num == o.num || (math.IsNaN(r.num) && math.IsNaN(o.num))
	case engine.ObservedList:
		return slices.Equal(r.list, o.list)
	default:
		return true
	}
}

// convert maps an expression result to a host value. Numbers become
// scalars, slices of numbers become lists, and everything else is
// undefined.
func convert(v any) result {
	if f, ok := toFloat(v); ok {
		return result{kind: engine.ObservedScalar, num: f}
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return result{}
	}

	list := make([]float64, rv.Len())

	for i := range list {
		f, ok := toFloat(rv.Index(i).Interface())
		if !ok {
			return result{}
		}

		list[i] = f
	}

	return result{kind: engine.ObservedList, list: list}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
