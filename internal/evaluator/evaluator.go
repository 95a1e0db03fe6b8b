// Package evaluator evaluates the small arithmetic language used in script
// arguments. Evaluation never fails: anything that is not a finite numeric
// expression over the allowed names comes back as the original string, which
// lets paths, colours and ffmpeg expressions flow through the same call.
package evaluator

import (
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"

	"iscript/pkg/scripttypes"
)

// constants are visible to every expression; user variables shadow them.
var constants = map[string]float64{
	"pi":  math.Pi,
	"e":   math.E,
	"tau": 2 * math.Pi,
	"inf": math.Inf(1),
	"nan": math.NaN(),
}

type unary func(float64) float64
type binary func(float64, float64) float64

var unaryFuncs = map[string]unary{
	"sin":     math.Sin,
	"cos":     math.Cos,
	"tan":     math.Tan,
	"asin":    math.Asin,
	"acos":    math.Acos,
	"atan":    math.Atan,
	"sinh":    math.Sinh,
	"cosh":    math.Cosh,
	"tanh":    math.Tanh,
	"asinh":   math.Asinh,
	"acosh":   math.Acosh,
	"atanh":   math.Atanh,
	"sqrt":    math.Sqrt,
	"cbrt":    math.Cbrt,
	"exp":     math.Exp,
	"log2":    math.Log2,
	"log10":   math.Log10,
	"floor":   math.Floor,
	"ceil":    math.Ceil,
	"trunc":   math.Trunc,
	"round":   math.Round,
	"abs":     math.Abs,
	"radians": func(d float64) float64 { return d * math.Pi / 180 },
	"degrees": func(r float64) float64 { return r * 180 / math.Pi },
}

var binaryFuncs = map[string]binary{
	"atan2": math.Atan2,
	"pow":   math.Pow,
	"hypot": math.Hypot,
	"min":   math.Min,
	"max":   math.Max,
}

// floorMod is the remainder of floored division: the result takes the sign
// of the divisor.
func floorMod(x, y float64) float64 {
	r := math.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return r
}

// floatLiterals rewrites integer literals to floats so every operand is a
// float64, the same type variables carry. Integer arithmetic can then
// neither overflow nor reject float operands.
type floatLiterals struct{}

func (floatLiterals) Visit(node *ast.Node) {
	if n, ok := (*node).(*ast.IntegerNode); ok {
		ast.Patch(node, &ast.FloatNode{Value: float64(n.Value)})
	}
}

// options is built once: builtins off, only the allow-listed functions on.
var options = buildOptions()

func buildOptions() []expr.Option {
	opts := []expr.Option{
		expr.DisableAllBuiltins(),
		expr.Patch(floatLiterals{}),
		// % on floats, shared with mod(x, y)
		expr.Function("mod", wrapBinary("mod", floorMod), new(func(float64, float64) float64)),
		expr.Operator("%", "mod"),
	}

	for name, fn := range unaryFuncs {
		opts = append(opts, expr.Function(name, wrapUnary(name, fn)))
	}
	for name, fn := range binaryFuncs {
		opts = append(opts, expr.Function(name, wrapBinary(name, fn)))
	}
	// log(x) or log(x, base)
	opts = append(opts, expr.Function("log", func(params ...any) (any, error) {
		switch len(params) {
		case 1:
			x, err := toFloat("log", params[0])
			if err != nil {
				return nil, err
			}
			return math.Log(x), nil
		case 2:
			x, err := toFloat("log", params[0])
			if err != nil {
				return nil, err
			}
			base, err := toFloat("log", params[1])
			if err != nil {
				return nil, err
			}
			return math.Log(x) / math.Log(base), nil
		default:
			return nil, fmt.Errorf("log takes 1 or 2 arguments, got %d", len(params))
		}
	}))

	return opts
}

func wrapUnary(name string, fn unary) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		if len(params) != 1 {
			return nil, fmt.Errorf("%s takes 1 argument, got %d", name, len(params))
		}
		x, err := toFloat(name, params[0])
		if err != nil {
			return nil, err
		}
		return fn(x), nil
	}
}

func wrapBinary(name string, fn binary) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		if len(params) != 2 {
			return nil, fmt.Errorf("%s takes 2 arguments, got %d", name, len(params))
		}
		x, err := toFloat(name, params[0])
		if err != nil {
			return nil, err
		}
		y, err := toFloat(name, params[1])
		if err != nil {
			return nil, err
		}
		return fn(x, y), nil
	}
}

func toFloat(fn string, v any) (float64, error) {
	if f, ok := numeric(v); ok {
		return f, nil
	}
	return 0, fmt.Errorf("%s: argument %v is not a number", fn, v)
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
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
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Environment builds the identifier table for one evaluation: constants,
// then user variables on top.
func Environment(vars map[string]scripttypes.Value) map[string]any {
	env := make(map[string]any, len(constants)+len(vars))
	for name, value := range constants {
		env[name] = value
	}
	for name, value := range vars {
		if value.IsNumber() {
			env[name] = value.Num
		} else {
			env[name] = value.Str
		}
	}
	return env
}

// Evaluate evaluates input against vars. All numbers are float64, % is the
// floored remainder and // is not an operator. Finite numeric results become
// numbers, string results become strings; every other outcome, including
// compile and runtime errors, returns input unchanged as a string.
func Evaluate(input string, vars map[string]scripttypes.Value) (result scripttypes.Value) {
	fallback := scripttypes.String(input)

	defer func() {
		if r := recover(); r != nil {
			result = fallback
		}
	}()

	// expr treats these as comments; a silently shortened expression must
	// not produce a number
	if strings.Contains(input, "//") || strings.Contains(input, "/*") {
		return fallback
	}

	env := Environment(vars)
	program, err := expr.Compile(input, append([]expr.Option{expr.Env(env)}, options...)...)
	if err != nil {
		return fallback
	}

	output, err := expr.Run(program, env)
	if err != nil {
		return fallback
	}

	if s, ok := output.(string); ok {
		return scripttypes.String(s)
	}
	if f, ok := numeric(output); ok {
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return fallback
		}
		return scripttypes.Number(f)
	}
	return fallback
}

// EvaluateNumber evaluates input and requires a numeric result.
func EvaluateNumber(input string, vars map[string]scripttypes.Value) (float64, bool) {
	return Evaluate(input, vars).Float()
}
