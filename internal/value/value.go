// Package value implements the tagged-union runtime value used throughout
// evaluation: Null, Integer, Decimal, String, Boolean, Lvalue, and
// Function. Values are a single struct with a Kind tag rather than an
// interface per type, mirroring a std::variant, which is what makes
// ExtractFromLV and the numeric-promotion rules a single small switch
// instead of a type assertion chain.
package value

import (
	"fmt"
	"strconv"
)

// Kind tags which field of a Value is meaningful.
type Kind int

const (
	Null Kind = iota
	Integer
	Decimal
	String
	Boolean
	LvalueKind
	FunctionKind
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "Null"
	case Integer:
		return "Integer"
	case Decimal:
		return "Decimal"
	case String:
		return "String"
	case Boolean:
		return "Boolean"
	case LvalueKind:
		return "Lvalue"
	case FunctionKind:
		return "Function"
	default:
		return "Unknown"
	}
}

// Lvalue is the sentinel produced by evaluating an identifier expression:
// a non-owning reference to a named slot, to be resolved with
// ExtractFromLV at every consumption site.
type Lvalue struct {
	LineOfRef int
	Name      string
}

// Stmt is the minimal surface the value package needs from a statement
// node: enough to hold a non-owning reference to a function's body. The
// ast package satisfies this interface; value does not import ast to
// avoid a cycle (ast builds Values as literal results of evaluation in
// some callers, engine wires the two together).
type Stmt interface {
	StatementLine() int
}

// Function is a non-owning descriptor: it references the function's
// parameter names and body statements but captures no environment.
// Functions never close over locals: at call time the engine runs the
// body in a child of the caller's current environment, so names resolve
// through the caller's parent chain, never through a saved pointer here.
type Function struct {
	Line       int
	Name       string
	Params     []string
	Statements []Stmt
}

// Value is the tagged union passed around by the AST's literal nodes,
// the environment's slots, and the evaluator.
type Value struct {
	Kind Kind

	Int  int32
	Dec  float32
	Str  string
	Bool bool
	LV   Lvalue
	Fn   Function
}

func NullValue() Value                { return Value{Kind: Null} }
func IntValue(i int32) Value          { return Value{Kind: Integer, Int: i} }
func DecValue(d float32) Value        { return Value{Kind: Decimal, Dec: d} }
func StrValue(s string) Value         { return Value{Kind: String, Str: s} }
func BoolValue(b bool) Value          { return Value{Kind: Boolean, Bool: b} }
func LvalueValue(lv Lvalue) Value     { return Value{Kind: LvalueKind, LV: lv} }
func FunctionValue(fn Function) Value { return Value{Kind: FunctionKind, Fn: fn} }

// IsArithmetic reports whether v can participate in numeric promotion.
func (v Value) IsArithmetic() bool {
	return v.Kind == Integer || v.Kind == Decimal
}

// IsTrue implements the language's truthiness rule: only Boolean(true)
// is true. Every other value, including nonzero numbers and nonempty
// strings, is false. There is no implicit numeric-to-bool coercion.
func (v Value) IsTrue() bool {
	return v.Kind == Boolean && v.Bool
}

// ToString renders a value the way print and string concatenation see it.
func (v Value) ToString() string {
	switch v.Kind {
	case Null:
		return "null"
	case Integer:
		return strconv.FormatInt(int64(v.Int), 10)
	case Decimal:
		// Go-idiomatic default float formatting rather than a fixed
		// decimal-count format.
		return strconv.FormatFloat(float64(v.Dec), 'g', -1, 32)
	case String:
		return v.Str
	case Boolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case LvalueKind:
		return v.LV.Name
	case FunctionKind:
		return fmt.Sprintf("[Function: %s]", v.Fn.Name)
	default:
		return ""
	}
}

// Pretty renders a type-prefixed description, used in runtime type error
// messages such as the call-target one ("Attempt to treat Integer: 5 as
// function").
func (v Value) Pretty() string {
	switch v.Kind {
	case Null:
		return "(null)"
	case FunctionKind:
		return v.ToString()
	default:
		return fmt.Sprintf("%s: %s", v.Kind, v.ToString())
	}
}
