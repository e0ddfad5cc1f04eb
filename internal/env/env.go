// Package env implements the scoped name-to-slot mapping used by every
// execution context: a parent-chained lookup table, adapted from the
// teacher's scope.Scope but trimmed to this language's needs (no const,
// no let-typing, no scope-copy for closures: functions never capture
// locals).
package env

import (
	"fmt"

	"github.com/dxsh-lang/dxsh/internal/value"
)

// VarDecl is a single named variable slot: its current value and the
// lines of its declaration and most recent assignment.
type VarDecl struct {
	Name             string
	Value            value.Value
	LineOfDecl       int
	LineOfLastAssign int
}

// Set mutates the slot's value, recording the assigning line.
func (v *VarDecl) Set(val value.Value, line int) {
	v.Value = val
	v.LineOfLastAssign = line
}

// Environment is a mapping from name to VarDecl, with a non-owning
// parent pointer. Name resolution walks the parent chain outward. No
// Environment outlives its parent: parents live lower on the call
// stack and are popped only after their children.
type Environment struct {
	parent    *Environment
	variables map[string]*VarDecl
}

// New creates a root environment with no parent (the global scope).
func New() *Environment {
	return &Environment{variables: make(map[string]*VarDecl)}
}

// MakeChild produces a new environment whose parent is e.
func (e *Environment) MakeChild() *Environment {
	return &Environment{parent: e, variables: make(map[string]*VarDecl)}
}

// GetVar searches this environment, then the parent chain, for name.
// Returns nil if the variable is not found anywhere in the chain.
func (e *Environment) GetVar(name string) *VarDecl {
	if v, ok := e.variables[name]; ok {
		return v
	}
	if e.parent != nil {
		return e.parent.GetVar(name)
	}
	return nil
}

// CreateOrAssignVar mutates the slot in place if name already exists in
// this environment, otherwise inserts a new slot with LineOfDecl = line.
// Unlike GetVar, this never walks the parent chain. A var declaration
// always binds into the current scope, shadowing an outer variable of
// the same name.
func (e *Environment) CreateOrAssignVar(name string, val value.Value, line int) {
	if v, ok := e.variables[name]; ok {
		v.Set(val, line)
		return
	}
	e.variables[name] = &VarDecl{Name: name, Value: val, LineOfDecl: line, LineOfLastAssign: line}
}

// UndefinedVariableError reports a reference to a name with no binding
// anywhere in the environment chain.
type UndefinedVariableError struct {
	Line int
	Name string
}

func (err *UndefinedVariableError) Error() string {
	return fmt.Sprintf("Undefined variable '%s'", err.Name)
}

// ExtractFromLV resolves v if it is an Lvalue, returning the stored
// value of the variable it names; otherwise it returns v unchanged. This
// must be called at every point that consumes a value as data (operands,
// conditions, print operands, arguments, assignment right-hand sides).
// The lvalue sentinel is never allowed to reach arithmetic, comparison,
// or output.
func (e *Environment) ExtractFromLV(v value.Value) (value.Value, error) {
	if v.Kind != value.LvalueKind {
		return v, nil
	}

	slot := e.GetVar(v.LV.Name)
	if slot == nil {
		return value.Value{}, &UndefinedVariableError{Line: v.LV.LineOfRef, Name: v.LV.Name}
	}

	return slot.Value, nil
}
