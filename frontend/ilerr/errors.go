package ilerr

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// enableDebugErrorPrinting makes errors include their stacktrace when printed
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None ErrCode = iota
	// UnifyArity is a mismatch in the number of arguments of two lists
	UnifyArity
	// UnifyHead is a mismatch between two type constructors, two ids or two
	// constants
	UnifyHead
	// UnifyRebind is a source variable which would need two bindings
	UnifyRebind
	// UnifyRigid is a fixed variable matched against anything but itself
	UnifyRigid
	IndexOutOfRange
	NonDenseIDs
	UnsolvedTraitInstance
	Decode
	InvariantViolation
)

type IrError interface {
	Error() string
	Code() ErrCode

	withStack([]byte) IrError
	getStack() []byte
}

func FormatWithCode(e IrError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			stack = strings.Split(stack, "\n")[6]
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

func New[E IrError](err E) IrError {
	return err.withStack(debug.Stack())
}

type Unclassified struct {
	From  error
	stack []byte
}

func (e Unclassified) Error() string {
	return fmt.Sprintf("unclassified error: %v", e.From)
}
func (e Unclassified) Code() ErrCode    { return None }
func (e Unclassified) Unwrap() error    { return e.From }
func (e Unclassified) getStack() []byte { return e.stack }
func (e Unclassified) withStack(stack []byte) IrError {
	e.stack = stack
	return e
}

// UnifyError explains why two trees could not be unified. Src and Tgt are
// the innermost pair of nodes which failed to match.
type UnifyError struct {
	Kind  ErrCode
	Src   fmt.Stringer
	Tgt   fmt.Stringer
	stack []byte
}

func (e *UnifyError) Error() string {
	switch e.Kind {
	case UnifyArity:
		return fmt.Sprintf("arity mismatch: cannot unify '%v' with '%v'", e.Src, e.Tgt)
	case UnifyRebind:
		return fmt.Sprintf("variable '%v' is already bound, cannot bind it to '%v'", e.Src, e.Tgt)
	case UnifyRigid:
		return fmt.Sprintf("fixed variable '%v' cannot be unified with '%v'", e.Src, e.Tgt)
	default:
		return fmt.Sprintf("type mismatch: cannot unify '%v' with '%v'", e.Src, e.Tgt)
	}
}
func (e *UnifyError) Code() ErrCode    { return e.Kind }
func (e *UnifyError) getStack() []byte { return e.stack }
func (e *UnifyError) withStack(stack []byte) IrError {
	e.stack = stack
	return e
}

type NewIndexOutOfRange struct {
	// What is the kind of id, like "type variable"
	What  string
	Index uint32
	Len   int
	stack []byte
}

func (e NewIndexOutOfRange) Error() string {
	return fmt.Sprintf("%s %d is out of range: only %d are declared", e.What, e.Index, e.Len)
}
func (e NewIndexOutOfRange) Code() ErrCode    { return IndexOutOfRange }
func (e NewIndexOutOfRange) getStack() []byte { return e.stack }
func (e NewIndexOutOfRange) withStack(stack []byte) IrError {
	e.stack = stack
	return e
}

type NewNonDenseIDs struct {
	What     string
	Index    uint32
	Position int
	stack    []byte
}

func (e NewNonDenseIDs) Error() string {
	return fmt.Sprintf("%s at position %d has index %d", e.What, e.Position, e.Index)
}
func (e NewNonDenseIDs) Code() ErrCode    { return NonDenseIDs }
func (e NewNonDenseIDs) getStack() []byte { return e.stack }
func (e NewNonDenseIDs) withStack(stack []byte) IrError {
	e.stack = stack
	return e
}

type NewUnsolvedTraitInstance struct {
	Instance string
	stack    []byte
}

func (e NewUnsolvedTraitInstance) Error() string {
	return fmt.Sprintf("trait instance '%s' is not solved", e.Instance)
}
func (e NewUnsolvedTraitInstance) Code() ErrCode    { return UnsolvedTraitInstance }
func (e NewUnsolvedTraitInstance) getStack() []byte { return e.stack }
func (e NewUnsolvedTraitInstance) withStack(stack []byte) IrError {
	e.stack = stack
	return e
}

type NewDecode struct {
	From error
	// What is the kind of entity being decoded, like "type"
	What  string
	stack []byte
}

func (e NewDecode) Error() string {
	return fmt.Sprintf("could not decode %s: %v", e.What, e.From)
}
func (e NewDecode) Code() ErrCode    { return Decode }
func (e NewDecode) Unwrap() error    { return e.From }
func (e NewDecode) getStack() []byte { return e.stack }
func (e NewDecode) withStack(stack []byte) IrError {
	e.stack = stack
	return e
}

// Invariant is the value panicked with when a precondition of the IR is
// broken, like a substitution missing a variable which occurs in a type.
// It is not meant to be recovered from.
type Invariant struct {
	Msg   string
	stack []byte
}

func NewInvariant(format string, args ...any) Invariant {
	return Invariant{Msg: fmt.Sprintf(format, args...), stack: debug.Stack()}
}

func (e Invariant) Error() string {
	return "invariant violation: " + e.Msg
}
func (e Invariant) Code() ErrCode    { return InvariantViolation }
func (e Invariant) Stack() string    { return string(e.stack) }
func (e Invariant) getStack() []byte { return e.stack }
func (e Invariant) withStack(stack []byte) IrError {
	e.stack = stack
	return e
}
