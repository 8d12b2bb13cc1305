package ir

import (
	"strconv"
)

type IntegerTy uint8

const (
	_ IntegerTy = iota
	Isize
	I8
	I16
	I32
	I64
	I128
	Usize
	U8
	U16
	U32
	U64
	U128
)

var integerTyNames = map[IntegerTy]string{
	Isize: "isize",
	I8:    "i8",
	I16:   "i16",
	I32:   "i32",
	I64:   "i64",
	I128:  "i128",
	Usize: "usize",
	U8:    "u8",
	U16:   "u16",
	U32:   "u32",
	U64:   "u64",
	U128:  "u128",
}

func (t IntegerTy) String() string {
	if name, ok := integerTyNames[t]; ok {
		return name
	}
	return "invalid"
}

func (t IntegerTy) IsSigned() bool {
	return t >= Isize && t <= I128
}

func (t IntegerTy) IsUnsigned() bool {
	return t >= Usize && t <= U128
}

// Size is the size of the integer in bytes. Pointer-sized integers are
// assumed to be 64 bits wide.
func (t IntegerTy) Size() int {
	switch t {
	case I8, U8:
		return 1
	case I16, U16:
		return 2
	case I32, U32:
		return 4
	case Isize, Usize, I64, U64:
		return 8
	case I128, U128:
		return 16
	default:
		return 0
	}
}

type LiteralKind uint8

const (
	_ LiteralKind = iota
	LiteralInteger
	LiteralBool
	LiteralChar
)

// LiteralTy is the type of primitive values: an integer, bool or char.
// Floating point numbers are deliberately unsupported.
type LiteralTy struct {
	Kind LiteralKind
	// Integer is only meaningful when Kind is LiteralInteger
	Integer IntegerTy
}

var (
	BoolTy = LiteralTy{Kind: LiteralBool}
	CharTy = LiteralTy{Kind: LiteralChar}
)

func IntegerLit(t IntegerTy) LiteralTy {
	return LiteralTy{Kind: LiteralInteger, Integer: t}
}

func (l LiteralTy) IsInteger() bool { return l.Kind == LiteralInteger }

func (l LiteralTy) String() string {
	switch l.Kind {
	case LiteralInteger:
		return l.Integer.String()
	case LiteralBool:
		return "bool"
	case LiteralChar:
		return "char"
	default:
		return "invalid"
	}
}

// ScalarValue is an integer constant together with its type.
// Signed values live in Int, unsigned ones in Uint; 128-bit constants
// are limited to the 64-bit range.
type ScalarValue struct {
	Ty   IntegerTy
	Int  int64
	Uint uint64
}

func SignedScalar(ty IntegerTy, v int64) ScalarValue {
	return ScalarValue{Ty: ty, Int: v}
}

func UnsignedScalar(ty IntegerTy, v uint64) ScalarValue {
	return ScalarValue{Ty: ty, Uint: v}
}

func (v ScalarValue) String() string {
	if v.Ty.IsSigned() {
		return strconv.FormatInt(v.Int, 10) + ":" + v.Ty.String()
	}
	return strconv.FormatUint(v.Uint, 10) + ":" + v.Ty.String()
}

// Literal is a constant value, used by const generics
type Literal struct {
	Kind   LiteralKind
	Scalar ScalarValue
	Bool   bool
	Char   rune
}

func ScalarLiteral(v ScalarValue) Literal { return Literal{Kind: LiteralInteger, Scalar: v} }
func BoolLiteral(b bool) Literal          { return Literal{Kind: LiteralBool, Bool: b} }
func CharLiteral(c rune) Literal          { return Literal{Kind: LiteralChar, Char: c} }

func (l Literal) String() string {
	switch l.Kind {
	case LiteralInteger:
		return l.Scalar.String()
	case LiteralBool:
		return strconv.FormatBool(l.Bool)
	case LiteralChar:
		return strconv.QuoteRune(l.Char)
	default:
		return "invalid"
	}
}
