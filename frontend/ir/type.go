package ir

import (
	"fmt"
)

type AssumedTy uint8

const (
	_ AssumedTy = iota
	// AssumedBox is translated as the identity by most consumers
	AssumedBox
	AssumedVec
	AssumedOption
	AssumedRange
	// AssumedPtrUnique and AssumedPtrNonNull only surface in the low-level
	// code which boxes desugar to
	AssumedPtrUnique
	AssumedPtrNonNull
	AssumedArray
	AssumedSlice
	AssumedStr
)

type TypeIDKind uint8

const (
	_ TypeIDKind = iota
	TypeIDAdt
	TypeIDTuple
	TypeIDAssumed
)

// TypeID identifies the head of an AdtType: a user ADT, a tuple (unit being
// the 0-tuple) or an assumed type.
type TypeID struct {
	Kind TypeIDKind
	// Adt is only meaningful when Kind is TypeIDAdt
	Adt TypeDeclID
	// Assumed is only meaningful when Kind is TypeIDAssumed
	Assumed AssumedTy
}

var TupleID = TypeID{Kind: TypeIDTuple}

func AdtID(id TypeDeclID) TypeID    { return TypeID{Kind: TypeIDAdt, Adt: id} }
func AssumedID(ty AssumedTy) TypeID { return TypeID{Kind: TypeIDAssumed, Assumed: ty} }
func (id TypeID) IsTuple() bool     { return id.Kind == TypeIDTuple }
func (id TypeID) IsAssumed() bool   { return id.Kind == TypeIDAssumed }
func (id TypeID) ShowIn(ctx ShowCtx) string {
	switch id.Kind {
	case TypeIDAdt:
		return ctx.TypeDeclName(id.Adt)
	case TypeIDTuple:
		return ""
	case TypeIDAssumed:
		return id.Assumed.String()
	default:
		return "invalid"
	}
}

type RefKind uint8

const (
	_ RefKind = iota
	RefMut
	RefShared
)

func (k RefKind) String() string {
	switch k {
	case RefMut:
		return "Mut"
	case RefShared:
		return "Shared"
	default:
		return "invalid"
	}
}

// TraitItemName is the name of an associated item of a trait
type TraitItemName = string

// Ty is the type tree, parametrised by its region slot.
//
// The following variants exist:
//
//	AdtType:     user ADTs, tuples and assumed types applied to GenericArgs
//	VarType:     a type variable of the enclosing declaration
//	LiteralType: integers, bool and char
//	NeverType:   the type of diverging computations
//	RefType:     a borrow, with its region
//	RawPtrType:  a raw pointer
//	TraitType:   an associated type projected out of a TraitRef
//	ArrowType:   a function pointer type
//
// Trees are built once and then treated as immutable: every transformation
// allocates a new tree.
type Ty[R RegionSlot] interface {
	fmt.Stringer
	ShowIn(ctx ShowCtx) string
	isTy(R)
}

var (
	_ Ty[Region] = (*AdtType[Region])(nil)
	_ Ty[Region] = (*VarType[Region])(nil)
	_ Ty[Region] = (*LiteralType[Region])(nil)
	_ Ty[Region] = (*NeverType[Region])(nil)
	_ Ty[Region] = (*RefType[Region])(nil)
	_ Ty[Region] = (*RawPtrType[Region])(nil)
	_ Ty[Region] = (*TraitType[Region])(nil)
	_ Ty[Region] = (*ArrowType[Region])(nil)

	_ Ty[ErasedRegion] = (*AdtType[ErasedRegion])(nil)
	_ Ty[ErasedRegion] = (*RefType[ErasedRegion])(nil)
)

// RTy is a type with regions, used in signatures and type declarations
type RTy = Ty[Region]

// ETy is a type with erased regions, used in bodies
type ETy = Ty[ErasedRegion]

type AdtType[R RegionSlot] struct {
	ID   TypeID
	Args GenericArgs[R]
}

type VarType[R RegionSlot] struct {
	ID TypeVarID
}

type LiteralType[R RegionSlot] struct {
	Lit LiteralTy
}

type NeverType[R RegionSlot] struct{}

type RefType[R RegionSlot] struct {
	Region  R
	Pointee Ty[R]
	Kind    RefKind
}

type RawPtrType[R RegionSlot] struct {
	Pointee Ty[R]
	Kind    RefKind
}

// TraitType is the associated type Item of TraitRef, applied to Args
type TraitType[R RegionSlot] struct {
	TraitRef TraitRef[R]
	Args     GenericArgs[R]
	Item     TraitItemName
}

type ArrowType[R RegionSlot] struct {
	Inputs []Ty[R]
	Output Ty[R]
}

func (*AdtType[R]) isTy(R)     {}
func (*VarType[R]) isTy(R)     {}
func (*LiteralType[R]) isTy(R) {}
func (*NeverType[R]) isTy(R)   {}
func (*RefType[R]) isTy(R)     {}
func (*RawPtrType[R]) isTy(R)  {}
func (*TraitType[R]) isTy(R)   {}
func (*ArrowType[R]) isTy(R)   {}

func NewAdt[R RegionSlot](id TypeID, args GenericArgs[R]) *AdtType[R] {
	return &AdtType[R]{ID: id, Args: args}
}

func NewVar[R RegionSlot](id TypeVarID) *VarType[R] { return &VarType[R]{ID: id} }

func NewLiteral[R RegionSlot](lit LiteralTy) *LiteralType[R] { return &LiteralType[R]{Lit: lit} }

func NewNever[R RegionSlot]() *NeverType[R] { return &NeverType[R]{} }

func NewRef[R RegionSlot](region R, pointee Ty[R], kind RefKind) *RefType[R] {
	return &RefType[R]{Region: region, Pointee: pointee, Kind: kind}
}

func NewRawPtr[R RegionSlot](pointee Ty[R], kind RefKind) *RawPtrType[R] {
	return &RawPtrType[R]{Pointee: pointee, Kind: kind}
}

func NewTraitType[R RegionSlot](traitRef TraitRef[R], args GenericArgs[R], item TraitItemName) *TraitType[R] {
	return &TraitType[R]{TraitRef: traitRef, Args: args, Item: item}
}

func NewArrow[R RegionSlot](inputs []Ty[R], output Ty[R]) *ArrowType[R] {
	return &ArrowType[R]{Inputs: inputs, Output: output}
}

// MkUnit returns the 0-tuple
func MkUnit[R RegionSlot]() Ty[R] {
	return NewAdt[R](TupleID, GenericArgs[R]{})
}

// MkTuple returns the tuple of the given types
func MkTuple[R RegionSlot](types ...Ty[R]) Ty[R] {
	return NewAdt[R](TupleID, FromTypes(types...))
}

// MkBox returns Box<inner>
func MkBox[R RegionSlot](inner Ty[R]) Ty[R] {
	return NewAdt[R](AssumedID(AssumedBox), FromTypes(inner))
}

// ConstGeneric is the value of a const generic parameter: a global constant,
// a const generic variable or a literal.
type ConstGeneric interface {
	fmt.Stringer
	ShowIn(ctx ShowCtx) string
	isConstGeneric()
}

var (
	_ ConstGeneric = ConstGlobal{}
	_ ConstGeneric = ConstVar{}
	_ ConstGeneric = ConstValue{}
)

type ConstGlobal struct{ ID GlobalDeclID }
type ConstVar struct{ ID ConstGenericVarID }
type ConstValue struct{ Value Literal }

func (ConstGlobal) isConstGeneric() {}
func (ConstVar) isConstGeneric()    {}
func (ConstValue) isConstGeneric()  {}

// GenericArgs are the generic arguments supplied at a use site.
//
// When they instantiate a declaration, each list must match the corresponding
// list of the declaration's GenericParams in length and order.
type GenericArgs[R RegionSlot] struct {
	Regions       []R            `json:"regions"`
	Types         []Ty[R]        `json:"types"`
	ConstGenerics []ConstGeneric `json:"const_generics"`
	TraitRefs     []TraitRef[R]  `json:"trait_refs"`
}

func FromTypes[R RegionSlot](types ...Ty[R]) GenericArgs[R] {
	return GenericArgs[R]{Types: types}
}

func (a GenericArgs[R]) Len() int {
	return len(a.Regions) + len(a.Types) + len(a.ConstGenerics) + len(a.TraitRefs)
}

func (a GenericArgs[R]) IsEmpty() bool {
	return a.Len() == 0
}
