package ir

// TraitInstanceID is the path by which a trait obligation was discharged.
//
// Paths are data: an unresolved obligation is represented by
// UnsolvedInstance or UnknownInstance and never turned into an error here.
// Use IsSolved to check whether a path is complete.
type TraitInstanceID[R RegionSlot] interface {
	ShowIn(ctx ShowCtx) string
	isTraitInstance(R)
}

var (
	_ TraitInstanceID[Region] = (*SelfInstance[Region])(nil)
	_ TraitInstanceID[Region] = (*ImplInstance[Region])(nil)
	_ TraitInstanceID[Region] = (*BuiltinInstance[Region])(nil)
	_ TraitInstanceID[Region] = (*ClauseInstance[Region])(nil)
	_ TraitInstanceID[Region] = (*ParentClauseInstance[Region])(nil)
	_ TraitInstanceID[Region] = (*ItemClauseInstance[Region])(nil)
	_ TraitInstanceID[Region] = (*FnPointerInstance[Region])(nil)
	_ TraitInstanceID[Region] = (*UnsolvedInstance[Region])(nil)
	_ TraitInstanceID[Region] = (*UnknownInstance[Region])(nil)
)

// SelfInstance is the implementation of the trait currently being declared,
// only valid inside trait declarations
type SelfInstance[R RegionSlot] struct{}

type ImplInstance[R RegionSlot] struct{ Impl TraitImplID }

// BuiltinInstance is a compiler-provided implementation
type BuiltinInstance[R RegionSlot] struct{ Trait TraitDeclID }

// ClauseInstance refers to a where-clause of the enclosing declaration
type ClauseInstance[R RegionSlot] struct{ Clause TraitClauseID }

// ParentClauseInstance is the Clause-th super-trait clause of trait Trait,
// as implemented by Base
type ParentClauseInstance[R RegionSlot] struct {
	Base   TraitInstanceID[R]
	Trait  TraitDeclID
	Clause TraitClauseID
}

// ItemClauseInstance is the Clause-th clause on associated item Item of
// trait Trait, as implemented by Base
type ItemClauseInstance[R RegionSlot] struct {
	Base   TraitInstanceID[R]
	Trait  TraitDeclID
	Item   TraitItemName
	Clause TraitClauseID
}

// FnPointerInstance is the builtin implementation of the function traits
// for a function pointer type
type FnPointerInstance[R RegionSlot] struct{ Ty Ty[R] }

type UnsolvedInstance[R RegionSlot] struct {
	Trait    TraitDeclID
	Generics GenericArgs[R]
}

type UnknownInstance[R RegionSlot] struct{ Message string }

func (*SelfInstance[R]) isTraitInstance(R)         {}
func (*ImplInstance[R]) isTraitInstance(R)         {}
func (*BuiltinInstance[R]) isTraitInstance(R)      {}
func (*ClauseInstance[R]) isTraitInstance(R)       {}
func (*ParentClauseInstance[R]) isTraitInstance(R) {}
func (*ItemClauseInstance[R]) isTraitInstance(R)   {}
func (*FnPointerInstance[R]) isTraitInstance(R)    {}
func (*UnsolvedInstance[R]) isTraitInstance(R)     {}
func (*UnknownInstance[R]) isTraitInstance(R)      {}

// IsSolved is false if id, or any base it is built upon, is unsolved or
// unknown
func IsSolved[R RegionSlot](id TraitInstanceID[R]) bool {
	switch id := id.(type) {
	case *UnsolvedInstance[R], *UnknownInstance[R]:
		return false
	case *ParentClauseInstance[R]:
		return IsSolved(id.Base)
	case *ItemClauseInstance[R]:
		return IsSolved(id.Base)
	default:
		return true
	}
}

// TraitDeclRef names a trait together with the arguments it is applied to,
// as in `Iterator<Item = T>`
type TraitDeclRef[R RegionSlot] struct {
	TraitID  TraitDeclID    `json:"trait_id"`
	Generics GenericArgs[R] `json:"generics"`
}

// TraitRef is a resolved reference to a trait implementation: the path to
// the implementation, the generics it is applied to and the trait it
// implements
type TraitRef[R RegionSlot] struct {
	TraitID      TraitInstanceID[R] `json:"trait_id"`
	Generics     GenericArgs[R]     `json:"generics"`
	TraitDeclRef TraitDeclRef[R]    `json:"trait_decl_ref"`
}

// ClauseArgs are the arguments of a TraitClause. Unlike GenericArgs they
// never carry trait refs.
type ClauseArgs struct {
	Regions       []Region       `json:"regions"`
	Types         []RTy          `json:"types"`
	ConstGenerics []ConstGeneric `json:"const_generics"`
}

// Args widens a into GenericArgs with no trait refs
func (a ClauseArgs) Args() GenericArgs[Region] {
	return GenericArgs[Region]{
		Regions:       a.Regions,
		Types:         a.Types,
		ConstGenerics: a.ConstGenerics,
	}
}

// TraitClause is a where-clause `T: Trait<Generics>` of a declaration
type TraitClause struct {
	ClauseID TraitClauseID `json:"clause_id"`
	Trait    TraitDeclID   `json:"trait_id"`
	Generics ClauseArgs    `json:"generics"`
}
