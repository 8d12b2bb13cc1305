package ir

import (
	"slices"
)

// EqualTy is structural equality of types. Nil and empty lists are
// considered equal.
func EqualTy[R RegionSlot](a, b Ty[R]) bool {
	switch a := a.(type) {
	case *AdtType[R]:
		b, ok := b.(*AdtType[R])
		return ok && a.ID == b.ID && EqualArgs(a.Args, b.Args)
	case *VarType[R]:
		b, ok := b.(*VarType[R])
		return ok && a.ID == b.ID
	case *LiteralType[R]:
		b, ok := b.(*LiteralType[R])
		return ok && a.Lit == b.Lit
	case *NeverType[R]:
		_, ok := b.(*NeverType[R])
		return ok
	case *RefType[R]:
		b, ok := b.(*RefType[R])
		return ok && a.Region == b.Region && a.Kind == b.Kind && EqualTy(a.Pointee, b.Pointee)
	case *RawPtrType[R]:
		b, ok := b.(*RawPtrType[R])
		return ok && a.Kind == b.Kind && EqualTy(a.Pointee, b.Pointee)
	case *TraitType[R]:
		b, ok := b.(*TraitType[R])
		return ok && a.Item == b.Item && EqualTraitRef(a.TraitRef, b.TraitRef) && EqualArgs(a.Args, b.Args)
	case *ArrowType[R]:
		b, ok := b.(*ArrowType[R])
		return ok && slices.EqualFunc(a.Inputs, b.Inputs, EqualTy[R]) && EqualTy(a.Output, b.Output)
	case nil:
		return b == nil
	default:
		return false
	}
}

func EqualArgs[R RegionSlot](a, b GenericArgs[R]) bool {
	return slices.Equal(a.Regions, b.Regions) &&
		slices.EqualFunc(a.Types, b.Types, EqualTy[R]) &&
		slices.Equal(a.ConstGenerics, b.ConstGenerics) &&
		slices.EqualFunc(a.TraitRefs, b.TraitRefs, EqualTraitRef[R])
}

func EqualTraitRef[R RegionSlot](a, b TraitRef[R]) bool {
	return EqualTraitInstance(a.TraitID, b.TraitID) &&
		EqualArgs(a.Generics, b.Generics) &&
		EqualTraitDeclRef(a.TraitDeclRef, b.TraitDeclRef)
}

func EqualTraitDeclRef[R RegionSlot](a, b TraitDeclRef[R]) bool {
	return a.TraitID == b.TraitID && EqualArgs(a.Generics, b.Generics)
}

func EqualTraitInstance[R RegionSlot](a, b TraitInstanceID[R]) bool {
	switch a := a.(type) {
	case *SelfInstance[R]:
		_, ok := b.(*SelfInstance[R])
		return ok
	case *ImplInstance[R]:
		b, ok := b.(*ImplInstance[R])
		return ok && *a == *b
	case *BuiltinInstance[R]:
		b, ok := b.(*BuiltinInstance[R])
		return ok && *a == *b
	case *ClauseInstance[R]:
		b, ok := b.(*ClauseInstance[R])
		return ok && *a == *b
	case *ParentClauseInstance[R]:
		b, ok := b.(*ParentClauseInstance[R])
		return ok && a.Trait == b.Trait && a.Clause == b.Clause && EqualTraitInstance(a.Base, b.Base)
	case *ItemClauseInstance[R]:
		b, ok := b.(*ItemClauseInstance[R])
		return ok && a.Trait == b.Trait && a.Item == b.Item && a.Clause == b.Clause && EqualTraitInstance(a.Base, b.Base)
	case *FnPointerInstance[R]:
		b, ok := b.(*FnPointerInstance[R])
		return ok && EqualTy(a.Ty, b.Ty)
	case *UnsolvedInstance[R]:
		b, ok := b.(*UnsolvedInstance[R])
		return ok && a.Trait == b.Trait && EqualArgs(a.Generics, b.Generics)
	case *UnknownInstance[R]:
		b, ok := b.(*UnknownInstance[R])
		return ok && *a == *b
	case nil:
		return b == nil
	default:
		return false
	}
}

func (a ClauseArgs) Equal(b ClauseArgs) bool {
	return EqualArgs(a.Args(), b.Args())
}

func (a GenericArgs[R]) Equal(b GenericArgs[R]) bool {
	return EqualArgs(a, b)
}

func (p GenericParams) Equal(o GenericParams) bool {
	return slices.Equal(p.Regions, o.Regions) &&
		slices.Equal(p.Types, o.Types) &&
		slices.Equal(p.ConstGenerics, o.ConstGenerics) &&
		slices.EqualFunc(p.TraitClauses, o.TraitClauses, func(a, b TraitClause) bool {
			return a.ClauseID == b.ClauseID && a.Trait == b.Trait && a.Generics.Equal(b.Generics)
		})
}
