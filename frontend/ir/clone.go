package ir

import (
	"github.com/tyir-dev/tyir/frontend/ilerr"
)

// CloneTy deep-copies ty, so that the copy can be handed to a
// MutTypeVisitor
func CloneTy[R RegionSlot](ty Ty[R]) Ty[R] {
	switch t := ty.(type) {
	case *AdtType[R]:
		return NewAdt(t.ID, CloneArgs(t.Args))
	case *VarType[R]:
		return NewVar[R](t.ID)
	case *LiteralType[R]:
		return NewLiteral[R](t.Lit)
	case *NeverType[R]:
		return NewNever[R]()
	case *RefType[R]:
		return NewRef(t.Region, CloneTy(t.Pointee), t.Kind)
	case *RawPtrType[R]:
		return NewRawPtr(CloneTy(t.Pointee), t.Kind)
	case *TraitType[R]:
		return NewTraitType(CloneTraitRef(t.TraitRef), CloneArgs(t.Args), t.Item)
	case *ArrowType[R]:
		return NewArrow(cloneEach(t.Inputs, CloneTy[R]), CloneTy(t.Output))
	case nil:
		return nil
	default:
		panic(ilerr.NewInvariant("unexpected type %T", t))
	}
}

func CloneArgs[R RegionSlot](args GenericArgs[R]) GenericArgs[R] {
	return GenericArgs[R]{
		Regions:       cloneEach(args.Regions, func(r R) R { return r }),
		Types:         cloneEach(args.Types, CloneTy[R]),
		ConstGenerics: cloneEach(args.ConstGenerics, func(c ConstGeneric) ConstGeneric { return c }),
		TraitRefs:     cloneEach(args.TraitRefs, CloneTraitRef[R]),
	}
}

func CloneTraitRef[R RegionSlot](tr TraitRef[R]) TraitRef[R] {
	return TraitRef[R]{
		TraitID:  CloneTraitInstance(tr.TraitID),
		Generics: CloneArgs(tr.Generics),
		TraitDeclRef: TraitDeclRef[R]{
			TraitID:  tr.TraitDeclRef.TraitID,
			Generics: CloneArgs(tr.TraitDeclRef.Generics),
		},
	}
}

func CloneTraitInstance[R RegionSlot](id TraitInstanceID[R]) TraitInstanceID[R] {
	switch i := id.(type) {
	case *SelfInstance[R]:
		return &SelfInstance[R]{}
	case *ImplInstance[R]:
		return &ImplInstance[R]{Impl: i.Impl}
	case *BuiltinInstance[R]:
		return &BuiltinInstance[R]{Trait: i.Trait}
	case *ClauseInstance[R]:
		return &ClauseInstance[R]{Clause: i.Clause}
	case *ParentClauseInstance[R]:
		return &ParentClauseInstance[R]{Base: CloneTraitInstance(i.Base), Trait: i.Trait, Clause: i.Clause}
	case *ItemClauseInstance[R]:
		return &ItemClauseInstance[R]{Base: CloneTraitInstance(i.Base), Trait: i.Trait, Item: i.Item, Clause: i.Clause}
	case *FnPointerInstance[R]:
		return &FnPointerInstance[R]{Ty: CloneTy(i.Ty)}
	case *UnsolvedInstance[R]:
		return &UnsolvedInstance[R]{Trait: i.Trait, Generics: CloneArgs(i.Generics)}
	case *UnknownInstance[R]:
		return &UnknownInstance[R]{Message: i.Message}
	case nil:
		return nil
	default:
		panic(ilerr.NewInvariant("unexpected trait instance %T", i))
	}
}

// cloneEach maps f over ts, keeping nil slices nil
func cloneEach[T any](ts []T, f func(T) T) []T {
	if ts == nil {
		return nil
	}
	cloned := make([]T, len(ts))
	for i, t := range ts {
		cloned[i] = f(t)
	}
	return cloned
}
