package types

import (
	"iter"

	"github.com/benbjohnson/immutable"
	"github.com/tyir-dev/tyir/frontend/ilerr"
	"github.com/tyir-dev/tyir/frontend/ir"
	"github.com/tyir-dev/tyir/internal/log"
	"github.com/tyir-dev/tyir/util"
)

var substLogger = ir.IRLogger(log.DefaultLogger).With("section", "subst")

// Substitution maps the variables of a tree from region slot From to region
// slot To. Every node is rebuilt: substitution always produces a fresh tree
// and leaves its input untouched.
//
// Trait instances are substituted in place, no trait resolution is
// performed again.
type Substitution[From, To ir.RegionSlot] struct {
	Region       func(From) To
	Type         func(ir.TypeVarID) ir.Ty[To]
	ConstGeneric func(ir.ConstGenericVarID) ir.ConstGeneric
}

// Identity maps every variable to itself. Substituting with it returns a
// deep copy.
func Identity[R ir.RegionSlot]() Substitution[R, R] {
	return Substitution[R, R]{
		Region:       func(r R) R { return r },
		Type:         func(id ir.TypeVarID) ir.Ty[R] { return ir.NewVar[R](id) },
		ConstGeneric: func(id ir.ConstGenericVarID) ir.ConstGeneric { return ir.ConstVar{ID: id} },
	}
}

func SubstTy[From, To ir.RegionSlot](s Substitution[From, To], ty ir.Ty[From]) ir.Ty[To] {
	switch t := ty.(type) {
	case *ir.AdtType[From]:
		return ir.NewAdt(t.ID, SubstArgs(s, t.Args))
	case *ir.VarType[From]:
		return s.Type(t.ID)
	case *ir.LiteralType[From]:
		return ir.NewLiteral[To](t.Lit)
	case *ir.NeverType[From]:
		return ir.NewNever[To]()
	case *ir.RefType[From]:
		return ir.NewRef(s.Region(t.Region), SubstTy(s, t.Pointee), t.Kind)
	case *ir.RawPtrType[From]:
		return ir.NewRawPtr(SubstTy(s, t.Pointee), t.Kind)
	case *ir.TraitType[From]:
		return ir.NewTraitType(SubstTraitRef(s, t.TraitRef), SubstArgs(s, t.Args), t.Item)
	case *ir.ArrowType[From]:
		return ir.NewArrow(substEach(t.Inputs, func(ty ir.Ty[From]) ir.Ty[To] { return SubstTy(s, ty) }), SubstTy(s, t.Output))
	case nil:
		return nil
	default:
		panic(ilerr.NewInvariant("unexpected type %T", t))
	}
}

func SubstArgs[From, To ir.RegionSlot](s Substitution[From, To], args ir.GenericArgs[From]) ir.GenericArgs[To] {
	return ir.GenericArgs[To]{
		Regions:       substEach(args.Regions, s.Region),
		Types:         substEach(args.Types, func(ty ir.Ty[From]) ir.Ty[To] { return SubstTy(s, ty) }),
		ConstGenerics: substEach(args.ConstGenerics, func(cg ir.ConstGeneric) ir.ConstGeneric { return SubstConstGeneric(s, cg) }),
		TraitRefs:     substEach(args.TraitRefs, func(tr ir.TraitRef[From]) ir.TraitRef[To] { return SubstTraitRef(s, tr) }),
	}
}

func SubstConstGeneric[From, To ir.RegionSlot](s Substitution[From, To], cg ir.ConstGeneric) ir.ConstGeneric {
	if v, ok := cg.(ir.ConstVar); ok {
		return s.ConstGeneric(v.ID)
	}
	return cg
}

func SubstTraitRef[From, To ir.RegionSlot](s Substitution[From, To], tr ir.TraitRef[From]) ir.TraitRef[To] {
	return ir.TraitRef[To]{
		TraitID:      SubstTraitInstance(s, tr.TraitID),
		Generics:     SubstArgs(s, tr.Generics),
		TraitDeclRef: SubstTraitDeclRef(s, tr.TraitDeclRef),
	}
}

func SubstTraitDeclRef[From, To ir.RegionSlot](s Substitution[From, To], tr ir.TraitDeclRef[From]) ir.TraitDeclRef[To] {
	return ir.TraitDeclRef[To]{
		TraitID:  tr.TraitID,
		Generics: SubstArgs(s, tr.Generics),
	}
}

func SubstTraitInstance[From, To ir.RegionSlot](s Substitution[From, To], id ir.TraitInstanceID[From]) ir.TraitInstanceID[To] {
	switch i := id.(type) {
	case *ir.SelfInstance[From]:
		return &ir.SelfInstance[To]{}
	case *ir.ImplInstance[From]:
		return &ir.ImplInstance[To]{Impl: i.Impl}
	case *ir.BuiltinInstance[From]:
		return &ir.BuiltinInstance[To]{Trait: i.Trait}
	case *ir.ClauseInstance[From]:
		return &ir.ClauseInstance[To]{Clause: i.Clause}
	case *ir.ParentClauseInstance[From]:
		return &ir.ParentClauseInstance[To]{Base: SubstTraitInstance(s, i.Base), Trait: i.Trait, Clause: i.Clause}
	case *ir.ItemClauseInstance[From]:
		return &ir.ItemClauseInstance[To]{Base: SubstTraitInstance(s, i.Base), Trait: i.Trait, Item: i.Item, Clause: i.Clause}
	case *ir.FnPointerInstance[From]:
		return &ir.FnPointerInstance[To]{Ty: SubstTy(s, i.Ty)}
	case *ir.UnsolvedInstance[From]:
		return &ir.UnsolvedInstance[To]{Trait: i.Trait, Generics: SubstArgs(s, i.Generics)}
	case *ir.UnknownInstance[From]:
		return &ir.UnknownInstance[To]{Message: i.Message}
	case nil:
		return nil
	default:
		panic(ilerr.NewInvariant("unexpected trait instance %T", i))
	}
}

// substEach maps f over as, keeping nil slices nil so that substituting with
// Identity gives back a tree equal to its input field by field
func substEach[A, B any](as []A, f func(A) B) []B {
	if as == nil {
		return nil
	}
	bs := make([]B, len(as))
	for i, a := range as {
		bs[i] = f(a)
	}
	return bs
}

// TypeSubst is a persistent map from type variables to types
type TypeSubst[R ir.RegionSlot] struct {
	m *immutable.Map[ir.TypeVarID, ir.Ty[R]]
}

func NewTypeSubst[R ir.RegionSlot]() TypeSubst[R] {
	return TypeSubst[R]{m: immutable.NewMap[ir.TypeVarID, ir.Ty[R]](util.IDHasher[ir.TypeVarID]())}
}

func (s TypeSubst[R]) Get(id ir.TypeVarID) (ir.Ty[R], bool) {
	if s.m == nil {
		return nil, false
	}
	return s.m.Get(id)
}

// Set returns a new TypeSubst which also maps id to ty
func (s TypeSubst[R]) Set(id ir.TypeVarID, ty ir.Ty[R]) TypeSubst[R] {
	if s.m == nil {
		s = NewTypeSubst[R]()
	}
	return TypeSubst[R]{m: s.m.Set(id, ty)}
}

func (s TypeSubst[R]) Len() int {
	if s.m == nil {
		return 0
	}
	return s.m.Len()
}

// All iterates over the bindings in ascending variable order
func (s TypeSubst[R]) All() iter.Seq2[ir.TypeVarID, ir.Ty[R]] {
	return util.SortedEntries(s.m)
}

// RegionSubst is a persistent map from region variables to regions
type RegionSubst struct {
	m *immutable.Map[ir.RegionVarID, ir.Region]
}

func NewRegionSubst() RegionSubst {
	return RegionSubst{m: immutable.NewMap[ir.RegionVarID, ir.Region](util.IDHasher[ir.RegionVarID]())}
}

func (s RegionSubst) Get(id ir.RegionVarID) (ir.Region, bool) {
	if s.m == nil {
		return ir.Region{}, false
	}
	return s.m.Get(id)
}

func (s RegionSubst) Set(id ir.RegionVarID, r ir.Region) RegionSubst {
	if s.m == nil {
		s = NewRegionSubst()
	}
	return RegionSubst{m: s.m.Set(id, r)}
}

func (s RegionSubst) Len() int {
	if s.m == nil {
		return 0
	}
	return s.m.Len()
}

func (s RegionSubst) All() iter.Seq2[ir.RegionVarID, ir.Region] {
	return util.SortedEntries(s.m)
}

// ConstGenericSubst is a persistent map from const generic variables to
// const generics
type ConstGenericSubst struct {
	m *immutable.Map[ir.ConstGenericVarID, ir.ConstGeneric]
}

func NewConstGenericSubst() ConstGenericSubst {
	return ConstGenericSubst{m: immutable.NewMap[ir.ConstGenericVarID, ir.ConstGeneric](util.IDHasher[ir.ConstGenericVarID]())}
}

func (s ConstGenericSubst) Get(id ir.ConstGenericVarID) (ir.ConstGeneric, bool) {
	if s.m == nil {
		return nil, false
	}
	return s.m.Get(id)
}

func (s ConstGenericSubst) Set(id ir.ConstGenericVarID, cg ir.ConstGeneric) ConstGenericSubst {
	if s.m == nil {
		s = NewConstGenericSubst()
	}
	return ConstGenericSubst{m: s.m.Set(id, cg)}
}

func (s ConstGenericSubst) Len() int {
	if s.m == nil {
		return 0
	}
	return s.m.Len()
}

func (s ConstGenericSubst) All() iter.Seq2[ir.ConstGenericVarID, ir.ConstGeneric] {
	return util.SortedEntries(s.m)
}

func checkLen(what string, params, args int) {
	if params != args {
		panic(ilerr.NewInvariant("cannot build %s substitution: %d parameters but %d arguments", what, params, args))
	}
}

// MakeTypeSubst binds each of params to the type at the same position
func MakeTypeSubst[R ir.RegionSlot](params []ir.TypeVar, types []ir.Ty[R]) TypeSubst[R] {
	checkLen("type", len(params), len(types))
	s := NewTypeSubst[R]()
	for i, p := range params {
		s = s.Set(p.Index, types[i])
	}
	return s
}

func MakeRegionSubst(params []ir.RegionVar, regions []ir.Region) RegionSubst {
	checkLen("region", len(params), len(regions))
	s := NewRegionSubst()
	for i, p := range params {
		s = s.Set(p.Index, regions[i])
	}
	return s
}

func MakeConstGenericSubst(params []ir.ConstGenericVar, cgs []ir.ConstGeneric) ConstGenericSubst {
	checkLen("const generic", len(params), len(cgs))
	s := NewConstGenericSubst()
	for i, p := range params {
		s = s.Set(p.Index, cgs[i])
	}
	return s
}

func mustType[R ir.RegionSlot](ts TypeSubst[R]) func(ir.TypeVarID) ir.Ty[R] {
	return func(id ir.TypeVarID) ir.Ty[R] {
		ty, ok := ts.Get(id)
		if !ok {
			panic(ilerr.NewInvariant("no binding for type variable %s", id))
		}
		return ir.CloneTy(ty)
	}
}

func mustConstGeneric(cgs ConstGenericSubst) func(ir.ConstGenericVarID) ir.ConstGeneric {
	return func(id ir.ConstGenericVarID) ir.ConstGeneric {
		cg, ok := cgs.Get(id)
		if !ok {
			panic(ilerr.NewInvariant("no binding for const generic variable %s", id))
		}
		return cg
	}
}

func mustRegion(rs RegionSubst) func(ir.Region) ir.Region {
	return func(r ir.Region) ir.Region {
		id, ok := r.Var()
		if !ok {
			return r
		}
		bound, ok := rs.Get(id)
		if !ok {
			panic(ilerr.NewInvariant("no binding for region variable %s", id))
		}
		return bound
	}
}

// EraseRegions replaces every region of ty with the erased region.
// Erasing a type twice is the same as erasing it once.
func EraseRegions[R ir.RegionSlot](ty ir.Ty[R]) ir.ETy {
	return SubstTy(erasing[R](), ty)
}

func EraseRegionsArgs[R ir.RegionSlot](args ir.GenericArgs[R]) ir.GenericArgs[ir.ErasedRegion] {
	return SubstArgs(erasing[R](), args)
}

func erasing[R ir.RegionSlot]() Substitution[R, ir.ErasedRegion] {
	return Substitution[R, ir.ErasedRegion]{
		Region:       func(R) ir.ErasedRegion { return ir.Erased },
		Type:         func(id ir.TypeVarID) ir.ETy { return ir.NewVar[ir.ErasedRegion](id) },
		ConstGeneric: func(id ir.ConstGenericVarID) ir.ConstGeneric { return ir.ConstVar{ID: id} },
	}
}

// SubstituteTypes replaces the type and const generic variables of ty,
// leaving its regions as they are. Every variable which occurs in ty must be
// bound.
func SubstituteTypes[R ir.RegionSlot](ty ir.Ty[R], ts TypeSubst[R], cgs ConstGenericSubst) ir.Ty[R] {
	return SubstTy(Substitution[R, R]{
		Region:       func(r R) R { return r },
		Type:         mustType(ts),
		ConstGeneric: mustConstGeneric(cgs),
	}, ty)
}

// EraseRegionsSubstituteTypes erases the regions of ty and replaces its type
// and const generic variables
func EraseRegionsSubstituteTypes[R ir.RegionSlot](ty ir.Ty[R], ts TypeSubst[ir.ErasedRegion], cgs ConstGenericSubst) ir.ETy {
	return SubstTy(Substitution[R, ir.ErasedRegion]{
		Region:       func(R) ir.ErasedRegion { return ir.Erased },
		Type:         mustType(ts),
		ConstGeneric: mustConstGeneric(cgs),
	}, ty)
}

// SubstituteRegionsTypes replaces the region and type variables of ty.
// 'static is left as is, and const generics are not substituted.
func SubstituteRegionsTypes(ty ir.RTy, rs RegionSubst, ts TypeSubst[ir.Region]) ir.RTy {
	return SubstTy(Substitution[ir.Region, ir.Region]{
		Region:       mustRegion(rs),
		Type:         mustType(ts),
		ConstGeneric: func(id ir.ConstGenericVarID) ir.ConstGeneric { return ir.ConstVar{ID: id} },
	}, ty)
}

// ArgsSubstitution is the substitution which instantiates a declaration
// generic over params with args. It panics if args does not match params.
func ArgsSubstitution(params ir.GenericParams, args ir.GenericArgs[ir.Region]) Substitution[ir.Region, ir.Region] {
	rs := MakeRegionSubst(params.Regions, args.Regions)
	ts := MakeTypeSubst(params.Types, args.Types)
	cgs := MakeConstGenericSubst(params.ConstGenerics, args.ConstGenerics)
	substLogger.Debug("instantiating declaration", "params", params.Len(), "args", args)
	return Substitution[ir.Region, ir.Region]{
		Region:       mustRegion(rs),
		Type:         mustType(ts),
		ConstGeneric: mustConstGeneric(cgs),
	}
}

// Partial substitutes the variables bound in rs, ts and cgs and leaves every
// other variable as it is
func Partial(rs RegionSubst, ts TypeSubst[ir.Region], cgs ConstGenericSubst) Substitution[ir.Region, ir.Region] {
	return Substitution[ir.Region, ir.Region]{
		Region: func(r ir.Region) ir.Region {
			if id, ok := r.Var(); ok {
				if bound, ok := rs.Get(id); ok {
					return bound
				}
			}
			return r
		},
		Type: func(id ir.TypeVarID) ir.RTy {
			if ty, ok := ts.Get(id); ok {
				return ir.CloneTy(ty)
			}
			return ir.NewVar[ir.Region](id)
		},
		ConstGeneric: func(id ir.ConstGenericVarID) ir.ConstGeneric {
			if cg, ok := cgs.Get(id); ok {
				return cg
			}
			return ir.ConstVar{ID: id}
		},
	}
}
