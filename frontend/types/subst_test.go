package types

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyir-dev/tyir/frontend/ir"
)

func tyVar(id ir.TypeVarID) ir.RTy { return ir.NewVar[ir.Region](id) }

func lit(t ir.IntegerTy) ir.RTy { return ir.NewLiteral[ir.Region](ir.IntegerLit(t)) }

func ref(r ir.Region, pointee ir.RTy) ir.RTy { return ir.NewRef(r, pointee, ir.RefShared) }

func adt(id ir.TypeDeclID, args ir.GenericArgs[ir.Region]) ir.RTy {
	return ir.NewAdt(ir.AdtID(id), args)
}

// sampleTy mentions every kind of variable, including in a trait ref
func sampleTy() ir.RTy {
	tr := ir.TraitRef[ir.Region]{
		TraitID:      &ir.ParentClauseInstance[ir.Region]{Base: &ir.SelfInstance[ir.Region]{}, Trait: 0, Clause: 0},
		Generics:     ir.GenericArgs[ir.Region]{Regions: []ir.Region{ir.VarRegion(1)}, Types: []ir.RTy{tyVar(1)}},
		TraitDeclRef: ir.TraitDeclRef[ir.Region]{TraitID: 0},
	}
	return ir.NewArrow(
		[]ir.RTy{
			ref(ir.VarRegion(0), tyVar(0)),
			adt(2, ir.GenericArgs[ir.Region]{
				Regions:       []ir.Region{ir.StaticRegion},
				ConstGenerics: []ir.ConstGeneric{ir.ConstVar{ID: 0}},
			}),
		},
		ir.RTy(ir.NewTraitType(tr, ir.GenericArgs[ir.Region]{}, "Item")),
	)
}

func TestIdentitySubstitution(t *testing.T) {
	ty := sampleTy()
	substituted := SubstTy(Identity[ir.Region](), ty)

	assert.Equal(t, ty, substituted)
	assert.NotSame(t, ty, substituted)
}

func TestEraseRegions(t *testing.T) {
	erased := EraseRegions(sampleTy())

	assert.Equal(t, "fn(&'_ (@T0), @Adt2<'_, @Const0>) -> (parents(Self)::[@TraitClause0])<'_, @T1>::Item", erased.String())
	assert.False(t, ir.ContainsRegionVar(erased, ir.RegionVarSet(regionSet{})))
	assert.Equal(t, erased, EraseRegions(erased), "erasing twice is erasing once")
}

type regionSet struct{}

func (regionSet) Contains(ir.RegionVarID) bool { return true }

func TestSubstituteTypes(t *testing.T) {
	ts := NewTypeSubst[ir.Region]().
		Set(0, lit(ir.U8)).
		Set(1, ir.MkBox(tyVar(7)))
	cgs := NewConstGenericSubst().Set(0, ir.ConstValue{Value: ir.ScalarLiteral(ir.UnsignedScalar(ir.Usize, 3))})

	substituted := SubstituteTypes(sampleTy(), ts, cgs)

	assert.Equal(t, "fn(&'@R0 (u8), @Adt2<'static, 3:usize>) -> (parents(Self)::[@TraitClause0])<'@R1, Box<@T7>>::Item", substituted.String())
}

func TestSubstituteTypesMissingBinding(t *testing.T) {
	ts := NewTypeSubst[ir.Region]().Set(0, lit(ir.U8))

	assert.Panics(t, func() {
		SubstituteTypes(sampleTy(), ts, NewConstGenericSubst())
	})
}

func TestEraseRegionsSubstituteTypes(t *testing.T) {
	ts := NewTypeSubst[ir.ErasedRegion]().
		Set(0, ir.NewLiteral[ir.ErasedRegion](ir.BoolTy)).
		Set(1, ir.NewNever[ir.ErasedRegion]())
	cgs := NewConstGenericSubst().Set(0, ir.ConstGlobal{ID: 4})

	substituted := EraseRegionsSubstituteTypes(sampleTy(), ts, cgs)

	assert.Equal(t, "fn(&'_ (bool), @Adt2<'_, @Global4>) -> (parents(Self)::[@TraitClause0])<'_, !>::Item", substituted.String())
}

func TestSubstituteRegionsTypes(t *testing.T) {
	rs := MakeRegionSubst(
		[]ir.RegionVar{{Index: 0}, {Index: 1}},
		[]ir.Region{ir.StaticRegion, ir.VarRegion(5)},
	)
	ts := MakeTypeSubst(
		[]ir.TypeVar{{Index: 0}, {Index: 1}},
		[]ir.RTy{tyVar(1), tyVar(0)},
	)

	substituted := SubstituteRegionsTypes(sampleTy(), rs, ts)

	// const generics are left as they are
	assert.Equal(t, "fn(&'static (@T1), @Adt2<'static, @Const0>) -> (parents(Self)::[@TraitClause0])<'@R5, @T0>::Item", substituted.String())

	assert.Panics(t, func() {
		SubstituteRegionsTypes(sampleTy(), NewRegionSubst(), ts)
	}, "region variables must all be bound")
}

func TestMakeSubstArity(t *testing.T) {
	assert.Panics(t, func() {
		MakeTypeSubst([]ir.TypeVar{{Index: 0}}, []ir.RTy{})
	})
	assert.Panics(t, func() {
		MakeRegionSubst(nil, []ir.Region{ir.StaticRegion})
	})
	assert.Panics(t, func() {
		MakeConstGenericSubst([]ir.ConstGenericVar{{Index: 0}}, nil)
	})
	assert.NotPanics(t, func() {
		MakeConstGenericSubst(nil, nil)
	})
}

func TestPersistentSubst(t *testing.T) {
	empty := NewTypeSubst[ir.Region]()
	one := empty.Set(3, lit(ir.I8))
	two := one.Set(1, lit(ir.I16))

	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 1, one.Len())
	assert.Equal(t, 2, two.Len())

	_, ok := one.Get(1)
	assert.False(t, ok, "Set must not modify the map it is called on")

	var zero TypeSubst[ir.Region]
	assert.Equal(t, 0, zero.Len())
	_, ok = zero.Get(0)
	assert.False(t, ok)

	var ids []ir.TypeVarID
	for id := range two.All() {
		ids = append(ids, id)
	}
	assert.Equal(t, []ir.TypeVarID{1, 3}, ids)
}

func TestArgsSubstitution(t *testing.T) {
	var b ir.ParamsBuilder
	a := b.Region("a")
	tv := b.Type("T")
	params := b.Build()
	field := ref(a, ir.MkBox(tyVar(tv)))

	s := ArgsSubstitution(params, ir.GenericArgs[ir.Region]{
		Regions: []ir.Region{ir.StaticRegion},
		Types:   []ir.RTy{lit(ir.U32)},
	})

	assert.Equal(t, "&'static (Box<u32>)", SubstTy(s, field).String())

	assert.Panics(t, func() {
		ArgsSubstitution(params, ir.GenericArgs[ir.Region]{})
	})
}

func TestSubstDoesNotShareBindings(t *testing.T) {
	bound := ir.MkBox(tyVar(9))
	ts := NewTypeSubst[ir.Region]().Set(0, bound)
	ty := ir.MkTuple(tyVar(0), tyVar(0))

	substituted := SubstituteTypes(ty, ts, NewConstGenericSubst()).(*ir.AdtType[ir.Region])
	require.Len(t, substituted.Args.Types, 2)
	assert.NotSame(t, substituted.Args.Types[0], substituted.Args.Types[1])
	assert.NotSame(t, bound, substituted.Args.Types[0])
}

func TestUnifierSubstitution(t *testing.T) {
	src := ir.GenericArgs[ir.Region]{Types: []ir.RTy{tyVar(0), ir.MkBox(tyVar(1))}}
	tgt := ir.GenericArgs[ir.Region]{Types: []ir.RTy{lit(ir.U8), ir.MkBox(ref(ir.StaticRegion, tyVar(4)))}}

	u, err := UnifyArgs(src, tgt, UnifyOpts{})
	require.NoError(t, err)

	got := maps.Collect(u.TypeSubst().All())
	assert.Len(t, got, 2)
	assert.Equal(t, lit(ir.U8), got[0])
}

func TestPartialSubstitution(t *testing.T) {
	rs := NewRegionSubst().Set(1, ir.StaticRegion)
	ts := NewTypeSubst[ir.Region]().Set(0, lit(ir.I64))

	substituted := SubstTy(Partial(rs, ts, NewConstGenericSubst()), sampleTy())

	assert.Equal(t, "fn(&'@R0 (i64), @Adt2<'static, @Const0>) -> (parents(Self)::[@TraitClause0])<'static, @T1>::Item", substituted.String())
}
