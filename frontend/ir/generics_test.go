package ir

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator(t *testing.T) {
	var g Generator[TypeVarID]
	assert.Equal(t, TypeVarID(0), g.Fresh())
	assert.Equal(t, TypeVarID(1), g.Fresh())
	assert.Equal(t, 2, g.Count())

	assert.Equal(t, []RegionVarID{0, 1, 2}, slices.Collect(Range[RegionVarID](3)))
	assert.Empty(t, slices.Collect(Range[RegionVarID](0)))
}

func TestParamsBuilder(t *testing.T) {
	var b ParamsBuilder
	a := b.Region("a")
	anon := b.Region("")
	tv := b.Type("T")
	n := b.ConstGeneric("N", IntegerLit(Usize))
	clause := b.Clause(3, ClauseArgs{Types: []RTy{NewVar[Region](tv)}})
	params := b.Build()

	assert.Equal(t, VarRegion(0), a)
	assert.Equal(t, VarRegion(1), anon)
	assert.Equal(t, TypeVarID(0), tv)
	assert.Equal(t, ConstGenericVarID(0), n)
	assert.Equal(t, TraitClauseID(0), clause)
	assert.Equal(t, 5, params.Len())
	assert.False(t, params.IsEmpty())
	assert.True(t, GenericParams{}.IsEmpty())

	for i, r := range params.Regions {
		assert.Equal(t, RegionVarID(i), r.Index)
	}
}

func TestIdentityArgs(t *testing.T) {
	sig := boxingSig()
	args := sig.Generics.IdentityArgs()

	assert.Equal(t, []Region{VarRegion(0)}, args.Regions)
	require.Len(t, args.Types, 1)
	assert.True(t, EqualTy(tyVar(0), args.Types[0]))
	require.Len(t, args.TraitRefs, 1)

	tr := args.TraitRefs[0]
	assert.Equal(t, &ClauseInstance[Region]{Clause: 0}, tr.TraitID)
	assert.Equal(t, TraitDeclID(1), tr.TraitDeclRef.TraitID)
	assert.Equal(t, "<'@R0, @T0, @TraitClause0<@T0>>", args.String())
	assert.Equal(t, sig.Generics.Len(), args.Len())
}

func TestEqualAndClone(t *testing.T) {
	ty := selfProjection()
	cloned := CloneTy(ty)

	assert.True(t, EqualTy(ty, cloned))
	assert.NotSame(t, ty, cloned)
	assert.False(t, EqualTy(ty, tyVar(0)))
	assert.True(t, EqualTy[Region](nil, nil))

	// nil and empty lists are the same
	assert.True(t, EqualArgs(GenericArgs[Region]{}, GenericArgs[Region]{Types: []RTy{}}))
	assert.True(t, ClauseArgs{}.Equal(ClauseArgs{Regions: []Region{}}))
	assert.Nil(t, CloneArgs(GenericArgs[Region]{}).Types)

	assert.False(t, EqualTraitInstance[Region](
		&ParentClauseInstance[Region]{Base: &SelfInstance[Region]{}, Trait: 1},
		&ParentClauseInstance[Region]{Base: &ImplInstance[Region]{}, Trait: 1},
	))
	assert.True(t, boxingSig().Generics.Equal(boxingSig().Generics))
}

func TestIsSolved(t *testing.T) {
	unsolved := &UnsolvedInstance[Region]{Trait: 0}

	assert.True(t, IsSolved[Region](&ImplInstance[Region]{}))
	assert.False(t, IsSolved[Region](unsolved))
	assert.False(t, IsSolved[Region](&UnknownInstance[Region]{Message: "?"}))
	assert.False(t, IsSolved[Region](&ItemClauseInstance[Region]{
		Base: &ParentClauseInstance[Region]{Base: unsolved},
	}))
	assert.True(t, IsSolved[Region](&ParentClauseInstance[Region]{Base: &SelfInstance[Region]{}}))
}
