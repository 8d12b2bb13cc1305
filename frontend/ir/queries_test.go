package ir

import (
	"testing"

	"github.com/hashicorp/go-set/v3"
	"github.com/stretchr/testify/assert"
)

func tyVar(id TypeVarID) RTy { return NewVar[Region](id) }

func i32() RTy { return NewLiteral[Region](IntegerLit(I32)) }

// projection is `<tr>::Item` where the trait ref mentions region 'r and
// type variable v, and the projection itself is applied to no arguments
func projection(r Region, v TypeVarID) RTy {
	tr := TraitRef[Region]{
		TraitID: &ImplInstance[Region]{Impl: 0},
		Generics: GenericArgs[Region]{
			Regions: []Region{r},
			Types:   []RTy{tyVar(v)},
		},
		TraitDeclRef: TraitDeclRef[Region]{TraitID: 0},
	}
	return NewTraitType(tr, GenericArgs[Region]{}, "Item")
}

func TestScalarQueries(t *testing.T) {
	assert.True(t, IsUnit(MkUnit[Region]()))
	assert.False(t, IsUnit(MkTuple(i32())))
	assert.False(t, IsUnit(tyVar(0)))

	assert.True(t, IsScalar(i32()))
	assert.False(t, IsScalar(RTy(NewLiteral[Region](BoolTy))))

	assert.True(t, IsSignedScalar(RTy(NewLiteral[Region](IntegerLit(I64)))))
	assert.False(t, IsSignedScalar(RTy(NewLiteral[Region](IntegerLit(U8)))))
	assert.True(t, IsUnsignedScalar(RTy(NewLiteral[Region](IntegerLit(Usize)))))
	assert.False(t, IsUnsignedScalar(i32()))

	assert.True(t, I128.IsSigned())
	assert.True(t, Usize.IsUnsigned())
	assert.False(t, Isize.IsUnsigned())
	assert.Equal(t, 8, Usize.Size())
	assert.Equal(t, 16, U128.Size())
	assert.Equal(t, 2, I16.Size())
}

func TestAsBox(t *testing.T) {
	inner, ok := AsBox(MkBox(tyVar(3)))
	assert.True(t, ok)
	assert.Equal(t, tyVar(3), inner)

	_, ok = AsBox(RTy(NewAdt(AssumedID(AssumedVec), FromTypes(tyVar(3)))))
	assert.False(t, ok)
	assert.False(t, IsBox(tyVar(3)))
}

func TestContainsRegionVar(t *testing.T) {
	vars := set.From([]RegionVarID{1})

	testCases := []struct {
		name     string
		ty       RTy
		expected bool
	}{
		{"reference to the variable", NewRef(VarRegion(1), i32(), RefShared), true},
		{"reference to another variable", NewRef(VarRegion(0), i32(), RefShared), false},
		{"static reference", NewRef(StaticRegion, i32(), RefShared), false},
		{
			"nested in adt",
			NewAdt(AdtID(0), FromTypes[Region](NewRef(VarRegion(1), i32(), RefMut))),
			true,
		},
		{"region argument", NewAdt(AdtID(0), GenericArgs[Region]{Regions: []Region{VarRegion(1)}}), true},
		{"only mentioned by a trait ref", projection(VarRegion(1), 0), false},
		{"no regions", tyVar(1), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ContainsRegionVar(tc.ty, vars))
		})
	}
}

func TestContainsVariables(t *testing.T) {
	assert.False(t, ContainsVariables(i32()))
	assert.False(t, ContainsVariables(MkTuple(i32(), MkUnit[Region]())))
	assert.True(t, ContainsVariables(MkBox(tyVar(0))))
	// a static reference still has a region slot
	assert.True(t, ContainsVariables(RTy(NewRef(StaticRegion, i32(), RefShared))))
	assert.False(t, ContainsVariables(projection(VarRegion(0), 0)))

	erased := NewRef[ErasedRegion](Erased, NewLiteral[ErasedRegion](BoolTy), RefShared)
	assert.True(t, ContainsVariables(ETy(erased)))
}

func TestContainsRegions(t *testing.T) {
	assert.False(t, ContainsRegions(MkBox(tyVar(0))))
	assert.True(t, ContainsRegions(RTy(NewRef(StaticRegion, i32(), RefShared))))
	assert.True(t, ContainsRegions(RTy(NewAdt(AdtID(0), GenericArgs[Region]{Regions: []Region{StaticRegion}}))))
}

func TestContainsNever(t *testing.T) {
	assert.True(t, ContainsNever(RTy(NewArrow([]RTy{i32()}, RTy(NewNever[Region]())))))
	assert.True(t, ContainsNever(MkBox(RTy(NewNever[Region]()))))
	assert.False(t, ContainsNever(MkTuple(i32(), tyVar(0))))
}

func TestFreeVars(t *testing.T) {
	ty := NewArrow(
		[]RTy{tyVar(2), NewRef(VarRegion(4), tyVar(0), RefShared), tyVar(2)},
		MkTuple(tyVar(1), projection(VarRegion(1), 5)),
	)

	assert.Equal(t, []TypeVarID{0, 1, 2, 5}, FreeTypeVars(RTy(ty)))
	assert.Equal(t, []RegionVarID{1, 4}, FreeRegionVars(RTy(ty)))

	assert.Nil(t, FreeTypeVars(i32()))
	assert.Nil(t, FreeRegionVars(MkBox(tyVar(0))))
}
