package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selfProjection() RTy {
	self := TraitRef[Region]{
		TraitID: &ParentClauseInstance[Region]{
			Base:   &SelfInstance[Region]{},
			Trait:  1,
			Clause: 0,
		},
		Generics:     FromTypes(tyVar(0)),
		TraitDeclRef: TraitDeclRef[Region]{TraitID: 2, Generics: FromTypes(tyVar(0))},
	}
	return NewTraitType(self, GenericArgs[Region]{}, "Item")
}

func TestReplaceSelf(t *testing.T) {
	ty := selfProjection()
	original := CloneTy(ty)

	replaced := ReplaceSelf(ty, TraitInstanceID[Region](&ImplInstance[Region]{Impl: 7}))

	proj, ok := replaced.(*TraitType[Region])
	require.True(t, ok)
	parent, ok := proj.TraitRef.TraitID.(*ParentClauseInstance[Region])
	require.True(t, ok)
	assert.Equal(t, &ImplInstance[Region]{Impl: 7}, parent.Base)
	assert.Equal(t, "(parents(@TraitImpl7)::[@TraitClause0])<@T0>::Item", replaced.String())

	assert.True(t, EqualTy(original, ty), "the input must be left untouched")
}

func TestReplaceSelfInArgs(t *testing.T) {
	args := GenericArgs[Region]{
		Types: []RTy{selfProjection()},
		TraitRefs: []TraitRef[Region]{{
			TraitID:      &SelfInstance[Region]{},
			TraitDeclRef: TraitDeclRef[Region]{TraitID: 1},
		}},
	}

	replaced := ReplaceSelfInArgs(args, TraitInstanceID[Region](&ClauseInstance[Region]{Clause: 3}))

	assert.Equal(t, "<(parents(@TraitClause3)::[@TraitClause0])<@T0>::Item, @TraitClause3>", replaced.String())
	assert.Equal(t, "<(parents(Self)::[@TraitClause0])<@T0>::Item, Self>", args.String())
}

func TestReplaceSelfInTraitRef(t *testing.T) {
	tr := TraitRef[Region]{
		TraitID: &ItemClauseInstance[Region]{Base: &SelfInstance[Region]{}, Trait: 0, Item: "Item", Clause: 1},
	}
	with := &BuiltinInstance[Region]{Trait: 4}

	replaced := ReplaceSelfInTraitRef(tr, TraitInstanceID[Region](with))

	assert.Equal(t, "(builtin(@TraitDecl4)::Item::[@TraitClause1])", replaced.String())
	// every occurrence gets its own copy of the replacement
	item := replaced.TraitID.(*ItemClauseInstance[Region])
	assert.NotSame(t, with, item.Base)
}

func TestReplaceSelfWithoutSelf(t *testing.T) {
	ty := RTy(NewArrow([]RTy{tyVar(0)}, MkBox(tyVar(1))))
	assert.True(t, EqualTy(ty, ReplaceSelf(ty, TraitInstanceID[Region](&ImplInstance[Region]{}))))
}
