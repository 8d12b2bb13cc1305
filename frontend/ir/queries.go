package ir

import (
	"github.com/tyir-dev/tyir/util"
)

func IsUnit[R RegionSlot](ty Ty[R]) bool {
	adt, ok := ty.(*AdtType[R])
	return ok && adt.ID.IsTuple() && len(adt.Args.Types) == 0
}

func IsScalar[R RegionSlot](ty Ty[R]) bool {
	lit, ok := ty.(*LiteralType[R])
	return ok && lit.Lit.IsInteger()
}

func IsSignedScalar[R RegionSlot](ty Ty[R]) bool {
	lit, ok := ty.(*LiteralType[R])
	return ok && lit.Lit.IsInteger() && lit.Lit.Integer.IsSigned()
}

func IsUnsignedScalar[R RegionSlot](ty Ty[R]) bool {
	lit, ok := ty.(*LiteralType[R])
	return ok && lit.Lit.IsInteger() && lit.Lit.Integer.IsUnsigned()
}

func IsBox[R RegionSlot](ty Ty[R]) bool {
	_, ok := AsBox(ty)
	return ok
}

// AsBox returns T if ty is Box<T>
func AsBox[R RegionSlot](ty Ty[R]) (Ty[R], bool) {
	adt, ok := ty.(*AdtType[R])
	if !ok || adt.ID != AssumedID(AssumedBox) || len(adt.Args.Types) != 1 {
		return nil, false
	}
	return adt.Args.Types[0], true
}

// queryBase is embedded by the visitors backing the queries below, which
// look at the structure of a type and not at the trait refs it mentions.
// For a TraitType, only the projected generic args are examined.
type queryBase[R RegionSlot] struct {
	VisitorBase[R]
}

func (queryBase[R]) VisitTraitRef(TraitRef[R]) {}

type regionVarFinder[R RegionSlot] struct {
	queryBase[R]
	vars  RegionVarSet
	found bool
}

func (f *regionVarFinder[R]) VisitRegion(r R) {
	if id, ok := r.Var(); ok && f.vars.Contains(id) {
		f.found = true
	}
}

// RegionVarSet is satisfied by *set.Set[RegionVarID] from hashicorp/go-set
type RegionVarSet interface {
	Contains(RegionVarID) bool
}

// ContainsRegionVar is true if ty mentions one of the region variables in
// vars
func ContainsRegionVar[R RegionSlot](ty Ty[R], vars RegionVarSet) bool {
	f := &regionVarFinder[R]{vars: vars}
	f.Init(f)
	Walk[R](f, ty)
	return f.found
}

type variableFinder[R RegionSlot] struct {
	queryBase[R]
	types, regions bool
}

func (f *variableFinder[R]) VisitTypeVarID(TypeVarID) { f.types = true }
func (f *variableFinder[R]) VisitRegion(R)            { f.regions = true }

func findVariables[R RegionSlot](ty Ty[R]) *variableFinder[R] {
	f := &variableFinder[R]{}
	f.Init(f)
	Walk[R](f, ty)
	return f
}

// ContainsVariables is true if ty mentions a type variable or any region.
// A reference always counts, as it carries a region slot.
func ContainsVariables[R RegionSlot](ty Ty[R]) bool {
	f := findVariables(ty)
	return f.types || f.regions
}

// ContainsRegions is true if ty has a region slot anywhere, erased or not
func ContainsRegions[R RegionSlot](ty Ty[R]) bool {
	return findVariables(ty).regions
}

type neverFinder[R RegionSlot] struct {
	queryBase[R]
	found bool
}

func (f *neverFinder[R]) VisitTyNever() { f.found = true }

func ContainsNever[R RegionSlot](ty Ty[R]) bool {
	f := &neverFinder[R]{}
	f.Init(f)
	Walk[R](f, ty)
	return f.found
}

type freeVarCollector[R RegionSlot] struct {
	VisitorBase[R]
	types   []TypeVarID
	regions []RegionVarID
}

func (c *freeVarCollector[R]) VisitTypeVarID(id TypeVarID)  { c.types = append(c.types, id) }
func (c *freeVarCollector[R]) VisitRegionID(id RegionVarID) { c.regions = append(c.regions, id) }

func collectFreeVars[R RegionSlot](ty Ty[R]) *freeVarCollector[R] {
	c := &freeVarCollector[R]{}
	c.Init(c)
	Walk[R](c, ty)
	return c
}

// FreeTypeVars returns the type variables of ty, trait refs included,
// sorted and without duplicates
func FreeTypeVars[R RegionSlot](ty Ty[R]) []TypeVarID {
	return util.SortedUniq(collectFreeVars(ty).types)
}

// FreeRegionVars returns the region variables of ty, trait refs included,
// sorted and without duplicates
func FreeRegionVars[R RegionSlot](ty Ty[R]) []RegionVarID {
	return util.SortedUniq(collectFreeVars(ty).regions)
}
