package ir

type RegionKind uint8

const (
	_ RegionKind = iota
	RegionKindStatic
	RegionKindVar
)

// Region is a lifetime slot as it appears in signatures: either 'static or a
// region variable of the enclosing declaration.
type Region struct {
	Kind RegionKind
	// ID is only meaningful when Kind is RegionKindVar
	ID RegionVarID
}

// ErasedRegion is the region slot of body-level types, which carry no lifetime
// information. It has a single value.
type ErasedRegion struct{}

// RegionSlot is what a Ty can be parametrised by: Region for signature types,
// ErasedRegion for body types.
type RegionSlot interface {
	comparable
	Region | ErasedRegion
	// Var returns the region variable of this slot, if there is one
	Var() (RegionVarID, bool)
	String() string
}

var (
	StaticRegion = Region{Kind: RegionKindStatic}
	Erased       = ErasedRegion{}
)

func VarRegion(id RegionVarID) Region {
	return Region{Kind: RegionKindVar, ID: id}
}

func (r Region) Var() (RegionVarID, bool) {
	if r.Kind == RegionKindVar {
		return r.ID, true
	}
	return 0, false
}

func (r Region) IsStatic() bool { return r.Kind == RegionKindStatic }

func (r Region) String() string {
	switch r.Kind {
	case RegionKindStatic:
		return "'static"
	case RegionKindVar:
		return "'" + r.ID.String()
	default:
		return "'_INVALID_"
	}
}

// ContainsVar is true if r is a variable which is a member of vars
func (r Region) ContainsVar(vars interface{ Contains(RegionVarID) bool }) bool {
	id, ok := r.Var()
	return ok && vars.Contains(id)
}

func (ErasedRegion) Var() (RegionVarID, bool) { return 0, false }
func (ErasedRegion) String() string           { return "'_" }

// regionWithVar builds the R holding variable id. Only Region can hold
// variables, so for ErasedRegion ok is false.
func regionWithVar[R RegionSlot](id RegionVarID) (r R, ok bool) {
	r, ok = any(VarRegion(id)).(R)
	return r, ok
}
