package ir

import (
	"fmt"
	"iter"
)

// Every kind of variable or declaration is identified by its own index type,
// so that a TypeVarID can never be used where a RegionVarID is expected.
//
// Variable ids (TypeVarID, RegionVarID, ConstGenericVarID, TraitClauseID) are
// dense indices into the GenericParams of the declaration that introduces them,
// and are meaningless outside of it.
type (
	TypeVarID         uint32
	RegionVarID       uint32
	ConstGenericVarID uint32
	TraitClauseID     uint32

	TypeDeclID   uint32
	GlobalDeclID uint32
	TraitDeclID  uint32
	TraitImplID  uint32
)

// Index is satisfied by all id kinds
type Index interface {
	~uint32
}

func (id TypeVarID) String() string         { return fmt.Sprintf("@T%d", uint32(id)) }
func (id RegionVarID) String() string       { return fmt.Sprintf("@R%d", uint32(id)) }
func (id ConstGenericVarID) String() string { return fmt.Sprintf("@Const%d", uint32(id)) }
func (id TraitClauseID) String() string     { return fmt.Sprintf("@TraitClause%d", uint32(id)) }
func (id TypeDeclID) String() string        { return fmt.Sprintf("@Adt%d", uint32(id)) }
func (id GlobalDeclID) String() string      { return fmt.Sprintf("@Global%d", uint32(id)) }
func (id TraitDeclID) String() string       { return fmt.Sprintf("@TraitDecl%d", uint32(id)) }
func (id TraitImplID) String() string       { return fmt.Sprintf("@TraitImpl%d", uint32(id)) }

// Generator mints fresh ids of a single kind.
//
// A Generator belongs to one declaration context: ids are handed out
// monotonically starting at 0 and are never reused.
type Generator[I Index] struct {
	next I
}

func (g *Generator[I]) Fresh() I {
	defer func() {
		g.next++
	}()
	return g.next
}

// Count is the number of ids minted so far
func (g *Generator[I]) Count() int {
	return int(g.next)
}

// Range yields 0..n-1 as ids of kind I
func Range[I Index](n int) iter.Seq[I] {
	return func(yield func(I) bool) {
		for i := 0; i < n; i++ {
			if !yield(I(i)) {
				return
			}
		}
	}
}
