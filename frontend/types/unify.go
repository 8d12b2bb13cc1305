package types

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/hashicorp/go-set/v3"
	"github.com/tyir-dev/tyir/frontend/ilerr"
	"github.com/tyir-dev/tyir/frontend/ir"
	"github.com/tyir-dev/tyir/internal/log"
	"github.com/tyir-dev/tyir/util"
)

var logger = ir.IRLogger(log.DefaultLogger).With("section", "unify")

// Unifier is the result of matching a source tree, seen as a pattern, against
// a target tree. Its maps bind the variables of the source to sub-trees of
// the target.
//
// Variables of the target are never bound: unification is one-sided.
type Unifier[R ir.RegionSlot] struct {
	IgnoreRegions    bool
	RegionsMap       map[R]R
	TypeVarsMap      map[ir.TypeVarID]ir.Ty[R]
	ConstGenericsMap map[ir.ConstGenericVarID]ir.ConstGeneric

	fixedTypes  *set.Set[ir.TypeVarID]
	fixedConsts *set.Set[ir.ConstGenericVarID]
}

type UnifyOpts struct {
	IgnoreRegions bool
	// FixedTypeVars only unify with themselves
	FixedTypeVars []ir.TypeVarID
	// FixedConstGenericVars only unify with themselves
	FixedConstGenericVars []ir.ConstGenericVarID
}

func newUnifier[R ir.RegionSlot](opts UnifyOpts) *Unifier[R] {
	u := &Unifier[R]{
		IgnoreRegions:    opts.IgnoreRegions,
		RegionsMap:       map[R]R{},
		TypeVarsMap:      map[ir.TypeVarID]ir.Ty[R]{},
		ConstGenericsMap: map[ir.ConstGenericVarID]ir.ConstGeneric{},
		fixedTypes:       util.SetFromSeq(slices.Values(opts.FixedTypeVars), len(opts.FixedTypeVars)),
		fixedConsts:      util.SetFromSeq(slices.Values(opts.FixedConstGenericVars), len(opts.FixedConstGenericVars)),
	}
	// regions which are not variables can only be unified with themselves
	if static, ok := any(ir.StaticRegion).(R); ok {
		u.RegionsMap[static] = static
	}
	if erased, ok := any(ir.Erased).(R); ok {
		u.RegionsMap[erased] = erased
	}
	for _, v := range opts.FixedTypeVars {
		u.TypeVarsMap[v] = ir.NewVar[R](v)
	}
	for _, v := range opts.FixedConstGenericVars {
		u.ConstGenericsMap[v] = ir.ConstVar{ID: v}
	}
	return u
}

// UnifyArgs matches src against tgt: it finds bindings for the variables of
// src so that substituting src with them gives tgt.
//
// Source variables are linear: a variable occurring twice in src is
// rejected, even if both occurrences would be bound to the same tree.
// Regions are the exception, and may repeat as long as they are bound
// consistently. Trait refs are not unified, only their number is checked.
//
// On failure, no bindings are returned and the error is an
// *ilerr.UnifyError.
func UnifyArgs[R ir.RegionSlot](src, tgt ir.GenericArgs[R], opts UnifyOpts) (*Unifier[R], error) {
	u := newUnifier[R](opts)
	if err := u.unifyArgs(src, tgt); err != nil {
		logger.Debug("could not unify generic args", "src", src, "tgt", tgt, "err", err)
		return nil, err
	}
	logger.Debug("unified generic args", "src", src, "tgt", tgt, "bindings", len(u.TypeVarsMap))
	return u, nil
}

// UnifyArgsWithFixed unifies src with tgt ignoring regions, where the
// variables in fixedTypes and fixedConsts are rigid. Either seq may be nil.
func UnifyArgsWithFixed[R ir.RegionSlot](
	fixedTypes iter.Seq[ir.TypeVarID],
	fixedConsts iter.Seq[ir.ConstGenericVarID],
	src, tgt ir.GenericArgs[R],
) (*Unifier[R], error) {
	return UnifyArgs(src, tgt, UnifyOpts{
		IgnoreRegions:         true,
		FixedTypeVars:         collect(fixedTypes),
		FixedConstGenericVars: collect(fixedConsts),
	})
}

// collect is slices.Collect where a nil seq is empty
func collect[V any](seq iter.Seq[V]) []V {
	if seq == nil {
		return nil
	}
	return slices.Collect(seq)
}

// UnifyTy is UnifyArgs for a single pair of types
func UnifyTy[R ir.RegionSlot](src, tgt ir.Ty[R], opts UnifyOpts) (*Unifier[R], error) {
	u := newUnifier[R](opts)
	if err := u.unifyTypes(src, tgt); err != nil {
		logger.Debug("could not unify types", "src", src, "tgt", tgt, "err", err)
		return nil, err
	}
	return u, nil
}

func mismatch(code ilerr.ErrCode, src, tgt fmt.Stringer) error {
	return ilerr.New(&ilerr.UnifyError{Kind: code, Src: src, Tgt: tgt})
}

// shownList renders a list for error messages
type shownList[T fmt.Stringer] []T

func (l shownList[T]) String() string {
	shown := make([]string, len(l))
	for i, t := range l {
		shown[i] = t.String()
	}
	return "[" + strings.Join(shown, ", ") + "]"
}

func unifyLists[T fmt.Stringer](src, tgt []T, unify func(T, T) error) error {
	if len(src) != len(tgt) {
		return mismatch(ilerr.UnifyArity, shownList[T](src), shownList[T](tgt))
	}
	for i := range src {
		if err := unify(src[i], tgt[i]); err != nil {
			return err
		}
	}
	return nil
}

func (u *Unifier[R]) unifyArgs(src, tgt ir.GenericArgs[R]) error {
	if !u.IgnoreRegions {
		if err := unifyLists(src.Regions, tgt.Regions, u.unifyRegions); err != nil {
			return err
		}
	}
	if err := unifyLists(src.Types, tgt.Types, u.unifyTypes); err != nil {
		return err
	}
	if err := unifyLists(src.ConstGenerics, tgt.ConstGenerics, u.unifyConstGenerics); err != nil {
		return err
	}
	// trait refs are not unified, but both sides must have as many
	if len(src.TraitRefs) != len(tgt.TraitRefs) {
		return mismatch(ilerr.UnifyArity, shownList[ir.TraitRef[R]](src.TraitRefs), shownList[ir.TraitRef[R]](tgt.TraitRefs))
	}
	return nil
}

func (u *Unifier[R]) unifyRegions(src, tgt R) error {
	bound, ok := u.RegionsMap[src]
	if !ok {
		if _, isVar := src.Var(); !isVar {
			return mismatch(ilerr.UnifyHead, src, tgt)
		}
		u.RegionsMap[src] = tgt
		return nil
	}
	if bound == tgt {
		return nil
	}
	if _, isVar := src.Var(); isVar {
		return mismatch(ilerr.UnifyRebind, src, tgt)
	}
	return mismatch(ilerr.UnifyHead, src, tgt)
}

func (u *Unifier[R]) unifyConstGenerics(src, tgt ir.ConstGeneric) error {
	if v, ok := src.(ir.ConstVar); ok {
		if u.fixedConsts.Contains(v.ID) {
			if tv, ok := tgt.(ir.ConstVar); ok && tv.ID == v.ID {
				return nil
			}
			return mismatch(ilerr.UnifyRigid, src, tgt)
		}
		if _, bound := u.ConstGenericsMap[v.ID]; bound {
			return mismatch(ilerr.UnifyRebind, src, tgt)
		}
		u.ConstGenericsMap[v.ID] = tgt
		return nil
	}
	switch src := src.(type) {
	case ir.ConstGlobal:
		if tgt, ok := tgt.(ir.ConstGlobal); ok && src == tgt {
			return nil
		}
	case ir.ConstValue:
		if tgt, ok := tgt.(ir.ConstValue); ok && src == tgt {
			return nil
		}
	}
	return mismatch(ilerr.UnifyHead, src, tgt)
}

func (u *Unifier[R]) unifyTypes(src, tgt ir.Ty[R]) error {
	if v, ok := src.(*ir.VarType[R]); ok {
		if u.fixedTypes.Contains(v.ID) {
			if tv, ok := tgt.(*ir.VarType[R]); ok && tv.ID == v.ID {
				return nil
			}
			return mismatch(ilerr.UnifyRigid, src, tgt)
		}
		if _, bound := u.TypeVarsMap[v.ID]; bound {
			return mismatch(ilerr.UnifyRebind, src, tgt)
		}
		u.TypeVarsMap[v.ID] = tgt
		return nil
	}

	head := func() error { return mismatch(ilerr.UnifyHead, src, tgt) }
	switch s := src.(type) {
	case *ir.AdtType[R]:
		t, ok := tgt.(*ir.AdtType[R])
		if !ok || s.ID != t.ID {
			return head()
		}
		return u.unifyArgs(s.Args, t.Args)
	case *ir.LiteralType[R]:
		t, ok := tgt.(*ir.LiteralType[R])
		if !ok || s.Lit != t.Lit {
			return head()
		}
		return nil
	case *ir.NeverType[R]:
		if _, ok := tgt.(*ir.NeverType[R]); !ok {
			return head()
		}
		return nil
	case *ir.RefType[R]:
		t, ok := tgt.(*ir.RefType[R])
		if !ok || s.Kind != t.Kind {
			return head()
		}
		if !u.IgnoreRegions {
			if err := u.unifyRegions(s.Region, t.Region); err != nil {
				return err
			}
		}
		return u.unifyTypes(s.Pointee, t.Pointee)
	case *ir.RawPtrType[R]:
		t, ok := tgt.(*ir.RawPtrType[R])
		if !ok || s.Kind != t.Kind {
			return head()
		}
		return u.unifyTypes(s.Pointee, t.Pointee)
	case *ir.ArrowType[R]:
		t, ok := tgt.(*ir.ArrowType[R])
		if !ok {
			return head()
		}
		if err := unifyLists(s.Inputs, t.Inputs, u.unifyTypes); err != nil {
			return err
		}
		return u.unifyTypes(s.Output, t.Output)
	case *ir.TraitType[R]:
		t, ok := tgt.(*ir.TraitType[R])
		if !ok || s.Item != t.Item || !ir.EqualTraitRef(s.TraitRef, t.TraitRef) {
			return head()
		}
		return u.unifyArgs(s.Args, t.Args)
	default:
		return head()
	}
}

// Substitution maps the bound variables of the source to their bindings,
// and every other variable to itself
func (u *Unifier[R]) Substitution() Substitution[R, R] {
	return Substitution[R, R]{
		Region: func(r R) R {
			if bound, ok := u.RegionsMap[r]; ok {
				return bound
			}
			return r
		},
		Type: func(id ir.TypeVarID) ir.Ty[R] {
			if bound, ok := u.TypeVarsMap[id]; ok {
				return ir.CloneTy(bound)
			}
			return ir.NewVar[R](id)
		},
		ConstGeneric: func(id ir.ConstGenericVarID) ir.ConstGeneric {
			if bound, ok := u.ConstGenericsMap[id]; ok {
				return bound
			}
			return ir.ConstVar{ID: id}
		},
	}
}

// ApplyArgs substitutes the bindings of u in args. Applied to the source of a
// successful unification, it gives back the target, up to the regions if
// they were ignored.
func (u *Unifier[R]) ApplyArgs(args ir.GenericArgs[R]) ir.GenericArgs[R] {
	return SubstArgs(u.Substitution(), args)
}

func (u *Unifier[R]) ApplyTy(ty ir.Ty[R]) ir.Ty[R] {
	return SubstTy(u.Substitution(), ty)
}

// TypeSubst returns the type bindings of u as a persistent map
func (u *Unifier[R]) TypeSubst() TypeSubst[R] {
	s := NewTypeSubst[R]()
	for id, ty := range u.TypeVarsMap {
		s = s.Set(id, ty)
	}
	return s
}

func (u *Unifier[R]) ConstGenericSubst() ConstGenericSubst {
	s := NewConstGenericSubst()
	for id, cg := range u.ConstGenericsMap {
		s = s.Set(id, cg)
	}
	return s
}
