package ir

// selfReplacer substitutes every SelfInstance path with a fixed instance.
// Self may occur as the base of parent and item clause paths, which the
// default recursion reaches through VisitTraitInstanceID.
type selfReplacer[R RegionSlot] struct {
	MutVisitorBase[R]
	with     TraitInstanceID[R]
	replaced int
}

func newSelfReplacer[R RegionSlot](with TraitInstanceID[R]) *selfReplacer[R] {
	r := &selfReplacer[R]{with: with}
	r.Init(r)
	return r
}

func (r *selfReplacer[R]) VisitTraitInstanceID(id *TraitInstanceID[R]) {
	if _, ok := (*id).(*SelfInstance[R]); ok {
		*id = CloneTraitInstance(r.with)
		r.replaced++
		return
	}
	r.MutVisitorBase.VisitTraitInstanceID(id)
}

func (r *selfReplacer[R]) log(what string) {
	logger.Debug("replaced Self", "in", what, "occurrences", r.replaced, "with", r.with)
}

// ReplaceSelf returns a copy of ty where every Self trait instance is
// replaced by with. ty itself is left untouched.
func ReplaceSelf[R RegionSlot](ty Ty[R], with TraitInstanceID[R]) Ty[R] {
	ty = CloneTy(ty)
	r := newSelfReplacer(with)
	WalkMut[R](r, &ty)
	r.log("type")
	return ty
}

func ReplaceSelfInArgs[R RegionSlot](args GenericArgs[R], with TraitInstanceID[R]) GenericArgs[R] {
	args = CloneArgs(args)
	r := newSelfReplacer(with)
	WalkArgsMut[R](r, &args)
	r.log("generic args")
	return args
}

func ReplaceSelfInTraitRef[R RegionSlot](tr TraitRef[R], with TraitInstanceID[R]) TraitRef[R] {
	tr = CloneTraitRef(tr)
	r := newSelfReplacer(with)
	WalkTraitRefMut[R](r, &tr)
	r.log("trait ref")
	return tr
}
