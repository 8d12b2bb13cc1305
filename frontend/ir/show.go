package ir

import (
	"fmt"
	"strings"
)

// ShowCtx resolves ids to human-readable names. It is only used to render
// diagnostics: nothing in this package depends on the names it returns.
type ShowCtx interface {
	TypeVarName(TypeVarID) string
	RegionVarName(RegionVarID) string
	ConstGenericVarName(ConstGenericVarID) string
	TraitClauseName(TraitClauseID) string
	TypeDeclName(TypeDeclID) string
	GlobalDeclName(GlobalDeclID) string
	TraitDeclName(TraitDeclID) string
	TraitImplName(TraitImplID) string
}

// DumbShowCtx names every id by its pretty-printed index, like @T0 or @Adt3
type DumbShowCtx struct{}

var _ ShowCtx = DumbShowCtx{}

func (DumbShowCtx) TypeVarName(id TypeVarID) string                 { return id.String() }
func (DumbShowCtx) RegionVarName(id RegionVarID) string             { return id.String() }
func (DumbShowCtx) ConstGenericVarName(id ConstGenericVarID) string { return id.String() }
func (DumbShowCtx) TraitClauseName(id TraitClauseID) string         { return id.String() }
func (DumbShowCtx) TypeDeclName(id TypeDeclID) string               { return id.String() }
func (DumbShowCtx) GlobalDeclName(id GlobalDeclID) string           { return id.String() }
func (DumbShowCtx) TraitDeclName(id TraitDeclID) string             { return id.String() }
func (DumbShowCtx) TraitImplName(id TraitImplID) string             { return id.String() }

// ParamsShowCtx names the variables of a declaration after its
// GenericParams, and defers to Outer for everything else.
// Anonymous or out-of-range variables fall back to Outer too.
type ParamsShowCtx struct {
	Params GenericParams
	Outer  ShowCtx
}

var _ ShowCtx = ParamsShowCtx{}

func (c ParamsShowCtx) TypeVarName(id TypeVarID) string {
	if int(id) < len(c.Params.Types) && c.Params.Types[id].Name != "" {
		return c.Params.Types[id].Name
	}
	return c.Outer.TypeVarName(id)
}

func (c ParamsShowCtx) RegionVarName(id RegionVarID) string {
	if int(id) < len(c.Params.Regions) && c.Params.Regions[id].Name != "" {
		return c.Params.Regions[id].Name
	}
	return c.Outer.RegionVarName(id)
}

func (c ParamsShowCtx) ConstGenericVarName(id ConstGenericVarID) string {
	if int(id) < len(c.Params.ConstGenerics) && c.Params.ConstGenerics[id].Name != "" {
		return c.Params.ConstGenerics[id].Name
	}
	return c.Outer.ConstGenericVarName(id)
}

func (c ParamsShowCtx) TraitClauseName(id TraitClauseID) string { return c.Outer.TraitClauseName(id) }
func (c ParamsShowCtx) TypeDeclName(id TypeDeclID) string       { return c.Outer.TypeDeclName(id) }
func (c ParamsShowCtx) GlobalDeclName(id GlobalDeclID) string   { return c.Outer.GlobalDeclName(id) }
func (c ParamsShowCtx) TraitDeclName(id TraitDeclID) string     { return c.Outer.TraitDeclName(id) }
func (c ParamsShowCtx) TraitImplName(id TraitImplID) string     { return c.Outer.TraitImplName(id) }

func showRegion[R RegionSlot](ctx ShowCtx, r R) string {
	if id, ok := r.Var(); ok {
		return "'" + ctx.RegionVarName(id)
	}
	return r.String()
}

func showAll[T any](ts []T, show func(T) string) []string {
	shown := make([]string, 0, len(ts))
	for _, t := range ts {
		shown = append(shown, show(t))
	}
	return shown
}

func (t *AdtType[R]) ShowIn(ctx ShowCtx) string {
	if t.ID.IsTuple() {
		return "(" + strings.Join(t.Args.showParts(ctx), ", ") + ")"
	}
	return t.ID.ShowIn(ctx) + t.Args.ShowIn(ctx)
}

func (t *VarType[R]) ShowIn(ctx ShowCtx) string { return ctx.TypeVarName(t.ID) }
func (t *LiteralType[R]) ShowIn(ShowCtx) string { return t.Lit.String() }
func (t *NeverType[R]) ShowIn(ShowCtx) string   { return "!" }

func (t *RefType[R]) ShowIn(ctx ShowCtx) string {
	if t.Kind == RefMut {
		return fmt.Sprintf("&%s mut (%s)", showRegion(ctx, t.Region), t.Pointee.ShowIn(ctx))
	}
	return fmt.Sprintf("&%s (%s)", showRegion(ctx, t.Region), t.Pointee.ShowIn(ctx))
}

func (t *RawPtrType[R]) ShowIn(ctx ShowCtx) string {
	if t.Kind == RefMut {
		return "*mut " + t.Pointee.ShowIn(ctx)
	}
	return "*const " + t.Pointee.ShowIn(ctx)
}

func (t *TraitType[R]) ShowIn(ctx ShowCtx) string {
	return t.TraitRef.ShowIn(ctx) + t.Args.ShowIn(ctx) + "::" + t.Item
}

func (t *ArrowType[R]) ShowIn(ctx ShowCtx) string {
	inputs := strings.Join(showAll(t.Inputs, func(ty Ty[R]) string { return ty.ShowIn(ctx) }), ", ")
	if IsUnit(t.Output) {
		return "fn(" + inputs + ")"
	}
	return "fn(" + inputs + ") -> " + t.Output.ShowIn(ctx)
}

func (t *AdtType[R]) String() string     { return t.ShowIn(DumbShowCtx{}) }
func (t *VarType[R]) String() string     { return t.ShowIn(DumbShowCtx{}) }
func (t *LiteralType[R]) String() string { return t.ShowIn(DumbShowCtx{}) }
func (t *NeverType[R]) String() string   { return t.ShowIn(DumbShowCtx{}) }
func (t *RefType[R]) String() string     { return t.ShowIn(DumbShowCtx{}) }
func (t *RawPtrType[R]) String() string  { return t.ShowIn(DumbShowCtx{}) }
func (t *TraitType[R]) String() string   { return t.ShowIn(DumbShowCtx{}) }
func (t *ArrowType[R]) String() string   { return t.ShowIn(DumbShowCtx{}) }

func (c ConstGlobal) ShowIn(ctx ShowCtx) string { return ctx.GlobalDeclName(c.ID) }
func (c ConstVar) ShowIn(ctx ShowCtx) string    { return ctx.ConstGenericVarName(c.ID) }
func (c ConstValue) ShowIn(ShowCtx) string      { return c.Value.String() }
func (c ConstGlobal) String() string            { return c.ShowIn(DumbShowCtx{}) }
func (c ConstVar) String() string               { return c.ShowIn(DumbShowCtx{}) }
func (c ConstValue) String() string             { return c.ShowIn(DumbShowCtx{}) }

func (a GenericArgs[R]) showParts(ctx ShowCtx) []string {
	var parts []string
	for _, r := range a.Regions {
		parts = append(parts, showRegion(ctx, r))
	}
	for _, t := range a.Types {
		parts = append(parts, t.ShowIn(ctx))
	}
	for _, c := range a.ConstGenerics {
		parts = append(parts, c.ShowIn(ctx))
	}
	for _, tr := range a.TraitRefs {
		parts = append(parts, tr.ShowIn(ctx))
	}
	return parts
}

// ShowIn renders a as `<'a, T, N, TraitRef>`, or as the empty string if a
// is empty
func (a GenericArgs[R]) ShowIn(ctx ShowCtx) string {
	if a.IsEmpty() {
		return ""
	}
	return "<" + strings.Join(a.showParts(ctx), ", ") + ">"
}

func (a GenericArgs[R]) String() string { return a.ShowIn(DumbShowCtx{}) }

func (i *SelfInstance[R]) ShowIn(ShowCtx) string       { return "Self" }
func (i *ImplInstance[R]) ShowIn(ctx ShowCtx) string   { return ctx.TraitImplName(i.Impl) }
func (i *ClauseInstance[R]) ShowIn(ctx ShowCtx) string { return ctx.TraitClauseName(i.Clause) }

func (i *BuiltinInstance[R]) ShowIn(ctx ShowCtx) string {
	return "builtin(" + ctx.TraitDeclName(i.Trait) + ")"
}

func (i *ParentClauseInstance[R]) ShowIn(ctx ShowCtx) string {
	// the clause is local to the parent trait, so it is not named in ctx
	return fmt.Sprintf("(parents(%s)::[%s])", i.Base.ShowIn(ctx), i.Clause)
}

func (i *ItemClauseInstance[R]) ShowIn(ctx ShowCtx) string {
	return fmt.Sprintf("(%s::%s::[%s])", i.Base.ShowIn(ctx), i.Item, i.Clause)
}

func (i *FnPointerInstance[R]) ShowIn(ctx ShowCtx) string {
	return "(fn_ptr:" + i.Ty.ShowIn(ctx) + ")"
}

func (i *UnsolvedInstance[R]) ShowIn(ctx ShowCtx) string {
	return "Unsolved(" + ctx.TraitDeclName(i.Trait) + i.Generics.ShowIn(ctx) + ")"
}

func (i *UnknownInstance[R]) ShowIn(ShowCtx) string { return "UNKNOWN(" + i.Message + ")" }

func (tr TraitRef[R]) ShowIn(ctx ShowCtx) string {
	return tr.TraitID.ShowIn(ctx) + tr.Generics.ShowIn(ctx)
}

func (tr TraitRef[R]) String() string { return tr.ShowIn(DumbShowCtx{}) }

func (tr TraitDeclRef[R]) ShowIn(ctx ShowCtx) string {
	return ctx.TraitDeclName(tr.TraitID) + tr.Generics.ShowIn(ctx)
}

func (c TraitClause) ShowIn(ctx ShowCtx) string {
	return "[" + ctx.TraitClauseName(c.ClauseID) + "]: " + ctx.TraitDeclName(c.Trait) + c.Generics.Args().ShowIn(ctx)
}

func (p GenericParams) showVars(ctx ShowCtx) string {
	var params []string
	for _, r := range p.Regions {
		params = append(params, "'"+ctx.RegionVarName(r.Index))
	}
	for _, t := range p.Types {
		params = append(params, ctx.TypeVarName(t.Index))
	}
	for _, c := range p.ConstGenerics {
		params = append(params, fmt.Sprintf("const %s : %s", ctx.ConstGenericVarName(c.Index), c.Ty))
	}
	if len(params) == 0 {
		return ""
	}
	return "<" + strings.Join(params, ", ") + ">"
}

func (p GenericParams) showClauses(ctx ShowCtx, b *strings.Builder) {
	for _, clause := range p.TraitClauses {
		b.WriteString("\n  " + clause.ShowIn(ctx))
	}
}

// ShowIn renders p as `<'a, T, const N : usize>` followed by its trait
// clauses, one per line
func (p GenericParams) ShowIn(ctx ShowCtx) string {
	var b strings.Builder
	b.WriteString(p.showVars(ctx))
	p.showClauses(ctx, &b)
	return b.String()
}

func (sig FunSig) ShowIn(ctx ShowCtx) string {
	ctx = ParamsShowCtx{Params: sig.Generics, Outer: ctx}
	inputs := strings.Join(showAll(sig.Inputs, func(ty RTy) string { return ty.ShowIn(ctx) }), ", ")
	var b strings.Builder
	if sig.IsUnsafe {
		b.WriteString("unsafe ")
	}
	b.WriteString("fn")
	b.WriteString(sig.Generics.showVars(ctx))
	b.WriteString("(" + inputs + ")")
	if sig.Output != nil && !IsUnit(sig.Output) {
		b.WriteString(" -> " + sig.Output.ShowIn(ctx))
	}
	sig.Generics.showClauses(ctx, &b)
	for _, c := range sig.Preds.TraitTypeConstraints {
		b.WriteString("\n  " + c.TraitRef.ShowIn(ctx) + c.Generics.ShowIn(ctx) + "::" + c.TypeName + " = " + c.Ty.ShowIn(ctx))
	}
	return b.String()
}
