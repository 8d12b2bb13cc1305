package ir

import (
	"github.com/tyir-dev/tyir/frontend/ilerr"
)

// TypeVisitor visits a type tree without modifying it.
//
// There is one method per node kind. Implementations should embed
// VisitorBase, which provides the default recursion for every method, and
// override only the methods they are interested in. An override that wants
// to keep descending calls the embedded VisitorBase method.
type TypeVisitor[R RegionSlot] interface {
	VisitTy(ty Ty[R])
	VisitTyAdt(id TypeID, args GenericArgs[R])
	VisitTyTypeVar(id TypeVarID)
	VisitTyLiteral(lit LiteralTy)
	VisitTyNever()
	VisitTyRef(region R, pointee Ty[R], kind RefKind)
	VisitTyRawPtr(pointee Ty[R], kind RefKind)
	VisitTyTraitType(traitRef TraitRef[R], args GenericArgs[R], item TraitItemName)
	VisitArrow(inputs []Ty[R], output Ty[R])

	VisitRegion(r R)
	VisitRegionID(id RegionVarID)
	VisitTypeID(id TypeID)
	VisitTypeDeclID(id TypeDeclID)
	VisitAssumedTy(ty AssumedTy)
	VisitConstGeneric(cg ConstGeneric)
	VisitGlobalDeclID(id GlobalDeclID)
	VisitTypeVarID(id TypeVarID)
	VisitConstGenericVarID(id ConstGenericVarID)
	VisitLiteral(lit Literal)
	VisitGenericArgs(args GenericArgs[R])

	VisitTraitRef(tr TraitRef[R])
	VisitTraitDeclRef(tr TraitDeclRef[R])
	VisitTraitDeclID(id TraitDeclID)
	VisitTraitImplID(id TraitImplID)
	VisitTraitClauseID(id TraitClauseID)
	VisitTraitInstanceID(id TraitInstanceID[R])
}

// MutTypeVisitor is the exclusive counterpart of TypeVisitor: every method
// receives a pointer to the visited node, which it may overwrite.
//
// The default recursion descends in place, so a MutTypeVisitor must only be
// run on a tree nobody else holds. Clone it first otherwise.
type MutTypeVisitor[R RegionSlot] interface {
	VisitTy(ty *Ty[R])
	VisitTyAdt(id *TypeID, args *GenericArgs[R])
	VisitTyTypeVar(id *TypeVarID)
	VisitTyLiteral(lit *LiteralTy)
	VisitTyNever()
	VisitTyRef(region *R, pointee *Ty[R], kind *RefKind)
	VisitTyRawPtr(pointee *Ty[R], kind *RefKind)
	VisitTyTraitType(traitRef *TraitRef[R], args *GenericArgs[R], item *TraitItemName)
	VisitArrow(inputs *[]Ty[R], output *Ty[R])

	VisitRegion(r *R)
	VisitRegionID(id *RegionVarID)
	VisitTypeID(id *TypeID)
	VisitTypeDeclID(id *TypeDeclID)
	VisitAssumedTy(ty *AssumedTy)
	VisitConstGeneric(cg *ConstGeneric)
	VisitGlobalDeclID(id *GlobalDeclID)
	VisitTypeVarID(id *TypeVarID)
	VisitConstGenericVarID(id *ConstGenericVarID)
	VisitLiteral(lit *Literal)
	VisitGenericArgs(args *GenericArgs[R])

	VisitTraitRef(tr *TraitRef[R])
	VisitTraitDeclRef(tr *TraitDeclRef[R])
	VisitTraitDeclID(id *TraitDeclID)
	VisitTraitImplID(id *TraitImplID)
	VisitTraitClauseID(id *TraitClauseID)
	VisitTraitInstanceID(id *TraitInstanceID[R])
}

func Walk[R RegionSlot](v TypeVisitor[R], ty Ty[R])                { v.VisitTy(ty) }
func WalkArgs[R RegionSlot](v TypeVisitor[R], args GenericArgs[R]) { v.VisitGenericArgs(args) }
func WalkTraitRef[R RegionSlot](v TypeVisitor[R], tr TraitRef[R])  { v.VisitTraitRef(tr) }

func WalkMut[R RegionSlot](v MutTypeVisitor[R], ty *Ty[R])                { v.VisitTy(ty) }
func WalkArgsMut[R RegionSlot](v MutTypeVisitor[R], args *GenericArgs[R]) { v.VisitGenericArgs(args) }
func WalkTraitRefMut[R RegionSlot](v MutTypeVisitor[R], tr *TraitRef[R])  { v.VisitTraitRef(tr) }

// WalkGenericParams visits the parameters of a declaration: the ids of its
// variables, then its trait clauses
func WalkGenericParams(v TypeVisitor[Region], params GenericParams) {
	for _, r := range params.Regions {
		v.VisitRegionID(r.Index)
	}
	for _, t := range params.Types {
		v.VisitTypeVarID(t.Index)
	}
	for _, c := range params.ConstGenerics {
		v.VisitConstGenericVarID(c.Index)
	}
	for _, clause := range params.TraitClauses {
		v.VisitTraitClauseID(clause.ClauseID)
		v.VisitTraitDeclID(clause.Trait)
		v.VisitGenericArgs(clause.Generics.Args())
	}
}

func WalkPredicates(v TypeVisitor[Region], preds Predicates) {
	for _, o := range preds.RegionsOutlive {
		v.VisitRegion(o.Long)
		v.VisitRegion(o.Short)
	}
	for _, o := range preds.TypesOutlive {
		v.VisitTy(o.Ty)
		v.VisitRegion(o.Region)
	}
	for _, c := range preds.TraitTypeConstraints {
		v.VisitTraitRef(c.TraitRef)
		v.VisitGenericArgs(c.Generics)
		v.VisitTy(c.Ty)
	}
}

func WalkFunSig(v TypeVisitor[Region], sig FunSig) {
	WalkGenericParams(v, sig.Generics)
	WalkPredicates(v, sig.Preds)
	for _, input := range sig.Inputs {
		v.VisitTy(input)
	}
	v.VisitTy(sig.Output)
}

// VisitorBase implements every TypeVisitor method by descending into the
// children of the visited node. Init must be called with the embedding
// visitor, so that the recursion goes through its overrides:
//
//	c := &collector{}
//	c.Init(c)
//	ir.Walk(c, ty)
type VisitorBase[R RegionSlot] struct {
	self TypeVisitor[R]
}

func (b *VisitorBase[R]) Init(self TypeVisitor[R]) { b.self = self }

func (b VisitorBase[R]) mut() readOnly[R] {
	if b.self == nil {
		panic(ilerr.NewInvariant("VisitorBase used before Init"))
	}
	return readOnly[R]{b.self}
}

func (b VisitorBase[R]) VisitTy(ty Ty[R]) { visitTy[R](b.mut(), &ty) }
func (b VisitorBase[R]) VisitTyAdt(id TypeID, args GenericArgs[R]) {
	visitTyAdt[R](b.mut(), &id, &args)
}
func (b VisitorBase[R]) VisitTyTypeVar(id TypeVarID) { visitTyTypeVar[R](b.mut(), &id) }
func (b VisitorBase[R]) VisitTyLiteral(LiteralTy)    {}
func (b VisitorBase[R]) VisitTyNever()               {}
func (b VisitorBase[R]) VisitTyRef(region R, pointee Ty[R], kind RefKind) {
	visitTyRef[R](b.mut(), &region, &pointee, &kind)
}
func (b VisitorBase[R]) VisitTyRawPtr(pointee Ty[R], kind RefKind) {
	visitTyRawPtr[R](b.mut(), &pointee, &kind)
}
func (b VisitorBase[R]) VisitTyTraitType(traitRef TraitRef[R], args GenericArgs[R], item TraitItemName) {
	visitTyTraitType[R](b.mut(), &traitRef, &args, &item)
}
func (b VisitorBase[R]) VisitArrow(inputs []Ty[R], output Ty[R]) {
	visitArrow[R](b.mut(), &inputs, &output)
}
func (b VisitorBase[R]) VisitRegion(r R)                          { visitRegion[R](b.mut(), &r) }
func (b VisitorBase[R]) VisitRegionID(RegionVarID)                {}
func (b VisitorBase[R]) VisitTypeID(id TypeID)                    { visitTypeID[R](b.mut(), &id) }
func (b VisitorBase[R]) VisitTypeDeclID(TypeDeclID)               {}
func (b VisitorBase[R]) VisitAssumedTy(AssumedTy)                 {}
func (b VisitorBase[R]) VisitConstGeneric(cg ConstGeneric)        { visitConstGeneric[R](b.mut(), &cg) }
func (b VisitorBase[R]) VisitGlobalDeclID(GlobalDeclID)           {}
func (b VisitorBase[R]) VisitTypeVarID(TypeVarID)                 {}
func (b VisitorBase[R]) VisitConstGenericVarID(ConstGenericVarID) {}
func (b VisitorBase[R]) VisitLiteral(Literal)                     {}
func (b VisitorBase[R]) VisitGenericArgs(args GenericArgs[R])     { visitGenericArgs[R](b.mut(), &args) }
func (b VisitorBase[R]) VisitTraitRef(tr TraitRef[R])             { visitTraitRef[R](b.mut(), &tr) }
func (b VisitorBase[R]) VisitTraitDeclRef(tr TraitDeclRef[R])     { visitTraitDeclRef[R](b.mut(), &tr) }
func (b VisitorBase[R]) VisitTraitDeclID(TraitDeclID)             {}
func (b VisitorBase[R]) VisitTraitImplID(TraitImplID)             {}
func (b VisitorBase[R]) VisitTraitClauseID(TraitClauseID)         {}
func (b VisitorBase[R]) VisitTraitInstanceID(id TraitInstanceID[R]) {
	visitTraitInstanceID[R](b.mut(), &id)
}

// MutVisitorBase is the MutTypeVisitor counterpart of VisitorBase
type MutVisitorBase[R RegionSlot] struct {
	self MutTypeVisitor[R]
}

func (b *MutVisitorBase[R]) Init(self MutTypeVisitor[R]) { b.self = self }

func (b MutVisitorBase[R]) mut() MutTypeVisitor[R] {
	if b.self == nil {
		panic(ilerr.NewInvariant("MutVisitorBase used before Init"))
	}
	return b.self
}

func (b MutVisitorBase[R]) VisitTy(ty *Ty[R]) { visitTy(b.mut(), ty) }
func (b MutVisitorBase[R]) VisitTyAdt(id *TypeID, args *GenericArgs[R]) {
	visitTyAdt(b.mut(), id, args)
}
func (b MutVisitorBase[R]) VisitTyTypeVar(id *TypeVarID) { visitTyTypeVar(b.mut(), id) }
func (b MutVisitorBase[R]) VisitTyLiteral(*LiteralTy)    {}
func (b MutVisitorBase[R]) VisitTyNever()                {}
func (b MutVisitorBase[R]) VisitTyRef(region *R, pointee *Ty[R], kind *RefKind) {
	visitTyRef(b.mut(), region, pointee, kind)
}
func (b MutVisitorBase[R]) VisitTyRawPtr(pointee *Ty[R], kind *RefKind) {
	visitTyRawPtr(b.mut(), pointee, kind)
}
func (b MutVisitorBase[R]) VisitTyTraitType(traitRef *TraitRef[R], args *GenericArgs[R], item *TraitItemName) {
	visitTyTraitType(b.mut(), traitRef, args, item)
}
func (b MutVisitorBase[R]) VisitArrow(inputs *[]Ty[R], output *Ty[R]) {
	visitArrow(b.mut(), inputs, output)
}
func (b MutVisitorBase[R]) VisitRegion(r *R)                          { visitRegion(b.mut(), r) }
func (b MutVisitorBase[R]) VisitRegionID(*RegionVarID)                {}
func (b MutVisitorBase[R]) VisitTypeID(id *TypeID)                    { visitTypeID(b.mut(), id) }
func (b MutVisitorBase[R]) VisitTypeDeclID(*TypeDeclID)               {}
func (b MutVisitorBase[R]) VisitAssumedTy(*AssumedTy)                 {}
func (b MutVisitorBase[R]) VisitConstGeneric(cg *ConstGeneric)        { visitConstGeneric(b.mut(), cg) }
func (b MutVisitorBase[R]) VisitGlobalDeclID(*GlobalDeclID)           {}
func (b MutVisitorBase[R]) VisitTypeVarID(*TypeVarID)                 {}
func (b MutVisitorBase[R]) VisitConstGenericVarID(*ConstGenericVarID) {}
func (b MutVisitorBase[R]) VisitLiteral(*Literal)                     {}
func (b MutVisitorBase[R]) VisitGenericArgs(args *GenericArgs[R])     { visitGenericArgs(b.mut(), args) }
func (b MutVisitorBase[R]) VisitTraitRef(tr *TraitRef[R])             { visitTraitRef(b.mut(), tr) }
func (b MutVisitorBase[R]) VisitTraitDeclRef(tr *TraitDeclRef[R])     { visitTraitDeclRef(b.mut(), tr) }
func (b MutVisitorBase[R]) VisitTraitDeclID(*TraitDeclID)             {}
func (b MutVisitorBase[R]) VisitTraitImplID(*TraitImplID)             {}
func (b MutVisitorBase[R]) VisitTraitClauseID(*TraitClauseID)         {}
func (b MutVisitorBase[R]) VisitTraitInstanceID(id *TraitInstanceID[R]) {
	visitTraitInstanceID(b.mut(), id)
}

// The default recursion is only written once, over pointers. The read-only
// visitor reaches it through readOnly, which dereferences every node before
// handing it to the TypeVisitor, so both visitors descend in the same order.

func visitTy[R RegionSlot](v MutTypeVisitor[R], ty *Ty[R]) {
	switch t := (*ty).(type) {
	case *AdtType[R]:
		v.VisitTyAdt(&t.ID, &t.Args)
	case *VarType[R]:
		v.VisitTyTypeVar(&t.ID)
	case *LiteralType[R]:
		v.VisitTyLiteral(&t.Lit)
	case *NeverType[R]:
		v.VisitTyNever()
	case *RefType[R]:
		v.VisitTyRef(&t.Region, &t.Pointee, &t.Kind)
	case *RawPtrType[R]:
		v.VisitTyRawPtr(&t.Pointee, &t.Kind)
	case *TraitType[R]:
		v.VisitTyTraitType(&t.TraitRef, &t.Args, &t.Item)
	case *ArrowType[R]:
		v.VisitArrow(&t.Inputs, &t.Output)
	default:
		panic(ilerr.NewInvariant("unexpected type %T", t))
	}
}

func visitTyAdt[R RegionSlot](v MutTypeVisitor[R], id *TypeID, args *GenericArgs[R]) {
	v.VisitTypeID(id)
	v.VisitGenericArgs(args)
}

func visitTyTypeVar[R RegionSlot](v MutTypeVisitor[R], id *TypeVarID) {
	v.VisitTypeVarID(id)
}

func visitTyRef[R RegionSlot](v MutTypeVisitor[R], region *R, pointee *Ty[R], _ *RefKind) {
	v.VisitRegion(region)
	v.VisitTy(pointee)
}

func visitTyRawPtr[R RegionSlot](v MutTypeVisitor[R], pointee *Ty[R], _ *RefKind) {
	v.VisitTy(pointee)
}

func visitTyTraitType[R RegionSlot](v MutTypeVisitor[R], traitRef *TraitRef[R], args *GenericArgs[R], _ *TraitItemName) {
	v.VisitTraitRef(traitRef)
	v.VisitGenericArgs(args)
}

func visitArrow[R RegionSlot](v MutTypeVisitor[R], inputs *[]Ty[R], output *Ty[R]) {
	for i := range *inputs {
		v.VisitTy(&(*inputs)[i])
	}
	v.VisitTy(output)
}

func visitRegion[R RegionSlot](v MutTypeVisitor[R], r *R) {
	id, ok := (*r).Var()
	if !ok {
		return
	}
	v.VisitRegionID(&id)
	if updated, ok := regionWithVar[R](id); ok {
		*r = updated
	}
}

func visitTypeID[R RegionSlot](v MutTypeVisitor[R], id *TypeID) {
	switch id.Kind {
	case TypeIDAdt:
		v.VisitTypeDeclID(&id.Adt)
	case TypeIDAssumed:
		v.VisitAssumedTy(&id.Assumed)
	}
}

func visitConstGeneric[R RegionSlot](v MutTypeVisitor[R], cg *ConstGeneric) {
	switch c := (*cg).(type) {
	case ConstGlobal:
		v.VisitGlobalDeclID(&c.ID)
		*cg = c
	case ConstVar:
		v.VisitConstGenericVarID(&c.ID)
		*cg = c
	case ConstValue:
		v.VisitLiteral(&c.Value)
		*cg = c
	default:
		panic(ilerr.NewInvariant("unexpected const generic %T", c))
	}
}

func visitGenericArgs[R RegionSlot](v MutTypeVisitor[R], args *GenericArgs[R]) {
	for i := range args.Regions {
		v.VisitRegion(&args.Regions[i])
	}
	for i := range args.Types {
		v.VisitTy(&args.Types[i])
	}
	for i := range args.ConstGenerics {
		v.VisitConstGeneric(&args.ConstGenerics[i])
	}
	for i := range args.TraitRefs {
		v.VisitTraitRef(&args.TraitRefs[i])
	}
}

func visitTraitRef[R RegionSlot](v MutTypeVisitor[R], tr *TraitRef[R]) {
	v.VisitTraitInstanceID(&tr.TraitID)
	v.VisitGenericArgs(&tr.Generics)
	v.VisitTraitDeclRef(&tr.TraitDeclRef)
}

func visitTraitDeclRef[R RegionSlot](v MutTypeVisitor[R], tr *TraitDeclRef[R]) {
	v.VisitTraitDeclID(&tr.TraitID)
	v.VisitGenericArgs(&tr.Generics)
}

func visitTraitInstanceID[R RegionSlot](v MutTypeVisitor[R], id *TraitInstanceID[R]) {
	switch i := (*id).(type) {
	case *SelfInstance[R], *UnknownInstance[R]:
	case *ImplInstance[R]:
		v.VisitTraitImplID(&i.Impl)
	case *BuiltinInstance[R]:
		v.VisitTraitDeclID(&i.Trait)
	case *ClauseInstance[R]:
		v.VisitTraitClauseID(&i.Clause)
	case *ParentClauseInstance[R]:
		v.VisitTraitInstanceID(&i.Base)
		v.VisitTraitDeclID(&i.Trait)
		v.VisitTraitClauseID(&i.Clause)
	case *ItemClauseInstance[R]:
		v.VisitTraitInstanceID(&i.Base)
		v.VisitTraitDeclID(&i.Trait)
		v.VisitTraitClauseID(&i.Clause)
	case *FnPointerInstance[R]:
		v.VisitTy(&i.Ty)
	case *UnsolvedInstance[R]:
		v.VisitTraitDeclID(&i.Trait)
		v.VisitGenericArgs(&i.Generics)
	default:
		panic(ilerr.NewInvariant("unexpected trait instance %T", i))
	}
}

// readOnly presents a TypeVisitor as a MutTypeVisitor. It never writes
// through the pointers it receives.
type readOnly[R RegionSlot] struct {
	v TypeVisitor[R]
}

var _ MutTypeVisitor[Region] = readOnly[Region]{}

func (a readOnly[R]) VisitTy(ty *Ty[R])                           { a.v.VisitTy(*ty) }
func (a readOnly[R]) VisitTyAdt(id *TypeID, args *GenericArgs[R]) { a.v.VisitTyAdt(*id, *args) }
func (a readOnly[R]) VisitTyTypeVar(id *TypeVarID)                { a.v.VisitTyTypeVar(*id) }
func (a readOnly[R]) VisitTyLiteral(lit *LiteralTy)               { a.v.VisitTyLiteral(*lit) }
func (a readOnly[R]) VisitTyNever()                               { a.v.VisitTyNever() }
func (a readOnly[R]) VisitTyRef(region *R, pointee *Ty[R], kind *RefKind) {
	a.v.VisitTyRef(*region, *pointee, *kind)
}
func (a readOnly[R]) VisitTyRawPtr(pointee *Ty[R], kind *RefKind) { a.v.VisitTyRawPtr(*pointee, *kind) }
func (a readOnly[R]) VisitTyTraitType(traitRef *TraitRef[R], args *GenericArgs[R], item *TraitItemName) {
	a.v.VisitTyTraitType(*traitRef, *args, *item)
}
func (a readOnly[R]) VisitArrow(inputs *[]Ty[R], output *Ty[R]) { a.v.VisitArrow(*inputs, *output) }
func (a readOnly[R]) VisitRegion(r *R)                          { a.v.VisitRegion(*r) }
func (a readOnly[R]) VisitRegionID(id *RegionVarID)             { a.v.VisitRegionID(*id) }
func (a readOnly[R]) VisitTypeID(id *TypeID)                    { a.v.VisitTypeID(*id) }
func (a readOnly[R]) VisitTypeDeclID(id *TypeDeclID)            { a.v.VisitTypeDeclID(*id) }
func (a readOnly[R]) VisitAssumedTy(ty *AssumedTy)              { a.v.VisitAssumedTy(*ty) }
func (a readOnly[R]) VisitConstGeneric(cg *ConstGeneric)        { a.v.VisitConstGeneric(*cg) }
func (a readOnly[R]) VisitGlobalDeclID(id *GlobalDeclID)        { a.v.VisitGlobalDeclID(*id) }
func (a readOnly[R]) VisitTypeVarID(id *TypeVarID)              { a.v.VisitTypeVarID(*id) }
func (a readOnly[R]) VisitConstGenericVarID(id *ConstGenericVarID) {
	a.v.VisitConstGenericVarID(*id)
}
func (a readOnly[R]) VisitLiteral(lit *Literal)                   { a.v.VisitLiteral(*lit) }
func (a readOnly[R]) VisitGenericArgs(args *GenericArgs[R])       { a.v.VisitGenericArgs(*args) }
func (a readOnly[R]) VisitTraitRef(tr *TraitRef[R])               { a.v.VisitTraitRef(*tr) }
func (a readOnly[R]) VisitTraitDeclRef(tr *TraitDeclRef[R])       { a.v.VisitTraitDeclRef(*tr) }
func (a readOnly[R]) VisitTraitDeclID(id *TraitDeclID)            { a.v.VisitTraitDeclID(*id) }
func (a readOnly[R]) VisitTraitImplID(id *TraitImplID)            { a.v.VisitTraitImplID(*id) }
func (a readOnly[R]) VisitTraitClauseID(id *TraitClauseID)        { a.v.VisitTraitClauseID(*id) }
func (a readOnly[R]) VisitTraitInstanceID(id *TraitInstanceID[R]) { a.v.VisitTraitInstanceID(*id) }
