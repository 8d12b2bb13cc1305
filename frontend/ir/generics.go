package ir

// RegionVar is a region parameter. Anonymous regions have an empty Name.
type RegionVar struct {
	Index RegionVarID `json:"index"`
	Name  string      `json:"name"`
}

type TypeVar struct {
	Index TypeVarID `json:"index"`
	Name  string    `json:"name"`
}

type ConstGenericVar struct {
	Index ConstGenericVarID `json:"index"`
	Name  string            `json:"name"`
	Ty    LiteralTy         `json:"ty"`
}

// GenericParams are the parameters a declaration is generic over.
//
// The ids of each list are dense: the i-th element has index i. Use
// ParamsBuilder to construct well-formed params.
type GenericParams struct {
	Regions       []RegionVar       `json:"regions"`
	Types         []TypeVar         `json:"types"`
	ConstGenerics []ConstGenericVar `json:"const_generics"`
	TraitClauses  []TraitClause     `json:"trait_clauses"`
}

func (p GenericParams) Len() int {
	return len(p.Regions) + len(p.Types) + len(p.ConstGenerics) + len(p.TraitClauses)
}

func (p GenericParams) IsEmpty() bool {
	return p.Len() == 0
}

// IdentityArgs returns the arguments which instantiate p with its own
// variables. Trait clauses are instantiated with ClauseInstance paths.
func (p GenericParams) IdentityArgs() GenericArgs[Region] {
	args := GenericArgs[Region]{}
	for _, r := range p.Regions {
		args.Regions = append(args.Regions, VarRegion(r.Index))
	}
	for _, t := range p.Types {
		args.Types = append(args.Types, NewVar[Region](t.Index))
	}
	for _, c := range p.ConstGenerics {
		args.ConstGenerics = append(args.ConstGenerics, ConstVar{ID: c.Index})
	}
	for _, clause := range p.TraitClauses {
		generics := clause.Generics.Args()
		args.TraitRefs = append(args.TraitRefs, TraitRef[Region]{
			TraitID:  &ClauseInstance[Region]{Clause: clause.ClauseID},
			Generics: generics,
			TraitDeclRef: TraitDeclRef[Region]{
				TraitID:  clause.Trait,
				Generics: generics,
			},
		})
	}
	return args
}

// ParamsBuilder mints the ids of a single declaration's GenericParams
type ParamsBuilder struct {
	regions Generator[RegionVarID]
	types   Generator[TypeVarID]
	consts  Generator[ConstGenericVarID]
	clauses Generator[TraitClauseID]
	params  GenericParams
}

func (b *ParamsBuilder) Region(name string) Region {
	id := b.regions.Fresh()
	b.params.Regions = append(b.params.Regions, RegionVar{Index: id, Name: name})
	return VarRegion(id)
}

func (b *ParamsBuilder) Type(name string) TypeVarID {
	id := b.types.Fresh()
	b.params.Types = append(b.params.Types, TypeVar{Index: id, Name: name})
	return id
}

func (b *ParamsBuilder) ConstGeneric(name string, ty LiteralTy) ConstGenericVarID {
	id := b.consts.Fresh()
	b.params.ConstGenerics = append(b.params.ConstGenerics, ConstGenericVar{Index: id, Name: name, Ty: ty})
	return id
}

func (b *ParamsBuilder) Clause(trait TraitDeclID, generics ClauseArgs) TraitClauseID {
	id := b.clauses.Fresh()
	b.params.TraitClauses = append(b.params.TraitClauses, TraitClause{ClauseID: id, Trait: trait, Generics: generics})
	return id
}

func (b *ParamsBuilder) Build() GenericParams {
	return b.params
}

// RegionOutlives is the predicate `Long: Short`
type RegionOutlives struct {
	Long  Region `json:"long"`
	Short Region `json:"short"`
}

// TypeOutlives is the predicate `Ty: Region`
type TypeOutlives struct {
	Ty     RTy    `json:"ty"`
	Region Region `json:"region"`
}

// TraitTypeConstraint is the predicate `TraitRef::TypeName<Generics> = Ty`
type TraitTypeConstraint struct {
	TraitRef TraitRef[Region]    `json:"trait_ref"`
	Generics GenericArgs[Region] `json:"generics"`
	TypeName TraitItemName       `json:"type_name"`
	Ty       RTy                 `json:"ty"`
}

type Predicates struct {
	RegionsOutlive       []RegionOutlives      `json:"regions_outlive"`
	TypesOutlive         []TypeOutlives        `json:"types_outlive"`
	TraitTypeConstraints []TraitTypeConstraint `json:"trait_type_constraints"`
}

// FunSig is the signature of a function declaration
type FunSig struct {
	IsUnsafe bool          `json:"is_unsafe"`
	Generics GenericParams `json:"generics"`
	Preds    Predicates    `json:"preds"`
	Inputs   []RTy         `json:"inputs"`
	Output   RTy           `json:"output"`
}
