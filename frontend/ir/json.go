package ir

import (
	"bytes"
	"encoding/json"
	"strconv"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/tyir-dev/tyir/frontend/ilerr"
)

// The IR is encoded as JSON positionally: sum types are externally tagged,
// so unit variants are a plain string like "Never" and other variants are a
// single-key object like {"TypeVar": 0}. The payload of a tuple variant is
// an array holding its fields in declared order, e.g.
//
//	{"Ref": ["Static", {"TypeVar": 0}, "Shared"]}
//
// Structs are objects whose keys follow the order of their fields.

func tagged(tag string, payload any) ([]byte, error) {
	p, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	b := []byte{'{'}
	b = strconv.AppendQuote(b, tag)
	b = append(b, ':')
	b = append(b, p...)
	return append(b, '}'), nil
}

func unitVariant(tag string) ([]byte, error) {
	return json.Marshal(tag)
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// untag splits an externally tagged value into its tag and payload. The
// payload of a unit variant is nil.
func untag(data []byte) (string, json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var tag string
		err := json.Unmarshal(data, &tag)
		return tag, nil, err
	}
	var variant map[string]json.RawMessage
	if err := json.Unmarshal(data, &variant); err != nil {
		return "", nil, err
	}
	if len(variant) != 1 {
		return "", nil, errors.Errorf("expected a single variant, found %d keys", len(variant))
	}
	for tag, payload := range variant {
		return tag, payload, nil
	}
	panic("unreachable")
}

// positional decodes the array payload of a tuple variant, one element into
// each of fields
func positional(payload json.RawMessage, fields ...any) error {
	if payload == nil {
		return errors.New("missing payload")
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(payload, &elems); err != nil {
		return err
	}
	if len(elems) != len(fields) {
		return errors.Errorf("expected %d fields, found %d", len(fields), len(elems))
	}
	for i := range elems {
		if err := json.Unmarshal(elems[i], fields[i]); err != nil {
			return errors.Wrapf(err, "field %d", i)
		}
	}
	return nil
}

func (r Region) MarshalJSON() ([]byte, error) {
	if id, ok := r.Var(); ok {
		return tagged("Var", id)
	}
	return unitVariant("Static")
}

func (r *Region) UnmarshalJSON(data []byte) error {
	tag, payload, err := untag(data)
	if err != nil {
		return errors.Wrap(err, "region")
	}
	switch tag {
	case "Static":
		*r = StaticRegion
	case "Var":
		var id RegionVarID
		if err := json.Unmarshal(payload, &id); err != nil {
			return errors.Wrap(err, "region variable")
		}
		*r = VarRegion(id)
	default:
		return errors.Errorf("unknown region %q", tag)
	}
	return nil
}

func (ErasedRegion) MarshalJSON() ([]byte, error) { return unitVariant("Erased") }

func (*ErasedRegion) UnmarshalJSON(data []byte) error {
	tag, _, err := untag(data)
	if err != nil {
		return errors.Wrap(err, "erased region")
	}
	if tag != "Erased" {
		return errors.Errorf("expected an erased region, found %q", tag)
	}
	return nil
}

func (t IntegerTy) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *IntegerTy) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, ok := ParseIntegerTy(name)
	if !ok {
		return errors.Errorf("unknown integer type %q", name)
	}
	*t = parsed
	return nil
}

func (l LiteralTy) MarshalJSON() ([]byte, error) {
	switch l.Kind {
	case LiteralInteger:
		return tagged("Integer", l.Integer)
	case LiteralBool:
		return unitVariant("Bool")
	case LiteralChar:
		return unitVariant("Char")
	default:
		return nil, errors.Errorf("invalid literal type kind %d", l.Kind)
	}
}

func (l *LiteralTy) UnmarshalJSON(data []byte) error {
	tag, payload, err := untag(data)
	if err != nil {
		return errors.Wrap(err, "literal type")
	}
	switch tag {
	case "Integer":
		var t IntegerTy
		if err := json.Unmarshal(payload, &t); err != nil {
			return err
		}
		*l = IntegerLit(t)
	case "Bool":
		*l = BoolTy
	case "Char":
		*l = CharTy
	default:
		return errors.Errorf("unknown literal type %q", tag)
	}
	return nil
}

func (v ScalarValue) MarshalJSON() ([]byte, error) {
	if v.Ty.IsSigned() {
		return json.Marshal([]any{v.Ty, v.Int})
	}
	return json.Marshal([]any{v.Ty, v.Uint})
}

func (v *ScalarValue) UnmarshalJSON(data []byte) error {
	var ty IntegerTy
	var n json.Number
	if err := positional(data, &ty, &n); err != nil {
		return errors.Wrap(err, "scalar")
	}
	var err error
	if ty.IsSigned() {
		var i int64
		i, err = strconv.ParseInt(n.String(), 10, 64)
		*v = SignedScalar(ty, i)
	} else {
		var u uint64
		u, err = strconv.ParseUint(n.String(), 10, 64)
		*v = UnsignedScalar(ty, u)
	}
	return errors.Wrapf(err, "scalar %s", ty)
}

func (l Literal) MarshalJSON() ([]byte, error) {
	switch l.Kind {
	case LiteralInteger:
		return tagged("Scalar", l.Scalar)
	case LiteralBool:
		return tagged("Bool", l.Bool)
	case LiteralChar:
		if !utf8.ValidRune(l.Char) {
			return nil, errors.Errorf("invalid char literal %U", l.Char)
		}
		return tagged("Char", string(l.Char))
	default:
		return nil, errors.Errorf("invalid literal kind %d", l.Kind)
	}
}

func (l *Literal) UnmarshalJSON(data []byte) error {
	tag, payload, err := untag(data)
	if err != nil {
		return errors.Wrap(err, "literal")
	}
	switch tag {
	case "Scalar":
		var v ScalarValue
		if err := json.Unmarshal(payload, &v); err != nil {
			return err
		}
		*l = ScalarLiteral(v)
	case "Bool":
		var b bool
		if err := json.Unmarshal(payload, &b); err != nil {
			return err
		}
		*l = BoolLiteral(b)
	case "Char":
		var s string
		if err := json.Unmarshal(payload, &s); err != nil {
			return err
		}
		runes := []rune(s)
		if len(runes) != 1 {
			return errors.Errorf("expected a single char, found %q", s)
		}
		*l = CharLiteral(runes[0])
	default:
		return errors.Errorf("unknown literal %q", tag)
	}
	return nil
}

func (id TypeID) MarshalJSON() ([]byte, error) {
	switch id.Kind {
	case TypeIDAdt:
		return tagged("Adt", id.Adt)
	case TypeIDTuple:
		return unitVariant("Tuple")
	case TypeIDAssumed:
		return tagged("Assumed", id.Assumed.String())
	default:
		return nil, errors.Errorf("invalid type id kind %d", id.Kind)
	}
}

func (id *TypeID) UnmarshalJSON(data []byte) error {
	tag, payload, err := untag(data)
	if err != nil {
		return errors.Wrap(err, "type id")
	}
	switch tag {
	case "Adt":
		var decl TypeDeclID
		if err := json.Unmarshal(payload, &decl); err != nil {
			return err
		}
		*id = AdtID(decl)
	case "Tuple":
		*id = TupleID
	case "Assumed":
		var name string
		if err := json.Unmarshal(payload, &name); err != nil {
			return err
		}
		assumed, ok := ParseAssumedTy(name)
		if !ok {
			return errors.Errorf("unknown assumed type %q", name)
		}
		*id = AssumedID(assumed)
	default:
		return errors.Errorf("unknown type id %q", tag)
	}
	return nil
}

func (k RefKind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

func (k *RefKind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "Mut":
		*k = RefMut
	case "Shared":
		*k = RefShared
	default:
		return errors.Errorf("unknown ref kind %q", name)
	}
	return nil
}

func (t *AdtType[R]) MarshalJSON() ([]byte, error)     { return tagged("Adt", []any{t.ID, t.Args}) }
func (t *VarType[R]) MarshalJSON() ([]byte, error)     { return tagged("TypeVar", t.ID) }
func (t *LiteralType[R]) MarshalJSON() ([]byte, error) { return tagged("Literal", t.Lit) }
func (t *NeverType[R]) MarshalJSON() ([]byte, error)   { return unitVariant("Never") }
func (t *RefType[R]) MarshalJSON() ([]byte, error) {
	return tagged("Ref", []any{t.Region, t.Pointee, t.Kind})
}
func (t *RawPtrType[R]) MarshalJSON() ([]byte, error) {
	return tagged("RawPtr", []any{t.Pointee, t.Kind})
}
func (t *TraitType[R]) MarshalJSON() ([]byte, error) {
	return tagged("TraitType", []any{t.TraitRef, t.Args, t.Item})
}
func (t *ArrowType[R]) MarshalJSON() ([]byte, error) {
	return tagged("Arrow", []any{t.Inputs, t.Output})
}

// tyJSON decodes a Ty, which encoding/json cannot do on its own as Ty is an
// interface
type tyJSON[R RegionSlot] struct{ Ty Ty[R] }

func (t *tyJSON[R]) UnmarshalJSON(data []byte) (err error) {
	t.Ty, err = decodeTy[R](data)
	return err
}

func unwrapTys[R RegionSlot](tys []tyJSON[R]) []Ty[R] {
	if tys == nil {
		return nil
	}
	unwrapped := make([]Ty[R], len(tys))
	for i, t := range tys {
		unwrapped[i] = t.Ty
	}
	return unwrapped
}

func decodeTy[R RegionSlot](data []byte) (Ty[R], error) {
	if isNull(data) {
		return nil, errors.New("expected a type, got null")
	}
	tag, payload, err := untag(data)
	if err != nil {
		return nil, errors.Wrap(err, "type")
	}
	switch tag {
	case "Adt":
		var id TypeID
		var args GenericArgs[R]
		if err := positional(payload, &id, &args); err != nil {
			return nil, errors.Wrap(err, "Adt")
		}
		return NewAdt(id, args), nil
	case "TypeVar":
		var id TypeVarID
		if err := json.Unmarshal(payload, &id); err != nil {
			return nil, errors.Wrap(err, "TypeVar")
		}
		return NewVar[R](id), nil
	case "Literal":
		var lit LiteralTy
		if err := json.Unmarshal(payload, &lit); err != nil {
			return nil, errors.Wrap(err, "Literal")
		}
		return NewLiteral[R](lit), nil
	case "Never":
		return NewNever[R](), nil
	case "Ref":
		var region R
		var pointee tyJSON[R]
		var kind RefKind
		if err := positional(payload, &region, &pointee, &kind); err != nil {
			return nil, errors.Wrap(err, "Ref")
		}
		return NewRef(region, pointee.Ty, kind), nil
	case "RawPtr":
		var pointee tyJSON[R]
		var kind RefKind
		if err := positional(payload, &pointee, &kind); err != nil {
			return nil, errors.Wrap(err, "RawPtr")
		}
		return NewRawPtr(pointee.Ty, kind), nil
	case "TraitType":
		var traitRef TraitRef[R]
		var args GenericArgs[R]
		var item TraitItemName
		if err := positional(payload, &traitRef, &args, &item); err != nil {
			return nil, errors.Wrap(err, "TraitType")
		}
		return NewTraitType(traitRef, args, item), nil
	case "Arrow":
		var inputs []tyJSON[R]
		var output tyJSON[R]
		if err := positional(payload, &inputs, &output); err != nil {
			return nil, errors.Wrap(err, "Arrow")
		}
		return NewArrow(unwrapTys(inputs), output.Ty), nil
	default:
		return nil, errors.Errorf("unknown type %q", tag)
	}
}

func (c ConstGlobal) MarshalJSON() ([]byte, error) { return tagged("Global", c.ID) }
func (c ConstVar) MarshalJSON() ([]byte, error)    { return tagged("Var", c.ID) }
func (c ConstValue) MarshalJSON() ([]byte, error)  { return tagged("Value", c.Value) }

type constGenericJSON struct{ ConstGeneric ConstGeneric }

func (c *constGenericJSON) UnmarshalJSON(data []byte) (err error) {
	c.ConstGeneric, err = decodeConstGeneric(data)
	return err
}

func unwrapConstGenerics(cgs []constGenericJSON) []ConstGeneric {
	if cgs == nil {
		return nil
	}
	unwrapped := make([]ConstGeneric, len(cgs))
	for i, c := range cgs {
		unwrapped[i] = c.ConstGeneric
	}
	return unwrapped
}

func decodeConstGeneric(data []byte) (ConstGeneric, error) {
	tag, payload, err := untag(data)
	if err != nil {
		return nil, errors.Wrap(err, "const generic")
	}
	switch tag {
	case "Global":
		var c ConstGlobal
		err = json.Unmarshal(payload, &c.ID)
		return c, err
	case "Var":
		var c ConstVar
		err = json.Unmarshal(payload, &c.ID)
		return c, err
	case "Value":
		var c ConstValue
		err = json.Unmarshal(payload, &c.Value)
		return c, err
	default:
		return nil, errors.Errorf("unknown const generic %q", tag)
	}
}

func (a *GenericArgs[R]) UnmarshalJSON(data []byte) error {
	var raw struct {
		Regions       []R                `json:"regions"`
		Types         []tyJSON[R]        `json:"types"`
		ConstGenerics []constGenericJSON `json:"const_generics"`
		TraitRefs     []TraitRef[R]      `json:"trait_refs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "generic args")
	}
	*a = GenericArgs[R]{
		Regions:       raw.Regions,
		Types:         unwrapTys(raw.Types),
		ConstGenerics: unwrapConstGenerics(raw.ConstGenerics),
		TraitRefs:     raw.TraitRefs,
	}
	return nil
}

func (a *ClauseArgs) UnmarshalJSON(data []byte) error {
	var args GenericArgs[Region]
	if err := json.Unmarshal(data, &args); err != nil {
		return err
	}
	if len(args.TraitRefs) > 0 {
		return errors.New("trait clause arguments cannot have trait refs")
	}
	*a = ClauseArgs{Regions: args.Regions, Types: args.Types, ConstGenerics: args.ConstGenerics}
	return nil
}

func (i *SelfInstance[R]) MarshalJSON() ([]byte, error)    { return unitVariant("SelfId") }
func (i *ImplInstance[R]) MarshalJSON() ([]byte, error)    { return tagged("TraitImpl", i.Impl) }
func (i *BuiltinInstance[R]) MarshalJSON() ([]byte, error) { return tagged("BuiltinOrAuto", i.Trait) }
func (i *ClauseInstance[R]) MarshalJSON() ([]byte, error)  { return tagged("Clause", i.Clause) }
func (i *ParentClauseInstance[R]) MarshalJSON() ([]byte, error) {
	return tagged("ParentClause", []any{i.Base, i.Trait, i.Clause})
}
func (i *ItemClauseInstance[R]) MarshalJSON() ([]byte, error) {
	return tagged("ItemClause", []any{i.Base, i.Trait, i.Item, i.Clause})
}
func (i *FnPointerInstance[R]) MarshalJSON() ([]byte, error) { return tagged("FnPointer", i.Ty) }
func (i *UnsolvedInstance[R]) MarshalJSON() ([]byte, error) {
	return tagged("Unsolved", []any{i.Trait, i.Generics})
}
func (i *UnknownInstance[R]) MarshalJSON() ([]byte, error) { return tagged("Unknown", i.Message) }

type instanceJSON[R RegionSlot] struct{ ID TraitInstanceID[R] }

func (i *instanceJSON[R]) UnmarshalJSON(data []byte) (err error) {
	i.ID, err = decodeTraitInstance[R](data)
	return err
}

func decodeTraitInstance[R RegionSlot](data []byte) (TraitInstanceID[R], error) {
	if isNull(data) {
		return nil, errors.New("expected a trait instance, got null")
	}
	tag, payload, err := untag(data)
	if err != nil {
		return nil, errors.Wrap(err, "trait instance")
	}
	switch tag {
	case "SelfId":
		return &SelfInstance[R]{}, nil
	case "TraitImpl":
		i := &ImplInstance[R]{}
		return i, errors.Wrap(json.Unmarshal(payload, &i.Impl), "TraitImpl")
	case "BuiltinOrAuto":
		i := &BuiltinInstance[R]{}
		return i, errors.Wrap(json.Unmarshal(payload, &i.Trait), "BuiltinOrAuto")
	case "Clause":
		i := &ClauseInstance[R]{}
		return i, errors.Wrap(json.Unmarshal(payload, &i.Clause), "Clause")
	case "ParentClause":
		i := &ParentClauseInstance[R]{}
		var base instanceJSON[R]
		if err := positional(payload, &base, &i.Trait, &i.Clause); err != nil {
			return nil, errors.Wrap(err, "ParentClause")
		}
		i.Base = base.ID
		return i, nil
	case "ItemClause":
		i := &ItemClauseInstance[R]{}
		var base instanceJSON[R]
		if err := positional(payload, &base, &i.Trait, &i.Item, &i.Clause); err != nil {
			return nil, errors.Wrap(err, "ItemClause")
		}
		i.Base = base.ID
		return i, nil
	case "FnPointer":
		ty, err := decodeTy[R](payload)
		if err != nil {
			return nil, errors.Wrap(err, "FnPointer")
		}
		return &FnPointerInstance[R]{Ty: ty}, nil
	case "Unsolved":
		i := &UnsolvedInstance[R]{}
		if err := positional(payload, &i.Trait, &i.Generics); err != nil {
			return nil, errors.Wrap(err, "Unsolved")
		}
		return i, nil
	case "Unknown":
		i := &UnknownInstance[R]{}
		return i, errors.Wrap(json.Unmarshal(payload, &i.Message), "Unknown")
	default:
		return nil, errors.Errorf("unknown trait instance %q", tag)
	}
}

func (tr *TraitRef[R]) UnmarshalJSON(data []byte) error {
	var raw struct {
		TraitID      instanceJSON[R] `json:"trait_id"`
		Generics     GenericArgs[R]  `json:"generics"`
		TraitDeclRef TraitDeclRef[R] `json:"trait_decl_ref"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "trait ref")
	}
	if raw.TraitID.ID == nil {
		return errors.New("trait ref: missing trait_id")
	}
	*tr = TraitRef[R]{TraitID: raw.TraitID.ID, Generics: raw.Generics, TraitDeclRef: raw.TraitDeclRef}
	return nil
}

func (o *TypeOutlives) UnmarshalJSON(data []byte) error {
	var raw struct {
		Ty     tyJSON[Region] `json:"ty"`
		Region Region         `json:"region"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "type outlives")
	}
	if raw.Ty.Ty == nil {
		return errors.New("type outlives: missing ty")
	}
	*o = TypeOutlives{Ty: raw.Ty.Ty, Region: raw.Region}
	return nil
}

func (c *TraitTypeConstraint) UnmarshalJSON(data []byte) error {
	var raw struct {
		TraitRef TraitRef[Region]    `json:"trait_ref"`
		Generics GenericArgs[Region] `json:"generics"`
		TypeName TraitItemName       `json:"type_name"`
		Ty       tyJSON[Region]      `json:"ty"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "trait type constraint")
	}
	if raw.Ty.Ty == nil {
		return errors.New("trait type constraint: missing ty")
	}
	*c = TraitTypeConstraint{TraitRef: raw.TraitRef, Generics: raw.Generics, TypeName: raw.TypeName, Ty: raw.Ty.Ty}
	return nil
}

func (sig *FunSig) UnmarshalJSON(data []byte) error {
	var raw struct {
		IsUnsafe bool             `json:"is_unsafe"`
		Generics GenericParams    `json:"generics"`
		Preds    Predicates       `json:"preds"`
		Inputs   []tyJSON[Region] `json:"inputs"`
		Output   tyJSON[Region]   `json:"output"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "function signature")
	}
	if raw.Output.Ty == nil {
		return errors.New("function signature: missing output")
	}
	*sig = FunSig{
		IsUnsafe: raw.IsUnsafe,
		Generics: raw.Generics,
		Preds:    raw.Preds,
		Inputs:   unwrapTys(raw.Inputs),
		Output:   raw.Output.Ty,
	}
	return nil
}

func decodeError(what string, err error) error {
	if err == nil {
		return nil
	}
	return ilerr.New(ilerr.NewDecode{What: what, From: err})
}

// UnmarshalTy decodes the JSON encoding of a type
func UnmarshalTy[R RegionSlot](data []byte) (Ty[R], error) {
	ty, err := decodeTy[R](data)
	return ty, decodeError("type", err)
}

func UnmarshalTraitInstance[R RegionSlot](data []byte) (TraitInstanceID[R], error) {
	id, err := decodeTraitInstance[R](data)
	return id, decodeError("trait instance", err)
}

func UnmarshalConstGeneric(data []byte) (ConstGeneric, error) {
	cg, err := decodeConstGeneric(data)
	return cg, decodeError("const generic", err)
}
