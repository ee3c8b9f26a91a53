package terms

import (
	"fmt"
	"sort"

	"relision/internal/logging"

	"github.com/google/uuid"
)

// Names of the well-known root terms.
const (
	RootName        = "^ROOT"
	RootAlias       = "ROOT"
	SymbolName      = "SYMBOL"
	StringName      = "STRING"
	IntegerName     = "INTEGER"
	FloatName       = "FLOAT"
	BitStringName   = "BIT_STRING"
	BooleanName     = "BOOLEAN"
	AnyName         = "ANY"
	NoneName        = "NONE"
	MapName         = "MAP"
	ProductName     = "PRODUCT"
	SpecialFormName = "SPECIAL_FORM"
	PropertiesName  = "PROPERTIES"
)

// Factory builds terms and owns the canonical instances of the well-known
// terms. It is read-only once NewFactory returns and may be shared freely.
//
// Terms from different factories must not be mixed: canonical instances are
// only unique within the factory that made them.
type Factory struct {
	id string

	root        *Root
	symbol      *SymbolLiteral
	str         *SymbolLiteral
	integer     *SymbolLiteral
	float       *SymbolLiteral
	bitString   *SymbolLiteral
	boolean     *SymbolLiteral
	any         *SymbolLiteral
	none        *SymbolLiteral
	mapType     *SymbolLiteral
	product     *SymbolLiteral
	specialForm *SymbolLiteral
	properties  *SymbolLiteral

	isTrue  *BooleanLiteral
	isFalse *BooleanLiteral

	named map[string]Term
}

// NewFactory builds Root, the twelve well-known root terms and the two
// Boolean constants.
func NewFactory() *Factory {
	root := &Root{}
	nrt := func(name string) *SymbolLiteral {
		return &SymbolLiteral{locus: Internal(), typ: root, value: name}
	}

	f := &Factory{
		id:          uuid.NewString(),
		root:        root,
		symbol:      nrt(SymbolName),
		str:         nrt(StringName),
		integer:     nrt(IntegerName),
		float:       nrt(FloatName),
		bitString:   nrt(BitStringName),
		boolean:     nrt(BooleanName),
		any:         nrt(AnyName),
		none:        nrt(NoneName),
		mapType:     nrt(MapName),
		product:     nrt(ProductName),
		specialForm: nrt(SpecialFormName),
		properties:  nrt(PropertiesName),
	}
	f.isTrue = &BooleanLiteral{locus: Internal(), typ: f.boolean, value: true}
	f.isFalse = &BooleanLiteral{locus: Internal(), typ: f.boolean, value: false}

	f.named = map[string]Term{
		RootName:        f.root,
		RootAlias:       f.root,
		SymbolName:      f.symbol,
		StringName:      f.str,
		IntegerName:     f.integer,
		FloatName:       f.float,
		BitStringName:   f.bitString,
		BooleanName:     f.boolean,
		AnyName:         f.any,
		NoneName:        f.none,
		MapName:         f.mapType,
		ProductName:     f.product,
		SpecialFormName: f.specialForm,
		PropertiesName:  f.properties,
	}

	logging.TermsDebug("term factory %s initialized with %d named terms", f.id, len(f.named))
	return f
}

// ID identifies the factory's canonicalization domain.
func (f *Factory) ID() string { return f.id }

// NamedRootTerm looks up a well-known term by its exact name.
func (f *Factory) NamedRootTerm(name string) (Term, bool) {
	t, ok := f.named[name]
	return t, ok
}

// IsNamedRootTerm reports whether name is the name of a well-known term.
func (f *Factory) IsNamedRootTerm(name string) bool {
	_, ok := f.named[name]
	return ok
}

// NamedRootTermNames returns the registered names in sorted order.
func (f *Factory) NamedRootTermNames() []string {
	names := make([]string, 0, len(f.named))
	for name := range f.named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f *Factory) Root() Term        { return f.root }
func (f *Factory) Symbol() Term      { return f.symbol }
func (f *Factory) StringType() Term  { return f.str }
func (f *Factory) Integer() Term     { return f.integer }
func (f *Factory) Float() Term       { return f.float }
func (f *Factory) BitString() Term   { return f.bitString }
func (f *Factory) Boolean() Term     { return f.boolean }
func (f *Factory) Any() Term         { return f.any }
func (f *Factory) None() Term        { return f.none }
func (f *Factory) Map() Term         { return f.mapType }
func (f *Factory) Product() Term     { return f.product }
func (f *Factory) SpecialForm() Term { return f.specialForm }
func (f *Factory) Properties() Term  { return f.properties }

// True and False return the canonical Boolean constants.
func (f *Factory) True() Term  { return f.isTrue }
func (f *Factory) False() Term { return f.isFalse }

func mustTerm(op, field string, t Term) {
	if t == nil {
		panic(fmt.Sprintf("terms: %s: nil %s", op, field))
	}
}

// NewSymbol makes a symbol of type SYMBOL.
func (f *Factory) NewSymbol(locus Locus, value string) Term {
	return &SymbolLiteral{locus: locus, typ: f.symbol, value: value}
}

// NewTypedSymbol makes a symbol with an explicit type.
func (f *Factory) NewTypedSymbol(locus Locus, value string, typ Term) Term {
	mustTerm("NewTypedSymbol", "type", typ)
	return &SymbolLiteral{locus: locus, typ: typ, value: value}
}

// NewString makes a string of type STRING.
func (f *Factory) NewString(locus Locus, value string) Term {
	return &StringLiteral{locus: locus, typ: f.str, value: value}
}

// NewTypedString makes a string with an explicit type.
func (f *Factory) NewTypedString(locus Locus, value string, typ Term) Term {
	mustTerm("NewTypedString", "type", typ)
	return &StringLiteral{locus: locus, typ: typ, value: value}
}

// NewBoolean returns the canonical true or false. It never allocates.
func (f *Factory) NewBoolean(value bool) Term {
	if value {
		return f.isTrue
	}
	return f.isFalse
}

// NewTypedBoolean makes a fresh Boolean with an explicit type. The result is
// not canonical even when typ is BOOLEAN.
func (f *Factory) NewTypedBoolean(locus Locus, value bool, typ Term) Term {
	mustTerm("NewTypedBoolean", "type", typ)
	return &BooleanLiteral{locus: locus, typ: typ, value: value}
}

// NewVariable makes a variable.
func (f *Factory) NewVariable(locus Locus, typ Term, name string, guard Term) Term {
	mustTerm("NewVariable", "type", typ)
	mustTerm("NewVariable", "guard", guard)
	return &Variable{locus: locus, typ: typ, name: name, guard: guard}
}

// NewStaticMap makes a static map.
func (f *Factory) NewStaticMap(locus Locus, domain, codomain Term) Term {
	mustTerm("NewStaticMap", "domain", domain)
	mustTerm("NewStaticMap", "codomain", codomain)
	return &StaticMap{locus: locus, domain: domain, codomain: codomain}
}

// NewStaticProduct makes a static product.
func (f *Factory) NewStaticProduct(locus Locus, lhs, rhs Term) Term {
	mustTerm("NewStaticProduct", "lhs", lhs)
	mustTerm("NewStaticProduct", "rhs", rhs)
	return &StaticProduct{locus: locus, lhs: lhs, rhs: rhs}
}

// NewLambda makes a lambda.
func (f *Factory) NewLambda(locus Locus, param, body, guard Term) Term {
	mustTerm("NewLambda", "param", param)
	mustTerm("NewLambda", "body", body)
	mustTerm("NewLambda", "guard", guard)
	return &Lambda{locus: locus, param: param, body: body, guard: guard}
}

// TypeOf returns the type of t. Maps and products have the kinds MAP and
// PRODUCT as their type. A lambda's type is a new product of its parameter
// and body types, so repeated calls are equal but not identical.
//
// Lambdas nested in lambda bodies are resolved iteratively.
func (f *Factory) TypeOf(t Term) Term {
	var params []Term
	for {
		switch v := t.(type) {
		case *Root:
			return f.wrapLambdaTypes(params, f.root)
		case *SymbolLiteral:
			return f.wrapLambdaTypes(params, v.typ)
		case *StringLiteral:
			return f.wrapLambdaTypes(params, v.typ)
		case *BooleanLiteral:
			return f.wrapLambdaTypes(params, v.typ)
		case *Variable:
			return f.wrapLambdaTypes(params, v.typ)
		case *StaticMap:
			return f.wrapLambdaTypes(params, f.mapType)
		case *StaticProduct:
			return f.wrapLambdaTypes(params, f.product)
		case *Lambda:
			params = append(params, v.param)
			t = v.body
		default:
			panic(fmt.Sprintf("terms: TypeOf: unexpected term %T", t))
		}
	}
}

// wrapLambdaTypes builds PRODUCT(TypeOf(p_i), ...) from the innermost body
// type outwards.
func (f *Factory) wrapLambdaTypes(params []Term, typ Term) Term {
	for i := len(params) - 1; i >= 0; i-- {
		typ = f.NewStaticProduct(Internal(), f.TypeOf(params[i]), typ)
	}
	return typ
}

// LocusOf returns where t was declared; Root is internal.
func (f *Factory) LocusOf(t Term) Locus {
	return t.Locus()
}
