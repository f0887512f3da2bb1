package structural

import (
	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/rename"
	"github.com/donaldgifford/stylefix/internal/scope"
)

// HiddenFieldOptions configures HiddenField.
type HiddenFieldOptions struct {
	IgnoreFormat               config.Pattern  `prop:"ignoreFormat"`
	IgnoreConstructorParameter bool            `prop:"ignoreConstructorParameter"`
	IgnoreSetter               bool            `prop:"ignoreSetter"`
	SetterCanReturnItsClass    bool            `prop:"setterCanReturnItsClass"`
	IgnoreAbstractMethods      bool            `prop:"ignoreAbstractMethods"`
	Tokens                     config.TokenSet `prop:"tokens"`
}

var hiddenFieldAllowed = config.Tokens("VARIABLE_DEF", "PARAMETER_DEF", "LAMBDA")

// HiddenField renames local variables and parameters that shadow a field
// visible at their declaration. The new name is the first numbered variant
// of the old one that nothing in scope uses.
type HiddenField struct {
	opts   HiddenFieldOptions
	policy rename.Policy
}

// NewHiddenField builds a HiddenField fixer from m.
func NewHiddenField(m config.Module) (*HiddenField, error) {
	opts := HiddenFieldOptions{Tokens: hiddenFieldAllowed}
	if err := decode("HiddenField", m, &opts, &opts.Tokens, hiddenFieldAllowed); err != nil {
		return nil, err
	}
	return &HiddenField{
		opts: opts,
		policy: rename.Policy{
			IgnoreFormat:               opts.IgnoreFormat.Regexp,
			IgnoreConstructorParameter: opts.IgnoreConstructorParameter,
			IgnoreSetter:               opts.IgnoreSetter,
			SetterCanReturnItsClass:    opts.SetterCanReturnItsClass,
			IgnoreAbstractMethods:      opts.IgnoreAbstractMethods,
		},
	}, nil
}

// Name returns the module name.
func (*HiddenField) Name() string { return "HiddenField" }

// Fix implements formatter.Fixer. Shadowing declarations are renamed one
// at a time, resolving scopes again after each rename.
func (f *HiddenField) Fix(cu *parser.CompilationUnit, unit *scope.Unit) *parser.CompilationUnit {
	unit = scope.For(unit, cu)
	for {
		decl, name := f.nextShadow(cu, unit)
		if decl == nil {
			return cu
		}
		fixed := rename.Apply(cu, unit, decl, name)
		if fixed == cu {
			return cu
		}
		unit = unit.Replace(cu, fixed)
		cu = fixed
	}
}

// nextShadow finds the first declaration that hides a field and can be
// renamed, with its replacement name.
func (f *HiddenField) nextShadow(cu *parser.CompilationUnit, unit *scope.Unit) (*parser.NamedVar, string) {
	var decl *parser.NamedVar
	var name string
	parser.Walk(cu, func(c *parser.Cursor) bool {
		if decl != nil {
			return false
		}
		v, ok := c.Node.(*parser.VarDecls)
		if !ok || !f.opts.Tokens.Has(declToken(c)) {
			return true
		}
		for _, e := range v.Vars {
			nv := e.Node.(*parser.NamedVar)
			if f.policy.Exempt(c, nv.Name.Name) {
				continue
			}
			sc := unit.Resolve(c)
			if !hidesField(sc, nv.Name.Name) || !sc.Complete() {
				continue
			}
			used := rename.NamesIn(region(c))
			decl = nv
			name = rename.NextFree(nv.Name.Name, func(s string) bool {
				return used[s] || sc.Taken(s)
			})
			return false
		}
		return true
	})
	return decl, name
}

// declToken classifies the variable declaration at c, or returns "" for
// fields and other declarations HiddenField never renames.
func declToken(c *parser.Cursor) string {
	switch c.ParentNode().(type) {
	case *parser.Args:
		if _, ok := c.Parent.ParentNode().(*parser.MethodDecl); ok {
			return "PARAMETER_DEF"
		}
	case *parser.ControlParens:
		if _, ok := c.Parent.ParentNode().(*parser.Catch); ok {
			return "PARAMETER_DEF"
		}
	case *parser.LambdaParams:
		return "LAMBDA"
	case *parser.Block:
		if !isClassBody(c.Parent) {
			return "VARIABLE_DEF"
		}
	case *parser.Case, *parser.ForControl, *parser.ForEachControl, *parser.Resources:
		return "VARIABLE_DEF"
	}
	return ""
}

// hidesField reports whether a field called name is visible through sc.
// Static methods, static initializers and static nested classes only see
// the static fields of the classes around them.
func hidesField(sc *scope.Scope, name string) bool {
	staticOnly := false
	for _, f := range sc.Frames {
		switch f.Kind {
		case scope.MethodFrame:
			if m, ok := f.Node.(*parser.MethodDecl); ok && scope.HasModifier(m.Leading, "static") {
				staticOnly = true
			}
		case scope.BlockFrame:
			if b, ok := f.Node.(*parser.Block); ok && b.Static {
				staticOnly = true
			}
		case scope.ClassFrame:
			for _, b := range f.Bindings {
				if b.Name == name && (b.Static || !staticOnly) {
					return true
				}
			}
			if f.Static {
				staticOnly = true
			}
		}
	}
	return false
}

// region returns the member enclosing c whose names a rename must avoid.
func region(c *parser.Cursor) parser.Node {
	for p := c; p != nil; p = p.Parent {
		switch x := p.Node.(type) {
		case *parser.MethodDecl:
			return x
		case *parser.Block:
			if p.Parent != nil && isClassBody(p.Parent) {
				return x
			}
		case *parser.ClassDecl:
			return x
		}
	}
	return c.Node
}
