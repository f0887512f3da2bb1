package structural

import (
	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/rename"
	"github.com/donaldgifford/stylefix/internal/scope"
)

// StaticVariableNameOptions configures StaticVariableName.
type StaticVariableNameOptions struct {
	Format           config.Pattern `prop:"format"`
	ApplyToPublic    bool           `prop:"applyToPublic"`
	ApplyToProtected bool           `prop:"applyToProtected"`
	ApplyToPackage   bool           `prop:"applyToPackage"`
	ApplyToPrivate   bool           `prop:"applyToPrivate"`
}

// StaticVariableName renames static, non-final fields whose names do not
// match the configured format to camel case, along with their references.
type StaticVariableName struct {
	opts StaticVariableNameOptions
}

// NewStaticVariableName builds a StaticVariableName fixer from m.
func NewStaticVariableName(m config.Module) (*StaticVariableName, error) {
	opts := StaticVariableNameOptions{
		Format:           config.MustPattern(`^[a-z][a-zA-Z0-9]*$`),
		ApplyToPublic:    true,
		ApplyToProtected: true,
		ApplyToPackage:   true,
		ApplyToPrivate:   true,
	}
	if err := decode("StaticVariableName", m, &opts, nil, config.TokenSet{}); err != nil {
		return nil, err
	}
	return &StaticVariableName{opts: opts}, nil
}

// Name returns the module name.
func (*StaticVariableName) Name() string { return "StaticVariableName" }

// Fix implements formatter.Fixer.
func (f *StaticVariableName) Fix(cu *parser.CompilationUnit, unit *scope.Unit) *parser.CompilationUnit {
	unit = scope.For(unit, cu)
	for {
		decl, name := f.next(cu, unit)
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

// next finds the first field to rename and its new name.
func (f *StaticVariableName) next(cu *parser.CompilationUnit, unit *scope.Unit) (*parser.NamedVar, string) {
	var used map[string]bool
	var decl *parser.NamedVar
	var name string
	parser.Walk(cu, func(c *parser.Cursor) bool {
		if decl != nil {
			return false
		}
		cd, ok := c.Node.(*parser.ClassDecl)
		if !ok || cd.Kind == "interface" {
			return true
		}
		for _, e := range cd.Body.Stmts {
			v, ok := e.Node.(*parser.VarDecls)
			if !ok || !f.applies(v) {
				continue
			}
			for _, ve := range v.Vars {
				nv := ve.Node.(*parser.NamedVar)
				old := nv.Name.Name
				if f.opts.Format.MatchString(old) {
					continue
				}
				camel := rename.SnakeToCamel(old)
				if camel == old || !f.opts.Format.MatchString(camel) {
					continue
				}
				if used == nil {
					used = rename.NamesIn(cu)
				}
				if used[camel] || (!scope.HasModifier(v.Leading, "private") && usedElsewhere(unit, cu, old)) {
					continue
				}
				decl, name = nv, camel
				return false
			}
		}
		return true
	})
	return decl, name
}

// applies reports whether the fields declared by v fall under the naming
// rule: static, not final, and of a selected visibility.
func (f *StaticVariableName) applies(v *parser.VarDecls) bool {
	if !scope.HasModifier(v.Leading, "static") || scope.HasModifier(v.Leading, "final") {
		return false
	}
	switch {
	case scope.HasModifier(v.Leading, "public"):
		return f.opts.ApplyToPublic
	case scope.HasModifier(v.Leading, "protected"):
		return f.opts.ApplyToProtected
	case scope.HasModifier(v.Leading, "private"):
		return f.opts.ApplyToPrivate
	}
	return f.opts.ApplyToPackage
}

// usedElsewhere reports whether another file of the unit spells name.
// Only the current file is rewritten, so such a field is left alone.
func usedElsewhere(unit *scope.Unit, cu *parser.CompilationUnit, name string) bool {
	for _, other := range unit.Files() {
		if other != cu && rename.NamesIn(other)[name] {
			return true
		}
	}
	return false
}
