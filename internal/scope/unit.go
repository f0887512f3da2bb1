package scope

import (
	"github.com/donaldgifford/stylefix/internal/parser"
)

// Unit is a resolution unit: the set of compilation units whose class
// declarations can be used to resolve supertypes.
type Unit struct {
	files   []*parser.CompilationUnit
	classes map[string]*parser.ClassDecl
}

// NewUnit indexes every class declaration of cus by simple name. When two
// classes share a name the first one wins.
func NewUnit(cus ...*parser.CompilationUnit) *Unit {
	u := &Unit{files: cus, classes: map[string]*parser.ClassDecl{}}
	for _, cu := range cus {
		parser.Walk(cu, func(c *parser.Cursor) bool {
			if cd, ok := c.Node.(*parser.ClassDecl); ok {
				if _, dup := u.classes[cd.Name.Name]; !dup {
					u.classes[cd.Name.Name] = cd
				}
			}
			return true
		})
	}
	return u
}

// For returns a unit that contains cu. A nil unit yields a unit of cu
// alone.
func For(u *Unit, cu *parser.CompilationUnit) *Unit {
	if u == nil {
		return NewUnit(cu)
	}
	for _, f := range u.files {
		if f == cu {
			return u
		}
	}
	return NewUnit(append([]*parser.CompilationUnit{cu}, u.files...)...)
}

// Replace returns a unit in which old has been swapped for updated.
func (u *Unit) Replace(old, updated *parser.CompilationUnit) *Unit {
	if old == updated {
		return u
	}
	files := make([]*parser.CompilationUnit, 0, len(u.files))
	for _, f := range u.files {
		if f == old {
			f = updated
		}
		files = append(files, f)
	}
	return NewUnit(files...)
}

// Lookup returns the class declared with the given simple name.
func (u *Unit) Lookup(name string) *parser.ClassDecl {
	if u == nil || name == "" {
		return nil
	}
	return u.classes[name]
}

// Files returns the compilation units of the unit.
func (u *Unit) Files() []*parser.CompilationUnit {
	return u.files
}
