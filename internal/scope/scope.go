// Package scope resolves the declarations visible at a point of a syntax
// tree: locals, parameters, class fields and fields inherited from
// supertypes declared in the same resolution unit.
package scope

import (
	"github.com/donaldgifford/stylefix/internal/parser"
)

// Kind classifies a binding.
type Kind int

const (
	// Local is a local variable, including for, for-each and resource
	// variables.
	Local Kind = iota
	// Param is a method, constructor, lambda or catch parameter.
	Param
	// Field is a field or enum constant of an enclosing class.
	Field
	// Inherited is a non-private field of a resolved supertype.
	Inherited
)

// Binding maps a name to its declaration.
type Binding struct {
	Name  string
	Decl  *parser.NamedVar
	Kind  Kind
	Owner *parser.ClassDecl
	// Static is set for fields declared static.
	Static bool
}

// FrameKind classifies the construct that introduces a frame.
type FrameKind int

const (
	// BlockFrame holds locals of a block, switch, for or try.
	BlockFrame FrameKind = iota
	// MethodFrame holds method or constructor parameters.
	MethodFrame
	// LambdaFrame holds lambda parameters.
	LambdaFrame
	// CatchFrame holds a catch parameter.
	CatchFrame
	// ClassFrame holds fields of a class and its resolved supertypes.
	ClassFrame
)

// Frame is one level of the scope chain.
type Frame struct {
	Kind     FrameKind
	Node     parser.Node
	Bindings []Binding
	// Incomplete marks a class frame with a supertype that is not part of
	// the resolution unit.
	Incomplete bool
	// Static marks a class frame whose body cannot see instance state of
	// the enclosing class: static nested classes, interfaces and enums.
	Static bool
}

// Scope is the chain of frames visible at a node, innermost first.
type Scope struct {
	Frames []*Frame
}

// Lookup returns the innermost binding for name.
func (s *Scope) Lookup(name string) (Binding, bool) {
	for _, f := range s.Frames {
		for i := len(f.Bindings) - 1; i >= 0; i-- {
			if f.Bindings[i].Name == name {
				return f.Bindings[i], true
			}
		}
	}
	return Binding{}, false
}

// Taken reports whether name is bound in any frame.
func (s *Scope) Taken(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Complete reports whether every class frame was fully resolved.
func (s *Scope) Complete() bool {
	for _, f := range s.Frames {
		if f.Incomplete {
			return false
		}
	}
	return true
}

// Class returns the innermost class frame, or nil.
func (s *Scope) Class() *Frame {
	for _, f := range s.Frames {
		if f.Kind == ClassFrame {
			return f
		}
	}
	return nil
}

// Resolve builds the scope visible at c. Declarations made by c's own node
// are not included.
func (u *Unit) Resolve(c *parser.Cursor) *Scope {
	s := &Scope{}
	child := c
	for p := c.Parent; p != nil; child, p = p, p.Parent {
		if f := u.frame(p, child.Node); f != nil {
			s.Frames = append(s.Frames, f)
		}
	}
	return s
}

func (u *Unit) frame(c *parser.Cursor, child parser.Node) *Frame {
	switch x := c.Node.(type) {
	case *parser.Block:
		if isClassBody(c) {
			return nil
		}
		return &Frame{Kind: BlockFrame, Node: x, Bindings: localsBefore(x.Stmts, child)}
	case *parser.Case:
		f := &Frame{Kind: BlockFrame, Node: x}
		if sw := switchOf(c); sw != nil {
			for _, e := range sw.Body.Stmts {
				if e.Node == x {
					break
				}
				f.Bindings = append(f.Bindings, localsBefore(e.Node.(*parser.Case).Stmts, nil)...)
			}
		}
		f.Bindings = append(f.Bindings, localsBefore(x.Stmts, child)...)
		return f
	case *parser.MethodDecl:
		return &Frame{Kind: MethodFrame, Node: x, Bindings: paramBindings(x.Params.Elems, Param)}
	case *parser.Lambda:
		return &Frame{Kind: LambdaFrame, Node: x, Bindings: paramBindings(x.Params.Elems, Param)}
	case *parser.ForLoop:
		if child == x.Body.Node {
			return &Frame{Kind: BlockFrame, Node: x, Bindings: localsBefore(x.Control.Init, nil)}
		}
	case *parser.ForControl:
		if len(x.Init) == 0 || child != x.Init[0].Node {
			return &Frame{Kind: BlockFrame, Node: x, Bindings: localsBefore(x.Init, nil)}
		}
	case *parser.ForEachLoop:
		if child == x.Body.Node {
			return &Frame{Kind: BlockFrame, Node: x, Bindings: paramBindings([]parser.Elem{x.Control.Var}, Local)}
		}
	case *parser.Catch:
		if child == x.Body {
			return &Frame{Kind: CatchFrame, Node: x, Bindings: paramBindings([]parser.Elem{x.Param.Tree}, Param)}
		}
	case *parser.Try:
		if child == x.Body && x.Resources != nil {
			return &Frame{Kind: BlockFrame, Node: x, Bindings: localsBefore(x.Resources.Elems, nil)}
		}
	case *parser.Resources:
		return &Frame{Kind: BlockFrame, Node: x, Bindings: localsBefore(x.Elems, child)}
	case *parser.ClassDecl:
		return u.classFrame(x)
	case *parser.NewClass:
		if x.Body != nil && child == x.Body {
			return u.anonymousFrame(x)
		}
	case *parser.EnumValue:
		if x.Body != nil && child == x.Body {
			return &Frame{Kind: ClassFrame, Node: x, Bindings: fieldBindings(x.Body, nil, Field)}
		}
	}
	return nil
}

func isClassBody(c *parser.Cursor) bool {
	switch c.ParentNode().(type) {
	case *parser.ClassDecl, *parser.NewClass, *parser.EnumValue:
		return true
	}
	return false
}

func switchOf(c *parser.Cursor) *parser.Switch {
	if c.Parent == nil || c.Parent.Parent == nil {
		return nil
	}
	sw, _ := c.Parent.Parent.Node.(*parser.Switch)
	return sw
}

// localsBefore returns variables declared by elements preceding stop, or by
// all elements when stop is nil.
func localsBefore(es []parser.Elem, stop parser.Node) []Binding {
	var out []Binding
	for _, e := range es {
		if stop != nil && e.Node == stop {
			break
		}
		if v, ok := e.Node.(*parser.VarDecls); ok {
			out = append(out, varBindings(v, Local, nil)...)
		}
	}
	return out
}

func paramBindings(es []parser.Elem, kind Kind) []Binding {
	var out []Binding
	for _, e := range es {
		if v, ok := e.Node.(*parser.VarDecls); ok {
			out = append(out, varBindings(v, kind, nil)...)
		}
	}
	return out
}

func varBindings(v *parser.VarDecls, kind Kind, owner *parser.ClassDecl) []Binding {
	static := HasModifier(v.Leading, "static")
	var out []Binding
	for _, e := range v.Vars {
		nv := e.Node.(*parser.NamedVar)
		out = append(out, Binding{Name: nv.Name.Name, Decl: nv, Kind: kind, Owner: owner, Static: static})
	}
	return out
}

// fieldBindings lists the fields and enum constants of a class body.
func fieldBindings(body *parser.Block, owner *parser.ClassDecl, kind Kind) []Binding {
	var out []Binding
	interfaceBody := owner != nil && owner.Kind == "interface"
	for _, e := range body.Stmts {
		switch x := e.Node.(type) {
		case *parser.VarDecls:
			bs := varBindings(x, kind, owner)
			if interfaceBody {
				for i := range bs {
					bs[i].Static = true
				}
			}
			out = append(out, bs...)
		case *parser.EnumValueSet:
			for _, v := range x.Values {
				if ev, ok := v.Node.(*parser.EnumValue); ok {
					out = append(out, Binding{Name: ev.Name.Name, Kind: kind, Owner: owner, Static: true})
				}
			}
		}
	}
	return out
}

func (u *Unit) classFrame(cd *parser.ClassDecl) *Frame {
	f := &Frame{Kind: ClassFrame, Node: cd, Static: IsStaticContext(cd)}
	f.Bindings = fieldBindings(cd.Body, cd, Field)
	inherited, complete := u.inheritedFields(cd, map[*parser.ClassDecl]bool{cd: true})
	f.Bindings = append(inherited, f.Bindings...)
	f.Incomplete = !complete
	return f
}

func (u *Unit) anonymousFrame(nc *parser.NewClass) *Frame {
	f := &Frame{Kind: ClassFrame, Node: nc, Bindings: fieldBindings(nc.Body, nil, Field)}
	super := u.Lookup(TypeName(nc.Clazz))
	if super == nil {
		f.Incomplete = true
		return f
	}
	inherited, complete := u.supertypeFields(super, map[*parser.ClassDecl]bool{super: true})
	f.Bindings = append(inherited, f.Bindings...)
	f.Incomplete = !complete
	return f
}

// inheritedFields collects non-private fields of cd's supertypes. It
// reports false when any supertype cannot be resolved.
func (u *Unit) inheritedFields(cd *parser.ClassDecl, seen map[*parser.ClassDecl]bool) ([]Binding, bool) {
	var out []Binding
	complete := true
	for _, t := range Supertypes(cd) {
		name := TypeName(t)
		if name == "Object" || name == "java.lang.Object" {
			continue
		}
		super := u.Lookup(name)
		if super == nil {
			complete = false
			continue
		}
		if seen[super] {
			continue
		}
		seen[super] = true
		more, ok := u.supertypeFields(super, seen)
		complete = complete && ok
		out = append(out, more...)
	}
	return out, complete
}

// supertypeFields returns the fields of super visible to a subclass,
// including those super inherits itself.
func (u *Unit) supertypeFields(super *parser.ClassDecl, seen map[*parser.ClassDecl]bool) ([]Binding, bool) {
	out, complete := u.inheritedFields(super, seen)
	for _, b := range fieldBindings(super.Body, super, Inherited) {
		if b.Decl != nil && isPrivateField(super, b.Decl) {
			continue
		}
		out = append(out, b)
	}
	return out, complete
}

func isPrivateField(owner *parser.ClassDecl, nv *parser.NamedVar) bool {
	for _, e := range owner.Body.Stmts {
		v, ok := e.Node.(*parser.VarDecls)
		if !ok {
			continue
		}
		for _, ve := range v.Vars {
			if ve.Node == nv {
				return HasModifier(v.Leading, "private")
			}
		}
	}
	return false
}

// Supertypes returns the extends and implements types of cd.
func Supertypes(cd *parser.ClassDecl) []parser.Node {
	var out []parser.Node
	for _, c := range []*parser.Clause{cd.Extends, cd.Implements} {
		if c == nil {
			continue
		}
		for _, e := range c.Types {
			out = append(out, e.Node)
		}
	}
	return out
}

// TypeName returns the simple name of a type reference, without type
// arguments or qualification.
func TypeName(t parser.Node) string {
	switch x := t.(type) {
	case *parser.Ident:
		return x.Name
	case *parser.FieldAccess:
		return x.Name.Name
	case *parser.ParamType:
		return TypeName(x.Clazz)
	}
	return ""
}

// HasModifier reports whether leading contains the keyword modifier.
func HasModifier(leading []parser.Node, keyword string) bool {
	for _, n := range leading {
		if m, ok := n.(*parser.Modifier); ok && m.Keyword == keyword {
			return true
		}
	}
	return false
}

// IsStaticContext reports whether cd's body is cut off from the instance
// state of its enclosing class.
func IsStaticContext(cd *parser.ClassDecl) bool {
	return cd.Kind != "class" || HasModifier(cd.Leading, "static")
}

// FieldOf looks up a field declared by cd or inherited from its resolved
// supertypes.
func (u *Unit) FieldOf(cd *parser.ClassDecl, name string) (Binding, bool) {
	f := u.classFrame(cd)
	for i := len(f.Bindings) - 1; i >= 0; i-- {
		if f.Bindings[i].Name == name {
			return f.Bindings[i], true
		}
	}
	return Binding{}, false
}
