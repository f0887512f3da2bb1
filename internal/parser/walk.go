package parser

import "fmt"

// Role describes the slot a node occupies in its parent.
type Role int

const (
	// RoleNone is a structural slot (argument lists, clauses, bodies).
	RoleNone Role = iota
	// RoleStmt is a statement or class member slot.
	RoleStmt
	// RoleExpr is an expression slot.
	RoleExpr
	// RoleType is a type reference slot.
	RoleType
	// RoleName is the name of a declaration.
	RoleName
	// RoleMember is the selected name of a field access, call or method
	// reference.
	RoleMember
	// RoleModifier is a modifier or annotation of a declaration.
	RoleModifier
)

// Cursor locates a node within the tree being visited. Parent chains always
// point at nodes of the original tree.
type Cursor struct {
	Parent *Cursor
	Node   Node
	Role   Role
}

// Ancestors returns the chain of enclosing nodes, innermost first.
func (c *Cursor) Ancestors() []Node {
	var out []Node
	for p := c.Parent; p != nil; p = p.Parent {
		out = append(out, p.Node)
	}
	return out
}

// ParentNode returns the parent node or nil at the root.
func (c *Cursor) ParentNode() Node {
	if c.Parent == nil {
		return nil
	}
	return c.Parent.Node
}

// Nearest returns the closest enclosing cursor, including c itself, whose
// node satisfies match.
func (c *Cursor) Nearest(match func(Node) bool) *Cursor {
	for p := c; p != nil; p = p.Parent {
		if match(p.Node) {
			return p
		}
	}
	return nil
}

// Child builds a cursor for a node below c.
func (c *Cursor) Child(n Node, r Role) *Cursor {
	return &Cursor{Parent: c, Node: n, Role: r}
}

// Rewrite rebuilds root bottom-up. fn receives the cursor of each original
// node and the node with its children already rewritten; it returns the
// replacement, which may be the node itself. Unchanged subtrees are reused.
func Rewrite[T Node](root T, fn func(c *Cursor, n Node) Node) T {
	out := rewrite(&Cursor{Node: root}, fn)
	t, ok := out.(T)
	if !ok {
		panic(fmt.Sprintf("parser: rewrite replaced root %T with %T", root, out))
	}
	return t
}

// RewriteAt rewrites a subtree whose position is described by c.
func RewriteAt(c *Cursor, fn func(c *Cursor, n Node) Node) Node {
	return rewrite(c, fn)
}

func rewrite(c *Cursor, fn func(c *Cursor, n Node) Node) Node {
	n := mapChildren(c.Node, c.Role, func(child Node, r Role) Node {
		return rewrite(c.Child(child, r), fn)
	}, nil)
	return fn(c, n)
}

// Walk visits root and its descendants in source order. Returning false from
// fn skips the node's children.
func Walk(root Node, fn func(c *Cursor) bool) {
	walk(&Cursor{Node: root}, fn)
}

func walk(c *Cursor, fn func(c *Cursor) bool) {
	if !fn(c) {
		return
	}
	mapChildren(c.Node, c.Role, func(child Node, r Role) Node {
		walk(c.Child(child, r), fn)
		return child
	}, nil)
}

// MapSpaces returns n with fn applied to every Space in the subtree,
// including n's own prefix.
func MapSpaces[T Node](n T, fn func(Space) Space) T {
	out := mapSpaces(n, RoleNone, fn)
	return out.(T)
}

func mapSpaces(n Node, r Role, fn func(Space) Space) Node {
	out := mapChildren(n, r, func(child Node, cr Role) Node {
		return mapSpaces(child, cr, fn)
	}, fn)
	return WithPrefix(out, fn(Prefix(out)))
}

type mapper struct {
	f       func(Node, Role) Node
	s       func(Space) Space
	changed bool
}

func (m *mapper) node(n Node, r Role) Node {
	if n == nil {
		return nil
	}
	out := m.f(n, r)
	if out != n {
		m.changed = true
	}
	return out
}

func mapAs[T Node](m *mapper, n T, r Role) T {
	var zero T
	if any(n) == any(zero) {
		return n
	}
	out := m.node(n, r)
	t, ok := out.(T)
	if !ok {
		panic(fmt.Sprintf("parser: cannot replace %T with %T", n, out))
	}
	return t
}

func (m *mapper) space(s Space) Space {
	if m.s == nil {
		return s
	}
	out := m.s(s)
	if out != s {
		m.changed = true
	}
	return out
}

func (m *mapper) elem(e Elem, r Role) Elem {
	return Elem{Node: m.node(e.Node, r), After: m.space(e.After)}
}

func (m *mapper) elems(es []Elem, r Role) []Elem {
	var out []Elem
	for i, e := range es {
		ne := m.elem(e, r)
		if out == nil && ne != e {
			out = make([]Elem, len(es))
			copy(out, es[:i])
		}
		if out != nil {
			out[i] = ne
		}
	}
	if out == nil {
		return es
	}
	return out
}

func (m *mapper) nodes(ns []Node, r Role) []Node {
	var out []Node
	for i, n := range ns {
		nn := m.node(n, r)
		if out == nil && nn != n {
			out = make([]Node, len(ns))
			copy(out, ns[:i])
		}
		if out != nil {
			out[i] = nn
		}
	}
	if out == nil {
		return ns
	}
	return out
}

func (m *mapper) dims(ds []Dim) []Dim {
	if m.s == nil || len(ds) == 0 {
		return ds
	}
	out := make([]Dim, len(ds))
	for i, d := range ds {
		out[i] = Dim{Pre: m.space(d.Pre), Inner: m.space(d.Inner)}
	}
	return out
}

func (m *mapper) clause(c *Clause) *Clause {
	if c == nil {
		return nil
	}
	pre := m.space(c.Pre)
	types := m.elems(c.Types, RoleType)
	if pre == c.Pre && sameElems(types, c.Types) {
		return c
	}
	return &Clause{Pre: pre, Keyword: c.Keyword, Types: types}
}

func sameElems(a, b []Elem) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}

// mapChildren applies f to each direct child of n and s to each interior
// space, returning n itself when nothing changed. self is n's own role.
func mapChildren(n Node, self Role, f func(Node, Role) Node, s func(Space) Space) Node {
	m := &mapper{f: f, s: s}
	switch x := n.(type) {
	case *CompilationUnit:
		c := *x
		c.Package = mapAs(m, x.Package, RoleNone)
		if len(x.Imports) > 0 {
			imports := make([]*Import, len(x.Imports))
			for i, imp := range x.Imports {
				imports[i] = mapAs(m, imp, RoleNone)
			}
			c.Imports = imports
		}
		c.Types = m.nodes(x.Types, RoleStmt)
		c.EOF = m.space(x.EOF)
		return result(m, n, &c)
	case *PackageDecl:
		c := *x
		c.Name = m.node(x.Name, RoleType)
		c.Semi = m.space(x.Semi)
		return result(m, n, &c)
	case *Import:
		c := *x
		c.StaticPre = m.space(x.StaticPre)
		c.Name = m.node(x.Name, RoleType)
		c.Semi = m.space(x.Semi)
		return result(m, n, &c)
	case *Modifier, *Ident, *Literal, *Empty:
		return n
	case *Annotation:
		c := *x
		c.Name = m.node(x.Name, RoleType)
		c.Args = mapAs(m, x.Args, RoleNone)
		return result(m, n, &c)
	case *Args:
		c := *x
		c.Elems = m.elems(x.Elems, RoleExpr)
		return result(m, n, &c)
	case *TypeArgs:
		c := *x
		c.Elems = m.elems(x.Elems, RoleType)
		return result(m, n, &c)
	case *TypeParams:
		c := *x
		c.Elems = m.elems(x.Elems, RoleNone)
		return result(m, n, &c)
	case *TypeParam:
		c := *x
		c.Name = mapAs(m, x.Name, RoleName)
		c.ExtendsPre = m.space(x.ExtendsPre)
		c.Bounds = m.elems(x.Bounds, RoleType)
		return result(m, n, &c)
	case *ClassDecl:
		c := *x
		c.Leading = m.nodes(x.Leading, RoleModifier)
		c.KindPre = m.space(x.KindPre)
		c.Name = mapAs(m, x.Name, RoleName)
		c.TypeParams = mapAs(m, x.TypeParams, RoleNone)
		c.Extends = m.clause(x.Extends)
		c.Implements = m.clause(x.Implements)
		c.Body = mapAs(m, x.Body, RoleNone)
		return result(m, n, &c)
	case *EnumValueSet:
		c := *x
		c.Values = m.elems(x.Values, RoleNone)
		return result(m, n, &c)
	case *EnumValue:
		c := *x
		c.Leading = m.nodes(x.Leading, RoleModifier)
		c.Name = mapAs(m, x.Name, RoleName)
		c.Args = mapAs(m, x.Args, RoleNone)
		c.Body = mapAs(m, x.Body, RoleNone)
		return result(m, n, &c)
	case *MethodDecl:
		c := *x
		c.Leading = m.nodes(x.Leading, RoleModifier)
		c.TypeParams = mapAs(m, x.TypeParams, RoleNone)
		c.ReturnType = m.node(x.ReturnType, RoleType)
		c.Name = mapAs(m, x.Name, RoleName)
		c.Params = mapAs(m, x.Params, RoleNone)
		c.Throws = m.clause(x.Throws)
		c.Body = mapAs(m, x.Body, RoleNone)
		return result(m, n, &c)
	case *VarDecls:
		c := *x
		c.Leading = m.nodes(x.Leading, RoleModifier)
		c.Type = m.node(x.Type, RoleType)
		c.VarargsPre = m.space(x.VarargsPre)
		c.Vars = m.elems(x.Vars, RoleNone)
		return result(m, n, &c)
	case *NamedVar:
		c := *x
		c.Name = mapAs(m, x.Name, RoleName)
		c.Dims = m.dims(x.Dims)
		c.EqPre = m.space(x.EqPre)
		c.Init = m.node(x.Init, RoleExpr)
		return result(m, n, &c)
	case *Block:
		c := *x
		c.StaticAfter = m.space(x.StaticAfter)
		c.Stmts = m.elems(x.Stmts, RoleStmt)
		c.End = m.space(x.End)
		return result(m, n, &c)
	case *ControlParens:
		c := *x
		c.Tree = m.elem(x.Tree, RoleExpr)
		return result(m, n, &c)
	case *If:
		c := *x
		c.Cond = mapAs(m, x.Cond, RoleNone)
		c.Then = m.elem(x.Then, RoleStmt)
		c.Else = mapAs(m, x.Else, RoleNone)
		return result(m, n, &c)
	case *Else:
		c := *x
		c.Body = m.elem(x.Body, RoleStmt)
		return result(m, n, &c)
	case *WhileLoop:
		c := *x
		c.Cond = mapAs(m, x.Cond, RoleNone)
		c.Body = m.elem(x.Body, RoleStmt)
		return result(m, n, &c)
	case *DoWhile:
		c := *x
		c.Body = m.elem(x.Body, RoleStmt)
		c.WhilePre = m.space(x.WhilePre)
		c.Cond = mapAs(m, x.Cond, RoleNone)
		return result(m, n, &c)
	case *ForLoop:
		c := *x
		c.Control = mapAs(m, x.Control, RoleNone)
		c.Body = m.elem(x.Body, RoleStmt)
		return result(m, n, &c)
	case *ForControl:
		c := *x
		c.Init = m.elems(x.Init, RoleStmt)
		c.Cond = m.elem(x.Cond, RoleExpr)
		c.Update = m.elems(x.Update, RoleExpr)
		return result(m, n, &c)
	case *ForEachLoop:
		c := *x
		c.Control = mapAs(m, x.Control, RoleNone)
		c.Body = m.elem(x.Body, RoleStmt)
		return result(m, n, &c)
	case *ForEachControl:
		c := *x
		c.Var = m.elem(x.Var, RoleStmt)
		c.Iter = m.elem(x.Iter, RoleExpr)
		return result(m, n, &c)
	case *Switch:
		c := *x
		c.Selector = mapAs(m, x.Selector, RoleNone)
		c.Body = mapAs(m, x.Body, RoleNone)
		return result(m, n, &c)
	case *Case:
		c := *x
		c.Labels = m.elems(x.Labels, RoleExpr)
		c.ColonPre = m.space(x.ColonPre)
		c.Stmts = m.elems(x.Stmts, RoleStmt)
		return result(m, n, &c)
	case *Try:
		c := *x
		c.Resources = mapAs(m, x.Resources, RoleNone)
		c.Body = mapAs(m, x.Body, RoleNone)
		if len(x.Catches) > 0 {
			catches := make([]*Catch, len(x.Catches))
			for i, ct := range x.Catches {
				catches[i] = mapAs(m, ct, RoleNone)
			}
			c.Catches = catches
		}
		c.Finally = mapAs(m, x.Finally, RoleNone)
		return result(m, n, &c)
	case *Resources:
		c := *x
		c.Elems = m.elems(x.Elems, RoleStmt)
		return result(m, n, &c)
	case *Catch:
		c := *x
		c.Param = mapAs(m, x.Param, RoleNone)
		c.Body = mapAs(m, x.Body, RoleNone)
		return result(m, n, &c)
	case *Finally:
		c := *x
		c.Body = mapAs(m, x.Body, RoleNone)
		return result(m, n, &c)
	case *Synchronized:
		c := *x
		c.Lock = mapAs(m, x.Lock, RoleNone)
		c.Body = mapAs(m, x.Body, RoleNone)
		return result(m, n, &c)
	case *Return:
		c := *x
		c.Expr = m.node(x.Expr, RoleExpr)
		return result(m, n, &c)
	case *Throw:
		c := *x
		c.Expr = m.node(x.Expr, RoleExpr)
		return result(m, n, &c)
	case *Break:
		c := *x
		c.LabelPre = m.space(x.LabelPre)
		return result(m, n, &c)
	case *Continue:
		c := *x
		c.LabelPre = m.space(x.LabelPre)
		return result(m, n, &c)
	case *Labeled:
		c := *x
		c.ColonPre = m.space(x.ColonPre)
		c.Stmt = m.node(x.Stmt, RoleStmt)
		return result(m, n, &c)
	case *FieldAccess:
		c := *x
		target := RoleExpr
		if self == RoleType {
			target = RoleType
		}
		c.Target = m.node(x.Target, target)
		c.DotPre = m.space(x.DotPre)
		c.Name = mapAs(m, x.Name, RoleMember)
		return result(m, n, &c)
	case *MethodInvocation:
		c := *x
		c.Target = m.node(x.Target, RoleExpr)
		c.DotPre = m.space(x.DotPre)
		c.TypeArgs = mapAs(m, x.TypeArgs, RoleNone)
		c.Name = mapAs(m, x.Name, RoleMember)
		c.Args = mapAs(m, x.Args, RoleNone)
		return result(m, n, &c)
	case *NewClass:
		c := *x
		c.Clazz = m.node(x.Clazz, RoleType)
		c.Args = mapAs(m, x.Args, RoleNone)
		c.Body = mapAs(m, x.Body, RoleNone)
		return result(m, n, &c)
	case *NewArray:
		c := *x
		c.Type = m.node(x.Type, RoleType)
		if len(x.Dims) > 0 {
			dims := make([]ArrayDim, len(x.Dims))
			for i, d := range x.Dims {
				dims[i] = ArrayDim{Pre: m.space(d.Pre), Size: m.node(d.Size, RoleExpr), After: m.space(d.After)}
			}
			c.Dims = dims
		}
		c.Init = mapAs(m, x.Init, RoleExpr)
		return result(m, n, &c)
	case *ArrayInit:
		c := *x
		c.Elems = m.elems(x.Elems, RoleExpr)
		return result(m, n, &c)
	case *ArrayAccess:
		c := *x
		c.Indexed = m.node(x.Indexed, RoleExpr)
		c.IndexPre = m.space(x.IndexPre)
		c.Index = m.elem(x.Index, RoleExpr)
		return result(m, n, &c)
	case *Unary:
		c := *x
		c.OpPre = m.space(x.OpPre)
		c.Expr = m.node(x.Expr, RoleExpr)
		return result(m, n, &c)
	case *Binary:
		c := *x
		c.Left = m.node(x.Left, RoleExpr)
		c.OpPre = m.space(x.OpPre)
		c.Right = m.node(x.Right, RoleExpr)
		return result(m, n, &c)
	case *Assignment:
		c := *x
		c.Var = m.node(x.Var, RoleExpr)
		c.OpPre = m.space(x.OpPre)
		c.Value = m.node(x.Value, RoleExpr)
		return result(m, n, &c)
	case *Ternary:
		c := *x
		c.Cond = m.node(x.Cond, RoleExpr)
		c.QPre = m.space(x.QPre)
		c.Then = m.node(x.Then, RoleExpr)
		c.ElsePre = m.space(x.ElsePre)
		c.Else = m.node(x.Else, RoleExpr)
		return result(m, n, &c)
	case *InstanceOf:
		c := *x
		c.Expr = m.node(x.Expr, RoleExpr)
		c.OpPre = m.space(x.OpPre)
		c.Type = m.node(x.Type, RoleType)
		return result(m, n, &c)
	case *TypeCast:
		c := *x
		c.Type = m.elem(x.Type, RoleType)
		c.Expr = m.node(x.Expr, RoleExpr)
		return result(m, n, &c)
	case *Parens:
		c := *x
		c.Tree = m.elem(x.Tree, RoleExpr)
		return result(m, n, &c)
	case *LambdaParams:
		c := *x
		c.Elems = m.elems(x.Elems, RoleNone)
		return result(m, n, &c)
	case *Lambda:
		c := *x
		c.Params = mapAs(m, x.Params, RoleNone)
		c.ArrowPre = m.space(x.ArrowPre)
		c.Body = m.node(x.Body, RoleExpr)
		return result(m, n, &c)
	case *MemberRef:
		c := *x
		c.Target = m.node(x.Target, RoleExpr)
		c.ColonPre = m.space(x.ColonPre)
		c.Name = mapAs(m, x.Name, RoleMember)
		return result(m, n, &c)
	case *ParamType:
		c := *x
		c.Clazz = m.node(x.Clazz, RoleType)
		c.Args = mapAs(m, x.Args, RoleNone)
		return result(m, n, &c)
	case *ArrayType:
		c := *x
		c.Elem = m.node(x.Elem, RoleType)
		c.Dim = Dim{Pre: m.space(x.Dim.Pre), Inner: m.space(x.Dim.Inner)}
		return result(m, n, &c)
	case *Wildcard:
		c := *x
		c.BoundPre = m.space(x.BoundPre)
		c.Type = m.node(x.Type, RoleType)
		return result(m, n, &c)
	case *MultiCatch:
		c := *x
		c.Alts = m.elems(x.Alts, RoleType)
		return result(m, n, &c)
	}
	panic(fmt.Sprintf("parser: unknown node %T", n))
}

func result(m *mapper, orig, rebuilt Node) Node {
	if m.changed {
		return rebuilt
	}
	return orig
}

// Clone returns a shallow copy of n.
func Clone[T Node](n T) T {
	var out Node
	switch x := any(n).(type) {
	case *CompilationUnit:
		out = ptr(*x)
	case *PackageDecl:
		out = ptr(*x)
	case *Import:
		out = ptr(*x)
	case *Modifier:
		out = ptr(*x)
	case *Annotation:
		out = ptr(*x)
	case *Args:
		out = ptr(*x)
	case *TypeArgs:
		out = ptr(*x)
	case *TypeParams:
		out = ptr(*x)
	case *TypeParam:
		out = ptr(*x)
	case *ClassDecl:
		out = ptr(*x)
	case *EnumValueSet:
		out = ptr(*x)
	case *EnumValue:
		out = ptr(*x)
	case *MethodDecl:
		out = ptr(*x)
	case *VarDecls:
		out = ptr(*x)
	case *NamedVar:
		out = ptr(*x)
	case *Block:
		out = ptr(*x)
	case *ControlParens:
		out = ptr(*x)
	case *If:
		out = ptr(*x)
	case *Else:
		out = ptr(*x)
	case *WhileLoop:
		out = ptr(*x)
	case *DoWhile:
		out = ptr(*x)
	case *ForLoop:
		out = ptr(*x)
	case *ForControl:
		out = ptr(*x)
	case *ForEachLoop:
		out = ptr(*x)
	case *ForEachControl:
		out = ptr(*x)
	case *Switch:
		out = ptr(*x)
	case *Case:
		out = ptr(*x)
	case *Try:
		out = ptr(*x)
	case *Resources:
		out = ptr(*x)
	case *Catch:
		out = ptr(*x)
	case *Finally:
		out = ptr(*x)
	case *Synchronized:
		out = ptr(*x)
	case *Return:
		out = ptr(*x)
	case *Throw:
		out = ptr(*x)
	case *Break:
		out = ptr(*x)
	case *Continue:
		out = ptr(*x)
	case *Labeled:
		out = ptr(*x)
	case *Empty:
		out = ptr(*x)
	case *Ident:
		out = ptr(*x)
	case *Literal:
		out = ptr(*x)
	case *FieldAccess:
		out = ptr(*x)
	case *MethodInvocation:
		out = ptr(*x)
	case *NewClass:
		out = ptr(*x)
	case *NewArray:
		out = ptr(*x)
	case *ArrayInit:
		out = ptr(*x)
	case *ArrayAccess:
		out = ptr(*x)
	case *Unary:
		out = ptr(*x)
	case *Binary:
		out = ptr(*x)
	case *Assignment:
		out = ptr(*x)
	case *Ternary:
		out = ptr(*x)
	case *InstanceOf:
		out = ptr(*x)
	case *TypeCast:
		out = ptr(*x)
	case *Parens:
		out = ptr(*x)
	case *LambdaParams:
		out = ptr(*x)
	case *Lambda:
		out = ptr(*x)
	case *MemberRef:
		out = ptr(*x)
	case *ParamType:
		out = ptr(*x)
	case *ArrayType:
		out = ptr(*x)
	case *Wildcard:
		out = ptr(*x)
	case *MultiCatch:
		out = ptr(*x)
	default:
		panic(fmt.Sprintf("parser: cannot clone %T", n))
	}
	return out.(T)
}

func ptr[T any](v T) *T { return &v }
