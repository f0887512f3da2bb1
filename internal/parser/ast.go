// Package parser provides a formatting-preserving Java parser that produces
// an immutable syntax tree.
//
// Every node carries the whitespace and comments preceding its first token in
// Meta.Prefix. Interior tokens keep their own leading Space in named fields
// or in Elem.After, so printing an untouched tree reproduces the source byte
// for byte.
package parser

import "strings"

// Space is the verbatim whitespace and comment text preceding a token.
type Space string

// HasNewline reports whether the space contains a line break.
func (s Space) HasNewline() bool {
	return strings.Contains(string(s), "\n")
}

// HasComment reports whether the space contains a line or block comment.
func (s Space) HasComment() bool {
	return strings.Contains(string(s), "//") || strings.Contains(string(s), "/*")
}

// Indent returns the whitespace after the last line break, or "" when the
// space has no line break.
func (s Space) Indent() string {
	i := strings.LastIndexByte(string(s), '\n')
	if i < 0 {
		return ""
	}
	return string(s[i+1:])
}

// Meta is the formatting envelope shared by every node.
type Meta struct {
	Prefix Space
}

func (m *Meta) meta() *Meta { return m }

// Node is any element of the syntax tree. The set of implementations is
// closed: callers dispatch with type switches.
type Node interface {
	meta() *Meta
}

// Prefix returns the space preceding n's first token.
func Prefix(n Node) Space {
	if n == nil {
		return ""
	}
	return n.meta().Prefix
}

// WithPrefix returns a shallow copy of n with its prefix replaced.
func WithPrefix[T Node](n T, s Space) T {
	if n.meta().Prefix == s {
		return n
	}
	c := Clone(n)
	c.meta().Prefix = s
	return c
}

// Elem is a node followed by the space preceding the delimiter that ends it
// (a comma, semicolon, closing paren or similar).
type Elem struct {
	Node  Node
	After Space
}

// Dim is an empty array bracket pair: Pre is the space before "[" and Inner
// the space before "]".
type Dim struct {
	Pre   Space
	Inner Space
}

// CompilationUnit is a parsed source file.
type CompilationUnit struct {
	Meta
	Package *PackageDecl
	Imports []*Import
	Types   []Node
	EOF     Space
}

// PackageDecl is "package a.b.c;".
type PackageDecl struct {
	Meta
	Name Node
	Semi Space
}

// Import is "import [static] a.b.C;".
type Import struct {
	Meta
	Static    bool
	StaticPre Space
	Name      Node
	Semi      Space
}

// Modifier is a keyword modifier such as public, static or final.
type Modifier struct {
	Meta
	Keyword string
}

// Annotation is "@Name" with optional arguments.
type Annotation struct {
	Meta
	Name Node
	Args *Args
}

// Args is a parenthesized, comma separated list. An empty list holds a
// single *Empty element carrying the space before ")".
type Args struct {
	Meta
	Elems []Elem
}

// TypeArgs is "<...>" on a type or a generic invocation. The diamond holds a
// single *Empty element.
type TypeArgs struct {
	Meta
	Elems []Elem
}

// TypeParams is the "<T extends X>" list of a generic declaration.
type TypeParams struct {
	Meta
	Elems []Elem
}

// TypeParam is a single declared type variable.
type TypeParam struct {
	Meta
	Name       *Ident
	ExtendsPre Space
	Bounds     []Elem
}

// Clause is an "extends", "implements" or "throws" list.
type Clause struct {
	Pre     Space
	Keyword string
	Types   []Elem
}

// ClassDecl declares a class, interface or enum.
type ClassDecl struct {
	Meta
	Leading    []Node
	KindPre    Space
	Kind       string
	Name       *Ident
	TypeParams *TypeParams
	Extends    *Clause
	Implements *Clause
	Body       *Block
}

// EnumValueSet is the constant list at the top of an enum body. It takes a
// terminating semicolon when Terminated is set.
type EnumValueSet struct {
	Meta
	Values     []Elem
	Terminated bool
}

// EnumValue is a single enum constant.
type EnumValue struct {
	Meta
	Leading []Node
	Name    *Ident
	Args    *Args
	Body    *Block
}

// MethodDecl declares a method or, when ReturnType is nil, a constructor.
// A nil Body means the declaration ends with a semicolon.
type MethodDecl struct {
	Meta
	Leading    []Node
	TypeParams *TypeParams
	ReturnType Node
	Name       *Ident
	Params     *Args
	Throws     *Clause
	Body       *Block
}

// VarDecls declares one or more variables sharing modifiers and a type. Type
// is nil for untyped lambda parameters. VarargsPre precedes "..." when
// Varargs is set.
type VarDecls struct {
	Meta
	Leading    []Node
	Type       Node
	Varargs    bool
	VarargsPre Space
	Vars       []Elem
}

// NamedVar is one declarator of a VarDecls.
type NamedVar struct {
	Meta
	Name  *Ident
	Dims  []Dim
	EqPre Space
	Init  Node
}

// Block is a braced statement list. Static marks a static initializer, in
// which case the node prefix precedes "static" and StaticAfter precedes "{".
type Block struct {
	Meta
	Static      bool
	StaticAfter Space
	Stmts       []Elem
	End         Space
}

// ControlParens is the parenthesized condition of a control statement or the
// parameter of a catch.
type ControlParens struct {
	Meta
	Tree Elem
}

// If is an if statement.
type If struct {
	Meta
	Cond *ControlParens
	Then Elem
	Else *Else
}

// Else is the else clause of an If.
type Else struct {
	Meta
	Body Elem
}

// WhileLoop is a while statement.
type WhileLoop struct {
	Meta
	Cond *ControlParens
	Body Elem
}

// DoWhile is a do/while statement.
type DoWhile struct {
	Meta
	Body     Elem
	WhilePre Space
	Cond     *ControlParens
}

// ForLoop is a classic three-part for statement.
type ForLoop struct {
	Meta
	Control *ForControl
	Body    Elem
}

// ForControl is "(init; cond; update)". Empty parts hold a single *Empty.
type ForControl struct {
	Meta
	Init   []Elem
	Cond   Elem
	Update []Elem
}

// ForEachLoop is an enhanced for statement.
type ForEachLoop struct {
	Meta
	Control *ForEachControl
	Body    Elem
}

// ForEachControl is "(Type v : iterable)".
type ForEachControl struct {
	Meta
	Var  Elem
	Iter Elem
}

// Switch is a switch statement whose body holds *Case statements.
type Switch struct {
	Meta
	Selector *ControlParens
	Body     *Block
}

// Case is a case or default label and the statements that follow it.
type Case struct {
	Meta
	Default  bool
	Labels   []Elem
	ColonPre Space
	Stmts    []Elem
}

// Try is a try statement with optional resources, catches and finally.
type Try struct {
	Meta
	Resources *Resources
	Body      *Block
	Catches   []*Catch
	Finally   *Finally
}

// Resources is the semicolon separated resource list of a try.
type Resources struct {
	Meta
	Elems []Elem
}

// Catch is a catch clause. Param.Tree holds a *VarDecls.
type Catch struct {
	Meta
	Param *ControlParens
	Body  *Block
}

// Finally is a finally clause.
type Finally struct {
	Meta
	Body *Block
}

// Synchronized is a synchronized statement.
type Synchronized struct {
	Meta
	Lock *ControlParens
	Body *Block
}

// Return is a return statement with optional value.
type Return struct {
	Meta
	Expr Node
}

// Throw is a throw statement.
type Throw struct {
	Meta
	Expr Node
}

// Break is a break statement with optional label.
type Break struct {
	Meta
	LabelPre Space
	Label    string
}

// Continue is a continue statement with optional label.
type Continue struct {
	Meta
	LabelPre Space
	Label    string
}

// Labeled is "label: statement".
type Labeled struct {
	Meta
	Label    string
	ColonPre Space
	Stmt     Node
}

// Empty is an absent element: an empty statement, an empty argument list
// or an omitted for-loop part.
type Empty struct {
	Meta
}

// Ident is a simple name, keyword reference (this, super) or primitive type.
type Ident struct {
	Meta
	Name string
}

// LiteralKind classifies a Literal.
type LiteralKind int

const (
	// LitInt is an integer literal.
	LitInt LiteralKind = iota
	// LitFloat is a floating point literal.
	LitFloat
	// LitString is a string or text block literal.
	LitString
	// LitChar is a character literal.
	LitChar
	// LitBool is true or false.
	LitBool
	// LitNull is null.
	LitNull
)

// Literal is a literal value kept in its source spelling.
type Literal struct {
	Meta
	Kind LiteralKind
	Text string
}

// FieldAccess is "target.name", also used for qualified type names and
// class literals.
type FieldAccess struct {
	Meta
	Target Node
	DotPre Space
	Name   *Ident
}

// MethodInvocation is a call. Target is nil for unqualified calls,
// including this(...) and super(...) constructor calls.
type MethodInvocation struct {
	Meta
	Target   Node
	DotPre   Space
	TypeArgs *TypeArgs
	Name     *Ident
	Args     *Args
}

// NewClass is "new T(args)" with an optional anonymous body.
type NewClass struct {
	Meta
	Clazz Node
	Args  *Args
	Body  *Block
}

// ArrayDim is a dimension of an array creation; Size is nil for "[]".
type ArrayDim struct {
	Pre   Space
	Size  Node
	After Space
}

// NewArray is "new T[n]..." or "new T[]{...}".
type NewArray struct {
	Meta
	Type Node
	Dims []ArrayDim
	Init *ArrayInit
}

// ArrayInit is a braced array initializer. An empty initializer holds a
// single *Empty element.
type ArrayInit struct {
	Meta
	Elems []Elem
}

// ArrayAccess is "indexed[index]"; IndexPre precedes "[".
type ArrayAccess struct {
	Meta
	Indexed  Node
	IndexPre Space
	Index    Elem
}

// Unary is a prefix or postfix unary operation. For prefix operators the
// operand prefix is the space after the operator; for postfix operators
// OpPre is the space before it.
type Unary struct {
	Meta
	Op      string
	Postfix bool
	OpPre   Space
	Expr    Node
}

// Binary is an infix operation.
type Binary struct {
	Meta
	Left  Node
	OpPre Space
	Op    string
	Right Node
}

// Assignment is a simple or compound assignment.
type Assignment struct {
	Meta
	Var   Node
	OpPre Space
	Op    string
	Value Node
}

// Ternary is "cond ? then : else".
type Ternary struct {
	Meta
	Cond    Node
	QPre    Space
	Then    Node
	ElsePre Space
	Else    Node
}

// InstanceOf is "expr instanceof Type".
type InstanceOf struct {
	Meta
	Expr  Node
	OpPre Space
	Type  Node
}

// TypeCast is "(Type) expr". Type.Node's prefix follows "(" and Type.After
// precedes ")".
type TypeCast struct {
	Meta
	Type Elem
	Expr Node
}

// Parens is a parenthesized expression.
type Parens struct {
	Meta
	Tree Elem
}

// LambdaParams is a lambda parameter list, parenthesized or a single bare
// name.
type LambdaParams struct {
	Meta
	Parenthesized bool
	Elems         []Elem
}

// Lambda is "params -> body"; Body is an expression or a *Block.
type Lambda struct {
	Meta
	Params   *LambdaParams
	ArrowPre Space
	Body     Node
}

// MemberRef is "target::name".
type MemberRef struct {
	Meta
	Target   Node
	ColonPre Space
	Name     *Ident
}

// ParamType is a parameterized type such as List<String>.
type ParamType struct {
	Meta
	Clazz Node
	Args  *TypeArgs
}

// ArrayType is "elem[]".
type ArrayType struct {
	Meta
	Elem Node
	Dim  Dim
}

// Wildcard is "?" with an optional bound.
type Wildcard struct {
	Meta
	BoundPre Space
	Bound    string
	Type     Node
}

// MultiCatch is the "A | B" type of a multi-catch parameter.
type MultiCatch struct {
	Meta
	Alts []Elem
}
