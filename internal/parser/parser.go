package parser

import (
	"fmt"
)

// Parse parses a Java compilation unit.
func Parse(src string) (cu *CompilationUnit, err error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	defer p.recover(&err)
	cu = p.compilationUnit()
	return cu, nil
}

// ParseStatement parses a single statement, including its terminating
// semicolon when the statement kind requires one. Trailing whitespace is
// discarded.
func ParseStatement(src string) (n Node, err error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	defer p.recover(&err)
	e := p.blockStatement()
	p.expectEOF()
	return e.Node, nil
}

// ParseExpression parses a single expression.
func ParseExpression(src string) (n Node, err error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	defer p.recover(&err)
	n = p.expr()
	p.expectEOF()
	return n, nil
}

// NeedsSemicolon reports whether n, in statement or member position, is
// terminated by a semicolon.
func NeedsSemicolon(n Node) bool {
	switch x := n.(type) {
	case *VarDecls, *Return, *Throw, *Break, *Continue, *DoWhile, *Empty,
		*MethodInvocation, *Assignment, *Unary, *NewClass, *Ident, *FieldAccess,
		*Binary, *Parens, *Lambda, *Ternary, *Literal, *ArrayAccess, *TypeCast,
		*InstanceOf, *NewArray, *MemberRef:
		return true
	case *MethodDecl:
		return x.Body == nil
	case *EnumValueSet:
		return x.Terminated
	case *Labeled:
		return NeedsSemicolon(x.Stmt)
	}
	return false
}

// IsPrimitive reports whether name is a primitive type keyword.
func IsPrimitive(name string) bool {
	return primitives[name] && name != "void"
}

type bailout struct{ err *SyntaxError }

type parser struct {
	toks []token
	pos  int
}

func newParser(src string) (*parser, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	return &parser{toks: toks}, nil
}

func (p *parser) recover(err *error) {
	if r := recover(); r != nil {
		b, ok := r.(bailout)
		if !ok {
			panic(r)
		}
		*err = b.err
	}
}

func (p *parser) fail(format string, args ...any) {
	t := p.peek()
	panic(bailout{&SyntaxError{Line: t.line, Col: t.col, Msg: fmt.Sprintf(format, args...)}})
}

// attempt runs fn and restores the position when it fails.
func (p *parser) attempt(fn func()) (ok bool) {
	save := p.pos
	defer func() {
		if r := recover(); r != nil {
			if _, isBail := r.(bailout); !isBail {
				panic(r)
			}
			p.pos = save
			ok = false
		}
	}()
	fn()
	return true
}

func (p *parser) peek() token { return p.peekN(0) }

func (p *parser) peekN(k int) token {
	if p.pos+k >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+k]
}

func (p *parser) next() token {
	t := p.peek()
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (t token) is(text string) bool {
	return (t.kind == tokOp || t.kind == tokIdent) && t.text == text
}

func (p *parser) is(text string) bool { return p.peek().is(text) }

func (p *parser) expect(text string) token {
	t := p.peek()
	if !t.is(text) {
		p.fail("expected %q, found %q", text, t.text)
	}
	return p.next()
}

func (p *parser) expectEOF() {
	if t := p.peek(); t.kind != tokEOF {
		p.fail("unexpected %q", t.text)
	}
}

func (t token) isName() bool {
	return t.kind == tokIdent && !keywords[t.text]
}

func (p *parser) name() *Ident {
	t := p.peek()
	if !t.isName() {
		p.fail("expected identifier, found %q", t.text)
	}
	p.next()
	return &Ident{Meta: Meta{Prefix: t.pre}, Name: t.text}
}

// lift moves n's prefix to the node being built around it.
func lift(n Node) Space {
	m := n.meta()
	s := m.Prefix
	m.Prefix = ""
	return s
}

func (p *parser) compilationUnit() *CompilationUnit {
	cu := &CompilationUnit{}
	if p.is("package") {
		kw := p.next()
		pkg := &PackageDecl{Meta: Meta{Prefix: kw.pre}, Name: p.qualifiedName(false)}
		pkg.Semi = p.expect(";").pre
		cu.Package = pkg
	}
	for p.is("import") {
		kw := p.next()
		imp := &Import{Meta: Meta{Prefix: kw.pre}}
		if p.is("static") {
			imp.Static = true
			imp.StaticPre = p.next().pre
		}
		imp.Name = p.qualifiedName(true)
		imp.Semi = p.expect(";").pre
		cu.Imports = append(cu.Imports, imp)
	}
	for p.peek().kind != tokEOF {
		leading := p.leading()
		cu.Types = append(cu.Types, p.classDecl(leading))
	}
	cu.EOF = p.next().pre
	return cu
}

func (p *parser) qualifiedName(wildcard bool) Node {
	var n Node = p.name()
	for p.is(".") {
		dot := p.next()
		var id *Ident
		if wildcard && p.is("*") {
			t := p.next()
			id = &Ident{Meta: Meta{Prefix: t.pre}, Name: "*"}
		} else {
			id = p.name()
		}
		n = &FieldAccess{Meta: Meta{Prefix: lift(n)}, Target: n, DotPre: dot.pre, Name: id}
	}
	return n
}

var modifierKeywords = map[string]bool{
	"public": true, "protected": true, "private": true, "static": true,
	"abstract": true, "final": true, "native": true, "synchronized": true,
	"transient": true, "volatile": true, "strictfp": true, "default": true,
}

func (p *parser) leading() []Node {
	var out []Node
	for {
		t := p.peek()
		switch {
		case t.is("@") && !p.peekN(1).is("interface"):
			out = append(out, p.annotation())
		case t.kind == tokIdent && modifierKeywords[t.text]:
			if t.text == "default" && p.peekN(1).is(":") {
				return out
			}
			if t.text == "synchronized" && p.peekN(1).is("(") {
				return out
			}
			p.next()
			out = append(out, &Modifier{Meta: Meta{Prefix: t.pre}, Keyword: t.text})
		default:
			return out
		}
	}
}

func (p *parser) annotation() *Annotation {
	at := p.expect("@")
	a := &Annotation{Meta: Meta{Prefix: at.pre}, Name: p.qualifiedName(false)}
	if !p.is("(") {
		return a
	}
	a.Args = &Args{Meta: Meta{Prefix: p.next().pre}}
	if p.is(")") {
		a.Args.Elems = []Elem{{Node: &Empty{}, After: p.next().pre}}
		return a
	}
	for {
		var v Node
		if p.peek().isName() && p.peekN(1).is("=") {
			id := p.name()
			eq := p.next()
			v = &Assignment{Meta: Meta{Prefix: lift(id)}, Var: id, OpPre: eq.pre, Op: "=", Value: p.varInit()}
		} else {
			v = p.varInit()
		}
		if p.is(",") {
			a.Args.Elems = append(a.Args.Elems, Elem{Node: v, After: p.next().pre})
			continue
		}
		a.Args.Elems = append(a.Args.Elems, Elem{Node: v, After: p.expect(")").pre})
		return a
	}
}

// declStart splits the prefix of a declaration between the node and the
// token following its modifiers.
func declStart(leading []Node, pre Space) (node, kw Space) {
	if len(leading) > 0 {
		return lift(leading[0]), pre
	}
	return pre, ""
}

func isClassKeyword(t token) bool {
	return t.is("class") || t.is("interface") || t.is("enum")
}

func (p *parser) classDecl(leading []Node) *ClassDecl {
	kw := p.peek()
	if !isClassKeyword(kw) {
		p.fail("expected type declaration, found %q", kw.text)
	}
	p.next()
	c := &ClassDecl{Leading: leading, Kind: kw.text}
	c.Prefix, c.KindPre = declStart(leading, kw.pre)
	c.Name = p.name()
	if p.is("<") {
		c.TypeParams = p.typeParams()
	}
	if p.is("extends") {
		c.Extends = p.clause("extends")
	}
	if p.is("implements") {
		c.Implements = p.clause("implements")
	}
	c.Body = p.classBody(c.Kind == "enum", c.Name.Name)
	return c
}

func (p *parser) clause(keyword string) *Clause {
	c := &Clause{Pre: p.expect(keyword).pre, Keyword: keyword}
	for {
		var t Node
		if keyword == "throws" {
			t = p.qualifiedName(false)
		} else {
			t = p.typ()
		}
		if !p.is(",") {
			c.Types = append(c.Types, Elem{Node: t})
			return c
		}
		c.Types = append(c.Types, Elem{Node: t, After: p.next().pre})
	}
}

func (p *parser) typeParams() *TypeParams {
	tp := &TypeParams{Meta: Meta{Prefix: p.expect("<").pre}}
	for {
		param := &TypeParam{Name: p.name()}
		param.Prefix = lift(param.Name)
		if p.is("extends") {
			param.ExtendsPre = p.next().pre
			for {
				t := p.typ()
				if !p.is("&") {
					param.Bounds = append(param.Bounds, Elem{Node: t})
					break
				}
				param.Bounds = append(param.Bounds, Elem{Node: t, After: p.next().pre})
			}
		}
		if p.is(",") {
			tp.Elems = append(tp.Elems, Elem{Node: param, After: p.next().pre})
			continue
		}
		tp.Elems = append(tp.Elems, Elem{Node: param, After: p.expect(">").pre})
		return tp
	}
}

func (p *parser) classBody(enum bool, className string) *Block {
	b := &Block{Meta: Meta{Prefix: p.expect("{").pre}}
	if enum && !p.is("}") {
		set := p.enumValues()
		e := Elem{Node: set}
		if p.is(";") {
			set.Terminated = true
			e.After = p.next().pre
		}
		b.Stmts = append(b.Stmts, e)
	}
	for !p.is("}") {
		if p.peek().kind == tokEOF {
			p.fail("unexpected end of file in class body")
		}
		b.Stmts = append(b.Stmts, p.member(className))
	}
	b.End = p.next().pre
	return b
}

func (p *parser) enumValues() *EnumValueSet {
	set := &EnumValueSet{}
	for !p.is(";") && !p.is("}") {
		leading := p.leading()
		v := &EnumValue{Leading: leading, Name: p.name()}
		v.Prefix, v.Name.Prefix = declStart(leading, v.Name.Prefix)
		if p.is("(") {
			v.Args = p.args()
		}
		if p.is("{") {
			v.Body = p.classBody(false, "")
		}
		if !p.is(",") {
			set.Values = append(set.Values, Elem{Node: v})
			break
		}
		set.Values = append(set.Values, Elem{Node: v, After: p.next().pre})
		if p.is(";") || p.is("}") {
			set.Values = append(set.Values, Elem{Node: &Empty{}})
		}
	}
	if len(set.Values) > 0 {
		set.Prefix = lift(set.Values[0].Node)
	}
	return set
}

func (p *parser) member(className string) Elem {
	if p.is(";") {
		return Elem{Node: &Empty{}, After: p.next().pre}
	}
	leading := p.leading()
	t := p.peek()
	var n Node
	switch {
	case isClassKeyword(t):
		n = p.classDecl(leading)
	case t.is("{"):
		b := p.block()
		if len(leading) > 0 {
			m, ok := leading[0].(*Modifier)
			if len(leading) > 1 || !ok || m.Keyword != "static" {
				p.fail("unexpected modifiers on initializer")
			}
			b.Static = true
			b.StaticAfter = b.Prefix
			b.Prefix = m.Prefix
		}
		n = b
	default:
		n = p.methodOrField(leading, className)
	}
	e := Elem{Node: n}
	if NeedsSemicolon(n) {
		e.After = p.expect(";").pre
	}
	return e
}

func (p *parser) methodOrField(leading []Node, className string) Node {
	var typeParams *TypeParams
	if p.is("<") {
		typeParams = p.typeParams()
	}
	if t := p.peek(); t.is(className) && p.peekN(1).is("(") {
		m := &MethodDecl{Leading: leading, TypeParams: typeParams, Name: p.name()}
		setDeclPrefix(m, leading, typeParams, m.Name)
		return p.methodRest(m)
	}
	typ := p.typ()
	if p.peekN(1).is("(") {
		m := &MethodDecl{Leading: leading, TypeParams: typeParams, ReturnType: typ, Name: p.name()}
		setDeclPrefix(m, leading, typeParams, typ)
		return p.methodRest(m)
	}
	if typeParams != nil {
		p.fail("type parameters on field declaration")
	}
	return p.varDeclsRest(leading, typ)
}

func setDeclPrefix(m *MethodDecl, leading []Node, typeParams *TypeParams, first Node) {
	switch {
	case len(leading) > 0:
		m.Prefix = lift(leading[0])
	case typeParams != nil:
		m.Prefix = lift(typeParams)
	default:
		m.Prefix = lift(first)
	}
}

func (p *parser) methodRest(m *MethodDecl) *MethodDecl {
	m.Params = p.formalParams()
	if p.is("throws") {
		m.Throws = p.clause("throws")
	}
	if p.is("{") {
		m.Body = p.block()
	}
	return m
}

func (p *parser) formalParams() *Args {
	a := &Args{Meta: Meta{Prefix: p.expect("(").pre}}
	if p.is(")") {
		a.Elems = []Elem{{Node: &Empty{}, After: p.next().pre}}
		return a
	}
	for {
		param := p.formalParam()
		if p.is(",") {
			a.Elems = append(a.Elems, Elem{Node: param, After: p.next().pre})
			continue
		}
		a.Elems = append(a.Elems, Elem{Node: param, After: p.expect(")").pre})
		return a
	}
}

func (p *parser) formalParam() *VarDecls {
	leading := p.leading()
	v := &VarDecls{Leading: leading, Type: p.typ()}
	if len(leading) > 0 {
		v.Prefix = lift(leading[0])
	} else {
		v.Prefix = lift(v.Type)
	}
	if p.is("...") {
		v.Varargs = true
		v.VarargsPre = p.next().pre
	}
	nv := &NamedVar{Name: p.name()}
	nv.Prefix = lift(nv.Name)
	nv.Dims = p.dims()
	v.Vars = []Elem{{Node: nv}}
	return v
}

func (p *parser) dims() []Dim {
	var out []Dim
	for p.is("[") && p.peekN(1).is("]") {
		lb := p.next()
		rb := p.next()
		out = append(out, Dim{Pre: lb.pre, Inner: rb.pre})
	}
	return out
}

// varDeclsRest parses the declarators following a variable type.
func (p *parser) varDeclsRest(leading []Node, typ Node) *VarDecls {
	v := &VarDecls{Leading: leading, Type: typ}
	if len(leading) > 0 {
		v.Prefix = lift(leading[0])
	} else {
		v.Prefix = lift(typ)
	}
	for {
		nv := &NamedVar{Name: p.name()}
		nv.Prefix = lift(nv.Name)
		nv.Dims = p.dims()
		if p.is("=") {
			nv.EqPre = p.next().pre
			nv.Init = p.varInit()
		}
		if !p.is(",") {
			v.Vars = append(v.Vars, Elem{Node: nv})
			return v
		}
		v.Vars = append(v.Vars, Elem{Node: nv, After: p.next().pre})
	}
}

func (p *parser) varInit() Node {
	if p.is("{") {
		return p.arrayInit()
	}
	return p.expr()
}

func (p *parser) arrayInit() *ArrayInit {
	a := &ArrayInit{Meta: Meta{Prefix: p.expect("{").pre}}
	if p.is("}") {
		a.Elems = []Elem{{Node: &Empty{}, After: p.next().pre}}
		return a
	}
	for {
		e := p.varInit()
		if p.is(",") {
			a.Elems = append(a.Elems, Elem{Node: e, After: p.next().pre})
			if p.is("}") {
				a.Elems = append(a.Elems, Elem{Node: &Empty{}, After: p.next().pre})
				return a
			}
			continue
		}
		a.Elems = append(a.Elems, Elem{Node: e, After: p.expect("}").pre})
		return a
	}
}

// Types.

func (p *parser) typ() Node {
	t := p.nonArrayType()
	for p.is("[") && p.peekN(1).is("]") {
		lb := p.next()
		rb := p.next()
		t = &ArrayType{Meta: Meta{Prefix: lift(t)}, Elem: t, Dim: Dim{Pre: lb.pre, Inner: rb.pre}}
	}
	return t
}

func (p *parser) nonArrayType() Node {
	t := p.peek()
	if t.is("?") {
		p.next()
		w := &Wildcard{Meta: Meta{Prefix: t.pre}}
		if p.is("extends") || p.is("super") {
			kw := p.next()
			w.BoundPre = kw.pre
			w.Bound = kw.text
			w.Type = p.typ()
		}
		return w
	}
	if t.kind != tokIdent || (keywords[t.text] && !primitives[t.text]) {
		p.fail("expected type, found %q", t.text)
	}
	p.next()
	var n Node = &Ident{Meta: Meta{Prefix: t.pre}, Name: t.text}
	if primitives[t.text] {
		return n
	}
	for {
		if p.is("<") {
			n = &ParamType{Meta: Meta{Prefix: lift(n)}, Clazz: n, Args: p.typeArgs()}
		}
		if !p.is(".") || !p.peekN(1).isName() {
			return n
		}
		dot := p.next()
		n = &FieldAccess{Meta: Meta{Prefix: lift(n)}, Target: n, DotPre: dot.pre, Name: p.name()}
	}
}

func (p *parser) typeArgs() *TypeArgs {
	ta := &TypeArgs{Meta: Meta{Prefix: p.expect("<").pre}}
	if p.is(">") {
		ta.Elems = []Elem{{Node: &Empty{}, After: p.next().pre}}
		return ta
	}
	for {
		t := p.typ()
		if p.is(",") {
			ta.Elems = append(ta.Elems, Elem{Node: t, After: p.next().pre})
			continue
		}
		ta.Elems = append(ta.Elems, Elem{Node: t, After: p.expect(">").pre})
		return ta
	}
}

// Statements.

func (p *parser) block() *Block {
	b := &Block{Meta: Meta{Prefix: p.expect("{").pre}}
	for !p.is("}") {
		if p.peek().kind == tokEOF {
			p.fail("unexpected end of file in block")
		}
		b.Stmts = append(b.Stmts, p.blockStatement())
	}
	b.End = p.next().pre
	return b
}

func (p *parser) blockStatement() Elem {
	n := p.statement()
	e := Elem{Node: n}
	if NeedsSemicolon(n) {
		e.After = p.expect(";").pre
	}
	return e
}

func (p *parser) statement() Node {
	t := p.peek()
	switch {
	case t.is("{"):
		return p.block()
	case t.is(";"):
		return &Empty{}
	case t.is("if"):
		return p.ifStatement()
	case t.is("while"):
		p.next()
		w := &WhileLoop{Meta: Meta{Prefix: t.pre}, Cond: p.controlParens()}
		w.Body = p.blockStatement()
		return w
	case t.is("do"):
		p.next()
		d := &DoWhile{Meta: Meta{Prefix: t.pre}, Body: p.blockStatement()}
		d.WhilePre = p.expect("while").pre
		d.Cond = p.controlParens()
		return d
	case t.is("for"):
		return p.forStatement()
	case t.is("switch"):
		return p.switchStatement()
	case t.is("try"):
		return p.tryStatement()
	case t.is("synchronized") && p.peekN(1).is("("):
		p.next()
		s := &Synchronized{Meta: Meta{Prefix: t.pre}, Lock: p.controlParens()}
		s.Body = p.block()
		return s
	case t.is("return"):
		p.next()
		r := &Return{Meta: Meta{Prefix: t.pre}}
		if !p.is(";") {
			r.Expr = p.expr()
		}
		return r
	case t.is("throw"):
		p.next()
		return &Throw{Meta: Meta{Prefix: t.pre}, Expr: p.expr()}
	case t.is("break"):
		p.next()
		b := &Break{Meta: Meta{Prefix: t.pre}}
		if p.peek().isName() {
			l := p.next()
			b.LabelPre, b.Label = l.pre, l.text
		}
		return b
	case t.is("continue"):
		p.next()
		c := &Continue{Meta: Meta{Prefix: t.pre}}
		if p.peek().isName() {
			l := p.next()
			c.LabelPre, c.Label = l.pre, l.text
		}
		return c
	case t.isName() && p.peekN(1).is(":"):
		p.next()
		l := &Labeled{Meta: Meta{Prefix: t.pre}, Label: t.text, ColonPre: p.next().pre}
		l.Stmt = p.statement()
		return l
	}

	leading := p.leading()
	if isClassKeyword(p.peek()) {
		return p.classDecl(leading)
	}
	if len(leading) > 0 {
		return p.varDeclsRest(leading, p.typ())
	}
	if p.isLocalVarDecl() {
		return p.varDeclsRest(nil, p.typ())
	}
	return p.expr()
}

// isLocalVarDecl looks ahead for "Type name" followed by a declarator
// delimiter.
func (p *parser) isLocalVarDecl() bool {
	save := p.pos
	defer func() { p.pos = save }()
	ok := p.attempt(func() { p.typ() })
	if !ok || !p.peek().isName() {
		return false
	}
	switch next := p.peekN(1); {
	case next.is("="), next.is(";"), next.is(","), next.is("["), next.is(":"):
		return true
	}
	return false
}

func (p *parser) ifStatement() *If {
	kw := p.expect("if")
	n := &If{Meta: Meta{Prefix: kw.pre}, Cond: p.controlParens()}
	n.Then = p.blockStatement()
	if p.is("else") {
		e := &Else{Meta: Meta{Prefix: p.next().pre}}
		e.Body = p.blockStatement()
		n.Else = e
	}
	return n
}

func (p *parser) controlParens() *ControlParens {
	cp := &ControlParens{Meta: Meta{Prefix: p.expect("(").pre}}
	cp.Tree = Elem{Node: p.expr(), After: p.expect(")").pre}
	return cp
}

func (p *parser) forStatement() Node {
	kw := p.expect("for")
	lp := p.expect("(")

	var each *ForEachControl
	p.attempt(func() {
		leading := p.leading()
		v := &VarDecls{Leading: leading, Type: p.typ()}
		if len(leading) > 0 {
			v.Prefix = lift(leading[0])
		} else {
			v.Prefix = lift(v.Type)
		}
		nv := &NamedVar{Name: p.name()}
		nv.Prefix = lift(nv.Name)
		nv.Dims = p.dims()
		v.Vars = []Elem{{Node: nv}}
		colon := p.expect(":")
		each = &ForEachControl{Meta: Meta{Prefix: lp.pre}, Var: Elem{Node: v, After: colon.pre}}
	})
	if each != nil {
		iter := p.expr()
		each.Iter = Elem{Node: iter, After: p.expect(")").pre}
		f := &ForEachLoop{Meta: Meta{Prefix: kw.pre}, Control: each}
		f.Body = p.blockStatement()
		return f
	}

	ctl := &ForControl{Meta: Meta{Prefix: lp.pre}}
	switch {
	case p.is(";"):
		ctl.Init = []Elem{{Node: &Empty{Meta: Meta{Prefix: p.next().pre}}}}
	case len(p.peekModifiers()) > 0 || p.isLocalVarDecl():
		leading := p.leading()
		v := p.varDeclsRest(leading, p.typ())
		ctl.Init = []Elem{{Node: v, After: p.expect(";").pre}}
	default:
		ctl.Init = p.exprList(";")
	}
	if p.is(";") {
		ctl.Cond = Elem{Node: &Empty{Meta: Meta{Prefix: p.next().pre}}}
	} else {
		c := p.expr()
		ctl.Cond = Elem{Node: c, After: p.expect(";").pre}
	}
	if p.is(")") {
		ctl.Update = []Elem{{Node: &Empty{Meta: Meta{Prefix: p.next().pre}}}}
	} else {
		ctl.Update = p.exprList(")")
	}
	f := &ForLoop{Meta: Meta{Prefix: kw.pre}, Control: ctl}
	f.Body = p.blockStatement()
	return f
}

func (p *parser) peekModifiers() []token {
	var out []token
	for k := 0; ; k++ {
		t := p.peekN(k)
		if !(t.is("final") || t.is("@")) {
			return out
		}
		out = append(out, t)
	}
}

// exprList parses comma separated expressions up to and including end.
func (p *parser) exprList(end string) []Elem {
	var out []Elem
	for {
		e := p.expr()
		if p.is(",") {
			out = append(out, Elem{Node: e, After: p.next().pre})
			continue
		}
		out = append(out, Elem{Node: e, After: p.expect(end).pre})
		return out
	}
}

func (p *parser) switchStatement() *Switch {
	kw := p.expect("switch")
	s := &Switch{Meta: Meta{Prefix: kw.pre}, Selector: p.controlParens()}
	body := &Block{Meta: Meta{Prefix: p.expect("{").pre}}
	for !p.is("}") {
		t := p.peek()
		if !t.is("case") && !t.is("default") {
			p.fail("expected case label, found %q", t.text)
		}
		p.next()
		c := &Case{Meta: Meta{Prefix: t.pre}, Default: t.is("default")}
		if !c.Default {
			for {
				l := p.ternary()
				if p.is(",") {
					c.Labels = append(c.Labels, Elem{Node: l, After: p.next().pre})
					continue
				}
				c.Labels = append(c.Labels, Elem{Node: l})
				break
			}
		}
		c.ColonPre = p.expect(":").pre
		for !p.is("case") && !p.is("default") && !p.is("}") {
			if p.peek().kind == tokEOF {
				p.fail("unexpected end of file in switch")
			}
			c.Stmts = append(c.Stmts, p.blockStatement())
		}
		body.Stmts = append(body.Stmts, Elem{Node: c})
	}
	body.End = p.next().pre
	s.Body = body
	return s
}

func (p *parser) tryStatement() *Try {
	kw := p.expect("try")
	t := &Try{Meta: Meta{Prefix: kw.pre}}
	if p.is("(") {
		r := &Resources{Meta: Meta{Prefix: p.next().pre}}
		for {
			var res Node
			if len(p.peekModifiers()) > 0 || p.isLocalVarDecl() {
				leading := p.leading()
				res = p.varDeclsRest(leading, p.typ())
			} else {
				res = p.expr()
			}
			if p.is(";") {
				r.Elems = append(r.Elems, Elem{Node: res, After: p.next().pre})
				if p.is(")") {
					r.Elems = append(r.Elems, Elem{Node: &Empty{}, After: p.next().pre})
					break
				}
				continue
			}
			r.Elems = append(r.Elems, Elem{Node: res, After: p.expect(")").pre})
			break
		}
		t.Resources = r
	}
	t.Body = p.block()
	for p.is("catch") {
		c := &Catch{Meta: Meta{Prefix: p.next().pre}}
		lp := p.expect("(")
		leading := p.leading()
		var typ Node = p.typ()
		if p.is("|") {
			mc := &MultiCatch{}
			for p.is("|") {
				mc.Alts = append(mc.Alts, Elem{Node: typ, After: p.next().pre})
				typ = p.typ()
			}
			mc.Alts = append(mc.Alts, Elem{Node: typ})
			mc.Prefix = lift(mc.Alts[0].Node)
			typ = mc
		}
		v := &VarDecls{Leading: leading, Type: typ}
		if len(leading) > 0 {
			v.Prefix = lift(leading[0])
		} else {
			v.Prefix = lift(typ)
		}
		nv := &NamedVar{Name: p.name()}
		nv.Prefix = lift(nv.Name)
		v.Vars = []Elem{{Node: nv}}
		c.Param = &ControlParens{Meta: Meta{Prefix: lp.pre}, Tree: Elem{Node: v, After: p.expect(")").pre}}
		c.Body = p.block()
		t.Catches = append(t.Catches, c)
	}
	if p.is("finally") {
		f := &Finally{Meta: Meta{Prefix: p.next().pre}}
		f.Body = p.block()
		t.Finally = f
	}
	if t.Catches == nil && t.Finally == nil && t.Resources == nil {
		p.fail("try without catch or finally")
	}
	return t
}

// Expressions.

func (p *parser) expr() Node {
	if p.isLambda() {
		return p.lambda()
	}
	lhs := p.ternary()
	if op, n := p.assignOp(); n > 0 {
		first := p.peek()
		p.pos += n
		return &Assignment{Meta: Meta{Prefix: lift(lhs)}, Var: lhs, OpPre: first.pre, Op: op, Value: p.expr()}
	}
	return lhs
}

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true, "<<=": true, ">>=": true, ">>>=": true,
}

func (p *parser) assignOp() (string, int) {
	op, n := p.gtRun()
	if n == 0 {
		t := p.peek()
		if t.kind != tokOp {
			return "", 0
		}
		op, n = t.text, 1
	}
	if assignOps[op] {
		return op, n
	}
	return "", 0
}

// gtRun joins adjacent ">" tokens into shift and comparison operators.
func (p *parser) gtRun() (string, int) {
	t := p.peek()
	if !t.is(">") && !t.is(">=") {
		return "", 0
	}
	op := t.text
	n := 1
	for op == ">" || op == ">>" {
		next := p.peekN(n)
		if next.pre != "" || !(next.is(">") || next.is(">=")) {
			break
		}
		op += next.text
		n++
	}
	return op, n
}

func (p *parser) isLambda() bool {
	t := p.peek()
	if t.isName() && p.peekN(1).is("->") {
		return true
	}
	if !t.is("(") {
		return false
	}
	depth := 0
	for k := 0; ; k++ {
		tk := p.peekN(k)
		switch {
		case tk.kind == tokEOF:
			return false
		case tk.is("("):
			depth++
		case tk.is(")"):
			depth--
			if depth == 0 {
				return p.peekN(k + 1).is("->")
			}
		}
	}
}

func (p *parser) lambda() *Lambda {
	params := &LambdaParams{}
	if p.is("(") {
		params.Prefix = p.next().pre
		params.Parenthesized = true
		if p.is(")") {
			params.Elems = []Elem{{Node: &Empty{}, After: p.next().pre}}
		}
		for len(params.Elems) == 0 || !p.is("->") {
			var param *VarDecls
			if p.peek().isName() && (p.peekN(1).is(",") || p.peekN(1).is(")")) {
				param = untypedParam(p.name())
			} else {
				param = p.formalParam()
			}
			if p.is(",") {
				params.Elems = append(params.Elems, Elem{Node: param, After: p.next().pre})
				continue
			}
			params.Elems = append(params.Elems, Elem{Node: param, After: p.expect(")").pre})
		}
	} else {
		id := p.name()
		params.Prefix = lift(id)
		params.Elems = []Elem{{Node: untypedParam(id)}}
	}
	l := &Lambda{Meta: Meta{Prefix: lift(params)}, Params: params, ArrowPre: p.expect("->").pre}
	if p.is("{") {
		l.Body = p.block()
	} else {
		l.Body = p.expr()
	}
	return l
}

func untypedParam(id *Ident) *VarDecls {
	pre := lift(id)
	return &VarDecls{Meta: Meta{Prefix: pre}, Vars: []Elem{{Node: &NamedVar{Name: id}}}}
}

func (p *parser) ternary() Node {
	cond := p.binary(1)
	if !p.is("?") {
		return cond
	}
	t := &Ternary{Meta: Meta{Prefix: lift(cond)}, Cond: cond, QPre: p.next().pre}
	t.Then = p.expr()
	t.ElsePre = p.expect(":").pre
	if p.isLambda() {
		t.Else = p.lambda()
	} else {
		t.Else = p.ternary()
	}
	return t
}

var binaryPrec = map[string]int{
	"||": 1, "&&": 2, "|": 3, "^": 4, "&": 5,
	"==": 6, "!=": 6,
	"<": 7, ">": 7, "<=": 7, ">=": 7, "instanceof": 7,
	"<<": 8, ">>": 8, ">>>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10,
}

// Precedence returns the binding strength of a binary operator; higher
// binds tighter.
func Precedence(op string) int { return binaryPrec[op] }

func (p *parser) binaryOp() (string, int) {
	if op, n := p.gtRun(); n > 0 {
		return op, n
	}
	t := p.peek()
	if t.kind == tokOp || t.is("instanceof") {
		return t.text, 1
	}
	return "", 0
}

func (p *parser) binary(minPrec int) Node {
	left := p.unary()
	for {
		op, n := p.binaryOp()
		prec, ok := binaryPrec[op]
		if n == 0 || !ok || prec < minPrec {
			return left
		}
		first := p.peek()
		p.pos += n
		if op == "instanceof" {
			left = &InstanceOf{Meta: Meta{Prefix: lift(left)}, Expr: left, OpPre: first.pre, Type: p.typ()}
			continue
		}
		right := p.binary(prec + 1)
		left = &Binary{Meta: Meta{Prefix: lift(left)}, Left: left, OpPre: first.pre, Op: op, Right: right}
	}
}

func (p *parser) unary() Node {
	t := p.peek()
	switch {
	case t.is("++"), t.is("--"), t.is("+"), t.is("-"), t.is("!"), t.is("~"):
		p.next()
		return &Unary{Meta: Meta{Prefix: t.pre}, Op: t.text, Expr: p.unary()}
	case t.is("("):
		if cast := p.tryCast(); cast != nil {
			return cast
		}
	}
	e := p.primary()
	for p.is("++") || p.is("--") {
		op := p.next()
		e = &Unary{Meta: Meta{Prefix: lift(e)}, Op: op.text, Postfix: true, OpPre: op.pre, Expr: e}
	}
	return e
}

func (p *parser) tryCast() Node {
	var cast *TypeCast
	p.attempt(func() {
		lp := p.expect("(")
		typ := p.typ()
		rp := p.expect(")")
		if !castFollows(typ, p.peek()) {
			p.fail("not a cast")
		}
		cast = &TypeCast{Meta: Meta{Prefix: lp.pre}, Type: Elem{Node: typ, After: rp.pre}}
	})
	if cast == nil {
		return nil
	}
	if p.isLambda() {
		cast.Expr = p.lambda()
	} else {
		cast.Expr = p.unary()
	}
	return cast
}

func castFollows(typ Node, next token) bool {
	if isPrimitiveType(typ) {
		return next.kind != tokOp || next.is("(") || next.is("-") || next.is("+") ||
			next.is("!") || next.is("~") || next.is("++") || next.is("--")
	}
	switch next.kind {
	case tokInt, tokFloat, tokString, tokChar:
		return true
	case tokIdent:
		return !keywords[next.text] || next.is("this") || next.is("super") || next.is("new") ||
			next.is("true") || next.is("false") || next.is("null")
	}
	return next.is("(") || next.is("!") || next.is("~")
}

func isPrimitiveType(n Node) bool {
	id, ok := n.(*Ident)
	return ok && IsPrimitive(id.Name)
}

func (p *parser) primary() Node {
	t := p.peek()
	var e Node
	switch {
	case t.kind == tokInt:
		p.next()
		e = &Literal{Meta: Meta{Prefix: t.pre}, Kind: LitInt, Text: t.text}
	case t.kind == tokFloat:
		p.next()
		e = &Literal{Meta: Meta{Prefix: t.pre}, Kind: LitFloat, Text: t.text}
	case t.kind == tokString:
		p.next()
		e = &Literal{Meta: Meta{Prefix: t.pre}, Kind: LitString, Text: t.text}
	case t.kind == tokChar:
		p.next()
		e = &Literal{Meta: Meta{Prefix: t.pre}, Kind: LitChar, Text: t.text}
	case t.is("true"), t.is("false"):
		p.next()
		e = &Literal{Meta: Meta{Prefix: t.pre}, Kind: LitBool, Text: t.text}
	case t.is("null"):
		p.next()
		e = &Literal{Meta: Meta{Prefix: t.pre}, Kind: LitNull, Text: t.text}
	case t.is("("):
		p.next()
		inner := p.expr()
		e = &Parens{Meta: Meta{Prefix: t.pre}, Tree: Elem{Node: inner, After: p.expect(")").pre}}
	case t.is("new"):
		e = p.creator()
	case t.is("this"), t.is("super"), t.isName():
		p.next()
		id := &Ident{Meta: Meta{Prefix: t.pre}, Name: t.text}
		if p.is("(") {
			e = &MethodInvocation{Meta: Meta{Prefix: lift(id)}, Name: id, Args: p.args()}
		} else {
			e = id
		}
	case t.kind == tokIdent && primitives[t.text]:
		e = p.typ()
		if !p.is(".") && !p.is("::") {
			p.fail("unexpected type %q in expression", t.text)
		}
	default:
		p.fail("unexpected %q", t.text)
	}
	return p.selectors(e)
}

func (p *parser) selectors(e Node) Node {
	for {
		switch {
		case p.is("."):
			dot := p.next()
			var typeArgs *TypeArgs
			if p.is("<") {
				typeArgs = p.typeArgs()
			}
			t := p.peek()
			if !t.isName() && !t.is("class") && !t.is("this") && !t.is("super") {
				p.fail("expected member name, found %q", t.text)
			}
			p.next()
			name := &Ident{Meta: Meta{Prefix: t.pre}, Name: t.text}
			if p.is("(") || typeArgs != nil {
				e = &MethodInvocation{Meta: Meta{Prefix: lift(e)}, Target: e, DotPre: dot.pre,
					TypeArgs: typeArgs, Name: name, Args: p.args()}
				continue
			}
			e = &FieldAccess{Meta: Meta{Prefix: lift(e)}, Target: e, DotPre: dot.pre, Name: name}
		case p.is("[") && p.peekN(1).is("]"):
			lb := p.next()
			rb := p.next()
			e = &ArrayType{Meta: Meta{Prefix: lift(e)}, Elem: e, Dim: Dim{Pre: lb.pre, Inner: rb.pre}}
		case p.is("["):
			lb := p.next()
			idx := p.expr()
			e = &ArrayAccess{Meta: Meta{Prefix: lift(e)}, Indexed: e, IndexPre: lb.pre,
				Index: Elem{Node: idx, After: p.expect("]").pre}}
		case p.is("::"):
			cc := p.next()
			t := p.peek()
			if !t.isName() && !t.is("new") {
				p.fail("expected method reference name, found %q", t.text)
			}
			p.next()
			e = &MemberRef{Meta: Meta{Prefix: lift(e)}, Target: e, ColonPre: cc.pre,
				Name: &Ident{Meta: Meta{Prefix: t.pre}, Name: t.text}}
		default:
			return e
		}
	}
}

func (p *parser) args() *Args {
	a := &Args{Meta: Meta{Prefix: p.expect("(").pre}}
	if p.is(")") {
		a.Elems = []Elem{{Node: &Empty{}, After: p.next().pre}}
		return a
	}
	a.Elems = p.exprList(")")
	return a
}

func (p *parser) creator() Node {
	kw := p.expect("new")
	t := p.nonArrayType()
	if p.is("[") {
		na := &NewArray{Meta: Meta{Prefix: kw.pre}, Type: t}
		for p.is("[") {
			lb := p.next()
			d := ArrayDim{Pre: lb.pre}
			if !p.is("]") {
				d.Size = p.expr()
			}
			d.After = p.expect("]").pre
			na.Dims = append(na.Dims, d)
		}
		if p.is("{") {
			na.Init = p.arrayInit()
		}
		return na
	}
	nc := &NewClass{Meta: Meta{Prefix: kw.pre}, Clazz: t, Args: p.args()}
	if p.is("{") {
		nc.Body = p.classBody(false, "")
	}
	return nc
}
