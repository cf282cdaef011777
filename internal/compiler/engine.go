// Package compiler implements the recursive-descent parser fused with VM
// code generation: the engine that turns a Jack class declaration into VM
// instructions, consulting the symbol model at every identifier reference.
package compiler

import (
	"fmt"

	"github.com/libklein/jackc/internal/symbol"
	"github.com/libklein/jackc/internal/token"
	"github.com/libklein/jackc/internal/vmcode"
)

// Engine is a one-shot compiler for a single Jack class: it borrows a
// Tokenizer and a vmcode.Writer for the duration of Compile, and owns the
// class/subroutine symbol scopes and the label counter for that class.
type Engine struct {
	toks  *token.Tokenizer
	out   *vmcode.Writer
	class *symbol.ClassScope
	sub   *symbol.SubroutineScope

	labelCounter int
}

// New builds an Engine that reads from toks and emits to out.
func New(toks *token.Tokenizer, out *vmcode.Writer) *Engine {
	return &Engine{toks: toks, out: out}
}

// Compile consumes exactly one class declaration and emits its VM code.
// Any syntactic or semantic-lite error aborts compilation and is returned
// as a *CompileError; there is no error recovery. Lexical errors are
// reported earlier, by token.New.
func (e *Engine) Compile() (err error) {
	defer func() {
		if r := recover(); r != nil {
			ce, ok := r.(*CompileError)
			if !ok {
				panic(r)
			}
			err = ce
		}
	}()

	e.compileClass()
	if _, ok := e.toks.Peek(); ok {
		panic(syntaxErrorf("", "unexpected input after class body"))
	}
	return nil
}

func (e *Engine) peek() token.Token {
	tok, ok := e.toks.Peek()
	if !ok {
		panic(syntaxErrorf("", "unexpected end of input"))
	}
	return tok
}

func (e *Engine) next() token.Token {
	tok, ok := e.toks.Advance()
	if !ok {
		panic(syntaxErrorf("", "unexpected end of input"))
	}
	return tok
}

// expect consumes the current token if it is the keyword or symbol text,
// and panics with a syntax error otherwise.
func (e *Engine) expect(text string) token.Token {
	tok := e.peek()
	if !tok.Is(text) {
		panic(syntaxErrorf(tok.Text, "expected %q, got %q", text, tok.Text))
	}
	return e.next()
}

func (e *Engine) expectIdentifier() token.Token {
	tok := e.peek()
	if tok.Kind != token.Identifier {
		panic(syntaxErrorf(tok.Text, "expected identifier, got %q", tok.Text))
	}
	return e.next()
}

// resolve looks up name in the current subroutine scope (falling back to
// the class scope) and fails with a semantic-lite error if it is
// undeclared.
func (e *Engine) resolve(name string) symbol.Symbol {
	sym, ok := e.sub.Get(name)
	if !ok {
		panic(semanticErrorf(name, "undeclared identifier %q", name))
	}
	return sym
}

func (e *Engine) newLabel() string {
	l := fmt.Sprintf("L%d", e.labelCounter)
	e.labelCounter++
	return l
}

// compileClass ::= `class` Ident `{` classVarDec* subroutineDec* `}`
func (e *Engine) compileClass() {
	e.expect("class")
	name := e.expectIdentifier().Text
	e.class = symbol.NewClassScope(name)

	e.expect("{")
	for e.peek().Is("static", "field") {
		e.compileClassVarDec()
	}
	for e.peek().Is("constructor", "function", "method") {
		e.compileSubroutineDec()
	}
	e.expect("}")
}

// compileType ::= `int` | `char` | `boolean` | Ident
func (e *Engine) compileType() string {
	tok := e.peek()
	if tok.Is("int", "char", "boolean") {
		e.next()
		return tok.Text
	}
	return e.expectIdentifier().Text
}

// compileClassVarDec ::= (`static`|`field`) type Ident (`,` Ident)* `;`
func (e *Engine) compileClassVarDec() {
	kindTok := e.next()
	typ := e.compileType()
	for {
		name := e.expectIdentifier().Text
		switch kindTok.Text {
		case "static":
			e.class.AddStatic(name, typ)
		case "field":
			e.class.AddField(name, typ)
		}
		if e.peek().Is(",") {
			e.next()
			continue
		}
		break
	}
	e.expect(";")
}

// compileSubroutineDec ::= (`constructor`|`function`|`method`)
// (`void`|type) Ident `(` parameterList `)` subroutineBody
func (e *Engine) compileSubroutineDec() {
	kindTok := e.next()
	var kind symbol.SubroutineKind
	switch kindTok.Text {
	case "constructor":
		kind = symbol.Constructor
	case "function":
		kind = symbol.Function
	case "method":
		kind = symbol.Method
	}

	returnType := "void"
	if e.peek().Is("void") {
		e.next()
	} else {
		returnType = e.compileType()
	}

	name := e.expectIdentifier().Text
	e.sub = symbol.NewSubroutineScope(e.class, name, kind, returnType)

	e.expect("(")
	if !e.peek().Is(")") {
		e.compileParameterList()
	}
	e.expect(")")

	e.compileSubroutineBody(name, kind)
}

// parameterList ::= (type Ident (`,` type Ident)*)?
func (e *Engine) compileParameterList() {
	for {
		typ := e.compileType()
		name := e.expectIdentifier().Text
		e.sub.AddArg(name, typ)
		if e.peek().Is(",") {
			e.next()
			continue
		}
		break
	}
}

// subroutineBody ::= `{` varDec* statements `}`
func (e *Engine) compileSubroutineBody(name string, kind symbol.SubroutineKind) {
	e.expect("{")
	for e.peek().Is("var") {
		e.compileVarDec()
	}

	e.out.Function(e.class.Name+"."+name, e.sub.VarCount())

	switch kind {
	case symbol.Constructor:
		e.out.PushInt(e.sub.FieldCount())
		e.out.Call("Memory.alloc", 1)
		e.out.Pop(vmcode.Pointer, 0)
	case symbol.Method:
		e.out.Push(vmcode.Argument, 0)
		e.out.Pop(vmcode.Pointer, 0)
	}

	e.compileStatements()
	e.expect("}")
}

// varDec ::= `var` type Ident (`,` Ident)* `;`
func (e *Engine) compileVarDec() {
	e.expect("var")
	typ := e.compileType()
	for {
		name := e.expectIdentifier().Text
		e.sub.AddVar(name, typ)
		if e.peek().Is(",") {
			e.next()
			continue
		}
		break
	}
	e.expect(";")
}

// statements ::= statement*
func (e *Engine) compileStatements() {
	for {
		switch tok := e.peek(); {
		case tok.Is("let"):
			e.compileLet()
		case tok.Is("if"):
			e.compileIf()
		case tok.Is("while"):
			e.compileWhile()
		case tok.Is("do"):
			e.compileDo()
		case tok.Is("return"):
			e.compileReturn()
		default:
			return
		}
	}
}

// letStatement ::= `let` Ident (`[` expression `]`)? `=` expression `;`
func (e *Engine) compileLet() {
	e.expect("let")
	name := e.expectIdentifier().Text
	sym := e.resolve(name)

	if e.peek().Is("[") {
		e.next()
		e.compileExpression()
		e.out.PushSymbol(sym)
		e.out.Arithmetic(vmcode.Add)
		e.expect("]")

		e.expect("=")
		e.compileExpression()
		e.expect(";")

		// RHS is evaluated above, before `that` is rebased, so a RHS that
		// itself reads another array element cannot clobber this element's
		// address.
		e.out.Pop(vmcode.Temp, 0)
		e.out.Pop(vmcode.Pointer, 1)
		e.out.Push(vmcode.Temp, 0)
		e.out.Pop(vmcode.That, 0)
		return
	}

	e.expect("=")
	e.compileExpression()
	e.expect(";")
	e.out.PopSymbol(sym)
}

// ifStatement ::= `if` `(` expression `)` `{` statements `}`
// (`else` `{` statements `}`)?
func (e *Engine) compileIf() {
	e.expect("if")
	e.expect("(")

	lFalse := e.newLabel()
	lEnd := e.newLabel()

	e.compileExpression()
	e.expect(")")
	e.out.WriteIfFalse(lFalse)

	e.expect("{")
	e.compileStatements()
	e.expect("}")
	e.out.Goto(lEnd)

	e.out.Label(lFalse)
	if e.peek().Is("else") {
		e.next()
		e.expect("{")
		e.compileStatements()
		e.expect("}")
	}
	e.out.Label(lEnd)
}

// whileStatement ::= `while` `(` expression `)` `{` statements `}`
func (e *Engine) compileWhile() {
	e.expect("while")
	e.expect("(")

	lTop := e.newLabel()
	lEnd := e.newLabel()

	e.out.Label(lTop)
	e.compileExpression()
	e.expect(")")
	e.out.WriteIfFalse(lEnd)

	e.expect("{")
	e.compileStatements()
	e.expect("}")
	e.out.Goto(lTop)
	e.out.Label(lEnd)
}

// doStatement ::= `do` subroutineCall `;`
func (e *Engine) compileDo() {
	e.expect("do")
	e.compileSubroutineCall()
	e.out.Pop(vmcode.Temp, 0)
	e.expect(";")
}

// returnStatement ::= `return` expression? `;`
func (e *Engine) compileReturn() {
	e.expect("return")
	if e.peek().Is(";") {
		e.out.PushInt(0)
	} else {
		e.compileExpression()
	}
	e.expect(";")
	e.out.Return()
}

var binaryOps = map[string]vmcode.Operation{
	"+": vmcode.Add, "-": vmcode.Sub, "&": vmcode.And, "|": vmcode.Or,
	"<": vmcode.Lt, ">": vmcode.Gt, "=": vmcode.Eq,
}

// expression ::= term (op term)*, left-associative with uniform precedence.
func (e *Engine) compileExpression() {
	e.compileTerm()
	for {
		tok := e.peek()
		if !tok.Is("+", "-", "*", "/", "&", "|", "<", ">", "=") {
			return
		}
		e.next()
		e.compileTerm()
		switch tok.Text {
		case "*":
			e.out.Multiply()
		case "/":
			e.out.Divide()
		default:
			e.out.Arithmetic(binaryOps[tok.Text])
		}
	}
}

// expressionList ::= (expression (`,` expression)*)?
func (e *Engine) compileExpressionList() uint16 {
	if e.peek().Is(")") {
		return 0
	}
	var n uint16
	for {
		e.compileExpression()
		n++
		if e.peek().Is(",") {
			e.next()
			continue
		}
		break
	}
	return n
}

// compileSubroutineCall parses a subroutineCall whose leading identifier
// has not yet been consumed (the doStatement case).
func (e *Engine) compileSubroutineCall() {
	name := e.expectIdentifier().Text
	e.compileSubroutineCallNamed(name)
}

// compileSubroutineCallNamed compiles a subroutineCall whose leading
// identifier has already been consumed as name, dispatching the three call
// shapes: method call through a `.`-qualified variable, unqualified method
// call on `this`, and a static call on a class/function name.
func (e *Engine) compileSubroutineCallNamed(name string) {
	switch {
	case e.peek().Is("."):
		e.next()
		method := e.expectIdentifier().Text

		if sym, ok := e.sub.Get(name); ok {
			// Method call on a variable in scope: push the receiver, then
			// the callee class is the variable's declared type, not its name.
			e.expect("(")
			e.out.PushSymbol(sym)
			nargs := 1 + e.compileExpressionList()
			e.expect(")")
			e.out.Call(sym.Type+"."+method, nargs)
		} else {
			// name does not resolve: a static call on class/function name.
			// The leading identifier is trusted as-is and never checked
			// against any known class name.
			e.expect("(")
			nargs := e.compileExpressionList()
			e.expect(")")
			e.out.Call(name+"."+method, nargs)
		}

	case e.peek().Is("("):
		// Unqualified call: a method of the enclosing class on the
		// current `this`.
		e.expect("(")
		e.out.Push(vmcode.Pointer, 0)
		nargs := 1 + e.compileExpressionList()
		e.expect(")")
		e.out.Call(e.class.Name+"."+name, nargs)

	default:
		panic(syntaxErrorf(e.peek().Text, "expected \"(\" or \".\" after %q", name))
	}
}

// compileIdentifierTerm dispatches the varName, varName[expr], and
// subroutineCall productions that all begin with an identifier, using one
// token of lookahead after it.
func (e *Engine) compileIdentifierTerm() {
	nameTok := e.next()

	switch {
	case e.peek().Is("["):
		e.next()
		sym := e.resolve(nameTok.Text)
		e.compileExpression()
		e.out.PushSymbol(sym)
		e.out.Arithmetic(vmcode.Add)
		e.expect("]")
		e.out.Pop(vmcode.Pointer, 1)
		e.out.Push(vmcode.That, 0)

	case e.peek().Is("(") || e.peek().Is("."):
		e.compileSubroutineCallNamed(nameTok.Text)

	default:
		sym := e.resolve(nameTok.Text)
		e.out.PushSymbol(sym)
	}
}

// term ::= integerConstant | stringConstant | keywordConstant | varName |
// varName '[' expression ']' | subroutineCall | '(' expression ')' |
// unaryOp term
func (e *Engine) compileTerm() {
	switch tok := e.peek(); {
	case tok.Kind == token.IntConst:
		e.next()
		e.out.PushInt(tok.IntValue)

	case tok.Kind == token.StringConst:
		e.next()
		e.out.PushString(tok.Text)

	case tok.Is("true"):
		e.next()
		e.out.PushInt(0)
		e.out.Arithmetic(vmcode.Not)

	case tok.Is("false"), tok.Is("null"):
		e.next()
		e.out.PushInt(0)

	case tok.Is("this"):
		e.next()
		e.out.Push(vmcode.Pointer, 0)

	case tok.Is("("):
		e.next()
		e.compileExpression()
		e.expect(")")

	case tok.Is("-"):
		e.next()
		e.compileTerm()
		e.out.Arithmetic(vmcode.Neg)

	case tok.Is("~"):
		e.next()
		e.compileTerm()
		e.out.Arithmetic(vmcode.Not)

	case tok.Kind == token.Identifier:
		e.compileIdentifierTerm()

	default:
		panic(syntaxErrorf(tok.Text, "unexpected token %q in expression", tok.Text))
	}
}
