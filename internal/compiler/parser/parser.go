// Package parser implements the single-pass LALG parser: a recursive-descent
// grammar walk with semantic analysis and stack-machine code generation
// fused into the same productions, exactly as spec'd for a one-pass
// compiler — there is no intermediate AST.
package parser

import (
	"fmt"

	"github.com/lalg-lang/lalg/internal/compiler/codegen"
	"github.com/lalg-lang/lalg/internal/compiler/lexer"
	"github.com/lalg-lang/lalg/internal/compiler/scope"
	"github.com/lalg-lang/lalg/internal/compiler/token"
)

// SyntaxError is a recoverable parse-time error: an unexpected token or a
// premature end of input. The parser records these and attempts to keep
// going; a SyntaxError never aborts compilation outright.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: syntax error: %s", e.Line, e.Msg)
}

// SemanticError wraps whichever scope.RedeclaredError / scope.UndeclaredError
// / scope.ArityError / scope.UndeclaredProcError / scope.RedeclaredProcError
// tripped first. Unlike a SyntaxError, hitting one is fatal: per spec the
// parser must print it and terminate the compilation rather than limp on.
type SemanticError struct {
	Line int
	Err  error
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("line %d: semantic error: %s", e.Line, e.Err)
}

func (e *SemanticError) Unwrap() error { return e.Err }

// Parser walks the token stream exactly once, threading a codegen.Buffer and
// a scope.Table through every production instead of building and later
// walking a separate syntax tree.
type Parser struct {
	lex *lexer.Lexer

	cur, peek     token.Token
	curOK, peekOK bool

	Buf  *codegen.Buffer
	Syms *scope.Table

	programName string

	syntaxErrors []*SyntaxError
	fatal        *SemanticError
}

// New constructs a Parser reading from lex. The codegen.Buffer and
// scope.Table are created fresh, as a single compilation unit owns both for
// its entire lifetime.
func New(lex *lexer.Lexer) *Parser {
	p := &Parser{
		lex:  lex,
		Buf:  &codegen.Buffer{},
		Syms: scope.NewTable(),
	}
	p.cur, p.curOK = p.lex.Next()
	p.peek, p.peekOK = p.lex.Next()
	return p
}

// SyntaxErrors returns every syntax error accumulated during the parse, in
// source order.
func (p *Parser) SyntaxErrors() []*SyntaxError { return p.syntaxErrors }

// Fatal returns the first semantic error encountered, or nil if compilation
// reached the end of the program without one.
func (p *Parser) Fatal() *SemanticError { return p.fatal }

func (p *Parser) advance() {
	p.cur, p.curOK = p.peek, p.peekOK
	p.peek, p.peekOK = p.lex.Next()
}

func (p *Parser) atEnd() bool { return !p.curOK }

func (p *Parser) curIs(k token.Kind) bool { return p.curOK && p.cur.Kind == k }

func (p *Parser) peekIs(k token.Kind) bool { return p.peekOK && p.peek.Kind == k }

// expect consumes the current token if it matches want, returning true. On
// mismatch it records a SyntaxError and leaves the token stream positioned
// where it was, so the caller can decide whether to skip forward.
func (p *Parser) expect(want token.Kind) bool {
	if p.curIs(want) {
		p.advance()
		return true
	}
	p.syntaxError(fmt.Sprintf("expected %s, got %s", want, p.describeCur()))
	return false
}

func (p *Parser) describeCur() string {
	if p.atEnd() {
		return "end of input"
	}
	return string(p.cur.Kind)
}

func (p *Parser) syntaxError(msg string) {
	line := 0
	if p.curOK {
		line = p.cur.Line
	}
	p.syntaxErrors = append(p.syntaxErrors, &SyntaxError{Line: line, Msg: msg})
}

// fail records the first semantic error and marks the parser fatally
// stopped; every later statement/declaration loop checks failed() and stops
// emitting rather than compound further off bad addresses.
func (p *Parser) fail(err error) {
	if p.fatal != nil {
		return
	}
	line := 0
	if p.curOK {
		line = p.cur.Line
	}
	p.fatal = &SemanticError{Line: line, Err: err}
}

func (p *Parser) failed() bool { return p.fatal != nil }

// skipTo advances past tokens until it finds one of the given kinds (or end
// of input) — the panic-mode recovery a SyntaxError triggers so one bad
// token doesn't cascade into a wall of further errors.
func (p *Parser) skipTo(kinds ...token.Kind) {
	for !p.atEnd() {
		for _, k := range kinds {
			if p.cur.Kind == k {
				return
			}
		}
		p.advance()
	}
}

// Parse runs the full program production: `program IDENT block .`. It
// returns after emitting every instruction it can; SyntaxErrors() and
// Fatal() report what went wrong, if anything.
func (p *Parser) Parse() {
	p.Buf.Emit(codegen.INPP)

	if !p.expect(token.PROGRAM) {
		p.skipTo(token.IDENT, token.BEGIN)
	}
	if p.curIs(token.IDENT) {
		p.programName = p.cur.Lexeme
		p.advance()
	} else {
		p.syntaxError("expected program name")
	}

	p.parseDeclarations()
	if p.failed() {
		return
	}

	if !p.expect(token.BEGIN) {
		p.skipTo(token.END, token.DOT)
	}
	p.parseStatementList(token.END)
	if p.failed() {
		return
	}
	p.expect(token.END)
	p.expect(token.DOT)

	p.Buf.Emit(codegen.PARA)
}
