package parser

import (
	"github.com/lalg-lang/lalg/internal/compiler/codegen"
	"github.com/lalg-lang/lalg/internal/compiler/scope"
	"github.com/lalg-lang/lalg/internal/compiler/token"
)

// parseDeclarations consumes the `(var_decl | proc_decl)` sequence that
// precedes a block's `begin`. A trailing separator semicolon is optional —
// it is swallowed whichever way, rather than forcing the caller to juggle
// "was there one more declaration or not."
func (p *Parser) parseDeclarations() {
	for !p.failed() && (p.curIs(token.VAR) || p.curIs(token.PROCEDURE)) {
		if p.curIs(token.VAR) {
			p.parseVarDecl(scope.Variable)
		} else {
			p.parseProcDecl()
		}
		if p.curIs(token.SEMICOLON) {
			p.advance()
		}
	}
}

// parseVarDecl parses one `var a, b, c: type` group, declaring each name in
// the current scope and emitting `ALME 1` per name.
func (p *Parser) parseVarDecl(category scope.Category) {
	p.expect(token.VAR)
	names := p.parseNameList()
	if !p.expect(token.COLON) {
		p.skipTo(token.SEMICOLON, token.BEGIN, token.VAR, token.PROCEDURE)
		return
	}
	typ := p.parseType()

	for _, name := range names {
		if p.failed() {
			return
		}
		if _, err := p.Syms.Declare(name, typ, category); err != nil {
			p.fail(err)
			return
		}
		p.Buf.EmitAddr(codegen.ALME, 1)
	}
}

// parseNameList parses `IDENT (, IDENT)*`.
func (p *Parser) parseNameList() []string {
	var names []string
	if !p.curIs(token.IDENT) {
		p.syntaxError("expected identifier")
		return names
	}
	names = append(names, p.cur.Lexeme)
	p.advance()
	for p.curIs(token.COMMA) {
		p.advance()
		if !p.curIs(token.IDENT) {
			p.syntaxError("expected identifier after ','")
			break
		}
		names = append(names, p.cur.Lexeme)
		p.advance()
	}
	return names
}

func (p *Parser) parseType() scope.Type {
	switch {
	case p.curIs(token.INTEGER):
		p.advance()
		return scope.Integer
	case p.curIs(token.REAL):
		p.advance()
		return scope.Real
	default:
		p.syntaxError("expected a type (integer or real)")
		return scope.Integer
	}
}

// parseProcDecl implements the nine-step procedure declaration emission
// protocol: jump over the body, push a scope, declare and store parameters,
// declare locals, emit the body, tear down the frame, register the
// descriptor, then patch the entry jump.
func (p *Parser) parseProcDecl() {
	p.expect(token.PROCEDURE)
	if !p.curIs(token.IDENT) {
		p.syntaxError("expected procedure name")
		p.skipTo(token.SEMICOLON, token.BEGIN)
		return
	}
	name := p.cur.Lexeme
	p.advance()

	// Step 1: jump over the body; entry is the instruction right after it.
	skip := p.Buf.EmitAddr(codegen.DSVI, 0)
	entry := p.Buf.Len()

	// Step 2: push scope.
	p.Syms.EnterScope(name)

	// Parameters.
	var paramAddrs []int
	if p.curIs(token.LPAREN) {
		p.advance()
		paramAddrs = p.parseParamGroups()
		p.expect(token.RPAREN)
	}
	if p.failed() {
		p.Syms.LeaveScope()
		return
	}

	// Step 4: ARMZ each parameter, in declaration order.
	for _, addr := range paramAddrs {
		p.Buf.EmitAddr(codegen.ARMZ, addr)
	}

	// Step 5: local declarations.
	for p.curIs(token.VAR) {
		p.parseVarDecl(scope.Variable)
		if p.failed() {
			p.Syms.LeaveScope()
			return
		}
		if p.curIs(token.SEMICOLON) {
			p.advance()
		}
	}

	// Step 6: body.
	if !p.expect(token.BEGIN) {
		p.skipTo(token.END)
	}
	p.parseStatementList(token.END)
	if p.failed() {
		p.Syms.LeaveScope()
		return
	}
	p.expect(token.END)

	// Step 7: frame teardown and return.
	k := p.Syms.TopScope().Count
	p.Buf.EmitAddr(codegen.DESM, k)
	p.Buf.Emit(codegen.RTPR)

	// Step 8: pop scope, register the descriptor.
	p.Syms.LeaveScope()
	if err := p.Syms.DeclareProc(&scope.ProcDescriptor{
		Name:       name,
		Entry:      entry,
		ParamCount: len(paramAddrs),
		ParamAddrs: paramAddrs,
	}); err != nil {
		p.fail(err)
		return
	}

	// Step 9: patch the entry jump to land after the body.
	p.Buf.Patch(skip, p.Buf.Len())
}

// parseParamGroups parses `name_list : type (; name_list : type)*` inside a
// procedure's parameter parentheses, declaring each parameter (ALME 1 per
// name) and returning their addresses in declaration order.
func (p *Parser) parseParamGroups() []int {
	var addrs []int
	for {
		names := p.parseNameList()
		if !p.expect(token.COLON) {
			return addrs
		}
		typ := p.parseType()
		for _, name := range names {
			addr, err := p.Syms.Declare(name, typ, scope.Parameter)
			if err != nil {
				p.fail(err)
				return addrs
			}
			p.Buf.EmitAddr(codegen.ALME, 1)
			addrs = append(addrs, addr)
		}
		if !p.curIs(token.SEMICOLON) {
			break
		}
		p.advance()
	}
	return addrs
}
