package parser

import (
	"github.com/lalg-lang/lalg/internal/compiler/codegen"
	"github.com/lalg-lang/lalg/internal/compiler/token"
)

// parseStatementList parses a `comando (comando)*` sequence, stopping once
// the current token is stop, DOLLAR or ELSE (so a THEN branch ends where
// its ELSE begins). Each statement may optionally be followed by a
// SEMICOLON separator; LALG's grammar makes the separator optional rather
// than mandatory between consecutive statements.
func (p *Parser) parseStatementList(stop token.Kind) {
	for !p.failed() && !p.atEnd() && !p.curIs(stop) && !p.curIs(token.DOLLAR) && !p.curIs(token.ELSE) {
		p.parseStatement()
		if p.failed() {
			return
		}
		if p.curIs(token.SEMICOLON) {
			p.advance()
		}
	}
}

func (p *Parser) parseStatement() {
	switch {
	case p.curIs(token.READ):
		p.parseReadStatement()
	case p.curIs(token.WRITE):
		p.parseWriteStatement()
	case p.curIs(token.IF):
		p.parseIfStatement()
	case p.curIs(token.WHILE):
		p.parseWhileStatement()
	case p.curIs(token.IDENT):
		if p.peekIs(token.LPAREN) {
			p.parseCallStatement()
		} else {
			p.parseAssignStatement()
		}
	default:
		p.syntaxError("expected a statement")
		p.advance()
	}
}

// parseAssignStatement: `x := expression`.
func (p *Parser) parseAssignStatement() {
	name := p.cur.Lexeme
	p.advance()
	if !p.expect(token.ASSIGN) {
		p.skipTo(token.SEMICOLON, token.END, token.DOLLAR)
		return
	}
	p.parseExpression()
	if p.failed() {
		return
	}
	addr, err := p.Syms.Resolve(name)
	if err != nil {
		p.fail(err)
		return
	}
	p.Buf.EmitAddr(codegen.ARMZ, addr)
}

// parseReadStatement: `read(x)` -> LEIT, ARMZ addr(x).
func (p *Parser) parseReadStatement() {
	p.expect(token.READ)
	if !p.expect(token.LPAREN) {
		p.skipTo(token.SEMICOLON, token.END, token.DOLLAR)
		return
	}
	if !p.curIs(token.IDENT) {
		p.syntaxError("expected identifier in read(...)")
		p.skipTo(token.RPAREN)
	} else {
		name := p.cur.Lexeme
		p.advance()
		p.expect(token.RPAREN)
		addr, err := p.Syms.Resolve(name)
		if err != nil {
			p.fail(err)
			return
		}
		p.Buf.Emit(codegen.LEIT)
		p.Buf.EmitAddr(codegen.ARMZ, addr)
		return
	}
	p.expect(token.RPAREN)
}

// parseWriteStatement: `write(x)` -> CRVL addr(x), IMPR.
func (p *Parser) parseWriteStatement() {
	p.expect(token.WRITE)
	if !p.expect(token.LPAREN) {
		p.skipTo(token.SEMICOLON, token.END, token.DOLLAR)
		return
	}
	if !p.curIs(token.IDENT) {
		p.syntaxError("expected identifier in write(...)")
		p.skipTo(token.RPAREN)
		p.expect(token.RPAREN)
		return
	}
	name := p.cur.Lexeme
	p.advance()
	p.expect(token.RPAREN)
	addr, err := p.Syms.Resolve(name)
	if err != nil {
		p.fail(err)
		return
	}
	p.Buf.EmitAddr(codegen.CRVL, addr)
	p.Buf.Emit(codegen.IMPR)
}

// parseIfStatement implements the IF-with/without-ELSE backpatching
// protocol from §4.3: condition, DSVF placeholder, THEN body, optional
// DSVI/ELSE, then patch the join point(s).
func (p *Parser) parseIfStatement() {
	p.expect(token.IF)
	p.parseCondition()
	if p.failed() {
		return
	}
	f := p.Buf.EmitAddr(codegen.DSVF, 0)

	p.expect(token.THEN)
	p.parseStatementList(token.DOLLAR)
	if p.failed() {
		return
	}

	if p.curIs(token.ELSE) {
		p.advance()
		j := p.Buf.EmitAddr(codegen.DSVI, 0)
		p.Buf.Patch(f, p.Buf.Len())
		p.parseStatementList(token.DOLLAR)
		if p.failed() {
			return
		}
		p.Buf.Patch(j, p.Buf.Len())
	} else {
		p.Buf.Patch(f, p.Buf.Len())
	}

	p.expect(token.DOLLAR)
}

// parseWhileStatement implements the WHILE backpatching protocol: the
// loop-top address is captured before the condition is emitted — not
// reconstructed from a fixed offset, which only works for one specific
// condition shape.
func (p *Parser) parseWhileStatement() {
	p.expect(token.WHILE)
	loopTop := p.Buf.Len()

	p.parseCondition()
	if p.failed() {
		return
	}
	f := p.Buf.EmitAddr(codegen.DSVF, 0)

	p.expect(token.DO)
	p.parseStatementList(token.DOLLAR)
	if p.failed() {
		return
	}

	p.Buf.EmitAddr(codegen.DSVI, loopTop)
	p.Buf.Patch(f, p.Buf.Len())
	p.expect(token.DOLLAR)
}

// parseCondition: `expression relop expression`, emitting the matching
// comparison opcode. Leaves exactly one truth value on the operand stack.
func (p *Parser) parseCondition() {
	p.parseExpression()
	if p.failed() {
		return
	}
	var op codegen.Op
	switch p.cur.Kind {
	case token.EQ:
		op = codegen.CPIG
	case token.NEQ:
		op = codegen.CDIF
	case token.GTE:
		op = codegen.CPMA
	case token.LTE:
		op = codegen.CPMI
	case token.GT:
		op = codegen.CMAI
	case token.LT:
		op = codegen.CMEN
	default:
		p.syntaxError("expected a relational operator")
		return
	}
	p.advance()
	p.parseExpression()
	if p.failed() {
		return
	}
	p.Buf.Emit(op)
}

// parseCallStatement emits the five-step procedure-call protocol: verify
// arity, compute the return address, PUSHER it, PARAM each argument in
// reverse, then CHPR.
func (p *Parser) parseCallStatement() {
	name := p.cur.Lexeme
	p.advance()
	p.expect(token.LPAREN)

	var argAddrs []int
	if !p.curIs(token.RPAREN) {
		for {
			if !p.curIs(token.IDENT) {
				p.syntaxError("expected identifier argument")
				break
			}
			addr, err := p.Syms.Resolve(p.cur.Lexeme)
			if err != nil {
				p.fail(err)
				return
			}
			argAddrs = append(argAddrs, addr)
			p.advance()
			if !p.curIs(token.COMMA) {
				break
			}
			p.advance()
		}
	}
	p.expect(token.RPAREN)
	if p.failed() {
		return
	}

	desc, err := p.Syms.ResolveProc(name, len(argAddrs))
	if err != nil {
		p.fail(err)
		return
	}

	returnAddr := p.Buf.Len() + len(argAddrs) + 2
	p.Buf.EmitAddr(codegen.PUSHER, returnAddr)
	for i := len(argAddrs) - 1; i >= 0; i-- {
		p.Buf.EmitAddr(codegen.PARAM, argAddrs[i])
	}
	p.Buf.EmitAddr(codegen.CHPR, desc.Entry)
}
