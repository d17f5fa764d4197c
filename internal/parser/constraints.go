package parser

import (
	"github.com/slate-lang/slate/internal/ast"
	"github.com/slate-lang/slate/internal/token"
)

// parseConstraintBlock parses `{ constraint* }` into a single formula;
// curToken is on '{' and ends on '}'. Multiple statements conjoin; an empty
// block is trivially true.
func (p *Parser) parseConstraintBlock() ast.Constraint {
	terms := p.parseConstraintList()
	switch len(terms) {
	case 0:
		return &ast.CTrue{}
	case 1:
		return terms[0]
	default:
		return &ast.CAnd{Terms: terms}
	}
}

func (p *Parser) parseConstraintList() []ast.Constraint {
	var terms []ast.Constraint
	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		c := p.parseConstraintStatement()
		if c == nil {
			p.skipToItemBoundary()
			continue
		}
		terms = append(terms, c)
	}
	p.expectPeek(token.RBRACE)
	return terms
}

func (p *Parser) parseConstraintStatement() ast.Constraint {
	switch p.curToken.Type {
	case token.NOT:
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		return &ast.CNot{Body: p.parseConstraintBlock()}
	case token.IMPLIES:
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		left := p.parseConstraintBlock()
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		right := p.parseConstraintBlock()
		return &ast.CImply{Left: left, Right: right}
	case token.ANDKW:
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		return &ast.CAnd{Terms: p.parseConstraintList()}
	case token.ORKW:
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		return &ast.COr{Terms: p.parseConstraintList()}
	case token.IDENT:
		return p.parseComparison()
	default:
		p.errorAt(p.curToken, "unexpected token %s in constraint", p.curToken.Type)
		return nil
	}
}

var comparisonOps = map[token.TokenType]string{
	token.ASSIGN: "=",
	token.NOT_EQ: "!=",
	token.LT:     "<",
	token.LE:     "<=",
	token.GT:     ">",
	token.GE:     ">=",
}

func (p *Parser) parseComparison() ast.Constraint {
	r := p.parseRef()

	if p.peekTokenIs(token.IN) {
		p.nextToken() // 'in'
		if !p.expectPeek(token.LBRACKET) {
			return nil
		}
		vec := p.parseVectorLit()
		if vec == nil || !p.expectPeek(token.SEMICOLON) {
			return nil
		}
		return &ast.CIn{Ref: r, Vals: vec}
	}

	op, ok := comparisonOps[p.peekToken.Type]
	if !ok {
		p.errorAt(p.peekToken, "expected a comparison operator after %s, got %s", r, p.peekToken.Type)
		return nil
	}
	p.nextToken() // operator
	p.nextToken()
	val := p.parseBasicLit()
	if val == nil || !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return &ast.CCmp{Op: op, Ref: r, Val: val}
}
