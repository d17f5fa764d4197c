package parser

import (
	"github.com/slate-lang/slate/internal/ast"
	"github.com/slate-lang/slate/internal/token"
)

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Operator precedence (higher = binds tighter)
const (
	LOWEST = iota
	IMPLICATION // =>
	DISJUNCTION // ||
	CONJUNCTION // &&
	EQUALITY    // ==
	SUM         // +
	MATCHING    // =~
	PREFIX      // !
)

var precedences = map[token.TokenType]int{
	token.IMPLY: IMPLICATION,
	token.OR:    DISJUNCTION,
	token.AND:   CONJUNCTION,
	token.EQ:    EQUALITY,
	token.PLUS:  SUM,
	token.MATCH: MATCHING,
}

func (p *Parser) registerExpressionFns() {
	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:    p.parseRefExpression,
		token.INT:      p.parseIntLiteral,
		token.FLOAT:    p.parseFloatLiteral,
		token.STRING:   p.parseStringLiteral,
		token.TRUE:     p.parseBoolLiteral,
		token.FALSE:    p.parseBoolLiteral,
		token.NULL:     p.parseNullLiteral,
		token.LBRACKET: p.parseVectorLiteral,
		token.BANG:     p.parseNotExpression,
		token.LPAREN:   p.parseGroupedExpression,
		token.IF:       p.parseIfExpression,
		token.DOLLAR:   p.parseShellExpression,
	}
	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.EQ:    p.parseInfixExpression,
		token.PLUS:  p.parseInfixExpression,
		token.AND:   p.parseInfixExpression,
		token.OR:    p.parseInfixExpression,
		token.IMPLY: p.parseInfixExpression,
		token.MATCH: p.parseMatchExpression,
	}
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorAt(p.curToken, "no expression starts with %s", p.curToken.Type)
		return nil
	}
	left := prefix()
	for left != nil && !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseRefExpression() ast.Expression {
	return &ast.RefLit{Ref: p.parseRef()}
}

func (p *Parser) parseIntLiteral() ast.Expression {
	return &ast.IntLit{Value: p.curToken.Literal.(int64)}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	return &ast.FloatLit{Value: p.curToken.Literal.(float64)}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StrLit{Value: p.curToken.Literal.(string)}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	return &ast.BoolLit{Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLit{}
}

// parseBasicLit parses the basic-value subset (literals, vectors,
// references); curToken is on its first token.
func (p *Parser) parseBasicLit() ast.BasicLit {
	switch p.curToken.Type {
	case token.INT:
		return &ast.IntLit{Value: p.curToken.Literal.(int64)}
	case token.FLOAT:
		return &ast.FloatLit{Value: p.curToken.Literal.(float64)}
	case token.STRING:
		return &ast.StrLit{Value: p.curToken.Literal.(string)}
	case token.TRUE, token.FALSE:
		return &ast.BoolLit{Value: p.curTokenIs(token.TRUE)}
	case token.NULL:
		return &ast.NullLit{}
	case token.IDENT:
		return &ast.RefLit{Ref: p.parseRef()}
	case token.LBRACKET:
		vec := p.parseVectorLit()
		if vec == nil {
			return nil
		}
		return vec
	default:
		p.errorAt(p.curToken, "expected a basic value, got %s", p.curToken.Type)
		return nil
	}
}

func (p *Parser) parseVectorLit() *ast.VecLit {
	vec := &ast.VecLit{}
	for !p.peekTokenIs(token.RBRACKET) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		elem := p.parseBasicLit()
		if elem == nil {
			return nil
		}
		vec.Elems = append(vec.Elems, elem)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return vec
}

func (p *Parser) parseVectorLiteral() ast.Expression {
	vec := p.parseVectorLit()
	if vec == nil {
		return nil
	}
	return vec
}

func (p *Parser) parseNotExpression() ast.Expression {
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	if operand == nil {
		return nil
	}
	return &ast.NotExpr{Operand: operand}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseIfExpression() ast.Expression {
	expr := &ast.IfExpr{}
	p.nextToken()
	expr.Cond = p.parseExpression(LOWEST)
	if expr.Cond == nil || !p.expectPeek(token.THEN) {
		return nil
	}
	p.nextToken()
	expr.Then = p.parseExpression(LOWEST)
	if expr.Then == nil || !p.expectPeek(token.ELSE) {
		return nil
	}
	p.nextToken()
	expr.Else = p.parseExpression(LOWEST)
	if expr.Else == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseShellExpression() ast.Expression {
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	if !p.expectPeek(token.STRING) {
		return nil
	}
	cmd := p.curToken.Literal.(string)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.ShellExpr{Command: cmd}
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	op := p.curToken.Type
	precedence := precedences[op]
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	switch op {
	case token.EQ:
		return &ast.EqualExpr{Left: left, Right: right}
	case token.PLUS:
		return &ast.AddExpr{Left: left, Right: right}
	case token.AND:
		return &ast.AndExpr{Left: left, Right: right}
	case token.OR:
		return &ast.OrExpr{Left: left, Right: right}
	case token.IMPLY:
		return &ast.ImplyExpr{Left: left, Right: right}
	}
	return nil
}

func (p *Parser) parseMatchExpression(left ast.Expression) ast.Expression {
	if !p.expectPeek(token.STRING) {
		return nil
	}
	return &ast.MatchExpr{Operand: left, Pattern: p.curToken.Literal.(string)}
}
