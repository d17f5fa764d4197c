package parser

import (
	"fmt"

	"github.com/slate-lang/slate/internal/ast"
	"github.com/slate-lang/slate/internal/lexer"
	"github.com/slate-lang/slate/internal/ref"
	"github.com/slate-lang/slate/internal/token"
)

// Parser is a hand-rolled recursive-descent parser. curToken is the token
// under examination; parse functions leave curToken on the last token of
// the construct they parsed.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []string

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.registerExpressionFns()

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.errors = append(p.errors, fmt.Sprintf("%d:%d: expected %s, got %s",
		p.peekToken.Line, p.peekToken.Column, t, p.peekToken.Type))
}

func (p *Parser) errorAt(tok token.Token, format string, args ...interface{}) {
	p.errors = append(p.errors, fmt.Sprintf("%d:%d: %s", tok.Line, tok.Column,
		fmt.Sprintf(format, args...)))
}

// ParseContext parses the whole source into the top-level context sequence.
func (p *Parser) ParseContext() *ast.Context {
	ctx := &ast.Context{}
	for !p.curTokenIs(token.EOF) {
		item := p.parseItem()
		if item != nil {
			ctx.Items = append(ctx.Items, item)
		} else {
			// error recovery: skip to the next plausible item start
			p.skipToItemBoundary()
		}
		p.nextToken()
	}
	return ctx
}

func (p *Parser) parseItem() ast.Item {
	switch p.curToken.Type {
	case token.SCHEMA:
		return p.parseSchemaDecl()
	case token.ENUM:
		return p.parseEnumDecl()
	case token.GLOBAL:
		return p.parseGlobalDecl()
	case token.ACTION:
		return p.parseActionItem()
	case token.IDENT:
		return p.parseAssignment()
	default:
		p.errorAt(p.curToken, "unexpected token %s", p.curToken.Type)
		return nil
	}
}

func (p *Parser) skipToItemBoundary() {
	for !p.curTokenIs(token.EOF) && !p.curTokenIs(token.SEMICOLON) && !p.curTokenIs(token.RBRACE) {
		p.nextToken()
	}
}

// parseRef parses a dotted reference; curToken must be on the first
// segment and ends on the last.
func (p *Parser) parseRef() ref.Ref {
	r := ref.New(p.curToken.Literal.(string))
	for p.peekTokenIs(token.DOT) {
		p.nextToken() // '.'
		if !p.expectPeek(token.IDENT) {
			return r
		}
		r = r.Append(p.curToken.Literal.(string))
	}
	return r
}

func (p *Parser) parseSchemaDecl() ast.Item {
	decl := &ast.SchemaDecl{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = p.curToken.Literal.(string)
	if p.peekTokenIs(token.EXTENDS) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		decl.Parent = p.curToken.Literal.(string)
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	decl.Block = p.parseBlock()
	return decl
}

func (p *Parser) parseEnumDecl() ast.Item {
	decl := &ast.EnumDecl{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = p.curToken.Literal.(string)
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	for p.peekTokenIs(token.IDENT) {
		p.nextToken()
		decl.Symbols = append(decl.Symbols, p.curToken.Literal.(string))
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return decl
}

func (p *Parser) parseGlobalDecl() ast.Item {
	decl := &ast.GlobalDecl{Token: p.curToken}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	decl.Body = p.parseConstraintBlock()
	return decl
}

// parseBlock parses `{ item* }`; curToken must be on '{' and ends on '}'.
func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		item := p.parseItem()
		if item != nil {
			block.Items = append(block.Items, item)
		} else {
			p.skipToItemBoundary()
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseAssignment() ast.Item {
	assign := &ast.Assignment{Token: p.curToken}
	assign.Ref = p.parseRef()

	switch p.peekToken.Type {
	case token.ASSIGN:
		p.nextToken() // '='
		p.nextToken()
		switch p.curToken.Type {
		case token.TBD:
			assign.Value = &ast.TBDValue{}
		case token.UNKNOWN:
			assign.Value = &ast.UnknownValue{}
		case token.NONE:
			assign.Value = &ast.NoneValue{}
		default:
			expr := p.parseExpression(LOWEST)
			if expr == nil {
				return nil
			}
			assign.Value = &ast.ExprValue{Expr: expr}
		}
		if !p.expectPeek(token.SEMICOLON) {
			return nil
		}
	case token.ARROW:
		p.nextToken() // '->'
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		assign.Value = &ast.LinkValue{Target: p.parseRef()}
		if !p.expectPeek(token.SEMICOLON) {
			return nil
		}
	case token.ISA:
		p.nextToken() // 'isa'
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		proto := &ast.ProtoValue{Schema: p.curToken.Literal.(string)}
		if !p.parseProtoTail(proto) {
			return nil
		}
		assign.Value = proto
	case token.EXTENDS:
		proto := &ast.ProtoValue{}
		if !p.parseProtoTail(proto) {
			return nil
		}
		assign.Value = proto
	case token.LBRACE:
		p.nextToken()
		proto := &ast.ProtoValue{Steps: []ast.ProtoStep{&ast.BlockStep{Block: p.parseBlock()}}}
		if p.peekTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
		assign.Value = proto
	default:
		p.errorAt(p.peekToken, "expected one of '=', '->', 'isa', 'extends' or a block after %s", assign.Ref)
		return nil
	}
	return assign
}

// parseProtoTail parses the optional `extends step {, step}` chain and/or a
// trailing inline block, appending steps to proto.
func (p *Parser) parseProtoTail(proto *ast.ProtoValue) bool {
	if p.peekTokenIs(token.EXTENDS) {
		p.nextToken() // 'extends'
		for {
			if p.peekTokenIs(token.LBRACE) {
				p.nextToken()
				proto.Steps = append(proto.Steps, &ast.BlockStep{Block: p.parseBlock()})
			} else if p.expectPeek(token.IDENT) {
				proto.Steps = append(proto.Steps, &ast.RefStep{Ref: p.parseRef()})
			} else {
				return false
			}
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
	} else if p.peekTokenIs(token.LBRACE) {
		p.nextToken()
		proto.Steps = append(proto.Steps, &ast.BlockStep{Block: p.parseBlock()})
	}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return true
}

func (p *Parser) parseActionItem() ast.Item {
	assign := &ast.Assignment{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	assign.Ref = p.parseRef()
	action := &ast.ActionValue{}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	for !p.peekTokenIs(token.RPAREN) {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		param := ast.Param{Name: p.curToken.Literal.(string)}
		if !p.expectPeek(token.COLON) {
			return nil
		}
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		param.Type = p.curToken.Literal.(string)
		action.Params = append(action.Params, param)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		switch p.curToken.Type {
		case token.COST:
			if !p.expectPeek(token.ASSIGN) {
				return nil
			}
			if !p.expectPeek(token.INT) {
				return nil
			}
			cost := p.curToken.Literal.(int64)
			action.Cost = &cost
			if !p.expectPeek(token.SEMICOLON) {
				return nil
			}
		case token.CONDITION:
			if !p.expectPeek(token.LBRACE) {
				return nil
			}
			action.Condition = p.parseConstraintBlock()
		case token.EFFECT:
			if !p.expectPeek(token.LBRACE) {
				return nil
			}
			if !p.parseEffects(action) {
				return nil
			}
		default:
			p.errorAt(p.curToken, "unexpected token %s in action body", p.curToken.Type)
			return nil
		}
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	assign.Value = action
	return assign
}

// parseEffects parses `ref = basic;` pairs until '}'; curToken is on '{'.
func (p *Parser) parseEffects(action *ast.ActionValue) bool {
	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		if !p.expectPeek(token.IDENT) {
			return false
		}
		eff := ast.EffectItem{Ref: p.parseRef()}
		if !p.expectPeek(token.ASSIGN) {
			return false
		}
		p.nextToken()
		val := p.parseBasicLit()
		if val == nil {
			return false
		}
		eff.Val = val
		action.Effects = append(action.Effects, eff)
		if !p.expectPeek(token.SEMICOLON) {
			return false
		}
	}
	return p.expectPeek(token.RBRACE)
}
