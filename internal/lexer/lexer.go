package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/slate-lang/slate/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	line, column := l.line, l.column

	var tok token.Token
	switch l.ch {
	case '=':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = l.newToken(token.EQ, "==", line, column)
		case '>':
			l.readChar()
			tok = l.newToken(token.IMPLY, "=>", line, column)
		case '~':
			l.readChar()
			tok = l.newToken(token.MATCH, "=~", line, column)
		default:
			tok = l.newToken(token.ASSIGN, "=", line, column)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.NOT_EQ, "!=", line, column)
		} else {
			tok = l.newToken(token.BANG, "!", line, column)
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.LE, "<=", line, column)
		} else {
			tok = l.newToken(token.LT, "<", line, column)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.GE, ">=", line, column)
		} else {
			tok = l.newToken(token.GT, ">", line, column)
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok = l.newToken(token.AND, "&&", line, column)
		} else {
			tok = l.newToken(token.ILLEGAL, string(l.ch), line, column)
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = l.newToken(token.OR, "||", line, column)
		} else {
			tok = l.newToken(token.ILLEGAL, string(l.ch), line, column)
		}
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			tok = l.newToken(token.ARROW, "->", line, column)
		} else if isDigit(l.peekChar()) {
			return l.readNumber(line, column)
		} else {
			tok = l.newToken(token.ILLEGAL, string(l.ch), line, column)
		}
	case '+':
		tok = l.newToken(token.PLUS, "+", line, column)
	case '.':
		tok = l.newToken(token.DOT, ".", line, column)
	case ',':
		tok = l.newToken(token.COMMA, ",", line, column)
	case ';':
		tok = l.newToken(token.SEMICOLON, ";", line, column)
	case ':':
		tok = l.newToken(token.COLON, ":", line, column)
	case '$':
		tok = l.newToken(token.DOLLAR, "$", line, column)
	case '(':
		tok = l.newToken(token.LPAREN, "(", line, column)
	case ')':
		tok = l.newToken(token.RPAREN, ")", line, column)
	case '{':
		tok = l.newToken(token.LBRACE, "{", line, column)
	case '}':
		tok = l.newToken(token.RBRACE, "}", line, column)
	case '[':
		tok = l.newToken(token.LBRACKET, "[", line, column)
	case ']':
		tok = l.newToken(token.RBRACKET, "]", line, column)
	case '"':
		return l.readString(line, column)
	case 0:
		tok = token.Token{Type: token.EOF, Literal: "", Line: line, Column: column}
	default:
		if isLetter(l.ch) {
			return l.readIdentifier(line, column)
		}
		if isDigit(l.ch) {
			return l.readNumber(line, column)
		}
		tok = l.newToken(token.ILLEGAL, string(l.ch), line, column)
	}

	l.readChar()
	return tok
}

func (l *Lexer) newToken(t token.TokenType, literal string, line, column int) token.Token {
	return token.Token{Type: t, Literal: literal, Line: line, Column: column}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}
		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			l.readChar()
			l.readChar()
			for !(l.ch == '*' && l.peekChar() == '/') && l.ch != 0 {
				l.readChar()
			}
			l.readChar() // '*'
			l.readChar() // '/'
			continue
		}
		return
	}
}

func (l *Lexer) readIdentifier(line, column int) token.Token {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	ident := l.input[start:l.position]
	return token.Token{Type: token.LookupIdent(ident), Literal: ident, Line: line, Column: column}
}

func (l *Lexer) readNumber(line, column int) token.Token {
	start := l.position
	if l.ch == '-' {
		l.readChar()
	}
	isFloat := false
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	text := l.input[start:l.position]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token.Token{Type: token.ILLEGAL, Literal: text, Line: line, Column: column}
		}
		return token.Token{Type: token.FLOAT, Literal: f, Line: line, Column: column}
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return token.Token{Type: token.ILLEGAL, Literal: text, Line: line, Column: column}
	}
	return token.Token{Type: token.INT, Literal: n, Line: line, Column: column}
}

func (l *Lexer) readString(line, column int) token.Token {
	var out strings.Builder
	l.readChar() // opening quote
	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' {
			switch l.peekChar() {
			case 'n':
				out.WriteRune('\n')
			case 't':
				out.WriteRune('\t')
			case '"':
				out.WriteRune('"')
			case '\\':
				out.WriteRune('\\')
			default:
				out.WriteRune(l.peekChar())
			}
			l.readChar()
			l.readChar()
			continue
		}
		out.WriteRune(l.ch)
		l.readChar()
	}
	if l.ch == 0 {
		return token.Token{Type: token.ILLEGAL, Literal: out.String(), Line: line, Column: column}
	}
	l.readChar() // closing quote
	return token.Token{Type: token.STRING, Literal: out.String(), Line: line, Column: column}
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
