package token

type TokenType string

type Token struct {
	Type    TokenType
	Literal interface{} // string for idents/strings, int64/float64 for numbers
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	IDENT  = "IDENT"
	INT    = "INT"
	FLOAT  = "FLOAT"
	STRING = "STRING"

	ASSIGN    = "="
	EQ        = "=="
	NOT_EQ    = "!="
	LT        = "<"
	LE        = "<="
	GT        = ">"
	GE        = ">="
	PLUS      = "+"
	BANG      = "!"
	AND       = "&&"
	OR        = "||"
	IMPLY     = "=>"
	MATCH     = "=~"
	ARROW     = "->"
	DOT       = "."
	COMMA     = ","
	SEMICOLON = ";"
	COLON     = ":"
	DOLLAR    = "$"

	LPAREN   = "("
	RPAREN   = ")"
	LBRACE   = "{"
	RBRACE   = "}"
	LBRACKET = "["
	RBRACKET = "]"

	// Keywords
	SCHEMA    = "SCHEMA"
	EXTENDS   = "EXTENDS"
	ENUM      = "ENUM"
	GLOBAL    = "GLOBAL"
	ACTION    = "ACTION"
	ISA       = "ISA"
	IF        = "IF"
	THEN      = "THEN"
	ELSE      = "ELSE"
	IN        = "IN"
	NOT       = "NOT"
	IMPLIES   = "IMPLIES" // keyword form used in constraint blocks
	ANDKW     = "ANDKW"
	ORKW      = "ORKW"
	TRUE      = "TRUE"
	FALSE     = "FALSE"
	NULL      = "NULL"
	TBD       = "TBD"
	UNKNOWN   = "UNKNOWN"
	NONE      = "NONE"
	COST      = "COST"
	CONDITION = "CONDITION"
	EFFECT    = "EFFECT"
)

var keywords = map[string]TokenType{
	"schema":    SCHEMA,
	"extends":   EXTENDS,
	"enum":      ENUM,
	"global":    GLOBAL,
	"action":    ACTION,
	"isa":       ISA,
	"if":        IF,
	"then":      THEN,
	"else":      ELSE,
	"in":        IN,
	"not":       NOT,
	"imply":     IMPLIES,
	"and":       ANDKW,
	"or":        ORKW,
	"true":      TRUE,
	"false":     FALSE,
	"null":      NULL,
	"TBD":       TBD,
	"unknown":   UNKNOWN,
	"none":      NONE,
	"cost":      COST,
	"condition": CONDITION,
	"effect":    EFFECT,
}

// LookupIdent maps identifiers to keyword token types where applicable.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
