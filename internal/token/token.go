// Package token defines the lexical tokens produced by internal/lexer
// and consumed by internal/parser.
package token

import "github.com/arolab/typeflow/internal/source"

// Type identifies a lexical token kind.
type Type int

const (
	ILLEGAL Type = iota
	EOF
	NEWLINE

	IDENT
	NUMBER
	STRING
	TEMPLATE
	REGEXP

	// Keywords
	CONST
	LET
	VAR
	IF
	ELSE
	FUNCTION
	RETURN
	THIS
	TRUE
	FALSE
	NULL
	UNDEFINED
	TYPEOF
	NEW
	CLASS
	EXTENDS
	SUPER

	// Punctuation
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	SEMI
	COLON
	DOT
	ELLIPSIS
	ARROW
	QUESTION
	BACKTICK

	// Operators
	ASSIGN
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	EQ       // ===
	NOT_EQ   // !==
	LOOSE_EQ // ==
	LOOSE_NE // !=
	LT
	GT
	LTE
	GTE
	AND
	OR
	NULLISH
	BANG
	INC
	DEC
	PLUS_ASSIGN
)

var names = map[Type]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", NEWLINE: "NEWLINE",
	IDENT: "IDENT", NUMBER: "NUMBER", STRING: "STRING", TEMPLATE: "TEMPLATE", REGEXP: "REGEXP",
	CONST: "const", LET: "let", VAR: "var", IF: "if", ELSE: "else",
	FUNCTION: "function", RETURN: "return", THIS: "this", TRUE: "true", FALSE: "false",
	NULL: "null", UNDEFINED: "undefined", TYPEOF: "typeof", NEW: "new",
	CLASS: "class", EXTENDS: "extends", SUPER: "super",
	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}", LBRACKET: "[", RBRACKET: "]",
	COMMA: ",", SEMI: ";", COLON: ":", DOT: ".", ELLIPSIS: "...", ARROW: "=>", QUESTION: "?", BACKTICK: "`",
	ASSIGN: "=", PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%",
	EQ: "===", NOT_EQ: "!==", LOOSE_EQ: "==", LOOSE_NE: "!=",
	LT: "<", GT: ">", LTE: "<=", GTE: ">=", AND: "&&", OR: "||", NULLISH: "??", BANG: "!",
	INC: "++", DEC: "--", PLUS_ASSIGN: "+=",
}

func (t Type) String() string {
	if name, ok := names[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Keywords maps reserved identifiers to their token type.
var Keywords = map[string]Type{
	"const": CONST, "let": LET, "var": VAR, "if": IF, "else": ELSE,
	"function": FUNCTION, "return": RETURN, "this": THIS, "true": TRUE, "false": FALSE,
	"null": NULL, "undefined": UNDEFINED, "typeof": TYPEOF, "new": NEW,
	"class": CLASS, "extends": EXTENDS, "super": SUPER,
}

// Token is a single lexical token with its source location.
type Token struct {
	Type    Type
	Lexeme  string
	Literal string
	Loc     source.Location
}
