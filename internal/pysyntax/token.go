package pysyntax

import "fmt"

// TokenKind classifies a single lexical unit.
type TokenKind int

const (
	kindInvalid TokenKind = iota

	KindComma
	KindStar
	KindDoubleStar
	KindLParen
	KindRParen
	KindLBracket
	KindRBracket
	KindLBrace
	KindRBrace
	KindDot
	KindColon
	KindName
	KindNumber
	KindString
	KindOp

	// kindNewline terminates a logical line at bracket depth zero. It is
	// consumed by the parser and never appears in produced trees.
	kindNewline
	kindEOF
)

var tokenKindNames = map[TokenKind]string{
	KindComma:      "COMMA",
	KindStar:       "STAR",
	KindDoubleStar: "DOUBLESTAR",
	KindLParen:     "LPAR",
	KindRParen:     "RPAR",
	KindLBracket:   "LSQB",
	KindRBracket:   "RSQB",
	KindLBrace:     "LBRACE",
	KindRBrace:     "RBRACE",
	KindDot:        "DOT",
	KindColon:      "COLON",
	KindName:       "NAME",
	KindNumber:     "NUMBER",
	KindString:     "STRING",
	KindOp:         "OP",
	kindNewline:    "NEWLINE",
	kindEOF:        "EOF",
}

func (k TokenKind) String() string {
	v, ok := tokenKindNames[k]
	if !ok {
		return fmt.Sprintf("token-kind-invalid(%d)", k)
	}

	return v
}

// token is a lexical unit pointing back to the source position.
type token struct {
	kind TokenKind
	text string
	line int // 1-based
	col  int // 0-based
}
