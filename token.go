package cfg

import "fmt"

// TokenType represents the type of a lexical token in a cfg document.
type TokenType int

const (
	TokenEOF TokenType = iota

	// Punctuation tokens.
	TokenEq        // '='
	TokenSemicolon // ';'
	TokenComma     // ','
	TokenLBracket  // '[' opens an array.
	TokenRBracket  // ']'
	TokenLParen    // '(' opens a list.
	TokenRParen    // ')'
	TokenLBrace    // '{' opens a struct.
	TokenRBrace    // '}'

	// Literal-bearing tokens.
	TokenIdent  // Bare identifier on the left of '='.
	TokenInt    // Integer literal: digits, no dot.
	TokenFloat  // Float literal: digits with a single dot.
	TokenBool   // true or false.
	TokenString // Double-quoted, backslash-escaped string.
)

// Token represents a lexical token read from cfg input.
type Token struct {
	Kind   TokenType
	Text   string // Literal text (for identifiers, numbers, bools, strings).
	Line   int    // Line number (1-based).
	Column int    // Column of the token's first character (1-based).
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return "EOF"
	case TokenEq:
		return "="
	case TokenSemicolon:
		return ";"
	case TokenComma:
		return ","
	case TokenLBracket:
		return "["
	case TokenRBracket:
		return "]"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenLBrace:
		return "{"
	case TokenRBrace:
		return "}"
	case TokenIdent:
		return fmt.Sprintf("Ident(%s)", t.Text)
	case TokenInt:
		return fmt.Sprintf("Int(%s)", t.Text)
	case TokenFloat:
		return fmt.Sprintf("Float(%s)", t.Text)
	case TokenBool:
		return fmt.Sprintf("Bool(%s)", t.Text)
	case TokenString:
		return fmt.Sprintf("String(%q)", t.Text)
	default:
		return fmt.Sprintf("Unknown(%d)", t.Kind)
	}
}

// tokenSet is a set of token types. The parser keeps one tokenSet of legal
// continuations and rejects any token whose type is not a member.
type tokenSet uint16

// tokens builds a set from the given token types.
func tokens(ts ...TokenType) tokenSet {
	var s tokenSet
	for _, t := range ts {
		s |= 1 << t
	}
	return s
}

// has reports whether t is a member of the set.
func (s tokenSet) has(t TokenType) bool {
	return s&(1<<t) != 0
}

// with returns the set extended by the given token types.
func (s tokenSet) with(ts ...TokenType) tokenSet {
	return s | tokens(ts...)
}
