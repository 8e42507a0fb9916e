package cfg

import (
	"bufio"
	"io"
)

// lexer tokenizes cfg input from an io.Reader, one token per call. It reads
// byte-at-a-time with single-byte pushback, so it works the same over an
// in-memory buffer and over a stream.
type lexer struct {
	r    *bufio.Reader
	line int    // Line of the next unread byte (1-based).
	col  int    // Column of the next unread byte (1-based).
	buf  []byte // Reusable buffer for building literal text.
}

// newLexer creates a new lexer that reads from r.
func newLexer(r io.Reader) *lexer {
	return &lexer{
		r:    bufio.NewReader(r),
		line: 1,
		col:  1,
		buf:  make([]byte, 0, 64),
	}
}

// readByte consumes one byte and advances the position.
func (l *lexer) readByte() (byte, bool) {
	b, err := l.r.ReadByte()
	if err != nil {
		return 0, false
	}
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b, true
}

// peekByte returns the next byte without consuming it or moving the position.
func (l *lexer) peekByte() (byte, bool) {
	b, err := l.r.ReadByte()
	if err != nil {
		return 0, false
	}
	// ReadByte cannot fail to unread immediately after a successful read.
	l.r.UnreadByte()
	return b, true
}

// punctKind maps a punctuation byte to its token type.
func punctKind(b byte) (TokenType, bool) {
	switch b {
	case '=':
		return TokenEq, true
	case ';':
		return TokenSemicolon, true
	case ',':
		return TokenComma, true
	case '[':
		return TokenLBracket, true
	case ']':
		return TokenRBracket, true
	case '(':
		return TokenLParen, true
	case ')':
		return TokenRParen, true
	case '{':
		return TokenLBrace, true
	case '}':
		return TokenRBrace, true
	}
	return 0, false
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// next returns the next token. Whitespace and comments are skipped without
// emitting tokens; after the last real token it returns a terminal EOF token.
func (l *lexer) next() (Token, *Error) {
	for {
		b, ok := l.peekByte()
		if !ok {
			return Token{Kind: TokenEOF, Line: l.line, Column: l.col}, nil
		}

		if isSpace(b) {
			l.readByte()
			continue
		}

		if b == '/' {
			if err := l.skipComment(); err != nil {
				return Token{}, err
			}
			continue
		}

		startLine, startCol := l.line, l.col

		if kind, ok := punctKind(b); ok {
			l.readByte()
			return Token{Kind: kind, Text: string(b), Line: startLine, Column: startCol}, nil
		}

		if isDigit(b) {
			return l.scanNumber(startLine, startCol)
		}

		if b == '"' {
			return l.scanString(startLine, startCol)
		}

		return l.scanIdent(startLine, startCol)
	}
}

// skipComment consumes a '//' line comment or a '/* */' block comment. A
// block comment left unterminated runs to end of input.
func (l *lexer) skipComment() *Error {
	startLine, startCol := l.line, l.col
	l.readByte() // Consume '/'.

	b, ok := l.peekByte()
	if !ok || (b != '/' && b != '*') {
		return errorAt(ErrUnknownToken, startLine, startCol, "unknown token '/'")
	}
	l.readByte()

	if b == '/' {
		for {
			c, ok := l.readByte()
			if !ok || c == '\n' {
				return nil
			}
		}
	}

	// Block comment: scan for the closing '*/'.
	var prev byte
	for {
		c, ok := l.readByte()
		if !ok {
			return nil
		}
		if prev == '*' && c == '/' {
			return nil
		}
		prev = c
	}
}

// scanNumber scans a run of digits with at most one dot. Zero dots lex as an
// Int, one dot as a Float; a second dot is an error at its own position.
func (l *lexer) scanNumber(startLine, startCol int) (Token, *Error) {
	l.buf = l.buf[:0]
	sawDot := false

	for {
		b, ok := l.peekByte()
		if !ok || (!isDigit(b) && b != '.') {
			break
		}
		if b == '.' {
			if sawDot {
				return Token{}, errorAt(ErrUnknownToken, l.line, l.col, "malformed number")
			}
			sawDot = true
		}
		l.readByte()
		l.buf = append(l.buf, b)
	}

	kind := TokenInt
	if sawDot {
		kind = TokenFloat
	}
	return Token{Kind: kind, Text: string(l.buf), Line: startLine, Column: startCol}, nil
}

// scanString scans a double-quoted string, decoding backslash escapes. An
// unrecognized escape passes the backslash through literally. Reaching end of
// input before the closing quote is an error, not a truncated value.
func (l *lexer) scanString(startLine, startCol int) (Token, *Error) {
	l.buf = l.buf[:0]
	l.readByte() // Consume opening quote.

	for {
		b, ok := l.readByte()
		if !ok {
			return Token{}, errorAt(ErrUnknownToken, startLine, startCol, "unterminated string")
		}
		if b == '"' {
			return Token{Kind: TokenString, Text: string(l.buf), Line: startLine, Column: startCol}, nil
		}
		if b != '\\' {
			l.buf = append(l.buf, b)
			continue
		}

		esc, ok := l.readByte()
		if !ok {
			return Token{}, errorAt(ErrUnknownToken, startLine, startCol, "unterminated string")
		}
		switch esc {
		case 'n':
			l.buf = append(l.buf, '\n')
		case 't':
			l.buf = append(l.buf, '\t')
		case '"':
			l.buf = append(l.buf, '"')
		case '\'':
			l.buf = append(l.buf, '\'')
		case '\\':
			l.buf = append(l.buf, '\\')
		default:
			l.buf = append(l.buf, '\\', esc)
		}
	}
}

// scanIdent scans a maximal run of bytes that cannot start another token.
// The keywords true and false lex as Bool tokens; everything else is an
// identifier.
func (l *lexer) scanIdent(startLine, startCol int) (Token, *Error) {
	l.buf = l.buf[:0]

	for {
		b, ok := l.peekByte()
		if !ok || isSpace(b) || b == '"' || b == '/' {
			break
		}
		if _, punct := punctKind(b); punct {
			break
		}
		l.readByte()
		l.buf = append(l.buf, b)
	}

	text := string(l.buf)
	if text == "true" || text == "false" {
		return Token{Kind: TokenBool, Text: text, Line: startLine, Column: startCol}, nil
	}
	return Token{Kind: TokenIdent, Text: text, Line: startLine, Column: startCol}, nil
}
