package cfg

import "io"

// parser consumes the token stream and builds the variable tree. It is a
// state machine driven by one mutable set of expected token types: a token
// whose type is not in the set is a fatal UnexpectedToken error. The bracket
// stack decides which separators and closers become legal after a value.
type parser struct {
	lex   *lexer
	stack bracketStack
}

// pending holds a scalar value that has been lexed but not yet committed to
// the tree. Commits happen at the following ',', ';' or closing bracket.
type pending struct {
	typ Type
	tok Token
	ok  bool
}

// parse reads the whole input and returns the root context.
func parse(r io.Reader) (*Variable, *Error) {
	p := &parser{lex: newLexer(r)}
	return p.run()
}

// valueStart is the set of tokens that may begin a value.
var valueStart = tokens(TokenLBracket, TokenLParen, TokenLBrace,
	TokenInt, TokenFloat, TokenBool, TokenString)

// afterValue returns the legal continuations once a value is complete,
// depending on the innermost open bracket.
func (p *parser) afterValue() tokenSet {
	switch p.stack.peek() {
	case '[':
		return tokens(TokenComma, TokenRBracket)
	case '(':
		return tokens(TokenComma, TokenRParen)
	default:
		return tokens(TokenSemicolon)
	}
}

func (p *parser) run() (*Variable, *Error) {
	root := &Variable{typ: TypeStruct}

	var (
		ctx     = root
		expect  = tokens(TokenIdent, TokenEOF)
		name    Token // Pending identifier, waiting for its value.
		hasName bool
		val     pending
	)

	for {
		tok, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		if !expect.has(tok.Kind) {
			return nil, errorAt(ErrUnexpectedToken, tok.Line, tok.Column,
				"unexpected token %s", tok)
		}

		switch tok.Kind {
		case TokenEOF:
			return root, nil

		case TokenIdent:
			name, hasName = tok, true
			expect = tokens(TokenEq)

		case TokenEq:
			expect = valueStart

		case TokenInt:
			val = pending{typ: TypeInt, tok: tok, ok: true}
			expect = p.afterValue()

		case TokenFloat:
			val = pending{typ: TypeFloat, tok: tok, ok: true}
			expect = p.afterValue()

		case TokenBool:
			val = pending{typ: TypeBool, tok: tok, ok: true}
			expect = p.afterValue()

		case TokenString:
			if val.ok && val.typ == TypeString {
				// Adjacent string literals concatenate into one value.
				val.tok.Text += tok.Text
			} else {
				val = pending{typ: TypeString, tok: tok, ok: true}
			}
			expect = p.afterValue().with(TokenString)

		case TokenLBracket, TokenLParen, TokenLBrace:
			typ := TypeArray
			switch tok.Kind {
			case TokenLParen:
				typ = TypeList
			case TokenLBrace:
				typ = TypeStruct
			}
			node := &Variable{typ: typ}
			if hasName {
				node.name = name.Text
			}
			if err := p.insert(ctx, node, name, tok); err != nil {
				return nil, err
			}
			hasName = false
			p.stack.push(tok.Text[0])
			ctx = node
			if typ == TypeStruct {
				expect = tokens(TokenIdent, TokenRBrace)
			} else {
				closer := TokenRBracket
				if typ == TypeList {
					closer = TokenRParen
				}
				expect = valueStart.with(closer)
			}

		case TokenRBracket, TokenRParen:
			if val.ok {
				if err := p.commitScalar(ctx, val); err != nil {
					return nil, err
				}
				val = pending{}
			}
			p.stack.pop()
			ctx = ctx.parent
			expect = p.afterValue()

		case TokenRBrace:
			p.stack.pop()
			ctx = ctx.parent
			hasName = false
			val = pending{}
			expect = p.afterValue()

		case TokenComma:
			if val.ok {
				if err := p.commitScalar(ctx, val); err != nil {
					return nil, err
				}
				val = pending{}
			}
			expect = valueStart
			switch p.stack.peek() {
			case '[':
				expect = expect.with(TokenRBracket)
			case '(':
				expect = expect.with(TokenRParen)
			}

		case TokenSemicolon:
			if val.ok && hasName {
				node := &Variable{typ: val.typ, name: name.Text, raw: val.tok.Text}
				if err := p.insert(ctx, node, name, val.tok); err != nil {
					return nil, err
				}
			}
			hasName = false
			val = pending{}
			expect = tokens(TokenIdent, TokenEOF)
			if p.stack.peek() == '{' {
				expect = expect.with(TokenRBrace)
			}
		}
	}
}

// commitScalar adds a pending unnamed scalar as a child of the current
// container context.
func (p *parser) commitScalar(ctx *Variable, val pending) *Error {
	node := &Variable{typ: val.typ, raw: val.tok.Text}
	return p.insert(ctx, node, Token{}, val.tok)
}

// insert appends kid to ctx after the context checks: named children must not
// collide with an existing name, and array children must match the element
// type fixed by the array's first element. nameTok and posTok pin the error
// positions for the two checks.
func (p *parser) insert(ctx *Variable, kid *Variable, nameTok, posTok Token) *Error {
	if kid.name != "" && ctx.find(kid.name) >= 0 {
		if ctx.name != "" {
			return errorAt(ErrVariableRedefinition, nameTok.Line, nameTok.Column,
				"redefined variable `%s` inside `%s`", kid.name, ctx.name)
		}
		return errorAt(ErrVariableRedefinition, nameTok.Line, nameTok.Column,
			"redefined variable `%s`", kid.name)
	}
	if ctx.typ == TypeArray && len(ctx.kids) > 0 && kid.typ != ctx.kids[0].typ {
		return errorAt(ErrUnexpectedToken, posTok.Line, posTok.Column,
			"wrong array element type: got %s, array holds %s", kid.typ, ctx.kids[0].typ)
	}
	ctx.append(kid)
	return nil
}
