package QP

import (
	"fmt"
	"strings"
)

// ParseError reports a token the grammar cannot accept at that position.
type ParseError struct {
	Pos  int
	Near string
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("parse error at position %d: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("parse error at position %d near %q: %s", e.Pos, e.Near, e.Msg)
}

// Parser turns SQL text into expression trees. It holds no per-call state
// and may be shared.
type Parser struct {
	lexer *Lexer
	cache *ParseCache
}

func NewParser() *Parser {
	return &Parser{lexer: NewLexer()}
}

// WithCache returns a parser that looks expressions up in c before parsing
// them. Failed parses are not cached.
func (p *Parser) WithCache(c *ParseCache) *Parser {
	return &Parser{lexer: p.lexer, cache: c}
}

func (p *Parser) Cache() *ParseCache {
	return p.cache
}

// ParseExpression parses text as a single expression. The whole text must be
// consumed, except for a trailing semicolon or comment.
func (p *Parser) ParseExpression(text string) (Expr, error) {
	if p.cache != nil {
		if e, ok := p.cache.Get(text); ok {
			return e, nil
		}
	}
	e, err := p.parseExpression(text)
	if err != nil {
		return nil, err
	}
	if p.cache != nil {
		p.cache.Set(text, e)
	}
	return e, nil
}

func (p *Parser) parseExpression(text string) (Expr, error) {
	ts, err := p.lexer.Tokenize(text)
	if err != nil {
		return nil, err
	}
	ep := &exprParser{ts: ts}
	e, err := ep.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if err := ep.ensureEndOfQuery(); err != nil {
		return nil, err
	}
	return e, nil
}

// ParseInsert parses a complete INSERT statement.
func (p *Parser) ParseInsert(text string) (*InsertQuery, error) {
	ts, err := p.lexer.Tokenize(text)
	if err != nil {
		return nil, err
	}
	ep := &exprParser{ts: ts}
	q, err := ep.parseInsert()
	if err != nil {
		return nil, err
	}
	if err := ep.ensureEndOfQuery(); err != nil {
		return nil, err
	}
	return q, nil
}

type exprParser struct {
	ts *TokenSequence
}

func (p *exprParser) current() Token { return p.ts.Current() }
func (p *exprParser) peek() Token    { return p.ts.Next() }
func (p *exprParser) advance()       { p.ts.Advance() }

func (p *exprParser) errorf(format string, args ...interface{}) error {
	tok := p.current()
	near := ""
	if tok.Type != TokenInvalid {
		near = p.ts.Input()[tok.Pos:]
		if len(near) > 16 {
			near = near[:16]
		}
	}
	return &ParseError{Pos: tok.Pos, Near: near, Msg: fmt.Sprintf(format, args...)}
}

func (p *exprParser) expect(tt TokenType) (Token, error) {
	tok := p.current()
	if tok.Type != tt {
		if tok.Type == TokenInvalid {
			return tok, p.errorf("expected %s, got end of input", tt)
		}
		return tok, p.errorf("expected %s, got %s", tt, tok)
	}
	p.advance()
	return tok, nil
}

// ensureEndOfQuery accepts the end of input, a comment, or a semicolon
// followed only by comments.
func (p *exprParser) ensureEndOfQuery() error {
	switch p.current().Type {
	case TokenInvalid, TokenComment:
		return nil
	case TokenSemicolon:
		for i := p.ts.Index() + 1; i < p.ts.Len(); i++ {
			if p.ts.Token(i).Type != TokenComment {
				p.ts.Seek(i)
				return p.errorf("unexpected input after end of statement")
			}
		}
		return nil
	}
	return p.errorf("unexpected %s", p.current())
}

// nonReservedKeywords are keywords MySQL also accepts as bare names.
var nonReservedKeywords = map[string]bool{
	"VALUE":     true,
	"DUPLICATE": true,
}

// isName reports whether tok can serve as an unqualified schema object name.
// Reserved words must be quoted with backticks there.
func isName(tok Token) bool {
	if tok.Type == TokenIdentifier {
		return true
	}
	return isKeyword(tok) && nonReservedKeywords[strings.ToUpper(tok.Literal)]
}

// isQualifiedName is isName for the part after a qualifying dot, where any
// keyword is a name.
func isQualifiedName(tok Token) bool {
	return tok.Type == TokenIdentifier || isKeyword(tok)
}

func isKeyword(tok Token) bool {
	kw, ok := keywords[strings.ToUpper(tok.Literal)]
	return ok && kw == tok.Type
}

// reservedAliases are identifiers the lexer does not reclassify but which
// must not be taken as an implicit alias.
var reservedAliases = map[string]bool{
	"JOIN":          true,
	"INNER":         true,
	"LEFT":          true,
	"RIGHT":         true,
	"CROSS":         true,
	"OUTER":         true,
	"NATURAL":       true,
	"STRAIGHT_JOIN": true,
	"USING":         true,
	"GROUP":         true,
	"HAVING":        true,
	"UNION":         true,
	"PARTITION":     true,
}

// parseAlias consumes "AS name" or a bare identifier alias.
func (p *exprParser) parseAlias() (string, error) {
	tok := p.current()
	if tok.Type == TokenAs {
		p.advance()
		name := p.current()
		if name.Type == TokenString || isName(name) {
			p.advance()
			return name.Literal, nil
		}
		return "", p.errorf("expected alias after AS")
	}
	if tok.Type == TokenIdentifier && (tok.Quoted || !reservedAliases[strings.ToUpper(tok.Literal)]) {
		p.advance()
		return tok.Literal, nil
	}
	return "", nil
}
