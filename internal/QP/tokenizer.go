package QP

import (
	"fmt"
	"regexp"
	"strings"
)

// LexError reports input that no token matcher accepts.
type LexError struct {
	Pos  int
	Near string
	Msg  string
}

func (e *LexError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("lex error at position %d near %q: %s", e.Pos, e.Near, e.Msg)
	}
	return fmt.Sprintf("lex error at position %d near %q", e.Pos, e.Near)
}

type matcher struct {
	kind TokenType
	re   *regexp.Regexp
}

func match(kind TokenType, pattern string) matcher {
	return matcher{kind: kind, re: regexp.MustCompile(`^(?is:` + pattern + `)`)}
}

// matchers are tried in order and the first match wins, so longer operators
// precede their prefixes.
var matchers = []matcher{
	match(TokenWhitespace, `[ \t\r\n]+`),
	match(TokenComment, `--(?:[ \t\r][^\n]*)?(?:\n|$)`),
	match(TokenComment, `#[^\n]*`),
	match(TokenLeftParen, `\(`),
	match(TokenRightParen, `\)`),
	match(TokenNumber, `\.[0-9]+(?:e[+-]?[0-9]+)?`),
	match(TokenDot, `\.`),
	match(TokenGe, `>=`),
	match(TokenLe, `<=`),
	match(TokenNe, `!=|<>`),
	match(TokenEq, `=`),
	match(TokenGt, `>`),
	match(TokenLt, `<`),
	match(TokenAnd, `&&`),
	match(TokenOr, `\|\|`),
	match(TokenBang, `!`),
	match(TokenPlus, `\+`),
	match(TokenMinus, `-`),
	match(TokenAsterisk, `\*`),
	match(TokenSlash, `/`),
	match(TokenPlaceholder, `\?`),
	match(TokenComma, `,`),
	match(TokenSemicolon, `;`),
	match(TokenNumber, `[0-9]+(?:\.[0-9]*)?(?:e[+-]?[0-9]+)?`),
	match(TokenIdentifier, `[a-z$_][a-z0-9$_]*`),
	match(TokenIdentifier, "`(?:``|[^`])*`"),
	match(TokenString, `'(?:[^'\\]|\\.|'')*'|"(?:[^"\\]|\\.|"")*"`),
}

// Lexer splits SQL text into tokens. It is stateless and safe to share.
type Lexer struct{}

func NewLexer() *Lexer {
	return &Lexer{}
}

// Tokenize lexes text with a shared Lexer.
func Tokenize(text string) (*TokenSequence, error) {
	return NewLexer().Tokenize(text)
}

func (l *Lexer) Tokenize(text string) (*TokenSequence, error) {
	tokens := make([]Token, 0, len(text)/4)
	pos := 0
	for pos < len(text) {
		tok, err := l.next(text, pos)
		if err != nil {
			return nil, err
		}
		pos = tok.End
		if tok.Type == TokenWhitespace {
			continue
		}
		if tok.Type == TokenString && len(tokens) > 0 && tokens[len(tokens)-1].Type == TokenString {
			prev := &tokens[len(tokens)-1]
			prev.Literal += tok.Literal
			prev.End = tok.End
			continue
		}
		tokens = append(tokens, tok)
	}
	return newTokenSequence(text, tokens), nil
}

func (l *Lexer) next(text string, pos int) (Token, error) {
	rest := text[pos:]
	for _, m := range matchers {
		loc := m.re.FindStringIndex(rest)
		if loc == nil {
			continue
		}
		if loc[1] == 0 {
			return Token{}, &LexError{Pos: pos, Near: near(text, pos), Msg: "empty match"}
		}
		raw := rest[:loc[1]]
		tok := Token{Type: m.kind, Literal: raw, Pos: pos, End: pos + loc[1]}
		switch {
		case m.kind == TokenString:
			tok.Literal = unescape(raw[1:len(raw)-1], raw[0])
		case m.kind == TokenIdentifier && raw[0] == '`':
			tok.Literal = strings.ReplaceAll(raw[1:len(raw)-1], "``", "`")
			tok.Quoted = true
		case m.kind == TokenIdentifier:
			if kw, ok := keywords[strings.ToUpper(raw)]; ok {
				tok.Type = kw
			}
		}
		return tok, nil
	}
	return Token{}, &LexError{Pos: pos, Near: near(text, pos)}
}

func near(text string, pos int) string {
	const width = 16
	if pos+width >= len(text) {
		return text[pos:]
	}
	return text[pos : pos+width]
}

var escapes = map[byte]string{
	'0': "\x00",
	'b': "\b",
	'n': "\n",
	'r': "\r",
	't': "\t",
	'Z': "\x1a",
}

// unescape resolves backslash escapes and doubled quotes inside a literal
// body.
func unescape(body string, quote byte) string {
	if strings.IndexByte(body, '\\') < 0 && strings.IndexByte(body, quote) < 0 {
		return body
	}
	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			i++
			if s, ok := escapes[body[i]]; ok {
				sb.WriteString(s)
			} else {
				sb.WriteByte(body[i])
			}
		case c == quote && i+1 < len(body) && body[i+1] == quote:
			sb.WriteByte(quote)
			i++
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
