package QP

import (
	"fmt"
	"strings"
)

// TokenSequence is a cursor over the tokens of one lexed text. Reads past
// the end return the invalid sentinel token.
type TokenSequence struct {
	input  string
	tokens []Token
	pos    int
}

func newTokenSequence(input string, tokens []Token) *TokenSequence {
	return &TokenSequence{input: input, tokens: tokens}
}

func (s *TokenSequence) sentinel() Token {
	return Token{Type: TokenInvalid, Pos: len(s.input), End: len(s.input)}
}

// Token returns the token at absolute index i.
func (s *TokenSequence) Token(i int) Token {
	if i < 0 || i >= len(s.tokens) {
		return s.sentinel()
	}
	return s.tokens[i]
}

func (s *TokenSequence) Current() Token {
	return s.Token(s.pos)
}

// Next peeks one token past the cursor.
func (s *TokenSequence) Next() Token {
	return s.Token(s.pos + 1)
}

func (s *TokenSequence) Advance() {
	if s.pos < len(s.tokens) {
		s.pos++
	}
}

// Consume returns the current token and advances past it.
func (s *TokenSequence) Consume() Token {
	tok := s.Current()
	s.Advance()
	return tok
}

func (s *TokenSequence) Index() int {
	return s.pos
}

// Seek moves the cursor to an absolute index previously returned by Index.
func (s *TokenSequence) Seek(i int) {
	switch {
	case i < 0:
		s.pos = 0
	case i > len(s.tokens):
		s.pos = len(s.tokens)
	default:
		s.pos = i
	}
}

func (s *TokenSequence) Len() int {
	return len(s.tokens)
}

func (s *TokenSequence) Input() string {
	return s.input
}

// SourceText returns the exact input covering tokens [start, end).
func (s *TokenSequence) SourceText(start, end int) string {
	if end > len(s.tokens) {
		end = len(s.tokens)
	}
	if start < 0 {
		start = 0
	}
	if start >= end {
		return ""
	}
	return s.input[s.tokens[start].Pos:s.tokens[end-1].End]
}

// Slice returns a copy of the tokens [start, end).
func (s *TokenSequence) Slice(start, end int) []Token {
	if end > len(s.tokens) {
		end = len(s.tokens)
	}
	if start < 0 {
		start = 0
	}
	if start >= end {
		return nil
	}
	out := make([]Token, end-start)
	copy(out, s.tokens[start:end])
	return out
}

func (s *TokenSequence) Dump() string {
	var sb strings.Builder
	for i, tok := range s.tokens {
		marker := "  "
		if i == s.pos {
			marker = "> "
		}
		fmt.Fprintf(&sb, "%s%d: %s @%d\n", marker, i, tok, tok.Pos)
	}
	if s.pos >= len(s.tokens) {
		sb.WriteString("> END\n")
	}
	return sb.String()
}
