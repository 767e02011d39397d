package QP

import (
	"fmt"
	"strings"
)

type TokenType int

const (
	TokenInvalid TokenType = iota
	TokenWhitespace
	TokenComment
	TokenIdentifier
	TokenNumber
	TokenString
	TokenPlaceholder
	TokenLeftParen
	TokenRightParen
	TokenDot
	TokenComma
	TokenSemicolon
	TokenEq
	TokenNe
	TokenGt
	TokenGe
	TokenLt
	TokenLe
	TokenPlus
	TokenMinus
	TokenAsterisk
	TokenSlash
	TokenAnd
	TokenOr
	TokenNot
	TokenBang
	TokenIn
	TokenIs
	TokenNull
	TokenSelect
	TokenFrom
	TokenWhere
	TokenAs
	TokenOn
	TokenOrder
	TokenBy
	TokenAsc
	TokenDesc
	TokenLimit
	TokenInsert
	TokenIgnore
	TokenInto
	TokenValues
	TokenSet
	TokenUpdate
	TokenDuplicate
	TokenKey
)

var tokenNames = map[TokenType]string{
	TokenInvalid:     "INVALID",
	TokenWhitespace:  "WHITESPACE",
	TokenComment:     "COMMENT",
	TokenIdentifier:  "IDENTIFIER",
	TokenNumber:      "NUMBER",
	TokenString:      "STRING",
	TokenPlaceholder: "PLACEHOLDER",
	TokenLeftParen:   "LEFT_PAREN",
	TokenRightParen:  "RIGHT_PAREN",
	TokenDot:         "DOT",
	TokenComma:       "COMMA",
	TokenSemicolon:   "SEMICOLON",
	TokenEq:          "EQUAL",
	TokenNe:          "NOT_EQUAL",
	TokenGt:          "GREATER",
	TokenGe:          "GREATER_OR_EQUAL",
	TokenLt:          "LESS",
	TokenLe:          "LESS_OR_EQUAL",
	TokenPlus:        "PLUS",
	TokenMinus:       "MINUS",
	TokenAsterisk:    "ASTERISK",
	TokenSlash:       "SLASH",
	TokenAnd:         "AND",
	TokenOr:          "OR",
	TokenNot:         "NOT",
	TokenBang:        "BANG",
	TokenIn:          "IN",
	TokenIs:          "IS",
	TokenNull:        "NULL",
	TokenSelect:      "SELECT",
	TokenFrom:        "FROM",
	TokenWhere:       "WHERE",
	TokenAs:          "AS",
	TokenOn:          "ON",
	TokenOrder:       "ORDER",
	TokenBy:          "BY",
	TokenAsc:         "ASC",
	TokenDesc:        "DESC",
	TokenLimit:       "LIMIT",
	TokenInsert:      "INSERT",
	TokenIgnore:      "IGNORE",
	TokenInto:        "INTO",
	TokenValues:      "VALUES",
	TokenSet:         "SET",
	TokenUpdate:      "UPDATE",
	TokenDuplicate:   "DUPLICATE",
	TokenKey:         "KEY",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// keywords reclassifies identifiers. Lookup is done on the upper-cased text.
var keywords = map[string]TokenType{
	"NULL":      TokenNull,
	"AND":       TokenAnd,
	"OR":        TokenOr,
	"NOT":       TokenNot,
	"IN":        TokenIn,
	"IS":        TokenIs,
	"SELECT":    TokenSelect,
	"AS":        TokenAs,
	"FROM":      TokenFrom,
	"WHERE":     TokenWhere,
	"ORDER":     TokenOrder,
	"BY":        TokenBy,
	"ASC":       TokenAsc,
	"DESC":      TokenDesc,
	"LIMIT":     TokenLimit,
	"INSERT":    TokenInsert,
	"IGNORE":    TokenIgnore,
	"INTO":      TokenInto,
	"SET":       TokenSet,
	"VALUES":    TokenValues,
	"VALUE":     TokenValues,
	"ON":        TokenOn,
	"DUPLICATE": TokenDuplicate,
	"KEY":       TokenKey,
	"UPDATE":    TokenUpdate,
}

// Token is one lexeme. Pos and End are byte offsets into the lexed text;
// Literal holds the unescaped value for strings and the unquoted name for
// backtick identifiers.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int
	End     int
	Quoted  bool
}

func (t Token) String() string {
	if t.Type == TokenInvalid {
		return "INVALID"
	}
	return fmt.Sprintf("%s %q", t.Type, t.Literal)
}

// IsWord reports whether the token is an identifier or keyword spelled word,
// ignoring case. Statement-level words like CREATE or JOIN are plain
// identifiers to the lexer.
func (t Token) IsWord(word string) bool {
	if t.Quoted || t.Type == TokenInvalid || t.Type == TokenString || t.Type == TokenComment {
		return false
	}
	return strings.EqualFold(t.Literal, word)
}
