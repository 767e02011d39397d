package QP

import (
	"strings"
)

type StatementKind int

const (
	StmtSelect StatementKind = iota + 1
	StmtInsert
	StmtCreate
	StmtDrop
	StmtTruncate
	StmtAlter
	StmtSet
	StmtUpdate
	StmtDelete
)

var statementKindNames = map[StatementKind]string{
	StmtSelect:   "SELECT",
	StmtInsert:   "INSERT",
	StmtCreate:   "CREATE",
	StmtDrop:     "DROP",
	StmtTruncate: "TRUNCATE",
	StmtAlter:    "ALTER",
	StmtSet:      "SET",
	StmtUpdate:   "UPDATE",
	StmtDelete:   "DELETE",
}

func (k StatementKind) String() string {
	return statementKindNames[k]
}

// Statement is the shape of one SQL statement: clause structure plus raw
// text fragments for the parts the expression parser re-parses.
type Statement interface {
	Kind() StatementKind
}

// TableName is a possibly database-qualified table with an optional alias.
type TableName struct {
	Database string
	Name     string
	Alias    string
}

// AliasOrName is the name rows of this table are bound under.
func (t TableName) AliasOrName() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name
}

type SelectItemShape struct {
	ExprText string
	Alias    string
	// Star is set for "*" and "t.*"; StarTable holds t.
	Star      bool
	StarTable string
}

type JoinType int

const (
	JoinInner JoinType = iota
	JoinLeft
)

func (j JoinType) String() string {
	if j == JoinLeft {
		return "LEFT"
	}
	return "INNER"
}

type JoinShape struct {
	Type   JoinType
	Table  TableName
	OnText string
}

type SelectStatement struct {
	Items          []SelectItemShape
	From           []TableName
	Joins          []JoinShape
	WhereFragments []string
}

type InsertStatement struct {
	RawText string
}

type FieldOptions struct {
	Type          string
	NotNull       bool
	Null          bool
	AutoIncrement bool
	PrimaryKey    bool
	HasDefault    bool
	DefaultText   string
	OnUpdateText  string
	Comment       string
}

// FieldShape is one entry of a CREATE TABLE body. Key is set for index and
// constraint declarations, which carry no column.
type FieldShape struct {
	Name    string
	Key     bool
	Options FieldOptions
}

type CreateStatement struct {
	IsDatabase  bool
	IfNotExists bool
	// Name is the database name for CREATE DATABASE.
	Name     string
	Database string
	Table    string
	Fields   []FieldShape
}

type DropStatement struct {
	IsDatabase bool
	IfExists   bool
	Names      []TableName
}

type TruncateStatement struct {
	Table TableName
}

type AlterOperation struct {
	Tokens []Token
	Text   string
}

type AlterStatement struct {
	Table      TableName
	Operations []AlterOperation
}

type SetStatement struct {
	Text string
}

type Assignment struct {
	Column   string
	ExprText string
}

type UpdateStatement struct {
	Table          TableName
	Assignments    []Assignment
	WhereFragments []string
}

type DeleteStatement struct {
	Table          TableName
	WhereFragments []string
}

func (*SelectStatement) Kind() StatementKind   { return StmtSelect }
func (*InsertStatement) Kind() StatementKind   { return StmtInsert }
func (*CreateStatement) Kind() StatementKind   { return StmtCreate }
func (*DropStatement) Kind() StatementKind     { return StmtDrop }
func (*TruncateStatement) Kind() StatementKind { return StmtTruncate }
func (*AlterStatement) Kind() StatementKind    { return StmtAlter }
func (*SetStatement) Kind() StatementKind      { return StmtSet }
func (*UpdateStatement) Kind() StatementKind   { return StmtUpdate }
func (*DeleteStatement) Kind() StatementKind   { return StmtDelete }

// StatementParser splits statements into their clause shapes. It reuses the
// expression grammar only to find where each fragment ends.
type StatementParser struct {
	lexer *Lexer
}

func NewStatementParser() *StatementParser {
	return &StatementParser{lexer: NewLexer()}
}

func (sp *StatementParser) ParseStatement(query string) (Statement, error) {
	ts, err := sp.lexer.Tokenize(query)
	if err != nil {
		return nil, err
	}
	p := &exprParser{ts: ts}
	for p.current().Type == TokenComment {
		p.advance()
	}

	tok := p.current()
	var stmt Statement
	switch {
	case tok.Type == TokenSelect:
		stmt, err = p.parseSelectStatement()
	case tok.Type == TokenInsert:
		stmt, err = p.parseInsertStatement()
	case tok.Type == TokenSet:
		stmt, err = p.parseSetStatement()
	case tok.Type == TokenUpdate:
		stmt, err = p.parseUpdateStatement()
	case tok.IsWord("DELETE"):
		stmt, err = p.parseDeleteStatement()
	case tok.IsWord("CREATE"):
		stmt, err = p.parseCreateStatement()
	case tok.IsWord("DROP"):
		stmt, err = p.parseDropStatement()
	case tok.IsWord("TRUNCATE"):
		stmt, err = p.parseTruncateStatement()
	case tok.IsWord("ALTER"):
		stmt, err = p.parseAlterStatement()
	case tok.Type == TokenInvalid:
		return nil, p.errorf("empty query")
	default:
		return nil, p.errorf("unsupported statement %q", tok.Literal)
	}
	if err != nil {
		return nil, err
	}
	if err := p.ensureEndOfQuery(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// expectWord consumes an identifier or keyword spelled word.
func (p *exprParser) expectWord(word string) error {
	if !p.current().IsWord(word) {
		return p.errorf("expected %s, got %s", strings.ToUpper(word), p.current())
	}
	p.advance()
	return nil
}

// acceptWords consumes the given word sequence if it is next and reports
// whether it did.
func (p *exprParser) acceptWords(words ...string) bool {
	start := p.ts.Index()
	for _, w := range words {
		if !p.current().IsWord(w) {
			p.ts.Seek(start)
			return false
		}
		p.advance()
	}
	return true
}

func (p *exprParser) parseTableName(allowAlias bool) (TableName, error) {
	parts, err := p.parseQualifiedName(2)
	if err != nil {
		return TableName{}, err
	}
	var t TableName
	if len(parts) == 2 {
		t.Database, t.Name = parts[0], parts[1]
	} else {
		t.Name = parts[0]
	}
	if allowAlias {
		if t.Alias, err = p.parseAlias(); err != nil {
			return TableName{}, err
		}
	}
	return t, nil
}

// skipBalanced advances to the next top-level token for which stop returns
// true, stepping over parenthesized groups. It returns the index reached.
func (p *exprParser) skipBalanced(stop func(Token) bool) (int, error) {
	depth := 0
	for {
		tok := p.current()
		switch {
		case tok.Type == TokenInvalid:
			if depth > 0 {
				return 0, p.errorf("unbalanced parentheses")
			}
			return p.ts.Index(), nil
		case depth == 0 && stop(tok):
			return p.ts.Index(), nil
		case tok.Type == TokenLeftParen:
			depth++
		case tok.Type == TokenRightParen:
			if depth == 0 {
				return p.ts.Index(), nil
			}
			depth--
		}
		p.advance()
	}
}

func atStatementEnd(tok Token) bool {
	return tok.Type == TokenInvalid || tok.Type == TokenSemicolon || tok.Type == TokenComment
}

// parseWhereFragments reads an optional WHERE clause and returns its text.
func (p *exprParser) parseWhereFragments() ([]string, error) {
	if p.current().Type != TokenWhere {
		return nil, nil
	}
	p.advance()
	start := p.ts.Index()
	if _, err := p.parseExpr(0); err != nil {
		return nil, err
	}
	return []string{p.ts.SourceText(start, p.ts.Index())}, nil
}

func (p *exprParser) parseInsertStatement() (Statement, error) {
	start := p.ts.Index()
	if _, err := p.parseInsert(); err != nil {
		return nil, err
	}
	return &InsertStatement{RawText: p.ts.SourceText(start, p.ts.Index())}, nil
}

func (p *exprParser) parseSetStatement() (Statement, error) {
	start := p.ts.Index()
	p.advance()
	end, err := p.skipBalanced(atStatementEnd)
	if err != nil {
		return nil, err
	}
	return &SetStatement{Text: p.ts.SourceText(start, end)}, nil
}
