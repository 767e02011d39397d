package QP

import (
	"strings"
)

func (p *exprParser) parseCreateStatement() (Statement, error) {
	p.advance()
	p.acceptWords("TEMPORARY")

	switch {
	case p.current().IsWord("DATABASE"), p.current().IsWord("SCHEMA"):
		p.advance()
		stmt := &CreateStatement{IsDatabase: true}
		stmt.IfNotExists = p.acceptWords("IF", "NOT", "EXISTS")
		name := p.current()
		if !isName(name) {
			return nil, p.errorf("expected database name, got %s", name)
		}
		p.advance()
		stmt.Name = name.Literal
		if _, err := p.skipBalanced(atStatementEnd); err != nil {
			return nil, err
		}
		return stmt, nil

	case p.current().IsWord("TABLE"):
		p.advance()
		return p.parseCreateTable()
	}
	return nil, p.errorf("unsupported CREATE statement")
}

func (p *exprParser) parseCreateTable() (Statement, error) {
	stmt := &CreateStatement{}
	stmt.IfNotExists = p.acceptWords("IF", "NOT", "EXISTS")

	table, err := p.parseTableName(false)
	if err != nil {
		return nil, err
	}
	stmt.Database, stmt.Table, stmt.Name = table.Database, table.Name, table.Name

	if p.current().IsWord("LIKE") {
		return nil, p.errorf("CREATE TABLE ... LIKE is not supported")
	}
	if _, err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	for {
		field, err := p.parseFieldDefinition()
		if err != nil {
			return nil, err
		}
		stmt.Fields = append(stmt.Fields, field)
		if p.current().Type != TokenComma {
			break
		}
		p.advance()
	}
	if _, err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}

	// Table options and partitioning clauses carry nothing we store.
	if _, err := p.skipBalanced(atStatementEnd); err != nil {
		return nil, err
	}
	return stmt, nil
}

var keyDefinitionWords = []string{
	"PRIMARY", "KEY", "INDEX", "UNIQUE", "CONSTRAINT", "FOREIGN", "FULLTEXT", "SPATIAL", "CHECK",
}

func atDefinitionEnd(tok Token) bool {
	return tok.Type == TokenComma || tok.Type == TokenRightParen
}

func (p *exprParser) parseFieldDefinition() (FieldShape, error) {
	tok := p.current()
	if !tok.Quoted {
		for _, w := range keyDefinitionWords {
			if tok.IsWord(w) {
				if _, err := p.skipBalanced(atDefinitionEnd); err != nil {
					return FieldShape{}, err
				}
				return FieldShape{Name: tok.Literal, Key: true}, nil
			}
		}
	}

	if !isName(tok) {
		return FieldShape{}, p.errorf("expected column name, got %s", tok)
	}
	p.advance()
	field := FieldShape{Name: tok.Literal}

	typeStart := p.ts.Index()
	// SET is a keyword and a type name.
	if !isQualifiedName(p.current()) {
		return FieldShape{}, p.errorf("expected type for column %s", field.Name)
	}
	p.advance()
	if p.current().Type == TokenLeftParen {
		p.advance()
		if _, err := p.skipBalanced(func(Token) bool { return false }); err != nil {
			return FieldShape{}, err
		}
		if _, err := p.expect(TokenRightParen); err != nil {
			return FieldShape{}, err
		}
	}
	for p.current().IsWord("UNSIGNED") || p.current().IsWord("SIGNED") || p.current().IsWord("ZEROFILL") {
		p.advance()
	}
	field.Options.Type = strings.ToUpper(p.ts.SourceText(typeStart, p.ts.Index()))

	if err := p.parseColumnOptions(&field.Options); err != nil {
		return FieldShape{}, err
	}
	return field, nil
}

func (p *exprParser) parseColumnOptions(opts *FieldOptions) error {
	for {
		tok := p.current()
		switch {
		case atDefinitionEnd(tok) || tok.Type == TokenInvalid:
			return nil
		case tok.Type == TokenNot && p.peek().Type == TokenNull:
			p.advance()
			p.advance()
			opts.NotNull = true
		case tok.Type == TokenNull:
			p.advance()
			opts.Null = true
		case tok.IsWord("AUTO_INCREMENT"):
			p.advance()
			opts.AutoIncrement = true
		case tok.IsWord("DEFAULT"):
			p.advance()
			text, err := p.parseFragment()
			if err != nil {
				return err
			}
			opts.HasDefault = true
			opts.DefaultText = text
		case tok.Type == TokenOn && p.peek().Type == TokenUpdate:
			p.advance()
			p.advance()
			text, err := p.parseFragment()
			if err != nil {
				return err
			}
			opts.OnUpdateText = text
		case tok.IsWord("COMMENT"):
			p.advance()
			comment, err := p.expect(TokenString)
			if err != nil {
				return err
			}
			opts.Comment = comment.Literal
		case p.acceptWords("PRIMARY", "KEY"):
			opts.PrimaryKey = true
		case tok.Type == TokenKey:
			p.advance()
			opts.PrimaryKey = true
		case p.acceptWords("UNIQUE", "KEY"), p.acceptWords("UNIQUE"):
		case p.acceptWords("CHARACTER", "SET"), p.acceptWords("CHARSET"), p.acceptWords("COLLATE"):
			if !isName(p.current()) && p.current().Type != TokenString {
				return p.errorf("expected character set or collation name")
			}
			p.advance()
		case tok.Type == TokenLeftParen:
			p.advance()
			if _, err := p.skipBalanced(func(Token) bool { return false }); err != nil {
				return err
			}
			if _, err := p.expect(TokenRightParen); err != nil {
				return err
			}
		default:
			p.advance()
		}
	}
}

// parseFragment reads one expression and returns its source text.
func (p *exprParser) parseFragment() (string, error) {
	start := p.ts.Index()
	if _, err := p.parseExpr(0); err != nil {
		return "", err
	}
	return p.ts.SourceText(start, p.ts.Index()), nil
}
