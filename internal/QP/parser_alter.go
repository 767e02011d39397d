package QP

func (p *exprParser) parseAlterStatement() (Statement, error) {
	p.advance()
	p.acceptWords("IGNORE")
	if err := p.expectWord("TABLE"); err != nil {
		return nil, err
	}
	table, err := p.parseTableName(false)
	if err != nil {
		return nil, err
	}

	stmt := &AlterStatement{Table: table}
	for !atStatementEnd(p.current()) {
		start := p.ts.Index()
		end, err := p.skipBalanced(func(t Token) bool {
			return t.Type == TokenComma || atStatementEnd(t)
		})
		if err != nil {
			return nil, err
		}
		if end == start {
			return nil, p.errorf("empty ALTER TABLE operation")
		}
		stmt.Operations = append(stmt.Operations, AlterOperation{
			Tokens: p.ts.Slice(start, end),
			Text:   p.ts.SourceText(start, end),
		})
		if p.current().Type != TokenComma {
			break
		}
		p.advance()
	}
	if len(stmt.Operations) == 0 {
		return nil, p.errorf("ALTER TABLE without operations")
	}
	return stmt, nil
}

func (p *exprParser) parseDropStatement() (Statement, error) {
	p.advance()
	p.acceptWords("TEMPORARY")

	stmt := &DropStatement{}
	switch {
	case p.current().IsWord("DATABASE"), p.current().IsWord("SCHEMA"):
		stmt.IsDatabase = true
	case p.current().IsWord("TABLE"):
	default:
		return nil, p.errorf("unsupported DROP statement")
	}
	p.advance()
	stmt.IfExists = p.acceptWords("IF", "EXISTS")

	for {
		if stmt.IsDatabase {
			name := p.current()
			if !isName(name) {
				return nil, p.errorf("expected database name, got %s", name)
			}
			p.advance()
			stmt.Names = append(stmt.Names, TableName{Name: name.Literal})
		} else {
			t, err := p.parseTableName(false)
			if err != nil {
				return nil, err
			}
			stmt.Names = append(stmt.Names, t)
		}
		if p.current().Type != TokenComma {
			break
		}
		p.advance()
	}
	if !stmt.IsDatabase && !p.acceptWords("RESTRICT") {
		p.acceptWords("CASCADE")
	}
	return stmt, nil
}

func (p *exprParser) parseTruncateStatement() (Statement, error) {
	p.advance()
	p.acceptWords("TABLE")
	table, err := p.parseTableName(false)
	if err != nil {
		return nil, err
	}
	return &TruncateStatement{Table: table}, nil
}
