package QP

func (p *exprParser) parseUpdateStatement() (Statement, error) {
	p.advance()
	p.acceptWords("IGNORE")
	table, err := p.parseTableName(true)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSet); err != nil {
		return nil, err
	}

	stmt := &UpdateStatement{Table: table}
	for {
		parts, err := p.parseQualifiedName(3)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenEq); err != nil {
			return nil, err
		}
		text, err := p.parseFragment()
		if err != nil {
			return nil, err
		}
		stmt.Assignments = append(stmt.Assignments, Assignment{Column: parts[len(parts)-1], ExprText: text})
		if p.current().Type != TokenComma {
			break
		}
		p.advance()
	}

	if stmt.WhereFragments, err = p.parseWhereFragments(); err != nil {
		return nil, err
	}
	if err := p.rejectUnsupportedClauses(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *exprParser) parseDeleteStatement() (Statement, error) {
	p.advance()
	p.acceptWords("IGNORE")
	if _, err := p.expect(TokenFrom); err != nil {
		return nil, err
	}
	table, err := p.parseTableName(true)
	if err != nil {
		return nil, err
	}

	stmt := &DeleteStatement{Table: table}
	if stmt.WhereFragments, err = p.parseWhereFragments(); err != nil {
		return nil, err
	}
	if err := p.rejectUnsupportedClauses(); err != nil {
		return nil, err
	}
	return stmt, nil
}
