package QP

func (p *exprParser) parseSelectStatement() (Statement, error) {
	p.advance()
	stmt := &SelectStatement{}

	if p.current().IsWord("DISTINCT") {
		return nil, p.errorf("SELECT DISTINCT is not supported")
	}
	if p.current().IsWord("ALL") {
		p.advance()
	}

	for {
		item, err := p.parseSelectItemShape()
		if err != nil {
			return nil, err
		}
		stmt.Items = append(stmt.Items, item)
		if p.current().Type != TokenComma {
			break
		}
		p.advance()
	}

	if p.current().Type == TokenFrom {
		p.advance()
		if err := p.parseFromClause(stmt); err != nil {
			return nil, err
		}
	}

	where, err := p.parseWhereFragments()
	if err != nil {
		return nil, err
	}
	stmt.WhereFragments = where

	if err := p.rejectUnsupportedClauses(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *exprParser) parseSelectItemShape() (SelectItemShape, error) {
	if p.current().Type == TokenAsterisk {
		p.advance()
		return SelectItemShape{ExprText: "*", Star: true}, nil
	}
	if isName(p.current()) && p.peek().Type == TokenDot && p.ts.Token(p.ts.Index()+2).Type == TokenAsterisk {
		table := p.current().Literal
		start := p.ts.Index()
		p.advance()
		p.advance()
		p.advance()
		return SelectItemShape{ExprText: p.ts.SourceText(start, p.ts.Index()), Star: true, StarTable: table}, nil
	}

	start := p.ts.Index()
	if _, err := p.parseExpr(0); err != nil {
		return SelectItemShape{}, err
	}
	item := SelectItemShape{ExprText: p.ts.SourceText(start, p.ts.Index())}
	alias, err := p.parseAlias()
	if err != nil {
		return SelectItemShape{}, err
	}
	item.Alias = alias
	return item, nil
}

func (p *exprParser) parseFromClause(stmt *SelectStatement) error {
	first, err := p.parseTableName(true)
	if err != nil {
		return err
	}
	stmt.From = append(stmt.From, first)

	for {
		tok := p.current()
		var join JoinShape
		switch {
		case tok.Type == TokenComma:
			p.advance()
		case tok.IsWord("JOIN"):
			p.advance()
		case p.acceptWords("INNER", "JOIN"), p.acceptWords("CROSS", "JOIN"):
		case p.acceptWords("LEFT", "OUTER", "JOIN"), p.acceptWords("LEFT", "JOIN"):
			join.Type = JoinLeft
		case tok.IsWord("RIGHT"), tok.IsWord("NATURAL"), tok.IsWord("STRAIGHT_JOIN"):
			return p.errorf("%s joins are not supported", tok.Literal)
		default:
			return nil
		}

		if join.Table, err = p.parseTableName(true); err != nil {
			return err
		}
		if tok.Type != TokenComma && p.current().Type == TokenOn {
			p.advance()
			start := p.ts.Index()
			if _, err := p.parseExpr(0); err != nil {
				return err
			}
			join.OnText = p.ts.SourceText(start, p.ts.Index())
		} else if p.current().IsWord("USING") {
			return p.errorf("JOIN ... USING is not supported")
		}
		stmt.Joins = append(stmt.Joins, join)
	}
}

func (p *exprParser) rejectUnsupportedClauses() error {
	tok := p.current()
	switch {
	case tok.Type == TokenOrder, tok.Type == TokenLimit,
		tok.IsWord("GROUP"), tok.IsWord("HAVING"), tok.IsWord("UNION"):
		return p.errorf("%s is not supported", tok.Literal)
	}
	return nil
}
