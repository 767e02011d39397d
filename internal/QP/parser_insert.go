package QP

// parseInsert reads
//
//	INSERT [IGNORE] [INTO] [db.]table [(field, ...)] VALUES (expr, ...)[, (expr, ...)]
func (p *exprParser) parseInsert() (*InsertQuery, error) {
	start := p.ts.Index()
	if _, err := p.expect(TokenInsert); err != nil {
		return nil, err
	}

	q := &InsertQuery{}
	if p.current().Type == TokenIgnore {
		q.Ignore = true
		p.advance()
	}
	if p.current().Type == TokenInto {
		p.advance()
	}

	parts, err := p.parseQualifiedName(2)
	if err != nil {
		return nil, err
	}
	if len(parts) == 2 {
		q.Database, q.Table = parts[0], parts[1]
	} else {
		q.Table = parts[0]
	}

	if p.current().Type == TokenLeftParen && p.peek().Type == TokenRightParen {
		p.advance()
		p.advance()
	} else if p.current().Type == TokenLeftParen {
		p.advance()
		for {
			tok := p.current()
			if !isName(tok) {
				return nil, p.errorf("expected field name, got %s", tok)
			}
			p.advance()
			q.Fields = append(q.Fields, tok.Literal)
			if p.current().Type != TokenComma {
				break
			}
			p.advance()
		}
		if _, err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokenValues); err != nil {
		return nil, err
	}
	for {
		row, err := p.parseValuesTuple()
		if err != nil {
			return nil, err
		}
		q.Rows = append(q.Rows, row)
		if p.current().Type != TokenComma {
			break
		}
		p.advance()
	}

	q.source = p.ts.SourceText(start, p.ts.Index())
	return q, nil
}

// parseValuesTuple reads "( expr, ... )"; an empty tuple is allowed and
// inserts a row of defaults.
func (p *exprParser) parseValuesTuple() ([]Expr, error) {
	if p.current().Type == TokenLeftParen && p.peek().Type == TokenRightParen {
		p.advance()
		p.advance()
		return []Expr{}, nil
	}
	return p.parseExprList()
}
