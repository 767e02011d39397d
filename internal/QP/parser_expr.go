package QP

import (
	"strconv"
	"strings"
)

// parseExpr is a precedence-climbing loop: it reads one operand, then folds
// in binary operators whose precedence is at least minPrec.
func (p *exprParser) parseExpr(minPrec int) (Expr, error) {
	start := p.ts.Index()

	var left Expr
	if op := FindUnaryOperator(p.current()); op != nil {
		p.advance()
		operand, err := p.parseExpr(op.Precedence)
		if err != nil {
			return nil, err
		}
		left = op.Build(p.ts.SourceText(start, p.ts.Index()), []Expr{operand})
	} else {
		simple, err := p.parseSimple()
		if err != nil {
			return nil, err
		}
		left = simple
	}

	for {
		tok := p.current()

		if tok.Type == TokenNot && p.peek().Type == TokenIn {
			if precComparison < minPrec {
				break
			}
			p.advance()
			p.advance()
			list, err := p.parseExprList()
			if err != nil {
				return nil, err
			}
			src := p.ts.SourceText(start, p.ts.Index())
			left = &NotExpr{node: node{src}, Operand: &InExpr{node: node{src}, Left: left, List: list}}
			continue
		}

		op := FindBinaryOperator(tok)
		if op == nil || op.Precedence < minPrec {
			break
		}
		p.advance()

		switch tok.Type {
		case TokenIn:
			list, err := p.parseExprList()
			if err != nil {
				return nil, err
			}
			left = &InExpr{node: node{p.ts.SourceText(start, p.ts.Index())}, Left: left, List: list}
			continue
		case TokenIs:
			negated := false
			if p.current().Type == TokenNot {
				negated = true
				p.advance()
			}
			if _, err := p.expect(TokenNull); err != nil {
				return nil, err
			}
			left = &IsNullExpr{node: node{p.ts.SourceText(start, p.ts.Index())}, Operand: left, Negated: negated}
			continue
		}

		next := op.Precedence
		if op.LeftAssociative {
			next++
		}
		right, err := p.parseExpr(next)
		if err != nil {
			return nil, err
		}
		left = op.Build(p.ts.SourceText(start, p.ts.Index()), []Expr{left, right})
	}

	return left, nil
}

// parseExprList reads "( expr, expr, ... )".
func (p *exprParser) parseExprList() ([]Expr, error) {
	if _, err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	if p.current().Type == TokenSelect {
		q, err := p.parseSelectBody()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return []Expr{q}, nil
	}
	var list []Expr
	for {
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
		if p.current().Type != TokenComma {
			break
		}
		p.advance()
	}
	if _, err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *exprParser) parseSimple() (Expr, error) {
	start := p.ts.Index()
	tok := p.current()

	switch tok.Type {
	case TokenNull:
		p.advance()
		return &NullLiteral{node: node{tok.Literal}}, nil

	case TokenNumber:
		p.advance()
		return &NumberLiteral{node: node{tok.Literal}, Value: parseNumber(tok.Literal)}, nil

	case TokenString:
		p.advance()
		return &StringLiteral{node: node{p.ts.SourceText(start, start+1)}, Value: tok.Literal}, nil

	case TokenPlaceholder:
		p.advance()
		return &Placeholder{node: node{tok.Literal}}, nil

	case TokenLeftParen:
		p.advance()
		var e Expr
		var err error
		if p.current().Type == TokenSelect {
			e, err = p.parseSelectBody()
		} else {
			e, err = p.parseExpr(0)
		}
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return e, nil

	case TokenIdentifier:
		if !tok.Quoted && strings.EqualFold(tok.Literal, "CURRENT_TIMESTAMP") {
			p.advance()
			if p.current().Type == TokenLeftParen && p.peek().Type == TokenRightParen {
				p.advance()
				p.advance()
			}
			return &CurrentTimestamp{node: node{p.ts.SourceText(start, p.ts.Index())}}, nil
		}
		if p.peek().Type == TokenLeftParen {
			return p.parseFuncCall()
		}
		return p.parseTableField()
	}

	if tok.Type == TokenInvalid {
		return nil, p.errorf("unexpected end of input")
	}
	return nil, p.errorf("unexpected %s", tok)
}

func parseNumber(lit string) interface{} {
	if !strings.ContainsAny(lit, ".eE") {
		if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return n
		}
	}
	f, _ := strconv.ParseFloat(lit, 64)
	return f
}

func (p *exprParser) parseFuncCall() (Expr, error) {
	start := p.ts.Index()
	name := p.current().Literal
	p.advance()
	p.advance()

	var args []Expr
	if p.current().Type == TokenRightParen {
		p.advance()
	} else {
		for {
			arg, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.current().Type != TokenComma {
				break
			}
			p.advance()
		}
		if _, err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
	}
	return &FuncCall{node: node{p.ts.SourceText(start, p.ts.Index())}, Name: name, Args: args}, nil
}

// parseQualifiedName reads up to max dot-separated name parts.
func (p *exprParser) parseQualifiedName(max int) ([]string, error) {
	first := p.current()
	if !isName(first) {
		return nil, p.errorf("expected name, got %s", first)
	}
	p.advance()
	parts := []string{first.Literal}
	for len(parts) < max && p.current().Type == TokenDot {
		p.advance()
		next := p.current()
		if !isQualifiedName(next) {
			return nil, p.errorf("expected name after '.', got %s", next)
		}
		p.advance()
		parts = append(parts, next.Literal)
	}
	return parts, nil
}

func (p *exprParser) parseTableField() (Expr, error) {
	start := p.ts.Index()
	parts, err := p.parseQualifiedName(3)
	if err != nil {
		return nil, err
	}
	f := &TableField{node: node{p.ts.SourceText(start, p.ts.Index())}}
	switch len(parts) {
	case 1:
		f.Field = parts[0]
	case 2:
		f.Table, f.Field = parts[0], parts[1]
	default:
		f.Database, f.Table, f.Field = parts[0], parts[1], parts[2]
	}
	return f, nil
}

func (p *exprParser) parseTableRef() (*TableRef, error) {
	start := p.ts.Index()
	parts, err := p.parseQualifiedName(2)
	if err != nil {
		return nil, err
	}
	ref := &TableRef{}
	if len(parts) == 2 {
		ref.Database, ref.Name = parts[0], parts[1]
	} else {
		ref.Name = parts[0]
	}
	if ref.Alias, err = p.parseAlias(); err != nil {
		return nil, err
	}
	ref.source = p.ts.SourceText(start, p.ts.Index())
	return ref, nil
}

func (p *exprParser) parseSelectItem() (*SelectItem, error) {
	start := p.ts.Index()
	var e Expr
	if p.current().Type == TokenAsterisk {
		p.advance()
		e = &TableField{node: node{"*"}, Field: "*"}
	} else {
		var err error
		if e, err = p.parseExpr(0); err != nil {
			return nil, err
		}
	}
	alias, err := p.parseAlias()
	if err != nil {
		return nil, err
	}
	return &SelectItem{node: node{p.ts.SourceText(start, p.ts.Index())}, Expr: e, Alias: alias}, nil
}

// parseSelectBody reads "SELECT items [FROM refs] [WHERE expr]" inside
// parentheses. Sub-selects are parsed but never executed.
func (p *exprParser) parseSelectBody() (*SelectQuery, error) {
	start := p.ts.Index()
	p.advance()

	q := &SelectQuery{}
	for {
		item, err := p.parseSelectItem()
		if err != nil {
			return nil, err
		}
		q.Items = append(q.Items, item)
		if p.current().Type != TokenComma {
			break
		}
		p.advance()
	}

	if p.current().Type == TokenFrom {
		p.advance()
		for {
			ref, err := p.parseTableRef()
			if err != nil {
				return nil, err
			}
			q.From = append(q.From, ref)
			if p.current().Type != TokenComma {
				break
			}
			p.advance()
		}
	}

	if p.current().Type == TokenWhere {
		p.advance()
		where, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		q.Where = where
	}

	q.source = p.ts.SourceText(start, p.ts.Index())
	return q, nil
}
