package QP

type Arity int

const (
	Unary Arity = iota + 1
	Binary
)

// Operator is one row of the operator table. Build receives the node's
// source text and its operands in source order.
type Operator struct {
	Name            string
	Precedence      int
	Arity           Arity
	LeftAssociative bool
	Match           func(Token) bool
	Build           func(source string, operands []Expr) Expr
}

func tokenIs(types ...TokenType) func(Token) bool {
	return func(t Token) bool {
		for _, tt := range types {
			if t.Type == tt {
				return true
			}
		}
		return false
	}
}

func logical(op LogicalOp) func(string, []Expr) Expr {
	return func(src string, xs []Expr) Expr {
		return &LogicalExpr{node: node{src}, Op: op, Left: xs[0], Right: xs[1]}
	}
}

func comparison(op CompareOp) func(string, []Expr) Expr {
	return func(src string, xs []Expr) Expr {
		return &ComparisonExpr{node: node{src}, Op: op, Left: xs[0], Right: xs[1]}
	}
}

func arithmetic(op ArithOp) func(string, []Expr) Expr {
	return func(src string, xs []Expr) Expr {
		return &ArithmeticExpr{node: node{src}, Op: op, Left: xs[0], Right: xs[1]}
	}
}

func buildNot(src string, xs []Expr) Expr {
	return &NotExpr{node: node{src}, Operand: xs[0]}
}

// Precedences follow MySQL: a larger number binds tighter.
const (
	precOr         = 2
	precAnd        = 4
	precNot        = 5
	precComparison = 7
	precAdditive   = 11
	precMultiply   = 12
	precNegate     = 14
	precBang       = 15
)

// operators is never mutated after init. IN and IS are handled by the
// parser because their right-hand side is not a plain operand.
var operators = []*Operator{
	{Name: "AND", Precedence: precAnd, Arity: Binary, LeftAssociative: true,
		Match: tokenIs(TokenAnd), Build: logical(LogicalAnd)},
	{Name: "OR", Precedence: precOr, Arity: Binary, LeftAssociative: true,
		Match: tokenIs(TokenOr), Build: logical(LogicalOr)},
	{Name: "NOT", Precedence: precNot, Arity: Unary,
		Match: tokenIs(TokenNot), Build: buildNot},
	{Name: "!", Precedence: precBang, Arity: Unary,
		Match: tokenIs(TokenBang), Build: buildNot},
	{Name: "-", Precedence: precNegate, Arity: Unary,
		Match: tokenIs(TokenMinus), Build: func(src string, xs []Expr) Expr {
			return &NegateExpr{node: node{src}, Operand: xs[0]}
		}},
	{Name: "+", Precedence: precAdditive, Arity: Binary, LeftAssociative: true,
		Match: tokenIs(TokenPlus), Build: arithmetic(ArithAdd)},
	{Name: "-", Precedence: precAdditive, Arity: Binary, LeftAssociative: true,
		Match: tokenIs(TokenMinus), Build: arithmetic(ArithSub)},
	{Name: "*", Precedence: precMultiply, Arity: Binary, LeftAssociative: true,
		Match: tokenIs(TokenAsterisk), Build: arithmetic(ArithMul)},
	{Name: "/", Precedence: precMultiply, Arity: Binary, LeftAssociative: true,
		Match: tokenIs(TokenSlash), Build: arithmetic(ArithDiv)},
	{Name: "=", Precedence: precComparison, Arity: Binary, LeftAssociative: true,
		Match: tokenIs(TokenEq), Build: comparison(CompareEq)},
	{Name: "!=", Precedence: precComparison, Arity: Binary, LeftAssociative: true,
		Match: tokenIs(TokenNe), Build: comparison(CompareNe)},
	{Name: ">", Precedence: precComparison, Arity: Binary, LeftAssociative: true,
		Match: tokenIs(TokenGt), Build: comparison(CompareGt)},
	{Name: ">=", Precedence: precComparison, Arity: Binary, LeftAssociative: true,
		Match: tokenIs(TokenGe), Build: comparison(CompareGe)},
	{Name: "<", Precedence: precComparison, Arity: Binary, LeftAssociative: true,
		Match: tokenIs(TokenLt), Build: comparison(CompareLt)},
	{Name: "<=", Precedence: precComparison, Arity: Binary, LeftAssociative: true,
		Match: tokenIs(TokenLe), Build: comparison(CompareLe)},
	{Name: "IN", Precedence: precComparison, Arity: Binary, LeftAssociative: true,
		Match: tokenIs(TokenIn)},
	{Name: "IS", Precedence: precComparison, Arity: Binary, LeftAssociative: true,
		Match: tokenIs(TokenIs)},
}

func findOperator(tok Token, arity Arity) *Operator {
	for _, op := range operators {
		if op.Arity == arity && op.Match(tok) {
			return op
		}
	}
	return nil
}

func FindUnaryOperator(tok Token) *Operator {
	return findOperator(tok, Unary)
}

func FindBinaryOperator(tok Token) *Operator {
	return findOperator(tok, Binary)
}
