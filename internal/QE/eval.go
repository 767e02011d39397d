package QE

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/pretenddb/pretenddb/internal/QP"
)

var ErrNotEvaluable = errors.New("expression cannot be evaluated")

var ErrMissingParameter = errors.New("not enough bound parameters")

// Evaluate computes the value of e in ctx. Results are nil (NULL), int64,
// float64 or string; conditions yield 1, 0 or NULL.
func Evaluate(e QP.Expr, ctx *Context) (interface{}, error) {
	switch n := e.(type) {
	case *QP.NullLiteral:
		return nil, nil

	case *QP.NumberLiteral:
		return n.Value, nil

	case *QP.StringLiteral:
		return n.Value, nil

	case *QP.Placeholder:
		v, ok := ctx.ExtractOneBoundParam()
		if !ok {
			return nil, &EvaluationError{Source: n.Source(), Err: ErrMissingParameter}
		}
		return Normalize(v), nil

	case *QP.TableField:
		return ctx.FieldValue(n.Field, n.Table, n.Database)

	case *QP.CurrentTimestamp:
		return ctx.Now().Format(TimestampLayout), nil

	case *QP.NotExpr:
		v, err := Evaluate(n.Operand, ctx)
		if err != nil || v == nil {
			return nil, err
		}
		return boolValue(!IsTrue(v)), nil

	case *QP.NegateExpr:
		if isMinInt64Magnitude(n.Operand) {
			return int64(math.MinInt64), nil
		}
		v, err := Evaluate(n.Operand, ctx)
		if err != nil {
			return nil, err
		}
		num, ok := toNumber(v)
		if !ok {
			return nil, nil
		}
		if i, isInt := num.(int64); isInt && i != math.MinInt64 {
			return -i, nil
		}
		return -toFloat64(num), nil

	case *QP.LogicalExpr:
		return evalLogical(n, ctx)

	case *QP.ComparisonExpr:
		left, right, err := evalPair(n.Left, n.Right, ctx)
		if err != nil {
			return nil, err
		}
		return compareOp(n.Op, left, right), nil

	case *QP.ArithmeticExpr:
		left, right, err := evalPair(n.Left, n.Right, ctx)
		if err != nil {
			return nil, err
		}
		return arithmetic(n.Op, left, right), nil

	case *QP.InExpr:
		return evalIn(n, ctx)

	case *QP.IsNullExpr:
		v, err := Evaluate(n.Operand, ctx)
		if err != nil {
			return nil, err
		}
		return boolValue((v == nil) != n.Negated), nil

	case *QP.FuncCall:
		return callFunction(n, ctx)

	case *QP.TableRef, *QP.SelectItem, *QP.SelectQuery, *QP.InsertQuery:
		return nil, &EvaluationError{Source: e.Source(), Err: ErrNotEvaluable}
	}
	return nil, fmt.Errorf("unknown expression type %T", e)
}

func evalPair(l, r QP.Expr, ctx *Context) (interface{}, interface{}, error) {
	left, err := Evaluate(l, ctx)
	if err != nil {
		return nil, nil, err
	}
	right, err := Evaluate(r, ctx)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// evalLogical applies three-valued AND/OR. Both operands are always
// evaluated so placeholders are consumed in order.
func evalLogical(n *QP.LogicalExpr, ctx *Context) (interface{}, error) {
	left, right, err := evalPair(n.Left, n.Right, ctx)
	if err != nil {
		return nil, err
	}
	lt, rt := IsTrue(left), IsTrue(right)
	if n.Op == QP.LogicalAnd {
		switch {
		case (left != nil && !lt) || (right != nil && !rt):
			return int64(0), nil
		case left == nil || right == nil:
			return nil, nil
		}
		return int64(1), nil
	}
	switch {
	case lt || rt:
		return int64(1), nil
	case left == nil || right == nil:
		return nil, nil
	}
	return int64(0), nil
}

func compareOp(op QP.CompareOp, left, right interface{}) interface{} {
	cmp, ok := compareValues(left, right)
	if !ok {
		return nil
	}
	var b bool
	switch op {
	case QP.CompareEq:
		b = cmp == 0
	case QP.CompareNe:
		b = cmp != 0
	case QP.CompareGt:
		b = cmp > 0
	case QP.CompareGe:
		b = cmp >= 0
	case QP.CompareLt:
		b = cmp < 0
	case QP.CompareLe:
		b = cmp <= 0
	}
	return boolValue(b)
}

func arithmetic(op QP.ArithOp, left, right interface{}) interface{} {
	ln, lok := toNumber(left)
	rn, rok := toNumber(right)
	if !lok || !rok {
		return nil
	}

	if op == QP.ArithDiv {
		d := toFloat64(rn)
		if d == 0 {
			return nil
		}
		return toFloat64(ln) / d
	}

	li, lInt := ln.(int64)
	ri, rInt := rn.(int64)
	if lInt && rInt {
		if v, ok := intArithmetic(op, li, ri); ok {
			return v
		}
	}
	lf, rf := toFloat64(ln), toFloat64(rn)
	switch op {
	case QP.ArithAdd:
		return lf + rf
	case QP.ArithSub:
		return lf - rf
	}
	return lf * rf
}

// intArithmetic computes a op b on int64. ok is false when the result
// overflows; the caller then computes it in float64.
func intArithmetic(op QP.ArithOp, a, b int64) (v int64, ok bool) {
	switch op {
	case QP.ArithAdd:
		v = a + b
		return v, (a^v)&(b^v) >= 0
	case QP.ArithSub:
		v = a - b
		return v, (a^b)&(a^v) >= 0
	case QP.ArithMul:
		if a == 0 || b == 0 {
			return 0, true
		}
		if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return 0, false
		}
		v = a * b
		return v, v/b == a
	}
	return 0, false
}

// evalIn evaluates the left operand once, then every list element.
func evalIn(n *QP.InExpr, ctx *Context) (interface{}, error) {
	left, err := Evaluate(n.Left, ctx)
	if err != nil {
		return nil, err
	}
	matched, sawNull := false, false
	for _, item := range n.List {
		v, err := Evaluate(item, ctx)
		if err != nil {
			return nil, err
		}
		if cmp, ok := compareValues(left, v); !ok {
			sawNull = true
		} else if cmp == 0 {
			matched = true
		}
	}
	switch {
	case left == nil:
		return nil, nil
	case matched:
		return int64(1), nil
	case sawNull:
		return nil, nil
	}
	return int64(0), nil
}

// isMinInt64Magnitude reports whether e is the integer literal
// 9223372036854775808, which only fits in int64 when negated.
func isMinInt64Magnitude(e QP.Expr) bool {
	lit, ok := e.(*QP.NumberLiteral)
	if !ok {
		return false
	}
	return strings.TrimLeft(lit.Source(), "0") == "9223372036854775808"
}
