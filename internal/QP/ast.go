package QP

// Expr is a node of a parsed expression tree. The set of node types is
// closed; consumers switch over the concrete types.
type Expr interface {
	// Source is the exact input text the node was parsed from.
	Source() string
	exprNode()
}

type node struct {
	source string
}

func (n node) Source() string { return n.source }
func (node) exprNode()        {}

type NullLiteral struct {
	node
}

// NumberLiteral holds an int64 for integral literals and a float64 otherwise.
type NumberLiteral struct {
	node
	Value interface{}
}

type StringLiteral struct {
	node
	Value string
}

type Placeholder struct {
	node
}

// TableField is a possibly qualified column reference. Empty Table or
// Database means unqualified.
type TableField struct {
	node
	Field    string
	Table    string
	Database string
}

type NotExpr struct {
	node
	Operand Expr
}

type NegateExpr struct {
	node
	Operand Expr
}

type LogicalOp int

const (
	LogicalAnd LogicalOp = iota
	LogicalOr
)

func (o LogicalOp) String() string {
	if o == LogicalAnd {
		return "AND"
	}
	return "OR"
}

type LogicalExpr struct {
	node
	Op    LogicalOp
	Left  Expr
	Right Expr
}

type CompareOp int

const (
	CompareEq CompareOp = iota
	CompareNe
	CompareGt
	CompareGe
	CompareLt
	CompareLe
)

var compareOpNames = [...]string{"=", "!=", ">", ">=", "<", "<="}

func (o CompareOp) String() string { return compareOpNames[o] }

type ComparisonExpr struct {
	node
	Op    CompareOp
	Left  Expr
	Right Expr
}

type ArithOp int

const (
	ArithAdd ArithOp = iota
	ArithSub
	ArithMul
	ArithDiv
)

var arithOpNames = [...]string{"+", "-", "*", "/"}

func (o ArithOp) String() string { return arithOpNames[o] }

type ArithmeticExpr struct {
	node
	Op    ArithOp
	Left  Expr
	Right Expr
}

type InExpr struct {
	node
	Left Expr
	List []Expr
}

type IsNullExpr struct {
	node
	Operand Expr
	Negated bool
}

type FuncCall struct {
	node
	Name string
	Args []Expr
}

type CurrentTimestamp struct {
	node
}

type TableRef struct {
	node
	Name     string
	Database string
	Alias    string
}

type SelectItem struct {
	node
	Expr  Expr
	Alias string
}

type SelectQuery struct {
	node
	Items []*SelectItem
	From  []*TableRef
	Where Expr
}

type InsertQuery struct {
	node
	Table    string
	Database string
	Fields   []string
	Rows     [][]Expr
	Ignore   bool
}

// CountPlaceholders returns the number of ? markers in the tree.
func CountPlaceholders(e Expr) int {
	n := 0
	Walk(e, func(x Expr) {
		if _, ok := x.(*Placeholder); ok {
			n++
		}
	})
	return n
}

// Walk calls fn for e and every descendant in source order.
func Walk(e Expr, fn func(Expr)) {
	if e == nil {
		return
	}
	fn(e)
	switch n := e.(type) {
	case *NotExpr:
		Walk(n.Operand, fn)
	case *NegateExpr:
		Walk(n.Operand, fn)
	case *LogicalExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *ComparisonExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *ArithmeticExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *InExpr:
		Walk(n.Left, fn)
		for _, x := range n.List {
			Walk(x, fn)
		}
	case *IsNullExpr:
		Walk(n.Operand, fn)
	case *FuncCall:
		for _, x := range n.Args {
			Walk(x, fn)
		}
	case *SelectItem:
		Walk(n.Expr, fn)
	case *SelectQuery:
		for _, it := range n.Items {
			Walk(it, fn)
		}
		for _, ref := range n.From {
			Walk(ref, fn)
		}
		Walk(n.Where, fn)
	case *InsertQuery:
		for _, row := range n.Rows {
			for _, x := range row {
				Walk(x, fn)
			}
		}
	}
}
