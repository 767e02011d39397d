package QP

import (
	"fmt"
	"strings"
)

const (
	dumpBranch     = "┣━━ "
	dumpLastBranch = "┗━━ "
	dumpPipe       = "┃   "
	dumpSpace      = "    "
)

// Dump renders e as an indented tree for debugging. indent prefixes every
// line after the first.
func Dump(e Expr, indent string) string {
	switch n := e.(type) {
	case nil:
		return "<nil>"
	case *NullLiteral:
		return "NULL"
	case *NumberLiteral, *StringLiteral, *Placeholder:
		return n.Source()
	case *CurrentTimestamp:
		return "CURRENT_TIMESTAMP"
	case *TableField:
		return qualified(n.Database, n.Table, n.Field)
	case *NotExpr:
		return dumpChildren("NOT", indent, n.Operand)
	case *NegateExpr:
		return dumpChildren("-", indent, n.Operand)
	case *LogicalExpr:
		return dumpChildren(n.Op.String(), indent, n.Left, n.Right)
	case *ComparisonExpr:
		return dumpChildren(n.Op.String(), indent, n.Left, n.Right)
	case *ArithmeticExpr:
		return dumpChildren(n.Op.String(), indent, n.Left, n.Right)
	case *InExpr:
		return dumpChildren("IN", indent, append([]Expr{n.Left}, n.List...)...)
	case *IsNullExpr:
		if n.Negated {
			return dumpChildren("IS NOT NULL", indent, n.Operand)
		}
		return dumpChildren("IS NULL", indent, n.Operand)
	case *FuncCall:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = Dump(a, indent)
		}
		return fmt.Sprintf("%s(%s)", strings.ToUpper(n.Name), strings.Join(args, ", "))
	case *TableRef:
		s := qualified(n.Database, n.Name)
		if n.Alias != "" {
			s += " AS " + n.Alias
		}
		return s
	case *SelectItem:
		s := Dump(n.Expr, indent)
		if n.Alias != "" {
			s += " AS " + n.Alias
		}
		return s
	case *SelectQuery:
		return dumpSelect(n, indent)
	case *InsertQuery:
		return dumpInsert(n, indent)
	}
	return fmt.Sprintf("<%T>", e)
}

func qualified(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ".")
}

func dumpChildren(label, indent string, children ...Expr) string {
	var sb strings.Builder
	sb.WriteString(label)
	for i, c := range children {
		branch, pad := dumpBranch, dumpPipe
		if i == len(children)-1 {
			branch, pad = dumpLastBranch, dumpSpace
		}
		sb.WriteString("\n")
		sb.WriteString(indent)
		sb.WriteString(branch)
		sb.WriteString(Dump(c, indent+pad))
	}
	return sb.String()
}

func dumpSelect(q *SelectQuery, indent string) string {
	var sb strings.Builder
	sb.WriteString("SELECT")
	for _, it := range q.Items {
		sb.WriteString("\n" + indent + dumpSpace + Dump(it, indent+dumpSpace))
	}
	if len(q.From) > 0 {
		sb.WriteString("\n" + indent + "FROM")
		for _, ref := range q.From {
			sb.WriteString("\n" + indent + dumpSpace + Dump(ref, indent+dumpSpace))
		}
	}
	if q.Where != nil {
		sb.WriteString("\n" + indent + "WHERE")
		sb.WriteString("\n" + indent + dumpSpace + Dump(q.Where, indent+dumpSpace))
	}
	return sb.String()
}

func dumpInsert(q *InsertQuery, indent string) string {
	var sb strings.Builder
	sb.WriteString("INSERT ")
	if q.Ignore {
		sb.WriteString("IGNORE ")
	}
	sb.WriteString("INTO " + qualified(q.Database, q.Table))
	if len(q.Fields) > 0 {
		sb.WriteString(" (" + strings.Join(q.Fields, ", ") + ")")
	}
	for _, row := range q.Rows {
		vals := make([]string, len(row))
		for i, v := range row {
			vals[i] = Dump(v, indent+dumpSpace)
		}
		sb.WriteString("\n" + indent + dumpSpace + "(" + strings.Join(vals, ", ") + ")")
	}
	return sb.String()
}
