package QE

import (
	"strings"

	"github.com/pretenddb/pretenddb/internal/QP"
)

type function struct {
	arity int
	call  func(args []interface{}) interface{}
}

// functions is keyed by upper-cased name. Arguments are evaluated eagerly,
// left to right, so every placeholder is consumed whichever branch wins.
var functions = map[string]function{
	"IF": {arity: 3, call: func(args []interface{}) interface{} {
		if IsTrue(args[0]) {
			return args[1]
		}
		return args[2]
	}},
	"UPPER": {arity: 1, call: func(args []interface{}) interface{} {
		if args[0] == nil {
			return nil
		}
		return strings.ToUpper(ToString(args[0]))
	}},
}

func callFunction(n *QP.FuncCall, ctx *Context) (interface{}, error) {
	fn, ok := functions[strings.ToUpper(n.Name)]
	if !ok {
		return nil, &UnknownFunctionError{Name: n.Name}
	}
	if len(n.Args) != fn.arity {
		return nil, &ArityError{Name: n.Name, Want: fn.arity, Got: len(n.Args)}
	}
	args := make([]interface{}, len(n.Args))
	for i, a := range n.Args {
		v, err := Evaluate(a, ctx)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return fn.call(args), nil
}
