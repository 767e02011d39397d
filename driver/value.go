package driver

import (
	"database/sql/driver"
	"fmt"

	"github.com/pretenddb/pretenddb/pkg/pretenddb"
)

// toDriverValue converts a result value to a driver.Value. Results are nil,
// int64, float64 or string; anything else is rendered as text.
func toDriverValue(v interface{}) (driver.Value, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case int64, float64, string, []byte:
		return val, nil
	case bool:
		if val {
			return int64(1), nil
		}
		return int64(0), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

// fromNamedValues converts args to positional parameters. Named parameters
// are rejected since only ? placeholders exist.
func fromNamedValues(args []driver.NamedValue) ([]interface{}, error) {
	pos := make([]interface{}, len(args))
	for _, a := range args {
		if a.Name != "" {
			return nil, pretenddb.Errorf(pretenddb.ER_WRONG_ARGUMENTS, "named parameter @%s is not supported", a.Name)
		}
		// Ordinal is 1-based
		idx := a.Ordinal - 1
		if idx >= 0 && idx < len(pos) {
			pos[idx] = a.Value
		}
	}
	return pos, nil
}
