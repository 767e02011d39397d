package QE

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the text form of CURRENT_TIMESTAMP values.
const TimestampLayout = "2006-01-02 15:04:05"

// Normalize maps host values onto the engine's value set: nil, int64,
// float64 and string.
func Normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case nil, int64, float64, string:
		return val
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint:
		return uintValue(uint64(val))
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		return uintValue(val)
	case float32:
		return float64(val)
	case bool:
		return boolValue(val)
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(TimestampLayout)
	case fmt.Stringer:
		return val.String()
	}
	return fmt.Sprint(v)
}

func uintValue(u uint64) interface{} {
	if u > math.MaxInt64 {
		return float64(u)
	}
	return int64(u)
}

func boolValue(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

var numericPrefix = regexp.MustCompile(`^\s*[-+]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][-+]?[0-9]+)?`)

// toNumber converts v to int64 or float64. Strings use their longest numeric
// prefix and are 0 without one. ok is false for NULL.
func toNumber(v interface{}) (n interface{}, ok bool) {
	switch val := v.(type) {
	case nil:
		return nil, false
	case int64:
		return val, true
	case float64:
		return val, true
	case string:
		prefix := strings.TrimSpace(numericPrefix.FindString(val))
		if prefix == "" {
			return int64(0), true
		}
		if i, err := strconv.ParseInt(prefix, 10, 64); err == nil {
			return i, true
		}
		f, _ := strconv.ParseFloat(strings.TrimSuffix(prefix, "."), 64)
		return f, true
	}
	return toNumber(Normalize(v))
}

func toFloat64(n interface{}) float64 {
	switch val := n.(type) {
	case int64:
		return float64(val)
	case float64:
		return val
	}
	return 0
}

// ToString renders a value the way MySQL prints it.
func ToString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	}
	return ToString(Normalize(v))
}

// IsTrue reports whether v counts as true in a condition. NULL is not true.
func IsTrue(v interface{}) bool {
	n, ok := toNumber(v)
	if !ok {
		return false
	}
	return toFloat64(n) != 0
}

// compareValues orders a and b. ok is false when either side is NULL.
// Two strings compare byte-wise; anything else compares numerically.
func compareValues(a, b interface{}) (cmp int, ok bool) {
	if a == nil || b == nil {
		return 0, false
	}
	as, aIsString := a.(string)
	bs, bIsString := b.(string)
	if aIsString && bIsString {
		return strings.Compare(as, bs), true
	}

	an, _ := toNumber(a)
	bn, _ := toNumber(b)
	ai, aInt := an.(int64)
	bi, bInt := bn.(int64)
	if aInt && bInt {
		switch {
		case ai < bi:
			return -1, true
		case ai > bi:
			return 1, true
		}
		return 0, true
	}
	af, bf := toFloat64(an), toFloat64(bn)
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	}
	return 0, true
}

// ToInt64 converts v to an integer, truncating fractions. ok is false for
// NULL.
func ToInt64(v interface{}) (int64, bool) {
	n, ok := toNumber(v)
	if !ok {
		return 0, false
	}
	if i, isInt := n.(int64); isInt {
		return i, true
	}
	return int64(toFloat64(n)), true
}
