package DS

import (
	"time"

	"github.com/pretenddb/pretenddb/internal/QE"
)

// InitValue is a column's DEFAULT or ON UPDATE value: either the current
// timestamp at write time or a fixed literal.
type InitValue struct {
	CurrentTimestamp bool
	Literal          interface{}
}

func CurrentTimestampValue() *InitValue {
	return &InitValue{CurrentTimestamp: true}
}

func LiteralValue(v interface{}) *InitValue {
	return &InitValue{Literal: v}
}

// Resolve produces the value to store.
func (v *InitValue) Resolve(now func() time.Time) interface{} {
	if v.CurrentTimestamp {
		return now().Format(QE.TimestampLayout)
	}
	return v.Literal
}

type ColumnMeta struct {
	Name          string
	Type          string
	Nullable      bool
	AutoIncrement bool
	Default       *InitValue
	OnUpdate      *InitValue
	Comment       string
}
