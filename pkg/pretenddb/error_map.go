package pretenddb

import (
	"errors"

	"github.com/pretenddb/pretenddb/internal/DS"
	"github.com/pretenddb/pretenddb/internal/QE"
	"github.com/pretenddb/pretenddb/internal/QP"
)

// ToError converts err to a *Error for query. An existing *Error keeps its
// code and gains the query text if it had none. nil stays nil.
func ToError(err error, query string) *Error {
	if err == nil {
		return nil
	}

	var se *Error
	if errors.As(err, &se) {
		if se.Query != "" {
			return se
		}
		cp := *se
		cp.Query = query
		return &cp
	}
	return &Error{Code: codeFor(err), Message: err.Error(), Query: query, Err: err}
}

func codeFor(err error) ErrorCode {
	var (
		lexErr       *QP.LexError
		parseErr     *QP.ParseError
		unknownField *QE.UnknownFieldError
		ambiguous    *QE.AmbiguousFieldError
		unknownFunc  *QE.UnknownFunctionError
		arity        *QE.ArityError
		alias        *QE.NonUniqueAliasError
		valueCount   *QE.ValueCountError
	)
	switch {
	case errors.As(err, &lexErr), errors.As(err, &parseErr):
		return ER_PARSE_ERROR
	case errors.As(err, &ambiguous):
		return ER_NON_UNIQ_ERROR
	case errors.As(err, &unknownField), errors.Is(err, DS.ErrUnknownColumn):
		return ER_BAD_FIELD_ERROR
	case errors.As(err, &unknownFunc):
		return ER_SP_DOES_NOT_EXIST
	case errors.As(err, &arity):
		return ER_WRONG_PARAMCOUNT_TO_NATIVE_FCT
	case errors.As(err, &alias):
		return ER_NONUNIQ_TABLE
	case errors.As(err, &valueCount):
		return ER_WRONG_VALUE_COUNT_ON_ROW
	case errors.Is(err, QE.ErrMissingParameter):
		return ER_WRONG_ARGUMENTS
	case errors.Is(err, QE.ErrNotEvaluable):
		return ER_NOT_SUPPORTED_YET
	case errors.Is(err, DS.ErrNoTable):
		return ER_NO_SUCH_TABLE
	case errors.Is(err, DS.ErrTableExists):
		return ER_TABLE_EXISTS_ERROR
	case errors.Is(err, DS.ErrNoColumns):
		return ER_TABLE_MUST_HAVE_COLUMNS
	case errors.Is(err, DS.ErrDuplicateColumn):
		return ER_DUP_FIELDNAME
	case errors.Is(err, DS.ErrTooManyAutoColumns):
		return ER_WRONG_AUTO_KEY
	case errors.Is(err, DS.ErrDuplicatePartition):
		return ER_SAME_NAME_PARTITION
	}
	return ER_UNKNOWN_ERROR
}
