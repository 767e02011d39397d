package pretenddb

import "fmt"

// ErrorCode is a MySQL server error number.
type ErrorCode int

const (
	ER_OK ErrorCode = 0

	ER_DB_CREATE_EXISTS               ErrorCode = 1007
	ER_DB_DROP_EXISTS                 ErrorCode = 1008
	ER_NO_DB_ERROR                    ErrorCode = 1046
	ER_BAD_DB_ERROR                   ErrorCode = 1049
	ER_TABLE_EXISTS_ERROR             ErrorCode = 1050
	ER_BAD_TABLE_ERROR                ErrorCode = 1051
	ER_NON_UNIQ_ERROR                 ErrorCode = 1052
	ER_BAD_FIELD_ERROR                ErrorCode = 1054
	ER_DUP_FIELDNAME                  ErrorCode = 1060
	ER_PARSE_ERROR                    ErrorCode = 1064
	ER_EMPTY_QUERY                    ErrorCode = 1065
	ER_NONUNIQ_TABLE                  ErrorCode = 1066
	ER_WRONG_AUTO_KEY                 ErrorCode = 1075
	ER_NO_TABLES_USED                 ErrorCode = 1096
	ER_WRONG_DB_NAME                  ErrorCode = 1102
	ER_WRONG_TABLE_NAME               ErrorCode = 1103
	ER_UNKNOWN_ERROR                  ErrorCode = 1105
	ER_TABLE_MUST_HAVE_COLUMNS        ErrorCode = 1113
	ER_WRONG_VALUE_COUNT_ON_ROW       ErrorCode = 1136
	ER_NO_SUCH_TABLE                  ErrorCode = 1146
	ER_WRONG_ARGUMENTS                ErrorCode = 1210
	ER_NOT_SUPPORTED_YET              ErrorCode = 1235
	ER_SP_DOES_NOT_EXIST              ErrorCode = 1305
	ER_SAME_NAME_PARTITION            ErrorCode = 1517
	ER_WRONG_PARAMCOUNT_TO_NATIVE_FCT ErrorCode = 1582
)

var errorCodeNames = map[ErrorCode]string{
	ER_OK:                             "ER_OK",
	ER_DB_CREATE_EXISTS:               "ER_DB_CREATE_EXISTS",
	ER_DB_DROP_EXISTS:                 "ER_DB_DROP_EXISTS",
	ER_NO_DB_ERROR:                    "ER_NO_DB_ERROR",
	ER_BAD_DB_ERROR:                   "ER_BAD_DB_ERROR",
	ER_TABLE_EXISTS_ERROR:             "ER_TABLE_EXISTS_ERROR",
	ER_BAD_TABLE_ERROR:                "ER_BAD_TABLE_ERROR",
	ER_NON_UNIQ_ERROR:                 "ER_NON_UNIQ_ERROR",
	ER_BAD_FIELD_ERROR:                "ER_BAD_FIELD_ERROR",
	ER_DUP_FIELDNAME:                  "ER_DUP_FIELDNAME",
	ER_PARSE_ERROR:                    "ER_PARSE_ERROR",
	ER_EMPTY_QUERY:                    "ER_EMPTY_QUERY",
	ER_NONUNIQ_TABLE:                  "ER_NONUNIQ_TABLE",
	ER_WRONG_AUTO_KEY:                 "ER_WRONG_AUTO_KEY",
	ER_NO_TABLES_USED:                 "ER_NO_TABLES_USED",
	ER_WRONG_DB_NAME:                  "ER_WRONG_DB_NAME",
	ER_WRONG_TABLE_NAME:               "ER_WRONG_TABLE_NAME",
	ER_UNKNOWN_ERROR:                  "ER_UNKNOWN_ERROR",
	ER_TABLE_MUST_HAVE_COLUMNS:        "ER_TABLE_MUST_HAVE_COLUMNS",
	ER_WRONG_VALUE_COUNT_ON_ROW:       "ER_WRONG_VALUE_COUNT_ON_ROW",
	ER_NO_SUCH_TABLE:                  "ER_NO_SUCH_TABLE",
	ER_NOT_SUPPORTED_YET:              "ER_NOT_SUPPORTED_YET",
	ER_SP_DOES_NOT_EXIST:              "ER_SP_DOES_NOT_EXIST",
	ER_SAME_NAME_PARTITION:            "ER_SAME_NAME_PARTITION",
	ER_WRONG_PARAMCOUNT_TO_NATIVE_FCT: "ER_WRONG_PARAMCOUNT_TO_NATIVE_FCT",
	ER_WRONG_ARGUMENTS:                "ER_WRONG_ARGUMENTS",
}

// String returns the MySQL symbol for the code.
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

var sqlStates = map[ErrorCode]string{
	ER_OK:                             "00000",
	ER_NO_DB_ERROR:                    "3D000",
	ER_BAD_DB_ERROR:                   "42000",
	ER_TABLE_EXISTS_ERROR:             "42S01",
	ER_BAD_TABLE_ERROR:                "42S02",
	ER_NON_UNIQ_ERROR:                 "23000",
	ER_BAD_FIELD_ERROR:                "42S22",
	ER_DUP_FIELDNAME:                  "42S21",
	ER_PARSE_ERROR:                    "42000",
	ER_EMPTY_QUERY:                    "42000",
	ER_NONUNIQ_TABLE:                  "42000",
	ER_WRONG_AUTO_KEY:                 "42000",
	ER_WRONG_DB_NAME:                  "42000",
	ER_WRONG_TABLE_NAME:               "42000",
	ER_TABLE_MUST_HAVE_COLUMNS:        "42000",
	ER_WRONG_VALUE_COUNT_ON_ROW:       "21S01",
	ER_NO_SUCH_TABLE:                  "42S02",
	ER_NOT_SUPPORTED_YET:              "42000",
	ER_SP_DOES_NOT_EXIST:              "42000",
	ER_WRONG_PARAMCOUNT_TO_NATIVE_FCT: "42000",
}

// SQLState returns the five-character SQLSTATE MySQL reports with the code.
// Codes without a specific state map to the general error "HY000".
func (c ErrorCode) SQLState() string {
	if s, ok := sqlStates[c]; ok {
		return s
	}
	return "HY000"
}
