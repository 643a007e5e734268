package repo

import (
	"database/sql/driver"
	"strings"

	sqlitedrv "github.com/glebarez/go-sqlite"
)

// foldFunc is the SQL name of the Unicode-aware lowercase function. SQLite's
// built-in LOWER only folds ASCII, which would miss "Éclair" for "éclair".
const foldFunc = "fold_lower"

func init() {
	sqlitedrv.MustRegisterDeterministicScalarFunction(foldFunc, 1, foldLower)
}

// foldLower lowercases text and blob arguments with strings.ToLower, the same
// folding containsPattern applies to the query side. NULL stays NULL and
// other types pass through.
func foldLower(_ *sqlitedrv.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}
