package ast

import (
	"fmt"
	"strings"
)

// Dialect is the SQL dialect a query targets.
type Dialect string

// Supported dialects.
const (
	DialectGeneric    Dialect = "generic"
	DialectAnsi       Dialect = "ansi"
	DialectBigQuery   Dialect = "bigquery"
	DialectClickHouse Dialect = "clickhouse"
	DialectDuckDB     Dialect = "duckdb"
	DialectHive       Dialect = "hive"
	DialectMsSQL      Dialect = "mssql"
	DialectMySQL      Dialect = "mysql"
	DialectPostgres   Dialect = "postgres"
	DialectSQLite     Dialect = "sqlite"
	DialectSnowflake  Dialect = "snowflake"
)

var dialects = []Dialect{
	DialectGeneric,
	DialectAnsi,
	DialectBigQuery,
	DialectClickHouse,
	DialectDuckDB,
	DialectHive,
	DialectMsSQL,
	DialectMySQL,
	DialectPostgres,
	DialectSQLite,
	DialectSnowflake,
}

// Dialects returns every supported dialect.
func Dialects() []Dialect {
	return append([]Dialect(nil), dialects...)
}

// ParseDialect resolves a dialect name, ignoring case.
func ParseDialect(name string) (Dialect, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, d := range dialects {
		if string(d) == name {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown dialect %q", name)
}

// String returns the dialect name.
func (d Dialect) String() string {
	if d == "" {
		return string(DialectGeneric)
	}
	return string(d)
}
