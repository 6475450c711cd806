// Package helpers provides shared test support.
package helpers

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// NullDB returns a gorm handle that is never connected to anything. Unit
// tests pass it through code paths that only carry the handle around or
// open transactions on it; all actual data access is mocked at the
// repository layer.
func NullDB() *gorm.DB {
	db, err := gorm.Open(nullDialector{}, &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		panic(err)
	}
	return db
}

type nullConnPool struct{}

func (nullConnPool) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, nil
}

func (nullConnPool) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (nullConnPool) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (nullConnPool) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

// BeginTx satisfies gorm.ConnPoolBeginner so db.Transaction works.
func (nullConnPool) BeginTx(ctx context.Context, opts *sql.TxOptions) (gorm.ConnPool, error) {
	return &nullTx{}, nil
}

type nullTx struct{ nullConnPool }

func (nullTx) Commit() error   { return nil }
func (nullTx) Rollback() error { return nil }

type nullDialector struct{}

func (nullDialector) Name() string { return "null" }

func (nullDialector) Initialize(db *gorm.DB) error {
	db.ConnPool = nullConnPool{}
	return nil
}

func (nullDialector) Migrator(db *gorm.DB) gorm.Migrator { return nil }

func (nullDialector) DataTypeOf(field *schema.Field) string { return "text" }

func (nullDialector) DefaultValueOf(field *schema.Field) clause.Expression {
	return clause.Expr{SQL: "DEFAULT"}
}

func (nullDialector) BindVarTo(writer clause.Writer, stmt *gorm.Statement, v interface{}) {
	writer.WriteByte('?')
}

func (nullDialector) QuoteTo(writer clause.Writer, str string) { writer.WriteString(str) }

func (nullDialector) Explain(sql string, vars ...interface{}) string { return sql }
