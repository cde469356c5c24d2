package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/huandu/go-sqlbuilder"
	_ "github.com/lib/pq"
)

// Driver names a supported SQL backend.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverMySQL    Driver = "mysql"
)

const mysqlDriverParams = "parseTime=true&multiStatements=true"

// Flavor returns the sqlbuilder dialect for the driver.
func (d Driver) Flavor() (sqlbuilder.Flavor, error) {
	switch d {
	case DriverPostgres:
		return sqlbuilder.PostgreSQL, nil
	case DriverMySQL:
		return sqlbuilder.MySQL, nil
	default:
		return 0, fmt.Errorf("unknown SQL driver [%s]", d)
	}
}

func Connect(ctx context.Context, driver Driver, uri string, maxOpenConns int) (*sql.DB, error) {
	if _, err := driver.Flavor(); err != nil {
		return nil, err
	}

	dsn := uri
	if driver == DriverMySQL {
		dsn = withMySQLParams(uri)
	}

	db, err := sql.Open(string(driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s DB: %w", driver, err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxOpenConns)

	err = db.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("checking %s DB connection: %w", driver, err)
	}

	return db, nil
}

func withMySQLParams(uri string) string {
	if strings.Contains(uri, "?") {
		return uri + "&" + mysqlDriverParams
	}
	return uri + "?" + mysqlDriverParams
}
