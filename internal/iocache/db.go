package iocache

import (
	"database/sql"
	"fmt"
	"regexp"

	"github.com/go-sql-driver/mysql"
	"github.com/huangsam/tcscore/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // SQLite driver
)

// Table names used by the stores.
const (
	scoreTable      = "tcscore_score_cache"
	runsTable       = "tcscore_runs"
	textScoresTable = "tcscore_text_scores"
)

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func init() {
	// sqlx only knows the cgo driver name for SQLite.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// validateTableName rejects names that cannot be safely interpolated into SQL.
func validateTableName(tableName string) error {
	if !tableNamePattern.MatchString(tableName) {
		return fmt.Errorf("invalid table name %q: must start with a letter or underscore and contain only letters, digits and underscores", tableName)
	}
	return nil
}

// quoteTableName quotes a validated table name for the backend.
func quoteTableName(tableName string, backend schema.DatabaseBackend) string {
	if backend == schema.MySQLBackend {
		return "`" + tableName + "`"
	}
	return `"` + tableName + `"`
}

// driverFor returns the database/sql driver name of a SQL backend.
func driverFor(backend schema.DatabaseBackend) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		return "sqlite", nil
	case schema.MySQLBackend:
		return "mysql", nil
	case schema.PostgreSQLBackend:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported SQL backend: %s. Must be sqlite, mysql or postgresql", backend)
	}
}

// dataSourceName resolves the connection string of a SQL backend. SQLite falls
// back to defaultPath and gets WAL plus a busy timeout. MySQL gets parseTime so
// DATETIME columns scan into time.Time, and multiStatements for migrations.
func dataSourceName(backend schema.DatabaseBackend, connStr, defaultPath string) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		path := connStr
		if path == "" {
			path = defaultPath
		}
		return path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", nil
	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(connStr)
		if err != nil {
			return "", fmt.Errorf("invalid MySQL connection string: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}
		cfg.ParseTime = true
		cfg.MultiStatements = true
		return cfg.FormatDSN(), nil
	default:
		return connStr, nil
	}
}

// openDB opens and pings a SQL backend.
func openDB(backend schema.DatabaseBackend, connStr, defaultPath string) (*sqlx.DB, error) {
	driverName, err := driverFor(backend)
	if err != nil {
		return nil, err
	}
	dsn, err := dataSourceName(backend, connStr, defaultPath)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		switch backend {
		case schema.SQLiteBackend:
			return nil, fmt.Errorf("failed to initialize SQLite database: %w. Ensure the directory is writable", err)
		case schema.PostgreSQLBackend:
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		default:
			return nil, fmt.Errorf("failed to connect to %s: %w", backend, err)
		}
	}
	if backend == schema.SQLiteBackend {
		// A single connection avoids "database is locked" errors
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}
	return db, nil
}

// tableSize estimates the on-disk size of a table. SQLite reports the whole file.
func tableSize(db *sqlx.DB, backend schema.DatabaseBackend, connStr, tableName string, rows int) int64 {
	var size sql.NullInt64
	var err error
	switch backend {
	case schema.SQLiteBackend:
		err = db.Get(&size, "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
	case schema.MySQLBackend:
		cfg, perr := mysql.ParseDSN(connStr)
		if perr != nil || cfg.DBName == "" {
			return int64(rows) * 1000
		}
		err = db.Get(&size, "SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?", cfg.DBName, tableName)
	case schema.PostgreSQLBackend:
		err = db.Get(&size, "SELECT pg_total_relation_size($1)", tableName)
	}
	if err != nil || !size.Valid {
		return int64(rows) * 1000 // Rough estimate
	}
	return size.Int64
}
