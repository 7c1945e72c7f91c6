package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLConfig selects and configures the database behind a SQLBackend.
type SQLConfig struct {
	Driver string `mapstructure:"driver" validate:"omitempty,oneof=sqlite mysql"`

	// Path is the database file, sqlite only.
	Path string `mapstructure:"path"`

	// MySQL connection settings.
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	TLS      bool   `mapstructure:"tls"`

	MaxOpenConns    int `mapstructure:"max_open_conns"`
	MaxIdleConns    int `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int `mapstructure:"conn_max_lifetime_seconds"`
}

// SQLBackend stores key-value pairs in a single kv table via sqlx.
type SQLBackend struct {
	db *sqlx.DB
}

const kvSchema = `CREATE TABLE IF NOT EXISTS kv (
	k VARCHAR(191) PRIMARY KEY,
	v BLOB NOT NULL
)`

// OpenSQL opens the configured database and ensures the kv table exists.
func OpenSQL(cfg SQLConfig) (*SQLBackend, error) {
	var db *sqlx.DB
	var err error
	switch cfg.Driver {
	case "sqlite", "":
		db, err = sqlx.Open("sqlite", cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("sqlx.Open(sqlite) > %w", err)
		}
	case "mysql":
		mysqlCfg := mysql.NewConfig()
		mysqlCfg.User = cfg.Username
		mysqlCfg.Passwd = cfg.Password
		mysqlCfg.Net = "tcp"
		mysqlCfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		mysqlCfg.DBName = cfg.Database
		if cfg.TLS {
			mysqlCfg.TLSConfig = "true"
		}
		db, err = sqlx.Open("mysql", mysqlCfg.FormatDSN())
		if err != nil {
			return nil, fmt.Errorf("sqlx.Open(mysql) > %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	if _, err := db.Exec(kvSchema); err != nil {
		return nil, fmt.Errorf("db.Exec(create kv table) > %w", err)
	}
	return &SQLBackend{db: db}, nil
}

func (backend *SQLBackend) Read(key string) ([]byte, error) {
	var value []byte
	err := backend.db.Get(&value, "SELECT v FROM kv WHERE k = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db.Get(kv) > %w", err)
	}
	return value, nil
}

func (backend *SQLBackend) Write(key string, value []byte) error {
	// The kv table is tiny and single-user; delete-then-insert keeps the
	// statement portable across sqlite and mysql.
	tx, err := backend.db.Beginx()
	if err != nil {
		return fmt.Errorf("db.Beginx > %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec("DELETE FROM kv WHERE k = ?", key); err != nil {
		return fmt.Errorf("tx.Exec(delete kv) > %w", err)
	}
	if _, err := tx.Exec("INSERT INTO kv (k, v) VALUES (?, ?)", key, value); err != nil {
		return fmt.Errorf("tx.Exec(insert kv) > %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit > %w", err)
	}
	return nil
}

func (backend *SQLBackend) Delete(key string) error {
	if _, err := backend.db.Exec("DELETE FROM kv WHERE k = ?", key); err != nil {
		return fmt.Errorf("db.Exec(delete kv) > %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (backend *SQLBackend) Close() error {
	return backend.db.Close()
}
