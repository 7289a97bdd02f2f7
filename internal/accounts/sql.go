package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS accounts (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  created_at INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS accounts (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  created_at BIGINT NOT NULL
);
`

// SQLStore keeps accounts in a database/sql database.
type SQLStore struct {
	db     *sql.DB
	driver Driver
	now    func() time.Time
}

// OpenSQL opens a database for driver and ensures the schema exists. An empty
// dsn selects a local default.
func OpenSQL(ctx context.Context, driver Driver, dsn string) (*SQLStore, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:glucorisk.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/glucorisk?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	store, err := NewSQLStore(ctx, db, driver)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewSQLStore wraps an open database and ensures the schema exists.
func NewSQLStore(ctx context.Context, db *sql.DB, driver Driver) (*SQLStore, error) {
	schema := schemaSQLite
	if driver == DriverPostgres {
		schema = schemaPostgres
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &SQLStore{db: db, driver: driver, now: time.Now}, nil
}

func (s *SQLStore) Exists(ctx context.Context, email string) (bool, error) {
	_, ok, err := s.DisplayName(ctx, email)
	return ok, err
}

func (s *SQLStore) Create(ctx context.Context, name, email string) (Account, error) {
	name, email, err := normalize(name, email)
	if err != nil {
		return Account{}, err
	}

	acc := Account{ID: uuid.NewString(), Name: name, Email: email, CreatedAt: s.now().UTC().Truncate(time.Second)}
	res, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO accounts (id, name, email, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (email) DO NOTHING`),
		acc.ID, acc.Name, acc.Email, acc.CreatedAt.Unix())
	if err != nil {
		return Account{}, fmt.Errorf("insert account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Account{}, fmt.Errorf("insert account: %w", err)
	}
	if n == 0 {
		return Account{}, ErrAccountExists
	}
	return acc, nil
}

func (s *SQLStore) DisplayName(ctx context.Context, email string) (string, bool, error) {
	var name string
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT name FROM accounts WHERE email = ?`), NormalizeEmail(email)).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup account: %w", err)
	}
	return name, true, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders to $n for Postgres.
func (s *SQLStore) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
