package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps accounts in Postgres through a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// ConnectPostgres creates a pool, pings it and ensures the schema exists.
func ConnectPostgres(ctx context.Context, url string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if _, err := pool.Exec(ctx, schemaPostgres); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &PostgresStore{pool: pool, now: time.Now}, nil
}

func (s *PostgresStore) Exists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`, NormalizeEmail(email)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check account: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) Create(ctx context.Context, name, email string) (Account, error) {
	name, email, err := normalize(name, email)
	if err != nil {
		return Account{}, err
	}

	acc := Account{ID: uuid.NewString(), Name: name, Email: email, CreatedAt: s.now().UTC().Truncate(time.Second)}
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO accounts (id, name, email, created_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (email) DO NOTHING`,
		acc.ID, acc.Name, acc.Email, acc.CreatedAt.Unix())
	if err != nil {
		return Account{}, fmt.Errorf("insert account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return Account{}, ErrAccountExists
	}
	return acc, nil
}

func (s *PostgresStore) DisplayName(ctx context.Context, email string) (string, bool, error) {
	var name string
	err := s.pool.QueryRow(ctx, `SELECT name FROM accounts WHERE email = $1`, NormalizeEmail(email)).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup account: %w", err)
	}
	return name, true, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
