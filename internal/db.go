package internal

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// MustDB connects with a bounded retry window so the server can come up
// before the database finishes starting.
func MustDB(url string) *pgxpool.Pool {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		zlog.Fatal("parse database url", zap.Error(err))
	}
	cfg.MaxConns = 10

	var pool *pgxpool.Pool

	deadline := time.Now().Add(30 * time.Second)
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		pool, err = pgxpool.NewWithConfig(ctx, cfg)
		if err == nil {
			pingErr := pool.Ping(ctx)
			if pingErr == nil {
				cancel()
				break
			}
			pool.Close()
			err = pingErr
		}
		cancel()

		if time.Now().After(deadline) {
			zlog.Fatal("failed to connect DB after retries", zap.Error(err))
		}
		time.Sleep(1 * time.Second)
	}

	return pool
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT UNIQUE NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS draft_contests (
	id TEXT PRIMARY KEY,
	contest_name TEXT NOT NULL DEFAULT '',
	image TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	contest_price DOUBLE PRECISION NOT NULL DEFAULT 0,
	prize_money DOUBLE PRECISION NOT NULL DEFAULT 0,
	instruction TEXT NOT NULL DEFAULT '',
	tags TEXT[] NOT NULL DEFAULT '{}',
	deadline TEXT NOT NULL DEFAULT '',
	participation_count INT NOT NULL DEFAULT 0,
	creator_email TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'Pending'
);

CREATE TABLE IF NOT EXISTS contests (
	id TEXT PRIMARY KEY,
	contest_name TEXT NOT NULL DEFAULT '',
	image TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	contest_price DOUBLE PRECISION NOT NULL DEFAULT 0,
	prize_money DOUBLE PRECISION NOT NULL DEFAULT 0,
	instruction TEXT NOT NULL DEFAULT '',
	tags TEXT[] NOT NULL DEFAULT '{}',
	deadline TEXT NOT NULL DEFAULT '',
	participation_count INT NOT NULL DEFAULT 0,
	creator_email TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS submissions (
	id TEXT PRIMARY KEY,
	contest_id TEXT NOT NULL,
	participant_email TEXT NOT NULL DEFAULT '',
	payload TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'submitted'
);

CREATE TABLE IF NOT EXISTS winners (
	id TEXT PRIMARY KEY,
	contest_id TEXT NOT NULL,
	participant_email TEXT NOT NULL,
	contest_name TEXT NOT NULL DEFAULT '',
	prize_money DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS payments (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL,
	contest_id TEXT NOT NULL DEFAULT '',
	amount DOUBLE PRECISION NOT NULL DEFAULT 0,
	transaction_date TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS logs (
	id BIGSERIAL PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	actor TEXT NOT NULL DEFAULT '',
	action TEXT NOT NULL,
	details TEXT NOT NULL DEFAULT ''
);
`

func InitSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, schema)
	return err
}

/* ===================== SQUIRREL HELPERS ===================== */

func qExec(ctx context.Context, db *pgxpool.Pool, q sq.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return db.Exec(ctx, sql, args...)
}

func qQuery(ctx context.Context, db *pgxpool.Pool, q sq.SelectBuilder) (pgx.Rows, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	return db.Query(ctx, sql, args...)
}

func qRow(ctx context.Context, db *pgxpool.Pool, q sq.SelectBuilder) pgx.Row {
	sql, args, _ := q.ToSql()
	return db.QueryRow(ctx, sql, args...)
}
