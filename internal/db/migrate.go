package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE SCHEMA IF NOT EXISTS smilingtears`,
	`CREATE TABLE IF NOT EXISTS smilingtears.accounts (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS smilingtears.volunteer_applications (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		interests TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		submitted_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS smilingtears.application_id_seq (
		year INT PRIMARY KEY,
		seq INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS smilingtears.donations (
		id TEXT PRIMARY KEY,
		transaction_id TEXT NOT NULL,
		amount_cents BIGINT NOT NULL,
		program TEXT NOT NULL DEFAULT '',
		donor_name TEXT NOT NULL DEFAULT '',
		donor_email TEXT NOT NULL DEFAULT '',
		donor_phone TEXT NOT NULL DEFAULT '',
		is_anonymous BOOLEAN NOT NULL DEFAULT FALSE,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS smilingtears.contact_submissions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'new',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS volunteer_applications_email_idx
		ON smilingtears.volunteer_applications (email)`,
	`CREATE INDEX IF NOT EXISTS accounts_username_idx
		ON smilingtears.accounts (username)`,
}

// Migrate creates the schema and tables if they do not exist yet. Statements
// are individually idempotent so re-running is safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}
