package store

import (
	"context"
	"fmt"
	"time"

	"smilingtears/internal/utils"
	"smilingtears/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const contactTableName = "smilingtears.contact_submissions"

var contactColumns = utils.StructTagValues(types.ContactSubmission{})

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Create(ctx context.Context, name, email, phone, message string) error {
	id, err := gonanoid.New(21)
	if err != nil {
		return fmt.Errorf("generate id: %w", err)
	}

	query, args, err := psql().
		Insert(contactTableName).
		Columns("id", "name", "email", "phone", "message", "status", "created_at").
		Values(id, name, email, phone, message, "new", time.Now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build contact insert: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert contact submission: %w", err)
	}

	return nil
}

func (r *ContactRepository) Latest(ctx context.Context, limit uint64) ([]*types.ContactSubmission, error) {
	query, args, err := psql().
		Select(contactColumns...).
		From(contactTableName).
		OrderBy("created_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build latest contact query: %w", err)
	}

	out := make([]*types.ContactSubmission, 0)
	if err := pgxscan.Select(ctx, r.pool, &out, query, args...); err != nil {
		return nil, fmt.Errorf("select latest contact submissions: %w", err)
	}

	return out, nil
}
