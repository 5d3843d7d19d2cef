package store

import (
	"context"
	"fmt"
	"time"

	"smilingtears/internal/utils"
	"smilingtears/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountTableName = "smilingtears.accounts"

var accountColumns = utils.StructTagValues(types.Account{})

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Create(ctx context.Context, account *types.Account) error {
	if account.ID == "" {
		account.ID = utils.NanoIDSize(21)
	}
	account.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(accountTableName).
		SetMap(utils.StructToMap(account)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create account query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create account")
}

func (r *AccountRepository) ByUsername(ctx context.Context, username string) (*types.Account, error) {
	return r.one(ctx, sq.Eq{"username": username})
}

func (r *AccountRepository) ByEmail(ctx context.Context, email string) (*types.Account, error) {
	return r.one(ctx, sq.Eq{"email": email})
}

func (r *AccountRepository) one(ctx context.Context, pred sq.Eq) (*types.Account, error) {
	query, args, err := psql().
		Select(accountColumns...).
		From(accountTableName).
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate account query: %w", err)
	}

	var account types.Account
	err = pgxscan.Get(ctx, r.pool, &account, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}

	return &account, nil
}

func (r *AccountRepository) List(ctx context.Context) ([]*types.Account, error) {
	query, args, err := psql().
		Select(accountColumns...).
		From(accountTableName).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate list accounts query: %w", err)
	}

	accounts := make([]*types.Account, 0)
	if err := pgxscan.Select(ctx, r.pool, &accounts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return accounts, nil
}

// UpdatePassword rewrites the stored hash for the account with this email.
func (r *AccountRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	query, args, err := psql().
		Update(accountTableName).
		Set("password", passwordHash).
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update password query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrAccountNotFound
	}

	return nil
}

func (r *AccountRepository) DeleteByEmail(ctx context.Context, email string) error {
	query, args, err := psql().
		Delete(accountTableName).
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete account query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to delete account")
}
