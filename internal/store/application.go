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

const applicationTableName = "smilingtears.volunteer_applications"

var applicationColumns = utils.StructTagValues(types.VolunteerApplication{})

type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

// Create assigns the year-prefixed identifier and stores the application as
// pending. The per-year sequence is advanced atomically in the same
// transaction as the insert, so concurrent submissions cannot collide.
func (r *ApplicationRepository) Create(ctx context.Context, app *types.VolunteerApplication) error {
	now := time.Now()
	app.Status = types.ApplicationStatusPending
	app.SubmittedAt = now

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin application transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var seq int
	err = tx.QueryRow(ctx, `
		INSERT INTO smilingtears.application_id_seq (year, seq)
		VALUES ($1, 1)
		ON CONFLICT (year)
		DO UPDATE SET seq = application_id_seq.seq + 1
		RETURNING seq`, now.Year()).Scan(&seq)
	if err != nil {
		return fmt.Errorf("failed to advance application sequence: %w", err)
	}

	app.ID = FormatApplicationID(now.Year(), seq)

	query, args, err := psql().
		Insert(applicationTableName).
		SetMap(utils.StructToMap(app)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert application query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	return utils.ErrorWrapOrNil(tx.Commit(ctx), "failed to commit application")
}

func (r *ApplicationRepository) Application(ctx context.Context, id string) (*types.VolunteerApplication, error) {
	query, args, err := psql().
		Select(applicationColumns...).
		From(applicationTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate application query: %w", err)
	}

	var app types.VolunteerApplication
	err = pgxscan.Get(ctx, r.pool, &app, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to fetch application: %w", err)
	}

	return &app, nil
}

// SetStatus transitions an application. A plain UPDATE keeps re-approval
// idempotent: approving twice leaves the row approved with no other effect.
func (r *ApplicationRepository) SetStatus(ctx context.Context, id string, status types.ApplicationStatus) error {
	query, args, err := psql().
		Update(applicationTableName).
		Set("status", status).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate application status query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrApplicationNotFound
	}

	return nil
}

// Delete is the explicit admin purge.
func (r *ApplicationRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql().
		Delete(applicationTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete application query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to delete application")
}

func (r *ApplicationRepository) List(ctx context.Context) ([]*types.VolunteerApplication, error) {
	query, args, err := psql().
		Select(applicationColumns...).
		From(applicationTableName).
		OrderBy("submitted_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate list applications query: %w", err)
	}

	apps := make([]*types.VolunteerApplication, 0)
	if err := pgxscan.Select(ctx, r.pool, &apps, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return apps, nil
}

// ApprovedByEmail returns the approved application for an email, or
// ErrApplicationNotFound when no approved application exists.
func (r *ApplicationRepository) ApprovedByEmail(ctx context.Context, email string) (*types.VolunteerApplication, error) {
	query, args, err := psql().
		Select(applicationColumns...).
		From(applicationTableName).
		Where(sq.Eq{"email": email, "status": types.ApplicationStatusApproved}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate approved application query: %w", err)
	}

	var app types.VolunteerApplication
	err = pgxscan.Get(ctx, r.pool, &app, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to fetch approved application: %w", err)
	}

	return &app, nil
}

func (r *ApplicationRepository) ByEmail(ctx context.Context, email string) ([]*types.VolunteerApplication, error) {
	query, args, err := psql().
		Select(applicationColumns...).
		From(applicationTableName).
		Where(sq.Eq{"email": email}).
		OrderBy("submitted_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate applications-by-email query: %w", err)
	}

	apps := make([]*types.VolunteerApplication, 0)
	if err := pgxscan.Select(ctx, r.pool, &apps, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch applications by email: %w", err)
	}

	return apps, nil
}

// FormatApplicationID renders the display identifier: two-digit year followed
// by the per-year sequence, e.g. year 2025 seq 1 -> "2501". The sequence pads
// to two digits and widens past 99.
func FormatApplicationID(year, seq int) string {
	return fmt.Sprintf("%02d%02d", year%100, seq)
}
