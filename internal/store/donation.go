package store

import (
	"context"
	"fmt"
	"time"

	"smilingtears/internal/utils"
	"smilingtears/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const donationTableName = "smilingtears.donations"

var donationColumns = utils.StructTagValues(types.Donation{})

type DonationRepository struct {
	pool *pgxpool.Pool
}

func NewDonationRepository(pool *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{pool: pool}
}

// Create appends a donation record. IDs mirror the receipt numbering scheme:
// a timestamp prefix plus a short random suffix.
func (r *DonationRepository) Create(ctx context.Context, donation *types.Donation) error {
	now := time.Now()
	donation.CreatedAt = now
	if donation.ID == "" {
		donation.ID = now.Format("20060102150405") + utils.NanoIDSize(6)
	}
	if donation.TransactionID == "" {
		donation.TransactionID = "TXN" + donation.ID
	}

	query, args, err := psql().
		Insert(donationTableName).
		SetMap(utils.StructToMap(donation)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert donation query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create donation")
}

func (r *DonationRepository) List(ctx context.Context) ([]*types.Donation, error) {
	query, args, err := psql().
		Select(donationColumns...).
		From(donationTableName).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate list donations query: %w", err)
	}

	donations := make([]*types.Donation, 0)
	if err := pgxscan.Select(ctx, r.pool, &donations, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}

	return donations, nil
}
