package types

import "time"

type DonationStatus string

const (
	DonationStatusSuccess DonationStatus = "success"
	DonationStatusFailed  DonationStatus = "failed"
)

// Donation is append-only: one row per successful submission. DonorName holds
// "Anonymous" when the donor opted out of attribution.
type Donation struct {
	ID            string         `db:"id"`
	TransactionID string         `db:"transaction_id"`
	AmountCents   int64          `db:"amount_cents"`
	Program       string         `db:"program"`
	DonorName     string         `db:"donor_name"`
	DonorEmail    string         `db:"donor_email"`
	DonorPhone    string         `db:"donor_phone"`
	IsAnonymous   bool           `db:"is_anonymous"`
	Status        DonationStatus `db:"status"`
	CreatedAt     time.Time      `db:"created_at"`
}

// ContactSubmission is a message sent through the contact form.
type ContactSubmission struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	Message   string    `db:"message"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}
