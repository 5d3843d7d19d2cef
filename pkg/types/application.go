package types

import (
	"strings"
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// VolunteerApplication is a request to join as a volunteer, pending admin
// review. IDs are year-prefixed: the last two digits of the submission year
// followed by a per-year sequence number, e.g. "2501".
type VolunteerApplication struct {
	ID          string            `db:"id"`
	Name        string            `db:"name"`
	Email       string            `db:"email"`
	Phone       string            `db:"phone"`
	City        string            `db:"city"`
	Interests   string            `db:"interests"` // comma-joined
	Message     string            `db:"message"`
	Status      ApplicationStatus `db:"status"`
	SubmittedAt time.Time         `db:"submitted_at"`
}

func (a *VolunteerApplication) InterestList() []string {
	if strings.TrimSpace(a.Interests) == "" {
		return nil
	}

	parts := strings.Split(a.Interests, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}

func JoinInterests(interests []string) string {
	out := make([]string, 0, len(interests))
	for _, i := range interests {
		if trimmed := strings.TrimSpace(i); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, ",")
}
