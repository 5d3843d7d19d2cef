package access

import (
	"context"
	"fmt"

	"smilingtears/pkg/types"

	"golang.org/x/crypto/bcrypt"
)

// Authenticate validates credentials and returns the established session plus
// the role-based redirect target. Unknown usernames and password mismatches
// both surface ErrInvalidCredentials; callers must not distinguish them.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*types.Session, string, error) {
	account, err := s.accounts.ByUsername(ctx, username)
	if err != nil {
		if err == types.ErrAccountNotFound {
			return nil, "", types.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("fetch account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, "", types.ErrInvalidCredentials
	}

	session := &types.Session{
		Username: account.Username,
		Role:     account.Role,
	}

	return session, RedirectForRole(account.Role), nil
}

// RedirectForRole maps a role to its dashboard.
func RedirectForRole(role types.Role) string {
	switch role {
	case types.RoleAdmin:
		return "/admin/dashboard"
	case types.RoleManager:
		return "/manager/dashboard"
	default:
		return "/volunteer/dashboard"
	}
}
