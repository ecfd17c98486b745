package repositories

import (
	"context"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
)

// ProfileDirectory resolves display identities for user ids.
// Unknown ids are simply absent from the result.
type ProfileDirectory interface {
	FindProfilesByIDs(ctx context.Context, userIDs []string) (map[string]domain.UserProfile, error)
}
