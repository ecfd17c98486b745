package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/shopdesk_backend/internal/core/ports/repositories"
)

// ProfileDirectory is a fixed in-memory set of user profiles.
type ProfileDirectory struct {
	mu       sync.RWMutex
	profiles map[string]domain.UserProfile
}

func NewProfileDirectory(profiles ...domain.UserProfile) *ProfileDirectory {
	d := &ProfileDirectory{profiles: make(map[string]domain.UserProfile, len(profiles))}
	for _, p := range profiles {
		d.profiles[p.UserID] = p
	}
	return d
}

var _ portsrepo.ProfileDirectory = (*ProfileDirectory)(nil)

// Put adds or replaces a profile.
func (d *ProfileDirectory) Put(profile domain.UserProfile) {
	d.mu.Lock()
	d.profiles[profile.UserID] = profile
	d.mu.Unlock()
}

func (d *ProfileDirectory) FindProfilesByIDs(ctx context.Context, userIDs []string) (map[string]domain.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	found := make(map[string]domain.UserProfile, len(userIDs))
	for _, id := range userIDs {
		if p, ok := d.profiles[id]; ok {
			found[id] = p
		}
	}
	return found, nil
}
