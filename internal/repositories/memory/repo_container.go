package memory

import (
	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/shopdesk_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the in-process approval store and change feed around the
// given configuration source.
func NewRepositoryProvider(configSource portsrepo.ConfigSource, profiles ...domain.UserProfile) portsrepo.RepositoryProvider {
	feed := NewChangeFeed()
	return portsrepo.RepositoryProvider{
		ConfigSource: configSource,
		ApprovalRepo: NewApprovalRepository(feed),
		ChangeFeed:   feed,
		Profiles:     NewProfileDirectory(profiles...),
	}
}
