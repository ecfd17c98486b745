package mapping

import (
	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	"github.com/SscSPs/shopdesk_backend/internal/models"
)

// ToDomainUserProfile converts a model User to the profile directory's view of it
func ToDomainUserProfile(m models.User) domain.UserProfile {
	p := domain.UserProfile{
		UserID: m.UserID,
		Name:   m.Name,
	}
	if m.Email != nil {
		p.Email = *m.Email
	}
	return p
}

// ToDomainUserProfileMap indexes profiles by user id
func ToDomainUserProfileMap(ms []models.User) map[string]domain.UserProfile {
	profiles := make(map[string]domain.UserProfile, len(ms))
	for _, m := range ms {
		profiles[m.UserID] = ToDomainUserProfile(m)
	}
	return profiles
}
