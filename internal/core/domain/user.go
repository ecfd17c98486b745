package domain

// UserProfile is the display identity of a user as held by the profile directory.
type UserProfile struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
}

// DisplayName returns the best available label for the user.
func (p UserProfile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if p.Email != "" {
		return p.Email
	}
	return p.UserID
}
