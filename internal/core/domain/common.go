package domain

// Caller is the already-authenticated principal a decision is made for.
// Roles are resolved upstream; this package never authenticates.
type Caller struct {
	UserID string   `json:"userId"`
	Roles  []string `json:"roles"`
}
