package models

import "time"

// TenantConfig is a row of the tenant_configs table. Document holds the whole
// configuration as jsonb; Version guards concurrent writers.
type TenantConfig struct {
	TenantID      string    `db:"tenant_id"`
	Document      []byte    `db:"document"`
	Version       int       `db:"version"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
