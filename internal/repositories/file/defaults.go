package file

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/tenant_config.yaml
var defaultTenantConfig []byte

// Defaults returns a fresh copy of the built-in tenant configuration.
func Defaults() (*domain.TenantConfig, error) {
	cfg, err := decode(defaultTenantConfig, formatYAML)
	if err != nil {
		return nil, fmt.Errorf("decode built-in tenant configuration: %w", err)
	}
	return cfg, nil
}

type format int

const (
	formatYAML format = iota
	formatJSON
)

func decode(data []byte, f format) (*domain.TenantConfig, error) {
	cfg := &domain.TenantConfig{}
	switch f {
	case formatJSON:
		if err := decodeJSON(data, cfg); err != nil {
			return nil, err
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
