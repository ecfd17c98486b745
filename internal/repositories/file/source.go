package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/SscSPs/shopdesk_backend/internal/apperrors"
	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/shopdesk_backend/internal/core/ports/repositories"
	"gopkg.in/yaml.v3"
)

// Source layers an optional override document over the built-in defaults. Entries are
// merged by id, so an override only needs to list what it changes. Saving writes the
// full configuration back to the override path; without a path saves are kept in memory.
type Source struct {
	path string

	mu      sync.Mutex
	version int
	saved   *domain.TenantConfig
}

// NewSource creates a Source. path may be empty or point to a .yaml, .yml or .json file
// that does not exist yet.
func NewSource(path string) *Source {
	return &Source{path: path}
}

var _ portsrepo.ConfigSource = (*Source)(nil)

func (s *Source) Load(ctx context.Context) (*domain.TenantConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saved != nil {
		return s.saved.Clone(), nil
	}

	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}
	if s.path != "" {
		override, err := s.readOverride()
		if err != nil {
			return nil, err
		}
		if override != nil {
			Merge(cfg, override)
		}
	}
	cfg.Version = s.version
	return cfg, nil
}

func (s *Source) readOverride() (*domain.TenantConfig, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read tenant configuration override %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	override, err := decode(data, formatOf(s.path))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: tenant configuration override %s: %v", apperrors.ErrValidation, s.path, err)
	}
	return override, nil
}

// Save persists cfg when its version follows the last saved one.
func (s *Source) Save(ctx context.Context, cfg *domain.TenantConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg.Version != s.version+1 {
		return fmt.Errorf("%w: tenant configuration version %d does not follow %d", apperrors.ErrConflict, cfg.Version, s.version)
	}
	if s.path != "" {
		if err := s.write(cfg); err != nil {
			return err
		}
	}
	s.version = cfg.Version
	s.saved = cfg.Clone()
	return nil
}

// write replaces the override file atomically.
func (s *Source) write(cfg *domain.TenantConfig) error {
	var (
		data []byte
		err  error
	)
	if formatOf(s.path) == formatJSON {
		data, err = json.MarshalIndent(cfg, "", "  ")
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("encode tenant configuration: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tenant-config-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", s.path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

func formatOf(path string) format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return formatJSON
	}
	return formatYAML
}

func decodeJSON(data []byte, cfg *domain.TenantConfig) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Merge overlays override onto base. Scalars replace when set; list entries replace the
// base entry with the same id (entity type for workflows) or are appended.
func Merge(base, override *domain.TenantConfig) {
	if override.TenantID != "" {
		base.TenantID = override.TenantID
	}
	if override.OperationMode != "" {
		base.OperationMode = override.OperationMode
	}
	base.Modules = mergeByKey(base.Modules, override.Modules, func(m domain.ModuleConfig) string { return m.ID })
	base.Features = mergeByKey(base.Features, override.Features, func(f domain.FeatureToggle) string { return f.ID })
	base.Workflows = mergeByKey(base.Workflows, override.Workflows, func(w domain.WorkflowDefinition) string { return w.EntityType })
	base.ApprovalRules = mergeByKey(base.ApprovalRules, override.ApprovalRules, func(r domain.ApprovalRule) string { return r.ID })

	loc := override.Localization
	if loc.Locale != "" {
		base.Localization.Locale = loc.Locale
	}
	if loc.Currency != "" {
		base.Localization.Currency = loc.Currency
	}
	if loc.Timezone != "" {
		base.Localization.Timezone = loc.Timezone
	}
	if loc.DateFormat != "" {
		base.Localization.DateFormat = loc.DateFormat
	}
}

func mergeByKey[T any](base, override []T, key func(T) string) []T {
	index := make(map[string]int, len(base))
	for i, item := range base {
		index[key(item)] = i
	}
	for _, item := range override {
		if i, ok := index[key(item)]; ok {
			base[i] = item
			continue
		}
		index[key(item)] = len(base)
		base = append(base, item)
	}
	return base
}
