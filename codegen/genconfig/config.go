// Package genconfig loads the generator configuration file.
package genconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the parsed generator configuration.
type Config struct {
	General         General                   `yaml:"general"`
	Discovery       Discovery                 `yaml:"discovery"`
	ReadOnlyFields  []string                  `yaml:"read_only_fields"`
	ModuleOverrides map[string]ModuleOverride `yaml:"module_overrides"`
}

// General holds file locations and global generation settings.
type General struct {
	SpecFile        string `yaml:"spec_file"`
	OutputDir       string `yaml:"output_dir"`
	ModuleUtilsDir  string `yaml:"module_utils_dir"`
	APIReferenceDir string `yaml:"api_reference_dir"`
	// MinAPIVersion optionally gates generation on a minimum panel API
	// version (info.version of the spec). Empty disables the gate.
	MinAPIVersion string `yaml:"min_api_version"`
}

// Discovery filters which controller tags participate in discovery.
// A non-empty include list is applied first, then the exclude list.
type Discovery struct {
	IncludeControllers []string `yaml:"include_controllers"`
	ExcludeControllers []string `yaml:"exclude_controllers"`
}

// ModuleOverride is the per-module override record. ReadOnlyFields are
// unioned with the global and schema-derived sets; LookupField, IDParam,
// Description and FieldRenames replace the discovered values outright;
// ResolveUUIDByName only ever enables, never disables.
type ModuleOverride struct {
	ReadOnlyFields    []string          `yaml:"read_only_fields"`
	LookupField       string            `yaml:"lookup_field"`
	IDParam           string            `yaml:"id_param"`
	Description       string            `yaml:"description"`
	ResolveUUIDByName bool              `yaml:"resolve_uuid_by_name"`
	FieldRenames      map[string]string `yaml:"field_renames"`
}

// Load reads and parses a generator configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	var config Config
	if err := yaml.Unmarshal(raw, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}
