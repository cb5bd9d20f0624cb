package workspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mattsolo1/grove-core/config"
)

// NavtreeConfig represents the 'navtree' section in grove.yml
type NavtreeConfig struct {
	VaultDir string            `yaml:"vault_dir"`
	Vaults   map[string]string `yaml:"vaults"`
}

// LoadGroveConfig reads the navtree extension from the user's grove.yml.
// A missing grove config yields an empty NavtreeConfig.
func LoadGroveConfig() NavtreeConfig {
	cfg, err := config.LoadDefault()
	if err != nil {
		return NavtreeConfig{}
	}
	var nc NavtreeConfig
	if err := cfg.UnmarshalExtension("navtree", &nc); err != nil {
		return NavtreeConfig{}
	}
	return nc
}

// ResolveVault turns a vault reference into a directory. A name declared under
// navtree.vaults wins over a path.
func (c NavtreeConfig) ResolveVault(ref string) string {
	if dir, ok := c.Vaults[ref]; ok {
		return ExpandHome(dir)
	}
	return ExpandHome(ref)
}

// ExpandHome expands a leading ~/ to the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
