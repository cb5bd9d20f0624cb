package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-navtree/pkg/service"
	"github.com/mattsolo1/grove-navtree/pkg/workspace"
)

var (
	cfgFile string
	// VaultOverride is the --vault flag: a directory or a vault name from grove.yml.
	VaultOverride string
)

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "navtree")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("NAVTREE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("vault", "")
	viper.SetDefault("vault_name", "")
	viper.SetDefault("index", "")
	viper.SetDefault("use_index", false)
	viper.SetDefault("tui.collapse_on_select", true)
	viper.SetDefault("tui.show_vault_name", false)
	viper.SetDefault("tui.watch", false)
	viper.SetDefault("tui.debounce", "200ms")

	// A missing config file is fine; defaults and env still apply.
	_ = viper.ReadInConfig()
}

// ServiceConfig builds the service configuration. The vault is taken from, in
// order: --vault, NAVTREE_VAULT or the config file, grove.yml's navtree
// extension, and finally the vault containing the working directory.
func ServiceConfig() (*service.Config, error) {
	grove := workspace.LoadGroveConfig()

	ref := VaultOverride
	if ref == "" {
		ref = viper.GetString("vault")
	}
	if ref == "" {
		ref = grove.VaultDir
	}

	var dir string
	if ref != "" {
		dir = grove.ResolveVault(ref)
	} else {
		detected, err := workspace.DetectCurrent()
		if err != nil {
			return nil, fmt.Errorf("detect vault: %w", err)
		}
		dir = detected
	}
	if dir == "" {
		return nil, fmt.Errorf("no vault found: pass --vault, set NAVTREE_VAULT, or run inside a vault")
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve vault path: %w", err)
	}

	return &service.Config{
		VaultDir:  abs,
		VaultName: viper.GetString("vault_name"),
		IndexPath: workspace.ExpandHome(viper.GetString("index")),
		UseIndex:  viper.GetBool("use_index"),
	}, nil
}

// DebugEnabled reports whether --debug was passed.
func DebugEnabled(cmd *cobra.Command) bool {
	debug, err := cmd.Flags().GetBool("debug")
	return err == nil && debug
}

func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "navtree-config", "", "config file (default is $HOME/.config/navtree/config.yaml)")
	flags.StringVarP(&VaultOverride, "vault", "V", "", "Vault directory or vault name from grove.yml")
	flags.String("index", "", "Path of the sqlite index (default is <vault>/.navtree/index.db)")
	flags.Bool("use-index", false, "Load notes from the index instead of scanning the vault")
	if flags.Lookup("debug") == nil {
		flags.Bool("debug", false, "Enable debug logging")
	}

	cobra.CheckErr(viper.BindPFlag("index", flags.Lookup("index")))
	cobra.CheckErr(viper.BindPFlag("use_index", flags.Lookup("use-index")))
}
