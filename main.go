package main

import (
	"fmt"
	"os"

	"github.com/mattsolo1/grove-core/cli"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-navtree/cmd"
	"github.com/mattsolo1/grove-navtree/cmd/config"
	"github.com/mattsolo1/grove-navtree/pkg/service"
)

var svc *service.Service

func main() {
	rootCmd := cli.NewStandardCommand(
		"navtree",
		"Browse a vault of hierarchical notes as a tree",
	)
	config.AddGlobalFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		// This runs once before any subcommand
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.WarnLevel)
		if config.DebugEnabled(c) {
			logger.SetLevel(logrus.DebugLevel)
		}

		// version needs no vault
		if c.Name() == "version" {
			return nil
		}

		config.InitConfig()
		serviceCfg, err := config.ServiceConfig()
		if err != nil {
			return err
		}

		svc, err = service.New(serviceCfg, logger.WithField("vault", serviceCfg.VaultDir))
		if err != nil {
			return fmt.Errorf("failed to initialize service: %w", err)
		}
		return nil
	}

	// Add subcommands
	rootCmd.AddCommand(cmd.NewAncestorsCmd(&svc))
	rootCmd.AddCommand(cmd.NewTreeCmd(&svc))
	rootCmd.AddCommand(cmd.NewTuiCmd(&svc))
	rootCmd.AddCommand(cmd.NewIndexCmd(&svc))
	rootCmd.AddCommand(cmd.NewSearchCmd(&svc))
	rootCmd.AddCommand(cmd.NewDoctorCmd(&svc))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
