package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yaegashi/tgwops/config/tgwenv"
)

func newCmdInit() *cobra.Command {
	var forceFlag bool
	var driver, region string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize .tgwops/config.yml in the current directory",
		Long: `Initialize tgwops settings by creating the .tgwops/ directory and config.yml.

The init command creates:
  - .tgwops/ directory
  - .tgwops/config.yml with provider, output and logging defaults
  - .tgwops/logs/ directory (used by --log-output auto)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, forceFlag, driver, region)
		},
	}

	cmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Overwrite existing .tgwops/config.yml")
	cmd.Flags().StringVar(&driver, "driver", "", "Provider driver written to config.yml (default aws)")
	cmd.Flags().StringVar(&region, "region", "", "AWS region written to config.yml")
	return cmd
}

func runInit(cmd *cobra.Command, forceFlag bool, driver, region string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	cfgDir := filepath.Join(workDir, tgwenv.DirName)
	configPath := filepath.Join(cfgDir, tgwenv.ConfigFileName)
	logsDir := filepath.Join(cfgDir, tgwenv.LogsDirName)

	if !forceFlag {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists (use -f to overwrite)", configPath)
		}
	}

	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("creating %s directory: %w", logsDir, err)
	}

	data, err := tgwenv.InitialConfigYAML(driver, region)
	if err != nil {
		return fmt.Errorf("generating default config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized tgwops in %s\n", cfgDir)
	fmt.Fprintf(out, "Created:\n")
	fmt.Fprintf(out, "  - %s\n", configPath)
	fmt.Fprintf(out, "  - %s/\n", logsDir)
	return nil
}
