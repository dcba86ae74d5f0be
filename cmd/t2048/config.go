package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after applying the config file search order,
--difficulty and the other flags, as YAML.

Config search order:
  1. --config path
  2. ~/.t2048/configs/t2048.yaml
  3. ./configs/t2048.yaml
  4. built-in defaults

Examples:
  t2048 config
  t2048 config --difficulty hard
  t2048 config --defaults > ~/.t2048/configs/t2048.yaml`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the commented default config instead")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	data, err := config.Marshal(appConfig)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
