package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trapsweep/internal/config"
)

var (
	flagConfigPath  string
	flagConfigForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the game config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Long: `Write the built-in configuration as YAML so it can be edited.

Without --path the file goes to ~/.arcade/configs/trapsweep.yaml, which
is picked up automatically. Existing files are kept unless --force is set.

Examples:
  trapsweep config init
  trapsweep config init --path ./configs/trapsweep.yaml --force`,
	Args: cobra.NoArgs,
	Run:  runConfigInit,
}

func init() {
	configInitCmd.Flags().StringVar(&flagConfigPath, "path", "", "Where to write the config")
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(_ *cobra.Command, _ []string) {
	path := flagConfigPath
	if path == "" {
		path = config.UserConfigPath()
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "Error: cannot find the home directory, pass --path")
		os.Exit(1)
	}

	if err := config.WriteDefault(path, flagConfigForce); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}
