package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/canned/canned/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd is the parent command for config operations.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for managing canned configuration.`,
}

// configShowCmd shows the current configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration values.`,
	Run:   runConfigShow,
}

// configPathCmd shows the config file path.
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config file path",
	Long:  `Display the path to the configuration file.`,
	Run:   runConfigPath,
}

// configInitCmd initializes a config file.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file",
	Long:  `Create a default configuration file.`,
	Run:   runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitError("failed to load config: %v", err)
	}
	if err := writeConfig(cmd.OutOrStdout(), cfg); err != nil {
		exitError("%v", err)
	}
}

func runConfigPath(cmd *cobra.Command, args []string) {
	if err := writeConfigPath(cmd.OutOrStdout()); err != nil {
		exitError("%v", err)
	}
}

func runConfigInit(cmd *cobra.Command, args []string) {
	if err := initConfigFile(cmd.OutOrStdout()); err != nil {
		exitError("%v", err)
	}
}

// writeConfig prints cfg as YAML.
func writeConfig(w io.Writer, cfg *config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprintf(w, "Current configuration:\n\n%s\n", data)
	return nil
}

// writeConfigPath prints the user config path and whether it exists.
func writeConfigPath(w io.Writer) error {
	path, err := config.Path()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	state := "(file exists)"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		state = "(file does not exist)"
	}
	fmt.Fprintf(w, "Config file path: %s\n%s\n", path, state)
	return nil
}

// initConfigFile writes config.DefaultFile to the user config path. It
// refuses to overwrite an existing file.
func initConfigFile(w io.Writer) error {
	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path, err := config.Path()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.WriteFile(path, []byte(config.DefaultFile), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(w, "Created config file: %s\n", path)
	return nil
}
