// Package cli provides the command-line interface for canned.
package cli

import (
	"fmt"
	"os"

	"github.com/canned/canned/internal/config"
	"github.com/canned/canned/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// version is reported by "canned version".
const version = "0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "canned",
	Short: "canned - fixed-response HTTP test server",
	Long: `canned is a tiny HTTP server that answers a fixed set of request
paths with canned text bodies, some after an artificial delay. It is meant
as a target for ordering and pipelining tests.

Variants:
  a  /1 [111] 20ms, /2 [222] 0ms, /3 [333] 30ms, /4 [444] 10ms, else Hello
  b  Hello for every path, after the request body ends
  c  Hello for every path, without waiting for the request body

Examples:
  canned serve                      # variant a on 0.0.0.0:8080
  canned serve --variant c          # answer before the body ends
  canned routes                     # show the response table
  canned probe /3 /2                # fire requests and show completion order`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/canned/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&outputYAML, "yaml", false, "output as YAML")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("canned version %s\n", version)
	},
}

// loadConfig loads the configuration honouring --config.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFile(cfgFile)
	}
	return config.Load()
}

// newLogger builds the logger from cfg, forcing debug level with --verbose.
func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	lc := cfg.Logging
	if verbose {
		lc.Level = "debug"
	}
	return logging.New(lc)
}

// exitError prints an error message and exits.
func exitError(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
