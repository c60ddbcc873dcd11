package cli

import (
	"github.com/canned/canned/internal/responses"
	"github.com/canned/canned/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort    int
	serveHost    string
	serveVariant string
)

// serveCmd starts the server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the server",
	Long: `Start the canned HTTP server.

The server runs until the process is terminated. Every response is
200 OK with Content-Length 6 and one of the canned bodies.

Example:
  canned serve
  canned serve --variant b --port 9000`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (default from config, 8080)")
	serveCmd.Flags().StringVarP(&serveHost, "host", "H", "", "host to bind to (default from config, 0.0.0.0)")
	serveCmd.Flags().StringVar(&serveVariant, "variant", "", "response variant: a, b or c (default from config, a)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitError("failed to load config: %v", err)
	}

	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serveHost
	}
	if cmd.Flags().Changed("variant") {
		cfg.Server.Variant = serveVariant
	}

	logger, err := newLogger(cfg)
	if err != nil {
		exitError("%v", err)
	}

	variant, err := responses.ParseVariant(cfg.Server.Variant)
	if err != nil {
		exitError("%v", err)
	}
	table, err := responses.ForVariant(variant)
	if err != nil {
		exitError("%v", err)
	}

	srv := server.New(&server.Config{
		Addr:    cfg.Server.Addr(),
		Variant: variant,
	}, table, logger)

	// No signal handling: the process runs until it is killed.
	if err := srv.Start(); err != nil {
		exitError("server error: %v", err)
	}
}
