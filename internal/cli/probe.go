package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/canned/canned/internal/probe"
	"github.com/spf13/cobra"
)

var (
	probeURL      string
	probeTimeout  time.Duration
	probeFailFast bool
)

// probeCmd fires concurrent requests at a running server.
var probeCmd = &cobra.Command{
	Use:   "probe [paths...]",
	Short: "Fire concurrent requests and show completion order",
	Long: `Send one GET per path to a running canned server, all at the same
instant, and print the responses in the order they completed.

With no paths, /3 /2 /1 /4 are sent; variant a answers them as /2 /4 /1 /3.

Example:
  canned probe
  canned probe --url http://127.0.0.1:9000 /3 /2`,
	Run: runProbe,
}

func init() {
	probeCmd.Flags().StringVar(&probeURL, "url", "", "server base URL (default from config, http://127.0.0.1:8080)")
	probeCmd.Flags().DurationVar(&probeTimeout, "timeout", 0, "overall timeout (default from config, 5s)")
	probeCmd.Flags().BoolVar(&probeFailFast, "fail-fast", false, "cancel outstanding requests after the first failure")

	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitError("failed to load config: %v", err)
	}

	opts := probe.Options{
		BaseURL: cfg.Probe.URL,
		Paths:   args,
	}
	if cmd.Flags().Changed("url") {
		opts.BaseURL = probeURL
	}
	if cmd.Flags().Changed("timeout") {
		opts.Timeout = probeTimeout
	} else if cfg.Probe.Timeout != "" {
		d, err := time.ParseDuration(cfg.Probe.Timeout)
		if err != nil {
			exitError("invalid probe timeout: %v", err)
		}
		opts.Timeout = d
	}

	opts.FailFast = probeFailFast

	report, err := probe.Run(context.Background(), opts)
	if report == nil {
		exitError("%v", err)
	}

	if !printFormatted(os.Stdout, report) {
		renderProbe(os.Stdout, report)
	}

	if err != nil {
		exitError("%v", err)
	}
}

// renderProbe prints the results in completion order.
func renderProbe(w io.Writer, report *probe.Report) {
	table := newTable(w, []string{"#", "PATH", "STATUS", "BODY", "CONTENT-LENGTH", "LATENCY"})

	for _, res := range report.Results {
		status := strconv.Itoa(res.Status)
		body := fmt.Sprintf("%q", res.Body)
		if res.Error != "" {
			status = "error"
			body = res.Error
		}
		table.Append([]string{
			strconv.Itoa(res.Rank),
			res.Path,
			status,
			body,
			strconv.FormatInt(res.ContentLength, 10),
			res.Latency.Round(time.Millisecond).String(),
		})
	}

	table.Render()
	fmt.Fprintf(w, "\n%d requests to %s in %s\n", len(report.Results), report.BaseURL, report.Total.Round(time.Millisecond))
}
