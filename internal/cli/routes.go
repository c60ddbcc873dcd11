package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/canned/canned/internal/responses"
	"github.com/spf13/cobra"
)

var routesVariant string

// routesCmd lists the response tables.
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Show the response tables",
	Long:  `Show the canned responses of every variant, or of one with --variant.`,
	Run:   runRoutes,
}

func init() {
	routesCmd.Flags().StringVar(&routesVariant, "variant", "", "only show this variant (a, b or c)")

	rootCmd.AddCommand(routesCmd)
}

// routeView is the printable form of one variant's table.
type routeView struct {
	Variant       responses.Variant `json:"variant" yaml:"variant"`
	WaitForBody   bool              `json:"wait_for_body" yaml:"wait_for_body"`
	ContentLength int               `json:"content_length" yaml:"content_length"`
	Entries       []responses.Entry `json:"entries" yaml:"entries"`
	Fallback      string            `json:"fallback" yaml:"fallback"`
}

func runRoutes(cmd *cobra.Command, args []string) {
	variants := responses.Variants
	if routesVariant != "" {
		v, err := responses.ParseVariant(routesVariant)
		if err != nil {
			exitError("%v", err)
		}
		variants = []responses.Variant{v}
	}

	views, err := buildRouteViews(variants)
	if err != nil {
		exitError("%v", err)
	}

	if printFormatted(os.Stdout, views) {
		return
	}
	renderRoutes(os.Stdout, views)
}

func buildRouteViews(variants []responses.Variant) ([]routeView, error) {
	views := make([]routeView, 0, len(variants))
	for _, v := range variants {
		table, err := responses.ForVariant(v)
		if err != nil {
			return nil, err
		}
		views = append(views, routeView{
			Variant:       v,
			WaitForBody:   table.WaitForBody(),
			ContentLength: table.ContentLength(),
			Entries:       table.Entries(),
			Fallback:      table.Fallback(),
		})
	}
	return views, nil
}

// renderRoutes prints one row per entry plus a catch-all row per variant.
func renderRoutes(w io.Writer, views []routeView) {
	table := newTable(w, []string{"VARIANT", "PATH", "BODY", "DELAY", "CONTENT-LENGTH", "WAIT FOR BODY"})

	for _, view := range views {
		wait := strconv.FormatBool(view.WaitForBody)
		cl := strconv.Itoa(view.ContentLength)
		for _, e := range view.Entries {
			table.Append([]string{string(view.Variant), e.Path, fmt.Sprintf("%q", e.Body), e.Delay.String(), cl, wait})
		}
		table.Append([]string{string(view.Variant), "*", fmt.Sprintf("%q", view.Fallback), "0s", cl, wait})
	}

	table.Render()
}
