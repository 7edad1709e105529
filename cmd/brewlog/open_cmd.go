package main

import (
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/raphi011/brewlog/internal/config"
	"github.com/raphi011/brewlog/internal/log"
	"github.com/raphi011/brewlog/internal/output"
)

// openURL is replaced in tests.
var openURL = browser.OpenURL

func newOpenCmd() *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:     "open [path]",
		Short:   "Open the web app in the browser",
		GroupID: GroupUtility,
		Args:    cobra.MaximumNArgs(1),
		Example: `  brewlog open
  brewlog open /coffees/12
  brewlog open --print`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			target := webURL(cfg.Web.URL, path)

			if printOnly {
				out.Println(target)
				return nil
			}
			l.Printf("Opening %s\n", target)
			return openURL(target)
		},
	}

	cmd.Flags().BoolVarP(&printOnly, "print", "p", false, "Print the URL instead of opening it")

	return cmd
}

// webURL joins a path onto the web front end's base URL.
func webURL(base, path string) string {
	base = strings.TrimRight(base, "/")
	if base == "" {
		base = strings.TrimRight(config.DefaultWebURL, "/")
	}
	path = strings.TrimLeft(path, "/")
	if path == "" {
		return base
	}
	return base + "/" + path
}
