package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hashroute/internal/pages"
	"github.com/vango-dev/hashroute/pkg/history"
	"github.com/vango-dev/hashroute/pkg/render"
	"github.com/vango-dev/hashroute/pkg/router"
)

func matchCmd() *cobra.Command {
	var (
		prefix string
		html   bool
	)

	cmd := &cobra.Command{
		Use:   "match <token>",
		Short: "Route a token against the demo route table",
		Long: `Route a token such as '#/about?from=home' against the demo pages and
print the location, whether the default route matched and the params.

  hashroute match '#/about?from=home'
  hashroute match /missing --html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var routeErr error
			h := history.NewMemory(args[0])
			r := router.New(h, router.Config{
				Prefix:  prefix,
				OnError: func(err error) { routeErr = err },
				Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
			})
			r.Mount(pages.Routes(r))
			defer r.Dispose()

			if routeErr != nil {
				return routeErr
			}

			location, _ := r.Location()
			m, err := r.Routes().Match(location)
			if err != nil {
				return err
			}

			success(cmd, "%s", location)
			info(cmd, "default: %t", m.Default)
			info(cmd, "params:  %s", r.Params())
			info(cmd, "token:   %s", h.Token())

			if html {
				out, err := render.NewRenderer(render.RendererConfig{}).RenderToString(r.Render())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", router.DefaultPrefix, "Token prefix")
	cmd.Flags().BoolVar(&html, "html", false, "Also print the rendered HTML")

	return cmd
}
