package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hashroute/pkg/query"
)

func decodeCmd() *cobra.Command {
	var (
		debug  bool
		encode bool
	)

	cmd := &cobra.Command{
		Use:   "decode <query-string>",
		Short: "Decode a query string into its parameter tree",
		Long: `Decode a query string with the router's bracket rules and print the
result as JSON.

  hashroute decode 'foo[]=1&foo[]=2'
  hashroute decode 'sort[field]=name&sort[dir]=asc' --debug`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := query.Decode(strings.TrimPrefix(args[0], "?"))
			out := cmd.OutOrStdout()

			switch {
			case debug:
				fmt.Fprintln(out, params.String())
			case encode:
				fmt.Fprintln(out, query.Encode(params))
			default:
				data, err := json.MarshalIndent(params, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Print the compact debug form instead of JSON")
	cmd.Flags().BoolVar(&encode, "encode", false, "Print the canonical re-encoding")
	cmd.MarkFlagsMutuallyExclusive("debug", "encode")

	return cmd
}
