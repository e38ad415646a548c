package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/bind"
	"github.com/xy-planning-network/trailhead/http/example/basic"
	"github.com/xy-planning-network/trailhead/http/router"
	"github.com/xy-planning-network/trailhead/ranger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "trailhead",
		Short:         "Instructional handlers for binding HTTP requests",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newRoutesCmd())

	return root
}

func newServeCmd() *cobra.Command {
	var env, port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the example handlers until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rng, err := ranger.New(
				ranger.WithContext(cmd.Context()),
				ranger.WithEnv(env),
				ranger.WithPort(port),
			)
			if err != nil {
				return err
			}

			c, err := basic.NewController(rng.EmitLogger(), rng.Responder)
			if err != nil {
				return err
			}

			if err := rng.HandleRoutes(c.Routes()); err != nil {
				return err
			}

			return rng.Guide()
		},
	}

	cmd.Flags().StringVar(&env, "env", "", "environment to run in; overrides ENVIRONMENT")
	cmd.Flags().StringVar(&port, "port", "", "port to listen on; overrides PORT")

	return cmd
}

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the example routes and the parameters each binds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := basic.NewController(nil, nil)
			if err != nil {
				return err
			}

			rt := router.New(trailhead.Testing, nil)
			if err := rt.HandleRoutes(c.Routes()); err != nil {
				return err
			}

			return printRoutes(cmd.OutOrStdout(), rt.Routes())
		},
	}
}

// printRoutes writes one aligned line per route.
func printRoutes(out io.Writer, routes []router.Route) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tPATH\tPARAMS")
	for _, route := range routes {
		method := route.Method
		if method == "" {
			method = "ANY"
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\n", method, route.Path, describeParams(route.Params.Params()))
	}

	return tw.Flush()
}

// describeParams renders params as source:name:kind, marking those not required with a "?".
func describeParams(params []bind.Param) string {
	if len(params) == 0 {
		return "-"
	}

	descs := make([]string, len(params))
	for i, p := range params {
		descs[i] = fmt.Sprintf("%s:%s:%s", p.Source, p.Name, p.Kind)
		if !p.Required {
			descs[i] += "?"
		}

		if p.Default != nil {
			descs[i] += fmt.Sprintf("=%q", *p.Default)
		}
	}

	return strings.Join(descs, " ")
}
