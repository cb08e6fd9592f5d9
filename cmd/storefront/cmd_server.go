package main

import (
	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/config"
)

// storefront serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			config.Set("PORT", port)
		}
		return application().Serve(cmd.Context())
	},
}

// storefront route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return application().RouteList(cmd.OutOrStdout())
	},
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "port to listen on (overrides PORT)")
}
