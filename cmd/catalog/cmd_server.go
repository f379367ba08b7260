package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Kantor012/Product-Catalog/app/controllers"
	"github.com/Kantor012/Product-Catalog/app/routes"
	"github.com/Kantor012/Product-Catalog/internal/server"
	"github.com/Kantor012/Product-Catalog/pkg/router"
)

// catalog serve — start the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// catalog route:list — print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Handlers are registered but never invoked here, so controllers
		// without live services are fine.
		r := router.New()
		routes.RegisterAPI(r, routes.Controllers{
			Products:      controllers.NewProductController(nil),
			Categories:    controllers.NewCategoryController(nil),
			Users:         controllers.NewUserController(nil),
			RecentlyAdded: controllers.NewRecentlyAddedController(nil),
		}, nil)

		infos := r.Routes()
		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
