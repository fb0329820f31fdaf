package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cuiweiyuan/explorer/config"
	"github.com/cuiweiyuan/explorer/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve lookups and listings as JSON over HTTP",
	Long: `Start an HTTP server with the routes

	GET /account/{address}
	GET /object/{address}
	GET /transactions?start=
	GET /transactions/latest
	GET /txn/{txnHashOrVersion}
	GET /networks
	GET /metrics

Every route but /networks and /metrics takes ?network=, defaulting to
--network.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		network, err := currentNetwork()
		if err != nil {
			appUI.Error("%s", err)
			return
		}
		s := server.New(server.Options{
			DefaultNetwork:  network,
			Sources:         nodeSourceFor,
			Capabilities:    capabilities,
			MaxMissingChars: config.MaxMissingChars,
			PageLimit:       config.PageLimit,
		})
		appUI.Info("Serving %s on http://%s", network.GetName(), config.ListenAddr)
		if err := s.ListenAndServe(cmd.Context(), config.ListenAddr); err != nil {
			appUI.Error("Server stopped: %s", err)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&config.ListenAddr, config.FlagListen, config.ListenAddr, "address to listen on")
	serveCmd.Flags().Uint64Var(&config.PageLimit, config.FlagLimit, config.PageLimit, "transactions per page")
	serveCmd.Flags().IntVar(&config.MaxMissingChars, config.FlagMaxMissingChars, config.MaxMissingChars, "how many leading hex digits a short address may omit")
	rootCmd.AddCommand(serveCmd)
}
