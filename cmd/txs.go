package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuiweiyuan/explorer/config"
	"github.com/cuiweiyuan/explorer/networks"
	"github.com/cuiweiyuan/explorer/txlist"
	"github.com/cuiweiyuan/explorer/ui"
	"github.com/cuiweiyuan/explorer/util"
	"github.com/cuiweiyuan/explorer/util/monitor"
)

func listTransactions(ctx context.Context, u ui.UI, network networks.Network, start *uint64) (*txlist.Page, error) {
	orch := txlist.NewOrchestrator(network.GetName(), nodeSourceFor(network), config.PageLimit)
	stop := u.Spinner("Loading transactions")
	page, err := orch.Load(ctx, start)
	stop()
	if err != nil {
		return nil, err
	}
	util.DisplayPage(u, page)
	return page, nil
}

// browseTransactions opens a listing session and reads navigation commands
// until the user quits or input ends.
func browseTransactions(ctx context.Context, u ui.UI, network networks.Network, start *uint64) error {
	src := nodeSourceFor(network)
	orch := txlist.NewOrchestrator(network.GetName(), src, config.PageLimit)
	sess := txlist.NewSession(orch, monitor.NewLedgerMonitor(network.GetName(), src, config.PollInterval))
	defer sess.Close()

	page, err := sess.Open(ctx, start)
	if err != nil {
		return err
	}
	util.DisplayPage(u, page)

	for {
		nav := util.PromptNavigation(u)

		var next *txlist.Page
		switch {
		case nav.Quit:
			return nil
		case nav.Reload:
			s := sess.Current().Descriptor.Window.Start
			next, err = sess.Navigate(ctx, &s)
		case nav.Item != "":
			next, err = sess.Follow(ctx, nav.Item)
		default:
			next, err = sess.GoToPage(ctx, nav.Page)
		}
		if err != nil {
			util.DisplayError(u, err)
			continue
		}
		util.DisplayPage(u, next)
	}
}

var txsCmd = &cobra.Command{
	Use:   "txs",
	Short: "List transactions, newest first page by default",
	Long: fmt.Sprintf(`List %d transactions per page. --start picks the first version of the
page. With --interactive the listing stays open and is navigated from the
prompt while the ledger is polled in the background.`, txlist.MainLimit),
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		network, err := currentNetwork()
		if err != nil {
			appUI.Error("%s", err)
			return
		}
		start, err := txlist.ParseStart(config.Start)
		if err != nil {
			util.DisplayError(appUI, err)
			return
		}

		if config.Interactive {
			if err := browseTransactions(cmd.Context(), appUI, network, start); err != nil {
				util.DisplayError(appUI, err)
			}
			return
		}
		page, err := listTransactions(cmd.Context(), appUI, network, start)
		if err != nil {
			util.DisplayError(appUI, err)
			return
		}
		writeJSONOutput(appUI, page)
	},
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: fmt.Sprintf("Show the %d latest transactions", txlist.PreviewLimit),
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		network, err := currentNetwork()
		if err != nil {
			appUI.Error("%s", err)
			return
		}
		orch := txlist.NewOrchestrator(network.GetName(), nodeSourceFor(network), config.PageLimit)
		txs, err := orch.Preview(cmd.Context())
		if err != nil {
			util.DisplayError(appUI, err)
			return
		}
		appUI.Section(network.GetName() + ": latest transactions")
		util.DisplayTransactions(appUI, txs)
		writeJSONOutput(appUI, txs)
	},
}

var txnCmd = &cobra.Command{
	Use:   "txn [hash or version]",
	Short: "Show one transaction",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		network, err := currentNetwork()
		if err != nil {
			appUI.Error("%s", err)
			return
		}
		tx, err := txlist.LookupTransaction(cmd.Context(), nodeSourceFor(network), args[0])
		if err != nil {
			util.DisplayError(appUI, err)
			return
		}
		util.DisplayTransaction(appUI, tx)
		writeJSONOutput(appUI, tx)
	},
}

func init() {
	txsCmd.Flags().StringVarP(&config.Start, "start", "s", "", "first version of the page")
	txsCmd.Flags().Uint64VarP(&config.PageLimit, config.FlagLimit, "l", config.PageLimit, "transactions per page")
	txsCmd.Flags().BoolVarP(&config.Interactive, "interactive", "i", false, "keep the listing open and navigate it")
	txsCmd.Flags().DurationVar(&config.PollInterval, config.FlagPollInterval, config.PollInterval, "ledger poll interval in interactive mode")

	rootCmd.AddCommand(txsCmd)
	rootCmd.AddCommand(latestCmd)
	rootCmd.AddCommand(txnCmd)
}
