package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cuiweiyuan/explorer/config"
	"github.com/cuiweiyuan/explorer/networks"
	"github.com/cuiweiyuan/explorer/resolver"
	"github.com/cuiweiyuan/explorer/server"
	"github.com/cuiweiyuan/explorer/ui"
	"github.com/cuiweiyuan/explorer/util"
	"github.com/cuiweiyuan/explorer/util/addrbook"
	"github.com/cuiweiyuan/explorer/util/indexer"
)

// addressBook labels addresses and turns labels typed by the user back
// into addresses.
type addressBook interface {
	addrbook.AddressResolver
	Expand(input string) string
}

var (
	nodeSourceFor = server.DefaultNodeSource
	capabilities  = indexer.NewCapabilities()
)

var newAddressBook = func() addressBook {
	return addrbook.NewDefault(nil)
}

// lookup resolves raw on network as seen through mode and shows the result.
// An account lookup that turns out to be an object is followed to the
// object view once.
func lookup(ctx context.Context, u ui.UI, network networks.Network, raw string, mode resolver.ViewMode) (*resolver.Resolution, error) {
	book := newAddressBook()
	src := nodeSourceFor(network)
	rv := resolver.NewResolver(func(networks.Network) resolver.Source { return src }, config.MaxMissingChars)

	stop := u.Spinner("Looking up " + raw)
	res, err := rv.Resolve(ctx, network, book.Expand(raw), mode)
	stop()
	if err != nil {
		return nil, err
	}

	if res.Redirect != "" {
		u.Info("%s has no account but holds an object, switching to %s", res.Address.Short(), res.Redirect)
		stop = u.Spinner("Looking up object " + res.Address.Short())
		res, err = rv.Resolve(ctx, network, res.Address.String(), resolver.ObjectView)
		stop()
		if err != nil {
			return nil, err
		}
	}

	tabs := resolver.Tabs(res.Kind, capabilities.ExtendedQuery(ctx, network))
	util.DisplayResolution(u, res, book.Resolve(res.Address), tabs)
	return res, nil
}

func lookupCommand(mode resolver.ViewMode) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		network, err := currentNetwork()
		if err != nil {
			appUI.Error("%s", err)
			return
		}
		res, err := lookup(cmd.Context(), appUI, network, args[0], mode)
		if err != nil {
			util.DisplayError(appUI, err)
			return
		}
		writeJSONOutput(appUI, res)
	}
}

var accountCmd = &cobra.Command{
	Use:   "account [address or label]",
	Short: "Show the account at an address, or the object living there",
	Long: `Probe an address for both an account and an object. When only an object
exists the object is shown instead.`,
	Args: cobra.ExactArgs(1),
	Run:  lookupCommand(resolver.AccountView),
}

var objectCmd = &cobra.Command{
	Use:   "object [address or label]",
	Short: "Show the object at an address",
	Args:  cobra.ExactArgs(1),
	Run:   lookupCommand(resolver.ObjectView),
}

func init() {
	for _, c := range []*cobra.Command{accountCmd, objectCmd} {
		c.Flags().IntVar(&config.MaxMissingChars, config.FlagMaxMissingChars, config.MaxMissingChars, "how many leading hex digits a short address may omit")
		rootCmd.AddCommand(c)
	}
}
