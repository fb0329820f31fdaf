package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cuiweiyuan/explorer/networks"
	"github.com/cuiweiyuan/explorer/ui"
)

var (
	NetworkConfig string
	NetworkForce  bool
)

// readNetworkConfig accepts either an inline json object or a path to a
// json file.
func readNetworkConfig(raw string) (networks.Network, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "{") && strings.HasSuffix(raw, "}") {
		return networks.NewNetworkFromJSON([]byte(raw))
	}
	content, err := os.ReadFile(raw)
	if err != nil {
		return nil, err
	}
	return networks.NewNetworkFromJSON(content)
}

// addNetwork registers n. When one of its names is taken the user is asked
// before it gets replaced, unless force is set.
func addNetwork(u ui.UI, n networks.Network, force bool) bool {
	allNames := append([]string{n.GetName()}, n.GetAlternativeNames()...)
	taken := []string{}
	for _, name := range allNames {
		if _, err := networks.GetNetwork(name); err == nil {
			taken = append(taken, name)
		}
	}
	if len(taken) > 0 {
		names := strings.Join(taken, ", ")
		if !force && !u.Confirm(fmt.Sprintf("Network with name %s already exists. Replace it?", names), false) {
			u.Error("Network with name %s already exists. Abort. If you want to update the network, use flag --force.", names)
			return false
		}
		u.Warn("Network with name %s already exists. We will replace it with the new network.", names)
	}
	if err := networks.AddNetwork(n); err != nil {
		u.Error("Failed to add the new network: %s", err)
		return false
	}
	u.Success("Network %s added and saved.", n.GetName())
	return true
}

var addNetworkCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new network to the supported networks list locally",
	Long: `--json takes a network config json filepath OR a json string. The json should be in the following format:
	{
		"name": "network_name",
		"alternative_names": ["alternative_name_1"],
		"chain_id": 30,
		"native_token_symbol": "APT",
		"native_token_decimal": 8,
		"node_variable_name": "MY_NETWORK_NODE",
		"default_node_url": "https://fullnode.example.com/v1",
		"indexer_variable_name": "MY_NETWORK_INDEXER",
		"default_indexer_url": "https://indexer.example.com/v1/graphql"
	}`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if strings.TrimSpace(NetworkConfig) == "" {
			appUI.Error("Please pass the network config with --json")
			return
		}
		n, err := readNetworkConfig(NetworkConfig)
		if err != nil {
			appUI.Error("The provided network config is not valid: %s", err)
			return
		}
		addNetwork(appUI, n, NetworkForce)
	},
}

func displayNetworks(u ui.UI, list []networks.Network) {
	rows := [][]string{}
	for _, n := range list {
		chainID := "-"
		if n.GetChainID() != 0 {
			chainID = strconv.FormatUint(n.GetChainID(), 10)
		}
		indexerURL := n.GetIndexerURL()
		if indexerURL == "" {
			indexerURL = "-"
		}
		rows = append(rows, []string{
			n.GetName(),
			strings.Join(n.GetAlternativeNames(), ", "),
			chainID,
			n.GetNodeURL() + " (" + n.GetNodeVariableName() + ")",
			indexerURL,
		})
	}
	u.Table([]string{"Name", "Aliases", "Chain ID", "Node", "Indexer"}, rows)
}

var listNetworkCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all of supported networks",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		displayNetworks(appUI, networks.GetSupportedNetworks())
		appUI.Info("If you want to add more networks to the list, use following command:\n> explorer network add --json <file>")
		appUI.Info("If you want to delete a network, just delete the corresponding json file in ~/.explorer/networks/.")
	},
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Manage all networks that explorer supports",
	Long:  ``,
}

func init() {
	addNetworkCmd.Flags().StringVarP(&NetworkConfig, "json", "j", "", "network config json, inline or as a file path")
	addNetworkCmd.Flags().BoolVarP(&NetworkForce, "force", "f", false, "Replace an existing network without asking")

	networkCmd.AddCommand(listNetworkCmd)
	networkCmd.AddCommand(addNetworkCmd)
	rootCmd.AddCommand(networkCmd)
}
