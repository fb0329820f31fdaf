// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cuiweiyuan/explorer/config"
	"github.com/cuiweiyuan/explorer/networks"
	"github.com/cuiweiyuan/explorer/ui"
)

var appUI ui.UI = ui.NewTerminalUI()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "explorer",
	Short: "Look up accounts, objects and transactions on an Aptos network",
	Long: `Explorer is a command line client for an Aptos fullnode. It tells whether an
address is an account, an object or nothing at all, pages through the
transaction history and looks up single transactions by hash or version.

Addresses may be given in short form (0x1) or as a label from the address
book (~/.explorer/addresses.json). Every command runs against the network
chosen with --network, mainnet by default. Each network reads its node url
from an env var, see "explorer network list".

Settings not passed as flags are read from ~/.explorer/config.yaml, or from
the file given with --config.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFile(config.ConfigPath)
		if err != nil {
			return err
		}
		return cfg.Apply(cmd.Flags().Changed)
	},
}

// currentNetwork is the network selected by --network or the config file.
func currentNetwork() (networks.Network, error) {
	n, err := networks.GetNetwork(config.Network)
	if err != nil {
		return nil, fmt.Errorf("unsupported network %q, see \"explorer network list\"", config.Network)
	}
	return n, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&config.Network, config.FlagNetwork, "k", config.DefaultNetwork, "network to explore, e.g. mainnet, testnet, devnet or local")
	rootCmd.PersistentFlags().StringVar(&config.ConfigPath, "config", "", "config file (default ~/.explorer/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&config.JSONOutputFile, "json-output", "o", "", "also write the result as json to this file")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		appUI.Error("%s", err)
		os.Exit(1)
	}
}
