package cmd

import (
	"fmt"

	"github.com/Mohsinsiddi/w3mint/internal/chain"
	"github.com/Mohsinsiddi/w3mint/internal/ui"
	"github.com/spf13/cobra"
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Manage the network the contract lives on",
}

var networkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported chains",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := chain.NewRegistry()
		t := ui.NewTable([]ui.Column{
			{Title: "Name", Width: 12},
			{Title: "Display", Width: 12},
			{Title: "Chain ID", Width: 10},
			{Title: "Testnet", Width: 14},
			{Title: "Explorer", Width: 32},
		})
		for _, c := range reg.All() {
			name := ui.ChainName(c.Name)
			if c.Name == cfg.Network {
				name = ui.StyleSuccess.Render("▸ " + c.Name)
			}
			t.AddRow(ui.Row{name, c.DisplayName, fmt.Sprintf("%d", c.ChainID), c.TestnetName, ui.Meta(c.MainnetExplorer)})
		}
		fmt.Println(t.Render())
		fmt.Println(ui.Meta(fmt.Sprintf("%d chains, current: %s (%s)", len(reg.All()), cfg.Network, cfg.NetworkMode)))
		return nil
	},
}

var networkUseCmd = &cobra.Command{
	Use:   "use <chain>",
	Short: "Set the network",
	Long: `Set the chain the contract is deployed on and persist it to config.

When combined with --testnet or --mainnet the network mode is also persisted.

Examples:
  w3mint network use base              # keep the current mode
  w3mint network use base --testnet    # Base Sepolia`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		c, err := chain.NewRegistry().GetByName(name)
		if err != nil {
			return fmt.Errorf("unknown chain %q — run `w3mint network list` to see all chains", name)
		}

		cfg.Network = c.Name
		if err := cfg.Save(); err != nil {
			return err
		}

		label := c.DisplayName
		if cfg.NetworkMode == "testnet" {
			label = c.TestnetName
		}
		fmt.Println(ui.Success(fmt.Sprintf("Network set to %s (%s)", ui.ChainName(label), cfg.NetworkMode)))
		return nil
	},
}

func init() {
	networkCmd.AddCommand(networkListCmd, networkUseCmd)
}
