package cmd

import (
	"context"
	"fmt"
	"slices"

	"github.com/Mohsinsiddi/w3mint/internal/chain"
	"github.com/Mohsinsiddi/w3mint/internal/config"
	"github.com/Mohsinsiddi/w3mint/internal/rpc"
	"github.com/Mohsinsiddi/w3mint/internal/ui"
	"github.com/spf13/cobra"
)

var rpcCmd = &cobra.Command{
	Use:   "rpc",
	Short: "Manage RPC endpoints",
}

var rpcAddCmd = &cobra.Command{
	Use:   "add <chain> <url>",
	Short: "Add a custom RPC URL for a chain",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		chainName, url := args[0], args[1]
		if _, err := chain.NewRegistry().GetByName(chainName); err != nil {
			return fmt.Errorf("unknown chain %q", chainName)
		}
		if err := cfg.AddRPC(chainName, url); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Added RPC for %s: %s", ui.ChainName(chainName), url)))
		return nil
	},
}

var rpcRemoveCmd = &cobra.Command{
	Use:   "remove <chain> <url>",
	Short: "Remove a custom RPC URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		chainName, url := args[0], args[1]
		if err := cfg.RemoveRPC(chainName, url); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Removed RPC for %s: %s", chainName, url)))
		return nil
	},
}

var rpcListCmd = &cobra.Command{
	Use:   "list [chain]",
	Short: "List the RPCs for a chain (default: the configured network)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := chainArg(args)
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", ui.StyleTitle.Render(fmt.Sprintf("RPCs for %s", c.DisplayName)))
		fmt.Println(ui.StyleHeader.Render("Built-in RPCs:"))
		for _, r := range c.MainnetRPCs {
			fmt.Printf("  %s %s\n", ui.Meta("(mainnet)"), r)
		}
		for _, r := range c.TestnetRPCs {
			fmt.Printf("  %s %s\n", ui.Meta("(testnet)"), r)
		}

		if custom := cfg.GetRPCs(c.Name); len(custom) > 0 {
			fmt.Println(ui.StyleHeader.Render("Custom RPCs:"))
			for _, r := range custom {
				fmt.Printf("  %s\n", r)
			}
		}
		return nil
	},
}

var rpcBenchmarkCmd = &cobra.Command{
	Use:   "benchmark [chain]",
	Short: "Benchmark the RPCs for a chain and show which one would be used",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := chainArg(args)
		if err != nil {
			return err
		}
		urls := slices.Concat(cfg.GetRPCs(c.Name), c.RPCs(cfg.NetworkMode))

		ctx, cancel := context.WithTimeout(context.Background(), config.RPCSelectTimeout)
		defer cancel()

		sp := ui.NewSpinner(fmt.Sprintf("Benchmarking %d %s RPC(s)...", len(urls), c.DisplayName))
		sp.Start()
		results := rpc.Benchmark(ctx, urls)
		sp.Stop()

		fmt.Println(renderBenchmark(results))

		algo := rpc.Algorithm(cfg.RPCAlgorithm)
		winner, err := rpc.Pick(algo, results)
		if err != nil {
			fmt.Println(ui.Err(err.Error()))
			return nil
		}
		fmt.Println(ui.Success(fmt.Sprintf("%s would use %s", algo, winner.URL)))
		return nil
	},
}

var rpcAlgorithmCmd = &cobra.Command{
	Use:   "algorithm <fastest|failover>",
	Short: "Set the RPC selection algorithm",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		algo := rpc.Algorithm(args[0])
		switch algo {
		case rpc.AlgorithmFastest, rpc.AlgorithmFailover:
		default:
			return fmt.Errorf("invalid algorithm %q — choose: fastest, failover", algo)
		}
		cfg.RPCAlgorithm = string(algo)
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("RPC algorithm set to %q", algo)))
		return nil
	},
}

// chainArg resolves the optional chain argument, defaulting to the
// configured network.
func chainArg(args []string) (*chain.Chain, error) {
	name := cfg.Network
	if len(args) == 1 {
		name = args[0]
	}
	c, err := chain.NewRegistry().GetByName(name)
	if err != nil {
		return nil, fmt.Errorf("unknown chain %q", name)
	}
	return c, nil
}

func renderBenchmark(results []rpc.Endpoint) string {
	t := ui.NewTable([]ui.Column{
		{Title: "RPC URL", Width: 44},
		{Title: "Latency", Width: 10, Right: true},
		{Title: "Block #", Width: 12, Right: true},
		{Title: "Status", Width: 10},
	})
	for _, r := range results {
		status := ui.Success("healthy")
		latency := fmt.Sprintf("%dms", r.Latency.Milliseconds())
		block := fmt.Sprintf("%d", r.BlockNumber)
		if !r.Healthy() {
			status, latency, block = ui.Err("down"), "—", "—"
		}
		t.AddRow(ui.Row{r.URL, latency, block, status})
	}
	return t.Render()
}

func init() {
	rpcCmd.AddCommand(rpcAddCmd, rpcRemoveCmd, rpcListCmd, rpcBenchmarkCmd, rpcAlgorithmCmd)
}
