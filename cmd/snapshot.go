package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Mohsinsiddi/w3mint/internal/mint"
	"github.com/Mohsinsiddi/w3mint/internal/ui"
	"github.com/spf13/cobra"
)

var snapshotLive bool

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Show the contract's price, supply and per-transaction cap",
	Long: `Print the static contract data the storefront starts from.

By default it is fetched from BASE_URL/api/contract-data, exactly as the
storefront does. With --live (or when BASE_URL is unset) the contract is read
directly over RPC.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var (
			snap   *mint.ContractSnapshot
			source string
			err    error
		)
		if cfg.BaseURL != "" && !snapshotLive {
			source = cfg.BaseURL
			snap, err = mint.FetchSnapshot(ctx, newHTTPClient(), cfg.BaseURL, cfg.Fields)
		} else {
			d, derr := dial(ctx, stderrLogger())
			if derr != nil {
				return derr
			}
			source = d.client.URL()
			snap, err = mint.NewReader(d.caller, cfg.Fields).Snapshot(ctx)
		}
		if err != nil {
			return err
		}

		fmt.Println(ui.KeyValueBlock("Contract snapshot", snapshotPairs(snap)))
		fmt.Println(ui.Meta("source: " + source))
		return nil
	},
}

func snapshotPairs(s *mint.ContractSnapshot) [][2]string {
	return [][2]string{
		{"Price", mint.FormatEther(s.ETHPrice) + " ETH"},
		{"Supply", fmt.Sprintf("%d / %d", s.TotalSupply, s.DisplayMaxSupply())},
		{"Per tx", strconv.FormatUint(s.MaxPerTx(), 10)},
	}
}

func init() {
	snapshotCmd.Flags().BoolVar(&snapshotLive, "live", false, "read the contract over RPC instead of BASE_URL")
}
