package cmd

import (
	"context"
	"fmt"

	"github.com/Mohsinsiddi/w3mint/internal/mint"
	"github.com/Mohsinsiddi/w3mint/internal/ui"
	"github.com/spf13/cobra"
)

var (
	tokensStart   uint64
	tokensEnd     uint64
	tokensReverse bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "List minted tokens with their metadata",
	Long: `List minted token ids start..end (both inclusive), clamped to the
current total supply, with the name and image from each token's metadata.

Examples:
  w3mint tokens                     # the first gallery_size tokens
  w3mint tokens --start 10 --end 20
  w3mint tokens --end 5 --reverse   # 5, 4, 3, 2, 1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		d, err := dial(ctx, stderrLogger())
		if err != nil {
			return err
		}

		r := tokenRange(cmd.Flags().Changed("end"))
		sp := ui.NewSpinner(fmt.Sprintf("Reading tokens %d..%d", r.Start, r.End))
		sp.Start()
		tokens, err := newFetcher(d, newHTTPClient()).Fetch(ctx, r)
		sp.Stop()
		if err != nil {
			return err
		}

		if len(tokens) == 0 {
			fmt.Println(ui.Info("No tokens minted yet."))
			return nil
		}
		fmt.Println(renderTokens(tokens))
		fmt.Println(ui.Meta(fmt.Sprintf("%d token(s)", len(tokens))))
		return nil
	},
}

// tokenRange applies the default window when --end is not given.
func tokenRange(endSet bool) mint.Range {
	r := mint.Range{Start: tokensStart, End: tokensEnd, Reverse: tokensReverse}
	if r.Start == 0 {
		r.Start = 1
	}
	if !endSet {
		r.End = r.Start + uint64(cfg.GallerySize) - 1
	}
	return r
}

func renderTokens(tokens []mint.TokenPreview) string {
	t := ui.NewTable([]ui.Column{
		{Title: "#", Width: 7, Right: true},
		{Title: "Name", Width: 24},
		{Title: "Image", Width: 56},
	})
	for _, tk := range tokens {
		name := tk.Name
		if name == "" {
			name = ui.Meta(tk.URI)
		}
		t.AddRow(ui.Row{fmt.Sprintf("%d", tk.ID), ui.Val(name), tk.Image})
	}
	return t.Render()
}

func init() {
	tokensCmd.Flags().Uint64Var(&tokensStart, "start", 1, "first token id")
	tokensCmd.Flags().Uint64Var(&tokensEnd, "end", 0, "last token id, inclusive (default: start + gallery_size - 1)")
	tokensCmd.Flags().BoolVar(&tokensReverse, "reverse", false, "list from end down to start")
}
