package cmd

import (
	"fmt"
	"strings"

	"github.com/Mohsinsiddi/w3mint/internal/config"
	"github.com/Mohsinsiddi/w3mint/internal/contract"
	"github.com/Mohsinsiddi/w3mint/internal/ui"
	"github.com/spf13/cobra"
)

var abiBuiltins bool

var abiCmd = &cobra.Command{
	Use:   "abi",
	Short: "Show the contract ABI the storefront uses",
	Long: `List the functions of the configured ABI with their selectors, and check
that every read function named in the "fields" config exists.

The ABI comes from artifact_path (or W3MINT_ARTIFACT); without one the
built-in mint721 interface is used.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if abiBuiltins {
			for _, b := range contract.AllBuiltins() {
				fmt.Printf("  %s  %s\n", ui.Val(fmt.Sprintf("%-10s", b.ID)), b.Name)
				fmt.Printf("  %s  %s\n", strings.Repeat(" ", 10), ui.Meta(b.Description))
			}
			return nil
		}

		a, err := loadABI()
		if err != nil {
			return err
		}
		source := cfg.ArtifactPath
		if source == "" {
			source = "built-in " + contract.DefaultMintABI
		}

		fmt.Printf("%s\n", ui.StyleTitle.Render("ABI: "+source))
		fmt.Println(renderFunctions(a, cfg.Fields))

		missing := missingFields(a, cfg.Fields)
		for _, name := range missing {
			fmt.Println(ui.Warn(fmt.Sprintf("read function %q is configured but not in the ABI", name)))
		}
		if len(missing) > 0 {
			fmt.Println(ui.Hint("Map fields to your contract in " + cfg.Dir() + "/config.json under \"fields\"."))
		}
		return nil
	},
}

func renderFunctions(a *contract.ABI, fields config.Fields) string {
	used := make(map[string]bool)
	for _, f := range append(fields.Snapshot(), fields.Paused) {
		used[f] = true
	}

	t := ui.NewTable([]ui.Column{
		{Title: "Selector", Width: 12},
		{Title: "Signature", Width: 34},
		{Title: "Kind", Width: 10},
		{Title: "Field", Width: 6},
	})
	for _, fn := range a.Functions() {
		kind := fn.StateMutability
		if kind == "" {
			kind = "nonpayable"
		}
		mark := ""
		if used[fn.Name] {
			mark = ui.StyleSuccess.Render("✓")
		}
		t.AddRow(ui.Row{ui.Meta(fn.Selector()), ui.Val(fn.Signature()), kind, mark})
	}
	return t.Render()
}

// missingFields lists configured read functions the ABI does not declare.
func missingFields(a *contract.ABI, fields config.Fields) []string {
	var out []string
	for _, name := range append(fields.Snapshot(), fields.Paused) {
		if _, err := a.Function(name); err != nil {
			out = append(out, name)
		}
	}
	return out
}

func init() {
	abiCmd.Flags().BoolVar(&abiBuiltins, "builtins", false, "list the built-in ABIs")
}
