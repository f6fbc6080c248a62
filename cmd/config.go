package cmd

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Mohsinsiddi/w3mint/internal/config"
	"github.com/Mohsinsiddi/w3mint/internal/contract"
	"github.com/Mohsinsiddi/w3mint/internal/ui"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("%s\n\n", ui.StyleTitle.Render("Current Configuration"))
		fmt.Println(string(data))
		fmt.Println(ui.Meta("Config directory: " + cfg.Dir()))
		if t := cfg.LaunchTarget(); !t.IsZero() {
			fmt.Println(ui.Meta("Launch: " + t.Local().Format(time.RFC1123)))
		}
		return nil
	},
}

var configSetContractCmd = &cobra.Command{
	Use:   "set-contract <address>",
	Short: "Set the NFT contract address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !common.IsHexAddress(args[0]) {
			return fmt.Errorf("invalid contract address %q", args[0])
		}
		cfg.ContractAddress = common.HexToAddress(args[0]).Hex()
		return saveAndReport("Contract", cfg.ContractAddress)
	},
}

var configSetArtifactCmd = &cobra.Command{
	Use:   "set-artifact <path>",
	Short: "Use the ABI from a Hardhat/Foundry artifact (\"\" for the built-in)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] != "" {
			if _, err := contract.LoadFromArtifact(args[0]); err != nil {
				return err
			}
		}
		cfg.ArtifactPath = args[0]
		return saveAndReport("Artifact", args[0])
	},
}

var configSetBaseURLCmd = &cobra.Command{
	Use:   "set-base-url <url>",
	Short: "Set where the snapshot and allowlist API is served",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := url.Parse(args[0])
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid base URL %q (want http(s)://host[:port])", args[0])
		}
		cfg.BaseURL = args[0]
		return saveAndReport("Base URL", args[0])
	},
}

var configSetLaunchTimeCmd = &cobra.Command{
	Use:   "set-launch-time <unix-seconds|RFC3339>",
	Short: "Set the launch time the countdown runs to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := config.ParseLaunchTime(args[0])
		if err != nil {
			return err
		}
		cfg.LaunchTime = args[0]
		return saveAndReport("Launch time", t.Local().Format(time.RFC1123))
	},
}

var configSetGallerySizeCmd = &cobra.Command{
	Use:   "set-gallery-size <n>",
	Short: "Set how many recent tokens the storefront shows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("gallery size must be a positive integer, got %q", args[0])
		}
		cfg.GallerySize = n
		return saveAndReport("Gallery size", args[0])
	},
}

func saveAndReport(what, value string) error {
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Println(ui.Success(fmt.Sprintf("%s set to %s", what, ui.Val(value))))
	return nil
}

func init() {
	configCmd.AddCommand(
		configListCmd,
		configSetContractCmd,
		configSetArtifactCmd,
		configSetBaseURLCmd,
		configSetLaunchTimeCmd,
		configSetGallerySizeCmd,
	)
}
