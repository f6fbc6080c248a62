package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mohsinsiddi/w3mint/internal/config"
	"github.com/Mohsinsiddi/w3mint/internal/mint"
	"github.com/Mohsinsiddi/w3mint/internal/ui"
	"github.com/spf13/cobra"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/Mohsinsiddi/w3mint/cmd.Version=1.2.3" .
var Version = "1.0.0"

var (
	cfgDir  string
	cfg     *config.Config
	logFile string
	verbose bool
	testnet bool
	mainnet bool
)

// rootCmd opens the storefront.
var rootCmd = &cobra.Command{
	Use:   "w3mint",
	Short: "NFT mint storefront for the terminal",
	Long: `w3mint — a single-page NFT mint storefront in your terminal.

  Shows the contract's price, supply and pause flag, checks the allowlist,
  mints through a keychain-backed wallet and lists recently minted tokens.

Environment:
  LAUNCH_TIME        unix seconds or RFC 3339; shows a countdown until then
  BASE_URL           where the snapshot and allowlist API lives (see: w3mint serve)
  W3MINT_CONFIG_DIR  config directory (default: ~/.w3mint)
  W3MINT_CONTRACT    contract address
  W3MINT_NETWORK     chain name (see: w3mint network list)
  W3MINT_ARTIFACT    Hardhat/Foundry artifact or raw ABI (default: built-in mint721)`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config (skip for commands that don't need it).
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg.ApplyEnv(os.Getenv)
		if testnet {
			cfg.NetworkMode = "testnet"
		}
		if mainnet {
			cfg.NetworkMode = "mainnet"
		}
		return nil
	},
	RunE: runStorefront,
}

func runStorefront(cmd *cobra.Command, args []string) error {
	// The TUI owns the terminal, so logs go to a file.
	if logFile == "" {
		logFile = cfg.LogPath()
	}
	log, closeLog, err := fileLogger(logFile)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := dial(ctx, log)
	if err != nil {
		return err
	}

	mgr, err := newWalletManager()
	if err != nil {
		return err
	}

	httpClient := newHTTPClient()
	snapshot := mint.LoadSnapshot(ctx, httpClient, cfg.BaseURL, cfg.Fields)
	if snapshot == nil {
		log.Warn("static contract data unavailable", "base_url", cfg.BaseURL)
	}

	sf := ui.Storefront{
		Title:        fmt.Sprintf("%s on %s", ui.TruncateAddr(d.caller.Address()), d.chain.DisplayName),
		Reader:       mint.NewReader(d.caller, cfg.Fields),
		Checker:      mint.NewChecker(httpClient, cfg.BaseURL),
		Fetcher:      newFetcher(d, httpClient),
		Orchestrator: mint.NewOrchestrator(d.sender, mint.WithLogger(log)),
		Wallets:      mgr,
		Snapshot:     snapshot,
		Gallery:      mint.Range{Start: 1, End: uint64(cfg.GallerySize)},
		TxURL:        func(hash string) string { return d.chain.TxURL(cfg.NetworkMode, hash) },
		Log:          log,
	}
	return ui.RunStorefront(ctx, sf, cfg.LaunchTarget())
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Err(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", os.Getenv(config.EnvConfigDir), "config directory (default: ~/.w3mint)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&testnet, "testnet", false, "use testnet instead of mainnet")
	rootCmd.PersistentFlags().BoolVar(&mainnet, "mainnet", false, "use mainnet instead of testnet")
	rootCmd.MarkFlagsMutuallyExclusive("testnet", "mainnet")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "storefront log file, \"-\" to discard (default: <config>/w3mint.log)")

	// Register all sub-commands.
	rootCmd.AddCommand(
		serveCmd,
		snapshotCmd,
		tokensCmd,
		walletCmd,
		abiCmd,
		networkCmd,
		rpcCmd,
		configCmd,
	)
}
