package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"slices"

	"github.com/Mohsinsiddi/w3mint/internal/chain"
	"github.com/Mohsinsiddi/w3mint/internal/config"
	"github.com/Mohsinsiddi/w3mint/internal/contract"
	"github.com/Mohsinsiddi/w3mint/internal/mint"
	"github.com/Mohsinsiddi/w3mint/internal/rpc"
	"github.com/Mohsinsiddi/w3mint/internal/wallet"
	"github.com/ethereum/go-ethereum/common"
)

// dialed is everything needed to talk to the configured contract.
type dialed struct {
	chain  *chain.Chain
	client *chain.EVMClient
	abi    *contract.ABI
	caller *contract.Caller
	sender *contract.Sender
}

// dial resolves the network, picks a healthy RPC and binds the contract ABI.
func dial(ctx context.Context, log *slog.Logger) (*dialed, error) {
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, fmt.Errorf("no contract configured (got %q)\n  Set one with: w3mint config set-contract <address>\n  Or export %s", cfg.ContractAddress, config.EnvContract)
	}

	c, err := chain.NewRegistry().GetByName(cfg.Network)
	if err != nil {
		return nil, fmt.Errorf("unknown network %q — run `w3mint network list` to see all chains", cfg.Network)
	}

	urls := slices.Concat(cfg.GetRPCs(c.Name), c.RPCs(cfg.NetworkMode))
	sctx, cancel := context.WithTimeout(ctx, config.RPCSelectTimeout)
	defer cancel()
	url, err := rpc.Select(sctx, urls, rpc.Algorithm(cfg.RPCAlgorithm))
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", c.DisplayName, cfg.NetworkMode, err)
	}
	log.Info("rpc selected", "chain", c.Name, "mode", cfg.NetworkMode, "url", url)

	a, err := loadABI()
	if err != nil {
		return nil, err
	}

	client := chain.NewEVMClient(url)
	return &dialed{
		chain:  c,
		client: client,
		abi:    a,
		caller: contract.NewCaller(client, cfg.ContractAddress, a),
		sender: contract.NewSender(client, cfg.ContractAddress, a),
	}, nil
}

// loadABI reads the configured artifact, or the built-in mint ABI.
func loadABI() (*contract.ABI, error) {
	if cfg.ArtifactPath == "" {
		return contract.BuiltinABI(contract.DefaultMintABI)
	}
	a, err := contract.LoadFromArtifact(cfg.ArtifactPath)
	if err != nil {
		return nil, fmt.Errorf("loading ABI: %w", err)
	}
	return a, nil
}

func newFetcher(d *dialed, client *http.Client) *mint.Fetcher {
	return mint.NewFetcher(d.caller, cfg.Fields.TotalSupply, client, cfg.IPFSGateway)
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: config.HTTPTimeout}
}

// newWalletManager opens the wallet store and the OS keychain.
func newWalletManager() (*wallet.Manager, error) {
	keys, err := wallet.OpenKeystore(cfg.Dir())
	if err != nil {
		return nil, err
	}
	store := wallet.NewJSONStore(cfg.WalletsPath())
	return wallet.NewManager(wallet.WithStore(store), wallet.WithKeystore(keys)), nil
}

func logLevel() slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// stderrLogger is used by commands that do not own the terminal.
func stderrLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel()}))
}

// fileLogger appends JSON logs to path. "-" discards them.
func fileLogger(path string) (*slog.Logger, func(), error) {
	if path == "-" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	log := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: logLevel()}))
	return log, func() { _ = f.Close() }, nil
}
