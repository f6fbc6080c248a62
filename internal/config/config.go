package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

const (
	defaultNetwork   = "ethereum"
	defaultMode      = "mainnet"
	defaultAlgorithm = "fastest"
	defaultBind      = "127.0.0.1"

	configFile    = "config.json"
	walletsFile   = "wallets.json"
	allowlistFile = "allowlist.yaml"
	logFile       = "w3mint.log"
)

// Load reads config from dir (or creates defaults). dir defaults to ~/.w3mint.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".w3mint")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	data, err := os.ReadFile(filepath.Join(dir, configFile))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.configDir = dir
	if cfg.CustomRPCs == nil {
		cfg.CustomRPCs = make(map[string][]string)
	}
	cfg.fillFields()
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// AddRPC adds a custom RPC URL for a chain.
func (c *Config) AddRPC(chain, url string) error {
	if c.CustomRPCs == nil {
		c.CustomRPCs = make(map[string][]string)
	}
	if slices.Contains(c.CustomRPCs[chain], url) {
		return fmt.Errorf("RPC %s already exists for chain %s", url, chain)
	}
	c.CustomRPCs[chain] = append(c.CustomRPCs[chain], url)
	return nil
}

// RemoveRPC removes a custom RPC URL for a chain.
func (c *Config) RemoveRPC(chain, url string) error {
	rpcs := c.CustomRPCs[chain]
	idx := slices.Index(rpcs, url)
	if idx == -1 {
		return fmt.Errorf("RPC %s not found for chain %s", url, chain)
	}
	c.CustomRPCs[chain] = slices.Delete(rpcs, idx, idx+1)
	return nil
}

// GetRPCs returns custom RPCs for a chain.
func (c *Config) GetRPCs(chain string) []string {
	return c.CustomRPCs[chain]
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// WalletsPath is the JSON wallet store inside the config dir.
func (c *Config) WalletsPath() string {
	return filepath.Join(c.configDir, walletsFile)
}

// LogPath is the default storefront log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.configDir, logFile)
}

// AllowlistPath resolves the allowlist file; relative paths are taken from
// the config dir.
func (c *Config) AllowlistPath() string {
	p := c.Server.AllowlistFile
	if p == "" {
		p = allowlistFile
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.configDir, p)
}

// --- helpers ---

func defaults(dir string) *Config {
	cfg := &Config{
		Network:      defaultNetwork,
		NetworkMode:  defaultMode,
		RPCAlgorithm: defaultAlgorithm,
		IPFSGateway:  DefaultIPFSGateway,
		GallerySize:  DefaultGallerySize,
		CustomRPCs:   make(map[string][]string),
		Server: Server{
			Bind:          defaultBind,
			Port:          DefaultServerPort,
			AllowlistFile: allowlistFile,
		},
		configDir: dir,
	}
	cfg.fillFields()
	return cfg
}

// fillFields restores default read-function names a config file left blank.
func (c *Config) fillFields() {
	def := map[*string]string{
		&c.Fields.Price:        "ETH_PRICE",
		&c.Fields.MaxMintCount: "MAX_MINT_COUNT",
		&c.Fields.TotalSupply:  "totalSupply",
		&c.Fields.MaxSupply:    "maxSupply",
		&c.Fields.Paused:       "paused",
	}
	for p, v := range def {
		if *p == "" {
			*p = v
		}
	}
	if c.GallerySize <= 0 {
		c.GallerySize = DefaultGallerySize
	}
	if c.IPFSGateway == "" {
		c.IPFSGateway = DefaultIPFSGateway
	}
}
