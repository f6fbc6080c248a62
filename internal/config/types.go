package config

// Config holds all w3mint configuration.
type Config struct {
	Network         string              `json:"network"`
	NetworkMode     string              `json:"network_mode"`  // "mainnet" | "testnet"
	RPCAlgorithm    string              `json:"rpc_algorithm"` // "fastest" | "failover"
	CustomRPCs      map[string][]string `json:"custom_rpcs"`
	ContractAddress string              `json:"contract_address"`
	ArtifactPath    string              `json:"artifact_path,omitempty"` // empty = built-in mint ABI
	DefaultWallet   string              `json:"default_wallet"`
	BaseURL         string              `json:"base_url"`
	LaunchTime      string              `json:"launch_time,omitempty"` // unix seconds or RFC 3339
	IPFSGateway     string              `json:"ipfs_gateway"`
	GallerySize     int                 `json:"gallery_size"`
	Fields          Fields              `json:"fields"`
	Server          Server              `json:"server"`

	// internal: config dir path used for Save()
	configDir string
}

// Fields maps snapshot keys to the contract's read functions.
type Fields struct {
	Price        string `json:"price"`
	MaxMintCount string `json:"max_mint_count"`
	TotalSupply  string `json:"total_supply"`
	MaxSupply    string `json:"max_supply"`
	Paused       string `json:"paused"`
}

// Snapshot returns the fields served by the snapshot endpoint, in order.
func (f Fields) Snapshot() []string {
	return []string{f.Price, f.MaxMintCount, f.TotalSupply, f.MaxSupply}
}

// Server configures `w3mint serve`.
type Server struct {
	Bind          string `json:"bind"`
	Port          int    `json:"port"`
	AllowlistFile string `json:"allowlist_file"`
}
