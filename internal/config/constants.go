package config

import "time"

// Timeout constants used across cmd, mint and server packages.
const (
	RPCSelectTimeout = 10 * time.Second // RPC health benchmark
	TxConfirmTimeout = 3 * time.Minute  // mint receipt wait
	HTTPTimeout      = 15 * time.Second // snapshot, allowlist and metadata fetches
)

// Defaults for a fresh config.json.
const (
	DefaultIPFSGateway = "https://ipfs.io/ipfs/"
	DefaultGallerySize = 5
	DefaultServerPort  = 8787
)
