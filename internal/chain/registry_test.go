package chain_test

import (
	"testing"

	"github.com/Mohsinsiddi/w3mint/internal/chain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGetByName(t *testing.T) {
	registry := chain.NewRegistry()

	tests := []struct {
		name    string
		chainID int64
	}{
		{"ethereum", 1},
		{"base", 8453},
		{"polygon", 137},
		{"arbitrum", 42161},
		{"optimism", 10},
		{"localhost", 31337},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := registry.GetByName(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.name, c.Name)
			assert.Equal(t, tt.chainID, c.ChainID)
		})
	}
}

func TestRegistryGetByNameCaseInsensitive(t *testing.T) {
	c, err := chain.NewRegistry().GetByName("Ethereum")
	require.NoError(t, err)
	assert.Equal(t, "ethereum", c.Name)
}

func TestRegistryGetUnknownChain(t *testing.T) {
	_, err := chain.NewRegistry().GetByName("unknownchain")
	assert.ErrorIs(t, err, chain.ErrChainNotFound)
}

func TestAllChainsHaveRPC(t *testing.T) {
	for _, c := range chain.NewRegistry().All() {
		t.Run(c.Name, func(t *testing.T) {
			assert.NotEmpty(t, c.MainnetRPCs, "chain %s has no mainnet RPCs", c.Name)
			assert.NotEmpty(t, c.TestnetRPCs, "chain %s has no testnet RPCs", c.Name)
		})
	}
}

func TestTxURL(t *testing.T) {
	c, err := chain.NewRegistry().GetByName("ethereum")
	require.NoError(t, err)

	assert.Equal(t, "https://etherscan.io/tx/0xabc", c.TxURL("mainnet", "0xabc"))
	assert.Equal(t, "https://sepolia.etherscan.io/tx/0xabc", c.TxURL("testnet", "0xabc"))
	assert.Empty(t, c.TxURL("mainnet", ""))

	local, err := chain.NewRegistry().GetByName("localhost")
	require.NoError(t, err)
	assert.Empty(t, local.TxURL("mainnet", "0xabc"), "no explorer for local node")
}
