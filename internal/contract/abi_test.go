package contract_test

import (
	"encoding/hex"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/Mohsinsiddi/w3mint/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalABI = `[
  {"type":"function","name":"totalSupply","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
  {"type":"function","name":"mint","inputs":[{"name":"quantity","type":"uint256"}],"outputs":[],"stateMutability":"payable"}
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSelectorKnownValues(t *testing.T) {
	tests := []struct {
		entry contract.ABIEntry
		want  string
	}{
		{contract.ABIEntry{Name: "totalSupply", Type: "function"}, "0x18160ddd"},
		{contract.ABIEntry{Name: "mint", Type: "function", Inputs: []contract.ABIParam{{Type: "uint256"}}}, "0xa0712d68"},
		{contract.ABIEntry{Name: "tokenURI", Type: "function", Inputs: []contract.ABIParam{{Type: "uint256"}}}, "0xc87b56dd"},
		{contract.ABIEntry{Name: "balanceOf", Type: "function", Inputs: []contract.ABIParam{{Type: "address"}}}, "0x70a08231"},
	}
	for _, tt := range tests {
		t.Run(tt.entry.Signature(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.Selector())
		})
	}
}

func TestEntryKinds(t *testing.T) {
	view := contract.ABIEntry{Type: "function", StateMutability: "view"}
	payable := contract.ABIEntry{Type: "function", StateMutability: "payable"}
	event := contract.ABIEntry{Type: "event"}

	assert.True(t, view.IsReadFunction())
	assert.False(t, view.IsWriteFunction())
	assert.True(t, payable.IsWriteFunction())
	assert.True(t, payable.IsPayable())
	assert.False(t, event.IsReadFunction())
	assert.False(t, event.IsWriteFunction())
}

func TestLoadFromArtifactRawArray(t *testing.T) {
	a, err := contract.LoadFromArtifact(writeFile(t, "abi.json", minimalABI))
	require.NoError(t, err)
	assert.Len(t, a.Functions(), 2)
}

func TestLoadFromArtifactHardhat(t *testing.T) {
	artifact := `{"contractName":"Drop","abi":` + minimalABI + `,"bytecode":"0x6080"}`
	a, err := contract.LoadFromArtifact(writeFile(t, "Drop.json", artifact))
	require.NoError(t, err)

	fn, err := a.Function("mint")
	require.NoError(t, err)
	assert.True(t, fn.IsPayable())
}

func TestLoadFromArtifactErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"empty", "  ", "empty"},
		{"object without abi", `{"bytecode":"0x00"}`, "JSON object"},
		{"garbage", `not json`, "invalid ABI JSON"},
		{"no functions", `[{"type":"fallback","stateMutability":"payable"}]`, "none are functions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := contract.LoadFromArtifact(writeFile(t, "x.json", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFromArtifactMissingFile(t *testing.T) {
	_, err := contract.LoadFromArtifact(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestFunctionNotFound(t *testing.T) {
	a, err := contract.ParseABI([]byte(minimalABI))
	require.NoError(t, err)

	_, err = a.Function("burn")
	assert.ErrorIs(t, err, contract.ErrFunctionNotFound)
}

func TestPackMint(t *testing.T) {
	a, err := contract.ParseABI([]byte(minimalABI))
	require.NoError(t, err)

	data, err := a.Pack("mint", big.NewInt(3))
	require.NoError(t, err)
	require.Len(t, data, 36)
	assert.Equal(t, "a0712d68", hex.EncodeToString(data[:4]))
	assert.Equal(t, byte(3), data[35])
}

func TestBuiltinMintABI(t *testing.T) {
	b, ok := contract.GetBuiltin(contract.DefaultMintABI)
	require.True(t, ok)
	assert.NotEmpty(t, b.Description)

	a, err := contract.BuiltinABI(contract.DefaultMintABI)
	require.NoError(t, err)
	for _, name := range []string{"paused", "totalSupply", "maxSupply", "ETH_PRICE", "MAX_MINT_COUNT", "tokenURI"} {
		fn, err := a.Function(name)
		require.NoError(t, err, name)
		assert.True(t, fn.IsReadFunction(), name)
	}
	mint, err := a.Function("mint")
	require.NoError(t, err)
	assert.True(t, mint.IsPayable())
}

func TestBuiltinUnknown(t *testing.T) {
	_, err := contract.BuiltinABI("nope")
	assert.Error(t, err)

	ids := []string{}
	for _, b := range contract.AllBuiltins() {
		ids = append(ids, b.ID)
	}
	assert.Contains(t, ids, contract.DefaultMintABI)
}
