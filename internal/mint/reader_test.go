package mint_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/Mohsinsiddi/w3mint/internal/mint"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func liveContract() *fakeCaller {
	f := newFakeCaller()
	f.results["paused"] = []any{false}
	f.results["totalSupply"] = []any{big.NewInt(40)}
	f.results["ETH_PRICE"] = []any{big.NewInt(10_000_000_000_000_000)}
	f.results["MAX_MINT_COUNT"] = []any{big.NewInt(6)}
	f.results["maxSupply"] = []any{big.NewInt(1000)}
	return f
}

func TestReaderBatch(t *testing.T) {
	f := liveContract()
	r := mint.NewReader(f, defaultFields(t))

	res := r.Read(context.Background(), "paused", "totalSupply")
	require.NoError(t, res.Err)
	assert.Equal(t, false, res.Values["paused"])
	assert.Equal(t, int64(40), res.Values["totalSupply"].(*big.Int).Int64())
}

func TestReaderErrorIsAValue(t *testing.T) {
	f := liveContract()
	f.errs["paused"] = errors.New("header not found")
	r := mint.NewReader(f, defaultFields(t))

	res := r.Read(context.Background(), "paused")
	require.ErrorIs(t, res.Err, mint.ErrContractRead)
	assert.Contains(t, res.Err.Error(), "paused")

	_, err := r.Paused(context.Background())
	assert.ErrorIs(t, err, mint.ErrContractRead)
}

func TestReaderUnknownField(t *testing.T) {
	r := mint.NewReader(liveContract(), defaultFields(t))
	res := r.Read(context.Background(), "nonexistent")
	assert.ErrorIs(t, res.Err, mint.ErrContractRead)
}

func TestReaderIdempotent(t *testing.T) {
	f := liveContract()
	r := mint.NewReader(f, defaultFields(t))

	for i := 0; i < 3; i++ {
		n, err := r.TotalSupply(context.Background())
		require.NoError(t, err)
		assert.Equal(t, uint64(40), n)
	}
	assert.Equal(t, 3, f.count("totalSupply"))
}

func TestReaderPaused(t *testing.T) {
	f := liveContract()
	f.results["paused"] = []any{true}
	paused, err := mint.NewReader(f, defaultFields(t)).Paused(context.Background())
	require.NoError(t, err)
	assert.True(t, paused)
}

func TestReaderSnapshot(t *testing.T) {
	s, err := mint.NewReader(liveContract(), defaultFields(t)).Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.01", mint.FormatEther(s.ETHPrice))
	assert.Equal(t, uint64(6), s.MaxMintCount)
	assert.Equal(t, uint64(40), s.TotalSupply)
	assert.Equal(t, uint64(1000), s.MaxSupply)
}

func TestReaderWrongType(t *testing.T) {
	f := liveContract()
	f.results["totalSupply"] = []any{"forty"}
	_, err := mint.NewReader(f, defaultFields(t)).TotalSupply(context.Background())
	assert.ErrorIs(t, err, mint.ErrContractRead)
}

func TestJSONValue(t *testing.T) {
	assert.Equal(t, "1000", mint.JSONValue(big.NewInt(1000)))
	assert.Equal(t, true, mint.JSONValue(true))
	assert.Equal(t, "18", mint.JSONValue(uint8(18)))
	addr := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", mint.JSONValue(addr))
	assert.Equal(t, "Drop", mint.JSONValue("Drop"))
}
