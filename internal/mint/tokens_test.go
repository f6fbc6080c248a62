package mint_test

import (
	"context"
	"math"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Mohsinsiddi/w3mint/internal/mint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// metadataServer serves {"name":"Token #N","image":"ipfs://img/N.png"} at /meta/N.
func metadataServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/meta/")
		if id == "broken" {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"Token #` + id + `","image":"ipfs://img/` + id + `.png"}`)) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	return srv
}

func collection(t *testing.T, supply int64, meta *httptest.Server) *fakeCaller {
	t.Helper()
	f := newFakeCaller()
	f.results["totalSupply"] = []any{big.NewInt(supply)}
	for id := int64(1); id <= supply; id++ {
		f.uris[uint64(id)] = meta.URL + "/meta/" + big.NewInt(id).String()
	}
	return f
}

func ids(tokens []mint.TokenPreview) []uint64 {
	out := make([]uint64, len(tokens))
	for i, tk := range tokens {
		out[i] = tk.ID
	}
	return out
}

func TestFetchInclusiveRange(t *testing.T) {
	meta := metadataServer(t)
	f := mint.NewFetcher(collection(t, 40, meta), "totalSupply", meta.Client(), "https://gw.example/ipfs/")

	tokens, err := f.Fetch(context.Background(), mint.Range{Start: 1, End: 5})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3, 4, 5}, ids(tokens))

	assert.Equal(t, "Token #1", tokens[0].Name)
	assert.Equal(t, "https://gw.example/ipfs/img/1.png", tokens[0].Image)
	assert.Equal(t, meta.URL+"/meta/1", tokens[0].URI)
}

func TestFetchReverseSameSet(t *testing.T) {
	meta := metadataServer(t)
	f := mint.NewFetcher(collection(t, 40, meta), "totalSupply", meta.Client(), "")

	tokens, err := f.Fetch(context.Background(), mint.Range{Start: 1, End: 5, Reverse: true})
	require.NoError(t, err)
	assert.Equal(t, []uint64{5, 4, 3, 2, 1}, ids(tokens))
}

func TestFetchClampedToSupply(t *testing.T) {
	meta := metadataServer(t)
	f := mint.NewFetcher(collection(t, 3, meta), "totalSupply", meta.Client(), "")

	tokens, err := f.Fetch(context.Background(), mint.Range{Start: 0, End: 5})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, ids(tokens))
}

func TestFetchEmptyCollection(t *testing.T) {
	meta := metadataServer(t)
	caller := collection(t, 0, meta)
	f := mint.NewFetcher(caller, "totalSupply", meta.Client(), "")

	tokens, err := f.Fetch(context.Background(), mint.Range{Start: 1, End: 5})
	require.NoError(t, err)
	assert.NotNil(t, tokens)
	assert.Empty(t, tokens)
	assert.Zero(t, caller.count("tokenURI"))
}

func TestFetchWindowAtMaxID(t *testing.T) {
	meta := metadataServer(t)
	caller := newFakeCaller()
	caller.results["totalSupply"] = []any{new(big.Int).SetUint64(math.MaxUint64)}
	for _, id := range []uint64{math.MaxUint64 - 1, math.MaxUint64} {
		caller.uris[id] = meta.URL + "/meta/x"
	}
	f := mint.NewFetcher(caller, "totalSupply", meta.Client(), "")

	tokens, err := f.Fetch(context.Background(), mint.Range{Start: math.MaxUint64 - 1, End: math.MaxUint64, Reverse: true})
	require.NoError(t, err)
	assert.Equal(t, []uint64{math.MaxUint64, math.MaxUint64 - 1}, ids(tokens))
}

func TestFetchInvalidRange(t *testing.T) {
	meta := metadataServer(t)
	f := mint.NewFetcher(collection(t, 10, meta), "totalSupply", meta.Client(), "")

	_, err := f.Fetch(context.Background(), mint.Range{Start: 5, End: 1})
	assert.ErrorIs(t, err, mint.ErrInvalidRange)
}

func TestFetchMetadataFailureKeepsToken(t *testing.T) {
	meta := metadataServer(t)
	caller := collection(t, 2, meta)
	caller.uris[2] = meta.URL + "/meta/broken"
	f := mint.NewFetcher(caller, "totalSupply", meta.Client(), "")

	tokens, err := f.Fetch(context.Background(), mint.Range{Start: 1, End: 2})
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Empty(t, tokens[1].Name)
	assert.Equal(t, meta.URL+"/meta/broken", tokens[1].URI)
}

func TestFetchSupplyReadError(t *testing.T) {
	caller := newFakeCaller()
	f := mint.NewFetcher(caller, "totalSupply", http.DefaultClient, "")

	_, err := f.Fetch(context.Background(), mint.Range{Start: 1, End: 5})
	assert.ErrorIs(t, err, mint.ErrContractRead)
}

func TestResolveURI(t *testing.T) {
	gw := "https://ipfs.io/ipfs/"
	assert.Equal(t, "https://ipfs.io/ipfs/bafy/1.json", mint.ResolveURI("ipfs://bafy/1.json", gw))
	assert.Equal(t, "https://ipfs.io/ipfs/bafy/1.json", mint.ResolveURI("ipfs://ipfs/bafy/1.json", gw))
	assert.Equal(t, "https://cdn.example/1.json", mint.ResolveURI("https://cdn.example/1.json", gw))
	assert.Equal(t, "ipfs://bafy", mint.ResolveURI("ipfs://bafy", ""))
}
