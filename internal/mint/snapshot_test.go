package mint_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Mohsinsiddi/w3mint/internal/config"
	"github.com/Mohsinsiddi/w3mint/internal/mint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultFields(t *testing.T) config.Fields {
	t.Helper()
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	return cfg.Fields
}

// snapshotServer serves body with status at /api/contract-data/* and records
// the requested path.
func snapshotServer(t *testing.T, status int, body string, gotPath *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotPath != nil {
			*gotPath = r.URL.Path
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body)) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchSnapshotScenario(t *testing.T) {
	var path string
	srv := snapshotServer(t, http.StatusOK,
		`{"ETH_PRICE":"10000000000000000","MAX_MINT_COUNT":6,"totalSupply":40,"maxSupply":"1000"}`, &path)

	s, err := mint.FetchSnapshot(context.Background(), srv.Client(), srv.URL+"/", defaultFields(t))
	require.NoError(t, err)

	assert.Equal(t, "/api/contract-data/ETH_PRICE,MAX_MINT_COUNT,totalSupply,maxSupply", path)
	assert.Equal(t, "0.01", mint.FormatEther(s.ETHPrice))
	assert.Equal(t, uint64(40), s.TotalSupply)
	assert.Equal(t, uint64(5), s.MaxPerTx())
	assert.Equal(t, uint64(999), s.DisplayMaxSupply())
}

func TestFetchSnapshotErrorBody(t *testing.T) {
	srv := snapshotServer(t, http.StatusGatewayTimeout, `{"error":"timeout"}`, nil)

	_, err := mint.FetchSnapshot(context.Background(), srv.Client(), srv.URL, defaultFields(t))
	require.ErrorIs(t, err, mint.ErrDataLoad)
	assert.Contains(t, err.Error(), "timeout")

	assert.Nil(t, mint.LoadSnapshot(context.Background(), srv.Client(), srv.URL, defaultFields(t)))
}

func TestFetchSnapshotErrorBodyWith200(t *testing.T) {
	srv := snapshotServer(t, http.StatusOK, `{"error":"timeout"}`, nil)
	_, err := mint.FetchSnapshot(context.Background(), srv.Client(), srv.URL, defaultFields(t))
	assert.ErrorIs(t, err, mint.ErrDataLoad)
}

func TestFetchSnapshotFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"not json", http.StatusOK, `<html>`},
		{"missing field", http.StatusOK, `{"ETH_PRICE":"1","MAX_MINT_COUNT":6,"totalSupply":1}`},
		{"negative", http.StatusOK, `{"ETH_PRICE":"-1","MAX_MINT_COUNT":6,"totalSupply":1,"maxSupply":2}`},
		{"server error", http.StatusInternalServerError, `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := snapshotServer(t, tt.status, tt.body, nil)
			_, err := mint.FetchSnapshot(context.Background(), srv.Client(), srv.URL, defaultFields(t))
			assert.ErrorIs(t, err, mint.ErrDataLoad)
		})
	}
}

func TestLoadSnapshotWithoutBaseURL(t *testing.T) {
	assert.Nil(t, mint.LoadSnapshot(context.Background(), http.DefaultClient, "", defaultFields(t)))

	_, err := mint.FetchSnapshot(context.Background(), http.DefaultClient, "  ", defaultFields(t))
	assert.ErrorIs(t, err, mint.ErrDataLoad)
}

func TestLoadSnapshotUnreachable(t *testing.T) {
	assert.Nil(t, mint.LoadSnapshot(context.Background(), http.DefaultClient, "http://127.0.0.1:19994", defaultFields(t)))
}
