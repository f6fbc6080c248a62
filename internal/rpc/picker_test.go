package rpc_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Mohsinsiddi/w3mint/internal/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ep(url string, latency time.Duration, block uint64, healthy bool) rpc.Endpoint {
	e := rpc.Endpoint{URL: url, Latency: latency, BlockNumber: block}
	if !healthy {
		e.Err = errors.New("connection refused")
	}
	return e
}

func TestPickFastest(t *testing.T) {
	winner, err := rpc.Pick(rpc.AlgorithmFastest, []rpc.Endpoint{
		ep("http://slow.rpc", 200*time.Millisecond, 100, true),
		ep("http://fast.rpc", 30*time.Millisecond, 100, true),
		ep("http://medium.rpc", 80*time.Millisecond, 100, true),
	})
	require.NoError(t, err)
	assert.Equal(t, "http://fast.rpc", winner.URL)
}

func TestPickDiscardsStaleNodes(t *testing.T) {
	winner, err := rpc.Pick(rpc.AlgorithmFastest, []rpc.Endpoint{
		ep("http://fresh.rpc", 50*time.Millisecond, 1000, true),
		ep("http://stale.rpc", 10*time.Millisecond, 990, true),
	})
	require.NoError(t, err)
	assert.Equal(t, "http://fresh.rpc", winner.URL, "stale node should be discarded even if faster")
}

func TestPickSkipsUnhealthy(t *testing.T) {
	winner, err := rpc.Pick(rpc.AlgorithmFastest, []rpc.Endpoint{
		ep("http://down.rpc", time.Millisecond, 0, false),
		ep("http://up.rpc", 90*time.Millisecond, 50, true),
	})
	require.NoError(t, err)
	assert.Equal(t, "http://up.rpc", winner.URL)
}

func TestPickFailover(t *testing.T) {
	winner, err := rpc.Pick(rpc.AlgorithmFailover, []rpc.Endpoint{
		ep("http://primary", 0, 100, false),
		ep("http://secondary", 0, 100, true),
		ep("http://tertiary", 0, 100, true),
	})
	require.NoError(t, err)
	assert.Equal(t, "http://secondary", winner.URL)
}

func TestPickAllUnhealthy(t *testing.T) {
	for _, algo := range []rpc.Algorithm{rpc.AlgorithmFastest, rpc.AlgorithmFailover} {
		_, err := rpc.Pick(algo, []rpc.Endpoint{ep("http://a", 0, 0, false)})
		assert.ErrorIs(t, err, rpc.ErrNoHealthyRPC, string(algo))
	}
	_, err := rpc.Pick(rpc.AlgorithmFastest, nil)
	assert.ErrorIs(t, err, rpc.ErrNoHealthyRPC)
}
