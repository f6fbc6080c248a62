package rpc

import (
	"context"
	"log/slog"
	"time"

	"github.com/Mohsinsiddi/w3mint/internal/chain"
	"golang.org/x/sync/errgroup"
)

// pingTimeout bounds a single endpoint health check.
const pingTimeout = 5 * time.Second

// Benchmark pings all EVM RPC URLs in parallel. Every URL gets an Endpoint;
// failures are recorded in Endpoint.Err rather than aborting the run.
func Benchmark(ctx context.Context, urls []string) []Endpoint {
	endpoints := make([]Endpoint, len(urls))
	var g errgroup.Group

	for i, url := range urls {
		g.Go(func() error {
			pctx, cancel := context.WithTimeout(ctx, pingTimeout)
			defer cancel()
			latency, block, err := chain.NewEVMClient(url).Ping(pctx)
			endpoints[i] = Endpoint{URL: url, Latency: latency, BlockNumber: block, Err: err}
			return nil
		})
	}
	g.Wait() //nolint:errcheck
	return endpoints
}

// Select returns the best URL from urls. A single URL is returned without a
// benchmark. An empty algorithm means fastest.
func Select(ctx context.Context, urls []string, algo Algorithm) (string, error) {
	switch len(urls) {
	case 0:
		return "", ErrNoHealthyRPC
	case 1:
		return urls[0], nil
	}
	if algo == "" {
		algo = AlgorithmFastest
	}

	endpoints := Benchmark(ctx, urls)
	for _, e := range endpoints {
		if e.Err != nil {
			slog.Debug("rpc unhealthy", "url", e.URL, "err", e.Err)
		}
	}

	winner, err := Pick(algo, endpoints)
	if err != nil {
		return "", err
	}
	slog.Debug("rpc selected", "url", winner.URL, "latency", winner.Latency, "block", winner.BlockNumber)
	return winner.URL, nil
}
