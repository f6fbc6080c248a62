package mint

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"
)

// metadataConcurrency bounds parallel tokenURI/metadata fetches.
const metadataConcurrency = 4

// Range selects token ids Start..End, both inclusive. Reverse walks the same
// set from End down to Start.
type Range struct {
	Start   uint64 `json:"start"`
	End     uint64 `json:"end"`
	Reverse bool   `json:"reverse"`
}

// TokenPreview is one gallery entry.
type TokenPreview struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
	URI   string `json:"uri"`
}

// Fetcher reads recently minted tokens and their metadata.
type Fetcher struct {
	caller      ContractCaller
	supplyField string
	client      *http.Client
	gateway     string
}

// NewFetcher creates a Fetcher. supplyField names the total supply function;
// gateway rewrites ipfs:// URIs (e.g. "https://ipfs.io/ipfs/").
func NewFetcher(caller ContractCaller, supplyField string, client *http.Client, gateway string) *Fetcher {
	return &Fetcher{caller: caller, supplyField: supplyField, client: client, gateway: gateway}
}

// Fetch returns the minted tokens in r, clamped to [1, totalSupply]. An empty
// collection yields an empty list and no error.
func (f *Fetcher) Fetch(ctx context.Context, r Range) ([]TokenPreview, error) {
	if r.Start > r.End {
		return nil, fmt.Errorf("%w: start %d > end %d", ErrInvalidRange, r.Start, r.End)
	}

	out, err := f.caller.Call(ctx, f.supplyField)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrContractRead, f.supplyField, err)
	}
	supply, err := asUint64(map[string]any{f.supplyField: first(out)}, f.supplyField)
	if err != nil {
		return nil, err
	}

	ids := r.ids(supply)
	tokens := make([]TokenPreview, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(metadataConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			t, err := f.token(gctx, id)
			if err != nil {
				return err
			}
			tokens[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// ids lists the window's ids in iteration order, skipping ids not yet minted.
func (r Range) ids(supply uint64) []uint64 {
	start, end := max(r.Start, 1), min(r.End, supply)
	if start > end {
		return []uint64{}
	}
	// Counted so that end == MaxUint64 cannot wrap the id.
	ids := make([]uint64, end-start+1)
	for i := range ids {
		ids[i] = start + uint64(i)
	}
	if r.Reverse {
		for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
			ids[i], ids[j] = ids[j], ids[i]
		}
	}
	return ids
}

func (f *Fetcher) token(ctx context.Context, id uint64) (TokenPreview, error) {
	t := TokenPreview{ID: id}
	out, err := f.caller.Call(ctx, "tokenURI", new(big.Int).SetUint64(id))
	if err != nil {
		return t, fmt.Errorf("%w: tokenURI(%d): %v", ErrContractRead, id, err)
	}
	uri, _ := first(out).(string)
	t.URI = uri
	if uri == "" {
		return t, nil
	}

	meta, err := f.metadata(ctx, ResolveURI(uri, f.gateway))
	if err != nil {
		// The token still renders with its URI.
		slog.Debug("token metadata unavailable", "id", id, "uri", uri, "err", err)
		return t, nil
	}
	t.Name = meta.Name
	t.Image = ResolveURI(meta.Image, f.gateway)
	return t, nil
}

type tokenMetadata struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (f *Fetcher) metadata(ctx context.Context, uri string) (*tokenMetadata, error) {
	if !strings.HasPrefix(uri, "http://") && !strings.HasPrefix(uri, "https://") {
		return nil, fmt.Errorf("unsupported metadata URI scheme")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	var m tokenMetadata
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ResolveURI rewrites ipfs://CID/path to gateway+CID/path. Other URIs pass
// through unchanged.
func ResolveURI(uri, gateway string) string {
	const scheme = "ipfs://"
	if !strings.HasPrefix(uri, scheme) || gateway == "" {
		return uri
	}
	path := strings.TrimPrefix(strings.TrimPrefix(uri, scheme), "ipfs/")
	return strings.TrimRight(gateway, "/") + "/" + path
}

func first(out []any) any {
	if len(out) == 0 {
		return nil
	}
	return out[0]
}
