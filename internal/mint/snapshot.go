package mint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"strconv"
	"strings"

	"github.com/Mohsinsiddi/w3mint/internal/config"
)

// ContractSnapshot is the static contract data rendered before any live read
// resolves. It is replaced wholesale, never mutated.
type ContractSnapshot struct {
	ETHPrice     *big.Int `json:"ETH_PRICE"`
	MaxMintCount uint64   `json:"MAX_MINT_COUNT"`
	TotalSupply  uint64   `json:"totalSupply"`
	MaxSupply    uint64   `json:"maxSupply"`
}

// MaxPerTx is the displayed per-transaction cap.
func (s *ContractSnapshot) MaxPerTx() uint64 { return DisplayLimit(s.MaxMintCount) }

// DisplayMaxSupply is the displayed collection size.
func (s *ContractSnapshot) DisplayMaxSupply() uint64 { return DisplayLimit(s.MaxSupply) }

// snapshotFromValues builds a snapshot from a field-name → raw JSON map keyed
// by the names in fields.
func snapshotFromValues(raw map[string]json.RawMessage, fields config.Fields) (*ContractSnapshot, error) {
	price, err := decodeBig(raw, fields.Price)
	if err != nil {
		return nil, err
	}
	s := &ContractSnapshot{ETHPrice: price}
	for name, dst := range map[string]*uint64{
		fields.MaxMintCount: &s.MaxMintCount,
		fields.TotalSupply:  &s.TotalSupply,
		fields.MaxSupply:    &s.MaxSupply,
	} {
		n, err := decodeBig(raw, name)
		if err != nil {
			return nil, err
		}
		if !n.IsUint64() {
			return nil, fmt.Errorf("field %s out of range: %s", name, n)
		}
		*dst = n.Uint64()
	}
	return s, nil
}

// decodeBig accepts a JSON number or a decimal/hex string.
func decodeBig(raw map[string]json.RawMessage, name string) (*big.Int, error) {
	v, ok := raw[name]
	if !ok {
		return nil, fmt.Errorf("field %s missing from snapshot", name)
	}
	s := strings.TrimSpace(string(v))
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	n, ok := new(big.Int).SetString(s, 0)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("field %s is not a non-negative integer: %s", name, v)
	}
	return n, nil
}

// FetchSnapshot requests {baseURL}/api/contract-data/{fields} and decodes the
// result. Any failure, including an {"error": ...} body, wraps ErrDataLoad.
func FetchSnapshot(ctx context.Context, client *http.Client, baseURL string, fields config.Fields) (*ContractSnapshot, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("%w: base URL not set", ErrDataLoad)
	}
	endpoint := strings.TrimRight(baseURL, "/") + "/api/contract-data/" + strings.Join(fields.Snapshot(), ",")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrDataLoad, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(body), &raw); err != nil {
		return nil, fmt.Errorf("%w: HTTP %d: %v", ErrDataLoad, resp.StatusCode, err)
	}
	if msg, ok := raw["error"]; ok {
		var text string
		if json.Unmarshal(msg, &text) != nil {
			text = string(msg)
		}
		return nil, fmt.Errorf("%w: %s", ErrDataLoad, text)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrDataLoad, resp.StatusCode)
	}

	s, err := snapshotFromValues(raw, fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	return s, nil
}

// LoadSnapshot is FetchSnapshot for page start-up: any failure is logged and
// yields nil so the page falls back to unknown values.
func LoadSnapshot(ctx context.Context, client *http.Client, baseURL string, fields config.Fields) *ContractSnapshot {
	s, err := FetchSnapshot(ctx, client, baseURL, fields)
	if err != nil {
		slog.Warn("snapshot unavailable", "base_url", baseURL, "err", err)
		return nil
	}
	return s
}
