package mint

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/Mohsinsiddi/w3mint/internal/config"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
)

// ContractCaller performs a read-only contract call and returns the decoded
// outputs. *contract.Caller satisfies it.
type ContractCaller interface {
	Call(ctx context.Context, method string, args ...any) ([]any, error)
}

// ReadResult is the outcome of one batched read. Err is set when any field
// failed; Values then holds the fields that did succeed.
type ReadResult struct {
	Values map[string]any
	Err    error
}

// Reader issues batched read calls against the mint contract.
type Reader struct {
	caller ContractCaller
	fields config.Fields
}

// NewReader creates a Reader. fields names the contract's read functions.
func NewReader(caller ContractCaller, fields config.Fields) *Reader {
	return &Reader{caller: caller, fields: fields}
}

// Fields returns the configured read-function names.
func (r *Reader) Fields() config.Fields { return r.fields }

// Read calls each named zero-argument function concurrently. It never
// panics; failures come back in ReadResult.Err wrapped in ErrContractRead.
func (r *Reader) Read(ctx context.Context, names ...string) ReadResult {
	var (
		mu     sync.Mutex
		values = make(map[string]any, len(names))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range names {
		g.Go(func() error {
			out, err := r.caller.Call(gctx, name)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrContractRead, name, err)
			}
			if len(out) != 1 {
				return fmt.Errorf("%w: %s returned %d values", ErrContractRead, name, len(out))
			}
			mu.Lock()
			values[name] = out[0]
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	return ReadResult{Values: values, Err: err}
}

// Paused reads the pause flag.
func (r *Reader) Paused(ctx context.Context) (bool, error) {
	res := r.Read(ctx, r.fields.Paused)
	if res.Err != nil {
		return false, res.Err
	}
	return asBool(res.Values, r.fields.Paused)
}

// TotalSupply reads the number of minted tokens.
func (r *Reader) TotalSupply(ctx context.Context) (uint64, error) {
	res := r.Read(ctx, r.fields.TotalSupply)
	if res.Err != nil {
		return 0, res.Err
	}
	return asUint64(res.Values, r.fields.TotalSupply)
}

// Snapshot reads price, cap and supplies straight from the chain.
func (r *Reader) Snapshot(ctx context.Context) (*ContractSnapshot, error) {
	res := r.Read(ctx, r.fields.Snapshot()...)
	if res.Err != nil {
		return nil, res.Err
	}
	price, err := asBig(res.Values, r.fields.Price)
	if err != nil {
		return nil, err
	}
	s := &ContractSnapshot{ETHPrice: price}
	if s.MaxMintCount, err = asUint64(res.Values, r.fields.MaxMintCount); err != nil {
		return nil, err
	}
	if s.TotalSupply, err = asUint64(res.Values, r.fields.TotalSupply); err != nil {
		return nil, err
	}
	if s.MaxSupply, err = asUint64(res.Values, r.fields.MaxSupply); err != nil {
		return nil, err
	}
	return s, nil
}

// JSONValue converts a decoded ABI value to a JSON-friendly form: integers
// become decimal strings, addresses checksummed hex.
func JSONValue(v any) any {
	switch t := v.(type) {
	case *big.Int:
		return t.String()
	case common.Address:
		return t.Hex()
	case [32]byte:
		return common.Hash(t).Hex()
	case []byte:
		return "0x" + common.Bytes2Hex(t)
	case uint8, uint16, uint32, uint64, int8, int16, int32, int64:
		return fmt.Sprint(t)
	default:
		return v
	}
}

func asBig(values map[string]any, name string) (*big.Int, error) {
	switch v := values[name].(type) {
	case *big.Int:
		return v, nil
	case uint8:
		return big.NewInt(int64(v)), nil
	case uint16:
		return big.NewInt(int64(v)), nil
	case uint32:
		return big.NewInt(int64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	default:
		return nil, fmt.Errorf("%w: %s: unexpected type %T", ErrContractRead, name, v)
	}
}

func asUint64(values map[string]any, name string) (uint64, error) {
	n, err := asBig(values, name)
	if err != nil {
		return 0, err
	}
	if !n.IsUint64() {
		return 0, fmt.Errorf("%w: %s out of range: %s", ErrContractRead, name, n)
	}
	return n.Uint64(), nil
}

func asBool(values map[string]any, name string) (bool, error) {
	b, ok := values[name].(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s: unexpected type %T", ErrContractRead, name, values[name])
	}
	return b, nil
}
