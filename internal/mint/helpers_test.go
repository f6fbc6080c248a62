package mint_test

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/Mohsinsiddi/w3mint/internal/chain"
	"github.com/ethereum/go-ethereum/core/types"
)

// fakeCaller answers Call from a fixed method table and counts invocations.
type fakeCaller struct {
	mu      sync.Mutex
	results map[string][]any
	errs    map[string]error
	uris    map[uint64]string
	calls   map[string]int
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{
		results: map[string][]any{},
		errs:    map[string]error{},
		uris:    map[uint64]string{},
		calls:   map[string]int{},
	}
}

func (f *fakeCaller) Call(_ context.Context, method string, args ...any) ([]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
	if err, ok := f.errs[method]; ok {
		return nil, err
	}
	if method == "tokenURI" {
		id := args[0].(*big.Int).Uint64()
		uri, ok := f.uris[id]
		if !ok {
			return nil, errors.New("execution reverted: nonexistent token")
		}
		return []any{uri}, nil
	}
	out, ok := f.results[method]
	if !ok {
		return nil, fmt.Errorf("function %q not found in ABI", method)
	}
	return out, nil
}

func (f *fakeCaller) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// fakeSigner signs by returning a fixed payload, or fails with err.
type fakeSigner struct {
	addr string
	err  error
}

func (s *fakeSigner) Address() string { return s.addr }

func (s *fakeSigner) SignTx(tx *types.Transaction, _ *big.Int) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte{0x02, 0x01}, nil
}

// fakeTransactor scripts each step of a mint. block, when non-nil, is
// received from before WaitMined returns.
type fakeTransactor struct {
	prepareErr   error
	broadcastErr error
	hash         string
	receipt      *chain.TxReceipt
	waitErr      error
	block        chan struct{}

	mu        sync.Mutex
	lastValue *big.Int
	lastArgs  []any
}

func (f *fakeTransactor) Prepare(_ context.Context, _ string, value *big.Int, _ string, args ...any) (*types.Transaction, error) {
	f.mu.Lock()
	f.lastValue, f.lastArgs = value, args
	f.mu.Unlock()
	if f.prepareErr != nil {
		return nil, f.prepareErr
	}
	return types.NewTx(&types.DynamicFeeTx{Value: value}), nil
}

func (f *fakeTransactor) ChainID(context.Context) (*big.Int, error) { return big.NewInt(1), nil }

func (f *fakeTransactor) Broadcast(context.Context, []byte) (string, error) {
	if f.broadcastErr != nil {
		return "", f.broadcastErr
	}
	return f.hash, nil
}

func (f *fakeTransactor) WaitMined(ctx context.Context, _ string) (*chain.TxReceipt, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, chain.ErrReceiptTimeout
		}
	}
	return f.receipt, f.waitErr
}
