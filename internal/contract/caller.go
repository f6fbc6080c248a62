package contract

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Mohsinsiddi/w3mint/internal/chain"
)

// Caller calls read-only (view/pure) functions on one deployed contract.
type Caller struct {
	client  *chain.EVMClient
	address string
	abi     *ABI
}

// NewCaller creates a Caller bound to the contract at address.
func NewCaller(client *chain.EVMClient, address string, a *ABI) *Caller {
	return &Caller{client: client, address: address, abi: a}
}

// Address returns the contract address.
func (c *Caller) Address() string { return c.address }

// Call invokes a read function and returns the decoded outputs.
func (c *Caller) Call(ctx context.Context, method string, args ...any) ([]any, error) {
	fn, err := c.abi.Function(method)
	if err != nil {
		return nil, err
	}
	if !fn.IsReadFunction() {
		return nil, fmt.Errorf("function %q is not a read function (stateMutability: %s)", method, fn.StateMutability)
	}

	calldata, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", method, err)
	}

	result, err := c.client.CallContract(ctx, c.address, "0x"+hex.EncodeToString(calldata))
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", method, err)
	}

	raw, err := hex.DecodeString(strings.TrimPrefix(result, "0x"))
	if err != nil {
		return nil, fmt.Errorf("decoding hex result: %w", err)
	}
	if len(raw) == 0 && len(fn.Outputs) > 0 {
		return nil, fmt.Errorf("empty result for %s: no contract at %s?", method, c.address)
	}

	out, err := c.abi.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s result: %w", method, err)
	}
	return out, nil
}
