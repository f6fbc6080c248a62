package contract

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/Mohsinsiddi/w3mint/internal/chain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrReverted is returned by Prepare when the pre-flight simulation reverts.
var ErrReverted = errors.New("execution reverted")

// fallbackGas is used when eth_estimateGas fails after a successful simulation.
const fallbackGas = 300_000

// Sender builds and broadcasts write transactions for one contract.
// Signing happens outside, between Prepare and Broadcast.
type Sender struct {
	client  *chain.EVMClient
	address string
	abi     *ABI

	mu      sync.Mutex
	chainID *big.Int
}

// NewSender creates a Sender bound to the contract at address.
func NewSender(client *chain.EVMClient, address string, a *ABI) *Sender {
	return &Sender{client: client, address: address, abi: a}
}

// ChainID returns the node's chain id, cached after the first call.
func (s *Sender) ChainID(ctx context.Context) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chainID != nil {
		return s.chainID, nil
	}
	id, err := s.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting chain id: %w", err)
	}
	s.chainID = id
	return id, nil
}

// Prepare builds an unsigned EIP-1559 transaction calling method with value
// attached. The call is simulated first; a revert returns ErrReverted with
// the node's reason.
func (s *Sender) Prepare(ctx context.Context, from string, value *big.Int, method string, args ...any) (*types.Transaction, error) {
	fn, err := s.abi.Function(method)
	if err != nil {
		return nil, err
	}
	if !fn.IsWriteFunction() {
		return nil, fmt.Errorf("function %q is not a write function", method)
	}
	if value == nil {
		value = new(big.Int)
	}
	if value.Sign() > 0 && !fn.IsPayable() {
		return nil, fmt.Errorf("function %q is not payable", method)
	}

	calldata, err := s.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", method, err)
	}
	dataHex := "0x" + hex.EncodeToString(calldata)

	ok, reason, err := s.client.SimulateCall(ctx, from, s.address, dataHex, value)
	if err != nil {
		return nil, fmt.Errorf("simulating %s: %w", method, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrReverted, reason)
	}

	gas, err := s.client.EstimateGas(ctx, from, s.address, dataHex, value)
	if err != nil {
		gas = fallbackGas
	}
	gas = gas * 12 / 10 // 20% headroom

	gasPrice, err := s.client.GasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting gas price: %w", err)
	}

	nonce, err := s.client.GetPendingNonce(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("getting nonce: %w", err)
	}

	chainID, err := s.ChainID(ctx)
	if err != nil {
		return nil, err
	}

	to := common.HexToAddress(s.address)
	return types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: gasPrice,
		GasFeeCap: new(big.Int).Mul(gasPrice, big.NewInt(2)),
		Gas:       gas,
		To:        &to,
		Value:     value,
		Data:      calldata,
	}), nil
}

// Broadcast sends signed raw transaction bytes and returns the tx hash.
func (s *Sender) Broadcast(ctx context.Context, signed []byte) (string, error) {
	hash, err := s.client.SendRawTransaction(ctx, "0x"+hex.EncodeToString(signed))
	if err != nil {
		return "", fmt.Errorf("broadcasting transaction: %w", err)
	}
	return hash, nil
}

// WaitMined blocks until the transaction is mined or ctx is done.
func (s *Sender) WaitMined(ctx context.Context, hash string) (*chain.TxReceipt, error) {
	return s.client.WaitForReceipt(ctx, hash)
}
