package mint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/Mohsinsiddi/w3mint/internal/chain"
	"github.com/Mohsinsiddi/w3mint/internal/config"
	"github.com/Mohsinsiddi/w3mint/internal/contract"
	"github.com/ethereum/go-ethereum/core/types"
)

// State is the mint lifecycle. Exactly one variant is current at a time.
type State interface{ isState() }

// Idle: nothing submitted yet.
type Idle struct{}

// AwaitingApproval: the transaction is built and waiting for the wallet to sign.
type AwaitingApproval struct{}

// Minting: broadcast and waiting to be mined.
type Minting struct{ TxHash string }

// Success: mined with status 1.
type Success struct{ Receipt *chain.TxReceipt }

// Failed: the attempt ended with Err, which matches ErrMint or ErrNoWallet.
type Failed struct{ Err error }

func (Idle) isState()             {}
func (AwaitingApproval) isState() {}
func (Minting) isState()          {}
func (Success) isState()          {}
func (Failed) isState()           {}

// InFlight reports whether s blocks a new mint.
func InFlight(s State) bool {
	switch s.(type) {
	case AwaitingApproval, Minting:
		return true
	}
	return false
}

// Signer is the connected wallet.
type Signer interface {
	Address() string
	SignTx(tx *types.Transaction, chainID *big.Int) ([]byte, error)
}

// Transactor builds, broadcasts and confirms transactions. *contract.Sender
// satisfies it.
type Transactor interface {
	Prepare(ctx context.Context, from string, value *big.Int, method string, args ...any) (*types.Transaction, error)
	ChainID(ctx context.Context) (*big.Int, error)
	Broadcast(ctx context.Context, signed []byte) (string, error)
	WaitMined(ctx context.Context, hash string) (*chain.TxReceipt, error)
}

// MintRequest is one mint invocation.
type MintRequest struct {
	UnitPrice *big.Int
	Quantity  int64
}

// Orchestrator drives one wallet session's mints through the State machine.
// Its own state is the mutual-exclusion guard: a second Mint while one is in
// flight is rejected.
type Orchestrator struct {
	tx             Transactor
	method         string
	confirmTimeout time.Duration
	log            *slog.Logger

	mu       sync.Mutex
	state    State
	onChange func(State)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithMethod overrides the payable mint function name (default "mint").
func WithMethod(name string) Option {
	return func(o *Orchestrator) { o.method = name }
}

// WithConfirmTimeout bounds the receipt wait.
func WithConfirmTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.confirmTimeout = d }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// NewOrchestrator creates an Orchestrator in the Idle state.
func NewOrchestrator(tx Transactor, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		tx:             tx,
		method:         "mint",
		confirmTimeout: config.TxConfirmTimeout,
		log:            slog.Default(),
		state:          Idle{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// OnChange registers fn to receive every transition in order. fn runs with
// the orchestrator locked and must not call back into it.
func (o *Orchestrator) OnChange(fn func(State)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onChange = fn
}

// State returns the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Mint runs one attempt to completion and returns the mined receipt. It
// returns ErrMintInFlight without touching the state when another attempt is
// AwaitingApproval or Minting. Every other failure also lands in Failed.
func (o *Orchestrator) Mint(ctx context.Context, signer Signer, req MintRequest) (*chain.TxReceipt, error) {
	o.mu.Lock()
	if InFlight(o.state) {
		o.mu.Unlock()
		return nil, ErrMintInFlight
	}
	if signer == nil || signer.Address() == "" {
		o.setLocked(Failed{Err: ErrNoWallet})
		o.mu.Unlock()
		return nil, ErrNoWallet
	}
	if req.Quantity < 1 || req.UnitPrice == nil {
		err := fmt.Errorf("%w: quantity must be at least 1 and price known", ErrMint)
		o.setLocked(Failed{Err: err})
		o.mu.Unlock()
		return nil, err
	}
	o.setLocked(AwaitingApproval{})
	o.mu.Unlock()

	log := o.log.With("from", signer.Address(), "quantity", req.Quantity)
	value := TotalCost(req.UnitPrice, req.Quantity)

	tx, err := o.tx.Prepare(ctx, signer.Address(), value, o.method, big.NewInt(req.Quantity))
	if err != nil {
		if errors.Is(err, contract.ErrReverted) {
			return nil, o.fail(log, fmt.Errorf("%w: %v", ErrMintReverted, err))
		}
		return nil, o.fail(log, fmt.Errorf("%w: %v", ErrMint, err))
	}

	chainID, err := o.tx.ChainID(ctx)
	if err != nil {
		return nil, o.fail(log, fmt.Errorf("%w: %v", ErrMint, err))
	}

	signed, err := signer.SignTx(tx, chainID)
	if err != nil {
		return nil, o.fail(log, fmt.Errorf("%w: %v", ErrApprovalRejected, err))
	}

	hash, err := o.tx.Broadcast(ctx, signed)
	if err != nil {
		return nil, o.fail(log, fmt.Errorf("%w: %v", ErrMint, err))
	}
	log = log.With("tx", hash)
	log.Info("mint broadcast", "value_wei", value.String())
	o.set(Minting{TxHash: hash})

	wctx, cancel := context.WithTimeout(ctx, o.confirmTimeout)
	defer cancel()
	receipt, err := o.tx.WaitMined(wctx, hash)
	switch {
	case receipt != nil && receipt.Status == 0:
		return receipt, o.fail(log, fmt.Errorf("%w: %s", ErrMintReverted, hash))
	case err != nil:
		return nil, o.fail(log, fmt.Errorf("%w: waiting for %s: %v", ErrMint, hash, err))
	}

	log.Info("mint confirmed", "block", receipt.BlockNumber, "gas_used", receipt.GasUsed)
	o.set(Success{Receipt: receipt})
	return receipt, nil
}

// Reset returns a finished attempt to Idle. It is a no-op while in flight.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !InFlight(o.state) {
		o.setLocked(Idle{})
	}
}

func (o *Orchestrator) fail(log *slog.Logger, err error) error {
	log.Warn("mint failed", "err", err)
	o.set(Failed{Err: err})
	return err
}

func (o *Orchestrator) set(s State) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.setLocked(s)
}

func (o *Orchestrator) setLocked(s State) {
	o.state = s
	if o.onChange != nil {
		o.onChange(s)
	}
}
