package mint

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every refinement of a mint failure also matches ErrMint.
var (
	ErrDataLoad       = errors.New("loading contract snapshot")
	ErrContractRead   = errors.New("reading contract")
	ErrAllowlistCheck = errors.New("checking allowlist")
	ErrMint           = errors.New("mint failed")
	ErrInvalidRange   = errors.New("invalid token range")

	ErrApprovalRejected = fmt.Errorf("%w: approval rejected", ErrMint)
	ErrMintReverted     = fmt.Errorf("%w: transaction reverted", ErrMint)
	ErrMintInFlight     = fmt.Errorf("%w: a mint is already in progress", ErrMint)
	ErrNoWallet         = errors.New("no wallet connected")
)
