package ui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Mohsinsiddi/w3mint/internal/mint"
)

// Slice is one independently loaded piece of page data.
type Slice[T any] struct {
	Loading bool
	Value   T
	Err     error
}

// Loaded returns a settled slice holding v.
func Loaded[T any](v T) Slice[T] { return Slice[T]{Value: v} }

// Failed returns a settled slice holding err.
func Failed[T any](err error) Slice[T] { return Slice[T]{Err: err} }

// Pending returns a slice that is still loading.
func Pending[T any]() Slice[T] { return Slice[T]{Loading: true} }

// PageState is everything the storefront knows at one instant.
type PageState struct {
	Snapshot    *mint.ContractSnapshot // static data; nil when it could not be loaded
	Paused      Slice[bool]
	TotalSupply Slice[uint64]
	Account     string // connected wallet address, "" when disconnected
	Countdown   string
	Allowlist   Slice[mint.AllowlistStatus]
	Quantity    int64
	Mint        mint.State
	Tokens      Slice[[]mint.TokenPreview]
	TxURL       func(hash string) string
}

// MintControl is the mint area of the page. Exactly one of Status or the
// quantity/button pair is shown.
type MintControl struct {
	Status   string // "Loading...", "Minting..." or the success payload
	Link     string // explorer link while Minting and after Success
	Quantity int64
	Label    string // "Mint", "Awaiting approval" or "Minting..."
	Disabled bool
}

// Page is the derived display, top to bottom. Empty strings are hidden lines.
type Page struct {
	Status    string
	Wallet    string
	Price     string
	Supply    string
	Cap       string
	Countdown string
	Allowlist string
	Mint      *MintControl // nil when no wallet is connected
	MintError string
	Gallery   []string
}

// Display strings shared by Compose and its callers.
const (
	textLoading       = "Loading..."
	textContractError = "Error loading contract"
	textPaused        = "Contract paused."
	textActive        = "Contract active."
	textConnectHint   = "[ c ] connect wallet"
	textCheckList     = "Am I on the allowlist?"
	textOnList        = "You are on the allowlist!"
	textNotOnList     = "You are not on the allowlist :("
	textMint          = "Mint"
	textAwaiting      = "Awaiting approval"
	textMinting       = "Minting..."
	textNoTokens      = "No tokens minted yet."
)

// Compose derives the page from s. It performs no I/O.
func Compose(s PageState) Page {
	p := Page{
		Status: contractStatus(s),
		Wallet: textConnectHint,
	}
	connected := s.Account != ""
	if connected {
		p.Wallet = "Connected: " + s.Account
	}

	if snap := s.Snapshot; snap != nil {
		p.Price = mint.FormatEther(snap.ETHPrice) + " ETH"
		supply := "?"
		switch ts := s.TotalSupply; {
		case ts.Loading:
		case ts.Err == nil && ts.Value > 0:
			supply = strconv.FormatUint(ts.Value, 10)
		case ts.Err != nil && snap.TotalSupply > 0:
			supply = strconv.FormatUint(snap.TotalSupply, 10)
		}
		p.Supply = fmt.Sprintf("%s / %d", supply, snap.DisplayMaxSupply())
		p.Cap = fmt.Sprintf("%d per transaction", snap.MaxPerTx())
	}

	if s.Countdown != "" {
		p.Countdown = "Launching in: " + s.Countdown
	}

	if connected {
		p.Allowlist = allowlistLine(s.Allowlist)
		p.Mint = mintControl(s)
		if f, ok := s.Mint.(mint.Failed); ok {
			p.MintError = ErrorText(f.Err)
		}
	}

	p.Gallery = gallery(s.Tokens)
	return p
}

func contractStatus(s PageState) string {
	switch {
	case s.Paused.Loading || s.TotalSupply.Loading:
		return textLoading
	case s.Paused.Err != nil || s.TotalSupply.Err != nil:
		return textContractError
	case s.Paused.Value:
		return textPaused
	default:
		return textActive
	}
}

func allowlistLine(a Slice[mint.AllowlistStatus]) string {
	switch {
	case a.Loading:
		return textLoading
	case !a.Value.Checked:
		return "[ a ] " + textCheckList
	case a.Value.Verified:
		return textOnList
	default:
		return textNotOnList
	}
}

func mintControl(s PageState) *MintControl {
	if s.Snapshot == nil {
		return &MintControl{Status: textLoading}
	}
	link := func(hash string) string {
		if s.TxURL != nil {
			if u := s.TxURL(hash); u != "" {
				return u
			}
		}
		return hash
	}

	switch st := s.Mint.(type) {
	case mint.Success:
		if st.Receipt != nil {
			return &MintControl{
				Status: fmt.Sprintf("Minted in block %d (gas used %d)", st.Receipt.BlockNumber, st.Receipt.GasUsed),
				Link:   link(st.Receipt.Hash),
			}
		}
	case mint.Minting:
		if st.TxHash != "" {
			return &MintControl{Status: textMinting, Link: link(st.TxHash)}
		}
	}

	c := &MintControl{
		Quantity: mint.ClampQuantity(s.Quantity, s.Snapshot.MaxMintCount),
		Label:    textMint,
		Disabled: mint.InFlight(s.Mint),
	}
	switch s.Mint.(type) {
	case mint.AwaitingApproval:
		c.Label = textAwaiting
	case mint.Minting:
		c.Label = textMinting
	}
	return c
}

func gallery(t Slice[[]mint.TokenPreview]) []string {
	switch {
	case t.Loading:
		return []string{textLoading}
	case t.Err != nil:
		return []string{ErrorText(t.Err)}
	case len(t.Value) == 0:
		return []string{textNoTokens}
	}
	lines := make([]string, len(t.Value))
	for i, tk := range t.Value {
		name := tk.Name
		if name == "" {
			name = tk.URI
		}
		lines[i] = fmt.Sprintf("#%-5d %s", tk.ID, name)
		if tk.Image != "" {
			lines[i] += "  " + tk.Image
		}
	}
	return lines
}

// ErrorText converts a storefront error into the line shown to the user.
func ErrorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, mint.ErrNoWallet):
		return "Connect a wallet first."
	case errors.Is(err, mint.ErrMintInFlight):
		return "A mint is already in progress."
	case errors.Is(err, mint.ErrApprovalRejected):
		return "Transaction was not approved."
	case errors.Is(err, mint.ErrMintReverted):
		return "Mint reverted: " + err.Error()
	case errors.Is(err, mint.ErrAllowlistCheck):
		return "Could not check the allowlist, press a to retry."
	case errors.Is(err, mint.ErrInvalidRange):
		return "Invalid token range."
	default:
		return err.Error()
	}
}
