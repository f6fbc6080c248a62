package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Mohsinsiddi/w3mint/internal/mint"
	"github.com/Mohsinsiddi/w3mint/internal/wallet"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// WalletSource lists the configured wallets and hands out signers.
// *wallet.Manager satisfies it.
type WalletSource interface {
	List() ([]*wallet.Wallet, error)
	Signer(name string) (*wallet.Signer, error)
}

// Storefront wires the storefront page to its data sources.
type Storefront struct {
	Title        string
	Reader       *mint.Reader
	Checker      *mint.Checker
	Fetcher      *mint.Fetcher
	Orchestrator *mint.Orchestrator
	Wallets      WalletSource
	Snapshot     *mint.ContractSnapshot
	Gallery      mint.Range
	TxURL        func(hash string) string
	Log          *slog.Logger
}

// CountdownMsg carries the latest countdown text; "" hides the countdown.
type CountdownMsg string

// MintStateMsg carries one orchestrator transition.
type MintStateMsg struct{ State mint.State }

type (
	pausedMsg struct {
		paused bool
		err    error
	}
	supplyMsg struct {
		supply uint64
		err    error
	}
	tokensMsg struct {
		tokens []mint.TokenPreview
		err    error
	}
	allowlistMsg struct {
		address string
		status  mint.AllowlistStatus
		err     error
	}
	walletsMsg struct {
		items []PickerItem
		err   error
	}
	mintDoneMsg struct{ err error }
	unlockedMsg struct {
		name   string
		signer *wallet.Signer
		err    error
	}
)

// StorefrontModel is the Bubble Tea model for the mint page. Its Update loop
// is the only writer of the page state.
type StorefrontModel struct {
	sf  Storefront
	ctx context.Context
	log *slog.Logger

	state    PageState
	signer   *wallet.Signer
	picker   *Picker
	qtyInput string
	flash    string
	quitting bool

	// exec runs a command with the terminal released. tea.Exec outside tests.
	exec func(tea.ExecCommand, tea.ExecCallback) tea.Cmd
}

// NewStorefrontModel creates the page with every live slice loading.
func NewStorefrontModel(ctx context.Context, sf Storefront) StorefrontModel {
	log := sf.Log
	if log == nil {
		log = slog.Default()
	}
	state := PageState{
		Snapshot:    sf.Snapshot,
		Paused:      Pending[bool](),
		TotalSupply: Pending[uint64](),
		Quantity:    1,
		Mint:        mint.Idle{},
		Tokens:      Pending[[]mint.TokenPreview](),
		TxURL:       sf.TxURL,
	}
	if sf.Orchestrator != nil {
		state.Mint = sf.Orchestrator.State()
	}
	return StorefrontModel{
		sf:    sf,
		ctx:   ctx,
		log:   log.With("session", uuid.NewString()),
		state: state,
		exec:  tea.Exec,
	}
}

// Page returns the composed page for the current state.
func (m StorefrontModel) Page() Page { return Compose(m.state) }

func (m StorefrontModel) Init() tea.Cmd {
	return tea.Batch(m.loadPaused(), m.loadSupply(), m.loadTokens())
}

func (m StorefrontModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())

	case pausedMsg:
		if msg.err != nil {
			m.log.Warn("reading pause flag", "err", msg.err)
			m.state.Paused = Failed[bool](msg.err)
		} else {
			m.state.Paused = Loaded(msg.paused)
		}

	case supplyMsg:
		if msg.err != nil {
			m.log.Warn("reading total supply", "err", msg.err)
			m.state.TotalSupply = Failed[uint64](msg.err)
		} else {
			m.state.TotalSupply = Loaded(msg.supply)
		}

	case tokensMsg:
		if msg.err != nil {
			m.log.Warn("loading gallery", "err", msg.err)
			m.state.Tokens = Failed[[]mint.TokenPreview](msg.err)
		} else {
			m.state.Tokens = Loaded(msg.tokens)
		}

	case CountdownMsg:
		m.state.Countdown = string(msg)

	case allowlistMsg:
		// A late answer for a wallet that is no longer connected is dropped.
		if msg.address != m.state.Account {
			return m, nil
		}
		if msg.err != nil {
			m.state.Allowlist = Slice[mint.AllowlistStatus]{}
			m.flash = ErrorText(msg.err)
			return m, nil
		}
		m.log.Info("allowlist checked", "address", msg.address, "verified", msg.status.Verified)
		m.state.Allowlist = Loaded(msg.status)

	case walletsMsg:
		switch {
		case msg.err != nil:
			m.flash = "Could not list wallets: " + msg.err.Error()
		case len(msg.items) == 0:
			m.flash = "No signing wallets. Add one with: w3mint wallet add <name> --key <hex>"
		default:
			m.picker = &Picker{Title: "Connect wallet", Items: msg.items}
		}

	case MintStateMsg:
		m.state.Mint = msg.State
		if _, ok := msg.State.(mint.Success); ok {
			// The only supply re-read a mint causes.
			m.state.TotalSupply.Loading = true
			return m, m.loadSupply()
		}

	case unlockedMsg:
		m.connected(msg)

	case mintDoneMsg:
		if errors.Is(msg.err, mint.ErrMintInFlight) {
			m.flash = ErrorText(msg.err)
		}
	}
	return m, nil
}

func (m StorefrontModel) handleKey(key string) (tea.Model, tea.Cmd) {
	if m.picker != nil {
		outcome, item := m.picker.HandleKey(key)
		switch outcome {
		case PickCancelled:
			m.picker = nil
		case PickSelected:
			m.picker = nil
			return m, m.connect(item.Value)
		}
		return m, nil
	}

	m.flash = ""
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		m.qtyInput += key
		n, _ := strconv.ParseInt(m.qtyInput, 10, 64)
		m.setQuantity(n)
		return m, nil
	}
	m.qtyInput = ""

	switch key {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "c":
		return m, m.listWallets()

	case "d":
		if m.signer == nil {
			return m, nil
		}
		m.log.Info("wallet disconnected", "address", m.state.Account)
		m.signer = nil
		m.state.Account = ""
		m.state.Allowlist = Slice[mint.AllowlistStatus]{}
		return m, m.resetMint()

	case "a":
		return m.checkAllowlist()

	case "+", "=", "up":
		m.setQuantity(m.state.Quantity + 1)

	case "-", "down":
		m.setQuantity(m.state.Quantity - 1)

	case "m", "enter":
		return m.mint()

	case "r":
		m.state.Paused.Loading = true
		m.state.TotalSupply.Loading = true
		m.state.Tokens.Loading = true
		return m, tea.Batch(m.loadPaused(), m.loadSupply(), m.loadTokens())

	case "o":
		hash := txHash(m.state.Mint)
		if hash == "" || m.sf.TxURL == nil || m.sf.TxURL(hash) == "" {
			m.flash = "No transaction link yet"
			return m, nil
		}
		if err := openURL(m.sf.TxURL(hash)); err != nil {
			m.flash = "Could not open browser: " + err.Error()
		} else {
			m.flash = "Opening in browser…"
		}
	}
	return m, nil
}

func (m *StorefrontModel) setQuantity(n int64) {
	if m.state.Snapshot != nil {
		n = mint.ClampQuantity(n, m.state.Snapshot.MaxMintCount)
	} else if n < 1 {
		n = 1
	}
	m.state.Quantity = n
}

// connect unlocks the wallet's key before it is used. The keystore may
// prompt for a passphrase, so the unlock runs with the terminal released.
func (m StorefrontModel) connect(name string) tea.Cmd {
	signer, err := m.sf.Wallets.Signer(name)
	if err != nil {
		m.log.Warn("connecting wallet", "wallet", name, "err", err)
		return func() tea.Msg { return unlockedMsg{name: name, err: err} }
	}
	return m.exec(unlockCommand{signer: signer}, func(err error) tea.Msg {
		return unlockedMsg{name: name, signer: signer, err: err}
	})
}

func (m *StorefrontModel) connected(msg unlockedMsg) {
	if msg.err != nil {
		m.log.Warn("unlocking wallet", "wallet", msg.name, "err", msg.err)
		m.flash = msg.err.Error()
		return
	}
	signer := msg.signer
	m.signer = signer
	m.state.Account = signer.Address()
	m.state.Allowlist = Slice[mint.AllowlistStatus]{}
	if m.sf.Checker != nil {
		if st := m.sf.Checker.Status(signer.Address()); st.Checked {
			m.state.Allowlist = Loaded(st)
		}
	}
	m.log.Info("wallet connected", "wallet", msg.name, "address", signer.Address())
}

// unlockCommand unlocks a signer as a tea.ExecCommand. The keystore's
// passphrase prompt talks to the process terminal directly.
type unlockCommand struct{ signer *wallet.Signer }

func (c unlockCommand) Run() error { return c.signer.Unlock() }

func (unlockCommand) SetStdin(io.Reader)  {}
func (unlockCommand) SetStdout(io.Writer) {}
func (unlockCommand) SetStderr(io.Writer) {}

func (m StorefrontModel) checkAllowlist() (tea.Model, tea.Cmd) {
	if m.state.Account == "" {
		m.flash = ErrorText(mint.ErrNoWallet)
		return m, nil
	}
	if m.sf.Checker == nil || m.state.Allowlist.Loading || m.state.Allowlist.Value.Checked {
		return m, nil
	}
	m.state.Allowlist.Loading = true
	checker, ctx, addr := m.sf.Checker, m.ctx, m.state.Account
	return m, func() tea.Msg {
		st, err := checker.Check(ctx, addr)
		return allowlistMsg{address: addr, status: st, err: err}
	}
}

func (m StorefrontModel) mint() (tea.Model, tea.Cmd) {
	switch {
	case m.signer == nil:
		m.flash = ErrorText(mint.ErrNoWallet)
		return m, nil
	case m.state.Snapshot == nil || m.state.Snapshot.ETHPrice == nil:
		m.flash = "Price unknown, cannot mint"
		return m, nil
	case mint.InFlight(m.state.Mint):
		return m, nil
	}

	req := mint.MintRequest{
		UnitPrice: m.state.Snapshot.ETHPrice,
		Quantity:  mint.ClampQuantity(m.state.Quantity, m.state.Snapshot.MaxMintCount),
	}
	o, ctx, signer, log := m.sf.Orchestrator, m.ctx, m.signer, m.log
	log.Info("mint requested", "quantity", req.Quantity, "unit_price_wei", req.UnitPrice.String())
	return m, func() tea.Msg {
		_, err := o.Mint(ctx, signer, req)
		return mintDoneMsg{err: err}
	}
}

func (m StorefrontModel) resetMint() tea.Cmd {
	o := m.sf.Orchestrator
	if o == nil {
		return nil
	}
	return func() tea.Msg {
		o.Reset()
		return nil
	}
}

func (m StorefrontModel) loadPaused() tea.Cmd {
	r, ctx := m.sf.Reader, m.ctx
	return func() tea.Msg {
		paused, err := r.Paused(ctx)
		return pausedMsg{paused: paused, err: err}
	}
}

func (m StorefrontModel) loadSupply() tea.Cmd {
	r, ctx := m.sf.Reader, m.ctx
	return func() tea.Msg {
		supply, err := r.TotalSupply(ctx)
		return supplyMsg{supply: supply, err: err}
	}
}

func (m StorefrontModel) loadTokens() tea.Cmd {
	f, ctx, window := m.sf.Fetcher, m.ctx, m.sf.Gallery
	return func() tea.Msg {
		tokens, err := f.Fetch(ctx, window)
		return tokensMsg{tokens: tokens, err: err}
	}
}

func (m StorefrontModel) listWallets() tea.Cmd {
	src := m.sf.Wallets
	return func() tea.Msg {
		wallets, err := src.List()
		if err != nil {
			return walletsMsg{err: err}
		}
		var items []PickerItem
		for _, w := range wallets {
			if !w.CanSign() {
				continue
			}
			items = append(items, PickerItem{Label: w.Name, SubLabel: w.Address, Value: w.Name})
		}
		return walletsMsg{items: items}
	}
}

func txHash(s mint.State) string {
	switch st := s.(type) {
	case mint.Minting:
		return st.TxHash
	case mint.Success:
		if st.Receipt != nil {
			return st.Receipt.Hash
		}
	}
	return ""
}

func (m StorefrontModel) View() string {
	if m.quitting {
		return ""
	}
	if m.picker != nil {
		return "\n" + m.picker.View()
	}

	p := m.Page()
	var sb strings.Builder

	title := "w3mint"
	if m.sf.Title != "" {
		title += "  ·  " + m.sf.Title
	}
	sb.WriteString(StyleTitle.Render(title) + "\n")

	switch p.Status {
	case textContractError:
		sb.WriteString(StyleError.Render(p.Status) + "\n")
	case textPaused:
		sb.WriteString(StyleWarning.Render(p.Status) + "\n")
	case textActive:
		sb.WriteString(StyleSuccess.Render(p.Status) + "\n")
	default:
		sb.WriteString(StyleMeta.Render(p.Status) + "\n")
	}

	if m.state.Account != "" {
		sb.WriteString(StyleMeta.Render("Connected: ") + Addr(m.state.Account) + "\n")
	} else {
		sb.WriteString(StyleInfo.Render(p.Wallet) + "\n")
	}

	if p.Price != "" {
		sb.WriteString("\n")
		sb.WriteString(Val(p.Price) + "\n")
		sb.WriteString(Val(p.Supply) + "\n")
		sb.WriteString(Meta(p.Cap) + "\n")
	}

	if p.Countdown != "" {
		sb.WriteString("\n" + StyleChain.Render(p.Countdown) + "\n")
	}

	if p.Allowlist != "" {
		sb.WriteString("\n")
		switch p.Allowlist {
		case textOnList:
			sb.WriteString(Success(p.Allowlist) + "\n")
		case textNotOnList:
			sb.WriteString(Warn(p.Allowlist) + "\n")
		default:
			sb.WriteString(StyleInfo.Render(p.Allowlist) + "\n")
		}
	}

	if c := p.Mint; c != nil {
		sb.WriteString("\n")
		if c.Status != "" {
			sb.WriteString(Val(c.Status) + "\n")
			if c.Link != "" {
				sb.WriteString(Meta("View transaction: ") + Addr(c.Link) + "\n")
			}
		} else {
			button := "[ m ] " + c.Label
			if c.Disabled {
				button = StyleDim.Render(button)
			} else {
				button = StyleSelected.Render(button)
			}
			sb.WriteString(fmt.Sprintf("%s  %s\n", Val(fmt.Sprintf("[ - %d + ]", c.Quantity)), button))
		}
	}
	if p.MintError != "" {
		sb.WriteString(Err(p.MintError) + "\n")
	}

	sb.WriteString("\n" + StyleHeader.Render("Gallery") + "\n")
	for _, line := range p.Gallery {
		sb.WriteString("  " + line + "\n")
	}

	sb.WriteString("\n")
	if m.flash != "" {
		sb.WriteString(StyleWarning.Render("  "+m.flash) + "\n")
	} else {
		sb.WriteString(storefrontControls(m.state.Account != "") + "\n")
	}
	return sb.String()
}

func storefrontControls(connected bool) string {
	sep := StyleMeta.Render("   ")
	var sb strings.Builder
	if connected {
		sb.WriteString(StyleInfo.Render("[ a ]") + StyleMeta.Render(" allowlist") + sep)
		sb.WriteString(StyleSuccess.Render("[ m ]") + StyleMeta.Render(" mint") + sep)
		sb.WriteString(StyleMeta.Render("[ +/- ] quantity") + sep)
		sb.WriteString(StyleWarning.Render("[ d ]") + StyleMeta.Render(" disconnect") + sep)
	} else {
		sb.WriteString(StyleInfo.Render("[ c ]") + StyleMeta.Render(" connect") + sep)
	}
	sb.WriteString(StyleMeta.Render("[ o ] open tx") + sep)
	sb.WriteString(StyleMeta.Render("[ r ] refresh") + sep)
	sb.WriteString(StyleMeta.Render("[ q ] quit"))
	return sb.String()
}

// RunStorefront runs the page until the user quits. The countdown and mint
// transitions are pushed into the program from their own goroutines.
func RunStorefront(ctx context.Context, sf Storefront, launch time.Time) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewStorefrontModel(ctx, sf)
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	sf.Orchestrator.OnChange(func(s mint.State) {
		prog.Send(MintStateMsg{State: s})
	})
	defer sf.Orchestrator.OnChange(nil)

	go func() {
		for text := range mint.NewCountdown().Start(ctx, launch) {
			prog.Send(CountdownMsg(text))
		}
	}()

	_, err := prog.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
