package wallet_test

import (
	"path/filepath"
	"testing"

	"github.com/Mohsinsiddi/w3mint/internal/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	hardhatKey0  = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	hardhatAddr0 = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	hardhatAddr1 = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

func TestAddWatchOnlyWallet(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())
	require.NoError(t, mgr.Add("viewer", "0x70997970c51812dc3a010c7d01b50e0d17dc79c8"))

	w, err := mgr.Get("viewer")
	require.NoError(t, err)
	assert.Equal(t, wallet.TypeWatchOnly, w.Type)
	assert.Equal(t, hardhatAddr1, w.Address, "address stored checksummed")
	assert.NotEmpty(t, w.CreatedAt)
}

func TestAddInvalidAddress(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())
	assert.ErrorIs(t, mgr.Add("bad", "0x123"), wallet.ErrInvalidAddress)
}

func TestAddDuplicateWalletErrors(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())
	require.NoError(t, mgr.Add("dup", hardhatAddr1))
	assert.ErrorIs(t, mgr.Add("dup", hardhatAddr1), wallet.ErrWalletExists)

	_, err := mgr.AddWithKey("dup", hardhatKey0)
	assert.ErrorIs(t, err, wallet.ErrWalletExists)
}

func TestAddSigningWallet(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())

	w, err := mgr.AddWithKey("signer", hardhatKey0)
	require.NoError(t, err)
	assert.Equal(t, wallet.TypeSigning, w.Type)
	assert.Equal(t, hardhatAddr0, w.Address)
	assert.Equal(t, "w3mint.signer", w.KeyRef)
	assert.True(t, w.CanSign())
}

func TestInvalidPrivateKey(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())
	_, err := mgr.AddWithKey("bad", "0xnothex")
	assert.ErrorIs(t, err, wallet.ErrInvalidKey)
}

func TestListWalletsSorted(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())
	require.NoError(t, mgr.Add("zeta", hardhatAddr1))
	_, err := mgr.AddWithKey("alpha", hardhatKey0)
	require.NoError(t, err)

	list, err := mgr.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].Name)
	assert.Equal(t, "zeta", list[1].Name)
}

func TestRemoveWalletDeletesKey(t *testing.T) {
	keys := wallet.NewInMemoryKeystore()
	mgr := wallet.NewManager(wallet.WithKeystore(keys))

	w, err := mgr.AddWithKey("gone", hardhatKey0)
	require.NoError(t, err)
	require.NoError(t, mgr.Remove("gone"))

	_, err = mgr.Get("gone")
	assert.ErrorIs(t, err, wallet.ErrWalletNotFound)
	_, err = keys.Retrieve(w.KeyRef)
	assert.Error(t, err, "key removed together with the wallet")
}

func TestRemoveNonExistentWallet(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())
	assert.ErrorIs(t, mgr.Remove("ghost"), wallet.ErrWalletNotFound)
}

func TestSetDefault(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())
	require.NoError(t, mgr.Add("a", hardhatAddr0))
	require.NoError(t, mgr.Add("b", hardhatAddr1))
	assert.Nil(t, mgr.Default(), "no default among several wallets")

	require.NoError(t, mgr.SetDefault("b"))
	assert.Equal(t, "b", mgr.Default().Name)
	assert.ErrorIs(t, mgr.SetDefault("c"), wallet.ErrWalletNotFound)
}

func TestDefaultWalletWithSingleWallet(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())
	require.NoError(t, mgr.Add("only", hardhatAddr0))
	require.NotNil(t, mgr.Default())
	assert.Equal(t, "only", mgr.Default().Name)
}

func TestSignerForWatchOnlyWallet(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())
	require.NoError(t, mgr.Add("viewer", hardhatAddr1))

	_, err := mgr.Signer("viewer")
	assert.ErrorIs(t, err, wallet.ErrWatchOnly)

	_, err = mgr.Signer("nobody")
	assert.ErrorIs(t, err, wallet.ErrWalletNotFound)
}

func TestSignerForSigningWallet(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())
	_, err := mgr.AddWithKey("hot", hardhatKey0)
	require.NoError(t, err)

	s, err := mgr.Signer("hot")
	require.NoError(t, err)
	assert.Equal(t, hardhatAddr0, s.Address())
}

func TestManagerPersistsThroughJSONStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")
	keys := wallet.NewInMemoryKeystore()

	mgr := wallet.NewManager(wallet.WithStore(wallet.NewJSONStore(path)), wallet.WithKeystore(keys))
	_, err := mgr.AddWithKey("hot", hardhatKey0)
	require.NoError(t, err)
	require.NoError(t, mgr.SetDefault("hot"))

	reloaded := wallet.NewManager(wallet.WithStore(wallet.NewJSONStore(path)), wallet.WithKeystore(keys))
	def := reloaded.Default()
	require.NotNil(t, def)
	assert.Equal(t, "hot", def.Name)

	s, err := reloaded.Signer("hot")
	require.NoError(t, err)
	assert.Equal(t, hardhatAddr0, s.Address())
}
