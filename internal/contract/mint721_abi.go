package contract

// DefaultMintABI is the built-in used when no artifact is configured.
const DefaultMintABI = "mint721"

// mint721 is the public-sale ERC-721 surface the storefront talks to.
//
// Function selectors:
//
//	paused()            → 0x5c975abb
//	totalSupply()       → 0x18160ddd
//	maxSupply()         → 0xd5abeb01
//	balanceOf(address)  → 0x70a08231
//	ownerOf(uint256)    → 0x6352211e
//	tokenURI(uint256)   → 0xc87b56dd
//	mint(uint256)       → 0xa0712d68
func init() {
	RegisterBuiltin(BuiltinKind{
		ID:          DefaultMintABI,
		Name:        "Public mint ERC-721",
		Description: "ERC-721 with payable mint(quantity), price, per-tx cap, max supply and pause flag.",
		JSON:        mint721JSON,
	})
}

const mint721JSON = `[
  {"type":"function","name":"paused","inputs":[],"outputs":[{"name":"","type":"bool"}],"stateMutability":"view"},
  {"type":"function","name":"totalSupply","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
  {"type":"function","name":"maxSupply","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
  {"type":"function","name":"ETH_PRICE","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
  {"type":"function","name":"MAX_MINT_COUNT","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
  {"type":"function","name":"name","inputs":[],"outputs":[{"name":"","type":"string"}],"stateMutability":"view"},
  {"type":"function","name":"symbol","inputs":[],"outputs":[{"name":"","type":"string"}],"stateMutability":"view"},
  {"type":"function","name":"balanceOf","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
  {"type":"function","name":"ownerOf","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"},
  {"type":"function","name":"tokenURI","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"string"}],"stateMutability":"view"},
  {"type":"function","name":"mint","inputs":[{"name":"quantity","type":"uint256"}],"outputs":[],"stateMutability":"payable"},
  {"type":"event","name":"Transfer","anonymous":false,"inputs":[
    {"name":"from","type":"address","indexed":true},
    {"name":"to","type":"address","indexed":true},
    {"name":"tokenId","type":"uint256","indexed":true}]}
]`
