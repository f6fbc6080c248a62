package contract

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"golang.org/x/crypto/sha3"
)

// ErrFunctionNotFound is returned when a method is not present in the ABI.
var ErrFunctionNotFound = errors.New("function not found in ABI")

// ABIEntry is one ABI entry (function, event, etc.).
type ABIEntry struct {
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	Inputs          []ABIParam `json:"inputs"`
	Outputs         []ABIParam `json:"outputs"`
	StateMutability string     `json:"stateMutability"`
}

// ABIParam is a parameter in an ABI entry.
type ABIParam struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// IsReadFunction returns true if the function is read-only (view/pure).
func (e ABIEntry) IsReadFunction() bool {
	return e.Type == "function" &&
		(e.StateMutability == "view" || e.StateMutability == "pure")
}

// IsWriteFunction returns true if the function modifies state.
func (e ABIEntry) IsWriteFunction() bool {
	return e.Type == "function" &&
		(e.StateMutability == "nonpayable" || e.StateMutability == "payable")
}

// IsPayable reports whether the function accepts native value.
func (e ABIEntry) IsPayable() bool {
	return e.Type == "function" && e.StateMutability == "payable"
}

// Signature returns the canonical signature, e.g. "mint(uint256)".
func (e ABIEntry) Signature() string {
	types := make([]string, len(e.Inputs))
	for i, p := range e.Inputs {
		types[i] = p.Type
	}
	return e.Name + "(" + strings.Join(types, ",") + ")"
}

// Selector computes the 4-byte function selector as a 0x-prefixed hex string.
func (e ABIEntry) Selector() string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(e.Signature()))
	return "0x" + hex.EncodeToString(h.Sum(nil)[:4])
}

// ABI is a contract interface: the lightweight entries used for listing and
// lookups plus the go-ethereum parsed form used for packing and unpacking.
type ABI struct {
	Entries []ABIEntry
	parsed  abi.ABI
}

// ParseABI parses a raw ABI JSON array.
func ParseABI(data []byte) (*ABI, error) {
	var entries []ABIEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		data = bytes.TrimSpace(data)
		if len(data) > 0 && data[0] == '{' {
			return nil, fmt.Errorf("file is a JSON object, not an ABI array; a Hardhat/Foundry artifact must have an \"abi\" key")
		}
		return nil, fmt.Errorf("invalid ABI JSON: %w", err)
	}
	parsed, err := abi.JSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing ABI: %w", err)
	}
	return &ABI{Entries: entries, parsed: parsed}, nil
}

// LoadFromArtifact loads an ABI from a local file that is either:
//   - a raw ABI JSON array: [{"type":"function",...}, ...]
//   - a Hardhat/Foundry artifact: {"abi":[...],"bytecode":"0x...",...}
//
// Both formats are detected automatically.
func LoadFromArtifact(path string) (*ABI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read ABI file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("ABI file is empty: %s", path)
	}

	var artifact struct {
		ABI json.RawMessage `json:"abi"`
	}
	if json.Unmarshal(data, &artifact) == nil && len(artifact.ABI) > 1 && artifact.ABI[0] == '[' {
		data = artifact.ABI
	}

	a, err := ParseABI(data)
	if err != nil {
		return nil, err
	}
	if err := a.validate(path); err != nil {
		return nil, err
	}
	return a, nil
}

// Function finds a function entry by name.
func (a *ABI) Function(name string) (*ABIEntry, error) {
	for i := range a.Entries {
		if a.Entries[i].Type == "function" && a.Entries[i].Name == name {
			return &a.Entries[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrFunctionNotFound, name)
}

// Functions returns all function entries in declaration order.
func (a *ABI) Functions() []ABIEntry {
	var out []ABIEntry
	for _, e := range a.Entries {
		if e.Type == "function" {
			out = append(out, e)
		}
	}
	return out
}

// Pack builds calldata for method with Go-typed args (*big.Int for uintN,
// common.Address for address, and so on).
func (a *ABI) Pack(method string, args ...any) ([]byte, error) {
	return a.parsed.Pack(method, args...)
}

// Unpack decodes the return data of method.
func (a *ABI) Unpack(method string, data []byte) ([]any, error) {
	return a.parsed.Unpack(method, data)
}

func (a *ABI) validate(path string) error {
	if len(a.Entries) == 0 {
		return fmt.Errorf("ABI is empty (no functions or events found): %s", path)
	}
	for _, e := range a.Entries {
		if e.Type == "function" || e.Type == "event" || e.Type == "constructor" {
			return nil
		}
	}
	return fmt.Errorf("ABI has %d entries but none are functions or events: %s", len(a.Entries), path)
}
