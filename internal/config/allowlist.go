package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

// Allowlist is the immutable set of addresses eligible for the presale.
type Allowlist struct {
	set map[string]struct{}
}

type allowlistFileYAML struct {
	Addresses []string `yaml:"addresses"`
}

// LoadAllowlist reads a YAML file of the form:
//
//	addresses:
//	  - 0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266
//
// A missing file yields an empty allowlist.
func LoadAllowlist(path string) (*Allowlist, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewAllowlist(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("reading allowlist: %w", err)
	}

	var f allowlistFileYAML
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing allowlist %s: %w", path, err)
	}
	return NewAllowlist(f.Addresses)
}

// NewAllowlist builds an allowlist, rejecting malformed addresses.
func NewAllowlist(addresses []string) (*Allowlist, error) {
	a := &Allowlist{set: make(map[string]struct{}, len(addresses))}
	for _, addr := range addresses {
		addr = strings.TrimSpace(addr)
		if !common.IsHexAddress(addr) {
			return nil, fmt.Errorf("invalid allowlist address %q", addr)
		}
		a.set[strings.ToLower(common.HexToAddress(addr).Hex())] = struct{}{}
	}
	return a, nil
}

// Contains reports whether addr is on the list (case-insensitive).
func (a *Allowlist) Contains(addr string) bool {
	if !common.IsHexAddress(addr) {
		return false
	}
	_, ok := a.set[strings.ToLower(common.HexToAddress(addr).Hex())]
	return ok
}

// Len returns the number of addresses.
func (a *Allowlist) Len() int { return len(a.set) }
