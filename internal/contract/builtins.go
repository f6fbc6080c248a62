package contract

import (
	"fmt"
	"sort"
)

// BuiltinKind describes a built-in contract interface embedded in the binary.
// New built-ins register themselves via init() in their own file: create
// internal/contract/<name>_abi.go and call RegisterBuiltin().
type BuiltinKind struct {
	ID          string // machine key, e.g. "mint721"
	Name        string // human label
	Description string // one-line summary shown by `w3mint abi --builtins`
	JSON        string // raw ABI array
}

var builtinRegistry = map[string]BuiltinKind{}

// RegisterBuiltin adds a built-in ABI to the global registry.
func RegisterBuiltin(b BuiltinKind) {
	builtinRegistry[b.ID] = b
}

// GetBuiltin returns a built-in by ID. ok is false if not found.
func GetBuiltin(id string) (BuiltinKind, bool) {
	b, ok := builtinRegistry[id]
	return b, ok
}

// BuiltinABI parses the ABI of a registered built-in.
func BuiltinABI(id string) (*ABI, error) {
	b, ok := builtinRegistry[id]
	if !ok {
		return nil, fmt.Errorf("unknown built-in ABI %q", id)
	}
	return ParseABI([]byte(b.JSON))
}

// AllBuiltins returns all registered built-ins sorted by ID.
func AllBuiltins() []BuiltinKind {
	out := make([]BuiltinKind, 0, len(builtinRegistry))
	for _, b := range builtinRegistry {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
