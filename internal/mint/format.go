package mint

import (
	"math"
	"math/big"
	"strings"
)

var weiPerEther = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// FormatEther renders a wei amount in ether with trailing zeros trimmed but
// at least one fractional digit: 1e16 → "0.01", 1e18 → "1.0".
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0.0"
	}
	neg := wei.Sign() < 0
	abs := new(big.Int).Abs(wei)

	whole, frac := new(big.Int).QuoRem(abs, weiPerEther, new(big.Int))
	fracStr := strings.TrimRight(leftPad(frac.String(), 18), "0")
	if fracStr == "" {
		fracStr = "0"
	}

	out := whole.String() + "." + fracStr
	if neg {
		out = "-" + out
	}
	return out
}

// ClampQuantity bounds a requested quantity to [1, maxMintCount-1]; the upper
// bound is applied first so a degenerate cap still yields 1. Caps beyond
// MaxInt64 saturate.
func ClampQuantity(q int64, maxMintCount uint64) int64 {
	hi := int64(math.MaxInt64)
	if limit := DisplayLimit(maxMintCount); limit < math.MaxInt64 {
		hi = int64(limit)
	}
	if q > hi {
		q = hi
	}
	if q < 1 {
		q = 1
	}
	return q
}

// DisplayLimit converts a zero-indexed contract limit to its displayed value
// (n-1), saturating at zero.
func DisplayLimit(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return n - 1
}

// TotalCost is unitPrice × quantity.
func TotalCost(unitPrice *big.Int, quantity int64) *big.Int {
	if unitPrice == nil {
		return new(big.Int)
	}
	return new(big.Int).Mul(unitPrice, big.NewInt(quantity))
}

func leftPad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return strings.Repeat("0", n-len(s)) + s
}
