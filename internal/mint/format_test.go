package mint_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/Mohsinsiddi/w3mint/internal/mint"
	"github.com/stretchr/testify/assert"
)

func TestFormatEther(t *testing.T) {
	tests := []struct {
		wei  string
		want string
	}{
		{"10000000000000000", "0.01"},
		{"1000000000000000000", "1.0"},
		{"1500000000000000000", "1.5"},
		{"0", "0.0"},
		{"1", "0.000000000000000001"},
		{"123456789000000000000", "123.456789"},
	}
	for _, tt := range tests {
		t.Run(tt.wei, func(t *testing.T) {
			wei, _ := new(big.Int).SetString(tt.wei, 10)
			assert.Equal(t, tt.want, mint.FormatEther(wei))
		})
	}
	assert.Equal(t, "0.0", mint.FormatEther(nil))
}

func TestClampQuantity(t *testing.T) {
	// MAX_MINT_COUNT 6 → 5 per transaction.
	tests := []struct {
		in   int64
		want int64
	}{
		{-4, 1}, {0, 1}, {1, 1}, {3, 3}, {5, 5}, {6, 5}, {1000, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mint.ClampQuantity(tt.in, 6), "input %d", tt.in)
	}
}

func TestClampQuantityDegenerateCap(t *testing.T) {
	assert.Equal(t, int64(1), mint.ClampQuantity(4, 1))
	assert.Equal(t, int64(1), mint.ClampQuantity(4, 0))
}

func TestClampQuantityHugeCap(t *testing.T) {
	assert.Equal(t, int64(3), mint.ClampQuantity(3, math.MaxUint64))
	assert.Equal(t, int64(3), mint.ClampQuantity(3, uint64(math.MaxInt64)+1))
	assert.Equal(t, int64(math.MaxInt64), mint.ClampQuantity(math.MaxInt64, math.MaxUint64))
}

func TestDisplayLimit(t *testing.T) {
	assert.Equal(t, uint64(999), mint.DisplayLimit(1000))
	assert.Equal(t, uint64(5), mint.DisplayLimit(6))
	assert.Equal(t, uint64(0), mint.DisplayLimit(0))
}

func TestTotalCost(t *testing.T) {
	price := big.NewInt(10_000_000_000_000_000)
	assert.Equal(t, "30000000000000000", mint.TotalCost(price, 3).String())
	assert.Equal(t, "0", mint.TotalCost(nil, 3).String())
}
