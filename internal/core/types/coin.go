package types

import (
	"fmt"
	"sort"
	"strings"

	sdkmath "cosmossdk.io/math"
)

// Coin is an amount of a single fungible asset.
type Coin struct {
	Denom  string
	Amount sdkmath.Int
}

// NewCoin creates a Coin from a denom and an amount.
func NewCoin(denom string, amount sdkmath.Int) Coin {
	return Coin{Denom: denom, Amount: amount}
}

// NewInt64Coin creates a Coin from a denom and an int64 amount.
func NewInt64Coin(denom string, amount int64) Coin {
	return Coin{Denom: denom, Amount: sdkmath.NewInt(amount)}
}

// IsValid reports whether the coin has a denom and a non-negative amount.
func (c Coin) IsValid() bool {
	return c.Denom != "" && !c.Amount.IsNil() && !c.Amount.IsNegative()
}

// IsZero reports whether the amount is zero.
func (c Coin) IsZero() bool {
	return c.Amount.IsZero()
}

// IsPositive reports whether the amount is strictly positive.
func (c Coin) IsPositive() bool {
	return c.Amount.IsPositive()
}

func (c Coin) String() string {
	return c.Amount.String() + c.Denom
}

// Coins is a fund manifest: a set of coins attached to an operation.
type Coins []Coin

// NewCoins returns the normalized manifest built from the given coins.
func NewCoins(coins ...Coin) Coins {
	return Coins(coins).Normalize()
}

// Normalize merges duplicate denoms, drops zero amounts and sorts by denom.
func (cs Coins) Normalize() Coins {
	byDenom := make(map[string]sdkmath.Int, len(cs))
	for _, c := range cs {
		if c.Amount.IsNil() || c.Amount.IsZero() {
			continue
		}
		if have, ok := byDenom[c.Denom]; ok {
			byDenom[c.Denom] = have.Add(c.Amount)
		} else {
			byDenom[c.Denom] = c.Amount
		}
	}
	out := make(Coins, 0, len(byDenom))
	for denom, amount := range byDenom {
		out = append(out, Coin{Denom: denom, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Denom < out[j].Denom })
	return out
}

// Equal reports whether two manifests hold the same assets, comparing
// normalized forms so ordering and duplicate entries do not matter.
func (cs Coins) Equal(other Coins) bool {
	a, b := cs.Normalize(), other.Normalize()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Denom != b[i].Denom || !a[i].Amount.Equal(b[i].Amount) {
			return false
		}
	}
	return true
}

// AmountOf returns the amount of the given denom, zero if absent.
func (cs Coins) AmountOf(denom string) sdkmath.Int {
	total := sdkmath.ZeroInt()
	for _, c := range cs {
		if c.Denom == denom {
			total = total.Add(c.Amount)
		}
	}
	return total
}

// IsValid reports whether every coin in the manifest is valid.
func (cs Coins) IsValid() bool {
	for _, c := range cs {
		if !c.IsValid() {
			return false
		}
	}
	return true
}

func (cs Coins) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

// MustPay extracts the attached payment in the given denom. The manifest
// must consist of exactly that denom with a positive amount; anything
// else is a payment error.
func MustPay(funds Coins, denom string) (sdkmath.Int, error) {
	norm := funds.Normalize()
	switch len(norm) {
	case 0:
		return sdkmath.Int{}, fmt.Errorf("no funds attached, expected %s", denom)
	case 1:
		if norm[0].Denom != denom {
			return sdkmath.Int{}, fmt.Errorf("attached %s, expected %s", norm[0].Denom, denom)
		}
		return norm[0].Amount, nil
	default:
		return sdkmath.Int{}, fmt.Errorf("multiple denoms attached, expected only %s", denom)
	}
}
