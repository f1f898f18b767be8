package types

import (
	"testing"

	sdkmath "cosmossdk.io/math"
)

func TestCoinsNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Coins
		want Coins
	}{
		{
			name: "merges duplicate denoms",
			in:   Coins{NewInt64Coin("uusd", 30), NewInt64Coin("uusd", 70)},
			want: Coins{NewInt64Coin("uusd", 100)},
		},
		{
			name: "drops zero amounts",
			in:   Coins{NewInt64Coin("uusd", 0), NewInt64Coin("uatom", 5)},
			want: Coins{NewInt64Coin("uatom", 5)},
		},
		{
			name: "sorts by denom",
			in:   Coins{NewInt64Coin("uusd", 1), NewInt64Coin("uatom", 2)},
			want: Coins{NewInt64Coin("uatom", 2), NewInt64Coin("uusd", 1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if !got.Equal(tt.want) {
				t.Errorf("Normalize() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCoinsEqual(t *testing.T) {
	a := Coins{NewInt64Coin("uusd", 100), NewInt64Coin("uatom", 50)}
	b := Coins{NewInt64Coin("uatom", 50), NewInt64Coin("uusd", 40), NewInt64Coin("uusd", 60)}
	if !a.Equal(b) {
		t.Errorf("expected %s to equal %s after normalization", a, b)
	}

	c := Coins{NewInt64Coin("uatom", 50)}
	if a.Equal(c) {
		t.Errorf("expected %s to differ from %s", a, c)
	}
}

func TestMustPay(t *testing.T) {
	tests := []struct {
		name    string
		funds   Coins
		denom   string
		want    int64
		wantErr bool
	}{
		{
			name:  "exact single denom",
			funds: Coins{NewInt64Coin("uusd", 100)},
			denom: "uusd",
			want:  100,
		},
		{
			name:  "duplicate entries are summed",
			funds: Coins{NewInt64Coin("uusd", 40), NewInt64Coin("uusd", 60)},
			denom: "uusd",
			want:  100,
		},
		{
			name:    "no funds",
			funds:   nil,
			denom:   "uusd",
			wantErr: true,
		},
		{
			name:    "zero amount is absence",
			funds:   Coins{NewInt64Coin("uusd", 0)},
			denom:   "uusd",
			wantErr: true,
		},
		{
			name:    "wrong denom",
			funds:   Coins{NewInt64Coin("uatom", 100)},
			denom:   "uusd",
			wantErr: true,
		},
		{
			name:    "extra denom",
			funds:   Coins{NewInt64Coin("uusd", 100), NewInt64Coin("uatom", 1)},
			denom:   "uusd",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MustPay(tt.funds, tt.denom)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(sdkmath.NewInt(tt.want)) {
				t.Errorf("MustPay() = %s, want %d", got, tt.want)
			}
		})
	}
}
