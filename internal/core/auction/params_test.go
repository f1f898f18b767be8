package auction

import (
	"errors"
	"testing"

	"github.com/auctionlaunch/auctiond/internal/core/types"
)

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		ok     bool
	}{
		{name: "valid", mutate: func(p *Params) {}, ok: true},
		{name: "empty admin", mutate: func(p *Params) { p.Admin = "" }},
		{name: "zero lead time", mutate: func(p *Params) { p.MinSecondsUntilStart = 0 }},
		{name: "zero max duration", mutate: func(p *Params) { p.MaxAuctionDuration = 0 }},
		{name: "empty accepted denom entry", mutate: func(p *Params) { p.AcceptedDenoms = []string{"uusd", ""} }},
		{name: "invalid fee", mutate: func(p *Params) { p.AuctionCreationFee = types.Coin{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidParams) {
				t.Errorf("Validate() = %v, want %v", err, ErrInvalidParams)
			}
		})
	}
}

func TestParamsApplyPartialUpdate(t *testing.T) {
	p := testParams()

	newAdmin := "new-admin"
	newLead := uint64(120)
	got := p.Apply(Update{Admin: &newAdmin, MinSecondsUntilStart: &newLead})

	if got.Admin != newAdmin {
		t.Errorf("admin = %s, want %s", got.Admin, newAdmin)
	}
	if got.MinSecondsUntilStart != newLead {
		t.Errorf("lead time = %d, want %d", got.MinSecondsUntilStart, newLead)
	}
	// Unsupplied fields keep their prior values.
	if got.MaxAuctionDuration != p.MaxAuctionDuration {
		t.Errorf("max duration changed: %d", got.MaxAuctionDuration)
	}
	if !got.AuctionCreationFee.Amount.Equal(p.AuctionCreationFee.Amount) {
		t.Errorf("creation fee changed: %s", got.AuctionCreationFee)
	}
	if len(got.AcceptedDenoms) != len(p.AcceptedDenoms) {
		t.Errorf("accepted denoms changed: %v", got.AcceptedDenoms)
	}
}

func TestParamsAcceptsDenom(t *testing.T) {
	p := testParams()
	if !p.AcceptsDenom("uusd") {
		t.Error("uusd should be accepted")
	}
	if p.AcceptsDenom("ujpy") {
		t.Error("ujpy should not be accepted")
	}

	p.AcceptedDenoms = nil
	if !p.AcceptsDenom("anything") {
		t.Error("empty accepted set should not restrict denoms")
	}
}
