package bank

import (
	"context"
	"errors"
	"fmt"
	"sync"

	sdkmath "cosmossdk.io/math"

	"github.com/auctionlaunch/auctiond/internal/core/types"
)

// ErrInsufficientCustody is returned when a transfer exceeds the funds
// held in custody.
var ErrInsufficientCustody = errors.New("insufficient funds in custody")

// Transfer is one value-transfer instruction: move an amount from the
// system's custody to an address.
type Transfer struct {
	To     string
	Amount types.Coin
}

// Bank executes the value movements an operation produced. Execute is
// the atomic seam: either the deposit and every transfer apply
// together, or custody is left untouched and an error is returned.
type Bank interface {
	// Execute credits the attached funds to custody and pays the
	// transfer instructions out of it, all-or-nothing.
	Execute(ctx context.Context, deposit types.Coins, transfers []Transfer) error

	// Deposit credits funds to custody without paying anything out.
	Deposit(ctx context.Context, funds types.Coins) error
}

// Ledger is an in-process Bank: a custody balance per denom plus the
// balances paid out per address. It stands in for the external value
// transfer mechanism when auctiond runs standalone.
type Ledger struct {
	mu       sync.Mutex
	custody  map[string]sdkmath.Int
	balances map[string]map[string]sdkmath.Int
}

func NewLedger() *Ledger {
	return &Ledger{
		custody:  make(map[string]sdkmath.Int),
		balances: make(map[string]map[string]sdkmath.Int),
	}
}

func (l *Ledger) Deposit(ctx context.Context, funds types.Coins) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, c := range funds.Normalize() {
		l.credit(l.custody, c)
	}
	return nil
}

func (l *Ledger) Execute(ctx context.Context, deposit types.Coins, transfers []Transfer) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Stage custody in a scratch copy so a failing debit leaves the
	// ledger exactly as it was.
	scratch := make(map[string]sdkmath.Int, len(l.custody))
	for denom, amount := range l.custody {
		scratch[denom] = amount
	}
	for _, c := range deposit.Normalize() {
		l.credit(scratch, c)
	}
	for _, tr := range transfers {
		if !tr.Amount.IsValid() {
			return fmt.Errorf("invalid transfer amount %s", tr.Amount)
		}
		have, ok := scratch[tr.Amount.Denom]
		if !ok || have.LT(tr.Amount.Amount) {
			return fmt.Errorf("%w: need %s%s", ErrInsufficientCustody, tr.Amount.Amount, tr.Amount.Denom)
		}
		scratch[tr.Amount.Denom] = have.Sub(tr.Amount.Amount)
	}

	l.custody = scratch
	for _, tr := range transfers {
		acct, ok := l.balances[tr.To]
		if !ok {
			acct = make(map[string]sdkmath.Int)
			l.balances[tr.To] = acct
		}
		l.credit(acct, tr.Amount)
	}
	return nil
}

func (l *Ledger) credit(m map[string]sdkmath.Int, c types.Coin) {
	if have, ok := m[c.Denom]; ok {
		m[c.Denom] = have.Add(c.Amount)
	} else {
		m[c.Denom] = c.Amount
	}
}

// Balance returns the amount delivered to an address in a denom.
func (l *Ledger) Balance(addr, denom string) sdkmath.Int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if acct, ok := l.balances[addr]; ok {
		if have, ok := acct[denom]; ok {
			return have
		}
	}
	return sdkmath.ZeroInt()
}

// Custody returns the amount currently held in custody for a denom.
func (l *Ledger) Custody(denom string) sdkmath.Int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if have, ok := l.custody[denom]; ok {
		return have
	}
	return sdkmath.ZeroInt()
}
