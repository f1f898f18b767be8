package bank

import (
	"context"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/auctionlaunch/auctiond/internal/core/types"
)

func TestLedgerExecute(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()

	require.NoError(t, l.Deposit(ctx, types.Coins{types.NewInt64Coin("uusd", 100)}))
	require.True(t, l.Custody("uusd").Equal(sdkmath.NewInt(100)))

	err := l.Execute(ctx, nil, []Transfer{{To: "admin", Amount: types.NewInt64Coin("uusd", 60)}})
	require.NoError(t, err)
	require.True(t, l.Balance("admin", "uusd").Equal(sdkmath.NewInt(60)))
	require.True(t, l.Custody("uusd").Equal(sdkmath.NewInt(40)))
}

func TestLedgerExecuteSpendsOwnDeposit(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()

	// A transfer may draw on the deposit attached to the same call.
	deposit := types.Coins{types.NewInt64Coin("uusd", 100)}
	err := l.Execute(ctx, deposit, []Transfer{{To: "creator", Amount: types.NewInt64Coin("uusd", 100)}})
	require.NoError(t, err)
	require.True(t, l.Balance("creator", "uusd").Equal(sdkmath.NewInt(100)))
	require.True(t, l.Custody("uusd").IsZero())
}

func TestLedgerExecuteAllOrNothing(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()

	require.NoError(t, l.Deposit(ctx, types.Coins{types.NewInt64Coin("uusd", 50)}))

	// Second instruction overdraws, so neither the deposit nor the
	// first transfer applies.
	deposit := types.Coins{types.NewInt64Coin("uatom", 10)}
	err := l.Execute(ctx, deposit, []Transfer{
		{To: "a", Amount: types.NewInt64Coin("uusd", 30)},
		{To: "b", Amount: types.NewInt64Coin("uusd", 30)},
	})
	require.ErrorIs(t, err, ErrInsufficientCustody)
	require.True(t, l.Balance("a", "uusd").IsZero())
	require.True(t, l.Custody("uusd").Equal(sdkmath.NewInt(50)))
	require.True(t, l.Custody("uatom").IsZero())
}
