package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSQLiteRecorder(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "history.db")

	rec, err := Open(BackendSQLite, dsn)
	require.NoError(t, err)
	defer rec.Close()

	ctx := context.Background()
	require.NoError(t, rec.Record(ctx, Record{
		Operation: "bid",
		AuctionID: 3,
		Actor:     "bob",
		Denom:     "uatom",
		Amount:    "110",
		Price:     "55.000000000000000000",
		At:        time.Unix(1500, 0).UTC(),
	}))

	// Rows are queryable through the same handle.
	s := rec.(*store)
	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM auction_history WHERE operation = 'bid'`).Scan(&count))
	require.Equal(t, 1, count)

	var actor string
	var auctionID int64
	require.NoError(t, s.db.QueryRow(`SELECT actor, auction_id FROM auction_history`).Scan(&actor, &auctionID))
	require.Equal(t, "bob", actor)
	require.Equal(t, int64(3), auctionID)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("oracle", "dsn")
	require.Error(t, err)
}
