package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auctionlaunch/auctiond/internal/bank"
	"github.com/auctionlaunch/auctiond/internal/core/auction"
	"github.com/auctionlaunch/auctiond/internal/core/engine"
	"github.com/auctionlaunch/auctiond/internal/core/types"
	"github.com/auctionlaunch/auctiond/internal/storage/auctionstore"
	"github.com/auctionlaunch/auctiond/internal/storage/keyValueDb/memory"
)

var baseTime = time.Unix(1_700_000_000, 0).UTC()

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
	ID     interface{}     `json:"id"`
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	store := auctionstore.New(memory.NewDB())
	require.NoError(t, store.InitGenesis(context.Background(), auction.Params{
		AuctionCreationFee:   types.NewInt64Coin("ufee", 100),
		Admin:                "addr_admin",
		MinSecondsUntilStart: 500,
		MaxAuctionDuration:   86400,
	}))

	handler := NewAuctionHandler(engine.New(store, bank.NewLedger()))
	handler.now = func() time.Time { return baseTime }
	return NewServer(handler)
}

func call(t *testing.T, s *Server, method string, params interface{}) rpcResponse {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
		"id":      1,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp rpcResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func createParams() CreateAuctionParams {
	return CreateAuctionParams{
		Sender: "addr_creator",
		Funds: []CoinJSON{
			{Denom: "ufee", Amount: "100"},
			{Denom: "utoken", Amount: "1000"},
		},
		OfferedAsset:  CoinJSON{Denom: "utoken", Amount: "1000"},
		InDenom:       "uusd",
		StartingPrice: "2.0",
		EndPrice:      "1.0",
		StartTime:     baseTime.Add(1000 * time.Second).Unix(),
		EndTime:       baseTime.Add(2000 * time.Second).Unix(),
	}
}

func TestCreateAndQueryAuction(t *testing.T) {
	s := newTestServer(t)

	resp := call(t, s, "create_auction", createParams())
	require.Nil(t, resp.Error)

	var result ExecuteResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	attrs := make(map[string]string, len(result.Attributes))
	for _, a := range result.Attributes {
		attrs[a.Key] = a.Value
	}
	assert.Equal(t, "create_auction", attrs["action"])
	assert.Equal(t, "1", attrs["auction_id"])
	require.Len(t, result.Transfers, 1)
	assert.Equal(t, "addr_admin", result.Transfers[0].To)

	resp = call(t, s, "auction", AuctionQueryParams{AuctionID: 1})
	require.Nil(t, resp.Error)

	var a AuctionJSON
	require.NoError(t, json.Unmarshal(resp.Result, &a))
	assert.Equal(t, uint64(1), a.ID)
	assert.Equal(t, "addr_creator", a.Creator)
	assert.Equal(t, "1000", a.RemainingAmount)
	assert.False(t, a.Active)
}

func TestAuctionsPage(t *testing.T) {
	s := newTestServer(t)

	for i := 0; i < 3; i++ {
		resp := call(t, s, "create_auction", createParams())
		require.Nil(t, resp.Error)
	}

	after := uint64(1)
	resp := call(t, s, "auctions", AuctionsQueryParams{StartAfter: &after})
	require.Nil(t, resp.Error)

	var page AuctionsJSON
	require.NoError(t, json.Unmarshal(resp.Result, &page))
	require.Len(t, page.Auctions, 2)
	assert.Equal(t, uint64(2), page.Auctions[0].ID)
	assert.Equal(t, uint64(3), page.Auctions[1].ID)
}

func TestParamsQuery(t *testing.T) {
	s := newTestServer(t)

	resp := call(t, s, "params", nil)
	require.Nil(t, resp.Error)

	var p ParamsJSON
	require.NoError(t, json.Unmarshal(resp.Result, &p))
	assert.Equal(t, "addr_admin", p.Admin)
	assert.Equal(t, "100", p.AuctionCreationFee.Amount)
}

func TestChangeParamsViaRPC(t *testing.T) {
	s := newTestServer(t)

	admin := "addr_other"
	resp := call(t, s, "change_params", ChangeParamsParams{
		Sender: "addr_admin",
		Update: ParamsUpdateJSON{Admin: &admin},
	})
	require.Nil(t, resp.Error)

	resp = call(t, s, "params", nil)
	require.Nil(t, resp.Error)
	var p ParamsJSON
	require.NoError(t, json.Unmarshal(resp.Result, &p))
	assert.Equal(t, "addr_other", p.Admin)
}

func TestDomainErrorCode(t *testing.T) {
	s := newTestServer(t)

	resp := call(t, s, "auction", AuctionQueryParams{AuctionID: 42})
	require.NotNil(t, resp.Error)
	assert.Equal(t, codeDomainError, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "not found")
}

func TestMethodNotFound(t *testing.T) {
	s := newTestServer(t)

	resp := call(t, s, "no_such_method", nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, codeMethodNotFound, resp.Error.Code)
}

func TestParseError(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var resp rpcResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, codeParseError, resp.Error.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
