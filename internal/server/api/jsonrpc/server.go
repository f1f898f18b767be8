// Package jsonrpc exposes the auction engine over JSON-RPC 2.0 on HTTP.
package jsonrpc

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/auctionlaunch/auctiond/internal/core/auction"
)

// JSON-RPC 2.0 error codes, plus one server range code for domain errors.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
	codeDomainError    = -32000
)

// Server serves the auction JSON-RPC API.
type Server struct {
	handler *AuctionHandler
}

// NewServer creates a JSON-RPC server over a handler.
func NewServer(handler *AuctionHandler) *Server {
	return &Server{handler: handler}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		JsonRPC string          `json:"jsonrpc"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params"`
		ID      interface{}     `json:"id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, nil, codeParseError, "Parse error", nil)
		return
	}

	result, err := s.handler.Handle(r.Context(), req.Method, req.Params)
	if err != nil {
		writeError(w, req.ID, errorCode(err), err.Error(), nil)
		return
	}

	response := map[string]interface{}{
		"jsonrpc": "2.0",
		"result":  result,
		"id":      req.ID,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// errorCode maps handler errors to JSON-RPC codes. Domain rejections
// share one server-defined code; the message carries the detail.
func errorCode(err error) int {
	var notFound ErrMethodNotFound
	if errors.As(err, &notFound) {
		return codeMethodNotFound
	}
	var badParams ErrBadParams
	if errors.As(err, &badParams) {
		return codeInvalidParams
	}

	for _, domain := range []error{
		auction.ErrUnauthorized,
		auction.ErrEndPriceAboveStartingPrice,
		auction.ErrInvalidTimeRange,
		auction.ErrSameDenomination,
		auction.ErrStartTimeInPast,
		auction.ErrStartTimeTooSoon,
		auction.ErrDurationTooLong,
		auction.ErrDenomNotAccepted,
		auction.ErrInvalidParams,
		auction.ErrInvalidFunds,
		auction.ErrBidTooSmall,
		auction.ErrAuctionNotFound,
		auction.ErrAuctionNotActive,
		auction.ErrAuctionCannotBeCanceled,
		auction.ErrInsufficientRemainingAmount,
	} {
		if errors.Is(err, domain) {
			return codeDomainError
		}
	}
	return codeInternalError
}

func writeError(w http.ResponseWriter, id interface{}, code int, message string, data interface{}) {
	response := map[string]interface{}{
		"jsonrpc": "2.0",
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
			"data":    data,
		},
		"id": id,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
