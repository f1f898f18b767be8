package engine

import (
	"github.com/auctionlaunch/auctiond/internal/bank"
)

// Attribute is one observable key/value effect of an operation.
type Attribute struct {
	Key   string
	Value string
}

// Response is the full observable outcome of an applied operation:
// attributes plus the transfer instructions that were executed with it.
type Response struct {
	Attributes []Attribute
	Transfers  []bank.Transfer
}

func (r *Response) addAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

func (r *Response) addTransfer(t bank.Transfer) *Response {
	r.Transfers = append(r.Transfers, t)
	return r
}

// Attribute returns the value for a key, empty if absent.
func (r *Response) Attribute(key string) string {
	for _, a := range r.Attributes {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}
