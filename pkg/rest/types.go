// Package rest holds the JSON shapes of the public HTTP API.
package rest

import (
	"bytes"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

type Deal struct {
	ID               string `json:"id"`
	ItemName         string `json:"itemName"`
	ShortDescription string `json:"shortDescription"`
	// TargetQty is omitted when the sheet gives no number.
	TargetQty       int    `json:"targetQty,omitempty"`
	EstPricePerItem string `json:"estPricePerItem"`
	ImageURL        string `json:"imageUrl"`
}

type DealList struct {
	Deals []Deal `json:"deals"`
}

// PoolRequest asks for a messaging link. A missing quantity is treated like
// a dismissed prompt.
type PoolRequest struct {
	DealID   string    `json:"dealId" validate:"required"`
	Quantity *Quantity `json:"quantity"`
}

type PoolLink struct {
	URL string `json:"url"`
}

// Quantity is the raw answer to the quantity question. Both 3 and "3 units"
// are accepted on the wire; the number is parsed later.
type Quantity string

func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := jsoniter.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("jsoniter.Unmarshal: %w", err)
		}

		*q = Quantity(s)

		return nil
	}

	*q = Quantity(data)

	return nil
}

func (q Quantity) String() string {
	return string(q)
}

// Error is the error envelope.
type Error struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	SupportID string    `json:"supportId"`
}

type ErrorCode string
