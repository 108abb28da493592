package entity

import "poolpower/internal/domain/value"

// ActionableItem is what the rendering layer exposes for every deal a shopper
// can start a pool for. It is read-only to the pool handler.
type ActionableItem struct {
	DealID        value.DealID
	ItemName      string
	ContactNumber value.ContactNumber
}

// PoolRequest lives for one activation only: it is built from the answer to
// the quantity prompt and consumed to build the messaging link.
type PoolRequest struct {
	Quantity      value.Quantity
	DealID        value.DealID
	ItemName      string
	ContactNumber value.ContactNumber
}

func NewPoolRequest(item ActionableItem, quantity value.Quantity) PoolRequest {
	return PoolRequest{
		Quantity:      quantity,
		DealID:        item.DealID,
		ItemName:      item.ItemName,
		ContactNumber: item.ContactNumber,
	}
}
