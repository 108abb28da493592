package entity

import "poolpower/internal/domain/value"

// Deal is one row of the Deals worksheet.
type Deal struct {
	ID               value.DealID `json:"id"`
	ItemName         string       `json:"item_name"`
	ShortDescription string       `json:"short_description"`
	TargetQty        int          `json:"target_qty"` // 0 when the sheet has no number
	EstPricePerItem  string       `json:"est_price_per_item"`
	ImageURL         string       `json:"image_url"`
	IsActive         bool         `json:"is_active"`
}

// ImportResult tells what a catalog import changed in storage.
type ImportResult struct {
	Upserted    int
	Deactivated int
}
