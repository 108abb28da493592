package persistence

import (
	"time"

	"poolpower/internal/domain/entity"
	"poolpower/internal/domain/value"
)

// dealSchema maps a row of the deals table.
type dealSchema struct {
	ID               string    `db:"id"`
	ItemName         string    `db:"item_name"`
	ShortDescription string    `db:"short_description"`
	TargetQty        int       `db:"target_qty"`
	EstPricePerItem  string    `db:"est_price_per_item"`
	ImageURL         string    `db:"image_url"`
	IsActive         bool      `db:"is_active"`
	Position         int       `db:"position"`
	SyncedAt         time.Time `db:"synced_at"` // written on import, not selected
}

func fromDeal(d entity.Deal, position int, syncedAt time.Time) dealSchema {
	return dealSchema{
		ID:               d.ID.String(),
		ItemName:         d.ItemName,
		ShortDescription: d.ShortDescription,
		TargetQty:        d.TargetQty,
		EstPricePerItem:  d.EstPricePerItem,
		ImageURL:         d.ImageURL,
		IsActive:         d.IsActive,
		Position:         position,
		SyncedAt:         syncedAt,
	}
}

func (s dealSchema) toDomain() entity.Deal {
	return entity.Deal{
		ID:               value.DealID(s.ID),
		ItemName:         s.ItemName,
		ShortDescription: s.ShortDescription,
		TargetQty:        s.TargetQty,
		EstPricePerItem:  s.EstPricePerItem,
		ImageURL:         s.ImageURL,
		IsActive:         s.IsActive,
	}
}
