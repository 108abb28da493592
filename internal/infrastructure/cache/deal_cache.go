// Package cache holds the Redis-backed read cache for the deal catalog.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"poolpower/internal/domain/entity"
	"poolpower/internal/domain/value"
)

const activeDealsKey = "poolpower:deals:active"

// ErrMiss is returned when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

type dealRecord struct {
	ID               string `json:"id"`
	ItemName         string `json:"itemName"`
	ShortDescription string `json:"shortDescription"`
	TargetQty        int    `json:"targetQty"`
	EstPricePerItem  string `json:"estPricePerItem"`
	ImageURL         string `json:"imageUrl"`
	IsActive         bool   `json:"isActive"`
}

// DealCache keeps the active deal list in Redis, shared by every replica.
type DealCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDealCache(client *redis.Client, ttl time.Duration) *DealCache {
	return &DealCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *DealCache) GetActive(ctx context.Context) ([]entity.Deal, error) {
	raw, err := c.client.Get(ctx, activeDealsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}

	if err != nil {
		return nil, fmt.Errorf("client.Get: %w", err)
	}

	var records []dealRecord
	if err := jsoniter.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("jsoniter.Unmarshal: %w", err)
	}

	deals := make([]entity.Deal, 0, len(records))
	for _, r := range records {
		deals = append(deals, entity.Deal{
			ID:               value.DealID(r.ID),
			ItemName:         r.ItemName,
			ShortDescription: r.ShortDescription,
			TargetQty:        r.TargetQty,
			EstPricePerItem:  r.EstPricePerItem,
			ImageURL:         r.ImageURL,
			IsActive:         r.IsActive,
		})
	}

	return deals, nil
}

func (c *DealCache) SetActive(ctx context.Context, deals []entity.Deal) error {
	records := make([]dealRecord, 0, len(deals))
	for _, d := range deals {
		records = append(records, dealRecord{
			ID:               d.ID.String(),
			ItemName:         d.ItemName,
			ShortDescription: d.ShortDescription,
			TargetQty:        d.TargetQty,
			EstPricePerItem:  d.EstPricePerItem,
			ImageURL:         d.ImageURL,
			IsActive:         d.IsActive,
		})
	}

	raw, err := jsoniter.Marshal(records)
	if err != nil {
		return fmt.Errorf("jsoniter.Marshal: %w", err)
	}

	if err := c.client.Set(ctx, activeDealsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

func (c *DealCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, activeDealsKey).Err(); err != nil {
		return fmt.Errorf("client.Del: %w", err)
	}

	return nil
}
