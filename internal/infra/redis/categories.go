package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vietddude/appstore/internal/core/domain"
)

// ErrNoSnapshot is returned when no category snapshot has been stored.
var ErrNoSnapshot = errors.New("no category snapshot")

// CategorySnapshot is the mirrored form of a resolved category list.
type CategorySnapshot struct {
	Categories []domain.Category `json:"categories"`
	Fallback   bool              `json:"fallback"`
	SavedAt    time.Time         `json:"saved_at"`
}

// SaveCategories stores the resolved list. The snapshot is informational
// only; it is never read back into a provider's cache.
func (c *Client) SaveCategories(ctx context.Context, categories []domain.Category, fallback bool) error {
	data, err := encodeSnapshot(categories, fallback, time.Now())
	if err != nil {
		return err
	}

	if err := c.rdb.Set(ctx, c.categoriesKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set category snapshot: %w", err)
	}
	return nil
}

// LoadCategories returns the last stored snapshot.
func (c *Client) LoadCategories(ctx context.Context) (*CategorySnapshot, error) {
	data, err := c.rdb.Get(ctx, c.categoriesKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to get category snapshot: %w", err)
	}
	return decodeSnapshot(data)
}

func encodeSnapshot(categories []domain.Category, fallback bool, savedAt time.Time) ([]byte, error) {
	data, err := json.Marshal(CategorySnapshot{
		Categories: categories,
		Fallback:   fallback,
		SavedAt:    savedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal category snapshot: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) (*CategorySnapshot, error) {
	var snap CategorySnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal category snapshot: %w", err)
	}
	return &snap, nil
}
