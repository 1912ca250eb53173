package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/estampaviva/estampa-api/internal/models"
)

// CartStore persists per-session carts as JSON blobs in Redis. Each mutation
// rewrites the whole blob; carts are small and single-writer per session, so
// no finer-grained structure is needed. Keys expire after the configured TTL
// so abandoned carts clean themselves up.
type CartStore struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewCartStore creates a CartStore with the given idle TTL.
func NewCartStore(redis *RedisClient, ttl time.Duration) *CartStore {
	return &CartStore{redis: redis, ttl: ttl}
}

func (s *CartStore) key(sessionID string) string {
	return fmt.Sprintf("cart:sess:%s", sessionID)
}

// Get loads the cart for a session. A missing key yields an empty cart, not
// an error: a session that never added anything simply has nothing in it.
func (s *CartStore) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	var cart models.Cart
	found, err := s.redis.GetJSON(ctx, s.key(sessionID), &cart)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if !found {
		return &models.Cart{SessionID: sessionID}, nil
	}
	cart.SessionID = sessionID
	return &cart, nil
}

// Save writes the cart back and refreshes its TTL.
func (s *CartStore) Save(ctx context.Context, cart *models.Cart) error {
	if err := s.redis.SetJSON(ctx, s.key(cart.SessionID), cart, s.ttl); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the cart for a session.
func (s *CartStore) Delete(ctx context.Context, sessionID string) error {
	return s.redis.Delete(ctx, s.key(sessionID))
}
