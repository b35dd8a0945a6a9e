package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ssroyels/Trendex/internal/domain"
)

// Session store keys, mirroring the browser-local storage keys the web
// client uses. Each lives under a per-session namespace.
const (
	keyCart           = "cart"
	keyAddress        = "address"
	keyOrderData      = "order_data"
	keyOrderConfirmed = "order_confirmed"
	keyOrderStatus    = "order_status"
)

// SessionStore implements repository.SessionStore using Redis. A value that
// fails to decode is deleted and read back as absent; corrupt state never
// propagates past the load boundary.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a Redis-backed session store with the given TTL.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(sessionID, field string) string {
	return "session:" + sessionID + ":" + field
}

// loadJSON reads and decodes a session value. Missing keys and corrupt
// values both come back as (false, nil); corrupt values are discarded.
func (s *SessionStore) loadJSON(ctx context.Context, sessionID, field string, target any) (bool, error) {
	key := sessionKey(sessionID, field)

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("redis get %s: %w", field, err)
	}

	if err := json.Unmarshal(data, target); err != nil {
		_ = s.client.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (s *SessionStore) saveJSON(ctx context.Context, sessionID, field string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", field, err)
	}
	if err := s.client.Set(ctx, sessionKey(sessionID, field), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", field, err)
	}
	return nil
}

// LoadCart rehydrates the session's cart. A missing or corrupt value yields
// an empty cart.
func (s *SessionStore) LoadCart(ctx context.Context, sessionID string) (domain.Cart, error) {
	cart := domain.NewCart()
	if _, err := s.loadJSON(ctx, sessionID, keyCart, &cart); err != nil {
		return nil, err
	}
	if cart == nil {
		cart = domain.NewCart()
	}
	return cart, nil
}

// SaveCart persists the full cart mapping.
func (s *SessionStore) SaveCart(ctx context.Context, sessionID string, cart domain.Cart) error {
	return s.saveJSON(ctx, sessionID, keyCart, cart)
}

// LoadAddress returns the session's saved address, or nil when absent.
func (s *SessionStore) LoadAddress(ctx context.Context, sessionID string) (*domain.Address, error) {
	var addr domain.Address
	ok, err := s.loadJSON(ctx, sessionID, keyAddress, &addr)
	if err != nil || !ok {
		return nil, err
	}
	return &addr, nil
}

// SaveAddress persists the session's delivery address.
func (s *SessionStore) SaveAddress(ctx context.Context, sessionID string, address *domain.Address) error {
	return s.saveJSON(ctx, sessionID, keyAddress, address)
}

// LoadPendingOrder returns the checkout snapshot, or nil when absent.
func (s *SessionStore) LoadPendingOrder(ctx context.Context, sessionID string) (*domain.PendingOrder, error) {
	var order domain.PendingOrder
	ok, err := s.loadJSON(ctx, sessionID, keyOrderData, &order)
	if err != nil || !ok {
		return nil, err
	}
	return &order, nil
}

// SavePendingOrder persists the checkout snapshot.
func (s *SessionStore) SavePendingOrder(ctx context.Context, sessionID string, order *domain.PendingOrder) error {
	return s.saveJSON(ctx, sessionID, keyOrderData, order)
}

// OrderConfirmed reports whether the session's pending order was confirmed.
func (s *SessionStore) OrderConfirmed(ctx context.Context, sessionID string) (bool, error) {
	val, err := s.client.Get(ctx, sessionKey(sessionID, keyOrderConfirmed)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("redis get order_confirmed: %w", err)
	}
	return val == "true", nil
}

// SetOrderConfirmed marks the session's pending order as confirmed.
func (s *SessionStore) SetOrderConfirmed(ctx context.Context, sessionID string) error {
	if err := s.client.Set(ctx, sessionKey(sessionID, keyOrderConfirmed), "true", s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set order_confirmed: %w", err)
	}
	return nil
}

// LoadOrderStatus returns the persisted tracking status, empty when absent.
func (s *SessionStore) LoadOrderStatus(ctx context.Context, sessionID string) (string, error) {
	val, err := s.client.Get(ctx, sessionKey(sessionID, keyOrderStatus)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("redis get order_status: %w", err)
	}
	return val, nil
}

// SaveOrderStatus persists the tracking status.
func (s *SessionStore) SaveOrderStatus(ctx context.Context, sessionID string, status string) error {
	if err := s.client.Set(ctx, sessionKey(sessionID, keyOrderStatus), status, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set order_status: %w", err)
	}
	return nil
}

// ClearOrder removes the pending order snapshot, confirmed flag, and status.
func (s *SessionStore) ClearOrder(ctx context.Context, sessionID string) error {
	keys := []string{
		sessionKey(sessionID, keyOrderData),
		sessionKey(sessionID, keyOrderConfirmed),
		sessionKey(sessionID, keyOrderStatus),
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis clear order: %w", err)
	}
	return nil
}
