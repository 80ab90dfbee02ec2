package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/globalforge/marketplace/internal/cache"
	"github.com/globalforge/marketplace/internal/constants"
)

// Store 购物车会话存储（按 sessionID 存取整车快照，读写均为整车替换）
type Store interface {
	// Load 读取购物车（不存在时返回空购物车）
	Load(ctx context.Context, sessionID string) (*Cart, error)
	// Save 写入购物车
	Save(ctx context.Context, sessionID string, c *Cart) error
	// Delete 删除购物车
	Delete(ctx context.Context, sessionID string) error
}

// RedisStore 基于 Redis 的购物车存储（带 TTL，会话过期后购物车自动清除）
type RedisStore struct {
	ttl time.Duration
}

// NewRedisStore 创建 Redis 购物车存储
func NewRedisStore(ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{ttl: ttl}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", constants.CartSessionCacheKey, sessionID)
}

// Load 读取购物车
func (s *RedisStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	c := New()
	found, err := cache.GetJSON(ctx, cartKey(sessionID), c)
	if err != nil {
		return nil, err
	}
	if !found {
		return New(), nil
	}
	if c.Lines == nil {
		c.Lines = []Line{}
	}
	return c, nil
}

// Save 写入购物车并刷新 TTL
func (s *RedisStore) Save(ctx context.Context, sessionID string, c *Cart) error {
	return cache.SetJSON(ctx, cartKey(sessionID), c, s.ttl)
}

// Delete 删除购物车
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return cache.Del(ctx, cartKey(sessionID))
}

// MemoryStore 进程内购物车存储（Redis 未启用时的回退，存序列化字节避免共享可变状态）
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

// NewMemoryStore 创建内存购物车存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]byte)}
}

// Load 读取购物车
func (s *MemoryStore) Load(_ context.Context, sessionID string) (*Cart, error) {
	s.mu.RLock()
	payload, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if !ok {
		return New(), nil
	}
	c := New()
	if err := json.Unmarshal(payload, c); err != nil {
		return nil, err
	}
	if c.Lines == nil {
		c.Lines = []Line{}
	}
	return c, nil
}

// Save 写入购物车
func (s *MemoryStore) Save(_ context.Context, sessionID string, c *Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.carts[sessionID] = payload
	s.mu.Unlock()
	return nil
}

// Delete 删除购物车
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
	return nil
}
