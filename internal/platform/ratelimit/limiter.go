// Package ratelimit limits sign-up attempts per client on the stand-in users API.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter decides whether one more attempt for key is allowed in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Memory は単一プロセス用の固定ウィンドウ方式のLimiterです。
// Redisが利用できない場合のフォールバックとして使います。
type Memory struct {
	mu      sync.Mutex
	limit   int           // ウィンドウあたりの上限
	window  time.Duration // どの単位でリセットするか
	buckets map[string]*bucket
	now     func() time.Time
	swept   time.Time // 期限切れバケットを最後に削除した時刻
}

type bucket struct {
	count     int
	lastReset time.Time
}

// NewMemory は新しいMemoryのインスタンスを生成します。
func NewMemory(limit int, window time.Duration) *Memory {
	return &Memory{
		limit:   limit,
		window:  window,
		buckets: map[string]*bucket{},
		now:     time.Now,
		swept:   time.Now(),
	}
}

// Allow はkeyの試行回数を1つ進め、上限以内であればtrueを返します。
func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)
	b, ok := m.buckets[key]
	// window を過ぎたらカウントリセット
	if !ok || now.Sub(b.lastReset) >= m.window {
		b = &bucket{lastReset: now}
		m.buckets[key] = b
	}
	b.count++
	return b.count <= m.limit, nil
}

// sweep はウィンドウ1つ分ごとに、期限切れのバケットをまとめて削除します。
func (m *Memory) sweep(now time.Time) {
	if now.Sub(m.swept) < m.window {
		return
	}
	for k, b := range m.buckets {
		if now.Sub(b.lastReset) >= m.window {
			delete(m.buckets, k)
		}
	}
	m.swept = now
}
