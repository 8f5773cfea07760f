package cache

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// backend is the minimal byte store both tiers implement. Implementations
// must be safe for concurrent use.
type backend interface {
	Ping(ctx context.Context) error
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}

// Store is the process-wide cache. It probes the distributed backend once
// at construction; on failure it runs on the in-process fallback for the
// rest of the process lifetime. No per-call retry, no reconciliation if
// Redis recovers later — the selection is immutable after New returns.
//
// Every operation fails soft: transport errors are logged and counted,
// never returned to callers.
type Store struct {
	config   *Config
	codec    Codec
	backend  backend
	metrics  *Metrics
	log      *zap.Logger
	fallback bool
}

// New builds the store and performs the one-time connectivity probe.
// logger may be nil.
func New(cfg *Config, logger *zap.Logger) (*Store, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cache config: %w", err)
	}

	s := &Store{
		config:  cfg,
		codec:   codecFor(cfg.Codec),
		metrics: NewMetrics(),
		log:     logger,
	}
	if !cfg.Enabled {
		return s, nil
	}

	rb := newRedisBackend(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := rb.Ping(ctx); err != nil {
		_ = rb.Close()
		local, lerr := newLocalBackend(cfg.Local)
		if lerr != nil {
			return nil, fmt.Errorf("failed to initialize fallback cache: %w", lerr)
		}
		s.backend = local
		s.fallback = true
		s.log.Warn("distributed cache unreachable, using in-process fallback for process lifetime",
			zap.String("addr", cfg.GetAddr()),
			zap.Error(err),
		)
		return s, nil
	}

	s.backend = rb
	s.log.Info("distributed cache connected", zap.String("addr", cfg.GetAddr()))
	return s, nil
}

// UsingFallback reports whether the startup probe failed and the store is
// running on the in-process backend.
func (s *Store) UsingFallback() bool {
	return s.fallback
}

// Get decodes the cached value for key into dst. Returns false on miss or
// on any transport/decode error.
func (s *Store) Get(ctx context.Context, key string, dst any) bool {
	if s.backend == nil {
		return false
	}
	data, err := s.backend.Get(ctx, key)
	if err != nil {
		if IsKeyNotFound(err) {
			s.metrics.RecordMiss()
		} else {
			s.metrics.RecordError()
			s.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := s.codec.Decode(data, dst); err != nil {
		s.metrics.RecordError()
		s.log.Warn("cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	s.metrics.RecordHit()
	return true
}

// Set stores value under key, best-effort. A zero ttl uses the configured
// default.
func (s *Store) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if s.backend == nil {
		return
	}
	if ttl <= 0 {
		ttl = s.config.DefaultTTL
	}
	data, err := s.codec.Encode(value)
	if err != nil {
		s.metrics.RecordError()
		s.log.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.backend.Set(ctx, key, data, ttl); err != nil {
		s.metrics.RecordError()
		s.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		return
	}
	s.metrics.RecordSet()
}

// InvalidatePrefix removes every entry whose key starts with prefix. Called
// after any create/update/delete on the owning entity kind.
func (s *Store) InvalidatePrefix(ctx context.Context, prefix string) {
	if s.backend == nil {
		return
	}
	if err := s.backend.DeletePrefix(ctx, prefix); err != nil {
		s.metrics.RecordError()
		s.log.Warn("cache invalidation failed", zap.String("prefix", prefix), zap.Error(err))
		return
	}
	s.metrics.RecordInvalidation()
}

// InvalidateKind invalidates the whole namespace of an entity kind.
func (s *Store) InvalidateKind(ctx context.Context, kind string) {
	s.InvalidatePrefix(ctx, Namespace(kind))
}

// Metrics returns a snapshot of the cache counters.
func (s *Store) Metrics() MetricsSnapshot {
	return s.metrics.Snapshot(s.fallback)
}

// Close releases the backend.
func (s *Store) Close() error {
	if s.backend == nil {
		return nil
	}
	return s.backend.Close()
}
