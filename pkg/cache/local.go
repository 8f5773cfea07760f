package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	bc "github.com/allegro/bigcache/v3"
)

// localBackend is the in-process fallback used when the distributed cache
// is unreachable at startup. BigCache evicts on its global LifeWindow
// rather than per-entry TTLs, so the ttl parameter is advisory here.
type localBackend struct {
	c *bc.BigCache
}

func newLocalBackend(cfg LocalConfig) (*localBackend, error) {
	life := cfg.LifeWindow
	if life <= 0 {
		life = time.Hour
	}
	conf := bc.DefaultConfig(life)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.New(context.Background(), conf)
	if err != nil {
		return nil, err
	}
	return &localBackend{c: c}, nil
}

func (b *localBackend) Ping(context.Context) error {
	return nil
}

func (b *localBackend) Get(_ context.Context, key string) ([]byte, error) {
	data, err := b.c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *localBackend) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	return b.c.Set(key, value)
}

func (b *localBackend) DeletePrefix(_ context.Context, prefix string) error {
	// BigCache has no prefix scan; walk the iterator and collect matches
	// before deleting so the iteration is not invalidated mid-walk.
	var keys []string
	it := b.c.Iterator()
	for it.SetNext() {
		entry, err := it.Value()
		if err != nil {
			continue
		}
		if strings.HasPrefix(entry.Key(), prefix) {
			keys = append(keys, entry.Key())
		}
	}
	for _, key := range keys {
		if err := b.c.Delete(key); err != nil && !errors.Is(err, bc.ErrEntryNotFound) {
			return err
		}
	}
	return nil
}

func (b *localBackend) Close() error {
	return b.c.Close()
}
