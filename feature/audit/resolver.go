package audit

import (
	"context"
	"errors"
	"sync"
	"time"

	"asset-audit/feature/audit/models"

	"golang.org/x/sync/singleflight"
)

// resolverEntry is one cached lookup outcome. A nil record with notFound set
// is a cached negative: the backend definitively said the identifier does not
// exist, which is as cacheable as a hit.
type resolverEntry struct {
	record   *models.AssetRecord
	notFound bool
	fetched  time.Time
}

func (e *resolverEntry) expired(ttl time.Duration) bool {
	if ttl == 0 {
		return true
	}
	return time.Since(e.fetched) > ttl
}

// CachedResolver wraps a Gateway with a TTL cache over Asset lookups and
// collapses concurrent lookups of the same identifier into one backend call.
// Only settled outcomes are cached; transport errors are returned to every
// waiter and never stored, so a retry always reaches the backend.
type CachedResolver struct {
	Gateway

	ttl time.Duration

	mu      sync.RWMutex
	entries map[string]*resolverEntry
	sf      singleflight.Group
}

// NewCachedResolver wraps gateway. A zero ttl disables caching but still
// collapses concurrent duplicate lookups.
func NewCachedResolver(gateway Gateway, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		Gateway: gateway,
		ttl:     ttl,
		entries: make(map[string]*resolverEntry),
	}
}

// Asset resolves an identifier, serving from cache when fresh.
func (r *CachedResolver) Asset(ctx context.Context, identifier string) (*models.AssetRecord, error) {
	// Fast path: fresh cached outcome.
	r.mu.RLock()
	entry, ok := r.entries[identifier]
	r.mu.RUnlock()
	if ok && !entry.expired(r.ttl) {
		return entry.result()
	}

	// Slow path: one backend call per identifier, shared by all waiters.
	result, err, _ := r.sf.Do(identifier, func() (interface{}, error) {
		r.mu.RLock()
		entry, ok := r.entries[identifier]
		r.mu.RUnlock()
		if ok && !entry.expired(r.ttl) {
			return entry, nil
		}

		record, err := r.Gateway.Asset(ctx, identifier)
		switch {
		case err == nil:
			entry = &resolverEntry{record: record, fetched: time.Now()}
		case errors.Is(err, ErrAssetNotFound):
			entry = &resolverEntry{notFound: true, fetched: time.Now()}
		default:
			return nil, err
		}

		r.mu.Lock()
		r.entries[identifier] = entry
		r.mu.Unlock()
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*resolverEntry).result()
}

func (e *resolverEntry) result() (*models.AssetRecord, error) {
	if e.notFound {
		return nil, ErrAssetNotFound
	}
	// Copy so callers cannot mutate the cached record.
	record := *e.record
	return &record, nil
}

// Invalidate drops the cached outcome for one identifier. Mutations that
// change an asset's room should call this so the next lookup sees the write.
func (r *CachedResolver) Invalidate(identifier string) {
	r.mu.Lock()
	delete(r.entries, identifier)
	r.mu.Unlock()
}

// UpdateAssetLocation forwards to the gateway and invalidates the cached
// record on success.
func (r *CachedResolver) UpdateAssetLocation(ctx context.Context, identifier, roomID string) error {
	if err := r.Gateway.UpdateAssetLocation(ctx, identifier, roomID); err != nil {
		return err
	}
	r.Invalidate(identifier)
	return nil
}

// MarkAssetsMissing forwards to the gateway and invalidates every affected
// identifier.
func (r *CachedResolver) MarkAssetsMissing(ctx context.Context, identifiers []string) (models.BulkResult, error) {
	result, err := r.Gateway.MarkAssetsMissing(ctx, identifiers)
	if err != nil {
		return result, err
	}
	r.mu.Lock()
	for _, id := range identifiers {
		delete(r.entries, id)
	}
	r.mu.Unlock()
	return result, nil
}
