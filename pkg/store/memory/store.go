package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xob0t/boothframe/pkg/store"
)

// memStore keeps assets in process memory.
type memStore struct {
	mu     sync.RWMutex
	assets map[string]*store.Asset
}

// NewStore creates a new in-memory store.
func NewStore() *memStore {
	return &memStore{assets: make(map[string]*store.Asset)}
}

// Put stores a copy of the asset under a new id.
func (s *memStore) Put(ctx context.Context, asset *store.Asset) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store.Prepare(asset, time.Now())
	cp := *asset
	cp.Data = append([]byte(nil), asset.Data...)
	s.assets[asset.ID] = &cp

	logrus.WithFields(logrus.Fields{
		"asset_id":    asset.ID,
		"data_length": asset.Size,
	}).Info("Asset created successfully")
	return asset.ID, nil
}

// Get returns a copy of the asset.
func (s *memStore) Get(ctx context.Context, id string) (*store.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.assets[id]
	if !ok {
		logrus.WithField("asset_id", id).Warn("Asset with specified ID not found")
		return nil, fmt.Errorf("asset %s: %w", id, store.ErrNotFound)
	}
	cp := *a
	cp.Data = append([]byte(nil), a.Data...)
	return &cp, nil
}

// Delete removes an asset.
func (s *memStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.assets[id]; !ok {
		return fmt.Errorf("asset %s: %w", id, store.ErrNotFound)
	}
	delete(s.assets, id)
	logrus.WithField("asset_id", id).Info("Asset deleted successfully")
	return nil
}

// List returns asset metadata ordered by id (creation order for ULIDs).
func (s *memStore) List(ctx context.Context) ([]*store.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*store.Asset, 0, len(s.assets))
	for _, a := range s.assets {
		out = append(out, store.Meta(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
