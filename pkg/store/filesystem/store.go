package filesystem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xob0t/boothframe/pkg/store"
)

const metaExt = ".json"

// fsStore writes each asset as <id> (bytes) plus <id>.json (metadata).
type fsStore struct {
	basePath string
}

// NewStore creates a new filesystem-based store.
func NewStore(basePath string) (*fsStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("create base directory: %w", err)
	}
	return &fsStore{basePath: basePath}, nil
}

func (s *fsStore) dataPath(id string) string { return filepath.Join(s.basePath, id) }
func (s *fsStore) metaPath(id string) string { return filepath.Join(s.basePath, id+metaExt) }

func (s *fsStore) Put(ctx context.Context, asset *store.Asset) (string, error) {
	store.Prepare(asset, time.Now())
	log := logrus.WithFields(logrus.Fields{
		"asset_id":  asset.ID,
		"file_path": s.dataPath(asset.ID),
	})

	meta, err := json.Marshal(store.Meta(asset))
	if err != nil {
		return "", fmt.Errorf("marshal asset metadata: %w", err)
	}
	if err := os.WriteFile(s.dataPath(asset.ID), asset.Data, 0644); err != nil {
		log.WithError(err).Error("Failed to write asset")
		return "", fmt.Errorf("write asset: %w", err)
	}
	if err := os.WriteFile(s.metaPath(asset.ID), meta, 0644); err != nil {
		log.WithError(err).Error("Failed to write asset metadata")
		return "", fmt.Errorf("write asset metadata: %w", err)
	}

	log.Info("Asset created successfully")
	return asset.ID, nil
}

func (s *fsStore) readMeta(id string) (*store.Asset, error) {
	raw, err := os.ReadFile(s.metaPath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("asset %s: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("read asset metadata: %w", err)
	}
	var a store.Asset
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("decode asset metadata %s: %w", id, err)
	}
	return &a, nil
}

func (s *fsStore) Get(ctx context.Context, id string) (*store.Asset, error) {
	if err := store.CheckID(id); err != nil {
		return nil, err
	}
	a, err := s.readMeta(id)
	if err != nil {
		return nil, err
	}
	a.Data, err = os.ReadFile(s.dataPath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("asset %s: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("read asset: %w", err)
	}
	return a, nil
}

func (s *fsStore) Delete(ctx context.Context, id string) error {
	if err := store.CheckID(id); err != nil {
		return err
	}
	if err := os.Remove(s.metaPath(id)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("asset %s: %w", id, store.ErrNotFound)
		}
		return fmt.Errorf("delete asset metadata: %w", err)
	}
	if err := os.Remove(s.dataPath(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete asset: %w", err)
	}
	logrus.WithField("asset_id", id).Info("Asset deleted successfully")
	return nil
}

func (s *fsStore) List(ctx context.Context) ([]*store.Asset, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	out := make([]*store.Asset, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, metaExt) {
			continue
		}
		a, err := s.readMeta(strings.TrimSuffix(name, metaExt))
		if err != nil {
			logrus.WithError(err).WithField("file", name).Warn("Skipping unreadable asset metadata")
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
