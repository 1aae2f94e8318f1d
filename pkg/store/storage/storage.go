// Package storage selects the asset store backend from configuration.
package storage

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/xob0t/boothframe/pkg/config"
	"github.com/xob0t/boothframe/pkg/store"
	"github.com/xob0t/boothframe/pkg/store/filesystem"
	"github.com/xob0t/boothframe/pkg/store/memory"
	"github.com/xob0t/boothframe/pkg/store/s3"
	"github.com/xob0t/boothframe/pkg/store/sqlite"
)

// GetStore opens the backend named by cfg.StorageType. Unknown types fall
// back to the in-memory store.
func GetStore(ctx context.Context, cfg config.Config) (store.AssetStore, error) {
	storageField := logrus.Fields{
		"storageType": cfg.StorageType,
	}

	var (
		s   store.AssetStore
		err error
	)
	switch cfg.StorageType {
	case "filesystem":
		storageField["basePath"] = cfg.LocalStoragePath
		s, err = filesystem.NewStore(cfg.LocalStoragePath)
	case "sqlite":
		storageField["dataSourceName"] = cfg.DataSourceName
		s, err = sqlite.NewStore(cfg.DataSourceName)
	case "s3":
		if cfg.S3BucketName == "" {
			return nil, errors.New("S3_BUCKET_NAME must be set for s3 storage type")
		}
		storageField["bucketName"] = cfg.S3BucketName
		s, err = s3.NewStore(ctx, cfg.S3BucketName)
	default:
		s = memory.NewStore()
		storageField["storageType"] = "in-memory"
	}
	if err != nil {
		return nil, err
	}
	logrus.WithFields(storageField).Info("Use storage")
	return s, nil
}
