package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sirupsen/logrus"

	"github.com/xob0t/boothframe/pkg/store"
)

const (
	prefix       = "assets/"
	metaName     = "name"
	metaCreated  = "created-at"
	createdAtFmt = time.RFC3339Nano
)

type s3Store struct {
	s3Client *s3.Client
	bucket   string
}

// NewStore creates a new S3-based store using the default AWS credential chain.
func NewStore(ctx context.Context, bucketName string) (*s3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &s3Store{
		s3Client: s3.NewFromConfig(cfg),
		bucket:   bucketName,
	}, nil
}

func key(id string) string { return prefix + id }

func (s *s3Store) Put(ctx context.Context, asset *store.Asset) (string, error) {
	store.Prepare(asset, time.Now())

	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key(asset.ID)),
		Body:        bytes.NewReader(asset.Data),
		ContentType: aws.String(asset.MediaType),
		Metadata: map[string]string{
			metaName:    asset.Name,
			metaCreated: asset.CreatedAt.Format(createdAtFmt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("upload asset: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"asset_id": asset.ID,
		"bucket":   s.bucket,
	}).Info("Asset created successfully")
	return asset.ID, nil
}

// fromObject fills metadata fields shared by GetObject and HeadObject.
func fromObject(id string, contentType *string, length *int64, meta map[string]string) *store.Asset {
	a := &store.Asset{
		ID:        id,
		Name:      meta[metaName],
		MediaType: aws.ToString(contentType),
		Size:      int(aws.ToInt64(length)),
	}
	if t, err := time.Parse(createdAtFmt, meta[metaCreated]); err == nil {
		a.CreatedAt = t
	}
	return a
}

func notFound(err error) bool {
	var nsk *s3types.NoSuchKey
	var nf *s3types.NotFound
	return errors.As(err, &nsk) || errors.As(err, &nf)
}

func (s *s3Store) Get(ctx context.Context, id string) (*store.Asset, error) {
	if err := store.CheckID(id); err != nil {
		return nil, err
	}
	resp, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key(id)),
	})
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("asset %s: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("get asset %s: %w", id, err)
	}
	defer resp.Body.Close()

	a := fromObject(id, resp.ContentType, resp.ContentLength, resp.Metadata)
	if a.Data, err = io.ReadAll(resp.Body); err != nil {
		return nil, fmt.Errorf("read asset data: %w", err)
	}
	a.Size = len(a.Data)
	return a, nil
}

func (s *s3Store) Delete(ctx context.Context, id string) error {
	if err := store.CheckID(id); err != nil {
		return err
	}
	if _, err := s.s3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key(id)),
	}); err != nil {
		if notFound(err) {
			return fmt.Errorf("asset %s: %w", id, store.ErrNotFound)
		}
		return fmt.Errorf("head asset %s: %w", id, err)
	}
	if _, err := s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key(id)),
	}); err != nil {
		return fmt.Errorf("delete asset %s: %w", id, err)
	}
	return nil
}

func (s *s3Store) List(ctx context.Context) ([]*store.Asset, error) {
	out := []*store.Asset{}
	p := s3.NewListObjectsV2Paginator(s.s3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list assets: %w", err)
		}
		for _, obj := range page.Contents {
			k := aws.ToString(obj.Key)
			id := k[len(prefix):]
			head, err := s.s3Client.HeadObject(ctx, &s3.HeadObjectInput{
				Bucket: aws.String(s.bucket),
				Key:    obj.Key,
			})
			if err != nil {
				logrus.WithError(err).WithField("key", k).Warn("Skipping unreadable asset")
				continue
			}
			out = append(out, fromObject(id, head.ContentType, head.ContentLength, head.Metadata))
		}
	}
	return out, nil
}
