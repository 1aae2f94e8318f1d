// Package store defines the uploaded-photo asset store shared by the HTTP
// service and the image loader.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// ErrNotFound is returned when an asset id does not exist.
var ErrNotFound = errors.New("asset not found")

// Asset is an uploaded source photo.
type Asset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	MediaType string    `json:"mediaType"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
	Data      []byte    `json:"-"`
}

// AssetStore persists assets. List omits Data.
type AssetStore interface {
	Put(ctx context.Context, asset *Asset) (string, error)
	Get(ctx context.Context, id string) (*Asset, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Asset, error)
}

// NewID returns a fresh sortable asset id.
func NewID() string {
	return ulid.Make().String()
}

// CheckID rejects anything that is not a ULID, which also keeps ids safe to
// use as file names and object keys.
func CheckID(id string) error {
	if _, err := ulid.ParseStrict(id); err != nil {
		return fmt.Errorf("asset %q: %w", id, ErrNotFound)
	}
	return nil
}

// Prepare assigns the id, size and creation time of a new asset.
func Prepare(a *Asset, now time.Time) {
	a.ID = NewID()
	a.Size = len(a.Data)
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now.UTC()
	}
	if a.MediaType == "" {
		a.MediaType = "application/octet-stream"
	}
}

// Meta returns a copy of a without its data, for listings.
func Meta(a *Asset) *Asset {
	m := *a
	m.Data = nil
	return &m
}
