// Package storetest holds the behavior every store.AssetStore must share.
package storetest

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xob0t/boothframe/pkg/store"
)

// Run exercises put, get, list and delete against s, which must start empty.
func Run(t *testing.T, s store.AssetStore) {
	t.Helper()
	ctx := context.Background()

	first := &store.Asset{Name: "one.jpg", MediaType: "image/jpeg", Data: []byte("first photo")}
	id1, err := s.Put(ctx, first)
	if err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if len(id1) != 26 {
		t.Errorf("Put() returned invalid ID length: got %d, want 26", len(id1))
	}

	second := &store.Asset{Name: "two.png", MediaType: "image/png", Data: []byte("second")}
	id2, err := s.Put(ctx, second)
	if err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	got, err := s.Get(ctx, id1)
	if err != nil {
		t.Fatalf("Get(%s) failed: %v", id1, err)
	}
	if !bytes.Equal(got.Data, []byte("first photo")) || got.Name != "one.jpg" || got.MediaType != "image/jpeg" {
		t.Errorf("Get() = %+v", got)
	}
	if got.Size != len("first photo") || got.CreatedAt.IsZero() {
		t.Errorf("Get() metadata = size %d created %v", got.Size, got.CreatedAt)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != id1 || list[1].ID != id2 {
		t.Fatalf("List() = %v, want [%s %s]", ids(list), id1, id2)
	}
	for _, a := range list {
		if a.Data != nil {
			t.Errorf("List() returned data for %s", a.ID)
		}
	}

	if err := s.Delete(ctx, id1); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := s.Get(ctx, id1); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get() after delete: err = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, id1); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second Delete(): err = %v, want ErrNotFound", err)
	}
	if _, err := s.Get(ctx, store.NewID()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get(unknown): err = %v, want ErrNotFound", err)
	}
}

func ids(list []*store.Asset) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.ID
	}
	return out
}
