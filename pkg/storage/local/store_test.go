package local

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/marioskal/eshop-backend/pkg/config"
)

func newTestStore(t *testing.T, maxMB int64) *Store {
	t.Helper()
	store, err := NewStore(context.Background(), config.StorageConfig{
		UploadDir:   t.TempDir(),
		MaxUploadMB: maxMB,
	}, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestSaveAndOpen(t *testing.T) {
	store := newTestStore(t, 1)
	ctx := context.Background()

	desc, err := store.Save(ctx, "photo.PNG", "image/png", strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if desc.Filename != "photo.PNG" {
		t.Fatalf("unexpected original filename %q", desc.Filename)
	}
	if desc.Extension != "png" {
		t.Fatalf("expected lowercase extension, got %q", desc.Extension)
	}
	if !strings.HasSuffix(desc.SavedName, ".png") {
		t.Fatalf("expected generated name with extension, got %q", desc.SavedName)
	}
	if desc.SavedName == "photo.PNG" {
		t.Fatal("saved name must not reuse the original filename")
	}
	if desc.ContentType != "image/png" {
		t.Fatalf("unexpected content type %q", desc.ContentType)
	}

	reader, err := store.Open(ctx, desc.SavedName)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestSaveRejectsOversizedContent(t *testing.T) {
	store := newTestStore(t, 1)
	store.maxBytes = 4

	_, err := store.Save(context.Background(), "big.jpg", "image/jpeg", strings.NewReader("way too big"))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestRemoveTolerant(t *testing.T) {
	store := newTestStore(t, 1)
	ctx := context.Background()

	desc, err := store.Save(ctx, "gone.gif", "image/gif", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Remove(ctx, desc.SavedName); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := store.Remove(ctx, desc.SavedName); err != nil {
		t.Fatalf("second remove should not fail: %v", err)
	}
}
