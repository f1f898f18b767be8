package pebble

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/auctionlaunch/auctiond/internal/storage/keyValueDb"
)

func setupTestDB(t *testing.T) (*Manager, func()) {
	tempDir, err := os.MkdirTemp("", "pebble-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	manager := NewManager(tempDir)

	cleanup := func() {
		if err := manager.Close(); err != nil {
			return
		}
		if err := os.RemoveAll(tempDir); err != nil {
			return
		}
	}

	return manager, cleanup
}

func TestPebbleDB(t *testing.T) {
	manager, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("Read Write", func(t *testing.T) {
		db, err := manager.OpenDB("test")
		if err != nil {
			t.Fatalf("Failed to open database: %v", err)
		}

		key := []byte("lifecycle-test")
		value := []byte("test-value")

		if err := db.Write(ctx, key, value); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		got, err := db.Read(ctx, key)
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if string(got) != string(value) {
			t.Errorf("Wrong value read: got %s, want %s", got, value)
		}

		if _, err := db.Read(ctx, []byte("missing")); !errors.Is(err, keyValueDb.ErrKeyNotFound) {
			t.Errorf("Read of missing key = %v, want ErrKeyNotFound", err)
		}
	})

	t.Run("Batch Operations", func(t *testing.T) {
		db, err := manager.OpenDB("batch-test")
		if err != nil {
			t.Fatalf("Failed to open database: %v", err)
		}

		ops := []keyValueDb.BatchOperation{
			{Type: keyValueDb.BatchPut, Key: []byte("b1"), Value: []byte("v1")},
			{Type: keyValueDb.BatchPut, Key: []byte("b2"), Value: []byte("v2")},
			{Type: keyValueDb.BatchDelete, Key: []byte("b1")},
		}
		if err := db.Batch(ctx, ops); err != nil {
			t.Fatalf("Batch failed: %v", err)
		}

		if _, err := db.Read(ctx, []byte("b1")); !errors.Is(err, keyValueDb.ErrKeyNotFound) {
			t.Errorf("b1 should have been deleted, got %v", err)
		}
		got, err := db.Read(ctx, []byte("b2"))
		if err != nil || string(got) != "v2" {
			t.Errorf("Read(b2) = %q, %v", got, err)
		}
	})

	t.Run("Ordered Iteration", func(t *testing.T) {
		db, err := manager.OpenDB("iter-test")
		if err != nil {
			t.Fatalf("Failed to open database: %v", err)
		}

		for _, k := range []string{"k/3", "k/1", "k/2", "l/1"} {
			if err := db.Write(ctx, []byte(k), []byte(k)); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
		}

		it, err := db.Iterator(ctx, []byte("k/"), []byte("l/"))
		if err != nil {
			t.Fatalf("Iterator failed: %v", err)
		}
		defer it.Close()

		var keys []string
		for it.Next() {
			keys = append(keys, string(it.Key()))
		}
		want := []string{"k/1", "k/2", "k/3"}
		if len(keys) != len(want) {
			t.Fatalf("got keys %v, want %v", keys, want)
		}
		for i := range want {
			if keys[i] != want[i] {
				t.Errorf("keys[%d] = %s, want %s", i, keys[i], want[i])
			}
		}
	})
}
