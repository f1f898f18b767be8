package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/auctionlaunch/auctiond/internal/storage/keyValueDb"
)

func TestMemoryDB(t *testing.T) {
	ctx := context.Background()
	db := NewDB()

	t.Run("Read Write Delete", func(t *testing.T) {
		if err := db.Write(ctx, []byte("k1"), []byte("v1")); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		got, err := db.Read(ctx, []byte("k1"))
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if string(got) != "v1" {
			t.Errorf("Read = %q, want %q", got, "v1")
		}
		if err := db.Delete(ctx, []byte("k1")); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := db.Read(ctx, []byte("k1")); !errors.Is(err, keyValueDb.ErrKeyNotFound) {
			t.Errorf("Read after delete = %v, want ErrKeyNotFound", err)
		}
	})

	t.Run("Batch", func(t *testing.T) {
		ops := []keyValueDb.BatchOperation{
			{Type: keyValueDb.BatchPut, Key: []byte("a"), Value: []byte("1")},
			{Type: keyValueDb.BatchPut, Key: []byte("b"), Value: []byte("2")},
			{Type: keyValueDb.BatchDelete, Key: []byte("a")},
		}
		if err := db.Batch(ctx, ops); err != nil {
			t.Fatalf("Batch failed: %v", err)
		}
		if _, err := db.Read(ctx, []byte("a")); !errors.Is(err, keyValueDb.ErrKeyNotFound) {
			t.Errorf("key a should have been deleted, got %v", err)
		}
		got, err := db.Read(ctx, []byte("b"))
		if err != nil || string(got) != "2" {
			t.Errorf("Read(b) = %q, %v", got, err)
		}
	})

	t.Run("Iterator bounds", func(t *testing.T) {
		db := NewDB()
		for _, k := range []string{"p/1", "p/2", "p/3", "q/1"} {
			if err := db.Write(ctx, []byte(k), []byte(k)); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
		}

		it, err := db.Iterator(ctx, []byte("p/2"), []byte("q/"))
		if err != nil {
			t.Fatalf("Iterator failed: %v", err)
		}
		defer it.Close()

		var keys []string
		for it.Next() {
			keys = append(keys, string(it.Key()))
		}
		want := []string{"p/2", "p/3"}
		if len(keys) != len(want) {
			t.Fatalf("got keys %v, want %v", keys, want)
		}
		for i := range want {
			if keys[i] != want[i] {
				t.Errorf("keys[%d] = %s, want %s", i, keys[i], want[i])
			}
		}
	})

	t.Run("Closed", func(t *testing.T) {
		db := NewDB()
		if err := db.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if err := db.Write(ctx, []byte("k"), []byte("v")); !errors.Is(err, keyValueDb.ErrDBClosed) {
			t.Errorf("Write on closed db = %v, want ErrDBClosed", err)
		}
	})
}
