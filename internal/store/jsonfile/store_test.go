package jsonfile

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/scramble-dev/scramble/internal/core/batch"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	newRecord := func(id string, at time.Time) batch.Record {
		return batch.Record{
			ID:         id,
			ExecutedAt: at,
			Pairs: []batch.Pair{
				{Source: "/tmp/old.txt", Destination: "/tmp/a1b2.txt"},
			},
		}
	}

	t.Run("save and get", func(t *testing.T) {
		store := New(filepath.Join(t.TempDir(), "history.json"))

		rec := newRecord("rec-1", time.Now())
		if err := store.Save(ctx, rec); err != nil {
			t.Fatalf("Save: %v", err)
		}

		got, err := store.Get(ctx, "rec-1")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.ID != rec.ID || len(got.Pairs) != 1 {
			t.Errorf("got %+v, want %+v", got, rec)
		}
	})

	t.Run("get not found", func(t *testing.T) {
		store := New(filepath.Join(t.TempDir(), "history.json"))

		_, err := store.Get(ctx, "nonexistent")
		if !errors.Is(err, batch.ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("list newest first", func(t *testing.T) {
		store := New(filepath.Join(t.TempDir(), "history.json"))

		now := time.Now()
		for i, id := range []string{"old", "mid", "new"} {
			rec := newRecord(id, now.Add(time.Duration(i)*time.Hour))
			if err := store.Save(ctx, rec); err != nil {
				t.Fatalf("Save: %v", err)
			}
		}

		records, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("got %d records, want 3", len(records))
		}
		if records[0].ID != "new" || records[2].ID != "old" {
			t.Errorf("unexpected order: %s, %s, %s", records[0].ID, records[1].ID, records[2].ID)
		}
	})

	t.Run("last executed skips reverted", func(t *testing.T) {
		store := New(filepath.Join(t.TempDir(), "history.json"))

		now := time.Now()
		older := newRecord("older", now.Add(-time.Hour))
		newest := newRecord("newest", now)
		newest.Reverted = true

		for _, rec := range []batch.Record{older, newest} {
			if err := store.Save(ctx, rec); err != nil {
				t.Fatalf("Save: %v", err)
			}
		}

		got, err := store.LastExecuted(ctx)
		if err != nil {
			t.Fatalf("LastExecuted: %v", err)
		}
		if got.ID != "older" {
			t.Errorf("got %s, want older", got.ID)
		}
	})

	t.Run("last executed empty", func(t *testing.T) {
		store := New(filepath.Join(t.TempDir(), "history.json"))

		_, err := store.LastExecuted(ctx)
		if !errors.Is(err, batch.ErrEmpty) {
			t.Errorf("got %v, want ErrEmpty", err)
		}
	})

	t.Run("update marks reverted", func(t *testing.T) {
		store := New(filepath.Join(t.TempDir(), "history.json"))

		rec := newRecord("rec-1", time.Now())
		if err := store.Save(ctx, rec); err != nil {
			t.Fatalf("Save: %v", err)
		}

		rec.MarkReverted()
		if err := store.Save(ctx, rec); err != nil {
			t.Fatalf("Save: %v", err)
		}

		got, err := store.Get(ctx, "rec-1")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if !got.Reverted {
			t.Error("record not marked reverted")
		}
	})
}
