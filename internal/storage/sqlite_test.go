package storage

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "deepfall.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	blob := []byte(`{"version":1}`)
	save := SaveSlot{Slot: "quicksave", RunID: "run-1", Floor: 2, Turn: 37, Blob: blob}
	if err := store.WriteSave(ctx, save); err != nil {
		t.Fatalf("WriteSave: %v", err)
	}

	got, err := store.ReadSave(ctx, "quicksave")
	if err != nil {
		t.Fatalf("ReadSave: %v", err)
	}
	if got == nil {
		t.Fatal("ReadSave returned nil for existing slot")
	}
	if got.RunID != "run-1" || got.Floor != 2 || got.Turn != 37 {
		t.Fatalf("got %+v", got)
	}
	if !bytes.Equal(got.Blob, blob) {
		t.Fatal("blob mismatch")
	}
}

func TestSaveOverwritesSlot(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	if err := store.WriteSave(ctx, SaveSlot{Slot: "s", RunID: "a", Floor: 1, Turn: 1, Blob: []byte("x")}); err != nil {
		t.Fatal(err)
	}
	if err := store.WriteSave(ctx, SaveSlot{Slot: "s", RunID: "b", Floor: 3, Turn: 99, Blob: []byte("y")}); err != nil {
		t.Fatal(err)
	}

	got, err := store.ReadSave(ctx, "s")
	if err != nil {
		t.Fatalf("ReadSave: %v", err)
	}
	if got.RunID != "b" || got.Turn != 99 || string(got.Blob) != "y" {
		t.Fatalf("slot not replaced: %+v", got)
	}
}

func TestReadMissingSlot(t *testing.T) {
	store := testStore(t)
	got, err := store.ReadSave(context.Background(), "nope")
	if err != nil {
		t.Fatalf("ReadSave: %v", err)
	}
	if got != nil {
		t.Fatalf("want nil for empty slot, got %+v", got)
	}
}

func TestDeleteSave(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	if err := store.WriteSave(ctx, SaveSlot{Slot: "s", RunID: "a", Blob: []byte("x")}); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteSave(ctx, "s"); err != nil {
		t.Fatalf("DeleteSave: %v", err)
	}
	got, err := store.ReadSave(ctx, "s")
	if err != nil || got != nil {
		t.Fatalf("slot should be empty after delete, got %+v, %v", got, err)
	}
}

func TestRunHistory(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	runs := []RunRecord{
		{RunID: "r1", Outcome: "dead", Floor: 2, Turns: 120},
		{RunID: "r2", Outcome: "victory", Floor: 3, Turns: 340},
		{RunID: "r3", Outcome: "dead", Floor: 1, Turns: 15},
	}
	for _, r := range runs {
		if err := store.RecordRun(ctx, r); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	got, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// Newest first.
	if got[0].RunID != "r3" || got[2].RunID != "r1" {
		t.Fatalf("order = %s,%s,%s", got[0].RunID, got[1].RunID, got[2].RunID)
	}

	limited, err := store.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("limited len = %d, want 2", len(limited))
	}
}
