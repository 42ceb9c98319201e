package ui

import (
	"testing"
	"time"

	"datasweep/domain/core"
	"datasweep/ports"
)

func TestUploadStorePutGet(t *testing.T) {
	store := NewUploadStore(4, time.Minute)

	f, err := store.Put("people.csv", ports.FormatCSV, []byte("a,b\n1,2\n"))
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if f.ID == "" {
		t.Fatal("Put returned empty ID")
	}

	got, ok := store.Get(f.ID)
	if !ok {
		t.Fatal("Get did not find the stored file")
	}
	if got.Name != "people.csv" || got.Format != ports.FormatCSV {
		t.Errorf("Stored file mismatch: %q %q", got.Name, got.Format)
	}
	if got.Size() != 8 {
		t.Errorf("Size = %d, want 8", got.Size())
	}
}

func TestUploadStoreCapacity(t *testing.T) {
	store := NewUploadStore(2, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := store.Put("f.csv", ports.FormatCSV, []byte("x")); err != nil {
			t.Fatalf("Put %d failed: %v", i, err)
		}
	}
	if _, err := store.Put("overflow.csv", ports.FormatCSV, []byte("x")); err == nil {
		t.Fatal("Expected capacity error on third Put")
	}
}

func TestUploadStoreExpiry(t *testing.T) {
	store := NewUploadStore(4, time.Minute)

	f, err := store.Put("old.csv", ports.FormatCSV, []byte("x"))
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// Backdate past the TTL
	store.mu.Lock()
	store.files[f.ID].UploadedAt = core.NewTimestamp(time.Now().Add(-2 * time.Minute))
	store.mu.Unlock()

	if _, ok := store.Get(f.ID); ok {
		t.Error("Get returned an expired upload")
	}
	if got := len(store.List()); got != 0 {
		t.Errorf("List returned %d expired uploads", got)
	}
	if n := store.SweepExpired(); n != 1 {
		t.Errorf("SweepExpired removed %d, want 1", n)
	}
	if store.Len() != 0 {
		t.Errorf("Len = %d after sweep, want 0", store.Len())
	}
}

func TestUploadStoreListOrder(t *testing.T) {
	store := NewUploadStore(4, time.Minute)

	first, _ := store.Put("first.csv", ports.FormatCSV, []byte("x"))
	second, _ := store.Put("second.csv", ports.FormatCSV, []byte("x"))

	// Force distinct timestamps so ordering is observable
	store.mu.Lock()
	store.files[first.ID].UploadedAt = core.NewTimestamp(time.Now().Add(-time.Second))
	store.mu.Unlock()

	list := store.List()
	if len(list) != 2 {
		t.Fatalf("List returned %d files, want 2", len(list))
	}
	if list[0].ID != second.ID {
		t.Errorf("Expected newest first, got %q", list[0].Name)
	}

	store.Remove(second.ID)
	if _, ok := store.Get(second.ID); ok {
		t.Error("Get found a removed upload")
	}
}
