package ui

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"datasweep/domain/core"
	"datasweep/ports"
)

// StoredFile is one uploaded file held for the lifetime of a
// conversion session. Data is the raw upload; every convert or
// summary request re-runs the pipeline from these bytes.
type StoredFile struct {
	ID         core.UploadID
	Name       string
	Format     ports.Format
	Data       []byte
	UploadedAt core.Timestamp
}

// Size returns the stored byte count
func (f *StoredFile) Size() int {
	return len(f.Data)
}

// SizeKB returns the stored size in kilobytes for display
func (f *StoredFile) SizeKB() float64 {
	return float64(len(f.Data)) / 1024.0
}

// UploadStore keeps uploads in memory, keyed by upload ID. Entries
// expire after the configured TTL; nothing is persisted.
type UploadStore struct {
	mu       sync.RWMutex
	files    map[core.UploadID]*StoredFile
	maxFiles int
	ttl      time.Duration
}

// NewUploadStore creates an upload store holding at most maxFiles
// entries, each for at most ttl.
func NewUploadStore(maxFiles int, ttl time.Duration) *UploadStore {
	return &UploadStore{
		files:    make(map[core.UploadID]*StoredFile),
		maxFiles: maxFiles,
		ttl:      ttl,
	}
}

// Put stores an upload and returns its handle
func (s *UploadStore) Put(name string, format ports.Format, data []byte) (*StoredFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.files) >= s.maxFiles {
		return nil, fmt.Errorf("upload store is full (%d files); convert or wait for older uploads to expire", s.maxFiles)
	}

	f := &StoredFile{
		ID:         core.UploadID(core.NewID()),
		Name:       name,
		Format:     format,
		Data:       data,
		UploadedAt: core.Now(),
	}
	s.files[f.ID] = f
	return f, nil
}

// Get returns the upload for id, or false if it is unknown or expired
func (s *UploadStore) Get(id core.UploadID) (*StoredFile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[id]
	if !ok || f.UploadedAt.Age() > s.ttl {
		return nil, false
	}
	return f, true
}

// List returns all live uploads, newest first
func (s *UploadStore) List() []*StoredFile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*StoredFile, 0, len(s.files))
	for _, f := range s.files {
		if f.UploadedAt.Age() > s.ttl {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UploadedAt.Time().Equal(out[j].UploadedAt.Time()) {
			return out[i].Name < out[j].Name
		}
		return out[j].UploadedAt.Before(out[i].UploadedAt)
	})
	return out
}

// Remove drops an upload. Removing an unknown ID is a no-op.
func (s *UploadStore) Remove(id core.UploadID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, id)
}

// Len returns the number of stored uploads, expired ones included
func (s *UploadStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// SweepExpired removes entries older than the TTL and reports how
// many were dropped.
func (s *UploadStore) SweepExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, f := range s.files {
		if f.UploadedAt.Age() > s.ttl {
			delete(s.files, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs periodic expiry sweeps until stop is closed
func (s *UploadStore) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := s.SweepExpired(); n > 0 {
					log.Printf("[UploadStore] swept %d expired uploads", n)
				}
			case <-stop:
				return
			}
		}
	}()
}
