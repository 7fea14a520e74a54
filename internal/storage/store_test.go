package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type memStore struct {
	mu       sync.Mutex
	files    map[string][]byte
	writeErr error
	writes   int
}

func newMemStore() *memStore {
	return &memStore{files: make(map[string][]byte)}
}

func (m *memStore) Exists(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[name]
	return ok, nil
}

func (m *memStore) Write(_ context.Context, name string, data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = data
	m.writes++
	return nil
}

func (m *memStore) Location(name string) string {
	return "mem://" + name
}

func TestTeeNoMirrors(t *testing.T) {
	primary := newMemStore()
	if Tee(primary) != Store(primary) {
		t.Error("expected Tee without mirrors to return the primary store")
	}
}

func TestTeeWritesAll(t *testing.T) {
	primary, mirror := newMemStore(), newMemStore()
	mirror.files["only-in-mirror.jpg"] = []byte("m")
	store := Tee(primary, mirror)
	ctx := context.Background()

	if err := store.Write(ctx, "a.jpg", []byte("data")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if string(primary.files["a.jpg"]) != "data" || string(mirror.files["a.jpg"]) != "data" {
		t.Errorf("expected both stores to hold a.jpg, got %v / %v", primary.files, mirror.files)
	}
	if exists, _ := store.Exists(ctx, "a.jpg"); !exists {
		t.Error("expected a.jpg to exist once every store holds it")
	}
	if exists, _ := store.Exists(ctx, "only-in-mirror.jpg"); exists {
		t.Error("a name missing from the primary must be reported absent")
	}
	if store.Location("a.jpg") != "mem://a.jpg" {
		t.Errorf("unexpected location %s", store.Location("a.jpg"))
	}
}

func TestTeeStopsAtPrimaryFailure(t *testing.T) {
	primary, mirror := newMemStore(), newMemStore()
	primary.writeErr = errors.New("disk full")
	err := Tee(primary, mirror).Write(context.Background(), "a.jpg", []byte("data"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if len(mirror.files) != 0 {
		t.Errorf("mirror must not be written after primary failure, got %v", mirror.files)
	}
}

func TestTeeCatchesUpMirror(t *testing.T) {
	primary, mirror := newMemStore(), newMemStore()
	primary.files["a.jpg"] = []byte("local")
	store := Tee(primary, mirror)
	ctx := context.Background()

	exists, err := store.Exists(ctx, "a.jpg")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Fatal("a name missing from a mirror must be reported absent")
	}
	if err := store.Write(ctx, "a.jpg", []byte("fresh")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if primary.writes != 0 || string(primary.files["a.jpg"]) != "local" {
		t.Errorf("primary already held a.jpg and must not be rewritten, writes=%d body=%q", primary.writes, primary.files["a.jpg"])
	}
	if string(mirror.files["a.jpg"]) != "fresh" {
		t.Errorf("expected mirror to receive a.jpg, got %v", mirror.files)
	}
	if exists, _ := store.Exists(ctx, "a.jpg"); !exists {
		t.Error("expected a.jpg to exist after the mirror caught up")
	}
}
