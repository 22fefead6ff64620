package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestFileCacheSetGet(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	key := "placement:abc123"
	value := []byte(`[{"character":"x"}]`)

	if err := c.Set(ctx, key, value, time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, hit, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !hit {
		t.Fatal("Get() missed a freshly set key")
	}
	if string(got) != string(value) {
		t.Errorf("Get() = %q, want %q", got, value)
	}
}

func TestFileCacheMiss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	_, hit, err := c.Get(context.Background(), "never-set")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if hit {
		t.Error("Get() hit on a key that was never set")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "short-lived", []byte("data"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	_, hit, err := c.Get(ctx, "short-lived")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if hit {
		t.Error("expired entry should be a miss")
	}
}

func TestFileCacheZeroTTLNeverExpires(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "forever", []byte("data"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	_, hit, err := c.Get(ctx, "forever")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !hit {
		t.Error("zero-TTL entry should not expire")
	}
}

func TestFileCacheDelete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "key", []byte("data"), time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	_, hit, _ := c.Get(ctx, "key")
	if hit {
		t.Error("deleted key should be a miss")
	}

	// Deleting a missing key is fine
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete() on missing key: %v", err)
	}
}

func TestNullCacheNeverStores(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("data"), time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if hit {
		t.Error("NullCache should never hit")
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestHashKeyDeterministic(t *testing.T) {
	opts := PlacementKeyOpts{SpaceScale: 100, Seed: 42}

	a := hashKey("placement", "inputhash", opts)
	b := hashKey("placement", "inputhash", opts)
	if a != b {
		t.Errorf("hashKey not deterministic: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "placement:") {
		t.Errorf("key %q missing prefix", a)
	}
}

func TestKeyerDistinguishesOptions(t *testing.T) {
	k := NewDefaultKeyer()

	base := PlacementKeyOpts{SpaceScale: 100, Seed: 42}
	variants := []PlacementKeyOpts{
		{SpaceScale: 50, Seed: 42},
		{SpaceScale: 100, Seed: 43},
		{SpaceScale: 100, Seed: 42, UseColors: true},
		{SpaceScale: 100, Seed: 42, NoiseMode: "simplex"},
		{SpaceScale: 100, Seed: 42, PerlinAmplitude: 15},
	}

	baseKey := k.PlacementKey("hash", base)
	for i, v := range variants {
		if k.PlacementKey("hash", v) == baseKey {
			t.Errorf("variant %d collides with base key", i)
		}
	}

	if k.PlacementKey("otherhash", base) == baseKey {
		t.Error("different input hashes must not collide")
	}
}

func TestFieldKeyIndependentOfPlacementKey(t *testing.T) {
	k := NewDefaultKeyer()

	p := k.PlacementKey("hash", PlacementKeyOpts{})
	f := k.FieldKey("hash", FieldKeyOpts{})
	if p == f {
		t.Error("placement and field keys must not collide")
	}
	if !strings.HasPrefix(f, "field:") {
		t.Errorf("field key %q missing prefix", f)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "dataset1:")

	key := scoped.PlacementKey("hash", PlacementKeyOpts{})
	if !strings.HasPrefix(key, "dataset1:placement:") {
		t.Errorf("scoped key %q missing dataset prefix", key)
	}

	// nil inner falls back to the default keyer
	fallback := NewScopedKeyer(nil, "p:")
	if !strings.HasPrefix(fallback.FieldKey("h", FieldKeyOpts{}), "p:field:") {
		t.Error("nil inner keyer should use the default")
	}
}

func TestHash(t *testing.T) {
	a := Hash([]byte("hello"))
	b := Hash([]byte("hello"))
	c := Hash([]byte("world"))

	if a != b {
		t.Error("Hash not deterministic")
	}
	if a == c {
		t.Error("different inputs share a hash")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64", len(a))
	}
}
