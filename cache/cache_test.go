package cache

import (
	"testing"
	"time"

	"github.com/use-agent/pricescout/models"
)

func found(name string, price float64) models.Resolution {
	return models.Resolution{Found: true, MatchedName: name, Price: price}
}

func TestCacheGetSet(t *testing.T) {
	c := New(10, time.Minute)

	key := Key("guadalajara", "vitamina c")
	if _, hit := c.Get(key); hit {
		t.Fatal("hit on empty cache")
	}

	c.Set(key, found("Vitamina C 1000mg", 120))
	res, hit := c.Get(key)
	if !hit {
		t.Fatal("miss after Set")
	}
	if res.MatchedName != "Vitamina C 1000mg" || res.Price != 120 {
		t.Errorf("unexpected cached value: %+v", res)
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	c := New(10, 30*time.Millisecond)

	key := Key("benavides", "aspirina")
	c.Set(key, found("Aspirina", 35))

	if _, hit := c.Get(key); !hit {
		t.Fatal("miss before expiry")
	}
	time.Sleep(50 * time.Millisecond)
	if _, hit := c.Get(key); hit {
		t.Error("hit after TTL expiry")
	}
}

func TestCacheCapacityEviction(t *testing.T) {
	c := New(2, time.Minute)

	c.Set("k1", found("a", 1))
	c.Set("k2", found("b", 2))
	c.Set("k3", found("c", 3))

	if _, hit := c.Get("k3"); !hit {
		t.Error("newest entry was evicted")
	}
	hits := 0
	for _, k := range []string{"k1", "k2"} {
		if _, hit := c.Get(k); hit {
			hits++
		}
	}
	if hits != 1 {
		t.Errorf("older entries surviving = %d, want exactly 1", hits)
	}
}

func TestCacheOverwriteAtCapacityDoesNotEvict(t *testing.T) {
	c := New(2, time.Minute)

	c.Set("k1", found("a", 1))
	c.Set("k2", found("b", 2))
	c.Set("k1", found("a-updated", 10))

	res, hit := c.Get("k1")
	if !hit || res.Price != 10 {
		t.Errorf("overwritten entry = %+v (hit=%v), want price 10", res, hit)
	}
	if _, hit := c.Get("k2"); !hit {
		t.Error("unrelated entry was evicted by an overwrite")
	}
}

func TestCacheDisabledByZeroTTL(t *testing.T) {
	if c := New(10, 0); c != nil {
		t.Error("New with zero TTL should return nil")
	}
}

func TestKeyNormalizesProductName(t *testing.T) {
	if Key("guadalajara", "Vitamina C") != Key("guadalajara", "  vitamina   c!! ") {
		t.Error("formatting differences should share a cache entry")
	}
	if Key("guadalajara", "vitamina c") == Key("benavides", "vitamina c") {
		t.Error("different competitors must not share entries")
	}
}
