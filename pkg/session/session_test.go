package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandutsar/bqplot/pkg/config"
	"github.com/sandutsar/bqplot/pkg/pipeline"
)

const doc = `
[[scales]]
name = "x"
kind = "ordinal"

[[scales]]
name = "y"

[[marks]]
name = "m"
x = [1, 2]
y = [3, 4]
scales = { x = "x", y = "y" }
`

func newChart(t *testing.T) *pipeline.Chart {
	t.Helper()
	c, err := config.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	ch, err := pipeline.Build(c)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	ch.Flush()
	return ch
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	sess := New(newChart(t), time.Minute)

	if sess.ID == "" {
		t.Fatal("New() produced an empty ID")
	}
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil || got != sess {
		t.Fatalf("Get() = %v, %v, want the stored session", got, err)
	}

	err = got.Do(func(ch *pipeline.Chart) {
		ch.Resize(400, 300)
		if !ch.Flush() {
			t.Error("Flush() after Resize = false")
		}
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestDoAfterDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	sess := New(newChart(t), time.Minute)
	store.Set(ctx, sess)

	held, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	called := false
	err = held.Do(func(ch *pipeline.Chart) {
		called = true
		ch.Resize(10, 10)
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Do() after Delete error = %v, want ErrNotFound", err)
	}
	if called {
		t.Error("Do() ran fn on a released chart")
	}
}

func TestDoAfterReplace(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	old := New(newChart(t), time.Minute)
	store.Set(ctx, old)

	replacement := New(newChart(t), time.Minute)
	replacement.ID = old.ID
	store.Set(ctx, replacement)

	if err := old.Do(func(*pipeline.Chart) {}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Do() on replaced session error = %v, want ErrNotFound", err)
	}
	if err := replacement.Do(func(*pipeline.Chart) {}); err != nil {
		t.Errorf("Do() on current session error = %v", err)
	}
}

func TestExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	stale := New(newChart(t), -time.Second)
	fresh := New(newChart(t), time.Hour)
	store.Set(ctx, stale)
	store.Set(ctx, fresh)

	if _, err := store.Get(ctx, stale.ID); !errors.Is(err, ErrExpired) {
		t.Errorf("Get(stale) error = %v, want ErrExpired", err)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d after expired Get, want 1", store.Len())
	}

	gone := New(newChart(t), -time.Second)
	store.Set(ctx, gone)
	n, err := store.Cleanup(ctx)
	if err != nil || n != 1 {
		t.Errorf("Cleanup() = %d, %v, want 1, nil", n, err)
	}
	if _, err := store.Get(ctx, fresh.ID); err != nil {
		t.Errorf("Get(fresh) error = %v", err)
	}
}

func TestTouch(t *testing.T) {
	sess := New(newChart(t), -time.Second)
	if !sess.IsExpired() {
		t.Fatal("session with negative ttl should be expired")
	}
	sess.Touch(time.Hour)
	if sess.IsExpired() {
		t.Error("Touch() did not extend the session")
	}
}
