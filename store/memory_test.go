package store

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/rushteam/shoprec/core"
)

func TestMemoryStore_GetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	defer m.Close()

	if _, err := m.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Fatalf("Get(missing) err = %v, want ErrStoreNotFound", err)
	}

	if err := m.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := m.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("Get = %q, %v, want v, nil", got, err)
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Fatalf("Get after delete err = %v, want ErrStoreNotFound", err)
	}
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	if err := m.Set(ctx, "short", []byte("x"), 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := m.Get(ctx, "short"); err != nil {
		t.Fatalf("Get before expiry: %v", err)
	}

	// 惰性过期：直接改过期时间，不真正 sleep
	past := time.Now().Add(-time.Second)
	m.mu.Lock()
	m.data["short"].expire = &past
	m.mu.Unlock()

	if _, err := m.Get(ctx, "short"); !core.IsStoreNotFound(err) {
		t.Fatalf("Get after expiry err = %v, want ErrStoreNotFound", err)
	}
}

func TestMemoryStore_Batch(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	kvs := map[string][]byte{"a": []byte("1"), "b": []byte("2")}
	if err := m.BatchSet(ctx, kvs); err != nil {
		t.Fatalf("BatchSet: %v", err)
	}

	got, err := m.BatchGet(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatalf("BatchGet: %v", err)
	}
	if len(got) != 2 || string(got["a"]) != "1" || string(got["b"]) != "2" {
		t.Errorf("BatchGet = %v", got)
	}
}

func TestMemoryStore_ZRange(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	m.ZAdd(ctx, "hot", 3, "p3")
	m.ZAdd(ctx, "hot", 9, "p9")
	m.ZAdd(ctx, "hot", 5, "p5")
	m.ZAdd(ctx, "hot", 5, "p4") // 同分，按成员名升序

	got, err := m.ZRange(ctx, "hot", 0, 2)
	if err != nil {
		t.Fatalf("ZRange: %v", err)
	}
	want := []string{"p9", "p4", "p5"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ZRange = %v, want %v", got, want)
	}

	// stop 越界时取到末尾
	all, err := m.ZRange(ctx, "hot", 0, 100)
	if err != nil || len(all) != 4 {
		t.Errorf("ZRange full = %v, %v", all, err)
	}

	// 未知 key 返回空
	if got, err := m.ZRange(ctx, "none", 0, 10); err != nil || got != nil {
		t.Errorf("ZRange(none) = %v, %v", got, err)
	}
}
