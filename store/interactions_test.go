package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/rushteam/shoprec/core"
)

func TestInteractionStore_SnapshotRoundtrip(t *testing.T) {
	ctx := context.Background()
	s := NewInteractionStore(NewMemoryStore(), "")

	snapshot := []core.Interaction{
		{UserID: "u1", ItemID: "p1"},
		{UserID: "u1", ItemID: "p2"},
		{UserID: "u2", ItemID: "p1"},
		{UserID: "", ItemID: "p9"},   // 脏行被跳过
		{UserID: "u3", ItemID: ""},   // 脏行被跳过
	}
	if err := s.SaveSnapshot(ctx, snapshot); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, err := s.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	want := []core.Interaction{
		{UserID: "u1", ItemID: "p1"},
		{UserID: "u1", ItemID: "p2"},
		{UserID: "u2", ItemID: "p1"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadSnapshot = %v, want %v", got, want)
	}
}

func TestInteractionStore_GetUserItems(t *testing.T) {
	ctx := context.Background()
	s := NewInteractionStore(NewMemoryStore(), "test")

	if err := s.SaveSnapshot(ctx, []core.Interaction{
		{UserID: "u1", ItemID: "p1"},
		{UserID: "u1", ItemID: "p2"},
	}); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, err := s.GetUserItems(ctx, "u1")
	if err != nil || !reflect.DeepEqual(got, []string{"p1", "p2"}) {
		t.Errorf("GetUserItems(u1) = %v, %v", got, err)
	}

	// 未知用户：空集，不是错误
	got, err = s.GetUserItems(ctx, "stranger")
	if err != nil || got != nil {
		t.Errorf("GetUserItems(stranger) = %v, %v, want nil, nil", got, err)
	}
}

func TestInteractionStore_EmptySnapshot(t *testing.T) {
	ctx := context.Background()
	s := NewInteractionStore(NewMemoryStore(), "")

	got, err := s.LoadSnapshot(ctx)
	if err != nil || got != nil {
		t.Errorf("LoadSnapshot on empty store = %v, %v, want nil, nil", got, err)
	}
}
