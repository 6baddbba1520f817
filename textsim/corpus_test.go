package textsim

import (
	"context"
	"math"
	"reflect"
	"testing"
)

// memStore 是测试用的内存 CorpusStore。
type memStore struct {
	docs       []Document
	normalized bool
	saved      int
}

func (m *memStore) Name() string { return "corpus.mem" }

func (m *memStore) Load(_ context.Context) ([]Document, bool, error) {
	return m.docs, m.normalized, nil
}

func (m *memStore) Save(_ context.Context, docs []Document, normalized bool) error {
	m.docs = docs
	m.normalized = normalized
	m.saved++
	return nil
}

func TestLoad_ExcludeAndZeroNorm(t *testing.T) {
	store := &memStore{
		docs: []Document{
			{Text: "red running shoes", Vector: []float64{1, 0}},
			{Text: "DISCONTINUED boots", Vector: []float64{0, 1}},
			{Text: "ghost entry", Vector: []float64{0, 0}}, // 零范数被剔除
			{Text: "wool hat", Vector: []float64{0, 1}},
		},
	}

	c, err := Load(context.Background(), store, LoadOptions{
		Exclude: []string{"discontinued"},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// 排除大小写不敏感、零范数剔除
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	// 未开启 Persist 时从不写回
	if store.saved != 0 {
		t.Errorf("store.Save called %d times, want 0", store.saved)
	}
}

func TestLoad_NormalizeAndPersist(t *testing.T) {
	store := &memStore{
		docs: []Document{
			{Text: "a", Vector: []float64{3, 4}},
		},
	}

	c, err := Load(context.Background(), store, LoadOptions{
		Normalize: true,
		Persist:   true,
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !c.Normalized() {
		t.Error("corpus should be normalized")
	}
	if store.saved != 1 {
		t.Fatalf("store.Save called %d times, want 1", store.saved)
	}
	if !store.normalized {
		t.Error("persisted normalized flag should be true")
	}
	got := store.docs[0].Vector
	want := []float64{0.6, 0.8}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("persisted vector = %v, want %v", got, want)
		}
	}
}

func TestLoad_AlreadyNormalizedIsNoop(t *testing.T) {
	store := &memStore{
		docs:       []Document{{Text: "a", Vector: []float64{0.6, 0.8}}},
		normalized: true,
	}

	c, err := Load(context.Background(), store, LoadOptions{Normalize: true})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !c.Normalized() {
		t.Error("corpus should stay normalized")
	}
	// 已单位化的语料再开启 Normalize 不改变向量
	if got := c.Search([]float64{0.6, 0.8}, 1); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("Search = %v, want [a]", got)
	}
}

func TestLoad_NilStore(t *testing.T) {
	if _, err := Load(context.Background(), nil, LoadOptions{}); err == nil {
		t.Fatal("Load(nil store): expected error")
	}
}
