package textsim

import (
	"context"
	"fmt"
	"math/rand"
	"reflect"
	"testing"
)

func corpusOf(docs ...Document) *Corpus {
	store := &memStore{docs: docs}
	c, err := Load(context.Background(), store, LoadOptions{})
	if err != nil {
		panic(err)
	}
	return c
}

func TestSearch(t *testing.T) {
	c := corpusOf(
		Document{Text: "shoes", Vector: []float64{1, 0}},
		Document{Text: "hat", Vector: []float64{0, 1}},
	)

	tests := []struct {
		name  string
		query []float64
		k     int
		want  []string
	}{
		{"aligned query", []float64{1, 0}, 1, []string{"shoes"}},
		{"opposite query picks least dissimilar", []float64{-1, 0}, 1, []string{"hat"}},
		{"k covers corpus", []float64{1, 0}, 5, []string{"shoes", "hat"}},
		{"zero norm query", []float64{0, 0}, 1, nil},
		{"k zero", []float64{1, 0}, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Search(tt.query, tt.k)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Search(%v, %d) = %v, want %v", tt.query, tt.k, got, tt.want)
			}
		})
	}
}

// 部分选择与全量排序必须逐位一致。
func TestSearch_PartialSelectionMatchesFullSort(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, n := range []int{3, 10, 37} {
		docs := make([]Document, n)
		for i := range docs {
			vec := make([]float64, 5)
			for j := range vec {
				vec[j] = rng.NormFloat64()
			}
			docs[i] = Document{Text: fmt.Sprintf("doc-%03d", i), Vector: vec}
		}
		c := corpusOf(docs...)

		query := make([]float64, 5)
		for j := range query {
			query[j] = rng.NormFloat64()
		}

		full := c.Search(query, n) // k >= N：全量排序
		for _, k := range []int{1, 2, n / 2, n - 1} {
			if k <= 0 {
				continue
			}
			partial := c.Search(query, k)
			if !reflect.DeepEqual(partial, full[:k]) {
				t.Fatalf("n=%d k=%d: partial %v != full prefix %v", n, k, partial, full[:k])
			}
		}
	}
}

func TestSearch_TieBreakByText(t *testing.T) {
	c := corpusOf(
		Document{Text: "beta", Vector: []float64{1, 0}},
		Document{Text: "alpha", Vector: []float64{1, 0}}, // 与 beta 相似度完全相同
		Document{Text: "gamma", Vector: []float64{0, 1}},
	)

	got := c.Search([]float64{1, 0}, 2)
	want := []string{"alpha", "beta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Search = %v, want %v", got, want)
	}
}

func TestSearch_SkipsDimMismatchedEntries(t *testing.T) {
	c := corpusOf(
		Document{Text: "twod", Vector: []float64{1, 0}},
		Document{Text: "threed", Vector: []float64{1, 0, 0}},
	)
	got := c.Search([]float64{1, 0}, 5)
	if !reflect.DeepEqual(got, []string{"twod"}) {
		t.Errorf("Search = %v, want [twod]", got)
	}
}

// fakeEmbedder 返回固定映射的嵌入，未知文本返回空向量。
type fakeEmbedder struct {
	vectors map[string][]float64
}

func (f *fakeEmbedder) Name() string { return "embed.fake" }

func (f *fakeEmbedder) Embed(_ context.Context, text string) []float64 {
	return f.vectors[text]
}

func TestSearcher_SearchText(t *testing.T) {
	c := corpusOf(
		Document{Text: "shoes", Vector: []float64{1, 0}},
		Document{Text: "hat", Vector: []float64{0, 1}},
	)
	s := &Searcher{
		Corpus: c,
		Embedder: &fakeEmbedder{vectors: map[string][]float64{
			"running gear": {1, 0},
		}},
	}

	if got := s.SearchText(context.Background(), "running gear", 1); !reflect.DeepEqual(got, []string{"shoes"}) {
		t.Errorf("SearchText = %v, want [shoes]", got)
	}

	// 嵌入降级为空向量时短路为空结果
	if got := s.SearchText(context.Background(), "unknown query", 1); got != nil {
		t.Errorf("SearchText with failed embedding = %v, want nil", got)
	}
}

// 确认比较器在两条路径间共享：对任意 k，结果是全量排序的前缀。
func TestSearch_DeterministicAcrossRepeats(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	docs := make([]Document, 12)
	for i := range docs {
		docs[i] = Document{
			Text:   fmt.Sprintf("t%02d", i),
			Vector: []float64{rng.Float64(), rng.Float64()},
		}
	}
	c := corpusOf(docs...)
	query := []float64{0.3, 0.7}

	first := c.Search(query, 4)
	for i := 0; i < 5; i++ {
		if got := c.Search(query, 4); !reflect.DeepEqual(got, first) {
			t.Fatalf("Search not deterministic: %v != %v", got, first)
		}
	}
}
