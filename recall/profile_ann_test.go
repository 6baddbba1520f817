package recall

import (
	"context"
	"testing"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/vector"
)

type fixedProfile struct {
	vec []float64
}

func (f *fixedProfile) ProfileVector(_ context.Context, _ *core.RecommendContext) []float64 {
	return f.vec
}

func TestProfileANN_Recall(t *testing.T) {
	idx, err := vector.BuildFlatIndex(
		[]string{"p1", "p2", "p3"},
		[][]float64{{0, 1}, {3, 4}, {0, 0.5}},
	)
	if err != nil {
		t.Fatalf("BuildFlatIndex: %v", err)
	}

	catalog := map[string]*core.Item{
		"p1": core.NewItem("p1"),
		"p3": core.NewItem("p3"),
		// p2 不在目录：Lookup 返回 nil，被跳过
	}

	src := &ProfileANN{
		Profile: &fixedProfile{vec: []float64{0, 0}},
		Index:   idx,
		Lookup:  func(id string) *core.Item { return catalog[id] },
		TopK:    3,
	}

	got, err := src.Recall(context.Background(), &core.RecommendContext{UserID: "u"})
	if err != nil {
		t.Fatalf("Recall: %v", err)
	}
	if len(got) != 2 || got[0].ID != "p3" || got[1].ID != "p1" {
		ids := make([]string, 0, len(got))
		for _, it := range got {
			ids = append(ids, it.ID)
		}
		t.Fatalf("Recall order = %v, want [p3 p1]", ids)
	}
	if _, ok := got[0].Labels["ann_distance"]; !ok {
		t.Error("recalled item missing ann_distance label")
	}
}

func TestProfileANN_NoProfile(t *testing.T) {
	idx, _ := vector.BuildFlatIndex([]string{"p1"}, [][]float64{{1}})
	src := &ProfileANN{
		Profile: &fixedProfile{vec: nil}, // 无信号
		Index:   idx,
		Lookup:  func(string) *core.Item { return nil },
		TopK:    5,
	}

	got, err := src.Recall(context.Background(), &core.RecommendContext{})
	if err != nil || got != nil {
		t.Errorf("Recall with empty profile = %v, %v, want nil, nil", got, err)
	}
}

func TestHot_Recall(t *testing.T) {
	src := &Hot{IDs: []string{"h1", "h2"}}
	got, err := src.Recall(context.Background(), nil)
	if err != nil {
		t.Fatalf("Recall: %v", err)
	}
	if len(got) != 2 || got[0].ID != "h1" {
		t.Errorf("Recall = %d items", len(got))
	}
}
