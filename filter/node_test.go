package filter

import (
	"context"
	"testing"

	"github.com/rushteam/shoprec/core"
)

func filterItem(id, category string, rating float64) *core.Item {
	it := core.NewItem(id)
	it.Category = category
	it.Rating = rating
	return it
}

func TestFilterNode_Process(t *testing.T) {
	node := &FilterNode{
		Filters: []Filter{
			NewCategoryFilter([]string{"X", "Y"}),
			NewPurchasedFilter([]string{"x1"}),
			NewRatingFilter(4.0),
		},
	}

	items := []*core.Item{
		filterItem("x1", "X", 5.0), // 已购
		filterItem("x2", "X", 5.0),
		filterItem("x3", "X", 3.0), // 低分
		filterItem("z1", "Z", 5.0), // 类目外
		filterItem("y1", "Y", 4.0),
		nil,
	}

	got, err := node.Process(context.Background(), &core.RecommendContext{UserID: "u1"}, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	wantIDs := []string{"x2", "y1"}
	if len(got) != len(wantIDs) {
		t.Fatalf("Process kept %d items, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("kept[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestCategoryFilter_FromContextParams(t *testing.T) {
	f := NewCategoryFilter(nil)
	rctx := &core.RecommendContext{
		Params: map[string]any{"candidate_categories": []string{"X"}},
	}

	drop, err := f.ShouldFilter(context.Background(), rctx, filterItem("x1", "X", 5))
	if err != nil || drop {
		t.Errorf("ShouldFilter(X in [X]) = %v, %v", drop, err)
	}
	drop, err = f.ShouldFilter(context.Background(), rctx, filterItem("z1", "Z", 5))
	if err != nil || !drop {
		t.Errorf("ShouldFilter(Z in [X]) = %v, %v, want filtered", drop, err)
	}

	// 无候选类目：不限制
	drop, err = f.ShouldFilter(context.Background(), &core.RecommendContext{}, filterItem("z1", "Z", 5))
	if err != nil || drop {
		t.Errorf("ShouldFilter with no categories = %v, %v, want kept", drop, err)
	}
}

func TestRuleFilter(t *testing.T) {
	f := NewRuleFilter(`item.rating >= 4.0`)

	drop, err := f.ShouldFilter(context.Background(), nil, filterItem("a", "X", 4.5))
	if err != nil || drop {
		t.Errorf("high rating item = %v, %v, want kept", drop, err)
	}
	drop, err = f.ShouldFilter(context.Background(), nil, filterItem("b", "X", 3.0))
	if err != nil || !drop {
		t.Errorf("low rating item = %v, %v, want filtered", drop, err)
	}
}

func TestBlacklistFilter_FromStore(t *testing.T) {
	f := NewBlacklistFilter([]string{"bad1"}, nil, "")

	drop, _ := f.ShouldFilter(context.Background(), nil, filterItem("bad1", "X", 5))
	if !drop {
		t.Error("blacklisted item should be filtered")
	}
	drop, _ = f.ShouldFilter(context.Background(), nil, filterItem("ok", "X", 5))
	if drop {
		t.Error("clean item should be kept")
	}
}
