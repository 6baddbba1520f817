package dsl

import (
	"testing"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/utils"
)

func testEvalItem() *core.Item {
	it := core.NewItem("p1")
	it.Category = "shoes"
	it.Price = 129.0
	it.Rating = 4.5
	it.Score = 0.8
	it.PutLabel("recall_source", utils.Label{Value: "profile_ann", Source: "recall"})
	return it
}

func TestEval_Evaluate(t *testing.T) {
	rctx := &core.RecommendContext{
		UserID: "u1",
		Scene:  "homepage",
	}

	tests := []struct {
		name    string
		expr    string
		want    bool
		wantErr bool
	}{
		{"empty expr keeps item", "", true, false},
		{"category match", `item.category == "shoes"`, true, false},
		{"rating threshold", `item.rating >= 4.0`, true, false},
		{"price limit fails", `item.price < 100.0`, false, false},
		{"compound", `item.category == "shoes" && item.score > 0.7`, true, false},
		{"label access", `label.recall_source == "profile_ann"`, true, false},
		{"label contains", `label.recall_source.contains("ann")`, true, false},
		{"rctx access", `rctx.scene == "homepage"`, true, false},
		{"non-boolean result", `item.price`, false, true},
		{"compile error", `item.category ==`, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEval(testEvalItem(), rctx).Evaluate(tt.expr)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Evaluate(%q): expected error", tt.expr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Evaluate(%q): %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEval_NilContext(t *testing.T) {
	got, err := NewEval(testEvalItem(), nil).Evaluate(`item.rating >= 4.0`)
	if err != nil {
		t.Fatalf("Evaluate with nil rctx: %v", err)
	}
	if !got {
		t.Error("Evaluate = false, want true")
	}
}
