package filter

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/dsl"
)

// RuleFilter 是基于 CEL 规则表达式的过滤器，用运营配置的规则做候选裁剪。
//
// Expr 为保留条件：表达式为 true 的商品保留，false 的被过滤。
// 示例：
//   - `item.rating >= 4.0`
//   - `item.price < 500.0 && item.category != "clearance"`
//   - `label.recall_source != null`
type RuleFilter struct {
	Expr string
}

// NewRuleFilter 创建规则过滤器。
func NewRuleFilter(expr string) *RuleFilter {
	return &RuleFilter{Expr: expr}
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Expr == "" {
		return false, nil
	}

	keep, err := dsl.NewEval(item, rctx).Evaluate(f.Expr)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
