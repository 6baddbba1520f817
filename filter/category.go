package filter

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/conv"
)

// CategoryFilter 只保留候选类目内的商品。
//
// 候选类目的来源有两个（优先级从高到低）：
//   - 构造时传入的固定类目列表
//   - rctx.Params["candidate_categories"]（由亲和度排名阶段写入）
//
// 两个来源都为空时不做任何过滤（无信号视为不限类目）。
type CategoryFilter struct {
	Categories []string
}

// NewCategoryFilter 创建固定类目过滤器。
func NewCategoryFilter(categories []string) *CategoryFilter {
	return &CategoryFilter{Categories: categories}
}

func (f *CategoryFilter) Name() string {
	return "filter.category"
}

func (f *CategoryFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	categories := f.Categories
	if len(categories) == 0 && rctx != nil {
		categories = candidateCategories(rctx.Params)
	}
	if len(categories) == 0 {
		return false, nil
	}

	for _, c := range categories {
		if item.Category == c {
			return false, nil
		}
	}
	return true, nil
}

// candidateCategories 从请求参数取候选类目，兼容 []string 与 JSON 解码出的 []any。
func candidateCategories(params map[string]any) []string {
	if params == nil {
		return nil
	}
	v := params["candidate_categories"]
	if cats, ok := v.([]string); ok {
		return cats
	}
	return conv.SliceAnyToString(v)
}
