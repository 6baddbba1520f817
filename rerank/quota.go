package rerank

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/pkg/utils"
)

// Quota 是类目配额 ReRank：在保持输入顺序（相似度降序）的前提下，
// 用两遍扫描兼顾"类目覆盖"和"整体相似度"：
//
//  1. 配额遍：按顺序扫描，只收每个类目尚未满 MinPerCategory 配额的商品，
//     收满 TopN 即停；
//  2. 补位遍：若配额遍后还有空位，再按顺序扫描收剩余商品，直到 TopN。
//
// 两遍都不打乱输入相对顺序，最终结果仍按相似度降序。
// 配额是尽力而为：候选中某类目不足配额时不会报错，空位由补位遍填充。
type Quota struct {
	// TopN 最终结果数，<=0 时不截断（只做配额排序无意义，通常应设置）
	TopN int

	// MinPerCategory 每个类目的最小配额，<=0 时退化为纯 TopN 截断
	MinPerCategory int
}

func (n *Quota) Name() string {
	return "rerank.quota"
}

func (n *Quota) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Quota) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	topN := n.TopN
	if topN <= 0 {
		topN = len(items)
	}

	// 配额 <=0：纯截断
	if n.MinPerCategory <= 0 {
		if len(items) > topN {
			return items[:topN], nil
		}
		return items, nil
	}

	picked := make(map[string]bool, topN)
	counts := make(map[string]int, 8)
	out := make([]*core.Item, 0, topN)

	// 第一遍：配额
	for _, it := range items {
		if len(out) >= topN {
			break
		}
		if it == nil || picked[it.ID] {
			continue
		}
		if counts[it.Category] >= n.MinPerCategory {
			continue
		}
		it.PutLabel("quota", utils.Label{Value: "quota_pass", Source: n.Name()})
		picked[it.ID] = true
		counts[it.Category]++
		out = append(out, it)
	}

	// 第二遍：补位
	for _, it := range items {
		if len(out) >= topN {
			break
		}
		if it == nil || picked[it.ID] {
			continue
		}
		it.PutLabel("quota", utils.Label{Value: "backfill_pass", Source: n.Name()})
		picked[it.ID] = true
		out = append(out, it)
	}

	return out, nil
}
