package affinity

import (
	"sort"

	"github.com/rushteam/shoprec/core"
)

// RankCategories 把相似用户的类目交互聚合成候选类目排名。
//
// 每个相似用户对其碰过的类目贡献 1（binary，不按购买次数加权），
// 按贡献和降序排列，平局按类目名升序，取前 topN。
// similarUsers 为空时返回空序列。
func RankCategories(similarUsers []string, interactions []core.Interaction, items []*core.Item, topN int) []string {
	if len(similarUsers) == 0 {
		return nil
	}
	if topN <= 0 {
		topN = 5
	}

	categoryOf := make(map[string]string, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		categoryOf[it.ID] = it.Category
	}

	similar := make(map[string]struct{}, len(similarUsers))
	for _, u := range similarUsers {
		similar[u] = struct{}{}
	}

	// touched[user][category] 去重：同一用户多次购买同类目只计一次
	touched := make(map[string]map[string]struct{})
	scores := make(map[string]int)
	for _, in := range interactions {
		if _, ok := similar[in.UserID]; !ok {
			continue
		}
		cat, known := categoryOf[in.ItemID]
		if !known {
			continue
		}
		seen := touched[in.UserID]
		if seen == nil {
			seen = make(map[string]struct{})
			touched[in.UserID] = seen
		}
		if _, dup := seen[cat]; dup {
			continue
		}
		seen[cat] = struct{}{}
		scores[cat]++
	}

	ranked := make([]string, 0, len(scores))
	for cat := range scores {
		ranked = append(ranked, cat)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if scores[ranked[i]] != scores[ranked[j]] {
			return scores[ranked[i]] > scores[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
