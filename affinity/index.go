// Package affinity 实现用户-类目亲和度检索："找出类目交互模式与我最像的用户"。
//
// 数据结构是一个二值的 用户×类目 矩阵（有交互=1），由交互快照 join
// 商品类目一次性重建，从不原地修补。相似度用余弦距离暴力计算：
// 类目数远小于商品数，矩阵足够小，暴力检索即精确且够快。
package affinity

import (
	"math"
	"sort"

	"github.com/rushteam/shoprec/core"
)

// Index 是构建后只读的亲和度索引。
// 状态机：Unbuilt → Built（不可变）→ Queryable；
// 交互快照更新必须丢弃旧实例重新 BuildIndex。
type Index struct {
	users      []string // 行序：用户在快照中首次出现的顺序（任意但确定）
	userIdx    map[string]int
	categories []string // 列序：类目名升序
	rows       [][]uint8
	norms      []float64 // 每行的 L2 范数，全零行为 0
}

// BuildIndex 从交互快照与目录构建二值 用户×类目 矩阵。
// 指向未知商品的交互被跳过（与快照 join 目录的语义一致）。
func BuildIndex(interactions []core.Interaction, items []*core.Item) (*Index, error) {
	categoryOf := make(map[string]string, len(items))
	catSet := make(map[string]struct{})
	for _, it := range items {
		if it == nil || it.ID == "" {
			continue
		}
		categoryOf[it.ID] = it.Category
		catSet[it.Category] = struct{}{}
	}

	categories := make([]string, 0, len(catSet))
	for c := range catSet {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	catIdx := make(map[string]int, len(categories))
	for i, c := range categories {
		catIdx[c] = i
	}

	idx := &Index{
		userIdx:    make(map[string]int),
		categories: categories,
	}
	for _, in := range interactions {
		if in.UserID == "" {
			continue
		}
		cat, known := categoryOf[in.ItemID]
		if !known {
			continue
		}
		row, ok := idx.userIdx[in.UserID]
		if !ok {
			row = len(idx.users)
			idx.userIdx[in.UserID] = row
			idx.users = append(idx.users, in.UserID)
			idx.rows = append(idx.rows, make([]uint8, len(categories)))
		}
		idx.rows[row][catIdx[cat]] = 1
	}

	idx.norms = make([]float64, len(idx.rows))
	for i, row := range idx.rows {
		n := 0
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
		idx.norms[i] = math.Sqrt(float64(n))
	}
	return idx, nil
}

// Users 返回矩阵的行序用户列表。
func (x *Index) Users() []string { return x.users }

// Categories 返回矩阵的列序类目列表。
func (x *Index) Categories() []string { return x.categories }

// maxCosineDistance 是零向量行的距离：视为完全不相似。
// 不允许 0/0 被当成相似。
const maxCosineDistance = 2.0

// Neighbors 返回与 userID 类目交互模式最近的 k 个用户，
// 按余弦距离从近到远，排除该用户自身。
//
// 平局按行枚举顺序打破（稳定、但不具备语义，视为任意）。
// 未知用户不是错误：返回空序列，调用方据此给出空推荐。
func (x *Index) Neighbors(userID string, k int) []string {
	self, ok := x.userIdx[userID]
	if !ok || k <= 0 || len(x.users) <= 1 {
		return nil
	}

	type candidate struct {
		row  int
		dist float64
	}
	cands := make([]candidate, 0, len(x.users)-1)
	for row := range x.rows {
		if row == self {
			continue
		}
		cands = append(cands, candidate{row: row, dist: x.distance(self, row)})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].dist < cands[j].dist
	})

	if k > len(cands) {
		k = len(cands)
	}
	out := make([]string, 0, k)
	for _, c := range cands[:k] {
		out = append(out, x.users[c.row])
	}
	return out
}

// distance 计算两行的余弦距离；任一行为零向量时返回最大距离。
func (x *Index) distance(a, b int) float64 {
	if x.norms[a] == 0 || x.norms[b] == 0 {
		return maxCosineDistance
	}
	dot := 0
	ra, rb := x.rows[a], x.rows[b]
	for i := range ra {
		if ra[i] != 0 && rb[i] != 0 {
			dot++
		}
	}
	return 1.0 - float64(dot)/(x.norms[a]*x.norms[b])
}
