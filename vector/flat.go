// Package vector 提供最近邻索引的内存实现。
//
// FlatIndex 是平铺精确检索（暴力计算全量距离）：目录规模下精确检索
// 足够快，且结果确定；近似索引（ANN）可通过实现 core.VectorIndex
// 接口替换，上层装配逻辑无需改动。
package vector

import (
	"context"
	"fmt"
	"sort"

	"github.com/rushteam/shoprec/core"
)

// FlatIndex 是构建后只读的精确最近邻索引，距离度量为欧氏距离平方。
// 只读结构可被任意并发查询，无需加锁。
type FlatIndex struct {
	dim     int
	ids     []string
	vectors [][]float64
}

var _ core.VectorIndex = (*FlatIndex)(nil)

// BuildFlatIndex 索引全量特征向量。ids 与 vectors 一一对应，
// 向量维度必须一致（fail-fast，不静默跳过）。
func BuildFlatIndex(ids []string, vectors [][]float64) (*FlatIndex, error) {
	if len(ids) != len(vectors) {
		return nil, core.NewDomainError(core.ModuleVector, core.ErrorCodeInvalidInput,
			fmt.Sprintf("vector: %d ids but %d vectors", len(ids), len(vectors)))
	}

	x := &FlatIndex{}
	for i, vec := range vectors {
		if len(vec) == 0 {
			return nil, core.NewDomainError(core.ModuleVector, core.ErrorCodeInvalidInput,
				"vector: empty vector for id "+ids[i])
		}
		if x.dim == 0 {
			x.dim = len(vec)
		} else if len(vec) != x.dim {
			return nil, core.NewDomainError(core.ModuleVector, core.ErrorCodeInvalidInput,
				fmt.Sprintf("vector: id %s has dim %d, want %d", ids[i], len(vec), x.dim))
		}
	}
	x.ids = append(x.ids, ids...)
	x.vectors = append(x.vectors, vectors...)
	return x, nil
}

func (x *FlatIndex) Name() string { return "vector.flat" }

// Dim 返回索引向量维度。
func (x *FlatIndex) Dim() int { return x.dim }

// Len 返回已索引的向量数量。
func (x *FlatIndex) Len() int { return len(x.ids) }

// Search 返回与 query 最近的 k 个向量（欧氏距离平方，从近到远）。
// query 可以是索引外的合成向量；维度不一致是契约违反，返回硬错误。
// 结果对固定向量集确定：平局按插入下标打破。
func (x *FlatIndex) Search(_ context.Context, query []float64, k int) ([]core.VectorSearchItem, error) {
	if len(x.ids) == 0 || k <= 0 {
		return nil, nil
	}
	if len(query) != x.dim {
		return nil, core.ErrDimensionMismatch
	}

	type scored struct {
		idx  int
		dist float64
	}
	all := make([]scored, len(x.vectors))
	for i, vec := range x.vectors {
		var sum float64
		for j := range vec {
			d := vec[j] - query[j]
			sum += d * d
		}
		all[i] = scored{idx: i, dist: sum}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].dist < all[j].dist
	})

	if k > len(all) {
		k = len(all)
	}
	out := make([]core.VectorSearchItem, 0, k)
	for _, s := range all[:k] {
		out = append(out, core.VectorSearchItem{ID: x.ids[s.idx], Distance: s.dist})
	}
	return out, nil
}
