package feature

import (
	"fmt"

	"github.com/rushteam/shoprec/core"
)

// Store 是全量商品特征向量的不可变仓库。
//
// 特征向量 = 文本嵌入 ++ [price_scaled]：
//   - 价格在各自类目内做 min-max 归一到 [0,1]（跨类目价格不可比，
//     独立归一才能保留类目内的相对贵贱信号）
//   - 单商品类目或价格区间为零的类目，price_scaled = 0
//
// 构建一次后只读；目录更新需要丢弃旧实例、全量重建。
// 只读结构可被任意并发查询，无需加锁。
type Store struct {
	dim     int
	ids     []string
	index   map[string]int
	vectors [][]float64
}

// BuildStore 从目录快照构建特征库。
//
// 对快照做 fail-fast 校验而不是静默默认：缺 ID/类目、负价格、
// 缺嵌入、嵌入维度不一致、重复 ID 都在构建期拒绝。
// 脏数据清洗是外部元数据管线的职责，不在这里兜底。
func BuildStore(items []*core.Item) (*Store, error) {
	if len(items) == 0 {
		return &Store{index: make(map[string]int)}, nil
	}

	embedDim := 0
	for i, it := range items {
		if it == nil {
			return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput,
				fmt.Sprintf("feature: nil item at position %d", i))
		}
		if it.ID == "" {
			return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput,
				fmt.Sprintf("feature: empty item id at position %d", i))
		}
		if it.Category == "" {
			return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput,
				"feature: item "+it.ID+" has no category")
		}
		if it.Price < 0 {
			return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput,
				"feature: item "+it.ID+" has negative price")
		}
		if len(it.Embedding) == 0 {
			return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput,
				"feature: item "+it.ID+" has no embedding")
		}
		if embedDim == 0 {
			embedDim = len(it.Embedding)
		} else if len(it.Embedding) != embedDim {
			return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput,
				fmt.Sprintf("feature: item %s embedding dim %d, want %d", it.ID, len(it.Embedding), embedDim))
		}
	}

	scaled, err := scalePrices(items)
	if err != nil {
		return nil, err
	}

	s := &Store{
		dim:     embedDim + 1,
		ids:     make([]string, 0, len(items)),
		index:   make(map[string]int, len(items)),
		vectors: make([][]float64, 0, len(items)),
	}
	for i, it := range items {
		if _, dup := s.index[it.ID]; dup {
			return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput,
				"feature: duplicate item id "+it.ID)
		}
		vec := make([]float64, 0, s.dim)
		vec = append(vec, it.Embedding...)
		vec = append(vec, scaled[i])

		s.index[it.ID] = len(s.ids)
		s.ids = append(s.ids, it.ID)
		s.vectors = append(s.vectors, vec)
	}
	return s, nil
}

// scalePrices 按类目独立做 min-max 归一，返回与 items 对齐的 price_scaled。
func scalePrices(items []*core.Item) ([]float64, error) {
	type bound struct {
		min, max float64
	}
	bounds := make(map[string]*bound)
	for _, it := range items {
		b, ok := bounds[it.Category]
		if !ok {
			bounds[it.Category] = &bound{min: it.Price, max: it.Price}
			continue
		}
		if it.Price < b.min {
			b.min = it.Price
		}
		if it.Price > b.max {
			b.max = it.Price
		}
	}

	out := make([]float64, len(items))
	for i, it := range items {
		b := bounds[it.Category]
		if span := b.max - b.min; span > 0 {
			out[i] = (it.Price - b.min) / span
		}
	}
	return out, nil
}

// Dim 返回特征向量维度（嵌入维度 + 1）。
func (s *Store) Dim() int { return s.dim }

// Len 返回商品数量。
func (s *Store) Len() int { return len(s.ids) }

// IDs 返回与 AllVectors 对齐的商品 ID 序列（目录快照顺序，稳定）。
func (s *Store) IDs() []string { return s.ids }

// IndexOf 返回商品在稳定序列中的下标。
func (s *Store) IndexOf(itemID string) (int, bool) {
	idx, ok := s.index[itemID]
	return idx, ok
}

// VectorOf 返回商品的特征向量；未收录的 ID 返回 false。
func (s *Store) VectorOf(itemID string) ([]float64, bool) {
	idx, ok := s.index[itemID]
	if !ok {
		return nil, false
	}
	return s.vectors[idx], true
}

// AllVectors 返回与 IDs 对齐的全部特征向量。
// 返回的是内部切片，调用方不得修改。
func (s *Store) AllVectors() [][]float64 { return s.vectors }
