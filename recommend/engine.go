// Package recommend 把特征库、亲和度索引、向量索引装配成完整的推荐引擎。
//
// 一次推荐请求的链路：
//
//	相似用户 → 候选类目 → 档案向量 → 过采样最近邻 → 过滤 → 类目配额
//
// 引擎内部用 Pipeline 组织链路，各阶段都是独立 Node，可单独复用。
package recommend

import (
	"context"

	"github.com/rushteam/shoprec/affinity"
	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/feature"
	"github.com/rushteam/shoprec/filter"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/pkg/utils"
	"github.com/rushteam/shoprec/recall"
	"github.com/rushteam/shoprec/rerank"
	"github.com/rushteam/shoprec/vector"
)

// Engine 是推荐引擎：对一个目录快照 + 交互快照的不可变视图提供查询。
// 快照更新时丢弃旧 Engine 重新 Build，构建完成前不对外提供查询。
//
// 可调参数均为零值友好：零值时取 core.EngineConfig 的默认值。
type Engine struct {
	features  *feature.Store
	index     core.VectorIndex
	aff       *affinity.Index
	items     map[string]*core.Item
	purchased map[string][]string

	interactions []core.Interaction

	// Profile 档案来源；Build 默认装配 HistoryProfile，可替换为 FallbackProfile
	Profile core.ProfileSource

	// SimilarUsers 最近邻用户数，<=0 时默认 100
	SimilarUsers int

	// TopCategories 候选类目数，<=0 时默认 5
	TopCategories int

	// OverfetchFactor 过采样倍数（检索 topK*factor 个候选），<=0 时默认 10
	OverfetchFactor int

	// RatingThreshold 评分质量闸门，<=0 时默认 4.0
	RatingThreshold float64

	// Config 提供各参数的默认值，可整体替换；nil 时用 core.DefaultEngineConfig
	Config core.EngineConfig
}

// Build 从目录快照和交互快照构建引擎。
// items 需已携带 Embedding（经由 feature.Embedder 或外部管线）。
// 构建是一次性的批处理：任一商品字段违反契约都会失败返回，不产出半成品。
func Build(items []*core.Item, interactions []core.Interaction) (*Engine, error) {
	features, err := feature.BuildStore(items)
	if err != nil {
		return nil, err
	}

	index, err := vectorIndexOf(features)
	if err != nil {
		return nil, err
	}

	aff, err := affinity.BuildIndex(interactions, items)
	if err != nil {
		return nil, err
	}

	catalog := make(map[string]*core.Item, len(items))
	for _, it := range items {
		catalog[it.ID] = it
	}

	purchased := make(map[string][]string)
	for _, inter := range interactions {
		if inter.UserID == "" {
			continue
		}
		purchased[inter.UserID] = append(purchased[inter.UserID], inter.ItemID)
	}

	e := &Engine{
		features:     features,
		index:        index,
		aff:          aff,
		items:        catalog,
		purchased:    purchased,
		interactions: interactions,
		Config:       &core.DefaultEngineConfig{},
	}
	e.Profile = &HistoryProfile{
		Features: features,
		ItemsOf: func(_ context.Context, userID string) ([]string, error) {
			return e.purchased[userID], nil
		},
	}
	return e, nil
}

// Recommend 为用户生成带类目配额的推荐列表。
// 返回列表长度 <= topK；未知用户或空历史返回空列表，不返回错误。
func (e *Engine) Recommend(ctx context.Context, userID string, topK, minItemsPerCat int) ([]*core.Item, error) {
	return e.RecommendFor(ctx, &core.RecommendContext{UserID: userID, Scene: "homepage"}, topK, minItemsPerCat)
}

// RecommendFor 与 Recommend 相同，但携带调用方构造的请求上下文
// （冷启动时带 SessionTexts，配合 FallbackProfile 走文本档案路径）。
func (e *Engine) RecommendFor(ctx context.Context, rctx *core.RecommendContext, topK, minItemsPerCat int) ([]*core.Item, error) {
	if topK <= 0 || rctx == nil {
		return nil, nil
	}

	// 1. 相似用户 → 候选类目
	neighbors := e.aff.Neighbors(rctx.UserID, e.similarUsers())
	categories := affinity.RankCategories(neighbors, e.interactions, e.catalogItems(), e.topCategories())

	// 有购买历史却凑不出候选类目（相似用户为空）时，类目约束即为空集，
	// 推荐结果为空列表。无历史的冷启动文本路径不受类目约束，
	// 候选裁剪交给档案路径本身（无档案即空结果）。
	if len(categories) == 0 && len(e.purchased[rctx.UserID]) > 0 {
		return nil, nil
	}

	if rctx.Params == nil {
		rctx.Params = make(map[string]any)
	}
	rctx.Params["candidate_categories"] = categories

	// 2-7. 档案最近邻 → 过滤 → 配额，整条链路由 Pipeline 驱动
	p := &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.ProfileANN{
				Profile: e.Profile,
				Index:   e.index,
				Lookup:  e.lookup,
				TopK:    topK * e.overfetchFactor(),
			},
			&filter.FilterNode{
				Filters: []filter.Filter{
					filter.NewCategoryFilter(categories),
					filter.NewPurchasedFilter(e.purchased[rctx.UserID]),
					filter.NewRatingFilter(e.ratingThreshold()),
				},
			},
			&rerank.Quota{
				TopN:           topK,
				MinPerCategory: minItemsPerCat,
			},
		},
	}

	return p.Run(ctx, rctx, nil)
}

// RecommendIDs 与 Recommend 相同，但只返回商品 ID 序列。
func (e *Engine) RecommendIDs(ctx context.Context, userID string, topK, minItemsPerCat int) ([]string, error) {
	items, err := e.Recommend(ctx, userID, topK, minItemsPerCat)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids, nil
}

// Features 返回引擎持有的特征库（只读）。
func (e *Engine) Features() *feature.Store { return e.features }

// Index 返回引擎持有的向量索引（只读）。
func (e *Engine) Index() core.VectorIndex { return e.index }

// Affinity 返回引擎持有的亲和度索引（只读）。
func (e *Engine) Affinity() *affinity.Index { return e.aff }

// lookup 按 ID 取商品的请求级副本。
// 索引结构在请求间共享且只读，Labels/Score 属于单次请求，必须写在副本上。
func (e *Engine) lookup(id string) *core.Item {
	src, ok := e.items[id]
	if !ok {
		return nil
	}
	clone := *src
	clone.Labels = make(map[string]utils.Label, len(src.Labels))
	for k, v := range src.Labels {
		clone.Labels[k] = v
	}
	return &clone
}

func (e *Engine) catalogItems() []*core.Item {
	items := make([]*core.Item, 0, len(e.features.IDs()))
	for _, id := range e.features.IDs() {
		items = append(items, e.items[id])
	}
	return items
}

func (e *Engine) engineConfig() core.EngineConfig {
	if e.Config != nil {
		return e.Config
	}
	return &core.DefaultEngineConfig{}
}

func (e *Engine) similarUsers() int {
	if e.SimilarUsers > 0 {
		return e.SimilarUsers
	}
	return e.engineConfig().DefaultSimilarUsers()
}

func (e *Engine) topCategories() int {
	if e.TopCategories > 0 {
		return e.TopCategories
	}
	return e.engineConfig().DefaultTopCategories()
}

func (e *Engine) overfetchFactor() int {
	if e.OverfetchFactor > 0 {
		return e.OverfetchFactor
	}
	return e.engineConfig().DefaultOverfetchFactor()
}

func (e *Engine) ratingThreshold() float64 {
	if e.RatingThreshold > 0 {
		return e.RatingThreshold
	}
	return e.engineConfig().DefaultRatingThreshold()
}

func vectorIndexOf(features *feature.Store) (core.VectorIndex, error) {
	return vector.BuildFlatIndex(features.IDs(), features.AllVectors())
}
